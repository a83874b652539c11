package constant

import (
	"fmt"

	"tplc-go/packages/compiler/output"
)

const constantPrefix = "_c"

// PoolInclusionLengthThresholdForStrings is the length threshold above which
// string literals are hoisted into the pool. Generally all primitive values
// are excluded from the ConstantPool, but there is an exclusion for strings
// that reach a certain length threshold.
const PoolInclusionLengthThresholdForStrings = 50

type poolEntry struct {
	literal output.OutputExpression
	ref     *output.ReadVarExpr
}

// ConstantPool collects shared constant definitions emitted alongside the
// generated template functions. Equivalent literals share one definition.
type ConstantPool struct {
	Statements    []output.OutputStatement
	literals      []poolEntry
	nextNameIndex int
}

// NewConstantPool creates an empty ConstantPool.
func NewConstantPool() *ConstantPool {
	return &ConstantPool{}
}

// GetConstLiteral returns an expression for the given literal: either the
// literal itself, when it is cheap enough to inline, or a reference to a
// shared constant definition.
func (p *ConstantPool) GetConstLiteral(literal output.OutputExpression, forceShared bool) output.OutputExpression {
	if lit, ok := literal.(*output.LiteralExpr); ok && !forceShared {
		if s, isString := lit.Value.(string); !isString || len(s) < PoolInclusionLengthThresholdForStrings {
			return literal
		}
	}
	for _, entry := range p.literals {
		if entry.literal.IsEquivalent(literal) {
			return entry.ref
		}
	}
	name := p.freshName()
	p.Statements = append(p.Statements, output.NewDeclareVarStmt(name, literal, nil))
	ref := output.NewReadVarExpr(name, nil, nil)
	p.literals = append(p.literals, poolEntry{literal: literal, ref: ref})
	return ref
}

func (p *ConstantPool) freshName() string {
	name := fmt.Sprintf("%s%d", constantPrefix, p.nextNameIndex)
	p.nextNameIndex++
	return name
}
