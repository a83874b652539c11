package ir

import (
	"tplc-go/packages/compiler/output"
	"tplc-go/packages/compiler/render3"
	"tplc-go/packages/compiler/util"
)

// IrExpression marks the expression types that are logical extensions of
// the output expression set, understood only by pipeline phases.
type IrExpression interface {
	output.OutputExpression
	isIrExpression()
}

// LexicalReadExpr is a read of a variable by name from the lexical scope of
// the current view. Scope resolution happens in a later phase.
type LexicalReadExpr struct {
	output.ExpressionBase
	Name string
}

// NewLexicalReadExpr creates a LexicalReadExpr.
func NewLexicalReadExpr(name string) *LexicalReadExpr {
	return &LexicalReadExpr{Name: name}
}

func (e *LexicalReadExpr) IsEquivalent(other output.OutputExpression) bool {
	o, ok := other.(*LexicalReadExpr)
	return ok && e.Name == o.Name
}

func (e *LexicalReadExpr) IsConstant() bool { return false }

func (e *LexicalReadExpr) isIrExpression() {}

// ContextExpr is a reference to the context object of a view.
type ContextExpr struct {
	output.ExpressionBase
	View XrefId
}

// NewContextExpr creates a ContextExpr.
func NewContextExpr(view XrefId) *ContextExpr {
	return &ContextExpr{View: view}
}

func (e *ContextExpr) IsEquivalent(other output.OutputExpression) bool {
	o, ok := other.(*ContextExpr)
	return ok && e.View == o.View
}

func (e *ContextExpr) IsConstant() bool { return false }

func (e *ContextExpr) isIrExpression() {}

// PipeBindingExpr is an invocation of a pipe with a value and arguments.
type PipeBindingExpr struct {
	output.ExpressionBase
	// Target is the xref allocated for this pipe instance.
	Target XrefId
	// TargetSlot is the pipe instance's slot.
	TargetSlot *SlotHandle
	Name       string
	Args       []output.OutputExpression
}

// NewPipeBindingExpr creates a PipeBindingExpr.
func NewPipeBindingExpr(target XrefId, targetSlot *SlotHandle, name string, args []output.OutputExpression) *PipeBindingExpr {
	return &PipeBindingExpr{Target: target, TargetSlot: targetSlot, Name: name, Args: args}
}

func (e *PipeBindingExpr) IsEquivalent(other output.OutputExpression) bool {
	// Pipe instances are never interchangeable.
	return false
}

func (e *PipeBindingExpr) IsConstant() bool { return false }

func (e *PipeBindingExpr) isIrExpression() {}

// SafePropertyReadExpr is a `?.` property read, resolved into a null check
// by a later phase.
type SafePropertyReadExpr struct {
	output.ExpressionBase
	Receiver output.OutputExpression
	Name     string
}

// NewSafePropertyReadExpr creates a SafePropertyReadExpr.
func NewSafePropertyReadExpr(receiver output.OutputExpression, name string) *SafePropertyReadExpr {
	return &SafePropertyReadExpr{Receiver: receiver, Name: name}
}

func (e *SafePropertyReadExpr) IsEquivalent(other output.OutputExpression) bool {
	o, ok := other.(*SafePropertyReadExpr)
	return ok && e.Receiver.IsEquivalent(o.Receiver) && e.Name == o.Name
}

func (e *SafePropertyReadExpr) IsConstant() bool { return false }

func (e *SafePropertyReadExpr) isIrExpression() {}

// SafeKeyedReadExpr is a `?.[...]` keyed read.
type SafeKeyedReadExpr struct {
	output.ExpressionBase
	Receiver output.OutputExpression
	Index    output.OutputExpression
}

// NewSafeKeyedReadExpr creates a SafeKeyedReadExpr.
func NewSafeKeyedReadExpr(receiver, index output.OutputExpression, sourceSpan *util.ParseSourceSpan) *SafeKeyedReadExpr {
	return &SafeKeyedReadExpr{
		ExpressionBase: output.ExpressionBase{SourceSpan: sourceSpan},
		Receiver:       receiver,
		Index:          index,
	}
}

func (e *SafeKeyedReadExpr) IsEquivalent(other output.OutputExpression) bool {
	o, ok := other.(*SafeKeyedReadExpr)
	return ok && e.Receiver.IsEquivalent(o.Receiver) && e.Index.IsEquivalent(o.Index)
}

func (e *SafeKeyedReadExpr) IsConstant() bool { return false }

func (e *SafeKeyedReadExpr) isIrExpression() {}

// SafeInvokeFunctionExpr is a `?.()` invocation.
type SafeInvokeFunctionExpr struct {
	output.ExpressionBase
	Receiver output.OutputExpression
	Args     []output.OutputExpression
}

// NewSafeInvokeFunctionExpr creates a SafeInvokeFunctionExpr.
func NewSafeInvokeFunctionExpr(receiver output.OutputExpression, args []output.OutputExpression) *SafeInvokeFunctionExpr {
	return &SafeInvokeFunctionExpr{Receiver: receiver, Args: args}
}

func (e *SafeInvokeFunctionExpr) IsEquivalent(other output.OutputExpression) bool {
	o, ok := other.(*SafeInvokeFunctionExpr)
	if !ok || !e.Receiver.IsEquivalent(o.Receiver) || len(e.Args) != len(o.Args) {
		return false
	}
	for i := range e.Args {
		if !e.Args[i].IsEquivalent(o.Args[i]) {
			return false
		}
	}
	return true
}

func (e *SafeInvokeFunctionExpr) IsConstant() bool { return false }

func (e *SafeInvokeFunctionExpr) isIrExpression() {}

// EmptyExpr stands in for a missing expression, e.g. an empty event
// handler.
type EmptyExpr struct {
	output.ExpressionBase
}

// NewEmptyExpr creates an EmptyExpr.
func NewEmptyExpr(sourceSpan *util.ParseSourceSpan) *EmptyExpr {
	return &EmptyExpr{output.ExpressionBase{SourceSpan: sourceSpan}}
}

func (e *EmptyExpr) IsEquivalent(other output.OutputExpression) bool {
	_, ok := other.(*EmptyExpr)
	return ok
}

func (e *EmptyExpr) IsConstant() bool { return true }

func (e *EmptyExpr) isIrExpression() {}

// ConditionalCaseExpr is one branch of a ConditionalOp. A nil Expr marks an
// unconditional (else/default) branch.
type ConditionalCaseExpr struct {
	output.ExpressionBase
	Expr output.OutputExpression
	// Target is the view displayed when this case matches.
	Target     XrefId
	TargetSlot *SlotHandle
	// Alias is the `as` alias declared on the branch, if any.
	Alias *render3.Variable
}

// NewConditionalCaseExpr creates a ConditionalCaseExpr.
func NewConditionalCaseExpr(expr output.OutputExpression, target XrefId, targetSlot *SlotHandle, alias *render3.Variable) *ConditionalCaseExpr {
	return &ConditionalCaseExpr{Expr: expr, Target: target, TargetSlot: targetSlot, Alias: alias}
}

func (e *ConditionalCaseExpr) IsEquivalent(other output.OutputExpression) bool {
	o, ok := other.(*ConditionalCaseExpr)
	if !ok || e.Target != o.Target {
		return false
	}
	if e.Expr == nil || o.Expr == nil {
		return e.Expr == o.Expr
	}
	return e.Expr.IsEquivalent(o.Expr)
}

func (e *ConditionalCaseExpr) IsConstant() bool { return false }

func (e *ConditionalCaseExpr) isIrExpression() {}
