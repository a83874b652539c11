package output

import (
	"tplc-go/packages/compiler/util"
)

// Type is the (optional) output-language type attached to an expression.
// Lowering never inspects types, so the model carries them opaquely.
type Type interface{}

// BinaryOperator enumerates the binary operators expressible in the output
// language.
type BinaryOperator int

const (
	BinaryOperatorEquals BinaryOperator = iota
	BinaryOperatorNotEquals
	BinaryOperatorIdentical
	BinaryOperatorNotIdentical
	BinaryOperatorMinus
	BinaryOperatorPlus
	BinaryOperatorDivide
	BinaryOperatorMultiply
	BinaryOperatorModulo
	BinaryOperatorAnd
	BinaryOperatorOr
	BinaryOperatorBitwiseOr
	BinaryOperatorBitwiseAnd
	BinaryOperatorLower
	BinaryOperatorLowerEquals
	BinaryOperatorBigger
	BinaryOperatorBiggerEquals
	BinaryOperatorNullishCoalesce
	BinaryOperatorExponentiation
	BinaryOperatorIn
	BinaryOperatorAssign
	BinaryOperatorAdditionAssignment
	BinaryOperatorSubtractionAssignment
	BinaryOperatorMultiplicationAssignment
	BinaryOperatorDivisionAssignment
	BinaryOperatorRemainderAssignment
	BinaryOperatorExponentiationAssignment
	BinaryOperatorAndAssignment
	BinaryOperatorOrAssignment
	BinaryOperatorNullishCoalesceAssignment
)

// UnaryOperator enumerates the unary operators expressible in the output
// language.
type UnaryOperator int

const (
	UnaryOperatorMinus UnaryOperator = iota
	UnaryOperatorPlus
)

// OutputExpression is the base interface for output-language expressions.
type OutputExpression interface {
	GetType() Type
	GetSourceSpan() *util.ParseSourceSpan
	// IsEquivalent compares two expressions structurally, ignoring source
	// spans. Used for constant-pool deduplication.
	IsEquivalent(other OutputExpression) bool
	// IsConstant reports whether the expression is a compile-time constant.
	IsConstant() bool
}

// ExpressionBase carries the fields common to all output expressions.
type ExpressionBase struct {
	Type       Type
	SourceSpan *util.ParseSourceSpan
}

// GetType returns the expression's output type, if any.
func (e *ExpressionBase) GetType() Type { return e.Type }

// GetSourceSpan returns the expression's source span, if any.
func (e *ExpressionBase) GetSourceSpan() *util.ParseSourceSpan { return e.SourceSpan }

func areAllEquivalent(base, other []OutputExpression) bool {
	if len(base) != len(other) {
		return false
	}
	for i := range base {
		if !base[i].IsEquivalent(other[i]) {
			return false
		}
	}
	return true
}

func nullSafeIsEquivalent(base, other OutputExpression) bool {
	if base == nil || other == nil {
		return base == other
	}
	return base.IsEquivalent(other)
}

// ReadVarExpr reads a variable by name.
type ReadVarExpr struct {
	ExpressionBase
	Name string
}

func NewReadVarExpr(name string, typ Type, sourceSpan *util.ParseSourceSpan) *ReadVarExpr {
	return &ReadVarExpr{ExpressionBase{typ, sourceSpan}, name}
}

func (e *ReadVarExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*ReadVarExpr)
	return ok && e.Name == o.Name
}

func (e *ReadVarExpr) IsConstant() bool { return false }

// LiteralExpr is a literal primitive value (string, number, boolean or nil).
type LiteralExpr struct {
	ExpressionBase
	Value interface{}
}

func NewLiteralExpr(value interface{}, typ Type, sourceSpan *util.ParseSourceSpan) *LiteralExpr {
	return &LiteralExpr{ExpressionBase{typ, sourceSpan}, value}
}

func (e *LiteralExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*LiteralExpr)
	return ok && e.Value == o.Value
}

func (e *LiteralExpr) IsConstant() bool { return true }

// BinaryOperatorExpr applies a binary operator to two operands.
type BinaryOperatorExpr struct {
	ExpressionBase
	Operator BinaryOperator
	Lhs      OutputExpression
	Rhs      OutputExpression
}

func NewBinaryOperatorExpr(operator BinaryOperator, lhs, rhs OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan) *BinaryOperatorExpr {
	return &BinaryOperatorExpr{ExpressionBase{typ, sourceSpan}, operator, lhs, rhs}
}

func (e *BinaryOperatorExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*BinaryOperatorExpr)
	return ok && e.Operator == o.Operator && e.Lhs.IsEquivalent(o.Lhs) && e.Rhs.IsEquivalent(o.Rhs)
}

func (e *BinaryOperatorExpr) IsConstant() bool { return false }

// UnaryOperatorExpr applies a unary operator to an operand.
type UnaryOperatorExpr struct {
	ExpressionBase
	Operator UnaryOperator
	Expr     OutputExpression
	Parens   bool
}

func NewUnaryOperatorExpr(operator UnaryOperator, expr OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan, parens bool) *UnaryOperatorExpr {
	return &UnaryOperatorExpr{ExpressionBase{typ, sourceSpan}, operator, expr, parens}
}

func (e *UnaryOperatorExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*UnaryOperatorExpr)
	return ok && e.Operator == o.Operator && e.Expr.IsEquivalent(o.Expr)
}

func (e *UnaryOperatorExpr) IsConstant() bool { return false }

// NotExpr is a logical negation.
type NotExpr struct {
	ExpressionBase
	Condition OutputExpression
}

func NewNotExpr(condition OutputExpression, sourceSpan *util.ParseSourceSpan) *NotExpr {
	return &NotExpr{ExpressionBase{nil, sourceSpan}, condition}
}

func (e *NotExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*NotExpr)
	return ok && e.Condition.IsEquivalent(o.Condition)
}

func (e *NotExpr) IsConstant() bool { return false }

// ConditionalExpr is a ternary conditional.
type ConditionalExpr struct {
	ExpressionBase
	Condition OutputExpression
	TrueCase  OutputExpression
	FalseCase OutputExpression
}

func NewConditionalExpr(condition, trueCase, falseCase OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan) *ConditionalExpr {
	return &ConditionalExpr{ExpressionBase{typ, sourceSpan}, condition, trueCase, falseCase}
}

func (e *ConditionalExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*ConditionalExpr)
	return ok && e.Condition.IsEquivalent(o.Condition) &&
		e.TrueCase.IsEquivalent(o.TrueCase) && nullSafeIsEquivalent(e.FalseCase, o.FalseCase)
}

func (e *ConditionalExpr) IsConstant() bool { return false }

// InvokeFunctionExpr calls a function-valued expression.
type InvokeFunctionExpr struct {
	ExpressionBase
	Fn   OutputExpression
	Args []OutputExpression
	Pure bool
}

func NewInvokeFunctionExpr(fn OutputExpression, args []OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan, pure bool) *InvokeFunctionExpr {
	return &InvokeFunctionExpr{ExpressionBase{typ, sourceSpan}, fn, args, pure}
}

func (e *InvokeFunctionExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*InvokeFunctionExpr)
	return ok && e.Fn.IsEquivalent(o.Fn) && areAllEquivalent(e.Args, o.Args) && e.Pure == o.Pure
}

func (e *InvokeFunctionExpr) IsConstant() bool { return false }

// ReadPropExpr reads a named property off a receiver.
type ReadPropExpr struct {
	ExpressionBase
	Receiver OutputExpression
	Name     string
}

func NewReadPropExpr(receiver OutputExpression, name string, typ Type, sourceSpan *util.ParseSourceSpan) *ReadPropExpr {
	return &ReadPropExpr{ExpressionBase{typ, sourceSpan}, receiver, name}
}

func (e *ReadPropExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*ReadPropExpr)
	return ok && e.Receiver.IsEquivalent(o.Receiver) && e.Name == o.Name
}

func (e *ReadPropExpr) IsConstant() bool { return false }

// ReadKeyExpr reads a computed key off a receiver.
type ReadKeyExpr struct {
	ExpressionBase
	Receiver OutputExpression
	Index    OutputExpression
}

func NewReadKeyExpr(receiver, index OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan) *ReadKeyExpr {
	return &ReadKeyExpr{ExpressionBase{typ, sourceSpan}, receiver, index}
}

func (e *ReadKeyExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*ReadKeyExpr)
	return ok && e.Receiver.IsEquivalent(o.Receiver) && e.Index.IsEquivalent(o.Index)
}

func (e *ReadKeyExpr) IsConstant() bool { return false }

// WritePropExpr assigns a value to a named property of a receiver.
type WritePropExpr struct {
	ExpressionBase
	Receiver OutputExpression
	Name     string
	Value    OutputExpression
}

func NewWritePropExpr(receiver OutputExpression, name string, value OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan) *WritePropExpr {
	return &WritePropExpr{ExpressionBase{typ, sourceSpan}, receiver, name, value}
}

func (e *WritePropExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*WritePropExpr)
	return ok && e.Receiver.IsEquivalent(o.Receiver) && e.Name == o.Name && e.Value.IsEquivalent(o.Value)
}

func (e *WritePropExpr) IsConstant() bool { return false }

// WriteKeyExpr assigns a value to a computed key of a receiver.
type WriteKeyExpr struct {
	ExpressionBase
	Receiver OutputExpression
	Index    OutputExpression
	Value    OutputExpression
}

func NewWriteKeyExpr(receiver, index, value OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan) *WriteKeyExpr {
	return &WriteKeyExpr{ExpressionBase{typ, sourceSpan}, receiver, index, value}
}

func (e *WriteKeyExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*WriteKeyExpr)
	return ok && e.Receiver.IsEquivalent(o.Receiver) && e.Index.IsEquivalent(o.Index) && e.Value.IsEquivalent(o.Value)
}

func (e *WriteKeyExpr) IsConstant() bool { return false }

// LiteralArrayExpr is an array literal.
type LiteralArrayExpr struct {
	ExpressionBase
	Entries []OutputExpression
}

func NewLiteralArrayExpr(entries []OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan) *LiteralArrayExpr {
	return &LiteralArrayExpr{ExpressionBase{typ, sourceSpan}, entries}
}

func (e *LiteralArrayExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*LiteralArrayExpr)
	return ok && areAllEquivalent(e.Entries, o.Entries)
}

func (e *LiteralArrayExpr) IsConstant() bool {
	for _, entry := range e.Entries {
		if !entry.IsConstant() {
			return false
		}
	}
	return true
}

// LiteralMapEntry is one key/value pair of a map literal.
type LiteralMapEntry struct {
	Key    string
	Value  OutputExpression
	Quoted bool
}

func NewLiteralMapEntry(key string, value OutputExpression, quoted bool) *LiteralMapEntry {
	return &LiteralMapEntry{Key: key, Value: value, Quoted: quoted}
}

func (e *LiteralMapEntry) IsEquivalent(other *LiteralMapEntry) bool {
	return e.Key == other.Key && e.Value.IsEquivalent(other.Value)
}

// LiteralMapExpr is an object/map literal.
type LiteralMapExpr struct {
	ExpressionBase
	Entries []*LiteralMapEntry
}

func NewLiteralMapExpr(entries []*LiteralMapEntry, typ Type, sourceSpan *util.ParseSourceSpan) *LiteralMapExpr {
	return &LiteralMapExpr{ExpressionBase{typ, sourceSpan}, entries}
}

func (e *LiteralMapExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*LiteralMapExpr)
	if !ok || len(e.Entries) != len(o.Entries) {
		return false
	}
	for i := range e.Entries {
		if !e.Entries[i].IsEquivalent(o.Entries[i]) {
			return false
		}
	}
	return true
}

func (e *LiteralMapExpr) IsConstant() bool {
	for _, entry := range e.Entries {
		if !entry.Value.IsConstant() {
			return false
		}
	}
	return true
}

// TypeofExpr is a typeof operator application.
type TypeofExpr struct {
	ExpressionBase
	Expr OutputExpression
}

func NewTypeofExpr(expr OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan) *TypeofExpr {
	return &TypeofExpr{ExpressionBase{typ, sourceSpan}, expr}
}

func (e *TypeofExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*TypeofExpr)
	return ok && e.Expr.IsEquivalent(o.Expr)
}

func (e *TypeofExpr) IsConstant() bool { return e.Expr.IsConstant() }

// VoidExpr is a void operator application.
type VoidExpr struct {
	ExpressionBase
	Expr OutputExpression
}

func NewVoidExpr(expr OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan) *VoidExpr {
	return &VoidExpr{ExpressionBase{typ, sourceSpan}, expr}
}

func (e *VoidExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*VoidExpr)
	return ok && e.Expr.IsEquivalent(o.Expr)
}

func (e *VoidExpr) IsConstant() bool { return e.Expr.IsConstant() }

// ParenthesizedExpr preserves explicit parentheses from the source.
type ParenthesizedExpr struct {
	ExpressionBase
	Expr OutputExpression
}

func NewParenthesizedExpr(expr OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan) *ParenthesizedExpr {
	return &ParenthesizedExpr{ExpressionBase{typ, sourceSpan}, expr}
}

func (e *ParenthesizedExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*ParenthesizedExpr)
	return ok && e.Expr.IsEquivalent(o.Expr)
}

func (e *ParenthesizedExpr) IsConstant() bool { return e.Expr.IsConstant() }
