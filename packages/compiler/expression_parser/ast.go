package expression_parser

import "tplc-go/packages/compiler/util"

// ParseSpan is a character range relative to the start of the expression
// being parsed.
type ParseSpan struct {
	Start int
	End   int
}

// NewParseSpan creates a new ParseSpan.
func NewParseSpan(start, end int) *ParseSpan {
	return &ParseSpan{Start: start, End: end}
}

// ToAbsolute translates the relative span by the absolute offset of the
// expression within its source file.
func (s *ParseSpan) ToAbsolute(absoluteOffset int) *AbsoluteSourceSpan {
	return &AbsoluteSourceSpan{Start: absoluteOffset + s.Start, End: absoluteOffset + s.End}
}

// AbsoluteSourceSpan is a character range within the whole source file.
type AbsoluteSourceSpan struct {
	Start int
	End   int
}

// AST is the base interface for expression AST nodes.
type AST interface {
	Span() *ParseSpan
	AbsoluteSpan() *AbsoluteSourceSpan
}

// ASTBase carries the spans common to all expression AST nodes.
type ASTBase struct {
	ParseSpan  *ParseSpan
	SourceSpan *AbsoluteSourceSpan
}

// Span returns the span relative to the expression start.
func (a *ASTBase) Span() *ParseSpan { return a.ParseSpan }

// AbsoluteSpan returns the span within the whole source file.
func (a *ASTBase) AbsoluteSpan() *AbsoluteSourceSpan { return a.SourceSpan }

// EmptyExpr represents a missing expression, e.g. an empty binding value.
type EmptyExpr struct {
	ASTBase
}

// ImplicitReceiver is the implied receiver of an unqualified property access.
type ImplicitReceiver struct {
	ASTBase
}

// ThisReceiver is an explicitly written `this` receiver.
type ThisReceiver struct {
	ASTBase
}

// IsImplicitReceiver reports whether the node is an implicit or explicit
// `this` receiver.
func IsImplicitReceiver(a AST) bool {
	switch a.(type) {
	case *ImplicitReceiver, *ThisReceiver:
		return true
	}
	return false
}

// Chain is a sequence of comma-separated expressions, used in event handlers.
type Chain struct {
	ASTBase
	Expressions []AST
}

// Conditional is a ternary conditional expression.
type Conditional struct {
	ASTBase
	Condition AST
	TrueExp   AST
	FalseExp  AST
}

// PropertyRead reads a named property off a receiver.
type PropertyRead struct {
	ASTBase
	Receiver AST
	Name     string
	NameSpan *AbsoluteSourceSpan
}

// SafePropertyRead is a `?.` property read.
type SafePropertyRead struct {
	ASTBase
	Receiver AST
	Name     string
	NameSpan *AbsoluteSourceSpan
}

// PropertyWrite assigns to a named property of a receiver.
type PropertyWrite struct {
	ASTBase
	Receiver AST
	Name     string
	NameSpan *AbsoluteSourceSpan
	Value    AST
}

// KeyedRead reads a computed key off a receiver.
type KeyedRead struct {
	ASTBase
	Receiver AST
	Key      AST
}

// SafeKeyedRead is a `?.[...]` keyed read.
type SafeKeyedRead struct {
	ASTBase
	Receiver AST
	Key      AST
}

// KeyedWrite assigns to a computed key of a receiver.
type KeyedWrite struct {
	ASTBase
	Receiver AST
	Key      AST
	Value    AST
}

// BindingPipe applies a pipe to a value: `exp | name:arg0:arg1`.
type BindingPipe struct {
	ASTBase
	Exp      AST
	Name     string
	Args     []AST
	NameSpan *AbsoluteSourceSpan
}

// LiteralPrimitive is a literal string, number, boolean, null or undefined.
type LiteralPrimitive struct {
	ASTBase
	Value interface{}
}

// LiteralArray is an array literal.
type LiteralArray struct {
	ASTBase
	Expressions []AST
}

// LiteralMapKey is one key of a map literal.
type LiteralMapKey struct {
	Key    string
	Quoted bool
}

// LiteralMap is an object/map literal. Keys and Values are index-aligned.
type LiteralMap struct {
	ASTBase
	Keys   []LiteralMapKey
	Values []AST
}

// Interpolation is an alternation of literal strings and embedded
// expressions. Strings always has exactly one more entry than Expressions.
type Interpolation struct {
	ASTBase
	Strings     []string
	Expressions []AST
}

// Binary applies a binary operator, identified by its source token.
type Binary struct {
	ASTBase
	Operation string
	Left      AST
	Right     AST
}

// Unary applies a unary `+` or `-` operator.
type Unary struct {
	ASTBase
	Operator string
	Expr     AST
}

// PrefixNot is a logical `!` negation.
type PrefixNot struct {
	ASTBase
	Expression AST
}

// TypeofExpression is a `typeof` operator application.
type TypeofExpression struct {
	ASTBase
	Expression AST
}

// VoidExpression is a `void` operator application.
type VoidExpression struct {
	ASTBase
	Expression AST
}

// NonNullAssert is a trailing `!` assertion. It has no runtime semantics.
type NonNullAssert struct {
	ASTBase
	Expression AST
}

// Call invokes a function-valued expression.
type Call struct {
	ASTBase
	Receiver     AST
	Args         []AST
	ArgumentSpan *AbsoluteSourceSpan
}

// SafeCall is a `?.()` invocation.
type SafeCall struct {
	ASTBase
	Receiver     AST
	Args         []AST
	ArgumentSpan *AbsoluteSourceSpan
}

// ParenthesizedExpression preserves explicit parentheses from the source.
type ParenthesizedExpression struct {
	ASTBase
	Expression AST
}

// ASTWithSource pairs a parsed expression with the source text it came from.
type ASTWithSource struct {
	ASTBase
	AST      AST
	Source   *string
	Location string
	Errors   []*util.ParseError
}

// NewASTWithSource wraps an AST with its originating source text.
func NewASTWithSource(ast AST, source *string, location string, absoluteOffset int) *ASTWithSource {
	span := ast.Span()
	var parseSpan *ParseSpan
	var absSpan *AbsoluteSourceSpan
	if span != nil {
		parseSpan = NewParseSpan(0, span.End-span.Start)
		absSpan = parseSpan.ToAbsolute(absoluteOffset)
	}
	return &ASTWithSource{
		ASTBase:  ASTBase{ParseSpan: parseSpan, SourceSpan: absSpan},
		AST:      ast,
		Source:   source,
		Location: location,
	}
}
