package output

import "tplc-go/packages/compiler/util"

// OutputStatement is the base interface for output-language statements.
type OutputStatement interface {
	GetSourceSpan() *util.ParseSourceSpan
	isStatement()
}

// StatementBase carries the fields common to all output statements.
type StatementBase struct {
	SourceSpan *util.ParseSourceSpan
}

// GetSourceSpan returns the statement's source span, if any.
func (s *StatementBase) GetSourceSpan() *util.ParseSourceSpan { return s.SourceSpan }

func (s *StatementBase) isStatement() {}

// ExpressionStatement evaluates an expression for its side effects.
type ExpressionStatement struct {
	StatementBase
	Expr OutputExpression
}

func NewExpressionStatement(expr OutputExpression, sourceSpan *util.ParseSourceSpan) *ExpressionStatement {
	return &ExpressionStatement{StatementBase{sourceSpan}, expr}
}

// DeclareVarStmt declares a named constant or variable.
type DeclareVarStmt struct {
	StatementBase
	Name  string
	Value OutputExpression
}

func NewDeclareVarStmt(name string, value OutputExpression, sourceSpan *util.ParseSourceSpan) *DeclareVarStmt {
	return &DeclareVarStmt{StatementBase{sourceSpan}, name, value}
}

// ReturnStatement returns a value from the enclosing function.
type ReturnStatement struct {
	StatementBase
	Value OutputExpression
}

func NewReturnStatement(value OutputExpression, sourceSpan *util.ParseSourceSpan) *ReturnStatement {
	return &ReturnStatement{StatementBase{sourceSpan}, value}
}
