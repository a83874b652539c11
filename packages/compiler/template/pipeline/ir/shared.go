package ir

import "tplc-go/packages/compiler/output"

// StatementOp wraps an output statement. Usable in both create and update
// lists, e.g. as the body of a listener handler.
type StatementOp struct {
	OpBase
	Statement output.OutputStatement
}

// NewStatementOp creates a StatementOp.
func NewStatementOp(statement output.OutputStatement) *StatementOp {
	return &StatementOp{Statement: statement}
}

func (o *StatementOp) GetKind() OpKind { return OpKindStatement }
