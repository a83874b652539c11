package ir

import "tplc-go/packages/compiler/output"

// CTX_REF is a marker recorded as a context variable's value to indicate
// that the variable is a direct reference to the view context itself.
const CTX_REF = "CTX_REF_MARKER"

// AliasVariable is a derived value available in a view's scope, defined as
// an expression over other in-scope variables (e.g. a loop's $first).
type AliasVariable struct {
	// Name is the name the alias is exposed under.
	Name string
	// Identifier is the internal identifier for code generation.
	Identifier string
	// Expression computes the alias's value.
	Expression output.OutputExpression
}

// NewAliasVariable creates an AliasVariable.
func NewAliasVariable(name, identifier string, expression output.OutputExpression) *AliasVariable {
	return &AliasVariable{Name: name, Identifier: identifier, Expression: expression}
}
