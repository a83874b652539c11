package pipeline

import (
	"fmt"

	"tplc-go/packages/compiler/expression_parser"
	"tplc-go/packages/compiler/output"
	"tplc-go/packages/compiler/template/pipeline/ir"
)

// BinaryOperators maps expression-parser operator tokens to output AST
// binary operators.
var BinaryOperators = map[string]output.BinaryOperator{
	"&&":  output.BinaryOperatorAnd,
	">":   output.BinaryOperatorBigger,
	">=":  output.BinaryOperatorBiggerEquals,
	"|":   output.BinaryOperatorBitwiseOr,
	"&":   output.BinaryOperatorBitwiseAnd,
	"/":   output.BinaryOperatorDivide,
	"=":   output.BinaryOperatorAssign,
	"==":  output.BinaryOperatorEquals,
	"===": output.BinaryOperatorIdentical,
	"<":   output.BinaryOperatorLower,
	"<=":  output.BinaryOperatorLowerEquals,
	"-":   output.BinaryOperatorMinus,
	"%":   output.BinaryOperatorModulo,
	"**":  output.BinaryOperatorExponentiation,
	"*":   output.BinaryOperatorMultiply,
	"!=":  output.BinaryOperatorNotEquals,
	"!==": output.BinaryOperatorNotIdentical,
	"??":  output.BinaryOperatorNullishCoalesce,
	"||":  output.BinaryOperatorOr,
	"+":   output.BinaryOperatorPlus,
	"in":  output.BinaryOperatorIn,
	"+=":  output.BinaryOperatorAdditionAssignment,
	"-=":  output.BinaryOperatorSubtractionAssignment,
	"*=":  output.BinaryOperatorMultiplicationAssignment,
	"/=":  output.BinaryOperatorDivisionAssignment,
	"%=":  output.BinaryOperatorRemainderAssignment,
	"**=": output.BinaryOperatorExponentiationAssignment,
	"&&=": output.BinaryOperatorAndAssignment,
	"||=": output.BinaryOperatorOrAssignment,
	"??=": output.BinaryOperatorNullishCoalesceAssignment,
}

// BinaryOperatorFor returns the output operator for an expression-parser
// token, or panics for an unknown token.
func BinaryOperatorFor(operation string) output.BinaryOperator {
	op, ok := BinaryOperators[operation]
	if !ok {
		panic(fmt.Sprintf("AssertionError: unknown binary operator %s", operation))
	}
	return op
}

// NamespaceForKey returns the ir.Namespace for a namespace prefix as
// produced by ml_parser.SplitNsName.
func NamespaceForKey(namespacePrefixKey *string) ir.Namespace {
	if namespacePrefixKey == nil {
		return ir.NamespaceHTML
	}
	switch *namespacePrefixKey {
	case "svg":
		return ir.NamespaceSVG
	case "math":
		return ir.NamespaceMath
	}
	return ir.NamespaceHTML
}

// KeyForNamespace is the inverse of NamespaceForKey; HTML yields nil.
func KeyForNamespace(namespace ir.Namespace) *string {
	switch namespace {
	case ir.NamespaceSVG:
		key := "svg"
		return &key
	case ir.NamespaceMath:
		key := "math"
		return &key
	}
	return nil
}

// PrefixWithNamespace re-qualifies a stripped tag name with its namespace,
// in ":ns:name" form. HTML names are returned unchanged.
func PrefixWithNamespace(strippedTag string, namespace ir.Namespace) string {
	if namespace == ir.NamespaceHTML {
		return strippedTag
	}
	return ":" + *KeyForNamespace(namespace) + ":" + strippedTag
}

// BindingKinds maps input binding types to their IR binding kind.
var BindingKinds = map[expression_parser.BindingType]ir.BindingKind{
	expression_parser.BindingTypeProperty:        ir.BindingKindProperty,
	expression_parser.BindingTypeAttribute:       ir.BindingKindAttribute,
	expression_parser.BindingTypeClass:           ir.BindingKindClassName,
	expression_parser.BindingTypeStyle:           ir.BindingKindStyleProperty,
	expression_parser.BindingTypeLegacyAnimation: ir.BindingKindLegacyAnimation,
}
