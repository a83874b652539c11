package ir

import (
	"fmt"

	"tplc-go/packages/compiler/core"
	"tplc-go/packages/compiler/i18n"
	"tplc-go/packages/compiler/output"
	"tplc-go/packages/compiler/util"
)

// Interpolation is an alternation of static strings and expressions. It is
// not itself an output expression; a later phase splits it into individual
// instructions. I18nPlaceholders, when present, carries one placeholder name
// per expression.
type Interpolation struct {
	Strings          []string
	Expressions      []output.OutputExpression
	I18nPlaceholders []string
}

// NewInterpolation creates an Interpolation, validating that the number of
// i18n placeholders matches the number of expressions.
func NewInterpolation(strings []string, expressions []output.OutputExpression, i18nPlaceholders []string) *Interpolation {
	if len(i18nPlaceholders) != 0 && len(i18nPlaceholders) != len(expressions) {
		panic(fmt.Sprintf("AssertionError: expected %d placeholders to match interpolation expression count, but got %d", len(expressions), len(i18nPlaceholders)))
	}
	return &Interpolation{Strings: strings, Expressions: expressions, I18nPlaceholders: i18nPlaceholders}
}

// InterpolateTextOp is a text interpolation update on a text node.
type InterpolateTextOp struct {
	OpBase
	// Target is the text node being interpolated into.
	Target        XrefId
	Interpolation *Interpolation
	SourceSpan    *util.ParseSourceSpan
}

// NewInterpolateTextOp creates an InterpolateTextOp.
func NewInterpolateTextOp(xref XrefId, interpolation *Interpolation, sourceSpan *util.ParseSourceSpan) *InterpolateTextOp {
	return &InterpolateTextOp{Target: xref, Interpolation: interpolation, SourceSpan: sourceSpan}
}

func (o *InterpolateTextOp) GetKind() OpKind { return OpKindInterpolateText }

func (o *InterpolateTextOp) GetXref() XrefId { return o.Target }

func (o *InterpolateTextOp) SetXref(xref XrefId) { o.Target = xref }

// BindingOp is a property, attribute, style, class or legacy animation
// binding update. Exactly one of Expression and Interpolation is set.
type BindingOp struct {
	OpBase
	// Target is the element or template the binding applies to.
	Target XrefId
	// BindingKind is the kind of binding.
	BindingKind BindingKind
	Name        string
	// Expression is the binding's value, nil when Interpolation is set.
	Expression output.OutputExpression
	// Interpolation is set for interpolated binding values.
	Interpolation *Interpolation
	// Unit is the unit suffix of a style binding, e.g. "px".
	Unit *string
	// SecurityContext is the binding's security classification.
	SecurityContext []core.SecurityContext
	// IsTextAttribute is whether the binding came from a literal attribute.
	IsTextAttribute bool
	// IsStructuralTemplateAttribute is whether the binding targets the
	// structural directive of a template rather than an element.
	IsStructuralTemplateAttribute bool
	// TemplateKind is the kind of the template being bound, nil when the
	// target is an element.
	TemplateKind *TemplateKind
	// I18nMessage is the translated value, for attributes inside i18n
	// blocks.
	I18nMessage *i18n.Message
	SourceSpan  *util.ParseSourceSpan
}

// NewBindingOp creates a BindingOp from a plain expression value.
func NewBindingOp(target XrefId, kind BindingKind, name string, expression output.OutputExpression, unit *string, securityContext []core.SecurityContext, isTextAttribute, isStructuralTemplateAttribute bool, templateKind *TemplateKind, i18nMessage *i18n.Message, sourceSpan *util.ParseSourceSpan) *BindingOp {
	return &BindingOp{
		Target:                        target,
		BindingKind:                   kind,
		Name:                          name,
		Expression:                    expression,
		Unit:                          unit,
		SecurityContext:               securityContext,
		IsTextAttribute:               isTextAttribute,
		IsStructuralTemplateAttribute: isStructuralTemplateAttribute,
		TemplateKind:                  templateKind,
		I18nMessage:                   i18nMessage,
		SourceSpan:                    sourceSpan,
	}
}

// NewInterpolationBindingOp creates a BindingOp from an interpolated value.
func NewInterpolationBindingOp(target XrefId, kind BindingKind, name string, interpolation *Interpolation, unit *string, securityContext []core.SecurityContext, isTextAttribute, isStructuralTemplateAttribute bool, templateKind *TemplateKind, i18nMessage *i18n.Message, sourceSpan *util.ParseSourceSpan) *BindingOp {
	op := NewBindingOp(target, kind, name, nil, unit, securityContext, isTextAttribute, isStructuralTemplateAttribute, templateKind, i18nMessage, sourceSpan)
	op.Interpolation = interpolation
	return op
}

func (o *BindingOp) GetKind() OpKind { return OpKindBinding }

func (o *BindingOp) GetXref() XrefId { return o.Target }

func (o *BindingOp) SetXref(xref XrefId) { o.Target = xref }

// ConditionalOp is the update dispatch for an if/switch block. It is keyed
// off the first branch's view and carries one case per branch.
type ConditionalOp struct {
	OpBase
	// Target is the first branch's view.
	Target XrefId
	// Conditions are the branches in source order.
	Conditions []*ConditionalCaseExpr
	// ContextValue is the value under comparison for switch blocks, nil for
	// if blocks.
	ContextValue output.OutputExpression
	SourceSpan   *util.ParseSourceSpan
}

// NewConditionalOp creates a ConditionalOp.
func NewConditionalOp(target XrefId, conditions []*ConditionalCaseExpr, sourceSpan *util.ParseSourceSpan) *ConditionalOp {
	return &ConditionalOp{Target: target, Conditions: conditions, SourceSpan: sourceSpan}
}

func (o *ConditionalOp) GetKind() OpKind { return OpKindConditional }

func (o *ConditionalOp) GetXref() XrefId { return o.Target }

func (o *ConditionalOp) SetXref(xref XrefId) { o.Target = xref }

// RepeaterOp is the update dispatch for a repeater, carrying the collection
// expression.
type RepeaterOp struct {
	OpBase
	// Target is the RepeaterCreateOp's primary view.
	Target     XrefId
	Collection output.OutputExpression
	SourceSpan *util.ParseSourceSpan
}

// NewRepeaterOp creates a RepeaterOp.
func NewRepeaterOp(repeaterCreate XrefId, collection output.OutputExpression, sourceSpan *util.ParseSourceSpan) *RepeaterOp {
	return &RepeaterOp{Target: repeaterCreate, Collection: collection, SourceSpan: sourceSpan}
}

func (o *RepeaterOp) GetKind() OpKind { return OpKindRepeater }

func (o *RepeaterOp) GetXref() XrefId { return o.Target }

func (o *RepeaterOp) SetXref(xref XrefId) { o.Target = xref }

// DeferWhenOp is an expression-driven trigger of a deferred block.
type DeferWhenOp struct {
	OpBase
	// Defer is the DeferOp the trigger belongs to.
	Defer XrefId
	// Expr is the boolean trigger expression.
	Expr output.OutputExpression
	// Prefetch is whether the trigger prefetches dependencies instead of
	// rendering the block.
	Prefetch   bool
	SourceSpan *util.ParseSourceSpan
}

// NewDeferWhenOp creates a DeferWhenOp.
func NewDeferWhenOp(deferXref XrefId, expr output.OutputExpression, prefetch bool, sourceSpan *util.ParseSourceSpan) *DeferWhenOp {
	return &DeferWhenOp{Defer: deferXref, Expr: expr, Prefetch: prefetch, SourceSpan: sourceSpan}
}

func (o *DeferWhenOp) GetKind() OpKind { return OpKindDeferWhen }

func (o *DeferWhenOp) GetXref() XrefId { return o.Defer }

func (o *DeferWhenOp) SetXref(xref XrefId) { o.Defer = xref }
