package expression_parser

import "tplc-go/packages/compiler/util"

// BindingType classifies a bound attribute by its target.
type BindingType int

const (
	// BindingTypeProperty is a binding to an element property.
	BindingTypeProperty BindingType = iota
	// BindingTypeAttribute is a binding to an element attribute.
	BindingTypeAttribute
	// BindingTypeClass is a binding to a CSS class.
	BindingTypeClass
	// BindingTypeStyle is a binding to a style rule.
	BindingTypeStyle
	// BindingTypeLegacyAnimation is a binding to a legacy animation reference.
	BindingTypeLegacyAnimation
)

// ParsedEventType classifies a bound event.
type ParsedEventType int

const (
	// ParsedEventTypeRegular is a plain DOM or output event.
	ParsedEventTypeRegular ParsedEventType = iota
	// ParsedEventTypeLegacyAnimation is a legacy animation callback event.
	ParsedEventTypeLegacyAnimation
)

// ParsedPropertyType classifies a host-binding property declaration.
type ParsedPropertyType int

const (
	ParsedPropertyTypeDefault ParsedPropertyType = iota
	ParsedPropertyTypeLiteralAttr
	ParsedPropertyTypeLegacyAnimation
)

// ParsedProperty is a property declaration from a host-binding map, before
// it has been bound to a concrete element target.
type ParsedProperty struct {
	Name       string
	Expression *ASTWithSource
	Type       ParsedPropertyType
	SourceSpan *util.ParseSourceSpan
	KeySpan    *util.ParseSourceSpan
	ValueSpan  *util.ParseSourceSpan
}

// IsLiteral reports whether the property is a literal attribute declaration.
func (p *ParsedProperty) IsLiteral() bool { return p.Type == ParsedPropertyTypeLiteralAttr }

// IsLegacyAnimation reports whether the property targets a legacy animation.
func (p *ParsedProperty) IsLegacyAnimation() bool { return p.Type == ParsedPropertyTypeLegacyAnimation }

// ParsedEvent is an event declaration from a host-binding map.
// TargetOrPhase carries the event target for regular events and the
// animation phase for legacy animation events.
type ParsedEvent struct {
	Name          string
	TargetOrPhase *string
	Type          ParsedEventType
	Handler       *ASTWithSource
	SourceSpan    *util.ParseSourceSpan
	HandlerSpan   *util.ParseSourceSpan
	KeySpan       *util.ParseSourceSpan
}
