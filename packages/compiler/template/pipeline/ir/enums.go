package ir

// OpKind distinguishes the different kinds of IR operations.
type OpKind int

const (
	// OpKindListEnd is a special operation used as the head and tail of every
	// operation list.
	OpKindListEnd OpKind = iota
	// OpKindStatement is an operation which wraps an output AST statement.
	OpKindStatement
	// OpKindElementStart marks the creation of an element which may have
	// child operations.
	OpKindElementStart
	// OpKindElementEnd marks the end of an element structure.
	OpKindElementEnd
	// OpKindTemplate is the creation of an embedded view.
	OpKindTemplate
	// OpKindText is the creation of a static text node.
	OpKindText
	// OpKindInterpolateText is a text interpolation update.
	OpKindInterpolateText
	// OpKindBinding is a property, attribute, style or class binding update.
	OpKindBinding
	// OpKindListener is the creation of an event listener.
	OpKindListener
	// OpKindProjection is a content projection slot.
	OpKindProjection
	// OpKindExtractedAttribute is a static attribute captured for the
	// element's constant array.
	OpKindExtractedAttribute
	// OpKindConditional is the update dispatch for an if/switch block.
	OpKindConditional
	// OpKindRepeaterCreate is the creation of a repeater (for loop).
	OpKindRepeaterCreate
	// OpKindRepeater is the update dispatch for a repeater.
	OpKindRepeater
	// OpKindDefer is the creation of a deferred block.
	OpKindDefer
	// OpKindDeferOn is a declarative trigger of a deferred block.
	OpKindDeferOn
	// OpKindDeferWhen is an expression-driven trigger of a deferred block.
	OpKindDeferWhen
	// OpKindI18nStart opens an i18n block.
	OpKindI18nStart
	// OpKindI18nEnd closes an i18n block.
	OpKindI18nEnd
	// OpKindI18nAttributes groups the translated attributes of one element.
	OpKindI18nAttributes
	// OpKindIcuStart opens an ICU.
	OpKindIcuStart
	// OpKindIcuEnd closes an ICU.
	OpKindIcuEnd
)

func (k OpKind) String() string {
	switch k {
	case OpKindListEnd:
		return "ListEnd"
	case OpKindStatement:
		return "Statement"
	case OpKindElementStart:
		return "ElementStart"
	case OpKindElementEnd:
		return "ElementEnd"
	case OpKindTemplate:
		return "Template"
	case OpKindText:
		return "Text"
	case OpKindInterpolateText:
		return "InterpolateText"
	case OpKindBinding:
		return "Binding"
	case OpKindListener:
		return "Listener"
	case OpKindProjection:
		return "Projection"
	case OpKindExtractedAttribute:
		return "ExtractedAttribute"
	case OpKindConditional:
		return "Conditional"
	case OpKindRepeaterCreate:
		return "RepeaterCreate"
	case OpKindRepeater:
		return "Repeater"
	case OpKindDefer:
		return "Defer"
	case OpKindDeferOn:
		return "DeferOn"
	case OpKindDeferWhen:
		return "DeferWhen"
	case OpKindI18nStart:
		return "I18nStart"
	case OpKindI18nEnd:
		return "I18nEnd"
	case OpKindI18nAttributes:
		return "I18nAttributes"
	case OpKindIcuStart:
		return "IcuStart"
	case OpKindIcuEnd:
		return "IcuEnd"
	}
	return "Unknown"
}

// CompatibilityMode selects which generation style the lowering should
// match. TemplateDefinitionBuilder reproduces the legacy generator's
// behavior bit for bit, including its known quirks.
type CompatibilityMode int

const (
	CompatibilityModeNormal CompatibilityMode = iota
	CompatibilityModeTemplateDefinitionBuilder
)

// BindingKind distinguishes the different kinds of bindings.
type BindingKind int

const (
	// BindingKindAttribute is a static attribute.
	BindingKindAttribute BindingKind = iota
	// BindingKindClassName is a class binding.
	BindingKindClassName
	// BindingKindStyleProperty is a style binding.
	BindingKindStyleProperty
	// BindingKindProperty is a property binding.
	BindingKindProperty
	// BindingKindTemplate is a binding targeting a structural directive on a
	// template.
	BindingKindTemplate
	// BindingKindI18n is an attribute whose value is an i18n message.
	BindingKindI18n
	// BindingKindLegacyAnimation is a legacy animation binding.
	BindingKindLegacyAnimation
)

func (k BindingKind) String() string {
	switch k {
	case BindingKindAttribute:
		return "Attribute"
	case BindingKindClassName:
		return "ClassName"
	case BindingKindStyleProperty:
		return "StyleProperty"
	case BindingKindProperty:
		return "Property"
	case BindingKindTemplate:
		return "Template"
	case BindingKindI18n:
		return "I18n"
	case BindingKindLegacyAnimation:
		return "LegacyAnimation"
	}
	return "Unknown"
}

// Namespace is the element namespace.
type Namespace int

const (
	NamespaceHTML Namespace = iota
	NamespaceSVG
	NamespaceMath
)

// TemplateKind records what kind of structure a template op materializes.
type TemplateKind int

const (
	// TemplateKindNgTemplate is an explicit `<ng-template>` element.
	TemplateKindNgTemplate TemplateKind = iota
	// TemplateKindStructural is a template implied by a structural directive.
	TemplateKindStructural
	// TemplateKindBlock is a template created by a control-flow block.
	TemplateKindBlock
)

// DeferTriggerKind distinguishes the defer trigger variants.
type DeferTriggerKind int

const (
	DeferTriggerKindIdle DeferTriggerKind = iota
	DeferTriggerKindImmediate
	DeferTriggerKindTimer
	DeferTriggerKindHover
	DeferTriggerKindInteraction
	DeferTriggerKindViewport
)

func (k DeferTriggerKind) String() string {
	switch k {
	case DeferTriggerKindIdle:
		return "Idle"
	case DeferTriggerKindImmediate:
		return "Immediate"
	case DeferTriggerKindTimer:
		return "Timer"
	case DeferTriggerKindHover:
		return "Hover"
	case DeferTriggerKindInteraction:
		return "Interaction"
	case DeferTriggerKindViewport:
		return "Viewport"
	}
	return "Unknown"
}
