package ir

import (
	"tplc-go/packages/compiler/core"
	"tplc-go/packages/compiler/i18n"
	"tplc-go/packages/compiler/output"
	"tplc-go/packages/compiler/util"
)

// LocalRef is a local reference declared on an element or template,
// e.g. `<div #foo>`.
type LocalRef struct {
	// Name is the name the reference is declared as.
	Name string
	// Target is the target of the reference, an empty string for the element
	// itself.
	Target string
}

// ElementOrContainerOpBase carries the fields shared by all operations that
// materialize an element-like structure.
type ElementOrContainerOpBase struct {
	OpBase
	Xref XrefId
	// Handle is the slot this structure occupies at runtime.
	Handle *SlotHandle
	// NumSlotsUsed is the number of runtime slots this op consumes.
	NumSlotsUsed int
	// Attributes is assigned when the element's attributes are collected
	// into the component's consts array, in a later phase.
	Attributes *ConstIndex
	// LocalRefs are the local references declared on this structure.
	LocalRefs []*LocalRef
	// NonBindable is whether the structure is inside an ngNonBindable
	// context.
	NonBindable     bool
	StartSourceSpan *util.ParseSourceSpan
	WholeSourceSpan *util.ParseSourceSpan
}

// GetXref returns the op's xref.
func (e *ElementOrContainerOpBase) GetXref() XrefId { return e.Xref }

// SetXref sets the op's xref.
func (e *ElementOrContainerOpBase) SetXref(xref XrefId) { e.Xref = xref }

// ElementStartOp marks the creation of an element, which may have child
// operations up to the matching ElementEndOp.
type ElementStartOp struct {
	ElementOrContainerOpBase
	Tag             string
	Namespace       Namespace
	I18nPlaceholder *i18n.TagPlaceholder
}

// NewElementStartOp creates an ElementStartOp.
func NewElementStartOp(tag string, xref XrefId, namespace Namespace, i18nPlaceholder *i18n.TagPlaceholder, startSourceSpan, wholeSourceSpan *util.ParseSourceSpan) *ElementStartOp {
	return &ElementStartOp{
		ElementOrContainerOpBase: ElementOrContainerOpBase{
			Xref:            xref,
			Handle:          NewSlotHandle(),
			NumSlotsUsed:    1,
			StartSourceSpan: startSourceSpan,
			WholeSourceSpan: wholeSourceSpan,
		},
		Tag:             tag,
		Namespace:       namespace,
		I18nPlaceholder: i18nPlaceholder,
	}
}

func (o *ElementStartOp) GetKind() OpKind { return OpKindElementStart }

// ElementEndOp closes the structure opened by the matching ElementStartOp.
type ElementEndOp struct {
	OpBase
	Xref       XrefId
	SourceSpan *util.ParseSourceSpan
}

// NewElementEndOp creates an ElementEndOp.
func NewElementEndOp(xref XrefId, sourceSpan *util.ParseSourceSpan) *ElementEndOp {
	return &ElementEndOp{Xref: xref, SourceSpan: sourceSpan}
}

func (o *ElementEndOp) GetKind() OpKind { return OpKindElementEnd }

func (o *ElementEndOp) GetXref() XrefId { return o.Xref }

func (o *ElementEndOp) SetXref(xref XrefId) { o.Xref = xref }

// TemplateOp is the creation of an embedded view. The view's operations
// live in its own compilation unit; this op anchors the view in its parent.
type TemplateOp struct {
	ElementOrContainerOpBase
	// TemplateKind records whether the view came from an ng-template, a
	// structural directive or a control-flow block.
	TemplateKind TemplateKind
	// Tag is the tag name, nil for block-only templates.
	Tag *string
	// FunctionNameSuffix is a human-readable suffix used when naming the
	// view's generated function.
	FunctionNameSuffix string
	Namespace          Namespace
	// I18nPlaceholder is set when the template is referenced from an i18n
	// message: a *i18n.TagPlaceholder or *i18n.BlockPlaceholder.
	I18nPlaceholder i18n.I18nMeta
}

// NewTemplateOp creates a TemplateOp.
func NewTemplateOp(xref XrefId, templateKind TemplateKind, tag *string, functionNameSuffix string, namespace Namespace, i18nPlaceholder i18n.I18nMeta, startSourceSpan, wholeSourceSpan *util.ParseSourceSpan) *TemplateOp {
	return &TemplateOp{
		ElementOrContainerOpBase: ElementOrContainerOpBase{
			Xref:            xref,
			Handle:          NewSlotHandle(),
			NumSlotsUsed:    1,
			StartSourceSpan: startSourceSpan,
			WholeSourceSpan: wholeSourceSpan,
		},
		TemplateKind:       templateKind,
		Tag:                tag,
		FunctionNameSuffix: functionNameSuffix,
		Namespace:          namespace,
		I18nPlaceholder:    i18nPlaceholder,
	}
}

func (o *TemplateOp) GetKind() OpKind { return OpKindTemplate }

// TextOp is the creation of a static text node.
type TextOp struct {
	OpBase
	Xref   XrefId
	Handle *SlotHandle
	// InitialValue is the static initial text of the node.
	InitialValue string
	// IcuPlaceholder is the placeholder name, when the text is inside an
	// ICU.
	IcuPlaceholder *string
	SourceSpan     *util.ParseSourceSpan
}

// NewTextOp creates a TextOp.
func NewTextOp(xref XrefId, initialValue string, icuPlaceholder *string, sourceSpan *util.ParseSourceSpan) *TextOp {
	return &TextOp{
		Xref:           xref,
		Handle:         NewSlotHandle(),
		InitialValue:   initialValue,
		IcuPlaceholder: icuPlaceholder,
		SourceSpan:     sourceSpan,
	}
}

func (o *TextOp) GetKind() OpKind { return OpKindText }

func (o *TextOp) GetXref() XrefId { return o.Xref }

func (o *TextOp) SetXref(xref XrefId) { o.Xref = xref }

// ListenerOp is the creation of an event listener on an element or
// template.
type ListenerOp struct {
	OpBase
	// Target is the element or view the listener is attached to.
	Target     XrefId
	TargetSlot *SlotHandle
	// Name is the event name.
	Name string
	// Tag is the tag name of the element the listener targets, nil for
	// templates without one.
	Tag *string
	// HandlerOps are the statement operations of the handler body.
	HandlerOps *OpList
	// HandlerFnName is assigned when naming functions in a later phase.
	HandlerFnName *string
	// ConsumesDollarEvent is whether the handler reads `$event`.
	ConsumesDollarEvent bool
	// IsLegacyAnimationListener is whether the listener is for a legacy
	// animation event, in which case LegacyAnimationPhase is set.
	IsLegacyAnimationListener bool
	LegacyAnimationPhase      *string
	// EventTarget is an explicit listen target (window, document, body), if
	// any.
	EventTarget *string
	// HostListener is whether the listener came from a host binding.
	HostListener bool
	SourceSpan   *util.ParseSourceSpan
}

// NewListenerOp creates a ListenerOp.
func NewListenerOp(target XrefId, targetSlot *SlotHandle, name string, tag *string, handlerOps []Op, legacyAnimationPhase *string, eventTarget *string, hostListener bool, sourceSpan *util.ParseSourceSpan) *ListenerOp {
	handlerList := NewOpList()
	handlerList.PushAll(handlerOps)
	return &ListenerOp{
		Target:                    target,
		TargetSlot:                targetSlot,
		Name:                      name,
		Tag:                       tag,
		HandlerOps:                handlerList,
		IsLegacyAnimationListener: legacyAnimationPhase != nil,
		LegacyAnimationPhase:      legacyAnimationPhase,
		EventTarget:               eventTarget,
		HostListener:              hostListener,
		SourceSpan:                sourceSpan,
	}
}

func (o *ListenerOp) GetKind() OpKind { return OpKindListener }

func (o *ListenerOp) GetXref() XrefId { return o.Target }

func (o *ListenerOp) SetXref(xref XrefId) { o.Target = xref }

// ProjectionOp is the creation of a content projection slot.
type ProjectionOp struct {
	OpBase
	Xref   XrefId
	Handle *SlotHandle
	// Selector is the CSS selector the slot projects.
	Selector        string
	I18nPlaceholder *i18n.TagPlaceholder
	// FallbackView is the view rendered when nothing is projected, if any.
	FallbackView *XrefId
	SourceSpan   *util.ParseSourceSpan
}

// NewProjectionOp creates a ProjectionOp.
func NewProjectionOp(xref XrefId, selector string, i18nPlaceholder *i18n.TagPlaceholder, fallbackView *XrefId, sourceSpan *util.ParseSourceSpan) *ProjectionOp {
	return &ProjectionOp{
		Xref:            xref,
		Handle:          NewSlotHandle(),
		Selector:        selector,
		I18nPlaceholder: i18nPlaceholder,
		FallbackView:    fallbackView,
		SourceSpan:      sourceSpan,
	}
}

func (o *ProjectionOp) GetKind() OpKind { return OpKindProjection }

func (o *ProjectionOp) GetXref() XrefId { return o.Xref }

func (o *ProjectionOp) SetXref(xref XrefId) { o.Xref = xref }

// ExtractedAttributeOp is a static attribute or attribute-like binding
// captured for the target's constant array.
type ExtractedAttributeOp struct {
	OpBase
	// Target is the element or template the attribute belongs to.
	Target XrefId
	// BindingKind is the kind of binding represented by this attribute.
	BindingKind BindingKind
	// Namespace is the attribute's namespace, if any.
	Namespace *string
	Name      string
	// Expression is the attribute's value, nil when the attribute has no
	// value or the value lives in an update op.
	Expression output.OutputExpression
	// I18nMessage is set for attributes with translated values.
	I18nMessage *i18n.Message
	// SecurityContext is the security classification of the attribute.
	SecurityContext []core.SecurityContext
}

// NewExtractedAttributeOp creates an ExtractedAttributeOp.
func NewExtractedAttributeOp(target XrefId, bindingKind BindingKind, namespace *string, name string, expression output.OutputExpression, i18nMessage *i18n.Message, securityContext []core.SecurityContext) *ExtractedAttributeOp {
	return &ExtractedAttributeOp{
		Target:          target,
		BindingKind:     bindingKind,
		Namespace:       namespace,
		Name:            name,
		Expression:      expression,
		I18nMessage:     i18nMessage,
		SecurityContext: securityContext,
	}
}

func (o *ExtractedAttributeOp) GetKind() OpKind { return OpKindExtractedAttribute }

func (o *ExtractedAttributeOp) GetXref() XrefId { return o.Target }

func (o *ExtractedAttributeOp) SetXref(xref XrefId) { o.Target = xref }

// RepeaterVarNames are the context variable names available inside a
// repeater view. DollarIndex holds every name that aliases the index,
// including the per-view disambiguated internal name.
type RepeaterVarNames struct {
	DollarIndex    map[string]bool
	DollarImplicit string
}

// RepeaterCreateOp is the creation of a repeater (@for loop) view.
type RepeaterCreateOp struct {
	ElementOrContainerOpBase
	// EmptyView is the view displayed when the collection is empty, if any.
	EmptyView *XrefId
	// Track is the loop's tracking expression.
	Track output.OutputExpression
	// VarNames are the context variable names for the repeated view.
	VarNames *RepeaterVarNames
	// Tag is the tag name inferred for the repeated view's root, if any.
	Tag *string
	// EmptyTag is the tag name inferred for the empty view's root, if any.
	EmptyTag           *string
	FunctionNameSuffix string
	// I18nPlaceholder is the i18n metadata of the main block, if any.
	I18nPlaceholder *i18n.BlockPlaceholder
	// EmptyI18nPlaceholder is the i18n metadata of the empty block, if any.
	EmptyI18nPlaceholder *i18n.BlockPlaceholder
}

// NewRepeaterCreateOp creates a RepeaterCreateOp.
func NewRepeaterCreateOp(primaryView XrefId, emptyView *XrefId, tag *string, track output.OutputExpression, varNames *RepeaterVarNames, emptyTag *string, i18nPlaceholder, emptyI18nPlaceholder *i18n.BlockPlaceholder, startSourceSpan, wholeSourceSpan *util.ParseSourceSpan) *RepeaterCreateOp {
	numSlotsUsed := 2
	if emptyView != nil {
		numSlotsUsed = 3
	}
	return &RepeaterCreateOp{
		ElementOrContainerOpBase: ElementOrContainerOpBase{
			Xref:            primaryView,
			Handle:          NewSlotHandle(),
			NumSlotsUsed:    numSlotsUsed,
			StartSourceSpan: startSourceSpan,
			WholeSourceSpan: wholeSourceSpan,
		},
		EmptyView:            emptyView,
		Track:                track,
		VarNames:             varNames,
		Tag:                  tag,
		EmptyTag:             emptyTag,
		FunctionNameSuffix:   "For",
		I18nPlaceholder:      i18nPlaceholder,
		EmptyI18nPlaceholder: emptyI18nPlaceholder,
	}
}

func (o *RepeaterCreateOp) GetKind() OpKind { return OpKindRepeaterCreate }

// DeferOp is the creation of a deferred block, anchored on its main view.
type DeferOp struct {
	OpBase
	Xref   XrefId
	Handle *SlotHandle
	// MainView is the view containing the deferred content.
	MainView XrefId
	MainSlot *SlotHandle
	// PlaceholderView, LoadingView and ErrorView are the optional companion
	// views, with their slots.
	PlaceholderView *XrefId
	PlaceholderSlot *SlotHandle
	LoadingView     *XrefId
	LoadingSlot     *SlotHandle
	ErrorView       *XrefId
	ErrorSlot       *SlotHandle
	// PlaceholderMinimumTime is the placeholder's `minimum` parameter in ms.
	PlaceholderMinimumTime *int
	// LoadingMinimumTime and LoadingAfterTime are the loading section's
	// `minimum`/`after` parameters in ms.
	LoadingMinimumTime *int
	LoadingAfterTime   *int
	// ResolverFn resolves the block's deferred dependencies.
	ResolverFn   output.OutputExpression
	NumSlotsUsed int
	SourceSpan   *util.ParseSourceSpan
}

// NewDeferOp creates a DeferOp.
func NewDeferOp(xref XrefId, mainView XrefId, mainSlot *SlotHandle, resolverFn output.OutputExpression, sourceSpan *util.ParseSourceSpan) *DeferOp {
	return &DeferOp{
		Xref:         xref,
		Handle:       NewSlotHandle(),
		MainView:     mainView,
		MainSlot:     mainSlot,
		ResolverFn:   resolverFn,
		NumSlotsUsed: 2,
		SourceSpan:   sourceSpan,
	}
}

func (o *DeferOp) GetKind() OpKind { return OpKindDefer }

func (o *DeferOp) GetXref() XrefId { return o.Xref }

func (o *DeferOp) SetXref(xref XrefId) { o.Xref = xref }

// DeferTrigger is the closed union of lowered defer trigger variants.
type DeferTrigger interface {
	GetDeferTriggerKind() DeferTriggerKind
}

// DeferTriggerWithTargetBase is embedded by triggers that reference another
// element by name. The target is resolved to a concrete element in a later
// phase; this phase only records the name.
type DeferTriggerWithTargetBase struct {
	// TargetName is the name of the trigger element, nil for the implicit
	// placeholder target.
	TargetName *string
	// TargetXref, TargetSlot, TargetView and TargetSlotViewSteps are filled
	// in when the target is resolved.
	TargetXref          *XrefId
	TargetSlot          *SlotHandle
	TargetView          *XrefId
	TargetSlotViewSteps *int
}

// DeferIdleTrigger fires when the browser goes idle.
type DeferIdleTrigger struct{}

func (t *DeferIdleTrigger) GetDeferTriggerKind() DeferTriggerKind { return DeferTriggerKindIdle }

// DeferImmediateTrigger fires immediately after creation.
type DeferImmediateTrigger struct{}

func (t *DeferImmediateTrigger) GetDeferTriggerKind() DeferTriggerKind {
	return DeferTriggerKindImmediate
}

// DeferTimerTrigger fires after a fixed delay in milliseconds.
type DeferTimerTrigger struct {
	Delay int
}

func (t *DeferTimerTrigger) GetDeferTriggerKind() DeferTriggerKind { return DeferTriggerKindTimer }

// DeferHoverTrigger fires when a target element is hovered.
type DeferHoverTrigger struct {
	DeferTriggerWithTargetBase
}

func (t *DeferHoverTrigger) GetDeferTriggerKind() DeferTriggerKind { return DeferTriggerKindHover }

// DeferInteractionTrigger fires when a target element is interacted with.
type DeferInteractionTrigger struct {
	DeferTriggerWithTargetBase
}

func (t *DeferInteractionTrigger) GetDeferTriggerKind() DeferTriggerKind {
	return DeferTriggerKindInteraction
}

// DeferViewportTrigger fires when a target element enters the viewport.
type DeferViewportTrigger struct {
	DeferTriggerWithTargetBase
}

func (t *DeferViewportTrigger) GetDeferTriggerKind() DeferTriggerKind {
	return DeferTriggerKindViewport
}

// DeferOnOp is a declarative trigger of a deferred block.
type DeferOnOp struct {
	OpBase
	// Defer is the DeferOp the trigger belongs to.
	Defer   XrefId
	Trigger DeferTrigger
	// Prefetch is whether the trigger prefetches dependencies instead of
	// rendering the block.
	Prefetch   bool
	SourceSpan *util.ParseSourceSpan
}

// NewDeferOnOp creates a DeferOnOp.
func NewDeferOnOp(deferXref XrefId, trigger DeferTrigger, prefetch bool, sourceSpan *util.ParseSourceSpan) *DeferOnOp {
	return &DeferOnOp{Defer: deferXref, Trigger: trigger, Prefetch: prefetch, SourceSpan: sourceSpan}
}

func (o *DeferOnOp) GetKind() OpKind { return OpKindDeferOn }

func (o *DeferOnOp) GetXref() XrefId { return o.Defer }

func (o *DeferOnOp) SetXref(xref XrefId) { o.Defer = xref }

// I18nStartOp opens an i18n block.
type I18nStartOp struct {
	OpBase
	Xref   XrefId
	Handle *SlotHandle
	// Message is the i18n message of the block.
	Message *i18n.Message
	// Root is the xref of the root i18n block this op belongs to; equal to
	// Xref unless the block is nested.
	Root       XrefId
	SourceSpan *util.ParseSourceSpan
}

// NewI18nStartOp creates an I18nStartOp. A nil root marks the op as its own
// root.
func NewI18nStartOp(xref XrefId, message *i18n.Message, root *XrefId, sourceSpan *util.ParseSourceSpan) *I18nStartOp {
	rootXref := xref
	if root != nil {
		rootXref = *root
	}
	return &I18nStartOp{
		Xref:       xref,
		Handle:     NewSlotHandle(),
		Message:    message,
		Root:       rootXref,
		SourceSpan: sourceSpan,
	}
}

func (o *I18nStartOp) GetKind() OpKind { return OpKindI18nStart }

func (o *I18nStartOp) GetXref() XrefId { return o.Xref }

func (o *I18nStartOp) SetXref(xref XrefId) { o.Xref = xref }

// I18nEndOp closes an i18n block.
type I18nEndOp struct {
	OpBase
	Xref       XrefId
	SourceSpan *util.ParseSourceSpan
}

// NewI18nEndOp creates an I18nEndOp.
func NewI18nEndOp(xref XrefId, sourceSpan *util.ParseSourceSpan) *I18nEndOp {
	return &I18nEndOp{Xref: xref, SourceSpan: sourceSpan}
}

func (o *I18nEndOp) GetKind() OpKind { return OpKindI18nEnd }

func (o *I18nEndOp) GetXref() XrefId { return o.Xref }

func (o *I18nEndOp) SetXref(xref XrefId) { o.Xref = xref }

// I18nAttributesOp groups the translated attribute bindings of one element.
type I18nAttributesOp struct {
	OpBase
	Xref   XrefId
	Handle *SlotHandle
	// Target is the element whose attributes are being translated.
	Target XrefId
}

// NewI18nAttributesOp creates an I18nAttributesOp.
func NewI18nAttributesOp(xref XrefId, target XrefId) *I18nAttributesOp {
	return &I18nAttributesOp{Xref: xref, Handle: NewSlotHandle(), Target: target}
}

func (o *I18nAttributesOp) GetKind() OpKind { return OpKindI18nAttributes }

func (o *I18nAttributesOp) GetXref() XrefId { return o.Xref }

func (o *I18nAttributesOp) SetXref(xref XrefId) { o.Xref = xref }

// IcuStartOp opens an ICU.
type IcuStartOp struct {
	OpBase
	Xref XrefId
	// Message is the single-ICU i18n message of this ICU.
	Message *i18n.Message
	// MessagePlaceholder is the placeholder the ICU occupies in its
	// enclosing message.
	MessagePlaceholder string
	SourceSpan         *util.ParseSourceSpan
}

// NewIcuStartOp creates an IcuStartOp.
func NewIcuStartOp(xref XrefId, message *i18n.Message, messagePlaceholder string, sourceSpan *util.ParseSourceSpan) *IcuStartOp {
	return &IcuStartOp{
		Xref:               xref,
		Message:            message,
		MessagePlaceholder: messagePlaceholder,
		SourceSpan:         sourceSpan,
	}
}

func (o *IcuStartOp) GetKind() OpKind { return OpKindIcuStart }

func (o *IcuStartOp) GetXref() XrefId { return o.Xref }

func (o *IcuStartOp) SetXref(xref XrefId) { o.Xref = xref }

// IcuEndOp closes an ICU.
type IcuEndOp struct {
	OpBase
	Xref XrefId
}

// NewIcuEndOp creates an IcuEndOp.
func NewIcuEndOp(xref XrefId) *IcuEndOp {
	return &IcuEndOp{Xref: xref}
}

func (o *IcuEndOp) GetKind() OpKind { return OpKindIcuEnd }

func (o *IcuEndOp) GetXref() XrefId { return o.Xref }

func (o *IcuEndOp) SetXref(xref XrefId) { o.Xref = xref }
