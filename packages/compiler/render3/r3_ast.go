package render3

import (
	"tplc-go/packages/compiler/core"
	"tplc-go/packages/compiler/expression_parser"
	"tplc-go/packages/compiler/i18n"
	"tplc-go/packages/compiler/util"
)

// Node is a node of the parsed template AST. The set of implementations is
// closed; consumers dispatch with exhaustive type switches.
type Node interface {
	SourceSpan() *util.ParseSourceSpan
	isR3Node()
}

// AttributeNode is the union of static and bound attributes, used for
// structural template attribute lists.
type AttributeNode interface {
	Node
	isAttributeNode()
}

// Comment is an HTML comment.
type Comment struct {
	Value string
	Span  *util.ParseSourceSpan
}

func (c *Comment) SourceSpan() *util.ParseSourceSpan { return c.Span }
func (c *Comment) isR3Node()                         {}

// Text is a literal text node.
type Text struct {
	Value string
	Span  *util.ParseSourceSpan
}

func (t *Text) SourceSpan() *util.ParseSourceSpan { return t.Span }
func (t *Text) isR3Node()                         {}

// BoundText is a text node containing interpolated expressions.
type BoundText struct {
	Value expression_parser.AST
	Span  *util.ParseSourceSpan
	I18n  i18n.I18nMeta
}

func (t *BoundText) SourceSpan() *util.ParseSourceSpan { return t.Span }
func (t *BoundText) isR3Node()                         {}

// TextAttribute is a static attribute with a literal string value.
type TextAttribute struct {
	Name      string
	Value     string
	Span      *util.ParseSourceSpan
	KeySpan   *util.ParseSourceSpan
	ValueSpan *util.ParseSourceSpan
	I18n      i18n.I18nMeta
}

func (a *TextAttribute) SourceSpan() *util.ParseSourceSpan { return a.Span }
func (a *TextAttribute) isR3Node()                         {}
func (a *TextAttribute) isAttributeNode()                  {}

// BoundAttribute is a dynamic property, attribute, class, style or legacy
// animation binding.
type BoundAttribute struct {
	Name            string
	Type            expression_parser.BindingType
	SecurityContext []core.SecurityContext
	Value           expression_parser.AST
	Unit            *string
	Span            *util.ParseSourceSpan
	KeySpan         *util.ParseSourceSpan
	ValueSpan       *util.ParseSourceSpan
	I18n            i18n.I18nMeta
}

func (a *BoundAttribute) SourceSpan() *util.ParseSourceSpan { return a.Span }
func (a *BoundAttribute) isR3Node()                         {}
func (a *BoundAttribute) isAttributeNode()                  {}

// BoundEvent is an event binding. Phase is only set for legacy animation
// events; Target only for regular events with an explicit target qualifier.
type BoundEvent struct {
	Name        string
	Type        expression_parser.ParsedEventType
	Handler     expression_parser.AST
	Target      *string
	Phase       *string
	Span        *util.ParseSourceSpan
	HandlerSpan *util.ParseSourceSpan
	KeySpan     *util.ParseSourceSpan
}

func (e *BoundEvent) SourceSpan() *util.ParseSourceSpan { return e.Span }
func (e *BoundEvent) isR3Node()                         {}

// Element is an HTML element with its bindings and children.
type Element struct {
	Name            string
	Attributes      []*TextAttribute
	Inputs          []*BoundAttribute
	Outputs         []*BoundEvent
	References      []*Reference
	Children        []Node
	I18n            i18n.I18nMeta
	IsSelfClosing   bool
	Span            *util.ParseSourceSpan
	StartSourceSpan *util.ParseSourceSpan
	EndSourceSpan   *util.ParseSourceSpan
}

func (e *Element) SourceSpan() *util.ParseSourceSpan { return e.Span }
func (e *Element) isR3Node()                         {}

// Template is an ng-template element or a structural-directive-implied
// template. TagName is nil for block-only templates. TemplateAttrs holds the
// bindings that target the structural directive itself.
type Template struct {
	TagName         *string
	Attributes      []*TextAttribute
	Inputs          []*BoundAttribute
	Outputs         []*BoundEvent
	TemplateAttrs   []AttributeNode
	Variables       []*Variable
	References      []*Reference
	Children        []Node
	I18n            i18n.I18nMeta
	Span            *util.ParseSourceSpan
	StartSourceSpan *util.ParseSourceSpan
	EndSourceSpan   *util.ParseSourceSpan
}

func (t *Template) SourceSpan() *util.ParseSourceSpan { return t.Span }
func (t *Template) isR3Node()                         {}

// Content is an ng-content projection slot. Non-comment children act as
// fallback content when nothing is projected.
type Content struct {
	Selector      string
	Attributes    []*TextAttribute
	Children      []Node
	I18n          i18n.I18nMeta
	IsSelfClosing bool
	Span          *util.ParseSourceSpan
}

func (c *Content) SourceSpan() *util.ParseSourceSpan { return c.Span }
func (c *Content) isR3Node()                         {}

// Variable is a `let-x="y"` context variable declaration on a template.
type Variable struct {
	Name      string
	Value     string
	Span      *util.ParseSourceSpan
	KeySpan   *util.ParseSourceSpan
	ValueSpan *util.ParseSourceSpan
}

func (v *Variable) SourceSpan() *util.ParseSourceSpan { return v.Span }
func (v *Variable) isR3Node()                         {}

// Reference is a `#ref` local reference declaration.
type Reference struct {
	Name      string
	Value     string
	Span      *util.ParseSourceSpan
	KeySpan   *util.ParseSourceSpan
	ValueSpan *util.ParseSourceSpan
}

func (r *Reference) SourceSpan() *util.ParseSourceSpan { return r.Span }
func (r *Reference) isR3Node()                         {}

// IfBlock is an `@if` block with its `@else if`/`@else` branches.
type IfBlock struct {
	Branches        []*IfBlockBranch
	Span            *util.ParseSourceSpan
	StartSourceSpan *util.ParseSourceSpan
	EndSourceSpan   *util.ParseSourceSpan
	NameSpan        *util.ParseSourceSpan
}

func (b *IfBlock) SourceSpan() *util.ParseSourceSpan { return b.Span }
func (b *IfBlock) isR3Node()                         {}

// IfBlockBranch is one branch of an `@if` block. A nil Expression marks the
// `@else` branch.
type IfBlockBranch struct {
	Expression      expression_parser.AST
	ExpressionAlias *Variable
	Children        []Node
	I18n            i18n.I18nMeta
	Span            *util.ParseSourceSpan
	StartSourceSpan *util.ParseSourceSpan
}

func (b *IfBlockBranch) SourceSpan() *util.ParseSourceSpan { return b.Span }
func (b *IfBlockBranch) isR3Node()                         {}

// SwitchBlock is an `@switch` block.
type SwitchBlock struct {
	Expression      expression_parser.AST
	Cases           []*SwitchBlockCase
	Span            *util.ParseSourceSpan
	StartSourceSpan *util.ParseSourceSpan
}

func (b *SwitchBlock) SourceSpan() *util.ParseSourceSpan { return b.Span }
func (b *SwitchBlock) isR3Node()                         {}

// SwitchBlockCase is one `@case` (or `@default`, with nil Expression) of an
// `@switch` block.
type SwitchBlockCase struct {
	Expression      expression_parser.AST
	Children        []Node
	I18n            i18n.I18nMeta
	Span            *util.ParseSourceSpan
	StartSourceSpan *util.ParseSourceSpan
}

func (c *SwitchBlockCase) SourceSpan() *util.ParseSourceSpan { return c.Span }
func (c *SwitchBlockCase) isR3Node()                         {}

// ForLoopBlock is an `@for` block.
type ForLoopBlock struct {
	Item             *Variable
	ContextVariables []*Variable
	TrackBy          *expression_parser.ASTWithSource
	Expression       *expression_parser.ASTWithSource
	Children         []Node
	Empty            *ForLoopBlockEmpty
	I18n             i18n.I18nMeta
	Span             *util.ParseSourceSpan
	StartSourceSpan  *util.ParseSourceSpan
	MainBlockSpan    *util.ParseSourceSpan
}

func (b *ForLoopBlock) SourceSpan() *util.ParseSourceSpan { return b.Span }
func (b *ForLoopBlock) isR3Node()                         {}

// ForLoopBlockEmpty is the `@empty` section of an `@for` block.
type ForLoopBlockEmpty struct {
	Children        []Node
	I18n            i18n.I18nMeta
	Span            *util.ParseSourceSpan
	StartSourceSpan *util.ParseSourceSpan
}

func (b *ForLoopBlockEmpty) SourceSpan() *util.ParseSourceSpan { return b.Span }
func (b *ForLoopBlockEmpty) isR3Node()                         {}

// DeferredTrigger is the closed union of `@defer` trigger declarations.
type DeferredTrigger interface {
	SourceSpan() *util.ParseSourceSpan
	isDeferredTrigger()
}

// BoundDeferredTrigger is a `when <expr>` trigger.
type BoundDeferredTrigger struct {
	Value expression_parser.AST
	Span  *util.ParseSourceSpan
}

func (t *BoundDeferredTrigger) SourceSpan() *util.ParseSourceSpan { return t.Span }
func (t *BoundDeferredTrigger) isDeferredTrigger()                {}

// IdleDeferredTrigger is an `on idle` trigger.
type IdleDeferredTrigger struct {
	Span *util.ParseSourceSpan
}

func (t *IdleDeferredTrigger) SourceSpan() *util.ParseSourceSpan { return t.Span }
func (t *IdleDeferredTrigger) isDeferredTrigger()                {}

// ImmediateDeferredTrigger is an `on immediate` trigger.
type ImmediateDeferredTrigger struct {
	Span *util.ParseSourceSpan
}

func (t *ImmediateDeferredTrigger) SourceSpan() *util.ParseSourceSpan { return t.Span }
func (t *ImmediateDeferredTrigger) isDeferredTrigger()                {}

// TimerDeferredTrigger is an `on timer(<delay>)` trigger. Delay is in
// milliseconds.
type TimerDeferredTrigger struct {
	Delay int
	Span  *util.ParseSourceSpan
}

func (t *TimerDeferredTrigger) SourceSpan() *util.ParseSourceSpan { return t.Span }
func (t *TimerDeferredTrigger) isDeferredTrigger()                {}

// HoverDeferredTrigger is an `on hover(<ref>)` trigger. Reference names the
// target element; resolving it to a concrete element happens later.
type HoverDeferredTrigger struct {
	Reference *string
	Span      *util.ParseSourceSpan
}

func (t *HoverDeferredTrigger) SourceSpan() *util.ParseSourceSpan { return t.Span }
func (t *HoverDeferredTrigger) isDeferredTrigger()                {}

// InteractionDeferredTrigger is an `on interaction(<ref>)` trigger.
type InteractionDeferredTrigger struct {
	Reference *string
	Span      *util.ParseSourceSpan
}

func (t *InteractionDeferredTrigger) SourceSpan() *util.ParseSourceSpan { return t.Span }
func (t *InteractionDeferredTrigger) isDeferredTrigger()                {}

// ViewportDeferredTrigger is an `on viewport(<ref>)` trigger.
type ViewportDeferredTrigger struct {
	Reference *string
	Span      *util.ParseSourceSpan
}

func (t *ViewportDeferredTrigger) SourceSpan() *util.ParseSourceSpan { return t.Span }
func (t *ViewportDeferredTrigger) isDeferredTrigger()                {}

// DeferredBlockTriggers groups the triggers declared on one `@defer` block.
type DeferredBlockTriggers struct {
	When        *BoundDeferredTrigger
	Idle        *IdleDeferredTrigger
	Immediate   *ImmediateDeferredTrigger
	Timer       *TimerDeferredTrigger
	Hover       *HoverDeferredTrigger
	Interaction *InteractionDeferredTrigger
	Viewport    *ViewportDeferredTrigger
}

// DeferredBlock is an `@defer` block with its optional companion sections.
type DeferredBlock struct {
	Children         []Node
	Triggers         DeferredBlockTriggers
	PrefetchTriggers DeferredBlockTriggers
	Placeholder      *DeferredBlockPlaceholder
	Loading          *DeferredBlockLoading
	Error            *DeferredBlockError
	I18n             i18n.I18nMeta
	Span             *util.ParseSourceSpan
	StartSourceSpan  *util.ParseSourceSpan
	MainBlockSpan    *util.ParseSourceSpan
}

func (b *DeferredBlock) SourceSpan() *util.ParseSourceSpan { return b.Span }
func (b *DeferredBlock) isR3Node()                         {}

// DeferredBlockPlaceholder is the `@placeholder` section of a `@defer`
// block. MinimumTime is in milliseconds.
type DeferredBlockPlaceholder struct {
	Children    []Node
	MinimumTime *int
	I18n        i18n.I18nMeta
	Span        *util.ParseSourceSpan
}

func (b *DeferredBlockPlaceholder) SourceSpan() *util.ParseSourceSpan { return b.Span }
func (b *DeferredBlockPlaceholder) isR3Node()                         {}

// DeferredBlockLoading is the `@loading` section of a `@defer` block.
// AfterTime and MinimumTime are in milliseconds.
type DeferredBlockLoading struct {
	Children    []Node
	AfterTime   *int
	MinimumTime *int
	I18n        i18n.I18nMeta
	Span        *util.ParseSourceSpan
}

func (b *DeferredBlockLoading) SourceSpan() *util.ParseSourceSpan { return b.Span }
func (b *DeferredBlockLoading) isR3Node()                         {}

// DeferredBlockError is the `@error` section of a `@defer` block.
type DeferredBlockError struct {
	Children []Node
	I18n     i18n.I18nMeta
	Span     *util.ParseSourceSpan
}

func (b *DeferredBlockError) SourceSpan() *util.ParseSourceSpan { return b.Span }
func (b *DeferredBlockError) isR3Node()                         {}

// IcuEntry is one named variable or placeholder of an ICU, in declaration
// order. The value is a *Text or *BoundText node.
type IcuEntry struct {
	Name  string
	Value Node
}

// Icu is an ICU pluralization/selection expression in the template.
type Icu struct {
	Vars         []IcuEntry
	Placeholders []IcuEntry
	I18n         i18n.I18nMeta
	Span         *util.ParseSourceSpan
}

func (i *Icu) SourceSpan() *util.ParseSourceSpan { return i.Span }
func (i *Icu) isR3Node()                         {}
