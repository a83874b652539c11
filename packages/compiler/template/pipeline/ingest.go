package pipeline

import (
	"fmt"
	"strings"

	"tplc-go/packages/compiler/constant"
	"tplc-go/packages/compiler/core"
	"tplc-go/packages/compiler/expression_parser"
	i18npkg "tplc-go/packages/compiler/i18n"
	"tplc-go/packages/compiler/ml_parser"
	"tplc-go/packages/compiler/output"
	"tplc-go/packages/compiler/render3"
	"tplc-go/packages/compiler/schema"
	"tplc-go/packages/compiler/template/pipeline/ir"
	"tplc-go/packages/compiler/util"
)

const NG_TEMPLATE_TAG_NAME = "ng-template"

var domSchema = schema.NewDomElementSchemaRegistry()

// IngestComponent processes a template AST and convert it to a
// ComponentCompilationJob in the intermediate representation.
func IngestComponent(componentName string, template []render3.Node, constantPool *constant.ConstantPool, compatibility ir.CompatibilityMode, mode TemplateCompilationMode, deferMeta R3ComponentDeferMetadata, allDeferrableDepsFn *output.ReadVarExpr) (*ComponentCompilationJob, error) {
	job := NewComponentCompilationJob(componentName, constantPool, compatibility, mode, deferMeta, allDeferrableDepsFn)
	if err := ingest(func() { ingestNodes(job.Root, template) }); err != nil {
		return nil, err
	}
	return job, nil
}

// HostAttribute is one literal attribute of a host binding set.
type HostAttribute struct {
	Name  string
	Value output.OutputExpression
}

// HostBindingInput is the set of host binding declarations of a directive,
// not derived from a template AST.
type HostBindingInput struct {
	ComponentName     string
	ComponentSelector string
	Properties        []*expression_parser.ParsedProperty
	Attributes        []*HostAttribute
	Events            []*expression_parser.ParsedEvent
}

// IngestHostBinding processes a host binding set and convert it to a
// HostBindingCompilationJob in the intermediate representation.
func IngestHostBinding(input *HostBindingInput, compatibility ir.CompatibilityMode, constantPool *constant.ConstantPool) (*HostBindingCompilationJob, error) {
	job := NewHostBindingCompilationJob(input.ComponentName, constantPool, compatibility, TemplateCompilationModeFull)
	err := ingest(func() {
		for _, property := range input.Properties {
			ingestHostProperty(job, property, input.ComponentSelector)
		}
		for _, attr := range input.Attributes {
			ingestHostAttribute(job, attr.Name, attr.Value, input.ComponentSelector)
		}
		for _, event := range input.Events {
			ingestHostEvent(job, event)
		}
	})
	if err != nil {
		return nil, err
	}
	return job, nil
}

// ingest runs fn, converting a fatal ingestion panic into an error. The job
// under construction must be discarded on error.
func ingest(fn func()) (err error) {
	defer recoverIngestError(&err)
	fn()
	return nil
}

func ingestHostProperty(job *HostBindingCompilationJob, property *expression_parser.ParsedProperty, selector string) {
	name := property.Name
	bindingKind := ir.BindingKindProperty
	// The compiler treats host property bindings with the `attr.` prefix as
	// attribute bindings no matter how they were declared.
	if strings.HasPrefix(name, "attr.") {
		name = name[len("attr."):]
		bindingKind = ir.BindingKindAttribute
	}
	if property.IsLegacyAnimation() {
		bindingKind = ir.BindingKindLegacyAnimation
	}
	securityContexts := filterNoneSecurityContexts(
		schema.CalcPossibleSecurityContexts(domSchema, selector, name, bindingKind == ir.BindingKindAttribute))
	expression, interpolation := convertAstWithInterpolation(job.CompilationJob, property.Expression, nil)
	if interpolation != nil {
		job.Root.Update.Push(ir.NewInterpolationBindingOp(job.Root.Xref, bindingKind, name, interpolation, nil, securityContexts, false, false, nil, nil, property.SourceSpan))
	} else {
		job.Root.Update.Push(ir.NewBindingOp(job.Root.Xref, bindingKind, name, expression, nil, securityContexts, false, false, nil, nil, property.SourceSpan))
	}
}

func ingestHostAttribute(job *HostBindingCompilationJob, name string, value output.OutputExpression, selector string) {
	securityContexts := filterNoneSecurityContexts(
		schema.CalcPossibleSecurityContexts(domSchema, selector, name, true))
	attrBinding := ir.NewBindingOp(job.Root.Xref, ir.BindingKindAttribute, name, value, nil, securityContexts, true, false, nil, nil, nil)
	job.Root.Update.Push(attrBinding)
}

func ingestHostEvent(job *HostBindingCompilationJob, event *expression_parser.ParsedEvent) {
	var phase, target *string
	if event.Type == expression_parser.ParsedEventTypeLegacyAnimation {
		if event.TargetOrPhase == nil {
			fatalf("Animation listener should have a phase")
		}
		phase = event.TargetOrPhase
	} else {
		target = event.TargetOrPhase
	}
	handlerOps := makeListenerHandlerOps(job.CompilationJob, event.Handler, event.HandlerSpan)
	eventBinding := ir.NewListenerOp(job.Root.Xref, ir.NewSlotHandle(), event.Name, nil, handlerOps, phase, target, true, event.SourceSpan)
	job.Root.Create.Push(eventBinding)
}

// ingestNodes ingests the nodes of a template AST into the given
// ViewCompilationUnit, appending operations in document order.
func ingestNodes(unit *ViewCompilationUnit, template []render3.Node) {
	for _, node := range template {
		switch n := node.(type) {
		case *render3.Element:
			ingestElement(unit, n)
		case *render3.Template:
			ingestTemplate(unit, n)
		case *render3.Content:
			ingestContent(unit, n)
		case *render3.Text:
			ingestText(unit, n, nil)
		case *render3.BoundText:
			ingestBoundText(unit, n, nil)
		case *render3.IfBlock:
			ingestIfBlock(unit, n)
		case *render3.SwitchBlock:
			ingestSwitchBlock(unit, n)
		case *render3.DeferredBlock:
			ingestDeferBlock(unit, n)
		case *render3.Icu:
			ingestIcu(unit, n)
		case *render3.ForLoopBlock:
			ingestForBlock(unit, n)
		default:
			fatalf("Unsupported template node: %T", node)
		}
	}
}

// ingestElement ingests an element AST from the template into the given
// ViewCompilationUnit.
func ingestElement(unit *ViewCompilationUnit, element *render3.Element) {
	if element.I18n != nil {
		switch element.I18n.(type) {
		case *i18npkg.Message, *i18npkg.TagPlaceholder:
		default:
			fatalf("Unhandled i18n metadata type for element: %T", element.I18n)
		}
	}

	id := unit.Job.AllocateXrefId()
	namespacePrefix, tagNameWithoutNamespace := ml_parser.SplitNsName(element.Name, false)

	var i18nPlaceholder *i18npkg.TagPlaceholder
	if placeholder, ok := element.I18n.(*i18npkg.TagPlaceholder); ok {
		i18nPlaceholder = placeholder
	}
	startOp := ir.NewElementStartOp(tagNameWithoutNamespace, id, namespaceFor(namespacePrefix), i18nPlaceholder, element.StartSourceSpan, element.Span)
	unit.Create.Push(startOp)

	ingestElementBindings(unit, startOp, element)
	ingestReferences(&startOp.ElementOrContainerOpBase, element.References)

	// Start i18n, if needed, goes after the element create and bindings, but
	// before the nodes.
	var i18nBlockId *ir.XrefId
	if message, ok := element.I18n.(*i18npkg.Message); ok {
		id := unit.Job.AllocateXrefId()
		i18nBlockId = &id
		unit.Create.Push(ir.NewI18nStartOp(*i18nBlockId, message, nil, element.StartSourceSpan))
	}

	ingestNodes(unit, element.Children)

	// The source span for the end op is typically the element closing tag.
	// But if no closing tag exists, such as in `<input>`, we use the start
	// source span instead.
	endSpan := element.EndSourceSpan
	if endSpan == nil {
		endSpan = element.StartSourceSpan
	}
	endOp := ir.NewElementEndOp(id, endSpan)
	unit.Create.Push(endOp)

	// If i18n is attached to this element, end it.
	if i18nBlockId != nil {
		unit.Create.InsertBefore(endOp, ir.NewI18nEndOp(*i18nBlockId, endSpan))
	}
}

// ingestTemplate ingests an ng-template node from the AST into the given
// ViewCompilationUnit.
func ingestTemplate(unit *ViewCompilationUnit, tmpl *render3.Template) {
	if tmpl.I18n != nil {
		switch tmpl.I18n.(type) {
		case *i18npkg.Message, *i18npkg.TagPlaceholder:
		default:
			fatalf("Unhandled i18n metadata type for template: %T", tmpl.I18n)
		}
	}

	childView := unit.Job.AllocateView(unit.Xref)

	var tagNameWithoutNamespace *string
	namespace := ir.NamespaceHTML
	if tmpl.TagName != nil {
		namespacePrefix, strippedTag := ml_parser.SplitNsName(*tmpl.TagName, false)
		tagNameWithoutNamespace = &strippedTag
		namespace = namespaceFor(namespacePrefix)
	}

	functionNameSuffix := ""
	if tagNameWithoutNamespace != nil {
		functionNameSuffix = PrefixWithNamespace(*tagNameWithoutNamespace, namespace)
	}

	isPlainTemplate := tmpl.TagName != nil && ml_parser.IsNgTemplate(*tmpl.TagName)
	templateKind := ir.TemplateKindStructural
	if isPlainTemplate {
		templateKind = ir.TemplateKindNgTemplate
	}

	var i18nPlaceholder i18npkg.I18nMeta
	if placeholder, ok := tmpl.I18n.(*i18npkg.TagPlaceholder); ok {
		i18nPlaceholder = placeholder
	}

	templateOp := ir.NewTemplateOp(childView.Xref, templateKind, tagNameWithoutNamespace, functionNameSuffix, namespace, i18nPlaceholder, tmpl.StartSourceSpan, tmpl.Span)
	unit.Create.Push(templateOp)

	ingestTemplateBindings(unit, templateOp, tmpl, templateKind)
	ingestReferences(&templateOp.ElementOrContainerOpBase, tmpl.References)
	ingestNodes(childView, tmpl.Children)

	for _, variable := range tmpl.Variables {
		value := variable.Value
		if value == "" {
			value = "$implicit"
		}
		childView.ContextVariables[variable.Name] = value
	}

	// If this is a plain template and there is an i18n message associated
	// with it, insert i18n start and end ops around the child view's whole
	// create list. There is no single enclosing element op to bracket in
	// this case.
	if isPlainTemplate {
		if message, ok := tmpl.I18n.(*i18npkg.Message); ok {
			id := unit.Job.AllocateXrefId()
			endSpan := tmpl.EndSourceSpan
			if endSpan == nil {
				endSpan = tmpl.StartSourceSpan
			}
			childView.Create.InsertAfter(childView.Create.Head(), ir.NewI18nStartOp(id, message, nil, tmpl.StartSourceSpan))
			childView.Create.InsertBefore(childView.Create.Tail(), ir.NewI18nEndOp(id, endSpan))
		}
	}
}

// ingestContent ingests a content (ng-content) node from the AST into the
// given ViewCompilationUnit.
func ingestContent(unit *ViewCompilationUnit, content *render3.Content) {
	if content.I18n != nil {
		if _, ok := content.I18n.(*i18npkg.TagPlaceholder); !ok {
			fatalf("Unhandled i18n metadata type for content: %T", content.I18n)
		}
	}

	// Content projection slots can have fallback content, but don't capture
	// fallback that is only made up of empty text nodes and comments.
	var fallbackView *ViewCompilationUnit
	if hasFallbackContent(content.Children) {
		fallbackView = unit.Job.AllocateView(unit.Xref)
		ingestNodes(fallbackView, content.Children)
	}

	id := unit.Job.AllocateXrefId()
	var fallbackXref *ir.XrefId
	if fallbackView != nil {
		xref := fallbackView.Xref
		fallbackXref = &xref
	}
	var i18nPlaceholder *i18npkg.TagPlaceholder
	if placeholder, ok := content.I18n.(*i18npkg.TagPlaceholder); ok {
		i18nPlaceholder = placeholder
	}
	op := ir.NewProjectionOp(id, content.Selector, i18nPlaceholder, fallbackXref, content.Span)
	for _, attr := range content.Attributes {
		securityContexts := securityContextsFor("ng-content", attr.Name, true)
		unit.Update.Push(ir.NewBindingOp(op.Xref, ir.BindingKindAttribute, attr.Name, output.NewLiteralExpr(attr.Value, nil, nil), nil, securityContexts, true, false, nil, asMessage(attr.I18n), attr.Span))
	}
	unit.Create.Push(op)
}

func hasFallbackContent(children []render3.Node) bool {
	for _, child := range children {
		switch c := child.(type) {
		case *render3.Comment:
			continue
		case *render3.Text:
			if strings.TrimSpace(c.Value) == "" {
				continue
			}
		}
		return true
	}
	return false
}

// ingestText ingests a literal text node from the AST into the given
// ViewCompilationUnit.
func ingestText(unit *ViewCompilationUnit, text *render3.Text, icuPlaceholder *string) {
	unit.Create.Push(ir.NewTextOp(unit.Job.AllocateXrefId(), text.Value, icuPlaceholder, text.Span))
}

// ingestBoundText ingests an interpolated text node from the AST into the
// given ViewCompilationUnit.
func ingestBoundText(unit *ViewCompilationUnit, text *render3.BoundText, icuPlaceholder *string) {
	value := astOf(text.Value)
	interpolation, ok := value.(*expression_parser.Interpolation)
	if !ok {
		fatalf("AssertionError: expected Interpolation for BoundText node, got %T", value)
	}

	var i18nPlaceholders []string
	if text.I18n != nil {
		container, isContainer := text.I18n.(*i18npkg.Container)
		if !isContainer {
			fatalf("Unhandled i18n metadata type for text interpolation: %T", text.I18n)
		}
		for _, node := range container.Children {
			if placeholder, isPlaceholder := node.(*i18npkg.Placeholder); isPlaceholder {
				i18nPlaceholders = append(i18nPlaceholders, placeholder.Name)
			}
		}
		if len(i18nPlaceholders) != len(interpolation.Expressions) {
			fatalf("AssertionError: expected %d i18n placeholders to match the interpolation expression count, but got %d", len(interpolation.Expressions), len(i18nPlaceholders))
		}
	}

	// The legacy generator does not generate source spans for the
	// individual sub-expressions of an interpolation.
	baseSourceSpan := interpolationBaseSpan(unit.Job.Compatibility, text.Span)

	textXref := unit.Job.AllocateXrefId()
	unit.Create.Push(ir.NewTextOp(textXref, "", icuPlaceholder, text.Span))
	expressions := make([]output.OutputExpression, len(interpolation.Expressions))
	for i, expr := range interpolation.Expressions {
		expressions[i] = convertAst(expr, unit.Job.CompilationJob, baseSourceSpan)
	}
	unit.Update.Push(ir.NewInterpolateTextOp(textXref, ir.NewInterpolation(interpolation.Strings, expressions, i18nPlaceholders), text.Span))
}

// ingestIfBlock ingests an @if block into the given ViewCompilationUnit.
// Each branch gets a child view; one conditional op in the parent, keyed off
// the first branch, dispatches between them.
func ingestIfBlock(unit *ViewCompilationUnit, ifBlock *render3.IfBlock) {
	if len(ifBlock.Branches) == 0 {
		fatalf("AssertionError: expected @if to have at least one branch")
	}
	var firstXref *ir.XrefId
	var conditions []*ir.ConditionalCaseExpr
	for i, ifCase := range ifBlock.Branches {
		cView := unit.Job.AllocateView(unit.Xref)

		// Only the first branch can be used for projection, because the
		// conditional uses the container of the first branch as the
		// insertion point for all branches.
		var tagName *string
		if i == 0 {
			tagName = ingestControlFlowInsertionPoint(unit, cView.Xref, ifCase.Children)
		}
		if ifCase.ExpressionAlias != nil {
			cView.ContextVariables[ifCase.ExpressionAlias.Name] = ir.CTX_REF
		}

		var i18nPlaceholder i18npkg.I18nMeta
		if ifCase.I18n != nil {
			placeholder, ok := ifCase.I18n.(*i18npkg.BlockPlaceholder)
			if !ok {
				fatalf("Unhandled i18n metadata type for if block: %T", ifCase.I18n)
			}
			i18nPlaceholder = placeholder
		}

		templateOp := ir.NewTemplateOp(cView.Xref, ir.TemplateKindBlock, tagName, "Conditional", ir.NamespaceHTML, i18nPlaceholder, ifCase.StartSourceSpan, ifCase.Span)
		unit.Create.Push(templateOp)

		if firstXref == nil {
			xref := cView.Xref
			firstXref = &xref
		}

		var caseExpr output.OutputExpression
		if ifCase.Expression != nil {
			caseExpr = convertAst(ifCase.Expression, unit.Job.CompilationJob, nil)
		}
		conditions = append(conditions, ir.NewConditionalCaseExpr(caseExpr, templateOp.Xref, templateOp.Handle, ifCase.ExpressionAlias))

		ingestNodes(cView, ifCase.Children)
	}
	unit.Update.Push(ir.NewConditionalOp(*firstXref, conditions, ifBlock.Span))
}

// ingestSwitchBlock ingests an @switch block into the given
// ViewCompilationUnit. A switch with no cases can never render content and
// ingests to nothing.
func ingestSwitchBlock(unit *ViewCompilationUnit, switchBlock *render3.SwitchBlock) {
	if len(switchBlock.Cases) == 0 {
		return
	}

	var firstXref *ir.XrefId
	var conditions []*ir.ConditionalCaseExpr
	for _, switchCase := range switchBlock.Cases {
		cView := unit.Job.AllocateView(unit.Xref)

		var i18nPlaceholder i18npkg.I18nMeta
		if switchCase.I18n != nil {
			placeholder, ok := switchCase.I18n.(*i18npkg.BlockPlaceholder)
			if !ok {
				fatalf("Unhandled i18n metadata type for switch block: %T", switchCase.I18n)
			}
			i18nPlaceholder = placeholder
		}

		templateOp := ir.NewTemplateOp(cView.Xref, ir.TemplateKindBlock, nil, "Case", ir.NamespaceHTML, i18nPlaceholder, switchCase.StartSourceSpan, switchCase.Span)
		unit.Create.Push(templateOp)

		if firstXref == nil {
			xref := cView.Xref
			firstXref = &xref
		}

		// A case with no expression is the default case; its guard is nil.
		var caseExpr output.OutputExpression
		if switchCase.Expression != nil {
			caseExpr = output.NewBinaryOperatorExpr(
				output.BinaryOperatorIdentical,
				convertAst(switchBlock.Expression, unit.Job.CompilationJob, nil),
				convertAst(switchCase.Expression, unit.Job.CompilationJob, switchBlock.StartSourceSpan),
				nil, switchCase.StartSourceSpan)
		}
		conditions = append(conditions, ir.NewConditionalCaseExpr(caseExpr, templateOp.Xref, templateOp.Handle, nil))

		ingestNodes(cView, switchCase.Children)
	}
	conditional := ir.NewConditionalOp(*firstXref, conditions, switchBlock.Span)
	conditional.ContextValue = convertAst(switchBlock.Expression, unit.Job.CompilationJob, nil)
	unit.Update.Push(conditional)
}

func ingestDeferView(unit *ViewCompilationUnit, suffix string, i18nMeta i18npkg.I18nMeta, children []render3.Node, sourceSpan *util.ParseSourceSpan) *ir.TemplateOp {
	var i18nPlaceholder i18npkg.I18nMeta
	if i18nMeta != nil {
		placeholder, ok := i18nMeta.(*i18npkg.BlockPlaceholder)
		if !ok {
			fatalf("Unhandled i18n metadata type for defer block: %T", i18nMeta)
		}
		i18nPlaceholder = placeholder
	}
	secondaryView := unit.Job.AllocateView(unit.Xref)
	ingestNodes(secondaryView, children)
	templateOp := ir.NewTemplateOp(secondaryView.Xref, ir.TemplateKindBlock, nil, "Defer"+suffix, ir.NamespaceHTML, i18nPlaceholder, sourceSpan, sourceSpan)
	unit.Create.Push(templateOp)
	return templateOp
}

// ingestDeferBlock ingests an @defer block into the given
// ViewCompilationUnit: the main view, the optional loading, placeholder and
// error views, and both trigger passes.
func ingestDeferBlock(unit *ViewCompilationUnit, deferBlock *render3.DeferredBlock) {
	var ownResolverFn output.OutputExpression
	if unit.Job.DeferMeta.Mode == DeferBlockDepsEmitModePerBlock {
		// Dependency resolution is keyed by block node identity.
		resolverFn, ok := unit.Job.DeferMeta.Blocks[deferBlock]
		if !ok {
			fatalf("AssertionError: unable to find a dependency function for this deferred block")
		}
		ownResolverFn = resolverFn
	}

	main := ingestDeferView(unit, "", deferBlock.I18n, deferBlock.Children, deferBlock.Span)
	var loading, placeholder, errorView *ir.TemplateOp
	if deferBlock.Loading != nil {
		loading = ingestDeferView(unit, "Loading", deferBlock.Loading.I18n, deferBlock.Loading.Children, deferBlock.Loading.Span)
	}
	if deferBlock.Placeholder != nil {
		placeholder = ingestDeferView(unit, "Placeholder", deferBlock.Placeholder.I18n, deferBlock.Placeholder.Children, deferBlock.Placeholder.Span)
	}
	if deferBlock.Error != nil {
		errorView = ingestDeferView(unit, "Error", deferBlock.Error.I18n, deferBlock.Error.Children, deferBlock.Error.Span)
	}

	deferXref := unit.Job.AllocateXrefId()
	deferOp := ir.NewDeferOp(deferXref, main.Xref, main.Handle, ownResolverFn, deferBlock.Span)
	if placeholder != nil {
		xref := placeholder.Xref
		deferOp.PlaceholderView = &xref
		deferOp.PlaceholderSlot = placeholder.Handle
		deferOp.PlaceholderMinimumTime = deferBlock.Placeholder.MinimumTime
	}
	if loading != nil {
		xref := loading.Xref
		deferOp.LoadingView = &xref
		deferOp.LoadingSlot = loading.Handle
		deferOp.LoadingMinimumTime = deferBlock.Loading.MinimumTime
		deferOp.LoadingAfterTime = deferBlock.Loading.AfterTime
	}
	if errorView != nil {
		xref := errorView.Xref
		deferOp.ErrorView = &xref
		deferOp.ErrorSlot = errorView.Handle
	}
	unit.Create.Push(deferOp)

	// Trigger ingestion runs twice, once for the prefetch triggers and once
	// for the regular ones.
	ingestDeferTriggers(unit, deferXref, deferBlock.PrefetchTriggers, true)
	regularTriggers := ingestDeferTriggers(unit, deferXref, deferBlock.Triggers, false)

	// If no regular defer triggers were provided, default to `idle`.
	if regularTriggers == 0 {
		unit.Create.Push(ir.NewDeferOnOp(deferXref, &ir.DeferIdleTrigger{}, false, deferBlock.Span))
	}
}

func ingestDeferTriggers(unit *ViewCompilationUnit, deferXref ir.XrefId, triggers render3.DeferredBlockTriggers, prefetch bool) int {
	count := 0
	if triggers.Idle != nil {
		unit.Create.Push(ir.NewDeferOnOp(deferXref, &ir.DeferIdleTrigger{}, prefetch, triggers.Idle.Span))
		count++
	}
	if triggers.Immediate != nil {
		unit.Create.Push(ir.NewDeferOnOp(deferXref, &ir.DeferImmediateTrigger{}, prefetch, triggers.Immediate.Span))
		count++
	}
	if triggers.Timer != nil {
		unit.Create.Push(ir.NewDeferOnOp(deferXref, &ir.DeferTimerTrigger{Delay: triggers.Timer.Delay}, prefetch, triggers.Timer.Span))
		count++
	}
	if triggers.Hover != nil {
		trigger := &ir.DeferHoverTrigger{}
		trigger.TargetName = triggers.Hover.Reference
		unit.Create.Push(ir.NewDeferOnOp(deferXref, trigger, prefetch, triggers.Hover.Span))
		count++
	}
	if triggers.Interaction != nil {
		trigger := &ir.DeferInteractionTrigger{}
		trigger.TargetName = triggers.Interaction.Reference
		unit.Create.Push(ir.NewDeferOnOp(deferXref, trigger, prefetch, triggers.Interaction.Span))
		count++
	}
	if triggers.Viewport != nil {
		trigger := &ir.DeferViewportTrigger{}
		trigger.TargetName = triggers.Viewport.Reference
		unit.Create.Push(ir.NewDeferOnOp(deferXref, trigger, prefetch, triggers.Viewport.Span))
		count++
	}
	if triggers.When != nil {
		if _, ok := astOf(triggers.When.Value).(*expression_parser.Interpolation); ok {
			// An interpolation is not a valid defer trigger.
			fatalf("Unexpected interpolation in defer block when trigger")
		}
		expr := convertAst(triggers.When.Value, unit.Job.CompilationJob, triggers.When.Span)
		unit.Update.Push(ir.NewDeferWhenOp(deferXref, expr, prefetch, triggers.When.Span))
		count++
	}
	return count
}

// ingestIcu ingests an ICU node. The node's i18n metadata must already be a
// message containing nothing but the ICU itself.
func ingestIcu(unit *ViewCompilationUnit, icu *render3.Icu) {
	message, ok := icu.I18n.(*i18npkg.Message)
	if !ok || !isSingleI18nIcu(message) {
		fatalf("Unhandled i18n metadata type for ICU: %T", icu.I18n)
	}
	icuNode := message.Nodes[0].(*i18npkg.Icu)

	xref := unit.Job.AllocateXrefId()
	unit.Create.Push(ir.NewIcuStartOp(xref, message, icuNode.ExpressionPlaceholder, nil))
	entries := make([]render3.IcuEntry, 0, len(icu.Vars)+len(icu.Placeholders))
	entries = append(entries, icu.Vars...)
	entries = append(entries, icu.Placeholders...)
	for _, entry := range entries {
		placeholder := entry.Name
		switch node := entry.Value.(type) {
		case *render3.BoundText:
			ingestBoundText(unit, node, &placeholder)
		case *render3.Text:
			ingestText(unit, node, &placeholder)
		default:
			fatalf("Unsupported ICU sub-node: %T", entry.Value)
		}
	}
	unit.Create.Push(ir.NewIcuEndOp(xref))
}

func isSingleI18nIcu(message *i18npkg.Message) bool {
	if len(message.Nodes) != 1 {
		return false
	}
	_, ok := message.Nodes[0].(*i18npkg.Icu)
	return ok
}

// ingestForBlock ingests an @for block into the given ViewCompilationUnit.
func ingestForBlock(unit *ViewCompilationUnit, forBlock *render3.ForLoopBlock) {
	repeaterView := unit.Job.AllocateView(unit.Xref)

	// We copy the legacy generator's scheme of creating names for `$index`
	// and `$count` that are suffixed with the view's xref, to disambiguate
	// which level of nested loop the derived aliases below refer to.
	indexName := fmt.Sprintf("ɵ$index_%d", repeaterView.Xref)
	countName := fmt.Sprintf("ɵ$count_%d", repeaterView.Xref)
	indexVarNames := map[string]bool{}

	// Set all the context variables and aliases available in the repeater.
	repeaterView.ContextVariables[forBlock.Item.Name] = forBlock.Item.Value
	repeaterView.ContextVariables[indexName] = "$index"
	repeaterView.ContextVariables[countName] = "$count"
	for _, variable := range forBlock.ContextVariables {
		switch variable.Value {
		case "$index":
			indexVarNames[variable.Name] = true
			repeaterView.ContextVariables[variable.Name] = variable.Value
		case "$count":
			repeaterView.ContextVariables[variable.Name] = variable.Value
		case "$first", "$last", "$even", "$odd":
			repeaterView.Aliases = append(repeaterView.Aliases, ir.NewAliasVariable(variable.Name, variable.Name, computedForLoopVariableExpression(variable.Value, indexName, countName)))
		default:
			fatalf("AssertionError: unknown for loop variable %s", variable.Value)
		}
	}

	if forBlock.TrackBy == nil {
		fatalf("AssertionError: expected @for to have a track expression")
	}
	track := convertAst(forBlock.TrackBy, unit.Job.CompilationJob, forBlock.Span)

	ingestNodes(repeaterView, forBlock.Children)

	var emptyView *ViewCompilationUnit
	var emptyTagName *string
	if forBlock.Empty != nil {
		emptyView = unit.Job.AllocateView(unit.Xref)
		ingestNodes(emptyView, forBlock.Empty.Children)
		emptyTagName = ingestControlFlowInsertionPoint(unit, emptyView.Xref, forBlock.Empty.Children)
	}

	varNames := &ir.RepeaterVarNames{DollarIndex: indexVarNames, DollarImplicit: forBlock.Item.Name}

	var i18nPlaceholder, emptyI18nPlaceholder *i18npkg.BlockPlaceholder
	if forBlock.I18n != nil {
		placeholder, ok := forBlock.I18n.(*i18npkg.BlockPlaceholder)
		if !ok {
			fatalf("AssertionError: Unhandled i18n metadata type for @for: %T", forBlock.I18n)
		}
		i18nPlaceholder = placeholder
	}
	if forBlock.Empty != nil && forBlock.Empty.I18n != nil {
		placeholder, ok := forBlock.Empty.I18n.(*i18npkg.BlockPlaceholder)
		if !ok {
			fatalf("AssertionError: Unhandled i18n metadata type for @empty: %T", forBlock.Empty.I18n)
		}
		emptyI18nPlaceholder = placeholder
	}

	tagName := ingestControlFlowInsertionPoint(unit, repeaterView.Xref, forBlock.Children)
	var emptyXref *ir.XrefId
	if emptyView != nil {
		xref := emptyView.Xref
		emptyXref = &xref
	}
	repeaterCreate := ir.NewRepeaterCreateOp(repeaterView.Xref, emptyXref, tagName, track, varNames, emptyTagName, i18nPlaceholder, emptyI18nPlaceholder, forBlock.StartSourceSpan, forBlock.Span)
	unit.Create.Push(repeaterCreate)

	collection := convertAst(forBlock.Expression, unit.Job.CompilationJob, forBlock.Span)
	unit.Update.Push(ir.NewRepeaterOp(repeaterCreate.Xref, collection, forBlock.Span))
}

// computedForLoopVariableExpression builds the expression for one of the
// derived loop variables, in terms of the loop's own disambiguated index
// and count variable names.
func computedForLoopVariableExpression(name, indexName, countName string) output.OutputExpression {
	index := func() output.OutputExpression { return ir.NewLexicalReadExpr(indexName) }
	count := func() output.OutputExpression { return ir.NewLexicalReadExpr(countName) }
	switch name {
	case "$first":
		return output.NewBinaryOperatorExpr(output.BinaryOperatorIdentical, index(), output.NewLiteralExpr(0, nil, nil), nil, nil)
	case "$last":
		lastIndex := output.NewBinaryOperatorExpr(output.BinaryOperatorMinus, count(), output.NewLiteralExpr(1, nil, nil), nil, nil)
		return output.NewBinaryOperatorExpr(output.BinaryOperatorIdentical, index(), lastIndex, nil, nil)
	case "$even":
		modulo := output.NewBinaryOperatorExpr(output.BinaryOperatorModulo, index(), output.NewLiteralExpr(2, nil, nil), nil, nil)
		return output.NewBinaryOperatorExpr(output.BinaryOperatorIdentical, modulo, output.NewLiteralExpr(0, nil, nil), nil, nil)
	case "$odd":
		modulo := output.NewBinaryOperatorExpr(output.BinaryOperatorModulo, index(), output.NewLiteralExpr(2, nil, nil), nil, nil)
		return output.NewBinaryOperatorExpr(output.BinaryOperatorNotIdentical, modulo, output.NewLiteralExpr(0, nil, nil), nil, nil)
	}
	fatalf("AssertionError: unknown derived loop variable %s", name)
	return nil
}

// ingestControlFlowInsertionPoint looks at the root nodes of a control-flow
// branch and infers a tag name and static attributes for the branch's
// generated template, to preserve content projection matching that depended
// on attributes living on the directive host element. Only a single root
// element, or single tag-named template, qualifies.
func ingestControlFlowInsertionPoint(unit *ViewCompilationUnit, xref ir.XrefId, children []render3.Node) *string {
	var rootElement *render3.Element
	var rootTemplate *render3.Template
	for _, child := range children {
		// Skip over comment nodes, it doesn't matter where they end up in
		// the DOM.
		if _, isComment := child.(*render3.Comment); isComment {
			continue
		}

		// We can only infer the tag name and attributes if there is a single
		// root node.
		if rootElement != nil || rootTemplate != nil {
			return nil
		}

		// Root nodes can only be elements or templates with a tag name
		// (e.g. `<div *foo></div>`).
		switch node := child.(type) {
		case *render3.Element:
			rootElement = node
		case *render3.Template:
			if node.TagName == nil {
				return nil
			}
			rootTemplate = node
		default:
			return nil
		}
	}

	if rootElement == nil && rootTemplate == nil {
		return nil
	}

	var attributes []*render3.TextAttribute
	var inputs []*render3.BoundAttribute
	var tagName string
	if rootElement != nil {
		attributes, inputs, tagName = rootElement.Attributes, rootElement.Inputs, rootElement.Name
	} else {
		attributes, inputs, tagName = rootTemplate.Attributes, rootTemplate.Inputs, *rootTemplate.TagName
	}

	// Collect the static attributes for content projection purposes.
	for _, attr := range attributes {
		securityContexts := securityContextsFor(NG_TEMPLATE_TAG_NAME, attr.Name, true)
		unit.Update.Push(ir.NewBindingOp(xref, ir.BindingKindAttribute, attr.Name, output.NewLiteralExpr(attr.Value, nil, nil), nil, securityContexts, true, false, nil, asMessage(attr.I18n), attr.Span))
	}

	// Also collect the inputs, since they participate in content projection
	// as well. Note that the outputs are deliberately not collected: the
	// legacy generator collected them too, but never passed them on.
	for _, input := range inputs {
		if input.Type == expression_parser.BindingTypeLegacyAnimation || input.Type == expression_parser.BindingTypeAttribute {
			continue
		}
		securityContexts := securityContextsFor(NG_TEMPLATE_TAG_NAME, input.Name, true)
		unit.Create.Push(ir.NewExtractedAttributeOp(xref, ir.BindingKindProperty, nil, input.Name, nil, nil, securityContexts))
	}

	// Don't pass along the `ng-template` tag name, since it would falsely
	// enable directive matching.
	if tagName == NG_TEMPLATE_TAG_NAME {
		return nil
	}
	return &tagName
}

// ingestElementBindings ingests all bindings of an element AST and adds
// them to the given ViewCompilationUnit.
func ingestElementBindings(unit *ViewCompilationUnit, op *ir.ElementStartOp, element *render3.Element) {
	var bindings []ir.Op
	i18nAttributeBindingNames := map[string]bool{}

	for _, attr := range element.Attributes {
		// Attribute literal bindings, such as `attr.foo="bar"`. They are
		// captured both as create-time extracted attributes and as
		// update-time bindings.
		securityContexts := securityContextsFor(element.Name, attr.Name, true)
		message := asMessage(attr.I18n)
		bindings = append(bindings,
			ir.NewExtractedAttributeOp(op.Xref, ir.BindingKindAttribute, nil, attr.Name, output.NewLiteralExpr(attr.Value, nil, nil), message, securityContexts),
			ir.NewBindingOp(op.Xref, ir.BindingKindAttribute, attr.Name, output.NewLiteralExpr(attr.Value, nil, nil), nil, securityContexts, true, false, nil, message, attr.Span))
		if attr.I18n != nil {
			i18nAttributeBindingNames[attr.Name] = true
		}
	}

	for _, input := range element.Inputs {
		if i18nAttributeBindingNames[input.Name] {
			fatalf("On component %s, the binding %s is both an i18n attribute and a property", unit.Job.ComponentName, input.Name)
		}
		// All dynamic bindings, both attribute and property bindings.
		kind, ok := BindingKinds[input.Type]
		if !ok {
			fatalf("Unsupported binding type for %s", input.Name)
		}
		message := asMessage(input.I18n)
		expression, interpolation := convertAstWithInterpolation(unit.Job.CompilationJob, input.Value, input.I18n)
		securityContexts := filterNoneSecurityContexts(input.SecurityContext)
		if interpolation != nil {
			bindings = append(bindings, ir.NewInterpolationBindingOp(op.Xref, kind, input.Name, interpolation, input.Unit, securityContexts, false, false, nil, message, input.Span))
		} else {
			bindings = append(bindings, ir.NewBindingOp(op.Xref, kind, input.Name, expression, input.Unit, securityContexts, false, false, nil, message, input.Span))
		}
	}

	pushBindings(unit, bindings)

	for _, event := range element.Outputs {
		if event.Type == expression_parser.ParsedEventTypeLegacyAnimation && event.Phase == nil {
			fatalf("Animation listener should have a phase")
		}
		tag := op.Tag
		handlerOps := makeListenerHandlerOps(unit.Job.CompilationJob, event.Handler, event.HandlerSpan)
		unit.Create.Push(ir.NewListenerOp(op.Xref, op.Handle, event.Name, &tag, handlerOps, event.Phase, event.Target, false, event.Span))
	}

	if anyBindingHasI18nMessage(bindings) {
		unit.Create.Push(ir.NewI18nAttributesOp(unit.Job.AllocateXrefId(), op.Xref))
	}
}

// ingestTemplateBindings ingests all bindings of a template AST and adds
// them to the given ViewCompilationUnit. Template attributes, which target
// the structural directive, are distinguished from regular attributes and
// inputs, which target the rendered inner element.
func ingestTemplateBindings(unit *ViewCompilationUnit, op *ir.TemplateOp, tmpl *render3.Template, templateKind ir.TemplateKind) {
	var bindings []ir.Op

	for _, attr := range tmpl.TemplateAttrs {
		switch a := attr.(type) {
		case *render3.TextAttribute:
			securityContexts := securityContextsFor(NG_TEMPLATE_TAG_NAME, a.Name, true)
			bindings = appendBinding(bindings, createTemplateBinding(unit, op.Xref, expression_parser.BindingTypeAttribute, a.Name, a.Value, nil, nil, securityContexts, true, templateKind, asMessage(a.I18n), a.Span))
		case *render3.BoundAttribute:
			bindings = appendBinding(bindings, createTemplateBinding(unit, op.Xref, a.Type, a.Name, "", a.Value, a.Unit, filterNoneSecurityContexts(a.SecurityContext), true, templateKind, asMessage(a.I18n), a.Span))
		}
	}

	for _, attr := range tmpl.Attributes {
		// Attribute literal bindings, such as `attr.foo="bar"`.
		securityContexts := securityContextsFor(NG_TEMPLATE_TAG_NAME, attr.Name, true)
		bindings = appendBinding(bindings, createTemplateBinding(unit, op.Xref, expression_parser.BindingTypeAttribute, attr.Name, attr.Value, nil, nil, securityContexts, false, templateKind, asMessage(attr.I18n), attr.Span))
	}

	for _, input := range tmpl.Inputs {
		// Dynamic bindings, both attribute and property bindings.
		bindings = appendBinding(bindings, createTemplateBinding(unit, op.Xref, input.Type, input.Name, "", input.Value, input.Unit, filterNoneSecurityContexts(input.SecurityContext), false, templateKind, asMessage(input.I18n), input.Span))
	}

	pushBindings(unit, bindings)

	for _, event := range tmpl.Outputs {
		if event.Type == expression_parser.ParsedEventTypeLegacyAnimation && event.Phase == nil {
			fatalf("Animation listener should have a phase")
		}
		handlerOps := makeListenerHandlerOps(unit.Job.CompilationJob, event.Handler, event.HandlerSpan)
		unit.Create.Push(ir.NewListenerOp(op.Xref, op.Handle, event.Name, op.Tag, handlerOps, event.Phase, event.Target, false, event.Span))
	}

	if anyBindingHasI18nMessage(bindings) {
		unit.Create.Push(ir.NewI18nAttributesOp(unit.Job.AllocateXrefId(), op.Xref))
	}
}

// createTemplateBinding creates the op, if any, for one template binding.
// Several legacy rules apply; see the quirk table in compatibility.go.
func createTemplateBinding(view *ViewCompilationUnit, xref ir.XrefId, bindingType expression_parser.BindingType, name string, textValue string, astValue expression_parser.AST, unit *string, securityContexts []core.SecurityContext, isStructuralTemplateAttribute bool, templateKind ir.TemplateKind, i18nMessage *i18npkg.Message, sourceSpan *util.ParseSourceSpan) ir.Op {
	isTextBinding := astValue == nil

	// If this is a structural template, then several kinds of bindings
	// should not result in an update instruction.
	if templateKind == ir.TemplateKindStructural {
		if !isStructuralTemplateAttribute {
			switch bindingType {
			case expression_parser.BindingTypeProperty, expression_parser.BindingTypeClass, expression_parser.BindingTypeStyle:
				// This binding only exists for later const extraction, and
				// is not an update instruction: it does not target the
				// template shell but the element the directive decorates.
				return ir.NewExtractedAttributeOp(xref, ir.BindingKindProperty, nil, name, nil, i18nMessage, securityContexts)
			}
		}
		if !isTextBinding && (bindingType == expression_parser.BindingTypeAttribute || bindingType == expression_parser.BindingTypeLegacyAnimation) {
			// Again, this binding does not really target the template shell.
			// In the case of non-text attribute or animation bindings, it
			// does not even show up in the constant tables, so it is dropped
			// entirely.
			return nil
		}
	}

	kind, ok := BindingKinds[bindingType]
	if !ok {
		fatalf("Unsupported binding type for %s", name)
	}
	if templateKind == ir.TemplateKindNgTemplate {
		// Dynamic attribute, class and style bindings on an explicit
		// ng-template do not make much sense, but the legacy generator
		// emitted property instructions for them, and so do we.
		if bindingType == expression_parser.BindingTypeClass || bindingType == expression_parser.BindingTypeStyle ||
			(bindingType == expression_parser.BindingTypeAttribute && !isTextBinding) {
			kind = ir.BindingKindProperty
		}
	}

	tk := templateKind
	if isTextBinding {
		return ir.NewBindingOp(xref, kind, name, output.NewLiteralExpr(textValue, nil, nil), unit, securityContexts, true, isStructuralTemplateAttribute, &tk, i18nMessage, sourceSpan)
	}
	expression, interpolation := convertAstWithInterpolation(view.Job.CompilationJob, astValue, i18nMessage)
	if interpolation != nil {
		return ir.NewInterpolationBindingOp(xref, kind, name, interpolation, unit, securityContexts, false, isStructuralTemplateAttribute, &tk, i18nMessage, sourceSpan)
	}
	return ir.NewBindingOp(xref, kind, name, expression, unit, securityContexts, false, isStructuralTemplateAttribute, &tk, i18nMessage, sourceSpan)
}

func appendBinding(bindings []ir.Op, op ir.Op) []ir.Op {
	if op == nil {
		return bindings
	}
	return append(bindings, op)
}

// pushBindings distributes collected binding ops to the unit's lists:
// extracted attributes to the create list, bindings to the update list,
// each preserving collection order.
func pushBindings(unit *ViewCompilationUnit, bindings []ir.Op) {
	for _, binding := range bindings {
		if binding.GetKind() == ir.OpKindExtractedAttribute {
			unit.Create.Push(binding)
		}
	}
	for _, binding := range bindings {
		if binding.GetKind() == ir.OpKindBinding {
			unit.Update.Push(binding)
		}
	}
}

// anyBindingHasI18nMessage reports whether an i18n attributes configuration
// op is required for the node's bindings.
func anyBindingHasI18nMessage(bindings []ir.Op) bool {
	for _, binding := range bindings {
		if bindingOp, ok := binding.(*ir.BindingOp); ok && bindingOp.I18nMessage != nil {
			return true
		}
	}
	return false
}

func ingestReferences(op *ir.ElementOrContainerOpBase, references []*render3.Reference) {
	for _, ref := range references {
		op.LocalRefs = append(op.LocalRefs, &ir.LocalRef{Name: ref.Name, Target: ref.Value})
	}
}

// makeListenerHandlerOps lowers an event handler into statement ops. Every
// expression of a comma-chain except the last becomes a standalone
// statement; the last becomes a return statement.
func makeListenerHandlerOps(job *CompilationJob, handler expression_parser.AST, handlerSpan *util.ParseSourceSpan) []ir.Op {
	handler = astOf(handler)
	var handlerExprs []expression_parser.AST
	if chain, ok := handler.(*expression_parser.Chain); ok {
		handlerExprs = chain.Expressions
	} else {
		handlerExprs = []expression_parser.AST{handler}
	}
	if len(handlerExprs) == 0 {
		fatalf("Expected listener to have non-empty expression list.")
	}

	expressions := make([]output.OutputExpression, len(handlerExprs))
	for i, expr := range handlerExprs {
		expressions[i] = convertAst(expr, job, handlerSpan)
	}

	var handlerOps []ir.Op
	for _, expr := range expressions[:len(expressions)-1] {
		handlerOps = append(handlerOps, ir.NewStatementOp(output.NewExpressionStatement(expr, expr.GetSourceSpan())))
	}
	returnExpr := expressions[len(expressions)-1]
	handlerOps = append(handlerOps, ir.NewStatementOp(output.NewReturnStatement(returnExpr, returnExpr.GetSourceSpan())))
	return handlerOps
}

func astOf(ast expression_parser.AST) expression_parser.AST {
	if astWithSource, ok := ast.(*expression_parser.ASTWithSource); ok {
		return astWithSource.AST
	}
	return ast
}

// asMessage asserts that the i18n metadata, if present, is a Message.
func asMessage(i18nMeta i18npkg.I18nMeta) *i18npkg.Message {
	if i18nMeta == nil {
		return nil
	}
	message, ok := i18nMeta.(*i18npkg.Message)
	if !ok {
		fatalf("Expected i18n meta to be a Message, but got: %T", i18nMeta)
	}
	return message
}

func namespaceFor(namespacePrefix string) ir.Namespace {
	if namespacePrefix == "" {
		return NamespaceForKey(nil)
	}
	return NamespaceForKey(&namespacePrefix)
}

// securityContextsFor looks up the security classification for a binding
// and discards it when it denotes no risk.
func securityContextsFor(tagName, name string, isAttribute bool) []core.SecurityContext {
	ctx := domSchema.SecurityContext(tagName, name, isAttribute)
	if ctx == core.SecurityContextNone {
		return nil
	}
	return []core.SecurityContext{ctx}
}

// filterNoneSecurityContexts drops the no-risk classification from a list
// of possible security contexts.
func filterNoneSecurityContexts(contexts []core.SecurityContext) []core.SecurityContext {
	var filtered []core.SecurityContext
	for _, ctx := range contexts {
		if ctx != core.SecurityContextNone {
			filtered = append(filtered, ctx)
		}
	}
	return filtered
}

// convertAstWithInterpolation lowers a binding value, which is either an
// expression AST or a literal string, into an output expression or an
// Interpolation. Sub-expressions of binding values carry no source spans,
// matching the legacy generator.
func convertAstWithInterpolation(job *CompilationJob, value interface{}, i18nMeta i18npkg.I18nMeta) (output.OutputExpression, *ir.Interpolation) {
	if astWithSource, ok := value.(*expression_parser.ASTWithSource); ok {
		value = astWithSource.AST
	}
	switch v := value.(type) {
	case *expression_parser.Interpolation:
		expressions := make([]output.OutputExpression, len(v.Expressions))
		for i, expr := range v.Expressions {
			expressions[i] = convertAst(expr, job, nil)
		}
		var placeholders []string
		if message := asMessage(i18nMeta); message != nil {
			for _, placeholder := range message.Placeholders {
				placeholders = append(placeholders, placeholder.Name)
			}
		}
		return nil, ir.NewInterpolation(v.Strings, expressions, placeholders)
	case expression_parser.AST:
		return convertAst(v, job, nil), nil
	case string:
		return output.NewLiteralExpr(v, nil, nil), nil
	}
	fatalf("Unsupported binding value: %T", value)
	return nil, nil
}

// convertAst lowers an expression AST node into an output expression,
// remapping relative parse spans through the base source span. A nil base
// span yields nil spans on the lowered expressions.
func convertAst(ast expression_parser.AST, job *CompilationJob, baseSourceSpan *util.ParseSourceSpan) output.OutputExpression {
	switch a := ast.(type) {
	case *expression_parser.ASTWithSource:
		return convertAst(a.AST, job, baseSourceSpan)

	case *expression_parser.PropertyRead:
		isThisReceiver := false
		if _, ok := a.Receiver.(*expression_parser.ThisReceiver); ok {
			isThisReceiver = true
		}
		// Whether this is an implicit receiver, *excluding* explicit reads
		// of `this`.
		isImplicitReceiver := false
		if _, ok := a.Receiver.(*expression_parser.ImplicitReceiver); ok {
			isImplicitReceiver = true
		}
		// An explicit `this` receiver is erased too, except for a couple of
		// names that must keep it. This mirrors the legacy scoping exactly;
		// see the quirk table in compatibility.go.
		if isImplicitReceiver || (isThisReceiver && !isSpecialThisName(a.Name)) {
			return ir.NewLexicalReadExpr(a.Name)
		}
		return output.NewReadPropExpr(convertAst(a.Receiver, job, baseSourceSpan), a.Name, nil, convertSourceSpan(a.Span(), baseSourceSpan))

	case *expression_parser.PropertyWrite:
		if expression_parser.IsImplicitReceiver(a.Receiver) {
			return output.NewWritePropExpr(ir.NewContextExpr(job.RootXref()), a.Name, convertAst(a.Value, job, baseSourceSpan), nil, convertSourceSpan(a.Span(), baseSourceSpan))
		}
		return output.NewWritePropExpr(convertAst(a.Receiver, job, baseSourceSpan), a.Name, convertAst(a.Value, job, baseSourceSpan), nil, convertSourceSpan(a.Span(), baseSourceSpan))

	case *expression_parser.KeyedWrite:
		if expression_parser.IsImplicitReceiver(a.Receiver) {
			return output.NewWriteKeyExpr(ir.NewContextExpr(job.RootXref()), convertAst(a.Key, job, baseSourceSpan), convertAst(a.Value, job, baseSourceSpan), nil, convertSourceSpan(a.Span(), baseSourceSpan))
		}
		return output.NewWriteKeyExpr(convertAst(a.Receiver, job, baseSourceSpan), convertAst(a.Key, job, baseSourceSpan), convertAst(a.Value, job, baseSourceSpan), nil, convertSourceSpan(a.Span(), baseSourceSpan))

	case *expression_parser.KeyedRead:
		return output.NewReadKeyExpr(convertAst(a.Receiver, job, baseSourceSpan), convertAst(a.Key, job, baseSourceSpan), nil, convertSourceSpan(a.Span(), baseSourceSpan))

	case *expression_parser.SafePropertyRead:
		return ir.NewSafePropertyReadExpr(convertAst(a.Receiver, job, baseSourceSpan), a.Name)

	case *expression_parser.SafeKeyedRead:
		return ir.NewSafeKeyedReadExpr(convertAst(a.Receiver, job, baseSourceSpan), convertAst(a.Key, job, baseSourceSpan), convertSourceSpan(a.Span(), baseSourceSpan))

	case *expression_parser.Call:
		if expression_parser.IsImplicitReceiver(a.Receiver) {
			fatalf("Unexpected ImplicitReceiver")
		}
		return output.NewInvokeFunctionExpr(convertAst(a.Receiver, job, baseSourceSpan), convertAll(a.Args, job, baseSourceSpan), nil, convertSourceSpan(a.Span(), baseSourceSpan), false)

	case *expression_parser.SafeCall:
		return ir.NewSafeInvokeFunctionExpr(convertAst(a.Receiver, job, baseSourceSpan), convertAll(a.Args, job, baseSourceSpan))

	case *expression_parser.BindingPipe:
		args := make([]output.OutputExpression, 0, len(a.Args)+1)
		args = append(args, convertAst(a.Exp, job, baseSourceSpan))
		args = append(args, convertAll(a.Args, job, baseSourceSpan)...)
		return ir.NewPipeBindingExpr(job.AllocateXrefId(), ir.NewSlotHandle(), a.Name, args)

	case *expression_parser.LiteralPrimitive:
		return output.NewLiteralExpr(a.Value, nil, convertSourceSpan(a.Span(), baseSourceSpan))

	case *expression_parser.LiteralArray:
		return output.NewLiteralArrayExpr(convertAll(a.Expressions, job, baseSourceSpan), nil, convertSourceSpan(a.Span(), baseSourceSpan))

	case *expression_parser.LiteralMap:
		entries := make([]*output.LiteralMapEntry, len(a.Keys))
		for i := range a.Keys {
			entries[i] = output.NewLiteralMapEntry(a.Keys[i].Key, convertAst(a.Values[i], job, baseSourceSpan), a.Keys[i].Quoted)
		}
		return output.NewLiteralMapExpr(entries, nil, convertSourceSpan(a.Span(), baseSourceSpan))

	case *expression_parser.Unary:
		switch a.Operator {
		case "+":
			return output.NewUnaryOperatorExpr(output.UnaryOperatorPlus, convertAst(a.Expr, job, baseSourceSpan), nil, convertSourceSpan(a.Span(), baseSourceSpan), false)
		case "-":
			return output.NewUnaryOperatorExpr(output.UnaryOperatorMinus, convertAst(a.Expr, job, baseSourceSpan), nil, convertSourceSpan(a.Span(), baseSourceSpan), false)
		}
		fatalf("AssertionError: unknown unary operator %s", a.Operator)

	case *expression_parser.Binary:
		operator, ok := BinaryOperators[a.Operation]
		if !ok {
			fatalf("AssertionError: unknown binary operator %s", a.Operation)
		}
		return output.NewBinaryOperatorExpr(operator, convertAst(a.Left, job, baseSourceSpan), convertAst(a.Right, job, baseSourceSpan), nil, convertSourceSpan(a.Span(), baseSourceSpan))

	case *expression_parser.Conditional:
		return output.NewConditionalExpr(convertAst(a.Condition, job, baseSourceSpan), convertAst(a.TrueExp, job, baseSourceSpan), convertAst(a.FalseExp, job, baseSourceSpan), nil, convertSourceSpan(a.Span(), baseSourceSpan))

	case *expression_parser.PrefixNot:
		return output.NewNotExpr(convertAst(a.Expression, job, baseSourceSpan), convertSourceSpan(a.Span(), baseSourceSpan))

	case *expression_parser.NonNullAssert:
		// A non-null assertion shouldn't impact generated instructions, so
		// it is dropped.
		return convertAst(a.Expression, job, baseSourceSpan)

	case *expression_parser.TypeofExpression:
		return output.NewTypeofExpr(convertAst(a.Expression, job, baseSourceSpan), nil, convertSourceSpan(a.Span(), baseSourceSpan))

	case *expression_parser.VoidExpression:
		return output.NewVoidExpr(convertAst(a.Expression, job, baseSourceSpan), nil, convertSourceSpan(a.Span(), baseSourceSpan))

	case *expression_parser.ParenthesizedExpression:
		return output.NewParenthesizedExpr(convertAst(a.Expression, job, baseSourceSpan), nil, convertSourceSpan(a.Span(), baseSourceSpan))

	case *expression_parser.ThisReceiver:
		// A bare `this` is a reference to the root context itself.
		return ir.NewContextExpr(job.RootXref())

	case *expression_parser.ImplicitReceiver:
		fatalf("AssertionError: Unexpected ImplicitReceiver")

	case *expression_parser.EmptyExpr:
		return ir.NewEmptyExpr(convertSourceSpan(a.Span(), baseSourceSpan))

	case *expression_parser.Chain:
		fatalf("AssertionError: Chain in unknown context")
	}

	fatalf("Unhandled expression type \"%T\" in file \"%s\"", ast, baseSourceSpanURL(baseSourceSpan))
	return nil
}

func convertAll(asts []expression_parser.AST, job *CompilationJob, baseSourceSpan *util.ParseSourceSpan) []output.OutputExpression {
	expressions := make([]output.OutputExpression, len(asts))
	for i, ast := range asts {
		expressions[i] = convertAst(ast, job, baseSourceSpan)
	}
	return expressions
}

// convertSourceSpan translates a relative parse span into a file source
// span by remapping it through the base span's start and full-start
// anchors. A nil base span yields a nil result.
func convertSourceSpan(span *expression_parser.ParseSpan, baseSourceSpan *util.ParseSourceSpan) *util.ParseSourceSpan {
	if span == nil || baseSourceSpan == nil {
		return nil
	}
	start := baseSourceSpan.Start.MoveBy(span.Start)
	end := baseSourceSpan.Start.MoveBy(span.End)
	fullStart := baseSourceSpan.FullStart.MoveBy(span.Start)
	return util.NewParseSourceSpan(start, end, fullStart, nil)
}

func baseSourceSpanURL(baseSourceSpan *util.ParseSourceSpan) string {
	if baseSourceSpan == nil || baseSourceSpan.Start == nil || baseSourceSpan.Start.File == nil {
		return ""
	}
	return baseSourceSpan.Start.File.URL
}
