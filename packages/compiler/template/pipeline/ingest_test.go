package pipeline

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tplc-go/packages/compiler/constant"
	"tplc-go/packages/compiler/core"
	"tplc-go/packages/compiler/expression_parser"
	i18npkg "tplc-go/packages/compiler/i18n"
	"tplc-go/packages/compiler/output"
	"tplc-go/packages/compiler/render3"
	"tplc-go/packages/compiler/template/pipeline/ir"
	"tplc-go/packages/compiler/util"
)

func ingestTestComponent(t *testing.T, nodes []render3.Node) *ComponentCompilationJob {
	t.Helper()
	job, err := IngestComponent("TestCmp", nodes, constant.NewConstantPool(), ir.CompatibilityModeNormal, TemplateCompilationModeFull, R3ComponentDeferMetadata{Mode: DeferBlockDepsEmitModePerComponent}, nil)
	if err != nil {
		t.Fatalf("IngestComponent: %v", err)
	}
	return job
}

func read(name string) *expression_parser.PropertyRead {
	return &expression_parser.PropertyRead{Receiver: &expression_parser.ImplicitReceiver{}, Name: name}
}

func thisRead(name string) *expression_parser.PropertyRead {
	return &expression_parser.PropertyRead{Receiver: &expression_parser.ThisReceiver{}, Name: name}
}

func lit(value interface{}) *expression_parser.LiteralPrimitive {
	return &expression_parser.LiteralPrimitive{Value: value}
}

func withSource(ast expression_parser.AST) *expression_parser.ASTWithSource {
	return &expression_parser.ASTWithSource{AST: ast}
}

func interp(strs []string, exprs ...expression_parser.AST) *expression_parser.Interpolation {
	return &expression_parser.Interpolation{Strings: strs, Expressions: exprs}
}

func strPtr(s string) *string { return &s }

func humanizeCreate(unit *ViewCompilationUnit) []string {
	var ops []string
	for _, op := range unit.Create.All() {
		ops = append(ops, humanizeOp(op))
	}
	return ops
}

func humanizeUpdate(unit *ViewCompilationUnit) []string {
	var ops []string
	for _, op := range unit.Update.All() {
		ops = append(ops, humanizeOp(op))
	}
	return ops
}

func humanizeOp(op ir.Op) string {
	switch o := op.(type) {
	case *ir.ElementStartOp:
		return fmt.Sprintf("ElementStart %s#%d", o.Tag, o.Xref)
	case *ir.ElementEndOp:
		return fmt.Sprintf("ElementEnd #%d", o.Xref)
	case *ir.TemplateOp:
		return fmt.Sprintf("Template #%d %s", o.Xref, o.FunctionNameSuffix)
	case *ir.TextOp:
		if o.IcuPlaceholder != nil {
			return fmt.Sprintf("Text #%d %q icu=%s", o.Xref, o.InitialValue, *o.IcuPlaceholder)
		}
		return fmt.Sprintf("Text #%d %q", o.Xref, o.InitialValue)
	case *ir.ListenerOp:
		return fmt.Sprintf("Listener %s on #%d", o.Name, o.Target)
	case *ir.ProjectionOp:
		s := fmt.Sprintf("Projection #%d %q", o.Xref, o.Selector)
		if o.FallbackView != nil {
			s += fmt.Sprintf(" fallback=#%d", *o.FallbackView)
		}
		return s
	case *ir.ExtractedAttributeOp:
		return fmt.Sprintf("ExtractedAttribute %s %s on #%d", o.BindingKind, o.Name, o.Target)
	case *ir.RepeaterCreateOp:
		s := fmt.Sprintf("RepeaterCreate #%d track=%s slots=%d", o.Xref, humanizeExpr(o.Track), o.NumSlotsUsed)
		if o.EmptyView != nil {
			s += fmt.Sprintf(" empty=#%d", *o.EmptyView)
		}
		if o.Tag != nil {
			s += " tag=" + *o.Tag
		}
		return s
	case *ir.DeferOp:
		return fmt.Sprintf("Defer #%d main=#%d", o.Xref, o.MainView)
	case *ir.DeferOnOp:
		return fmt.Sprintf("DeferOn %s prefetch=%t", o.Trigger.GetDeferTriggerKind(), o.Prefetch)
	case *ir.I18nStartOp:
		return fmt.Sprintf("I18nStart #%d", o.Xref)
	case *ir.I18nEndOp:
		return fmt.Sprintf("I18nEnd #%d", o.Xref)
	case *ir.I18nAttributesOp:
		return fmt.Sprintf("I18nAttributes target=#%d", o.Target)
	case *ir.IcuStartOp:
		return fmt.Sprintf("IcuStart %s", o.MessagePlaceholder)
	case *ir.IcuEndOp:
		return "IcuEnd"
	case *ir.InterpolateTextOp:
		return fmt.Sprintf("InterpolateText #%d %s", o.Target, humanizeInterpolation(o.Interpolation))
	case *ir.BindingOp:
		var value string
		if o.Interpolation != nil {
			value = humanizeInterpolation(o.Interpolation)
		} else {
			value = humanizeExpr(o.Expression)
		}
		return fmt.Sprintf("Binding %s %s=%s on #%d", o.BindingKind, o.Name, value, o.Target)
	case *ir.ConditionalOp:
		var cases []string
		for _, c := range o.Conditions {
			if c.Expr == nil {
				cases = append(cases, fmt.Sprintf("else -> #%d", c.Target))
			} else {
				cases = append(cases, fmt.Sprintf("%s -> #%d", humanizeExpr(c.Expr), c.Target))
			}
		}
		s := fmt.Sprintf("Conditional #%d [%s]", o.Target, strings.Join(cases, ", "))
		if o.ContextValue != nil {
			s += " on " + humanizeExpr(o.ContextValue)
		}
		return s
	case *ir.RepeaterOp:
		return fmt.Sprintf("Repeater #%d %s", o.Target, humanizeExpr(o.Collection))
	case *ir.DeferWhenOp:
		return fmt.Sprintf("DeferWhen %s prefetch=%t", humanizeExpr(o.Expr), o.Prefetch)
	case *ir.StatementOp:
		switch s := o.Statement.(type) {
		case *output.ExpressionStatement:
			return "stmt " + humanizeExpr(s.Expr)
		case *output.ReturnStatement:
			return "return " + humanizeExpr(s.Value)
		}
	}
	return op.GetKind().String()
}

func humanizeInterpolation(i *ir.Interpolation) string {
	var exprs []string
	for _, expr := range i.Expressions {
		exprs = append(exprs, humanizeExpr(expr))
	}
	return "{" + strings.Join(exprs, ", ") + "}"
}

func humanizeExpr(expr output.OutputExpression) string {
	if expr == nil {
		return "<nil>"
	}
	switch e := expr.(type) {
	case *ir.LexicalReadExpr:
		return e.Name
	case *ir.ContextExpr:
		return fmt.Sprintf("ctx(%d)", e.View)
	case *ir.PipeBindingExpr:
		return fmt.Sprintf("pipe:%s(%s)", e.Name, humanizeExprs(e.Args))
	case *ir.SafePropertyReadExpr:
		return humanizeExpr(e.Receiver) + "?." + e.Name
	case *ir.EmptyExpr:
		return "<empty>"
	case *output.LiteralExpr:
		return fmt.Sprintf("%v", e.Value)
	case *output.BinaryOperatorExpr:
		return "(" + humanizeExpr(e.Lhs) + " " + binaryOpToken(e.Operator) + " " + humanizeExpr(e.Rhs) + ")"
	case *output.NotExpr:
		return "!" + humanizeExpr(e.Condition)
	case *output.ReadPropExpr:
		return humanizeExpr(e.Receiver) + "." + e.Name
	case *output.ReadKeyExpr:
		return humanizeExpr(e.Receiver) + "[" + humanizeExpr(e.Index) + "]"
	case *output.WritePropExpr:
		return humanizeExpr(e.Receiver) + "." + e.Name + " = " + humanizeExpr(e.Value)
	case *output.InvokeFunctionExpr:
		return humanizeExpr(e.Fn) + "(" + humanizeExprs(e.Args) + ")"
	}
	return fmt.Sprintf("%T", expr)
}

func humanizeExprs(exprs []output.OutputExpression) string {
	var parts []string
	for _, expr := range exprs {
		parts = append(parts, humanizeExpr(expr))
	}
	return strings.Join(parts, ", ")
}

func binaryOpToken(op output.BinaryOperator) string {
	for token, candidate := range BinaryOperators {
		if candidate == op {
			return token
		}
	}
	return "?"
}

func TestIngestElementWithClassBinding(t *testing.T) {
	job := ingestTestComponent(t, []render3.Node{
		&render3.Element{
			Name: "div",
			Inputs: []*render3.BoundAttribute{
				{Name: "on", Type: expression_parser.BindingTypeClass, Value: read("x")},
			},
			Children: []render3.Node{&render3.Text{Value: "text"}},
		},
	})

	wantCreate := []string{
		"ElementStart div#1",
		`Text #2 "text"`,
		"ElementEnd #1",
	}
	if diff := cmp.Diff(wantCreate, humanizeCreate(job.Root)); diff != "" {
		t.Errorf("create ops mismatch (-want +got):\n%s", diff)
	}

	wantUpdate := []string{"Binding ClassName on=x on #1"}
	if diff := cmp.Diff(wantUpdate, humanizeUpdate(job.Root)); diff != "" {
		t.Errorf("update ops mismatch (-want +got):\n%s", diff)
	}
}

func TestIngestStaticAttributeCapturedTwice(t *testing.T) {
	job := ingestTestComponent(t, []render3.Node{
		&render3.Element{
			Name: "div",
			Attributes: []*render3.TextAttribute{
				{Name: "class", Value: "greeting"},
			},
		},
	})

	wantCreate := []string{
		"ElementStart div#1",
		"ExtractedAttribute Attribute class on #1",
		"ElementEnd #1",
	}
	if diff := cmp.Diff(wantCreate, humanizeCreate(job.Root)); diff != "" {
		t.Errorf("create ops mismatch (-want +got):\n%s", diff)
	}

	wantUpdate := []string{"Binding Attribute class=greeting on #1"}
	if diff := cmp.Diff(wantUpdate, humanizeUpdate(job.Root)); diff != "" {
		t.Errorf("update ops mismatch (-want +got):\n%s", diff)
	}
}

func TestVoidElementEndSpanFallsBackToStart(t *testing.T) {
	file := util.NewParseSourceFile("<input>", "test.html")
	start := util.NewParseSourceSpan(util.NewParseLocation(file, 0, 0, 0), util.NewParseLocation(file, 7, 0, 7), nil, nil)

	job := ingestTestComponent(t, []render3.Node{
		&render3.Element{Name: "input", StartSourceSpan: start, Span: start},
	})

	ops := job.Root.Create.All()
	endOp, ok := ops[len(ops)-1].(*ir.ElementEndOp)
	if !ok {
		t.Fatalf("expected last create op to be ElementEnd, got %s", ops[len(ops)-1].GetKind())
	}
	if endOp.SourceSpan != start {
		t.Errorf("ElementEnd source span = %v, want the start source span", endOp.SourceSpan)
	}
}

func TestIngestIfElseBlock(t *testing.T) {
	job := ingestTestComponent(t, []render3.Node{
		&render3.IfBlock{
			Branches: []*render3.IfBlockBranch{
				{Expression: read("loggedIn"), Children: []render3.Node{&render3.Text{Value: "hi"}}},
				{Children: []render3.Node{&render3.Text{Value: "log in"}}},
			},
		},
	})

	wantCreate := []string{
		"Template #1 Conditional",
		"Template #3 Conditional",
	}
	if diff := cmp.Diff(wantCreate, humanizeCreate(job.Root)); diff != "" {
		t.Errorf("create ops mismatch (-want +got):\n%s", diff)
	}

	wantUpdate := []string{"Conditional #1 [loggedIn -> #1, else -> #3]"}
	if diff := cmp.Diff(wantUpdate, humanizeUpdate(job.Root)); diff != "" {
		t.Errorf("update ops mismatch (-want +got):\n%s", diff)
	}
}

func TestIngestSwitchSingleCase(t *testing.T) {
	job := ingestTestComponent(t, []render3.Node{
		&render3.SwitchBlock{
			Expression: read("v"),
			Cases: []*render3.SwitchBlockCase{
				{Expression: lit(1), Children: []render3.Node{&render3.Text{Value: "A"}}},
			},
		},
	})

	wantCreate := []string{"Template #1 Case"}
	if diff := cmp.Diff(wantCreate, humanizeCreate(job.Root)); diff != "" {
		t.Errorf("create ops mismatch (-want +got):\n%s", diff)
	}

	wantUpdate := []string{"Conditional #1 [(v === 1) -> #1] on v"}
	if diff := cmp.Diff(wantUpdate, humanizeUpdate(job.Root)); diff != "" {
		t.Errorf("update ops mismatch (-want +got):\n%s", diff)
	}
}

func TestIngestSwitchWithoutCases(t *testing.T) {
	job := ingestTestComponent(t, []render3.Node{
		&render3.SwitchBlock{Expression: read("v")},
	})

	if got := job.Root.Create.Size(); got != 0 {
		t.Errorf("create list size = %d, want 0", got)
	}
	if got := job.Root.Update.Size(); got != 0 {
		t.Errorf("update list size = %d, want 0", got)
	}
}

func TestIngestForLoopWithEmpty(t *testing.T) {
	job := ingestTestComponent(t, []render3.Node{
		&render3.ForLoopBlock{
			Item:       &render3.Variable{Name: "item", Value: "$implicit"},
			TrackBy:    withSource(read("item")),
			Expression: withSource(read("items")),
			Children: []render3.Node{
				&render3.Element{Name: "p", Children: []render3.Node{
					&render3.BoundText{Value: interp([]string{"", ""}, read("item"))},
				}},
			},
			Empty: &render3.ForLoopBlockEmpty{
				Children: []render3.Node{&render3.Text{Value: "empty"}},
			},
		},
	})

	wantCreate := []string{"RepeaterCreate #1 track=item slots=3 empty=#4 tag=p"}
	if diff := cmp.Diff(wantCreate, humanizeCreate(job.Root)); diff != "" {
		t.Errorf("create ops mismatch (-want +got):\n%s", diff)
	}
	wantUpdate := []string{"Repeater #1 items"}
	if diff := cmp.Diff(wantUpdate, humanizeUpdate(job.Root)); diff != "" {
		t.Errorf("update ops mismatch (-want +got):\n%s", diff)
	}

	repeaterView := job.Views[1]
	wantContextVariables := map[string]string{
		"item":      "$implicit",
		"ɵ$index_1": "$index",
		"ɵ$count_1": "$count",
	}
	if diff := cmp.Diff(wantContextVariables, repeaterView.ContextVariables); diff != "" {
		t.Errorf("context variables mismatch (-want +got):\n%s", diff)
	}

	emptyView := job.Views[4]
	wantEmpty := []string{`Text #5 "empty"`}
	if diff := cmp.Diff(wantEmpty, humanizeCreate(emptyView)); diff != "" {
		t.Errorf("empty view ops mismatch (-want +got):\n%s", diff)
	}
}

func TestNestedForLoopAliasDisambiguation(t *testing.T) {
	inner := &render3.ForLoopBlock{
		Item:             &render3.Variable{Name: "inner", Value: "$implicit"},
		TrackBy:          withSource(read("inner")),
		Expression:       withSource(read("items")),
		ContextVariables: []*render3.Variable{{Name: "$first", Value: "$first"}},
	}
	job := ingestTestComponent(t, []render3.Node{
		&render3.ForLoopBlock{
			Item:             &render3.Variable{Name: "outer", Value: "$implicit"},
			TrackBy:          withSource(read("outer")),
			Expression:       withSource(read("items")),
			ContextVariables: []*render3.Variable{{Name: "$first", Value: "$first"}},
			Children:         []render3.Node{inner},
		},
	})

	outerView, innerView := job.Views[1], job.Views[2]
	if got := humanizeExpr(outerView.Aliases[0].Expression); got != "(ɵ$index_1 === 0)" {
		t.Errorf("outer $first expression = %s, want (ɵ$index_1 === 0)", got)
	}
	if got := humanizeExpr(innerView.Aliases[0].Expression); got != "(ɵ$index_2 === 0)" {
		t.Errorf("inner $first expression = %s, want (ɵ$index_2 === 0)", got)
	}
}

func TestDeferBlockDefaultsToIdleTrigger(t *testing.T) {
	job := ingestTestComponent(t, []render3.Node{
		&render3.DeferredBlock{
			Children: []render3.Node{&render3.Text{Value: "deferred"}},
		},
	})

	wantCreate := []string{
		"Template #1 Defer",
		"Defer #3 main=#1",
		"DeferOn Idle prefetch=false",
	}
	if diff := cmp.Diff(wantCreate, humanizeCreate(job.Root)); diff != "" {
		t.Errorf("create ops mismatch (-want +got):\n%s", diff)
	}
}

func TestDeferBlockExplicitTriggerSuppressesIdle(t *testing.T) {
	job := ingestTestComponent(t, []render3.Node{
		&render3.DeferredBlock{
			Children: []render3.Node{&render3.Text{Value: "deferred"}},
			Triggers: render3.DeferredBlockTriggers{
				Timer: &render3.TimerDeferredTrigger{Delay: 500},
			},
			PrefetchTriggers: render3.DeferredBlockTriggers{
				Idle: &render3.IdleDeferredTrigger{},
			},
		},
	})

	wantCreate := []string{
		"Template #1 Defer",
		"Defer #3 main=#1",
		"DeferOn Idle prefetch=true",
		"DeferOn Timer prefetch=false",
	}
	if diff := cmp.Diff(wantCreate, humanizeCreate(job.Root)); diff != "" {
		t.Errorf("create ops mismatch (-want +got):\n%s", diff)
	}
}

func TestDeferBlockMissingResolverIsAnError(t *testing.T) {
	_, err := IngestComponent("TestCmp", []render3.Node{
		&render3.DeferredBlock{Children: []render3.Node{&render3.Text{Value: "deferred"}}},
	}, constant.NewConstantPool(), ir.CompatibilityModeNormal, TemplateCompilationModeFull, R3ComponentDeferMetadata{Mode: DeferBlockDepsEmitModePerBlock}, nil)
	if err == nil || !strings.Contains(err.Error(), "unable to find a dependency function") {
		t.Errorf("err = %v, want missing dependency function error", err)
	}
}

func TestDeferWhenInterpolationIsAnError(t *testing.T) {
	_, err := IngestComponent("TestCmp", []render3.Node{
		&render3.DeferredBlock{
			Children: []render3.Node{&render3.Text{Value: "deferred"}},
			Triggers: render3.DeferredBlockTriggers{
				When: &render3.BoundDeferredTrigger{Value: withSource(interp([]string{"", ""}, read("x")))},
			},
		},
	}, constant.NewConstantPool(), ir.CompatibilityModeNormal, TemplateCompilationModeFull, R3ComponentDeferMetadata{Mode: DeferBlockDepsEmitModePerComponent}, nil)
	if err == nil || !strings.Contains(err.Error(), "interpolation in defer block when trigger") {
		t.Errorf("err = %v, want interpolation trigger error", err)
	}
}

func TestIfBlockWithoutBranchesIsAnError(t *testing.T) {
	_, err := IngestComponent("TestCmp", []render3.Node{
		&render3.IfBlock{},
	}, constant.NewConstantPool(), ir.CompatibilityModeNormal, TemplateCompilationModeFull, R3ComponentDeferMetadata{Mode: DeferBlockDepsEmitModePerComponent}, nil)
	if err == nil || !strings.Contains(err.Error(), "at least one branch") {
		t.Errorf("err = %v, want missing branch error", err)
	}
}

func TestForLoopWithoutTrackExpressionIsAnError(t *testing.T) {
	_, err := IngestComponent("TestCmp", []render3.Node{
		&render3.ForLoopBlock{
			Item:       &render3.Variable{Name: "item", Value: "$implicit"},
			Expression: withSource(read("items")),
			Children:   []render3.Node{&render3.Text{Value: "row"}},
		},
	}, constant.NewConstantPool(), ir.CompatibilityModeNormal, TemplateCompilationModeFull, R3ComponentDeferMetadata{Mode: DeferBlockDepsEmitModePerComponent}, nil)
	if err == nil || !strings.Contains(err.Error(), "track expression") {
		t.Errorf("err = %v, want missing track expression error", err)
	}
}

func TestExplicitThisIsErasedExceptSpecialNames(t *testing.T) {
	job := ingestTestComponent(t, []render3.Node{
		&render3.Element{
			Name: "button",
			Outputs: []*render3.BoundEvent{
				{
					Name: "click",
					Type: expression_parser.ParsedEventTypeRegular,
					Handler: &expression_parser.Call{
						Receiver: thisRead("go"),
						Args:     []expression_parser.AST{thisRead("$event")},
					},
				},
			},
		},
	})

	var listener *ir.ListenerOp
	for _, op := range job.Root.Create.All() {
		if l, ok := op.(*ir.ListenerOp); ok {
			listener = l
		}
	}
	if listener == nil {
		t.Fatal("no listener op ingested")
	}

	var handler []string
	for _, op := range listener.HandlerOps.All() {
		handler = append(handler, humanizeOp(op))
	}
	want := []string{"return go(ctx(0).$event)"}
	if diff := cmp.Diff(want, handler); diff != "" {
		t.Errorf("handler ops mismatch (-want +got):\n%s", diff)
	}
}

func TestListenerChainLowersToStatements(t *testing.T) {
	job := ingestTestComponent(t, []render3.Node{
		&render3.Element{
			Name: "button",
			Outputs: []*render3.BoundEvent{
				{
					Name: "click",
					Type: expression_parser.ParsedEventTypeRegular,
					Handler: &expression_parser.Chain{Expressions: []expression_parser.AST{
						&expression_parser.Call{Receiver: read("a")},
						&expression_parser.Call{Receiver: read("b")},
					}},
				},
			},
		},
	})

	var listener *ir.ListenerOp
	for _, op := range job.Root.Create.All() {
		if l, ok := op.(*ir.ListenerOp); ok {
			listener = l
		}
	}
	if listener == nil {
		t.Fatal("no listener op ingested")
	}

	var handler []string
	for _, op := range listener.HandlerOps.All() {
		handler = append(handler, humanizeOp(op))
	}
	want := []string{"stmt a()", "return b()"}
	if diff := cmp.Diff(want, handler); diff != "" {
		t.Errorf("handler ops mismatch (-want +got):\n%s", diff)
	}
}

func TestAnimationListenerWithoutPhaseIsAnError(t *testing.T) {
	_, err := IngestComponent("TestCmp", []render3.Node{
		&render3.Element{
			Name: "div",
			Outputs: []*render3.BoundEvent{
				{Name: "fade", Type: expression_parser.ParsedEventTypeLegacyAnimation, Handler: read("noop")},
			},
		},
	}, constant.NewConstantPool(), ir.CompatibilityModeNormal, TemplateCompilationModeFull, R3ComponentDeferMetadata{Mode: DeferBlockDepsEmitModePerComponent}, nil)
	if err == nil || !strings.Contains(err.Error(), "Animation listener should have a phase") {
		t.Errorf("err = %v, want missing phase error", err)
	}
}

func TestBoundTextPlaceholderCountMismatchIsAnError(t *testing.T) {
	_, err := IngestComponent("TestCmp", []render3.Node{
		&render3.BoundText{
			Value: interp([]string{"", "", ""}, read("a"), read("b")),
			I18n: &i18npkg.Container{Children: []i18npkg.Node{
				&i18npkg.Placeholder{Name: "INTERPOLATION"},
			}},
		},
	}, constant.NewConstantPool(), ir.CompatibilityModeNormal, TemplateCompilationModeFull, R3ComponentDeferMetadata{Mode: DeferBlockDepsEmitModePerComponent}, nil)
	if err == nil || !strings.Contains(err.Error(), "i18n placeholders") {
		t.Errorf("err = %v, want placeholder count error", err)
	}
}

func TestInterpolationSpansDroppedInCompatibilityMode(t *testing.T) {
	file := util.NewParseSourceFile("{{greeting}}", "test.html")
	span := util.NewParseSourceSpan(util.NewParseLocation(file, 0, 0, 0), util.NewParseLocation(file, 12, 0, 12), nil, nil)
	expr := read("greeting")
	expr.ParseSpan = expression_parser.NewParseSpan(2, 10)

	nodes := []render3.Node{&render3.BoundText{Value: interp([]string{"", ""}, expr), Span: span}}

	job, err := IngestComponent("TestCmp", nodes, constant.NewConstantPool(), ir.CompatibilityModeTemplateDefinitionBuilder, TemplateCompilationModeFull, R3ComponentDeferMetadata{Mode: DeferBlockDepsEmitModePerComponent}, nil)
	if err != nil {
		t.Fatalf("IngestComponent: %v", err)
	}

	op := job.Root.Update.All()[0].(*ir.InterpolateTextOp)
	if got := op.Interpolation.Expressions[0].GetSourceSpan(); got != nil {
		t.Errorf("sub-expression source span = %v, want nil in compatibility mode", got)
	}
}

func TestI18nAttributesOpEmittedForTranslatedBindings(t *testing.T) {
	job := ingestTestComponent(t, []render3.Node{
		&render3.Element{
			Name: "div",
			Inputs: []*render3.BoundAttribute{
				{Name: "title", Type: expression_parser.BindingTypeProperty, Value: read("x"), I18n: &i18npkg.Message{}},
			},
		},
	})

	var found bool
	for _, op := range job.Root.Create.All() {
		if _, ok := op.(*ir.I18nAttributesOp); ok {
			found = true
		}
	}
	if !found {
		t.Error("expected an I18nAttributes op for a binding with an i18n message")
	}

	binding := job.Root.Update.All()[0].(*ir.BindingOp)
	if binding.I18nMessage == nil {
		t.Error("binding should carry its i18n message")
	}
}

func TestNoI18nAttributesOpWithoutMessages(t *testing.T) {
	job := ingestTestComponent(t, []render3.Node{
		&render3.Element{
			Name: "div",
			Inputs: []*render3.BoundAttribute{
				{Name: "title", Type: expression_parser.BindingTypeProperty, Value: read("x")},
			},
		},
	})

	for _, op := range job.Root.Create.All() {
		if _, ok := op.(*ir.I18nAttributesOp); ok {
			t.Error("unexpected I18nAttributes op for untranslated bindings")
		}
	}
}

func TestElementI18nBlockBracketsChildren(t *testing.T) {
	job := ingestTestComponent(t, []render3.Node{
		&render3.Element{
			Name:     "div",
			I18n:     &i18npkg.Message{},
			Children: []render3.Node{&render3.Text{Value: "hello"}},
		},
	})

	wantCreate := []string{
		"ElementStart div#1",
		"I18nStart #2",
		`Text #3 "hello"`,
		"I18nEnd #2",
		"ElementEnd #1",
	}
	if diff := cmp.Diff(wantCreate, humanizeCreate(job.Root)); diff != "" {
		t.Errorf("create ops mismatch (-want +got):\n%s", diff)
	}
}

func TestPlainTemplateI18nBracketsChildView(t *testing.T) {
	job := ingestTestComponent(t, []render3.Node{
		&render3.Template{
			TagName:  strPtr("ng-template"),
			I18n:     &i18npkg.Message{},
			Children: []render3.Node{&render3.Text{Value: "hello"}},
		},
	})

	childView := job.Views[1]
	ops := humanizeCreate(childView)
	if len(ops) != 3 || !strings.HasPrefix(ops[0], "I18nStart") || !strings.HasPrefix(ops[2], "I18nEnd") {
		t.Errorf("child view ops = %v, want i18n brackets around the content", ops)
	}
}

func TestIcuLowering(t *testing.T) {
	job := ingestTestComponent(t, []render3.Node{
		&render3.Icu{
			I18n: &i18npkg.Message{Nodes: []i18npkg.Node{
				&i18npkg.Icu{ExpressionPlaceholder: "ICU_1"},
			}},
			Vars: []render3.IcuEntry{
				{Name: "VAR_SELECT", Value: &render3.BoundText{Value: interp([]string{"", ""}, read("count"))}},
			},
			Placeholders: []render3.IcuEntry{
				{Name: "INTERPOLATION", Value: &render3.Text{Value: "emails"}},
			},
		},
	})

	wantCreate := []string{
		"IcuStart ICU_1",
		`Text #2 "" icu=VAR_SELECT`,
		`Text #3 "emails" icu=INTERPOLATION`,
		"IcuEnd",
	}
	if diff := cmp.Diff(wantCreate, humanizeCreate(job.Root)); diff != "" {
		t.Errorf("create ops mismatch (-want +got):\n%s", diff)
	}
}

func TestIcuRequiresSingleIcuMessage(t *testing.T) {
	_, err := IngestComponent("TestCmp", []render3.Node{
		&render3.Icu{I18n: &i18npkg.Message{Nodes: []i18npkg.Node{&i18npkg.Text{Value: "not an icu"}}}},
	}, constant.NewConstantPool(), ir.CompatibilityModeNormal, TemplateCompilationModeFull, R3ComponentDeferMetadata{Mode: DeferBlockDepsEmitModePerComponent}, nil)
	if err == nil || !strings.Contains(err.Error(), "Unhandled i18n metadata type for ICU") {
		t.Errorf("err = %v, want unhandled metadata error", err)
	}
}

func TestStructuralTemplateBindingDemotion(t *testing.T) {
	job := ingestTestComponent(t, []render3.Node{
		&render3.Template{
			TagName: strPtr("div"),
			TemplateAttrs: []render3.AttributeNode{
				&render3.BoundAttribute{Name: "ngIf", Type: expression_parser.BindingTypeProperty, Value: read("cond")},
			},
			Inputs: []*render3.BoundAttribute{
				{Name: "title", Type: expression_parser.BindingTypeProperty, Value: read("x")},
			},
		},
	})

	wantCreate := []string{
		"Template #1 div",
		"ExtractedAttribute Property title on #1",
	}
	if diff := cmp.Diff(wantCreate, humanizeCreate(job.Root)); diff != "" {
		t.Errorf("create ops mismatch (-want +got):\n%s", diff)
	}

	wantUpdate := []string{"Binding Property ngIf=cond on #1"}
	if diff := cmp.Diff(wantUpdate, humanizeUpdate(job.Root)); diff != "" {
		t.Errorf("update ops mismatch (-want +got):\n%s", diff)
	}
}

func TestNgTemplateDynamicClassBecomesProperty(t *testing.T) {
	job := ingestTestComponent(t, []render3.Node{
		&render3.Template{
			TagName: strPtr("ng-template"),
			Inputs: []*render3.BoundAttribute{
				{Name: "foo", Type: expression_parser.BindingTypeClass, Value: read("x")},
			},
		},
	})

	wantUpdate := []string{"Binding Property foo=x on #1"}
	if diff := cmp.Diff(wantUpdate, humanizeUpdate(job.Root)); diff != "" {
		t.Errorf("update ops mismatch (-want +got):\n%s", diff)
	}
}

func TestContentProjectionWithFallback(t *testing.T) {
	job := ingestTestComponent(t, []render3.Node{
		&render3.Content{
			Selector: "*",
			Children: []render3.Node{
				&render3.Element{Name: "span", Children: []render3.Node{&render3.Text{Value: "default"}}},
			},
		},
	})

	wantCreate := []string{`Projection #4 "*" fallback=#1`}
	if diff := cmp.Diff(wantCreate, humanizeCreate(job.Root)); diff != "" {
		t.Errorf("create ops mismatch (-want +got):\n%s", diff)
	}
}

func TestContentProjectionIgnoresWhitespaceFallback(t *testing.T) {
	job := ingestTestComponent(t, []render3.Node{
		&render3.Content{
			Selector: "*",
			Children: []render3.Node{&render3.Text{Value: "  \n  "}},
		},
	})

	op := job.Root.Create.All()[0].(*ir.ProjectionOp)
	if op.FallbackView != nil {
		t.Errorf("fallback view = %d, want none for whitespace-only content", *op.FallbackView)
	}
}

func TestLocalReferencesAreCollected(t *testing.T) {
	job := ingestTestComponent(t, []render3.Node{
		&render3.Element{
			Name:       "div",
			References: []*render3.Reference{{Name: "foo", Value: ""}},
		},
	})

	start := job.Root.Create.All()[0].(*ir.ElementStartOp)
	if len(start.LocalRefs) != 1 || start.LocalRefs[0].Name != "foo" {
		t.Errorf("local refs = %+v, want one ref named foo", start.LocalRefs)
	}
}

func TestPipeBindingAllocatesXrefAndSlot(t *testing.T) {
	job := ingestTestComponent(t, []render3.Node{
		&render3.BoundText{
			Value: interp([]string{"", ""}, &expression_parser.BindingPipe{Exp: read("x"), Name: "uppercase"}),
		},
	})

	op := job.Root.Update.All()[0].(*ir.InterpolateTextOp)
	pipe, ok := op.Interpolation.Expressions[0].(*ir.PipeBindingExpr)
	if !ok {
		t.Fatalf("expected a pipe binding expression, got %T", op.Interpolation.Expressions[0])
	}
	if pipe.Name != "uppercase" || pipe.TargetSlot == nil {
		t.Errorf("pipe = %+v, want name uppercase with an allocated slot", pipe)
	}
	if got := humanizeExpr(pipe); got != "pipe:uppercase(x)" {
		t.Errorf("pipe expression = %s, want pipe:uppercase(x)", got)
	}
}

func TestIfBlockAliasBecomesContextReference(t *testing.T) {
	job := ingestTestComponent(t, []render3.Node{
		&render3.IfBlock{
			Branches: []*render3.IfBlockBranch{
				{
					Expression:      read("user"),
					ExpressionAlias: &render3.Variable{Name: "u"},
					Children:        []render3.Node{&render3.Text{Value: "hi"}},
				},
			},
		},
	})

	branchView := job.Views[1]
	if got := branchView.ContextVariables["u"]; got != ir.CTX_REF {
		t.Errorf("alias context variable = %q, want CTX_REF marker", got)
	}
}

func TestControlFlowInsertionPointCollectsRootAttributes(t *testing.T) {
	job := ingestTestComponent(t, []render3.Node{
		&render3.IfBlock{
			Branches: []*render3.IfBlockBranch{
				{
					Expression: read("cond"),
					Children: []render3.Node{
						&render3.Element{
							Name:       "section",
							Attributes: []*render3.TextAttribute{{Name: "data-kind", Value: "main"}},
							Inputs: []*render3.BoundAttribute{
								{Name: "title", Type: expression_parser.BindingTypeProperty, Value: read("x")},
							},
						},
					},
				},
			},
		},
	})

	templateOp := job.Root.Create.All()[1].(*ir.TemplateOp)
	if templateOp.Tag == nil || *templateOp.Tag != "section" {
		t.Errorf("inferred tag = %v, want section", templateOp.Tag)
	}

	wantCreate := []string{
		"ExtractedAttribute Property title on #1",
		"Template #1 Conditional",
	}
	if diff := cmp.Diff(wantCreate, humanizeCreate(job.Root)); diff != "" {
		t.Errorf("create ops mismatch (-want +got):\n%s", diff)
	}

	var attrBinding *ir.BindingOp
	for _, op := range job.Root.Update.All() {
		if b, ok := op.(*ir.BindingOp); ok && b.Name == "data-kind" {
			attrBinding = b
		}
	}
	if attrBinding == nil || attrBinding.Target != 1 {
		t.Errorf("attribute copy = %+v, want a data-kind binding targeting the branch view", attrBinding)
	}
}

func TestHostBindingAttrPrefixReclassification(t *testing.T) {
	job, err := IngestHostBinding(&HostBindingInput{
		ComponentName:     "HostCmp",
		ComponentSelector: "button",
		Properties: []*expression_parser.ParsedProperty{
			{Name: "attr.role", Expression: withSource(read("role"))},
		},
	}, ir.CompatibilityModeNormal, constant.NewConstantPool())
	if err != nil {
		t.Fatalf("IngestHostBinding: %v", err)
	}

	binding := job.Root.Update.All()[0].(*ir.BindingOp)
	if binding.BindingKind != ir.BindingKindAttribute || binding.Name != "role" {
		t.Errorf("binding = %s %s, want Attribute role", binding.BindingKind, binding.Name)
	}
}

func TestHostBindingStyleSecurityContext(t *testing.T) {
	job, err := IngestHostBinding(&HostBindingInput{
		ComponentName:     "HostCmp",
		ComponentSelector: "div",
		Properties: []*expression_parser.ParsedProperty{
			{Name: "style", Expression: withSource(read("s"))},
		},
	}, ir.CompatibilityModeNormal, constant.NewConstantPool())
	if err != nil {
		t.Fatalf("IngestHostBinding: %v", err)
	}

	binding := job.Root.Update.All()[0].(*ir.BindingOp)
	want := []core.SecurityContext{core.SecurityContextStyle}
	if diff := cmp.Diff(want, binding.SecurityContext); diff != "" {
		t.Errorf("security contexts mismatch (-want +got):\n%s", diff)
	}
}

func TestHostEventListener(t *testing.T) {
	job, err := IngestHostBinding(&HostBindingInput{
		ComponentName:     "HostCmp",
		ComponentSelector: "div",
		Events: []*expression_parser.ParsedEvent{
			{
				Name:          "click",
				Type:          expression_parser.ParsedEventTypeRegular,
				TargetOrPhase: strPtr("window"),
				Handler:       withSource(&expression_parser.Call{Receiver: read("go")}),
			},
		},
	}, ir.CompatibilityModeNormal, constant.NewConstantPool())
	if err != nil {
		t.Fatalf("IngestHostBinding: %v", err)
	}

	listener := job.Root.Create.All()[0].(*ir.ListenerOp)
	if !listener.HostListener {
		t.Error("listener should be marked as a host listener")
	}
	if listener.EventTarget == nil || *listener.EventTarget != "window" {
		t.Errorf("event target = %v, want window", listener.EventTarget)
	}
}

func TestHostAnimationEventWithoutPhaseIsAnError(t *testing.T) {
	_, err := IngestHostBinding(&HostBindingInput{
		ComponentName:     "HostCmp",
		ComponentSelector: "div",
		Events: []*expression_parser.ParsedEvent{
			{
				Name:    "fade",
				Type:    expression_parser.ParsedEventTypeLegacyAnimation,
				Handler: withSource(read("noop")),
			},
		},
	}, ir.CompatibilityModeNormal, constant.NewConstantPool())
	if err == nil || !strings.Contains(err.Error(), "Animation listener should have a phase") {
		t.Errorf("err = %v, want missing phase error", err)
	}
}

func TestHostAttributeLiteral(t *testing.T) {
	job, err := IngestHostBinding(&HostBindingInput{
		ComponentName:     "HostCmp",
		ComponentSelector: "div",
		Attributes: []*HostAttribute{
			{Name: "role", Value: output.NewLiteralExpr("button", nil, nil)},
		},
	}, ir.CompatibilityModeNormal, constant.NewConstantPool())
	if err != nil {
		t.Fatalf("IngestHostBinding: %v", err)
	}

	binding := job.Root.Update.All()[0].(*ir.BindingOp)
	if !binding.IsTextAttribute || binding.BindingKind != ir.BindingKindAttribute {
		t.Errorf("binding = %+v, want a literal attribute binding", binding)
	}
}
