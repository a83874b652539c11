// Command tplc-go ingests a demo component template and dumps the resulting
// operation lists, one compilation unit per view. It exists to exercise the
// lowering end to end and to make the IR easy to eyeball.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"tplc-go/packages/compiler/constant"
	"tplc-go/packages/compiler/expression_parser"
	"tplc-go/packages/compiler/render3"
	"tplc-go/packages/compiler/template/pipeline"
	"tplc-go/packages/compiler/template/pipeline/ir"
)

func main() {
	compat := flag.Bool("compat", false, "use legacy-compatible generation")
	flag.Parse()

	mode := ir.CompatibilityModeNormal
	if *compat {
		mode = ir.CompatibilityModeTemplateDefinitionBuilder
	}

	job, err := pipeline.IngestComponent(
		"DemoCmp",
		demoTemplate(),
		constant.NewConstantPool(),
		mode,
		pipeline.TemplateCompilationModeFull,
		pipeline.R3ComponentDeferMetadata{Mode: pipeline.DeferBlockDepsEmitModePerComponent},
		nil,
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ingest:", err)
		os.Exit(1)
	}

	printJob(job)
}

// demoTemplate builds the AST for:
//
//	<div class="greeting" [title]="name">{{greeting}}</div>
//	@if (loggedIn) { <span>hi</span> } @else { <a>log in</a> }
func demoTemplate() []render3.Node {
	name := &expression_parser.PropertyRead{
		Receiver: &expression_parser.ImplicitReceiver{},
		Name:     "name",
	}
	greeting := &expression_parser.PropertyRead{
		Receiver: &expression_parser.ImplicitReceiver{},
		Name:     "greeting",
	}
	loggedIn := &expression_parser.PropertyRead{
		Receiver: &expression_parser.ImplicitReceiver{},
		Name:     "loggedIn",
	}

	div := &render3.Element{
		Name: "div",
		Attributes: []*render3.TextAttribute{
			{Name: "class", Value: "greeting"},
		},
		Inputs: []*render3.BoundAttribute{
			{Name: "title", Type: expression_parser.BindingTypeProperty, Value: name},
		},
		Children: []render3.Node{
			&render3.BoundText{
				Value: &expression_parser.Interpolation{
					Strings:     []string{"", ""},
					Expressions: []expression_parser.AST{greeting},
				},
			},
		},
	}

	branchIf := &render3.IfBlockBranch{
		Expression: loggedIn,
		Children: []render3.Node{
			&render3.Element{Name: "span", Children: []render3.Node{
				&render3.Text{Value: "hi"},
			}},
		},
	}
	branchElse := &render3.IfBlockBranch{
		Children: []render3.Node{
			&render3.Element{Name: "a", Children: []render3.Node{
				&render3.Text{Value: "log in"},
			}},
		},
	}

	return []render3.Node{
		div,
		&render3.IfBlock{Branches: []*render3.IfBlockBranch{branchIf, branchElse}},
	}
}

func printJob(job *pipeline.ComponentCompilationJob) {
	xrefs := make([]ir.XrefId, 0, len(job.Views))
	for xref := range job.Views {
		xrefs = append(xrefs, xref)
	}
	sort.Slice(xrefs, func(i, j int) bool { return xrefs[i] < xrefs[j] })

	for _, xref := range xrefs {
		view := job.Views[xref]
		role := "view"
		if view == job.Root {
			role = "root"
		}
		fmt.Printf("%s %d:\n", role, view.Xref)
		fmt.Println("  create:")
		for _, op := range view.Create.All() {
			fmt.Printf("    %s\n", describe(op))
		}
		fmt.Println("  update:")
		for _, op := range view.Update.All() {
			fmt.Printf("    %s\n", describe(op))
		}
	}
}

func describe(op ir.Op) string {
	var details []string
	switch o := op.(type) {
	case *ir.ElementStartOp:
		details = append(details, "tag="+o.Tag, fmt.Sprintf("xref=%d", o.Xref))
	case *ir.ElementEndOp:
		details = append(details, fmt.Sprintf("xref=%d", o.Xref))
	case *ir.TemplateOp:
		details = append(details, fmt.Sprintf("view=%d", o.Xref), "suffix="+o.FunctionNameSuffix)
	case *ir.TextOp:
		details = append(details, fmt.Sprintf("%q", o.InitialValue))
	case *ir.InterpolateTextOp:
		details = append(details, fmt.Sprintf("target=%d", o.Target), fmt.Sprintf("exprs=%d", len(o.Interpolation.Expressions)))
	case *ir.BindingOp:
		details = append(details, o.BindingKind.String(), o.Name)
	case *ir.ConditionalOp:
		details = append(details, fmt.Sprintf("target=%d", o.Target), fmt.Sprintf("cases=%d", len(o.Conditions)))
	case *ir.RepeaterCreateOp:
		details = append(details, fmt.Sprintf("view=%d", o.Xref))
	case *ir.ListenerOp:
		details = append(details, o.Name)
	case *ir.ExtractedAttributeOp:
		details = append(details, o.BindingKind.String(), o.Name)
	}
	if len(details) == 0 {
		return op.GetKind().String()
	}
	return op.GetKind().String() + " " + strings.Join(details, " ")
}
