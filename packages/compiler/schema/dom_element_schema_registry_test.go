package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"tplc-go/packages/compiler/core"
)

func TestSecurityContextLookup(t *testing.T) {
	registry := NewDomElementSchemaRegistry()

	tests := []struct {
		element     string
		prop        string
		isAttribute bool
		want        core.SecurityContext
	}{
		{"iframe", "srcdoc", false, core.SecurityContextHTML},
		{"div", "innerHTML", false, core.SecurityContextHTML},
		{"div", "style", false, core.SecurityContextStyle},
		{"a", "href", false, core.SecurityContextURL},
		{"img", "src", false, core.SecurityContextURL},
		{"script", "src", false, core.SecurityContextResourceURL},
		{"div", "title", false, core.SecurityContextNone},
		// Case is insignificant.
		{"A", "HREF", false, core.SecurityContextURL},
	}
	for _, tt := range tests {
		got := registry.SecurityContext(tt.element, tt.prop, tt.isAttribute)
		if got != tt.want {
			t.Errorf("SecurityContext(%q, %q, %t) = %s, want %s", tt.element, tt.prop, tt.isAttribute, got, tt.want)
		}
	}
}

func TestSecurityContextMapsAttributeNames(t *testing.T) {
	registry := NewDomElementSchemaRegistry()

	// The formaction attribute reflects into the formAction property, which
	// is URL sensitive.
	if got := registry.SecurityContext("button", "formaction", true); got != core.SecurityContextURL {
		t.Errorf("SecurityContext(button, formaction, attr) = %s, want URL", got)
	}
	if got := registry.SecurityContext("div", "innerhtml", true); got != core.SecurityContextHTML {
		t.Errorf("SecurityContext(div, innerhtml, attr) = %s, want HTML", got)
	}
}

func TestGetMappedPropName(t *testing.T) {
	registry := NewDomElementSchemaRegistry()

	if got := registry.GetMappedPropName("class"); got != "className" {
		t.Errorf("GetMappedPropName(class) = %q, want className", got)
	}
	if got := registry.GetMappedPropName("for"); got != "htmlFor" {
		t.Errorf("GetMappedPropName(for) = %q, want htmlFor", got)
	}
	if got := registry.GetMappedPropName("title"); got != "title" {
		t.Errorf("GetMappedPropName(title) = %q, want title", got)
	}
}

func TestCalcPossibleSecurityContexts(t *testing.T) {
	registry := NewDomElementSchemaRegistry()

	tests := []struct {
		selector string
		prop     string
		want     []core.SecurityContext
	}{
		// src is URL on img but unclassified on span; results are sorted and
		// deduplicated.
		{"img, span", "src", []core.SecurityContext{core.SecurityContextNone, core.SecurityContextURL}},
		{"img, input", "src", []core.SecurityContext{core.SecurityContextURL}},
		{"div", "style", []core.SecurityContext{core.SecurityContextStyle}},
		// Attribute-only selectors do not constrain the element.
		{"[myDirective]", "innerHTML", []core.SecurityContext{core.SecurityContextHTML}},
	}
	for _, tt := range tests {
		got := CalcPossibleSecurityContexts(registry, tt.selector, tt.prop, false)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("CalcPossibleSecurityContexts(%q, %q) mismatch (-want +got):\n%s", tt.selector, tt.prop, diff)
		}
	}
}
