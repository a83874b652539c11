package schema

import (
	"sort"
	"strings"

	"tplc-go/packages/compiler/core"
)

// attrToPropMap maps attribute names to the DOM property they reflect into,
// for the few cases where the two differ.
var attrToPropMap = map[string]string{
	"class":      "className",
	"for":        "htmlFor",
	"formaction": "formAction",
	"innerhtml":  "innerHTML",
	"readonly":   "readOnly",
	"tabindex":   "tabIndex",
}

// DomElementSchemaRegistry answers schema questions about DOM elements and
// their properties.
type DomElementSchemaRegistry struct{}

// NewDomElementSchemaRegistry creates a new DomElementSchemaRegistry.
func NewDomElementSchemaRegistry() *DomElementSchemaRegistry {
	return &DomElementSchemaRegistry{}
}

// GetMappedPropName returns the DOM property an attribute name reflects into.
func (r *DomElementSchemaRegistry) GetMappedPropName(propName string) string {
	if mapped, ok := attrToPropMap[strings.ToLower(propName)]; ok {
		return mapped
	}
	return propName
}

// SecurityContext returns the security context required when binding the
// given property (or attribute) on the given element.
func (r *DomElementSchemaRegistry) SecurityContext(elementName, propName string, isAttribute bool) core.SecurityContext {
	if isAttribute {
		// The attribute is normalized to its property equivalent first.
		propName = r.GetMappedPropName(propName)
	}
	elementName = strings.ToLower(elementName)
	propName = strings.ToLower(propName)
	if ctx, ok := SecuritySchema()[elementName+"|"+propName]; ok {
		return ctx
	}
	if ctx, ok := SecuritySchema()["*|"+propName]; ok {
		return ctx
	}
	return core.SecurityContextNone
}

// CalcPossibleSecurityContexts returns the distinct security contexts a
// property binding could require across every element the selector can
// match. Used for host bindings, where the concrete element is unknown.
func CalcPossibleSecurityContexts(registry *DomElementSchemaRegistry, selector, propName string, isAttribute bool) []core.SecurityContext {
	seen := map[core.SecurityContext]bool{}
	for _, part := range strings.Split(selector, ",") {
		elementName := selectorElementName(strings.TrimSpace(part))
		seen[registry.SecurityContext(elementName, propName, isAttribute)] = true
	}
	contexts := make([]core.SecurityContext, 0, len(seen))
	for ctx := range seen {
		contexts = append(contexts, ctx)
	}
	sort.Slice(contexts, func(i, j int) bool { return contexts[i] < contexts[j] })
	return contexts
}

// selectorElementName extracts the leading element name of a simple
// selector, or "*" when the selector does not constrain the element.
func selectorElementName(selector string) string {
	if selector == "" {
		return "*"
	}
	end := 0
	for end < len(selector) {
		c := selector[end]
		if c == '[' || c == '.' || c == ':' || c == '#' {
			break
		}
		end++
	}
	name := selector[:end]
	if name == "" {
		return "*"
	}
	return name
}
