package pipeline

import (
	"tplc-go/packages/compiler/template/pipeline/ir"
	"tplc-go/packages/compiler/util"
)

// The TemplateDefinitionBuilder compatibility mode reproduces the legacy
// generator's output exactly, including behaviors that are wrong on purpose.
// Downstream consumers depend on these shapes bit for bit, so none of them
// may be "fixed" here. The full quirk list:
//
//  1. Sub-expressions of a text interpolation carry no source spans: the
//     base span is dropped before lowering them (interpolationBaseSpan).
//  2. Dynamic attribute, class and style bindings on a plain <ng-template>
//     are reclassified as property bindings, even though that is
//     semantically unusual (createTemplateBinding).
//  3. Class, style and property bindings in a template's structural
//     attribute list that are not themselves structural are demoted to
//     extracted attributes with no update instruction; non-text attribute
//     and legacy animation bindings in that position are dropped entirely
//     (createTemplateBinding).
//  4. An explicit `this` receiver is erased, lowering `this.x` to a bare
//     lexical read, except for the names `$event` and `$any`, which keep
//     their explicit receiver (isSpecialThisName). This mirrors the legacy
//     scoping rather than correct scoping.
//  5. The i18n-attributes grouping op is appended whenever any binding on
//     the element carries an i18n message. The legacy condition reads as if
//     it meant to test something narrower, but it always evaluated this
//     way, so this is the behavior kept (ingestElementBindings).
//
// Quirks 2-5 predate the compatibility flag and are applied in both modes;
// only quirk 1 is gated on the flag.

// interpolationBaseSpan returns the base span to lower a text
// interpolation's sub-expressions against: nil in compatibility mode, which
// makes every sub-expression span nil.
func interpolationBaseSpan(compatibility ir.CompatibilityMode, span *util.ParseSourceSpan) *util.ParseSourceSpan {
	if compatibility == ir.CompatibilityModeTemplateDefinitionBuilder {
		return nil
	}
	return span
}

// isSpecialThisName reports whether a property name read off an explicit
// `this` must keep its explicit receiver.
func isSpecialThisName(name string) bool {
	return name == "$event" || name == "$any"
}
