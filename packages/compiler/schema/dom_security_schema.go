package schema

import (
	"strings"

	"tplc-go/packages/compiler/core"
)

var securitySchema map[string]core.SecurityContext

// SecuritySchema returns the map from "tag|property" keys to the security
// context required when binding that property. Case is insignificant: all
// element and attribute names are lower-cased for lookup.
func SecuritySchema() map[string]core.SecurityContext {
	if securitySchema == nil {
		securitySchema = make(map[string]core.SecurityContext)

		registerContext(core.SecurityContextHTML, []string{
			"iframe|srcdoc",
			"*|innerHTML",
			"*|outerHTML",
		})
		registerContext(core.SecurityContextStyle, []string{
			"*|style",
		})
		// NB: no SCRIPT contexts here, they are never allowed due to the parser stripping them.
		registerContext(core.SecurityContextURL, []string{
			"*|formAction",
			"area|href",
			"area|ping",
			"audio|src",
			"a|href",
			"a|ping",
			"blockquote|cite",
			"body|background",
			"del|cite",
			"form|action",
			"img|src",
			"input|src",
			"ins|cite",
			"q|cite",
			"source|src",
			"track|src",
			"video|poster",
			"video|src",
		})
		registerContext(core.SecurityContextResourceURL, []string{
			"applet|code",
			"applet|codebase",
			"base|href",
			"embed|src",
			"frame|src",
			"head|profile",
			"html|manifest",
			"iframe|src",
			"link|href",
			"media|src",
			"object|codebase",
			"object|data",
			"script|src",
		})
	}
	return securitySchema
}

func registerContext(ctx core.SecurityContext, specs []string) {
	for _, spec := range specs {
		securitySchema[strings.ToLower(spec)] = ctx
	}
}

// IframeSecuritySensitiveAttrs is the set of security-sensitive attributes of
// an `<iframe>` that must be applied as a static attribute only.
var IframeSecuritySensitiveAttrs = map[string]bool{
	"sandbox":         true,
	"allow":           true,
	"allowfullscreen": true,
	"referrerpolicy":  true,
	"csp":             true,
	"fetchpriority":   true,
}

// IsIframeSecuritySensitiveAttr checks whether a given attribute name might
// represent a security-sensitive attribute of an <iframe>.
func IsIframeSecuritySensitiveAttr(attrName string) bool {
	return IframeSecuritySensitiveAttrs[strings.ToLower(attrName)]
}
