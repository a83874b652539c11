package core

// SecurityContext is a classification of the trust required by a binding
// target. Values that can carry active content (URLs, HTML, scripts) need
// sanitization downstream; NONE means the target is inert.
type SecurityContext int

const (
	SecurityContextNone SecurityContext = iota
	SecurityContextHTML
	SecurityContextStyle
	SecurityContextScript
	SecurityContextURL
	SecurityContextResourceURL
)

func (c SecurityContext) String() string {
	switch c {
	case SecurityContextNone:
		return "NONE"
	case SecurityContextHTML:
		return "HTML"
	case SecurityContextStyle:
		return "STYLE"
	case SecurityContextScript:
		return "SCRIPT"
	case SecurityContextURL:
		return "URL"
	case SecurityContextResourceURL:
		return "RESOURCE_URL"
	}
	return "UNKNOWN"
}
