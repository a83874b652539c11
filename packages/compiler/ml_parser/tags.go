package ml_parser

import "strings"

// SplitNsName splits a ":namespace:name" string into its namespace prefix
// and local name. Names without a leading ':' have no namespace.
func SplitNsName(elementName string, fatal bool) (string, string) {
	if len(elementName) == 0 || elementName[0] != ':' {
		return "", elementName
	}

	colonIndex := strings.Index(elementName[1:], ":")
	if colonIndex == -1 {
		if fatal {
			panic("Unsupported format \"" + elementName + "\" expecting \":namespace:name\"")
		}
		return "", elementName
	}

	colonIndex++
	return elementName[1:colonIndex], elementName[colonIndex+1:]
}

// MergeNsAndName is the inverse of SplitNsName.
func MergeNsAndName(prefix, localName string) string {
	if prefix != "" {
		return ":" + prefix + ":" + localName
	}
	return localName
}

// IsNgContainer reports whether the tag name (modulo namespace) is ng-container.
func IsNgContainer(tagName string) bool {
	_, name := SplitNsName(tagName, false)
	return name == "ng-container"
}

// IsNgContent reports whether the tag name (modulo namespace) is ng-content.
func IsNgContent(tagName string) bool {
	_, name := SplitNsName(tagName, false)
	return name == "ng-content"
}

// IsNgTemplate reports whether the tag name (modulo namespace) is ng-template.
func IsNgTemplate(tagName string) bool {
	_, name := SplitNsName(tagName, false)
	return name == "ng-template"
}

// GetNsPrefix returns the namespace prefix of a full name, or nil if it has
// none.
func GetNsPrefix(fullName *string) *string {
	if fullName == nil {
		return nil
	}
	prefix, _ := SplitNsName(*fullName, false)
	if prefix == "" {
		return nil
	}
	return &prefix
}
