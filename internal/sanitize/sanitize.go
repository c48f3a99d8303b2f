package sanitize

import (
	"regexp"
	"strings"
)

// Method selects how model-supplied names are made safe as SQL identifiers.
type Method string

const (
	// MethodUnderscore replaces every character outside [A-Za-z0-9_] with an
	// underscore. Recommended for Databricks Delta tables.
	MethodUnderscore Method = "underscore"
	// MethodBacktick wraps the name in backticks without altering it.
	MethodBacktick Method = "backtick"
	// MethodDoubleQuote wraps the name in double quotes without altering it.
	MethodDoubleQuote Method = "doublequote"
)

// AllMethods lists the supported sanitization methods for cycling in the wizard.
var AllMethods = []Method{MethodUnderscore, MethodBacktick, MethodDoubleQuote}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// Identifier sanitizes a table or column name using the given method.
// Empty input is returned unchanged. Any pre-existing wrapping backticks or
// double quotes are stripped first. The quoting methods wrap the stripped
// name verbatim; an embedded quote character matching the wrapper is not
// escaped, matching Databricks identifier handling in the upstream models.
func Identifier(name string, method Method) string {
	if name == "" {
		return name
	}

	name = strings.Trim(name, "`\"")

	switch method {
	case MethodBacktick:
		return "`" + name + "`"
	case MethodDoubleQuote:
		return `"` + name + `"`
	default:
		return unsafeChars.ReplaceAllString(name, "_")
	}
}

// ConstraintPart normalizes a name for use inside a constraint or database
// name. Constraint names have tighter restrictions than quoted identifiers,
// so this is always underscore-style and lower-cased, independent of the
// identifier method in effect.
func ConstraintPart(name string) string {
	return unsafeChars.ReplaceAllString(strings.ToLower(name), "_")
}

// ParseMethod maps a configuration string to a Method, defaulting to
// underscore for unrecognized values.
func ParseMethod(s string) Method {
	switch Method(strings.ToLower(s)) {
	case MethodBacktick:
		return MethodBacktick
	case MethodDoubleQuote:
		return MethodDoubleQuote
	default:
		return MethodUnderscore
	}
}
