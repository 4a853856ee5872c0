package templates

import (
	"fmt"
	"regexp"
)

// placeholderRegex matches {{name}}-style placeholders, allowing interior
// whitespace and dotted or underscored variable names.
var placeholderRegex = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.]+)\s*\}\}`)

// Render substitutes placeholders in the template's subject and body with
// the string form of the corresponding variables. Placeholders with no
// matching variable are left verbatim so malformed variable sets degrade to
// visible text instead of silent data loss. Rendering is deterministic:
// the same template and variables always yield identical output.
func Render(t Template, vars map[string]any) Rendered {
	return Rendered{
		Subject: substitute(t.Subject, vars),
		Body:    substitute(t.Body, vars),
	}
}

func substitute(s string, vars map[string]any) string {
	if s == "" {
		return s
	}
	return placeholderRegex.ReplaceAllStringFunc(s, func(match string) string {
		name := placeholderRegex.FindStringSubmatch(match)[1]
		v, ok := vars[name]
		if !ok {
			return match
		}
		return stringify(v)
	})
}

// stringify converts a variable value to its string form; nil becomes the
// empty string.
func stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
