// Package render turns templated problem text into display text: it
// instantiates per-attempt variable bindings and substitutes ${...}
// arithmetic markers.
package render

import (
	"regexp"
	"strconv"

	"github.com/junwei/stepmath/internal/expr"
)

// marker matches one ${expression} substitution site.
var marker = regexp.MustCompile(`\$\{([^}]+)\}`)

// Render substitutes every ${expr} marker in the template with the value of
// the enclosed arithmetic expression evaluated against vars. A marker whose
// expression fails to evaluate renders as "?"; the rest of the template is
// unaffected. vars is never mutated.
func Render(template string, vars map[string]float64) string {
	if template == "" {
		return template
	}

	return marker.ReplaceAllStringFunc(template, func(m string) string {
		inner := m[2 : len(m)-1]
		v, err := expr.Eval(inner, vars)
		if err != nil {
			return "?"
		}
		return formatNumber(v)
	})
}

// formatNumber renders integral values without a decimal point and keeps
// fractional values compact.
func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
