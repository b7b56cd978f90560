package schema

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Ficha holds the demographic questionnaire. Values arrive as JSON strings or
// numbers depending on the form widget, so they are kept untyped.
type Ficha map[string]any

// Value returns the ficha field as a string, or "" when unset.
func (f Ficha) Value(key string) string {
	raw, ok := f[key]
	if !ok || raw == nil {
		return ""
	}
	switch v := raw.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// riskLevelAliases maps lower-cased labels, including the title-case labels
// produced by older scorers, onto the canonical levels.
var riskLevelAliases = map[string]RiskLevel{
	"sin riesgo":                       SinRiesgo,
	"sin riesgo o riesgo despreciable": SinRiesgo,
	"riesgo bajo":                      RiesgoBajo,
	"riesgo medio":                     RiesgoMedio,
	"riesgo alto":                      RiesgoAlto,
	"riesgo muy alto":                  RiesgoMuyAlto,
	"no aplica":                        NoAplica,
}

// NormalizeRiskLevel maps a stored level label to its canonical value.
// Unknown or empty labels fall back to SinRiesgo.
func NormalizeRiskLevel(raw string) RiskLevel {
	if lvl, ok := riskLevelAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return lvl
	}
	return SinRiesgo
}

// Rank returns the ordinal position of the level (0 = lowest), or -1 for NoAplica.
func (l RiskLevel) Rank() int {
	for i, lvl := range RiskLevels {
		if lvl == l {
			return i
		}
	}
	return -1
}

// ShortLabel returns the compact label used in chart legends and table headers.
func (l RiskLevel) ShortLabel() string {
	if l == SinRiesgo {
		return "Sin riesgo"
	}
	return string(l)
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// SafeFileComponent replaces every non-alphanumeric character with '_' and
// truncates the result to maxLen bytes.
func SafeFileComponent(s string, maxLen int) string {
	safe := unsafeFileChars.ReplaceAllString(s, "_")
	if len(safe) > maxLen {
		safe = safe[:maxLen]
	}
	return safe
}
