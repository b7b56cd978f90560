package core

import (
	"math"
	"strconv"
	"strings"

	"github.com/huangsam/psicosocial/core/algo"
	"github.com/huangsam/psicosocial/schema"
)

// Likert scale bounds.
const (
	minLikert = 0
	maxLikert = 4
)

// likertValues maps the textual answer tokens to scale values. The stress
// questionnaire says "a_veces" where the others say "algunas_veces".
var likertValues = map[string]int{
	"nunca":         0,
	"casi_nunca":    1,
	"algunas_veces": 2,
	"a_veces":       2,
	"casi_siempre":  3,
	"siempre":       4,
}

// NormalizeAnswers strips every compound key down to its trailing numeric
// segment ("intralaboral_12" -> "12"). Keys without a numeric tail are dropped,
// and later keys overwrite earlier ones that reduce to the same ID.
func NormalizeAnswers(answers schema.AnswerSet) map[string]string {
	normalized := make(map[string]string, len(answers))
	for key, value := range answers {
		id := key
		if idx := strings.LastIndex(key, "_"); idx >= 0 {
			id = key[idx+1:]
		}
		if _, ok := parseLeadingInt(id); ok {
			normalized[id] = value
		}
	}
	return normalized
}

// parseLeadingInt reads an optionally signed run of digits after leading
// whitespace and ignores whatever follows ("3 veces" -> 3).
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ResolveAnswer converts a raw answer token to a 0-4 scale value. Labels are
// looked up first, then the token is parsed as an integer. Tokens that resolve
// to nothing, or to a value outside the scale, report ok=false.
func ResolveAnswer(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	v, ok := likertValues[raw]
	if !ok {
		v, ok = parseLeadingInt(raw)
	}
	if !ok || v < minLikert || v > maxLikert {
		return 0, false
	}
	return v, true
}

// ScoreDimension computes the transformed 0-100 score and risk level of one
// dimension from normalized answers. Inverted items contribute 4-v. With no
// answered items the score is 0 and the level is the lowest one.
func ScoreDimension(answers map[string]string, items []int, inverse map[int]struct{}) schema.ScoreResult {
	raw, answered := 0, 0
	for _, id := range items {
		v, ok := ResolveAnswer(answers[strconv.Itoa(id)])
		if !ok {
			continue
		}
		if _, inv := inverse[id]; inv {
			v = maxLikert - v
		}
		raw += v
		answered++
	}

	if answered == 0 {
		return schema.ScoreResult{Level: schema.SinRiesgo}
	}

	transformed := float64(raw) / float64(answered*maxLikert) * 100
	return schema.ScoreResult{
		RawScore:         raw,
		Answered:         answered,
		TransformedScore: round1(transformed),
		Level:            algo.ClassifyDimension(transformed),
	}
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
