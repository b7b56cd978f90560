package core

import (
	"strconv"
	"testing"

	"github.com/huangsam/psicosocial/schema"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeAnswers(t *testing.T) {
	tests := []struct {
		name     string
		input    schema.AnswerSet
		expected map[string]string
	}{
		{
			name:     "empty",
			input:    schema.AnswerSet{},
			expected: map[string]string{},
		},
		{
			name:     "compound keys",
			input:    schema.AnswerSet{"intralaboral_12": "siempre", "estres_5": "a_veces"},
			expected: map[string]string{"12": "siempre", "5": "a_veces"},
		},
		{
			name:     "multi segment key keeps only the tail",
			input:    schema.AnswerSet{"seccion_a_7": "nunca"},
			expected: map[string]string{"7": "nunca"},
		},
		{
			name:     "bare id",
			input:    schema.AnswerSet{"101": "siempre"},
			expected: map[string]string{"101": "siempre"},
		},
		{
			name:     "non numeric tail dropped",
			input:    schema.AnswerSet{"comentario_libre": "texto", "ficha_x": "y"},
			expected: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeAnswers(tt.input))
		})
	}
}

func TestResolveAnswer(t *testing.T) {
	tests := []struct {
		raw      string
		expected int
		ok       bool
	}{
		{"nunca", 0, true},
		{"casi_nunca", 1, true},
		{"algunas_veces", 2, true},
		{"a_veces", 2, true},
		{"casi_siempre", 3, true},
		{"siempre", 4, true},
		{"3", 3, true},
		{" 4", 4, true},
		{"2 veces", 2, true},
		{"", 0, false},
		{"quizas", 0, false},
		{"7", 0, false},
		{"-1", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			v, ok := ResolveAnswer(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestScoreDimension(t *testing.T) {
	tests := []struct {
		name          string
		answers       map[string]string
		items         []int
		inverse       map[int]struct{}
		expectedScore float64
		expectedLevel schema.RiskLevel
		expectedRaw   int
		answered      int
	}{
		{
			name:          "all siempre without inversion",
			answers:       map[string]string{"101": "siempre", "102": "siempre", "103": "siempre"},
			items:         []int{101, 102, 103},
			expectedScore: 100.0,
			expectedLevel: schema.RiesgoMuyAlto,
			expectedRaw:   12,
			answered:      3,
		},
		{
			name:          "inverted nunca is maximum risk",
			answers:       map[string]string{"101": "nunca", "102": "nunca"},
			items:         []int{101, 102},
			inverse:       map[int]struct{}{101: {}, 102: {}},
			expectedScore: 100.0,
			expectedLevel: schema.RiesgoMuyAlto,
			expectedRaw:   8,
			answered:      2,
		},
		{
			name:          "empty answers",
			answers:       map[string]string{},
			items:         []int{1, 2, 3},
			expectedScore: 0,
			expectedLevel: schema.SinRiesgo,
		},
		{
			name:          "unresolvable answers are absent",
			answers:       map[string]string{"1": "quizas", "2": "casi_nunca"},
			items:         []int{1, 2},
			expectedScore: 25.0,
			expectedLevel: schema.RiesgoBajo,
			expectedRaw:   1,
			answered:      1,
		},
		{
			name:          "one decimal rounding",
			answers:       map[string]string{"1": "1", "2": "1", "3": "0"},
			items:         []int{1, 2, 3},
			expectedScore: 16.7,
			expectedLevel: schema.SinRiesgo,
			expectedRaw:   2,
			answered:      3,
		},
		{
			name:          "answers outside the dimension ignored",
			answers:       map[string]string{"1": "siempre", "9": "siempre"},
			items:         []int{1, 2},
			expectedScore: 100.0,
			expectedLevel: schema.RiesgoMuyAlto,
			expectedRaw:   4,
			answered:      1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreDimension(tt.answers, tt.items, tt.inverse)
			assert.InDelta(t, tt.expectedScore, got.TransformedScore, 1e-9)
			assert.Equal(t, tt.expectedLevel, got.Level)
			assert.Equal(t, tt.expectedRaw, got.RawScore)
			assert.Equal(t, tt.answered, got.Answered)
		})
	}
}

func TestScoreDimensionIdempotent(t *testing.T) {
	answers := map[string]string{"1": "casi_siempre", "2": "a_veces", "3": "nunca"}
	items := []int{1, 2, 3}
	inverse := map[int]struct{}{2: {}}

	first := ScoreDimension(answers, items, inverse)
	second := ScoreDimension(answers, items, inverse)
	assert.Equal(t, first, second)
}

func TestScoreDimensionMonotonic(t *testing.T) {
	items := []int{1, 2, 3, 4}
	prev := -1.0
	for v := 0; v <= 4; v++ {
		answers := map[string]string{}
		for _, id := range items {
			answers[strconv.Itoa(id)] = strconv.Itoa(v)
		}
		got := ScoreDimension(answers, items, nil)
		assert.Greater(t, got.TransformedScore, prev)
		prev = got.TransformedScore
	}
}

func TestScoreDimensionMaximumRiskIsHundred(t *testing.T) {
	for _, qs := range []QuestionSet{IntralaboralSet(schema.FormA), IntralaboralSet(schema.FormB), ExtralaboralSet(), EstresSet()} {
		for _, dim := range qs.Dimensions {
			answers := map[string]string{}
			for _, id := range dim.Items {
				if _, inv := qs.Inverse[id]; inv {
					answers[strconv.Itoa(id)] = "nunca"
				} else {
					answers[strconv.Itoa(id)] = "siempre"
				}
			}
			got := ScoreDimension(answers, dim.Items, qs.Inverse)
			assert.Equal(t, 100.0, got.TransformedScore, "%s%s", qs.Prefix, dim.Name)
		}
	}
}
