package core

import (
	"maps"
	"slices"

	"github.com/huangsam/psicosocial/schema"
)

// Dimension is one named sub-scale and the question IDs that belong to it.
type Dimension struct {
	Name  string
	Items []int
}

// QuestionSet is a complete question map for one questionnaire: its result-key
// namespace, dimensions in presentation order, and the inverted item IDs.
type QuestionSet struct {
	Prefix     string
	Dimensions []Dimension
	Inverse    map[int]struct{}
}

// span returns the inclusive range [from, to].
func span(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

// join concatenates item lists.
func join(parts ...[]int) []int {
	var out []int
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// set builds an item lookup.
func set(items []int) map[int]struct{} {
	out := make(map[int]struct{}, len(items))
	for _, id := range items {
		out[id] = struct{}{}
	}
	return out
}

var (
	inverseItemsA = set(join(
		[]int{4, 5, 6, 9, 12, 14, 32, 34},
		span(39, 51), span(53, 79), span(81, 105),
	))

	inverseItemsB = set(join(
		[]int{4, 5, 6, 9, 12, 14, 22, 24},
		span(29, 65), span(67, 88),
	))

	inverseItemsExtra = set(join(
		[]int{1, 4, 5, 7, 8, 9},
		span(10, 23), []int{25, 27, 29},
	))

	noInverseItems = map[int]struct{}{}
)

// formADimensions is the intralaboral map for Forma A. Some dimensions share
// items; each is scored independently.
var formADimensions = []Dimension{
	{"Condiciones Ambientales", []int{1, 2, 3, 4, 5, 6, 8, 9, 10, 11, 12}},
	{"Demandas Cuantitativas", span(13, 15)},
	{"Demandas de Carga Mental", span(16, 21)},
	{"Demandas Emocionales", span(106, 114)},
	{"Exigencias de Responsabilidad", span(22, 26)},
	{"Demandas de la Jornada", span(31, 38)},
	{"Consistencia del Rol", span(27, 30)},
	{"Control y Autonomía", span(39, 47)},
	{"Oportunidades de Desarrollo", span(39, 42)},
	{"Claridad de Rol", span(53, 59)},
	{"Capacitación", span(60, 62)},
	{"Participación y Manejo del Cambio", span(48, 52)},
	{"Características del Liderazgo", span(63, 75)},
	{"Relaciones Sociales", span(76, 89)},
	{"Relación con Colaboradores", span(115, 123)},
	{"Reconocimiento y Compensación", []int{90, 91, 92, 93, 94, 96, 97, 98}},
	{"Recompensas (Pertenencia)", join([]int{95}, span(99, 105))},
}

var formBDimensions = []Dimension{
	{"Condiciones Ambientales", span(1, 12)},
	{"Demandas Cuantitativas", span(13, 15)},
	{"Demandas de Carga Mental", span(16, 20)},
	{"Demandas Emocionales", span(89, 97)},
	{"Demandas de la Jornada", span(21, 28)},
	{"Control y Autonomía", span(29, 37)},
	{"Participación y Manejo del Cambio", span(38, 40)},
	{"Claridad de Rol", span(41, 45)},
	{"Capacitación", span(46, 48)},
	{"Características del Liderazgo", span(49, 61)},
	{"Relaciones Sociales", span(62, 73)},
	{"Reconocimiento y Compensación", span(74, 81)},
	{"Recompensas (Pertenencia)", span(82, 88)},
}

var extralaboralDimensions = []Dimension{
	{"Tiempo fuera del trabajo", span(14, 17)},
	{"Relaciones Familiares", span(18, 28)},
	{"Situación Económica", span(29, 31)},
	{"Vivienda y Entorno", span(1, 13)},
}

var estresDimensions = []Dimension{
	{"Síntomas Fisiológicos", span(1, 8)},
	{"Síntomas Comportamiento Social", span(9, 12)},
	{"Síntomas Intelectuales y Laborales", span(13, 22)},
	{"Síntomas Psicoemocionales", span(23, 31)},
}

// newQuestionSet returns a deep copy so callers can never mutate the
// package-level maps.
func newQuestionSet(prefix string, dims []Dimension, inverse map[int]struct{}) QuestionSet {
	copied := make([]Dimension, len(dims))
	for i, d := range dims {
		copied[i] = Dimension{Name: d.Name, Items: slices.Clone(d.Items)}
	}
	return QuestionSet{Prefix: prefix, Dimensions: copied, Inverse: maps.Clone(inverse)}
}

// IntralaboralSet returns the intralaboral question map for a form variant.
// Anything other than Forma B uses Forma A.
func IntralaboralSet(form schema.FormType) QuestionSet {
	if form == schema.FormB {
		return newQuestionSet(schema.IntraKeyPrefix, formBDimensions, inverseItemsB)
	}
	return newQuestionSet(schema.IntraKeyPrefix, formADimensions, inverseItemsA)
}

// ExtralaboralSet returns the extralaboral question map shared by both forms.
func ExtralaboralSet() QuestionSet {
	return newQuestionSet(schema.ExtraKeyPrefix, extralaboralDimensions, inverseItemsExtra)
}

// EstresSet returns the stress question map. Stress items are never inverted.
func EstresSet() QuestionSet {
	return newQuestionSet(schema.EstresKeyPrefix, estresDimensions, noInverseItems)
}
