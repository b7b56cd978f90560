package agg

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/psicosocial/schema"
)

// CountFrequency buckets values by their trimmed text, with blanks counted as
// "Sin datos", and sorts the buckets by count in descending order. Percentages
// use the number of values as denominator.
//
// Ties keep first-seen order, except that labels which are plain non-negative
// integers ("1", "2", ...) come first in ascending numeric order. Stored reports
// have always listed estrato and similar numeric fields that way.
func CountFrequency(values []string) []schema.FrequencyItem {
	counts := make(map[string]int)
	var order []string
	for _, v := range values {
		key := strings.TrimSpace(v)
		if key == "" {
			key = schema.SinDatos
		}
		if _, ok := counts[key]; !ok {
			order = append(order, key)
		}
		counts[key]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		ni, iok := indexLabel(order[i])
		nj, jok := indexLabel(order[j])
		switch {
		case iok && jok:
			return ni < nj
		case iok != jok:
			return iok
		}
		return false
	})

	total := len(values)
	if total == 0 {
		total = 1
	}
	items := make([]schema.FrequencyItem, 0, len(order))
	for _, label := range order {
		items = append(items, schema.FrequencyItem{
			Label:      label,
			Count:      counts[label],
			Percentage: float64(counts[label]) / float64(total),
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Count > items[j].Count
	})
	return items
}

// indexLabel reports whether s is a canonical non-negative integer.
func indexLabel(s string) (uint64, bool) {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == 1<<32-1 {
		return 0, false
	}
	return n, true
}

// leadingInt parses the integer prefix of s after leading whitespace.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	return n, err == nil
}

// leadingFloat parses the decimal prefix of s after leading whitespace.
func leadingFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits, dot := 0, false
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' {
			digits++
		} else if c == '.' && !dot {
			dot = true
		} else {
			break
		}
		end++
	}
	if digits == 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	return f, err == nil
}

// AgeRange buckets a birth year into the age ranges used by the report.
func AgeRange(birthYear string, now time.Time) string {
	year, ok := leadingInt(birthYear)
	if !ok {
		return schema.SinDatos
	}
	age := now.Year() - year
	switch {
	case age < 18:
		return "Menores de 18 años"
	case age <= 25:
		return "Entre 18 y 25 años"
	case age <= 35:
		return "Entre 26 y 35 años"
	case age <= 45:
		return "Entre 36 y 45 años"
	default:
		return "Mayores a 46 años"
	}
}

const menosDeUnAnio = "Menos de 1 año"

// TenureRange buckets a number of years at the company or in the position.
func TenureRange(raw string) string {
	if raw == menosDeUnAnio {
		return menosDeUnAnio
	}
	n, ok := leadingFloat(raw)
	if !ok {
		return schema.SinDatos
	}
	switch {
	case n < 1:
		return menosDeUnAnio
	case n <= 5:
		return "1 a 5 años"
	case n <= 10:
		return "6 a 10 años"
	case n <= 15:
		return "11 a 15 años"
	default:
		return "Más de 15 años"
	}
}

// DependentsRange buckets the number of dependents.
func DependentsRange(raw string) string {
	n, ok := leadingInt(raw)
	if !ok {
		return schema.SinDatos
	}
	switch {
	case n == 0:
		return "Ninguna"
	case n <= 2:
		return "1 a 2"
	case n <= 4:
		return "3 a 4"
	default:
		return "5 o más"
	}
}

// buildDemographics computes every ficha distribution of the population.
func buildDemographics(respondents []schema.RespondentRecord, now time.Time) schema.Demographics {
	field := func(fn func(schema.Ficha) string) []schema.FrequencyItem {
		values := make([]string, len(respondents))
		for i, r := range respondents {
			values[i] = fn(r.Ficha)
		}
		return CountFrequency(values)
	}
	raw := func(key string) []schema.FrequencyItem {
		return field(func(f schema.Ficha) string { return f.Value(key) })
	}

	d := schema.Demographics{TotalParticipants: len(respondents)}
	for _, r := range respondents {
		switch r.FormType {
		case schema.FormA:
			d.FormaA++
		case schema.FormB:
			d.FormaB++
		}
	}

	d.Sexo = raw(fichaSexo)
	d.RangoEdad = field(func(f schema.Ficha) string { return AgeRange(f.Value(fichaNacimiento), now) })
	d.NivelEstudios = raw(fichaEstudios)
	d.TipoVivienda = raw(fichaVivienda)
	d.EstadoCivil = raw(fichaEstadoCivil)
	d.Estrato = raw(fichaEstrato)
	d.PersonasACargo = field(func(f schema.Ficha) string { return DependentsRange(f.Value(fichaPersonasACargo)) })
	d.AniosEmpresa = field(func(f schema.Ficha) string { return TenureRange(f.Value(fichaAniosEmpresa)) })
	d.AniosCargo = field(func(f schema.Ficha) string { return TenureRange(f.Value(fichaAniosCargo)) })
	d.TipoCargo = raw(fichaTipoCargo)
	d.TipoContrato = raw(fichaTipoContrato)
	d.TipoSalario = raw(fichaTipoSalario)
	d.Ocupacion = raw(fichaOcupacion)
	d.HorasDiarias = raw(fichaHorasDiarias)
	d.CiudadResidencia = raw(fichaCiudadResidencia)
	d.DeptResidencia = raw(fichaDeptResidencia)
	d.CiudadTrabajo = raw(fichaCiudadTrabajo)
	d.DeptTrabajo = raw(fichaDeptTrabajo)
	return d
}
