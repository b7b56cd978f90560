package core

import (
	"strconv"
	"strings"
	"testing"

	"github.com/huangsam/psicosocial/schema"
)

// FuzzResolveAnswer fuzzes answer tokens and checks the scale bounds.
func FuzzResolveAnswer(f *testing.F) {
	seeds := []string{"nunca", "a_veces", "siempre", "3", " 2 veces", "-1", "5", "", "99999999999999999999"}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		v, ok := ResolveAnswer(raw)
		if ok && (v < minLikert || v > maxLikert) {
			t.Fatalf("ResolveAnswer(%q) = %d outside the scale", raw, v)
		}
		if !ok && v != 0 {
			t.Fatalf("ResolveAnswer(%q) returned %d with ok=false", raw, v)
		}
	})
}

// FuzzScoreDimension fuzzes comma-separated answers for one dimension.
func FuzzScoreDimension(f *testing.F) {
	seeds := []string{
		"siempre,nunca,casi_siempre",
		"0,0,0",
		"4,4,4,4",
		",,,",
		"x,3,algunas_veces,7",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, joined string) {
		answers := schema.AnswerSet{}
		var items []int
		for i, v := range strings.Split(joined, ",") {
			id := 10 + i%10
			answers["pregunta_"+strconv.Itoa(id)] = v
			items = append(items, id)
		}

		res := ScoreDimension(NormalizeAnswers(answers), items, map[int]struct{}{10: {}})
		if res.TransformedScore < 0 || res.TransformedScore > 100 {
			t.Fatalf("score %v outside 0-100 for %q", res.TransformedScore, joined)
		}
		if res.Answered == 0 && res.TransformedScore != 0 {
			t.Fatalf("unanswered dimension scored %v", res.TransformedScore)
		}
		if res.Level == "" {
			t.Fatalf("empty level for %q", joined)
		}
	})
}
