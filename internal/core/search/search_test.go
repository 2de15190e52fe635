package search

import (
	"testing"

	"afterschool/internal/core/domain"
)

var lessons = []domain.Lesson{
	{ID: "1", Subject: "Mathematics", Location: "London", Price: 100, Space: 5},
	{ID: "2", Subject: "Art & Design", Location: "Leeds", Price: 85, Space: 100},
	{ID: "3", Subject: "Room 100 Club", Location: "Birmingham", Price: 42, Space: 7},
	{ID: "4", Subject: "a.b workshop", Location: "Manchester", Price: 99.5, Space: 3},
	{ID: "5", Subject: "axb workshop", Location: "Manchester", Price: 60, Space: 3},
}

func matchIDs(t *testing.T, raw string) map[string]bool {
	t.Helper()
	match := Compile(raw)
	ids := make(map[string]bool)
	for _, l := range lessons {
		if match(l) {
			ids[l.ID] = true
		}
	}
	return ids
}

func TestCompile_EmptyMatchesAll(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t"} {
		if got := matchIDs(t, raw); len(got) != len(lessons) {
			t.Errorf("query %q: expected all %d lessons, got %d", raw, len(lessons), len(got))
		}
	}
}

func TestCompile_SubstringCaseInsensitive(t *testing.T) {
	got := matchIDs(t, "london")
	if !got["1"] {
		t.Error("expected lesson in London to match 'london'")
	}
	if len(got) != 1 {
		t.Errorf("expected 1 match, got %d", len(got))
	}
}

func TestCompile_NumericBranchesAdditive(t *testing.T) {
	// "100" must match on price, on space, and as a literal substring.
	got := matchIDs(t, "100")
	if !got["1"] {
		t.Error("expected price 100 to match")
	}
	if !got["2"] {
		t.Error("expected space 100 to match")
	}
	if !got["3"] {
		t.Error("expected subject containing '100' to match")
	}
	if got["4"] || got["5"] {
		t.Error("unexpected match on unrelated lesson")
	}
}

func TestCompile_FloatMatchesPriceOnly(t *testing.T) {
	got := matchIDs(t, "99.5")
	if !got["4"] {
		t.Error("expected price 99.5 to match")
	}
	if len(got) != 1 {
		t.Errorf("expected 1 match, got %d", len(got))
	}
}

func TestCompile_MetacharactersAreLiteral(t *testing.T) {
	got := matchIDs(t, "a.b")
	if !got["4"] {
		t.Error("expected literal 'a.b' to match")
	}
	if got["5"] {
		t.Error("dot must not act as a wildcard: 'axb' matched")
	}
}

func TestCompile_NonNumericSkipsNumericBranches(t *testing.T) {
	got := matchIDs(t, "zzz")
	if len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}
}
