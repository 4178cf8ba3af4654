package filter

import (
	"reflect"
	"testing"
)

type job struct {
	Title     string
	Company   string
	Industry  string
	SalaryMin int
	SalaryMax int
}

func titleAndCompany(j job) []string { return []string{j.Title, j.Company} }

func salaryBounds(j job) (int, int, bool) {
	if j.SalaryMin == 0 && j.SalaryMax == 0 {
		return 0, 0, false
	}
	return j.SalaryMin, j.SalaryMax, true
}

var catalog = []job{
	{Title: "Senior Engineer", Company: "Acme", Industry: "Technology", SalaryMin: 90000, SalaryMax: 120000},
	{Title: "Product Designer", Company: "Umbra", Industry: "Design", SalaryMin: 60000, SalaryMax: 85000},
	{Title: "Staff Engineer", Company: "Initech", Industry: "Technology", SalaryMin: 130000, SalaryMax: 170000},
	{Title: "Recruiter", Company: "Engine Works", Industry: "Operations"},
}

func TestApplyNoCriteriaReturnsAll(t *testing.T) {
	got := Apply(catalog)
	if !reflect.DeepEqual(got, catalog) {
		t.Fatalf("expected identity, got %v", got)
	}
}

func TestApplyInactiveCriteriaIgnored(t *testing.T) {
	got := Apply(catalog,
		Substring[job]{Term: "   ", Fields: []func(job) []string{titleAndCompany}},
		Membership[job]{Field: func(j job) string { return j.Industry }},
		Exact[job]{Value: "all", Field: func(j job) string { return j.Industry }},
		Range[job]{Bounds: salaryBounds},
	)
	if len(got) != len(catalog) {
		t.Fatalf("inactive criteria must not filter, got %d of %d", len(got), len(catalog))
	}
}

func TestSubstringCaseInsensitiveAcrossFields(t *testing.T) {
	c := Substring[job]{Term: "ENGINE", Fields: []func(job) []string{titleAndCompany}}
	got := Apply(catalog, c)
	// matches "Senior Engineer", "Staff Engineer" by title and
	// "Engine Works" by company
	want := []string{"Senior Engineer", "Staff Engineer", "Recruiter"}
	if len(got) != len(want) {
		t.Fatalf("expected %d matches, got %v", len(want), got)
	}
	for i, title := range want {
		if got[i].Title != title {
			t.Fatalf("position %d: expected %q, got %q", i, title, got[i].Title)
		}
	}
}

func TestMembershipExactAndOrderPreserving(t *testing.T) {
	c := Membership[job]{
		Candidates: []string{"Technology"},
		Field:      func(j job) string { return j.Industry },
	}
	got := Apply(catalog, c)
	if len(got) != 2 || got[0].Company != "Acme" || got[1].Company != "Initech" {
		t.Fatalf("expected ordered Technology jobs, got %v", got)
	}

	// membership is case-sensitive
	lower := Membership[job]{
		Candidates: []string{"technology"},
		Field:      func(j job) string { return j.Industry },
	}
	if got := Apply(catalog, lower); len(got) != 0 {
		t.Fatalf("lowercase candidate must not match, got %v", got)
	}
}

func TestRangeOverlap(t *testing.T) {
	cases := []struct {
		name     string
		min, max int
		entity   job
		want     bool
	}{
		{"overlapping", 50000, 100000, catalog[0], true},
		{"touching boundary counts", 120000, 150000, catalog[0], true},
		{"disjoint above", 121000, 200000, catalog[0], false},
		{"disjoint below", 10000, 50000, catalog[0], false},
		{"zero max means unbounded", 100000, 0, catalog[2], true},
		{"no salary data fails active criterion", 1, 0, catalog[3], false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Range[job]{Min: tc.min, Max: tc.max, Bounds: salaryBounds}
			if got := c.Match(tc.entity); got != tc.want {
				t.Fatalf("[%d,%d] vs %v: expected %v", tc.min, tc.max, tc.entity, tc.want)
			}
		})
	}
}

func TestCriteriaCombineWithAnd(t *testing.T) {
	sub := Substring[job]{Term: "engineer", Fields: []func(job) []string{titleAndCompany}}
	member := Membership[job]{
		Candidates: []string{"Technology"},
		Field:      func(j job) string { return j.Industry },
	}
	rng := Range[job]{Min: 125000, Max: 0, Bounds: salaryBounds}

	combined := Apply(catalog, sub, member, rng)
	if len(combined) != 1 || combined[0].Company != "Initech" {
		t.Fatalf("expected only Initech, got %v", combined)
	}

	// applying one at a time yields the same subsequence
	sequential := Apply(Apply(Apply(catalog, sub), member), rng)
	if !reflect.DeepEqual(combined, sequential) {
		t.Fatalf("combined %v differs from sequential %v", combined, sequential)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	before := make([]job, len(catalog))
	copy(before, catalog)
	_ = Apply(catalog, Substring[job]{Term: "designer", Fields: []func(job) []string{titleAndCompany}})
	if !reflect.DeepEqual(before, catalog) {
		t.Fatal("input slice was mutated")
	}
}
