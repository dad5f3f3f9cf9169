package browse

import (
	"reflect"
	"testing"

	"github.com/kailas-cloud/brewdex/internal/domain/brewery"
	"github.com/kailas-cloud/brewdex/internal/domain/criteria"
	"github.com/kailas-cloud/brewdex/internal/domain/stats"
)

func rec(id string, t brewery.Type, city string) brewery.Brewery {
	return brewery.Brewery{ID: id, Name: "Brewery " + id, Type: t, City: city}
}

// fiveDogs has 3 micro and 2 regional breweries across three cities.
func fiveDogs() []brewery.Brewery {
	return []brewery.Brewery{
		rec("1", brewery.Micro, "Portland"),
		rec("2", brewery.Regional, "Boston"),
		rec("3", brewery.Micro, "Boston"),
		rec("4", brewery.Regional, "Denver"),
		rec("5", brewery.Micro, "Portland"),
	}
}

func ids(records []brewery.Brewery) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		c    criteria.Criteria
		want []string
	}{
		{"no filters", criteria.Criteria{}, []string{"1", "2", "3", "4", "5"}},
		{"query text is not a filter", criteria.Criteria{Query: "zzz"}, []string{"1", "2", "3", "4", "5"}},
		{"type", criteria.Criteria{Type: "micro"}, []string{"1", "3", "5"}},
		{"city", criteria.Criteria{City: "Boston"}, []string{"2", "3"}},
		{"type and city", criteria.Criteria{Type: "micro", City: "Boston"}, []string{"3"}},
		{"case sensitive type", criteria.Criteria{Type: "Micro"}, []string{}},
		{"case sensitive city", criteria.Criteria{City: "boston"}, []string{}},
		{"no trimming", criteria.Criteria{City: "Boston "}, []string{}},
		{"unknown type", criteria.Criteria{Type: "cidery"}, []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(Filter(fiveDogs(), tc.c))
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Filter() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFilter_IdentityWithoutFilters(t *testing.T) {
	in := fiveDogs()
	out := Filter(in, criteria.Criteria{Query: "dog"})
	if len(out) != len(in) || &out[0] != &in[0] {
		t.Error("expected the input slice to be returned unchanged")
	}
}

func TestFilter_Idempotent(t *testing.T) {
	cases := []criteria.Criteria{
		{}, {Type: "micro"}, {City: "Boston"}, {Type: "regional", City: "Denver"}, {Type: "nano"},
	}
	for _, c := range cases {
		once := Filter(fiveDogs(), c)
		twice := Filter(once, c)
		if !reflect.DeepEqual(ids(once), ids(twice)) {
			t.Errorf("filter not idempotent for %+v: %v vs %v", c, ids(once), ids(twice))
		}
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	in := fiveDogs()
	_ = Filter(in, criteria.Criteria{Type: "regional"})
	if !reflect.DeepEqual(in, fiveDogs()) {
		t.Error("input was modified")
	}
}

func TestAggregateByType_FirstSeenOrder(t *testing.T) {
	records := []brewery.Brewery{
		rec("1", brewery.Regional, "A"),
		rec("2", brewery.Micro, "A"),
		rec("3", brewery.Brewpub, "A"),
		rec("4", brewery.Micro, "A"),
		rec("5", brewery.Type("mystery"), "A"),
		rec("6", brewery.Regional, "A"),
	}

	want := []stats.Entry{
		{Type: "regional", Count: 2, Percentage: "33.33"},
		{Type: "micro", Count: 2, Percentage: "33.33"},
		{Type: "brewpub", Count: 1, Percentage: "16.67"},
		{Type: "mystery", Count: 1, Percentage: "16.67"},
	}

	got := AggregateByType(records)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AggregateByType() =\n%+v\nwant\n%+v", got, want)
	}
}

func TestAggregateByType_CountsSumToLength(t *testing.T) {
	for _, c := range []criteria.Criteria{{}, {Type: "micro"}, {City: "Boston"}, {City: "Nowhere"}} {
		rows := Filter(fiveDogs(), c)
		sum := 0
		for _, e := range AggregateByType(rows) {
			if e.Count < 1 {
				t.Errorf("entry %+v has count < 1", e)
			}
			sum += e.Count
		}
		if sum != len(rows) {
			t.Errorf("criteria %+v: counts sum to %d, want %d", c, sum, len(rows))
		}
	}
}

func TestAggregateByType_Empty(t *testing.T) {
	got := AggregateByType(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		count, total int
		want         string
	}{
		{3, 3, "100.00"},
		{1, 3, "33.33"},
		{2, 3, "66.67"},
		{1, 8, "12.50"},
		{0, 0, "0.00"},
		{5, 0, "0.00"},
	}
	for _, tc := range tests {
		if got := Percentage(tc.count, tc.total); got != tc.want {
			t.Errorf("Percentage(%d, %d) = %q, want %q", tc.count, tc.total, got, tc.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize(fiveDogs())
	want := stats.Summary{Total: 5, MicroCount: 3, DistinctCities: 3}
	if got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}

	if empty := Summarize(nil); empty != (stats.Summary{}) {
		t.Errorf("expected zero summary, got %+v", empty)
	}
}

func TestSummarize_TotalMatchesFilteredLength(t *testing.T) {
	for _, c := range []criteria.Criteria{{}, {Type: "regional"}, {City: "Portland"}} {
		rows := Filter(fiveDogs(), c)
		if got := Summarize(rows).Total; got != len(rows) {
			t.Errorf("criteria %+v: total %d, want %d", c, got, len(rows))
		}
	}
}

func TestScenario_MicroFilterAggregation(t *testing.T) {
	svc := New(nil)
	listing := svc.View(fiveDogs(), criteria.Criteria{Query: "dog", Type: "micro"})

	if len(listing.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(listing.Rows))
	}
	want := []stats.Entry{{Type: "micro", Count: 3, Percentage: "100.00"}}
	if !reflect.DeepEqual(listing.Entries, want) {
		t.Errorf("entries = %+v, want %+v", listing.Entries, want)
	}
	if listing.Summary != (stats.Summary{Total: 3, MicroCount: 3, DistinctCities: 2}) {
		t.Errorf("unexpected summary %+v", listing.Summary)
	}
}

func TestView_Deterministic(t *testing.T) {
	svc := New(nil)
	c := criteria.Criteria{City: "Boston"}
	a := svc.View(fiveDogs(), c)
	b := svc.View(fiveDogs(), c)
	if !reflect.DeepEqual(a, b) {
		t.Error("expected identical listings for identical input")
	}
}
