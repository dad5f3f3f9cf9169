package browse

import (
	"fmt"

	"github.com/kailas-cloud/brewdex/internal/domain/brewery"
	"github.com/kailas-cloud/brewdex/internal/domain/criteria"
	"github.com/kailas-cloud/brewdex/internal/domain/stats"
)

// Filter keeps the records matching both the type and the city filter.
// Matching is exact and case-sensitive; an empty filter matches everything.
// With no filters set the input slice is returned as-is.
func Filter(records []brewery.Brewery, c criteria.Criteria) []brewery.Brewery {
	if !c.HasFilters() {
		return records
	}
	out := make([]brewery.Brewery, 0, len(records))
	for i := range records {
		if matches(&records[i], c) {
			out = append(out, records[i])
		}
	}
	return out
}

func matches(b *brewery.Brewery, c criteria.Criteria) bool {
	return (c.Type == "" || string(b.Type) == c.Type) &&
		(c.City == "" || b.City == c.City)
}

// AggregateByType counts records per type in first-seen order.
// Chart colours and labels rely on that order staying stable for equal input.
func AggregateByType(records []brewery.Brewery) []stats.Entry {
	if len(records) == 0 {
		return []stats.Entry{}
	}

	index := make(map[brewery.Type]int)
	var entries []stats.Entry
	for i := range records {
		t := records[i].Type
		pos, seen := index[t]
		if !seen {
			pos = len(entries)
			index[t] = pos
			entries = append(entries, stats.Entry{Type: string(t)})
		}
		entries[pos].Count++
	}

	for i := range entries {
		entries[i].Percentage = Percentage(entries[i].Count, len(records))
	}
	return entries
}

// Percentage returns 100*count/total with two fraction digits; "0.00" when total is zero.
func Percentage(count, total int) string {
	if total <= 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", 100*float64(count)/float64(total))
}

// Summarize computes the headline numbers of a listing.
func Summarize(records []brewery.Brewery) stats.Summary {
	cities := make(map[string]struct{}, len(records))
	s := stats.Summary{Total: len(records)}
	for i := range records {
		if records[i].Type == brewery.Micro {
			s.MicroCount++
		}
		cities[records[i].City] = struct{}{}
	}
	s.DistinctCities = len(cities)
	return s
}
