package stats

// Entry is one row of the type distribution.
type Entry struct {
	Type       string
	Count      int
	Percentage string // two fraction digits, e.g. "66.67"
}

// Summary holds the headline numbers of a filtered listing.
type Summary struct {
	Total          int
	MicroCount     int
	DistinctCities int
}
