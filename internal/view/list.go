package view

import (
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/kailas-cloud/brewdex/internal/domain/brewery"
	"github.com/kailas-cloud/brewdex/internal/domain/chart"
	"github.com/kailas-cloud/brewdex/internal/domain/criteria"
	"github.com/kailas-cloud/brewdex/internal/domain/stats"
	"github.com/kailas-cloud/brewdex/internal/location"
)

// Title is the list screen header.
const Title = "Let's grab a beer!!!"

// ListPage is everything the list screen shows.
type ListPage struct {
	Criteria criteria.Criteria
	Rows     []brewery.Brewery
	Entries  []stats.Entry
	Summary  stats.Summary
	Loading  bool
	Failure  string
	Chart    chart.Kind
}

// List renders the search/list screen.
func List(w io.Writer, lp *ListPage) error {
	pg := newPage()

	pg.line(Title)
	pg.line(strings.Repeat("=", len(Title)))
	pg.line("")

	pg.printf("Total Breweries: %d\n", lp.Summary.Total)
	pg.printf("Total Micro Breweries: %d\n", lp.Summary.MicroCount)
	pg.printf("Total Cities: %d\n", lp.Summary.DistinctCities)
	pg.line("")

	writeFilters(pg, lp.Criteria)
	pg.line("")

	if lp.Loading {
		pg.line("Loading...")
	}
	if lp.Failure != "" {
		pg.line("Error: " + lp.Failure)
	}

	switch {
	case len(lp.Rows) > 0:
		writeTable(pg, lp.Rows)
	case !lp.Loading && lp.Failure == "" && lp.Criteria.Query != "":
		pg.layoutf("No results found for %q.\n", lp.Criteria.Query)
	case !lp.Loading && lp.Failure == "":
		pg.line("No breweries to show.")
	}
	pg.line("")

	kind := lp.Chart
	if !kind.IsValid() {
		kind = chart.Bar
	}
	writeChart(pg, kind, lp.Entries)

	return pg.flush(w)
}

func writeFilters(pg *page, c criteria.Criteria) {
	pg.layoutf("Search: %s\n", c.Query)

	options := make([]string, 0, len(brewery.FilterOptions)+1)
	selected := "All Types"
	options = append(options, "All Types")
	for _, t := range brewery.FilterOptions {
		options = append(options, typeLabel(t))
		if string(t) == c.Type {
			selected = typeLabel(t)
		}
	}
	if c.Type != "" && selected == "All Types" {
		// Types outside the selector still filter; show them verbatim.
		selected = c.Type
	}
	pg.layoutf("Type:   %s  [%s]\n", selected, strings.Join(options, " | "))

	city := c.City
	if city == "" {
		city = "(any)"
	}
	pg.layoutf("City:   %s\n", city)
}

func writeTable(pg *page, rows []brewery.Brewery) {
	tw := tabwriter.NewWriter(&pg.buf, 0, 0, 2, ' ', 0)
	_, _ = io.WriteString(tw, "#\tName\tAddress\tCity\tBrewery Type\tCountry\tDetails\n")
	for i := range rows {
		b := &rows[i]
		_, _ = io.WriteString(tw, strings.Join([]string{
			strconv.Itoa(i + 1),
			cell(b.Name),
			cell(orNA(b.Address1)),
			cell(b.City),
			cell(string(b.Type)),
			cell(b.Country),
			location.DetailPath(b.ID),
		}, "\t")+"\n")
	}
	_ = tw.Flush()
}

// cell keeps tabs and newlines inside a field from breaking the table layout.
func cell(s string) string {
	return strings.NewReplacer("\t", " ", "\n", " ", "\r", " ").Replace(s)
}
