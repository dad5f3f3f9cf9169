package view

import (
	"io"

	"github.com/kailas-cloud/brewdex/internal/domain/brewery"
	"github.com/kailas-cloud/brewdex/internal/usecase/detail"
)

// Detail renders the detail screen for st.
func Detail(w io.Writer, st detail.State) error {
	pg := newPage()

	switch st.Status {
	case detail.Loaded:
		writeBrewery(pg, &st.Brewery)
	case detail.Failed:
		pg.line("Error: " + st.Message)
	case detail.NotFound:
		pg.line("Brewery not found.")
	default:
		pg.line("Loading...")
	}

	pg.line("")
	pg.line("< Back")
	return pg.flush(w)
}

func writeBrewery(pg *page, b *brewery.Brewery) {
	pg.line(b.Name)
	pg.line("Address: " + orNA(b.Street))
	pg.line("City: " + orNA(b.City))
	pg.line("State: " + orNA(b.State))
	pg.line("Postal Code: " + orNA(b.PostalCode))
	pg.line("Country: " + orNA(b.Country))
	pg.line("Type: " + orNA(string(b.Type)))
	pg.line("Website: " + orNA(b.WebsiteURL))
	pg.line("Phone: " + orNA(b.Phone))
}

// NotFound renders the screen for an unknown route.
func NotFound(w io.Writer, path string) error {
	pg := newPage()
	pg.layoutf("Page not found: %s\n", path)
	pg.line("")
	pg.line("< Back")
	return pg.flush(w)
}
