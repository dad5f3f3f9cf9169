package view

import (
	"strings"

	"github.com/kailas-cloud/brewdex/internal/domain/chart"
	"github.com/kailas-cloud/brewdex/internal/domain/stats"
)

const (
	barWidth = 30
	pieWidth = 40
)

// Glyphs are assigned by entry position, so equal input keeps equal colouring.
var pieGlyphs = []rune{'█', '▓', '▒', '░', '#', '*', '+', '='}

func writeChart(pg *page, kind chart.Kind, entries []stats.Entry) {
	pg.layoutf("Brewery Types Distribution (%s)\n", kind)
	if len(entries) == 0 {
		pg.line("No data to chart.")
		return
	}
	switch kind {
	case chart.Pie:
		writePie(pg, entries)
	default:
		writeBar(pg, entries)
	}
}

func writeBar(pg *page, entries []stats.Entry) {
	maxCount, labelWidth := 0, 0
	for _, e := range entries {
		maxCount = max(maxCount, e.Count)
		labelWidth = max(labelWidth, len(e.Type))
	}

	for _, e := range entries {
		n := max(1, e.Count*barWidth/maxCount)
		pg.layoutf("%-*s %-*s %d (%s%%)\n",
			labelWidth, e.Type, barWidth, strings.Repeat("█", n), e.Count, e.Percentage)
	}
}

func writePie(pg *page, entries []stats.Entry) {
	var strip strings.Builder
	for i, n := range pieSlices(entries, pieWidth) {
		strip.WriteString(strings.Repeat(string(glyph(i)), n))
	}
	pg.line("[" + strip.String() + "]")

	for i, e := range entries {
		pg.layoutf("%c %s: %d (%s%%)\n", glyph(i), e.Type, e.Count, e.Percentage)
	}
}

func glyph(i int) rune {
	return pieGlyphs[i%len(pieGlyphs)]
}

// pieSlices splits width cells across entries proportionally to their counts
// using the largest remainder method, so the cells always sum to width.
func pieSlices(entries []stats.Entry, width int) []int {
	total := 0
	for _, e := range entries {
		total += e.Count
	}
	cells := make([]int, len(entries))
	if total == 0 {
		return cells
	}

	type remainder struct{ idx, rem int }
	rems := make([]remainder, len(entries))
	used := 0
	for i, e := range entries {
		cells[i] = e.Count * width / total
		used += cells[i]
		rems[i] = remainder{i, e.Count * width % total}
	}

	// Stable selection: larger remainder first, earlier entry on ties.
	for left := width - used; left > 0; left-- {
		best := -1
		for j, r := range rems {
			if r.rem < 0 {
				continue
			}
			if best < 0 || r.rem > rems[best].rem {
				best = j
			}
		}
		if best < 0 {
			break
		}
		cells[rems[best].idx]++
		rems[best].rem = -1
	}
	return cells
}
