package app

import (
	"github.com/kailas-cloud/brewdex/internal/domain/brewery"
	"github.com/kailas-cloud/brewdex/internal/domain/chart"
	"github.com/kailas-cloud/brewdex/internal/domain/criteria"
	"github.com/kailas-cloud/brewdex/internal/usecase/detail"
)

// State is an immutable snapshot of the session. Every event replaces it whole;
// slices inside are shared between snapshots and never written to.
type State struct {
	// Location is the address bar. Criteria is always derived from it.
	Location string
	Criteria criteria.Criteria

	// Results answers ResultsQuery; HasResults is false until the first search lands.
	Results       []brewery.Brewery
	ResultsQuery  string
	HasResults    bool
	SearchFailure string
	Loading       bool

	// resultsNav identifies the navigation that settled Results.
	resultsNav uint64

	Detail detail.State
	Chart  chart.Kind

	// detailNav identifies the navigation that settled Detail.
	detailNav uint64

	// nav identifies the navigation that produced Location.
	nav uint64
}

// Page is one rendered screen.
type Page struct {
	Location string
	Status   int
	Body     string
}
