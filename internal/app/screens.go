package app

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/brewdex/internal/location"
	logpkg "github.com/kailas-cloud/brewdex/internal/logger"
	chiTransport "github.com/kailas-cloud/brewdex/internal/transport/chi"
	"github.com/kailas-cloud/brewdex/internal/usecase/detail"
	"github.com/kailas-cloud/brewdex/internal/view"
)

var _ chiTransport.Screens = (*Session)(nil)

// ListScreen renders "/". Criteria come from the request's query string; the
// directory is queried when the results in state answer a different text, or
// when the last search for this text failed and this is a new navigation.
func (s *Session) ListScreen(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	nav := navFromContext(ctx)
	c := location.Read(r.URL.RawQuery)

	st := s.Snapshot()
	if !resultsReusable(&st, c.Query, nav) {
		if s.commitIfCurrent(nav, func(st *State) { st.Loading = true }) {
			out := s.browse.Search(ctx, c.Query)
			applied := s.commitIfCurrent(nav, func(st *State) {
				st.Results = out.Records
				st.ResultsQuery = out.Query
				st.HasResults = true
				st.SearchFailure = out.Failure
				st.Loading = false
				st.resultsNav = nav
			})
			if !applied {
				s.dropStale(ctx, "search", nav)
			}
		}
		st = s.Snapshot()
	}

	lp := &view.ListPage{Criteria: c, Chart: st.Chart}
	if answers(&st, c.Query) {
		listing := s.browse.View(st.Results, c)
		lp.Rows = listing.Rows
		lp.Entries = listing.Entries
		lp.Summary = listing.Summary
		lp.Failure = st.SearchFailure
		lp.Loading = st.Loading
	} else {
		// a newer navigation owns the fetch
		lp.Loading = true
	}

	s.write(w, r, http.StatusOK, func() error { return view.List(w, lp) })
}

// DetailScreen renders "/brewery/{id}", fetching the record once per id.
func (s *Session) DetailScreen(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	nav := navFromContext(ctx)
	id := chiTransport.URLParam(r, "id")

	st := s.Snapshot()
	if !reusable(&st, id, nav) {
		if s.commitIfCurrent(nav, func(st *State) { st.Detail = detail.LoadingState(id) }) {
			ds := s.detail.Load(ctx, id)
			s.commit(func(st *State) {
				if st.Detail.ID == id {
					st.Detail = ds
					st.detailNav = nav
				}
			})
		}
		st = s.Snapshot()
	}

	ds := st.Detail
	if ds.ID != id {
		ds = detail.LoadingState(id)
	}

	status := http.StatusOK
	switch ds.Status {
	case detail.Failed:
		status = http.StatusBadGateway
	case detail.NotFound:
		status = http.StatusNotFound
	}
	s.write(w, r, status, func() error { return view.Detail(w, ds) })
}

// NotFoundScreen renders any location without a route.
func (s *Session) NotFoundScreen(w http.ResponseWriter, r *http.Request) {
	s.write(w, r, http.StatusNotFound, func() error { return view.NotFound(w, r.URL.Path) })
}

func (s *Session) write(w http.ResponseWriter, r *http.Request, status int, render func() error) {
	w.WriteHeader(status)
	if err := render(); err != nil {
		logpkg.FromContext(r.Context()).Error("Failed to render screen",
			zap.String("location", r.URL.RequestURI()),
			zap.Error(err),
		)
	}
}

// answers reports whether the results in st belong to query.
func answers(st *State, query string) bool {
	return st.HasResults && st.ResultsQuery == query
}

// resultsReusable reports whether the results in st can be shown for query
// without a fetch. Like detail failures, search failures are retried on a fresh
// navigation, never on a re-render.
func resultsReusable(st *State, query string, nav uint64) bool {
	if !answers(st, query) {
		return false
	}
	return st.SearchFailure == "" || st.resultsNav == nav
}

// reusable reports whether the detail in st can be shown for id without a fetch.
// Failures are retried on a fresh navigation, never on a re-render.
func reusable(st *State, id string, nav uint64) bool {
	if !st.Detail.Settled(id) {
		return false
	}
	return st.Detail.Status != detail.Failed || st.detailNav == nav
}
