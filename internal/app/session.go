// Package app holds the browsing session: the address bar, its history and
// the state snapshot every screen renders from.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/kailas-cloud/brewdex/internal/domain/chart"
	"github.com/kailas-cloud/brewdex/internal/domain/criteria"
	"github.com/kailas-cloud/brewdex/internal/location"
	logpkg "github.com/kailas-cloud/brewdex/internal/logger"
	"github.com/kailas-cloud/brewdex/internal/metrics"
	chiTransport "github.com/kailas-cloud/brewdex/internal/transport/chi"
	"github.com/kailas-cloud/brewdex/internal/usecase/browse"
	"github.com/kailas-cloud/brewdex/internal/usecase/detail"
)

// ErrNoHistory is returned by Back on the first history entry.
var ErrNoHistory = errors.New("no previous location")

type navKey struct{}

// Session is a single user's browsing session. It is safe for concurrent use,
// though a UI loop normally drives it from one goroutine.
type Session struct {
	browse    *browse.Service
	detail    *detail.Service
	router    http.Handler
	logger    *zap.Logger
	observers []func(State)

	mu      sync.Mutex
	state   *State
	history []string
	navSeq  uint64
}

// Option configures a Session.
type Option func(*Session)

// WithChart sets the initial chart kind.
func WithChart(k chart.Kind) Option {
	return func(s *Session) {
		if k.IsValid() {
			s.state.Chart = k
		}
	}
}

// WithObserver registers fn to be called with every new snapshot.
// fn runs outside the session lock and must not block for long.
func WithObserver(fn func(State)) Option {
	return func(s *Session) {
		s.observers = append(s.observers, fn)
	}
}

// New creates a session. No location is loaded until the first Navigate.
func New(browseSvc *browse.Service, detailSvc *detail.Service, logger *zap.Logger, opts ...Option) *Session {
	s := &Session{
		browse: browseSvc,
		detail: detailSvc,
		logger: logger,
		state:  &State{Chart: chart.Bar},
	}
	for _, o := range opts {
		o(s)
	}
	s.router = chiTransport.NewRouter(s, logger)
	return s
}

// Snapshot returns the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.state
}

// Listing derives the list screen's rows and aggregation from the current state.
// It reports false while no results answer the current query.
func (s *Session) Listing() (browse.Listing, bool) {
	st := s.Snapshot()
	if !answers(&st, st.Criteria.Query) {
		return browse.Listing{Criteria: st.Criteria}, false
	}
	return s.browse.View(st.Results, st.Criteria), true
}

// History returns a copy of the history stack, oldest first.
func (s *Session) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.history...)
}

// Navigate pushes loc onto the history and renders it.
func (s *Session) Navigate(ctx context.Context, loc string) (Page, error) {
	norm, err := location.Normalize(loc)
	if err != nil {
		return Page{}, err
	}

	s.mu.Lock()
	if n := len(s.history); n == 0 || s.history[n-1] != norm {
		s.history = append(s.history, norm)
	}
	nav := s.enterLocked(norm)
	s.mu.Unlock()

	s.notify()
	return s.dispatch(ctx, norm, nav)
}

// Back returns to the previous history entry, query string included.
func (s *Session) Back(ctx context.Context) (Page, error) {
	s.mu.Lock()
	if len(s.history) < 2 {
		s.mu.Unlock()
		return Page{}, ErrNoHistory
	}
	s.history = s.history[:len(s.history)-1]
	prev := s.history[len(s.history)-1]
	nav := s.enterLocked(prev)
	s.mu.Unlock()

	s.notify()
	return s.dispatch(ctx, prev, nav)
}

// Render re-renders the current location. Data already in state is reused,
// so a re-render never refetches.
func (s *Session) Render(ctx context.Context) (Page, error) {
	s.mu.Lock()
	loc, nav := s.state.Location, s.state.nav
	s.mu.Unlock()

	if loc == "" {
		loc = location.ListPath
	}
	return s.dispatch(ctx, loc, nav)
}

// SetQuery writes the query text into the address bar and navigates there.
func (s *Session) SetQuery(ctx context.Context, text string) (Page, error) {
	return s.updateCriteria(ctx, func(c criteria.Criteria) criteria.Criteria { return c.WithQuery(text) })
}

// SetType writes the type filter into the address bar; empty clears it.
func (s *Session) SetType(ctx context.Context, t string) (Page, error) {
	return s.updateCriteria(ctx, func(c criteria.Criteria) criteria.Criteria { return c.WithType(t) })
}

// SetCity writes the city filter into the address bar; empty clears it.
func (s *Session) SetCity(ctx context.Context, city string) (Page, error) {
	return s.updateCriteria(ctx, func(c criteria.Criteria) criteria.Criteria { return c.WithCity(city) })
}

// Open navigates to a brewery's detail screen.
func (s *Session) Open(ctx context.Context, id string) (Page, error) {
	return s.Navigate(ctx, location.DetailPath(id))
}

// SetChart switches the chart representation and re-renders.
// The aggregation behind the chart is untouched.
func (s *Session) SetChart(ctx context.Context, k chart.Kind) (Page, error) {
	if !k.IsValid() {
		return Page{}, fmt.Errorf("invalid chart kind %q", k)
	}
	s.commit(func(st *State) { st.Chart = k })
	return s.Render(ctx)
}

// ToggleChart flips between bar and pie.
func (s *Session) ToggleChart(ctx context.Context) (Page, error) {
	return s.SetChart(ctx, s.Snapshot().Chart.Toggle())
}

// updateCriteria derives the next location from the latest list location,
// so that the URL, not a side copy, carries the change.
func (s *Session) updateCriteria(ctx context.Context, change func(criteria.Criteria) criteria.Criteria) (Page, error) {
	base := s.listLocation()
	_, rawQuery, err := location.Split(base)
	if err != nil {
		return Page{}, err
	}
	next, err := location.WithCriteria(base, change(location.Read(rawQuery)))
	if err != nil {
		return Page{}, err
	}
	return s.Navigate(ctx, next)
}

// listLocation returns the most recent list-screen location in history.
func (s *Session) listLocation() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.history) - 1; i >= 0; i-- {
		if path, _, err := location.Split(s.history[i]); err == nil && path == location.ListPath {
			return s.history[i]
		}
	}
	return location.ListPath
}

// enterLocked starts a navigation to loc and returns its sequence number.
// Callers hold s.mu.
func (s *Session) enterLocked(loc string) uint64 {
	s.navSeq++
	next := *s.state
	next.Location = loc
	next.nav = s.navSeq
	// whatever was in flight belongs to an older navigation now
	next.Loading = false
	if _, rawQuery, err := location.Split(loc); err == nil {
		next.Criteria = location.Read(rawQuery)
	}
	s.state = &next
	return s.navSeq
}

func (s *Session) dispatch(ctx context.Context, loc string, nav uint64) (Page, error) {
	req, err := http.NewRequestWithContext(context.WithValue(ctx, navKey{}, nav), http.MethodGet, loc, http.NoBody)
	if err != nil {
		return Page{}, fmt.Errorf("build navigation to %q: %w", loc, err)
	}
	buf := chiTransport.NewScreenBuffer()
	s.router.ServeHTTP(buf, req)
	return Page{Location: loc, Status: buf.Status(), Body: buf.String()}, nil
}

// commit replaces the snapshot with a modified copy.
func (s *Session) commit(change func(*State)) {
	s.mu.Lock()
	next := *s.state
	change(&next)
	s.state = &next
	s.mu.Unlock()
	s.notify()
}

// commitIfCurrent applies change only while nav is still the latest navigation.
// It reports whether the change was applied.
func (s *Session) commitIfCurrent(nav uint64, change func(*State)) bool {
	s.mu.Lock()
	if nav != s.navSeq {
		s.mu.Unlock()
		return false
	}
	next := *s.state
	change(&next)
	s.state = &next
	s.mu.Unlock()
	s.notify()
	return true
}

func (s *Session) notify() {
	if len(s.observers) == 0 {
		return
	}
	st := s.Snapshot()
	for _, fn := range s.observers {
		fn(st)
	}
}

func navFromContext(ctx context.Context) uint64 {
	nav, _ := ctx.Value(navKey{}).(uint64)
	return nav
}

func (s *Session) dropStale(ctx context.Context, what string, nav uint64) {
	metrics.StaleResponsesTotal.Inc()
	logpkg.FromContext(ctx).Debug("Dropped stale response",
		zap.String("what", what),
		zap.Uint64("nav", nav),
	)
}
