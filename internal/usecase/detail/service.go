package detail

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/kailas-cloud/brewdex/internal/domain"
	"github.com/kailas-cloud/brewdex/internal/domain/brewery"
	logpkg "github.com/kailas-cloud/brewdex/internal/logger"
)

// Status is the presentation state of the detail screen.
type Status string

const (
	// Loading means the fetch for ID is in flight.
	Loading Status = "loading"
	// Failed means the fetch failed; Message holds the text to show.
	Failed Status = "error"
	// NotFound means the directory answered without a usable record.
	NotFound Status = "not_found"
	// Loaded means Brewery holds the record.
	Loaded Status = "loaded"
)

// State is the detail screen's data for one identifier.
type State struct {
	ID      string
	Status  Status
	Brewery brewery.Brewery
	Message string
}

// Settled reports whether the state answers id with a finished fetch.
func (s State) Settled(id string) bool {
	return s.ID == id && s.Status != "" && s.Status != Loading
}

// LoadingState returns the state shown while id is being fetched.
func LoadingState(id string) State {
	return State{ID: id, Status: Loading}
}

// Service resolves detail screen states.
type Service struct {
	fetcher Fetcher
}

// New creates a detail service.
func New(fetcher Fetcher) *Service {
	return &Service{fetcher: fetcher}
}

// Load fetches id once and maps the outcome to a terminal State.
func (s *Service) Load(ctx context.Context, id string) State {
	b, err := s.fetcher.FetchByID(ctx, id)
	if err == nil {
		return State{ID: id, Status: Loaded, Brewery: b}
	}

	log := logpkg.FromContext(ctx).With(zap.String("brewery_id", id))

	var f *domain.Failure
	switch {
	case errors.As(err, &f):
		log.Warn("Brewery detail fetch failed", zap.Error(err))
		return State{ID: id, Status: Failed, Message: domain.MessageOf(err, domain.MsgDetailFailed)}
	case errors.Is(err, domain.ErrNotFound):
		log.Info("Brewery not found")
		return State{ID: id, Status: NotFound}
	default:
		log.Warn("Brewery detail fetch failed", zap.Error(err))
		return State{ID: id, Status: Failed, Message: domain.MsgDetailFailed}
	}
}
