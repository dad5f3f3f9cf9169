package detail

import (
	"context"

	"github.com/kailas-cloud/brewdex/internal/domain/brewery"
)

// Fetcher reads a single brewery by identifier.
type Fetcher interface {
	FetchByID(ctx context.Context, id string) (brewery.Brewery, error)
}
