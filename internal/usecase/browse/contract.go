package browse

import (
	"context"

	"github.com/kailas-cloud/brewdex/internal/domain/brewery"
)

// Directory searches the brewery directory by free text.
type Directory interface {
	SearchByQuery(ctx context.Context, text string) ([]brewery.Brewery, error)
}
