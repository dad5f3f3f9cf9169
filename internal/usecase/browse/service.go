package browse

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/brewdex/internal/domain"
	"github.com/kailas-cloud/brewdex/internal/domain/brewery"
	"github.com/kailas-cloud/brewdex/internal/domain/criteria"
	"github.com/kailas-cloud/brewdex/internal/domain/stats"
	logpkg "github.com/kailas-cloud/brewdex/internal/logger"
)

// Outcome is the result set answering one query text.
// Failure is a user-facing message; Records is empty whenever Failure is set.
type Outcome struct {
	Query   string
	Records []brewery.Brewery
	Failure string
}

// Listing is everything the list screen derives from (results, criteria).
type Listing struct {
	Criteria criteria.Criteria
	Rows     []brewery.Brewery
	Entries  []stats.Entry
	Summary  stats.Summary
}

// Service runs directory searches and derives listings from their results.
type Service struct {
	dir Directory
}

// New creates a browse service.
func New(dir Directory) *Service {
	return &Service{dir: dir}
}

// Search queries the directory. It never fails: directory errors become an
// empty result set with a message for the user.
func (s *Service) Search(ctx context.Context, text string) Outcome {
	records, err := s.dir.SearchByQuery(ctx, text)
	if err != nil {
		logpkg.FromContext(ctx).Warn("Brewery search failed",
			zap.String("query", text),
			zap.Error(err),
		)
		return Outcome{
			Query:   text,
			Records: []brewery.Brewery{},
			Failure: domain.MessageOf(err, domain.MsgSearchFailed),
		}
	}
	if records == nil {
		records = []brewery.Brewery{}
	}
	return Outcome{Query: text, Records: records}
}

// View filters results by c and aggregates the filtered rows.
// It is a pure function of its inputs.
func (s *Service) View(results []brewery.Brewery, c criteria.Criteria) Listing {
	rows := Filter(results, c)
	return Listing{
		Criteria: c,
		Rows:     rows,
		Entries:  AggregateByType(rows),
		Summary:  Summarize(rows),
	}
}
