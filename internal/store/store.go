// Package store persists affordability search runs so past scenarios can be
// reviewed and compared.
package store

import (
	"context"
	"time"

	"github.com/sells-group/mortgage-cli/internal/mortgage"
	"github.com/sells-group/mortgage-cli/internal/search"
)

// Run records one affordability search: the financing offer, the buyer's
// restrictions, and the winning result. Breakdown is nil when the search
// found no viable purchase.
type Run struct {
	ID           string                  `json:"id"`
	Financing    mortgage.FinancingTerms `json:"financing"`
	Restrictions search.Restrictions     `json:"restrictions"`
	HomeValue    float64                 `json:"home_value"`
	Breakdown    *mortgage.CostBreakdown `json:"breakdown,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
}

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	MinHomeValue float64 `json:"min_home_value,omitempty"`
	Limit        int     `json:"limit,omitempty"`
	Offset       int     `json:"offset,omitempty"`
}

// Store defines the persistence interface for search runs.
type Store interface {
	SaveRun(ctx context.Context, financing mortgage.FinancingTerms, restrictions search.Restrictions, result mortgage.Mortgage) (*Run, error)
	GetRun(ctx context.Context, runID string) (*Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]Run, error)

	Migrate(ctx context.Context) error
	Close() error
}
