// Package scenario loads batch scenario files and evaluates them against the
// affordability search.
package scenario

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/mortgage-cli/internal/mortgage"
	"github.com/sells-group/mortgage-cli/internal/search"
)

// Scenario is one named restriction set to optimize. Financing, when set,
// overrides the file-level financing offer for this scenario only.
type Scenario struct {
	Name         string                   `yaml:"name"`
	Financing    *mortgage.FinancingTerms `yaml:"financing,omitempty"`
	Restrictions search.Restrictions      `yaml:"restrictions"`
}

// File is a batch scenario file: a shared financing offer and the scenarios
// to evaluate under it.
type File struct {
	Financing mortgage.FinancingTerms `yaml:"financing"`
	Scenarios []Scenario              `yaml:"scenarios"`
}

// Load reads and validates a scenario file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "scenario: read %s", path)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrapf(err, "scenario: parse %s", path)
	}

	if len(f.Scenarios) == 0 {
		return nil, eris.Errorf("scenario: %s contains no scenarios", path)
	}
	seen := make(map[string]bool, len(f.Scenarios))
	for i, sc := range f.Scenarios {
		if sc.Name == "" {
			return nil, eris.Errorf("scenario: entry %d has no name", i)
		}
		if seen[sc.Name] {
			return nil, eris.Errorf("scenario: duplicate name %q", sc.Name)
		}
		seen[sc.Name] = true
	}

	return &f, nil
}

// Result is the outcome of evaluating one scenario. Exactly one of Mortgage
// (possibly the invalid sentinel) and Err is meaningful.
type Result struct {
	Name     string
	Mortgage mortgage.Mortgage
	Err      error
}

// EvaluateAll optimizes every scenario, at most concurrency at a time. Each
// search is independent and shares no mutable state, so they can run in
// parallel safely. Results come back in scenario order; per-scenario
// validation failures are recorded in the result, not returned.
func EvaluateAll(ctx context.Context, f *File, concurrency int) []Result {
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]Result, len(f.Scenarios))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, sc := range f.Scenarios {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = Result{Name: sc.Name, Err: err}
				return nil
			}

			financing := f.Financing
			if sc.Financing != nil {
				financing = *sc.Financing
			}

			m, err := search.New(financing).Optimize(sc.Restrictions)
			results[i] = Result{Name: sc.Name, Mortgage: m, Err: err}
			return nil
		})
	}

	// Workers never return errors; they record them per scenario.
	_ = g.Wait()

	return results
}
