// Package search finds the highest-value home purchase achievable under a
// buyer's financial constraints, for a fixed financing offer. It derives the
// minimal viable down payment per candidate home value and runs a
// multi-resolution grid search across home values, halving its step size
// until it converges at single-dollar granularity.
package search

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/sells-group/mortgage-cli/internal/mortgage"
)

// DefaultTaxRate is the property-tax default applied at the search layer.
// It intentionally differs from the cost-model default: restrictions passed
// through the search always carry one.
const DefaultTaxRate = 0.0125

// MinSavings is the hard floor on the savings restriction.
const MinSavings = 10000

// Search interval constants. The upper sentinel is effectively unbounded for
// the step-halving schedule starting at the initial step.
const (
	upperSentinel = 9999999
	initialStep   = 100000
	minStep       = 50
)

// Restrictions are buyer-supplied affordability bounds. Savings is required
// and must be at least MinSavings; at least one of MaxMonthlyPayment and
// MaxMortgage must be set (zero means unset, and defaults to unbounded).
type Restrictions struct {
	Savings           float64 `json:"savings" yaml:"savings" mapstructure:"savings"`
	MaxMonthlyPayment float64 `json:"max_monthly_payment" yaml:"max_monthly_payment" mapstructure:"max_monthly_payment"`
	MaxMortgage       float64 `json:"max_mortgage" yaml:"max_mortgage" mapstructure:"max_mortgage"`
	HOAMonthly        float64 `json:"hoa_monthly" yaml:"hoa_monthly" mapstructure:"hoa_monthly"`
	TaxRate           float64 `json:"tax_rate" yaml:"tax_rate" mapstructure:"tax_rate"`
}

// DefaultRestrictions returns a copy of r with defaults filled in, or a
// validation error. The caller's value is never mutated.
func DefaultRestrictions(r Restrictions) (Restrictions, error) {
	if r.Savings == 0 {
		return Restrictions{}, eris.Wrap(mortgage.ErrValidation, "restrictions: savings is required")
	}
	if r.Savings < MinSavings {
		return Restrictions{}, eris.Wrapf(mortgage.ErrValidation, "restrictions: savings must be at least %d", MinSavings)
	}
	if r.MaxMonthlyPayment == 0 && r.MaxMortgage == 0 {
		return Restrictions{}, eris.Wrap(mortgage.ErrValidation, "restrictions: max_monthly_payment or max_mortgage is required")
	}
	if r.MaxMonthlyPayment == 0 {
		r.MaxMonthlyPayment = math.Inf(1)
	}
	if r.MaxMortgage == 0 {
		r.MaxMortgage = math.Inf(1)
	}
	if r.TaxRate == 0 {
		r.TaxRate = DefaultTaxRate
	}
	return r, nil
}

// Engine models home-buying scenarios under fixed financing terms. The
// interest rate is validated when a mortgage is first derived, not at
// construction.
type Engine struct {
	financing mortgage.FinancingTerms
}

// New creates an Engine for the given financing offer.
func New(financing mortgage.FinancingTerms) *Engine {
	return &Engine{financing: financing}
}

// BestMortgageFor derives the lowest-cost viable mortgage for a target home
// value: the down payment is solved so that down payment plus closing costs
// consume exactly the buyer's savings. A derived down payment below zero
// would mean the bank lends the closing costs; that is not a valid loan and
// yields the invalid-mortgage sentinel rather than an error.
func (e *Engine) BestMortgageFor(homeValue float64, r Restrictions) (mortgage.Mortgage, error) {
	financing, err := mortgage.DefaultFinancing(e.financing)
	if err != nil {
		return mortgage.Invalid(), err
	}
	r, err = DefaultRestrictions(r)
	if err != nil {
		return mortgage.Invalid(), err
	}

	financing.DownPayment = homeValue - (r.Savings-homeValue)/(financing.ClosingCostRate-1)
	if financing.DownPayment < 0 {
		return mortgage.Invalid(), nil
	}

	return mortgage.New(homeValue, financing, mortgage.AssetAttributes{
		CurrentValue: homeValue,
		TaxRate:      r.TaxRate,
		HOAMonthly:   r.HOAMonthly,
	}), nil
}

// candidate tracks the best acceptance seen at one search resolution.
type candidate struct {
	value float64
	m     mortgage.Mortgage
	cost  *mortgage.CostBreakdown
}

// Optimize maximizes total home value under the given restrictions and
// returns the winning mortgage. The returned mortgage is the invalid
// sentinel when no candidate satisfies the constraints; callers must check
// IsValid before reading its cost.
func (e *Engine) Optimize(r Restrictions) (mortgage.Mortgage, error) {
	r, err := DefaultRestrictions(r)
	if err != nil {
		return mortgage.Invalid(), err
	}
	return e.optimize(r, r.Savings, upperSentinel, initialStep)
}

// optimize runs one resolution level of the grid search over candidate home
// values, then recurses at half the step between the best value found and
// the boundary where acceptance stopped. A step below minStep clamps to 1,
// the terminal single-dollar resolution.
func (e *Engine) optimize(r Restrictions, lowerBound, upperBound, step float64) (mortgage.Mortgage, error) {
	if step < minStep {
		step = 1
	}

	best := candidate{m: mortgage.Invalid(), cost: &mortgage.CostBreakdown{}}

	for j := lowerBound; j < upperBound; j += step {
		m, err := e.BestMortgageFor(j, r)
		if err != nil {
			return mortgage.Invalid(), err
		}

		accepted := false
		if m.IsValid() {
			cost := m.Cost()

			lowEnoughMonthly := cost.MonthlyPayment <= r.MaxMonthlyPayment
			haveEnoughFunds := cost.InitialCost <= r.Savings
			mortgageTooBig := cost.MortgageSize > r.MaxMortgage
			sameValue := j == best.value
			lowerMonthly := cost.MonthlyPayment < best.cost.MonthlyPayment

			if !mortgageTooBig &&
				((lowEnoughMonthly && haveEnoughFunds) || (sameValue && lowerMonthly)) &&
				j > best.value {
				accepted = true
				best = candidate{value: j, m: m, cost: cost}
			}
		}

		// The first candidate that fails to improve on best marks the
		// boundary: shrink the interval and refine below it.
		if !accepted {
			upperBound = j
			break
		}
	}

	if step == 1 {
		return best.m, nil
	}
	return e.optimize(r, best.value, upperBound, step/2)
}
