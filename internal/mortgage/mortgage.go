// Package mortgage prices a single home purchase: given a home value, financing
// terms, and asset attributes it produces an itemized upfront/monthly cost
// breakdown, including tiered PMI and the closed-form amortized loan payment.
package mortgage

import (
	"github.com/rotisserie/eris"
)

// ErrValidation marks caller-input errors: missing required fields or values
// below hard thresholds. Callers can test for it with errors.Is.
var ErrValidation = eris.New("invalid input")

// Default rates applied when the caller leaves a field unset (zero).
const (
	DefaultTermMonths      = 360
	DefaultClosingCostRate = 0.05
	DefaultTaxRate         = 0.01

	// InsuranceRate is the flat annual homeowners-insurance heuristic applied
	// to the asset value. Not configurable.
	InsuranceRate = 0.0035
)

// FinancingTerms describes a fixed-rate financing offer. InterestRate is the
// quoted APR as a decimal fraction and is required; the other fields default
// via DefaultFinancing.
type FinancingTerms struct {
	InterestRate    float64 `json:"interest_rate" yaml:"interest_rate" mapstructure:"interest_rate"`
	TermMonths      int     `json:"term_months" yaml:"term_months" mapstructure:"term_months"`
	ClosingCostRate float64 `json:"closing_cost_rate" yaml:"closing_cost_rate" mapstructure:"closing_cost_rate"`
	DownPayment     float64 `json:"down_payment" yaml:"down_payment" mapstructure:"down_payment"`
}

// DefaultFinancing returns a copy of f with defaults filled in. The caller's
// value is never mutated. Returns a validation error when the interest rate
// is unset.
func DefaultFinancing(f FinancingTerms) (FinancingTerms, error) {
	if f.InterestRate == 0 {
		return FinancingTerms{}, eris.Wrap(ErrValidation, "financing: interest_rate is required")
	}
	if f.TermMonths == 0 {
		f.TermMonths = DefaultTermMonths
	}
	if f.ClosingCostRate == 0 {
		f.ClosingCostRate = DefaultClosingCostRate
	}
	return f, nil
}

// AssetAttributes describes the property being priced. Zero fields default
// via New: CurrentValue to the home value, TaxRate to DefaultTaxRate.
type AssetAttributes struct {
	CurrentValue float64 `json:"current_value" yaml:"current_value" mapstructure:"current_value"`
	TaxRate      float64 `json:"tax_rate" yaml:"tax_rate" mapstructure:"tax_rate"`
	HOAMonthly   float64 `json:"hoa_monthly" yaml:"hoa_monthly" mapstructure:"hoa_monthly"`
}

// Mortgage pairs a home value with financing terms and asset attributes.
// A Mortgage with HomeValue 0 is the invalid-loan sentinel: no bank would
// underwrite it and it has no cost breakdown.
type Mortgage struct {
	HomeValue float64         `json:"home_value"`
	Financing FinancingTerms  `json:"financing"`
	Asset     AssetAttributes `json:"asset"`
}

// New builds a Mortgage, filling asset defaults. The caller's asset record is
// not mutated.
func New(homeValue float64, financing FinancingTerms, asset AssetAttributes) Mortgage {
	if asset.CurrentValue == 0 {
		asset.CurrentValue = homeValue
	}
	if asset.TaxRate == 0 {
		asset.TaxRate = DefaultTaxRate
	}
	return Mortgage{HomeValue: homeValue, Financing: financing, Asset: asset}
}

// Invalid returns the invalid-loan sentinel.
func Invalid() Mortgage {
	return Mortgage{}
}

// IsValid reports whether any bank could underwrite this loan.
func (m Mortgage) IsValid() bool {
	return m.HomeValue > 0
}

// CostBreakdown itemizes the upfront and monthly costs of a mortgage.
// MonthlyPayment is always the sum of the four recurring components plus HOA.
type CostBreakdown struct {
	InitialCost      float64 `json:"initial_cost"`
	ClosingCost      float64 `json:"closing_cost"`
	DownPaymentCost  float64 `json:"down_payment_cost"`
	PercentDown      float64 `json:"percent_down"`
	MortgageSize     float64 `json:"mortgage_size"`
	MortgagePayment  float64 `json:"mortgage_payment"`
	PMIPayment       float64 `json:"pmi_payment"`
	TaxPayment       float64 `json:"tax_payment"`
	InsurancePayment float64 `json:"insurance_payment"`
	HOA              float64 `json:"hoa"`
	MonthlyPayment   float64 `json:"monthly_payment"`
}

// Cost describes the cost structure of the mortgage. Returns nil for an
// invalid mortgage. Pure function of its inputs: no side effects, no errors.
func (m Mortgage) Cost() *CostBreakdown {
	if !m.IsValid() {
		return nil
	}

	assetValue := m.Asset.CurrentValue
	mortgageSize := assetValue - m.Financing.DownPayment
	initialCost := mortgageSize*m.Financing.ClosingCostRate + m.Financing.DownPayment
	percentDown := m.Financing.DownPayment / assetValue
	pmiPayment := PMI(mortgageSize, percentDown) / 12
	mortgagePayment := AmortizedPayment(m.Financing.InterestRate/12, m.Financing.TermMonths, mortgageSize)
	taxPayment := (assetValue * m.Asset.TaxRate) / 12
	insurancePayment := (InsuranceRate * assetValue) / 12

	return &CostBreakdown{
		InitialCost:      initialCost,
		ClosingCost:      initialCost - m.Financing.DownPayment,
		DownPaymentCost:  m.Financing.DownPayment,
		PercentDown:      percentDown,
		MortgageSize:     mortgageSize,
		MortgagePayment:  mortgagePayment,
		PMIPayment:       pmiPayment,
		TaxPayment:       taxPayment,
		InsurancePayment: insurancePayment,
		HOA:              m.Asset.HOAMonthly,
		MonthlyPayment:   mortgagePayment + pmiPayment + taxPayment + insurancePayment + m.Asset.HOAMonthly,
	}
}
