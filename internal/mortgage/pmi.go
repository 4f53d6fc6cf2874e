package mortgage

// pmiTier maps a minimum percent-down to an annual PMI rate on the mortgage
// size. Evaluated highest-down-payment-first; the first matching tier wins,
// with no proration between tiers.
type pmiTier struct {
	minPercentDown float64
	annualRate     float64
}

var pmiTiers = []pmiTier{
	{0.20, 0},
	{0.15, 0.0044},
	{0.10, 0.0059},
	{0.05, 0.0076},
}

// pmiBaseRate applies below the lowest tier.
const pmiBaseRate = 0.0098

// PMI returns the annual private-mortgage-insurance premium for a loan of
// mortgageSize at the given percent down.
func PMI(mortgageSize, percentDown float64) float64 {
	for _, tier := range pmiTiers {
		if percentDown >= tier.minPercentDown {
			return mortgageSize * tier.annualRate
		}
	}
	return mortgageSize * pmiBaseRate
}
