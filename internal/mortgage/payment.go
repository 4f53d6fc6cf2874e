package mortgage

import "math"

// AmortizedPayment returns the level monthly payment that fully repays
// principal and interest over termMonths at the given monthly rate. This is
// the standard fixed-rate annuity formula; a zero rate degenerates to
// straight-line principal repayment.
func AmortizedPayment(monthlyRate float64, termMonths int, principal float64) float64 {
	if termMonths <= 0 {
		return 0
	}
	if monthlyRate == 0 {
		return math.Abs(principal / float64(termMonths))
	}
	payment := principal * monthlyRate / (1 - math.Pow(1+monthlyRate, -float64(termMonths)))
	return math.Abs(payment)
}
