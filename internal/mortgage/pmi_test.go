package mortgage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPMITiers(t *testing.T) {
	t.Parallel()

	const size = 200000.0

	tests := []struct {
		name        string
		percentDown float64
		want        float64
	}{
		{"no down payment", 0, size * 0.0098},
		{"below first tier", 0.049, size * 0.0098},
		{"exactly 5 percent", 0.05, size * 0.0076},
		{"exactly 10 percent", 0.10, size * 0.0059},
		{"between tiers", 0.12, size * 0.0059},
		{"exactly 15 percent", 0.15, size * 0.0044},
		{"exactly 20 percent", 0.20, 0},
		{"above 20 percent", 0.35, 0},
		{"full cash", 1.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, PMI(size, tt.percentDown), 1e-9)
		})
	}
}

func TestPMIBoundaryMonthly(t *testing.T) {
	t.Parallel()
	// 200k loan at exactly 10% down carries the 0.59% annual rate.
	assert.InDelta(t, 200000*0.0059/12, PMI(200000, 0.10)/12, 1e-9)
}

func TestPMIMonotonicity(t *testing.T) {
	t.Parallel()

	const size = 350000.0
	prev := PMI(size, 0)
	for pd := 0.001; pd <= 1.0; pd += 0.001 {
		cur := PMI(size, pd)
		assert.LessOrEqual(t, cur, prev, "PMI must be non-increasing, rose at percent down %.3f", pd)
		if pd >= 0.20 {
			assert.Zero(t, cur)
		}
		prev = cur
	}
}
