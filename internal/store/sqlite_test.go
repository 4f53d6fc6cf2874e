package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/mortgage-cli/internal/mortgage"
	"github.com/sells-group/mortgage-cli/internal/search"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func testRunInputs(t *testing.T) (mortgage.FinancingTerms, search.Restrictions, mortgage.Mortgage) {
	t.Helper()
	financing := mortgage.FinancingTerms{InterestRate: 0.06}
	restrictions := search.Restrictions{Savings: 50000, MaxMonthlyPayment: 3000}

	m, err := search.New(financing).Optimize(restrictions)
	require.NoError(t, err)
	require.True(t, m.IsValid())
	return financing, restrictions, m
}

func TestSaveAndGetRun(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	financing, restrictions, m := testRunInputs(t)

	saved, err := s.SaveRun(ctx, financing, restrictions, m)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	require.NotNil(t, saved.Breakdown)

	got, err := s.GetRun(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.InDelta(t, m.HomeValue, got.HomeValue, 1e-9)
	assert.InDelta(t, financing.InterestRate, got.Financing.InterestRate, 1e-12)
	assert.InDelta(t, restrictions.Savings, got.Restrictions.Savings, 1e-9)
	require.NotNil(t, got.Breakdown)
	assert.InDelta(t, saved.Breakdown.MonthlyPayment, got.Breakdown.MonthlyPayment, 1e-9)
}

func TestSaveRunNoMatch(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	saved, err := s.SaveRun(ctx,
		mortgage.FinancingTerms{InterestRate: 0.06},
		search.Restrictions{Savings: 10000, MaxMonthlyPayment: 1},
		mortgage.Invalid(),
	)
	require.NoError(t, err)
	assert.Nil(t, saved.Breakdown)
	assert.Zero(t, saved.HomeValue)

	got, err := s.GetRun(ctx, saved.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Breakdown)
}

func TestGetRunNotFound(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	_, err := s.GetRun(context.Background(), "missing")
	assert.Error(t, err)
}

func TestListRuns(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	financing, restrictions, m := testRunInputs(t)
	for range 3 {
		_, err := s.SaveRun(ctx, financing, restrictions, m)
		require.NoError(t, err)
	}
	_, err := s.SaveRun(ctx, financing, search.Restrictions{Savings: 10000, MaxMonthlyPayment: 1}, mortgage.Invalid())
	require.NoError(t, err)

	runs, err := s.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	assert.Len(t, runs, 4)

	runs, err = s.ListRuns(ctx, RunFilter{MinHomeValue: 1})
	require.NoError(t, err)
	assert.Len(t, runs, 3)

	runs, err = s.ListRuns(ctx, RunFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}
