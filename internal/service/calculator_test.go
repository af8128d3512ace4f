package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rpgo/finplan/internal/calculation"
	"github.com/rpgo/finplan/internal/domain"
	"github.com/rpgo/finplan/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingCache records traffic to an in-memory cache.
type countingCache struct {
	inner   *store.MemoryCache
	gets    int
	hits    int
	sets    int
	failSet bool
}

func newCountingCache() *countingCache {
	return &countingCache{inner: store.NewMemoryCache(time.Hour)}
}

func (c *countingCache) Get(ctx context.Context, key string) (string, bool) {
	c.gets++
	v, ok := c.inner.Get(ctx, key)
	if ok {
		c.hits++
	}
	return v, ok
}

func (c *countingCache) Set(ctx context.Context, key, value string) error {
	c.sets++
	if c.failSet {
		return errors.New("cache unavailable")
	}
	return c.inner.Set(ctx, key, value)
}

func mortgageInput() domain.MortgageInput {
	return domain.MortgageInput{
		LoanAmount:    300000,
		InterestRate:  4.5,
		LoanTermYears: 30,
		DownPayment:   60000,
		PropertyTax:   3600,
		Insurance:     1200,
		PMIRate:       0.5,
		AnnualIncome:  80000,
	}
}

func TestCalculatorService_CachesResults(t *testing.T) {
	cache := newCountingCache()
	svc := NewCalculatorService(calculation.NewCalculationEngine(), WithCache(cache))
	ctx := context.Background()

	first, err := svc.Mortgage(ctx, mortgageInput())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
	assert.Zero(t, cache.hits)

	second, err := svc.Mortgage(ctx, mortgageInput())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, 1, cache.sets)

	assert.True(t, first.MonthlyPayment.Equal(second.MonthlyPayment))
	assert.True(t, first.TotalCost.Equal(second.TotalCost))
	require.Len(t, second.AmortizationSchedule, len(first.AmortizationSchedule))
	assert.Equal(t, first.Insights, second.Insights)
}

func TestCalculatorService_CacheKeys(t *testing.T) {
	a, err := cacheKey(domain.KindNetWorth, domain.NetWorthInput{Assets: map[string]float64{"a": 1, "b": 2}})
	require.NoError(t, err)
	b, err := cacheKey(domain.KindNetWorth, domain.NetWorthInput{Assets: map[string]float64{"b": 2, "a": 1}})
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Contains(t, a, "net-worth:")

	c, err := cacheKey(domain.KindNetWorth, domain.NetWorthInput{Assets: map[string]float64{"a": 1, "b": 3}})
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestCalculatorService_FrequencyNormalizedBeforeCaching(t *testing.T) {
	cache := newCountingCache()
	svc := NewCalculatorService(calculation.NewCalculationEngine(), WithCache(cache))
	ctx := context.Background()

	in := domain.CompoundInterestInput{Principal: 1000, InterestRate: 5, CompoundingFrequency: "Monthly", TimePeriod: 3}
	_, err := svc.CompoundInterest(ctx, in)
	require.NoError(t, err)

	in.CompoundingFrequency = "monthly"
	_, err = svc.CompoundInterest(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
}

func TestCalculatorService_CacheFailureIsNotFatal(t *testing.T) {
	cache := newCountingCache()
	cache.failSet = true
	svc := NewCalculatorService(calculation.NewCalculationEngine(), WithCache(cache))

	result, err := svc.Retirement(context.Background(), domain.RetirementInput{
		CurrentAge: 40, RetirementAge: 65, LifeExpectancy: 90, ExpectedReturn: 6,
		CurrentSavings: 50000, MonthlyContribution: 800, DesiredRetirementIncome: 60000,
	})
	require.NoError(t, err)
	assert.Equal(t, 25, result.YearsToRetirement)
	assert.Equal(t, 1, cache.sets)
}

func TestCalculatorService_ErrorsAreNotCached(t *testing.T) {
	cache := newCountingCache()
	svc := NewCalculatorService(calculation.NewCalculationEngine(), WithCache(cache))

	in := mortgageInput()
	in.LoanTermYears = 0
	_, err := svc.Mortgage(context.Background(), in)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Zero(t, cache.sets)
}

func TestCalculatorService_Snapshots(t *testing.T) {
	clock := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	svc := NewCalculatorService(calculation.NewCalculationEngine(),
		WithSnapshotLimit(2),
		WithClock(func() time.Time { return clock }),
	)
	ctx := context.Background()

	for i, cash := range []float64{1000, 2000, 3000} {
		clock = clock.Add(time.Duration(i+1) * time.Hour)
		snapshot, result, err := svc.SaveSnapshot(ctx, "  month end ", domain.NetWorthInput{
			Assets:      map[string]float64{"cash_savings": cash},
			Liabilities: map[string]float64{"credit_cards": 250},
		})
		require.NoError(t, err)
		assert.NotEmpty(t, snapshot.ID)
		assert.Equal(t, "month end", snapshot.Label)
		assert.True(t, snapshot.NetWorth.Equal(result.CurrentNetWorth))
		assert.True(t, snapshot.CreatedAt.Equal(clock))
	}

	list, err := svc.ListSnapshots(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 2, "listing is capped at the configured limit")
	assert.Equal(t, "2750", list[0].NetWorth.String())
	assert.Equal(t, "1750", list[1].NetWorth.String())

	got, err := svc.GetSnapshot(ctx, list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, got.Input.Assets["cash_savings"])

	_, err = svc.GetSnapshot(ctx, "nope")
	assert.ErrorIs(t, err, store.ErrSnapshotNotFound)

	_, _, err = svc.SaveSnapshot(ctx, "", domain.NetWorthInput{Assets: map[string]float64{"cash_savings": -1}})
	assert.True(t, domain.IsValidation(err))
}
