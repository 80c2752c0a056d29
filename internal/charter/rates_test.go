package charter_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeidalqadri/owlwritey-sub000/internal/charter"
)

func day(n int) time.Time {
	return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n-1)
}

func ptr(v int64) *int64 { return &v }

func TestEstimateCostDailyOnly(t *testing.T) {
	sched := charter.Schedule{DailyRateCents: 100_000}

	base, total, err := charter.EstimateCost(sched, day(1), day(1), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(100_000), base, "single day equals the daily rate")
	assert.Equal(t, base, total)

	base, _, err = charter.EstimateCost(sched, day(1), day(5), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(500_000), base)
}

func TestEstimateCostWeeklyDecomposition(t *testing.T) {
	sched := charter.Schedule{DailyRateCents: 100_000, WeeklyRateCents: ptr(600_000)}

	// Exactly one week: the weekly rate alone.
	base, _, err := charter.EstimateCost(sched, day(1), day(7), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(600_000), base)

	// Ten days: one week plus three days at the daily rate.
	base, _, err = charter.EstimateCost(sched, day(1), day(10), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(600_000+3*100_000), base)

	// Six days never reach the weekly tier.
	base, _, err = charter.EstimateCost(sched, day(1), day(6), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(600_000), base)
}

func TestEstimateCostMonthlyDecomposition(t *testing.T) {
	sched := charter.Schedule{
		DailyRateCents:   100_000,
		WeeklyRateCents:  ptr(600_000),
		MonthlyRateCents: ptr(2_000_000),
	}

	// Exactly thirty days: the monthly rate alone.
	base, _, err := charter.EstimateCost(sched, day(1), day(30), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2_000_000), base)

	// 64 days: two months plus four remainder days at the daily rate. The
	// weekly rate is ignored once the monthly tier applies.
	base, _, err = charter.EstimateCost(sched, day(1), day(64), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2*2_000_000+4*100_000), base)

	// 29 days fall back to the weekly decomposition.
	base, _, err = charter.EstimateCost(sched, day(1), day(29), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4*600_000+1*100_000), base)
}

func TestEstimateCostSurcharges(t *testing.T) {
	sched := charter.Schedule{DailyRateCents: 100_000}
	sur := []charter.Surcharge{
		{Label: "crane operation", PerDayCents: 25_000},
		{Label: "dive support", PerDayCents: 10_000},
	}
	base, total, err := charter.EstimateCost(sched, day(1), day(4), sur)
	require.NoError(t, err)
	assert.Equal(t, int64(400_000), base)
	assert.Equal(t, int64(400_000+4*25_000+4*10_000), total)
}

func TestEstimateCostInvalidInputs(t *testing.T) {
	sched := charter.Schedule{DailyRateCents: 100_000}

	_, _, err := charter.EstimateCost(sched, day(5), day(4), nil)
	assert.ErrorIs(t, err, charter.ErrInvalidRange)

	_, _, err = charter.EstimateCost(charter.Schedule{DailyRateCents: -1}, day(1), day(2), nil)
	assert.ErrorIs(t, err, charter.ErrInvalidRate)

	_, _, err = charter.EstimateCost(charter.Schedule{DailyRateCents: 100, WeeklyRateCents: ptr(-5)}, day(1), day(2), nil)
	assert.ErrorIs(t, err, charter.ErrInvalidRate)

	_, _, err = charter.EstimateCost(sched, day(1), day(2), []charter.Surcharge{{PerDayCents: -1}})
	assert.ErrorIs(t, err, charter.ErrInvalidRate)
}

// Every generated reversed date pair must be rejected, and every valid pair
// must price deterministically.
func TestEstimateCostGeneratedRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	sched := charter.Schedule{
		DailyRateCents:   70_000,
		WeeklyRateCents:  ptr(420_000),
		MonthlyRateCents: ptr(1_500_000),
	}
	for i := 0; i < 500; i++ {
		a := day(1 + rng.Intn(120))
		b := day(1 + rng.Intn(120))
		base1, total1, err1 := charter.EstimateCost(sched, a, b, nil)
		if b.Before(a) {
			assert.ErrorIs(t, err1, charter.ErrInvalidRange)
			continue
		}
		require.NoError(t, err1)
		base2, total2, err2 := charter.EstimateCost(sched, a, b, nil)
		require.NoError(t, err2)
		assert.Equal(t, base1, base2, "same inputs must yield the same quote")
		assert.Equal(t, total1, total2)
		assert.GreaterOrEqual(t, total1, base1)
	}
}

func TestDaysInclusive(t *testing.T) {
	n, err := charter.DaysInclusive(day(3), day(3))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = charter.DaysInclusive(day(1), day(10))
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	// Time-of-day must not affect the day count.
	n, err = charter.DaysInclusive(day(1).Add(23*time.Hour), day(2).Add(1*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = charter.DaysInclusive(day(2), day(1))
	assert.ErrorIs(t, err, charter.ErrInvalidRange)
}
