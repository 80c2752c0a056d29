package charter

import "time"

// DateOnly truncates t to midnight UTC. Reservations are keyed by calendar
// day; all range arithmetic in this package happens on truncated dates.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysInclusive returns the inclusive day count of [start, end], so a
// single-day range counts as 1. It returns ErrInvalidRange when end
// precedes start.
func DaysInclusive(start, end time.Time) (int, error) {
	s, e := DateOnly(start), DateOnly(end)
	if e.Before(s) {
		return 0, ErrInvalidRange
	}
	return int(e.Sub(s).Hours()/24) + 1, nil
}

// EstimateCost prices an inclusive date range against a vessel's tiered
// rate schedule and returns the base and total cost in cents.
//
// The range is decomposed greedily: when it spans at least 30 days and a
// monthly rate is set, whole 30-day blocks are priced at the monthly rate
// and the remainder at the daily rate; otherwise, when it spans at least 7
// days and a weekly rate is set, whole 7-day blocks are priced at the
// weekly rate and the remainder at the daily rate; otherwise every day is
// priced at the daily rate. Surcharges are per-day amounts multiplied by
// the day count and added to the base cost to form the total.
//
// The function is pure and deterministic: identical inputs always produce
// identical quotes.
func EstimateCost(sched Schedule, start, end time.Time, surcharges []Surcharge) (base, total int64, err error) {
	if sched.DailyRateCents < 0 {
		return 0, 0, ErrInvalidRate
	}
	if sched.WeeklyRateCents != nil && *sched.WeeklyRateCents < 0 {
		return 0, 0, ErrInvalidRate
	}
	if sched.MonthlyRateCents != nil && *sched.MonthlyRateCents < 0 {
		return 0, 0, ErrInvalidRate
	}
	for _, s := range surcharges {
		if s.PerDayCents < 0 {
			return 0, 0, ErrInvalidRate
		}
	}

	days, err := DaysInclusive(start, end)
	if err != nil {
		return 0, 0, err
	}

	n := int64(days)
	switch {
	case days >= 30 && sched.MonthlyRateCents != nil:
		months := n / 30
		rest := n % 30
		base = months**sched.MonthlyRateCents + rest*sched.DailyRateCents
	case days >= 7 && sched.WeeklyRateCents != nil:
		weeks := n / 7
		rest := n % 7
		base = weeks**sched.WeeklyRateCents + rest*sched.DailyRateCents
	default:
		base = n * sched.DailyRateCents
	}

	total = base
	for _, s := range surcharges {
		total += s.PerDayCents * n
	}
	return base, total, nil
}
