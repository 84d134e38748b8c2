package pricing

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// Rate is the snapshot of an equipment item's rate tiers. A zero weekly or
// monthly rate means that tier is not offered and billing falls through to
// the next smaller unit.
type Rate struct {
	DailyCents   int64
	WeeklyCents  int64
	MonthlyCents int64
}

// Breakdown is the tiered composition of a rental charge.
type Breakdown struct {
	TotalDays     int
	Months        int
	Weeks         int
	Days          int
	MonthsCents   int64
	WeeksCents    int64
	DaysCents     int64
	SubtotalCents int64
}

// ParseDate parses a yyyy-mm-dd date string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd", s)
	}
	return t, nil
}

// Days returns the billable day count for a date range: the calendar
// distance between start and end rounded up, with a one-day minimum so a
// same-day booking is still charged.
func Days(start, end time.Time) (int, error) {
	if end.Before(start) {
		return 0, fmt.Errorf("end date must not be before start date")
	}
	hours := end.Sub(start).Hours()
	days := int(hours / 24)
	if float64(days*24) < hours {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days, nil
}

const (
	daysPerWeek  = 7
	daysPerMonth = 30
)

// Quote breaks a day count into month/week/day tiers against the given
// rate snapshot. Tiers with a zero rate are skipped, so an item priced only
// per day bills days * daily rate.
func Quote(totalDays int, r Rate) Breakdown {
	b := Breakdown{TotalDays: totalDays}
	remaining := totalDays

	if r.MonthlyCents > 0 {
		b.Months = remaining / daysPerMonth
		remaining = remaining % daysPerMonth
		b.MonthsCents = int64(b.Months) * r.MonthlyCents
	}
	if r.WeeklyCents > 0 {
		b.Weeks = remaining / daysPerWeek
		remaining = remaining % daysPerWeek
		b.WeeksCents = int64(b.Weeks) * r.WeeklyCents
	}
	b.Days = remaining
	b.DaysCents = int64(b.Days) * r.DailyCents

	b.SubtotalCents = b.MonthsCents + b.WeeksCents + b.DaysCents
	return b
}

// Tax computes the tax on a subtotal at the given rate in basis points,
// rounding to the nearest cent.
func Tax(subtotalCents int64, rateBps int32) int64 {
	if rateBps <= 0 {
		return 0
	}
	return (subtotalCents*int64(rateBps) + 5000) / 10000
}

// Total sums the charge components of a booking.
func Total(subtotalCents, taxCents, deliveryFeeCents, pickupFeeCents int64) int64 {
	return subtotalCents + taxCents + deliveryFeeCents + pickupFeeCents
}
