package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoundMoney rounds an amount to cents
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// SumAmounts adds amounts without intermediate rounding; the total is rounded to cents
func SumAmounts(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(amount)
	}
	return RoundMoney(total)
}

// TruncateToDay drops the clock part of t, keeping its location
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// MonthPeriod returns the first and the last calendar day of a month
func MonthPeriod(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// PreviousMonth returns year and month preceding the month of t
func PreviousMonth(t time.Time) (int, time.Month) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	prev := first.AddDate(0, -1, 0)
	return prev.Year(), prev.Month()
}

// ExclusiveUpperBound turns an inclusive end date into the start of the following day
func ExclusiveUpperBound(end time.Time) time.Time {
	return TruncateToDay(end).AddDate(0, 0, 1)
}
