// Package valueobject holds pure domain calculations with no I/O.
package valueobject

import "time"

// BillingCycle is the result of assigning a purchase to a credit card
// statement: the statement's closing date and the date payment is due.
// Both dates fall in the same calendar month.
type BillingCycle struct {
	ClosingDate time.Time
	DueDate     time.Time
}

// Month returns the statement month (1-12) the purchase was assigned to.
func (c BillingCycle) Month() int {
	return int(c.DueDate.Month())
}

// Year returns the statement year the purchase was assigned to.
func (c BillingCycle) Year() int {
	return c.DueDate.Year()
}

// AssignCycle maps a purchase date plus a card's closing/due-day
// configuration to the statement cycle the purchase belongs to.
//
// A purchase made on or before the closing day belongs to the statement
// that closes in the purchase's own month; later purchases roll into the
// statement closing in the following month (incrementing the year across
// December). Closing and due days beyond the target month's length are
// clamped to its last day, so day 31 in February yields the 28th or 29th.
//
// closingDay and dueDay must already be validated to the 1-31 range by
// the credit card constructor; this function is pure and does not
// re-validate them.
func AssignCycle(purchaseDate time.Time, closingDay, dueDay int) BillingCycle {
	year := purchaseDate.Year()
	month := purchaseDate.Month()

	if purchaseDate.Day() > closingDay {
		month++
		if month > time.December {
			month = time.January
			year++
		}
	}

	return BillingCycle{
		ClosingDate: ClampToMonth(year, month, closingDay),
		DueDate:     ClampToMonth(year, month, dueDay),
	}
}

// CycleDueDate returns the due date for a card in a given statement month,
// clamping the configured due day to the month's length.
func CycleDueDate(year int, month time.Month, dueDay int) time.Time {
	return ClampToMonth(year, month, dueDay)
}

// ClampToMonth builds a date in the given month, pulling the day back to
// the month's last day when it does not exist (e.g. 31 in a 30-day month).
func ClampToMonth(year int, month time.Month, day int) time.Time {
	if last := LastDayOfMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// LastDayOfMonth returns the number of days in the given month.
func LastDayOfMonth(year int, month time.Month) int {
	// Day 0 of the next month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
