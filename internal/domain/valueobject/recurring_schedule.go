// Package valueobject holds pure domain calculations with no I/O.
package valueobject

import (
	"fmt"
	"time"
)

const (
	// DefaultRecurringMonths is the number of monthly entries expanded
	// from a recurring declaration when the caller does not specify one.
	DefaultRecurringMonths = 6

	// MaxRecurringMonths caps how far ahead a recurring declaration may
	// be expanded in one batch.
	MaxRecurringMonths = 36
)

// RecurringSchedule describes how a recurring declaration expands into
// discrete monthly due dates: the target day of month and how many
// consecutive months to generate, starting with the current one.
type RecurringSchedule struct {
	DueDay int // 1-31
	Months int
}

// NewRecurringSchedule validates and builds a schedule. A months value of
// zero selects the default expansion length.
func NewRecurringSchedule(dueDay, months int) (RecurringSchedule, error) {
	if dueDay < 1 || dueDay > 31 {
		return RecurringSchedule{}, fmt.Errorf("recurring due day must be between 1 and 31, got %d", dueDay)
	}
	if months == 0 {
		months = DefaultRecurringMonths
	}
	if months < 1 || months > MaxRecurringMonths {
		return RecurringSchedule{}, fmt.Errorf("recurring month count must be between 1 and %d, got %d", MaxRecurringMonths, months)
	}
	return RecurringSchedule{DueDay: dueDay, Months: months}, nil
}

// DueDates expands the schedule into one due date per consecutive calendar
// month, beginning with the month of the reference date. The target day is
// clamped to each month's last day when it does not exist there.
func (s RecurringSchedule) DueDates(from time.Time) []time.Time {
	dates := make([]time.Time, 0, s.Months)
	year, month := from.Year(), from.Month()

	for i := 0; i < s.Months; i++ {
		// time.Date normalizes month overflow, carrying into the year.
		first := time.Date(year, month+time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		dates = append(dates, ClampToMonth(first.Year(), first.Month(), s.DueDay))
	}
	return dates
}

// MonthLabel renders the human-readable month/year marker appended to the
// description of each expanded entry to disambiguate otherwise-identical
// rows in listings.
func MonthLabel(d time.Time) string {
	return d.Format("01/2006")
}
