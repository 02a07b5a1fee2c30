package valueobject

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAssignCycle(t *testing.T) {
	tests := []struct {
		name        string
		purchase    time.Time
		closingDay  int
		dueDay      int
		wantClosing time.Time
		wantDue     time.Time
	}{
		{
			name:        "purchase on closing day stays in current month",
			purchase:    date(2025, time.January, 1),
			closingDay:  1,
			dueDay:      10,
			wantClosing: date(2025, time.January, 1),
			wantDue:     date(2025, time.January, 10),
		},
		{
			name:        "purchase before closing day stays in current month",
			purchase:    date(2025, time.March, 5),
			closingDay:  10,
			dueDay:      20,
			wantClosing: date(2025, time.March, 10),
			wantDue:     date(2025, time.March, 20),
		},
		{
			name:        "purchase after closing day rolls to next month",
			purchase:    date(2025, time.January, 15),
			closingDay:  1,
			dueDay:      10,
			wantClosing: date(2025, time.February, 1),
			wantDue:     date(2025, time.February, 10),
		},
		{
			name:        "december rollover increments the year",
			purchase:    date(2025, time.December, 20),
			closingDay:  15,
			dueDay:      25,
			wantClosing: date(2026, time.January, 15),
			wantDue:     date(2026, time.January, 25),
		},
		{
			name:        "closing day clamped in february",
			purchase:    date(2025, time.February, 10),
			closingDay:  31,
			dueDay:      28,
			wantClosing: date(2025, time.February, 28),
			wantDue:     date(2025, time.February, 28),
		},
		{
			name:        "due day clamped in leap year february",
			purchase:    date(2024, time.January, 31),
			closingDay:  28,
			dueDay:      31,
			wantClosing: date(2024, time.February, 28),
			wantDue:     date(2024, time.February, 29),
		},
		{
			name:        "due day clamped in 30-day month",
			purchase:    date(2025, time.April, 10),
			closingDay:  15,
			dueDay:      31,
			wantClosing: date(2025, time.April, 15),
			wantDue:     date(2025, time.April, 30),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cycle := AssignCycle(tt.purchase, tt.closingDay, tt.dueDay)
			if !cycle.ClosingDate.Equal(tt.wantClosing) {
				t.Errorf("closing date = %s, want %s", cycle.ClosingDate, tt.wantClosing)
			}
			if !cycle.DueDate.Equal(tt.wantDue) {
				t.Errorf("due date = %s, want %s", cycle.DueDate, tt.wantDue)
			}
		})
	}
}

func TestAssignCycle_AlwaysValidDates(t *testing.T) {
	// Every (closing day, due day) combination must yield a real calendar
	// date in the expected month: the clamp may move the day, never the month.
	for month := time.January; month <= time.December; month++ {
		for closingDay := 1; closingDay <= 31; closingDay++ {
			for dueDay := 1; dueDay <= 31; dueDay++ {
				purchase := date(2025, month, 15)
				cycle := AssignCycle(purchase, closingDay, dueDay)

				wantMonth := month
				wantYear := 2025
				if 15 > closingDay {
					wantMonth++
					if wantMonth > time.December {
						wantMonth = time.January
						wantYear++
					}
				}
				if cycle.ClosingDate.Month() != wantMonth || cycle.ClosingDate.Year() != wantYear {
					t.Fatalf("closing %s for purchase %s closing_day=%d", cycle.ClosingDate, purchase, closingDay)
				}
				if cycle.DueDate.Month() != wantMonth || cycle.DueDate.Year() != wantYear {
					t.Fatalf("due %s for purchase %s due_day=%d", cycle.DueDate, purchase, dueDay)
				}
			}
		}
	}
}

func TestCycleMonthYear(t *testing.T) {
	cycle := AssignCycle(date(2025, time.December, 20), 15, 10)
	if cycle.Month() != 1 || cycle.Year() != 2026 {
		t.Errorf("cycle = %d/%d, want 1/2026", cycle.Month(), cycle.Year())
	}
}

func TestLastDayOfMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2025, time.January, 31},
		{2025, time.February, 28},
		{2024, time.February, 29},
		{2025, time.April, 30},
		{2025, time.December, 31},
	}
	for _, tt := range tests {
		if got := LastDayOfMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("LastDayOfMonth(%d, %s) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}
