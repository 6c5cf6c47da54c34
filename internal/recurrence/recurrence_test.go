package recurrence

import (
	"testing"
	"time"

	"github.com/famledger/famledger/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextDue(t *testing.T) {
	cases := []struct {
		name string
		freq models.Frequency
		from time.Time
		want time.Time
	}{
		{"monthly regular", models.FrequencyMonthly, date(2024, time.March, 10), date(2024, time.April, 10)},
		{"monthly clamps to leap february", models.FrequencyMonthly, date(2024, time.January, 31), date(2024, time.February, 29)},
		{"monthly clamps to short february", models.FrequencyMonthly, date(2023, time.January, 31), date(2023, time.February, 28)},
		{"monthly clamps to 30-day month", models.FrequencyMonthly, date(2024, time.March, 31), date(2024, time.April, 30)},
		{"monthly across year boundary", models.FrequencyMonthly, date(2023, time.December, 15), date(2024, time.January, 15)},
		{"yearly", models.FrequencyYearly, date(2023, time.June, 15), date(2024, time.June, 15)},
		{"yearly clamps leap day", models.FrequencyYearly, date(2024, time.February, 29), date(2025, time.February, 28)},
		{"once unchanged", models.FrequencyOnce, date(2024, time.May, 1), date(2024, time.May, 1)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := NextDue(c.freq, c.from)
			if !got.Equal(c.want) {
				t.Fatalf("NextDue(%s, %s) = %s, want %s",
					c.freq, c.from.Format(time.DateOnly), got.Format(time.DateOnly), c.want.Format(time.DateOnly))
			}
		})
	}
}

// Repeated monthly advancement always recomputes from the previous result,
// so once the day clamps it stays clamped (Jan 31 -> Feb 28 -> Mar 28) and
// never lands past the end of a month.
func TestNextDueRepeatedMonthly(t *testing.T) {
	cur := date(2023, time.January, 31)
	for i := 0; i < 24; i++ {
		next := NextDue(models.FrequencyMonthly, cur)
		if last := lastDay(next); next.Day() > last {
			t.Fatalf("advance %d: day %d exceeds last day %d of %s", i+1, next.Day(), last, next.Month())
		}
		if again := NextDue(models.FrequencyMonthly, cur); !again.Equal(next) {
			t.Fatalf("advance %d: recomputation not deterministic: %s vs %s", i+1, again, next)
		}
		cur = next
	}
	if cur.Day() != 28 {
		t.Fatalf("expected clamped day 28 after Jan 31 start, got %d", cur.Day())
	}
	if cur.Year() != 2025 || cur.Month() != time.January {
		t.Fatalf("expected 2025-01 after 24 monthly advances, got %s", cur.Format(time.DateOnly))
	}
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2024, time.July, 3, 17, 45, 12, 999, time.UTC)
	got := DateOnly(in)
	if !got.Equal(date(2024, time.July, 3)) {
		t.Fatalf("DateOnly(%s) = %s", in, got)
	}
}
