package schedule

import "testing"

func TestBuildMonthsConservation(t *testing.T) {
	// 30 days starting mid-January spans two partial months
	days := DateRange("2024-01-20", 30)
	months := BuildMonths(days)

	if len(months) != 2 {
		t.Fatalf("expected 2 month blocks, got %d", len(months))
	}

	total := 0
	seen := make(map[string]bool)
	prev := ""
	for _, m := range months {
		total += len(m.Days)
		for _, d := range m.Days {
			if seen[d] {
				t.Fatalf("duplicated day %s", d)
			}
			seen[d] = true
			if d <= prev && prev != "" {
				t.Fatalf("days out of order: %s after %s", d, prev)
			}
			prev = d
		}
	}
	if total != len(days) {
		t.Fatalf("conservation violated: emitted %d days, fed %d", total, len(days))
	}
}

func TestBuildMonthsBlocks(t *testing.T) {
	days := DateRange("2024-01-29", 5) // Jan 29..31, Feb 1..2
	months := BuildMonths(days)

	if len(months) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(months))
	}
	if months[0].Anchor != "2024-01-29" || len(months[0].Days) != 3 {
		t.Fatalf("unexpected first block: %+v", months[0])
	}
	if months[1].Anchor != "2024-02-01" || len(months[1].Days) != 2 {
		t.Fatalf("unexpected second block: %+v", months[1])
	}

	// 2024-01-29 is a Monday, 2024-02-01 a Thursday
	if months[0].LeadingBlanks != 0 {
		t.Errorf("Monday anchor wants 0 leading blanks, got %d", months[0].LeadingBlanks)
	}
	if months[1].LeadingBlanks != 3 {
		t.Errorf("Thursday anchor wants 3 leading blanks, got %d", months[1].LeadingBlanks)
	}
}

func TestBuildMonthsEmpty(t *testing.T) {
	if months := BuildMonths(nil); len(months) != 0 {
		t.Fatalf("expected no blocks for empty input, got %d", len(months))
	}
}

func TestDateRange(t *testing.T) {
	days := DateRange("2024-02-27", 4)
	want := []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01"} // leap year
	if len(days) != len(want) {
		t.Fatalf("expected %d days, got %d", len(want), len(days))
	}
	for i := range want {
		if days[i] != want[i] {
			t.Errorf("day %d = %s, want %s", i, days[i], want[i])
		}
	}

	if DateRange("bad-date", 5) != nil {
		t.Error("malformed start must yield nil")
	}
	if DateRange("2024-01-01", 0) != nil {
		t.Error("non-positive count must yield nil")
	}
}
