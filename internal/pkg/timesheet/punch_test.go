package timesheet

import (
	"reflect"
	"testing"
)

func TestParseTimes(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		maxCount int
		want     []string
	}{
		{"comma separated", "09:00,13:00,14:00,18:00", 0, []string{"09:00", "13:00", "14:00", "18:00"}},
		{"semicolons and spaces", "09:00; 13:00  18:30", 0, []string{"09:00", "13:00", "18:30"}},
		{"seconds discarded", "09:00:12, 18:05:59", 0, []string{"09:00", "18:05"}},
		{"single digit hour", "9:05,18:00", 0, []string{"9:05", "18:00"}},
		{"junk rejected", "09:00, lunch, 18:00, n/a", 0, []string{"09:00", "18:00"}},
		{"truncated by max count", "09:00,12:00,13:00,18:00", 2, []string{"09:00", "12:00"}},
		{"max count larger than input", "09:00,18:00", 6, []string{"09:00", "18:00"}},
		{"empty input", "   ", 0, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ParseTimes(c.raw, c.maxCount)
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("ParseTimes(%q, %d) = %v, want %v", c.raw, c.maxCount, got, c.want)
			}
		})
	}
}

func TestParseTimes_OrderPreserved(t *testing.T) {
	// the order encodes IN/OUT pairing; parsing must never re-sort
	got := ParseTimes("18:00 09:00", 0)
	want := []string{"18:00", "09:00"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseTimes reordered punches: got %v, want %v", got, want)
	}
}

func TestParseTimesFrom(t *testing.T) {
	got := ParseTimesFrom([]string{"09:00 13:00", "", "14:00", "18:00:30"}, 0)
	want := []string{"09:00", "13:00", "14:00", "18:00"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseTimesFrom() = %v, want %v", got, want)
	}
}
