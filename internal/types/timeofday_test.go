package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{"00:00", 0, false},
		{"07:30", 450, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"garbage", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseTimeOfDay(%q) should fail", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTimeOfDay(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("ParseTimeOfDay(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestTimeOfDayRoundTripJSON(t *testing.T) {
	orig := NewTimeOfDay(9, 5)
	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"09:05"` {
		t.Fatalf("marshal = %s", data)
	}
	var parsed TimeOfDay
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if parsed != orig {
		t.Fatalf("round trip changed value: %d != %d", parsed, orig)
	}
}

func TestTimeOfDayLabel(t *testing.T) {
	tests := []struct {
		hour, minute int
		want         string
	}{
		{0, 5, "12:05 AM"},
		{9, 0, "09:00 AM"},
		{12, 0, "12:00 PM"},
		{15, 4, "03:04 PM"},
		{23, 59, "11:59 PM"},
	}
	for _, tt := range tests {
		if got := NewTimeOfDay(tt.hour, tt.minute).Label(); got != tt.want {
			t.Errorf("Label(%02d:%02d) = %q, want %q", tt.hour, tt.minute, got, tt.want)
		}
	}
}

func TestTimeOfDayOnKeepsLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	day := time.Date(2025, time.March, 12, 0, 0, 0, 0, loc)
	projected := NewTimeOfDay(14, 30).On(day)
	if projected.Location() != loc {
		t.Fatalf("location changed: %v", projected.Location())
	}
	if projected.Hour() != 14 || projected.Minute() != 30 {
		t.Fatalf("projected to %v", projected)
	}
}

func TestTimeOfDayScan(t *testing.T) {
	var fromInt TimeOfDay
	if err := fromInt.Scan(int64(605)); err != nil {
		t.Fatalf("scan int64: %v", err)
	}
	if fromInt.String() != "10:05" {
		t.Fatalf("scan int64 = %s", fromInt)
	}

	var fromString TimeOfDay
	if err := fromString.Scan("08:15"); err != nil {
		t.Fatalf("scan string: %v", err)
	}
	if fromString != NewTimeOfDay(8, 15) {
		t.Fatalf("scan string = %d", fromString)
	}

	var bad TimeOfDay
	if err := bad.Scan(3.14); err == nil {
		t.Fatal("scan float should fail")
	}
}
