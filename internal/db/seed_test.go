package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/yungbote/dayplanner-backend/internal/types"
)

func writeTimetable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "timetable.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write timetable: %v", err)
	}
	return path
}

func TestLoadTimetableExpandsGroups(t *testing.T) {
	path := writeTimetable(t, `
routes:
  - route: westside
    direction: outbound
    days: [1, 2, 3, 4, 5]
    trips:
      - { departure: "07:30", arrival: "07:40" }
      - { departure: "21:30", arrival: "21:40", late_night: true }
  - route: union
    direction: inbound
    days: [5]
    trips:
      - { departure: "23:35", arrival: "23:38", late_night: true }
`)

	trips, err := LoadTimetable(path)
	if err != nil {
		t.Fatalf("LoadTimetable: %v", err)
	}
	// 2 trips x 5 days + 1 trip x 1 day.
	if len(trips) != 11 {
		t.Fatalf("expected 11 rows, got %d", len(trips))
	}

	first := trips[0]
	if first.Route != types.RouteWestside || first.Direction != types.DirectionOutbound {
		t.Fatalf("unexpected first row %+v", first)
	}
	if first.DepartureTime.String() != "07:30" || first.DurationMinutes != 10 {
		t.Fatalf("unexpected times %s / %d min", first.DepartureTime, first.DurationMinutes)
	}

	lateNight := 0
	fridayUnion := 0
	for _, trip := range trips {
		if trip.IsLateNight {
			lateNight++
		}
		if trip.Route == types.RouteUnion {
			fridayUnion++
			if trip.DayOfWeek != 5 {
				t.Fatalf("union trip on day %d, want 5", trip.DayOfWeek)
			}
		}
	}
	if lateNight != 6 {
		t.Fatalf("expected 6 late-night rows, got %d", lateNight)
	}
	if fridayUnion != 1 {
		t.Fatalf("expected 1 union row, got %d", fridayUnion)
	}
}

func TestLoadTimetableMidnightCrossingDuration(t *testing.T) {
	path := writeTimetable(t, `
routes:
  - route: westside
    direction: inbound
    days: [1]
    trips:
      - { departure: "23:35", arrival: "00:08", late_night: true }
`)

	trips, err := LoadTimetable(path)
	if err != nil {
		t.Fatalf("LoadTimetable: %v", err)
	}
	if len(trips) != 1 {
		t.Fatalf("expected 1 row, got %d", len(trips))
	}
	if trips[0].DurationMinutes != 33 {
		t.Fatalf("midnight crossing duration = %d, want 33", trips[0].DurationMinutes)
	}
}

func TestLoadTimetableRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing route", "routes:\n  - direction: outbound\n    days: [1]\n    trips:\n      - { departure: \"07:30\", arrival: \"07:40\" }\n"},
		{"invalid weekday", "routes:\n  - route: westside\n    direction: outbound\n    days: [8]\n    trips:\n      - { departure: \"07:30\", arrival: \"07:40\" }\n"},
		{"invalid time", "routes:\n  - route: westside\n    direction: outbound\n    days: [1]\n    trips:\n      - { departure: \"25:00\", arrival: \"07:40\" }\n"},
		{"not yaml", "{{{{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTimetable(t, tt.content)
			if _, err := LoadTimetable(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadTimetableMissingFile(t *testing.T) {
	if _, err := LoadTimetable(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
