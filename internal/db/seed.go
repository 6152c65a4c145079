package db

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/dayplanner-backend/internal/logger"
	"github.com/yungbote/dayplanner-backend/internal/repos"
	"github.com/yungbote/dayplanner-backend/internal/types"
)

// timetableFile is the on-disk shape of the bus timetable. Each group expands
// to one BusSchedule row per trip per weekday.
type timetableFile struct {
	Groups []timetableGroup `yaml:"routes"`
}

type timetableGroup struct {
	Route     types.BusRoute     `yaml:"route"`
	Direction types.BusDirection `yaml:"direction"`
	Days      []int              `yaml:"days"`
	Trips     []timetableTrip    `yaml:"trips"`
}

type timetableTrip struct {
	Departure types.TimeOfDay `yaml:"departure"`
	Arrival   types.TimeOfDay `yaml:"arrival"`
	LateNight bool            `yaml:"late_night"`
}

// LoadTimetable reads a YAML timetable and expands it into schedule rows.
func LoadTimetable(path string) ([]*types.BusSchedule, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read timetable file: %w", err)
	}

	var file timetableFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse timetable file: %w", err)
	}

	var trips []*types.BusSchedule
	for gi, group := range file.Groups {
		if group.Route == "" || group.Direction == "" {
			return nil, fmt.Errorf("timetable group %d is missing route or direction", gi)
		}
		for _, day := range group.Days {
			if day < 1 || day > 7 {
				return nil, fmt.Errorf("timetable group %d has invalid weekday %d", gi, day)
			}
		}
		for _, trip := range group.Trips {
			duration := int(trip.Arrival - trip.Departure)
			if duration < 0 {
				duration += 24 * 60
			}
			for _, day := range group.Days {
				trips = append(trips, &types.BusSchedule{
					Route:           group.Route,
					Direction:       group.Direction,
					DepartureTime:   trip.Departure,
					ArrivalTime:     trip.Arrival,
					DayOfWeek:       day,
					DurationMinutes: duration,
					IsLateNight:     trip.LateNight,
				})
			}
		}
	}
	return trips, nil
}

// SeedBusSchedules populates the bus_schedules table from the timetable file
// when the table is empty. Existing rows are left alone.
func SeedBusSchedules(ctx context.Context, repo repos.BusScheduleRepo, path string, log *logger.Logger) error {
	count, err := repo.Count(ctx, nil)
	if err != nil {
		return fmt.Errorf("count bus schedules: %w", err)
	}
	if count > 0 {
		log.Debug("Bus schedules already seeded", "count", count)
		return nil
	}

	trips, err := LoadTimetable(path)
	if err != nil {
		return err
	}
	if len(trips) == 0 {
		log.Warn("Timetable file contains no trips", "path", path)
		return nil
	}

	if err := repo.CreateBatch(ctx, nil, trips); err != nil {
		return fmt.Errorf("insert bus schedules: %w", err)
	}
	log.Info("Seeded bus schedules", "count", len(trips), "path", path)
	return nil
}
