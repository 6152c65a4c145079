package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/dayplanner-backend/internal/logger"
	"github.com/yungbote/dayplanner-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&types.BusSchedule{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func testTrip(route types.BusRoute, direction types.BusDirection, departure, arrival types.TimeOfDay, day int) *types.BusSchedule {
	return &types.BusSchedule{
		Route:           route,
		Direction:       direction,
		DepartureTime:   departure,
		ArrivalTime:     arrival,
		DayOfWeek:       day,
		DurationMinutes: int(arrival - departure),
	}
}

func TestBusScheduleRepoRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewBusScheduleRepo(db, newTestLogger(t))
	ctx := context.Background()

	trips := []*types.BusSchedule{
		testTrip(types.RouteWestside, types.DirectionOutbound, types.NewTimeOfDay(9, 25), types.NewTimeOfDay(9, 35), 3),
		testTrip(types.RouteWestside, types.DirectionOutbound, types.NewTimeOfDay(7, 30), types.NewTimeOfDay(7, 40), 3),
		testTrip(types.RouteUnion, types.DirectionOutbound, types.NewTimeOfDay(8, 5), types.NewTimeOfDay(8, 14), 3),
		testTrip(types.RouteWestside, types.DirectionInbound, types.NewTimeOfDay(15, 5), types.NewTimeOfDay(15, 8), 3),
		testTrip(types.RouteWestside, types.DirectionOutbound, types.NewTimeOfDay(7, 30), types.NewTimeOfDay(7, 40), 4),
	}
	if err := repo.CreateBatch(ctx, nil, trips); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	// Ids are assigned on create, so seeding works on any driver.
	for _, trip := range trips {
		if trip.ID == uuid.Nil {
			t.Fatalf("trip %s %s missing id after create", trip.Route, trip.DepartureTime)
		}
	}

	count, err := repo.Count(ctx, nil)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 5 {
		t.Fatalf("Count = %d, want 5", count)
	}

	outbound, err := repo.ListByDirection(ctx, nil, types.DirectionOutbound, 3)
	if err != nil {
		t.Fatalf("ListByDirection: %v", err)
	}
	if len(outbound) != 3 {
		t.Fatalf("expected 3 Wednesday outbound trips, got %d", len(outbound))
	}
	// Ordered by departure.
	for i := 1; i < len(outbound); i++ {
		if outbound[i].DepartureTime < outbound[i-1].DepartureTime {
			t.Fatalf("trips not ordered by departure: %v before %v",
				outbound[i-1].DepartureTime, outbound[i].DepartureTime)
		}
	}

	westOut, err := repo.ListByRouteDirection(ctx, nil, types.RouteWestside, types.DirectionOutbound, 3)
	if err != nil {
		t.Fatalf("ListByRouteDirection: %v", err)
	}
	if len(westOut) != 2 {
		t.Fatalf("expected 2 westside outbound trips, got %d", len(westOut))
	}
	for _, trip := range westOut {
		if trip.Route != types.RouteWestside {
			t.Fatalf("wrong route %s", trip.Route)
		}
	}

	// Clock times survive the database round trip.
	if westOut[0].DepartureTime.String() != "07:30" {
		t.Fatalf("departure time mangled: %s", westOut[0].DepartureTime)
	}
}

func TestBusScheduleRepoEmptyBatch(t *testing.T) {
	db := newTestDB(t)
	repo := NewBusScheduleRepo(db, newTestLogger(t))

	if err := repo.CreateBatch(context.Background(), nil, nil); err != nil {
		t.Fatalf("empty CreateBatch should be a no-op: %v", err)
	}
}
