package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/codr1/courtbook/internal/db"
	dbgen "github.com/codr1/courtbook/internal/db/generated"
)

// NewTestDB creates a temporary SQLite database with migrations applied.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("create test db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	return database
}

// SeedCourt inserts an available court with the given hourly rate in cents.
func SeedCourt(t *testing.T, database *db.DB, name string, hourlyRateCents int64) dbgen.Court {
	t.Helper()

	court, err := database.Queries.CreateCourt(context.Background(), dbgen.CreateCourtParams{
		Name:            name,
		Capacity:        4,
		HourlyRateCents: hourlyRateCents,
		Status:          "available",
	})
	if err != nil {
		t.Fatalf("seed court %s: %v", name, err)
	}
	return court
}

// SeedClient inserts an active client in the named tier.
func SeedClient(t *testing.T, database *db.DB, phone, tierName string) dbgen.Client {
	t.Helper()

	ctx := context.Background()
	tier, err := database.Queries.GetClientTierByName(ctx, tierName)
	if err != nil {
		t.Fatalf("load tier %s: %v", tierName, err)
	}
	client, err := database.Queries.CreateClient(ctx, dbgen.CreateClientParams{
		FirstName: "Test",
		LastName:  "Client " + phone,
		Phone:     phone,
		TierID:    tier.ID,
		Status:    "active",
	})
	if err != nil {
		t.Fatalf("seed client %s: %v", phone, err)
	}
	return client
}

// SeedReservation inserts a reservation row directly in the given state.
func SeedReservation(t *testing.T, database *db.DB, courtID, clientID int64, date, start, end, state string) dbgen.Reservation {
	t.Helper()

	ctx := context.Background()
	reservation, err := database.Queries.CreateReservation(ctx, dbgen.CreateReservationParams{
		CourtID:              courtID,
		ClientID:             clientID,
		Date:                 date,
		StartTime:            start,
		EndTime:              end,
		TotalPriceCents:      3000,
		DepositRequiredCents: 900,
	})
	if err != nil {
		t.Fatalf("seed reservation: %v", err)
	}
	if state == "pending" {
		return reservation
	}

	if _, err := database.ExecContext(ctx, "UPDATE reservations SET state = ? WHERE id = ?", state, reservation.ID); err != nil {
		t.Fatalf("set reservation state: %v", err)
	}
	reservation, err = database.Queries.GetReservation(ctx, reservation.ID)
	if err != nil {
		t.Fatalf("reload reservation: %v", err)
	}
	return reservation
}

// SeedBlockedDay inserts a blocked day; courtID 0 blocks every court.
func SeedBlockedDay(t *testing.T, database *db.DB, date string, courtID int64) dbgen.BlockedDay {
	t.Helper()

	params := dbgen.CreateBlockedDayParams{Date: date, Reason: "Maintenance"}
	if courtID != 0 {
		params.CourtID = sql.NullInt64{Int64: courtID, Valid: true}
	}
	blocked, err := database.Queries.CreateBlockedDay(context.Background(), params)
	if err != nil {
		t.Fatalf("seed blocked day: %v", err)
	}
	return blocked
}
