//go:build e2e

package dbtest

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"bodyshop/internal/pkg/errs"
	"bodyshop/internal/pkg/password"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DefaultPassword is the plain-text password of every fixture user.
const DefaultPassword = "password123"

var (
	hashOnce    sync.Once
	fixtureHash string
	hashErr     error
)

func CreateTestUser(t *testing.T, db DBLike, email, role string) int64 {
	t.Helper()

	hashOnce.Do(func() {
		fixtureHash, hashErr = password.HashPassword(DefaultPassword)
	})
	require.NoError(t, hashErr)

	var id int64
	err := db.QueryRow(context.Background(),
		`INSERT INTO users (email, password_hash, name, role) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role
		 RETURNING id`,
		email, fixtureHash, strings.Split(email, "@")[0], role).Scan(&id)
	require.NoError(t, err)
	return id
}

func CreateTestVehicle(t *testing.T, db DBLike, userID int64) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(context.Background(),
		`INSERT INTO vehicles (user_id, make, model, year) VALUES ($1, 'Toyota', 'Corolla', 2019) RETURNING id`,
		userID).Scan(&id)
	require.NoError(t, err)
	return id
}

func CreateTestService(t *testing.T, db DBLike, name string, minutes int, price string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(context.Background(),
		`INSERT INTO services (name, duration_minutes, price) VALUES ($1, $2, $3::numeric) RETURNING id`,
		name, minutes, price).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateTestBooking inserts a booking row directly, bypassing the booking flow.
func CreateTestBooking(t *testing.T, db DBLike, userID, vehicleID int64, date, start, end, status string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(context.Background(),
		`INSERT INTO bookings (user_id, vehicle_id, booking_date, start_time, end_time, status)
		 VALUES ($1, $2, $3::date, $4::time, $5::time, $6) RETURNING id`,
		userID, vehicleID, date, start, end, status).Scan(&id)
	require.NoError(t, err)
	return id
}

func BookingStatus(t *testing.T, db DBLike, id int64) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(), `SELECT status FROM bookings WHERE id = $1`, id).Scan(&status)
	require.NoError(t, err)
	return status
}

func CountAudit(t *testing.T, db DBLike, action string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), `SELECT COUNT(*) FROM audit_logs WHERE action = $1`, action).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       string
	truncateErr       error
)

// ResetDB truncates every table except schema_migrations.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateErr = err
			return
		}
		tables, err := pgx.CollectRows(rows, pgx.RowTo[string])
		if err != nil {
			truncateErr = err
			return
		}
		if len(tables) == 0 {
			truncateErr = errs.New("no tables to truncate")
			return
		}
		truncateSQL = "TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE"
	})
	if truncateErr != nil {
		return errs.Wrap(truncateErr, "failed to build TRUNCATE statement")
	}

	_, err := pool.Exec(ctx, truncateSQL)
	return err
}
