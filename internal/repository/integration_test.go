package repository

// These tests exercise the repositories against a real MySQL server
// and are skipped unless MYSQL_TEST_DSN points at a disposable
// database, e.g.
//
//	MYSQL_TEST_DSN="root:secret@tcp(127.0.0.1:3306)/boxoffice_test"
//
// Each test works on its own far-future date and deletes that date's
// rows up front, so reruns against the same database stay clean.

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxoffice/internal/database"
	"boxoffice/internal/model"
	"boxoffice/internal/seatmap"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("MYSQL_TEST_DSN")
	if dsn == "" {
		t.Skip("MYSQL_TEST_DSN not set, skipping MySQL integration tests")
	}
	cfg, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	cfg.ParseTime = true // DATE and DATETIME columns scan into time.Time
	db, err := sql.Open("mysql", cfg.FormatDSN())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, db.PingContext(ctx))
	require.NoError(t, database.EnsureSchema(ctx, db))
	require.NoError(t, database.SeedSeats(ctx, db))
	return db
}

// cleanSlot wipes every table keyed by booking_date for the given
// date.  Seat rows cascade with their bookings.
func cleanSlot(t *testing.T, db *sql.DB, date string) {
	t.Helper()
	ctx := context.Background()
	for _, q := range []string{
		`DELETE FROM bookings WHERE booking_date = ?`,
		`DELETE FROM bms_bookings WHERE booking_date = ?`,
		`DELETE FROM seat_selections WHERE booking_date = ?`,
	} {
		_, err := db.ExecContext(ctx, q, date)
		require.NoError(t, err)
	}
}

func mustSell(t *testing.T, db *sql.DB, b *model.Booking) {
	t.Helper()
	repo := NewBookingRepo(db)
	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, repo.CreateTx(ctx, tx, b))
	require.NoError(t, repo.CreateSeatsBulkTx(ctx, tx, b))
	require.NoError(t, tx.Commit())
}

func sampleBooking(date string, show model.Show, seats []string, price float64) *model.Booking {
	return &model.Booking{
		ID:           uuid.NewString(),
		Date:         date,
		Show:         show,
		Screen:       "Screen 1",
		Movie:        "Interstellar",
		ClassLabel:   model.ClassStarClass,
		PricePerSeat: price,
		TotalPrice:   price * float64(len(seats)),
		Seats:        seats,
		BookedAt:     time.Now().UTC().Truncate(time.Second),
		CreatedBy:    "term-1",
	}
}

func TestBookingLedgerRoundTrip(t *testing.T) {
	db := testDB(t)
	const date = "2091-03-01"
	cleanSlot(t, db, date)
	t.Cleanup(func() { cleanSlot(t, db, date) })

	repo := NewBookingRepo(db)
	ctx := context.Background()

	b := sampleBooking(date, model.ShowEvening, []string{"SC-A-1", "SC-A-2"}, 100)
	mustSell(t, db, b)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
	assert.Equal(t, date, got.Date)
	assert.Equal(t, model.ShowEvening, got.Show)
	assert.Equal(t, "Interstellar", got.Movie)
	assert.Equal(t, model.ClassStarClass, got.ClassLabel)
	assert.Equal(t, 100.0, got.PricePerSeat)
	assert.Equal(t, 200.0, got.TotalPrice)
	assert.Equal(t, []string{"SC-A-1", "SC-A-2"}, got.Seats)
	assert.Equal(t, b.BookedAt, got.BookedAt)
	assert.False(t, got.Synced)
	assert.Equal(t, "term-1", got.CreatedBy)

	list, err := repo.List(ctx, BookingFilter{Date: date})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)

	require.NoError(t, repo.MarkSynced(ctx, b.ID, true))
	got, err = repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, got.Synced)

	err = repo.MarkSynced(ctx, "missing-id", true)
	assert.True(t, errors.Is(err, sql.ErrNoRows))

	require.NoError(t, repo.Delete(ctx, b.ID))
	_, err = repo.GetByID(ctx, b.ID)
	assert.True(t, errors.Is(err, sql.ErrNoRows))

	// The seat rows must cascade with the booking.
	seats, err := repo.SeatsForSlot(ctx, date, model.ShowEvening)
	require.NoError(t, err)
	assert.Empty(t, seats)
}

func TestDoubleSaleHitsUniqueKey(t *testing.T) {
	db := testDB(t)
	const date = "2091-03-02"
	cleanSlot(t, db, date)
	t.Cleanup(func() { cleanSlot(t, db, date) })

	repo := NewBookingRepo(db)
	ctx := context.Background()

	first := sampleBooking(date, model.ShowNight, []string{"SC-B-1"}, 150)
	mustSell(t, db, first)

	second := sampleBooking(date, model.ShowNight, []string{"SC-B-1"}, 150)
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, repo.CreateTx(ctx, tx, second))
	err = repo.CreateSeatsBulkTx(ctx, tx, second)
	require.Error(t, err)
	var my *mysql.MySQLError
	require.True(t, errors.As(err, &my))
	assert.Equal(t, uint16(1062), my.Number)
	require.NoError(t, tx.Rollback())

	// The same seat in a different slot sells fine.
	other := sampleBooking(date, model.ShowMorning, []string{"SC-B-1"}, 150)
	mustSell(t, db, other)

	seats, err := repo.SeatsForSlot(ctx, date, model.ShowNight)
	require.NoError(t, err)
	assert.Equal(t, []string{"SC-B-1"}, seats)
}

func TestSelectionLifecycle(t *testing.T) {
	db := testDB(t)
	const date = "2091-03-03"
	cleanSlot(t, db, date)
	t.Cleanup(func() { cleanSlot(t, db, date) })

	repo := NewSelectionRepo(db)
	ctx := context.Background()
	show := model.ShowMatinee
	seats := []string{"FC-C-1", "FC-C-2"}

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, repo.ExpireTx(ctx, tx, date, show))
	foreign, err := repo.ForeignActiveTx(ctx, tx, date, show, "term-a", seats)
	require.NoError(t, err)
	assert.Empty(t, foreign)
	require.NoError(t, repo.ReplaceTx(ctx, tx, "term-a", date, show, seats, time.Now().UTC().Add(5*time.Minute)))
	require.NoError(t, tx.Commit())

	active, err := repo.ActiveForSlot(ctx, date, show)
	require.NoError(t, err)
	assert.ElementsMatch(t, seats, active)

	// Another terminal sees the holds as foreign.
	tx, err = db.BeginTx(ctx, nil)
	require.NoError(t, err)
	foreign, err = repo.ForeignActiveTx(ctx, tx, date, show, "term-b", seats)
	require.NoError(t, err)
	assert.ElementsMatch(t, seats, foreign)
	require.NoError(t, tx.Rollback())

	// The owning terminal refreshing its own holds is not a conflict.
	tx, err = db.BeginTx(ctx, nil)
	require.NoError(t, err)
	foreign, err = repo.ForeignActiveTx(ctx, tx, date, show, "term-a", seats)
	require.NoError(t, err)
	assert.Empty(t, foreign)
	require.NoError(t, repo.ReplaceTx(ctx, tx, "term-a", date, show, seats, time.Now().UTC().Add(5*time.Minute)))
	require.NoError(t, tx.Commit())

	n, err := repo.Release(ctx, "term-a", date, show)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	active, err = repo.ActiveForSlot(ctx, date, show)
	require.NoError(t, err)
	assert.Empty(t, active)

	// An expired hold is invisible to reads and swept by ExpireTx.
	tx, err = db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, repo.ReplaceTx(ctx, tx, "term-a", date, show, []string{"FC-C-3"}, time.Now().UTC().Add(-time.Minute)))
	require.NoError(t, tx.Commit())
	active, err = repo.ActiveForSlot(ctx, date, show)
	require.NoError(t, err)
	assert.Empty(t, active)

	tx, err = db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, repo.ExpireTx(ctx, tx, date, show))
	require.NoError(t, tx.Commit())
	var left int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM seat_selections WHERE booking_date = ?`, date).Scan(&left))
	assert.Zero(t, left)
}

func TestBmsLedger(t *testing.T) {
	db := testDB(t)
	const date = "2091-03-04"
	cleanSlot(t, db, date)
	t.Cleanup(func() { cleanSlot(t, db, date) })

	repo := NewBmsRepo(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	entries := []model.BmsBooking{
		{SeatID: "BOX-A-1", Date: date, Show: model.ShowEvening, ClassLabel: model.ClassBox, CreatedAt: now},
		{SeatID: "SC-B-2", Date: date, Show: model.ShowEvening, ClassLabel: model.ClassStarClass, CreatedAt: now},
		{SeatID: "SC-B-3", Date: date, Show: model.ShowEvening, ClassLabel: model.ClassStarClass, CreatedAt: now},
	}
	require.NoError(t, repo.CreateBulk(ctx, entries))

	// The same seat again must fail the whole batch.
	dup := []model.BmsBooking{
		{SeatID: "SC-B-4", Date: date, Show: model.ShowEvening, ClassLabel: model.ClassStarClass, CreatedAt: now},
		{SeatID: "SC-B-2", Date: date, Show: model.ShowEvening, ClassLabel: model.ClassStarClass, CreatedAt: now},
	}
	err := repo.CreateBulk(ctx, dup)
	require.Error(t, err)
	var my *mysql.MySQLError
	require.True(t, errors.As(err, &my))
	assert.Equal(t, uint16(1062), my.Number)

	list, err := repo.List(ctx, date, model.ShowEvening)
	require.NoError(t, err)
	require.Len(t, list, 3)

	seats, err := repo.SeatsForSlot(ctx, date, model.ShowEvening)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"BOX-A-1", "SC-B-2", "SC-B-3"}, seats)

	counts, err := repo.CountByClass(ctx, date, model.ShowEvening)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{model.ClassBox: 1, model.ClassStarClass: 2}, counts)

	require.NoError(t, repo.Delete(ctx, list[0].ID))
	list, err = repo.List(ctx, date, "")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	err = repo.Delete(ctx, 999999999)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestStatsAggregation(t *testing.T) {
	db := testDB(t)
	const date = "2091-03-05"
	cleanSlot(t, db, date)
	t.Cleanup(func() { cleanSlot(t, db, date) })

	repo := NewBookingRepo(db)
	ctx := context.Background()

	star := sampleBooking(date, model.ShowEvening, []string{"SC-A-1", "SC-A-2"}, 150)
	mustSell(t, db, star)
	box := sampleBooking(date, model.ShowEvening, []string{"BOX-A-1"}, 300)
	box.ClassLabel = model.ClassBox
	mustSell(t, db, box)
	morning := sampleBooking(date, model.ShowMorning, []string{"FC-A-1"}, 100)
	morning.ClassLabel = model.ClassFirstClass
	mustSell(t, db, morning)

	stats, err := repo.StatsForSlot(ctx, date, model.ShowEvening)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Bookings)
	assert.Equal(t, 3, stats.SeatsSold)
	assert.Equal(t, 600.0, stats.LocalIncome)
	assert.Equal(t, 300.0, stats.VipIncome)

	day, err := repo.StatsForSlot(ctx, date, "")
	require.NoError(t, err)
	assert.Equal(t, 3, day.Bookings)
	assert.Equal(t, 4, day.SeatsSold)
	assert.Equal(t, 700.0, day.LocalIncome)

	byShow, err := repo.StatsByShow(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, model.ShowStats{Bookings: 2, SeatsSold: 3, Income: 600}, byShow[model.ShowEvening])
	assert.Equal(t, model.ShowStats{Bookings: 1, SeatsSold: 1, Income: 100}, byShow[model.ShowMorning])
	assert.Equal(t, model.ShowStats{}, byShow[model.ShowNight])
}

func TestSettingsOverlay(t *testing.T) {
	db := testDB(t)
	repo := NewSettingsRepo(db)
	ctx := context.Background()
	t.Cleanup(func() {
		// Put the stored sections back to their defaults so other
		// callers of the same database see pristine settings.
		require.NoError(t, repo.SavePricing(ctx, model.DefaultPricing()))
		require.NoError(t, repo.SaveShowtimes(ctx, model.DefaultShowtimes()))
		require.NoError(t, repo.SaveTheater(ctx, model.DefaultTheater()))
	})

	require.NoError(t, repo.SavePricing(ctx, model.PricingSettings{
		Prices: map[string]float64{model.ClassStarClass: 180},
	}))
	ps, err := repo.Pricing(ctx)
	require.NoError(t, err)
	assert.Equal(t, 180.0, ps.Prices[model.ClassStarClass])
	assert.Equal(t, model.DefaultPricing().Prices[model.ClassBox], ps.Prices[model.ClassBox])

	require.NoError(t, repo.SaveShowtimes(ctx, model.ShowtimeSettings{
		Times: map[model.Show]string{model.ShowEvening: "07:00 PM"},
	}))
	st, err := repo.Showtimes(ctx)
	require.NoError(t, err)
	assert.Equal(t, "07:00 PM", st.Times[model.ShowEvening])
	assert.Equal(t, model.DefaultShowtimes().Times[model.ShowMorning], st.Times[model.ShowMorning])

	require.NoError(t, repo.SaveTheater(ctx, model.TheaterSettings{Name: "Roxy Talkies"}))
	th, err := repo.Theater(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Roxy Talkies", th.Name)
	assert.Equal(t, model.DefaultTheater().Screen, th.Screen)
}

func TestEveningSaleReadsBackBooked(t *testing.T) {
	db := testDB(t)
	const date = "2025-08-06"
	cleanSlot(t, db, date)
	t.Cleanup(func() { cleanSlot(t, db, date) })

	bookings := NewBookingRepo(db)
	seats := NewSeatRepo(db)
	ctx := context.Background()

	// Two plain-row seats at 100 each; rows without a class prefix
	// exist only in the ledger, never in the inventory.
	b := sampleBooking(date, model.ShowEvening, []string{"A-1", "A-2"}, 100)
	b.ClassLabel = "UNKNOWN"
	mustSell(t, db, b)

	got, err := bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 200.0, got.TotalPrice)
	assert.Equal(t, []string{"A-1", "A-2"}, got.Seats)

	layout, err := seats.ListAll(ctx)
	require.NoError(t, err)
	booked, err := bookings.SeatsForSlot(ctx, date, model.ShowEvening)
	require.NoError(t, err)
	rep := seatmap.Compose(date, model.ShowEvening, layout, booked, nil, nil)
	assert.Equal(t, model.SeatBooked, rep.Statuses["A-1"])
	assert.Equal(t, model.SeatBooked, rep.Statuses["A-2"])
}

func TestSeatInventory(t *testing.T) {
	db := testDB(t)
	repo := NewSeatRepo(db)
	ctx := context.Background()

	seats, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, seats, 348)
	assert.Equal(t, "BOX-A-1", seats[0].SeatID)
	assert.Equal(t, model.ClassBox, seats[0].ClassLabel)

	const seatID = "SEC-C-24"
	t.Cleanup(func() { require.NoError(t, repo.SetActive(ctx, seatID, true)) })

	require.NoError(t, repo.SetActive(ctx, seatID, false))
	s, err := repo.Get(ctx, seatID)
	require.NoError(t, err)
	assert.False(t, s.IsActive)

	// Seeding again must not resurrect the blocked seat.
	require.NoError(t, database.SeedSeats(ctx, db))
	s, err = repo.Get(ctx, seatID)
	require.NoError(t, err)
	assert.False(t, s.IsActive)

	err = repo.SetActive(ctx, "ZZ-9-9", true)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}
