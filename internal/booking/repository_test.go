package booking

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Now()

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "postgres"), mock
}

func bookingColumns() []string {
	return []string{
		"id", "user_id", "field_id", "facility_id", "booking_date",
		"start_time", "end_time", "duration_hours", "price", "status", "created_at",
	}
}

func TestRepository_CreateBooking(t *testing.T) {
	ctx := context.Background()

	b := Booking{
		UserID:        5,
		FieldID:       1,
		FacilityID:    1,
		Date:          "2025-06-02",
		StartTime:     "10:00",
		EndTime:       "11:00",
		DurationHours: 1,
		Price:         20,
	}

	t.Run("inserts confirmed booking", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRepository(db)

		rows := sqlmock.NewRows(bookingColumns()).
			AddRow(42, 5, 1, 1, "2025-06-02", "10:00", "11:00", 1.0, 20.0, StatusConfirmed, now)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
			WithArgs(5, 1, 1, "2025-06-02", "10:00", "11:00", 1.0, 20.0).
			WillReturnRows(rows)

		created, err := repo.CreateBooking(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, 42, created.ID)
		assert.Equal(t, StatusConfirmed, created.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to slot already booked", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
			WithArgs(5, 1, 1, "2025-06-02", "10:00", "11:00", 1.0, 20.0).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "bookings_confirmed_slot_idx"})

		_, err := repo.CreateBooking(ctx, b)
		assert.ErrorIs(t, err, ErrSlotAlreadyBooked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_GetBookingByID(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	rows := sqlmock.NewRows(bookingColumns()).
		AddRow(42, 5, 1, 1, "2025-06-02", "10:00", "11:00", 1.0, 20.0, StatusConfirmed, now)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, field_id, facility_id, booking_date, start_time, end_time, duration_hours, price, status, created_at")).
		WithArgs(42).
		WillReturnRows(rows)

	booking, err := repo.GetBookingByID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 5, booking.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CancelBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels confirmed booking", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings")).
			WithArgs(42).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.CancelBooking(ctx, 42))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no confirmed row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings")).
			WithArgs(42).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.CancelBooking(ctx, 42), ErrBookingNotFoundOrAlreadyCancelled)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_FindConfirmedByFieldAndDate(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	rows := sqlmock.NewRows(bookingColumns()).
		AddRow(1, 5, 1, 1, "2025-06-02", "10:00", "11:00", 1.0, 20.0, StatusConfirmed, now).
		AddRow(2, 6, 1, 1, "2025-06-02", "18:00", "19:30", 1.5, 28.0, StatusConfirmed, now)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE field_id = $1 AND booking_date = $2 AND status = 'confirmed'")).
		WithArgs(1, "2025-06-02").
		WillReturnRows(rows)

	bookings, err := repo.FindConfirmedByFieldAndDate(ctx, 1, "2025-06-02")
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "18:00", bookings[1].StartTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetUserBookings(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	rows := sqlmock.NewRows(bookingColumns()).
		AddRow(1, 5, 1, 1, "2025-06-02", "10:00", "11:00", 1.0, 20.0, StatusConfirmed, now)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1")).
		WithArgs(5).
		WillReturnRows(rows)

	bookings, err := repo.GetUserBookings(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetBookingsByFacilityAndDate(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	rows := sqlmock.NewRows(bookingColumns()).
		AddRow(1, 5, 1, 1, "2025-06-02", "10:00", "11:00", 1.0, 20.0, StatusConfirmed, now).
		AddRow(2, 6, 2, 1, "2025-06-02", "10:00", "11:00", 1.0, 18.0, StatusCancelled, now)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE facility_id = $1 AND booking_date = $2")).
		WithArgs(1, "2025-06-02").
		WillReturnRows(rows)

	bookings, err := repo.GetBookingsByFacilityAndDate(ctx, 1, "2025-06-02")
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, StatusCancelled, bookings[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
