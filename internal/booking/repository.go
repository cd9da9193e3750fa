package booking

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrBookingNotFoundOrAlreadyCancelled = errors.New("booking not found or already cancelled")

const pgUniqueViolation = "23505"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// CreateBooking inserts a confirmed booking. The partial unique index on
// (field_id, booking_date, start_time) for confirmed rows is the
// authoritative guard against double booking; a concurrent insert that
// slipped past the overlap read surfaces here as ErrSlotAlreadyBooked.
func (r *repository) CreateBooking(ctx context.Context, b Booking) (*Booking, error) {
	query := `
		INSERT INTO bookings (user_id, field_id, facility_id, booking_date, start_time, end_time, duration_hours, price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'confirmed')
		RETURNING id, user_id, field_id, facility_id, booking_date, start_time, end_time, duration_hours, price, status, created_at
	`

	var created Booking
	err := r.db.GetContext(ctx, &created, query,
		b.UserID, b.FieldID, b.FacilityID, b.Date, b.StartTime, b.EndTime, b.DurationHours, b.Price)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, ErrSlotAlreadyBooked
		}
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetBookingByID(ctx context.Context, id int) (*Booking, error) {
	query := `
		SELECT id, user_id, field_id, facility_id, booking_date, start_time, end_time, duration_hours, price, status, created_at
		FROM bookings
		WHERE id = $1
	`

	var booking Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *repository) CancelBooking(ctx context.Context, id int) error {
	query := `
		UPDATE bookings
		SET status = 'cancelled'
		WHERE id = $1 AND status = 'confirmed'
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrBookingNotFoundOrAlreadyCancelled
	}

	return nil
}

func (r *repository) FindConfirmedByFieldAndDate(ctx context.Context, fieldID int, date string) ([]Booking, error) {
	query := `
		SELECT id, user_id, field_id, facility_id, booking_date, start_time, end_time, duration_hours, price, status, created_at
		FROM bookings
		WHERE field_id = $1 AND booking_date = $2 AND status = 'confirmed'
		ORDER BY start_time ASC
	`

	var bookings []Booking
	err := r.db.SelectContext(ctx, &bookings, query, fieldID, date)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) GetUserBookings(ctx context.Context, userID int) ([]Booking, error) {
	query := `
		SELECT id, user_id, field_id, facility_id, booking_date, start_time, end_time, duration_hours, price, status, created_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY booking_date DESC, start_time DESC
	`

	var bookings []Booking
	err := r.db.SelectContext(ctx, &bookings, query, userID)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) GetBookingsByFacilityAndDate(ctx context.Context, facilityID int, date string) ([]Booking, error) {
	query := `
		SELECT id, user_id, field_id, facility_id, booking_date, start_time, end_time, duration_hours, price, status, created_at
		FROM bookings
		WHERE facility_id = $1 AND booking_date = $2
		ORDER BY start_time ASC
	`

	var bookings []Booking
	err := r.db.SelectContext(ctx, &bookings, query, facilityID, date)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}
