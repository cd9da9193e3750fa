package booking

import "time"

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Booking is a confirmed or cancelled reservation of a field. Interval and
// price are immutable after creation; the only mutation is the status flip
// to cancelled.
type Booking struct {
	ID            int       `db:"id" json:"id"`
	UserID        int       `db:"user_id" json:"user_id"`
	FieldID       int       `db:"field_id" json:"field_id"`
	FacilityID    int       `db:"facility_id" json:"facility_id"`
	Date          string    `db:"booking_date" json:"date"`
	StartTime     string    `db:"start_time" json:"start_time"`
	EndTime       string    `db:"end_time" json:"end_time"`
	DurationHours float64   `db:"duration_hours" json:"duration_hours"`
	Price         float64   `db:"price" json:"price"`
	Status        string    `db:"status" json:"status"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type CreateBookingRequest struct {
	FieldID   int    `json:"field_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type QuoteRequest struct {
	FieldID   int
	Date      string
	StartTime string
	EndTime   string
}

// FreeSlot is one bookable start candidate returned by the availability
// listing.
type FreeSlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}
