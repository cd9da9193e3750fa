package booking

import "context"

type Repository interface {
	CreateBooking(ctx context.Context, b Booking) (*Booking, error)
	GetBookingByID(ctx context.Context, id int) (*Booking, error)
	CancelBooking(ctx context.Context, id int) error
	FindConfirmedByFieldAndDate(ctx context.Context, fieldID int, date string) ([]Booking, error)
	GetUserBookings(ctx context.Context, userID int) ([]Booking, error)
	GetBookingsByFacilityAndDate(ctx context.Context, facilityID int, date string) ([]Booking, error)
}
