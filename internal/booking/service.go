package booking

import (
	"context"
	"errors"
	"time"

	"campobook/internal/auth"
	"campobook/internal/email"
	"campobook/internal/facility"
	"campobook/internal/logger"
	"campobook/internal/pricing"
	"campobook/internal/schedule"
	"campobook/internal/user"
)

var (
	ErrMissingFields         = errors.New("field id, date, start time and end time are required")
	ErrOwnerCannotBook       = errors.New("owners cannot book fields")
	ErrFacilityNotFound      = errors.New("facility not found or inactive")
	ErrFieldNotFound         = errors.New("field not found")
	ErrSlotAlreadyBooked     = errors.New("slot already booked")
	ErrBookingNotFound       = errors.New("booking not found")
	ErrNotAuthorized         = errors.New("can only cancel own bookings")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// Candidate starts in the free-slot listing step every half hour.
const freeSlotStepMinutes = 30

type Service interface {
	AdmitBooking(ctx context.Context, userID int, role string, req CreateBookingRequest) (*Booking, *pricing.Quote, error)
	QuoteBooking(ctx context.Context, req QuoteRequest) (*pricing.Quote, error)
	CancelBooking(ctx context.Context, userID, bookingID int) error
	ListFreeSlots(ctx context.Context, fieldID int, date string, durationHours float64) ([]FreeSlot, error)
	GetUserBookings(ctx context.Context, userID int) ([]Booking, error)
	GetBookingsByFacility(ctx context.Context, ownerID, facilityID int, date string) ([]Booking, error)
}

type service struct {
	bookingRepo  Repository
	facilityRepo facility.Repository
	userRepo     user.Repository
	emailService *email.Service
	storeTimeout time.Duration
}

func NewService(
	bookingRepo Repository,
	facilityRepo facility.Repository,
	userRepo user.Repository,
	emailService *email.Service,
	storeTimeout time.Duration,
) Service {
	return &service{
		bookingRepo:  bookingRepo,
		facilityRepo: facilityRepo,
		userRepo:     userRepo,
		emailService: emailService,
		storeTimeout: storeTimeout,
	}
}

// AdmitBooking decides whether a reservation request is legal and what it
// costs, then creates the booking. Checks run strictly in order: request
// shape, submitter role, facility state, opening hours, conflicts with
// confirmed bookings, pricing. The overlap read is a fast path; the unique
// index enforced at insert time is the real guarantee against races.
func (s *service) AdmitBooking(ctx context.Context, userID int, role string, req CreateBookingRequest) (*Booking, *pricing.Quote, error) {
	interval, err := validateInterval(req.FieldID, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, nil, err
	}

	if role == auth.RoleOwner {
		return nil, nil, ErrOwnerCannotBook
	}

	field, fac, err := s.lookupField(ctx, req.FieldID)
	if err != nil {
		return nil, nil, err
	}

	if err := fac.OpeningHours.CheckWindow(req.Date, req.StartTime, req.EndTime); err != nil {
		return nil, nil, err
	}

	existing, err := s.confirmedBookings(ctx, req.FieldID, req.Date)
	if err != nil {
		return nil, nil, err
	}
	for _, b := range existing {
		taken, err := schedule.OverlapsClock(req.StartTime, req.EndTime, b.StartTime, b.EndTime)
		if err != nil {
			return nil, nil, err
		}
		if taken {
			return nil, nil, ErrSlotAlreadyBooked
		}
	}

	quote, err := s.price(field, fac, interval.durationHours, req.StartTime)
	if err != nil {
		return nil, nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	created, err := s.bookingRepo.CreateBooking(callCtx, Booking{
		UserID:        userID,
		FieldID:       field.ID,
		FacilityID:    fac.ID,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		DurationHours: interval.durationHours,
		Price:         quote.Total,
	})
	if err != nil {
		return nil, nil, s.depError(err)
	}

	s.notifyConfirmation(ctx, created, fac)

	return created, &quote, nil
}

// QuoteBooking prices a prospective reservation without creating it. The
// conflict check is skipped: a quote is advisory, admission re-checks.
func (s *service) QuoteBooking(ctx context.Context, req QuoteRequest) (*pricing.Quote, error) {
	interval, err := validateInterval(req.FieldID, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	field, fac, err := s.lookupField(ctx, req.FieldID)
	if err != nil {
		return nil, err
	}

	if err := fac.OpeningHours.CheckWindow(req.Date, req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	quote, err := s.price(field, fac, interval.durationHours, req.StartTime)
	if err != nil {
		return nil, err
	}

	return &quote, nil
}

// CancelBooking flips a booking owned by userID to cancelled. Cancelling
// an already-cancelled booking succeeds silently.
func (s *service) CancelBooking(ctx context.Context, userID, bookingID int) error {
	callCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	booking, err := s.bookingRepo.GetBookingByID(callCtx, bookingID)
	if err != nil {
		if dep := s.depError(err); errors.Is(dep, ErrDependencyUnavailable) {
			return dep
		}
		return ErrBookingNotFound
	}

	if booking.UserID != userID {
		return ErrNotAuthorized
	}

	if booking.Status == StatusCancelled {
		return nil
	}

	callCtx2, cancel2 := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel2()

	if err := s.bookingRepo.CancelBooking(callCtx2, bookingID); err != nil {
		// Lost the race against another cancel of the same booking:
		// still an idempotent success.
		if errors.Is(err, ErrBookingNotFoundOrAlreadyCancelled) {
			return nil
		}
		return s.depError(err)
	}

	s.notifyCancellation(ctx, booking)

	return nil
}

// ListFreeSlots lists start candidates inside the opening window whose
// interval does not overlap any confirmed booking on that date.
func (s *service) ListFreeSlots(ctx context.Context, fieldID int, date string, durationHours float64) ([]FreeSlot, error) {
	if durationHours != pricing.DurationOneHour && durationHours != pricing.DurationOneHourHalf {
		return nil, pricing.ErrUnsupportedDuration
	}

	_, fac, err := s.lookupField(ctx, fieldID)
	if err != nil {
		return nil, err
	}

	openMin, closeMin, err := fac.OpeningHours.Window(date)
	if err != nil {
		return nil, err
	}

	existing, err := s.confirmedBookings(ctx, fieldID, date)
	if err != nil {
		return nil, err
	}

	type interval struct{ start, end int }
	reserved := make([]interval, 0, len(existing))
	for _, b := range existing {
		start, err := schedule.ToMinutes(b.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := schedule.ToMinutes(b.EndTime)
		if err != nil {
			return nil, err
		}
		reserved = append(reserved, interval{start, end})
	}

	durationMin := int(durationHours * 60)
	slots := make([]FreeSlot, 0)
	for _, start := range schedule.GenerateStarts(openMin, closeMin, freeSlotStepMinutes, durationMin) {
		end := start + durationMin
		free := true
		for _, r := range reserved {
			if schedule.Overlaps(start, end, r.start, r.end) {
				free = false
				break
			}
		}
		if free {
			slots = append(slots, FreeSlot{
				StartTime: schedule.MinutesToClock(start),
				EndTime:   schedule.MinutesToClock(end),
			})
		}
	}

	return slots, nil
}

func (s *service) GetUserBookings(ctx context.Context, userID int) ([]Booking, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	bookings, err := s.bookingRepo.GetUserBookings(callCtx, userID)
	if err != nil {
		return nil, s.depError(err)
	}
	return bookings, nil
}

func (s *service) GetBookingsByFacility(ctx context.Context, ownerID, facilityID int, date string) ([]Booking, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	fac, err := s.facilityRepo.GetFacilityByID(callCtx, facilityID)
	if err != nil {
		if dep := s.depError(err); errors.Is(dep, ErrDependencyUnavailable) {
			return nil, dep
		}
		return nil, ErrFacilityNotFound
	}

	if fac.OwnerID != ownerID {
		return nil, ErrNotAuthorized
	}

	callCtx2, cancel2 := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel2()

	bookings, err := s.bookingRepo.GetBookingsByFacilityAndDate(callCtx2, facilityID, date)
	if err != nil {
		return nil, s.depError(err)
	}
	return bookings, nil
}

type requestInterval struct {
	startMin      int
	endMin        int
	durationHours float64
}

// validateInterval is the shape check: all fields present, times parse,
// and the duration is one of the two supported granularities. Unknown
// durations are rejected here instead of silently falling through to a
// default price.
func validateInterval(fieldID int, date, startTime, endTime string) (requestInterval, error) {
	if fieldID == 0 || date == "" || startTime == "" || endTime == "" {
		return requestInterval{}, ErrMissingFields
	}

	if _, err := schedule.ParseDate(date); err != nil {
		return requestInterval{}, err
	}

	startMin, err := schedule.ToMinutes(startTime)
	if err != nil {
		return requestInterval{}, err
	}
	endMin, err := schedule.ToMinutes(endTime)
	if err != nil {
		return requestInterval{}, err
	}

	duration := float64(endMin-startMin) / 60
	if duration != pricing.DurationOneHour && duration != pricing.DurationOneHourHalf {
		return requestInterval{}, pricing.ErrUnsupportedDuration
	}

	return requestInterval{startMin: startMin, endMin: endMin, durationHours: duration}, nil
}

func (s *service) lookupField(ctx context.Context, fieldID int) (*facility.Field, *facility.Facility, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	field, err := s.facilityRepo.GetFieldByID(callCtx, fieldID)
	if err != nil {
		if dep := s.depError(err); errors.Is(dep, ErrDependencyUnavailable) {
			return nil, nil, dep
		}
		return nil, nil, ErrFieldNotFound
	}

	callCtx2, cancel2 := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel2()

	fac, err := s.facilityRepo.GetFacilityByID(callCtx2, field.FacilityID)
	if err != nil {
		if dep := s.depError(err); errors.Is(dep, ErrDependencyUnavailable) {
			return nil, nil, dep
		}
		return nil, nil, ErrFacilityNotFound
	}

	if !fac.IsActive {
		return nil, nil, ErrFacilityNotFound
	}

	return field, fac, nil
}

func (s *service) confirmedBookings(ctx context.Context, fieldID int, date string) ([]Booking, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	bookings, err := s.bookingRepo.FindConfirmedByFieldAndDate(callCtx, fieldID, date)
	if err != nil {
		return nil, s.depError(err)
	}
	return bookings, nil
}

// price resolves the cost of the interval. Fields without pricing rules
// predate tiered pricing and fall back to the facility's flat per-hour
// price.
func (s *service) price(field *facility.Field, fac *facility.Facility, durationHours float64, startTime string) (pricing.Quote, error) {
	if field.PricingRules.IsZero() {
		total := pricing.Round2(fac.PricePerHour * durationHours)
		return pricing.Quote{
			UnitPrices: pricing.PricePair{
				OneHour:     pricing.Round2(fac.PricePerHour),
				OneHourHalf: pricing.Round2(fac.PricePerHour * 1.5),
			},
			AppliedRule: "pricePerHour",
			Total:       total,
		}, nil
	}

	return pricing.Resolve(field.PricingRules, durationHours, startTime)
}

func (s *service) depError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrDependencyUnavailable
	}
	return err
}

func (s *service) notifyConfirmation(ctx context.Context, booking *Booking, fac *facility.Facility) {
	if s.emailService == nil || s.userRepo == nil {
		return
	}

	u, err := s.userRepo.FindByID(ctx, booking.UserID)
	if err != nil || u == nil {
		logger.Errorf("Could not load user %d for confirmation email: %v", booking.UserID, err)
		return
	}

	s.emailService.SendBookingConfirmation(ctx, u.Email, u.Name, fac.Name, booking.Date, booking.StartTime, booking.EndTime)
}

func (s *service) notifyCancellation(ctx context.Context, booking *Booking) {
	if s.emailService == nil || s.userRepo == nil {
		return
	}

	u, err := s.userRepo.FindByID(ctx, booking.UserID)
	if err != nil || u == nil {
		logger.Errorf("Could not load user %d for cancellation email: %v", booking.UserID, err)
		return
	}

	s.emailService.SendBookingCancelled(ctx, u.Email, u.Name, booking.Date, booking.StartTime)
}
