package facility

import (
	"context"
	"errors"

	"campobook/internal/schedule"
)

var (
	ErrFacilityNotFound = errors.New("facility not found")
	ErrFieldNotFound    = errors.New("field not found")
	ErrNotFacilityOwner = errors.New("user does not own this facility")
	ErrInvalidSchedule  = errors.New("invalid opening hours")
)

type Service interface {
	CreateFacility(ctx context.Context, ownerID int, req CreateFacilityRequest) (*Facility, error)
	GetAllFacilities(ctx context.Context) ([]Facility, error)
	GetFacilityByID(ctx context.Context, id int) (*Facility, error)
	UpdateOpeningHours(ctx context.Context, ownerID, facilityID int, hours WeekSchedule) error
	SetActive(ctx context.Context, ownerID, facilityID int, active bool) error
	CreateField(ctx context.Context, ownerID, facilityID int, req CreateFieldRequest) (*Field, error)
	GetFieldsByFacility(ctx context.Context, facilityID int) ([]Field, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateFacility(ctx context.Context, ownerID int, req CreateFacilityRequest) (*Facility, error) {
	if err := validateSchedule(req.OpeningHours); err != nil {
		return nil, err
	}

	return s.repo.CreateFacility(ctx, ownerID, req)
}

func (s *service) GetAllFacilities(ctx context.Context) ([]Facility, error) {
	return s.repo.GetAllFacilities(ctx)
}

func (s *service) GetFacilityByID(ctx context.Context, id int) (*Facility, error) {
	facility, err := s.repo.GetFacilityByID(ctx, id)
	if err != nil {
		return nil, ErrFacilityNotFound
	}
	return facility, nil
}

func (s *service) UpdateOpeningHours(ctx context.Context, ownerID, facilityID int, hours WeekSchedule) error {
	if err := validateSchedule(hours); err != nil {
		return err
	}

	if err := s.requireOwner(ctx, ownerID, facilityID); err != nil {
		return err
	}

	return s.repo.UpdateOpeningHours(ctx, facilityID, hours)
}

func (s *service) SetActive(ctx context.Context, ownerID, facilityID int, active bool) error {
	if err := s.requireOwner(ctx, ownerID, facilityID); err != nil {
		return err
	}

	return s.repo.SetActive(ctx, facilityID, active)
}

func (s *service) CreateField(ctx context.Context, ownerID, facilityID int, req CreateFieldRequest) (*Field, error) {
	if err := s.requireOwner(ctx, ownerID, facilityID); err != nil {
		return nil, err
	}

	return s.repo.CreateField(ctx, facilityID, req)
}

func (s *service) GetFieldsByFacility(ctx context.Context, facilityID int) ([]Field, error) {
	if _, err := s.repo.GetFacilityByID(ctx, facilityID); err != nil {
		return nil, ErrFacilityNotFound
	}

	return s.repo.GetFieldsByFacility(ctx, facilityID)
}

func (s *service) requireOwner(ctx context.Context, ownerID, facilityID int) error {
	facility, err := s.repo.GetFacilityByID(ctx, facilityID)
	if err != nil {
		return ErrFacilityNotFound
	}

	if facility.OwnerID != ownerID {
		return ErrNotFacilityOwner
	}

	return nil
}

func validateSchedule(ws WeekSchedule) error {
	for day, hours := range ws {
		if !validWeekday(day) {
			return ErrInvalidSchedule
		}
		if !hours.Enabled {
			continue
		}

		openMin, err := schedule.ToMinutes(hours.Open)
		if err != nil {
			return ErrInvalidSchedule
		}
		closeMin, err := schedule.ToMinutes(hours.Close)
		if err != nil {
			return ErrInvalidSchedule
		}
		if closeMin <= openMin {
			return ErrInvalidSchedule
		}
	}

	return nil
}

func validWeekday(day string) bool {
	switch day {
	case "sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday":
		return true
	}
	return false
}
