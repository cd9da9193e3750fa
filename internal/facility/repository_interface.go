package facility

import "context"

type Repository interface {
	CreateFacility(ctx context.Context, ownerID int, req CreateFacilityRequest) (*Facility, error)
	GetAllFacilities(ctx context.Context) ([]Facility, error)
	GetFacilityByID(ctx context.Context, id int) (*Facility, error)
	UpdateOpeningHours(ctx context.Context, id int, hours WeekSchedule) error
	SetActive(ctx context.Context, id int, active bool) error
	CreateField(ctx context.Context, facilityID int, req CreateFieldRequest) (*Field, error)
	GetFieldsByFacility(ctx context.Context, facilityID int) ([]Field, error)
	GetFieldByID(ctx context.Context, id int) (*Field, error)
}
