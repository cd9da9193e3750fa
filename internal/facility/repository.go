package facility

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrFacilityMissing = errors.New("facility not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateFacility(ctx context.Context, ownerID int, req CreateFacilityRequest) (*Facility, error) {
	query := `
		INSERT INTO facilities (owner_id, name, location, price_per_hour, opening_hours)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, owner_id, name, location, price_per_hour, is_active, opening_hours, created_at
	`

	var facility Facility
	err := r.db.GetContext(ctx, &facility, query, ownerID, req.Name, req.Location, req.PricePerHour, req.OpeningHours)
	if err != nil {
		return nil, err
	}

	return &facility, nil
}

func (r *repository) GetAllFacilities(ctx context.Context) ([]Facility, error) {
	query := `
		SELECT id, owner_id, name, location, price_per_hour, is_active, opening_hours, created_at
		FROM facilities
		ORDER BY created_at DESC
	`

	var facilities []Facility
	err := r.db.SelectContext(ctx, &facilities, query)
	if err != nil {
		return nil, err
	}

	return facilities, nil
}

func (r *repository) GetFacilityByID(ctx context.Context, id int) (*Facility, error) {
	query := `
		SELECT id, owner_id, name, location, price_per_hour, is_active, opening_hours, created_at
		FROM facilities
		WHERE id = $1
	`

	var facility Facility
	err := r.db.GetContext(ctx, &facility, query, id)
	if err != nil {
		return nil, err
	}

	return &facility, nil
}

func (r *repository) UpdateOpeningHours(ctx context.Context, id int, hours WeekSchedule) error {
	query := `UPDATE facilities SET opening_hours = $2 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, hours)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrFacilityMissing
	}

	return nil
}

func (r *repository) SetActive(ctx context.Context, id int, active bool) error {
	query := `UPDATE facilities SET is_active = $2 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, active)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrFacilityMissing
	}

	return nil
}

func (r *repository) CreateField(ctx context.Context, facilityID int, req CreateFieldRequest) (*Field, error) {
	query := `
		INSERT INTO fields (facility_id, name, sport, pricing_rules)
		VALUES ($1, $2, $3, $4)
		RETURNING id, facility_id, name, sport, pricing_rules, created_at
	`

	// A field without rules stores NULL so the legacy per-hour fallback
	// stays distinguishable from an empty configuration.
	var rules interface{}
	if req.PricingRules != nil {
		rules = *req.PricingRules
	}

	var field Field
	err := r.db.GetContext(ctx, &field, query, facilityID, req.Name, req.Sport, rules)
	if err != nil {
		return nil, err
	}

	return &field, nil
}

func (r *repository) GetFieldsByFacility(ctx context.Context, facilityID int) ([]Field, error) {
	query := `
		SELECT id, facility_id, name, sport, pricing_rules, created_at
		FROM fields
		WHERE facility_id = $1
		ORDER BY name ASC
	`

	var fields []Field
	err := r.db.SelectContext(ctx, &fields, query, facilityID)
	if err != nil {
		return nil, err
	}

	return fields, nil
}

func (r *repository) GetFieldByID(ctx context.Context, id int) (*Field, error) {
	query := `
		SELECT id, facility_id, name, sport, pricing_rules, created_at
		FROM fields
		WHERE id = $1
	`

	var field Field
	err := r.db.GetContext(ctx, &field, query, id)
	if err != nil {
		return nil, err
	}

	return &field, nil
}
