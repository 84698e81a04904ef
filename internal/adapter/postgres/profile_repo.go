package postgres

import (
	"context"
	"database/sql"
	"errors"

	"logyourbody/internal/domain"
)

var _ domain.ProfileRepository = (*DB)(nil)

// GetProfile returns the user's profile or domain.ErrNotFound.
func (d *DB) GetProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	var (
		p            = domain.Profile{UserID: userID}
		height       sql.NullFloat64
		dob          sql.NullString
		gender       string
		wUnit, hUnit string
	)
	err := d.sql.QueryRowContext(ctx,
		"SELECT height_cm, gender, to_char(date_of_birth, 'YYYY-MM-DD'), weight_unit, height_unit, updated_at FROM profiles WHERE user_id=$1;",
		userID,
	).Scan(&height, &gender, &dob, &wUnit, &hUnit, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	p.HeightCm = floatPtr(height)
	p.Gender = domain.Gender(gender)
	if dob.Valid {
		day := domain.Day(dob.String)
		p.DateOfBirth = &day
	}
	p.WeightUnit = domain.WeightUnit(wUnit)
	p.HeightUnit = domain.HeightUnit(hUnit)
	return &p, nil
}

// SaveProfile upserts the user's profile.
func (d *DB) SaveProfile(ctx context.Context, p domain.Profile) error {
	var dob sql.NullString
	if p.DateOfBirth != nil {
		dob = sql.NullString{String: string(*p.DateOfBirth), Valid: true}
	}
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO profiles (user_id, height_cm, gender, date_of_birth, weight_unit, height_unit, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (user_id) DO UPDATE SET height_cm=EXCLUDED.height_cm, gender=EXCLUDED.gender,
		 date_of_birth=EXCLUDED.date_of_birth, weight_unit=EXCLUDED.weight_unit,
		 height_unit=EXCLUDED.height_unit, updated_at=EXCLUDED.updated_at;`,
		p.UserID, nullFloat(p.HeightCm), string(p.Gender), dob, string(p.WeightUnit), string(p.HeightUnit), p.UpdatedAt.UTC(),
	)
	return err
}
