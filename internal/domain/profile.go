package domain

import (
	"context"
	"time"
)

// Gender selects the sex-specific body composition formulas.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// Profile holds the per-user context the timeline and calculators need.
type Profile struct {
	UserID      int64      `json:"userId"`
	HeightCm    *float64   `json:"heightCm,omitempty"`
	Gender      Gender     `json:"gender,omitempty"`
	DateOfBirth *Day       `json:"dateOfBirth,omitempty"`
	WeightUnit  WeightUnit `json:"weightUnit"`
	HeightUnit  HeightUnit `json:"heightUnit"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// AgeOn returns the age in whole years on the given day, or false when the
// date of birth is unknown.
func (p Profile) AgeOn(day Day) (int, bool) {
	if p.DateOfBirth == nil {
		return 0, false
	}
	born := p.DateOfBirth.Time()
	at := day.Time()
	age := at.Year() - born.Year()
	if at.Month() < born.Month() || (at.Month() == born.Month() && at.Day() < born.Day()) {
		age--
	}
	return age, true
}

// ProfileRepository is the port for profile persistence. GetProfile returns
// ErrNotFound when the user never saved one.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	SaveProfile(ctx context.Context, p Profile) error
}
