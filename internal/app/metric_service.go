package app

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"logyourbody/internal/bodycomp"
	"logyourbody/internal/domain"
)

// Accepted ranges, matching the storage constraints of the mobile clients.
const (
	minWeightKg  = 11.3
	maxWeightKg  = 453.6
	minWeightLbs = 25
	maxWeightLbs = 1000
	maxBodyFat   = 70
)

// NavyMeasurements are the tape measurements for the Navy method, in cm.
// Height comes from the profile.
type NavyMeasurements struct {
	WaistCm float64 `json:"waistCm"`
	NeckCm  float64 `json:"neckCm"`
	HipCm   float64 `json:"hipCm,omitempty"`
}

// MetricInput is a weight log request. Body fat is either given directly or
// computed from Navy or Skinfolds according to Method.
type MetricInput struct {
	Date              domain.Day           `json:"date"`
	Weight            float64              `json:"weight"`
	WeightUnit        string               `json:"weightUnit"`
	BodyFatPercentage *float64             `json:"bodyFatPercentage,omitempty"`
	Method            domain.BodyFatMethod `json:"method,omitempty"`
	Navy              *NavyMeasurements    `json:"navy,omitempty"`
	Skinfolds         *bodycomp.Skinfolds  `json:"skinfolds,omitempty"`
	Notes             string               `json:"notes,omitempty"`
}

// MetricService encapsulates body metric logging use cases.
type MetricService struct {
	repo     domain.MetricRepository
	profiles *ProfileService
}

// NewMetricService creates a MetricService. Profiles supply height, gender
// and age for derived values.
func NewMetricService(repo domain.MetricRepository, profiles *ProfileService) *MetricService {
	return &MetricService{repo: repo, profiles: profiles}
}

// Log validates in, fills in derived lean mass and FFMI, and stores it.
func (s *MetricService) Log(ctx context.Context, userID int64, in MetricInput) (*domain.MetricRecord, error) {
	now := time.Now().UTC()
	m := domain.MetricRecord{UserID: userID, CreatedAt: now, UpdatedAt: now}
	if err := s.apply(ctx, &m, in); err != nil {
		return nil, err
	}

	id, err := s.repo.AddMetric(ctx, m)
	if err != nil {
		return nil, err
	}
	m.ID = id
	log.Debugf("user %d logged metric %d for %s", userID, id, m.Date)
	return &m, nil
}

// Update replaces the metric with the given id.
func (s *MetricService) Update(ctx context.Context, userID, id int64, in MetricInput) (*domain.MetricRecord, error) {
	existing, err := s.repo.GetMetric(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	m := domain.MetricRecord{ID: existing.ID, UserID: userID, CreatedAt: existing.CreatedAt, UpdatedAt: time.Now().UTC()}
	if in.Date == "" {
		in.Date = existing.Date
	}
	if err := s.apply(ctx, &m, in); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateMetric(ctx, m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Delete removes a metric.
func (s *MetricService) Delete(ctx context.Context, userID, id int64) error {
	return s.repo.DeleteMetric(ctx, userID, id)
}

// List returns all metrics of a user.
func (s *MetricService) List(ctx context.Context, userID int64) ([]domain.MetricRecord, error) {
	return s.repo.ListMetrics(ctx, userID)
}

func (s *MetricService) apply(ctx context.Context, m *domain.MetricRecord, in MetricInput) error {
	day, err := parseLogDay(in.Date)
	if err != nil {
		return err
	}

	unit, err := domain.ParseWeightUnit(in.WeightUnit)
	if err != nil {
		return invalidf("%v", err)
	}
	if err := validateWeight(in.Weight, unit); err != nil {
		return err
	}
	if !in.Method.IsValid() {
		return invalidf("unknown body fat method %q", in.Method)
	}

	profile, err := s.profiles.Get(ctx, m.UserID)
	if err != nil {
		return err
	}

	bodyFat, err := resolveBodyFat(in, profile, day)
	if err != nil {
		return err
	}

	m.Date = day
	m.Weight = in.Weight
	m.WeightUnit = unit
	m.BodyFatPercentage = bodyFat
	m.Method = in.Method
	m.Notes = in.Notes
	m.LeanBodyMass, m.FFMI = nil, nil

	if bodyFat == nil {
		return nil
	}
	lbm := bodycomp.LeanBodyMass(in.Weight, *bodyFat)
	m.LeanBodyMass = &lbm
	if profile.HeightCm != nil {
		if res, err := bodycomp.FFMI(m.WeightKg(), *profile.HeightCm, *bodyFat); err == nil {
			m.FFMI = &res.FFMI
		}
	}
	return nil
}

func parseLogDay(d domain.Day) (domain.Day, error) {
	today := domain.DayOf(time.Now())
	if d == "" {
		return today, nil
	}
	day, err := domain.ParseDay(string(d))
	if err != nil {
		return "", invalidf("%v", err)
	}
	// One day of slack for clients ahead of the server's timezone.
	if today.AddDays(1).Before(day) {
		return "", invalidf("date %s is in the future", day)
	}
	return day, nil
}

func validateWeight(v float64, unit domain.WeightUnit) error {
	switch unit {
	case domain.Kilograms:
		if v < minWeightKg || v > maxWeightKg {
			return invalidf("weight must be between %.1fkg and %.1fkg", minWeightKg, maxWeightKg)
		}
	case domain.Pounds:
		if v < minWeightLbs || v > maxWeightLbs {
			return invalidf("weight must be between %dlbs and %dlbs", minWeightLbs, maxWeightLbs)
		}
	}
	return nil
}

func resolveBodyFat(in MetricInput, profile *domain.Profile, day domain.Day) (*float64, error) {
	var bf float64
	switch {
	case in.Method == domain.MethodNavy && in.Navy != nil:
		if profile.HeightCm == nil || profile.Gender == "" {
			return nil, invalidf("navy method needs height and gender in the profile")
		}
		v, err := bodycomp.NavyBodyFat(profile.Gender, in.Navy.WaistCm, in.Navy.NeckCm, *profile.HeightCm, in.Navy.HipCm)
		if err != nil {
			return nil, invalidf("%v", err)
		}
		bf = v
	case in.Method == domain.MethodThreeSite && in.Skinfolds != nil:
		age, ok := profile.AgeOn(day)
		if !ok || profile.Gender == "" {
			return nil, invalidf("3-site method needs date of birth and gender in the profile")
		}
		v, err := bodycomp.ThreeSiteBodyFat(profile.Gender, age, *in.Skinfolds)
		if err != nil {
			return nil, invalidf("%v", err)
		}
		bf = v
	case in.BodyFatPercentage != nil:
		bf = *in.BodyFatPercentage
	default:
		return nil, nil
	}

	if bf < 0 || bf > maxBodyFat {
		return nil, invalidf("body fat percentage must be between 0%% and %d%%", maxBodyFat)
	}
	return &bf, nil
}
