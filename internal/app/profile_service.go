package app

import (
	"context"
	"errors"
	"time"

	"logyourbody/internal/domain"
)

const (
	minHeightCm = 30
	maxHeightCm = 244
)

// ProfileService manages the per-user settings used by the timeline and the
// body composition calculators.
type ProfileService struct {
	repo domain.ProfileRepository
}

// NewProfileService creates a ProfileService backed by the given repository.
func NewProfileService(repo domain.ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// Get returns the user's profile, or defaults when none was saved yet.
func (s *ProfileService) Get(ctx context.Context, userID int64) (*domain.Profile, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.Profile{UserID: userID, WeightUnit: domain.Pounds, HeightUnit: domain.Inches}, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Update validates and stores p for userID.
func (s *ProfileService) Update(ctx context.Context, userID int64, p domain.Profile) (*domain.Profile, error) {
	if p.HeightCm != nil && (*p.HeightCm < minHeightCm || *p.HeightCm > maxHeightCm) {
		return nil, invalidf("height must be between %dcm and %dcm", minHeightCm, maxHeightCm)
	}
	if p.Gender != "" && p.Gender != domain.Male && p.Gender != domain.Female {
		return nil, invalidf("gender must be %q or %q", domain.Male, domain.Female)
	}
	if p.DateOfBirth != nil {
		if _, err := domain.ParseDay(string(*p.DateOfBirth)); err != nil {
			return nil, invalidf("%v", err)
		}
	}
	if p.WeightUnit == "" {
		p.WeightUnit = domain.Pounds
	}
	wu, err := domain.ParseWeightUnit(string(p.WeightUnit))
	if err != nil {
		return nil, invalidf("%v", err)
	}
	p.WeightUnit = wu
	if p.HeightUnit == "" {
		p.HeightUnit = domain.Inches
	}
	hu, err := domain.ParseHeightUnit(string(p.HeightUnit))
	if err != nil {
		return nil, invalidf("%v", err)
	}
	p.HeightUnit = hu

	p.UserID = userID
	p.UpdatedAt = time.Now().UTC()
	if err := s.repo.SaveProfile(ctx, p); err != nil {
		return nil, err
	}
	return &p, nil
}
