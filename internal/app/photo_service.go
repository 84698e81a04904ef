package app

import (
	"context"
	"strings"
	"time"

	"logyourbody/internal/domain"
)

var photoViews = map[string]bool{"": true, "front": true, "side": true, "back": true, "other": true}

// PhotoService manages progress photo records. The image bytes live in
// object storage; only the reference is stored here.
type PhotoService struct {
	repo domain.PhotoRepository
}

// NewPhotoService creates a PhotoService.
func NewPhotoService(repo domain.PhotoRepository) *PhotoService {
	return &PhotoService{repo: repo}
}

// Add records a photo reference for a day.
func (s *PhotoService) Add(ctx context.Context, userID int64, date domain.Day, ref, view string) (*domain.PhotoRecord, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, invalidf("photo reference required")
	}
	if !photoViews[view] {
		return nil, invalidf("unknown view type %q", view)
	}
	day, err := parseLogDay(date)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := domain.PhotoRecord{
		UserID:    userID,
		Date:      day,
		PhotoURL:  ref,
		ViewType:  view,
		CreatedAt: now,
		UpdatedAt: now,
	}
	id, err := s.repo.AddPhoto(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ID = id
	return &p, nil
}

// List returns all photos of a user.
func (s *PhotoService) List(ctx context.Context, userID int64) ([]domain.PhotoRecord, error) {
	return s.repo.ListPhotos(ctx, userID)
}

// Delete removes a photo record.
func (s *PhotoService) Delete(ctx context.Context, userID, id int64) error {
	return s.repo.DeletePhoto(ctx, userID, id)
}
