package domain

import (
	"context"
	"time"
)

// PhotoRecord is a single progress photo. PhotoURL is an opaque storage
// reference; see PhotoURLResolver.
type PhotoRecord struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Date      Day       `json:"date"`
	PhotoURL  string    `json:"photoUrl"`
	ViewType  string    `json:"viewType,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LastModified is the timestamp used to pick between two photos on one day.
func (p PhotoRecord) LastModified() time.Time {
	if p.UpdatedAt.IsZero() {
		return p.CreatedAt
	}
	return p.UpdatedAt
}

// PhotoRepository is the port for progress photo persistence.
type PhotoRepository interface {
	AddPhoto(ctx context.Context, p PhotoRecord) (int64, error)
	DeletePhoto(ctx context.Context, userID, id int64) error
	ListPhotos(ctx context.Context, userID int64) ([]PhotoRecord, error)
}

// PhotoURLResolver turns a stored photo reference into a fetchable URL.
type PhotoURLResolver interface {
	ResolveURL(ctx context.Context, ref string) (string, error)
}

// PassthroughResolver returns references unchanged.
type PassthroughResolver struct{}

// ResolveURL implements PhotoURLResolver.
func (PassthroughResolver) ResolveURL(_ context.Context, ref string) (string, error) {
	return ref, nil
}
