// Package memory implements in-memory repositories for development and testing.
package memory

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"logyourbody/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu       sync.Mutex
	metrics  []domain.MetricRecord
	photos   []domain.PhotoRecord
	profiles map[int64]domain.Profile
	users    []*domain.User
	sessions map[string]*domain.Session

	metricIDCounter int64
	photoIDCounter  int64
	userIDCounter   int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		profiles: make(map[int64]domain.Profile),
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.MetricRepository = (*DB)(nil)
var _ domain.PhotoRepository = (*DB)(nil)
var _ domain.ProfileRepository = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- MetricRepository ---

// AddMetric stores m and returns its new ID.
func (db *DB) AddMetric(_ context.Context, m domain.MetricRecord) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.metricIDCounter++
	m.ID = db.metricIDCounter
	db.metrics = append(db.metrics, cloneMetric(m))
	return m.ID, nil
}

// UpdateMetric replaces the stored metric with the same ID and owner.
func (db *DB) UpdateMetric(_ context.Context, m domain.MetricRecord) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	i := slices.IndexFunc(db.metrics, func(x domain.MetricRecord) bool {
		return x.ID == m.ID && x.UserID == m.UserID
	})
	if i < 0 {
		return domain.ErrNotFound
	}
	db.metrics[i] = cloneMetric(m)
	return nil
}

// DeleteMetric removes a metric.
func (db *DB) DeleteMetric(_ context.Context, userID, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	n := len(db.metrics)
	db.metrics = slices.DeleteFunc(db.metrics, func(x domain.MetricRecord) bool {
		return x.ID == id && x.UserID == userID
	})
	if len(db.metrics) == n {
		return domain.ErrNotFound
	}
	return nil
}

// GetMetric returns a single metric.
func (db *DB) GetMetric(_ context.Context, userID, id int64) (*domain.MetricRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, m := range db.metrics {
		if m.ID == id && m.UserID == userID {
			c := cloneMetric(m)
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ListMetrics returns the user's metrics ordered by date, then ID.
func (db *DB) ListMetrics(_ context.Context, userID int64) ([]domain.MetricRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.MetricRecord
	for _, m := range db.metrics {
		if m.UserID == userID {
			result = append(result, cloneMetric(m))
		}
	}
	slices.SortStableFunc(result, func(a, b domain.MetricRecord) int {
		if c := strings.Compare(string(a.Date), string(b.Date)); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return result, nil
}

// cloneMetric detaches the optional fields so callers cannot mutate storage.
func cloneMetric(m domain.MetricRecord) domain.MetricRecord {
	m.BodyFatPercentage = clonePtr(m.BodyFatPercentage)
	m.LeanBodyMass = clonePtr(m.LeanBodyMass)
	m.FFMI = clonePtr(m.FFMI)
	return m
}

func clonePtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// --- PhotoRepository ---

// AddPhoto stores p and returns its new ID.
func (db *DB) AddPhoto(_ context.Context, p domain.PhotoRecord) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.photoIDCounter++
	p.ID = db.photoIDCounter
	db.photos = append(db.photos, p)
	return p.ID, nil
}

// DeletePhoto removes a photo.
func (db *DB) DeletePhoto(_ context.Context, userID, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	n := len(db.photos)
	db.photos = slices.DeleteFunc(db.photos, func(x domain.PhotoRecord) bool {
		return x.ID == id && x.UserID == userID
	})
	if len(db.photos) == n {
		return domain.ErrNotFound
	}
	return nil
}

// ListPhotos returns the user's photos ordered by date, then ID.
func (db *DB) ListPhotos(_ context.Context, userID int64) ([]domain.PhotoRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.PhotoRecord
	for _, p := range db.photos {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	slices.SortStableFunc(result, func(a, b domain.PhotoRecord) int {
		if c := strings.Compare(string(a.Date), string(b.Date)); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return result, nil
}

// --- ProfileRepository ---

// GetProfile returns the stored profile or domain.ErrNotFound.
func (db *DB) GetProfile(_ context.Context, userID int64) (*domain.Profile, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	p, ok := db.profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.HeightCm = clonePtr(p.HeightCm)
	if p.DateOfBirth != nil {
		dob := *p.DateOfBirth
		p.DateOfBirth = &dob
	}
	return &p, nil
}

// SaveProfile creates or replaces the user's profile.
func (db *DB) SaveProfile(_ context.Context, p domain.Profile) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	p.HeightCm = clonePtr(p.HeightCm)
	if p.DateOfBirth != nil {
		dob := *p.DateOfBirth
		p.DateOfBirth = &dob
	}
	db.profiles[p.UserID] = p
	return nil
}

// --- UserRepository ---

// GetByUsername retrieves a user by username.
func (db *DB) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(_ context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Create creates a new user.
func (db *DB) Create(_ context.Context, username, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return nil, errors.New("user already exists")
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	return u, nil
}

// Count returns the total number of users.
func (db *DB) Count(_ context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(_ context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		UserAgent: userAgent,
		IP:        ip,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token. Expiry is checked by the caller.
func (r *SessionRepo) GetByToken(_ context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	s, ok := r.db.sessions[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *s
	return &c, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(_ context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(_ context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}
