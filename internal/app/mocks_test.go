package app

import (
	"context"
	"time"

	"logyourbody/internal/domain"
)

type mockUserRepo struct {
	getByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	getByIDFn       func(ctx context.Context, id int64) (*domain.User, error)
	createFn        func(ctx context.Context, username, passwordHash string) (*domain.User, error)
	countFn         func(ctx context.Context) (int, error)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserRepo) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, username, passwordHash)
	}
	return &domain.User{ID: 1, Username: username, PasswordHash: passwordHash}, nil
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

type mockSessionRepo struct {
	createFn        func(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error
	getByTokenFn    func(ctx context.Context, token string) (*domain.Session, error)
	deleteFn        func(ctx context.Context, token string) error
	deleteExpiredFn func(ctx context.Context) error
}

func (m *mockSessionRepo) Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	if m.createFn != nil {
		return m.createFn(ctx, userID, token, userAgent, ip, expiresAt)
	}
	return nil
}

func (m *mockSessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	if m.getByTokenFn != nil {
		return m.getByTokenFn(ctx, token)
	}
	return nil, domain.ErrNotFound
}

func (m *mockSessionRepo) Delete(ctx context.Context, token string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, token)
	}
	return nil
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context) error {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx)
	}
	return nil
}

type mockMetricRepo struct {
	addFn    func(ctx context.Context, m domain.MetricRecord) (int64, error)
	updateFn func(ctx context.Context, m domain.MetricRecord) error
	deleteFn func(ctx context.Context, userID, id int64) error
	getFn    func(ctx context.Context, userID, id int64) (*domain.MetricRecord, error)
	listFn   func(ctx context.Context, userID int64) ([]domain.MetricRecord, error)
}

func (m *mockMetricRepo) AddMetric(ctx context.Context, rec domain.MetricRecord) (int64, error) {
	if m.addFn != nil {
		return m.addFn(ctx, rec)
	}
	return 1, nil
}

func (m *mockMetricRepo) UpdateMetric(ctx context.Context, rec domain.MetricRecord) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, rec)
	}
	return nil
}

func (m *mockMetricRepo) DeleteMetric(ctx context.Context, userID, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return nil
}

func (m *mockMetricRepo) GetMetric(ctx context.Context, userID, id int64) (*domain.MetricRecord, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockMetricRepo) ListMetrics(ctx context.Context, userID int64) ([]domain.MetricRecord, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

type mockPhotoRepo struct {
	addFn    func(ctx context.Context, p domain.PhotoRecord) (int64, error)
	deleteFn func(ctx context.Context, userID, id int64) error
	listFn   func(ctx context.Context, userID int64) ([]domain.PhotoRecord, error)
}

func (m *mockPhotoRepo) AddPhoto(ctx context.Context, p domain.PhotoRecord) (int64, error) {
	if m.addFn != nil {
		return m.addFn(ctx, p)
	}
	return 1, nil
}

func (m *mockPhotoRepo) DeletePhoto(ctx context.Context, userID, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return nil
}

func (m *mockPhotoRepo) ListPhotos(ctx context.Context, userID int64) ([]domain.PhotoRecord, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

type mockProfileRepo struct {
	getFn  func(ctx context.Context, userID int64) (*domain.Profile, error)
	saveFn func(ctx context.Context, p domain.Profile) error
}

func (m *mockProfileRepo) GetProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID)
	}
	return nil, domain.ErrNotFound
}

func (m *mockProfileRepo) SaveProfile(ctx context.Context, p domain.Profile) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, p)
	}
	return nil
}

func fixedProfile(p domain.Profile) *mockProfileRepo {
	return &mockProfileRepo{
		getFn: func(_ context.Context, userID int64) (*domain.Profile, error) {
			p.UserID = userID
			return &p, nil
		},
	}
}

func f64(v float64) *float64 { return &v }
