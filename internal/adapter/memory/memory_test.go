package memory

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logyourbody/internal/domain"
)

func TestMetricRepository(t *testing.T) {
	db := New()
	ctx := context.Background()
	bf := 20.0

	id2, err := db.AddMetric(ctx, domain.MetricRecord{UserID: 1, Date: "2024-01-05", Weight: 80, WeightUnit: domain.Kilograms})
	require.NoError(t, err)
	id1, err := db.AddMetric(ctx, domain.MetricRecord{UserID: 1, Date: "2024-01-01", Weight: 81, WeightUnit: domain.Kilograms, BodyFatPercentage: &bf})
	require.NoError(t, err)
	_, err = db.AddMetric(ctx, domain.MetricRecord{UserID: 2, Date: "2024-01-03", Weight: 60, WeightUnit: domain.Kilograms})
	require.NoError(t, err)

	list, err := db.ListMetrics(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, id1, list[0].ID, "ordered by date")
	assert.Equal(t, id2, list[1].ID)

	// Returned records are copies.
	*list[0].BodyFatPercentage = 99
	again, err := db.GetMetric(ctx, 1, id1)
	require.NoError(t, err)
	assert.Equal(t, 20.0, *again.BodyFatPercentage)

	again.Weight = 79
	require.NoError(t, db.UpdateMetric(ctx, *again))
	got, err := db.GetMetric(ctx, 1, id1)
	require.NoError(t, err)
	assert.Equal(t, 79.0, got.Weight)

	// Other users cannot touch the record.
	_, err = db.GetMetric(ctx, 2, id1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, db.DeleteMetric(ctx, 2, id1), domain.ErrNotFound)

	require.NoError(t, db.DeleteMetric(ctx, 1, id1))
	list, _ = db.ListMetrics(ctx, 1)
	assert.Len(t, list, 1)
	assert.ErrorIs(t, db.UpdateMetric(ctx, domain.MetricRecord{ID: id1, UserID: 1}), domain.ErrNotFound)
}

func TestPhotoRepository(t *testing.T) {
	db := New()
	ctx := context.Background()

	id, err := db.AddPhoto(ctx, domain.PhotoRecord{UserID: 1, Date: "2024-01-02", PhotoURL: "a.jpg"})
	require.NoError(t, err)
	_, err = db.AddPhoto(ctx, domain.PhotoRecord{UserID: 1, Date: "2024-01-01", PhotoURL: "b.jpg"})
	require.NoError(t, err)

	list, err := db.ListPhotos(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b.jpg", list[0].PhotoURL)

	others, _ := db.ListPhotos(ctx, 999)
	assert.Empty(t, others)

	require.NoError(t, db.DeletePhoto(ctx, 1, id))
	assert.ErrorIs(t, db.DeletePhoto(ctx, 1, id), domain.ErrNotFound)
}

func TestProfileRepository(t *testing.T) {
	db := New()
	ctx := context.Background()

	_, err := db.GetProfile(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	h := 180.0
	require.NoError(t, db.SaveProfile(ctx, domain.Profile{UserID: 1, HeightCm: &h, WeightUnit: domain.Kilograms}))
	h = 0

	p, err := db.GetProfile(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 180.0, *p.HeightCm)
	assert.Equal(t, domain.Kilograms, p.WeightUnit)
}

func TestUserRepository(t *testing.T) {
	db := New()
	ctx := context.Background()

	u, err := db.Create(ctx, "bob", "hash")
	require.NoError(t, err)
	assert.Equal(t, "bob", u.Username)

	u2, err := db.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, u.ID, u2.ID)

	_, err = db.Create(ctx, "bob", "other")
	assert.Error(t, err)

	_, err = db.GetByUsername(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	count, _ := db.Count(ctx)
	assert.Equal(t, 1, count)
}

func TestSessionRepository(t *testing.T) {
	db := New()
	repo := db.NewSessionRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, 1, "token123", "agent", "127.0.0.1", time.Now().Add(time.Hour)))
	require.NoError(t, repo.Create(ctx, 1, "old", "agent", "", time.Now().Add(-time.Hour)))

	sess, err := repo.GetByToken(ctx, "token123")
	require.NoError(t, err)
	assert.Equal(t, "agent", sess.UserAgent)
	assert.Equal(t, "127.0.0.1", sess.IP)

	require.NoError(t, repo.DeleteExpired(ctx))
	_, err = repo.GetByToken(ctx, "old")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_ = repo.Delete(ctx, "token123")
	_, err = repo.GetByToken(ctx, "token123")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListOrdersExtremeIDs(t *testing.T) {
	db := New()
	ctx := context.Background()

	db.metricIDCounter = math.MaxInt64 - 1
	db.photoIDCounter = math.MaxInt64 - 1
	_, err := db.AddMetric(ctx, domain.MetricRecord{UserID: 1, Date: "2024-01-01", Weight: 80, WeightUnit: domain.Kilograms})
	require.NoError(t, err)
	_, err = db.AddPhoto(ctx, domain.PhotoRecord{UserID: 1, Date: "2024-01-01", PhotoURL: "a"})
	require.NoError(t, err)

	db.metricIDCounter = math.MinInt64
	db.photoIDCounter = math.MinInt64
	_, err = db.AddMetric(ctx, domain.MetricRecord{UserID: 1, Date: "2024-01-01", Weight: 81, WeightUnit: domain.Kilograms})
	require.NoError(t, err)
	_, err = db.AddPhoto(ctx, domain.PhotoRecord{UserID: 1, Date: "2024-01-01", PhotoURL: "b"})
	require.NoError(t, err)

	metrics, err := db.ListMetrics(ctx, 1)
	require.NoError(t, err)
	require.Len(t, metrics, 2)
	assert.Equal(t, int64(math.MinInt64+1), metrics[0].ID)
	assert.Equal(t, int64(math.MaxInt64), metrics[1].ID)

	photos, err := db.ListPhotos(ctx, 1)
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.Equal(t, "b", photos[0].PhotoURL)
	assert.Equal(t, "a", photos[1].PhotoURL)
}
