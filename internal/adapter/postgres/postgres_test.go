package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logyourbody/internal/domain"
)

// openTestDB connects to the database named by LOGYOURBODY_TEST_DATABASE_URL.
func openTestDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("LOGYOURBODY_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("LOGYOURBODY_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(ctx))
	return db
}

func TestRepositories(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	user, err := db.Create(ctx, "pgtest-"+time.Now().Format("150405.000000"), "")
	require.NoError(t, err)

	bf := 18.5
	now := time.Now().UTC().Truncate(time.Millisecond)
	id, err := db.AddMetric(ctx, domain.MetricRecord{
		UserID: user.ID, Date: "2024-03-01", Weight: 180, WeightUnit: domain.Pounds,
		BodyFatPercentage: &bf, Method: domain.MethodNavy, CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)

	m, err := db.GetMetric(ctx, user.ID, id)
	require.NoError(t, err)
	assert.Equal(t, domain.Day("2024-03-01"), m.Date)
	assert.Equal(t, domain.Pounds, m.WeightUnit)
	require.NotNil(t, m.BodyFatPercentage)
	assert.Equal(t, 18.5, *m.BodyFatPercentage)
	assert.Nil(t, m.FFMI)

	_, err = db.GetMetric(ctx, user.ID+1000, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = db.AddPhoto(ctx, domain.PhotoRecord{UserID: user.ID, Date: "2024-03-02", PhotoURL: "k/1.jpg", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	photos, err := db.ListPhotos(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, domain.Day("2024-03-02"), photos[0].Date)

	_, err = db.GetProfile(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	h := 172.0
	dob := domain.Day("1990-05-04")
	require.NoError(t, db.SaveProfile(ctx, domain.Profile{UserID: user.ID, HeightCm: &h, DateOfBirth: &dob, WeightUnit: domain.Kilograms, HeightUnit: domain.Centimeters, UpdatedAt: now}))
	p, err := db.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 172.0, *p.HeightCm)
	assert.Equal(t, dob, *p.DateOfBirth)

	require.NoError(t, db.DeleteMetric(ctx, user.ID, id))
	assert.ErrorIs(t, db.DeleteMetric(ctx, user.ID, id), domain.ErrNotFound)
}
