package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logyourbody/internal/domain"
	"logyourbody/internal/timeline"
)

type resolverFunc func(ctx context.Context, ref string) (string, error)

func (f resolverFunc) ResolveURL(ctx context.Context, ref string) (string, error) { return f(ctx, ref) }

type countingObserver struct{ sizes []int }

func (o *countingObserver) ObserveTimeline(n int) { o.sizes = append(o.sizes, n) }

func timelineFixture() (*mockMetricRepo, *mockPhotoRepo) {
	metrics := &mockMetricRepo{
		listFn: func(_ context.Context, _ int64) ([]domain.MetricRecord, error) {
			return []domain.MetricRecord{
				{ID: 1, Date: "2024-01-01", Weight: 80, WeightUnit: domain.Kilograms, BodyFatPercentage: f64(20)},
				{ID: 2, Date: "2024-01-11", Weight: 78, WeightUnit: domain.Kilograms, BodyFatPercentage: f64(18)},
			}, nil
		},
	}
	photos := &mockPhotoRepo{
		listFn: func(_ context.Context, _ int64) ([]domain.PhotoRecord, error) {
			return []domain.PhotoRecord{{ID: 3, Date: "2024-01-06", PhotoURL: "u/1/a.jpg", ViewType: "front"}}, nil
		},
	}
	return metrics, photos
}

func TestTimelineService_Timeline(t *testing.T) {
	metrics, photos := timelineFixture()
	profiles := NewProfileService(fixedProfile(domain.Profile{HeightCm: f64(180), WeightUnit: domain.Kilograms}))
	resolver := resolverFunc(func(_ context.Context, ref string) (string, error) {
		return "https://cdn.example.com/" + ref, nil
	})
	obs := &countingObserver{}
	svc := NewTimelineService(metrics, photos, profiles, resolver)
	svc.SetObserver(obs)

	items, err := svc.Timeline(context.Background(), 1, "")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []int{3}, obs.sizes)

	assert.Equal(t, domain.Day("2024-01-01"), items[0].Date)
	assert.True(t, items[0].HasMetric)
	assert.False(t, items[0].Display.IsInferred)

	mid := items[1]
	assert.Equal(t, domain.Day("2024-01-06"), mid.Date)
	assert.True(t, mid.HasPhoto)
	assert.False(t, mid.HasMetric)
	assert.Equal(t, "https://cdn.example.com/u/1/a.jpg", mid.PhotoURL)
	assert.Equal(t, "front", mid.ViewType)
	assert.True(t, mid.Display.IsInferred)
	assert.Equal(t, timeline.ConfidenceMedium, mid.Display.Confidence)
	assert.Equal(t, domain.Kilograms, mid.Display.WeightUnit)
	require.NotNil(t, mid.Display.Weight)
	assert.InDelta(t, 79.0, *mid.Display.Weight, 1e-9)
	require.NotNil(t, mid.Display.BodyFatPercentage)
	assert.InDelta(t, 19.0, *mid.Display.BodyFatPercentage, 1e-9)
	require.NotNil(t, mid.Display.FFMI)
}

func TestTimelineService_Timeline_RequestedUnit(t *testing.T) {
	metrics, photos := timelineFixture()
	svc := NewTimelineService(metrics, photos, NewProfileService(&mockProfileRepo{}), nil)

	items, err := svc.Timeline(context.Background(), 1, "lbs")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, domain.Pounds, items[0].Display.WeightUnit)
	assert.InDelta(t, domain.ConvertWeight(80, domain.Kilograms, domain.Pounds), *items[0].Display.Weight, 1e-9)
	assert.Equal(t, "u/1/a.jpg", items[1].PhotoURL, "passthrough resolver by default")

	_, err = svc.Timeline(context.Background(), 1, "stone")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTimelineService_Timeline_ResolverFailureKeepsEntry(t *testing.T) {
	metrics, photos := timelineFixture()
	resolver := resolverFunc(func(_ context.Context, _ string) (string, error) {
		return "", errors.New("bucket unavailable")
	})
	svc := NewTimelineService(metrics, photos, NewProfileService(&mockProfileRepo{}), resolver)

	items, err := svc.Timeline(context.Background(), 1, "kg")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.True(t, items[1].HasPhoto)
	assert.Empty(t, items[1].PhotoURL)
	assert.NotNil(t, items[1].Display.Weight)
}

func TestTimelineService_Timeline_RepoError(t *testing.T) {
	metrics := &mockMetricRepo{
		listFn: func(_ context.Context, _ int64) ([]domain.MetricRecord, error) {
			return nil, errors.New("db down")
		},
	}
	svc := NewTimelineService(metrics, &mockPhotoRepo{}, NewProfileService(&mockProfileRepo{}), nil)

	_, err := svc.Timeline(context.Background(), 1, "")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "db down"))
}

func TestTimelineService_Timeline_Empty(t *testing.T) {
	svc := NewTimelineService(&mockMetricRepo{}, &mockPhotoRepo{}, NewProfileService(&mockProfileRepo{}), nil)

	items, err := svc.Timeline(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Empty(t, items)
}
