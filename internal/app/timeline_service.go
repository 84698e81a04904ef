package app

import (
	"context"

	log "github.com/sirupsen/logrus"

	"logyourbody/internal/domain"
	"logyourbody/internal/timeline"
)

// TimelineItem is one resolved day of the progress timeline.
type TimelineItem struct {
	Date      domain.Day             `json:"date"`
	PhotoURL  string                 `json:"photoUrl,omitempty"`
	ViewType  string                 `json:"viewType,omitempty"`
	HasMetric bool                   `json:"hasMetric"`
	HasPhoto  bool                   `json:"hasPhoto"`
	Display   timeline.DisplayValues `json:"display"`
}

// TimelineObserver is notified with the size of every built timeline.
type TimelineObserver interface {
	ObserveTimeline(entries int)
}

// TimelineService assembles a user's timeline from stored records. Nothing is
// cached; the timeline is rebuilt on every call.
type TimelineService struct {
	metrics  domain.MetricRepository
	photos   domain.PhotoRepository
	profiles *ProfileService
	resolver domain.PhotoURLResolver
	observer TimelineObserver
}

// NewTimelineService creates a TimelineService. A nil resolver returns photo
// references unchanged.
func NewTimelineService(metrics domain.MetricRepository, photos domain.PhotoRepository, profiles *ProfileService, resolver domain.PhotoURLResolver) *TimelineService {
	if resolver == nil {
		resolver = domain.PassthroughResolver{}
	}
	return &TimelineService{metrics: metrics, photos: photos, profiles: profiles, resolver: resolver}
}

// SetObserver registers o to receive timeline sizes.
func (s *TimelineService) SetObserver(o TimelineObserver) {
	s.observer = o
}

// Timeline builds and resolves the timeline for userID. An empty unit
// selects the profile's preferred unit.
func (s *TimelineService) Timeline(ctx context.Context, userID int64, unit string) ([]TimelineItem, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	target := profile.WeightUnit
	if unit != "" {
		if target, err = domain.ParseWeightUnit(unit); err != nil {
			return nil, invalidf("%v", err)
		}
	}
	if target == "" {
		target = domain.Pounds
	}

	metrics, err := s.metrics.ListMetrics(ctx, userID)
	if err != nil {
		return nil, err
	}
	photos, err := s.photos.ListPhotos(ctx, userID)
	if err != nil {
		return nil, err
	}

	var heightCm float64
	if profile.HeightCm != nil {
		heightCm = *profile.HeightCm
	}

	entries := timeline.Build(metrics, photos, heightCm)
	if s.observer != nil {
		s.observer.ObserveTimeline(len(entries))
	}

	items := make([]TimelineItem, 0, len(entries))
	for _, e := range entries {
		item := TimelineItem{
			Date:      e.Date,
			HasMetric: e.Metric != nil,
			HasPhoto:  e.Photo != nil,
			Display:   timeline.Resolve(e).In(target),
		}
		if e.Photo != nil {
			item.ViewType = e.Photo.ViewType
			url, err := s.resolver.ResolveURL(ctx, e.Photo.PhotoURL)
			if err != nil {
				// A broken photo must not hide the day's numbers.
				log.Warnf("resolve photo %d for user %d: %v", e.Photo.ID, userID, err)
			} else {
				item.PhotoURL = url
			}
		}
		items = append(items, item)
	}
	return items, nil
}
