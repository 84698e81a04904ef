package app

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"logyourbody/internal/domain"
)

// ExportFormat selects how an export is rendered.
type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportCSV  ExportFormat = "csv"
)

// ParseExportFormat accepts json (the default when empty) and csv.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case "", ExportJSON:
		return ExportJSON, nil
	case ExportCSV:
		return ExportCSV, nil
	default:
		return "", invalidf("unknown export format %q", s)
	}
}

// Export is everything stored for one user. Its JSON form is also the input
// of the offline timeline command.
type Export struct {
	ExportedAt time.Time             `json:"exportedAt"`
	HeightCm   float64               `json:"heightCm,omitempty"`
	Profile    domain.Profile        `json:"profile"`
	Metrics    []domain.MetricRecord `json:"metrics"`
	Photos     []domain.PhotoRecord  `json:"photos"`
}

// ExportService collects a user's records for download.
type ExportService struct {
	metrics  domain.MetricRepository
	photos   domain.PhotoRepository
	profiles *ProfileService
	now      func() time.Time
}

func NewExportService(metrics domain.MetricRepository, photos domain.PhotoRepository, profiles *ProfileService) *ExportService {
	return &ExportService{metrics: metrics, photos: photos, profiles: profiles, now: time.Now}
}

// Export gathers the profile, metrics and photos of userID.
func (s *ExportService) Export(ctx context.Context, userID int64) (*Export, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("export profile: %w", err)
	}
	metrics, err := s.metrics.ListMetrics(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("export metrics: %w", err)
	}
	photos, err := s.photos.ListPhotos(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("export photos: %w", err)
	}

	e := &Export{
		ExportedAt: s.now().UTC(),
		Profile:    *profile,
		Metrics:    metrics,
		Photos:     photos,
	}
	if profile.HeightCm != nil {
		e.HeightCm = *profile.HeightCm
	}
	if e.Metrics == nil {
		e.Metrics = []domain.MetricRecord{}
	}
	if e.Photos == nil {
		e.Photos = []domain.PhotoRecord{}
	}
	return e, nil
}

// WriteCSV renders e as titled CSV sections separated by blank lines.
// Sections without rows are left out.
func (e *Export) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	p := e.Profile
	dob := ""
	if p.DateOfBirth != nil {
		dob = string(*p.DateOfBirth)
	}
	section(cw, "PROFILE DATA",
		[]string{"height_cm", "gender", "date_of_birth", "weight_unit", "height_unit"},
		[][]string{{optFloat(p.HeightCm), string(p.Gender), dob, string(p.WeightUnit), string(p.HeightUnit)}},
	)

	if len(e.Metrics) > 0 {
		rows := make([][]string, 0, len(e.Metrics))
		for _, m := range e.Metrics {
			rows = append(rows, []string{
				strconv.FormatInt(m.ID, 10),
				string(m.Date),
				strconv.FormatFloat(m.Weight, 'f', -1, 64),
				string(m.WeightUnit),
				optFloat(m.BodyFatPercentage),
				string(m.Method),
				optFloat(m.LeanBodyMass),
				optFloat(m.FFMI),
				m.Notes,
				timestamp(m.CreatedAt),
				timestamp(m.UpdatedAt),
			})
		}
		section(cw, "BODY METRICS",
			[]string{"id", "date", "weight", "weight_unit", "body_fat_percentage", "method", "lean_body_mass", "ffmi", "notes", "created_at", "updated_at"},
			rows,
		)
	}

	if len(e.Photos) > 0 {
		rows := make([][]string, 0, len(e.Photos))
		for _, ph := range e.Photos {
			rows = append(rows, []string{
				strconv.FormatInt(ph.ID, 10),
				string(ph.Date),
				ph.PhotoURL,
				ph.ViewType,
				timestamp(ph.CreatedAt),
				timestamp(ph.UpdatedAt),
			})
		}
		section(cw, "PROGRESS PHOTOS",
			[]string{"id", "date", "photo_url", "view_type", "created_at", "updated_at"},
			rows,
		)
	}

	cw.Flush()
	return cw.Error()
}

// section writes errors into cw; they surface from cw.Error after Flush.
func section(cw *csv.Writer, title string, header []string, rows [][]string) {
	_ = cw.Write([]string{title})
	_ = cw.Write(header)
	_ = cw.WriteAll(rows)
	_ = cw.Write([]string{""})
}

func optFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
