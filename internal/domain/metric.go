package domain

import (
	"context"
	"time"
)

// BodyFatMethod is the source of a body-fat figure.
type BodyFatMethod string

const (
	MethodScale     BodyFatMethod = "scale"
	MethodNavy      BodyFatMethod = "navy"
	MethodThreeSite BodyFatMethod = "3-site"
	MethodDexa      BodyFatMethod = "dexa"
	MethodCalipers  BodyFatMethod = "calipers"
	MethodVisual    BodyFatMethod = "visual"
	MethodHealthKit BodyFatMethod = "healthkit"
)

// IsValid reports whether m is a known method. The empty method is valid and
// means the body-fat figure was not attributed.
func (m BodyFatMethod) IsValid() bool {
	switch m {
	case "", MethodScale, MethodNavy, MethodThreeSite, MethodDexa,
		MethodCalipers, MethodVisual, MethodHealthKit:
		return true
	default:
		return false
	}
}

// MetricRecord is a single measured body observation for one calendar day.
type MetricRecord struct {
	ID                int64         `json:"id"`
	UserID            int64         `json:"userId"`
	Date              Day           `json:"date"`
	Weight            float64       `json:"weight"`
	WeightUnit        WeightUnit    `json:"weightUnit"`
	BodyFatPercentage *float64      `json:"bodyFatPercentage,omitempty"`
	Method            BodyFatMethod `json:"method,omitempty"`
	// LeanBodyMass is expressed in WeightUnit.
	LeanBodyMass *float64  `json:"leanBodyMass,omitempty"`
	FFMI         *float64  `json:"ffmi,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// WeightKg returns the recorded weight in kilograms.
func (m MetricRecord) WeightKg() float64 {
	unit := m.WeightUnit
	if unit == "" {
		unit = Kilograms
	}
	return ConvertWeight(m.Weight, unit, Kilograms)
}

// LastModified is the timestamp used to pick between two records on one day.
func (m MetricRecord) LastModified() time.Time {
	if m.UpdatedAt.IsZero() {
		return m.CreatedAt
	}
	return m.UpdatedAt
}

// MetricRepository is the port for body metric persistence.
type MetricRepository interface {
	AddMetric(ctx context.Context, m MetricRecord) (int64, error)
	UpdateMetric(ctx context.Context, m MetricRecord) error
	DeleteMetric(ctx context.Context, userID, id int64) error
	GetMetric(ctx context.Context, userID, id int64) (*MetricRecord, error)
	ListMetrics(ctx context.Context, userID int64) ([]MetricRecord, error)
}
