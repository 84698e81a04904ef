package timeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logyourbody/internal/domain"
	"logyourbody/internal/timeline"
)

func TestResolve_Metric(t *testing.T) {
	m := metric("2024-03-01", 176.5, domain.Pounds, f(18))
	m.LeanBodyMass = f(144.7)
	m.FFMI = f(22.1)

	v := timeline.Resolve(timeline.Entry{Date: m.Date, Metric: &m, FFMI: f(99)})
	require.NotNil(t, v.Weight)
	assert.Equal(t, 176.5, *v.Weight)
	assert.Equal(t, domain.Pounds, v.WeightUnit)
	assert.Equal(t, 18.0, *v.BodyFatPercentage)
	assert.Equal(t, 144.7, *v.LeanBodyMass)
	assert.Equal(t, 22.1, *v.FFMI, "stored FFMI wins over the recomputed one")
	assert.False(t, v.IsInferred)
	assert.Empty(t, v.Confidence)
}

func TestResolve_MetricFallsBackToDerived(t *testing.T) {
	m := metric("2024-03-01", 100, domain.Kilograms, f(20))
	v := timeline.Resolve(timeline.Entry{Date: m.Date, Metric: &m, LeanBodyMassKg: f(80), FFMI: f(24)})
	assert.Equal(t, 80.0, *v.LeanBodyMass)
	assert.Equal(t, 24.0, *v.FFMI)
}

func TestResolve_Inferred(t *testing.T) {
	e := timeline.Entry{
		Date:     "2024-01-08",
		Photo:    &domain.PhotoRecord{Date: "2024-01-08"},
		Inferred: &timeline.InferredData{WeightKg: 80, BodyFatPercentage: f(15), Confidence: timeline.ConfidenceLow},
	}
	v := timeline.Resolve(e)
	assert.True(t, v.IsInferred)
	assert.Equal(t, timeline.ConfidenceLow, v.Confidence)
	assert.Equal(t, 80.0, *v.Weight)
	assert.Equal(t, domain.Kilograms, v.WeightUnit)
	assert.Equal(t, 15.0, *v.BodyFatPercentage)
	assert.Nil(t, v.FFMI)
}

func TestResolve_NothingToShow(t *testing.T) {
	v := timeline.Resolve(timeline.Entry{Date: "2024-02-01", Photo: &domain.PhotoRecord{}})
	assert.Equal(t, timeline.DisplayValues{}, v)
	assert.Equal(t, "--", timeline.FormatValue(v.Weight, 1))
	assert.Equal(t, "--", timeline.FormatValue(v.BodyFatPercentage, 1))
}

func TestDisplayValuesIn(t *testing.T) {
	v := timeline.DisplayValues{Weight: f(100), LeanBodyMass: f(80), WeightUnit: domain.Kilograms}
	lbs := v.In(domain.Pounds)
	assert.InDelta(t, 220.462, *lbs.Weight, 0.001)
	assert.InDelta(t, 176.370, *lbs.LeanBodyMass, 0.001)
	assert.Equal(t, domain.Pounds, lbs.WeightUnit)
	assert.Equal(t, 100.0, *v.Weight, "original untouched")

	empty := timeline.DisplayValues{}.In(domain.Pounds)
	assert.Nil(t, empty.Weight)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "175.0", timeline.FormatValue(f(175), 1))
	assert.Equal(t, "19", timeline.FormatValue(f(19.43), 0))
}
