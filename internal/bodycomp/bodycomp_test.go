package bodycomp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logyourbody/internal/bodycomp"
	"logyourbody/internal/domain"
)

func TestNavyBodyFat(t *testing.T) {
	t.Run("male", func(t *testing.T) {
		bf, err := bodycomp.NavyBodyFat(domain.Male, 90, 40, 180, 0)
		require.NoError(t, err)
		assert.InDelta(t, 18.46, bf, 0.01)
	})

	t.Run("female", func(t *testing.T) {
		bf, err := bodycomp.NavyBodyFat(domain.Female, 70, 32, 165, 95)
		require.NoError(t, err)
		assert.InDelta(t, 25.10, bf, 0.01)
	})

	t.Run("female without hip", func(t *testing.T) {
		_, err := bodycomp.NavyBodyFat(domain.Female, 70, 32, 165, 0)
		assert.ErrorIs(t, err, bodycomp.ErrMissingMeasurement)
	})

	t.Run("waist not above neck", func(t *testing.T) {
		_, err := bodycomp.NavyBodyFat(domain.Male, 38, 40, 180, 0)
		assert.ErrorIs(t, err, bodycomp.ErrInvalidMeasurement)
	})

	t.Run("clamped", func(t *testing.T) {
		bf, err := bodycomp.NavyBodyFat(domain.Male, 41, 40, 180, 0)
		require.NoError(t, err)
		assert.Equal(t, 0.0, bf)
	})
}

func TestThreeSiteBodyFat(t *testing.T) {
	bf, err := bodycomp.ThreeSiteBodyFat(domain.Male, 30, bodycomp.Skinfolds{Chest: 20, Abdominal: 25, Thigh: 15})
	require.NoError(t, err)
	assert.InDelta(t, 17.95, bf, 0.01)

	_, err = bodycomp.ThreeSiteBodyFat(domain.Male, 30, bodycomp.Skinfolds{Tricep: 20, Suprailiac: 25, Thigh: 15})
	assert.ErrorIs(t, err, bodycomp.ErrMissingMeasurement)

	_, err = bodycomp.ThreeSiteBodyFat(domain.Female, 30, bodycomp.Skinfolds{Tricep: 20, Suprailiac: 25, Thigh: 15})
	assert.NoError(t, err)

	_, err = bodycomp.ThreeSiteBodyFat(domain.Female, 0, bodycomp.Skinfolds{Tricep: 20, Suprailiac: 25, Thigh: 15})
	assert.ErrorIs(t, err, bodycomp.ErrInvalidMeasurement)
}

func TestSevenSiteBodyFat(t *testing.T) {
	s := bodycomp.SevenSiteSkinfolds{Chest: 10, Midaxillary: 10, Tricep: 10, Subscapular: 10, Abdominal: 10, Suprailiac: 10, Thigh: 10}
	bf, err := bodycomp.SevenSiteBodyFat(domain.Male, 30, s)
	require.NoError(t, err)
	assert.InDelta(t, 10.21, bf, 0.01)

	s.Thigh = 0
	_, err = bodycomp.SevenSiteBodyFat(domain.Male, 30, s)
	assert.ErrorIs(t, err, bodycomp.ErrMissingMeasurement)
}

func TestFFMI(t *testing.T) {
	res, err := bodycomp.FFMI(80, 180, 15)
	require.NoError(t, err)
	assert.InDelta(t, 20.99, res.FFMI, 0.01)
	assert.InDelta(t, res.FFMI, res.NormalizedFFMI, 1e-9, "no normalization at the reference height")
	assert.InDelta(t, 68, res.FatFreeMassKg, 1e-9)
	assert.Equal(t, bodycomp.FFMIAboveAverage, res.Interpretation)

	res, err = bodycomp.FFMI(90, 170, 10)
	require.NoError(t, err)
	assert.InDelta(t, 28.03, res.FFMI, 0.01)
	assert.InDelta(t, 28.64, res.NormalizedFFMI, 0.01)
	assert.Equal(t, bodycomp.FFMISuspiciouslyHigh, res.Interpretation)

	_, err = bodycomp.FFMI(80, 0, 15)
	assert.ErrorIs(t, err, bodycomp.ErrInvalidMeasurement)
}

func TestCategory(t *testing.T) {
	tests := []struct {
		bf     float64
		gender domain.Gender
		want   bodycomp.BodyFatCategory
	}{
		{5, domain.Male, bodycomp.CategoryEssential},
		{12, domain.Male, bodycomp.CategoryAthletic},
		{17, domain.Male, bodycomp.CategoryFit},
		{20, domain.Male, bodycomp.CategoryAverage},
		{28, domain.Male, bodycomp.CategoryAboveAverage},
		{35, domain.Male, bodycomp.CategoryObese},
		{20, domain.Female, bodycomp.CategoryAthletic},
		{30, domain.Female, bodycomp.CategoryAverage},
		{45, domain.Female, bodycomp.CategoryObese},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, bodycomp.Category(tc.bf, tc.gender), "%v%% %s", tc.bf, tc.gender)
	}
}

func TestBodyComposition(t *testing.T) {
	c := bodycomp.BodyComposition(80, 20, domain.Male)
	assert.InDelta(t, 16, c.FatMassKg, 1e-9)
	assert.InDelta(t, 64, c.LeanMassKg, 1e-9)
	assert.Equal(t, bodycomp.CategoryAverage, c.Category)
	assert.InDelta(t, 64, bodycomp.LeanBodyMass(80, 20), 1e-9)
}
