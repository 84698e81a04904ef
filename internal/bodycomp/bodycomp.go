// Package bodycomp implements the published body composition formulas used
// when logging metrics: Navy tape, Jackson-Pollock skinfolds, FFMI and lean
// mass. All lengths are centimeters, skinfolds millimeters, weights kilograms.
package bodycomp

import (
	"errors"
	"fmt"
	"math"

	"logyourbody/internal/domain"
)

var (
	// ErrMissingMeasurement is returned when a formula lacks a required input.
	ErrMissingMeasurement = errors.New("missing measurement")
	// ErrInvalidMeasurement is returned for inputs outside a formula's domain.
	ErrInvalidMeasurement = errors.New("invalid measurement")
)

const (
	minBodyFat = 0
	maxBodyFat = 50

	// FFMI is normalized to this reference height in meters.
	referenceHeightM     = 1.8
	normalizationPerUnit = 6.1
)

func clampBodyFat(v float64) float64 {
	return math.Max(minBodyFat, math.Min(maxBodyFat, v))
}

// NavyBodyFat estimates body fat percentage with the US Navy circumference
// method. hipCm is required for women and ignored for men. The published
// coefficients are for inches, so inputs are converted first.
func NavyBodyFat(gender domain.Gender, waistCm, neckCm, heightCm, hipCm float64) (float64, error) {
	if waistCm <= 0 || neckCm <= 0 || heightCm <= 0 {
		return 0, fmt.Errorf("navy: waist, neck and height must be > 0: %w", ErrInvalidMeasurement)
	}
	in := func(cm float64) float64 { return domain.ConvertLength(cm, domain.Centimeters, domain.Inches) }
	waist, neck, height, hip := in(waistCm), in(neckCm), in(heightCm), in(hipCm)

	var bf float64
	switch gender {
	case domain.Male:
		if waist <= neck {
			return 0, fmt.Errorf("navy: waist must exceed neck: %w", ErrInvalidMeasurement)
		}
		bf = 86.010*math.Log10(waist-neck) - 70.041*math.Log10(height) + 36.76
	case domain.Female:
		if hip <= 0 {
			return 0, fmt.Errorf("navy: hip required for female formula: %w", ErrMissingMeasurement)
		}
		if waist+hip <= neck {
			return 0, fmt.Errorf("navy: waist plus hip must exceed neck: %w", ErrInvalidMeasurement)
		}
		bf = 163.205*math.Log10(waist+hip-neck) - 97.684*math.Log10(height) - 78.387
	default:
		return 0, fmt.Errorf("navy: unknown gender %q: %w", gender, ErrMissingMeasurement)
	}
	return clampBodyFat(bf), nil
}

// Skinfolds holds 3-site caliper readings in millimeters. Men use chest,
// abdominal and thigh; women use tricep, suprailiac and thigh.
type Skinfolds struct {
	Chest      float64 `json:"chest,omitempty"`
	Abdominal  float64 `json:"abdominal,omitempty"`
	Thigh      float64 `json:"thigh,omitempty"`
	Tricep     float64 `json:"tricep,omitempty"`
	Suprailiac float64 `json:"suprailiac,omitempty"`
}

// ThreeSiteBodyFat estimates body fat with the Jackson-Pollock 3-site
// equations and the Siri conversion.
func ThreeSiteBodyFat(gender domain.Gender, age int, s Skinfolds) (float64, error) {
	if age <= 0 {
		return 0, fmt.Errorf("3-site: age must be > 0: %w", ErrInvalidMeasurement)
	}

	var sum, density float64
	switch gender {
	case domain.Male:
		if s.Chest <= 0 || s.Abdominal <= 0 || s.Thigh <= 0 {
			return 0, fmt.Errorf("3-site: chest, abdominal and thigh required: %w", ErrMissingMeasurement)
		}
		sum = s.Chest + s.Abdominal + s.Thigh
		density = 1.10938 - 0.0008267*sum + 0.0000016*sum*sum - 0.0002574*float64(age)
	case domain.Female:
		if s.Tricep <= 0 || s.Suprailiac <= 0 || s.Thigh <= 0 {
			return 0, fmt.Errorf("3-site: tricep, suprailiac and thigh required: %w", ErrMissingMeasurement)
		}
		sum = s.Tricep + s.Suprailiac + s.Thigh
		density = 1.0994921 - 0.0009929*sum + 0.0000023*sum*sum - 0.0001392*float64(age)
	default:
		return 0, fmt.Errorf("3-site: unknown gender %q: %w", gender, ErrMissingMeasurement)
	}
	return siri(density), nil
}

// SevenSiteSkinfolds holds 7-site caliper readings in millimeters.
type SevenSiteSkinfolds struct {
	Chest       float64 `json:"chest"`
	Midaxillary float64 `json:"midaxillary"`
	Tricep      float64 `json:"tricep"`
	Subscapular float64 `json:"subscapular"`
	Abdominal   float64 `json:"abdominal"`
	Suprailiac  float64 `json:"suprailiac"`
	Thigh       float64 `json:"thigh"`
}

// SevenSiteBodyFat estimates body fat with the Jackson-Pollock 7-site equations.
func SevenSiteBodyFat(gender domain.Gender, age int, s SevenSiteSkinfolds) (float64, error) {
	if age <= 0 {
		return 0, fmt.Errorf("7-site: age must be > 0: %w", ErrInvalidMeasurement)
	}
	for _, v := range []float64{s.Chest, s.Midaxillary, s.Tricep, s.Subscapular, s.Abdominal, s.Suprailiac, s.Thigh} {
		if v <= 0 {
			return 0, fmt.Errorf("7-site: all seven sites required: %w", ErrMissingMeasurement)
		}
	}
	sum := s.Chest + s.Midaxillary + s.Tricep + s.Subscapular + s.Abdominal + s.Suprailiac + s.Thigh

	var density float64
	switch gender {
	case domain.Male:
		density = 1.112 - 0.00043499*sum + 0.00000055*sum*sum - 0.00028826*float64(age)
	case domain.Female:
		density = 1.097 - 0.00046971*sum + 0.00000056*sum*sum - 0.00012828*float64(age)
	default:
		return 0, fmt.Errorf("7-site: unknown gender %q: %w", gender, ErrMissingMeasurement)
	}
	return siri(density), nil
}

func siri(density float64) float64 {
	return clampBodyFat(495/density - 450)
}

// LeanBodyMass returns weight minus fat mass, in the unit of weight.
func LeanBodyMass(weight, bodyFatPercentage float64) float64 {
	return weight * (1 - bodyFatPercentage/100)
}

// FFMIInterpretation buckets a normalized FFMI.
type FFMIInterpretation string

const (
	FFMIBelowAverage     FFMIInterpretation = "below_average"
	FFMIAverage          FFMIInterpretation = "average"
	FFMIAboveAverage     FFMIInterpretation = "above_average"
	FFMIExcellent        FFMIInterpretation = "excellent"
	FFMISuperior         FFMIInterpretation = "superior"
	FFMISuspiciouslyHigh FFMIInterpretation = "suspiciously_high"
)

// FFMIResult is the outcome of FFMI. Values are not rounded.
type FFMIResult struct {
	FFMI           float64            `json:"ffmi"`
	NormalizedFFMI float64            `json:"normalizedFfmi"`
	FatFreeMassKg  float64            `json:"fatFreeMassKg"`
	Interpretation FFMIInterpretation `json:"interpretation"`
}

// FFMI computes the fat-free mass index and its height-normalized variant.
func FFMI(weightKg, heightCm, bodyFatPercentage float64) (FFMIResult, error) {
	if weightKg <= 0 || heightCm <= 0 {
		return FFMIResult{}, fmt.Errorf("ffmi: weight and height must be > 0: %w", ErrInvalidMeasurement)
	}
	h := heightCm / 100
	ffm := LeanBodyMass(weightKg, bodyFatPercentage)
	ffmi := ffm / (h * h)
	normalized := ffmi + normalizationPerUnit*(referenceHeightM-h)

	return FFMIResult{
		FFMI:           ffmi,
		NormalizedFFMI: normalized,
		FatFreeMassKg:  ffm,
		Interpretation: interpretFFMI(normalized),
	}, nil
}

func interpretFFMI(normalized float64) FFMIInterpretation {
	switch {
	case normalized < 18:
		return FFMIBelowAverage
	case normalized < 20:
		return FFMIAverage
	case normalized < 22:
		return FFMIAboveAverage
	case normalized < 23.5:
		return FFMIExcellent
	case normalized < 25:
		return FFMISuperior
	default:
		return FFMISuspiciouslyHigh
	}
}

// BodyFatCategory buckets a body fat percentage for a gender.
type BodyFatCategory string

const (
	CategoryEssential    BodyFatCategory = "essential"
	CategoryAthletic     BodyFatCategory = "athletic"
	CategoryFit          BodyFatCategory = "fit"
	CategoryAverage      BodyFatCategory = "average"
	CategoryAboveAverage BodyFatCategory = "above_average"
	CategoryObese        BodyFatCategory = "obese"
)

// Category classifies bodyFatPercentage. Unknown genders use the male table.
func Category(bodyFatPercentage float64, gender domain.Gender) BodyFatCategory {
	limits := [5]float64{6, 14, 18, 25, 31}
	if gender == domain.Female {
		limits = [5]float64{14, 21, 25, 32, 39}
	}
	cats := [5]BodyFatCategory{CategoryEssential, CategoryAthletic, CategoryFit, CategoryAverage, CategoryAboveAverage}
	for i, limit := range limits {
		if bodyFatPercentage < limit {
			return cats[i]
		}
	}
	return CategoryObese
}

// Composition splits a weight into fat and lean mass.
type Composition struct {
	BodyFatPercentage float64         `json:"bodyFatPercentage"`
	LeanMassKg        float64         `json:"leanMassKg"`
	FatMassKg         float64         `json:"fatMassKg"`
	Category          BodyFatCategory `json:"category"`
}

// BodyComposition returns the full composition for a weight and body fat.
func BodyComposition(weightKg, bodyFatPercentage float64, gender domain.Gender) Composition {
	fat := weightKg * bodyFatPercentage / 100
	return Composition{
		BodyFatPercentage: bodyFatPercentage,
		LeanMassKg:        weightKg - fat,
		FatMassKg:         fat,
		Category:          Category(bodyFatPercentage, gender),
	}
}
