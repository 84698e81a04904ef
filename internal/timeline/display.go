package timeline

import (
	"strconv"

	"logyourbody/internal/domain"
)

// Placeholder is rendered for values that are unknown for a day.
const Placeholder = "--"

// DisplayValues is what the UI shows for one timeline entry. Nil fields are
// unknown and must be rendered as Placeholder, never as zero.
type DisplayValues struct {
	Weight            *float64          `json:"weight"`
	WeightUnit        domain.WeightUnit `json:"weightUnit,omitempty"`
	BodyFatPercentage *float64          `json:"bodyFatPercentage"`
	// LeanBodyMass is in WeightUnit.
	LeanBodyMass *float64   `json:"leanBodyMass"`
	FFMI         *float64   `json:"ffmi"`
	IsInferred   bool       `json:"isInferred"`
	Confidence   Confidence `json:"confidenceLevel,omitempty"`
}

// Resolve picks the values to show for entry: the measured metric when there
// is one, otherwise the interpolated data, otherwise nothing.
func Resolve(entry Entry) DisplayValues {
	if m := entry.Metric; m != nil {
		unit := m.WeightUnit
		if unit == "" {
			unit = domain.Kilograms
		}
		v := DisplayValues{
			Weight:            ptr(m.Weight),
			WeightUnit:        unit,
			BodyFatPercentage: copyPtr(m.BodyFatPercentage),
			LeanBodyMass:      copyPtr(m.LeanBodyMass),
			FFMI:              copyPtr(m.FFMI),
		}
		if v.LeanBodyMass == nil && entry.LeanBodyMassKg != nil {
			v.LeanBodyMass = ptr(domain.ConvertWeight(*entry.LeanBodyMassKg, domain.Kilograms, unit))
		}
		if v.FFMI == nil {
			v.FFMI = copyPtr(entry.FFMI)
		}
		return v
	}

	if in := entry.Inferred; in != nil {
		return DisplayValues{
			Weight:            ptr(in.WeightKg),
			WeightUnit:        domain.Kilograms,
			BodyFatPercentage: copyPtr(in.BodyFatPercentage),
			LeanBodyMass:      copyPtr(entry.LeanBodyMassKg),
			FFMI:              copyPtr(entry.FFMI),
			IsInferred:        true,
			Confidence:        in.Confidence,
		}
	}

	return DisplayValues{}
}

// In returns v with weight and lean mass expressed in unit.
func (v DisplayValues) In(unit domain.WeightUnit) DisplayValues {
	if v.WeightUnit == "" || v.WeightUnit == unit {
		return v
	}
	out := v
	if v.Weight != nil {
		out.Weight = ptr(domain.ConvertWeight(*v.Weight, v.WeightUnit, unit))
	}
	if v.LeanBodyMass != nil {
		out.LeanBodyMass = ptr(domain.ConvertWeight(*v.LeanBodyMass, v.WeightUnit, unit))
	}
	out.WeightUnit = unit
	return out
}

// FormatValue renders v with the given number of decimals, or Placeholder.
func FormatValue(v *float64, decimals int) string {
	if v == nil {
		return Placeholder
	}
	return strconv.FormatFloat(*v, 'f', decimals, 64)
}

func ptr(v float64) *float64 { return &v }

func copyPtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	return ptr(*p)
}
