package domain

import (
	"fmt"
	"strings"
)

const (
	kgToLb = 2.2046226218
	cmToIn = 1 / 2.54
)

// WeightUnit is the unit a weight value was recorded or is displayed in.
type WeightUnit string

const (
	Kilograms WeightUnit = "kg"
	Pounds    WeightUnit = "lbs"
)

// ParseWeightUnit accepts "kg", "lbs" and the alias "lb".
func ParseWeightUnit(s string) (WeightUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kg":
		return Kilograms, nil
	case "lbs", "lb":
		return Pounds, nil
	default:
		return "", fmt.Errorf("unknown weight unit %q", s)
	}
}

// HeightUnit is the preferred unit for rendering heights and tape measurements.
type HeightUnit string

const (
	Centimeters HeightUnit = "cm"
	Inches      HeightUnit = "in"
)

// ParseHeightUnit accepts "cm" and "in".
func ParseHeightUnit(s string) (HeightUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cm":
		return Centimeters, nil
	case "in", "inch", "inches":
		return Inches, nil
	default:
		return "", fmt.Errorf("unknown height unit %q", s)
	}
}

// ConvertWeight converts a weight value between kilograms and pounds.
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertWeight(v float64, from, to WeightUnit) float64 {
	if from == to {
		return v
	}
	if from == Kilograms && to == Pounds {
		return v * kgToLb
	}
	if from == Pounds && to == Kilograms {
		return v / kgToLb
	}
	return v
}

// ConvertLength converts a length between centimeters and inches.
func ConvertLength(v float64, from, to HeightUnit) float64 {
	if from == to {
		return v
	}
	if from == Centimeters && to == Inches {
		return v * cmToIn
	}
	if from == Inches && to == Centimeters {
		return v / cmToIn
	}
	return v
}
