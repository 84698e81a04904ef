package timeline

import "logyourbody/internal/domain"

// Confidence describes how trustworthy an interpolated value is.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Rank orders confidence levels; higher is better. Unknown levels rank 0.
func (c Confidence) Rank() int {
	switch c {
	case ConfidenceHigh:
		return 3
	case ConfidenceMedium:
		return 2
	case ConfidenceLow:
		return 1
	default:
		return 0
	}
}

// Bucket limits, in days. A value at or below the first limit is high, at or
// below the second medium, otherwise low.
var (
	spanLimits    = [2]int{14, 30}
	nearestLimits = [2]int{3, 10}
)

func bucket(days int, limits [2]int) Confidence {
	switch {
	case days <= limits[0]:
		return ConfidenceHigh
	case days <= limits[1]:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// confidenceFor grades an interpolation at target between the measured days
// before and after. It is the weaker of the span grade and the grade of the
// distance to the nearest bracket, so it never rises as either grows.
func confidenceFor(before, target, after domain.Day) Confidence {
	span := domain.DaysBetween(before, after)
	nearest := min(domain.DaysBetween(before, target), domain.DaysBetween(target, after))

	bySpan := bucket(span, spanLimits)
	byNearest := bucket(nearest, nearestLimits)
	if bySpan.Rank() < byNearest.Rank() {
		return bySpan
	}
	return byNearest
}

// lerp interpolates linearly over elapsed days, not over entry positions.
func lerp(v0, v1 float64, d0, d, d1 domain.Day) float64 {
	total := domain.DaysBetween(d0, d1)
	if total == 0 {
		return v0
	}
	ratio := float64(domain.DaysBetween(d0, d)) / float64(total)
	return v0 + (v1-v0)*ratio
}
