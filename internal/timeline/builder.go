// Package timeline merges body metric and progress photo records into one
// chronological sequence of calendar days and resolves what to display for
// each day. Everything here is pure: results depend only on the arguments.
package timeline

import (
	"slices"
	"time"

	"logyourbody/internal/bodycomp"
	"logyourbody/internal/domain"
)

// Entry is one calendar day that has a measured metric, a photo, or both.
type Entry struct {
	Date   domain.Day           `json:"date"`
	Metric *domain.MetricRecord `json:"metric,omitempty"`
	Photo  *domain.PhotoRecord  `json:"photo,omitempty"`
	// Inferred is set only for photo-only days bracketed by measured days.
	Inferred *InferredData `json:"inferredData,omitempty"`

	// Derived from whichever weight and body fat the day has.
	LeanBodyMassKg *float64 `json:"leanBodyMassKg,omitempty"`
	FFMI           *float64 `json:"ffmi,omitempty"`
	NormalizedFFMI *float64 `json:"normalizedFfmi,omitempty"`
}

// InferredData holds values interpolated from the nearest measured days.
type InferredData struct {
	WeightKg          float64    `json:"weightKg"`
	BodyFatPercentage *float64   `json:"bodyFatPercentage,omitempty"`
	Confidence        Confidence `json:"confidenceLevel"`
	BeforeDate        domain.Day `json:"beforeDate"`
	AfterDate         domain.Day `json:"afterDate"`
}

// Build merges metrics and photos, given in any order, into entries sorted by
// strictly increasing date. Days with neither record are never produced.
//
// When several records share a day, the one modified last wins and equal
// timestamps go to the later position in the input.
//
// Photo-only days between two measured days get interpolated weight and body
// fat; days before the first or after the last measurement are left without.
// heightCm <= 0 means the height is unknown and FFMI stays unset.
func Build(metrics []domain.MetricRecord, photos []domain.PhotoRecord, heightCm float64) []Entry {
	metricAt := latestByDay(metrics, func(m domain.MetricRecord) (domain.Day, time.Time) {
		return m.Date, m.LastModified()
	})
	photoAt := latestByDay(photos, func(p domain.PhotoRecord) (domain.Day, time.Time) {
		return p.Date, p.LastModified()
	})

	days := make([]domain.Day, 0, len(metricAt)+len(photoAt))
	for day := range metricAt {
		days = append(days, day)
	}
	for day := range photoAt {
		if _, ok := metricAt[day]; !ok {
			days = append(days, day)
		}
	}
	slices.Sort(days)

	entries := make([]Entry, len(days))
	for i, day := range days {
		entries[i].Date = day
		if j, ok := metricAt[day]; ok {
			m := cloneMetric(metrics[j])
			entries[i].Metric = &m
		}
		if j, ok := photoAt[day]; ok {
			p := photos[j]
			entries[i].Photo = &p
		}
	}

	interpolate(entries)
	for i := range entries {
		derive(&entries[i], heightCm)
	}
	return entries
}

// latestByDay maps each day to the index of the record that wins that day.
func latestByDay[T any](records []T, key func(T) (domain.Day, time.Time)) map[domain.Day]int {
	out := make(map[domain.Day]int, len(records))
	modified := make(map[domain.Day]time.Time, len(records))
	for i, r := range records {
		day, ts := key(r)
		if _, seen := out[day]; seen && modified[day].After(ts) {
			continue
		}
		out[day] = i
		modified[day] = ts
	}
	return out
}

// cloneMetric copies m so entries never share optional values with the input.
func cloneMetric(m domain.MetricRecord) domain.MetricRecord {
	m.BodyFatPercentage = copyPtr(m.BodyFatPercentage)
	m.LeanBodyMass = copyPtr(m.LeanBodyMass)
	m.FFMI = copyPtr(m.FFMI)
	return m
}

// interpolate fills Inferred for photo-only entries that have a measured
// entry on both sides.
func interpolate(entries []Entry) {
	n := len(entries)
	prev := make([]int, n)
	next := make([]int, n)

	last := -1
	for i := range entries {
		prev[i] = last
		if entries[i].Metric != nil {
			last = i
		}
	}
	last = -1
	for i := n - 1; i >= 0; i-- {
		next[i] = last
		if entries[i].Metric != nil {
			last = i
		}
	}

	for i := range entries {
		e := &entries[i]
		if e.Photo == nil || e.Metric != nil || prev[i] < 0 || next[i] < 0 {
			continue
		}
		before, after := entries[prev[i]].Metric, entries[next[i]].Metric

		inferred := &InferredData{
			WeightKg:   lerp(before.WeightKg(), after.WeightKg(), before.Date, e.Date, after.Date),
			Confidence: confidenceFor(before.Date, e.Date, after.Date),
			BeforeDate: before.Date,
			AfterDate:  after.Date,
		}
		if before.BodyFatPercentage != nil && after.BodyFatPercentage != nil {
			bf := lerp(*before.BodyFatPercentage, *after.BodyFatPercentage, before.Date, e.Date, after.Date)
			inferred.BodyFatPercentage = &bf
		}
		e.Inferred = inferred
	}
}

func derive(e *Entry, heightCm float64) {
	var weightKg float64
	var bodyFat *float64
	switch {
	case e.Metric != nil:
		weightKg, bodyFat = e.Metric.WeightKg(), e.Metric.BodyFatPercentage
	case e.Inferred != nil:
		weightKg, bodyFat = e.Inferred.WeightKg, e.Inferred.BodyFatPercentage
	default:
		return
	}
	if bodyFat == nil || weightKg <= 0 {
		return
	}

	lbm := bodycomp.LeanBodyMass(weightKg, *bodyFat)
	e.LeanBodyMassKg = &lbm

	if heightCm <= 0 {
		return
	}
	res, err := bodycomp.FFMI(weightKg, heightCm, *bodyFat)
	if err != nil {
		return
	}
	e.FFMI = &res.FFMI
	e.NormalizedFFMI = &res.NormalizedFFMI
}
