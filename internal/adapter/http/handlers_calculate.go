package adapthttp

import (
	"net/http"

	"logyourbody/internal/bodycomp"
	"logyourbody/internal/domain"
)

// The calculators are stateless and need no session.

type bodyFatResult struct {
	BodyFatPercentage float64                  `json:"bodyFatPercentage"`
	Category          bodycomp.BodyFatCategory `json:"category"`
}

func (s *Server) handleCalculateNavy(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Gender   domain.Gender `json:"gender"`
		WaistCm  float64       `json:"waistCm"`
		NeckCm   float64       `json:"neckCm"`
		HeightCm float64       `json:"heightCm"`
		HipCm    float64       `json:"hipCm,omitempty"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	bf, err := bodycomp.NavyBodyFat(req.Gender, req.WaistCm, req.NeckCm, req.HeightCm, req.HipCm)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bodyFatResult{BodyFatPercentage: bf, Category: bodycomp.Category(bf, req.Gender)})
}

func (s *Server) handleCalculateThreeSite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Gender    domain.Gender      `json:"gender"`
		Age       int                `json:"age"`
		Skinfolds bodycomp.Skinfolds `json:"skinfolds"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	bf, err := bodycomp.ThreeSiteBodyFat(req.Gender, req.Age, req.Skinfolds)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bodyFatResult{BodyFatPercentage: bf, Category: bodycomp.Category(bf, req.Gender)})
}

func (s *Server) handleCalculateSevenSite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Gender    domain.Gender               `json:"gender"`
		Age       int                         `json:"age"`
		Skinfolds bodycomp.SevenSiteSkinfolds `json:"skinfolds"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	bf, err := bodycomp.SevenSiteBodyFat(req.Gender, req.Age, req.Skinfolds)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bodyFatResult{BodyFatPercentage: bf, Category: bodycomp.Category(bf, req.Gender)})
}

func (s *Server) handleCalculateFFMI(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Weight            float64       `json:"weight"`
		WeightUnit        string        `json:"weightUnit"`
		HeightCm          float64       `json:"heightCm"`
		BodyFatPercentage float64       `json:"bodyFatPercentage"`
		Gender            domain.Gender `json:"gender,omitempty"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	unit, err := domain.ParseWeightUnit(req.WeightUnit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	weightKg := domain.ConvertWeight(req.Weight, unit, domain.Kilograms)

	res, err := bodycomp.FFMI(weightKg, req.HeightCm, req.BodyFatPercentage)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ffmi":        res,
		"composition": bodycomp.BodyComposition(weightKg, req.BodyFatPercentage, req.Gender),
	})
}
