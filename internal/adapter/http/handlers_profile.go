package adapthttp

import (
	"net/http"

	"logyourbody/internal/domain"
)

type profileRequest struct {
	// Height is in HeightUnit; HeightCm wins when both are set.
	Height      *float64          `json:"height,omitempty"`
	HeightCm    *float64          `json:"heightCm,omitempty"`
	Gender      domain.Gender     `json:"gender,omitempty"`
	DateOfBirth *domain.Day       `json:"dateOfBirth,omitempty"`
	WeightUnit  domain.WeightUnit `json:"weightUnit,omitempty"`
	HeightUnit  domain.HeightUnit `json:"heightUnit,omitempty"`
}

func (p profileRequest) toProfile() (domain.Profile, error) {
	out := domain.Profile{
		HeightCm:    p.HeightCm,
		Gender:      p.Gender,
		DateOfBirth: p.DateOfBirth,
		WeightUnit:  p.WeightUnit,
		HeightUnit:  p.HeightUnit,
	}
	if out.HeightCm == nil && p.Height != nil {
		unit := p.HeightUnit
		if unit == "" {
			unit = domain.Centimeters
		}
		unit, err := domain.ParseHeightUnit(string(unit))
		if err != nil {
			return out, err
		}
		cm := domain.ConvertLength(*p.Height, unit, domain.Centimeters)
		out.HeightCm = &cm
	}
	return out, nil
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, errUnauthorized)
		return
	}
	p, err := s.profiles.Get(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile": p})
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, errUnauthorized)
		return
	}
	var req profileRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	in, err := req.toProfile()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	p, err := s.profiles.Update(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile": p})
}
