package adapthttp

import "net/http"

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, errUnauthorized)
		return
	}
	items, err := s.timeline.Timeline(r.Context(), userID, r.URL.Query().Get("unit"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}
