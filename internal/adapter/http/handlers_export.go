package adapthttp

import (
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"logyourbody/internal/app"
)

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, errUnauthorized)
		return
	}
	format, err := app.ParseExportFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	export, err := s.exports.Export(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	filename := fmt.Sprintf("logyourbody-export-%s.%s", export.ExportedAt.Format("2006-01-02"), format)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if format == app.ExportJSON {
		writeJSON(w, http.StatusOK, export)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := export.WriteCSV(w); err != nil {
		log.WithField("request_id", requestID(r)).Errorf("write csv export: %s", err)
	}
}
