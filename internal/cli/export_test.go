package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapthttp "logyourbody/internal/adapter/http"
	"logyourbody/internal/adapter/memory"
	"logyourbody/internal/app"
)

func post(t *testing.T, url string, body any) {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestServiceExportFeedsTimelineCommand(t *testing.T) {
	db := memory.New()
	profiles := app.NewProfileService(db)
	srv := adapthttp.New(adapthttp.Services{
		Auth:     app.NewAuthService(db, db.NewSessionRepo()),
		Metrics:  app.NewMetricService(db, profiles),
		Photos:   app.NewPhotoService(db),
		Profiles: profiles,
		Timeline: app.NewTimelineService(db, db, profiles, nil),
		Export:   app.NewExportService(db, db, profiles),
	}, adapthttp.OIDCConfig{}, nil, nil).WithoutAuth()
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	post(t, ts.URL+"/api/metrics", map[string]any{"date": "2024-01-01", "weight": 80, "weightUnit": "kg", "bodyFatPercentage": 20})
	post(t, ts.URL+"/api/metrics", map[string]any{"date": "2024-01-11", "weight": 78, "weightUnit": "kg", "bodyFatPercentage": 18})
	post(t, ts.URL+"/api/photos", map[string]any{"date": "2024-01-06", "photoUrl": "u/1/front.jpg", "viewType": "front"})

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/profile", bytes.NewReader([]byte(`{"heightCm": 180}`)))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/api/export?format=json")
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	require.Equal(t, http.StatusOK, resp.StatusCode)

	export, err := readExport(resp.Body, "-")
	require.NoError(t, err)
	assert.Equal(t, 180.0, export.HeightCm)
	require.Len(t, export.Metrics, 2)
	require.Len(t, export.Photos, 1)
	assert.Equal(t, "u/1/front.jpg", export.Photos[0].PhotoURL)
}
