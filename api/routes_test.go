package api_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreybb/glucolog/api"
	"github.com/coreybb/glucolog/chart"
	"github.com/coreybb/glucolog/datastore"
	rh "github.com/coreybb/glucolog/route-handlers"
	"github.com/coreybb/glucolog/web"
)

func newTestApp(t *testing.T) *httptest.Server {
	t.Helper()

	repo := datastore.NewReadingRepository(filepath.Join(t.TempDir(), "sugar_history.csv"))
	readingHandler := rh.NewReadingHandler(repo, 10)
	pageHandler, err := web.NewPageHandler(repo, chart.NewTrendRenderer(), 7, 10)
	require.NoError(t, err)

	srv := httptest.NewServer(api.SetupRoutes(readingHandler, pageHandler))
	t.Cleanup(srv.Close)
	return srv
}

func TestHealthCheck(t *testing.T) {
	srv := newTestApp(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "OK", string(body))
}

func TestDashboardRoundTrip(t *testing.T) {
	srv := newTestApp(t)

	// Empty dashboard.
	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Submit two readings through the form.
	for _, value := range []string{"110", "95"} {
		form := url.Values{"value": {value}, "reading_type": {"fasting"}}
		resp, err := http.PostForm(srv.URL+"/", form)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), "Today's Results")
	}

	// The second submission sees the first in its insight.
	resp, err = http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	page := string(body)
	assert.Contains(t, page, "95")
	assert.Contains(t, page, "110")
	assert.Contains(t, page, "/chart.png")

	// And the chart renders.
	resp, err = http.Get(srv.URL + "/chart.png")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
}

func TestAPIAndPageShareHistory(t *testing.T) {
	srv := newTestApp(t)

	form := url.Values{"value": {"150"}, "reading_type": {"post_dinner"}}
	resp, err := http.PostForm(srv.URL+"/", form)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/readings")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"post_dinner"`)
	assert.Contains(t, string(body), `"BORDERLINE"`) // 150 post-dinner
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestApp(t)

	resp, err := http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPIErrorEnvelope(t *testing.T) {
	srv := newTestApp(t)

	resp, err := http.Post(srv.URL+"/api/readings", "application/json", strings.NewReader(`{"value": 100}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"error"`)
}
