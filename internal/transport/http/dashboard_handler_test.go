package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fbmetrics/internal/analytics"
	"fbmetrics/internal/errors"
)

// stubService is a canned-response DashboardServiceInterface
type stubService struct {
	projects []string
	summary  *analytics.DashboardSummary
	report   string
	workbook []byte
	err      error
}

func (s *stubService) ListProjects(ctx context.Context) ([]string, error) {
	return s.projects, s.err
}

func (s *stubService) Summary(ctx context.Context, project string) (*analytics.DashboardSummary, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.summary, nil
}

func (s *stubService) ReportText(ctx context.Context, project string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.report, nil
}

func (s *stubService) ExportWorkbook(ctx context.Context, project string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.workbook, nil
}

func serve(t *testing.T, service DashboardServiceInterface, target string) *httptest.ResponseRecorder {
	t.Helper()
	handler := NewDashboardHandler(service, nil)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)
	return rec
}

func TestDashboardHandler_ListProjects(t *testing.T) {
	rec := serve(t, &stubService{projects: []string{"myapp", "otherapp"}}, "/projects")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Projects []string `json:"projects"`
		Count    int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"myapp", "otherapp"}, body.Projects)
	assert.Equal(t, 2, body.Count)
}

func TestDashboardHandler_GetSummary(t *testing.T) {
	summary := &analytics.DashboardSummary{
		Project: "myapp",
		Events:  []analytics.AnalyticsEvent{{Name: "user_login", Count: 40}},
	}

	rec := serve(t, &stubService{summary: summary}, "/projects/myapp/summary")

	require.Equal(t, http.StatusOK, rec.Code)

	var body analytics.DashboardSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "myapp", body.Project)
	require.Len(t, body.Events, 1)
	assert.Equal(t, "user_login", body.Events[0].Name)
}

func TestDashboardHandler_GetSummary_NotFound(t *testing.T) {
	rec := serve(t, &stubService{err: errors.NewNotFoundError("dataset folder")},
		"/projects/unknown/summary")

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		ErrorCode string `json:"error_code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "NOT_FOUND", body.ErrorCode)
}

func TestDashboardHandler_GetSummary_ParseFailure(t *testing.T) {
	rec := serve(t, &stubService{err: errors.NewParsingError("missing date metadata", nil)},
		"/projects/myapp/summary")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestDashboardHandler_GetReport(t *testing.T) {
	rec := serve(t, &stubService{report: "USAGE REPORT\nField,Value\n"}, "/projects/myapp/report")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, rec.Body.String(), "USAGE REPORT")
}

func TestDashboardHandler_Export(t *testing.T) {
	rec := serve(t, &stubService{workbook: []byte{'P', 'K', 3, 4}}, "/projects/myapp/export")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "myapp_usage_report.xlsx")
	assert.Equal(t, []byte{'P', 'K', 3, 4}, rec.Body.Bytes())
}

func TestDashboardHandler_ProjectValidation(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{name: "parent traversal", target: "/projects/../summary"},
		{name: "encoded traversal", target: "/projects/..%2Fsecrets/summary"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &stubService{}, tt.target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHealthHandler(t *testing.T) {
	handler := NewHealthHandler("1.2.3")
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	handler.Healthz(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status  string `json:"status"`
		Version string `json:"version"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "1.2.3", body.Version)
}
