package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "fbmetrics/internal/errors"
)

// DashboardHandler exposes the analytics summary pipeline over HTTP
type DashboardHandler struct {
	service  DashboardServiceInterface
	logger   *slog.Logger
	validate *validator.Validate
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger) *DashboardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardHandler{
		service:  service,
		logger:   logger.With(slog.String("component", "dashboard_handler")),
		validate: validator.New(),
	}
}

// Routes returns the dashboard routes
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/projects", h.ListProjects)

	r.Route("/projects/{project}", func(r chi.Router) {
		r.Use(h.ProjectCtx)
		r.Get("/summary", h.GetSummary)
		r.Get("/report", h.GetReport)
		r.Get("/export", h.Export)
	})

	return r
}

// ProjectCtx validates the project URL parameter before any pipeline work
func (h *DashboardHandler) ProjectCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		project := chi.URLParam(r, "project")

		// Folder names only: no separators, no parent traversal.
		if err := h.validate.Var(project, "required,max=128"); err != nil {
			h.renderError(w, r, apierrors.NewValidationError("invalid project name"))
			return
		}
		if strings.ContainsAny(project, `/\`) || strings.Contains(project, "..") {
			h.renderError(w, r, apierrors.NewValidationError("invalid project name"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ListProjects handles GET /projects
func (h *DashboardHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.ListProjects(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"projects": projects,
		"count":    len(projects),
	})
}

// GetSummary handles GET /projects/{project}/summary
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	project := chi.URLParam(r, "project")

	summary, err := h.service.Summary(r.Context(), project)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	render.JSON(w, r, summary)
}

// GetReport handles GET /projects/{project}/report as plain text
func (h *DashboardHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	project := chi.URLParam(r, "project")

	text, err := h.service.ReportText(r.Context(), project)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

// Export handles GET /projects/{project}/export as an xlsx download
func (h *DashboardHandler) Export(w http.ResponseWriter, r *http.Request) {
	project := chi.URLParam(r, "project")

	data, err := h.service.ExportWorkbook(r.Context(), project)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	w.Header().Set("Content-Type",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s_usage_report.xlsx"`, project))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// renderError maps pipeline errors onto JSON responses
func (h *DashboardHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := apierrors.ToAPIError(err)

	if apiErr.StatusCode >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
	} else {
		h.logger.WarnContext(r.Context(), "request rejected",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
	}

	if renderErr := render.Render(w, r, apiErr); renderErr != nil {
		http.Error(w, apiErr.Message, apiErr.StatusCode)
	}
}
