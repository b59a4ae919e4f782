package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/dashboard"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/export"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ExportHandler interface {
	// Download renders the currently displayed rows in the requested format
	Download(w http.ResponseWriter, r *http.Request)
}

type exportHandlerImpl struct {
	dashboardService dashboard.DashboardService
	exportService    export.ExportService
}

func NewExportHandler(dashboardService dashboard.DashboardService, exportService export.ExportService) ExportHandler {
	return &exportHandlerImpl{
		dashboardService: dashboardService,
		exportService:    exportService,
	}
}

// Download handles GET /exports/{format}
func (h *exportHandlerImpl) Download(w http.ResponseWriter, r *http.Request) {
	f, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req, err := parseDashboardRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	view, err := h.dashboardService.Current(r.Context(), getUserIDFromContext(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	file, err := h.exportService.Export(r.Context(), view.Rows, f, export.DocumentHeader{
		CompanyName: view.CompanyName,
		CompanyID:   view.CompanyID,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Data)
}
