package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Faeyinn/lestari.in---beyonder-team/internal/model"
	"github.com/Faeyinn/lestari.in---beyonder-team/internal/service"
	"github.com/Faeyinn/lestari.in---beyonder-team/internal/upstream"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService *service.ReportService
	authService   *service.AuthService
}

func NewReportHandler(reportService *service.ReportService, authService *service.AuthService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		authService:   authService,
	}
}

// Handles GET /reports - the filtered, paginated report list.
// Query params: search, category, status, date_from, date_to, page.
func (h *ReportHandler) List(c *gin.Context) {
	var filters model.FilterState
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page := 1
	if p, err := strconv.Atoi(c.Query("page")); err == nil {
		page = p
	}

	response := h.reportService.List(c.Query("search"), filters, page)

	c.JSON(http.StatusOK, gin.H{
		"loading":     h.reportService.Loading(),
		"reports":     response.Reports,
		"total":       response.Total,
		"page":        response.Page,
		"total_pages": response.TotalPages,
	})
}

// Handles POST /reports/refresh - re-fetches the collection from the
// platform. The stored collection is replaced wholesale; a refresh that got
// superseded by a newer one reports that instead of overwriting its result.
func (h *ReportHandler) Refresh(c *gin.Context) {
	// Best effort: renew a near-expiry access token first. If that fails the
	// fetch below runs with the current token and reports the real error.
	_ = h.authService.EnsureFresh(c.Request.Context())

	if err := h.reportService.Refresh(c.Request.Context()); err != nil {
		switch {
		case errors.Is(err, service.ErrNotAuthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		case errors.Is(err, service.ErrStaleRefresh):
			c.JSON(http.StatusOK, gin.H{"message": "superseded by a newer refresh"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch reports"})
		}
		return
	}

	stats := h.reportService.Stats()
	c.JSON(http.StatusOK, gin.H{
		"message": "Reports refreshed",
		"total":   stats.Total,
	})
}

// Handles GET /reports/stats - the list-page stat cards.
func (h *ReportHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.reportService.Stats())
}

// Handles GET /reports/summary - the dashboard classification counts.
func (h *ReportHandler) Summary(c *gin.Context) {
	c.JSON(http.StatusOK, h.reportService.Summary())
}

// Handles GET /reports/markers - the dashboard map pins.
func (h *ReportHandler) Markers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"markers": h.reportService.Markers()})
}

// Handles GET /reports/:id - single report, detail-context formatting.
func (h *ReportHandler) Detail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return
	}

	report, err := h.reportService.Detail(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// Handles POST /reports/:id/verify - confirms the report on the platform and
// mirrors the new status locally.
func (h *ReportHandler) Verify(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return
	}

	message, err := h.reportService.Verify(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAuthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		case errors.Is(err, service.ErrReportNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		case errors.Is(err, service.ErrAlreadyActioned):
			c.JSON(http.StatusConflict, gin.H{"error": "Laporan sudah ditindaklanjuti."})
		default:
			var apiErr *upstream.APIError
			if errors.As(err, &apiErr) && apiErr.Message != "" {
				c.JSON(http.StatusBadGateway, gin.H{"error": apiErr.Message})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "Gagal memverifikasi laporan."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"status":  model.StatusDiverifikasi,
		"acted":   true,
	})
}

// Handles POST /reports/:id/reject - marks the report rejected for this
// session only; the platform is not told and a refresh reverts it.
func (h *ReportHandler) Reject(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return
	}

	if err := h.reportService.Reject(id); err != nil {
		switch {
		case errors.Is(err, service.ErrReportNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		case errors.Is(err, service.ErrAlreadyActioned):
			c.JSON(http.StatusConflict, gin.H{"error": "Laporan sudah ditindaklanjuti."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Laporan telah ditolak.",
		"status":  model.StatusVerifikasiDitolak,
		"acted":   true,
	})
}
