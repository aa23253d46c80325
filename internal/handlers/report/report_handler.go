// internal/handlers/report/report_handler.go
package report

import (
	"net/http"
	"strconv"
	"time"

	"flota-service/internal/pkg/jwt"
	"flota-service/internal/pkg/response"
	reportsvc "flota-service/internal/service/report"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	svc *reportsvc.ReportService
}

func NewReportHandler(svc *reportsvc.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// Dashboard handles GET /dashboard. Stored dates are UTC, so the day
// reference is too.
func (h *ReportHandler) Dashboard(c *gin.Context) {
	d, err := h.svc.Dashboard(c.Request.Context(), time.Now().UTC())
	if err != nil {
		response.FromError(c, err, "Failed to build dashboard")
		return
	}

	response.Success(c, http.StatusOK, "Dashboard retrieved", d)
}

// Report handles GET /reports with optional date_from, date_to and
// conductor_id query filters.
func (h *ReportHandler) Report(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		response.ValidationError(c, "Invalid filters", err)
		return
	}

	r, err := h.svc.Report(c.Request.Context(), filters)
	if err != nil {
		response.FromError(c, err, "Failed to build report")
		return
	}

	response.Success(c, http.StatusOK, "Report retrieved", r)
}

// FuelStats handles GET /reports/fuel.
func (h *ReportHandler) FuelStats(c *gin.Context) {
	stats, err := h.svc.FuelStats(c.Request.Context())
	if err != nil {
		response.FromError(c, err, "Failed to build fuel stats")
		return
	}

	response.Success(c, http.StatusOK, "Fuel stats retrieved", stats)
}

// Export handles GET /reports/export and streams the rendered report.
func (h *ReportHandler) Export(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		response.ValidationError(c, "Invalid filters", err)
		return
	}

	var identityID int64
	if v, exists := c.Get("claims"); exists {
		if claims, ok := v.(*jwt.Claims); ok {
			identityID = claims.IdentityID
		}
	}

	out, contentType, err := h.svc.Export(c.Request.Context(), filters, identityID)
	if err != nil {
		response.FromError(c, err, "Failed to export report")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="reporte-flota.html"`)
	c.Data(http.StatusOK, contentType, out)
}

func parseFilters(c *gin.Context) (reportsvc.Filters, error) {
	var f reportsvc.Filters

	if s := c.Query("date_from"); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return f, err
		}
		f.DateFrom = &d
	}
	if s := c.Query("date_to"); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return f, err
		}
		f.DateTo = &d
	}
	if s := c.Query("conductor_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return f, err
		}
		f.ConductorID = &id
	}

	return f, nil
}
