// internal/handlers/driver/driver_handler.go
package driver

import (
	"net/http"
	"strconv"

	"flota-service/internal/domain/driver"
	"flota-service/internal/pkg/response"
	driversvc "flota-service/internal/service/driver"

	"github.com/gin-gonic/gin"
)

type DriverHandler struct {
	svc *driversvc.DriverService
}

func NewDriverHandler(svc *driversvc.DriverService) *DriverHandler {
	return &DriverHandler{svc: svc}
}

// Create handles POST /drivers.
func (h *DriverHandler) Create(c *gin.Context) {
	var req driver.CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body", err)
		return
	}

	d, err := h.svc.CreateDriver(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err, "Failed to create driver")
		return
	}

	response.Success(c, http.StatusCreated, "Driver created", d)
}

// List handles GET /drivers. ADMIN users never appear in the listing.
func (h *DriverHandler) List(c *gin.Context) {
	drivers, err := h.svc.ListDrivers(c.Request.Context())
	if err != nil {
		response.FromError(c, err, "Failed to list drivers")
		return
	}

	response.Success(c, http.StatusOK, "Drivers retrieved", drivers)
}

// Get handles GET /drivers/:id.
func (h *DriverHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	d, err := h.svc.GetDriver(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err, "Failed to retrieve driver")
		return
	}

	response.Success(c, http.StatusOK, "Driver retrieved", d)
}

// Disable handles POST /drivers/:id/disable. Any held vehicle is freed in
// the same transaction.
func (h *DriverHandler) Disable(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.svc.DisableDriver(c.Request.Context(), id); err != nil {
		response.FromError(c, err, "Failed to disable driver")
		return
	}

	response.Success(c, http.StatusOK, "Driver disabled", nil)
}

// Delete handles DELETE /drivers/:id.
func (h *DriverHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteDriver(c.Request.Context(), id); err != nil {
		response.FromError(c, err, "Failed to delete driver")
		return
	}

	response.Success(c, http.StatusOK, "Driver deleted", nil)
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "Invalid id", err)
		return 0, false
	}
	return id, true
}
