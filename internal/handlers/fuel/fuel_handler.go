// internal/handlers/fuel/fuel_handler.go
package fuel

import (
	"net/http"
	"strconv"
	"time"

	"flota-service/internal/domain/fuel"
	"flota-service/internal/pkg/response"
	fuelsvc "flota-service/internal/service/fuel"

	"github.com/gin-gonic/gin"
)

type FuelHandler struct {
	svc *fuelsvc.FuelService
}

func NewFuelHandler(svc *fuelsvc.FuelService) *FuelHandler {
	return &FuelHandler{svc: svc}
}

// Create handles POST /fuel.
func (h *FuelHandler) Create(c *gin.Context) {
	var req fuel.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body", err)
		return
	}

	p, err := h.svc.CreatePurchase(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err, "Failed to create fuel purchase")
		return
	}

	response.Success(c, http.StatusCreated, "Fuel purchase created", p)
}

// List handles GET /fuel with optional date_from and date_to query filters.
func (h *FuelHandler) List(c *gin.Context) {
	var f fuel.Filters

	if s := c.Query("date_from"); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			response.ValidationError(c, "Invalid date_from", err)
			return
		}
		f.DateFrom = &d
	}
	if s := c.Query("date_to"); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			response.ValidationError(c, "Invalid date_to", err)
			return
		}
		f.DateTo = &d
	}

	purchases, err := h.svc.ListPurchases(c.Request.Context(), f)
	if err != nil {
		response.FromError(c, err, "Failed to list fuel purchases")
		return
	}

	response.Success(c, http.StatusOK, "Fuel purchases retrieved", purchases)
}

// Delete handles DELETE /fuel/:id.
func (h *FuelHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "Invalid id", err)
		return
	}

	if err := h.svc.DeletePurchase(c.Request.Context(), id); err != nil {
		response.FromError(c, err, "Failed to delete fuel purchase")
		return
	}

	response.Success(c, http.StatusOK, "Fuel purchase deleted", nil)
}
