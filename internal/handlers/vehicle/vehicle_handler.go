// internal/handlers/vehicle/vehicle_handler.go
package vehicle

import (
	"fmt"
	"net/http"
	"strconv"

	"flota-service/internal/domain/vehicle"
	"flota-service/internal/pkg/response"
	vehiclesvc "flota-service/internal/service/vehicle"

	"github.com/gin-gonic/gin"
)

type VehicleHandler struct {
	svc *vehiclesvc.VehicleService
}

func NewVehicleHandler(svc *vehiclesvc.VehicleService) *VehicleHandler {
	return &VehicleHandler{svc: svc}
}

// Create handles POST /vehicles.
func (h *VehicleHandler) Create(c *gin.Context) {
	var req vehicle.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body", err)
		return
	}

	v, err := h.svc.CreateVehicle(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err, "Failed to create vehicle")
		return
	}

	response.Success(c, http.StatusCreated, "Vehicle created", v)
}

// List handles GET /vehicles.
func (h *VehicleHandler) List(c *gin.Context) {
	vehicles, err := h.svc.ListVehicles(c.Request.Context())
	if err != nil {
		response.FromError(c, err, "Failed to list vehicles")
		return
	}

	response.Success(c, http.StatusOK, "Vehicles retrieved", vehicles)
}

// Get handles GET /vehicles/:id.
func (h *VehicleHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	v, err := h.svc.GetVehicle(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err, "Failed to retrieve vehicle")
		return
	}

	response.Success(c, http.StatusOK, "Vehicle retrieved", v)
}

// Delete handles DELETE /vehicles/:id. Vehicles with history cannot be
// deleted.
func (h *VehicleHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteVehicle(c.Request.Context(), id); err != nil {
		response.FromError(c, err, "Failed to delete vehicle")
		return
	}

	response.Success(c, http.StatusOK, "Vehicle deleted", nil)
}

// AssignDriver handles PUT /vehicles/:id/driver. A null conductor_id clears
// the assignment. When the reassignment frees another vehicle, the response
// carries a warning naming it.
func (h *VehicleHandler) AssignDriver(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req vehicle.AssignDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body", err)
		return
	}

	freed, err := h.svc.AssignDriver(c.Request.Context(), id, req.ConductorID)
	if err != nil {
		response.FromError(c, err, "Failed to assign driver")
		return
	}

	if freed != nil {
		warning := fmt.Sprintf("vehicle %s was freed from its previous driver", freed.Patente)
		response.SuccessWithWarning(c, http.StatusOK, "Driver assigned", warning, freed)
		return
	}

	response.Success(c, http.StatusOK, "Driver assigned", nil)
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "Invalid id", err)
		return 0, false
	}
	return id, true
}
