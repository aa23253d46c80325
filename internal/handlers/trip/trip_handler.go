// internal/handlers/trip/trip_handler.go
package trip

import (
	"net/http"
	"strconv"
	"time"

	"flota-service/internal/domain/trip"
	"flota-service/internal/pkg/response"
	tripsvc "flota-service/internal/service/trip"

	"github.com/gin-gonic/gin"
)

type TripHandler struct {
	svc *tripsvc.TripService
}

func NewTripHandler(svc *tripsvc.TripService) *TripHandler {
	return &TripHandler{svc: svc}
}

// Start handles POST /trips.
func (h *TripHandler) Start(c *gin.Context) {
	var req trip.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body", err)
		return
	}

	t, err := h.svc.StartTrip(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err, "Failed to start trip")
		return
	}

	response.Success(c, http.StatusCreated, "Trip started", t)
}

// Close handles PUT /trips/:id/close.
func (h *TripHandler) Close(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req trip.CloseTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body", err)
		return
	}

	t, err := h.svc.CloseTrip(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, err, "Failed to close trip")
		return
	}

	response.Success(c, http.StatusOK, "Trip closed", t)
}

// List handles GET /trips with optional date_from, date_to and conductor_id
// query filters.
func (h *TripHandler) List(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		response.ValidationError(c, "Invalid filters", err)
		return
	}

	trips, err := h.svc.ListTrips(c.Request.Context(), filters)
	if err != nil {
		response.FromError(c, err, "Failed to list trips")
		return
	}

	response.Success(c, http.StatusOK, "Trips retrieved", trips)
}

// Delete handles DELETE /trips/:id.
func (h *TripHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteTrip(c.Request.Context(), id); err != nil {
		response.FromError(c, err, "Failed to delete trip")
		return
	}

	response.Success(c, http.StatusOK, "Trip deleted", nil)
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "Invalid id", err)
		return 0, false
	}
	return id, true
}

func parseFilters(c *gin.Context) (trip.Filters, error) {
	var f trip.Filters

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
