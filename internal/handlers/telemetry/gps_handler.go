// internal/handlers/telemetry/gps_handler.go
package telemetry

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	xerrors "flota-service/internal/pkg/errors"
	telemetrysvc "flota-service/internal/service/telemetry"

	"github.com/gin-gonic/gin"
)

// GPSHandler accepts position reports from tracking devices. The devices
// predate this service and speak their own wire format, so this endpoint
// keeps its own response shape instead of the standard API envelope:
// {"status":"success"} on 200, {"status":"error","message":...} otherwise.
type GPSHandler struct {
	svc          *telemetrysvc.TelemetryService
	deviceTokens map[string]struct{}
}

// NewGPSHandler builds the handler. When deviceTokens is non-empty, requests
// must carry a matching X-Device-Token header.
func NewGPSHandler(svc *telemetrysvc.TelemetryService, deviceTokens []string) *GPSHandler {
	tokens := make(map[string]struct{}, len(deviceTokens))
	for _, t := range deviceTokens {
		if t = strings.TrimSpace(t); t != "" {
			tokens[t] = struct{}{}
		}
	}
	return &GPSHandler{svc: svc, deviceTokens: tokens}
}

// coord accepts a coordinate sent either as a JSON number or as a quoted
// string; different device firmwares do both.
type coord struct {
	value float64
	set   bool
}

func (c *coord) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	c.value = v
	c.set = true
	return nil
}

// gpsPayload is the device report.
type gpsPayload struct {
	Patente  string `json:"patente"`
	Latitud  coord  `json:"latitud"`
	Longitud coord  `json:"longitud"`
}

// Ingest handles POST /api/gps. JSON bodies are tried first; on parse
// failure the same fields are read as form values.
func (h *GPSHandler) Ingest(c *gin.Context) {
	if len(h.deviceTokens) > 0 {
		if _, ok := h.deviceTokens[c.GetHeader("X-Device-Token")]; !ok {
			gpsError(c, http.StatusUnauthorized, "invalid device token")
			return
		}
	}

	patente, lat, lon, err := parseReport(c)
	if err != nil {
		gpsError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Ingest(c.Request.Context(), patente, lat, lon); err != nil {
		switch {
		case xerrors.Is(err, xerrors.ErrInvalidInput):
			gpsError(c, http.StatusBadRequest, "missing plate")
		case xerrors.Is(err, xerrors.ErrNotFound):
			gpsError(c, http.StatusNotFound, "plate "+patente+" not found")
		case xerrors.Is(err, xerrors.ErrRateLimited):
			gpsError(c, http.StatusTooManyRequests, "too many updates")
		default:
			gpsError(c, http.StatusInternalServerError, "internal error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// parseReport reads the body once and tries JSON first, then form encoding,
// since the body cannot be consumed twice.
func parseReport(c *gin.Context) (string, float64, float64, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return "", 0, 0, errInvalidBody
	}

	var p gpsPayload
	if err := json.Unmarshal(raw, &p); err == nil {
		if !p.Latitud.set || !p.Longitud.set {
			return "", 0, 0, errInvalidCoordinates
		}
		return p.Patente, p.Latitud.value, p.Longitud.value, nil
	}

	// Older devices post application/x-www-form-urlencoded.
	values, err := url.ParseQuery(string(raw))
	if err != nil {
		return "", 0, 0, errInvalidBody
	}
	patente := values.Get("patente")
	lat, latErr := strconv.ParseFloat(values.Get("latitud"), 64)
	lon, lonErr := strconv.ParseFloat(values.Get("longitud"), 64)
	if patente == "" && latErr != nil && lonErr != nil {
		return "", 0, 0, errInvalidBody
	}
	if latErr != nil || lonErr != nil {
		return "", 0, 0, errInvalidCoordinates
	}
	return patente, lat, lon, nil
}

func gpsError(c *gin.Context, code int, message string) {
	c.Abort()
	c.JSON(code, gin.H{"status": "error", "message": message})
}

type gpsErr string

func (e gpsErr) Error() string { return string(e) }

const (
	errInvalidBody        = gpsErr("invalid request body")
	errInvalidCoordinates = gpsErr("invalid coordinates")
)
