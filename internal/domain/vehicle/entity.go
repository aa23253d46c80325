package vehicle

import (
	"strings"
	"time"
)

// Vehicle represents a fleet asset identified by its unique plate.
type Vehicle struct {
	ID            int64     `json:"id" db:"id"`
	Patente       string    `json:"patente" db:"patente"`
	Modelo        string    `json:"modelo" db:"modelo"`
	Kilometraje   int       `json:"kilometraje" db:"kilometraje"`
	ConductorID   *int64    `json:"conductor_id,omitempty" db:"conductor_id"`
	Latitud       *float64  `json:"latitud,omitempty" db:"latitud"`
	Longitud      *float64  `json:"longitud,omitempty" db:"longitud"`
	FechaCreacion time.Time `json:"fecha_creacion" db:"fecha_creacion"`
}

// NormalizePlate upper-cases and trims a plate. Applied on create and on
// uniqueness checks. GPS position lookups deliberately use the raw plate;
// see the telemetry service.
func NormalizePlate(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
