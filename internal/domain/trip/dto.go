package trip

import "time"

// CreateTripRequest starts a new trip for a driver and vehicle.
type CreateTripRequest struct {
	ConductorID        int64   `json:"conductor_id" binding:"required"`
	VehiculoID         int64   `json:"vehiculo_id" binding:"required"`
	Fecha              string  `json:"fecha" binding:"required"` // YYYY-MM-DD
	HoraInicio         string  `json:"hora_inicio" binding:"required"`
	KilometrajeInicio  *int    `json:"kilometraje_inicio"`
	UbicacionInicioTxt *string `json:"ubicacion_inicio_txt"`
}

// CloseTripRequest ends an in-progress trip.
type CloseTripRequest struct {
	HoraFin         string  `json:"hora_fin" binding:"required"`
	KilometrajeFin  *int    `json:"kilometraje_fin"`
	UbicacionFinTxt *string `json:"ubicacion_fin_txt"`
}

// Filters restricts trip listings. Date bounds are inclusive.
type Filters struct {
	DateFrom    *time.Time
	DateTo      *time.Time
	ConductorID *int64
}
