package fuel

import "time"

// CreatePurchaseRequest registers a fuel purchase. Litros and costo_total
// must both be strictly positive; the service enforces it.
type CreatePurchaseRequest struct {
	VehiculoID int64   `json:"vehiculo_id" binding:"required"`
	Litros     float64 `json:"litros" binding:"required"`
	CostoTotal float64 `json:"costo_total" binding:"required"`
	Fecha      string  `json:"fecha" binding:"required"` // YYYY-MM-DD
	Hora       string  `json:"hora" binding:"required"`
}

// Filters restricts purchase listings. Date bounds are inclusive. When
// VehicleIDs is non-nil, only purchases on those vehicles are returned.
type Filters struct {
	DateFrom   *time.Time
	DateTo     *time.Time
	VehicleIDs []int64
}
