package fuel

import "time"

// Purchase is one fuel transaction tied to a vehicle. Fuel purchases carry
// no driver reference; reports derive the link through trips.
type Purchase struct {
	ID         int64     `json:"id" db:"id"`
	VehiculoID int64     `json:"vehiculo_id" db:"vehiculo_id"`
	Litros     float64   `json:"litros" db:"litros"`
	CostoTotal float64   `json:"costo_total" db:"costo_total"`
	Fecha      time.Time `json:"fecha" db:"fecha"`
	Hora       time.Time `json:"hora" db:"hora"`
}
