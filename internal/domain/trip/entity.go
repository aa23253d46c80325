package trip

import "time"

// Trip is one journey record. A null HoraFin means the trip is in progress.
// Closed trips are immutable history.
type Trip struct {
	ID                 int64      `json:"id" db:"id"`
	ConductorID        int64      `json:"conductor_id" db:"conductor_id"`
	VehiculoID         int64      `json:"vehiculo_id" db:"vehiculo_id"`
	Fecha              time.Time  `json:"fecha" db:"fecha"`
	HoraInicio         time.Time  `json:"hora_inicio" db:"hora_inicio"`
	HoraFin            *time.Time `json:"hora_fin,omitempty" db:"hora_fin"`
	KilometrajeInicio  *int       `json:"kilometraje_inicio,omitempty" db:"kilometraje_inicio"`
	KilometrajeFin     *int       `json:"kilometraje_fin,omitempty" db:"kilometraje_fin"`
	UbicacionInicioTxt *string    `json:"ubicacion_inicio_txt,omitempty" db:"ubicacion_inicio_txt"`
	UbicacionFinTxt    *string    `json:"ubicacion_fin_txt,omitempty" db:"ubicacion_fin_txt"`
}

// InProgress reports whether the trip has not been closed yet.
func (t *Trip) InProgress() bool {
	return t.HoraFin == nil
}

// Distance returns the derived distance when both odometer readings are
// present. The second return is false when it cannot be computed.
func (t *Trip) Distance() (int, bool) {
	if t.KilometrajeInicio == nil || t.KilometrajeFin == nil {
		return 0, false
	}
	return *t.KilometrajeFin - *t.KilometrajeInicio, true
}

// DistanceOrZero returns the derived distance, or 0 when it cannot be
// computed. Report totals use this; dashboard totals do not.
func (t *Trip) DistanceOrZero() int {
	d, ok := t.Distance()
	if !ok {
		return 0
	}
	return d
}
