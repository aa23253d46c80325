package vehicle

// CreateVehicleRequest for registering a new vehicle.
type CreateVehicleRequest struct {
	Patente     string `json:"patente" binding:"required"`
	Modelo      string `json:"modelo" binding:"required"`
	Kilometraje int    `json:"kilometraje" binding:"min=0"`
}

// AssignDriverRequest sets or clears the vehicle's current driver.
// A null conductor_id clears the assignment.
type AssignDriverRequest struct {
	ConductorID *int64 `json:"conductor_id"`
}

// VehicleInfo is the listing view of a vehicle with its current driver name
// resolved, for the back-office tables.
type VehicleInfo struct {
	ID              int64    `json:"id"`
	Patente         string   `json:"patente"`
	Modelo          string   `json:"modelo"`
	Kilometraje     int      `json:"kilometraje"`
	ConductorID     *int64   `json:"conductor_id,omitempty"`
	ConductorNombre *string  `json:"conductor_nombre,omitempty"`
	Latitud         *float64 `json:"latitud,omitempty"`
	Longitud        *float64 `json:"longitud,omitempty"`
}
