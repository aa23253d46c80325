package driver

// CreateDriverRequest for registering a new driver. Role is fixed to
// CONDUCTOR by the service; it is not accepted from the caller.
type CreateDriverRequest struct {
	Nombre   string `json:"nombre" binding:"required"`
	RUT      string `json:"rut" binding:"required"`
	Correo   string `json:"correo" binding:"required,email"`
	Telefono string `json:"telefono"`
	PIN      string `json:"pin" binding:"required,min=4"`
}

// DriverInfo is the listing view of a driver, without credential material.
type DriverInfo struct {
	ID            int64   `json:"id"`
	Nombre        string  `json:"nombre"`
	RUT           string  `json:"rut"`
	Correo        string  `json:"correo"`
	Telefono      *string `json:"telefono,omitempty"`
	Rol           Role    `json:"rol"`
	FechaCreacion string  `json:"fecha_creacion"`
}
