package driver

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin         Role = "ADMIN"
	RoleConductor     Role = "CONDUCTOR"
	RoleDeshabilitado Role = "DESHABILITADO"
)

// Driver represents a user record. ADMIN users share the table but are
// excluded from driver listings and can never hold a vehicle.
type Driver struct {
	ID            int64     `json:"id" db:"id"`
	Nombre        string    `json:"nombre" db:"nombre"`
	RUT           string    `json:"rut" db:"rut"`
	Correo        string    `json:"correo" db:"correo"`
	Telefono      *string   `json:"telefono,omitempty" db:"telefono"`
	PINHash       string    `json:"-" db:"pin_hash"`
	Rol           Role      `json:"rol" db:"rol"`
	FechaCreacion time.Time `json:"fecha_creacion" db:"fecha_creacion"`
}

// NormalizeRole upper-cases and trims a role string. Applied on every write.
func NormalizeRole(s string) Role {
	return Role(strings.ToUpper(strings.TrimSpace(s)))
}

// Valid reports whether the role is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleConductor, RoleDeshabilitado:
		return true
	}
	return false
}

// CanDrive reports whether this driver may be assigned a vehicle.
func (d *Driver) CanDrive() bool {
	return d.Rol == RoleConductor
}
