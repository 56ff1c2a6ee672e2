package entity

import "time"

// Roles con permisos de escritura sobre productos.
const (
	RoleAdmin            = "Admin"
	RoleWarehouseManager = "Warehouse_Manager"
)

// UnknownUser nombre usado en el diario cuando el token no trae username.
const UnknownUser = "Unknown User"

// Identity datos del operador leídos del token de sesión.
// Username es el código de empleado (employee_id en órdenes y ERP).
type Identity struct {
	Username  string    `json:"username"`
	FullName  string    `json:"fullname"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
	Token     string    `json:"-"`
}

// Expired true cuando exp ya pasó. Un token sin exp nunca expira.
func (i Identity) Expired(now time.Time) bool {
	if i.ExpiresAt.IsZero() {
		return false
	}
	return now.After(i.ExpiresAt)
}

// Remaining tiempo restante de sesión (0 si expiró).
func (i Identity) Remaining(now time.Time) time.Duration {
	if i.ExpiresAt.IsZero() {
		return 0
	}
	d := i.ExpiresAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// CanManageProducts roles que pueden crear, editar o borrar productos.
func (i Identity) CanManageProducts() bool {
	return i.Role == RoleAdmin || i.Role == RoleWarehouseManager
}

// LogName nombre a registrar en el diario de actividad.
func (i Identity) LogName() string {
	if i.Username == "" {
		return UnknownUser
	}
	return i.Username
}
