// Package authz evalúa el conjunto de permisos del usuario en sesión.
// Todas las lecturas son síncronas y derivan del blob JSON que devolvió el
// login: se re-parsea en cada consulta relevante, sin cachear entre llamadas.
package authz

import (
	"encoding/json"
	"fmt"
)

// ModuleAll es el centinela en accessible_modules que concede acceso a
// cualquier módulo.
const ModuleAll = "all"

// Roles conocidos del backend ERP.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

// PermissionSet es la proyección de autorización del blob de usuario:
// rol, cargo, permisos nominales y módulos accesibles.
type PermissionSet struct {
	Role              string          `json:"role"`
	Cargo             string          `json:"cargo"`
	Permissions       map[string]bool `json:"permissions"`
	AccessibleModules []string        `json:"accessible_modules"`
}

// Parse construye el PermissionSet desde el blob de usuario de la sesión.
func Parse(userBlob []byte) (PermissionSet, error) {
	var set PermissionSet
	if len(userBlob) == 0 {
		return set, fmt.Errorf("authz: blob de usuario vacío")
	}
	if err := json.Unmarshal(userBlob, &set); err != nil {
		return set, fmt.Errorf("authz: blob de usuario inválido: %w", err)
	}
	return set, nil
}

// HasPermission informa si el permiso nominal está concedido.
func (s PermissionSet) HasPermission(name string) bool {
	return s.Permissions[name]
}

// HasAnyPermission informa si alguno de los permisos está concedido.
func (s PermissionSet) HasAnyPermission(names ...string) bool {
	for _, n := range names {
		if s.Permissions[n] {
			return true
		}
	}
	return false
}

// CanAccessModule informa si el usuario puede entrar al módulo. Devuelve true
// incondicionalmente si la lista contiene el centinela "all".
func (s PermissionSet) CanAccessModule(key string) bool {
	for _, m := range s.AccessibleModules {
		if m == ModuleAll || m == key {
			return true
		}
	}
	return false
}

// IsAdmin informa si el rol es admin o superadmin.
func (s PermissionSet) IsAdmin() bool {
	return s.Role == RoleAdmin || s.Role == RoleSuperAdmin
}

// IsSuperAdmin informa si el rol es superadmin.
func (s PermissionSet) IsSuperAdmin() bool {
	return s.Role == RoleSuperAdmin
}

// UserRole devuelve el rol, o "" si el blob no lo traía.
func (s PermissionSet) UserRole() string {
	return s.Role
}
