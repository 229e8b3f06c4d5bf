package dto

import "encoding/json"

// LoginRequest credenciales que se reenvían al backend ERP.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token de sesión propio más el usuario tal como lo devolvió
// el backend. Los tokens del backend nunca viajan al navegador.
type LoginResponse struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user"`
}

// MeResponse usuario y permisos de la sesión vigente.
type MeResponse struct {
	User              json.RawMessage `json:"user"`
	Role              string          `json:"role"`
	AccessibleModules []string        `json:"accessible_modules"`
}
