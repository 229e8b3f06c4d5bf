package entity

import "time"

// Session es el estado persistido de una sesión de navegador: los tokens del
// backend ERP más el blob de usuario/permisos tal como lo devolvió el login.
// Se escribe una vez al iniciar sesión y se borra ante logout o un 401 del
// backend. El blob se relee en cada operación que lo necesite; la fila en
// PostgreSQL es la única fuente (varias pestañas comparten la misma sesión).
type Session struct {
	ID           string
	UserID       string
	CompanyID    string
	AccessToken  string
	RefreshToken string
	UserBlob     []byte // JSON: usuario + rol + cargo + permisos + módulos accesibles
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// Expired informa si la sesión ya venció.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
