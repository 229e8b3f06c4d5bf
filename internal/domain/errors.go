package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los adaptadores HTTP y del
// backend ERP traducen hacia y desde estos centinelas.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthenticated    = errors.New("sesión no autenticada")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrSessionExpired     = errors.New("sesión expirada")
	ErrBackendUnavailable = errors.New("el backend ERP no está disponible")
)
