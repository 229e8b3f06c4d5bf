package repository

import (
	"context"

	"github.com/tu-usuario/gestion-backoffice/internal/domain/entity"
)

// SessionRepository persistencia de sesiones de navegador.
// Devuelve (nil, nil) cuando la sesión no existe.
type SessionRepository interface {
	Create(ctx context.Context, s *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	UpdateTokens(ctx context.Context, id, accessToken, refreshToken string) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
