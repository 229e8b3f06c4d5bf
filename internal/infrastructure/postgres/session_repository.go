package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tu-usuario/gestion-backoffice/internal/domain/entity"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// Querier abstrae pool o tx de pgx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SessionRepo implementación de SessionRepository sobre PostgreSQL.
type SessionRepo struct {
	q Querier
}

// NewSessionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSessionRepository(q Querier) *SessionRepo {
	return &SessionRepo{q: q}
}

// Create persiste una nueva sesión.
func (r *SessionRepo) Create(ctx context.Context, s *entity.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, company_id, access_token, refresh_token, user_blob, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.UserID, s.CompanyID, s.AccessToken, s.RefreshToken, s.UserBlob,
		s.CreatedAt, s.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// GetByID obtiene una sesión por ID. Devuelve (nil, nil) si no existe.
func (r *SessionRepo) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	query := `
		SELECT id, user_id, company_id, access_token, refresh_token, user_blob, created_at, expires_at
		FROM sessions WHERE id = $1`
	var s entity.Session
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.UserID, &s.CompanyID, &s.AccessToken, &s.RefreshToken, &s.UserBlob,
		&s.CreatedAt, &s.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &s, nil
}

// UpdateTokens reemplaza los tokens del backend tras un refresh.
func (r *SessionRepo) UpdateTokens(ctx context.Context, id, accessToken, refreshToken string) error {
	query := `UPDATE sessions SET access_token = $2, refresh_token = $3 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, accessToken, refreshToken)
	if err != nil {
		return fmt.Errorf("update session tokens: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update session tokens: sesión %s no existe", id)
	}
	return nil
}

// Delete elimina la sesión (logout o 401 del backend). Borrar una sesión
// inexistente no es error.
func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired barre las sesiones vencidas y devuelve cuántas borró.
func (r *SessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM sessions WHERE expires_at < now()`)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
