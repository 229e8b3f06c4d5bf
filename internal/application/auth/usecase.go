// Package auth casos de uso de sesión: login contra el backend ERP,
// emisión del token propio, refresh y logout. El servidor guarda los tokens
// del backend en PostgreSQL; el navegador solo recibe un JWT que referencia
// la sesión.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/gestion-backoffice/internal/application/dto"
	"github.com/tu-usuario/gestion-backoffice/internal/domain"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/authz"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/entity"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/repository"
	"github.com/tu-usuario/gestion-backoffice/internal/infrastructure/backendapi"
	"github.com/tu-usuario/gestion-backoffice/pkg/jwt"
	"github.com/tu-usuario/gestion-backoffice/pkg/logger"
)

// JWTConfig configuración para la emisión del token de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación.
type AuthUseCase struct {
	client   *backendapi.Client
	sessions repository.SessionRepository
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(client *backendapi.Client, sessions repository.SessionRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{client: client, sessions: sessions, jwtCfg: jwtCfg, log: log}
}

// backendLoginResponse forma de la respuesta de login del backend ERP:
// tokens access/refresh más el blob de usuario con rol, cargo, permisos y
// módulos accesibles.
type backendLoginResponse struct {
	Access  string          `json:"access"`
	Refresh string          `json:"refresh"`
	User    json.RawMessage `json:"user"`
}

// userIdentity campos mínimos que se extraen del blob para la sesión.
type userIdentity struct {
	ID        any    `json:"id"`
	EmpresaID any    `json:"empresa"`
	Role      string `json:"role"`
}

// Login reenvía las credenciales al backend, persiste la sesión y emite el
// token propio. La verificación de la contraseña es del backend: este
// servicio nunca ve hashes.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	var out backendLoginResponse
	if err := uc.client.Post(ctx, "/auth/login/", in, &out); err != nil {
		return nil, err
	}
	if out.Access == "" || len(out.User) == 0 {
		return nil, fmt.Errorf("login: respuesta del backend incompleta")
	}

	var ident userIdentity
	if err := json.Unmarshal(out.User, &ident); err != nil {
		return nil, fmt.Errorf("login: blob de usuario inválido: %w", err)
	}

	now := time.Now()
	session := &entity.Session{
		ID:           uuid.New().String(),
		UserID:       entity.CoerceID(ident.ID),
		CompanyID:    entity.CoerceID(ident.EmpresaID),
		AccessToken:  out.Access,
		RefreshToken: out.Refresh,
		UserBlob:     out.User,
		CreatedAt:    now,
		ExpiresAt:    now.Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute),
	}
	if err := uc.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, session.ID, session.UserID, session.CompanyID, ident.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("user_id", session.UserID).Str("company_id", session.CompanyID).
		Msg("sesión iniciada")

	return &dto.LoginResponse{Token: token, User: out.User}, nil
}

// Logout borra la sesión.
func (uc *AuthUseCase) Logout(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

// Refresh intercambia el refresh token contra el backend y actualiza la fila
// de sesión. Si el backend lo rechaza, la sesión queda invalidada.
func (uc *AuthUseCase) Refresh(ctx context.Context, sessionID string) error {
	session, err := uc.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return domain.ErrSessionExpired
	}
	if session.RefreshToken == "" {
		return domain.ErrSessionExpired
	}

	var out struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	payload := map[string]string{"refresh": session.RefreshToken}
	if err := uc.client.Post(ctx, "/auth/refresh/", payload, &out); err != nil {
		return err
	}
	refresh := out.Refresh
	if refresh == "" {
		refresh = session.RefreshToken
	}
	return uc.sessions.UpdateTokens(ctx, sessionID, out.Access, refresh)
}

// Me devuelve el usuario y permisos de la sesión.
func (uc *AuthUseCase) Me(session *entity.Session) (*dto.MeResponse, error) {
	set, err := authz.Parse(session.UserBlob)
	if err != nil {
		return nil, err
	}
	return &dto.MeResponse{
		User:              session.UserBlob,
		Role:              set.UserRole(),
		AccessibleModules: set.AccessibleModules,
	}, nil
}
