// Package backendapi es el cliente REST hacia el API del ERP. Adjunta el
// bearer token de la sesión a cada petición, aplica un timeout fijo y
// traduce los estados HTTP a los centinelas de dominio. Ante un 401 invoca
// el hook de invalidación de sesión: desde ese momento ninguna otra llamada
// autenticada de esa sesión debe intentarse. No hay reintentos: cada fallo
// es terminal para esa acción del usuario.
package backendapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tu-usuario/gestion-backoffice/internal/domain"
	"github.com/tu-usuario/gestion-backoffice/internal/infrastructure/metrics"
	"github.com/tu-usuario/gestion-backoffice/pkg/config"
	"github.com/tu-usuario/gestion-backoffice/pkg/logger"
)

type ctxKey int

const authKey ctxKey = iota

type authInfo struct {
	sessionID   string
	accessToken string
}

// WithAuth devuelve un contexto que lleva las credenciales de la sesión.
// El middleware HTTP lo construye una vez por petición; el cliente lo lee en
// cada llamada saliente.
func WithAuth(ctx context.Context, sessionID, accessToken string) context.Context {
	return context.WithValue(ctx, authKey, authInfo{sessionID: sessionID, accessToken: accessToken})
}

// SessionIDFrom devuelve el id de sesión del contexto ("" si no hay).
func SessionIDFrom(ctx context.Context) string {
	info, _ := ctx.Value(authKey).(authInfo)
	return info.sessionID
}

// APIError error con estado HTTP y cuerpo estructurado {code, message} si el
// backend lo envió. Unwrap permite errors.Is contra los centinelas de dominio.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend %d", e.Status)
}

// Unwrap mapea el estado HTTP al centinela de dominio correspondiente.
func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return domain.ErrUnauthenticated
	case e.Status == http.StatusForbidden:
		return domain.ErrForbidden
	case e.Status == http.StatusNotFound:
		return domain.ErrNotFound
	case e.Status == http.StatusConflict:
		return domain.ErrConflict
	case e.Status >= 500:
		return domain.ErrBackendUnavailable
	case e.Status >= 400:
		return domain.ErrInvalidInput
	default:
		return nil
	}
}

// Client cliente HTTP hacia el backend ERP.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
	obs     *metrics.Backend

	// onUnauthorized se invoca una única vez por sesión cuando el backend
	// responde 401; típicamente borra la fila de sesión.
	onUnauthorized func(ctx context.Context, sessionID string)
}

// NewClient construye el cliente con el timeout fijo de configuración.
func NewClient(cfg config.BackendConfig, log *logger.Logger, obs *metrics.Backend) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout()},
		log:     log,
		obs:     obs,
	}
}

// OnUnauthorized registra el hook de invalidación de sesión.
func (c *Client) OnUnauthorized(fn func(ctx context.Context, sessionID string)) {
	c.onUnauthorized = fn
}

// Resource devuelve el recurso REST convencional montado en path
// (ej. "/articulos/").
func (c *Client) Resource(path string) *Resource {
	return &Resource{c: c, path: "/" + strings.Trim(path, "/")}
}

// Get ejecuta un GET fuera de la convención de recursos (ej. /auth/me/).
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, nil, out)
}

// Post ejecuta un POST fuera de la convención de recursos (ej. /auth/login/).
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// do ejecuta una petición JSON y decodifica la respuesta en out (puede ser nil).
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body any, out any) error {
	raw, _, err := c.roundTrip(ctx, method, path, params, body, "application/json")
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decodificar respuesta %s %s: %w", method, path, err)
	}
	return nil
}

// doBlob ejecuta una petición que devuelve un binario (ej. PDF generado por
// el backend) y retorna los bytes con su content type.
func (c *Client) doBlob(ctx context.Context, path string) ([]byte, string, error) {
	return c.roundTripBlob(ctx, http.MethodGet, path)
}

func (c *Client) roundTrip(ctx context.Context, method, path string, params url.Values, body any, accept string) ([]byte, string, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("serializar cuerpo %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, "", fmt.Errorf("crear petición %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", accept)
	if info, ok := ctx.Value(authKey).(authInfo); ok && info.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+info.accessToken)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.obs.Observe(method, 0, time.Since(start))
		return nil, "", fmt.Errorf("llamar backend %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	c.obs.Observe(method, resp.StatusCode, time.Since(start))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("leer respuesta %s %s: %w", method, path, err)
	}

	if resp.StatusCode >= 400 {
		return nil, "", c.errorFrom(ctx, resp.StatusCode, raw, method, path)
	}
	return raw, resp.Header.Get("Content-Type"), nil
}

func (c *Client) roundTripBlob(ctx context.Context, method, path string) ([]byte, string, error) {
	return c.roundTrip(ctx, method, path, nil, nil, "application/pdf, application/octet-stream")
}

// errorFrom construye el APIError desde el estado y el cuerpo. Un 401
// dispara la invalidación de la sesión del contexto.
func (c *Client) errorFrom(ctx context.Context, status int, raw []byte, method, path string) error {
	apiErr := &APIError{Status: status}
	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil {
		apiErr.Code = body.Code
		switch {
		case body.Message != "":
			apiErr.Message = body.Message
		case body.Detail != "":
			apiErr.Message = body.Detail
		case body.Error != "":
			apiErr.Message = body.Error
		}
	}

	if status == http.StatusUnauthorized {
		sessionID := SessionIDFrom(ctx)
		c.log.Warn().Str("method", method).Str("path", path).Str("session_id", sessionID).
			Msg("401 del backend, invalidando sesión")
		if c.onUnauthorized != nil && sessionID != "" {
			c.onUnauthorized(ctx, sessionID)
		}
	} else {
		c.log.Debug().Int("status", status).Str("method", method).Str("path", path).
			Str("message", apiErr.Message).Msg("error del backend")
	}
	return apiErr
}
