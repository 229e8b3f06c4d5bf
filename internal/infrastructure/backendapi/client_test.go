package backendapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-backoffice/internal/domain"
	"github.com/tu-usuario/gestion-backoffice/internal/infrastructure/backendapi"
	"github.com/tu-usuario/gestion-backoffice/pkg/config"
	"github.com/tu-usuario/gestion-backoffice/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newTestClient(t *testing.T, handler http.HandlerFunc) *backendapi.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	return backendapi.NewClient(config.BackendConfig{BaseURL: srv.URL, TimeoutSeconds: 5}, log, nil)
}

func authedCtx() context.Context {
	return backendapi.WithAuth(context.Background(), "sesion-1", "token-abc")
}

// ──────────────────────────────────────────────────────────────────────────────
// Credenciales y formato de lista
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: el bearer token del contexto viaja en la petición saliente.
func TestClient_AdjuntaBearerDelContexto(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	})

	_, err := client.Resource("/articulos").GetAll(authedCtx(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-abc", gotAuth)
}

// Caso 1b: sin credenciales en el contexto no se envía header.
func TestClient_SinCredencialesNoEnviaHeader(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	})

	_, err := client.Resource("/articulos").GetAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

// Caso 2: GetAll acepta una lista plana.
func TestGetAll_ListaPlana(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/articulos/", r.URL.Path)
		w.Write([]byte(`[{"id": 1, "nombre": "Tornillo"}, {"id": 2, "nombre": "Tuerca"}]`))
	})

	recs, err := client.Resource("/articulos").GetAll(authedCtx(), nil)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "1", recs[0].ID(), "los ids numéricos se coercionan a string")
	assert.Equal(t, "Tornillo", recs[0]["nombre"])
}

// Caso 3: GetAll desenvuelve el sobre paginado {"results": [...]}.
func TestGetAll_SobrePaginado(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count": 1, "next": null, "results": [{"id": "x"}]}`))
	})

	recs, err := client.Resource("/articulos").GetAll(authedCtx(), nil)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "x", recs[0].ID())
}

// ──────────────────────────────────────────────────────────────────────────────
// Traducción de errores
// ──────────────────────────────────────────────────────────────────────────────

// Caso 4: cada familia de estados mapea a su centinela de dominio.
func TestClient_MapeoDeErrores(t *testing.T) {
	cases := []struct {
		status   int
		sentinel error
	}{
		{http.StatusNotFound, domain.ErrNotFound},
		{http.StatusForbidden, domain.ErrForbidden},
		{http.StatusConflict, domain.ErrConflict},
		{http.StatusBadRequest, domain.ErrInvalidInput},
		{http.StatusInternalServerError, domain.ErrBackendUnavailable},
		{http.StatusBadGateway, domain.ErrBackendUnavailable},
	}
	for _, tc := range cases {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			w.Write([]byte(`{"detail": "algo salió mal"}`))
		})

		_, err := client.Resource("/articulos").GetByID(authedCtx(), "1")
		assert.ErrorIs(t, err, tc.sentinel, "estado %d", tc.status)
	}
}

// Caso 5: el cuerpo estructurado del error se conserva en el APIError.
func TestClient_CuerpoDeError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"code": "SKU_DUPLICADO", "message": "el SKU ya existe"}`))
	})

	_, err := client.Resource("/articulos").Create(authedCtx(), map[string]any{"sku": "X"})
	require.Error(t, err)

	var apiErr *backendapi.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "SKU_DUPLICADO", apiErr.Code)
	assert.Equal(t, "el SKU ya existe", apiErr.Message)
}

// Caso 6: un 401 del backend dispara el hook de invalidación con la sesión
// del contexto.
func TestClient_401DisparaInvalidacion(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "token vencido"}`))
	})

	var invalidated string
	client.OnUnauthorized(func(ctx context.Context, sessionID string) {
		invalidated = sessionID
	})

	_, err := client.Resource("/articulos").GetAll(authedCtx(), nil)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Equal(t, "sesion-1", invalidated)
}

// Caso 6b: sin sesión en el contexto el hook no se invoca.
func TestClient_401SinSesionNoInvocaHook(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	called := false
	client.OnUnauthorized(func(ctx context.Context, sessionID string) { called = true })

	_, err := client.Resource("/articulos").GetAll(context.Background(), nil)
	assert.Error(t, err)
	assert.False(t, called)
}

// ──────────────────────────────────────────────────────────────────────────────
// Convención de recursos
// ──────────────────────────────────────────────────────────────────────────────

// Caso 7: los paths siguen la convención /recurso/{id}/[{sub}/].
func TestResource_Paths(t *testing.T) {
	var paths []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.Write([]byte(`{"id": "5"}`))
	})

	res := client.Resource("/pedidos")
	ctx := authedCtx()

	_, _ = res.GetByID(ctx, "5")
	_, _ = res.Update(ctx, "5", map[string]any{})
	_ = res.Delete(ctx, "5")
	_, _ = res.Action(ctx, "5", "marcar_entregado", nil)
	_, _ = res.Replace(ctx, "5", "items", map[string]any{})

	assert.Equal(t, []string{
		"GET /pedidos/5/",
		"PUT /pedidos/5/",
		"DELETE /pedidos/5/",
		"POST /pedidos/5/marcar_entregado/",
		"PUT /pedidos/5/items/",
	}, paths)
}
