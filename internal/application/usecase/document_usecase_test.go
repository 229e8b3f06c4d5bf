package usecase_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-backoffice/internal/application/dto"
	"github.com/tu-usuario/gestion-backoffice/internal/application/pages"
	"github.com/tu-usuario/gestion-backoffice/internal/application/usecase"
	"github.com/tu-usuario/gestion-backoffice/internal/domain"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/authz"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/document"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/entity"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/form"
	"github.com/tu-usuario/gestion-backoffice/internal/infrastructure/backendapi"
	"github.com/tu-usuario/gestion-backoffice/pkg/config"
	"github.com/tu-usuario/gestion-backoffice/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// fakePDF generador de PDF trivial para los tests.
type fakePDF struct {
	got []document.LineItem
}

func (f *fakePDF) Generate(title string, doc entity.Record, items []document.LineItem, total decimal.Decimal) ([]byte, error) {
	f.got = items
	return []byte("%PDF-falso " + title + " " + total.StringFixed(2)), nil
}

func pedidosPage() pages.DocumentPage {
	return pages.DocumentPage{
		Page: pages.Page{
			Key:          "pedidos",
			Title:        "Pedidos",
			ResourcePath: "/pedidos",
			Module:       "ventas",
			Perms: pages.Permissions{
				View: "ver_pedidos",
				Add:  "crear_pedidos",
				Edit: "editar_pedidos",
			},
			Fields: []form.Field{
				{Name: "cliente", Label: "Cliente", Type: form.TypeSelect, Required: true},
				{Name: "fecha", Label: "Fecha", Type: form.TypeDate, Required: true},
			},
		},
		Actions: []string{"marcar_entregado"},
	}
}

func adminSet() authz.PermissionSet {
	return authz.PermissionSet{Role: authz.RoleAdmin, AccessibleModules: []string{authz.ModuleAll}}
}

func newDocUC(t *testing.T, handler http.HandlerFunc) (*usecase.DocumentUseCase, *fakePDF) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	client := backendapi.NewClient(config.BackendConfig{BaseURL: srv.URL, TimeoutSeconds: 5}, log, nil)
	pdf := &fakePDF{}
	return usecase.NewDocumentUseCase(client, pdf, log), pdf
}

func lineas() []dto.LineItemRequest {
	return []dto.LineItemRequest{
		{Articulo: "A1", Cantidad: decimal.NewFromInt(3), PrecioUnitario: decimal.NewFromInt(10), Descuento: decimal.NewFromInt(25)},
		{Articulo: "A2", Cantidad: decimal.NewFromInt(1), PrecioUnitario: decimal.NewFromFloat(5.5)},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Totales y creación
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: los totales se calculan en servidor con dos decimales al presentar.
func TestTotals(t *testing.T) {
	uc, _ := newDocUC(t, func(w http.ResponseWriter, r *http.Request) {})

	out, err := uc.Totals(lineas())
	require.NoError(t, err)

	assert.Equal(t, []string{"22.50", "5.50"}, out.Subtotales)
	assert.Equal(t, "28.00", out.Total)
}

// Caso 1b: sin líneas no hay totales.
func TestTotals_SinLineas(t *testing.T) {
	uc, _ := newDocUC(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := uc.Totals(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Caso 2: crear envía cabecera, líneas y total en UNA sola llamada.
func TestCreate_UnaSolaLlamada(t *testing.T) {
	calls := 0
	uc, _ := newDocUC(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/pedidos/", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "C9", payload["cliente"])
		assert.Len(t, payload["items"], 2)
		assert.NotNil(t, payload["total"], "el total viaja calculado en servidor")

		w.Write([]byte(`{"id": "77", "estado": "borrador"}`))
	})

	out, err := uc.Create(context.Background(), pedidosPage(), adminSet(), dto.CreateDocumentRequest{
		Cabecera: map[string]any{"cliente": "C9", "fecha": "2026-08-01"},
		Items:    lineas(),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "documento padre y líneas en una única petición")
	assert.Equal(t, "77", out.Record.ID())
	assert.Equal(t, "28.00", out.Total)
}

// Caso 3: cabecera inválida o líneas vacías abortan sin tocar la red.
func TestCreateDocumento_ValidacionCorta(t *testing.T) {
	uc, _ := newDocUC(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no debe llamar al backend")
	})

	_, err := uc.Create(context.Background(), pedidosPage(), adminSet(), dto.CreateDocumentRequest{
		Cabecera: map[string]any{"fecha": "2026-08-01"},
		Items:    lineas(),
	})
	var vErr *usecase.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Errors, "cliente")

	_, err = uc.Create(context.Background(), pedidosPage(), adminSet(), dto.CreateDocumentRequest{
		Cabecera: map[string]any{"cliente": "C9", "fecha": "2026-08-01"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas no hay documento")
}

// ──────────────────────────────────────────────────────────────────────────────
// Líneas y acciones
// ──────────────────────────────────────────────────────────────────────────────

// Caso 4: ReplaceItems usa el endpoint atómico PUT /{id}/items/.
func TestReplaceItems_Atomico(t *testing.T) {
	uc, _ := newDocUC(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/pedidos/77/items/", r.URL.Path)
		w.Write([]byte(`{"id": "77"}`))
	})

	out, err := uc.ReplaceItems(context.Background(), pedidosPage(), adminSet(), "77", dto.ReplaceItemsRequest{Items: lineas()})
	require.NoError(t, err)
	assert.Equal(t, "28.00", out.Total)
}

// Caso 5: solo las acciones declaradas por la pantalla están permitidas.
func TestAction_SoloLasDeclaradas(t *testing.T) {
	uc, _ := newDocUC(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pedidos/77/marcar_entregado/", r.URL.Path)
		w.Write([]byte(`{"id": "77", "estado": "entregado"}`))
	})
	ctx := context.Background()

	rec, err := uc.Action(ctx, pedidosPage(), adminSet(), "77", "marcar_entregado")
	require.NoError(t, err)
	assert.Equal(t, "entregado", rec["estado"])

	_, err = uc.Action(ctx, pedidosPage(), adminSet(), "77", "cancelar")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cancelar no está declarada para pedidos")
}

// ──────────────────────────────────────────────────────────────────────────────
// PDF
// ──────────────────────────────────────────────────────────────────────────────

// Caso 6: los documentos no fiscales se renderizan localmente desde el registro.
func TestPDF_RenderLocal(t *testing.T) {
	uc, pdf := newDocUC(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pedidos/77/", r.URL.Path)
		w.Write([]byte(`{
			"id": "77",
			"items": [{"articulo": 1, "descripcion": "Tornillo", "cantidad": "3", "precio_unitario": "10", "descuento": "25"}]
		}`))
	})

	data, contentType, err := uc.PDF(context.Background(), pedidosPage(), adminSet(), "77")
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", contentType)
	assert.NotEmpty(t, data)
	require.Len(t, pdf.got, 1, "las líneas se reconstruyen del registro")
	assert.Equal(t, "22.50", pdf.got[0].Subtotal().StringFixed(2))
}

// Caso 7: las facturas reenvían el PDF oficial del backend, sin render local.
func TestPDF_FacturaProxy(t *testing.T) {
	facturas := pedidosPage()
	facturas.Key = "facturas"
	facturas.ResourcePath = "/facturas"

	uc, pdf := newDocUC(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/facturas/9/pdf/", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-oficial"))
	})

	data, contentType, err := uc.PDF(context.Background(), facturas, adminSet(), "9")
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", contentType)
	assert.Equal(t, "%PDF-oficial", string(data))
	assert.Nil(t, pdf.got, "el generador local no interviene en facturas")
}
