package pages_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-backoffice/internal/application/pages"
)

// Caso 1: todas las pantallas CRUD esperadas están registradas.
func TestRegistro_PantallasCRUD(t *testing.T) {
	for _, key := range []string{"contactos", "articulos", "almacenes", "stock", "empleados", "usuarios", "empresas"} {
		_, ok := pages.Get(key)
		assert.True(t, ok, "la pantalla %q debe estar registrada", key)
	}

	_, ok := pages.Get("inexistente")
	assert.False(t, ok)
}

// Caso 2: las pantallas de documentos viven en su propio registro.
func TestRegistro_PantallasDeDocumentos(t *testing.T) {
	for _, key := range []string{"cotizaciones", "pedidos", "albaranes", "facturas", "tickets"} {
		_, ok := pages.GetDocument(key)
		assert.True(t, ok, "la pantalla de documentos %q debe estar registrada", key)

		_, enCRUD := pages.Get(key)
		assert.False(t, enCRUD, "%q no debe estar también en el registro CRUD", key)
	}
}

// Caso 3: cada pantalla queda con la convención de permisos ver/crear/editar/eliminar.
func TestRegistro_PermisosConvencionales(t *testing.T) {
	p, ok := pages.Get("contactos")
	require.True(t, ok)

	assert.Equal(t, "ver_contactos", p.Perms.View)
	assert.Equal(t, "crear_contactos", p.Perms.Add)
	assert.Equal(t, "editar_contactos", p.Perms.Edit)
	assert.Equal(t, "eliminar_contactos", p.Perms.Delete)
}

// Caso 4: el tamaño de página por defecto se aplica al registrar.
func TestRegistro_TamanoDePaginaPorDefecto(t *testing.T) {
	for _, p := range pages.All() {
		assert.Positive(t, p.PageSize, "pantalla %q sin tamaño de página", p.Key)
	}
	for _, d := range pages.AllDocuments() {
		assert.Positive(t, d.PageSize, "pantalla %q sin tamaño de página", d.Key)
	}
}

// Caso 5: stock es de solo consulta.
func TestRegistro_StockSoloConsulta(t *testing.T) {
	p, ok := pages.Get("stock")
	require.True(t, ok)
	assert.True(t, p.ReadOnly)
}

// Caso 6: las acciones de documentos son las del tipo, no un juego común.
func TestRegistro_AccionesDeDocumentos(t *testing.T) {
	facturas, ok := pages.GetDocument("facturas")
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"cancelar", "reenviar"}, facturas.Actions)

	pedidos, ok := pages.GetDocument("pedidos")
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"marcar_entregado"}, pedidos.Actions)

	albaranes, ok := pages.GetDocument("albaranes")
	require.True(t, ok)
	assert.Empty(t, albaranes.Actions)
}

// Caso 7: toda pantalla declara módulo y recurso del backend.
func TestRegistro_ModuloYRecurso(t *testing.T) {
	for _, p := range pages.All() {
		assert.NotEmpty(t, p.Module, "pantalla %q sin módulo", p.Key)
		assert.NotEmpty(t, p.ResourcePath, "pantalla %q sin recurso", p.Key)
		assert.NotEmpty(t, p.Columns, "pantalla %q sin columnas", p.Key)
	}
}
