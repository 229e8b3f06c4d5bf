package collection_test

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-backoffice/internal/application/collection"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Backend falso
// ──────────────────────────────────────────────────────────────────────────────

type fakeBackend struct {
	mu      sync.Mutex
	all     []entity.Record
	failAll error
	failMut error

	// canal opcional para retener GetAll y simular una carga lenta
	gate chan struct{}
}

func (f *fakeBackend) GetAll(ctx context.Context, _ url.Values) ([]entity.Record, error) {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	out := make([]entity.Record, len(f.all))
	copy(out, f.all)
	return out, nil
}

func (f *fakeBackend) GetByID(ctx context.Context, id string) (entity.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.all {
		if r.ID() == id {
			return r, nil
		}
	}
	return nil, errors.New("no existe")
}

func (f *fakeBackend) Create(ctx context.Context, payload any) (entity.Record, error) {
	if f.failMut != nil {
		return nil, f.failMut
	}
	rec := payload.(entity.Record)
	return rec, nil
}

func (f *fakeBackend) Update(ctx context.Context, id string, payload any) (entity.Record, error) {
	if f.failMut != nil {
		return nil, f.failMut
	}
	rec := payload.(entity.Record)
	rec["id"] = id
	return rec, nil
}

func (f *fakeBackend) Delete(ctx context.Context, id string) error {
	return f.failMut
}

func recs(ids ...string) []entity.Record {
	out := make([]entity.Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, entity.Record{"id": id})
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Carga y parches
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: Load reemplaza los datos al completo.
func TestLoad_ReemplazaAlCompleto(t *testing.T) {
	fb := &fakeBackend{all: recs("1", "2")}
	c := collection.New(fb)

	require.NoError(t, c.Load(context.Background(), nil))
	assert.Equal(t, 2, c.Len())

	fb.mu.Lock()
	fb.all = recs("9")
	fb.mu.Unlock()

	require.NoError(t, c.Load(context.Background(), nil))
	assert.Equal(t, 1, c.Len(), "la segunda carga no acumula, reemplaza")
	assert.Equal(t, "9", c.Data()[0].ID())
}

// Caso 2: Create añade a la caché sin recargar.
func TestCreate_AnadeALaCache(t *testing.T) {
	c := collection.New(&fakeBackend{all: recs("1")})
	require.NoError(t, c.Load(context.Background(), nil))

	rec, err := c.Create(context.Background(), entity.Record{"id": "2"})
	require.NoError(t, err)

	assert.Equal(t, "2", rec.ID())
	assert.Equal(t, 2, c.Len())
	assert.NoError(t, c.Err(), "una mutación exitosa limpia el error")
}

// Caso 3: Update sustituye por id conservando la posición.
func TestUpdate_SustituyePorID(t *testing.T) {
	c := collection.New(&fakeBackend{all: recs("1", "2", "3")})
	require.NoError(t, c.Load(context.Background(), nil))

	_, err := c.Update(context.Background(), "2", entity.Record{"nombre": "nuevo"})
	require.NoError(t, err)

	data := c.Data()
	require.Len(t, data, 3)
	assert.Equal(t, "2", data[1].ID(), "misma posición")
	assert.Equal(t, "nuevo", data[1]["nombre"])
}

// Caso 4: Remove filtra por id.
func TestRemove_FiltraPorID(t *testing.T) {
	c := collection.New(&fakeBackend{all: recs("1", "2", "3")})
	require.NoError(t, c.Load(context.Background(), nil))

	require.NoError(t, c.Remove(context.Background(), "2"))

	data := c.Data()
	require.Len(t, data, 2)
	assert.Equal(t, "1", data[0].ID())
	assert.Equal(t, "3", data[1].ID())
}

// Caso 5: el rechazo del backend no toca la caché y queda en Err.
func TestMutacionRechazada_NoTocaLaCache(t *testing.T) {
	fb := &fakeBackend{all: recs("1")}
	c := collection.New(fb)
	require.NoError(t, c.Load(context.Background(), nil))

	boom := errors.New("rechazado")
	fb.failMut = boom

	_, err := c.Create(context.Background(), entity.Record{"id": "2"})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, c.Len(), "la caché queda como estaba")
	assert.ErrorIs(t, c.Err(), boom)
}

// Caso 6: un error de carga queda registrado y se limpia con la siguiente
// operación exitosa.
func TestLoad_ErrorYRecuperacion(t *testing.T) {
	fb := &fakeBackend{failAll: errors.New("backend caído")}
	c := collection.New(fb)

	assert.Error(t, c.Load(context.Background(), nil))
	assert.Error(t, c.Err())

	fb.mu.Lock()
	fb.failAll = nil
	fb.all = recs("1")
	fb.mu.Unlock()

	require.NoError(t, c.Load(context.Background(), nil))
	assert.NoError(t, c.Err())
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia y cierre
// ──────────────────────────────────────────────────────────────────────────────

// Caso 7: un parche espera a que la carga en vuelo resuelva antes de aplicarse.
func TestPatch_EsperaALaCargaEnVuelo(t *testing.T) {
	fb := &fakeBackend{all: recs("1"), gate: make(chan struct{})}
	c := collection.New(fb)

	loadDone := make(chan error, 1)
	go func() { loadDone <- c.Load(context.Background(), nil) }()

	// dar tiempo a que Load marque loading=true y quede retenida en el gate
	time.Sleep(20 * time.Millisecond)
	require.True(t, c.Loading())

	created := make(chan struct{})
	go func() {
		_, _ = c.Create(context.Background(), entity.Record{"id": "2"})
		close(created)
	}()

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, c.Len(), "el parche no se aplica mientras la carga sigue en vuelo")

	close(fb.gate)
	require.NoError(t, <-loadDone)
	<-created

	assert.Equal(t, 2, c.Len(), "tras resolver la carga el parche se aplica sobre los datos frescos")
}

// Caso 8: tras Close, los resultados tardíos se descartan.
func TestClose_DescartaResultadosTardios(t *testing.T) {
	fb := &fakeBackend{all: recs("1"), gate: make(chan struct{})}
	c := collection.New(fb)

	loadDone := make(chan error, 1)
	go func() { loadDone <- c.Load(context.Background(), nil) }()
	time.Sleep(20 * time.Millisecond)

	c.Close()
	close(fb.gate)

	assert.ErrorIs(t, <-loadDone, collection.ErrClosed)
	assert.Equal(t, 0, c.Len(), "la carga tardía no puebla una colección cerrada")

	_, err := c.Create(context.Background(), entity.Record{"id": "2"})
	require.NoError(t, err, "la llamada al backend sí ocurre")
	assert.Equal(t, 0, c.Len(), "pero el parche local se descarta")
}

// Caso 9: Load sobre una colección ya cerrada ni siquiera llama al backend.
func TestLoad_ColeccionCerrada(t *testing.T) {
	c := collection.New(&fakeBackend{all: recs("1")})
	c.Close()

	assert.ErrorIs(t, c.Load(context.Background(), nil), collection.ErrClosed)
}
