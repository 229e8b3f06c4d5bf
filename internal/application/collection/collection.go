// Package collection mantiene el estado de lista de un recurso REST: datos,
// carga en curso y último error. Load reemplaza los datos al completo;
// create/update/remove llaman al backend y parchean la copia local (añadir /
// sustituir por id / filtrar por id) para ahorrar el round trip de recarga.
// El backend sigue siendo la fuente autoritativa: esto es solo una caché.
package collection

import (
	"context"
	"errors"
	"net/url"
	"sync"

	"github.com/tu-usuario/gestion-backoffice/internal/domain/entity"
)

// ErrClosed la colección fue cerrada (la pantalla ya no existe).
var ErrClosed = errors.New("colección cerrada")

// Backend operaciones REST que necesita la colección. Lo implementa
// *backendapi.Resource.
type Backend interface {
	GetAll(ctx context.Context, params url.Values) ([]entity.Record, error)
	GetByID(ctx context.Context, id string) (entity.Record, error)
	Create(ctx context.Context, payload any) (entity.Record, error)
	Update(ctx context.Context, id string, payload any) (entity.Record, error)
	Delete(ctx context.Context, id string) error
}

// Collection estado de lista de un recurso.
//
// Invariantes:
//   - mientras una carga está en vuelo ninguna mutación se aplica a los
//     datos hasta que resuelva (los parches esperan);
//   - tras Close ningún parche tardío toca el estado (las llamadas en vuelo
//     terminan, su resultado se descarta).
//
// Dos mutaciones concurrentes no se serializan entre sí: ambas parchean en
// el orden en que resuelven, la última gana.
type Collection struct {
	mu      sync.Mutex
	cond    *sync.Cond
	backend Backend

	data    []entity.Record
	loading bool
	err     error
	closed  bool
}

// New construye la colección sin datos; Load debe invocarse al montar.
func New(backend Backend) *Collection {
	c := &Collection{backend: backend}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Data devuelve una copia instantánea de los datos.
func (c *Collection) Data() []entity.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]entity.Record, len(c.data))
	copy(out, c.data)
	return out
}

// Loading informa si hay una carga en vuelo.
func (c *Collection) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err devuelve el último error registrado (nil tras una operación exitosa).
func (c *Collection) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Len devuelve el número de registros en la caché.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

// Close marca la colección como cerrada: los resultados de llamadas aún en
// vuelo se descartan en lugar de parchear estado de una pantalla que ya no
// existe.
func (c *Collection) Close() {
	c.mu.Lock()
	c.closed = true
	c.cond.Broadcast()
	c.mu.Unlock()
}

// Load obtiene la colección del backend y reemplaza los datos al completo.
func (c *Collection) Load(ctx context.Context, params url.Values) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.loading = true
	c.mu.Unlock()

	recs, err := c.backend.GetAll(ctx, params)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	c.cond.Broadcast()
	if c.closed {
		return ErrClosed
	}
	if err != nil {
		c.err = err
		return err
	}
	c.data = recs
	c.err = nil
	return nil
}

// Create crea el registro en el backend y lo añade a la caché local.
// Ante rechazo registra el error y lo devuelve al invocador.
func (c *Collection) Create(ctx context.Context, payload any) (entity.Record, error) {
	rec, err := c.backend.Create(ctx, payload)
	if err != nil {
		c.setErr(err)
		return nil, err
	}
	c.applyPatch(func() {
		c.data = append(c.data, rec)
	})
	return rec, nil
}

// Update actualiza el registro en el backend y sustituye por id en la caché.
func (c *Collection) Update(ctx context.Context, id string, payload any) (entity.Record, error) {
	rec, err := c.backend.Update(ctx, id, payload)
	if err != nil {
		c.setErr(err)
		return nil, err
	}
	c.applyPatch(func() {
		for i := range c.data {
			if c.data[i].ID() == id {
				c.data[i] = rec
				break
			}
		}
	})
	return rec, nil
}

// Remove borra el registro en el backend y lo filtra de la caché.
func (c *Collection) Remove(ctx context.Context, id string) error {
	if err := c.backend.Delete(ctx, id); err != nil {
		c.setErr(err)
		return err
	}
	c.applyPatch(func() {
		out := c.data[:0]
		for _, rec := range c.data {
			if rec.ID() != id {
				out = append(out, rec)
			}
		}
		c.data = out
	})
	return nil
}

// GetByID consulta el backend directamente, sin tocar la caché.
func (c *Collection) GetByID(ctx context.Context, id string) (entity.Record, error) {
	rec, err := c.backend.GetByID(ctx, id)
	if err != nil {
		c.setErr(err)
		return nil, err
	}
	return rec, nil
}

// applyPatch aplica una mutación local respetando los invariantes: espera a
// que termine cualquier carga en vuelo y descarta el parche si la colección
// ya se cerró.
func (c *Collection) applyPatch(patch func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.loading && !c.closed {
		c.cond.Wait()
	}
	if c.closed {
		return
	}
	patch()
	c.err = nil
}

func (c *Collection) setErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.err = err
	}
}
