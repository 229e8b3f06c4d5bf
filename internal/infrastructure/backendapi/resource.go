package backendapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tu-usuario/gestion-backoffice/internal/domain/entity"
)

// Resource expone las operaciones REST convencionales de una colección:
// GET/POST /recurso/ y GET/PUT/DELETE /recurso/{id}/, más los endpoints de
// acción propios de cada entidad (cancelar, reenviar invitación, marcar
// entregado, PDF, ...).
type Resource struct {
	c    *Client
	path string
}

// Path devuelve el path base del recurso.
func (r *Resource) Path() string { return r.path }

// GetAll obtiene la colección completa. Si la respuesta viene envuelta en un
// sobre paginado con campo "results", lo desenvuelve.
func (r *Resource) GetAll(ctx context.Context, params url.Values) ([]entity.Record, error) {
	var raw json.RawMessage
	if err := r.c.do(ctx, http.MethodGet, r.path+"/", params, nil, &raw); err != nil {
		return nil, err
	}
	return unwrapList(raw)
}

// GetByID obtiene un registro por id.
func (r *Resource) GetByID(ctx context.Context, id string) (entity.Record, error) {
	var rec entity.Record
	if err := r.c.do(ctx, http.MethodGet, r.itemPath(id), nil, nil, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Create crea un registro y devuelve la versión persistida por el backend.
func (r *Resource) Create(ctx context.Context, payload any) (entity.Record, error) {
	var rec entity.Record
	if err := r.c.do(ctx, http.MethodPost, r.path+"/", nil, payload, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Update actualiza un registro por id.
func (r *Resource) Update(ctx context.Context, id string, payload any) (entity.Record, error) {
	var rec entity.Record
	if err := r.c.do(ctx, http.MethodPut, r.itemPath(id), nil, payload, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete elimina un registro por id.
func (r *Resource) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, r.itemPath(id), nil, nil, nil)
}

// Action invoca un endpoint de acción del registro
// (POST /recurso/{id}/{action}/), ej. cancelar o marcar entregado.
func (r *Resource) Action(ctx context.Context, id, action string, payload any) (entity.Record, error) {
	var rec entity.Record
	if err := r.c.do(ctx, http.MethodPost, r.itemPath(id)+action+"/", nil, payload, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Replace sustituye atómicamente una subcolección del registro
// (PUT /recurso/{id}/{sub}/), ej. el juego completo de líneas de un documento.
func (r *Resource) Replace(ctx context.Context, id, sub string, payload any) (entity.Record, error) {
	var rec entity.Record
	if err := r.c.do(ctx, http.MethodPut, r.itemPath(id)+sub+"/", nil, payload, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Blob descarga la salida binaria de un registro (GET /recurso/{id}/{sub}/),
// ej. el PDF que genera el backend. Devuelve bytes y content type.
func (r *Resource) Blob(ctx context.Context, id, sub string) ([]byte, string, error) {
	return r.c.doBlob(ctx, r.itemPath(id)+sub+"/")
}

func (r *Resource) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id) + "/"
}

// unwrapList acepta tanto una lista JSON plana como el sobre paginado
// {"results": [...]}.
func unwrapList(raw json.RawMessage) ([]entity.Record, error) {
	var list []entity.Record
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var envelope struct {
		Results []entity.Record `json:"results"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("respuesta de lista inesperada: %w", err)
	}
	if envelope.Results == nil {
		return []entity.Record{}, nil
	}
	return envelope.Results, nil
}
