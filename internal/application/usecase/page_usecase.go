package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/tu-usuario/gestion-backoffice/internal/application/collection"
	"github.com/tu-usuario/gestion-backoffice/internal/application/dto"
	"github.com/tu-usuario/gestion-backoffice/internal/application/modal"
	"github.com/tu-usuario/gestion-backoffice/internal/application/pages"
	"github.com/tu-usuario/gestion-backoffice/internal/domain"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/authz"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/entity"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/form"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/table"
	"github.com/tu-usuario/gestion-backoffice/internal/infrastructure/backendapi"
	"github.com/tu-usuario/gestion-backoffice/pkg/logger"
)

// ValidationError errores de validación por campo: el envío se abortó antes
// de tocar la red.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validación fallida en %d campo(s)", len(e.Errors))
}

// PageUseCase interpreta las configuraciones de pantalla: una colección por
// sesión y pantalla, la vista de tabla computada y el ciclo del formulario.
type PageUseCase struct {
	client *backendapi.Client
	locale string
	log    *logger.Logger

	mu    sync.Mutex
	colls map[string]*collection.Collection // clave: sessionID + "|" + pageKey
}

// NewPageUseCase construye el caso de uso genérico de pantallas.
func NewPageUseCase(client *backendapi.Client, locale string, log *logger.Logger) *PageUseCase {
	return &PageUseCase{
		client: client,
		locale: locale,
		log:    log,
		colls:  make(map[string]*collection.Collection),
	}
}

// coll devuelve (creando si hace falta) la colección de la sesión para la
// pantalla.
func (uc *PageUseCase) coll(sessionID string, page pages.Page) *collection.Collection {
	key := sessionID + "|" + page.Key
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if c, ok := uc.colls[key]; ok {
		return c
	}
	c := collection.New(uc.client.Resource(page.ResourcePath))
	uc.colls[key] = c
	return c
}

// CloseSession cierra y descarta todas las colecciones de la sesión
// (logout o 401 del backend). Los resultados de llamadas aún en vuelo se
// descartan en lugar de parchear pantallas muertas.
func (uc *PageUseCase) CloseSession(sessionID string) {
	prefix := sessionID + "|"
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for key, c := range uc.colls {
		if strings.HasPrefix(key, prefix) {
			c.Close()
			delete(uc.colls, key)
		}
	}
}

// View computa la vista de tabla de la pantalla. Con reload true (o caché
// vacía) recarga la colección del backend primero.
func (uc *PageUseCase) View(ctx context.Context, sessionID string, page pages.Page, set authz.PermissionSet, q table.Query, reload bool) (*dto.TableViewResponse, error) {
	if !allowed(set, page.Perms.View) {
		return nil, domain.ErrForbidden
	}

	c := uc.coll(sessionID, page)
	if reload || c.Len() == 0 {
		if err := c.Load(ctx, nil); err != nil {
			return nil, err
		}
	}

	if q.PageSize <= 0 {
		q.PageSize = page.PageSize
	}
	view := table.Compute(c.Data(), page.Columns, page.SearchFields, q, table.NewFormatter(uc.locale))

	cols := make([]dto.ColumnInfo, 0, len(page.Columns))
	for _, col := range page.Columns {
		cols = append(cols, dto.ColumnInfo{Key: col.Key, Label: col.Label, Sortable: col.Sortable, Type: col.Type})
	}

	return &dto.TableViewResponse{
		Columns: cols,
		View:    view,
		Actions: dto.RowActions{
			CanAdd:    !page.ReadOnly && allowed(set, page.Perms.Add),
			CanEdit:   !page.ReadOnly && allowed(set, page.Perms.Edit),
			CanDelete: !page.ReadOnly && allowed(set, page.Perms.Delete),
			CanView:   allowed(set, page.Perms.View),
		},
	}, nil
}

// FormSchema arma el formulario sembrado para el modo pedido. En editar/ver
// el registro se relee del backend; en crear se siembra desde los valores
// por defecto. Cada llamada siembra de cero: un crear tras un editar nunca
// arrastra valores del registro anterior.
func (uc *PageUseCase) FormSchema(ctx context.Context, sessionID string, page pages.Page, mode, recordID string) (*dto.FormSchemaResponse, error) {
	if !modal.ValidMode(mode) {
		return nil, domain.ErrInvalidInput
	}

	state := modal.Closed()
	var rec entity.Record
	switch mode {
	case modal.ModeCreate:
		state = state.OpenCreate()
	case modal.ModeEdit, modal.ModeView:
		if recordID == "" {
			return nil, domain.ErrInvalidInput
		}
		var err error
		rec, err = uc.coll(sessionID, page).GetByID(ctx, recordID)
		if err != nil {
			return nil, err
		}
		if mode == modal.ModeEdit {
			state = state.OpenEdit(rec)
		} else {
			state = state.OpenView(rec)
		}
	}

	values := form.Seed(page.Fields, state.Data)
	disabled := mode == modal.ModeView
	controls := make([]dto.FormControl, 0, len(page.Fields))
	for _, f := range page.Fields {
		controls = append(controls, dto.FormControl{
			Field:    f,
			Value:    values[f.Name],
			Disabled: disabled,
		})
	}

	return &dto.FormSchemaResponse{
		Mode:      mode,
		Controls:  controls,
		CanSubmit: !disabled,
		RecordID:  recordID,
		PageKey:   page.Key,
		PageTitle: page.Title,
	}, nil
}

// Create valida y crea el registro. Errores de validación abortan sin llamar
// al backend; errores del backend se registran y se devuelven al invocador
// para que la pantalla mantenga el modal abierto.
func (uc *PageUseCase) Create(ctx context.Context, sessionID string, page pages.Page, set authz.PermissionSet, values map[string]any) (entity.Record, error) {
	if page.ReadOnly || !allowed(set, page.Perms.Add) {
		return nil, domain.ErrForbidden
	}
	if errs := form.ValidateAll(page.Fields, values); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	payload := form.Assemble(page.Fields, values)
	rec, err := uc.coll(sessionID, page).Create(ctx, payload)
	if err != nil {
		uc.log.Error().Err(err).Str("page", page.Key).Msg("crear registro")
		return nil, err
	}
	return rec, nil
}

// Update valida y actualiza el registro.
func (uc *PageUseCase) Update(ctx context.Context, sessionID string, page pages.Page, set authz.PermissionSet, id string, values map[string]any) (entity.Record, error) {
	if page.ReadOnly || !allowed(set, page.Perms.Edit) {
		return nil, domain.ErrForbidden
	}
	if errs := form.ValidateAll(page.Fields, values); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	payload := form.Assemble(page.Fields, values)
	rec, err := uc.coll(sessionID, page).Update(ctx, id, payload)
	if err != nil {
		uc.log.Error().Err(err).Str("page", page.Key).Str("id", id).Msg("actualizar registro")
		return nil, err
	}
	return rec, nil
}

// Delete borra el registro. El handler solo llega aquí tras la confirmación
// explícita del usuario; el icono de borrar nunca borra directamente.
func (uc *PageUseCase) Delete(ctx context.Context, sessionID string, page pages.Page, set authz.PermissionSet, id string) error {
	if page.ReadOnly || !allowed(set, page.Perms.Delete) {
		return domain.ErrForbidden
	}
	if err := uc.coll(sessionID, page).Remove(ctx, id); err != nil {
		uc.log.Error().Err(err).Str("page", page.Key).Str("id", id).Msg("borrar registro")
		return err
	}
	return nil
}

// Action invoca un endpoint de acción del registro (ej. reenviar invitación).
func (uc *PageUseCase) Action(ctx context.Context, page pages.Page, set authz.PermissionSet, id, action string, payload any) (entity.Record, error) {
	if !allowed(set, page.Perms.Edit) {
		return nil, domain.ErrForbidden
	}
	return uc.client.Resource(page.ResourcePath).Action(ctx, id, action, payload)
}

// Data devuelve la caché actual de la pantalla (para exportaciones).
func (uc *PageUseCase) Data(ctx context.Context, sessionID string, page pages.Page) ([]entity.Record, error) {
	c := uc.coll(sessionID, page)
	if c.Len() == 0 {
		if err := c.Load(ctx, nil); err != nil {
			return nil, err
		}
	}
	return c.Data(), nil
}

// Locale devuelve el locale configurado del formateador.
func (uc *PageUseCase) Locale() string { return uc.locale }
