package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/gestion-backoffice/internal/application/auth"
	"github.com/tu-usuario/gestion-backoffice/internal/application/usecase"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	PageUC     *usecase.PageUseCase
	DocumentUC *usecase.DocumentUseCase
	ExportUC   *usecase.ExportUseCase
	Sessions   repository.SessionRepository
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC, deps.PageUC)
	pageHandler := NewPageHandler(deps.PageUC)
	documentHandler := NewDocumentHandler(deps.DocumentUC)
	exportHandler := NewExportHandler(deps.ExportUC)

	// Auth (login público; el resto requiere sesión)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Sessions))

	protectedAuth := protected.Group("/auth")
	protectedAuth.Post("/logout", authHandler.Logout)
	protectedAuth.Post("/refresh", authHandler.Refresh)
	protectedAuth.Get("/me", authHandler.Me)

	// Pantallas CRUD genéricas (la clave de pantalla va en la ruta)
	pagesGroup := protected.Group("/pages")
	pagesGroup.Get("/", pageHandler.Nav)
	pagesGroup.Get("/:page", pageHandler.View)
	pagesGroup.Get("/:page/form", pageHandler.FormSchema)
	pagesGroup.Get("/:page/export/excel", exportHandler.Excel)
	pagesGroup.Post("/:page", pageHandler.Create)
	pagesGroup.Put("/:page/:id", pageHandler.Update)
	pagesGroup.Delete("/:page/:id", pageHandler.Delete)
	pagesGroup.Post("/:page/:id/actions/:action", pageHandler.Action)

	// Pantallas de composición de documentos de venta (módulo ventas)
	docs := protected.Group("/documentos", RequireModule("ventas"))
	docs.Get("/:page/form-data", documentHandler.FormData)
	docs.Post("/:page/totales", documentHandler.Totals)
	docs.Post("/:page", documentHandler.Create)
	docs.Put("/:page/:id", documentHandler.UpdateHeader)
	docs.Put("/:page/:id/items", documentHandler.ReplaceItems)
	docs.Post("/:page/:id/actions/:action", documentHandler.Action)
	docs.Get("/:page/:id/pdf", documentHandler.PDF)
}
