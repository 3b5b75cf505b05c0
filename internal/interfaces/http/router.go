package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Produccion-api/internal/application/auth"
	"github.com/jhoicas/Produccion-api/internal/application/production"
	"github.com/jhoicas/Produccion-api/internal/application/quality"
	"github.com/jhoicas/Produccion-api/internal/application/usecase"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	CompanyUC    *usecase.CompanyUseCase
	UserUC       *usecase.UserUseCase
	WorkItemUC   *production.WorkItemUseCase
	ReleaseUC    *production.ReleaseUseCase
	InspectionUC *quality.InspectionUseCase
	DeliveryUC   *quality.DeliveryNoteUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público: alta inicial de la empresa antes de tener usuarios)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	admin := RequireRole(entity.RoleAdmin)
	produccion := RequireRole(entity.RoleAdmin, entity.RoleProduccion)
	inspector := RequireRole(entity.RoleAdmin, entity.RoleInspector)

	// Users (protegido, gestión solo admin)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", admin, userHandler.List)
	users.Get("/:id", userHandler.GetByID)

	// Work items (protegido)
	workItems := protected.Group("/work-items")
	workItemHandler := NewWorkItemHandler(deps.WorkItemUC)
	releaseHandler := NewReleaseHandler(deps.ReleaseUC, deps.InspectionUC, deps.DeliveryUC)
	workItems.Post("/", produccion, workItemHandler.Create)
	workItems.Get("/", workItemHandler.List)
	workItems.Get("/:id", workItemHandler.GetByID)
	workItems.Put("/:id", admin, workItemHandler.Update)
	workItems.Get("/:id/releases", releaseHandler.ListByWorkItem)

	// Releases (protegido)
	releases := protected.Group("/releases")
	releases.Post("/", produccion, releaseHandler.Create)
	releases.Get("/:id", releaseHandler.GetByID)
	releases.Put("/:id", produccion, releaseHandler.Update)
	releases.Delete("/:id", produccion, releaseHandler.Delete)
	releases.Post("/:id/start", produccion, releaseHandler.StartProduction)
	releases.Post("/:id/reject", admin, releaseHandler.Reject)
	releases.Post("/:id/push-for-inspection", produccion, releaseHandler.PushForInspection)
	releases.Get("/:id/inspections", releaseHandler.ListInspections)
	releases.Get("/:id/delivery-note", releaseHandler.DeliveryNote)

	// Inspections (protegido)
	inspections := protected.Group("/inspections")
	inspectionHandler := NewInspectionHandler(deps.InspectionUC)
	inspections.Get("/:id", inspectionHandler.GetByID)
	inspections.Put("/:id/steps", inspector, inspectionHandler.SaveSteps)
	inspections.Post("/:id/override", admin, inspectionHandler.SetOverride)
	inspections.Post("/:id/override/clear", admin, inspectionHandler.ClearOverride)
	inspections.Patch("/:id/meta", inspector, inspectionHandler.UpdateMeta)

	// Templates (protegido, solo lectura)
	protected.Get("/templates", releaseHandler.ListTemplates)

	// Utilidades de lote de planos (protegido)
	drawingHandler := NewDrawingHandler()
	protected.Post("/drawings/paste-import", drawingHandler.PasteImport)
}
