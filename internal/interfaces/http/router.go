package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DaTT2001/warehouse-web/internal/application/activity"
	"github.com/DaTT2001/warehouse-web/internal/application/auth"
	"github.com/DaTT2001/warehouse-web/internal/application/export"
	"github.com/DaTT2001/warehouse-web/internal/application/inventory"
	"github.com/DaTT2001/warehouse-web/internal/application/report"
	"github.com/DaTT2001/warehouse-web/internal/application/saga"
	"github.com/DaTT2001/warehouse-web/internal/application/session"
	"github.com/DaTT2001/warehouse-web/internal/application/usecase"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
	"github.com/DaTT2001/warehouse-web/internal/infrastructure/metrics"
	"github.com/DaTT2001/warehouse-web/pkg/i18n"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Sessions   *session.Reader
	AuthUC     *auth.AuthUseCase
	Inventory  *inventory.QueryUseCase
	ProductUC  *usecase.ProductUseCase
	SupplierUC *usecase.SupplierUseCase
	Exports    *export.Workflow
	Reports    *report.UseCase
	Activity   *activity.Logger
	Commits    *saga.JournalQuery
	Metrics    *metrics.Metrics
	Messages   *i18n.Translator
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	tr := deps.Messages
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Metrics.Registry(), promhttp.HandlerOpts{})))
	}

	api := app.Group("/api", LanguageMiddleware(tr))

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, tr)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.Sessions, tr))
	visit := VisitTrail(deps.Activity, tr)
	protected.Get("/session", authHandler.Session)

	// Inventario del ERP
	inventoryHandler := NewInventoryHandler(deps.Inventory, tr)
	protected.Get("/dashboard", visit, inventoryHandler.Dashboard)
	protected.Get("/inventory", visit, inventoryHandler.List)
	protected.Get("/inventory/total-qty", inventoryHandler.TotalQuantity)
	protected.Get("/inventory/:id", inventoryHandler.GetByID)

	// Products: escritura solo Admin y Warehouse_Manager
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, tr)
	managers := RequireRole(tr, entity.RoleAdmin, entity.RoleWarehouseManager)
	products.Get("/", visit, productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", managers, productHandler.Create)
	products.Put("/:id", managers, productHandler.Update)
	products.Delete("/:id", managers, productHandler.Delete)
	products.Post("/:id/add-stock", managers, productHandler.AddStock)

	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC, tr)
	suppliers.Get("/", visit, supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Salida de stock
	exports := protected.Group("/exports")
	exportHandler := NewExportHandler(deps.Exports, tr, deps.Exports.Now)
	exports.Post("/", exportHandler.Check)
	exports.Get("/:id", exportHandler.Get)
	exports.Post("/:id/preview", exportHandler.Preview)
	exports.Post("/:id/confirm", exportHandler.Confirm)
	exports.Delete("/:id", exportHandler.Cancel)

	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.Reports, tr, deps.Reports.Now)
	reports.Get("/", visit, reportHandler.List)
	reports.Get("/export.xlsx", reportHandler.ExportXLSX)
	reports.Get("/export.pdf", reportHandler.ExportPDF)
	reports.Post("/:id/undo", reportHandler.Undo)

	logHandler := NewLogHandler(deps.Activity, tr)
	protected.Get("/logs", visit, logHandler.List)

	// Diario de commits (runId de las respuestas 502)
	commitHandler := NewCommitHandler(deps.Commits, tr)
	protected.Get("/commits", commitHandler.List)
	protected.Get("/commits/:runId", commitHandler.Get)
}
