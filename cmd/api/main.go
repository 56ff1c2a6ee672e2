package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/DaTT2001/warehouse-web/internal/application/activity"
	"github.com/DaTT2001/warehouse-web/internal/application/auth"
	"github.com/DaTT2001/warehouse-web/internal/application/export"
	"github.com/DaTT2001/warehouse-web/internal/application/inventory"
	"github.com/DaTT2001/warehouse-web/internal/application/report"
	"github.com/DaTT2001/warehouse-web/internal/application/saga"
	"github.com/DaTT2001/warehouse-web/internal/application/session"
	"github.com/DaTT2001/warehouse-web/internal/application/usecase"
	"github.com/DaTT2001/warehouse-web/internal/domain/repository"
	"github.com/DaTT2001/warehouse-web/internal/infrastructure/cache"
	"github.com/DaTT2001/warehouse-web/internal/infrastructure/erpapi"
	"github.com/DaTT2001/warehouse-web/internal/infrastructure/excel"
	"github.com/DaTT2001/warehouse-web/internal/infrastructure/memstore"
	"github.com/DaTT2001/warehouse-web/internal/infrastructure/metrics"
	"github.com/DaTT2001/warehouse-web/internal/infrastructure/notify"
	infrapdf "github.com/DaTT2001/warehouse-web/internal/infrastructure/pdf"
	"github.com/DaTT2001/warehouse-web/internal/infrastructure/postgres"
	"github.com/DaTT2001/warehouse-web/internal/infrastructure/restclient"
	"github.com/DaTT2001/warehouse-web/internal/infrastructure/warehouseapi"
	httpRouter "github.com/DaTT2001/warehouse-web/internal/interfaces/http"
	"github.com/DaTT2001/warehouse-web/pkg/config"
	"github.com/DaTT2001/warehouse-web/pkg/i18n"
	"github.com/DaTT2001/warehouse-web/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("api", cfg.Backend.WarehouseURL).
		Str("erp", cfg.Backend.ERPURL).
		Msg("iniciando aplicación")

	ctx := context.Background()
	m := metrics.New()
	messages := i18n.New(cfg.App.DefaultLang)

	// Clientes de las dos APIs orquestadas
	warehouse := warehouseapi.New(restclient.New("warehouse", cfg.Backend.WarehouseURL, cfg.Backend.Timeout, m, log.Component("warehouse")))
	erp := erpapi.New(restclient.New("erp", cfg.Backend.ERPURL, cfg.Backend.Timeout, m, log.Component("erp")))

	drafts, closeDrafts := newDraftStore(cfg.Redis, log)
	defer closeDrafts()

	journal, closeJournal := newJournal(ctx, cfg.DB, log)
	defer closeJournal()

	sessions := session.NewReader(cfg.JWT.Secret, nil)
	activityLog := activity.NewLogger(warehouse, log.Component("activity"), 0)
	runner := saga.NewRunner(journal, m, log.Component("saga"), saga.Options{Compensate: cfg.Export.Compensate}, nil)

	inventoryUC := inventory.NewQueryUseCase(erp)
	authUC := auth.NewAuthUseCase(warehouse, sessions)
	productUC := usecase.NewProductUseCase(warehouse, warehouse, warehouse, runner, activityLog, messages, nil)
	supplierUC := usecase.NewSupplierUseCase(warehouse, activityLog, messages)

	orderIDs := export.NewOrderIDGenerator(erp, cfg.Export.OrderIDPrefix, cfg.Export.OrderIDMaxAttempts, cfg.Export.OrderIDRetryRPS,
		export.WithMetrics(m))
	exportWF := export.NewWorkflow(export.Deps{
		Sessions: sessions,
		Products: inventoryUC,
		Drafts:   drafts,
		Orders:   warehouse,
		Ledger:   erp,
		ERP:      erp,
		OrderIDs: orderIDs,
		Runner:   runner,
		Notifier: newNotifier(cfg.Email, m, log),
		Activity: activityLog,
		Messages: messages,
		Metrics:  m,
		Log:      log.Component("export"),
	}, export.Config{
		PreviewTTL:        cfg.Export.PreviewTTL,
		UpdateERPQuantity: cfg.Export.UpdateERPQuantity,
	})

	reportUC := report.NewUseCase(report.Deps{
		Orders:     warehouse,
		Products:   warehouse,
		Runner:     runner,
		Activity:   activityLog,
		Messages:   messages,
		XLSX:       excel.NewReportWorkbook(),
		PDF:        infrapdf.NewReportPDFGenerator(),
		UndoWindow: cfg.Report.UndoWindow,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Warehouse Web API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Sessions:   sessions,
		AuthUC:     authUC,
		Inventory:  inventoryUC,
		ProductUC:  productUC,
		SupplierUC: supplierUC,
		Exports:    exportWF,
		Reports:    reportUC,
		Activity:   activityLog,
		Commits:    saga.NewJournalQuery(journal),
		Metrics:    m,
		Messages:   messages,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	// envíos pendientes del diario de actividad
	activityLog.Wait()

	log.Info().Msg("aplicación detenida")
}

// newDraftStore Redis si REDIS_ADDR está definido; si no, memoria (una sola instancia).
func newDraftStore(cfg config.RedisConfig, log *logger.Logger) (repository.DraftStore, func()) {
	if cfg.Addr == "" {
		log.Warn().Msg("REDIS_ADDR vacío: borradores de salida en memoria")
		return cache.NewMemoryDraftStore(nil), func() {}
	}
	store, err := cache.NewRedisDraftStore(cache.RedisConfig{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	return store, func() { _ = store.Close() }
}

// newJournal PostgreSQL (con migraciones) si hay base configurada; si no, memoria.
func newJournal(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (repository.CommitJournalRepository, func()) {
	if !cfg.Enabled() {
		log.Warn().Msg("sin base de datos: diario de commits en memoria")
		return memstore.NewCommitJournal(), func() {}
	}
	migrator, err := postgres.NewMigrator(cfg.ConnectionString(), log.Component("migrate"))
	if err != nil {
		log.Fatal().Err(err).Msg("migrador")
	}
	if err := migrator.Up(); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	_ = migrator.Close()

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	return postgres.NewCommitJournalRepository(pool), pool.Close
}

// newNotifier según EMAIL_PROVIDER.
func newNotifier(cfg config.EmailConfig, m *metrics.Metrics, log *logger.Logger) export.Notifier {
	switch cfg.Provider {
	case "emailjs":
		rest := restclient.New("emailjs", cfg.EmailJSEndpoint, 10*time.Second, m, log.Component("emailjs"))
		return notify.NewEmailJS(rest, cfg.EmailJSServiceID, cfg.EmailJSTemplateID, cfg.EmailJSPublicKey)
	case "smtp":
		return notify.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom, cfg.SMTPTo)
	default:
		return notify.Noop{}
	}
}
