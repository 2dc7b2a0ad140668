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
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"

	"github.com/jhoicas/cuentas-por-pagar/internal/application/analytics"
	"github.com/jhoicas/cuentas-por-pagar/internal/application/auth"
	"github.com/jhoicas/cuentas-por-pagar/internal/application/payables"
	"github.com/jhoicas/cuentas-por-pagar/internal/infrastructure/datastore"
	"github.com/jhoicas/cuentas-por-pagar/internal/infrastructure/filestore"
	infrapdf "github.com/jhoicas/cuentas-por-pagar/internal/infrastructure/pdf"
	"github.com/jhoicas/cuentas-por-pagar/internal/infrastructure/sessionstore"
	httpRouter "github.com/jhoicas/cuentas-por-pagar/internal/interfaces/http"
	"github.com/jhoicas/cuentas-por-pagar/pkg/config"
	"github.com/jhoicas/cuentas-por-pagar/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := datastore.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("conexión a la base de datos")
	}
	defer func() { _ = store.Close() }()

	// Sesiones y tokens revocados comparten almacenamiento: Redis si está configurado, memoria si no.
	var sessionStorage fiber.Storage
	if cfg.Redis.Enabled() {
		rs, err := sessionstore.NewRedis(ctx, cfg.Redis, "cxp:")
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		sessionStorage = rs
	} else {
		sessionStorage = sessionstore.NewMemory(time.Minute)
	}
	defer func() { _ = sessionStorage.Close() }()

	files, err := filestore.NewLocal(cfg.Storage.UploadDir, int64(cfg.Storage.MaxUploadMB)<<20)
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de adjuntos")
	}

	repos := store.Repos
	authUC := auth.NewAuthUseCase(repos.Users, sessionstore.NewBlacklist(sessionStorage), auth.TokenConfig{
		Secret: cfg.Session.Secret,
		TTL:    cfg.Session.TTL(),
		Issuer: cfg.Session.Issuer,
	})
	if n, err := repos.Users.Count(ctx); err != nil {
		log.Fatal().Err(err).Msg("consultar usuarios")
	} else if n == 0 {
		log.Warn().Msg("no hay usuarios: ejecuta cmd/seed para crear admin y user")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    (cfg.Storage.MaxUploadMB + 1) << 20,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(httpRouter.Observe(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Cuentas por Pagar API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "db": store.Driver})
	})
	app.Get("/metrics", httpRouter.MetricsHandler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		SupplierUC:  payables.NewSupplierUseCase(repos.Suppliers),
		DebtUC:      payables.NewDebtUseCase(repos.Debts),
		InvoiceUC:   payables.NewInvoiceUseCase(repos.Invoices, files),
		PaymentUC:   payables.NewPaymentUseCase(repos.Payments, files),
		StatementUC: payables.NewStatementUseCase(store.Tx, infrapdf.NewStatementGenerator(cfg.App.Name)),
		DashboardUC: analytics.NewDashboardUseCase(repos),
		Sessions: session.New(session.Config{
			Storage:        sessionStorage,
			Expiration:     cfg.Session.TTL(),
			KeyLookup:      "cookie:" + cfg.Session.CookieName,
			CookieHTTPOnly: true,
			CookieSecure:   cfg.App.IsProduction(),
			CookieSameSite: fiber.CookieSameSiteLaxMode,
		}),
		AppName: cfg.App.Name,
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

	log.Info().Msg("aplicación detenida")
}
