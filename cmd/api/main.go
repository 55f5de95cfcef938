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

	appanalytics "github.com/jhoicas/stock-register/internal/application/analytics"
	"github.com/jhoicas/stock-register/internal/application/audit"
	"github.com/jhoicas/stock-register/internal/application/inventory"
	"github.com/jhoicas/stock-register/internal/domain/repository"
	"github.com/jhoicas/stock-register/internal/infrastructure/cache"
	"github.com/jhoicas/stock-register/internal/infrastructure/memory"
	"github.com/jhoicas/stock-register/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-register/internal/infrastructure/rest"
	"github.com/jhoicas/stock-register/internal/infrastructure/ws"
	httpRouter "github.com/jhoicas/stock-register/internal/interfaces/http"
	"github.com/jhoicas/stock-register/pkg/config"
	"github.com/jhoicas/stock-register/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// stores agrupa los puertos de almacenamiento del driver elegido.
type stores struct {
	catalog   repository.CatalogRepository
	movements repository.MovementRepository
	logs      repository.AuditLogRepository
	employees repository.EmployeeRepository
	suppliers repository.SupplierRepository
	close     func()
}

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
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	loc, err := cfg.Report.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria de reportes")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	st, err := openStores(ctx, cfg, loc, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("abrir almacenamiento")
	}
	defer st.close()

	snapshotCache, closeCache := openCache(ctx, cfg, log)
	defer closeCache()

	hub := ws.NewHub(log.Component("ws"), 256)
	go hub.Run(ctx)

	loader := inventory.NewLoader(st.catalog, st.movements)
	movementUC := inventory.NewMovementUseCase(st.movements, hub, loc)
	stockUC := inventory.NewStockUseCase(loader, snapshotCache, log.Component("stock"))
	replenishmentUC := inventory.NewReplenishmentUseCase(loader)
	trail := audit.NewTrail(st.movements, st.logs, hub, log.Component("audit"))
	dashboardUC := appanalytics.NewDashboardUseCase(loader, st.employees, loc)
	overviewUC := appanalytics.NewBranchOverviewUseCase(loader, st.employees, st.suppliers)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Stock Register API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Movements:     movementUC,
		Stock:         stockUC,
		Replenishment: replenishmentUC,
		Trail:         trail,
		Dashboard:     dashboardUC,
		Overview:      overviewUC,
		Hub:           hub,
		JWTSecret:     cfg.JWT.Secret,
		JWTIssuer:     cfg.JWT.Issuer,
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
	// Primero el hub: cierra los websockets para que el apagado de fiber no espere por ellos.
	stop()
	<-hub.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStores construye los adaptadores según STORE_DRIVER.
func openStores(ctx context.Context, cfg *config.Config, loc *time.Location, log *logger.Logger) (*stores, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Int("max_conns", cfg.DB.MaxConns).Msg("PostgreSQL listo")
		return &stores{
			catalog:   postgres.NewCatalogRepository(pool),
			movements: postgres.NewMovementRepository(pool),
			logs:      postgres.NewAuditLogRepository(pool),
			employees: postgres.NewEmployeeRepository(pool),
			suppliers: postgres.NewSupplierRepository(pool),
			close:     pool.Close,
		}, nil

	case config.DriverREST:
		s := rest.NewStore(rest.NewClient(cfg.Backend.URL, cfg.Backend.APIKey, cfg.Backend.Timeout()))
		log.Info().Str("url", cfg.Backend.URL).Msg("backend REST configurado")
		return &stores{catalog: s, movements: s, logs: s, employees: s, suppliers: s, close: func() {}}, nil

	default:
		s := memory.NewStore()
		memory.SeedDefaults(s, loc)
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return &stores{catalog: s, movements: s, logs: s, employees: s, suppliers: s, close: func() {}}, nil
	}
}

// openCache usa redis si REDIS_URL está definido y responde; si no, la caché en memoria.
// El closer libera el cliente redis; con caché en memoria no hace nada.
func openCache(ctx context.Context, cfg *config.Config, log *logger.Logger) (inventory.SnapshotCache, func()) {
	if cfg.Redis.URL == "" {
		return cache.NewMemorySnapshotCache(cfg.Redis.TTL()), func() {}
	}
	client, err := cache.NewRedisClient(ctx, cfg.Redis.URL, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Warn().Err(err).Msg("redis no disponible, se usa caché en memoria")
		return cache.NewMemorySnapshotCache(cfg.Redis.TTL()), func() {}
	}
	log.Info().Dur("ttl", cfg.Redis.TTL()).Msg("caché de snapshots en redis")
	rc := cache.NewRedisSnapshotCache(client, cfg.Redis.TTL())
	return rc, func() {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("cerrar cliente redis")
		}
	}
}
