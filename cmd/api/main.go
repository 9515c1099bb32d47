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

	"github.com/jhoicas/saldos-api/internal/application/auth"
	"github.com/jhoicas/saldos-api/internal/application/balances"
	"github.com/jhoicas/saldos-api/internal/application/ports"
	"github.com/jhoicas/saldos-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/saldos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/saldos-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/saldos-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/saldos-api/internal/interfaces/http"
	"github.com/jhoicas/saldos-api/pkg/config"
	"github.com/jhoicas/saldos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	ledgerPool, err := postgres.NewPool(ctx, cfg.LedgerDB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a la base del kárdex")
	}
	defer ledgerPool.Close()

	stockPool, err := postgres.NewPool(ctx, cfg.StockDB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a la base de bodega")
	}
	defer stockPool.Close()

	// Caché opcional: sin REDIS_ADDR la API funciona igual, solo recalcula.
	var cache ports.Cache
	if cfg.Redis.Addr != "" {
		redisCache, err := infraredis.NewCache(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisCache.Close()
		cache = redisCache
	} else {
		log.Warn().Msg("REDIS_ADDR vacío, caché deshabilitado")
	}

	ledgerRepo := postgres.NewLedgerBalanceRepository(ledgerPool)
	stockRepo := postgres.NewStockBalanceRepository(stockPool)
	materialRepo := postgres.NewMaterialRepository(ledgerPool)
	stockMaterialRepo := postgres.NewStockMaterialRepository(stockPool)
	catalogRepo := postgres.NewCatalogRepository(ledgerPool)
	userRepo := postgres.NewUserRepository(ledgerPool)

	reportGenerator := infrapdf.NewMarotoReportGenerator()

	balancesUC := balances.New(
		ledgerRepo, stockRepo, cache, reportGenerator,
		cfg.Sources.Timeout, cfg.Sources.CacheTTL,
	)
	materialUC := usecase.NewMaterialUseCase(materialRepo, stockMaterialRepo, cache)
	catalogUC := usecase.NewCatalogUseCase(catalogRepo, cache)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Saldos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		BalancesUC: balancesUC,
		MaterialUC: materialUC,
		CatalogUC:  catalogUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
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
