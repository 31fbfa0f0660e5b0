package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/stock-advisor/internal/application/analysis"
	"github.com/tu-usuario/stock-advisor/internal/infrastructure/postgres"
	"github.com/tu-usuario/stock-advisor/internal/infrastructure/trends"
	httpRouter "github.com/tu-usuario/stock-advisor/internal/interfaces/http"
	"github.com/tu-usuario/stock-advisor/pkg/config"
	"github.com/tu-usuario/stock-advisor/pkg/logger"
)

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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	historyRepo := postgres.NewHistoryRepository(pool)
	trendClient := trends.NewClient(cfg.Trends, log)
	if !trendClient.Enabled() {
		log.Warn().Msg("cliente de tendencias deshabilitado: los pronósticos corren sin ajuste externo")
	}

	assistantUC := analysis.NewAssistantUseCase(historyRepo, trendClient, log)
	advisorUC := analysis.NewAdvisorUseCase(historyRepo, log)
	reorderUC := analysis.NewReorderUseCase(historyRepo, log)
	planUC := analysis.NewPlanUseCase(historyRepo, log)
	productForecastUC := analysis.NewProductForecastUseCase(historyRepo, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60, // las corridas bulk con tendencias pueden tardar
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AssistantUC:       assistantUC,
		AdvisorUC:         advisorUC,
		ReorderUC:         reorderUC,
		PlanUC:            planUC,
		ProductForecastUC: productForecastUC,
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
