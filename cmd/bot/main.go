package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	paylens "github.com/northarc/paylens"
	"github.com/northarc/paylens/internal/clock"
	"github.com/northarc/paylens/internal/config"
	"github.com/northarc/paylens/internal/handler"
	"github.com/northarc/paylens/internal/importer"
	"github.com/northarc/paylens/internal/middleware"
	"github.com/northarc/paylens/internal/repository"
	"github.com/northarc/paylens/internal/service"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("failed to resolve timezone", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Select payment source
	var source repository.Source
	if cfg.DatabaseURL != "" {
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		migrationsFS, err := fs.Sub(paylens.MigrationsFS, "migrations")
		if err != nil {
			slog.Error("failed to load embedded migrations", "error", err)
			os.Exit(1)
		}
		if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}

		source = repository.NewPostgres(pool)
		slog.Info("using postgres payment source")
	} else {
		payments, err := importer.ParseHTMLFile(cfg.ExportFile)
		if err != nil {
			slog.Error("failed to import payments export", "file", cfg.ExportFile, "error", err)
			os.Exit(1)
		}
		source = repository.NewMemory(payments)
		slog.Info("using in-memory payment source", "file", cfg.ExportFile, "payments", len(payments))
	}

	// Initialize services
	queries := service.NewQueryService(source, clock.NewSystem(loc))
	reports := service.NewReports(queries)

	// Create bot
	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
		),
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	// Initialize handler and register commands
	h := handler.New(handler.Deps{
		Bot:     b,
		Cfg:     cfg,
		Queries: queries,
		Reports: reports,
	})
	h.Register()

	// Start bot
	slog.Info("starting bot", "timezone", cfg.Timezone)
	b.Start(ctx)

	slog.Info("bot stopped gracefully")
}
