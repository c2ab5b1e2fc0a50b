package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"skill-daily/internal/cache"
	"skill-daily/internal/config"
	"skill-daily/internal/fallback"
	"skill-daily/internal/handler"
	applog "skill-daily/internal/logger"
	"skill-daily/internal/middleware"
	"skill-daily/internal/progress"
	"skill-daily/internal/service"
	"skill-daily/internal/store"

	"golang.org/x/sync/errgroup"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	cfg := config.Load(*configFile)
	closer := applog.Init(cfg.Log)
	defer closer.Close()

	if err := run(cfg); err != nil {
		slog.Error("server failed", "err", err)
		closer.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := cfg.OpenGormDB()
	if err != nil {
		return err
	}
	if err := store.Migrate(db); err != nil {
		return err
	}

	planCache := cache.New(cache.WithTTL(cfg.CacheTTL()))
	gen, err := newGenerator(ctx, cfg.AI)
	if err != nil {
		slog.Warn("ai generator disabled", "provider", cfg.AI.Provider, "err", err)
	}

	jwt := middleware.NewJWT(cfg.Auth.JWTSecret, cfg.TokenTTL())
	skillSvc := service.NewSkillService(db)
	planSvc := service.NewPlanService(planCache, gen, fallback.Default(), cfg.AITimeout())

	r := handler.NewRouter(handler.Handlers{
		Auth:     handler.NewAuthHandler(service.NewAuthService(db), jwt),
		Skill:    handler.NewSkillHandler(skillSvc),
		Progress: handler.NewProgressHandler(progress.NewService(store.NewGorm(db))),
		Plan:     handler.NewPlanHandler(planSvc, skillSvc),
		Cache:    handler.NewCacheHandler(planCache),
	}, jwt, cfg.Auth.AdminUserIDs)

	srv := &http.Server{Addr: cfg.Addr(), Handler: r}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server starting", "addr", cfg.Addr(), "db", cfg.Database.Driver, "ai", cfg.AI.Provider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		planCache.Run(gctx, cfg.SweepInterval())
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("server shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}

// newGenerator returns nil when no provider is configured; plans then come
// from the fallback templates only.
func newGenerator(ctx context.Context, ai config.AIConfig) (service.PlanGenerator, error) {
	switch ai.Provider {
	case "":
		return nil, nil
	case "gemini":
		g, err := service.NewGeminiGenerator(ctx, ai.APIKey, ai.Model)
		if err != nil {
			return nil, err
		}
		return g, nil
	case "proxy":
		if ai.BaseURL == "" {
			return nil, errors.New("ai.base_url is required for the proxy provider")
		}
		return service.NewProxyGenerator(ai.BaseURL, ai.APIKey, ai.Model), nil
	default:
		return nil, errors.New("unknown ai provider " + ai.Provider)
	}
}
