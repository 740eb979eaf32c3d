// Package app assembles the bot: configuration, logging, storage,
// conversation engine, membership gate, and the Telegram runtime.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/uma-mfg/societybot/internal/config"
	"github.com/uma-mfg/societybot/internal/database"
	"github.com/uma-mfg/societybot/internal/flow"
	"github.com/uma-mfg/societybot/internal/health"
	"github.com/uma-mfg/societybot/internal/logger"
	"github.com/uma-mfg/societybot/internal/membership"
	"github.com/uma-mfg/societybot/internal/store"
	tg "github.com/uma-mfg/societybot/internal/telegram"
	"github.com/uma-mfg/societybot/internal/telegram/handlers"
	"github.com/uma-mfg/societybot/internal/telegram/notify"
	"github.com/uma-mfg/societybot/internal/telegram/router"
)

// App holds the assembled application.
type App struct {
	cfg      *config.Config
	db       *sqlx.DB
	st       *store.Store
	engine   *flow.Engine
	handlers *handlers.Handlers
	registry *tg.Registry
	checker  *lateChecker
}

// lateChecker defers the membership checker until the bot client
// exists. Checks before that fail, which the gate treats as
// non-membership.
type lateChecker struct {
	mu    sync.RWMutex
	inner membership.Checker
}

func (l *lateChecker) set(c membership.Checker) {
	l.mu.Lock()
	l.inner = c
	l.mu.Unlock()
}

func (l *lateChecker) IsMember(ctx context.Context, userID int64) (bool, error) {
	l.mu.RLock()
	inner := l.inner
	l.mu.RUnlock()
	if inner == nil {
		return false, fmt.Errorf("membership checker not ready")
	}
	return inner.IsMember(ctx, userID)
}

// New bootstraps infrastructure and wires the application graph.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config provided")
	}

	if err := logger.Init(cfg); err != nil {
		return nil, fmt.Errorf("app: logger init failed: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("app: database initialization failed: %w", err)
	}
	if err := database.RunMigrations(cfg.Database); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("app: migrations failed: %w", err)
	}
	if err := database.Seed(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("app: seeding failed: %w", err)
	}

	st := store.New(db, cfg.Limits.MessagesPerDay)

	sessions := flow.NewSessions(time.Duration(cfg.Limits.SessionTTLMinutes) * time.Minute)
	engine := flow.NewEngine(st, sessions, flow.Options{
		MessagesPerDay:   cfg.Limits.MessagesPerDay,
		StrictNationalID: cfg.Limits.StrictNationalID,
	})

	checker := &lateChecker{}
	gate := membership.NewGate(checker,
		cfg.Limits.MembershipChecks,
		time.Duration(cfg.Limits.MembershipWindowMinutes)*time.Minute,
	)

	h := handlers.New(cfg, st, engine, gate, nil)
	registry := tg.NewRegistry()
	h.Register(registry)

	return &App{
		cfg:      cfg,
		db:       db,
		st:       st,
		engine:   engine,
		handlers: h,
		registry: registry,
		checker:  checker,
	}, nil
}

// Run starts the health endpoint and the Telegram runtime, blocking
// until the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if err := a.db.Close(); err != nil {
			logger.DB.Error("database close failed",
				slog.String("event", "db.close"),
				slog.String("err", err.Error()),
			)
		}
	}()

	if a.cfg.Health.Enabled {
		srv := health.NewServer(a.cfg.Health.Port)
		go func() {
			if err := srv.Start(ctx); err != nil && ctx.Err() == nil {
				logger.HC.Error("health endpoint failed",
					slog.String("event", "health.start"),
					slog.String("err", err.Error()),
				)
			}
		}()
	}

	routes := router.CommandRoutes(a.registry, router.Options{
		AdminIDs: a.cfg.Telegram.AdminIDs,
	})
	routes = append(routes, router.CallbackRoute(a.registry))
	routes = append(routes, router.TextRoute(a.handlers, a.registry, router.Options{}))

	startedAt := time.Now()
	return tg.RunTelegram(ctx, tg.RunOptions{
		Config:      a.cfg,
		Registry:    a.registry,
		Middlewares: tg.DefaultMiddlewares(a.cfg, nil),
		Routes:      routes,
		OnStart: func(ctx context.Context, rt tg.Runtime) error {
			a.checker.set(handlers.NewChannelChecker(rt.Bot, a.cfg.Channel.ID))
			a.handlers.SetNotifier(notify.New(rt.Bot, rt.Dispatcher, a.cfg.Telegram.AdminIDs))
			logger.L.With("component", "app").Info("app ready",
				slog.String("event", "ready"),
				slog.Duration("startup_duration", logger.RoundMS(time.Since(startedAt))),
			)
			return nil
		},
	})
}
