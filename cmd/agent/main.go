package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	apiimpl "github.com/segusengineering/worksync/external/api"
	authimpl "github.com/segusengineering/worksync/external/auth"
	configloader "github.com/segusengineering/worksync/external/config"
	journalimpl "github.com/segusengineering/worksync/external/journal"
	notifierimpl "github.com/segusengineering/worksync/external/notifier"
	realtimeimpl "github.com/segusengineering/worksync/external/realtime"
	"github.com/segusengineering/worksync/internal/config"
	"github.com/segusengineering/worksync/internal/events"
	"github.com/segusengineering/worksync/internal/notify"
	"github.com/segusengineering/worksync/internal/realtime"
	"github.com/segusengineering/worksync/internal/session"
	"github.com/segusengineering/worksync/internal/stats"
)

const headerFeedCap = 10

func main() {
	slog.Info("startup: loading configuration")
	cfg := mustLoadConfig()
	initLogger(cfg)
	slog.Info("startup: configuration loaded", "env", cfg.Env, "transport", cfg.Transport)

	slog.Info("startup: building dependency graph")
	injector := setupDI(cfg)

	slog.Info("startup: launching agent")
	runAgent(cfg, injector)
}

func mustLoadConfig() *config.Config {
	cfg, err := configloader.Load()
	if err != nil {
		slog.Error("config validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

func initLogger(cfg *config.Config) {
	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))
}

func setupDI(cfg *config.Config) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideNamed(injector, "toast-feed", func(i do.Injector) (*notify.Feed, error) {
		return notify.NewFeed(), nil
	})
	do.ProvideNamed(injector, "header-feed", func(i do.Injector) (*notify.Feed, error) {
		return notify.NewFeed(notify.NewestFirst(), notify.WithCap(headerFeedCap)), nil
	})
	do.Provide(injector, func(i do.Injector) (*events.Router, error) {
		return events.NewRouter(), nil
	})
	do.Provide(injector, func(i do.Injector) (*stats.View, error) {
		return stats.NewView(), nil
	})
	authimpl.RegisterDI(injector)
	apiimpl.RegisterDI(injector)
	notifierimpl.RegisterDI(injector)
	journalimpl.RegisterDI(injector)
	realtimeimpl.RegisterDI(injector)
	session.RegisterDI(injector)

	return injector
}

func runAgent(cfg *config.Config, injector do.Injector) {
	client := do.MustInvoke[realtime.Client](injector)
	router := do.MustInvoke[*events.Router](injector)
	view := do.MustInvoke[*stats.View](injector)
	manager := do.MustInvoke[*session.Manager](injector)
	api := do.MustInvoke[session.SessionAPI](injector)
	headerFeed := do.MustInvokeNamed[*notify.Feed](injector, "header-feed")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Handlers must be in place before the first frame arrives.
	client.OnFrame(router.Dispatch)
	client.OnStateChange(router.TrackConnection)
	cancelSubs := subscribeTopics(ctx, router, view, headerFeed)
	defer cancelSubs()

	slog.Info("startup: connecting realtime channel")
	if err := client.Connect(ctx); err != nil {
		slog.Error("realtime connect failed", "error", err)
		os.Exit(1)
	}
	defer client.Disconnect()
	slog.Info("startup: realtime channel connected")

	if err := manager.LoadCurrent(ctx); err != nil {
		slog.Warn("could not restore current session", "error", err)
	}
	if cfg.AutoStart {
		manager.MaybeAutoStart(ctx)
	}

	go reloadLoop(ctx, cfg.ReloadInterval, api, view)

	<-ctx.Done()
	slog.Info("shutting down")
}

// subscribeTopics fans routed events into the session list view and the
// header notification feed.
func subscribeTopics(ctx context.Context, router *events.Router, view *stats.View, headerFeed *notify.Feed) func() {
	updates, cancelUpdates := router.WorkSessions().Subscribe()
	states, cancelStates := router.Connection().Subscribe()

	go func() {
		for u := range updates {
			view.ApplyUpdate(u)
			if msg := sessionUpdateMessage(u); msg != "" {
				headerFeed.Add(notify.SeverityInfo, msg)
			}
		}
	}()
	go func() {
		for s := range states {
			slog.Info("realtime state changed", "state", s)
		}
	}()

	go func() {
		<-ctx.Done()
		cancelUpdates()
		cancelStates()
	}()
	return func() {
		cancelUpdates()
		cancelStates()
	}
}

func sessionUpdateMessage(u events.WorkSessionUpdate) string {
	who := u.EmployeeEmail
	if u.Session != nil && u.Session.EmployeeName != "" {
		who = u.Session.EmployeeName
	}
	switch u.Kind {
	case events.KindSessionStarted:
		return fmt.Sprintf("%s a démarré une session", who)
	case events.KindSessionPaused:
		return fmt.Sprintf("%s a mis sa session en pause", who)
	case events.KindSessionResumed:
		return fmt.Sprintf("%s a repris sa session", who)
	case events.KindSessionEnded:
		return fmt.Sprintf("%s a terminé sa session", who)
	}
	return ""
}

// reloadLoop refreshes the full session list on a fixed interval so the view
// converges even if individual push updates were missed.
func reloadLoop(ctx context.Context, interval time.Duration, api session.SessionAPI, view *stats.View) {
	refresh := func() {
		reqCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		sessions, err := api.ListSessions(reqCtx)
		if err != nil {
			slog.Warn("session list refresh failed", "error", err)
			return
		}
		view.ApplySnapshot(sessions)
		slog.Debug("session list refreshed", "count", len(sessions))
	}

	refresh()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			refresh()
		}
	}
}
