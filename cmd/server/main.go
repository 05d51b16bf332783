package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/airboard/airboard/internal/api"
	"github.com/airboard/airboard/internal/auth"
	"github.com/airboard/airboard/internal/config"
	"github.com/airboard/airboard/internal/dataset"
	"github.com/airboard/airboard/internal/store"
	"github.com/airboard/airboard/internal/ws"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	logFormat := flag.String("log-format", "json", "log output format: json | text")
	uiDir := flag.String("ui-dir", "", "serve the dashboard UI static files from this directory (e.g. ui/dist); leave empty to disable")
	flag.Parse()

	// Optional .env for local development (API keys etc.). Missing file is fine.
	_ = godotenv.Load()

	var handler slog.Handler
	if *logFormat == "text" {
		handler = tint.NewHandler(os.Stdout, &tint.Options{Level: slog.LevelInfo})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("airboard-server starting", "config", *configPath)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	slog.Info("config loaded",
		"http_port", cfg.Server.HTTPPort,
		"auth_mode", cfg.Server.Auth.Mode,
		"dataset", cfg.Server.Dataset.Path,
		"top_stations", cfg.Server.Dashboard.TopStations,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// One-shot dataset load: read the columnar table, enrich every row, and
	// freeze it for the process lifetime. Any structural defect aborts startup.
	start := time.Now()
	observations, err := dataset.Load(cfg.Server.Dataset.Path, cfg.Server.Dataset.Options())
	if err != nil {
		slog.Error("failed to load dataset", "path", cfg.Server.Dataset.Path, "err", err)
		os.Exit(1)
	}
	table, err := store.New(observations)
	if err != nil {
		slog.Error("failed to enrich dataset", "err", err)
		os.Exit(1)
	}
	stats := table.Stats()
	slog.Info("dataset loaded",
		"observations", stats.Observations,
		"stations", stats.Stations,
		"years", fmt.Sprintf("%d–%d", stats.YearMin, stats.YearMax),
		"missing", stats.Missing,
		"elapsed", time.Since(start),
	)

	apiHandler := api.New(table, api.Settings{
		TopStations: cfg.Server.Dashboard.TopStations,
	})

	// WebSocket hub — pushes the full snapshot to dashboard clients.
	hub := ws.New(apiHandler, cfg.Server.Dashboard.StreamInterval)
	go hub.Run(ctx)

	// Dashboard settings (ranking cap) apply live on config reload; port,
	// auth, and dataset changes require a restart.
	go func() {
		err := config.Watch(ctx, *configPath, func(updated *config.Config) {
			apiHandler.UpdateSettings(api.Settings{
				TopStations: updated.Server.Dashboard.TopStations,
			})
			slog.Info("dashboard settings applied",
				"top_stations", updated.Server.Dashboard.TopStations)
		})
		if err != nil {
			slog.Error("config watch stopped", "err", err)
		}
	}()

	guard := auth.Middleware(
		cfg.Server.Auth.Mode,
		cfg.Server.Auth.EffectiveHeader(),
		cfg.Server.Auth.Key(),
	)

	httpMux := http.NewServeMux()
	httpMux.Handle("/api/", guard(apiHandler))
	httpMux.Handle("/ws/stream", guard(hub))

	// Optional: serve the pre-built dashboard UI from a local directory.
	// Usage:  ./bin/airboard-server -config config/server.yaml -ui-dir ui/dist
	// The "/" catch-all serves index.html for any unknown path (SPA routing).
	if *uiDir != "" {
		fs := http.FileServer(http.Dir(*uiDir))
		httpMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			// SPA fallback: if the requested file doesn't exist, serve index.html.
			path := *uiDir + r.URL.Path
			if _, err := os.Stat(path); os.IsNotExist(err) {
				http.ServeFile(w, r, *uiDir+"/index.html")
				return
			}
			fs.ServeHTTP(w, r)
		})
		slog.Info("serving UI static files", "dir", *uiDir)
	}

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler: httpMux,
	}
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", "err", err)
		}
	}()

	<-ctx.Done()
	slog.Info("airboard-server shutting down")
	httpSrv.Shutdown(context.Background()) //nolint:errcheck
}
