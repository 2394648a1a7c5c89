package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	versioncollector "github.com/prometheus/client_golang/prometheus/collectors/version"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/version"

	"github.com/technitium-tools/technitium-exporter/internal/collector"
	"github.com/technitium-tools/technitium-exporter/internal/config"
	"github.com/technitium-tools/technitium-exporter/internal/technitium"
)

const landingPage = `<html>
<head><title>Technitium DNS Exporter</title></head>
<body>
<h1>Technitium DNS Exporter</h1>
<p><a href="/metrics">Metrics</a></p>
</body>
</html>
`

func main() {
	configPath := flag.String("config", "", "path to optional YAML config file; environment variables take precedence")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel()}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	slog.Info("technitium-exporter starting",
		"version", version.Version,
		"base_url", cfg.BaseURL,
		"port", cfg.ListenPort,
		"server_label", cfg.ServerLabel,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// The running configuration is immutable; the watcher only tells the
	// operator that a restart is needed to pick up file edits.
	if *configPath != "" {
		go func() {
			if err := config.Watch(ctx, *configPath, func(*config.Config) {
				slog.Info("config file updated; restart to apply")
			}); err != nil {
				slog.Error("config watcher stopped", "err", err)
			}
		}()
	}

	client := technitium.NewClient(cfg)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collector.New(client, cfg),
		versioncollector.NewCollector("technitium_exporter"),
	)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, landingPage)
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ListenPort),
		Handler: mux,
	}
	go func() {
		slog.Info("metrics server listening", "port", cfg.ListenPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics server stopped", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("technitium-exporter shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}

// logLevel reads LOG_LEVEL, defaulting to info.
func logLevel() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
