package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"github.com/budcare/budcare-registry/pkg/api"
	"github.com/budcare/budcare-registry/pkg/chassis"
	"github.com/budcare/budcare-registry/pkg/clinics"
	"github.com/budcare/budcare-registry/pkg/dataset"
	"github.com/budcare/budcare-registry/pkg/importer"
	"github.com/budcare/budcare-registry/pkg/page"
	"github.com/budcare/budcare-registry/pkg/strains"
)

const version = "1.0.0"

type config struct {
	Addr    string `yaml:"addr"`
	DataDir string `yaml:"data_dir"`

	// TLS: when both are empty a self-signed dev cert is generated.
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`

	LogLevel string `yaml:"log_level"`

	// WebhookURL receives pushed listing pages. Empty disables push.
	WebhookURL string `yaml:"webhook_url"`

	StrainThreshold float64 `yaml:"strain_threshold"`
	ClinicThreshold float64 `yaml:"clinic_threshold"`

	// SourceCheckInterval controls how often import source URLs are
	// probed (e.g. "30m"). Empty disables the checker.
	SourceCheckInterval string `yaml:"source_check_interval"`
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		cmdServe(os.Args[2:])
	case "import":
		cmdImport(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: budcare <command>\n\nCommands:\n  serve    Start the registry server\n  import   Refresh dataset snapshots from upstream sources\n")
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	bootLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cfg := loadConfig(*cfgPath, bootLogger)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	// Make sure both snapshots exist so a fresh install starts empty
	// instead of crashing.
	if err := ensureSnapshots(cfg.DataDir); err != nil {
		logger.Error("failed to prepare data dir", "error", err)
		os.Exit(1)
	}

	catalog := dataset.NewCatalog(cfg.DataDir)
	catalog.Load()
	logger.Info("datasets loaded", "strains", catalog.StrainCount(), "clinics", catalog.ClinicCount())

	svc := &api.Service{
		Catalog: catalog,
		Strains: strains.NewFinder(strains.DefaultAliases(), strains.DefaultProducers(), cfg.StrainThreshold),
		Clinics: clinics.NewFinder(cfg.ClinicThreshold),
	}
	if cfg.WebhookURL != "" {
		svc.Deliverer = page.NewWebhook(cfg.WebhookURL)
		logger.Info("push delivery enabled", "webhook", cfg.WebhookURL)
	}

	router := api.NewRouter(svc)

	mcpSrv := server.NewMCPServer("budcare-registry", version,
		server.WithToolCapabilities(false),
	)
	api.RegisterMCPTools(mcpSrv, svc)

	srv, err := chassis.New(chassis.Config{
		Addr:      cfg.Addr,
		CertFile:  cfg.CertFile,
		KeyFile:   cfg.KeyFile,
		Handler:   router,
		MCPServer: mcpSrv,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("failed to build server", "error", err)
		os.Exit(1)
	}

	// SIGHUP: hot reload datasets.
	// SIGINT/SIGTERM: graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	go func() {
		for range sighup {
			logger.Info("SIGHUP received, reloading datasets")
			catalog.Reload()
			logger.Info("datasets reloaded", "strains", catalog.StrainCount(), "clinics", catalog.ClinicCount())
		}
	}()

	// Periodic availability checks on import sources, when enabled.
	if cfg.SourceCheckInterval != "" {
		interval, err := time.ParseDuration(cfg.SourceCheckInterval)
		if err != nil {
			logger.Error("invalid source_check_interval", "value", cfg.SourceCheckInterval, "error", err)
			os.Exit(1)
		}
		sdb, err := importer.OpenSourceDB(sourceDBPath(cfg.DataDir))
		if err != nil {
			logger.Warn("source checker disabled", "error", err)
		} else {
			defer sdb.Close()
			if err := sdb.Seed(importer.All()); err != nil {
				logger.Warn("seed import sources", "error", err)
			}
			go importer.NewChecker(sdb, logger, interval).Start(ctx)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("budcare registry listening", "addr", cfg.Addr)
		errCh <- srv.Start(ctx)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Stop(shutdownCtx)
}

func ensureSnapshots(dataDir string) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}
	for _, name := range []string{dataset.StrainsFile, dataset.ClinicsFile} {
		if err := dataset.EnsureFile(filepath.Join(dataDir, name), "[]\n"); err != nil {
			return err
		}
	}
	return nil
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func loadConfig(path string, logger *slog.Logger) config {
	cfg := config{
		Addr:            ":8420",
		DataDir:         "data",
		StrainThreshold: strains.DefaultThreshold,
		ClinicThreshold: clinics.DefaultThreshold,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("no config file, using defaults", "path", path)
			return cfg
		}
		logger.Error("read config", "error", err)
		os.Exit(1)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Error("parse config", "error", err)
		os.Exit(1)
	}
	return cfg
}
