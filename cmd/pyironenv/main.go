package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"pyironenv/internal/app"
	"pyironenv/internal/ci"
	"pyironenv/internal/logger"
	"pyironenv/internal/manifest"
	"pyironenv/internal/system"
)

func main() {
	var (
		bootstrapMode = flag.Bool("bootstrap", false, "run the environment bootstrap recipe and exit")
		ciMode        = flag.Bool("ci", false, "run the CI pipeline and exit")
		manifestPath  = flag.String("manifest", "", "optional manifest file overriding the embedded defaults")
		verbose       = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	log := logger.NewColoredLogger()
	if *verbose {
		log.SetLevel(logger.LevelDebug)
	}

	cfg, err := system.LoadConfig()
	if err != nil {
		log.Error("Environment detection failed: %v", err)
		os.Exit(1)
	}

	m, err := loadManifest(*manifestPath)
	if err != nil {
		log.Error("Manifest loading failed: %v", err)
		os.Exit(1)
	}

	application := app.New(cfg, m, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("Received exit signal, shutting down gracefully...")
		cancel()
	}()

	switch {
	case *ciMode:
		if err := application.RunCI(); err != nil {
			log.Error("CI pipeline failed: %v", err)
			os.Exit(ci.ExitCode(err))
		}
	case *bootstrapMode:
		if err := application.Bootstrap(ctx); err != nil {
			log.Error("Bootstrap failed: %v", err)
			os.Exit(1)
		}
	default:
		if err := application.Run(ctx); err != nil {
			log.Error("Application failed to run: %v", err)
			os.Exit(1)
		}
	}

	log.Info("pyironenv exited safely")
}

func loadManifest(overridePath string) (*manifest.Manifest, error) {
	base, err := manifest.Base()
	if err != nil {
		return nil, err
	}

	if overridePath == "" {
		return base, nil
	}

	override, err := manifest.Load(overridePath)
	if err != nil {
		return nil, err
	}

	return manifest.Merge(base, override)
}
