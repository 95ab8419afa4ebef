package app

import (
	"context"

	"pyironenv/internal/ci"
	"pyironenv/internal/logger"
	"pyironenv/internal/manifest"
	"pyironenv/internal/menu"
	"pyironenv/internal/pkgmgr"
	"pyironenv/internal/system"
)

// App wires the interactive menu, the bootstrapper and the CI harness.
type App struct {
	config       *system.Config
	manifest     *manifest.Manifest
	logger       *logger.ColoredLogger
	menu         *menu.Menu
	bootstrapper *Bootstrapper
	harness      *ci.Harness
}

// New builds the application with its default executor.
func New(cfg *system.Config, m *manifest.Manifest, log *logger.ColoredLogger) *App {
	exec := pkgmgr.SystemExecutor{}

	a := &App{
		config:   cfg,
		manifest: m,
		logger:   log,
	}

	a.bootstrapper = NewBootstrapper(cfg, m, log, exec)
	a.harness = ci.NewHarness(cfg.WorkDir, cfg.SettingsPath, m, exec, log)

	a.menu = menu.NewMenu(cfg, log)
	a.menu.SetBootstrapHandler(func() error { return a.bootstrapper.Bootstrap(context.Background()) })
	a.menu.SetCIHandler(a.harness.Run)
	a.menu.SetCleanHandler(a.bootstrapper.Clean)

	return a
}

// Run starts the interactive menu loop.
func (a *App) Run(ctx context.Context) error {
	return a.menu.Show(ctx)
}

// Bootstrap executes the bootstrap recipe without the menu.
func (a *App) Bootstrap(ctx context.Context) error {
	return a.bootstrapper.Bootstrap(ctx)
}

// RunCI executes the CI pipeline without the menu.
func (a *App) RunCI() error {
	return a.harness.Run()
}
