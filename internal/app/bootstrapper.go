package app

import (
	"context"
	"path/filepath"

	"github.com/pkg/errors"

	"pyironenv/internal/cleanup"
	"pyironenv/internal/logger"
	"pyironenv/internal/manifest"
	"pyironenv/internal/pkgmgr"
	"pyironenv/internal/resources"
	"pyironenv/internal/settings"
	"pyironenv/internal/store"
	"pyironenv/internal/system"
)

// Bootstrapper executes the full environment bootstrap recipe.
type Bootstrapper struct {
	config   *system.Config
	manifest *manifest.Manifest
	logger   *logger.ColoredLogger
	jupyter  *pkgmgr.JupyterManager
	fetcher  *resources.Fetcher
	cleaner  *cleanup.Cleaner
}

// NewBootstrapper creates a Bootstrapper. Tool managers are constructed here
// to keep app wiring minimal.
func NewBootstrapper(cfg *system.Config, m *manifest.Manifest, log *logger.ColoredLogger, exec pkgmgr.Executor) *Bootstrapper {
	return &Bootstrapper{
		config:   cfg,
		manifest: m,
		logger:   log,
		jupyter:  pkgmgr.NewJupyterManager(exec),
		fetcher:  resources.NewFetcher(cfg.HomeDir, cfg.WorkDir, exec, log),
		cleaner:  cleanup.NewCleaner(cfg.HomeDir, nil, log),
	}
}

// Bootstrap runs the recipe steps strictly in order. The first failure aborts
// the run; there is no retry or rollback, matching the fixed linear recipe
// this tool replaces.
func (b *Bootstrapper) Bootstrap(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"Validate environment", b.config.Validate},
		{"Install notebook extensions", b.installExtensions},
		{"Fetch resource bundles", b.fetchResources},
		{"Write settings file", b.writeSettings},
		{"Bootstrap job database", func() error { return b.bootstrapJobDatabase(ctx) }},
		{"Relocate notebooks", b.relocateNotebooks},
		{"Remove project scaffolding", b.removeScaffolding},
		{"Remove conda build artefacts", b.cleaner.RemoveCondaBuild},
		{"Remove stale README", b.cleaner.RemoveReadme},
	}

	for _, step := range steps {
		b.logger.Progress(step.name)
		if err := step.fn(); err != nil {
			return errors.Wrapf(err, "%s failed", step.name)
		}
		b.logger.ProgressDone(step.name)
	}

	b.logger.Success("Environment bootstrap completed")
	return nil
}

func (b *Bootstrapper) installExtensions() error {
	exts := make([]pkgmgr.LabExtension, 0, len(b.manifest.Extensions))
	for _, entry := range b.manifest.Extensions {
		exts = append(exts, pkgmgr.LabExtension{
			Name:    entry.Name,
			Version: entry.Version,
		})
	}
	return b.jupyter.InstallExtensions(exts)
}

func (b *Bootstrapper) fetchResources() error {
	return b.fetcher.FetchAll(b.manifest.Resources)
}

func (b *Bootstrapper) writeSettings() error {
	cfg := settings.Default(b.config.HomeDir)
	return cfg.Write(b.config.SettingsPath)
}

func (b *Bootstrapper) bootstrapJobDatabase(ctx context.Context) error {
	jobStore, err := store.Open(filepath.Join(b.config.ResourcesDir(), store.DefaultFileName))
	if err != nil {
		return err
	}
	defer jobStore.Close()

	return jobStore.Bootstrap(ctx)
}

func (b *Bootstrapper) relocateNotebooks() error {
	return resources.RelocateNotebooks(b.config.WorkDir, b.logger)
}

func (b *Bootstrapper) removeScaffolding() error {
	return b.cleaner.RemoveScaffolding(b.manifest.Scaffolding)
}

// Clean runs only the guarded cleanup steps. Used when the environment is
// already provisioned but stale artefacts remain.
func (b *Bootstrapper) Clean() error {
	if err := b.removeScaffolding(); err != nil {
		return err
	}
	if err := b.cleaner.RemoveCondaBuild(); err != nil {
		return err
	}
	return b.cleaner.RemoveReadme()
}
