package menu

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pyironenv/internal/settings"
	"pyironenv/internal/store"
)

// Status summarises the provisioning state shown above the menu.
type Status struct {
	SettingsPresent bool
	TopLevelDirs    []string
	ResourcePaths   []string
	ResourcesCloned bool
	JobTablePresent bool
}

func (m *Menu) collectStatus() Status {
	status := Status{}

	if settings.Exists(m.config.SettingsPath) {
		status.SettingsPresent = true
		if cfg, err := settings.Parse(m.config.SettingsPath); err == nil {
			status.TopLevelDirs = cfg.TopLevelDirs
			status.ResourcePaths = cfg.ResourcePaths
		}
	}

	if info, err := os.Stat(m.config.ResourcesDir()); err == nil && info.IsDir() {
		status.ResourcesCloned = true
	}

	status.JobTablePresent = m.probeJobTable()
	return status
}

func (m *Menu) probeJobTable() bool {
	path := filepath.Join(m.config.ResourcesDir(), store.DefaultFileName)
	if _, err := os.Stat(path); err != nil {
		return false
	}

	jobStore, err := store.Open(path)
	if err != nil {
		return false
	}
	defer jobStore.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	present, err := jobStore.HasJobTable(ctx)
	return err == nil && present
}

func (m *Menu) displayStatus(status Status) {
	m.logger.Info("Settings file: %s", presence(status.SettingsPresent, m.config.SettingsPath))
	if status.SettingsPresent {
		m.logger.Info("Top-level dirs: %s", strings.Join(status.TopLevelDirs, ", "))
		m.logger.Info("Resource paths: %s", strings.Join(status.ResourcePaths, ", "))
	}
	m.logger.Info("Resource bundle: %s", presence(status.ResourcesCloned, m.config.ResourcesDir()))
	m.logger.Info("Job database: %s", presence(status.JobTablePresent, "jobs table ready"))
}

func presence(ok bool, detail string) string {
	if ok {
		return "🟢 " + detail
	}
	return "⚪ not configured"
}
