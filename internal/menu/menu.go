package menu

import (
	"context"
	"errors"
	"fmt"

	"pyironenv/internal/logger"
	"pyironenv/internal/settings"
	"pyironenv/internal/system"
)

// errQuit signals a normal exit from the menu loop.
var errQuit = errors.New("quit")

// Menu coordinates the interactive provisioning workflow.
type Menu struct {
	config           *system.Config
	logger           *logger.ColoredLogger
	bootstrapHandler func() error
	ciHandler        func() error
	cleanHandler     func() error
	confirm          func() (bool, error)
}

// NewMenu creates a new menu manager instance.
func NewMenu(cfg *system.Config, log *logger.ColoredLogger) *Menu {
	m := &Menu{
		config: cfg,
		logger: log,
	}
	m.confirm = m.confirmFirstRun
	return m
}

// SetBootstrapHandler registers the handler executing the bootstrap recipe.
func (m *Menu) SetBootstrapHandler(handler func() error) {
	m.bootstrapHandler = handler
}

// SetCIHandler registers the handler executing the CI pipeline.
func (m *Menu) SetCIHandler(handler func() error) {
	m.ciHandler = handler
}

// SetCleanHandler registers the handler executing the guarded cleanup steps.
func (m *Menu) SetCleanHandler(handler func() error) {
	m.cleanHandler = handler
}

// Show displays the interactive menu until the user quits.
func (m *Menu) Show(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		m.clearScreen()
		m.displayStatus(m.collectStatus())

		options := m.buildOptions()
		selected, err := m.promptSelection(options)
		if err != nil {
			if err.Error() == "^C" {
				m.logger.Info("User cancelled operation")
				return nil
			}
			return fmt.Errorf("failed to process user input: %w", err)
		}

		if err := options[selected].Handler(); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			m.logger.Error("Operation failed: %v", err)
			m.waitForUserInput("\nPress Enter to continue...")
		}
	}
}

func (m *Menu) buildOptions() []Option {
	return []Option{
		{
			Label:       "1. Bootstrap environment",
			Description: "Install extensions, clone resources, write settings",
			Handler:     m.handleBootstrap,
			Enabled:     true,
		},
		{
			Label:       "2. Run CI pipeline",
			Description: "Install dependencies and run test discovery",
			Handler:     m.ciHandler,
			Enabled:     true,
		},
		{
			Label:       "3. Clean stale artefacts",
			Description: "Remove project scaffolding and build leftovers",
			Handler:     m.cleanHandler,
			Enabled:     true,
		},
		{
			Label:   "4. Exit",
			Handler: func() error { return errQuit },
			Enabled: true,
		},
	}
}

// handleBootstrap asks for confirmation before a first-time bootstrap, that
// is, when no settings file exists yet. In CI environments and on an already
// configured environment the question is skipped entirely.
func (m *Menu) handleBootstrap() error {
	if !m.config.CI && !settings.Exists(m.config.SettingsPath) {
		confirmed, err := m.confirm()
		if err != nil {
			return err
		}
		if !confirmed {
			return errors.New("environment was not provisioned")
		}
	}
	return m.bootstrapHandler()
}

func (m *Menu) clearScreen() {
	fmt.Print("\033[H\033[2J")
}

func (m *Menu) waitForUserInput(prompt string) {
	fmt.Print(prompt)
	fmt.Scanln()
}
