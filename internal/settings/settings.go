package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "pyironenv/internal/errors"
)

// Key names written to the settings file. The consuming application resolves
// its directory layout through exactly these two entries.
const (
	KeyTopLevelDirs  = "TOP_LEVEL_DIRS"
	KeyResourcePaths = "RESOURCE_PATHS"
)

const sectionDefault = "[DEFAULT]"

// Settings models the single-section settings file consumed at application
// startup to locate project and resource directories.
type Settings struct {
	TopLevelDirs  []string
	ResourcePaths []string
}

// Default returns the settings for a standard home-directory installation:
// the home directory as the only top-level directory and its resources
// subdirectory as the only resource path.
func Default(homeDir string) *Settings {
	return &Settings{
		TopLevelDirs:  []string{homeDir},
		ResourcePaths: []string{filepath.Join(homeDir, "resources")},
	}
}

// ForBuildDir returns the settings used by the CI harness: the build
// directory as the top-level directory and its tests/static subdirectory as
// the resource path.
func ForBuildDir(buildDir string) *Settings {
	return &Settings{
		TopLevelDirs:  []string{buildDir},
		ResourcePaths: []string{filepath.Join(buildDir, "tests", "static")},
	}
}

// Render produces the file content: one [DEFAULT] section with the two keys.
func (s *Settings) Render() string {
	var b strings.Builder
	b.WriteString(sectionDefault)
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s = %s\n", KeyTopLevelDirs, strings.Join(s.TopLevelDirs, ", "))
	fmt.Fprintf(&b, "%s = %s\n", KeyResourcePaths, strings.Join(s.ResourcePaths, ", "))
	return b.String()
}

// Write persists the settings file at the given path, creating parent
// directories as needed. An existing file is overwritten; the recipe is
// idempotent by construction.
func (s *Settings) Write(path string) error {
	if err := s.Validate(); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return settingsError("settings.write", "failed to create settings directory", err, apperrors.Metadata{
				"dir": dir,
			})
		}
	}

	if err := os.WriteFile(path, []byte(s.Render()), 0o644); err != nil {
		return settingsError("settings.write", "failed to write settings file", err, apperrors.Metadata{
			"path": path,
		})
	}

	return nil
}

// Validate ensures both keys carry at least one path.
func (s *Settings) Validate() error {
	if len(s.TopLevelDirs) == 0 {
		return settingsError("settings.validate", "at least one top-level directory is required", nil, nil)
	}
	if len(s.ResourcePaths) == 0 {
		return settingsError("settings.validate", "at least one resource path is required", nil, nil)
	}
	return nil
}

// TopPath resolves the configured top-level directory that contains fullPath.
// Mirrors the lookup the consuming application performs when mapping a
// project location back to its configured root.
func (s *Settings) TopPath(fullPath string) (string, error) {
	candidate := normalizeDir(fullPath)
	for _, dir := range s.TopLevelDirs {
		if strings.HasPrefix(candidate, normalizeDir(dir)) {
			return dir, nil
		}
	}
	return "", settingsError("settings.topPath", "path is not inside any configured top-level directory", nil, apperrors.Metadata{
		"path": fullPath,
	})
}

func normalizeDir(path string) string {
	cleaned := filepath.Clean(path)
	if !strings.HasSuffix(cleaned, string(filepath.Separator)) {
		cleaned += string(filepath.Separator)
	}
	return cleaned
}

func settingsError(operation, message string, err error, metadata apperrors.Metadata) *apperrors.AppError {
	return apperrors.New(apperrors.ErrCategoryConfig, apperrors.CodeConfigGeneric, message, err).
		WithModule("settings").
		WithOperation(operation).
		WithFields(metadata)
}
