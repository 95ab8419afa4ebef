package settings

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	apperrors "pyironenv/internal/errors"
)

// Exists reports whether a settings file is present at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Parse reads a settings file back into a Settings value. Only the [DEFAULT]
// section is consulted; keys are matched case-insensitively and `~` prefixes
// in values are expanded against the current home directory.
func Parse(path string) (*Settings, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, settingsError("settings.parse", "failed to open settings file", err, apperrors.Metadata{
			"path": path,
		})
	}
	defer file.Close()

	s := &Settings{}
	inDefault := false

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		if strings.HasPrefix(line, "[") {
			inDefault = strings.EqualFold(line, sectionDefault)
			continue
		}
		if !inDefault {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch {
		case strings.EqualFold(key, KeyTopLevelDirs):
			s.TopLevelDirs = splitPaths(value)
		case strings.EqualFold(key, KeyResourcePaths):
			s.ResourcePaths = splitPaths(value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, settingsError("settings.parse", "failed to read settings file", err, apperrors.Metadata{
			"path": path,
		})
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func splitPaths(value string) []string {
	var paths []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		paths = append(paths, expandHome(part))
	}
	return paths
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
