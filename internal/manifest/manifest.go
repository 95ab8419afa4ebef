package manifest

import (
	"embed"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Manifest describes everything the provisioner installs, clones, writes and
// removes. The embedded base manifest carries the canonical values; a user
// supplied override file can replace individual sections.
type Manifest struct {
	Extensions  []ExtensionEntry `yaml:"extensions"`
	Resources   []ResourceEntry  `yaml:"resources"`
	Scaffolding []string         `yaml:"scaffolding"`
	Conda       CondaSection     `yaml:"conda"`
	CI          CISection        `yaml:"ci"`
}

// ExtensionEntry pins a notebook extension to a version.
type ExtensionEntry struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// ResourceEntry describes one repository to shallow-clone during bootstrap.
type ResourceEntry struct {
	Name        string `yaml:"name"`
	DisplayName string `yaml:"display_name"`
	URL         string `yaml:"url"`
	Branch      string `yaml:"branch"`
	Dest        string `yaml:"dest"`
	Harvest     string `yaml:"harvest"`
	Transient   bool   `yaml:"transient"`
}

// CondaSection lists the packages installed into the conda environment.
type CondaSection struct {
	Environment string   `yaml:"environment"`
	Packages    []string `yaml:"packages"`
}

// CISection describes the continuous-integration matrix and phases.
type CISection struct {
	RuntimeVersions []string          `yaml:"runtime_versions"`
	Env             map[string]string `yaml:"env"`
	PrintEnv        []string          `yaml:"print_env"`
	TestsDir        string            `yaml:"tests_dir"`
}

//go:embed base-manifest.yaml
var embeddedBase embed.FS

// Base returns the embedded base manifest.
func Base() (*Manifest, error) {
	data, err := embeddedBase.ReadFile("base-manifest.yaml")
	if err != nil {
		return nil, errors.Wrap(err, "failed to read embedded base manifest")
	}
	return decode(data)
}

// Load reads a manifest file from disk.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read manifest file: %s", path)
	}
	return decode(data)
}

// Parse decodes manifest data from bytes.
func Parse(data []byte) (*Manifest, error) {
	if len(data) == 0 {
		return &Manifest{}, nil
	}
	return decode(data)
}

// Merge combines manifests, later entries overriding earlier ones section by
// section. Empty sections in an override leave the base values in place.
func Merge(manifests ...*Manifest) (*Manifest, error) {
	if len(manifests) == 0 {
		return nil, errors.New("no manifests provided")
	}

	var result Manifest
	for i, m := range manifests {
		if m == nil {
			continue
		}

		if i == 0 {
			result = *m
			continue
		}

		if len(m.Extensions) > 0 {
			result.Extensions = m.Extensions
		}
		if len(m.Resources) > 0 {
			result.Resources = m.Resources
		}
		if len(m.Scaffolding) > 0 {
			result.Scaffolding = m.Scaffolding
		}
		if trimmed := strings.TrimSpace(m.Conda.Environment); trimmed != "" {
			result.Conda.Environment = trimmed
		}
		if len(m.Conda.Packages) > 0 {
			result.Conda.Packages = m.Conda.Packages
		}
		if len(m.CI.RuntimeVersions) > 0 {
			result.CI.RuntimeVersions = m.CI.RuntimeVersions
		}
		if len(m.CI.Env) > 0 {
			result.CI.Env = m.CI.Env
		}
		if len(m.CI.PrintEnv) > 0 {
			result.CI.PrintEnv = m.CI.PrintEnv
		}
		if trimmed := strings.TrimSpace(m.CI.TestsDir); trimmed != "" {
			result.CI.TestsDir = trimmed
		}
	}

	if err := result.Validate(); err != nil {
		return nil, err
	}
	return &result, nil
}

// Validate checks the structural invariants the provisioner relies on.
func (m *Manifest) Validate() error {
	for _, ext := range m.Extensions {
		if strings.TrimSpace(ext.Name) == "" {
			return errors.New("extension entry is missing a name")
		}
	}

	for _, res := range m.Resources {
		if strings.TrimSpace(res.Name) == "" {
			return errors.New("resource entry is missing a name")
		}
		if strings.TrimSpace(res.URL) == "" {
			return errors.Errorf("resource %s is missing a url", res.Name)
		}
		if strings.TrimSpace(res.Dest) == "" {
			return errors.Errorf("resource %s is missing a destination", res.Name)
		}
		if strings.HasPrefix(res.Dest, "/") {
			return errors.Errorf("resource %s destination must be home-relative: %s", res.Name, res.Dest)
		}
	}

	for _, entry := range m.Scaffolding {
		if strings.HasPrefix(entry, "/") || strings.Contains(entry, "..") {
			return errors.Errorf("scaffolding entry must be a relative path without traversal: %s", entry)
		}
	}

	return nil
}

func decode(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "failed to decode manifest")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}
