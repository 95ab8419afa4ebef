package ci

import (
	"fmt"
	"sort"

	"pyironenv/internal/manifest"
)

// Entry is one cell of the build matrix: a runtime version plus the
// environment variables the cell runs under.
type Entry struct {
	RuntimeVersion string
	Env            map[string]string
}

// Label renders a short identifier for log output.
func (e Entry) Label() string {
	label := fmt.Sprintf("python=%s", e.RuntimeVersion)
	keys := make([]string, 0, len(e.Env))
	for k := range e.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		label += fmt.Sprintf(" %s=%s", k, e.Env[k])
	}
	return label
}

// BuildMatrix expands the CI section into its ordered matrix entries, one per
// runtime version, each carrying the shared environment variables.
func BuildMatrix(section manifest.CISection) []Entry {
	entries := make([]Entry, 0, len(section.RuntimeVersions))
	for _, version := range section.RuntimeVersions {
		env := make(map[string]string, len(section.Env))
		for k, v := range section.Env {
			env[k] = v
		}
		entries = append(entries, Entry{
			RuntimeVersion: version,
			Env:            env,
		})
	}
	return entries
}
