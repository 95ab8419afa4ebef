package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultRender(t *testing.T) {
	cfg := Default("/home/u")

	want := "[DEFAULT]\n" +
		"TOP_LEVEL_DIRS = /home/u\n" +
		"RESOURCE_PATHS = /home/u/resources\n"

	if got := cfg.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestForBuildDirRender(t *testing.T) {
	cfg := ForBuildDir("/builds/job1")

	want := "[DEFAULT]\n" +
		"TOP_LEVEL_DIRS = /builds/job1\n" +
		"RESOURCE_PATHS = /builds/job1/tests/static\n"

	if got := cfg.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderHasExactlyOneSectionAndTwoKeys(t *testing.T) {
	content := Default("/home/u").Render()

	if n := strings.Count(content, "["); n != 1 {
		t.Errorf("expected exactly one section header, found %d", n)
	}
	if !strings.HasPrefix(content, "[DEFAULT]\n") {
		t.Errorf("content does not start with [DEFAULT]: %q", content)
	}

	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines (section + 2 keys), got %d: %q", len(lines), content)
	}
}

func TestWriteAndParseRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".pyiron")

	original := Default(dir)
	if err := original.Write(path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	parsed, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(parsed.TopLevelDirs) != 1 || parsed.TopLevelDirs[0] != dir {
		t.Errorf("TopLevelDirs = %v, want [%s]", parsed.TopLevelDirs, dir)
	}
	wantResources := filepath.Join(dir, "resources")
	if len(parsed.ResourcePaths) != 1 || parsed.ResourcePaths[0] != wantResources {
		t.Errorf("ResourcePaths = %v, want [%s]", parsed.ResourcePaths, wantResources)
	}
}

func TestWriteIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".pyiron")
	cfg := Default(dir)

	if err := cfg.Write(path); err != nil {
		t.Fatalf("first Write failed: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading settings file: %v", err)
	}

	if err := cfg.Write(path); err != nil {
		t.Fatalf("second Write failed: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading settings file: %v", err)
	}

	if string(first) != string(second) {
		t.Errorf("settings file changed between identical writes:\n%q\n%q", first, second)
	}
}

func TestWriteCreatesParentDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config", ".pyiron")

	if err := Default(dir).Write(path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if !Exists(path) {
		t.Errorf("settings file was not created at %s", path)
	}
}

func TestTopPath(t *testing.T) {
	cfg := &Settings{
		TopLevelDirs:  []string{"/home/u", "/data/projects"},
		ResourcePaths: []string{"/home/u/resources"},
	}

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"inside home", "/home/u/demo/job1", "/home/u", false},
		{"home itself", "/home/u", "/home/u", false},
		{"second root", "/data/projects/x", "/data/projects", false},
		{"sibling with shared prefix", "/home/user2/demo", "", true},
		{"outside all roots", "/tmp/elsewhere", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cfg.TopPath(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Errorf("TopPath(%s) expected error, got %q", tt.path, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("TopPath(%s) failed: %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("TopPath(%s) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestParseIgnoresOtherSectionsAndComments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".pyiron")

	content := "# generated\n" +
		"[DEFAULT]\n" +
		"TOP_LEVEL_DIRS = /home/u\n" +
		"RESOURCE_PATHS = /home/u/resources, /opt/shared\n" +
		"[other]\n" +
		"TOP_LEVEL_DIRS = /should/be/ignored\n"

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	parsed, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(parsed.TopLevelDirs) != 1 || parsed.TopLevelDirs[0] != "/home/u" {
		t.Errorf("TopLevelDirs = %v, want [/home/u]", parsed.TopLevelDirs)
	}
	if len(parsed.ResourcePaths) != 2 {
		t.Errorf("ResourcePaths = %v, want two entries", parsed.ResourcePaths)
	}
}

func TestValidateRejectsEmpty(t *testing.T) {
	cfg := &Settings{}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted empty settings")
	}
}
