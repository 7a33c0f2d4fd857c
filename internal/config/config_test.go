package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitializeLoadsDefaults(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	userCfg := filepath.Join(tmp, "user.yaml")

	if err := Initialize(WithWorkingDir(tmp), WithUserConfig(userCfg)); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	if GetBool(KeyDebug) {
		t.Fatalf("expected default %s to be false", KeyDebug)
	}
	if got := GetString(KeyDatabasePath); got != "" {
		t.Fatalf("expected default %s to be empty, got %q", KeyDatabasePath, got)
	}
	if got := GetString(KeyTheme); got != "workshop" {
		t.Fatalf("expected default %s to be workshop, got %q", KeyTheme, got)
	}
	if got := GetInt(KeyPickerMaxVisible); got != DefaultPickerMaxVisible {
		t.Fatalf("expected default %s = %d, got %d", KeyPickerMaxVisible, DefaultPickerMaxVisible, got)
	}
}

func TestProjectConfigOverridesUser(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	projectDir := filepath.Join(tmp, "shop")
	projectCfg := filepath.Join(projectDir, ".fixdesk", "config.yaml")
	writeFile(t, projectCfg, `
theme: nord
database:
  path: /project/catalog.db
picker:
  width: 60
`)

	userCfg := filepath.Join(tmp, "user.yaml")
	writeFile(t, userCfg, `
theme: dracula
database:
  path: /user/catalog.db
picker:
  max-visible: 9
`)

	// Discovery walks up from a nested directory.
	nested := filepath.Join(projectDir, "a", "b")
	mustMkdir(t, nested)

	if err := Initialize(WithWorkingDir(nested), WithUserConfig(userCfg)); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	if got := GetString(KeyTheme); got != "nord" {
		t.Fatalf("expected project config to win for %s, got %q", KeyTheme, got)
	}
	if got := GetString(KeyDatabasePath); got != "/project/catalog.db" {
		t.Fatalf("expected project database path, got %q", got)
	}
	if got := GetInt(KeyPickerWidth); got != 60 {
		t.Fatalf("expected project picker width 60, got %d", got)
	}
	if got := GetInt(KeyPickerMaxVisible); got != 9 {
		t.Fatalf("expected user picker max-visible 9 to survive merge, got %d", got)
	}
}

func TestEnvironmentAndOverridesPrecedence(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	projectCfg := filepath.Join(tmp, ".fixdesk", "config.yaml")
	writeFile(t, projectCfg, `
debug: false
database:
  path: /project/catalog.db
`)

	t.Setenv("FD_DEBUG", "true")
	t.Setenv("FD_DATABASE_PATH", "/env/catalog.db")
	t.Setenv("FD_PICKER_MAX_VISIBLE", "3")

	if err := Initialize(
		WithWorkingDir(tmp),
		WithProjectConfig(projectCfg),
		WithUserConfig(filepath.Join(tmp, "missing.yaml")),
	); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	if !GetBool(KeyDebug) {
		t.Fatalf("expected environment variable to override %s", KeyDebug)
	}
	if got := GetString(KeyDatabasePath); got != "/env/catalog.db" {
		t.Fatalf("expected env override for %s, got %q", KeyDatabasePath, got)
	}
	if got := GetInt(KeyPickerMaxVisible); got != 3 {
		t.Fatalf("expected env override for %s, got %d", KeyPickerMaxVisible, got)
	}

	if err := ApplyOverrides(map[string]any{KeyDebug: false, KeyTheme: "dracula"}); err != nil {
		t.Fatalf("ApplyOverrides returned error: %v", err)
	}
	if GetBool(KeyDebug) {
		t.Fatalf("expected CLI override to set %s=false", KeyDebug)
	}
	if got := GetString(KeyTheme); got != "dracula" {
		t.Fatalf("expected CLI override for %s, got %q", KeyTheme, got)
	}
}

func TestConfigPathThatIsDirectoryFails(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	mustMkdir(t, filepath.Join(tmp, ".fixdesk", "config.yaml"))

	err := Initialize(WithWorkingDir(tmp), WithUserConfig(filepath.Join(tmp, "user.yaml")))
	if err == nil || !strings.Contains(err.Error(), "is a directory") {
		t.Fatalf("expected directory error, got %v", err)
	}
}

func TestSaveThemeWritesUserConfig(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	t.Chdir(tmp)
	userCfg := filepath.Join(tmp, "home", ".fixdesk", "config.yaml")
	writeFile(t, userCfg, "picker:\n  width: 50\n")
	setUserConfigPathOverride(userCfg)

	if err := SaveTheme("nord"); err != nil {
		t.Fatalf("SaveTheme returned error: %v", err)
	}

	data, err := os.ReadFile(userCfg)
	if err != nil {
		t.Fatalf("read saved config: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "theme: nord") {
		t.Fatalf("expected saved theme, got:\n%s", content)
	}
	if !strings.Contains(content, "width: 50") {
		t.Fatalf("expected existing settings preserved, got:\n%s", content)
	}
}

func setUserConfigPathOverride(path string) {
	userConfigPathOverride = path
}

func mustMkdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	mustMkdir(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write file %s: %v", path, err)
	}
}
