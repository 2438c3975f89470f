package config

import (
	"os"
	"path/filepath"
	"testing"
)

// writeFile writes a config file under dir, returning its path.
func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestLoadUserConfig(t *testing.T) {
	t.Setenv(OrgEnvVar, "")
	t.Setenv(HostEnvVar, "")

	dir := t.TempDir()
	userPath := writeFile(t, dir, "config.yml", `
org: acme
product: widget
api_host: https://nerveshub.example.com
token_path: /tmp/nh-token.json
`)

	cfg, err := Load(userPath, dir)
	if err != nil {
		t.Fatalf("Load returned an unexpected error: %v", err)
	}

	if cfg.Org != "acme" {
		t.Errorf("Org: got %q, want %q", cfg.Org, "acme")
	}
	if cfg.Product != "widget" {
		t.Errorf("Product: got %q, want %q", cfg.Product, "widget")
	}
	if cfg.APIHost != "https://nerveshub.example.com" {
		t.Errorf("APIHost: got %q", cfg.APIHost)
	}
	if cfg.TokenPath != "/tmp/nh-token.json" {
		t.Errorf("TokenPath: got %q", cfg.TokenPath)
	}
}

func TestLoadProjectConfig(t *testing.T) {
	t.Setenv(OrgEnvVar, "")
	t.Setenv(HostEnvVar, "")

	dir := t.TempDir()
	writeFile(t, dir, ProjectFileName, "name: my_firmware\napp: my_app\n")

	cfg, err := Load(filepath.Join(dir, "no-user-config.yml"), dir)
	if err != nil {
		t.Fatalf("Load returned an unexpected error: %v", err)
	}

	if cfg.Project.Name != "my_firmware" {
		t.Errorf("Project.Name: got %q, want %q", cfg.Project.Name, "my_firmware")
	}
	if cfg.Project.App != "my_app" {
		t.Errorf("Project.App: got %q, want %q", cfg.Project.App, "my_app")
	}
}

func TestMissingFilesAreNotErrors(t *testing.T) {
	t.Setenv(OrgEnvVar, "")
	t.Setenv(HostEnvVar, "")

	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "absent.yml"), dir)
	if err != nil {
		t.Fatalf("Load returned an unexpected error: %v", err)
	}
	if cfg.Org != "" {
		t.Errorf("expected empty Org, got %q", cfg.Org)
	}
	// a token path default is always derived
	if cfg.TokenPath == "" {
		t.Error("expected a default TokenPath")
	}
}

func TestMalformedYAMLIsAnError(t *testing.T) {
	dir := t.TempDir()
	userPath := writeFile(t, dir, "config.yml", "org: [unclosed\n")

	if _, err := Load(userPath, dir); err == nil {
		t.Fatal("expected an error for malformed yaml, got nil")
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	userPath := writeFile(t, dir, "config.yml", "org: from-file\napi_host: https://from-file\n")

	t.Setenv(OrgEnvVar, "from-env")
	t.Setenv(HostEnvVar, "https://from-env")

	cfg, err := Load(userPath, dir)
	if err != nil {
		t.Fatalf("Load returned an unexpected error: %v", err)
	}
	if cfg.Org != "from-env" {
		t.Errorf("Org: got %q, want %q", cfg.Org, "from-env")
	}
	if cfg.APIHost != "https://from-env" {
		t.Errorf("APIHost: got %q, want %q", cfg.APIHost, "https://from-env")
	}
}
