package config

import (
	"os"
	"path/filepath"
	"testing"
)

// isolate points the config dir at a temp location and clears the
// environment keys Load consults.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, key := range []string{
		"GITHUB_TOKEN", "GITHUB_API_URL",
		"AUTOREVIEW_FORMAT", "AUTOREVIEW_MERGE_METHOD", "AUTOREVIEW_AUTO_MERGE",
		"AUTOREVIEW_LISTEN", "AUTOREVIEW_EXPORT_DIR", "AUTOREVIEW_EXPORT_ENDPOINT",
		"AUTOREVIEW_TIMEOUT_SECONDS",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.MergeMethod != "merge" {
		t.Errorf("MergeMethod = %q, want merge", cfg.MergeMethod)
	}
	if cfg.Format != "text" {
		t.Errorf("Format = %q, want text", cfg.Format)
	}
	if cfg.AutoMerge {
		t.Error("AutoMerge must default to false")
	}
	if cfg.TimeoutSeconds != 60 {
		t.Errorf("TimeoutSeconds = %d, want 60", cfg.TimeoutSeconds)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.MergeMethod = "fast-forward"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid merge method")
	}

	cfg = Default()
	cfg.Format = "yaml"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	isolate(t)
	t.Setenv("GITHUB_TOKEN", "env-token")
	t.Setenv("AUTOREVIEW_MERGE_METHOD", "rebase")
	t.Setenv("AUTOREVIEW_AUTO_MERGE", "true")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Token != "env-token" {
		t.Errorf("Token = %q", cfg.Token)
	}
	if cfg.MergeMethod != "rebase" {
		t.Errorf("MergeMethod = %q, want rebase", cfg.MergeMethod)
	}
	if !cfg.AutoMerge {
		t.Error("AutoMerge = false, want true from env")
	}
}

func TestLoad_OverridesWinOverEnv(t *testing.T) {
	isolate(t)
	t.Setenv("AUTOREVIEW_FORMAT", "json")

	cfg, err := Load(map[string]string{"format": "markdown", "autoMerge": "true"})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Format != "markdown" {
		t.Errorf("Format = %q, want markdown (flag beats env)", cfg.Format)
	}
	if !cfg.AutoMerge {
		t.Error("AutoMerge = false, want true")
	}
}

func TestLoad_InvalidMergeMethodRejected(t *testing.T) {
	isolate(t)
	t.Setenv("AUTOREVIEW_MERGE_METHOD", "octopus")

	if _, err := Load(nil); err == nil {
		t.Error("expected validation error from Load")
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	dir := isolate(t)

	cfg := Default()
	cfg.MergeMethod = "squash"
	cfg.Export.Endpoint = "https://docs.example.com/publish"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	path, err := ConfigPath()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(path) != filepath.Join(dir, "autoreview") {
		t.Errorf("config path = %q, not under XDG dir", path)
	}

	loaded, err := LoadFile()
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if loaded.MergeMethod != "squash" {
		t.Errorf("MergeMethod = %q, want squash", loaded.MergeMethod)
	}
	if loaded.Export.Endpoint != "https://docs.example.com/publish" {
		t.Errorf("Export.Endpoint = %q", loaded.Export.Endpoint)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	isolate(t)
	cfg, err := LoadFile()
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if cfg.MergeMethod != "merge" {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadFile_PartialFileKeepsDefaults(t *testing.T) {
	isolate(t)

	dir, err := ConfigDir()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"format":"json"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile()
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Format)
	}
	if cfg.TimeoutSeconds != 60 {
		t.Errorf("TimeoutSeconds = %d, want default 60", cfg.TimeoutSeconds)
	}
	if !cfg.Export.Redact {
		t.Error("Export.Redact must keep its default when the file omits it")
	}
}

func TestSetField(t *testing.T) {
	cfg := Default()
	if err := SetField(&cfg, "mergeMethod", "rebase"); err != nil {
		t.Fatal(err)
	}
	if cfg.MergeMethod != "rebase" {
		t.Errorf("MergeMethod = %q", cfg.MergeMethod)
	}

	if err := SetField(&cfg, "export.redact", "false"); err != nil {
		t.Fatal(err)
	}
	if cfg.Export.Redact {
		t.Error("Export.Redact = true, want false")
	}

	if err := SetField(&cfg, "autoMerge", "yes-please"); err == nil {
		t.Error("expected error for non-boolean autoMerge")
	}
	if err := SetField(&cfg, "bogus", "x"); err == nil {
		t.Error("expected error for unknown key")
	}
}
