package cmd

import (
	"io"
	"log/slog"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"vista/internal/table"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"VISTA_DB", "VISTA_EXPORT_DIR", "VISTA_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestLoadFileConfigFromReader(t *testing.T) {
	clearEnv(t)
	src := `
[general]
db_path = "/tmp/data.db"
log_level = "debug"

[tables]
products_per_page = 8
csv_mode = "minimal"
`
	cfg, err := LoadFileConfigFromReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadFileConfigFromReader: %v", err)
	}
	if cfg.General.DBPath != "/tmp/data.db" {
		t.Errorf("DBPath = %q", cfg.General.DBPath)
	}
	if cfg.General.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.General.LogLevel)
	}
	if cfg.Tables.ProductsPerPage != 8 {
		t.Errorf("ProductsPerPage = %d, want 8", cfg.Tables.ProductsPerPage)
	}
	// Unset keys keep their defaults.
	if cfg.Tables.CustomersPerPage != 10 {
		t.Errorf("CustomersPerPage = %d, want 10", cfg.Tables.CustomersPerPage)
	}
	if cfg.Tables.CSVMode != "minimal" {
		t.Errorf("CSVMode = %q", cfg.Tables.CSVMode)
	}
}

func TestLoadFileConfigFromReaderInvalid(t *testing.T) {
	clearEnv(t)
	if _, err := LoadFileConfigFromReader(strings.NewReader("[general\n")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadFileConfigMissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFileConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadFileConfig: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultFileConfig()) {
		t.Errorf("config = %+v, want defaults", cfg)
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("VISTA_DB", "/env/vista.db")
	t.Setenv("VISTA_EXPORT_DIR", "/env/exports")
	t.Setenv("VISTA_LOG_LEVEL", "warn")

	cfg, err := LoadFileConfigFromReader(strings.NewReader(`[general]
db_path = "/file/vista.db"
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.General.DBPath != "/env/vista.db" {
		t.Errorf("DBPath = %q, want env value", cfg.General.DBPath)
	}
	if cfg.General.ExportDir != "/env/exports" {
		t.Errorf("ExportDir = %q", cfg.General.ExportDir)
	}
	if ParseLogLevel(cfg.General.LogLevel) != slog.LevelWarn {
		t.Errorf("LogLevel = %q", cfg.General.LogLevel)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" DEBUG ", slog.LevelDebug},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseArgs(t *testing.T) {
	f, err := parseArgs([]string{
		"-export", "products",
		"-filter", "category=Electronics",
		"-filter", "status=trending,stable",
		"-sort", "revenue", "-desc",
		"-minimal-csv", "-no-seed", "-v",
	}, io.Discard)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if f.export != "products" || f.sort != "revenue" || !f.desc {
		t.Errorf("flags = %+v", f)
	}
	want := filterList{"category=Electronics", "status=trending,stable"}
	if !reflect.DeepEqual(f.filters, want) {
		t.Errorf("filters = %v, want %v", f.filters, want)
	}
	if !f.minimalCSV || !f.noSeed || !f.verbose {
		t.Errorf("bool flags = %+v", f)
	}
}

func TestParseArgsErrors(t *testing.T) {
	tests := [][]string{
		{"-unknown"},
		{"products"},
	}
	for _, args := range tests {
		if _, err := parseArgs(args, io.Discard); err == nil {
			t.Errorf("parseArgs(%v) expected error", args)
		}
	}
}

func TestResolvePrecedence(t *testing.T) {
	fileCfg := DefaultFileConfig()
	fileCfg.General.DBPath = "/file/vista.db"
	fileCfg.General.LogLevel = "error"
	fileCfg.Tables.CSVMode = "rfc4180"

	f, err := parseArgs([]string{"-db", "/flag/vista.db", "-v", "-minimal-csv"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	cfg := resolve(f, fileCfg, "/home/u/.vista")
	if cfg.DBPath != "/flag/vista.db" {
		t.Errorf("DBPath = %q, want flag value", cfg.DBPath)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug from -v", cfg.LogLevel)
	}
	if cfg.CSVMode != table.ExportMinimal {
		t.Errorf("CSVMode = %v, want minimal", cfg.CSVMode)
	}
	if cfg.LogFile != filepath.Join("/home/u/.vista", "vista.log") {
		t.Errorf("LogFile = %q", cfg.LogFile)
	}
	if cfg.ExportDir != filepath.Join("/home/u/.vista", "exports") {
		t.Errorf("ExportDir = %q", cfg.ExportDir)
	}
	if !cfg.Seed {
		t.Error("Seed should default to true")
	}
}

func TestApplyOnboarding(t *testing.T) {
	f, _ := parseArgs(nil, io.Discard)
	fileCfg := DefaultFileConfig()
	cfg := resolve(f, fileCfg, "/home/u/.vista")

	applyOnboarding(cfg, OnboardingSettings{Completed: true, SeedSample: false, ExportDir: "/data/csv"}, fileCfg)
	if cfg.Seed {
		t.Error("declining the sample dataset should disable seeding")
	}
	if cfg.ExportDir != "/data/csv" {
		t.Errorf("ExportDir = %q, want onboarding value", cfg.ExportDir)
	}

	// An export dir from the config file wins over the wizard.
	fileCfg.General.ExportDir = "/file/csv"
	cfg = resolve(f, fileCfg, "/home/u/.vista")
	applyOnboarding(cfg, OnboardingSettings{Completed: true, SeedSample: true, ExportDir: "/data/csv"}, fileCfg)
	if cfg.ExportDir != "/file/csv" {
		t.Errorf("ExportDir = %q, want config file value", cfg.ExportDir)
	}
}

func TestOnboardingSettingsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	got, err := loadOnboardingSettings(dir)
	if err != nil || got.Completed {
		t.Fatalf("missing settings = %+v, %v", got, err)
	}
	want := OnboardingSettings{Completed: true, SeedSample: true, ExportDir: "/x"}
	if err := saveOnboardingSettings(dir, want); err != nil {
		t.Fatal(err)
	}
	got, err = loadOnboardingSettings(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("settings = %+v, want %+v", got, want)
	}
}

func TestEntries(t *testing.T) {
	f, _ := parseArgs(nil, io.Discard)
	cfg := resolve(f, DefaultFileConfig(), "/home/u/.vista")
	cfg.Version = "1.2.3"

	entries := cfg.Entries()
	values := map[string]string{}
	for _, e := range entries {
		values[e.Key] = e.Value
	}
	if values["Products per page"] != "5" || values["Customers per page"] != "10" {
		t.Errorf("page sizes = %q, %q", values["Products per page"], values["Customers per page"])
	}
	if values["CSV mode"] != "rfc4180" {
		t.Errorf("CSV mode = %q", values["CSV mode"])
	}
	if values["Version"] != "1.2.3" {
		t.Errorf("Version = %q", values["Version"])
	}
}

func TestNeedsOnboarding(t *testing.T) {
	tests := []struct {
		name      string
		settings  OnboardingSettings
		stdin     bool
		stdout    bool
		wantStart bool
	}{
		{"interactive first run", OnboardingSettings{}, true, true, true},
		{"stdout piped", OnboardingSettings{}, true, false, false},
		{"stdin piped", OnboardingSettings{}, false, true, false},
		{"already completed", OnboardingSettings{Completed: true}, true, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := needsOnboarding(tt.settings, tt.stdin, tt.stdout); got != tt.wantStart {
				t.Errorf("needsOnboarding = %v, want %v", got, tt.wantStart)
			}
		})
	}
}
