package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileConfig is the optional config.toml.
type FileConfig struct {
	General GeneralConfig `toml:"general"`
	Tables  TablesConfig  `toml:"tables"`
}

// GeneralConfig holds paths and logging settings.
type GeneralConfig struct {
	DBPath    string `toml:"db_path"`
	LogFile   string `toml:"log_file"`
	LogLevel  string `toml:"log_level"`
	ExportDir string `toml:"export_dir"`
}

// TablesConfig holds table layout and export settings.
type TablesConfig struct {
	ProductsPerPage  int    `toml:"products_per_page"`
	CustomersPerPage int    `toml:"customers_per_page"`
	CSVMode          string `toml:"csv_mode"`
}

// DefaultFileConfig returns the settings used when no file exists.
func DefaultFileConfig() *FileConfig {
	return &FileConfig{
		General: GeneralConfig{LogLevel: "info"},
		Tables: TablesConfig{
			ProductsPerPage:  5,
			CustomersPerPage: 10,
			CSVMode:          "rfc4180",
		},
	}
}

// LoadFileConfig reads path. A missing file yields defaults.
func LoadFileConfig(path string) (*FileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultFileConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()
	return LoadFileConfigFromReader(f)
}

// LoadFileConfigFromReader decodes TOML from r over the defaults.
func LoadFileConfigFromReader(r io.Reader) (*FileConfig, error) {
	cfg := DefaultFileConfig()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *FileConfig) {
	if v := os.Getenv("VISTA_DB"); v != "" {
		cfg.General.DBPath = v
	}
	if v := os.Getenv("VISTA_EXPORT_DIR"); v != "" {
		cfg.General.ExportDir = v
	}
	if v := os.Getenv("VISTA_LOG_LEVEL"); v != "" {
		cfg.General.LogLevel = v
	}
}

// ParseLogLevel maps a config level name to slog. Unknown names are info.
func ParseLogLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
