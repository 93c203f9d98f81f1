package cmd

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"vista/internal/dashboard"
	"vista/internal/table"
	"vista/internal/ui"
)

// ErrVersion is returned by ParseFlags after printing -version output.
var ErrVersion = errors.New("version requested")

// Config holds CLI configuration.
type Config struct {
	DBPath     string
	ConfigPath string
	ConfigDir  string
	LogFile    string
	LogLevel   slog.Level
	ExportDir  string
	Layout     dashboard.Layout
	CSVMode    table.ExportMode
	Seed       bool
	Version    string

	// Headless export
	Export  string
	Out     string
	Search  string
	Sort    string
	Desc    bool
	Filters []string
}

type filterList []string

func (f *filterList) String() string { return strings.Join(*f, ",") }

func (f *filterList) Set(v string) error {
	*f = append(*f, v)
	return nil
}

type cliFlags struct {
	dbPath     string
	configPath string
	logFile    string
	verbose    bool
	export     string
	out        string
	search     string
	sort       string
	desc       bool
	filters    filterList
	minimalCSV bool
	noSeed     bool
	version    bool
}

func parseArgs(args []string, stderr io.Writer) (*cliFlags, error) {
	f := &cliFlags{}
	fs := flag.NewFlagSet("vista", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.dbPath, "db", "", "Path to SQLite database file (default: ~/.vista/vista.db)")
	fs.StringVar(&f.configPath, "config", "", "Path to config.toml (default: ~/.vista/config.toml)")
	fs.StringVar(&f.logFile, "log", "", "Path to log file (default: ~/.vista/vista.log)")
	fs.BoolVar(&f.verbose, "v", false, "Enable debug logging")
	fs.StringVar(&f.export, "export", "", "Export a board (products or customers) as CSV and exit")
	fs.StringVar(&f.out, "out", "", "CSV output path for -export (default: stdout)")
	fs.StringVar(&f.search, "search", "", "Search text applied before -export")
	fs.StringVar(&f.sort, "sort", "", "Column key to sort by before -export")
	fs.BoolVar(&f.desc, "desc", false, "Sort descending with -sort")
	fs.Var(&f.filters, "filter", "Filter key=value applied before -export (repeatable)")
	fs.BoolVar(&f.minimalCSV, "minimal-csv", false, "Write minimal CSV instead of RFC 4180")
	fs.BoolVar(&f.noSeed, "no-seed", false, "Do not load the sample dataset into an empty database")
	fs.BoolVar(&f.version, "version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return f, nil
}

// ParseFlags parses command-line flags and returns configuration.
func ParseFlags(version string) (*Config, error) {
	// Load .env files first so env-based defaults work with existing flag parsing.
	loadDotEnv(".env")
	loadDotEnv(".env.local")

	f, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		return nil, err
	}
	if f.version {
		fmt.Printf("vista %s\n", version)
		return nil, ErrVersion
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	configDir := filepath.Join(home, ".vista")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := f.configPath
	if configPath == "" {
		configPath = filepath.Join(configDir, "config.toml")
	}
	fileCfg, err := LoadFileConfig(configPath)
	if err != nil {
		return nil, err
	}

	config := resolve(f, fileCfg, configDir)
	config.ConfigPath = configPath
	config.Version = version

	// The wizard only makes sense for interactive runs.
	if config.Export == "" {
		settings, err := loadOnboardingSettings(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load onboarding settings: %w", err)
		}
		if shouldRunOnboarding(settings) {
			settings, err = runOnboarding(configDir, config.ExportDir)
			if err != nil {
				return nil, fmt.Errorf("failed to run onboarding: %w", err)
			}
		}
		applyOnboarding(config, settings, fileCfg)
	}

	return config, nil
}

// resolve merges flags over the file config over built-in defaults.
func resolve(f *cliFlags, fileCfg *FileConfig, configDir string) *Config {
	config := &Config{
		DBPath:    firstNonEmpty(f.dbPath, fileCfg.General.DBPath, filepath.Join(configDir, "vista.db")),
		ConfigDir: configDir,
		LogFile:   firstNonEmpty(f.logFile, fileCfg.General.LogFile, filepath.Join(configDir, "vista.log")),
		LogLevel:  ParseLogLevel(fileCfg.General.LogLevel),
		ExportDir: firstNonEmpty(fileCfg.General.ExportDir, filepath.Join(configDir, "exports")),
		Layout: dashboard.Layout{
			ProductsPerPage:  fileCfg.Tables.ProductsPerPage,
			CustomersPerPage: fileCfg.Tables.CustomersPerPage,
		},
		CSVMode: table.ParseExportMode(fileCfg.Tables.CSVMode),
		Seed:    !f.noSeed,
		Export:  f.export,
		Out:     f.out,
		Search:  f.search,
		Sort:    f.sort,
		Desc:    f.desc,
		Filters: []string(f.filters),
	}
	if f.verbose {
		config.LogLevel = slog.LevelDebug
	}
	if f.minimalCSV {
		config.CSVMode = table.ExportMinimal
	}
	return config
}

// applyOnboarding lets wizard answers fill in what flags and the config
// file left unset.
func applyOnboarding(config *Config, settings OnboardingSettings, fileCfg *FileConfig) {
	if !settings.Completed {
		return
	}
	if !settings.SeedSample {
		config.Seed = false
	}
	if fileCfg.General.ExportDir == "" && settings.ExportDir != "" {
		config.ExportDir = settings.ExportDir
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// Entries lists the effective configuration for the settings screen.
func (c *Config) Entries() []ui.ConfigEntry {
	return []ui.ConfigEntry{
		{Key: "Database", Value: c.DBPath},
		{Key: "Config file", Value: c.ConfigPath},
		{Key: "Log file", Value: c.LogFile},
		{Key: "Log level", Value: c.LogLevel.String()},
		{Key: "Export directory", Value: c.ExportDir},
		{Key: "CSV mode", Value: c.CSVMode.String()},
		{Key: "Products per page", Value: strconv.Itoa(orDefault(c.Layout.ProductsPerPage, dashboard.DefaultProductsPerPage))},
		{Key: "Customers per page", Value: strconv.Itoa(orDefault(c.Layout.CustomersPerPage, dashboard.DefaultCustomersPerPage))},
		{Key: "Version", Value: c.Version},
	}
}

func orDefault(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}

// OpenLogger opens the log file for appending and returns a text logger
// writing to it, along with the file to close on exit.
func OpenLogger(path string, level slog.Level) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return NewLogger(f, level), f, nil
}

// NewLogger returns a text logger writing to w.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func loadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" {
			continue
		}

		value = strings.Trim(value, `"'`)
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
}
