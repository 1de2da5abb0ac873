// Package common builds the dependencies shared by the npa commands.
package common

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/viper"

	infraconfig "github.com/verge88/api-npa3/infrastructure/config"
	"github.com/verge88/api-npa3/infrastructure/logger"
	"github.com/verge88/api-npa3/internal/catalog"
	"github.com/verge88/api-npa3/internal/config"
	"github.com/verge88/api-npa3/internal/detail"
	"github.com/verge88/api-npa3/internal/fetcher"
	"github.com/verge88/api-npa3/internal/telemetry"
)

// Version is set at build time with -ldflags "-X".
var Version = "dev"

// Viper keys bound by the root command.
const (
	KeyConfig    = "config"
	KeyDebug     = "debug"
	KeyLogLevel  = "log_level"
	KeyLogFormat = "log_format"
)

// CommandDeps holds the dependencies of a command run.
type CommandDeps struct {
	Config   *config.Config
	Logger   logger.Logger
	Registry *prometheus.Registry
	Metrics  *telemetry.Metrics
	Fetcher  *fetcher.Retrying
	Catalog  *catalog.Service
}

// NewCommandDeps loads configuration and wires the catalog. defaultFormat is
// the log encoding used when neither the config nor a flag chose one.
func NewCommandDeps(defaultFormat string) (*CommandDeps, error) {
	cfg, err := LoadConfig(defaultFormat)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	log = log.With(
		logger.String("service", cfg.Service.Name),
		logger.String("version", cfg.Service.Version),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := telemetry.NewMetrics(registry)

	f, err := fetcher.New(cfg.Fetcher, log, metrics)
	if err != nil {
		return nil, fmt.Errorf("create fetcher: %w", err)
	}

	svc, err := catalog.New(cfg.Catalog(), f, detail.NewExtractor(log, metrics), log, metrics)
	if err != nil {
		return nil, fmt.Errorf("create catalog: %w", err)
	}

	return &CommandDeps{
		Config:   cfg,
		Logger:   log,
		Registry: registry,
		Metrics:  metrics,
		Fetcher:  f,
		Catalog:  svc,
	}, nil
}

// LoadConfig reads the config file named by --config (or CONFIG_PATH) and
// applies flag overrides. defaultFormat replaces the log format when no file,
// environment variable or flag set one.
func LoadConfig(defaultFormat string) (*config.Config, error) {
	path := viper.GetString(KeyConfig)
	if path == "" {
		path = infraconfig.GetConfigPath(config.DefaultPath)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if defaultFormat != "" && !logFormatExplicit(path) {
		cfg.Logging.Format = defaultFormat
	}
	return applyOverrides(cfg)
}

// logFormatExplicit reports whether the file or environment chose a log
// format, before defaults are applied.
func logFormatExplicit(path string) bool {
	raw, err := infraconfig.LoadWithDefaults[loggingSection](path, true, nil)
	return err == nil && raw.Logging.Format != ""
}

type loggingSection struct {
	Logging infraconfig.LoggingConfig `yaml:"logging"`
}

func applyOverrides(cfg *config.Config) (*config.Config, error) {
	if viper.GetBool(KeyDebug) {
		cfg.Service.Debug = true
		cfg.Logging.Level = "debug"
	}
	if level := viper.GetString(KeyLogLevel); level != "" {
		cfg.Logging.Level = level
	}
	if format := viper.GetString(KeyLogFormat); format != "" {
		cfg.Logging.Format = format
	}
	if err := cfg.Logging.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
