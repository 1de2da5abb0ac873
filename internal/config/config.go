// Package config loads the npa service configuration.
package config

import (
	"fmt"
	"strings"

	infraconfig "github.com/verge88/api-npa3/infrastructure/config"
	infragin "github.com/verge88/api-npa3/infrastructure/gin"
	"github.com/verge88/api-npa3/internal/catalog"
	"github.com/verge88/api-npa3/internal/domain"
	"github.com/verge88/api-npa3/internal/fetcher"
)

// DefaultPath is read when no --config flag or CONFIG_PATH is given.
const DefaultPath = "config.yml"

// Config holds all configuration for the npa service.
type Config struct {
	Service ServiceConfig             `yaml:"service"`
	Logging infraconfig.LoggingConfig `yaml:"logging"`
	Source  SourceConfig              `yaml:"source"`
	Fetcher fetcher.Config            `yaml:"fetcher"`
	CORS    infragin.CORSConfig       `yaml:"cors"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name            string `yaml:"name"`
	Version         string `yaml:"version"`
	Port            int    `env:"NPA_PORT"  yaml:"port"`
	Debug           bool   `env:"NPA_DEBUG" yaml:"debug"`
	DefaultPageSize int    `yaml:"default_page_size"`
	MaxPageSize     int    `yaml:"max_page_size"`
}

// SourceConfig describes the document source.
type SourceConfig struct {
	BaseURL    string           `env:"NPA_SOURCE_BASE_URL" yaml:"base_url"`
	Categories []CategoryConfig `yaml:"categories"`
}

// CategoryConfig is one listing of the source.
type CategoryConfig struct {
	Key        string `yaml:"key"`
	Label      string `yaml:"label"`
	ListingURL string `yaml:"listing_url"`
}

// Load loads configuration from path and the environment. A missing file
// is not an error.
func Load(path string) (*Config, error) {
	cfg, err := infraconfig.LoadWithDefaults[Config](path, true, setDefaults)
	if err != nil {
		return nil, err
	}

	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

func setDefaults(cfg *Config) {
	// Service defaults
	if cfg.Service.Name == "" {
		cfg.Service.Name = "npa-api"
	}
	if cfg.Service.Version == "" {
		cfg.Service.Version = "1.1.0"
	}
	if cfg.Service.Port == 0 {
		cfg.Service.Port = 5000
	}
	if cfg.Service.DefaultPageSize == 0 {
		cfg.Service.DefaultPageSize = 20
	}
	if cfg.Service.MaxPageSize == 0 {
		cfg.Service.MaxPageSize = 50
	}

	cfg.Logging.SetDefaults()

	// Source defaults
	if cfg.Source.BaseURL == "" {
		cfg.Source.BaseURL = catalog.DefaultBaseURL
	}
	if len(cfg.Source.Categories) == 0 {
		for _, c := range catalog.DefaultCategories() {
			cfg.Source.Categories = append(cfg.Source.Categories, CategoryConfig{
				Key:        c.Key,
				Label:      c.Label,
				ListingURL: c.ListingURL,
			})
		}
	}

	cfg.Fetcher = cfg.Fetcher.WithDefaults()
	cfg.CORS.SetDefaults()
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := infraconfig.ValidatePort("service.port", c.Service.Port); err != nil {
		return err
	}
	if c.Service.MaxPageSize < 1 {
		return &infraconfig.ValidationError{Field: "service.max_page_size", Message: "must be greater than 0"}
	}
	if c.Service.DefaultPageSize < 1 || c.Service.DefaultPageSize > c.Service.MaxPageSize {
		return &infraconfig.ValidationError{
			Field:   "service.default_page_size",
			Message: fmt.Sprintf("must be between 1 and %d", c.Service.MaxPageSize),
		}
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := infraconfig.ValidateAbsoluteURL("source.base_url", c.Source.BaseURL); err != nil {
		return err
	}
	if err := c.validateCategories(); err != nil {
		return err
	}
	return c.Fetcher.Validate()
}

func (c *Config) validateCategories() error {
	seen := make(map[string]struct{}, len(c.Source.Categories))
	for i, cat := range c.Source.Categories {
		field := fmt.Sprintf("source.categories[%d]", i)
		if err := infraconfig.ValidateRequired(field+".key", cat.Key); err != nil {
			return err
		}
		if cat.Key == domain.CategoryAll {
			return &infraconfig.ValidationError{Field: field + ".key", Message: "\"all\" is reserved"}
		}
		if _, dup := seen[cat.Key]; dup {
			return &infraconfig.ValidationError{Field: field + ".key", Message: "duplicate key " + cat.Key}
		}
		seen[cat.Key] = struct{}{}

		if err := infraconfig.ValidateAbsoluteURL(field+".listing_url", cat.ListingURL); err != nil {
			return err
		}
		if !strings.HasPrefix(cat.ListingURL, strings.TrimRight(c.Source.BaseURL, "/")+"/") {
			return &infraconfig.ValidationError{Field: field + ".listing_url", Message: "must be on source.base_url"}
		}
	}
	return nil
}

// Catalog converts the source section into catalog settings.
func (c *Config) Catalog() catalog.Config {
	categories := make([]domain.Category, 0, len(c.Source.Categories))
	for _, cat := range c.Source.Categories {
		label := cat.Label
		if label == "" {
			label = cat.Key
		}
		categories = append(categories, domain.Category{Key: cat.Key, Label: label, ListingURL: cat.ListingURL})
	}
	return catalog.Config{BaseURL: c.Source.BaseURL, Categories: categories}
}
