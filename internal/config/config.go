package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/craftdex/internal/icon"
)

// Server holds all configuration for the craftdex service.
type Server struct {
	// Network
	BindAddress  string        `yaml:"bind_address"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`

	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	// Item source: "catalog" (YAML file) or "postgres"
	Source      string `yaml:"source"`
	CatalogPath string `yaml:"catalog_path"`

	// Database
	Database DatabaseConfig `yaml:"database"`

	Icons IconsConfig `yaml:"icons"`
	Tree  TreeConfig  `yaml:"tree"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// IconProfileConfig describes one icon resolver profile.
type IconProfileConfig struct {
	Sizes        []int  `yaml:"sizes"`
	Format       string `yaml:"format"`
	LegacyFormat string `yaml:"legacy_format"`
	BaseURL      string `yaml:"base_url"`
}

// IconsConfig holds the item and large (NPC/compendium) icon profiles.
type IconsConfig struct {
	Item  IconProfileConfig `yaml:"item"`
	Large IconProfileConfig `yaml:"large"`
}

// TreeConfig bounds dependency tree construction and rendering.
type TreeConfig struct {
	MaxDepth int           `yaml:"max_depth"`
	IconSize int           `yaml:"icon_size"`
	CacheTTL time.Duration `yaml:"cache_ttl"` // item lookup cache for the postgres source
}

// Default returns Server config with sensible defaults.
func Default() Server {
	return Server{
		BindAddress:  "0.0.0.0",
		Port:         8080,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		LogLevel:     "info",
		Source:       "catalog",
		CatalogPath:  "config/catalog.yaml",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "craftdex",
			Password: "craftdex",
			DBName:   "craftdex",
			SSLMode:  "disable",
		},
		Icons: IconsConfig{
			Item: IconProfileConfig{
				Sizes:        append([]int(nil), icon.DefaultItemSizes...),
				Format:       "webp",
				LegacyFormat: "png",
				BaseURL:      "/icons",
			},
			Large: IconProfileConfig{
				Sizes:        append([]int(nil), icon.DefaultLargeSizes...),
				Format:       "webp",
				LegacyFormat: "png",
				BaseURL:      "/images",
			},
		},
		Tree: TreeConfig{
			MaxDepth: 32,
			IconSize: 24,
			CacheTTL: 5 * time.Minute,
		},
	}
}

// Load loads config from a YAML file.
// If the file doesn't exist, returns defaults.
func Load(path string) (Server, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks values that would make the service unusable.
func (c Server) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	switch c.Source {
	case "catalog":
		if c.CatalogPath == "" {
			return fmt.Errorf("source catalog requires catalog_path")
		}
	case "postgres":
	default:
		return fmt.Errorf("unknown source %q", c.Source)
	}
	if c.Tree.MaxDepth <= 0 {
		return fmt.Errorf("tree.max_depth must be positive, got %d", c.Tree.MaxDepth)
	}
	if _, err := c.Icons.Item.Profile("item"); err != nil {
		return err
	}
	if _, err := c.Icons.Large.Profile("large"); err != nil {
		return err
	}
	return nil
}

// Profile builds an immutable icon resolver profile.
// An invalid size table is a startup error.
func (p IconProfileConfig) Profile(name string) (*icon.Profile, error) {
	table, err := icon.NewSizeTable(p.Sizes...)
	if err != nil {
		return nil, fmt.Errorf("icons.%s: %w", name, err)
	}
	if p.Format == "" {
		return nil, fmt.Errorf("icons.%s: empty format", name)
	}
	legacy := p.LegacyFormat
	if legacy == "" {
		legacy = p.Format
	}
	return &icon.Profile{
		Name:         name,
		Table:        table,
		Format:       p.Format,
		LegacyFormat: legacy,
		BaseURL:      p.BaseURL,
	}, nil
}
