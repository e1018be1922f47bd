// Package config loads scout-cli settings from config.yaml and SCOUT_*
// environment variables.
package config

import (
	"slices"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Dataset DatasetConfig `yaml:"dataset" mapstructure:"dataset"`
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Rules   RulesConfig   `yaml:"rules" mapstructure:"rules"`
	Browse  BrowseConfig  `yaml:"browse" mapstructure:"browse"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// Dataset sources.
const (
	SourceFiles    = "files"
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
)

// DatasetConfig locates the facility, contact, and resident data.
type DatasetConfig struct {
	// Source is "files" to read the paths below, or a store driver to read
	// the last imported snapshot.
	Source     string `yaml:"source" mapstructure:"source"`
	Facilities string `yaml:"facilities" mapstructure:"facilities"`
	Contacts   string `yaml:"contacts" mapstructure:"contacts"`
	Residents  string `yaml:"residents" mapstructure:"residents"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`

	// ConnectAttempts and ConnectBackoffMs retry opening the store.
	ConnectAttempts  int `yaml:"connect_attempts" mapstructure:"connect_attempts"`
	ConnectBackoffMs int `yaml:"connect_backoff_ms" mapstructure:"connect_backoff_ms"`
}

// RulesConfig points at optional YAML overrides of the built-in rule tables.
type RulesConfig struct {
	OwnershipPath string `yaml:"ownership_path" mapstructure:"ownership_path"`
	JobTitlePath  string `yaml:"job_title_path" mapstructure:"job_title_path"`
}

// BrowseConfig sets page sizes and the resident age floor.
type BrowseConfig struct {
	CardPageSize     int `yaml:"card_page_size" mapstructure:"card_page_size"`
	TablePageSize    int `yaml:"table_page_size" mapstructure:"table_page_size"`
	ResidentPageSize int `yaml:"resident_page_size" mapstructure:"resident_page_size"`
	MinResidentAge   int `yaml:"min_resident_age" mapstructure:"min_resident_age"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	RateLimit   float64  `yaml:"rate_limit" mapstructure:"rate_limit"`
	RateBurst   int      `yaml:"rate_burst" mapstructure:"rate_burst"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Every key gets one so AutomaticEnv can override it.
	v.SetDefault("dataset.source", SourceFiles)
	v.SetDefault("dataset.facilities", "data/scoutRentData.json")
	v.SetDefault("dataset.contacts", "data/tblContacts.json")
	v.SetDefault("dataset.residents", "data/tblResident.json")
	v.SetDefault("store.driver", SourceSQLite)
	v.SetDefault("store.database_url", "scout.db")
	v.SetDefault("store.max_conns", 10)
	v.SetDefault("store.min_conns", 1)
	v.SetDefault("store.connect_attempts", 3)
	v.SetDefault("store.connect_backoff_ms", 500)
	v.SetDefault("rules.ownership_path", "")
	v.SetDefault("rules.job_title_path", "")
	v.SetDefault("browse.card_page_size", 6)
	v.SetDefault("browse.table_page_size", 10)
	v.SetDefault("browse.resident_page_size", 9)
	v.SetDefault("browse.min_resident_age", 70)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 20.0)
	v.SetDefault("server.rate_burst", 40)
	v.SetDefault("server.cors_origins", []string{})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validation modes.
const (
	ModeQuery  = "query"
	ModeServe  = "serve"
	ModeImport = "import"
)

// Validate checks the settings a command needs. mode is one of ModeQuery,
// ModeServe or ModeImport.
func (c *Config) Validate(mode string) error {
	var problems []string

	switch c.Dataset.Source {
	case SourceFiles:
		if mode != ModeImport && c.Dataset.Facilities == "" {
			problems = append(problems, "dataset.facilities is required")
		}
	case SourceSQLite, SourcePostgres:
		if c.Store.DatabaseURL == "" {
			problems = append(problems, "store.database_url is required")
		}
	default:
		problems = append(problems, "dataset.source must be files, sqlite, or postgres")
	}

	for key, size := range map[string]int{
		"browse.card_page_size":     c.Browse.CardPageSize,
		"browse.table_page_size":    c.Browse.TablePageSize,
		"browse.resident_page_size": c.Browse.ResidentPageSize,
	} {
		if size < 1 {
			problems = append(problems, key+" must be positive")
		}
	}
	if c.Browse.MinResidentAge < 0 {
		problems = append(problems, "browse.min_resident_age must not be negative")
	}

	switch mode {
	case ModeQuery:
	case ModeServe:
		if c.Server.Port < 1 || c.Server.Port > 65535 {
			problems = append(problems, "server.port must be between 1 and 65535")
		}
		if c.Server.RateLimit < 0 {
			problems = append(problems, "server.rate_limit must not be negative")
		}
	case ModeImport:
		if c.Dataset.Facilities == "" {
			problems = append(problems, "dataset.facilities is required")
		}
		if c.Store.Driver != SourceSQLite && c.Store.Driver != SourcePostgres {
			problems = append(problems, "store.driver must be sqlite or postgres")
		}
		if c.Store.DatabaseURL == "" {
			problems = append(problems, "store.database_url is required")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) == 0 {
		return nil
	}
	slices.Sort(problems)
	problems = slices.Compact(problems)
	return eris.Errorf("config: %s", strings.Join(problems, "; "))
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
