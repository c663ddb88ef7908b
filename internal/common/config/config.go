// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Finder   FinderConfig   `mapstructure:"finder"`
	Groupex  GroupexConfig  `mapstructure:"groupex"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	MetricsPort  int `mapstructure:"metrics_port"`
	ReadTimeout  int `mapstructure:"read_timeout"`  // milliseconds
	WriteTimeout int `mapstructure:"write_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	URL       string   `mapstructure:"url"` // Single URL for backwards compatibility
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// FinderConfig holds the activity finder settings that used to live in the
// site-wide configuration store.
type FinderConfig struct {
	// Backend is the plugin ID of the active search backend.
	Backend string `mapstructure:"backend"`
	// Index is the search engine index holding session documents.
	Index string `mapstructure:"index"`
	// Ages is a newline separated list of "months,label" age buckets.
	Ages string `mapstructure:"ages"`
	// Exclude is a comma separated list of category node IDs that are
	// always excluded from search results.
	Exclude string `mapstructure:"exclude"`
	// Timezone is the site default timezone, e.g. "America/New_York".
	Timezone string `mapstructure:"timezone"`
	// SettingsPath points at the JSON document with the facet panel and
	// expander sections layout served back to the search UI.
	SettingsPath string `mapstructure:"settings_path"`
	// SearchTimeout bounds a single search engine round trip. Milliseconds.
	SearchTimeout int `mapstructure:"search_timeout"`
}

// GroupexConfig holds settings for the external class schedule sync.
type GroupexConfig struct {
	URL     string `mapstructure:"url"`
	Account string `mapstructure:"account"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
