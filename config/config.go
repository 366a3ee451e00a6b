package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const DefaultProviderURL = "https://api.proxyscrape.com/v2/?request=displayproxies&protocol=http&timeout=1000&country=all&ssl=all&anonymity=elite"

const (
	JournalNone     = "none"
	JournalPostgres = "postgres"
	JournalSQLite   = "sqlite"
)

type Config struct {
	Logger   LoggerConfig   `yaml:"logger"`
	Provider ProviderConfig `yaml:"provider"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Rotator  RotatorConfig  `yaml:"rotator"`
	Settings SettingsConfig `yaml:"settings"`
	Journal  JournalConfig  `yaml:"journal"`
	GeoIP    GeoIPConfig    `yaml:"geoip"`
	Server   ServerConfig   `yaml:"server"`
}

type LoggerConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

type ProviderConfig struct {
	URL       string        `yaml:"url"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

type FetchConfig struct {
	Timeout             time.Duration `yaml:"timeout"`
	DialTimeout         time.Duration `yaml:"dial_timeout"`
	TLSHandshakeTimeout time.Duration `yaml:"tls_handshake_timeout"`
}

type RotatorConfig struct {
	Strategy string `yaml:"strategy"`
}

type SettingsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type JournalConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	Schema string `yaml:"schema"`
}

type GeoIPConfig struct {
	DBPath string `yaml:"db_path"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LoadConfig reads the YAML file at path, applies .env/environment overrides
// and fills defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}

	// .env is optional
	_ = godotenv.Load()
	cfg.applyEnv()
	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Default returns a config with every field set to its default value.
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PROXY_ROTATOR_PROVIDER_URL"); v != "" {
		c.Provider.URL = v
	}
	if v := os.Getenv("PROXY_ROTATOR_JOURNAL_DRIVER"); v != "" {
		c.Journal.Driver = v
	}
	if v := os.Getenv("PROXY_ROTATOR_JOURNAL_DSN"); v != "" {
		c.Journal.DSN = v
	}
	if v := os.Getenv("PROXY_ROTATOR_GEOIP_DB"); v != "" {
		c.GeoIP.DBPath = v
	}
	if v := os.Getenv("PROXY_ROTATOR_LOG_LEVEL"); v != "" {
		c.Logger.Level = v
	}
}

func (c *Config) SetDefaults() {
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.Encoding == "" {
		c.Logger.Encoding = "json"
	}
	if c.Provider.URL == "" {
		c.Provider.URL = DefaultProviderURL
	}
	if c.Provider.Timeout <= 0 {
		c.Provider.Timeout = 10 * time.Second
	}
	if c.Fetch.Timeout <= 0 {
		c.Fetch.Timeout = 10 * time.Second
	}
	if c.Fetch.DialTimeout <= 0 {
		c.Fetch.DialTimeout = 5 * time.Second
	}
	if c.Fetch.TLSHandshakeTimeout <= 0 {
		c.Fetch.TLSHandshakeTimeout = 5 * time.Second
	}
	if c.Rotator.Strategy == "" {
		c.Rotator.Strategy = "round_robin"
	}
	if c.Journal.Driver == "" {
		c.Journal.Driver = JournalNone
	}
	if c.Journal.Schema == "" {
		c.Journal.Schema = "public"
	}
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8089
	}
}

func (c *Config) Validate() error {
	switch c.Journal.Driver {
	case JournalNone:
	case JournalPostgres, JournalSQLite:
		if c.Journal.DSN == "" {
			return fmt.Errorf("journal dsn is required for driver %q", c.Journal.Driver)
		}
	default:
		return fmt.Errorf("unknown journal driver %q", c.Journal.Driver)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}
