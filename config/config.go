package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Scraper  ScraperConfig  `mapstructure:"scraper"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name           string   `mapstructure:"name"`
	Version        string   `mapstructure:"version"`
	Port           string   `mapstructure:"port"`
	Prefix         string   `mapstructure:"prefix"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	URL          string `mapstructure:"url"`
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Name         string `mapstructure:"name"`
	Sslmode      string `mapstructure:"sslmode"`
	Timezone     string `mapstructure:"timezone"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

// DSN returns the connection string handed to the postgres driver. An
// explicit URL wins over the discrete fields.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.Sslmode, d.Timezone,
	)
}

// LLMConfig selects and configures the summarization backend.
type LLMConfig struct {
	Provider        string        `mapstructure:"provider"` // openai, azure or cohere
	APIKey          string        `mapstructure:"api_key"`
	Endpoint        string        `mapstructure:"endpoint"`
	APIVersion      string        `mapstructure:"api_version"`
	Model           string        `mapstructure:"model"`
	Temperature     float64       `mapstructure:"temperature"`
	SummaryLength   int           `mapstructure:"summary_length"`
	DefaultCategory string        `mapstructure:"default_category"`
	MaxInputChars   int           `mapstructure:"max_input_chars"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

type ScraperConfig struct {
	UserAgent    string        `mapstructure:"user_agent"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
}

// AuthConfig guards the mutating routes. An empty JWTSecret disables auth.
type AuthConfig struct {
	JWTSecret    string        `mapstructure:"jwt_secret"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
	Username     string        `mapstructure:"username"`
	PasswordHash string        `mapstructure:"password_hash"`
}

// Enabled reports whether bearer tokens are required.
func (a AuthConfig) Enabled() bool {
	return a.JWTSecret != ""
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

const envPrefix = "SUMMARIZER"

// plain environment names kept for compatibility with existing .env files
var legacyEnv = map[string]string{
	"database.url":    "DATABASE_URL",
	"llm.api_key":     "AZURE_OPENAI_API_KEY",
	"llm.endpoint":    "AZURE_OPENAI_ENDPOINT",
	"llm.model":       "AZURE_OPENAI_MODEL",
	"llm.api_version": "AZURE_OPENAI_API_VERSION",
	"auth.jwt_secret": "JWT_SECRET",
}

// Load reads the YAML file at path (optional), a .env file in the working
// directory (optional) and environment overrides, in increasing priority.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		if err := v.BindEnv(key, envPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	applyProviderKeys(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "Personalized News Summarizer API")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.port", ":8000")
	v.SetDefault("app.prefix", "/api/v1")
	v.SetDefault("app.mode", "release")
	v.SetDefault("app.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "summary")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.timezone", "UTC")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 50)

	v.SetDefault("llm.provider", "azure")
	v.SetDefault("llm.model", "gpt4o-mini")
	v.SetDefault("llm.api_version", "2024-08-01-preview")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.summary_length", 150)
	v.SetDefault("llm.default_category", "General")
	v.SetDefault("llm.max_input_chars", 12000)
	v.SetDefault("llm.timeout", 60*time.Second)

	v.SetDefault("scraper.user_agent", "NewsSummarizer/1.0")
	v.SetDefault("scraper.timeout", 20*time.Second)
	v.SetDefault("scraper.max_body_bytes", 5<<20)

	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.username", "")
	v.SetDefault("auth.password_hash", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// applyProviderKeys picks up the vendor-specific API key variables when no
// key was configured explicitly.
func applyProviderKeys(cfg *Config) {
	if cfg.LLM.APIKey != "" {
		return
	}
	switch strings.ToLower(cfg.LLM.Provider) {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	case "cohere":
		cfg.LLM.APIKey = os.Getenv("COHERE_API_KEY")
	}
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	if c.Database.URL != "" && !strings.HasPrefix(c.Database.URL, "postgres://") &&
		!strings.HasPrefix(c.Database.URL, "postgresql://") {
		return errors.New("config: database url must be a PostgreSQL connection string")
	}
	if c.LLM.Endpoint != "" && !strings.HasPrefix(c.LLM.Endpoint, "http://") &&
		!strings.HasPrefix(c.LLM.Endpoint, "https://") {
		return errors.New("config: llm endpoint must be a valid HTTP(S) URL")
	}
	switch strings.ToLower(c.LLM.Provider) {
	case "openai", "azure", "cohere":
	default:
		return fmt.Errorf("config: unknown llm provider %q", c.LLM.Provider)
	}
	if c.Auth.Enabled() && (c.Auth.Username == "" || c.Auth.PasswordHash == "") {
		return errors.New("config: auth.username and auth.password_hash are required when auth.jwt_secret is set")
	}
	return nil
}
