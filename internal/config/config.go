package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Autosave AutosaveConfig
	PDF      PDFConfig
	CORS     CORSConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// StoreConfig holds blob store settings. The default backend is a local
// SQLite file; setting driver to "pgx" with a DSN switches to PostgreSQL.
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
	DSN    string `mapstructure:"dsn"`
}

// DataSource returns the connection string for the configured driver.
func (s *StoreConfig) DataSource() string {
	if s.Driver == "pgx" {
		return s.DSN
	}
	return fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", s.Path)
}

// AutosaveConfig holds draft autosave settings.
type AutosaveConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// PDFConfig holds PDF rendering settings.
type PDFConfig struct {
	PageSize    string `mapstructure:"page_size"`
	Orientation string `mapstructure:"orientation"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the PROINVOICE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PROINVOICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// Store defaults
	v.SetDefault("store.driver", "sqlite3")
	v.SetDefault("store.path", "proinvoice.db")
	v.SetDefault("store.dsn", "")

	// Autosave defaults
	v.SetDefault("autosave.debounce", "500ms")

	// PDF defaults
	v.SetDefault("pdf.page_size", "Letter")
	v.SetDefault("pdf.orientation", "P")

	// CORS defaults (localhost origins for the local UI)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "PROINVOICE_SERVER_PORT",
		"server.read_timeout":  "PROINVOICE_SERVER_READ_TIMEOUT",
		"server.write_timeout": "PROINVOICE_SERVER_WRITE_TIMEOUT",
		"server.environment":   "PROINVOICE_SERVER_ENVIRONMENT",
		"store.driver":         "PROINVOICE_STORE_DRIVER",
		"store.path":           "PROINVOICE_STORE_PATH",
		"store.dsn":            "PROINVOICE_STORE_DSN",
		"autosave.debounce":    "PROINVOICE_AUTOSAVE_DEBOUNCE",
		"pdf.page_size":        "PROINVOICE_PDF_PAGE_SIZE",
		"pdf.orientation":      "PROINVOICE_PDF_ORIENTATION",
		"cors.allowed_origins": "PROINVOICE_CORS_ALLOWED_ORIGINS",
		"log.level":            "PROINVOICE_LOG_LEVEL",
		"log.format":           "PROINVOICE_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if PROINVOICE_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PROINVOICE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Store = StoreConfig{
		Driver: v.GetString("store.driver"),
		Path:   v.GetString("store.path"),
		DSN:    v.GetString("store.dsn"),
	}
	cfg.Autosave = AutosaveConfig{
		Debounce: v.GetDuration("autosave.debounce"),
	}
	cfg.PDF = PDFConfig{
		PageSize:    v.GetString("pdf.page_size"),
		Orientation: v.GetString("pdf.orientation"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	return cfg, nil
}
