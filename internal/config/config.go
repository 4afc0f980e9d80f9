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
	DB       DBConfig
	Upload   UploadConfig
	Extract  ExtractConfig
	Analyzer AnalyzerConfig
	Log      LogConfig
	CORS     CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// UploadConfig holds upload spooling settings.
type UploadConfig struct {
	Dir           string `mapstructure:"dir"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
}

// ExtractConfig holds extraction tool settings. Tesseract and ffmpeg are
// invoked as subprocesses; empty paths fall back to the binary name.
type ExtractConfig struct {
	Tesseract     string `mapstructure:"tesseract"`
	TesseractLang string `mapstructure:"tesseract_lang"`
	FFmpeg        string `mapstructure:"ffmpeg"`
	TimeoutSecs   int    `mapstructure:"timeout_secs"`
}

// AnalyzerConfig holds generative model settings for a single provider.
type AnalyzerConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the REFINERY_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("REFINERY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "refinery")
	v.SetDefault("db.password", "refinery_secret")
	v.SetDefault("db.name", "refinery_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Upload defaults
	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("upload.max_file_size_mb", 50)

	// Extract defaults
	v.SetDefault("extract.tesseract", "tesseract")
	v.SetDefault("extract.tesseract_lang", "eng")
	v.SetDefault("extract.ffmpeg", "ffmpeg")
	v.SetDefault("extract.timeout_secs", 120)

	// Analyzer defaults
	v.SetDefault("analyzer.provider", "gemini")
	v.SetDefault("analyzer.api_key", "")
	v.SetDefault("analyzer.default_model", "gemini-1.5-flash")
	v.SetDefault("analyzer.timeout_secs", 120)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "REFINERY_SERVER_PORT",
		"server.read_timeout":      "REFINERY_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "REFINERY_SERVER_WRITE_TIMEOUT",
		"server.environment":       "REFINERY_SERVER_ENVIRONMENT",
		"db.host":                  "REFINERY_DB_HOST",
		"db.port":                  "REFINERY_DB_PORT",
		"db.user":                  "REFINERY_DB_USER",
		"db.password":              "REFINERY_DB_PASSWORD",
		"db.name":                  "REFINERY_DB_NAME",
		"db.sslmode":               "REFINERY_DB_SSLMODE",
		"db.max_open":              "REFINERY_DB_MAX_OPEN",
		"db.max_idle":              "REFINERY_DB_MAX_IDLE",
		"upload.dir":               "REFINERY_UPLOAD_DIR",
		"upload.max_file_size_mb":  "REFINERY_UPLOAD_MAX_FILE_SIZE_MB",
		"extract.tesseract":        "REFINERY_EXTRACT_TESSERACT",
		"extract.tesseract_lang":   "REFINERY_EXTRACT_TESSERACT_LANG",
		"extract.ffmpeg":           "REFINERY_EXTRACT_FFMPEG",
		"extract.timeout_secs":     "REFINERY_EXTRACT_TIMEOUT_SECS",
		"analyzer.provider":        "REFINERY_ANALYZER_PROVIDER",
		"analyzer.api_key":         "REFINERY_ANALYZER_API_KEY",
		"analyzer.default_model":   "REFINERY_ANALYZER_DEFAULT_MODEL",
		"analyzer.timeout_secs":    "REFINERY_ANALYZER_TIMEOUT_SECS",
		"log.level":                "REFINERY_LOG_LEVEL",
		"log.format":               "REFINERY_LOG_FORMAT",
		"cors.allowed_origins":     "REFINERY_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if REFINERY_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("REFINERY_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Upload = UploadConfig{
		Dir:           v.GetString("upload.dir"),
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	cfg.Extract = ExtractConfig{
		Tesseract:     v.GetString("extract.tesseract"),
		TesseractLang: v.GetString("extract.tesseract_lang"),
		FFmpeg:        v.GetString("extract.ffmpeg"),
		TimeoutSecs:   v.GetInt("extract.timeout_secs"),
	}
	cfg.Analyzer = AnalyzerConfig{
		Provider:     v.GetString("analyzer.provider"),
		APIKey:       v.GetString("analyzer.api_key"),
		DefaultModel: v.GetString("analyzer.default_model"),
		TimeoutSecs:  v.GetInt("analyzer.timeout_secs"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
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

	return cfg, nil
}
