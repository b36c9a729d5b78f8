package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	S3        S3Config
	Log       LogConfig
	CORS      CORSConfig
	Inference InferenceConfig
	Export    ExportConfig
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// InferenceConfig holds settings for the external page annotation service.
type InferenceConfig struct {
	Endpoint      string `mapstructure:"endpoint"`
	APIKey        string `mapstructure:"api_key"`
	Model         string `mapstructure:"model"`
	TimeoutSecs   int    `mapstructure:"timeout_secs"`
	Concurrency   int    `mapstructure:"concurrency"`
	DefaultPrompt string `mapstructure:"default_prompt"`
}

// Timeout returns the per-request timeout.
func (c *InferenceConfig) Timeout() time.Duration {
	if c.TimeoutSecs <= 0 {
		return 120 * time.Second
	}
	return time.Duration(c.TimeoutSecs) * time.Second
}

// ExportConfig holds export limits.
type ExportConfig struct {
	MaxDocuments int `mapstructure:"max_documents"`
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

// JWTConfig holds bearer token verification settings.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from an optional .env file and environment variables
// with the TRADEFLOW_ prefix.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("TRADEFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "300s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "tradeflow")
	v.SetDefault("db.password", "tradeflow_secret")
	v.SetDefault("db.name", "tradeflow_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "tradeflow")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "tradeflow-scans")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 50)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Inference defaults
	v.SetDefault("inference.endpoint", "http://localhost:9000/v1/annotate")
	v.SetDefault("inference.api_key", "")
	v.SetDefault("inference.model", "")
	v.SetDefault("inference.timeout_secs", 120)
	v.SetDefault("inference.concurrency", 4)
	v.SetDefault("inference.default_prompt", "")

	// Export defaults
	v.SetDefault("export.max_documents", 200)

	envBindings := map[string]string{
		"server.port":              "TRADEFLOW_SERVER_PORT",
		"server.read_timeout":      "TRADEFLOW_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "TRADEFLOW_SERVER_WRITE_TIMEOUT",
		"server.environment":       "TRADEFLOW_SERVER_ENVIRONMENT",
		"db.host":                  "TRADEFLOW_DB_HOST",
		"db.port":                  "TRADEFLOW_DB_PORT",
		"db.user":                  "TRADEFLOW_DB_USER",
		"db.password":              "TRADEFLOW_DB_PASSWORD",
		"db.name":                  "TRADEFLOW_DB_NAME",
		"db.sslmode":               "TRADEFLOW_DB_SSLMODE",
		"db.max_open":              "TRADEFLOW_DB_MAX_OPEN",
		"db.max_idle":              "TRADEFLOW_DB_MAX_IDLE",
		"jwt.secret":               "TRADEFLOW_JWT_SECRET",
		"jwt.issuer":               "TRADEFLOW_JWT_ISSUER",
		"s3.region":                "TRADEFLOW_S3_REGION",
		"s3.bucket":                "TRADEFLOW_S3_BUCKET",
		"s3.endpoint":              "TRADEFLOW_S3_ENDPOINT",
		"s3.access_key":            "TRADEFLOW_S3_ACCESS_KEY",
		"s3.secret_key":            "TRADEFLOW_S3_SECRET_KEY",
		"s3.max_file_size_mb":      "TRADEFLOW_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":        "TRADEFLOW_S3_PRESIGN_EXPIRY",
		"log.level":                "TRADEFLOW_LOG_LEVEL",
		"log.format":               "TRADEFLOW_LOG_FORMAT",
		"cors.allowed_origins":     "TRADEFLOW_CORS_ALLOWED_ORIGINS",
		"inference.endpoint":       "TRADEFLOW_INFERENCE_ENDPOINT",
		"inference.api_key":        "TRADEFLOW_INFERENCE_API_KEY",
		"inference.model":          "TRADEFLOW_INFERENCE_MODEL",
		"inference.timeout_secs":   "TRADEFLOW_INFERENCE_TIMEOUT_SECS",
		"inference.concurrency":    "TRADEFLOW_INFERENCE_CONCURRENCY",
		"inference.default_prompt": "TRADEFLOW_INFERENCE_DEFAULT_PROMPT",
		"export.max_documents":     "TRADEFLOW_EXPORT_MAX_DOCUMENTS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set PORT. Use it unless TRADEFLOW_SERVER_PORT is set explicitly.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("TRADEFLOW_SERVER_PORT") == "" {
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
	cfg.JWT = JWTConfig{
		Secret: v.GetString("jwt.secret"),
		Issuer: v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Inference = InferenceConfig{
		Endpoint:      v.GetString("inference.endpoint"),
		APIKey:        v.GetString("inference.api_key"),
		Model:         v.GetString("inference.model"),
		TimeoutSecs:   v.GetInt("inference.timeout_secs"),
		Concurrency:   v.GetInt("inference.concurrency"),
		DefaultPrompt: v.GetString("inference.default_prompt"),
	}
	cfg.Export = ExportConfig{
		MaxDocuments: v.GetInt("export.max_documents"),
	}

	if cfg.Inference.Concurrency < 1 {
		return nil, fmt.Errorf("config.Load: inference.concurrency must be at least 1, got %d", cfg.Inference.Concurrency)
	}

	return cfg, nil
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
