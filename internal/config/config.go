package config

import (
	"errors"
	"time"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/logger"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const defaultJWTSecret = "supersecretkey"

// Config holds everything main needs to wire the service.
type Config struct {
	ServiceName string `mapstructure:"SERVICE_NAME"`
	HTTPPort    string `mapstructure:"HTTP_PORT"`

	MongoURI            string        `mapstructure:"MONGO_URI"`
	MongoDatabase       string        `mapstructure:"MONGO_DATABASE"`
	MongoConnectTimeout time.Duration `mapstructure:"MONGO_CONNECT_TIMEOUT"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTTTL    time.Duration `mapstructure:"JWT_TTL"`

	MinioEndpoint  string `mapstructure:"MINIO_ENDPOINT"`
	MinioAccessKey string `mapstructure:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `mapstructure:"MINIO_SECRET_KEY"`
	MinioBucket    string `mapstructure:"MINIO_BUCKET"`
	MinioUseSSL    bool   `mapstructure:"MINIO_USE_SSL"`
	MediaFolder    string `mapstructure:"MEDIA_FOLDER"`
	UploadsDir     string `mapstructure:"UPLOADS_DIR"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	NATSURL string `mapstructure:"NATS_URL"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPEmail    string `mapstructure:"SMTP_EMAIL"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`

	PrometheusMetricsPort  string `mapstructure:"PROMETHEUS_METRICS_PORT"`
	OTExporterOTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	RateLimitPerMinute     int    `mapstructure:"RATE_LIMIT_PER_MINUTE"`
	TrustProxy             bool   `mapstructure:"TRUST_PROXY"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

var defaults = map[string]interface{}{
	"SERVICE_NAME":                "marketplace-service",
	"HTTP_PORT":                   "5000",
	"MONGO_URI":                   "mongodb://localhost:27017/?replicaSet=rs0",
	"MONGO_DATABASE":              "olx",
	"MONGO_CONNECT_TIMEOUT":       "10s",
	"JWT_SECRET":                  defaultJWTSecret,
	"JWT_TTL":                     "168h",
	"MINIO_ENDPOINT":              "localhost:9000",
	"MINIO_ACCESS_KEY":            "",
	"MINIO_SECRET_KEY":            "",
	"MINIO_BUCKET":                "olx",
	"MINIO_USE_SSL":               false,
	"MEDIA_FOLDER":                "olx-products",
	"UPLOADS_DIR":                 "uploads",
	"REDIS_ADDR":                  "localhost:6379",
	"REDIS_PASSWORD":              "",
	"REDIS_DB":                    0,
	"NATS_URL":                    "nats://localhost:4222",
	"SMTP_HOST":                   "smtp.gmail.com",
	"SMTP_PORT":                   587,
	"SMTP_EMAIL":                  "",
	"SMTP_PASSWORD":               "",
	"PROMETHEUS_METRICS_PORT":     "9095",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "",
	"RATE_LIMIT_PER_MINUTE":       120,
	"TRUST_PROXY":                 false,
	"LOG_LEVEL":                   "info",
	"LOG_FORMAT":                  "json",
}

// LoadConfig reads the configuration from the environment (.env is loaded by main).
func LoadConfig(appLogger *logger.Logger) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		appLogger.Error("Failed to unmarshal configuration", zap.Error(err))
		return nil, err
	}

	if cfg.MongoURI == "" {
		return nil, errors.New("MONGO_URI is not set")
	}
	if cfg.MongoDatabase == "" {
		return nil, errors.New("MONGO_DATABASE is not set")
	}
	if cfg.JWTSecret == defaultJWTSecret || cfg.JWTSecret == "" {
		appLogger.Warn("JWT_SECRET is empty or uses the insecure default. Set a strong secret in the environment.")
		if cfg.JWTSecret == "" {
			cfg.JWTSecret = defaultJWTSecret
		}
	}
	if cfg.JWTTTL <= 0 {
		cfg.JWTTTL = 7 * 24 * time.Hour
	}

	appLogger.Debug("Configuration loaded",
		zap.String("service_name", cfg.ServiceName),
		zap.String("http_port", cfg.HTTPPort),
		zap.String("mongo_database", cfg.MongoDatabase),
		zap.String("minio_endpoint", cfg.MinioEndpoint),
		zap.String("redis_addr", cfg.RedisAddr),
		zap.String("nats_url", cfg.NATSURL),
		zap.Bool("smtp_configured", cfg.SMTPConfigured()),
		zap.String("prometheus_port", cfg.PrometheusMetricsPort),
		zap.String("otel_endpoint", cfg.OTExporterOTLPEndpoint),
	)
	return &cfg, nil
}

// SMTPConfigured reports whether listing-created emails can be sent.
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPEmail != "" && c.SMTPPassword != ""
}
