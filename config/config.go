package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables.
// Provide sane defaults for local development.
type Config struct {
	AppName string
	Env     string // development, staging, production
	Port    string
	GinMode string

	// Database
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBMaxConns    int32
	DBMinConns    int32
	DBMaxConnLife time.Duration

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Google Cloud Storage
	GCSBucket              string
	GCSCredentialsJSONPath string // optional; if empty, Application Default Credentials are used

	// JWT
	JWTSecret string
	JWTTTL    time.Duration

	// Cookies
	CookieDomain string
	CookieSecure bool

	// CORS
	CORSAllowedOrigins string // comma-separated

	// Migrations
	MigrationsDir string

	// Mailgun
	MailgunDomain string
	MailgunAPIKey string
	MailgunSender string

	// RabbitMQ
	RabbitMQURL        string
	RabbitMQEmailQueue string

	// Elasticsearch
	ElasticsearchAddrs string // comma-separated
	ElasticsearchUser  string
	ElasticsearchPass  string
	ESPostsIndex       string

	// HTTP access log toggle (Gin logger)
	HTTPLogEnabled bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// Load reads the environment into a Config.
func Load() *Config {
	return &Config{
		AppName: getenv("APP_NAME", "inkpress"),
		Env:     getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "8080"),
		GinMode: getenv("GIN_MODE", "debug"),

		DBHost:        getenv("DB_HOST", "localhost"),
		DBPort:        getenv("DB_PORT", "5432"),
		DBUser:        getenv("DB_USER", "postgres"),
		DBPassword:    getenv("DB_PASSWORD", "postgres"),
		DBName:        getenv("DB_NAME", "inkpress"),
		DBSSLMode:     getenv("DB_SSLMODE", "disable"),
		DBMaxConns:    int32(getint("DB_MAX_CONNS", 10)),
		DBMinConns:    int32(getint("DB_MIN_CONNS", 2)),
		DBMaxConnLife: getdur("DB_MAX_CONN_LIFE", time.Hour),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getint("REDIS_DB", 0),

		GCSBucket:              getenv("GCS_BUCKET", ""),
		GCSCredentialsJSONPath: getenv("GCS_CREDENTIALS_JSON_PATH", ""),

		JWTSecret: getenv("JWT_SECRET", "dev-secret-change-me"),
		JWTTTL:    getdur("JWT_TTL", 24*time.Hour),

		CookieDomain: getenv("COOKIE_DOMAIN", ""),
		CookieSecure: getbool("COOKIE_SECURE", false),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),

		MigrationsDir: getenv("MIGRATIONS_DIR", "db/migrations"),

		MailgunDomain: getenv("MAILGUN_DOMAIN", ""),
		MailgunAPIKey: getenv("MAILGUN_API_KEY", ""),
		MailgunSender: getenv("MAILGUN_SENDER", "Inkpress <no-reply@inkpress.dev>"),

		RabbitMQURL:        getenv("RABBITMQ_URL", ""),
		RabbitMQEmailQueue: getenv("RABBITMQ_EMAIL_QUEUE", "email_jobs"),

		ElasticsearchAddrs: getenv("ELASTICSEARCH_ADDRS", ""),
		ElasticsearchUser:  getenv("ELASTICSEARCH_USER", ""),
		ElasticsearchPass:  getenv("ELASTICSEARCH_PASS", ""),
		ESPostsIndex:       getenv("ES_POSTS_INDEX", "posts"),

		HTTPLogEnabled: getbool("HTTP_LOG_ENABLED", true),
	}
}

// PostgresDSN builds the connection string for pgx and migrations.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// CORSOrigins splits the comma-separated allowed origins.
func (c *Config) CORSOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ESAddrs splits the comma-separated Elasticsearch addresses.
func (c *Config) ESAddrs() []string {
	parts := strings.Split(c.ElasticsearchAddrs, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
