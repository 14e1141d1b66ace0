package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	pkglogger "github.com/damoang/angple-search/pkg/logger"
	"gopkg.in/yaml.v3"
)

// Config 전체 설정
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	CORS     CORSConfig     `yaml:"cors"`
	Search   SearchConfig   `yaml:"search"`
}

// ServerConfig HTTP 서버 설정
type ServerConfig struct {
	Port     int    `yaml:"port"`
	Mode     string `yaml:"mode"` // debug, release, test
	Env      string `yaml:"env"`
	LogLevel string `yaml:"log_level"`
}

// DatabaseConfig Postgres 연결 설정
type DatabaseConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	User            string `yaml:"user"`
	Password        string `yaml:"password"`
	DBName          string `yaml:"dbname"`
	SSLMode         string `yaml:"sslmode"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // seconds
}

// GetDSN returns the Postgres keyword/value DSN
func (d DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// RedisConfig Redis 설정. Host 가 비어 있으면 캐시 없이 동작
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// JWTConfig 토큰 검증 설정
type JWTConfig struct {
	Secret    string `yaml:"secret"`
	Issuer    string `yaml:"issuer"`
	ExpiresIn int    `yaml:"expires_in"` // seconds
}

// CORSConfig CORS 설정 (콤마 구분)
type CORSConfig struct {
	AllowOrigins string `yaml:"allow_origins"`
}

// SearchConfig 검색 튜닝
type SearchConfig struct {
	DefaultPageSize     int     `yaml:"default_page_size"`
	TextSearchConfig    string  `yaml:"text_search_config"`
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	ImageCacheTTL       int     `yaml:"image_cache_ttl"` // seconds
	SnapshotIsolation   string  `yaml:"snapshot_isolation"`
	// RateLimitPerMinute requests per caller (or client IP) per minute; 0 disables
	RateLimitPerMinute int `yaml:"rate_limit_per_minute"`
}

// ImageCacheDuration image reference cache TTL
func (s SearchConfig) ImageCacheDuration() time.Duration {
	return time.Duration(s.ImageCacheTTL) * time.Second
}

// Load reads a YAML config file, then applies environment overrides and defaults.
// A missing file is not an error: env and defaults alone are enough.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		pkglogger.Warn("config file %s not found, using env and defaults", path)
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(cfg)
	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsDevelopment reports whether the service runs in a local/dev environment
func (c *Config) IsDevelopment() bool {
	switch c.Server.Env {
	case "", "local", "dev", "development":
		return true
	}
	return false
}

func (c *Config) validate() error {
	if c.Search.DefaultPageSize < 1 || c.Search.DefaultPageSize > 50 {
		return fmt.Errorf("search.default_page_size must be between 1 and 50, got %d", c.Search.DefaultPageSize)
	}
	if c.Search.SimilarityThreshold <= 0 || c.Search.SimilarityThreshold > 1 {
		return fmt.Errorf("search.similarity_threshold must be in (0, 1], got %v", c.Search.SimilarityThreshold)
	}
	if c.Search.RateLimitPerMinute < 0 {
		return fmt.Errorf("search.rate_limit_per_minute must not be negative, got %d", c.Search.RateLimitPerMinute)
	}
	if c.JWT.Secret == "" && !c.IsDevelopment() {
		return fmt.Errorf("jwt.secret is required outside development")
	}
	return nil
}

func applyEnv(c *Config) {
	setString(&c.Server.Env, "APP_ENV")
	setInt(&c.Server.Port, "PORT")
	setString(&c.Server.Mode, "GIN_MODE")
	setString(&c.Server.LogLevel, "LOG_LEVEL")

	setString(&c.Database.Host, "DB_HOST")
	setInt(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Database.SSLMode, "DB_SSLMODE")

	setString(&c.Redis.Host, "REDIS_HOST")
	setInt(&c.Redis.Port, "REDIS_PORT")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setInt(&c.Redis.DB, "REDIS_DB")

	setString(&c.JWT.Secret, "JWT_SECRET")
	setString(&c.CORS.AllowOrigins, "CORS_ALLOW_ORIGINS")

	setInt(&c.Search.DefaultPageSize, "SEARCH_DEFAULT_PAGE_SIZE")
	setString(&c.Search.TextSearchConfig, "SEARCH_TEXT_CONFIG")
	setFloat(&c.Search.SimilarityThreshold, "SEARCH_SIMILARITY_THRESHOLD")
	setInt(&c.Search.ImageCacheTTL, "SEARCH_IMAGE_CACHE_TTL")
	setString(&c.Search.SnapshotIsolation, "SEARCH_SNAPSHOT_ISOLATION")
	setInt(&c.Search.RateLimitPerMinute, "SEARCH_RATE_LIMIT_PER_MINUTE")
}

func applyDefaults(c *Config) {
	defInt(&c.Server.Port, 8082)
	defString(&c.Server.Mode, "debug")
	defString(&c.Server.Env, "local")
	defString(&c.Server.LogLevel, "info")

	defString(&c.Database.Host, "localhost")
	defInt(&c.Database.Port, 5432)
	defString(&c.Database.SSLMode, "disable")
	defInt(&c.Database.MaxIdleConns, 5)
	defInt(&c.Database.MaxOpenConns, 20)
	defInt(&c.Database.ConnMaxLifetime, 300)

	defInt(&c.Redis.Port, 6379)
	defInt(&c.Redis.PoolSize, 10)

	defString(&c.JWT.Issuer, "angple")
	defInt(&c.JWT.ExpiresIn, 3600)

	defInt(&c.Search.DefaultPageSize, 10)
	defString(&c.Search.TextSearchConfig, "simple")
	if c.Search.SimilarityThreshold == 0 {
		c.Search.SimilarityThreshold = 0.2
	}
	defInt(&c.Search.ImageCacheTTL, 600)
	defString(&c.Search.SnapshotIsolation, "repeatable_read")
}

// LogResolved logs the effective configuration without secrets
func LogResolved(c *Config) {
	pkglogger.GetLogger().Info().
		Str("env", c.Server.Env).
		Int("port", c.Server.Port).
		Str("db_host", c.Database.Host).
		Int("db_port", c.Database.Port).
		Str("db_name", c.Database.DBName).
		Bool("redis_enabled", c.Redis.Host != "").
		Bool("jwt_secret_set", c.JWT.Secret != "").
		Int("default_page_size", c.Search.DefaultPageSize).
		Str("text_search_config", c.Search.TextSearchConfig).
		Float64("similarity_threshold", c.Search.SimilarityThreshold).
		Str("snapshot_isolation", c.Search.SnapshotIsolation).
		Int("rate_limit_per_minute", c.Search.RateLimitPerMinute).
		Msg("config resolved")
}

// SplitOrigins splits the comma separated CORS origin list
func (c CORSConfig) SplitOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat(dst *float64, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func defString(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

func defInt(dst *int, v int) {
	if *dst == 0 {
		*dst = v
	}
}
