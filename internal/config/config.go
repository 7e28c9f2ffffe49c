package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Storage      StorageConfig
	Tracing      TracingConfig      `mapstructure:"tracing"`
	CORS         CORSConfig         `mapstructure:"cors"`
	RateLimit    RateLimitConfig    `mapstructure:"rate_limit"`
	Course       CourseConfig       `mapstructure:"course"`
	Notification NotificationConfig `mapstructure:"notification"`
	Auth         AuthConfig         `mapstructure:"auth"`

	// Runtime flag set from the command line, never from the config file.
	MigrateOnly bool `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
	MinioUseSSL   bool   `mapstructure:"minio_use_ssl"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

// CourseConfig fixes the unit layout of the course. Units are ordered; the
// per-unit lesson count falls back to LessonsPerUnit when no override exists.
type CourseConfig struct {
	Units              []string       `mapstructure:"units"`
	LessonsPerUnit     int            `mapstructure:"lessons_per_unit"`
	LessonOverrides    map[string]int `mapstructure:"lesson_overrides"`
	LessonKeyPrefix    string         `mapstructure:"lesson_key_prefix"`
	UpcomingWindowDays int            `mapstructure:"upcoming_window_days"`
	CacheTTLMinutes    int            `mapstructure:"cache_ttl_minutes"`
}

type NotificationConfig struct {
	DispatchIntervalSeconds int `mapstructure:"dispatch_interval_seconds"`
}

type AuthConfig struct {
	AdminEmail string `mapstructure:"admin_email"`
}

// TotalLessons resolves the lesson count for a unit: the per-unit override
// wins, then the course default, then 4 (the historical fixed value).
func (c *CourseConfig) TotalLessons(unitKey string) int {
	if n, ok := c.LessonOverrides[unitKey]; ok && n > 0 {
		return n
	}
	if c.LessonsPerUnit > 0 {
		return c.LessonsPerUnit
	}
	return 4
}

func (c *CourseConfig) HasUnit(unitKey string) bool {
	for _, u := range c.Units {
		if u == unitKey {
			return true
		}
	}
	return false
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("ERY_CURSOS")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// JWT
	viper.BindEnv("jwt.secret", "JWT_SECRET")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Storage
	viper.BindEnv("storage.type", "STORAGE_TYPE")
	viper.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	viper.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	viper.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	viper.BindEnv("storage.minio_bucket", "MINIO_BUCKET")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	// Auth
	viper.BindEnv("auth.admin_email", "ADMIN_EMAIL")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour

	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	// The unit set is the denominator of every progress computation, so an
	// empty or zero-lesson course is rejected before anything runs.
	if len(cfg.Course.Units) == 0 {
		cfg.Course.Units = []string{"unidad1", "unidad2", "unidad3", "unidad4"}
	}
	if cfg.Course.LessonsPerUnit <= 0 {
		cfg.Course.LessonsPerUnit = 4
	}
	if cfg.Course.LessonKeyPrefix == "" {
		cfg.Course.LessonKeyPrefix = "semana"
	}
	if cfg.Course.UpcomingWindowDays <= 0 {
		cfg.Course.UpcomingWindowDays = 7
	}
	if cfg.Course.CacheTTLMinutes <= 0 {
		cfg.Course.CacheTTLMinutes = 60
	}
	for unit, n := range cfg.Course.LessonOverrides {
		if n <= 0 {
			return nil, fmt.Errorf("lesson_overrides.%s must be positive, got %d", unit, n)
		}
	}

	if cfg.Notification.DispatchIntervalSeconds <= 0 {
		cfg.Notification.DispatchIntervalSeconds = 60
	}

	if cfg.Storage.Type == "local" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, 0755)
		}
	}

	return &cfg, nil
}
