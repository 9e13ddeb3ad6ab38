package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	Cache        CacheConfig
	Log          LogConfig
	Auth         AuthConfig
	Trend        TrendConfig
	Notification NotificationConfig
	NATS         NATSConfig
	Worker       WorkerConfig
	Policy       PolicyConfig
}

type ServerConfig struct {
	Host     string
	Port     int
	Env      string
	Timezone string
	// CORSAllowOrigins - список origin через запятую для карты и кабинета сотрудников
	CORSAllowOrigins string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	// ConnectAttempts - попытки подключения при старте, пока база поднимается
	ConnectAttempts  int
	StatementTimeout time.Duration
}

type RedisConfig struct {
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type CacheConfig struct {
	HeatmapCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

type AuthConfig struct {
	// PublicKeyPath - PEM ключ сервиса идентификации для проверки RS256 токенов
	PublicKeyPath string
}

type TrendConfig struct {
	Window    time.Duration
	Threshold int64
}

type NotificationConfig struct {
	Stream        string
	ConsumerGroup string
	BatchSize     int
	RatePerSecond float64
	Burst         int
	// ClaimMinIdle - через сколько простоя pending задание забирается повторно.
	// Должно быть больше времени самой долгой рассылки.
	ClaimMinIdle time.Duration
}

type NATSConfig struct {
	URL           string
	SubjectPrefix string
}

type WorkerConfig struct {
	Enabled bool
}

type PolicyConfig struct {
	File string
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// .env необязателен, переменные окружения читаются в любом случае
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		Server: ServerConfig{
			Host:     v.GetString("API_HOST"),
			Port:     v.GetInt("API_PORT"),
			Env:      v.GetString("API_ENV"),
			Timezone: v.GetString("APP_TIMEZONE"),

			CORSAllowOrigins: v.GetString("CORS_ALLOW_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,

			ConnectAttempts:  v.GetInt("DB_CONNECT_ATTEMPTS"),
			StatementTimeout: time.Duration(v.GetInt("DB_STATEMENT_TIMEOUT_MS")) * time.Millisecond,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),

			PoolSize:     v.GetInt("REDIS_POOL_SIZE"),
			ReadTimeout:  time.Duration(v.GetInt("REDIS_READ_TIMEOUT_MS")) * time.Millisecond,
			WriteTimeout: time.Duration(v.GetInt("REDIS_WRITE_TIMEOUT_MS")) * time.Millisecond,
		},
		Cache: CacheConfig{
			HeatmapCacheTTL: time.Duration(v.GetInt("HEATMAP_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Auth: AuthConfig{
			PublicKeyPath: v.GetString("AUTH_JWT_PUBLIC_KEY_PATH"),
		},
		Trend: TrendConfig{
			Window:    time.Duration(v.GetInt("TREND_WINDOW_MINUTES")) * time.Minute,
			Threshold: v.GetInt64("TREND_THRESHOLD"),
		},
		Notification: NotificationConfig{
			Stream:        v.GetString("NOTIFY_STREAM"),
			ConsumerGroup: v.GetString("NOTIFY_CONSUMER_GROUP"),
			BatchSize:     v.GetInt("NOTIFY_BATCH_SIZE"),
			RatePerSecond: v.GetFloat64("NOTIFY_RATE_PER_SECOND"),
			Burst:         v.GetInt("NOTIFY_BURST"),
			ClaimMinIdle:  time.Duration(v.GetInt("NOTIFY_CLAIM_MIN_IDLE_SECONDS")) * time.Second,
		},
		NATS: NATSConfig{
			URL:           v.GetString("NATS_URL"),
			SubjectPrefix: v.GetString("NATS_SUBJECT_PREFIX"),
		},
		Worker: WorkerConfig{
			Enabled: v.GetBool("WORKER_ENABLED"),
		},
		Policy: PolicyConfig{
			File: v.GetString("POLICY_FILE"),
		},
	}

	cfg.applyDefaults()
	return cfg
}

// applyDefaults - значения по умолчанию, если не заданы
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Timezone == "" {
		c.Server.Timezone = "UTC"
	}
	if c.Server.CORSAllowOrigins == "" {
		c.Server.CORSAllowOrigins = "*"
	}
	if c.Database.ConnectAttempts <= 0 {
		c.Database.ConnectAttempts = 5
	}
	if c.Database.StatementTimeout == 0 {
		c.Database.StatementTimeout = 10 * time.Second
	}
	if c.Redis.ReadTimeout == 0 {
		c.Redis.ReadTimeout = 3 * time.Second
	}
	if c.Redis.WriteTimeout == 0 {
		c.Redis.WriteTimeout = 3 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Cache.HeatmapCacheTTL == 0 {
		c.Cache.HeatmapCacheTTL = 30 * time.Second
	}
	if c.Trend.Window == 0 {
		c.Trend.Window = 60 * time.Minute
	}
	if c.Trend.Threshold == 0 {
		c.Trend.Threshold = 5
	}
	if c.Notification.Stream == "" {
		c.Notification.Stream = "stream:notify:service_available"
	}
	if c.Notification.ConsumerGroup == "" {
		c.Notification.ConsumerGroup = "notification-fanout-workers"
	}
	if c.Notification.BatchSize == 0 {
		c.Notification.BatchSize = 100
	}
	if c.Notification.RatePerSecond == 0 {
		c.Notification.RatePerSecond = 200
	}
	if c.Notification.Burst == 0 {
		c.Notification.Burst = 50
	}
	if c.Notification.ClaimMinIdle == 0 {
		c.Notification.ClaimMinIdle = 5 * time.Minute
	}
	if c.NATS.URL == "" {
		c.NATS.URL = "nats://localhost:4222"
	}
	if c.NATS.SubjectPrefix == "" {
		c.NATS.SubjectPrefix = "notifications.user"
	}
}

// Location - часовой пояс для "сегодня" и log_date
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Server.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
