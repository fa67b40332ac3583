package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// 永続化先
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

const devJWTSecret = "dev_secret_change_me"

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	GoEnv string // dev/prod
	FEURL string // フロントURL（CORS）

	JWTSecret      string        // JWT署名シークレット
	AccessTokenTTL time.Duration // アクセストークンの有効期限

	StorageDriver    string // memory/sqlite/postgres/redis
	StorageNamespace string // セッションの名前空間
	SQLitePath       string
	DatabaseURL      string // postgres DSN（空なら POSTGRES_* から組み立てる）
	RedisAddr        string

	LoadingDelay time.Duration // 起動時の読み込み中表示

	LogLevel  string
	LogFormat string // json/text
}

// Loadは環境変数
func Load() (Config, error) {
	ttl, err := durationEnv("ACCESS_TOKEN_TTL", 15*time.Minute)
	if err != nil {
		return Config{}, err
	}
	delay, err := durationEnv("LOADING_DELAY", 1500*time.Millisecond)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: getenv("PORT", "8080"),

		GoEnv: getenv("GO_ENV", "dev"),
		FEURL: getenv("FE_URL", "http://localhost:5173"),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		AccessTokenTTL: ttl,

		StorageDriver:    strings.ToLower(getenv("STORAGE_DRIVER", DriverSQLite)),
		StorageNamespace: getenv("STORAGE_NAMESPACE", "default"),
		SQLitePath:       getenv("SQLITE_PATH", "storefront.db"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisAddr:        getenv("REDIS_ADDR", "localhost:6379"),

		LoadingDelay: delay,

		LogLevel:  strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getenv("LOG_FORMAT", "json")),
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		if cfg.GoEnv == "prod" {
			return Config{}, fmt.Errorf("JWT_SECRET is required")
		}
		cfg.JWTSecret = devJWTSecret
	}
	if cfg.LoadingDelay < 0 {
		return Config{}, fmt.Errorf("LOADING_DELAY must not be negative")
	}

	switch cfg.StorageDriver {
	case DriverMemory, DriverSQLite, DriverRedis:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = postgresDSNFromEnv()
		}
	default:
		return Config{}, fmt.Errorf("STORAGE_DRIVER must be one of memory, sqlite, postgres, redis: %q", cfg.StorageDriver)
	}

	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return Config{}, fmt.Errorf("LOG_FORMAT must be json or text: %q", cfg.LogFormat)
	}

	return cfg, nil
}

// Addr は ":8080" 形式
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func postgresDSNFromEnv() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getenv("POSTGRES_HOST", "localhost"),
		getenv("POSTGRES_PORT", "5432"),
		getenv("POSTGRES_USER", "postgres"),
		getenv("POSTGRES_PASSWORD", "postgres"),
		getenv("POSTGRES_DB", "storefront"),
		getenv("POSTGRES_SSLMODE", "disable"),
	)
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

// "1500ms" のような duration か、ミリ秒の整数
func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}
