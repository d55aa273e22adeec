package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"github.com/bikeshop/shop-api/internal/pkg/token"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth      AuthConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	HTTP      HTTPConfig
	Kafka     KafkaConfig
	AdminSeed AdminSeedConfig
}

type AuthConfig struct {
	JWTSecret          string `env:"JWT_SECRET, required"`
	AccessTokenMinutes int    `env:"ACCESS_TOKEN_DURATION_MINUTES, default=60"`
	RefreshTokenDays   int    `env:"REFRESH_TOKEN_DURATION_DAYS,   default=30"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=bike_shop"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type HTTPConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS, default=*"`
	RateLimitRPS   float64  `env:"RATE_LIMIT_RPS,       default=20"`
	RateLimitBurst int      `env:"RATE_LIMIT_BURST,     default=30"`
}

type KafkaConfig struct {
	Brokers []string `env:"KAFKA_BROKERS"`
	Topic   string   `env:"KAFKA_TOPIC,   default=shop_events"`
	Workers int      `env:"EVENT_WORKERS, default=4"`
}

// AdminSeedConfig describes an Admin account created at startup when Email is set.
type AdminSeedConfig struct {
	Name     string `env:"ADMIN_NAME, default=Admin"`
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

// Load reads a .env file when present, then the environment, using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()
	return load(ctx, nil)
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Auth.AccessTokenMinutes <= 0 || cfg.Auth.RefreshTokenDays <= 0 {
		return nil, fmt.Errorf("config: token durations must be positive")
	}
	if cfg.AdminSeed.Email != "" && len(cfg.AdminSeed.Password) < 8 {
		return nil, fmt.Errorf("config: ADMIN_PASSWORD must be at least 8 characters")
	}
	return &cfg, nil
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// TokenConfig converts the auth settings for the token service.
func (c *Config) TokenConfig() token.Config {
	return token.Config{
		Secret:     c.Auth.JWTSecret,
		AccessTTL:  time.Duration(c.Auth.AccessTokenMinutes) * time.Minute,
		RefreshTTL: time.Duration(c.Auth.RefreshTokenDays) * 24 * time.Hour,
	}
}
