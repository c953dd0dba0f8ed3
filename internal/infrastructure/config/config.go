package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret       string   `env:"JWT_SECRET"`
	TokenTTLMinutes int      `env:"TOKEN_TTL_MINUTES, default=30"`
	AllowedOrigins  []string `env:"ALLOWED_ORIGINS,   default=http://localhost:8080"`
	CookieSecure    bool     `env:"COOKIE_SECURE,     default=false"`

	GoogleRedirectURL string `env:"GOOGLE_REDIRECT_URL, default=http://localhost:8080/auth/google/callback"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=auth_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
