package config

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret  string        `env:"JWT_SECRET"`
	JWTTTL     time.Duration `env:"JWT_TTL,     default=1h"`
	BcryptCost int           `env:"BCRYPT_COST, default=10"`

	SQLite SQLiteConfig
	Admin  AdminConfig
}

type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH, default=data/users.db"`
}

// AdminConfig seeds the initial administrator account at startup.
type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL,    default=admin@admin.com"`
	Password string `env:"ADMIN_PASSWORD, default=admin_password"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(log zerolog.Logger) *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		panic(err)
	}
	return &cfg
}
