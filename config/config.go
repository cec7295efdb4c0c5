package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config 进程配置，全部来自环境变量（可选 .env）
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8000"`
	LineAddr string `env:"LINE_ADDR" envDefault:":7000"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// 为空时不归档对局结果
	MySQLDSN string `env:"MYSQL_DSN"`

	JWTAccessSecret  string        `env:"JWT_ACCESS_SECRET" envDefault:"splendor-access-secret"`
	JWTRefreshSecret string        `env:"JWT_REFRESH_SECRET" envDefault:"splendor-refresh-secret"`
	AccessTokenTTL   time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTokenTTL  time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"168h"`

	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogDevelopment bool   `env:"LOG_DEVELOPMENT" envDefault:"false"`

	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:","`

	// 0 表示每局随机
	DeckSeed          uint64 `env:"DECK_SEED" envDefault:"0"`
	DefaultMaxPlayers int    `env:"DEFAULT_MAX_PLAYERS" envDefault:"2"`
}

// Load 读取 .env（不存在则忽略）后解析环境变量
func Load(files ...string) (Config, error) {
	_ = godotenv.Load(files...)
	return Parse(env.Options{})
}

// Parse 按给定选项解析，测试里用 Environment 注入变量
func Parse(opts env.Options) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return Config{}, fmt.Errorf("解析配置失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.DefaultMaxPlayers < 2 || c.DefaultMaxPlayers > 4 {
		return fmt.Errorf("DEFAULT_MAX_PLAYERS 必须在 2-4 之间: %d", c.DefaultMaxPlayers)
	}
	if c.JWTAccessSecret == "" || c.JWTRefreshSecret == "" {
		return fmt.Errorf("JWT 密钥不能为空")
	}
	return nil
}

// AllowAllOrigins 未配置 CORS_ALLOW_ORIGINS 时放开所有来源
func (c Config) AllowAllOrigins() bool {
	return len(c.CORSAllowOrigins) == 0
}
