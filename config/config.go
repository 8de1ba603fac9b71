package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env      string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	BotToken    string `env:"BOT_TOKEN,required" validate:"required"`
	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`

	OpsPort string `env:"OPS_PORT" envDefault:"8081"`

	WeatherAPIKey string `env:"WEATHER_API_KEY" validate:"required_if=Env production,required_if=Env staging"`
	WeatherURL    string `env:"WEATHER_URL" envDefault:"https://api.openweathermap.org/data/2.5/weather"`
	QuoteURL      string `env:"QUOTE_URL" envDefault:"https://favqs.com/api/qotd"`

	TickIntervalSec int `env:"TICK_INTERVAL_SEC" envDefault:"1" validate:"min=1,max=60"`
	WorkMinutes     int `env:"POMODORO_WORK_MINUTES" envDefault:"25" validate:"min=1,max=240"`
	BreakMinutes    int `env:"POMODORO_BREAK_MINUTES" envDefault:"5" validate:"min=1,max=120"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
