package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

var ErrInvalidValue = errors.New("invalid value")

// Config holds the environment-driven settings for the shared default
// coalescer. Every value is optional.
type Config struct {
	TTL           time.Duration `env:"RECOAL_TTL" env-default:"1s"`
	PruneInterval time.Duration `env:"RECOAL_PRUNE_INTERVAL" env-default:"60s"`
	MaxConcurrent int64         `env:"RECOAL_MAX_CONCURRENT" env-default:"0"`
}

func FromEnv() (Config, error) {
	var config Config

	err := cleanenv.ReadEnv(&config)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidValue, err.Error())
	}

	if config.TTL < 0 {
		return Config{}, fmt.Errorf("%w: RECOAL_TTL must not be negative", ErrInvalidValue)
	}
	if config.PruneInterval < 0 {
		return Config{}, fmt.Errorf("%w: RECOAL_PRUNE_INTERVAL must not be negative", ErrInvalidValue)
	}

	return config, nil
}
