package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel        string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort        string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	ShutdownTimeout time.Duration `yaml:"shutdown-timeout" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
	Redis           Redis         `yaml:"redis"`
	Game            Game          `yaml:"game"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Game struct {
	// TTL of an idle game session.
	TTL time.Duration `yaml:"ttl" env:"GAME_TTL" env-default:"1h"`
	// TTL of a multiplayer player record, refreshed on every update.
	PlayerTTL time.Duration `yaml:"player-ttl" env:"PLAYER_TTL" env-default:"24h"`
	// TTL of a solved position, 0 keeps it forever.
	MoveCacheTTL time.Duration `yaml:"move-cache-ttl" env:"MOVE_CACHE_TTL" env-default:"0s"`
	// Seed of the easy bot, 0 seeds from the clock.
	RandomSeed int64 `yaml:"random-seed" env:"RANDOM_SEED" env-default:"0"`
}

// MustLoad - load all configurations in config.yml file, environment variables take precedence.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
