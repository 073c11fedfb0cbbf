package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	HistoryBackendSQLite = "sqlite"
	HistoryBackendRedis  = "redis"
)

type Config struct {
	LogLevel          string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort          string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Redis             Redis  `yaml:"redis"`
	SQLiteStoragePath string `yaml:"sqlite-storage-path" env:"SQLITE_STORAGE_PATH" env-default:"mousecat.db"`
	HistoryBackend    string `yaml:"history-backend" env:"HISTORY_BACKEND" env-default:"sqlite"`
	Rules             Rules  `yaml:"rules"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Rules switches on checks the base game does not make.
type Rules struct {
	EnforceTurns   bool `yaml:"enforce-turns" env:"RULES_ENFORCE_TURNS" env-default:"false"`
	RejectOccupied bool `yaml:"reject-occupied" env:"RULES_REJECT_OCCUPIED" env-default:"false"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
