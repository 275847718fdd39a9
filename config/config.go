package config

import (
	"github.com/ilyakaznacheev/cleanenv"
)

type Telegram struct {
	TelegramAPIToken string `env:"TELEGRAM_APITOKEN" env-required:"true"`
	Language         string `yaml:"language" env:"BOT_LANGUAGE" env-default:"ru"`
}

type Redis struct {
	Endpoint string `yaml:"endpoint" env:"REDIS_ENDPOINT" env-default:"localhost:6379"`
}

type Catalog struct {
	SQLitePath string `yaml:"sqlite_path" env:"CATALOG_SQLITE_PATH" env-default:"catalog.db"`
}

type Config struct {
	Telegram Telegram `yaml:"telegram"`
	Redis    Redis    `yaml:"redis"`
	Catalog  Catalog  `yaml:"catalog"`
}

func LoadConfig(cfgPath string) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(cfgPath, &cfg); err != nil {
		return nil, err
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
