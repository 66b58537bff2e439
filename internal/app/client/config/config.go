package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

const (
	defaultServerURL      = "http://localhost:3000"
	defaultLogLevel       = ""
	defaultEnv            = EnvLocal
	defaultConfigDir      = ".fitclub"
	defaultRequestTimeout = 30
)

type Config struct {
	Env            string        `mapstructure:"app_env" validate:"required,oneof=local dev prod"`
	ServerURL      string        `mapstructure:"server_url" validate:"required,url"`
	LogLevel       string        `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
	RequestTimeout time.Duration `mapstructure:"request_timeout_seconds" validate:"gt=0"`
	AssumeYes      bool          `mapstructure:"assume_yes"`
	ConfigDir      string        `mapstructure:"config_dir"`
}

// MustLoad загружает конфигурацию клиента из глобального viper
func MustLoad() *Config {
	cfg, err := Load(viper.GetViper())
	if err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: %v", err))
	}
	return cfg
}

// Load собирает конфигурацию: .env, переменные окружения, значения по
// умолчанию и уже прочитанный в v конфигурационный файл.
func Load(v *viper.Viper) (*Config, error) {
	loadDotEnv()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("APP_ENV", defaultEnv)
	v.SetDefault("SERVER_URL", defaultServerURL)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", defaultRequestTimeout)
	v.SetDefault("ASSUME_YES", false)
	v.SetDefault("CONFIG_DIR", defaultConfigDir)

	configDir := v.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = "."
		}
		configDir = filepath.Join(homeDir, configDir)
	}

	cfg := &Config{
		Env:            v.GetString("APP_ENV"),
		ServerURL:      strings.TrimRight(v.GetString("SERVER_URL"), "/"),
		LogLevel:       strings.ToLower(v.GetString("LOG_LEVEL")),
		RequestTimeout: time.Duration(v.GetInt("REQUEST_TIMEOUT_SECONDS")) * time.Second,
		AssumeYes:      v.GetBool("ASSUME_YES"),
		ConfigDir:      configDir,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDotEnv подхватывает .env из текущей или родительской директории
func loadDotEnv() {
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Fprintf(os.Stderr, "Ошибка загрузки .env файла: %v\n", err)
		}
	}
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return errors.Wrap(err, "проверка конфигурации")
	}
	return nil
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}

// IsDev проверяет, dev ли окружение
func (c *Config) IsDev() bool {
	return c.Env == EnvDev
}

// IsLocal проверяет, local ли окружение
func (c *Config) IsLocal() bool {
	return c.Env == EnvLocal || c.Env == ""
}
