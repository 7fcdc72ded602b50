// Package config loads pipeline configuration from environment
// variables and an optional YAML file, with validated defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"anscli/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Source  SourceConfig  `yaml:"source" envconfig:"SOURCE"`
	Output  OutputConfig  `yaml:"output" envconfig:"OUTPUT"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// SourceConfig locates the open-data portal datasets
type SourceConfig struct {
	BaseURL     string        `yaml:"base_url" envconfig:"BASE_URL" default:"https://dadosabertos.ans.gov.br/FTP/PDA/demonstracoes_contabeis" validate:"required,url"`
	RegistryURL string        `yaml:"registry_url" envconfig:"REGISTRY_URL" default:"https://dadosabertos.ans.gov.br/FTP/PDA/operadoras_de_plano_de_saude_ativas/Relatorio_cadop.csv" validate:"required,url"`
	Quarters    int           `yaml:"quarters" envconfig:"QUARTERS" default:"3" validate:"min=1,max=4"`
	HTTPTimeout time.Duration `yaml:"http_timeout" envconfig:"HTTP_TIMEOUT" default:"2m"`
}

// OutputConfig controls where result sets are written
type OutputConfig struct {
	Dir      string `yaml:"dir" envconfig:"DIR" default:"dados_consolidados" validate:"required"`
	BaseName string `yaml:"base_name" envconfig:"BASE_NAME" default:"demonstracoes_contabeis_consolidadas" validate:"required"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"text" validate:"oneof=text json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/anscli.log"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("ANS", &cfg); err != nil {
		return nil, errors.NewConfigError("failed to load config from env", err)
	}

	// Override with config file if it exists
	if configPath := os.Getenv("ANS_CONFIG_FILE"); configPath != "" {
		if err := loadFromFile(configPath, &cfg); err != nil {
			return nil, errors.NewConfigError("failed to load config file", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.NewConfigError("invalid configuration", err)
	}
	return nil
}
