package config

import (
	"github.com/ajitpratap0/snowman/pkg/errors"
	"github.com/ajitpratap0/snowman/pkg/secret"
)

const (
	// DefaultFileName is the configuration file looked up when no path is given
	DefaultFileName = "snowman.toml"
	// DefaultOutputDir is where models are written when model.output_dir is absent
	DefaultOutputDir = "models"
)

// Config is the root of snowman.toml
type Config struct {
	Connection ConnectionConfig `mapstructure:"connection"`
	Model      ModelConfig      `mapstructure:"model"`
	Pydantic   PydanticConfig   `mapstructure:"pydantic"`

	// Path is the file the configuration was read from, if any
	Path string `mapstructure:"-"`
}

// ConnectionConfig holds the Snowflake connection fields. All of them are
// deferred; which ones must resolve depends on the authentication method
// that ends up selected.
type ConnectionConfig struct {
	User      secret.Value `mapstructure:"user"`
	Account   secret.Value `mapstructure:"account"`
	Warehouse secret.Value `mapstructure:"warehouse"`
	Role      secret.Value `mapstructure:"role"`
	Database  secret.Value `mapstructure:"database"`
	Schema    secret.Value `mapstructure:"schema"`

	Password             secret.Value `mapstructure:"password"`
	PrivateKey           secret.Value `mapstructure:"private_key"`
	PrivateKeyPath       secret.Value `mapstructure:"private_key_path"`
	PrivateKeyPassphrase secret.Value `mapstructure:"private_key_passphrase"`
}

// ModelConfig controls generated model output
type ModelConfig struct {
	OutputDir string `mapstructure:"output_dir"`
}

// PydanticConfig controls generated class naming
type PydanticConfig struct {
	ModelNamePrefix string `mapstructure:"model_name_prefix"`
	ModelNameSuffix string `mapstructure:"model_name_suffix"`
}

// Default returns a configuration with defaults applied and no connection fields set
func Default() *Config {
	return &Config{
		Model: ModelConfig{OutputDir: DefaultOutputDir},
	}
}

// Validate checks the structural parts of the configuration. Connection
// fields are not checked here; they are resolved at connect time.
func (c *Config) Validate() error {
	if c.Model.OutputDir == "" {
		return errors.New(errors.ErrorTypeValidation, "model.output_dir cannot be empty").
			WithDetail("field", "model.output_dir")
	}
	return nil
}
