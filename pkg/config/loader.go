package config

import (
	"fmt"
	"io"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/ajitpratap0/snowman/pkg/errors"
	"github.com/ajitpratap0/snowman/pkg/secret"
)

// Load reads the configuration from path, or from ./snowman.toml when path is empty.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("snowman")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "no "+DefaultFileName+" found in the current directory")
		}
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to read config file").
			WithDetail("path", path)
	}

	cfg, err := fromViper(v)
	if err != nil {
		return nil, err
	}
	cfg.Path = v.ConfigFileUsed()
	return cfg, nil
}

// Parse reads TOML configuration from r
func Parse(r io.Reader) (*Config, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to parse config")
	}
	return fromViper(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("toml")
	applyDefaults(v)
	return v
}

// applyDefaults sets default configuration values
func applyDefaults(v *viper.Viper) {
	v.SetDefault("model.output_dir", DefaultOutputDir)
	v.SetDefault("pydantic.model_name_prefix", "")
	v.SetDefault("pydantic.model_name_suffix", "")
}

func fromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		DeferredValueHook(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to decode config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var valueType = reflect.TypeOf(secret.Value{})

// DeferredValueHook decodes a string, number, or { env = "NAME" } table into a secret.Value.
func DeferredValueHook() mapstructure.DecodeHookFuncType {
	return func(_ reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != valueType {
			return data, nil
		}

		switch d := data.(type) {
		case nil:
			return secret.Value{}, nil
		case secret.Value:
			return d, nil
		case string:
			return secret.Literal(d), nil
		case int, int64, float64, bool:
			return secret.Literal(fmt.Sprint(d)), nil
		case map[string]interface{}:
			return valueFromTable(d)
		case map[interface{}]interface{}:
			m := make(map[string]interface{}, len(d))
			for k, val := range d {
				m[fmt.Sprint(k)] = val
			}
			return valueFromTable(m)
		default:
			return nil, fmt.Errorf("expected a string or { env = \"NAME\" }, got %T", data)
		}
	}
}

func valueFromTable(m map[string]interface{}) (secret.Value, error) {
	if len(m) != 1 {
		return secret.Value{}, fmt.Errorf("expected exactly one key (env), got %d", len(m))
	}
	raw, ok := m["env"]
	if !ok {
		for k := range m {
			return secret.Value{}, fmt.Errorf("unsupported value source %q", k)
		}
	}
	name, ok := raw.(string)
	if !ok || name == "" {
		return secret.Value{}, fmt.Errorf("env must be a non-empty string")
	}
	return secret.Env(name), nil
}
