// Package adapter projects a loaded snowman configuration onto the values
// the connector and the model generator consume, so neither depends on the
// full shape of config.Config.
package adapter

import (
	"github.com/ajitpratap0/snowman/pkg/config"
	"github.com/ajitpratap0/snowman/pkg/connector"
	"github.com/ajitpratap0/snowman/pkg/models"
)

// PydanticOptions returns the class naming affixes.
func PydanticOptions(cfg *config.Config) models.PydanticOptions {
	return models.PydanticOptions{
		ModelNamePrefix: cfg.Pydantic.ModelNamePrefix,
		ModelNameSuffix: cfg.Pydantic.ModelNameSuffix,
	}
}

// ModelOutputDir returns the directory generated models are written to.
func ModelOutputDir(cfg *config.Config) string {
	return cfg.Model.OutputDir
}

// Passphrase resolves the private key passphrase. An absent or unresolvable
// passphrase yields an empty, non-nil slice.
func Passphrase(cfg *config.Config) []byte {
	return connector.ResolvePassphrase(cfg.Connection.PrivateKeyPassphrase)
}

// ConnectionIntent copies the connection fields without resolving them.
func ConnectionIntent(cfg *config.Config) connector.Intent {
	c := cfg.Connection
	return connector.Intent{
		User:                 c.User,
		Account:              c.Account,
		Warehouse:            c.Warehouse,
		Role:                 c.Role,
		Database:             c.Database,
		Schema:               c.Schema,
		PrivateKey:           c.PrivateKey,
		PrivateKeyPath:       c.PrivateKeyPath,
		PrivateKeyPassphrase: c.PrivateKeyPassphrase,
		Password:             c.Password,
	}
}

// Connect resolves the connection fields of cfg and establishes a
// connection. Options are passed through to connector.NewEstablisher.
func Connect(cfg *config.Config, opts ...connector.Option) (*connector.Connection, error) {
	return connector.NewEstablisher(opts...).Connect(ConnectionIntent(cfg))
}
