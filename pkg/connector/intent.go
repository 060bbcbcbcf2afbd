package connector

import "github.com/ajitpratap0/snowman/pkg/secret"

// Configuration keys named in resolution errors.
const (
	FieldUser                 = "connection.user"
	FieldAccount              = "connection.account"
	FieldWarehouse            = "connection.warehouse"
	FieldRole                 = "connection.role"
	FieldDatabase             = "connection.database"
	FieldSchema               = "connection.schema"
	FieldPassword             = "connection.password"
	FieldPrivateKey           = "connection.private_key"
	FieldPrivateKeyPath       = "connection.private_key_path"
	FieldPrivateKeyPassphrase = "connection.private_key_passphrase"
)

// Intent is the set of deferred values needed to authenticate and connect.
// Nothing in it has been resolved yet.
type Intent struct {
	User      secret.Value
	Account   secret.Value
	Warehouse secret.Value
	Role      secret.Value
	Database  secret.Value
	Schema    secret.Value

	PrivateKey           secret.Value
	PrivateKeyPath       secret.Value
	PrivateKeyPassphrase secret.Value
	Password             secret.Value
}

// ResolvePassphrase resolves an optional passphrase. Any failure yields an
// empty passphrase.
func ResolvePassphrase(v secret.Value) []byte {
	s, err := v.Resolve()
	if err != nil {
		return []byte{}
	}
	return []byte(s)
}

// ResolveOptional resolves an optional value, returning nil on any failure.
func ResolveOptional(v secret.Value) *string {
	s, err := v.Resolve()
	if err != nil {
		return nil
	}
	return &s
}
