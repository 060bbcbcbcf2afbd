package connector

import (
	"fmt"

	"github.com/ajitpratap0/snowman/pkg/secret"
)

// AuthKind identifies an authentication method.
type AuthKind int

const (
	AuthKindKeyPair         AuthKind = iota + 1 // Inline private key
	AuthKindKeyPairFromFile                     // Private key read from a file
	AuthKindPassword                            // Username/Password
)

// String returns the label used in logs and metrics.
func (k AuthKind) String() string {
	switch k {
	case AuthKindKeyPair:
		return "key_pair"
	case AuthKindKeyPairFromFile:
		return "key_pair_file"
	case AuthKindPassword:
		return "password"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// AuthMethod is one of KeyPair, KeyPairFromFile or Password.
type AuthMethod interface {
	Kind() AuthKind
	isAuthMethod()
}

// KeyPair authenticates with PEM key material supplied directly.
type KeyPair struct {
	PEM        string
	Passphrase []byte
}

// KeyPairFromFile authenticates with PEM key material read from Path.
type KeyPairFromFile struct {
	Path       string
	PEM        string
	Passphrase []byte
}

// Password authenticates with a username and password.
type Password struct {
	Password string
}

func (KeyPair) Kind() AuthKind         { return AuthKindKeyPair }
func (KeyPairFromFile) Kind() AuthKind { return AuthKindKeyPairFromFile }
func (Password) Kind() AuthKind        { return AuthKindPassword }

func (KeyPair) isAuthMethod()         {}
func (KeyPairFromFile) isAuthMethod() {}
func (Password) isAuthMethod()        {}

func (m KeyPair) String() string {
	return fmt.Sprintf("key_pair(passphrase=%t)", len(m.Passphrase) > 0)
}

func (m KeyPairFromFile) String() string {
	return fmt.Sprintf("key_pair_file(path=%s, passphrase=%t)", m.Path, len(m.Passphrase) > 0)
}

func (m Password) String() string {
	return "password(" + secret.Mask(m.Password) + ")"
}

func (m KeyPair) GoString() string         { return m.String() }
func (m KeyPairFromFile) GoString() string { return m.String() }
func (m Password) GoString() string        { return m.String() }
