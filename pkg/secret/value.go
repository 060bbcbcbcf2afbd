// Package secret provides deferred configuration values and masking helpers.
//
// A Value is either a literal or a reference to an environment variable.
// References are looked up only when Resolve is called, so a configuration
// can be loaded on a machine where the credentials are not yet exported.
//
//	user := secret.Literal("LOADER")
//	pw := secret.Env("SNOWFLAKE_PASSWORD")
//
//	if v, err := pw.Resolve(); err == nil {
//	    log.Println(secret.Mask(v))
//	}
package secret

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrUnset is returned when a value was not configured at all.
	ErrUnset = errors.New("value is not set")
	// ErrEnvNotSet is returned when a referenced environment variable is absent.
	ErrEnvNotSet = errors.New("environment variable is not set")
	// ErrInvalidReference is returned when a reference cannot be resolved because it is malformed.
	ErrInvalidReference = errors.New("invalid value reference")
)

// Resolver produces a value on demand. Resolution may fail.
type Resolver interface {
	Resolve() (string, error)
}

// Source identifies where a Value comes from.
type Source int

const (
	SourceUnset Source = iota
	SourceLiteral
	SourceEnv
)

// String returns a human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceUnset:
		return "unset"
	case SourceLiteral:
		return "literal"
	case SourceEnv:
		return "env"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Value is an immutable deferred configuration value. The zero Value is unset.
type Value struct {
	source Source
	data   string
}

// Literal returns a Value that resolves to s.
func Literal(s string) Value {
	return Value{source: SourceLiteral, data: s}
}

// Env returns a Value that resolves to the environment variable name.
func Env(name string) Value {
	return Value{source: SourceEnv, data: name}
}

// Source reports where the value comes from.
func (v Value) Source() Source {
	return v.source
}

// IsSet reports whether the value was configured.
func (v Value) IsSet() bool {
	return v.source != SourceUnset
}

// Resolve returns the concrete value.
func (v Value) Resolve() (string, error) {
	switch v.source {
	case SourceUnset:
		return "", ErrUnset
	case SourceLiteral:
		return v.data, nil
	case SourceEnv:
		if v.data == "" {
			return "", fmt.Errorf("%w: empty environment variable name", ErrInvalidReference)
		}
		s, ok := os.LookupEnv(v.data)
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrEnvNotSet, v.data)
		}
		return s, nil
	default:
		return "", fmt.Errorf("%w: unknown source %d", ErrInvalidReference, int(v.source))
	}
}

// String describes the value without revealing literal contents.
func (v Value) String() string {
	switch v.source {
	case SourceLiteral:
		return "<literal>"
	case SourceEnv:
		return "env:" + v.data
	default:
		return "<unset>"
	}
}

// GoString keeps %#v from printing literal contents.
func (v Value) GoString() string {
	return "secret.Value(" + v.String() + ")"
}
