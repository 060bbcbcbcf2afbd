// Package snowman connects to Snowflake from a declarative snowman.toml and
// exposes the database to a model generator.
//
// # Architecture
//
// A run goes through three layers:
//
// 1. Configuration: pkg/config loads snowman.toml with viper. Connection
// fields are deferred values (pkg/secret) that are either literals or
// { env = "NAME" } references, resolved only when a connection is made.
//
// 2. Adaptation: pkg/adapter projects the loaded configuration onto what
// the rest of the system needs: output directory, class naming affixes,
// key passphrase, and a connection intent.
//
// 3. Connection: pkg/connector picks exactly one authentication method
// (inline private key, then private key file, then password), resolves
// the remaining fields, and builds a Connection over the Snowflake driver.
// Every Execute call opens a fresh session.
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/ajitpratap0/snowman/pkg/adapter"
//	    "github.com/ajitpratap0/snowman/pkg/config"
//	)
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//
//	conn, err := adapter.Connect(cfg)
//	if err != nil {
//	    return err
//	}
//	defer conn.Close()
//
//	rows, err := conn.Execute(context.Background(), "SELECT CURRENT_VERSION()")
//
// # Key Packages
//
//	pkg/adapter      - Configuration adapter
//	pkg/config       - snowman.toml loading and validation
//	pkg/connector    - Authentication method selection, connections, introspection
//	pkg/secret       - Deferred values and secret masking
//	pkg/models       - Rows, tables and naming options
//	pkg/errors       - Structured error handling
//	pkg/logger       - Structured logging
//	pkg/metrics      - Prometheus metrics
//
// # Secrets
//
// Passwords are never logged in full. Diagnostic output shows the first and
// last two characters around a fixed separator, e.g. "se******pw". Private
// key material and passphrases are never logged; only whether a passphrase
// was provided.
//
// # Command Line
//
//	snowman config                    # show configuration and selected auth method
//	snowman query "SELECT 1"          # run a query, print JSON lines
//	snowman schema --schema PUBLIC    # list tables and columns
//
// A .env file in the working directory is loaded before the configuration.
package snowman
