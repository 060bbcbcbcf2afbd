// Package config loads the Snowman project configuration.
//
// Configuration lives in a TOML file, snowman.toml by default, with three
// tables:
//
//	[connection]
//	account = "xy12345.eu-west-1"
//	user = "LOADER"
//	warehouse = "COMPUTE_WH"
//	role = "TRANSFORMER"
//	database = "ANALYTICS"
//	schema = "PUBLIC"                              # optional
//	password = { env = "SNOWFLAKE_PASSWORD" }
//	# private_key = { env = "SNOWFLAKE_PRIVATE_KEY" }
//	# private_key_path = "/home/loader/.ssh/snowflake_key.p8"
//	# private_key_passphrase = { env = "SNOWFLAKE_PRIVATE_KEY_PASSPHRASE" }
//
//	[model]
//	output_dir = "src/models"
//
//	[pydantic]
//	model_name_prefix = ""
//	model_name_suffix = "Model"
//
// # Deferred Values
//
// Every connection field is a secret.Value. It is written either as a
// plain string or as an inline table naming an environment variable.
// Nothing is looked up while loading; values are resolved when a
// connection is established, so a missing variable only matters if the
// field is actually needed.
//
// # Usage
//
//	cfg, err := config.Load("")          // ./snowman.toml
//	cfg, err := config.Load("ci.toml")   // explicit path
//	cfg, err := config.Parse(reader)     // TOML from any reader
package config
