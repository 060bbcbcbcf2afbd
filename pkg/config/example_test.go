package config_test

import (
	"fmt"
	"log"
	"strings"

	"github.com/ajitpratap0/snowman/pkg/config"
)

// ExampleParse shows a configuration with an environment-backed password.
func ExampleParse() {
	cfg, err := config.Parse(strings.NewReader(`
[connection]
account = "xy12345"
user = "LOADER"
password = { env = "SNOWFLAKE_PASSWORD" }

[model]
output_dir = "src/models"
`))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(cfg.Model.OutputDir)
	fmt.Println(cfg.Connection.Password)
	fmt.Println(cfg.Connection.User)

	// Output:
	// src/models
	// env:SNOWFLAKE_PASSWORD
	// <literal>
}
