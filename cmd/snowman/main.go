package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/snowman/pkg/adapter"
	"github.com/ajitpratap0/snowman/pkg/config"
	"github.com/ajitpratap0/snowman/pkg/connector"
	"github.com/ajitpratap0/snowman/pkg/errors"
	"github.com/ajitpratap0/snowman/pkg/json"
	"github.com/ajitpratap0/snowman/pkg/logger"
	"github.com/ajitpratap0/snowman/pkg/metrics"
	"github.com/ajitpratap0/snowman/pkg/models"
)

var version = "0.1.0"

// app holds the values of the persistent flags and anything the commands share.
type app struct {
	configPath  string
	logLevel    string
	logFormat   string
	metricsFile string
	timeout     time.Duration

	// metrics is the collector written to --metrics-file; nil means metrics.Default()
	metrics *metrics.Collector
	// connectOpts are passed to every connector.Establisher
	connectOpts []connector.Option
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	a := &app{}
	if err := execute(a, newRootCmd(a)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// execute runs root, then flushes the logger and writes the metrics file
// whether or not the command succeeded.
func execute(a *app, root *cobra.Command) error {
	err := root.Execute()
	_ = logger.Sync()

	if a.metricsFile != "" {
		if werr := a.collector().WriteTextfile(a.metricsFile); werr != nil {
			if err == nil {
				return werr
			}
			logger.Warn("Failed to write metrics file", zap.String("path", a.metricsFile), zap.Error(werr))
		}
	}
	return err
}

// exitCode maps an error to the process exit status:
// 2 for configuration, 3 for credentials, 4 for Snowflake errors.
func exitCode(err error) int {
	switch errors.TypeOf(err) {
	case errors.ErrorTypeConfig, errors.ErrorTypeValidation:
		return 2
	case errors.ErrorTypeResolution, errors.ErrorTypeFile, errors.ErrorTypeAuthentication:
		return 3
	case errors.ErrorTypeConnection, errors.ErrorTypeQuery:
		return 4
	default:
		return 1
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "snowman",
		Short: "Snowman - Snowflake model generator",
		Long: `Snowman connects to Snowflake using the credentials in snowman.toml and
inspects the database to generate typed models.

Credentials may be given literally or as { env = "NAME" } references that
are resolved when a connection is made.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := logger.DefaultConfig()
			cfg.Level = a.logLevel
			cfg.Encoding = a.logFormat
			return logger.Init(cfg)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Path to the configuration file (default ./"+config.DefaultFileName+")")
	flags.StringVar(&a.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flags.StringVar(&a.logFormat, "log-format", "console", "Log encoding (console, json)")
	flags.StringVar(&a.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit")
	flags.DurationVar(&a.timeout, "timeout", 5*time.Minute, "Timeout for queries against Snowflake")

	root.AddCommand(
		newVersionCmd(),
		newConfigCmd(a),
		newQueryCmd(a),
		newSchemaCmd(a),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Snowman v%s\n", version)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// configSummary is what `snowman config` prints. Connection fields show
// their source only, never their value.
type configSummary struct {
	Path        string                 `json:"path,omitempty"`
	OutputDir   string                 `json:"output_dir"`
	Pydantic    models.PydanticOptions `json:"pydantic"`
	Connection  map[string]string      `json:"connection"`
	AuthMethod  string                 `json:"auth_method,omitempty"`
	AuthProblem string                 `json:"auth_problem,omitempty"`
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the loaded configuration and the authentication method it selects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}

			intent := adapter.ConnectionIntent(cfg)
			summary := configSummary{
				Path:      cfg.Path,
				OutputDir: adapter.ModelOutputDir(cfg),
				Pydantic:  adapter.PydanticOptions(cfg),
				Connection: map[string]string{
					connector.FieldUser:                 intent.User.String(),
					connector.FieldAccount:              intent.Account.String(),
					connector.FieldWarehouse:            intent.Warehouse.String(),
					connector.FieldRole:                 intent.Role.String(),
					connector.FieldDatabase:             intent.Database.String(),
					connector.FieldSchema:               intent.Schema.String(),
					connector.FieldPassword:             intent.Password.String(),
					connector.FieldPrivateKey:           intent.PrivateKey.String(),
					connector.FieldPrivateKeyPath:       intent.PrivateKeyPath.String(),
					connector.FieldPrivateKeyPassphrase: intent.PrivateKeyPassphrase.String(),
				},
			}

			method, err := connector.NewEstablisher(a.establisherOptions()...).SelectAuthMethod(intent)
			if err != nil {
				summary.AuthProblem = err.Error()
			} else {
				summary.AuthMethod = method.Kind().String()
			}

			data, err := json.MarshalIndent(summary)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newQueryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "query <sql>",
		Short: "Run a query and print each row as a JSON line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, conn, err := a.connect()
			if err != nil {
				return err
			}
			defer closeConnection(conn)

			ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout)
			defer cancel()

			rows, err := conn.Execute(ctx, args[0])
			if err != nil {
				return err
			}
			return json.WriteRows(cmd.OutOrStdout(), rows)
		},
	}
}

// tableOutput is one line of `snowman schema` output.
type tableOutput struct {
	ModelName string `json:"model_name"`
	models.Table
}

func newSchemaCmd(a *app) *cobra.Command {
	var schema string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "List tables and columns of the configured database as JSON lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, conn, err := a.connect()
			if err != nil {
				return err
			}
			defer closeConnection(conn)

			database := conn.Config().Database
			if schema == "" && conn.Config().Schema != nil {
				schema = *conn.Config().Schema
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout)
			defer cancel()

			tables, err := connector.Introspect(ctx, conn, database, schema)
			if err != nil {
				return err
			}
			logger.Info("Introspected database",
				zap.String("database", database),
				zap.String("schema", schema),
				zap.Int("tables", len(tables)))

			naming := adapter.PydanticOptions(cfg)
			w := json.NewLineWriter(cmd.OutOrStdout())
			for _, t := range tables {
				if err := w.Write(tableOutput{ModelName: naming.ModelName(t.Name), Table: t}); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&schema, "schema", "", "Only list this schema (default: connection.schema, or all schemas)")
	return cmd
}

func (a *app) collector() *metrics.Collector {
	if a.metrics == nil {
		return metrics.Default()
	}
	return a.metrics
}

func (a *app) establisherOptions() []connector.Option {
	return append([]connector.Option{connector.WithMetrics(a.collector())}, a.connectOpts...)
}

// connect loads the configuration and establishes a connection from it.
func (a *app) connect() (*config.Config, *connector.Connection, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, nil, err
	}
	conn, err := adapter.Connect(cfg, a.establisherOptions()...)
	if err != nil {
		return nil, nil, err
	}
	return cfg, conn, nil
}

func closeConnection(conn *connector.Connection) {
	if err := conn.Close(); err != nil {
		logger.Warn("Failed to close connection", zap.Error(err))
	}
}
