package connector

import (
	"os"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/ajitpratap0/snowman/pkg/errors"
	"github.com/ajitpratap0/snowman/pkg/logger"
	"github.com/ajitpratap0/snowman/pkg/metrics"
	"github.com/ajitpratap0/snowman/pkg/secret"
)

// Establisher selects an authentication method and constructs connections.
type Establisher struct {
	newClient ClientFactory
	readFile  func(name string) ([]byte, error)
	logger    *zap.Logger
	metrics   *metrics.Collector
}

// Option configures an Establisher.
type Option func(*Establisher)

// WithClientFactory replaces the Snowflake client constructor.
func WithClientFactory(f ClientFactory) Option {
	return func(e *Establisher) {
		e.newClient = f
	}
}

// WithFileReader replaces the function used to read private key files.
func WithFileReader(f func(name string) ([]byte, error)) Option {
	return func(e *Establisher) {
		e.readFile = f
	}
}

// WithLogger sets the logger for establishment diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(e *Establisher) {
		e.logger = l
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(c *metrics.Collector) Option {
	return func(e *Establisher) {
		e.metrics = c
	}
}

// NewEstablisher creates an Establisher backed by the Snowflake driver.
func NewEstablisher(opts ...Option) *Establisher {
	e := &Establisher{
		newClient: NewSnowflakeClient,
		readFile:  os.ReadFile,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logger.Named("connector")
	}
	if e.metrics == nil {
		e.metrics = metrics.Default()
	}
	return e
}

// Connect resolves intent and constructs a Connection. No partial
// Connection is returned on error.
func (e *Establisher) Connect(intent Intent) (*Connection, error) {
	conn, method, err := e.connect(intent)
	var label string
	if method != nil {
		label = method.Kind().String()
	}
	e.metrics.ObserveConnection(label, err)
	return conn, err
}

func (e *Establisher) connect(intent Intent) (*Connection, AuthMethod, error) {
	username, err := resolveRequired(intent.User, FieldUser)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := resolveClientConfig(intent)
	if err != nil {
		return nil, nil, err
	}

	method, err := e.SelectAuthMethod(intent)
	if err != nil {
		return nil, nil, err
	}

	e.logParameters(username, method, cfg)

	client, err := e.newClient(username, method, cfg)
	if err != nil {
		if errors.IsType(err, errors.ErrorTypeAuthentication) {
			return nil, method, err
		}
		return nil, method, errors.Wrap(err, errors.ErrorTypeAuthentication, "failed to construct client").
			WithDetail("method", method.Kind().String())
	}

	return newConnection(client, method.Kind(), cfg, e.logger, e.metrics), method, nil
}

// SelectAuthMethod picks the authentication method for intent: private_key,
// then private_key_path, then password. Only resolution failures fall
// through; reading the key file is terminal once its path resolves.
func (e *Establisher) SelectAuthMethod(intent Intent) (AuthMethod, error) {
	if pem, err := intent.PrivateKey.Resolve(); err == nil {
		return KeyPair{
			PEM:        pem,
			Passphrase: ResolvePassphrase(intent.PrivateKeyPassphrase),
		}, nil
	}

	if path, err := intent.PrivateKeyPath.Resolve(); err == nil {
		pem, err := e.readPrivateKeyFile(path)
		if err != nil {
			return nil, err
		}
		return KeyPairFromFile{
			Path:       path,
			PEM:        pem,
			Passphrase: ResolvePassphrase(intent.PrivateKeyPassphrase),
		}, nil
	}

	password, err := resolveRequired(intent.Password, FieldPassword)
	if err != nil {
		return nil, err
	}
	return Password{Password: password}, nil
}

func (e *Establisher) readPrivateKeyFile(path string) (string, error) {
	data, err := e.readFile(path)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrorTypeFile, "failed to read private key file").
			WithDetail("path", path)
	}
	if !utf8.Valid(data) {
		return "", errors.New(errors.ErrorTypeFile, "failed to read private key file: contents are not valid UTF-8").
			WithDetail("path", path)
	}
	return string(data), nil
}

func (e *Establisher) logParameters(username string, method AuthMethod, cfg ClientConfig) {
	fields := []zap.Field{zap.String("username", username)}

	switch m := method.(type) {
	case KeyPair:
		e.logger.Debug("Using key pair authentication")
		fields = append(fields, zap.Bool("passphrase_provided", len(m.Passphrase) > 0))
	case KeyPairFromFile:
		e.logger.Debug("Using key pair authentication from file")
		fields = append(fields, zap.Bool("passphrase_provided", len(m.Passphrase) > 0))
	case Password:
		e.logger.Debug("Using password authentication")
		fields = append(fields, zap.String("password", secret.Mask(m.Password)))
	}

	fields = append(fields,
		zap.String("account", cfg.Account),
		zap.String("warehouse", cfg.Warehouse),
		zap.String("role", cfg.Role),
		zap.String("database", cfg.Database),
		zap.Stringp("schema", cfg.Schema),
	)
	e.logger.Debug("Connection parameters", fields...)
}

func resolveClientConfig(intent Intent) (ClientConfig, error) {
	var cfg ClientConfig
	var err error

	if cfg.Account, err = resolveRequired(intent.Account, FieldAccount); err != nil {
		return ClientConfig{}, err
	}
	if cfg.Warehouse, err = resolveRequired(intent.Warehouse, FieldWarehouse); err != nil {
		return ClientConfig{}, err
	}
	if cfg.Role, err = resolveRequired(intent.Role, FieldRole); err != nil {
		return ClientConfig{}, err
	}
	if cfg.Database, err = resolveRequired(intent.Database, FieldDatabase); err != nil {
		return ClientConfig{}, err
	}
	cfg.Schema = ResolveOptional(intent.Schema)

	return cfg, nil
}

func resolveRequired(v secret.Value, field string) (string, error) {
	s, err := v.Resolve()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrorTypeResolution, "failed to resolve "+field).
			WithDetail("field", field).
			WithDetail("source", v.Source().String())
	}
	return s, nil
}
