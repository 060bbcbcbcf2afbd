package connector

import (
	"context"

	"go.uber.org/zap"

	"github.com/ajitpratap0/snowman/pkg/errors"
	"github.com/ajitpratap0/snowman/pkg/metrics"
	"github.com/ajitpratap0/snowman/pkg/models"
)

// Connection is an authenticated handle owning its Client exclusively.
type Connection struct {
	client  Client
	method  AuthKind
	config  ClientConfig
	logger  *zap.Logger
	metrics *metrics.Collector
}

func newConnection(client Client, method AuthKind, cfg ClientConfig, l *zap.Logger, m *metrics.Collector) *Connection {
	return &Connection{
		client:  client,
		method:  method,
		config:  cfg,
		logger:  l,
		metrics: m,
	}
}

// AuthKind reports the authentication method the connection was built with.
func (c *Connection) AuthKind() AuthKind {
	return c.method
}

// Config returns the parameters resolved when the connection was
// established. Schema is nil when none was configured.
func (c *Connection) Config() ClientConfig {
	return c.config
}

// Execute opens a new session, runs query, and returns its rows in order.
// A failed call leaves the Connection usable.
func (c *Connection) Execute(ctx context.Context, query string) ([]models.Row, error) {
	timer := metrics.NewTimer()
	c.logger.Debug("Executing query", zap.String("query", query))

	session, err := c.client.NewSession(ctx)
	if err != nil {
		c.metrics.ObserveQueryError(metrics.StageSession)
		c.metrics.ObserveQuery(timer.Stop(), err)
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "failed to create session")
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			c.logger.Debug("Failed to close session", zap.Error(cerr))
		}
	}()

	rows, err := session.Query(ctx, query)
	elapsed := timer.Stop()
	c.metrics.ObserveQuery(elapsed, err)
	if err != nil {
		c.metrics.ObserveQueryError(metrics.StageQuery)
		return nil, errors.Wrap(err, errors.ErrorTypeQuery, "query failed")
	}

	c.logger.Debug("Query completed", zap.Int("rows", len(rows)), zap.Duration("elapsed", elapsed))
	return rows, nil
}

// Close releases the underlying client.
func (c *Connection) Close() error {
	return c.client.Close()
}
