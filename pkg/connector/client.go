package connector

import (
	"context"

	"github.com/ajitpratap0/snowman/pkg/models"
)

// ClientConfig carries the non-credential connection parameters.
type ClientConfig struct {
	Account   string
	Warehouse string
	Role      string
	Database  string
	Schema    *string
}

// Client is an authenticated client able to open sessions.
type Client interface {
	NewSession(ctx context.Context) (Session, error)
	Close() error
}

// Session runs queries. A session is used for a single Execute call.
type Session interface {
	Query(ctx context.Context, query string) ([]models.Row, error)
	Close() error
}

// ClientFactory constructs a Client for the given user and method.
// It must not perform network I/O.
type ClientFactory func(username string, method AuthMethod, cfg ClientConfig) (Client, error)
