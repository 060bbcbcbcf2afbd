// Package connectortest provides in-memory Snowflake clients for tests.
package connectortest

import (
	"context"
	"sync"

	"github.com/ajitpratap0/snowman/pkg/connector"
	"github.com/ajitpratap0/snowman/pkg/models"
)

// Call is one invocation of a ClientFactory.
type Call struct {
	Username string
	Method   connector.AuthMethod
	Config   connector.ClientConfig
}

// Factory records constructor calls and hands out a shared Client.
type Factory struct {
	mu    sync.Mutex
	calls []Call

	// Client is returned from every successful call.
	Client *Client
	// Err, when set, is returned instead of Client.
	Err error
}

// NewFactory returns a Factory whose client answers every query with rows.
func NewFactory(rows ...models.Row) *Factory {
	return &Factory{Client: &Client{Rows: rows}}
}

// New implements connector.ClientFactory.
func (f *Factory) New(username string, method connector.AuthMethod, cfg connector.ClientConfig) (connector.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Username: username, Method: method, Config: cfg})
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Client, nil
}

// Calls returns the recorded constructor calls.
func (f *Factory) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Last returns the most recent call. It panics when there were none.
func (f *Factory) Last() Call {
	calls := f.Calls()
	return calls[len(calls)-1]
}

// Client is a fake connector.Client.
type Client struct {
	mu sync.Mutex

	// Rows is returned from every query unless QueryFunc is set.
	Rows []models.Row
	// QueryFunc, when set, answers queries.
	QueryFunc func(query string) ([]models.Row, error)
	// SessionErr, when set, fails session creation.
	SessionErr error

	queries        []string
	sessionsOpened int
	sessionsClosed int
	closed         bool
}

// NewSession implements connector.Client.
func (c *Client) NewSession(ctx context.Context) (connector.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.SessionErr != nil {
		return nil, c.SessionErr
	}
	c.sessionsOpened++
	return &session{client: c}, nil
}

// Close implements connector.Client.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// Queries returns every query received, in order.
func (c *Client) Queries() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.queries...)
}

// Sessions returns how many sessions were opened and closed.
func (c *Client) Sessions() (opened, closed int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionsOpened, c.sessionsClosed
}

// Closed reports whether Close was called.
func (c *Client) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

type session struct {
	client *Client
}

func (s *session) Query(ctx context.Context, query string) ([]models.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c := s.client
	c.mu.Lock()
	c.queries = append(c.queries, query)
	fn, rows := c.QueryFunc, c.Rows
	c.mu.Unlock()

	if fn != nil {
		return fn(query)
	}
	return rows, nil
}

func (s *session) Close() error {
	s.client.mu.Lock()
	defer s.client.mu.Unlock()
	s.client.sessionsClosed++
	return nil
}
