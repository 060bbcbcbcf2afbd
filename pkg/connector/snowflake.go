package connector

import (
	"context"
	"database/sql"

	"github.com/snowflakedb/gosnowflake"

	"github.com/ajitpratap0/snowman/pkg/errors"
	"github.com/ajitpratap0/snowman/pkg/models"
)

// snowflakeClient wraps a database/sql handle over the Snowflake driver.
// Idle connections are not kept, so every session is a fresh login.
type snowflakeClient struct {
	db *sql.DB
}

// NewSnowflakeClient builds a Snowflake client. Credentials and parameters
// are validated locally; no connection is opened until a session is requested.
func NewSnowflakeClient(username string, method AuthMethod, cfg ClientConfig) (Client, error) {
	sfConfig, err := snowflakeConfig(username, method, cfg)
	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(gosnowflake.NewConnector(gosnowflake.SnowflakeDriver{}, *sfConfig))
	db.SetMaxIdleConns(0)

	return &snowflakeClient{db: db}, nil
}

func snowflakeConfig(username string, method AuthMethod, cfg ClientConfig) (*gosnowflake.Config, error) {
	sfConfig := &gosnowflake.Config{
		Account:   cfg.Account,
		User:      username,
		Warehouse: cfg.Warehouse,
		Role:      cfg.Role,
		Database:  cfg.Database,
	}
	if cfg.Schema != nil {
		sfConfig.Schema = *cfg.Schema
	}

	switch m := method.(type) {
	case KeyPair:
		key, err := ParsePrivateKey(m.PEM, m.Passphrase)
		if err != nil {
			return nil, err
		}
		sfConfig.Authenticator = gosnowflake.AuthTypeJwt
		sfConfig.PrivateKey = key
	case KeyPairFromFile:
		key, err := ParsePrivateKey(m.PEM, m.Passphrase)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeAuthentication, "invalid private key file").
				WithDetail("path", m.Path)
		}
		sfConfig.Authenticator = gosnowflake.AuthTypeJwt
		sfConfig.PrivateKey = key
	case Password:
		sfConfig.Authenticator = gosnowflake.AuthTypeSnowflake
		sfConfig.Password = m.Password
	default:
		return nil, errors.Newf(errors.ErrorTypeAuthentication, "unsupported authentication method %T", method)
	}

	// DSN runs the driver's own validation and fills in host, port and protocol.
	if _, err := gosnowflake.DSN(sfConfig); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeAuthentication, "invalid client configuration")
	}

	return sfConfig, nil
}

func (c *snowflakeClient) NewSession(ctx context.Context) (Session, error) {
	conn, err := c.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return &sqlSession{conn: conn}, nil
}

func (c *snowflakeClient) Close() error {
	return c.db.Close()
}

type sqlSession struct {
	conn *sql.Conn
}

func (s *sqlSession) Query(ctx context.Context, query string) ([]models.Row, error) {
	rows, err := s.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

func (s *sqlSession) Close() error {
	return s.conn.Close()
}

// scanRows drains rows into positional models.Row values.
func scanRows(rows *sql.Rows) ([]models.Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var result []models.Row
	for rows.Next() {
		values := make([]interface{}, len(columns))
		dest := make([]interface{}, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		result = append(result, models.Row{Columns: columns, Values: values})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
