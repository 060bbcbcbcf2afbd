package connector_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/snowman/pkg/connector"
	"github.com/ajitpratap0/snowman/pkg/connector/connectortest"
	"github.com/ajitpratap0/snowman/pkg/errors"
	"github.com/ajitpratap0/snowman/pkg/metrics"
	"github.com/ajitpratap0/snowman/pkg/models"
	"github.com/ajitpratap0/snowman/pkg/secret"
	snowtest "github.com/ajitpratap0/snowman/pkg/testutil"
)

func connect(t *testing.T, f *connectortest.Factory, m *metrics.Collector) *connector.Connection {
	t.Helper()
	intent := baseIntent()
	intent.Password = secret.Literal("secretpw")

	conn, err := connector.NewEstablisher(
		connector.WithClientFactory(f.New),
		connector.WithLogger(snowtest.TestLogger(t)),
		connector.WithMetrics(m),
	).Connect(intent)
	require.NoError(t, err)
	return conn
}

func TestExecute_ReturnsRowsInOrder(t *testing.T) {
	rows := []models.Row{
		{Columns: []string{"ID"}, Values: []interface{}{"1"}},
		{Columns: []string{"ID"}, Values: []interface{}{"2"}},
	}
	f := connectortest.NewFactory(rows...)
	conn := connect(t, f, metrics.NewCollector())

	got, err := conn.Execute(snowtest.TestContext(t), "SELECT ID FROM T ORDER BY ID")
	require.NoError(t, err)
	assert.Equal(t, rows, got)
	assert.Equal(t, []string{"SELECT ID FROM T ORDER BY ID"}, f.Client.Queries())
}

func TestExecute_EmptyResult(t *testing.T) {
	f := connectortest.NewFactory()
	conn := connect(t, f, metrics.NewCollector())

	got, err := conn.Execute(snowtest.TestContext(t), "SELECT 1 WHERE FALSE")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExecute_FreshSessionPerCall(t *testing.T) {
	f := connectortest.NewFactory()
	conn := connect(t, f, metrics.NewCollector())
	ctx := snowtest.TestContext(t)

	for i := 0; i < 3; i++ {
		_, err := conn.Execute(ctx, "SELECT 1")
		require.NoError(t, err)
	}

	opened, closed := f.Client.Sessions()
	assert.Equal(t, 3, opened)
	assert.Equal(t, 3, closed)
}

func TestExecute_SessionFailure(t *testing.T) {
	m := metrics.NewCollector()
	f := connectortest.NewFactory()
	f.Client.SessionErr = stderrors.New("390100: incorrect username or password")
	conn := connect(t, f, m)

	rows, err := conn.Execute(snowtest.TestContext(t), "SELECT 1")
	require.Error(t, err)
	assert.Nil(t, rows)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConnection))
	assert.True(t, stderrors.Is(err, f.Client.SessionErr))
	assert.Empty(t, f.Client.Queries())

	count, err := testutil.GatherAndCount(m.Registry(), "snowman_query_errors_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestExecute_QueryFailureLeavesConnectionUsable(t *testing.T) {
	cause := stderrors.New("002003: object 'MISSING' does not exist")
	f := connectortest.NewFactory()
	f.Client.QueryFunc = func(query string) ([]models.Row, error) {
		if query == "SELECT * FROM MISSING" {
			return nil, cause
		}
		return []models.Row{{Columns: []string{"1"}, Values: []interface{}{int64(1)}}}, nil
	}
	conn := connect(t, f, metrics.NewCollector())
	ctx := snowtest.TestContext(t)

	_, err := conn.Execute(ctx, "SELECT * FROM MISSING")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeQuery))
	assert.True(t, stderrors.Is(err, cause))

	rows, err := conn.Execute(ctx, "SELECT 1")
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	opened, closed := f.Client.Sessions()
	assert.Equal(t, 2, opened)
	assert.Equal(t, 2, closed, "the failed query's session is closed too")
}

func TestExecute_CancelledContext(t *testing.T) {
	f := connectortest.NewFactory()
	conn := connect(t, f, metrics.NewCollector())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := conn.Execute(ctx, "SELECT 1")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, context.Canceled))
}

func TestConnection_Config(t *testing.T) {
	intent := baseIntent()
	intent.Password = secret.Literal("secretpw")
	intent.Schema = secret.Literal("PUBLIC")

	f := connectortest.NewFactory()
	conn, err := connector.NewEstablisher(
		connector.WithClientFactory(f.New),
		connector.WithLogger(snowtest.TestLogger(t)),
		connector.WithMetrics(metrics.NewCollector()),
	).Connect(intent)
	require.NoError(t, err)

	assert.Equal(t, f.Last().Config, conn.Config())
	assert.Equal(t, "ANALYTICS", conn.Config().Database)
	require.NotNil(t, conn.Config().Schema)
	assert.Equal(t, "PUBLIC", *conn.Config().Schema)
}

func TestConnection_Close(t *testing.T) {
	f := connectortest.NewFactory()
	conn := connect(t, f, metrics.NewCollector())

	assert.Equal(t, connector.AuthKindPassword, conn.AuthKind())
	require.NoError(t, conn.Close())
	assert.True(t, f.Client.Closed())
}
