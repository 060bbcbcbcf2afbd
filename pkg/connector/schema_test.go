package connector

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/snowman/pkg/errors"
	"github.com/ajitpratap0/snowman/pkg/models"
)

type querierFunc func(ctx context.Context, query string) ([]models.Row, error)

func (f querierFunc) Execute(ctx context.Context, query string) ([]models.Row, error) {
	return f(ctx, query)
}

var columnHeaders = []string{"TABLE_SCHEMA", "TABLE_NAME", "COLUMN_NAME", "DATA_TYPE", "IS_NULLABLE", "COMMENT"}

func columnRow(schema, table, column, dataType, nullable string, comment interface{}) models.Row {
	return models.Row{
		Columns: columnHeaders,
		Values:  []interface{}{schema, table, column, dataType, nullable, comment},
	}
}

func TestBuildColumnsQuery(t *testing.T) {
	tests := []struct {
		name     string
		database string
		schema   string
		want     string
	}{
		{
			name:     "all schemas",
			database: "analytics",
			want: "SELECT TABLE_SCHEMA, TABLE_NAME, COLUMN_NAME, DATA_TYPE, IS_NULLABLE, COMMENT" +
				" FROM analytics.INFORMATION_SCHEMA.COLUMNS" +
				" WHERE TABLE_SCHEMA <> 'INFORMATION_SCHEMA'" +
				" ORDER BY TABLE_SCHEMA, TABLE_NAME, ORDINAL_POSITION",
		},
		{
			name:     "unquoted schema is upper cased",
			database: "ANALYTICS",
			schema:   "public",
			want: "SELECT TABLE_SCHEMA, TABLE_NAME, COLUMN_NAME, DATA_TYPE, IS_NULLABLE, COMMENT" +
				" FROM ANALYTICS.INFORMATION_SCHEMA.COLUMNS" +
				" WHERE TABLE_SCHEMA <> 'INFORMATION_SCHEMA' AND TABLE_SCHEMA = 'PUBLIC'" +
				" ORDER BY TABLE_SCHEMA, TABLE_NAME, ORDINAL_POSITION",
		},
		{
			name:     "mixed case names kept verbatim",
			database: "My DB",
			schema:   "it's",
			want: "SELECT TABLE_SCHEMA, TABLE_NAME, COLUMN_NAME, DATA_TYPE, IS_NULLABLE, COMMENT" +
				` FROM "My DB".INFORMATION_SCHEMA.COLUMNS` +
				" WHERE TABLE_SCHEMA <> 'INFORMATION_SCHEMA' AND TABLE_SCHEMA = 'it''s'" +
				" ORDER BY TABLE_SCHEMA, TABLE_NAME, ORDINAL_POSITION",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildColumnsQuery(tt.database, tt.schema))
		})
	}
}

func TestQuoting(t *testing.T) {
	assert.Equal(t, "RAW_DATA", quoteIdentifier("RAW_DATA"))
	assert.Equal(t, `"raw-data"`, quoteIdentifier("raw-data"))
	assert.Equal(t, `"a""b"`, quoteIdentifier(`a"b`))
	assert.Equal(t, `'a\\b'`, quoteLiteral(`a\b`))
	assert.Equal(t, "'O''Brien'", quoteLiteral("O'Brien"))
}

func TestIntrospect(t *testing.T) {
	var got string
	q := querierFunc(func(_ context.Context, query string) ([]models.Row, error) {
		got = query
		return []models.Row{
			columnRow("PUBLIC", "ORDERS", "ID", "NUMBER", "NO", nil),
			columnRow("PUBLIC", "ORDERS", "NOTE", "TEXT", "YES", "free text"),
			columnRow("PUBLIC", "USERS", "ID", "NUMBER", "NO", nil),
			columnRow("STAGING", "ORDERS", "ID", "NUMBER", "YES", nil),
		}, nil
	})

	tables, err := Introspect(context.Background(), q, "ANALYTICS", "")
	require.NoError(t, err)
	assert.Equal(t, buildColumnsQuery("ANALYTICS", ""), got)

	require.Len(t, tables, 3)
	assert.Equal(t, "ANALYTICS", tables[0].Database)
	assert.Equal(t, "PUBLIC", tables[0].Schema)
	assert.Equal(t, "ORDERS", tables[0].Name)
	require.Len(t, tables[0].Columns, 2)
	assert.Equal(t, models.Column{Name: "ID", DataType: "NUMBER"}, tables[0].Columns[0])
	assert.True(t, tables[0].Columns[1].Nullable)
	require.NotNil(t, tables[0].Columns[1].Comment)
	assert.Equal(t, "free text", *tables[0].Columns[1].Comment)

	assert.Equal(t, "USERS", tables[1].Name)
	assert.Equal(t, "STAGING", tables[2].Schema)
	assert.Equal(t, "ORDERS", tables[2].Name)
}

func TestIntrospect_Errors(t *testing.T) {
	t.Run("database required", func(t *testing.T) {
		_, err := Introspect(context.Background(), querierFunc(nil), "", "PUBLIC")
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
	})

	t.Run("query error passes through", func(t *testing.T) {
		cause := errors.New(errors.ErrorTypeQuery, "query failed")
		q := querierFunc(func(context.Context, string) ([]models.Row, error) {
			return nil, cause
		})
		_, err := Introspect(context.Background(), q, "DB", "")
		assert.True(t, stderrors.Is(err, cause))
	})

	t.Run("missing column name", func(t *testing.T) {
		q := querierFunc(func(context.Context, string) ([]models.Row, error) {
			return []models.Row{{
				Columns: columnHeaders,
				Values:  []interface{}{"PUBLIC", "T", nil, "TEXT", "YES", nil},
			}}, nil
		})
		_, err := Introspect(context.Background(), q, "DB", "")
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeQuery))
	})
}
