package connector

import (
	"context"
	"regexp"
	"strings"

	"github.com/ajitpratap0/snowman/pkg/errors"
	"github.com/ajitpratap0/snowman/pkg/models"
)

// Querier executes a query and returns its rows. *Connection implements it.
type Querier interface {
	Execute(ctx context.Context, query string) ([]models.Row, error)
}

var unquotedIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*$`)

// Introspect lists the tables and views of database with their columns in
// ordinal order. An empty schema includes every schema except
// INFORMATION_SCHEMA.
func Introspect(ctx context.Context, q Querier, database, schema string) ([]models.Table, error) {
	if database == "" {
		return nil, errors.New(errors.ErrorTypeValidation, "database is required for introspection")
	}

	rows, err := q.Execute(ctx, buildColumnsQuery(database, schema))
	if err != nil {
		return nil, err
	}

	var tables []models.Table
	for _, row := range rows {
		tableSchema, _ := row.String("TABLE_SCHEMA")
		tableName, _ := row.String("TABLE_NAME")
		columnName, ok := row.String("COLUMN_NAME")
		if !ok {
			return nil, errors.New(errors.ErrorTypeQuery, "introspection row is missing COLUMN_NAME")
		}
		dataType, _ := row.String("DATA_TYPE")
		nullable, _ := row.String("IS_NULLABLE")

		column := models.Column{
			Name:     columnName,
			DataType: dataType,
			Nullable: strings.EqualFold(nullable, "YES"),
		}
		if comment, ok := row.String("COMMENT"); ok {
			column.Comment = &comment
		}

		n := len(tables)
		if n == 0 || tables[n-1].Schema != tableSchema || tables[n-1].Name != tableName {
			tables = append(tables, models.Table{
				Database: database,
				Schema:   tableSchema,
				Name:     tableName,
			})
			n++
		}
		tables[n-1].Columns = append(tables[n-1].Columns, column)
	}

	return tables, nil
}

func buildColumnsQuery(database, schema string) string {
	var b strings.Builder
	b.WriteString("SELECT TABLE_SCHEMA, TABLE_NAME, COLUMN_NAME, DATA_TYPE, IS_NULLABLE, COMMENT")
	b.WriteString(" FROM ")
	b.WriteString(quoteIdentifier(database))
	b.WriteString(".INFORMATION_SCHEMA.COLUMNS")
	b.WriteString(" WHERE TABLE_SCHEMA <> 'INFORMATION_SCHEMA'")
	if schema != "" {
		b.WriteString(" AND TABLE_SCHEMA = ")
		b.WriteString(quoteLiteral(identifierValue(schema)))
	}
	b.WriteString(" ORDER BY TABLE_SCHEMA, TABLE_NAME, ORDINAL_POSITION")
	return b.String()
}

// quoteIdentifier leaves plain identifiers unquoted so Snowflake folds them
// to upper case, and quotes anything else verbatim.
func quoteIdentifier(name string) string {
	if unquotedIdentifier.MatchString(name) {
		return name
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// identifierValue returns the name as stored in INFORMATION_SCHEMA.
func identifierValue(name string) string {
	if unquotedIdentifier.MatchString(name) {
		return strings.ToUpper(name)
	}
	return name
}

func quoteLiteral(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `''`)
	return "'" + s + "'"
}
