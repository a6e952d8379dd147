// Package psqlbuilder preconfigures squirrel for PostgreSQL placeholders.
package psqlbuilder

import sq "github.com/Masterminds/squirrel"

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func Select(columns ...string) sq.SelectBuilder {
	return builder.Select(columns...)
}

func Insert(table string) sq.InsertBuilder {
	return builder.Insert(table)
}

func Update(table string) sq.UpdateBuilder {
	return builder.Update(table)
}

func Delete(table string) sq.DeleteBuilder {
	return builder.Delete(table)
}

// Cents converts a NUMERIC(10,2) column to integer cents.
func Cents(column string) string {
	return "(" + column + " * 100)::bigint"
}

// FromCents is the value expression that stores integer cents into a NUMERIC column.
func FromCents(cents int64) sq.Sqlizer {
	return sq.Expr("?::numeric / 100", cents)
}
