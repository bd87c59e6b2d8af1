// Package sqlcomposer builds SQL statements with positional "?" placeholders.
//
// Conditions are appended to a WHERE or HAVING clause in call order and may be
// nested in AND/OR groups. Every statement renders to SQL text, the bound
// values in placeholder order and an optional type-tag string for binding
// APIs that want one tag per value ("i", "d", "s", "b"):
//
//	r, err := sqlcomposer.Select("id", "name").
//		From("products").
//		WhereOp("price", "<", 10).
//		OpenWhereOr().
//		WhereIn("size in (?)", 24, 64).
//		Where("name = ?", "delta").
//		CloseWhere().
//		Build()
//	// r.SQL:    SELECT id, name
//	//           FROM products
//	//           WHERE price < ? AND (size in (?, ?) OR name = ?)
//	// r.Params: [10 24 64 delta]
//
// A builder records the first failing call; Build, Render, Params, Types and
// Err all return that error and no SQL.
package sqlcomposer

import (
	"github.com/roach88/sqlcomposer/internal/boolexpr"
	"github.com/roach88/sqlcomposer/internal/operand"
	"github.com/roach88/sqlcomposer/internal/operator"
	"github.com/roach88/sqlcomposer/internal/sqlerr"
	"github.com/roach88/sqlcomposer/internal/statement"
)

type (
	// Rendered is SQL text plus its ordered params and type tags.
	Rendered = statement.Rendered

	SelectStatement  = statement.Select
	InsertStatement  = statement.Insert
	ReplaceStatement = statement.Replace
	UpdateStatement  = statement.Update
	DeleteStatement  = statement.Delete

	// Clause is a standalone boolean expression built from conditions and groups.
	Clause = boolexpr.Clause

	// Bound is a value rendered as "?".
	Bound = operand.Bound
	// Raw is a SQL fragment spliced in verbatim, with its own params.
	Raw = operand.Raw

	// Error is the error type returned for bad builder input.
	Error = sqlerr.Error
	// Operator is one entry of the operator catalog.
	Operator = operator.Entry
)

// Connectors for Clause.OpenGroup.
const (
	And = boolexpr.And
	Or  = boolexpr.Or
)

// Sentinels for errors.Is.
var (
	ErrInvalidOperator  = sqlerr.ErrInvalidOperator
	ErrOperandCount     = sqlerr.ErrOperandCount
	ErrTypeArgument     = sqlerr.ErrTypeArgument
	ErrUnbalancedGroup  = sqlerr.ErrUnbalancedGroup
	ErrEmptyGroup       = sqlerr.ErrEmptyGroup
	ErrPlaceholderCount = sqlerr.ErrPlaceholderCount
)

// Select starts a SELECT of columns ("*" when none are given).
func Select(columns ...string) *SelectStatement {
	return statement.NewSelect(columns...)
}

// InsertInto starts an INSERT into table.
func InsertInto(table string) *InsertStatement {
	return statement.NewInsert(table)
}

// ReplaceInto starts a REPLACE into table.
func ReplaceInto(table string) *ReplaceStatement {
	return statement.NewReplace(table)
}

// Update starts an UPDATE of tables.
func Update(tables ...string) *UpdateStatement {
	return statement.NewUpdate(tables...)
}

// DeleteFrom starts a DELETE from tables.
func DeleteFrom(tables ...string) *DeleteStatement {
	return statement.NewDelete(tables...)
}

// Expr returns a Raw operand, e.g. Expr("NOW() - INTERVAL ? DAY", 7).
func Expr(sql string, params ...any) Raw {
	return operand.Expr(sql, params...)
}

// Tagged returns a Bound value carrying an explicit type tag.
func Tagged(v any, tag string) Bound {
	return operand.Tagged(v, tag)
}

// Fragment is a rendered condition: SQL with one "?" per entry of Params.
type Fragment struct {
	SQL    string
	Params []any
	Types  string
}

func fragmentOf(cond boolexpr.Condition) (Fragment, error) {
	types, err := cond.Tags()
	if err != nil {
		return Fragment{}, err
	}
	return Fragment{SQL: cond.SQL, Params: operand.Values(cond.Params), Types: types}, nil
}

// In expands the single "?" of template into one entry per value:
//
//	In("size in (?)", "i", 24, 64, 84) // "size in (?, ?, ?)", [24 64 84], "iii"
//
// A one-character tags string is replicated per param; "" keeps the tags of
// Tagged values.
func In(template, tags string, values ...any) (Fragment, error) {
	cond, err := operator.InList(template, operand.List(values...), tags)
	if err != nil {
		return Fragment{}, err
	}
	return fragmentOf(cond)
}

// ApplyOperator renders "<column> <op> ..." for a catalog operator, given by
// symbol or by name ("greater than or equal").
func ApplyOperator(column, op, tags string, operands ...any) (Fragment, error) {
	cond, err := operator.Apply(column, op, operand.List(operands...), tags)
	if err != nil {
		return Fragment{}, err
	}
	return fragmentOf(cond)
}

// IsValidOperator reports whether op is a catalog symbol or name.
func IsValidOperator(op string) bool {
	return operator.IsValid(op)
}

// Operators lists the operator catalog in display order.
func Operators() []Operator {
	return operator.Entries()
}
