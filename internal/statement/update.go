package statement

import (
	"errors"
	"strings"

	"github.com/roach88/sqlcomposer/internal/operand"
	"github.com/roach88/sqlcomposer/internal/params"
)

var updateOrder = []params.Kind{
	params.Tables,
	params.Set,
	params.Where,
	params.OrderBy,
}

// Update builds an UPDATE statement.
//
//	UPDATE tables
//	SET assignments
//	WHERE ...
//	ORDER BY ...
//	LIMIT n
type Update struct {
	base
	whereClause[*Update]
	ordering[*Update]

	tables []string
	set    []string

	whereCB clauseBuilder
	sort    orderState
}

// NewUpdate starts an UPDATE of the given tables.
func NewUpdate(tables ...string) *Update {
	s := &Update{base: newBase("UPDATE", updateOrder)}
	s.whereCB = clauseBuilder{name: "where", fail: s.fail}
	s.whereClause = whereClause[*Update]{self: s, where: &s.whereCB}
	s.ordering = ordering[*Update]{self: s, b: &s.base, st: &s.sort}
	s.coll.Bind(params.Where, &s.whereCB.clause)
	s.base.render = s.renderSQL
	s.tables = append(s.tables, tables...)
	return s
}

// Table appends table references.
func (s *Update) Table(tables ...string) *Update {
	s.tables = append(s.tables, tables...)
	return s
}

// Join appends a table reference carrying params.
func (s *Update) Join(sql string, args ...any) *Update {
	if s.addFragment(params.Tables, sql, args) {
		s.tables = append(s.tables, sql)
	}
	return s
}

// Set appends an assignment fragment, e.g. Set("views = views + ?", 1).
func (s *Update) Set(sql string, args ...any) *Update {
	if s.addFragment(params.Set, sql, args) {
		s.set = append(s.set, sql)
	}
	return s
}

// SetValue appends "column = ?" for a Bound value, or "column = <expr>" for
// a Raw operand.
func (s *Update) SetValue(column string, value any) *Update {
	op := operand.From(value)
	s.set = append(s.set, column+" = "+operand.Placeholder(op))
	s.coll.Add(params.Set, operand.FlattenOne(op)...)
	return s
}

func (s *Update) renderSQL() (string, error) {
	if len(s.tables) == 0 {
		return "", errors.New("update: table required")
	}
	if len(s.set) == 0 {
		return "", errors.New("update: at least one assignment required")
	}

	lines := []string{
		"UPDATE " + strings.Join(s.tables, "\n\t"),
		"SET " + strings.Join(s.set, ", "),
	}

	where, err := s.whereCB.section("WHERE")
	if err != nil {
		return "", err
	}
	if where != "" {
		lines = append(lines, where)
	}

	lines = append(lines, s.sort.sections()...)
	return strings.Join(lines, "\n"), nil
}
