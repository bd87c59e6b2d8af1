package statement

import (
	"errors"
	"strings"

	"github.com/roach88/sqlcomposer/internal/params"
)

var deleteOrder = []params.Kind{
	params.Tables,
	params.Where,
	params.OrderBy,
}

// Delete builds a DELETE statement.
//
//	DELETE FROM tables
//	USING tables
//	WHERE ...
//	ORDER BY ...
//	LIMIT n
//
// There is no WHERE-less shortcut: a DELETE without conditions must be
// built explicitly and renders without a WHERE line.
type Delete struct {
	base
	whereClause[*Delete]
	ordering[*Delete]

	from  []string
	using []string

	whereCB clauseBuilder
	sort    orderState
}

// NewDelete starts a DELETE FROM the given tables.
func NewDelete(tables ...string) *Delete {
	s := &Delete{base: newBase("DELETE", deleteOrder)}
	s.whereCB = clauseBuilder{name: "where", fail: s.fail}
	s.whereClause = whereClause[*Delete]{self: s, where: &s.whereCB}
	s.ordering = ordering[*Delete]{self: s, b: &s.base, st: &s.sort}
	s.coll.Bind(params.Where, &s.whereCB.clause)
	s.base.render = s.renderSQL
	s.from = append(s.from, tables...)
	return s
}

// From appends tables to delete from.
func (s *Delete) From(tables ...string) *Delete {
	s.from = append(s.from, tables...)
	return s
}

// Using appends a USING table reference, optionally carrying params.
func (s *Delete) Using(sql string, args ...any) *Delete {
	if s.addFragment(params.Tables, sql, args) {
		s.using = append(s.using, sql)
	}
	return s
}

func (s *Delete) renderSQL() (string, error) {
	if len(s.from) == 0 {
		return "", errors.New("delete: table required")
	}

	lines := []string{"DELETE FROM " + strings.Join(s.from, ", ")}
	if len(s.using) > 0 {
		lines = append(lines, "USING "+strings.Join(s.using, "\n\t"))
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
