package statement

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/sqlcomposer/internal/params"
)

// selectOrder is the section order of a SELECT; params are collected in the same order.
var selectOrder = []params.Kind{
	params.Select,
	params.Tables,
	params.Where,
	params.GroupBy,
	params.Having,
	params.OrderBy,
}

// Select builds a SELECT statement.
//
//	SELECT [DISTINCT] columns
//	FROM tables
//	WHERE ...
//	GROUP BY ... [WITH ROLLUP]
//	HAVING ...
//	ORDER BY ...
//	LIMIT n
//	OFFSET m
type Select struct {
	base
	whereClause[*Select]
	havingClause[*Select]
	ordering[*Select]

	columns    []string
	distinct   bool
	tables     []string
	groupBy    []string
	withRollup bool
	offset     int

	whereCB  clauseBuilder
	havingCB clauseBuilder
	sort     orderState
}

// NewSelect starts a SELECT of the given columns. No columns renders "*".
func NewSelect(columns ...string) *Select {
	s := &Select{base: newBase("SELECT", selectOrder)}
	s.whereCB = clauseBuilder{name: "where", fail: s.fail}
	s.havingCB = clauseBuilder{name: "having", fail: s.fail}
	s.whereClause = whereClause[*Select]{self: s, where: &s.whereCB}
	s.havingClause = havingClause[*Select]{self: s, having: &s.havingCB}
	s.ordering = ordering[*Select]{self: s, b: &s.base, st: &s.sort}
	s.coll.Bind(params.Where, &s.whereCB.clause)
	s.coll.Bind(params.Having, &s.havingCB.clause)
	s.base.render = s.renderSQL
	s.columns = append(s.columns, columns...)
	return s
}

// Columns appends plain select columns.
func (s *Select) Columns(columns ...string) *Select {
	s.columns = append(s.columns, columns...)
	return s
}

// ColumnExpr appends a select expression carrying params,
// e.g. ColumnExpr("IF(score > ?, 'pass', 'fail') AS result", 50).
func (s *Select) ColumnExpr(sql string, args ...any) *Select {
	if s.addFragment(params.Select, sql, args) {
		s.columns = append(s.columns, sql)
	}
	return s
}

// Distinct toggles SELECT DISTINCT.
func (s *Select) Distinct(distinct bool) *Select {
	s.distinct = distinct
	return s
}

// From appends table references.
func (s *Select) From(tables ...string) *Select {
	s.tables = append(s.tables, tables...)
	return s
}

// Join appends a table reference carrying params,
// e.g. Join("JOIN orders o ON o.user_id = u.id AND o.status = ?", "paid").
func (s *Select) Join(sql string, args ...any) *Select {
	if s.addFragment(params.Tables, sql, args) {
		s.tables = append(s.tables, sql)
	}
	return s
}

// GroupBy appends GROUP BY terms.
func (s *Select) GroupBy(terms ...string) *Select {
	s.groupBy = append(s.groupBy, terms...)
	return s
}

// GroupByExpr appends a GROUP BY term carrying params.
func (s *Select) GroupByExpr(sql string, args ...any) *Select {
	if s.addFragment(params.GroupBy, sql, args) {
		s.groupBy = append(s.groupBy, sql)
	}
	return s
}

// WithRollup toggles GROUP BY ... WITH ROLLUP.
func (s *Select) WithRollup(rollup bool) *Select {
	s.withRollup = rollup
	return s
}

// Offset sets the row offset. It is only rendered together with a limit.
func (s *Select) Offset(n int) *Select {
	if n < 0 {
		s.fail(fmt.Errorf("offset must not be negative: %d", n))
		return s
	}
	s.offset = n
	return s
}

func (s *Select) renderSQL() (string, error) {
	var lines []string

	head := "SELECT "
	if s.distinct {
		head += "DISTINCT "
	}
	if len(s.columns) == 0 {
		head += "*"
	} else {
		head += strings.Join(s.columns, ", ")
	}
	lines = append(lines, head)

	if len(s.tables) > 0 {
		lines = append(lines, "FROM "+strings.Join(s.tables, "\n\t"))
	}

	where, err := s.whereCB.section("WHERE")
	if err != nil {
		return "", err
	}
	if where != "" {
		lines = append(lines, where)
	}

	if len(s.groupBy) > 0 {
		group := "GROUP BY " + strings.Join(s.groupBy, ", ")
		if s.withRollup {
			group += " WITH ROLLUP"
		}
		lines = append(lines, group)
	}

	having, err := s.havingCB.section("HAVING")
	if err != nil {
		return "", err
	}
	if having != "" {
		lines = append(lines, having)
	}

	lines = append(lines, s.sort.sections()...)
	if s.sort.limit > 0 && s.offset > 0 {
		lines = append(lines, "OFFSET "+strconv.Itoa(s.offset))
	}

	return strings.Join(lines, "\n"), nil
}
