package statement

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/sqlcomposer/internal/operand"
	"github.com/roach88/sqlcomposer/internal/params"
	"github.com/roach88/sqlcomposer/internal/sqlerr"
)

var insertOrder = []params.Kind{
	params.Values,
	params.SubSelect,
	params.OnDuplicate,
}

// insertState is shared by INSERT and REPLACE.
type insertState struct {
	table   string
	columns []string
	rows    []string // rendered "(?, ?, NOW())" tuples
	rowLens []int
	sub     *Select
	onDup   []string
}

// subSelectSource replays the params of an INSERT ... SELECT source query.
type subSelectSource struct {
	st *insertState
}

func (s subSelectSource) Params() []operand.Param {
	if s.st.sub == nil {
		return nil
	}
	return s.st.sub.coll.Get(s.st.sub.kinds...)
}

// insertLike gives a statement of type S the INSERT/REPLACE builder methods.
type insertLike[S any] struct {
	self S
	b    *base
	st   *insertState
}

// Into sets the target table.
func (i insertLike[S]) Into(table string) S {
	i.st.table = table
	return i.self
}

// Columns appends target columns.
func (i insertLike[S]) Columns(columns ...string) S {
	i.st.columns = append(i.st.columns, columns...)
	return i.self
}

// Values appends one row. Bound values render as "?", Raw operands verbatim.
func (i insertLike[S]) Values(row ...any) S {
	return i.ValuesTyped("", row...)
}

// ValuesTyped is Values with a type-tag string, one tag per resulting param.
// A single tag is replicated across the row.
func (i insertLike[S]) ValuesTyped(tags string, row ...any) S {
	ops := operand.List(row...)
	ps, err := operand.ApplyTags(operand.Flatten(ops), tags, true)
	if err != nil {
		i.b.fail(fmt.Errorf("%s: %w", params.Values, err))
		return i.self
	}
	placeholders := make([]string, len(ops))
	for n, op := range ops {
		placeholders[n] = operand.Placeholder(op)
	}
	i.st.rows = append(i.st.rows, "("+strings.Join(placeholders, ", ")+")")
	i.st.rowLens = append(i.st.rowLens, len(ops))
	i.b.coll.Add(params.Values, ps...)
	return i.self
}

// Select uses a query as the row source (INSERT ... SELECT). Its params are
// spliced in where the query is rendered.
func (i insertLike[S]) Select(sub *Select) S {
	if sub == nil {
		i.b.fail(errors.New("select source must not be nil"))
		return i.self
	}
	i.st.sub = sub
	return i.self
}

func (st *insertState) render(verb string) (string, error) {
	if st.table == "" {
		return "", fmt.Errorf("%s: target table required", strings.ToLower(verb))
	}

	head := verb + " INTO " + st.table
	if len(st.columns) > 0 {
		head += " (" + strings.Join(st.columns, ", ") + ")"
	}
	lines := []string{head}

	switch {
	case st.sub != nil && len(st.rows) > 0:
		return "", fmt.Errorf("%s: VALUES and SELECT cannot be combined", strings.ToLower(verb))
	case st.sub != nil:
		sub, err := st.sub.Render()
		if err != nil {
			return "", fmt.Errorf("select source: %w", err)
		}
		lines = append(lines, sub)
	case len(st.rows) > 0:
		if err := st.checkRows(); err != nil {
			return "", err
		}
		lines = append(lines, "VALUES "+strings.Join(st.rows, ", "))
	default:
		return "", fmt.Errorf("%s: VALUES or SELECT required", strings.ToLower(verb))
	}

	if len(st.onDup) > 0 {
		lines = append(lines, "ON DUPLICATE KEY UPDATE "+strings.Join(st.onDup, ", "))
	}
	return strings.Join(lines, "\n"), nil
}

// checkRows requires every row to be as wide as the column list, or as wide
// as the first row when no columns were named.
func (st *insertState) checkRows() error {
	want := len(st.columns)
	if want == 0 {
		want = st.rowLens[0]
	}
	for _, n := range st.rowLens {
		if n != want {
			return sqlerr.NewOperandCount("", "values", fmt.Sprint(want), n)
		}
	}
	return nil
}

// Insert builds an INSERT statement.
type Insert struct {
	base
	insertLike[*Insert]
	st insertState
}

// NewInsert starts an INSERT into table. table may be empty and set later with Into.
func NewInsert(table string) *Insert {
	s := &Insert{base: newBase("INSERT", insertOrder)}
	s.st.table = table
	s.insertLike = insertLike[*Insert]{self: s, b: &s.base, st: &s.st}
	s.coll.Bind(params.SubSelect, subSelectSource{st: &s.st})
	s.base.render = func() (string, error) { return s.st.render("INSERT") }
	return s
}

// OnDuplicateKeyUpdate appends an assignment to the ON DUPLICATE KEY UPDATE list,
// e.g. OnDuplicateKeyUpdate("hits = hits + ?", 1).
func (s *Insert) OnDuplicateKeyUpdate(sql string, args ...any) *Insert {
	if s.addFragment(params.OnDuplicate, sql, args) {
		s.st.onDup = append(s.st.onDup, sql)
	}
	return s
}

// Replace builds a REPLACE statement.
type Replace struct {
	base
	insertLike[*Replace]
	st insertState
}

// NewReplace starts a REPLACE into table.
func NewReplace(table string) *Replace {
	s := &Replace{base: newBase("REPLACE", insertOrder)}
	s.st.table = table
	s.insertLike = insertLike[*Replace]{self: s, b: &s.base, st: &s.st}
	s.coll.Bind(params.SubSelect, subSelectSource{st: &s.st})
	s.base.render = func() (string, error) { return s.st.render("REPLACE") }
	return s
}
