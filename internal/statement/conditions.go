package statement

import (
	"fmt"

	"github.com/roach88/sqlcomposer/internal/boolexpr"
	"github.com/roach88/sqlcomposer/internal/operand"
	"github.com/roach88/sqlcomposer/internal/operator"
)

// clauseBuilder feeds builder calls into one boolexpr.Clause and reports
// failures to the owning statement.
type clauseBuilder struct {
	name   string // "where" or "having"
	clause boolexpr.Clause
	fail   func(error)
}

func (c *clauseBuilder) condition(sql, tags string, args []any) {
	ps, err := fragment(sql, tags, args)
	if err == nil {
		err = c.clause.AddCondition(sql, ps)
	}
	c.check(err)
}

func (c *clauseBuilder) in(template, tags string, args []any) {
	cond, err := operator.InList(template, operand.List(args...), tags)
	if err == nil {
		err = c.clause.Add(cond)
	}
	c.check(err)
}

func (c *clauseBuilder) op(column, op, tags string, args []any) {
	cond, err := operator.Apply(column, op, operand.List(args...), tags)
	if err == nil {
		err = c.clause.Add(cond)
	}
	c.check(err)
}

func (c *clauseBuilder) open(conn boolexpr.Connector) {
	c.check(c.clause.OpenGroup(conn))
}

func (c *clauseBuilder) close() {
	c.check(c.clause.CloseGroup())
}

func (c *clauseBuilder) check(err error) {
	if err != nil {
		c.fail(fmt.Errorf("%s: %w", c.name, err))
	}
}

// section renders "<keyword> <expr>", or "" for an empty clause.
func (c *clauseBuilder) section(keyword string) (string, error) {
	if c.clause.IsEmpty() {
		return "", nil
	}
	text, err := c.clause.Render()
	if err != nil {
		return "", fmt.Errorf("%s: %w", c.name, err)
	}
	return keyword + " " + text, nil
}

// whereClause gives a statement of type S the WHERE builder methods.
type whereClause[S any] struct {
	self  S
	where *clauseBuilder
}

// Where adds a condition. args are values, operand.Bound or operand.Raw
// operands; sql must hold one "?" per resulting param.
func (w whereClause[S]) Where(sql string, args ...any) S {
	w.where.condition(sql, "", args)
	return w.self
}

// WhereTyped is Where with a type-tag string, one tag per param.
func (w whereClause[S]) WhereTyped(sql, tags string, args ...any) S {
	w.where.condition(sql, tags, args)
	return w.self
}

// WhereIn adds a condition whose single "?" expands to one entry per arg,
// e.g. WhereIn("size in (?)", 24, 64).
func (w whereClause[S]) WhereIn(template string, args ...any) S {
	w.where.in(template, "", args)
	return w.self
}

// WhereInTyped is WhereIn with a type-tag string. A single tag is replicated.
func (w whereClause[S]) WhereInTyped(template, tags string, args ...any) S {
	w.where.in(template, tags, args)
	return w.self
}

// WhereOp adds "<column> <op> ..." using the operator catalog.
func (w whereClause[S]) WhereOp(column, op string, args ...any) S {
	w.where.op(column, op, "", args)
	return w.self
}

// WhereOpTyped is WhereOp with a type-tag string.
func (w whereClause[S]) WhereOpTyped(column, op, tags string, args ...any) S {
	w.where.op(column, op, tags, args)
	return w.self
}

// OpenWhereAnd opens a parenthesized group whose members are joined by AND.
func (w whereClause[S]) OpenWhereAnd() S {
	w.where.open(boolexpr.And)
	return w.self
}

// OpenWhereOr opens a parenthesized group whose members are joined by OR.
func (w whereClause[S]) OpenWhereOr() S {
	w.where.open(boolexpr.Or)
	return w.self
}

// CloseWhere closes the innermost open WHERE group.
func (w whereClause[S]) CloseWhere() S {
	w.where.close()
	return w.self
}

// WhereClause exposes the underlying expression tree.
func (w whereClause[S]) WhereClause() *boolexpr.Clause {
	return &w.where.clause
}

// havingClause gives a statement of type S the HAVING builder methods.
type havingClause[S any] struct {
	self   S
	having *clauseBuilder
}

// Having adds a HAVING condition.
func (h havingClause[S]) Having(sql string, args ...any) S {
	h.having.condition(sql, "", args)
	return h.self
}

// HavingTyped is Having with a type-tag string.
func (h havingClause[S]) HavingTyped(sql, tags string, args ...any) S {
	h.having.condition(sql, tags, args)
	return h.self
}

// HavingIn is WhereIn for HAVING.
func (h havingClause[S]) HavingIn(template string, args ...any) S {
	h.having.in(template, "", args)
	return h.self
}

// HavingInTyped is WhereInTyped for HAVING.
func (h havingClause[S]) HavingInTyped(template, tags string, args ...any) S {
	h.having.in(template, tags, args)
	return h.self
}

// HavingOp is WhereOp for HAVING.
func (h havingClause[S]) HavingOp(column, op string, args ...any) S {
	h.having.op(column, op, "", args)
	return h.self
}

// HavingOpTyped is WhereOpTyped for HAVING.
func (h havingClause[S]) HavingOpTyped(column, op, tags string, args ...any) S {
	h.having.op(column, op, tags, args)
	return h.self
}

func (h havingClause[S]) OpenHavingAnd() S {
	h.having.open(boolexpr.And)
	return h.self
}

func (h havingClause[S]) OpenHavingOr() S {
	h.having.open(boolexpr.Or)
	return h.self
}

func (h havingClause[S]) CloseHaving() S {
	h.having.close()
	return h.self
}

// HavingClause exposes the underlying expression tree.
func (h havingClause[S]) HavingClause() *boolexpr.Clause {
	return &h.having.clause
}
