package statement

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/sqlcomposer/internal/params"
)

// orderState holds ORDER BY and LIMIT for statements that support them.
type orderState struct {
	orderBy []string
	limit   int
}

// section renders the ORDER BY and LIMIT lines, skipping empty ones.
func (o *orderState) sections() []string {
	var out []string
	if len(o.orderBy) > 0 {
		out = append(out, "ORDER BY "+strings.Join(o.orderBy, ", "))
	}
	if o.limit > 0 {
		out = append(out, "LIMIT "+strconv.Itoa(o.limit))
	}
	return out
}

// ordering gives a statement of type S the ORDER BY / LIMIT builder methods.
type ordering[S any] struct {
	self S
	b    *base
	st   *orderState
}

// OrderBy appends one or more ORDER BY terms, e.g. "total DESC".
func (o ordering[S]) OrderBy(terms ...string) S {
	o.st.orderBy = append(o.st.orderBy, terms...)
	return o.self
}

// OrderByExpr appends an ORDER BY term carrying params.
func (o ordering[S]) OrderByExpr(sql string, args ...any) S {
	if o.b.addFragment(params.OrderBy, sql, args) {
		o.st.orderBy = append(o.st.orderBy, sql)
	}
	return o.self
}

// Limit sets the row limit. Zero removes it.
func (o ordering[S]) Limit(n int) S {
	if n < 0 {
		o.b.fail(fmt.Errorf("limit must not be negative: %d", n))
		return o.self
	}
	o.st.limit = n
	return o.self
}
