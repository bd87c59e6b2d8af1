package statement

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sqlcomposer/internal/operand"
	"github.com/roach88/sqlcomposer/internal/sqlerr"
)

func TestUpdate_ParamsFollowSectionOrder(t *testing.T) {
	r, err := NewUpdate("orders o").
		Where("o.status = ?", "open").
		Set("o.total = o.total * ?", 1.1).
		Join("JOIN customers c ON c.id = o.customer_id AND c.tier = ?", "gold").
		OrderByExpr("FIELD(o.region, ?)", "eu").
		Limit(100).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "UPDATE orders o\n\tJOIN customers c ON c.id = o.customer_id AND c.tier = ?\n"+
		"SET o.total = o.total * ?\n"+
		"WHERE o.status = ?\n"+
		"ORDER BY FIELD(o.region, ?)\n"+
		"LIMIT 100", r.SQL)
	assert.Equal(t, []any{"gold", 1.1, "open", "eu"}, r.Params)
}

func TestUpdate_SetValueTagged(t *testing.T) {
	r, err := NewUpdate("t").
		SetValue("a", operand.Tagged(1, "i")).
		SetValue("b", operand.Tagged("x", "s")).
		WhereOp("id", "=", operand.Tagged(7, "i")).
		Build()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE t\nSET a = ?, b = ?\nWHERE id = ?", r.SQL)
	assert.Equal(t, "isi", r.Types)
}

func TestUpdate_Errors(t *testing.T) {
	_, err := NewUpdate().SetValue("a", 1).Build()
	assert.ErrorContains(t, err, "table required")

	_, err = NewUpdate("t").Where("a = ?", 1).Build()
	assert.ErrorContains(t, err, "at least one assignment")

	_, err = NewUpdate("t").SetValue("a", 1).WhereOp("b", "in").OpenWhereAnd().Build()
	assert.True(t, errors.Is(err, sqlerr.ErrUnbalancedGroup), "got %v", err)
}

func TestUpdate_TableAppends(t *testing.T) {
	sql, err := NewUpdate().Table("a", "b").SetValue("a.x", operand.Expr("b.x")).Render()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE a\n\tb\nSET a.x = b.x", sql)
}
