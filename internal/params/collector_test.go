package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sqlcomposer/internal/boolexpr"
	"github.com/roach88/sqlcomposer/internal/operand"
)

func p(v any, tag string) operand.Param {
	return operand.Param{Value: v, Tag: tag}
}

func TestGet_ConcatenatesInRequestedOrder(t *testing.T) {
	c := New()
	c.Add(Having, p("h", "s"))
	c.Add(Select, p("s1", "s"), p("s2", "s"))
	c.Add(OrderBy, p("o", "s"))
	c.Add(Where, p("w", "s"))
	c.Add(GroupBy, p("g", "s"))

	got := c.Values(Select, Where, GroupBy, Having, OrderBy)
	assert.Equal(t, []any{"s1", "s2", "w", "g", "h", "o"}, got)

	got = c.Values(OrderBy, Select)
	assert.Equal(t, []any{"o", "s1", "s2"}, got)
}

func TestGet_EmptyKinds(t *testing.T) {
	c := New()
	c.Add(Where, p(1, ""))

	assert.Equal(t, []any{1}, c.Values(Select, Tables, Where, GroupBy, Having, OrderBy))
	assert.Empty(t, c.Get(Select, Having))
	assert.Empty(t, c.Get())
}

func TestAdd_AppendsAcrossCalls(t *testing.T) {
	c := New()
	c.Add(Select, p(1, ""))
	c.Add(Select)
	c.Add(Select, p(2, ""))
	assert.Equal(t, []any{1, 2}, c.Values(Select))
}

func TestBind_ReplaysSource(t *testing.T) {
	var where boolexpr.Clause
	c := New()
	c.Bind(Where, &where)
	c.Add(Select, p("s", ""))

	require.NoError(t, where.AddCondition("a = ?", []operand.Param{p(1, "")}))
	require.NoError(t, where.OpenGroup(boolexpr.Or))
	require.NoError(t, where.AddCondition("b = ?", []operand.Param{p(2, "")}))
	require.NoError(t, where.CloseGroup())

	// Conditions added after Bind are still seen
	assert.Equal(t, []any{"s", 1, 2}, c.Values(Select, Where))
}

func TestBind_PanicsWhenKindAlreadyAdded(t *testing.T) {
	c := New()
	c.Add(Where, p(1, ""))
	assert.Panics(t, func() { c.Bind(Where, &boolexpr.Clause{}) })
}

func TestTypes(t *testing.T) {
	c := New()
	c.Add(Select, p(1, "i"))
	c.Add(Where, p("x", "s"))

	types, err := c.Types(Select, Where)
	require.NoError(t, err)
	assert.Equal(t, "is", types)

	c.Add(OrderBy, p(2, ""))
	_, err = c.Types(Select, Where, OrderBy)
	assert.Error(t, err)
}

func TestClone(t *testing.T) {
	c := New()
	c.Add(Select, p(1, ""))
	clone := c.Clone()
	clone.Add(Select, p(2, ""))

	assert.Equal(t, []any{1}, c.Values(Select))
	assert.Equal(t, []any{1, 2}, clone.Values(Select))
}
