package operator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sqlcomposer/internal/operand"
	"github.com/roach88/sqlcomposer/internal/sqlerr"
)

func TestApply_Comparison(t *testing.T) {
	for _, sym := range []string{">", ">=", "<", "<=", "=", "!="} {
		t.Run(sym, func(t *testing.T) {
			cond, err := Apply("age", sym, operand.List(18), "i")
			require.NoError(t, err)
			assert.Equal(t, "age "+sym+" ?", cond.SQL)
			assert.Equal(t, []any{18}, operand.Values(cond.Params))

			tags, err := cond.Tags()
			require.NoError(t, err)
			assert.Equal(t, "i", tags)
		})
	}
}

func TestApply_ComparisonByName(t *testing.T) {
	cond, err := Apply("price", "less than or equal", operand.List(9.5), "")
	require.NoError(t, err)
	assert.Equal(t, "price <= ?", cond.SQL)
}

func TestApply_ComparisonOperandCount(t *testing.T) {
	_, err := Apply("age", ">", nil, "")
	assert.True(t, sqlerr.IsOperandCount(err))

	_, err = Apply("age", "=", operand.List(1, 2), "")
	assert.True(t, sqlerr.IsOperandCount(err))
}

func TestApply_ComparisonRaw(t *testing.T) {
	cond, err := Apply("created_at", ">", operand.List(operand.Expr("DATE('now', ?)", "-7 days")), "")
	require.NoError(t, err)
	assert.Equal(t, "created_at > DATE('now', ?)", cond.SQL)
	assert.Equal(t, []any{"-7 days"}, operand.Values(cond.Params))
}

func TestApply_Between(t *testing.T) {
	cond, err := Apply("age", "between", operand.List(10, 20), "")
	require.NoError(t, err)
	assert.Equal(t, "age between ? and ?", cond.SQL)
	assert.Equal(t, []any{10, 20}, operand.Values(cond.Params))
}

func TestApply_BetweenMixedOperands(t *testing.T) {
	cond, err := Apply("d", "between", operand.List(operand.Expr("DATE(?)", "2024-01-01"), "2024-12-31"), "s")
	require.NoError(t, err)
	assert.Equal(t, "d between DATE(?) and ?", cond.SQL)
	assert.Equal(t, []any{"2024-01-01", "2024-12-31"}, operand.Values(cond.Params))

	tags, err := cond.Tags()
	require.NoError(t, err)
	assert.Equal(t, "ss", tags)
}

func TestApply_BetweenRawWithoutParams(t *testing.T) {
	cond, err := Apply("n", "between", operand.List(operand.Expr("lo"), operand.Expr("hi")), "")
	require.NoError(t, err)
	assert.Equal(t, "n between lo and hi", cond.SQL)
	assert.Empty(t, cond.Params)
}

func TestApply_BetweenOperandCount(t *testing.T) {
	for _, n := range []int{0, 1, 3} {
		ops := make([]any, n)
		for i := range ops {
			ops[i] = i
		}
		_, err := Apply("age", "between", operand.List(ops...), "")
		assert.True(t, sqlerr.IsOperandCount(err), "n=%d", n)
	}
}

func TestApply_InvalidOperator(t *testing.T) {
	_, err := Apply("name", "like", operand.List("a%"), "")
	assert.True(t, sqlerr.IsInvalidOperator(err))
	assert.Contains(t, err.Error(), "like")
}

func TestApply_In(t *testing.T) {
	cond, err := Apply("id", "in", operand.List(1, 2, 3), "")
	require.NoError(t, err)
	assert.Equal(t, "id in (?, ?, ?)", cond.SQL)
}

func TestInList_ReplicatesSingleTag(t *testing.T) {
	cond, err := InList("size in (?)", operand.List(24, 64, 84, 13, 95), "i")
	require.NoError(t, err)

	assert.Equal(t, "size in (?, ?, ?, ?, ?)", cond.SQL)
	assert.Equal(t, []any{24, 64, 84, 13, 95}, operand.Values(cond.Params))

	tags, err := cond.Tags()
	require.NoError(t, err)
	assert.Equal(t, "iiiii", tags)
}

func TestInList_RawOperand(t *testing.T) {
	ops := operand.List(1, operand.Expr("(SELECT MAX(id) - ? FROM t)", 10), operand.Expr("0"), 2)

	cond, err := InList("id in (?)", ops, "")
	require.NoError(t, err)

	assert.Equal(t, "id in (?, (SELECT MAX(id) - ? FROM t), 0, ?)", cond.SQL)
	assert.Equal(t, []any{1, 10, 2}, operand.Values(cond.Params))
	assert.Equal(t, strings.Count(cond.SQL, "?"), len(cond.Params))
}

func TestInList_TagCount(t *testing.T) {
	cond, err := InList("x in (?)", operand.List(1, "a"), "is")
	require.NoError(t, err)
	tags, err := cond.Tags()
	require.NoError(t, err)
	assert.Equal(t, "is", tags)

	_, err = InList("x in (?)", operand.List(1, 2, 3), "ii")
	assert.True(t, sqlerr.IsTypeArgument(err))
}

func TestInList_Empty(t *testing.T) {
	cond, err := InList("x in (?)", nil, "i")
	require.NoError(t, err)
	assert.Equal(t, "x in (NULL)", cond.SQL)
	assert.Empty(t, cond.Params)
}

func TestInList_TemplateMustHaveOnePlaceholder(t *testing.T) {
	_, err := InList("x in (1)", operand.List(1), "")
	assert.ErrorIs(t, err, sqlerr.ErrPlaceholderCount)

	_, err = InList("x in (?) or y in (?)", operand.List(1), "")
	assert.ErrorIs(t, err, sqlerr.ErrPlaceholderCount)
}
