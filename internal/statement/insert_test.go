package statement

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sqlcomposer/internal/operand"
	"github.com/roach88/sqlcomposer/internal/params"
	"github.com/roach88/sqlcomposer/internal/sqlerr"
)

func TestInsert_SingleRow(t *testing.T) {
	r, err := NewInsert("users").Columns("name", "age").Values("ann", 31).Build()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO users (name, age)\nVALUES (?, ?)", r.SQL)
	assert.Equal(t, []any{"ann", 31}, r.Params)
}

func TestInsert_WithoutColumns(t *testing.T) {
	sql, err := NewInsert("").Into("t").Values(1, 2).Values(3, 4).Render()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO t\nVALUES (?, ?), (?, ?)", sql)
}

func TestInsert_RawValueCarriesParams(t *testing.T) {
	r, err := NewInsert("events").
		Columns("id", "at").
		Values(operand.Expr("UUID_TO_BIN(?)", "abc"), operand.Expr("NOW()")).
		Build()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO events (id, at)\nVALUES (UUID_TO_BIN(?), NOW())", r.SQL)
	assert.Equal(t, []any{"abc"}, r.Params)
}

func TestInsert_SelectParamsFollowOwnOrder(t *testing.T) {
	sub := NewSelect("id").
		From("src").
		Where("kind = ?", "a").
		OrderByExpr("FIELD(id, ?)", 9)

	ins := NewInsert("dst").Columns("id").Select(sub).OnDuplicateKeyUpdate("seen = seen + ?", 1)

	r, err := ins.Build()
	require.NoError(t, err)
	assert.Equal(t, []any{"a", 9, 1}, r.Params)
	assert.Equal(t, []any{"a", 9}, ins.ParamsOf(params.SubSelect))
}

func TestInsert_TypedRows(t *testing.T) {
	r, err := NewInsert("t").
		Columns("a", "b", "c").
		ValuesTyped("isd", 1, "x", 2.5).
		ValuesTyped("isd", 2, "y", 3.5).
		Build()
	require.NoError(t, err)
	assert.Equal(t, "isdisd", r.Types)
}

func TestInsert_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		stmt     builder
		sentinel error
		contains string
	}{
		{
			name:     "no table",
			stmt:     NewInsert("").Values(1),
			contains: "target table required",
		},
		{
			name:     "no rows",
			stmt:     NewInsert("t").Columns("a"),
			contains: "VALUES or SELECT required",
		},
		{
			name:     "values and select",
			stmt:     NewInsert("t").Values(1).Select(NewSelect("a").From("s")),
			contains: "cannot be combined",
		},
		{
			name:     "nil select",
			stmt:     NewInsert("t").Select(nil),
			contains: "must not be nil",
		},
		{
			name:     "row narrower than columns",
			stmt:     NewInsert("t").Columns("a", "b").Values(1),
			sentinel: sqlerr.ErrOperandCount,
		},
		{
			name:     "rows of different width",
			stmt:     NewReplace("t").Values(1, 2).Values(3),
			sentinel: sqlerr.ErrOperandCount,
		},
		{
			name:     "row tags of wrong length",
			stmt:     NewInsert("t").ValuesTyped("ii", 1, 2, 3),
			sentinel: sqlerr.ErrTypeArgument,
		},
		{
			name:     "broken select source",
			stmt:     NewInsert("t").Select(NewSelect().From("s").OpenWhereOr().Where("a")),
			sentinel: sqlerr.ErrUnbalancedGroup,
		},
		{
			name:     "on duplicate mismatch",
			stmt:     NewInsert("t").Values(1).OnDuplicateKeyUpdate("a = ?"),
			sentinel: sqlerr.ErrPlaceholderCount,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.stmt.Build()
			require.Error(t, err)
			if tc.sentinel != nil {
				assert.True(t, errors.Is(err, tc.sentinel), "got %v", err)
			}
			if tc.contains != "" {
				assert.Contains(t, err.Error(), tc.contains)
			}
		})
	}
}

func TestReplace_Render(t *testing.T) {
	sql, err := NewReplace("kv").Columns("k", "v").Values("a", 1).Render()
	require.NoError(t, err)
	assert.Equal(t, "REPLACE INTO kv (k, v)\nVALUES (?, ?)", sql)
}
