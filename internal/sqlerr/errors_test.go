package sqlerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Message(t *testing.T) {
	err := NewOperandCount("age", "between", "2", 1)
	assert.Equal(t, "OPERAND_COUNT: expected 2 operand(s), got 1 (column=age, operator=between)", err.Error())

	err = NewInvalidOperator("like")
	assert.Equal(t, "INVALID_OPERATOR: invalid operator: like (operator=like)", err.Error())

	err = NewEmptyGroup()
	assert.Equal(t, "EMPTY_GROUP: group closed without any condition", err.Error())
}

func TestError_IsMatchesByCode(t *testing.T) {
	wrapped := fmt.Errorf("build where: %w", NewTypeArgument("ii", 3))

	assert.True(t, errors.Is(wrapped, ErrTypeArgument))
	assert.False(t, errors.Is(wrapped, ErrOperandCount))
	assert.False(t, errors.Is(wrapped, errors.New("TYPE_ARGUMENT")))
}

func TestIsHelpers(t *testing.T) {
	testCases := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"invalid operator", NewInvalidOperator("~"), IsInvalidOperator},
		{"operand count", NewOperandCount("a", "=", "1", 0), IsOperandCount},
		{"type argument", NewTypeArgument("ab", 1), IsTypeArgument},
		{"unbalanced group", NewUnbalancedGroup("no open group"), IsUnbalancedGroup},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.check(tc.err))
			assert.True(t, tc.check(fmt.Errorf("wrapped: %w", tc.err)))
			assert.False(t, tc.check(errors.New(tc.name)))
			assert.False(t, tc.check(nil))
		})
	}
}
