package operator

import (
	"strings"

	"github.com/roach88/sqlcomposer/internal/boolexpr"
	"github.com/roach88/sqlcomposer/internal/operand"
	"github.com/roach88/sqlcomposer/internal/sqlerr"
)

// Apply expands (column, operator, operands) into a condition.
//
// tags is an optional type-tag string for the resulting params: "" keeps the
// tags carried by the operands, one character is replicated for in and
// between, otherwise its length must equal the number of resulting params.
//
// Errors: INVALID_OPERATOR for an unknown op, OPERAND_COUNT when a
// comparison does not get exactly one operand or between exactly two,
// TYPE_ARGUMENT when tags cannot be aligned.
func Apply(column, op string, operands []operand.Operand, tags string) (boolexpr.Condition, error) {
	entry, ok := Lookup(op)
	if !ok {
		return boolexpr.Condition{}, sqlerr.NewInvalidOperator(op)
	}

	switch entry.Rule {
	case Comparison:
		return applyComparison(column, entry.Symbol, operands, tags)
	case Between:
		return applyBetween(column, operands, tags)
	case In:
		return InList(column+" in (?)", operands, tags)
	default:
		return boolexpr.Condition{}, sqlerr.NewInvalidOperator(op)
	}
}

func applyComparison(column, symbol string, operands []operand.Operand, tags string) (boolexpr.Condition, error) {
	if len(operands) != 1 {
		return boolexpr.Condition{}, sqlerr.NewOperandCount(column, symbol, "1", len(operands))
	}

	params, err := operand.ApplyTags(operand.FlattenOne(operands[0]), tags, false)
	if err != nil {
		return boolexpr.Condition{}, err
	}

	sql := column + " " + symbol + " " + operand.Placeholder(operands[0])
	return boolexpr.NewCondition(sql, params)
}

func applyBetween(column string, operands []operand.Operand, tags string) (boolexpr.Condition, error) {
	if len(operands) != 2 {
		return boolexpr.Condition{}, sqlerr.NewOperandCount(column, "between", "2", len(operands))
	}

	params, err := operand.ApplyTags(operand.Flatten(operands), tags, true)
	if err != nil {
		return boolexpr.Condition{}, err
	}

	sql := column + " between " + operand.Placeholder(operands[0]) + " and " + operand.Placeholder(operands[1])
	return boolexpr.NewCondition(sql, params)
}

// InList expands the single "?" of template into one entry per operand.
//
// Bound operands become "?", Raw operands their own fragment; entries are
// joined by ", ". With no operands the list is "NULL", so "x in (NULL)"
// matches nothing. A one-character tag is replicated once per resulting
// param; a longer tag string must match the param count exactly.
//
//	InList("size in (?)", operand.List(24, 64, 84), "i")
//	// "size in (?, ?, ?)", [24 64 84], "iii"
func InList(template string, operands []operand.Operand, tags string) (boolexpr.Condition, error) {
	if n := operand.CountPlaceholders(template); n != 1 {
		return boolexpr.Condition{}, sqlerr.NewPlaceholderCount(template, n, 1)
	}

	list := "NULL"
	if len(operands) > 0 {
		placeholders := make([]string, len(operands))
		for i, op := range operands {
			placeholders[i] = operand.Placeholder(op)
		}
		list = strings.Join(placeholders, ", ")
	}

	params, err := operand.ApplyTags(operand.Flatten(operands), tags, true)
	if err != nil {
		return boolexpr.Condition{}, err
	}

	return boolexpr.NewCondition(strings.Replace(template, "?", list, 1), params)
}
