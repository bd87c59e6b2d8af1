package operator

import "slices"

// Rule selects how an operator renders its operands.
type Rule int

const (
	// Comparison renders "<column> <symbol> ?" from exactly one operand.
	Comparison Rule = iota
	// In renders "<column> in (?, ?, ...)" from any number of operands.
	In
	// Between renders "<column> between ? and ?" from exactly two operands.
	Between
)

// String returns the rule name.
func (r Rule) String() string {
	switch r {
	case Comparison:
		return "comparison"
	case In:
		return "in"
	case Between:
		return "between"
	default:
		return "unknown"
	}
}

// Entry is one operator of the catalog.
type Entry struct {
	Name   string // human name, e.g. "greater than"
	Symbol string // SQL symbol, e.g. ">"
	Rule   Rule
}

// entries is the catalog in display order. Read-only after init.
var entries = []Entry{
	{Name: "greater than", Symbol: ">", Rule: Comparison},
	{Name: "greater than or equal", Symbol: ">=", Rule: Comparison},
	{Name: "less than", Symbol: "<", Rule: Comparison},
	{Name: "less than or equal", Symbol: "<=", Rule: Comparison},
	{Name: "equal", Symbol: "=", Rule: Comparison},
	{Name: "not equal", Symbol: "!=", Rule: Comparison},
	{Name: "between", Symbol: "between", Rule: Between},
	{Name: "in", Symbol: "in", Rule: In},
}

// index maps both symbols and names to their entry.
var index = buildIndex(entries)

func buildIndex(es []Entry) map[string]Entry {
	m := make(map[string]Entry, len(es)*2)
	for _, e := range es {
		m[e.Symbol] = e
		m[e.Name] = e
	}
	return m
}

// Lookup finds an operator by symbol (">=") or name ("greater than or equal").
// Matching is exact.
func Lookup(op string) (Entry, bool) {
	e, ok := index[op]
	return e, ok
}

// IsValid reports whether op names a catalog operator.
func IsValid(op string) bool {
	_, ok := index[op]
	return ok
}

// Entries returns a copy of the catalog in display order.
func Entries() []Entry {
	return slices.Clone(entries)
}
