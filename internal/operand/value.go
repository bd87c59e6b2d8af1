package operand

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Type tags understood by mysqli-style binding APIs.
const (
	TagInt    = "i"
	TagDouble = "d"
	TagString = "s"
	TagBlob   = "b"
)

// InferTag returns the type tag a binding API would expect for v, or "" when
// v has no natural tag (nil, or a type the alphabet does not cover).
func InferTag(v any) string {
	switch val := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, bool:
		return TagInt
	case float32, float64:
		return TagDouble
	case string, uuid.UUID, time.Time:
		return TagString
	case []byte:
		return TagBlob
	case Bound:
		if val.Tag != "" {
			return val.Tag
		}
		return InferTag(val.Value)
	default:
		return ""
	}
}

// InferTags fills in the tag of every untagged param whose value has a
// natural tag. Params that already carry a tag are left alone.
func InferTags(params []Param) []Param {
	out := make([]Param, len(params))
	for i, p := range params {
		if p.Tag == "" {
			p.Tag = InferTag(p.Value)
		}
		out[i] = p
	}
	return out
}

// Normalize converts a decoded configuration value into a driver-friendly
// scalar. Integers widen to int64, uuid.UUID becomes its string form.
// Arrays and objects cannot be bound to a single placeholder and are rejected.
func Normalize(v any) (any, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string, bool, float64, []byte, time.Time:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return int64(val), nil
	case int8:
		return int64(val), nil
	case int16:
		return int64(val), nil
	case int32:
		return int64(val), nil
	case int64:
		return val, nil
	case uint:
		return int64(val), nil
	case uint8:
		return int64(val), nil
	case uint16:
		return int64(val), nil
	case uint32:
		return int64(val), nil
	case uint64:
		if val > 1<<63-1 {
			return nil, fmt.Errorf("integer %d overflows int64", val)
		}
		return int64(val), nil
	case uuid.UUID:
		return val.String(), nil
	case driver.Valuer:
		return val, nil
	case []any:
		return nil, fmt.Errorf("array cannot be bound to a single placeholder")
	case map[string]any:
		return nil, fmt.Errorf("object cannot be bound to a single placeholder")
	default:
		return nil, fmt.Errorf("unsupported parameter type: %T", v)
	}
}
