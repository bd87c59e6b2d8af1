package operand

import (
	"strings"

	"github.com/roach88/sqlcomposer/internal/sqlerr"
)

// ApplyTags overlays a tag string onto a parameter stream.
//
//   - "" leaves each param's own tag untouched
//   - a single character is replicated onto every param when replicate is set
//   - a string as long as the stream assigns tags positionally
//
// Any other length is a TYPE_ARGUMENT error. The input slice is not modified.
func ApplyTags(params []Param, tags string, replicate bool) ([]Param, error) {
	if tags == "" {
		return params, nil
	}

	out := make([]Param, len(params))
	copy(out, params)

	if replicate && len(tags) == 1 {
		for i := range out {
			out[i].Tag = tags
		}
		return out, nil
	}

	if len(tags) != len(params) {
		return nil, sqlerr.NewTypeArgument(tags, len(params))
	}
	for i := range out {
		out[i].Tag = tags[i : i+1]
	}
	return out, nil
}

// TagText joins the tags of a parameter stream.
//
// The result is aligned one-to-one with params, so it is only defined when
// every param is tagged (the concatenation) or none is (""). Partial tagging
// is a TYPE_ARGUMENT error.
func TagText(params []Param) (string, error) {
	var sb strings.Builder
	tagged := 0
	for _, p := range params {
		if p.Tag == "" {
			continue
		}
		if len(p.Tag) != 1 {
			return "", sqlerr.NewTypeArgument(p.Tag, 1)
		}
		sb.WriteString(p.Tag)
		tagged++
	}

	if tagged == 0 {
		return "", nil
	}
	if tagged != len(params) {
		return "", &sqlerr.Error{
			Code:    sqlerr.ErrCodeTypeArgument,
			Message: "type tags given for only some parameters",
		}
	}
	return sb.String(), nil
}
