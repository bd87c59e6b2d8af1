package loader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// ParseTOML decodes a TOML definition file, written as an array of tables:
//
//	[[statements]]
//	name = "by_id"
//	kind = "select"
//	table = "products"
//	where = [{column = "id", op = "=", operands = [1]}]
//
// Keys the definition does not know are rejected, as in ParseYAML.
func ParseTOML(data []byte, filename string) (*File, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		le := &LoadError{
			Code:    ErrCodeParse,
			Message: fmt.Sprintf("failed to parse TOML: %v", err),
			File:    filename,
			Err:     err,
		}
		var perr toml.ParseError
		if errors.As(err, &perr) {
			le.Line = perr.Position.Line
		}
		return nil, le
	}
	f.Path = filename

	if keys := unknownKeys(md); len(keys) > 0 {
		return nil, &LoadError{
			Code:    ErrCodeSchema,
			Message: fmt.Sprintf("unknown field(s): %s", strings.Join(keys, ", ")),
			File:    filename,
		}
	}

	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// unknownKeys lists keys that matched no field. Tables nested in free-form
// values (params, operands, values) are decoded as maps and never count.
func unknownKeys(md toml.MetaData) []string {
	var keys []string
	for _, k := range md.Undecoded() {
		if isFreeForm(k) {
			continue
		}
		keys = append(keys, k.String())
	}
	return keys
}

func isFreeForm(k toml.Key) bool {
	for _, part := range k {
		switch part {
		case "params", "operands", "values":
			return true
		}
	}
	return false
}
