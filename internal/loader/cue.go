package loader

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaSource []byte

// ParseCUE decodes a CUE (or JSON) definition file after unifying it with
// the statement schema. Schema violations are reported with the position of
// the offending value.
func ParseCUE(data []byte, filename string) (*File, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fromCUE(ErrCodeSchema, err, "schema.cue")
	}

	value := ctx.CompileBytes(data, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, fromCUE(ErrCodeParse, err, filename)
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, fromCUE(ErrCodeSchema, err, filename)
	}

	list := unified.LookupPath(cue.ParsePath("statements"))
	if !list.Exists() {
		return nil, &LoadError{Code: ErrCodeDefinition, Message: "no statements defined", File: filename}
	}
	iter, err := list.List()
	if err != nil {
		return nil, fromCUE(ErrCodeSchema, err, filename)
	}

	f := &File{Path: filename}
	for iter.Next() {
		def, err := decodeDefinition(iter.Value(), filename)
		if err != nil {
			return nil, err
		}
		f.Statements = append(f.Statements, *def)
	}

	if err := f.validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// decodeDefinition goes through JSON with UseNumber so integers stay exact.
func decodeDefinition(v cue.Value, filename string) (*Definition, error) {
	raw, err := v.MarshalJSON()
	if err != nil {
		return nil, fromCUE(ErrCodeSchema, err, filename)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	dec.DisallowUnknownFields()

	var def Definition
	if err := dec.Decode(&def); err != nil {
		return nil, &LoadError{
			Code:    ErrCodeSchema,
			Message: fmt.Sprintf("decoding statement: %v", err),
			Pos:     v.Pos(),
			Err:     err,
		}
	}
	def.pos = v.Pos()
	return &def, nil
}
