package loader

import (
	"fmt"

	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// Error codes shared with the CLI's JSON responses.
const (
	ErrCodeNotFound   = "E005" // Definition file missing or unreadable
	ErrCodeParse      = "E004" // YAML or CUE syntax error
	ErrCodeSchema     = "E006" // Definition does not satisfy the statement schema
	ErrCodeDefinition = "E008" // Definition is well-formed but not a valid statement
	ErrCodeBuild      = "E009" // Statement failed to build
)

// LoadError is a definition failure with its source location when known.
// CUE sources carry a full Pos; YAML sources only a line.
type LoadError struct {
	Code    string
	Message string
	File    string
	Line    int
	Pos     token.Pos
	Err     error
}

func (e *LoadError) Error() string {
	switch {
	case e.Pos.IsValid():
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	case e.File != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: %s: %s", e.File, e.Line, e.Code, e.Message)
	case e.File != "":
		return fmt.Sprintf("%s: %s: %s", e.File, e.Code, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// fromCUE converts the first CUE error into a LoadError. Of its positions,
// one inside filename is preferred over one inside the schema.
func fromCUE(code string, err error, filename string) *LoadError {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Code: code, Message: err.Error(), Err: err}
	}

	first := errs[0]
	le := &LoadError{Code: code, Message: first.Error(), Err: err}
	positions := errors.Positions(first)
	for _, pos := range positions {
		if pos.Filename() == filename {
			le.Pos = pos
			return le
		}
	}
	if len(positions) > 0 {
		le.Pos = positions[0]
	}
	return le
}
