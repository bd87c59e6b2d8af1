package loader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// LoadFile reads a definition file, choosing the decoder by extension:
// .yaml/.yml use YAML, .toml uses TOML, .cue and .json use CUE.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Code:    ErrCodeNotFound,
			Message: fmt.Sprintf("failed to read definition file: %v", err),
			File:    path,
			Err:     err,
		}
	}

	var f *File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		f, err = ParseYAML(data, path)
	case ".toml":
		f, err = ParseTOML(data, path)
	case ".cue", ".json":
		f, err = ParseCUE(data, path)
	default:
		return nil, &LoadError{
			Code:    ErrCodeParse,
			Message: fmt.Sprintf("unsupported definition format %q (want .yaml, .yml, .toml, .cue or .json)", ext),
			File:    path,
		}
	}
	if err != nil {
		return nil, err
	}

	slog.Debug("definitions loaded", "path", path, "statements", len(f.Statements))
	return f, nil
}

// validate checks what the decoders cannot: unique names and fields that
// belong to the statement kind.
func (f *File) validate() error {
	if len(f.Statements) == 0 {
		return &LoadError{Code: ErrCodeDefinition, Message: "no statements defined", File: f.Path}
	}

	seen := make(map[string]bool, len(f.Statements))
	for i := range f.Statements {
		d := &f.Statements[i]
		if d.Name == "" {
			return f.defError(d, fmt.Sprintf("statements[%d]: name is required", i))
		}
		if seen[d.Name] {
			return f.defError(d, fmt.Sprintf("duplicate statement name %q", d.Name))
		}
		seen[d.Name] = true

		if err := d.checkFields(); err != nil {
			return f.defError(d, fmt.Sprintf("%s: %v", d.Name, err))
		}
	}
	return nil
}

func (f *File) defError(d *Definition, msg string) *LoadError {
	return &LoadError{Code: ErrCodeDefinition, Message: msg, File: f.Path, Line: d.line, Pos: d.pos}
}

// Lookup returns the definition with the given name.
func (f *File) Lookup(name string) (*Definition, bool) {
	for i := range f.Statements {
		if f.Statements[i].Name == name {
			return &f.Statements[i], true
		}
	}
	return nil, false
}
