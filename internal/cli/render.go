package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	goslug "github.com/gosimple/slug"
	"github.com/spf13/cobra"

	"github.com/roach88/sqlcomposer/internal/canonical"
	"github.com/roach88/sqlcomposer/internal/loader"
)

// RenderOptions holds render command flags.
type RenderOptions struct {
	Name   string // render only this statement
	OutDir string // write one .sql file per statement here
}

// RenderedStatement is one statement in render/check output.
type RenderedStatement struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	SQL         string `json:"sql"`
	Params      []any  `json:"params"`
	Types       string `json:"types"`
	Fingerprint string `json:"fingerprint"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render <definitions-file>",
		Short: "Render statement definitions to SQL and parameters",
		Long: `Render every statement of a YAML, TOML, CUE or JSON definitions file.

Each statement is printed as SQL text with "?" placeholders followed by
its parameters in placeholder order and its type-tag string.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return runRender(opts, args[0], formatter)
		},
	}

	cmd.Flags().StringVarP(&opts.Name, "name", "n", "", "render only the named statement")
	cmd.Flags().StringVarP(&opts.OutDir, "out-dir", "o", "", "write each statement to <out-dir>/<name>.sql")

	return cmd
}

func runRender(opts *RenderOptions, path string, formatter *OutputFormatter) error {
	stmts, err := renderFile(path, opts.Name, formatter)
	if err != nil {
		return err
	}

	if opts.OutDir != "" {
		files, err := writeStatements(opts.OutDir, stmts)
		if err != nil {
			formatter.Error(ErrCodeGeneric, err.Error(), map[string]any{"out_dir": opts.OutDir})
			return WrapExitError(ExitCommandError, "cannot write statements", err)
		}
		if formatter.Format == "json" {
			return formatter.Success(map[string]any{"files": files})
		}
		return formatter.Success(fmt.Sprintf("Wrote %d file(s) to %s", len(files), opts.OutDir))
	}

	if formatter.Format == "json" {
		return formatter.Success(map[string]any{"statements": stmts})
	}
	return formatter.Success(formatStatements(stmts))
}

// writeStatements writes every statement to dir as <slug>.sql, in the text
// format of formatStatements. Names that slug to the same file are an error.
func writeStatements(dir string, stmts []RenderedStatement) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	files := make([]string, 0, len(stmts))
	owner := make(map[string]string, len(stmts))
	for _, s := range stmts {
		base := goslug.Make(s.Name)
		if base == "" {
			return nil, fmt.Errorf("statement %q has no usable file name", s.Name)
		}
		if prev, ok := owner[base]; ok {
			return nil, fmt.Errorf("statements %q and %q both map to %s.sql", prev, s.Name, base)
		}
		owner[base] = s.Name

		path := filepath.Join(dir, base+".sql")
		content := formatStatements([]RenderedStatement{s}) + "\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		files = append(files, path)
	}
	return files, nil
}

// renderFile loads and renders a definitions file, reporting failures
// through formatter. The returned error carries the exit code.
func renderFile(path, name string, formatter *OutputFormatter) ([]RenderedStatement, error) {
	f, err := loader.LoadFile(path)
	if err != nil {
		return nil, loadFailure(formatter, err)
	}
	formatter.VerboseLog("Loaded %d statement(s) from %s", len(f.Statements), path)

	if name != "" {
		def, ok := f.Lookup(name)
		if !ok {
			msg := fmt.Sprintf("no statement named %q in %s", name, path)
			formatter.Error(ErrCodeNoStatement, msg, nil)
			return nil, NewExitError(ExitCommandError, msg)
		}
		f = &loader.File{Path: f.Path, Statements: []loader.Definition{*def}}
	}

	results, err := f.Render()
	if err != nil {
		return nil, loadFailure(formatter, err)
	}

	stmts := make([]RenderedStatement, 0, len(results))
	for _, r := range results {
		params := r.Rendered.Params
		if params == nil {
			params = []any{}
		}
		fp, err := canonical.Fingerprint(r.Rendered.SQL, params, r.Rendered.Types)
		if err != nil {
			formatter.Error(ErrCodeGeneric, err.Error(), nil)
			return nil, WrapExitError(ExitFailure, "fingerprint failed", err)
		}
		formatter.VerboseLog("Rendered %s (%s): %d param(s)", r.Name, r.Kind, len(params))
		stmts = append(stmts, RenderedStatement{
			Name:        r.Name,
			Kind:        r.Kind,
			SQL:         r.Rendered.SQL,
			Params:      params,
			Types:       r.Rendered.Types,
			Fingerprint: fp,
		})
	}
	return stmts, nil
}

// loadFailure reports a loader error and maps it to an exit code: a file
// that cannot be read is a command error, a bad definition is a failure.
func loadFailure(formatter *OutputFormatter, err error) error {
	var le *loader.LoadError
	if !errors.As(err, &le) {
		formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitFailure, "render failed", err)
	}

	var details any
	if le.Pos.IsValid() {
		details = map[string]any{"file": le.Pos.Filename(), "line": le.Pos.Line(), "column": le.Pos.Column()}
	} else if le.File != "" {
		details = map[string]any{"file": le.File, "line": le.Line}
	}
	formatter.Error(le.Code, le.Error(), details)

	if le.Code == loader.ErrCodeNotFound {
		return WrapExitError(ExitCommandError, "cannot read definitions", err)
	}
	return WrapExitError(ExitFailure, "invalid definitions", err)
}

// formatStatements renders the text form:
//
//	-- name (kind)
//	SELECT ...;
//	-- params: [...]
//	-- types: "..."
func formatStatements(stmts []RenderedStatement) string {
	var sb strings.Builder
	for i, s := range stmts {
		if i > 0 {
			sb.WriteByte('\n')
		}
		params, err := canonical.Marshal(s.Params)
		if err != nil {
			params = []byte(fmt.Sprint(s.Params))
		}
		fmt.Fprintf(&sb, "-- %s (%s)\n%s;\n-- params: %s\n-- types: %q\n", s.Name, s.Kind, s.SQL, params, s.Types)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
