package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a YAML definition file. Unknown fields are rejected so
// typos such as "order-by" fail instead of being ignored.
func ParseYAML(data []byte, filename string) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Code: ErrCodeDefinition, Message: "no statements defined", File: filename}
		}
		return nil, &LoadError{
			Code:    ErrCodeParse,
			Message: fmt.Sprintf("failed to parse YAML: %v", err),
			File:    filename,
			Err:     err,
		}
	}
	f.Path = filename

	// A second pass over the node tree recovers the line of each statement.
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err == nil {
		for i, line := range statementLines(&doc) {
			if i < len(f.Statements) {
				f.Statements[i].line = line
			}
		}
	}

	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// statementLines returns the line of every item of the top-level
// "statements" sequence.
func statementLines(doc *yaml.Node) []int {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "statements" {
			continue
		}
		seq := root.Content[i+1]
		lines := make([]int, len(seq.Content))
		for j, item := range seq.Content {
			lines[j] = item.Line
		}
		return lines
	}
	return nil
}
