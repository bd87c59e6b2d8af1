package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperatorsText(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewOperatorsCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs(nil)

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "SYMBOL")
	assert.Contains(t, output, "greater than or equal")
	assert.Contains(t, output, "between")
}

func TestOperatorsJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewOperatorsCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs(nil)

	require.NoError(t, cmd.Execute())

	var resp struct {
		Data struct {
			Operators []OperatorInfo `json:"operators"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	require.Len(t, resp.Data.Operators, 8)
	assert.Equal(t, OperatorInfo{Name: "greater than", Symbol: ">", Rule: "comparison"}, resp.Data.Operators[0])
	assert.Equal(t, OperatorInfo{Name: "in", Symbol: "in", Rule: "in"}, resp.Data.Operators[7])
}
