package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolsCommand_Records(t *testing.T) {
	configPath := writeTestConfig(t)

	cmd := GetRootCmd()
	cmd.SetArgs([]string{"tools", "--config", configPath, "--format", "records"})

	output := &bytes.Buffer{}
	cmd.SetOut(output)

	require.NoError(t, cmd.Execute())

	var payload struct {
		Tools   []map[string]json.RawMessage `json:"tools"`
		Aliases map[string]string            `json:"aliases"`
	}
	require.NoError(t, json.Unmarshal(output.Bytes(), &payload))
	require.Len(t, payload.Tools, 3)

	_, ok := payload.Tools[0]["calc"]
	assert.True(t, ok)
}

func TestToolsCommand_OpenAI(t *testing.T) {
	configPath := writeTestConfig(t)

	cmd := GetRootCmd()
	cmd.SetArgs([]string{"tools", "--config", configPath, "--format", "openai"})

	output := &bytes.Buffer{}
	cmd.SetOut(output)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, output.String(), `"calc"`)
	assert.Contains(t, output.String(), "function")
}

func TestToolsCommand_UnknownFormat(t *testing.T) {
	configPath := writeTestConfig(t)

	cmd := GetRootCmd()
	cmd.SetArgs([]string{"tools", "--config", configPath, "--format", "bogus"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	assert.Error(t, cmd.Execute())
}
