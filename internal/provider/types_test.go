package provider

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserMessage(t *testing.T) {
	msg := NewUserMessage("hello world")

	assert.Equal(t, "user", msg.Role)
	assert.Equal(t, "hello world", msg.Content)
}

func TestCompletionRequestJSONOmitsUnsetTemperature(t *testing.T) {
	req := CompletionRequest{
		Model:    "gpt-4o",
		Messages: []Message{NewUserMessage("hello")},
	}

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "temperature")
	assert.NotContains(t, string(data), "system")
}

func TestCompletionRequestJSONKeepsZeroTemperature(t *testing.T) {
	req := CompletionRequest{
		Model:       "gpt-4o",
		Messages:    []Message{NewUserMessage("hello")},
		Temperature: Temperature(0),
	}

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"temperature":0`)
}

func TestTemperatureReturnsDistinctPointers(t *testing.T) {
	a := Temperature(0.3)
	b := Temperature(0.3)
	require.NotNil(t, a)
	assert.NotSame(t, a, b)
	assert.Equal(t, 0.3, *a)
}

func TestCompletionRequestJSONFields(t *testing.T) {
	req := CompletionRequest{
		Model:       "gpt-4o",
		Messages:    []Message{NewUserMessage("hello")},
		Temperature: Temperature(0.3),
	}

	data, err := json.Marshal(req)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{"model", "messages", "temperature"}, keys)
}
