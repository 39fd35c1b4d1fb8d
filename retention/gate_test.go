package retention

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answer(response string) Prompter {
	return func(string) (string, error) { return response, nil }
}

func TestGate_ForceDoesNotPrompt(t *testing.T) {
	gate := Gate{
		Force: true,
		Prompt: func(string) (string, error) {
			t.Fatal("prompt must not be called in force mode")
			return "", nil
		},
	}
	assert.True(t, gate.ShouldDelete("/data/foo"))
}

func TestGate_Answers(t *testing.T) {
	tests := []struct {
		answer string
		delete bool
	}{
		{"Y", true},
		{"y", true},
		{"  Y \n", true},
		{"N", false},
		{"n", false},
		{"", false},
		{"yes", false},
		{"\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			var events []Event
			gate := Gate{Prompt: answer(tt.answer), Emit: func(e Event) { events = append(events, e) }}

			assert.Equal(t, tt.delete, gate.ShouldDelete("/data/foo"))
			if tt.delete {
				assert.Empty(t, events)
			} else {
				assert.Equal(t, []Event{EventDeclined{Path: "/data/foo"}}, events)
			}
		})
	}
}

func TestGate_PromptErrorDeclines(t *testing.T) {
	var events []Event
	gate := Gate{
		Prompt: func(string) (string, error) { return "Y", errors.New("stdin closed") },
		Emit:   func(e Event) { events = append(events, e) },
	}
	assert.False(t, gate.ShouldDelete("/data/foo"))
	assert.Len(t, events, 1)
}

func TestGate_AsksForEveryPath(t *testing.T) {
	var asked []string
	gate := Gate{Prompt: func(path string) (string, error) {
		asked = append(asked, path)
		return "Y", nil
	}}

	assert.True(t, gate.ShouldDelete("/data/foo"))
	assert.True(t, gate.ShouldDelete("/data/foo"))
	assert.True(t, gate.ShouldDelete("/data/bar"))
	assert.Equal(t, []string{"/data/foo", "/data/foo", "/data/bar"}, asked)
}

func TestConsolePrompter(t *testing.T) {
	var out bytes.Buffer
	prompt := ConsolePrompter(strings.NewReader("Y\nn\nlast"), &out)

	response, err := prompt("/data/foo")
	require.NoError(t, err)
	assert.Equal(t, "Y\n", response)

	response, err = prompt("/data/bar")
	require.NoError(t, err)
	assert.Equal(t, "n\n", response)

	response, err = prompt("/data/baz")
	require.NoError(t, err)
	assert.Equal(t, "last", response)

	_, err = prompt("/data/qux")
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t,
		"Do you want to delete: /data/foo ? y/N "+
			"Do you want to delete: /data/bar ? y/N "+
			"Do you want to delete: /data/baz ? y/N "+
			"Do you want to delete: /data/qux ? y/N ",
		out.String(),
	)
}
