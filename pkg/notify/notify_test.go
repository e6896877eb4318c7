package notify

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlain_Alert(t *testing.T) {
	var out bytes.Buffer
	n := NewPlain(strings.NewReader(""), &out)

	require.NoError(t, n.Alert("hello"))
	assert.Equal(t, "hello\n", out.String())
}

func TestPlain_PromptYesNo(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"y", "y\n", true},
		{"yes upper case", "YES\n", true},
		{"yes with spaces", "  yes  \n", true},
		{"no", "n\n", false},
		{"empty line", "\n", false},
		{"anything else", "sure\n", false},
		{"end of input", "", false},
		{"no trailing newline", "y", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			n := NewPlain(strings.NewReader(tt.input), &out)

			got, err := n.PromptYesNo(context.Background(), "Copy?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Copy? [y/N] ", out.String())
		})
	}
}

func TestPlain_PromptText(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"answer", "script.py\n", "script.py", true},
		{"trimmed", "  out/script.py \n", "out/script.py", true},
		{"empty answer cancels", "\n", "", false},
		{"end of input cancels", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewPlain(strings.NewReader(tt.input), &bytes.Buffer{})

			got, ok, err := n.PromptText(context.Background(), "Save to:")
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlain_SequentialPrompts(t *testing.T) {
	n := NewPlain(strings.NewReader("yes\nscript.py\n"), &bytes.Buffer{})

	yes, err := n.PromptYesNo(context.Background(), "Save?")
	require.NoError(t, err)
	assert.True(t, yes)

	path, ok, err := n.PromptText(context.Background(), "Path:")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "script.py", path)
}

func TestPlain_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n := NewPlain(strings.NewReader("y\n"), &bytes.Buffer{})
	_, err := n.PromptYesNo(ctx, "Copy?")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTerminal_Alert(t *testing.T) {
	var out bytes.Buffer
	n := NewTerminal(&out)

	require.NoError(t, n.Alert("done"))
	assert.Equal(t, "done\n", out.String())
}
