package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionRoot(app *AppContext) *cobra.Command {
	root := &cobra.Command{Use: "cbsb"}
	root.AddCommand(PrintJSONCmd(app))
	root.AddCommand(PrintScriptCmd(app))
	root.AddCommand(CheckScriptCmd(app))
	root.AddCommand(ValidateJSONCmd(app))
	root.AddCommand(WatchCmd(app))
	root.AddCommand(InteractiveCmd(app))
	return root
}

func TestSessionCommands(t *testing.T) {
	app, _ := testApp(t, rulesCSV, "")

	commands := sessionCommands(sessionRoot(app))

	assert.Equal(t, []string{"checkScript", "printJSON", "printScript", "validateJSON"}, sortedNames(commands))
}

func TestRunSessionLine(t *testing.T) {
	app, _ := testApp(t, rulesCSV, "")
	commands := sessionCommands(sessionRoot(app))

	tests := []struct {
		name       string
		line       string
		wantDone   bool
		wantOut    string
		wantErrOut string
	}{
		{name: "blank line", line: "   "},
		{name: "exit", line: "exit", wantDone: true, wantOut: "Goodbye"},
		{name: "quit", line: "quit", wantDone: true, wantOut: "Goodbye"},
		{name: "help", line: "help", wantOut: "printScript"},
		{name: "unknown command", line: "publish", wantErrOut: "Unknown command: publish"},
		{name: "unclosed quote", line: `checkScript "saved.txt`, wantErrOut: "Error parsing command"},
		{name: "wrong arg count", line: "checkScript", wantErrOut: "accepts 1 arg(s)"},
		{name: "bad flag", line: "printScript --paste", wantErrOut: "Error parsing flags"},
		{name: "runs command", line: "printScript", wantOut: rulesScript},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			errOut := &bytes.Buffer{}

			done := runSessionLine(app, commands, tt.line, out, errOut)

			assert.Equal(t, tt.wantDone, done)
			if tt.wantOut != "" {
				assert.Contains(t, out.String(), tt.wantOut)
			}
			if tt.wantErrOut != "" {
				assert.Contains(t, errOut.String(), tt.wantErrOut)
			} else {
				assert.Empty(t, errOut.String())
			}
		})
	}
}

func TestRunSessionLine_QuotedArguments(t *testing.T) {
	app, _ := testApp(t, rulesCSV, "")
	commands := sessionCommands(sessionRoot(app))

	path := filepath.Join(t.TempDir(), "saved script.txt")
	require.NoError(t, os.WriteFile(path, []byte(rulesScript), 0644))

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	runSessionLine(app, commands, `checkScript "`+path+`"`, out, errOut)

	assert.Empty(t, errOut.String())
	assert.Contains(t, out.String(), "matches the grid")
}

func TestRunSessionLine_ResetsFlagsBetweenRuns(t *testing.T) {
	target := filepath.Join(t.TempDir(), "script.txt")
	app, alerts := testApp(t, rulesCSV, target+"\n")
	commands := sessionCommands(sessionRoot(app))

	runSessionLine(app, commands, "printScript --save", &bytes.Buffer{}, &bytes.Buffer{})
	require.FileExists(t, target)
	require.NoError(t, os.Remove(target))

	// --save must not carry over; the notifier has no answer left to give anyway
	runSessionLine(app, commands, "printScript", &bytes.Buffer{}, &bytes.Buffer{})
	assert.NoFileExists(t, target)
	assert.Equal(t, 1, bytes.Count(alerts.Bytes(), []byte("Script saved")))
}

func TestRunSessionLine_ReportsInvalidClause(t *testing.T) {
	broken := `CB Script Builder
Partner ID,1234
Advertiser ID,5678
Aggregation Method,max
,
,
,Weight,,Variable,Operator,Value
,100,,a,,1
`
	app, alerts := testApp(t, broken, "")
	commands := sessionCommands(sessionRoot(app))

	out := &bytes.Buffer{}
	done := runSessionLine(app, commands, "printScript", out, &bytes.Buffer{})

	assert.False(t, done)
	assert.Empty(t, out.String())
	assert.Contains(t, alerts.String(), "check row 8")
}
