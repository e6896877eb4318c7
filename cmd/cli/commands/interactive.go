package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mattn/go-shellwords"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// InteractiveCmd creates the interactive command
func InteractiveCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Start an interactive session (authenticate once, run multiple commands)",
		Long: `Start an interactive session where you can run multiple commands without re-authenticating.
The grid is reloaded for every command, so edits to the sheet are picked up.
The session will keep running until you type 'exit' or 'quit'.

Type 'help' to see available commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			commands := sessionCommands(cmd.Parent())

			items := make([]readline.PrefixCompleterInterface, 0, len(commands)+3)
			for _, name := range sortedNames(commands) {
				items = append(items, readline.PcItem(name))
			}
			items = append(items, readline.PcItem("help"), readline.PcItem("exit"), readline.PcItem("quit"))

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          "> ",
				HistoryFile:     filepath.Join(os.TempDir(), "cb_script_builder_history"),
				AutoComplete:    readline.NewPrefixCompleter(items...),
				InterruptPrompt: "^C",
				EOFPrompt:       "exit",
			})
			if err != nil {
				return fmt.Errorf("failed to create readline: %w", err)
			}
			defer rl.Close()

			out := cmd.OutOrStdout()
			errOut := cmd.ErrOrStderr()

			fmt.Fprintln(out, "\n🚀 Starting interactive session...")
			fmt.Fprintln(out, "Type 'help' for available commands, 'exit' or 'quit' to leave")

			for {
				line, err := rl.Readline()
				if errors.Is(err, readline.ErrInterrupt) {
					if line == "" {
						fmt.Fprintln(out, "👋 Goodbye!")
						return nil
					}
					continue
				}
				if errors.Is(err, io.EOF) {
					fmt.Fprintln(out, "👋 Goodbye!")
					return nil
				}
				if err != nil {
					return fmt.Errorf("error reading input: %w", err)
				}

				if done := runSessionLine(app, commands, line, out, errOut); done {
					return nil
				}
			}
		},
	}

	return cmd
}

// sessionCommands returns the root's subcommands that can be run inside a session
func sessionCommands(root *cobra.Command) map[string]*cobra.Command {
	commands := make(map[string]*cobra.Command)
	for _, subCmd := range root.Commands() {
		switch subCmd.Name() {
		case "interactive", "completion", "help", "watch":
			continue
		}
		commands[subCmd.Name()] = subCmd
	}
	return commands
}

// runSessionLine runs one line typed into the session and reports whether the session should end
func runSessionLine(app *AppContext, commands map[string]*cobra.Command, line string, out, errOut io.Writer) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	parts, err := shellwords.Parse(line)
	if err != nil {
		fmt.Fprintf(errOut, "❌ Error parsing command: %v\n\n", err)
		return false
	}
	if len(parts) == 0 {
		return false
	}
	cmdName := parts[0]
	cmdArgs := parts[1:]

	switch cmdName {
	case "exit", "quit":
		fmt.Fprintln(out, "👋 Goodbye!")
		return true
	case "help":
		printInteractiveHelp(out, commands)
		return false
	}

	targetCmd, exists := commands[cmdName]
	if !exists {
		fmt.Fprintf(errOut, "❌ Unknown command: %s (type 'help' for available commands)\n\n", cmdName)
		return false
	}

	// Flags keep their values between runs unless reset
	targetCmd.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
		flag.Value.Set(flag.DefValue)
	})

	// Run RunE directly so PersistentPreRunE does not initialise the app again
	if err := targetCmd.ParseFlags(cmdArgs); err != nil {
		fmt.Fprintf(errOut, "❌ Error parsing flags: %v\n\n", err)
		return false
	}

	cmdArgs = targetCmd.Flags().Args()

	if targetCmd.Args != nil {
		if err := targetCmd.Args(targetCmd, cmdArgs); err != nil {
			fmt.Fprintf(errOut, "❌ Error: %v\n\n", err)
			return false
		}
	}

	targetCmd.SetOut(out)
	targetCmd.SetErr(errOut)

	if targetCmd.RunE != nil {
		if err := targetCmd.RunE(targetCmd, cmdArgs); err != nil {
			ReportError(app, errOut, err)
			fmt.Fprintln(errOut)
		}
	} else if targetCmd.Run != nil {
		targetCmd.Run(targetCmd, cmdArgs)
	}

	return false
}

func sortedNames(commands map[string]*cobra.Command) []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func printInteractiveHelp(out io.Writer, commands map[string]*cobra.Command) {
	fmt.Fprintln(out, "\nAvailable commands:")

	for _, name := range sortedNames(commands) {
		cmd := commands[name]
		fmt.Fprintf(out, "  %-30s %s\n", cmd.Use, cmd.Short)
	}

	fmt.Fprintln(out, "\n  help                           Show this help message")
	fmt.Fprintln(out, "  exit, quit                     Exit the interactive session")
}
