package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskai/internal/assist"
	"taskai/internal/config"
	"taskai/internal/exitcode"
	"taskai/internal/service"
)

func init() {
	Register(&ChatCmd{})
}

// ChatCmd implements the chat command: an interactive session with the
// query engine, keeping an append-only transcript for the session.
type ChatCmd struct{}

func (c *ChatCmd) Name() string      { return "chat" }
func (c *ChatCmd) Aliases() []string { return nil }
func (c *ChatCmd) Synopsis() string  { return "Chat about your tasks" }
func (c *ChatCmd) Usage() string     { return "taskai chat" }
func (c *ChatCmd) NeedsAuth() bool   { return true }

func (c *ChatCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ChatCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, in io.Reader, out, errOut io.Writer) int {
	transcript := assist.NewTranscript()
	printAnswer(out, assist.Greeting)
	fmt.Fprintln(out, `(type "exit" to leave)`)

	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Fprint(out, "> ")
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		transcript.Append(assist.SenderUser, line)

		// Refetch per question so answers never reflect a stale
		// collection.
		tasks, err := app.Service.ListTasks(ctx, service.Filters{})
		if err != nil {
			return writeError(errOut, err)
		}

		answer := assist.Answer(line, tasks)
		transcript.Append(assist.SenderAI, answer)
		printAnswer(out, answer)
		fmt.Fprint(out, "> ")
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
