package commands

import (
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
	Register(&AskCmd{})
}

// AskCmd implements the ask command: a one-shot question against the
// task collection, answered by the keyword query engine.
type AskCmd struct{}

func (c *AskCmd) Name() string      { return "ask" }
func (c *AskCmd) Aliases() []string { return nil }
func (c *AskCmd) Synopsis() string  { return "Ask a question about your tasks" }
func (c *AskCmd) Usage() string     { return "taskai ask <question...>" }
func (c *AskCmd) NeedsAuth() bool   { return true }

func (c *AskCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AskCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, in io.Reader, out, errOut io.Writer) int {
	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		fmt.Fprintln(errOut, "error: question required")
		return exitcode.UserError
	}

	tasks, err := app.Service.ListTasks(ctx, service.Filters{})
	if err != nil {
		return writeError(errOut, err)
	}

	printAnswer(out, assist.Answer(question, tasks))
	return exitcode.Success
}
