package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskai/internal/config"
	"taskai/internal/exitcode"
	"taskai/internal/service"
)

func init() {
	Register(&SummaryCmd{})
}

// SummaryCmd implements the summary command.
type SummaryCmd struct{}

func (c *SummaryCmd) Name() string      { return "summary" }
func (c *SummaryCmd) Aliases() []string { return nil }
func (c *SummaryCmd) Synopsis() string  { return "Print a weekly summary of your tasks" }
func (c *SummaryCmd) Usage() string     { return "taskai summary" }
func (c *SummaryCmd) NeedsAuth() bool   { return true }

func (c *SummaryCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *SummaryCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, in io.Reader, out, errOut io.Writer) int {
	if app.Assistant == nil {
		fmt.Fprintln(errOut, "error: no AI backend configured (set ai_url or openai_key in config.yaml)")
		return exitcode.UserError
	}

	tasks, err := app.Service.ListTasks(ctx, service.Filters{})
	if err != nil {
		return writeError(errOut, err)
	}

	summary, err := app.Assistant.WeeklySummary(ctx, tasks)
	if err != nil {
		return writeError(errOut, err)
	}
	if summary == "" {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no summary available for this week")
		}
		return exitcode.Success
	}

	printAnswer(out, summary)
	return exitcode.Success
}
