package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"taskai/internal/assist"
	"taskai/internal/config"
	"taskai/internal/exitcode"
	"taskai/internal/output"
	"taskai/internal/service"
	"taskai/internal/session"
)

func init() {
	Register(&SuggestCmd{})
}

// SuggestCmd implements the suggest command: natural language in,
// structured task suggestions out. Uses the configured assistant and
// falls back to the local sampler when none is reachable.
type SuggestCmd struct {
	add bool
}

func (c *SuggestCmd) Name() string      { return "suggest" }
func (c *SuggestCmd) Aliases() []string { return nil }
func (c *SuggestCmd) Synopsis() string  { return "Turn a description into task suggestions" }
func (c *SuggestCmd) Usage() string     { return "taskai suggest [--add] <description...>" }
func (c *SuggestCmd) NeedsAuth() bool   { return true }

func (c *SuggestCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.add, "add", false, "")
}

func (c *SuggestCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, in io.Reader, out, errOut io.Writer) int {
	input := strings.TrimSpace(strings.Join(args, " "))
	if input == "" {
		fmt.Fprintln(errOut, "error: description required")
		return exitcode.UserError
	}

	var suggestions []service.Task
	if app.Assistant != nil {
		var err error
		suggestions, err = app.Assistant.SuggestTasks(ctx, input)
		if err != nil {
			if errors.Is(err, session.ErrSessionExpired) {
				return writeError(errOut, err)
			}
			fmt.Fprintf(errOut, "warning: assistant unavailable (%v), using local suggestions\n", err)
			suggestions = nil
		}
	}
	if suggestions == nil {
		suggestions = assist.SampleTasks(input, time.Now())
	}

	for i, task := range suggestions {
		output.FormatSuggestion(out, i+1, task)
	}

	if !c.add {
		return exitcode.Success
	}

	for _, task := range suggestions {
		draft := service.Draft{
			Title:       task.Title,
			Description: task.Description,
			DueDate:     task.DueDate,
			Priority:    task.Priority,
			Tags:        task.Tags,
		}
		if _, err := app.Service.CreateTask(ctx, draft); err != nil {
			return writeError(errOut, err)
		}
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "added %d task%s\n", len(suggestions), pluralSuffix(len(suggestions)))
	}
	return exitcode.Success
}

func pluralSuffix(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
