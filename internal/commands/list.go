package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskai/internal/config"
	"taskai/internal/exitcode"
	"taskai/internal/output"
	"taskai/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
type ListCmd struct {
	status   string
	priority string
	search   string
	due      string
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "taskai list [--status <s>] [--priority <p>] [--search <text>] [--due <YYYY-MM-DD>]"
}
func (c *ListCmd) NeedsAuth() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.due, "due", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, in io.Reader, out, errOut io.Writer) int {
	filters, err := c.filters()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	tasks, err := app.Service.ListTasks(ctx, filters)
	if err != nil {
		return writeError(errOut, err)
	}

	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	for i, task := range tasks {
		output.FormatTask(out, i+1, task)
	}
	return exitcode.Success
}

// filters builds service filters from the flags. Absent flags leave
// their dimension unfiltered.
func (c *ListCmd) filters() (service.Filters, error) {
	var filters service.Filters

	if c.status != "" {
		status, err := service.ParseStatus(c.status)
		if err != nil {
			return service.Filters{}, err
		}
		filters.Status = status
	}
	if c.priority != "" {
		priority, err := service.ParsePriority(c.priority)
		if err != nil {
			return service.Filters{}, err
		}
		filters.Priority = priority
	}
	if c.due != "" {
		due, err := parseDue(c.due)
		if err != nil {
			return service.Filters{}, err
		}
		filters.DueDate = due
	}
	filters.Search = c.search
	return filters, nil
}
