package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskai/internal/config"
	"taskai/internal/exitcode"
	"taskai/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	due      string
	priority string
	desc     string
	tags     stringList
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskai add [--due <YYYY-MM-DD>] [--priority <p>] [--desc <text>] [--tag <t>]... <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.due, "due", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.desc, "desc", "", "")
	fs.Var(&c.tags, "tag", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, in io.Reader, out, errOut io.Writer) int {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	draft := service.Draft{
		Title:       title,
		Description: c.desc,
		Tags:        c.tags,
	}
	if c.priority != "" {
		priority, err := service.ParsePriority(c.priority)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		draft.Priority = priority
	}
	if c.due != "" {
		due, err := parseDue(c.due)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		draft.DueDate = due
	}

	if _, err := app.Service.CreateTask(ctx, draft); err != nil {
		return writeError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
