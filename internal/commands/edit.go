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
	Register(&EditCmd{})
}

// EditCmd implements the edit command, a partial task update.
type EditCmd struct {
	title    string
	desc     string
	due      string
	status   string
	priority string
	tags     stringList
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Update a task" }
func (c *EditCmd) Usage() string {
	return "taskai edit [--title <t>] [--desc <text>] [--due <YYYY-MM-DD>] [--status <s>] [--priority <p>] [--tag <t>]... <ref>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.title, "title", "", "")
	fs.StringVar(&c.desc, "desc", "", "")
	fs.StringVar(&c.due, "due", "", "")
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.Var(&c.tags, "tag", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, in io.Reader, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: task reference required")
		return exitcode.UserError
	}

	patch, err := c.patch()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if patch.Title == nil && patch.Description == nil && patch.DueDate == nil &&
		patch.Status == nil && patch.Priority == nil && len(c.tags) == 0 {
		fmt.Fprintln(errOut, "error: nothing to update")
		return exitcode.UserError
	}
	patch.Tags = c.tags

	task, err := resolveTask(ctx, app.Service, args[0])
	if err != nil {
		return writeError(errOut, err)
	}

	if _, err := app.Service.UpdateTask(ctx, task.ID, patch); err != nil {
		return writeError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// patch builds a partial update from the flags that were set.
func (c *EditCmd) patch() (service.Patch, error) {
	var patch service.Patch

	if c.title != "" {
		patch.Title = &c.title
	}
	if c.desc != "" {
		patch.Description = &c.desc
	}
	if c.due != "" {
		due, err := parseDue(c.due)
		if err != nil {
			return service.Patch{}, err
		}
		patch.DueDate = due
	}
	if c.status != "" {
		status, err := service.ParseStatus(c.status)
		if err != nil {
			return service.Patch{}, err
		}
		patch.Status = &status
	}
	if c.priority != "" {
		priority, err := service.ParsePriority(c.priority)
		if err != nil {
			return service.Patch{}, err
		}
		patch.Priority = &priority
	}
	return patch, nil
}
