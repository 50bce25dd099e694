package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskai/internal/config"
	"taskai/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskai help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, in io.Reader, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskai                                             List all tasks
  taskai list [common flags] [--status <s>] [--priority <p>] [--due <YYYY-MM-DD>] [--search <text>]
  taskai add [common flags] [--due <YYYY-MM-DD>] [--priority <p>] [--desc <text>] [--tag <t>]... <title...>
  taskai edit [common flags] [--title <t>] [--desc <text>] [--due <YYYY-MM-DD>] [--status <s>] [--priority <p>] [--tag <t>]... <ref>
  taskai done [common flags] <ref>
  taskai rm [common flags] <ref>
  taskai ask [common flags] <question...>
  taskai chat [common flags]
  taskai suggest [common flags] [--add] <description...>
  taskai summary [common flags]
  taskai signup [common flags] [--name <name>] <email>
  taskai login [common flags] [--google] [<email>]
  taskai logout [common flags]
  taskai whoami [common flags]
  taskai help
  taskai version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
