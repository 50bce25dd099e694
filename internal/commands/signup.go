package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskai/internal/config"
	"taskai/internal/exitcode"
	"taskai/internal/session"
)

func init() {
	Register(&SignupCmd{})
}

// SignupCmd implements the signup command.
type SignupCmd struct {
	email    string
	password string
	name     string
}

func (c *SignupCmd) Name() string      { return "signup" }
func (c *SignupCmd) Aliases() []string { return nil }
func (c *SignupCmd) Synopsis() string  { return "Create an account and sign in" }
func (c *SignupCmd) Usage() string {
	return "taskai signup --email <email> [--password <password>] [--name <name>]"
}
func (c *SignupCmd) NeedsAuth() bool { return false }

func (c *SignupCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
	fs.StringVar(&c.name, "name", "", "")
}

func (c *SignupCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, in io.Reader, out, errOut io.Writer) int {
	email := strings.TrimSpace(c.email)
	if email == "" && len(args) > 0 {
		email = strings.TrimSpace(args[0])
	}
	if email == "" {
		fmt.Fprintln(errOut, "error: email required")
		return exitcode.UserError
	}

	password := c.password
	if password == "" {
		var err error
		password, err = promptLine(in, errOut, "Password: ")
		if err != nil {
			fmt.Fprintln(errOut, "error: password required")
			return exitcode.UserError
		}
	}

	user, err := app.Session.Signup(ctx, email, password, c.name)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			fmt.Fprintln(errOut, "error: signup rejected")
			return exitcode.AuthError
		}
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "signed up as %s\n", user.Email)
	}
	return exitcode.Success
}
