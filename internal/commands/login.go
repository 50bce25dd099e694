package commands

import (
	"bufio"
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
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	email    string
	password string
	google   bool
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Sign in" }
func (c *LoginCmd) Usage() string {
	return "taskai login [--email <email>] [--password <password>] [--google]"
}
func (c *LoginCmd) NeedsAuth() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
	fs.BoolVar(&c.google, "google", false, "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, in io.Reader, out, errOut io.Writer) int {
	if c.google {
		user, err := app.Session.GoogleLogin(ctx, errOut)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.AuthError
		}
		if !cfg.Quiet {
			fmt.Fprintf(out, "logged in as %s\n", user.Email)
		}
		return exitcode.Success
	}

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

	user, err := app.Session.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			fmt.Fprintln(errOut, "error: invalid credentials")
			return exitcode.AuthError
		}
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "logged in as %s\n", user.Email)
	}
	return exitcode.Success
}

// promptLine prints a prompt to errOut and reads one line from in.
func promptLine(in io.Reader, errOut io.Writer, prompt string) (string, error) {
	fmt.Fprint(errOut, prompt)
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	line := strings.TrimSpace(scanner.Text())
	if line == "" {
		return "", io.EOF
	}
	return line, nil
}
