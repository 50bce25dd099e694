// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"taskai/internal/config"
	"taskai/internal/exitcode"
	"taskai/internal/service"
	"taskai/internal/session"
)

// App bundles the collaborators commands run against.
type App struct {
	// Session owns the token lifecycle and the authenticated HTTP
	// client.
	Session *session.Manager

	// Service is the persistence backend.
	Service service.Service

	// Assistant is the AI backend, nil when none is configured.
	Assistant service.Assistant
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command requires a stored session.
	// Commands like help, version, login, signup return false.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, URLs).
	// app is always provided; app.Assistant may be nil.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, app *App, args []string, in io.Reader, out, errOut io.Writer) int
}

// writeError prints a backend call error and returns the matching exit
// code.
func writeError(errOut io.Writer, err error) int {
	switch {
	case errors.Is(err, session.ErrSessionExpired):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	case strings.Contains(err.Error(), "not found"), strings.Contains(err.Error(), "out of range"):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}

// printAnswer writes an engine answer, ensuring a trailing newline.
func printAnswer(out io.Writer, answer string) {
	fmt.Fprint(out, answer)
	if !strings.HasSuffix(answer, "\n") {
		fmt.Fprintln(out)
	}
}

// resolveTask resolves a task reference: either a 1-based position in
// the unfiltered list, or a server-issued task ID.
func resolveTask(ctx context.Context, svc service.Service, ref string) (service.Task, error) {
	tasks, err := svc.ListTasks(ctx, service.Filters{})
	if err != nil {
		return service.Task{}, err
	}

	if isAllDigits(ref) {
		num, err := strconv.Atoi(ref)
		if err != nil || num < 1 || num > len(tasks) {
			return service.Task{}, fmt.Errorf("task number out of range: %s", ref)
		}
		return tasks[num-1], nil
	}

	for _, t := range tasks {
		if t.ID == ref {
			return t, nil
		}
	}
	return service.Task{}, fmt.Errorf("task not found: %s", ref)
}

// isAllDigits checks if a string consists only of ASCII digits.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseDue parses a YYYY-MM-DD due date in the local time zone.
func parseDue(s string) (*time.Time, error) {
	due, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid due date (want YYYY-MM-DD): %s", s)
	}
	return &due, nil
}

// stringList collects repeated flag values.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}
