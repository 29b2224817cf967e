package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Runner is an application entry point returning a process exit code.
type Runner func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

// ExitCanceled is returned when a signal (or the parent context) stopped
// a run that would otherwise have exited 0.
const ExitCanceled = 130

// Main runs run on the process arguments and exits with its code.
func Main(run Runner) {
	os.Exit(Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr, run))
}

// Execute runs run under a context cancelled by SIGINT or SIGTERM. Empty
// argv asks for help.
func Execute(parent context.Context, argv []string, stdout, stderr io.Writer, run Runner) int {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(argv) == 0 {
		argv = []string{"-h"}
	}
	code := run(ctx, argv, stdout, stderr)
	if ctx.Err() != nil && code == 0 {
		code = ExitCanceled
	}
	return code
}
