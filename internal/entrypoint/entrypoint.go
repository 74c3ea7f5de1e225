package entrypoint

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go_mdconv/internal/cli"
	"go_mdconv/internal/converr"
)

// Execute runs the command line in args (args[0] is the program name) with
// the process streams. Interrupts cancel the running command.
func Execute(args []string) (int, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Run(ctx, args, cli.Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr})
}

// Run is Execute with explicit streams and context.
func Run(ctx context.Context, args []string, streams cli.Streams) (int, error) {
	root := cli.NewRootCommand(streams)
	if len(args) > 0 {
		args = args[1:]
	}
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		return ExitCode(err), err
	}
	return 0, nil
}

// ExitCode maps err to the process exit status: 2 for usage and
// configuration problems, 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr cli.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if converr.Is(err, converr.TypeConfig) {
		return 2
	}
	return 1
}
