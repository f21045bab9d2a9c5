package ports

import (
	"context"
	"io"
)

// ShellRunner captures the standard output of a shell command.
type ShellRunner interface {
	Output(ctx context.Context, command string) (string, error)
}

// CommandExecutor runs a resolved command attached to the given streams
// and reports its exit code.
type CommandExecutor interface {
	Execute(ctx context.Context, command string, stdout, stderr io.Writer) (int, error)
}
