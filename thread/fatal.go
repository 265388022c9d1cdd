package thread

import (
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
)

var (
	exit                  = os.Exit
	diagnostics io.Writer = os.Stderr

	fatalColor = color.New(color.FgRed, color.Bold)
)

// fatal reports a broken barrier primitive and terminates the process.
func fatal(logger *slog.Logger, op string, err error) {
	logger.Error("barrier primitive failed", "op", op, "err", err, "code", Code(err))
	_, _ = fatalColor.Fprintf(diagnostics, "threadme: fatal: barrier %s: %v\n", op, err)
	exit(2)
}
