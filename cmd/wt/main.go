package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/easy-worktree/wt/commands"
	"github.com/easy-worktree/wt/i18n"
	"github.com/easy-worktree/wt/logger"
)

func main() {
	if err := run(); err != nil {
		// Passthrough failures keep git worktree's exit status; git has
		// already reported on stderr.
		var exitErr commands.ExitCodeError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, i18n.T("error", err))
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	defer logger.Close()
	return commands.New().ExecuteContext(ctx)
}
