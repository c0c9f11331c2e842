// Package shell spawns interactive subshells inside a selected working copy.
package shell

import (
	"context"
	"fmt"
	"io"
	"os"

	wexec "github.com/easy-worktree/wt/exec"
	"github.com/easy-worktree/wt/logger"
)

// SessionEnvVar carries the selected worktree name into the subshell and any
// processes it starts. wt current reads it back.
const SessionEnvVar = "WT_SESSION_NAME"

// DefaultShell returns the user's login shell from $SHELL, falling back to
// /bin/sh when unset.
func DefaultShell() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}

// CurrentSession returns the worktree name of the enclosing wt select
// session, or empty when not inside one.
func CurrentSession() string {
	return os.Getenv(SessionEnvVar)
}

// SetTerminalTitle writes the xterm title escape sequence to w. Callers are
// expected to only do this when w is a terminal.
func SetTerminalTitle(w io.Writer, title string) {
	fmt.Fprintf(w, "\033]0;%s\007", title)
}

// Spawn starts an interactive shell in dir with the session name exported.
// Blocks until the shell exits; the shell's exit error is returned as-is so
// callers can forward its status.
func Spawn(ctx context.Context, executor wexec.CommandExecutor, dir, name string) error {
	log := logger.WithComponent("shell")
	sh := DefaultShell()

	log.Info("spawning subshell", "shell", sh, "dir", dir, "session", name)
	err := executor.Interactive(ctx, dir, []string{SessionEnvVar + "=" + name}, sh)
	log.Info("subshell exited", "session", name, "error", err)
	return err
}
