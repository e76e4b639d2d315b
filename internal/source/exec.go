package source

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// runRaw executes a command and returns stdout untouched, for outputs where
// leading whitespace is significant (git porcelain status). Failures carry
// the command line and trimmed stderr; a cancelled context wins over the
// exec error.
func runRaw(ctx context.Context, dir, name string, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// run is runRaw with trimmed stdout, for single-value commands.
func run(ctx context.Context, dir, name string, args ...string) (string, error) {
	out, err := runRaw(ctx, dir, name, args...)
	return strings.TrimSpace(out), err
}

// runShell executes a command line through the shell, for custom panels.
func runShell(ctx context.Context, command string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%s: %w: %s", command, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
