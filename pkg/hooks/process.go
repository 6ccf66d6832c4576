package hooks

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"
)

// ProcessExecutor runs hooks as child processes. Output is streamed to
// Stdout and Stderr (discarded when nil) and captured for error reports.
type ProcessExecutor struct {
	Timeout time.Duration
	Stdout  io.Writer
	Stderr  io.Writer
}

var _ Executor = ProcessExecutor{}

// waitDelay bounds how long output pipes are drained after a hook is killed
const waitDelay = 2 * time.Second

func (p ProcessExecutor) Run(ctx context.Context, inv Invocation) (ExitResult, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, inv.Path)
	cmd.Dir = inv.Dir
	cmd.Env = append(cmd.Environ(), inv.Env...)
	cmd.Stdin = bytes.NewReader(inv.Stdin)
	cmd.WaitDelay = waitDelay

	captured := &lockedBuffer{}
	cmd.Stdout = io.MultiWriter(captured, orDiscard(p.Stdout))
	cmd.Stderr = io.MultiWriter(captured, orDiscard(p.Stderr))

	err := cmd.Run()
	res := ExitResult{Output: captured.Bytes()}

	if ctxErr := ctx.Err(); ctxErr != nil {
		res.Code = -1
		return res, fmt.Errorf("hook %s: %w", inv.Path, ctxErr)
	}
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			res.Code = exitErr.ExitCode()
			return res, nil
		}
		return res, err
	}
	return res, nil
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

// lockedBuffer is written from both the stdout and stderr copy goroutines
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.buf.Bytes()...)
}
