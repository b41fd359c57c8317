// Package process starts a child executable with bidirectional pipes and
// exposes its I/O as events the uciengine driver can multiplex (§4.10,
// C10). It is the one layer where the stdlib, not a pack dependency, is
// the right tool: os/exec already is Go's idiomatic process-management
// API and no third-party library in the retrieval pack supersedes it.
package process

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"golang.org/x/sys/unix"

	"github.com/rookwing/chesscore/event"
)

// Process is a running child with pipes for its stdin/stdout.
type Process struct {
	cmd      *exec.Cmd
	stdin    io.WriteCloser
	stdout   *os.File
	readyEvt *event.Event
}

// Load starts exe (with an optional working directory) and returns a
// handle exposing its pid and a file-readable event over its stdout.
func Load(name, exe, workdir string) (*Process, error) {
	cmd := exec.Command(exe)
	if workdir != "" {
		cmd.Dir = workdir
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("process: %s: stdin pipe: %w", name, err)
	}
	stdoutPipe, stdoutFile, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("process: %s: stdout pipe: %w", name, err)
	}
	cmd.Stdout = stdoutFile
	cmd.Stderr = stdoutFile

	if err := cmd.Start(); err != nil {
		stdoutFile.Close()
		stdoutPipe.Close()
		return nil, fmt.Errorf("process: %s: start %s: %w", name, exe, err)
	}
	stdoutFile.Close() // the child owns its write end now

	return &Process{
		cmd:      cmd,
		stdin:    stdin,
		stdout:   stdoutPipe,
		readyEvt: event.NewFileEvent(stdoutPipe),
	}, nil
}

// Stdin returns the child's stdin for writing commands.
func (p *Process) Stdin() io.Writer { return p.stdin }

// Stdout returns the child's combined stdout/stderr for reading replies.
func (p *Process) Stdout() io.Reader { return p.stdout }

// StdoutEvent returns the file-readable event signalled when the child's
// stdout has data (or has hung up), for use with event.Waiter.
func (p *Process) StdoutEvent() *event.Event { return p.readyEvt }

// Pid returns the child's process id.
func (p *Process) Pid() int { return p.cmd.Process.Pid }

// SetPriority lowers (background=true) or restores the child's scheduling
// priority, using the platform priority API behind golang.org/x/sys/unix.
func (p *Process) SetPriority(background bool) error {
	nice := 0
	if background {
		nice = 10
	}
	if err := unix.Setpriority(unix.PRIO_PROCESS, p.cmd.Process.Pid, nice); err != nil {
		return fmt.Errorf("process: set priority: %w", err)
	}
	return nil
}

// Unload closes the child's pipes and waits for it to exit, killing it
// after timeout if it hasn't.
func (p *Process) Unload(timeout time.Duration) error {
	p.stdin.Close()
	p.stdout.Close()

	done := make(chan error, 1)
	go func() { done <- p.cmd.Wait() }()

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		_ = p.cmd.Process.Kill()
		<-done
		return fmt.Errorf("process: pid %d forcibly terminated after %s", p.Pid(), timeout)
	}
}
