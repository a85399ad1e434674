package action

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sync"
	"time"

	"github.com/reugn/go-every/every"
	"github.com/reugn/go-every/logger"
)

// Shell runs a shell command each time its schedule fires.
// The command is executed using bash if available; otherwise, sh is used.
type Shell struct {
	mtx      sync.Mutex
	cmd      string
	logger   logger.Logger
	exitCode int
	stdout   string
	stderr   string
	status   Status
	runs     int
}

// NewShell returns a new Shell action for the given command.
func NewShell(cmd string, l logger.Logger) *Shell {
	if l == nil {
		l = logger.NoOpLogger{}
	}
	return &Shell{
		cmd:    cmd,
		logger: l,
		status: StatusNA,
	}
}

// Action returns the every.Action running the command.
func (sh *Shell) Action() every.Action {
	return sh.Run
}

// Description returns the description of the Shell action.
func (sh *Shell) Description() string {
	return fmt.Sprintf("Shell::%s", sh.cmd)
}

var (
	shellOnce sync.Once
	shellPath = "bash"
)

func getShell() string {
	shellOnce.Do(func() {
		if _, err := exec.LookPath("/bin/bash"); err != nil {
			shellPath = "sh"
		}
	})
	return shellPath
}

// Run executes the command, blocking until it exits or ctx is done.
func (sh *Shell) Run(ctx context.Context, fireTime time.Time) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, getShell(), "-c", sh.cmd)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	sh.mtx.Lock()
	defer sh.mtx.Unlock()
	sh.runs++
	sh.stdout, sh.stderr = stdout.String(), stderr.String()
	sh.exitCode = -1
	if cmd.ProcessState != nil {
		sh.exitCode = cmd.ProcessState.ExitCode()
	}
	if err != nil {
		sh.status = StatusFailure
		sh.logger.Warn("Command failed.", "cmd", sh.cmd, "fire_time", fireTime,
			"exit_code", sh.exitCode, "error", err)
		return
	}
	sh.status = StatusOK
	sh.logger.Debug("Command completed.", "cmd", sh.cmd, "fire_time", fireTime)
}

// ExitCode returns the exit code of the latest run.
func (sh *Shell) ExitCode() int {
	sh.mtx.Lock()
	defer sh.mtx.Unlock()
	return sh.exitCode
}

// Stdout returns the captured stdout of the latest run.
func (sh *Shell) Stdout() string {
	sh.mtx.Lock()
	defer sh.mtx.Unlock()
	return sh.stdout
}

// Stderr returns the captured stderr of the latest run.
func (sh *Shell) Stderr() string {
	sh.mtx.Lock()
	defer sh.mtx.Unlock()
	return sh.stderr
}

// Status returns the status of the latest run.
func (sh *Shell) Status() Status {
	sh.mtx.Lock()
	defer sh.mtx.Unlock()
	return sh.status
}

// Runs returns the number of completed runs.
func (sh *Shell) Runs() int {
	sh.mtx.Lock()
	defer sh.mtx.Unlock()
	return sh.runs
}
