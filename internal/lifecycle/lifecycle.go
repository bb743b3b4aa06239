/*
 * MIT License
 *
 * Copyright (c) 2026 The RunMeter Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package lifecycle launches the sampler as a detached OS process that
// survives its launcher's exit, and terminates it later by process id.
//
// Threads are deliberately not an option here: the launching process is
// expected to exit between the start and stop phases, so the sampler must
// be its own unit of execution with its own lifetime.
package lifecycle

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

const (
	// DrainWindow is the grace period after requesting termination, before
	// the sample log may be treated as final. It gives an in-flight append
	// time to complete; the append itself is atomic per line, so this only
	// protects the final data point, never file integrity.
	DrainWindow = 1 * time.Second

	// LogFileName is where the detached sampler writes its own diagnostics.
	LogFileName = "sampler.log"
)

// Launch starts the sampler as a detached process sampling into dir at the
// given interval, and returns its process id for later termination.
//
// The current executable is re-invoked with the hidden sample subcommand,
// placed in its own session / process group so it is not torn down when the
// caller or the caller's shell exits. Stdout and stderr go to the sampler
// log file inside dir.
func Launch(interval time.Duration, dir string, logger *slog.Logger) (int, error) {
	exe, err := os.Executable()
	if err != nil {
		return 0, fmt.Errorf("failed to resolve own executable: %w", err)
	}

	logPath := filepath.Join(dir, LogFileName)
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return 0, fmt.Errorf("failed to open sampler log file: %w", err)
	}
	defer logFile.Close()

	cmd := exec.Command(exe, "sample",
		"--interval", interval.String(),
		"--dir", dir,
	)
	cmd.Stdin = nil
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	detach(cmd)

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start sampler process: %w", err)
	}

	pid := cmd.Process.Pid

	// Release, don't Wait: the child is meant to outlive us.
	if err := cmd.Process.Release(); err != nil {
		logger.Warn("Failed to release sampler process handle", "pid", pid, "error", err)
	}

	logger.Info("Sampler launched", "pid", pid, "interval", interval, "dir", dir)
	return pid, nil
}

// Terminate requests a graceful stop of the sampler identified by pid.
//
// It is idempotent: a pid that no longer refers to a live process means the
// sampler already exited, which is a success, not an error. Callers should
// wait DrainWindow after Terminate before reading the sample log as final.
func Terminate(pid int, logger *slog.Logger) error {
	if pid <= 0 {
		return fmt.Errorf("invalid sampler pid %d", pid)
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		// No such process: already stopped.
		logger.Info("Sampler already stopped", "pid", pid)
		return nil
	}

	if err := signalStop(proc); err != nil {
		// Signalling a dead or reaped process fails; treat as already stopped.
		logger.Info("Sampler already stopped", "pid", pid, "detail", err)
		return nil
	}

	logger.Info("Sampler termination requested", "pid", pid)
	return nil
}
