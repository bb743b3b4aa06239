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

package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/runmeter/runmeter/internal/config"
	"github.com/runmeter/runmeter/internal/lifecycle"
	"github.com/runmeter/runmeter/internal/samplelog"
	"github.com/spf13/cobra"
)

var (
	startInterval time.Duration
	startDir      string
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start monitoring before a workload",
	Long: `Launch the detached background sampler and return immediately.

The sampler keeps running after this command exits. The handoff record
needed by 'runmeter stop' is printed to stdout and written to
<dir>/state.json as a durable backup.

Examples:
  # Sample once per second into the default scratch directory
  runmeter start

  # Custom interval and directory
  runmeter start --interval 5s --dir /tmp/build-run`,
	RunE: runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)

	startCmd.Flags().DurationVar(&startInterval, "interval", config.DefaultInterval,
		"Sampling interval (e.g., 1s, 5s, 1m)")
	startCmd.Flags().StringVar(&startDir, "dir", config.DefaultDir(),
		"Writable scratch directory for this run")
}

func runStart(cmd *cobra.Command, _ []string) error {
	cfg := &config.Config{
		Interval: startInterval,
		Dir:      startDir,
		Prefix:   config.DefaultPrefix,
		LogLevel: logLevel,
		LogFile:  logFile,
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := InitLogger(cfg.LogLevel, cfg.LogFile)

	// The scratch directory is the one fatal precondition of this phase.
	if err := cfg.EnsureDir(); err != nil {
		return err
	}

	pid, err := lifecycle.Launch(cfg.Interval, cfg.Dir, logger)
	if err != nil {
		return fmt.Errorf("failed to launch sampler: %w", err)
	}

	rec := samplelog.HandoffRecord{
		RunID:       uuid.New().String(),
		SamplesPath: samplelog.New(cfg.Dir).Path(),
		SamplerPID:  pid,
		StartTime:   time.Now().UTC(),
	}

	statePath, err := samplelog.WriteHandoff(cfg.Dir, rec)
	if err != nil {
		// Without a durable record the sampler would leak; stop it again.
		if terr := lifecycle.Terminate(pid, logger); terr != nil {
			logger.Warn("Failed to stop sampler after handoff failure", "error", terr)
		}
		return err
	}

	logger.Info("Monitoring started",
		"run_id", rec.RunID,
		"pid", pid,
		"interval", cfg.Interval,
		"state_file", statePath,
	)

	// The record on stdout is the ephemeral cross-phase channel; the file
	// written above is the fallback if this output is lost.
	out, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode handoff record: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	return nil
}
