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
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/runmeter/runmeter/internal/config"
	"github.com/runmeter/runmeter/internal/lifecycle"
	"github.com/runmeter/runmeter/internal/samplelog"
	"github.com/runmeter/runmeter/internal/sampler"
	"github.com/spf13/cobra"
)

var (
	sampleInterval time.Duration
	sampleDir      string
)

// sampleCmd is the detached sampler process entrypoint. It is launched by
// the lifecycle package, never invoked by users, hence hidden.
var sampleCmd = &cobra.Command{
	Use:    "sample",
	Short:  "Run the sampling loop (internal)",
	Hidden: true,
	RunE:   runSample,
}

func init() {
	rootCmd.AddCommand(sampleCmd)

	sampleCmd.Flags().DurationVar(&sampleInterval, "interval", config.DefaultInterval,
		"Sampling interval")
	sampleCmd.Flags().StringVar(&sampleDir, "dir", "",
		"Run directory containing the sample log")
	_ = sampleCmd.MarkFlagRequired("dir")
}

func runSample(_ *cobra.Command, _ []string) error {
	logger := samplerLogger(sampleDir)

	log := samplelog.New(sampleDir)
	s := sampler.New(sampleInterval, log, logger)

	// Termination is cooperative: the stop phase signals this process and
	// the context cancellation ends the loop between ticks.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info("Received signal, stopping sampler", "signal", sig.String())
		cancel()
	}()

	return s.Run(ctx)
}

// samplerLogger logs to the sampler log file inside the run directory; the
// detached process has no terminal to log to.
func samplerLogger(dir string) *slog.Logger {
	path := filepath.Join(dir, lifecycle.LogFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open sampler log file: %v\n", err)
		return slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}

	return slog.New(slog.NewJSONHandler(f, nil))
}
