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

// Package sampler owns the periodic measurement loop: once per tick it
// combines the CPU and memory probes into a sample and appends it to the
// sample log.
package sampler

import (
	"context"
	"log/slog"
	"time"

	"github.com/runmeter/runmeter/internal/probe"
	"github.com/runmeter/runmeter/internal/samplelog"
	"github.com/runmeter/runmeter/pkg/metrics"
)

// Sampler drives the sampling loop for one run. The interval is fixed for
// the lifetime of the instance.
type Sampler struct {
	interval time.Duration
	log      *samplelog.Log
	cpu      *probe.CPUProbe
	mem      *probe.MemoryProbe
	logger   *slog.Logger
}

// New creates a sampler writing to the given log at the given interval.
func New(interval time.Duration, log *samplelog.Log, logger *slog.Logger) *Sampler {
	return &Sampler{
		interval: interval,
		log:      log,
		cpu:      probe.NewCPUProbe(logger),
		mem:      probe.NewMemoryProbe(),
		logger:   logger,
	}
}

// Run executes the sampling loop until the context is cancelled.
//
// An immediate sample is taken before the first tick so that even a
// zero-duration run produces one data point. A failed tick is logged and
// skipped; a single bad measurement or append must not end monitoring for
// the rest of the run.
func (s *Sampler) Run(ctx context.Context) error {
	s.logger.Info("Sampler running", "interval", s.interval, "log", s.log.Path())

	s.sampleOnce()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Sampler stopping")
			return nil

		case <-ticker.C:
			s.sampleOnce()
		}
	}
}

// sampleOnce measures CPU then memory, builds one sample and appends it.
func (s *Sampler) sampleOnce() {
	cpuPercent := s.cpu.Measure()

	memStat, err := s.mem.Measure()
	if err != nil {
		// Non-fatal: record the tick with memory zeroed.
		s.logger.Warn("Memory measurement failed", "error", err)
		memStat = metrics.MemoryStat{}
	}

	sample := metrics.Sample{
		Timestamp:     time.Now().UTC(),
		CPUPercent:    cpuPercent,
		MemoryUsedMB:  memStat.UsedMB,
		MemoryTotalMB: memStat.TotalMB,
		MemoryPercent: memStat.Percent,
	}

	if err := s.log.Append(sample); err != nil {
		s.logger.Warn("Failed to append sample, skipping tick", "error", err)
		return
	}

	s.logger.Debug("Sample appended",
		"cpu", sample.CPUPercent,
		"memory", sample.MemoryPercent,
	)
}
