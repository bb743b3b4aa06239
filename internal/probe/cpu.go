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

// Package probe measures host CPU and memory utilization with an OS-specific
// strategy per platform and a universal load-average fallback.
package probe

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/runmeter/runmeter/pkg/metrics"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"
)

const (
	// snapshotGap separates the two counter reads of the first differential
	// measurement, before a previous tick's snapshot exists as baseline.
	snapshotGap = 100 * time.Millisecond

	// utilityTimeout bounds the wait for platform utility invocations.
	utilityTimeout = 150 * time.Millisecond
)

// topCPUPattern matches the "CPU usage" line of `top -l 1` output on macOS,
// e.g. "CPU usage: 6.45% user, 12.9% sys, 80.64% idle".
var topCPUPattern = regexp.MustCompile(`CPU usage:\s*([\d.]+)%\s*user,\s*([\d.]+)%\s*sys`)

// CPUProbe measures aggregate CPU busy percentage.
//
// On Linux it performs differential measurement over cumulative tick
// counters; the previous snapshot is held per probe instance, so multiple
// probes never interfere. On macOS and Windows it invokes a platform
// utility and parses its output. Any measurement failure falls back to a
// load-average approximation.
type CPUProbe struct {
	prev      metrics.CPUSnapshot
	hasPrev   bool
	lastValue float64
	cores     int
	logger    *slog.Logger
}

// NewCPUProbe creates a CPU probe instance.
func NewCPUProbe(logger *slog.Logger) *CPUProbe {
	cores, err := cpu.Counts(true)
	if err != nil || cores < 1 {
		logger.Warn("Failed to detect logical core count, assuming runtime value", "error", err)
		cores = runtime.NumCPU()
	}

	return &CPUProbe{
		cores:  cores,
		logger: logger,
	}
}

// Cores returns the detected logical core count.
func (p *CPUProbe) Cores() int {
	return p.cores
}

// Measure returns the aggregate CPU busy percentage, rounded to one decimal.
// The result is never negative and never exceeds 100 × core count. Failures
// of the platform strategy are recovered locally via the load-average
// fallback; Measure itself never fails.
func (p *CPUProbe) Measure() float64 {
	var (
		value float64
		err   error
	)

	switch runtime.GOOS {
	case "linux":
		value, err = p.measureLinux()
	case "darwin":
		value, err = p.measureDarwin()
	case "windows":
		value, err = p.measureWindows()
	default:
		err = fmt.Errorf("no native CPU strategy for %s", runtime.GOOS)
	}

	if err != nil {
		p.logger.Warn("Native CPU measurement failed, using load average (degraded accuracy)",
			"os", runtime.GOOS, "error", err)
		value = p.loadAverageFallback()
	}

	value = p.clamp(value)
	p.lastValue = value
	return value
}

// measureLinux performs differential measurement over the cumulative tick
// counters exposed by the kernel. The first call reads the counters twice
// with a short gap; later calls reuse the previous call's snapshot as
// baseline, so the effective window is the sampling interval itself.
func (p *CPUProbe) measureLinux() (float64, error) {
	if !p.hasPrev {
		first, err := readCPUSnapshot()
		if err != nil {
			return 0, err
		}
		time.Sleep(snapshotGap)
		p.prev = first
		p.hasPrev = true
	}

	current, err := readCPUSnapshot()
	if err != nil {
		return 0, err
	}

	value := metrics.CPUUtilizationBetween(p.prev, current)
	if current.TotalTicks-p.prev.TotalTicks <= 0 {
		// Counters did not advance; report the last-known value.
		value = p.lastValue
	}
	p.prev = current

	return value, nil
}

// measureDarwin sums the user and system percentages reported by `top` for
// the whole machine.
func (p *CPUProbe) measureDarwin() (float64, error) {
	out, err := runUtility("top", "-l", "1", "-n", "0")
	if err != nil {
		return 0, err
	}

	m := topCPUPattern.FindStringSubmatch(out)
	if m == nil {
		return 0, fmt.Errorf("no CPU usage line in top output")
	}

	user, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse user percentage: %w", err)
	}
	system, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse sys percentage: %w", err)
	}

	return metrics.Round1(user + system), nil
}

// measureWindows parses the system-wide load percentage reported by wmic as
// key=value output.
func (p *CPUProbe) measureWindows() (float64, error) {
	out, err := runUtility("wmic", "cpu", "get", "loadpercentage", "/value")
	if err != nil {
		return 0, err
	}

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "LoadPercentage=") {
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimPrefix(line, "LoadPercentage="), 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse load percentage: %w", err)
		}
		return metrics.Round1(value), nil
	}

	return 0, fmt.Errorf("no LoadPercentage field in wmic output")
}

// loadAverageFallback approximates utilization from the 1-minute load
// average divided by the logical core count. This is coarser than the
// native strategies and is only used when they fail.
func (p *CPUProbe) loadAverageFallback() float64 {
	avg, err := load.Avg()
	if err != nil {
		p.logger.Warn("Load average unavailable, reporting last-known value", "error", err)
		return p.lastValue
	}

	return metrics.Round1(avg.Load1 / float64(p.cores) * 100.0)
}

// clamp enforces the numeric policy: never negative, never above
// 100 × core count. The value is deliberately not capped at 100 so that
// multi-core saturation stays visible to callers.
func (p *CPUProbe) clamp(value float64) float64 {
	if value < 0 {
		return 0
	}
	if max := 100.0 * float64(p.cores); value > max {
		return max
	}
	return value
}

// readCPUSnapshot reads the cumulative tick counters aggregated across all
// CPUs. Idle includes iowait since waiting on I/O is not busy time.
func readCPUSnapshot() (metrics.CPUSnapshot, error) {
	times, err := cpu.Times(false)
	if err != nil {
		return metrics.CPUSnapshot{}, fmt.Errorf("failed to read CPU times: %w", err)
	}
	if len(times) == 0 {
		return metrics.CPUSnapshot{}, fmt.Errorf("no CPU time stats available")
	}

	t := times[0]
	idle := t.Idle + t.Iowait
	total := t.User + t.System + t.Idle + t.Iowait + t.Nice + t.Irq + t.Softirq + t.Steal

	return metrics.CPUSnapshot{IdleTicks: idle, TotalTicks: total}, nil
}

// runUtility executes a platform utility with a bounded wait and returns
// its combined output.
func runUtility(name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), utilityTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return "", fmt.Errorf("%s failed: %w", name, err)
	}

	return string(out), nil
}
