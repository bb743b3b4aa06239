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

// Package sysinfo describes the host the samples were taken on.
package sysinfo

import (
	"log/slog"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// Info holds the static host facts embedded in the JSON summary.
type Info struct {
	CPUCores      int    `json:"cpu_cores"`
	CPUModel      string `json:"cpu_model"`
	MemoryTotalMB uint64 `json:"memory_total_mb"`
	Platform      string `json:"platform"`
	Arch          string `json:"arch"`
}

// Collect gathers host facts. Individual lookups that fail degrade to zero
// values rather than failing the whole collection; host description is
// best-effort context, never load-bearing.
func Collect(logger *slog.Logger) Info {
	info := Info{
		Platform: runtime.GOOS,
		Arch:     runtime.GOARCH,
	}

	if cores, err := cpu.Counts(true); err == nil {
		info.CPUCores = cores
	} else {
		logger.Warn("Failed to detect core count", "error", err)
	}

	if cpus, err := cpu.Info(); err == nil && len(cpus) > 0 {
		info.CPUModel = cpus[0].ModelName
	} else if err != nil {
		logger.Warn("Failed to read CPU model", "error", err)
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		info.MemoryTotalMB = vm.Total / 1024 / 1024
	} else {
		logger.Warn("Failed to read total memory", "error", err)
	}

	if h, err := host.Info(); err == nil && h.Platform != "" {
		info.Platform = h.Platform
	}

	return info
}
