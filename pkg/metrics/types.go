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

package metrics

import "time"

// Sample represents one timestamped CPU and memory reading.
// Samples are immutable once written to the sample log.
type Sample struct {
	Timestamp     time.Time `json:"timestamp"`
	CPUPercent    float64   `json:"cpu_percent"`
	MemoryUsedMB  uint64    `json:"memory_used_mb"`
	MemoryTotalMB uint64    `json:"memory_total_mb"`
	MemoryPercent float64   `json:"memory_percent"`
}

// CPUSnapshot holds cumulative CPU tick counters for delta calculations.
// Counters are monotonically non-decreasing across reads of the same source.
type CPUSnapshot struct {
	IdleTicks  float64
	TotalTicks float64
}

// MemoryStat represents an instantaneous memory utilization reading.
type MemoryStat struct {
	UsedMB  uint64
	TotalMB uint64
	Percent float64
}

// Summary represents aggregated statistics over a sequence of samples.
// It is recomputed fresh on each aggregation, never persisted on its own.
type Summary struct {
	PeakCPUPercent    float64   `json:"peak_cpu_percent"`
	PeakMemoryPercent float64   `json:"peak_memory_percent"`
	AvgCPUPercent     float64   `json:"avg_cpu_percent"`
	AvgMemoryPercent  float64   `json:"avg_memory_percent"`
	SampleCount       int       `json:"sample_count"`
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time"`
}
