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

// Package aggregate reduces a raw sample stream into summary statistics and
// renders the visual report.
package aggregate

import (
	"errors"
	"math"

	"github.com/runmeter/runmeter/pkg/metrics"
)

// ErrNoSamples is returned when summarization is attempted on an empty
// sequence. Callers must special-case "no samples collected" before calling.
var ErrNoSamples = errors.New("no samples to summarize")

// Summarize reduces a non-empty sample sequence to peak and average
// statistics, rounded to one decimal.
//
// Start and end times are the first and last samples in arrival order;
// arrival order is log order, which a single time-ordered writer keeps
// monotonic, so no sorting happens here.
func Summarize(samples []metrics.Sample) (metrics.Summary, error) {
	if len(samples) == 0 {
		return metrics.Summary{}, ErrNoSamples
	}

	var sumCPU, sumMem float64
	summary := metrics.Summary{
		SampleCount: len(samples),
		StartTime:   samples[0].Timestamp,
		EndTime:     samples[len(samples)-1].Timestamp,
	}

	for _, s := range samples {
		if s.CPUPercent > summary.PeakCPUPercent {
			summary.PeakCPUPercent = s.CPUPercent
		}
		if s.MemoryPercent > summary.PeakMemoryPercent {
			summary.PeakMemoryPercent = s.MemoryPercent
		}
		sumCPU += s.CPUPercent
		sumMem += s.MemoryPercent
	}

	n := float64(len(samples))
	summary.PeakCPUPercent = metrics.Round1(summary.PeakCPUPercent)
	summary.PeakMemoryPercent = metrics.Round1(summary.PeakMemoryPercent)
	summary.AvgCPUPercent = metrics.Round1(sumCPU / n)
	summary.AvgMemoryPercent = metrics.Round1(sumMem / n)

	return summary, nil
}

// CPUSeries extracts the CPU percentage column in arrival order.
func CPUSeries(samples []metrics.Sample) []float64 {
	series := make([]float64, len(samples))
	for i, s := range samples {
		series[i] = s.CPUPercent
	}
	return series
}

// MemorySeries extracts the memory percentage column in arrival order.
func MemorySeries(samples []metrics.Sample) []float64 {
	series := make([]float64, len(samples))
	for i, s := range samples {
		series[i] = s.MemoryPercent
	}
	return series
}

// Downsample reduces a series to at most max points by selecting evenly
// spaced indices over the raw series.
//
// Index selection is used instead of window averaging so that any point in
// the chart is an actual measured value; the trade-off is that a narrow
// spike between selected indices may not appear in the chart (the summary
// statistics still see it, since they run over the full series).
func Downsample(values []float64, max int) []float64 {
	if max < 1 {
		max = 1
	}
	if len(values) <= max {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}

	if max == 1 {
		return []float64{values[0]}
	}

	out := make([]float64, max)
	step := float64(len(values)-1) / float64(max-1)
	for i := range out {
		out[i] = values[int(math.Round(float64(i)*step))]
	}
	return out
}
