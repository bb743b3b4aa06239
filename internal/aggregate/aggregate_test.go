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

package aggregate

import (
	"errors"
	"testing"
	"time"

	"github.com/runmeter/runmeter/pkg/metrics"
)

func sampleAt(sec int, cpu, mem float64) metrics.Sample {
	return metrics.Sample{
		Timestamp:     time.Date(2026, 8, 30, 10, 0, sec, 0, time.UTC),
		CPUPercent:    cpu,
		MemoryPercent: mem,
		MemoryUsedMB:  4096,
		MemoryTotalMB: 16384,
	}
}

func TestSummarizeConcrete(t *testing.T) {
	samples := []metrics.Sample{
		sampleAt(0, 10, 20),
		sampleAt(1, 90, 95),
		sampleAt(2, 50, 60),
	}

	summary, err := Summarize(samples)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	if summary.PeakCPUPercent != 90 {
		t.Errorf("PeakCPUPercent = %v, want 90", summary.PeakCPUPercent)
	}
	if summary.PeakMemoryPercent != 95 {
		t.Errorf("PeakMemoryPercent = %v, want 95", summary.PeakMemoryPercent)
	}
	if summary.AvgCPUPercent != 50 {
		t.Errorf("AvgCPUPercent = %v, want 50", summary.AvgCPUPercent)
	}
	if summary.AvgMemoryPercent != 58.3 {
		t.Errorf("AvgMemoryPercent = %v, want 58.3", summary.AvgMemoryPercent)
	}
	if summary.SampleCount != 3 {
		t.Errorf("SampleCount = %v, want 3", summary.SampleCount)
	}
	if !summary.StartTime.Equal(samples[0].Timestamp) {
		t.Errorf("StartTime = %v, want first sample timestamp", summary.StartTime)
	}
	if !summary.EndTime.Equal(samples[2].Timestamp) {
		t.Errorf("EndTime = %v, want last sample timestamp", summary.EndTime)
	}
}

func TestSummarizeSingleSample(t *testing.T) {
	summary, err := Summarize([]metrics.Sample{sampleAt(0, 33.3, 44.4)})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	if summary.PeakCPUPercent != 33.3 || summary.AvgCPUPercent != 33.3 {
		t.Errorf("single-sample CPU peak/avg = %v/%v, want 33.3/33.3",
			summary.PeakCPUPercent, summary.AvgCPUPercent)
	}
	if summary.SampleCount != 1 {
		t.Errorf("SampleCount = %v, want 1", summary.SampleCount)
	}
	if !summary.StartTime.Equal(summary.EndTime) {
		t.Error("StartTime != EndTime for a single sample")
	}
}

func TestSummarizeEmpty(t *testing.T) {
	_, err := Summarize(nil)
	if !errors.Is(err, ErrNoSamples) {
		t.Errorf("Summarize(nil) error = %v, want ErrNoSamples", err)
	}
}

func TestSummarizeArrivalOrderWins(t *testing.T) {
	// Timestamps deliberately out of order: arrival order is log order and
	// must not be re-sorted.
	samples := []metrics.Sample{
		sampleAt(5, 10, 10),
		sampleAt(1, 20, 20),
	}

	summary, err := Summarize(samples)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if !summary.StartTime.Equal(samples[0].Timestamp) || !summary.EndTime.Equal(samples[1].Timestamp) {
		t.Error("Summarize() sorted samples instead of keeping arrival order")
	}
}

func TestDownsample(t *testing.T) {
	long := make([]float64, 500)
	for i := range long {
		long[i] = float64(i)
	}

	tests := []struct {
		name    string
		in      []float64
		max     int
		wantLen int
	}{
		{"shorter than max", []float64{1, 2, 3}, 60, 3},
		{"exactly max", long[:60], 60, 60},
		{"long series", long, 60, 60},
		{"max one", long, 1, 1},
		{"max zero clamps to one", long, 0, 1},
		{"negative max clamps to one", long, -5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Downsample(tt.in, tt.max)
			if len(got) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(got), tt.wantLen)
			}
			if len(tt.in) > 0 && got[0] != tt.in[0] {
				t.Errorf("first point = %v, want %v", got[0], tt.in[0])
			}
			if len(tt.in) > tt.max && tt.max > 1 {
				if got[len(got)-1] != tt.in[len(tt.in)-1] {
					t.Errorf("last point = %v, want %v (even spacing keeps endpoints)",
						got[len(got)-1], tt.in[len(tt.in)-1])
				}
			}
		})
	}
}

func TestDownsampleDoesNotMutateInput(t *testing.T) {
	in := []float64{1, 2, 3}
	out := Downsample(in, 60)
	out[0] = 99
	if in[0] != 1 {
		t.Error("Downsample() returned a slice aliasing its input")
	}
}

func TestSeriesExtraction(t *testing.T) {
	samples := []metrics.Sample{sampleAt(0, 10, 20), sampleAt(1, 30, 40)}

	cpu := CPUSeries(samples)
	mem := MemorySeries(samples)

	if len(cpu) != 2 || cpu[0] != 10 || cpu[1] != 30 {
		t.Errorf("CPUSeries() = %v, want [10 30]", cpu)
	}
	if len(mem) != 2 || mem[0] != 20 || mem[1] != 40 {
		t.Errorf("MemorySeries() = %v, want [20 40]", mem)
	}
}
