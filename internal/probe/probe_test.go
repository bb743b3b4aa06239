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

package probe

import (
	"io"
	"log/slog"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCPUProbeMeasure(t *testing.T) {
	p := NewCPUProbe(testLogger())

	if p.Cores() < 1 {
		t.Fatalf("Cores() = %d, want >= 1", p.Cores())
	}

	// First measurement primes the baseline internally.
	first := p.Measure()
	if first < 0 || first > 100*float64(p.Cores()) {
		t.Errorf("First Measure() = %v, want [0, %v]", first, 100*p.Cores())
	}

	time.Sleep(100 * time.Millisecond)

	// Second measurement reuses the previous snapshot as baseline.
	second := p.Measure()
	if second < 0 || second > 100*float64(p.Cores()) {
		t.Errorf("Second Measure() = %v, want [0, %v]", second, 100*p.Cores())
	}
}

func TestCPUProbeClamp(t *testing.T) {
	p := &CPUProbe{cores: 4, logger: testLogger()}

	if got := p.clamp(-5); got != 0 {
		t.Errorf("clamp(-5) = %v, want 0", got)
	}
	if got := p.clamp(250); got != 250 {
		t.Errorf("clamp(250) = %v, want 250 (below 100 x cores)", got)
	}
	if got := p.clamp(900); got != 400 {
		t.Errorf("clamp(900) = %v, want 400", got)
	}
}

func TestParseTopOutput(t *testing.T) {
	out := "Processes: 500 total\nCPU usage: 6.45% user, 12.9% sys, 80.64% idle\n"
	m := topCPUPattern.FindStringSubmatch(out)
	if m == nil {
		t.Fatal("topCPUPattern did not match top output")
	}
	if m[1] != "6.45" || m[2] != "12.9" {
		t.Errorf("parsed user=%s sys=%s, want 6.45 and 12.9", m[1], m[2])
	}
}

func TestMemoryProbeMeasure(t *testing.T) {
	p := NewMemoryProbe()

	stat, err := p.Measure()
	if err != nil {
		t.Fatalf("Measure() error = %v", err)
	}
	if stat.TotalMB == 0 {
		t.Error("TotalMB = 0, want > 0")
	}
	if stat.Percent < 0 || stat.Percent > 100 {
		t.Errorf("Percent = %v, want [0, 100]", stat.Percent)
	}
	if stat.UsedMB > stat.TotalMB {
		t.Errorf("UsedMB %v exceeds TotalMB %v", stat.UsedMB, stat.TotalMB)
	}
}
