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

package sampler

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/runmeter/runmeter/internal/samplelog"
)

func TestSamplerRunProducesImmediateSample(t *testing.T) {
	log := samplelog.New(t.TempDir())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// Interval far longer than the run window: only the immediate first
	// sample can be produced.
	s := New(time.Minute, log, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	samples, err := log.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(samples) != 1 {
		t.Fatalf("got %d samples, want exactly the immediate one", len(samples))
	}
	if samples[0].Timestamp.IsZero() {
		t.Error("sample has zero timestamp")
	}
}

func TestSamplerRunTicks(t *testing.T) {
	log := samplelog.New(t.TempDir())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s := New(150*time.Millisecond, log, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 600*time.Millisecond)
	defer cancel()

	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	samples, err := log.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(samples) < 2 {
		t.Fatalf("got %d samples, want at least 2 (immediate + ticks)", len(samples))
	}

	// Append order is time order for a single writer.
	for i := 1; i < len(samples); i++ {
		if samples[i].Timestamp.Before(samples[i-1].Timestamp) {
			t.Errorf("sample %d timestamp precedes sample %d", i, i-1)
		}
	}
}
