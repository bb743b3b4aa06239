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

package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/runmeter/runmeter/internal/samplelog"
	"github.com/runmeter/runmeter/pkg/metrics"
)

func newTestServer(t *testing.T, withSamples bool) *Server {
	t.Helper()
	dir := t.TempDir()

	if withSamples {
		log := samplelog.New(dir)
		for i := 0; i < 3; i++ {
			sample := metrics.Sample{
				Timestamp:     time.Date(2026, 8, 30, 10, 0, i, 0, time.UTC),
				CPUPercent:    float64(10 + 40*i),
				MemoryUsedMB:  4096,
				MemoryTotalMB: 16384,
				MemoryPercent: float64(20 + 5*i),
			}
			if err := log.Append(sample); err != nil {
				t.Fatal(err)
			}
		}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(dir, logger)
}

func TestHandleSamples(t *testing.T) {
	srv := newTestServer(t, true)

	req := httptest.NewRequest(http.MethodGet, "/api/samples", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var samples []metrics.Sample
	if err := json.Unmarshal(rec.Body.Bytes(), &samples); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(samples) != 3 {
		t.Errorf("got %d samples, want 3", len(samples))
	}
}

func TestHandleSummary(t *testing.T) {
	srv := newTestServer(t, true)

	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var doc struct {
		Summary metrics.Summary `json:"summary"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if doc.Summary.SampleCount != 3 {
		t.Errorf("SampleCount = %d, want 3", doc.Summary.SampleCount)
	}
	if doc.Summary.PeakCPUPercent != 90 {
		t.Errorf("PeakCPUPercent = %v, want 90", doc.Summary.PeakCPUPercent)
	}
}

func TestHandleSummaryNoSamples(t *testing.T) {
	srv := newTestServer(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for an empty run", rec.Code)
	}
}

func TestHandleReport(t *testing.T) {
	srv := newTestServer(t, true)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Workload Resource Usage") {
		t.Errorf("report body missing title:\n%s", rec.Body.String())
	}
}
