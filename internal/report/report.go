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

// Package report writes the stop-phase output surface: the JSON summary
// file, the per-sample CSV file, the scalar outputs and the rendered
// markdown report.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/runmeter/runmeter/internal/sysinfo"
	"github.com/runmeter/runmeter/pkg/metrics"
)

// Format selects which summary files the stop phase produces.
type Format string

const (
	FormatSummary Format = "summary"
	FormatJSON    Format = "json"
	FormatBoth    Format = "both"
)

// ParseFormat validates an output-format selector.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatSummary, FormatJSON, FormatBoth:
		return Format(s), nil
	default:
		return "", fmt.Errorf("invalid output format %q (must be summary, json, or both)", s)
	}
}

// CSVHeader is the fixed column set of the per-sample CSV file.
var CSVHeader = []string{"timestamp", "cpu_percent", "memory_used_mb", "memory_total_mb", "memory_percent"}

// Writer produces the report files for one run.
type Writer struct {
	dir    string
	prefix string
	logger *slog.Logger
}

// NewWriter creates a report writer targeting dir with the given file
// name prefix.
func NewWriter(dir, prefix string, logger *slog.Logger) *Writer {
	return &Writer{dir: dir, prefix: prefix, logger: logger}
}

// WriteJSON writes `<prefix>.json` containing the summary statistics and
// the host description, and returns the file path.
func (w *Writer) WriteJSON(summary metrics.Summary, info sysinfo.Info) (string, error) {
	doc := struct {
		Summary metrics.Summary `json:"summary"`
		System  sysinfo.Info    `json:"system"`
	}{summary, info}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal summary: %w", err)
	}

	path := filepath.Join(w.dir, w.prefix+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write summary file: %w", err)
	}

	return path, nil
}

// WriteCSV writes `<prefix>.csv` with one row per sample and returns the
// file path. Floats keep the one-decimal precision applied at capture time,
// so a parsed row reproduces the original values exactly.
func (w *Writer) WriteCSV(samples []metrics.Sample) (string, error) {
	path := filepath.Join(w.dir, w.prefix+".csv")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(CSVHeader); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, s := range samples {
		row := []string{
			s.Timestamp.Format(time.RFC3339Nano),
			strconv.FormatFloat(s.CPUPercent, 'f', 1, 64),
			strconv.FormatUint(s.MemoryUsedMB, 10),
			strconv.FormatUint(s.MemoryTotalMB, 10),
			strconv.FormatFloat(s.MemoryPercent, 'f', 1, 64),
		}
		if err := cw.Write(row); err != nil {
			return "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("CSV writer error: %w", err)
	}

	return path, nil
}

// Outputs are the five scalar values handed back across the invocation
// boundary as key=value lines.
type Outputs struct {
	PeakCPU     string
	PeakMemory  string
	AvgCPU      string
	AvgMemory   string
	MetricsFile string
}

// ScalarOutputs derives the scalar outputs from a summary and the summary
// file path.
func ScalarOutputs(summary metrics.Summary, metricsFile string) Outputs {
	return Outputs{
		PeakCPU:     strconv.FormatFloat(summary.PeakCPUPercent, 'f', 1, 64),
		PeakMemory:  strconv.FormatFloat(summary.PeakMemoryPercent, 'f', 1, 64),
		AvgCPU:      strconv.FormatFloat(summary.AvgCPUPercent, 'f', 1, 64),
		AvgMemory:   strconv.FormatFloat(summary.AvgMemoryPercent, 'f', 1, 64),
		MetricsFile: metricsFile,
	}
}

// ZeroOutputs are the outputs of a run that collected no samples: numeric
// outputs zeroed, no metrics file. Producing them is a success, not a
// failure.
func ZeroOutputs() Outputs {
	return Outputs{PeakCPU: "0", PeakMemory: "0", AvgCPU: "0", AvgMemory: "0", MetricsFile: ""}
}

// Lines renders the outputs as key=value lines in a stable order.
func (o Outputs) Lines() []string {
	return []string{
		"peak_cpu=" + o.PeakCPU,
		"peak_memory=" + o.PeakMemory,
		"avg_cpu=" + o.AvgCPU,
		"avg_memory=" + o.AvgMemory,
		"metrics_file=" + o.MetricsFile,
	}
}

// Emit writes the key=value lines to out and, when outputsFile is set,
// appends them there as well.
func (o Outputs) Emit(out io.Writer, outputsFile string) error {
	for _, line := range o.Lines() {
		fmt.Fprintln(out, line)
	}

	if outputsFile == "" {
		return nil
	}

	f, err := os.OpenFile(outputsFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open outputs file: %w", err)
	}
	defer f.Close()

	for _, line := range o.Lines() {
		if _, err := fmt.Fprintln(f, line); err != nil {
			return fmt.Errorf("failed to write outputs file: %w", err)
		}
	}

	return nil
}

// AppendSummary appends a rendered report to the job-visible summary file.
func AppendSummary(path, rendered string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open summary file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(rendered); err != nil {
		return fmt.Errorf("failed to append summary: %w", err)
	}

	return nil
}
