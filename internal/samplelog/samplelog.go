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

// Package samplelog provides the append-only durable sample store and the
// state-handoff record shared between the start and stop phases.
//
// The log is newline-delimited JSON, written by exactly one process (the
// sampler) and readable by any number of concurrent readers. There is no
// locking: each append is a single write to a file opened in append mode,
// and readers skip malformed lines, so a writer killed mid-write costs at
// most its final partial record.
package samplelog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runmeter/runmeter/pkg/metrics"
)

// FileName is the sample log file name inside a run directory.
const FileName = "raw_metrics.jsonl"

// Log is an append-only store of samples at a fixed path.
type Log struct {
	path string
}

// New creates a log handle for the given run directory.
// The underlying file is created lazily on the first append.
func New(dir string) *Log {
	return &Log{path: filepath.Join(dir, FileName)}
}

// Open creates a log handle at an exact file path, as recorded in a handoff.
// Readers of a handoff record must honor the recorded location verbatim
// rather than reconstructing it from the directory and the current FileName.
func Open(path string) *Log {
	return &Log{path: path}
}

// Path returns the log file location.
func (l *Log) Path() string {
	return l.path
}

// Exists reports whether the log file is present. Absence is a valid state:
// monitoring never started, or the log was already removed by the caller.
func (l *Log) Exists() bool {
	_, err := os.Stat(l.path)
	return err == nil
}

// Append durably writes one sample as a single JSON line.
//
// The record is marshalled up front and handed to the kernel in one write
// on a file opened with O_APPEND, so concurrent readers never observe an
// interleaved or half-flushed line from a live writer.
func (l *Log) Append(sample metrics.Sample) error {
	data, err := json.Marshal(sample)
	if err != nil {
		return fmt.Errorf("failed to marshal sample: %w", err)
	}
	data = append(data, '\n')

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open sample log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to append sample: %w", err)
	}

	return nil
}

// ReadAll returns all successfully parsed samples in append order.
//
// A missing file yields an empty result, not an error. Malformed lines are
// skipped: a trailing partial line is the expected leftover of a sampler
// killed mid-write and must not fail the whole read.
func (l *Log) ReadAll() ([]metrics.Sample, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open sample log: %w", err)
	}
	defer f.Close()

	var samples []metrics.Sample

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var sample metrics.Sample
		if err := json.Unmarshal(line, &sample); err != nil {
			continue
		}
		samples = append(samples, sample)
	}

	if err := scanner.Err(); err != nil {
		return samples, fmt.Errorf("failed to read sample log: %w", err)
	}

	return samples, nil
}
