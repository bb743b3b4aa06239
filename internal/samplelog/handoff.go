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

package samplelog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// StateFileName is the durable handoff record file name inside a run
// directory. It backs up the ephemeral cross-phase channel.
const StateFileName = "state.json"

// HandoffRecord lets a later, unrelated process invocation recover where
// monitoring was started. It is written exactly once by the start phase and
// read by value at stop time.
//
// SamplerPID must refer to a process that, if still alive, is the sampler
// launched by this run and nothing else.
type HandoffRecord struct {
	RunID       string    `json:"run_id"`
	SamplesPath string    `json:"samples_location"`
	SamplerPID  int       `json:"sampler_identity"`
	StartTime   time.Time `json:"start_time"`
}

// WriteHandoff persists the record as the durable file copy under dir and
// returns the file path.
func WriteHandoff(dir string, rec HandoffRecord) (string, error) {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal handoff record: %w", err)
	}

	path := filepath.Join(dir, StateFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write handoff record: %w", err)
	}

	return path, nil
}

// ReadHandoff reads the durable file copy of the record.
func ReadHandoff(path string) (HandoffRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return HandoffRecord{}, fmt.Errorf("failed to read handoff record: %w", err)
	}

	return ParseHandoff(data)
}

// ParseHandoff decodes a record received over the ephemeral cross-phase
// channel.
func ParseHandoff(data []byte) (HandoffRecord, error) {
	var rec HandoffRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return HandoffRecord{}, fmt.Errorf("failed to parse handoff record: %w", err)
	}
	if rec.SamplesPath == "" {
		return HandoffRecord{}, fmt.Errorf("handoff record has no samples location")
	}

	return rec, nil
}
