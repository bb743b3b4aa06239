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

// Package config holds the flag-driven run configuration shared by the
// start and stop phases.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Default configuration values.
const (
	DefaultInterval = 1 * time.Second
	DefaultPrefix   = "metrics"
)

// Config represents one monitored run's configuration. The interval is
// immutable for the lifetime of a sampler instance.
type Config struct {
	Interval time.Duration // Time between samples (minimum 1s)
	Dir      string        // Writable scratch directory for this run
	Prefix   string        // File name prefix for the produced report files

	// Stop-phase options
	Format        string // Output format selector: summary, json, both
	ArtifactName  string // Artifact bundle name (empty = no bundle)
	RetentionDays int    // Retention hint passed to the artifact uploader
	OutputsFile   string // File receiving key=value scalar outputs (empty = stdout only)
	SummaryFile   string // Job-visible summary surface (empty = not rendered)
	State         string // Inline handoff record JSON (primary channel)
	StateFile     string // Durable handoff record path (fallback channel)

	// Logging
	LogLevel string
	LogFile  string
}

// DefaultDir returns the default scratch directory for a run.
func DefaultDir() string {
	return filepath.Join(os.TempDir(), "runmeter")
}

// Validate checks the shared configuration fields.
func (c *Config) Validate() error {
	if c.Interval < time.Second {
		return errors.New("sampling interval must be at least 1 second")
	}
	if c.Dir == "" {
		return errors.New("scratch directory cannot be empty")
	}
	if c.Prefix == "" {
		return errors.New("file prefix cannot be empty")
	}
	return nil
}

// EnsureDir creates the scratch directory and verifies it is writable.
// Failure here is the one fatal error class of the invocation boundaries:
// without a usable scratch directory, neither phase can do anything.
func (c *Config) EnsureDir() error {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return fmt.Errorf("cannot create scratch directory %s: %w", c.Dir, err)
	}

	probe := filepath.Join(c.Dir, ".write_check")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return fmt.Errorf("scratch directory %s is not writable: %w", c.Dir, err)
	}
	os.Remove(probe)

	return nil
}

// String returns a human-readable representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Interval=%v, Dir=%s, Prefix=%s, Format=%s}",
		c.Interval, c.Dir, c.Prefix, c.Format)
}
