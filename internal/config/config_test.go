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

package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Interval: time.Second, Dir: "/tmp/x", Prefix: "metrics"}, false},
		{"interval too small", Config{Interval: 500 * time.Millisecond, Dir: "/tmp/x", Prefix: "metrics"}, true},
		{"no maximum interval", Config{Interval: 24 * time.Hour, Dir: "/tmp/x", Prefix: "metrics"}, false},
		{"empty dir", Config{Interval: time.Second, Prefix: "metrics"}, true},
		{"empty prefix", Config{Interval: time.Second, Dir: "/tmp/x"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnsureDirCreates(t *testing.T) {
	cfg := Config{Dir: filepath.Join(t.TempDir(), "nested", "run")}
	if err := cfg.EnsureDir(); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	// Idempotent on an existing directory.
	if err := cfg.EnsureDir(); err != nil {
		t.Errorf("EnsureDir() second call error = %v", err)
	}
}
