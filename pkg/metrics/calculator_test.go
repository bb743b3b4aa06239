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

package metrics

import "testing"

func TestCPUUtilizationBetween(t *testing.T) {
	tests := []struct {
		name    string
		prev    CPUSnapshot
		current CPUSnapshot
		want    float64
	}{
		{
			name:    "90 percent busy",
			prev:    CPUSnapshot{IdleTicks: 100, TotalTicks: 1000},
			current: CPUSnapshot{IdleTicks: 150, TotalTicks: 1500},
			want:    90.0,
		},
		{
			name:    "fully idle",
			prev:    CPUSnapshot{IdleTicks: 100, TotalTicks: 1000},
			current: CPUSnapshot{IdleTicks: 600, TotalTicks: 1500},
			want:    0.0,
		},
		{
			name:    "fully busy",
			prev:    CPUSnapshot{IdleTicks: 100, TotalTicks: 1000},
			current: CPUSnapshot{IdleTicks: 100, TotalTicks: 2000},
			want:    100.0,
		},
		{
			name:    "no counter movement",
			prev:    CPUSnapshot{IdleTicks: 100, TotalTicks: 1000},
			current: CPUSnapshot{IdleTicks: 100, TotalTicks: 1000},
			want:    0.0,
		},
		{
			name:    "rounding to one decimal",
			prev:    CPUSnapshot{IdleTicks: 0, TotalTicks: 0},
			current: CPUSnapshot{IdleTicks: 1, TotalTicks: 3},
			want:    66.7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CPUUtilizationBetween(tt.prev, tt.current)
			if got != tt.want {
				t.Errorf("CPUUtilizationBetween() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMemoryUtilization(t *testing.T) {
	const gb = 1024 * 1024 * 1024

	stat := MemoryUtilization(16*gb, 4*gb)
	if stat.TotalMB != 16*1024 {
		t.Errorf("TotalMB = %v, want %v", stat.TotalMB, 16*1024)
	}
	if stat.UsedMB != 12*1024 {
		t.Errorf("UsedMB = %v, want %v", stat.UsedMB, 12*1024)
	}
	if stat.Percent != 75.0 {
		t.Errorf("Percent = %v, want 75.0", stat.Percent)
	}
}

func TestMemoryUtilizationZeroTotal(t *testing.T) {
	stat := MemoryUtilization(0, 0)
	if stat.Percent != 0 || stat.UsedMB != 0 || stat.TotalMB != 0 {
		t.Errorf("MemoryUtilization(0, 0) = %+v, want zero value", stat)
	}
}

func TestRound1(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{58.333333, 58.3},
		{58.35, 58.4},
		{0, 0},
		{99.99, 100.0},
	}

	for _, tt := range tests {
		if got := Round1(tt.in); got != tt.want {
			t.Errorf("Round1(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
