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
	"fmt"

	"github.com/runmeter/runmeter/pkg/metrics"
	"github.com/shirou/gopsutil/v3/mem"
)

// MemoryProbe measures instantaneous memory utilization from the total and
// free memory counters.
type MemoryProbe struct{}

// NewMemoryProbe creates a memory probe instance.
func NewMemoryProbe() *MemoryProbe {
	return &MemoryProbe{}
}

// Measure returns the current memory utilization, computed as
// used = total − free with the percentage rounded to one decimal.
// It fails only when the OS memory counters are unavailable.
func (m *MemoryProbe) Measure() (metrics.MemoryStat, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return metrics.MemoryStat{}, fmt.Errorf("failed to read memory counters: %w", err)
	}
	if vm.Total == 0 {
		return metrics.MemoryStat{}, fmt.Errorf("total memory is zero")
	}

	return metrics.MemoryUtilization(vm.Total, vm.Free), nil
}
