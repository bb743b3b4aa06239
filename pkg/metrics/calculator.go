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

import "math"

// Round1 rounds a value to one decimal place.
// All percentages exposed by this package are rounded this way at capture time.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// CPUUtilizationBetween calculates CPU busy percentage from two cumulative
// tick counter snapshots.
// Formula: 100 × (ΔTotal − ΔIdle) / ΔTotal, rounded to one decimal.
// Returns 0 when the counters did not advance between the snapshots.
func CPUUtilizationBetween(prev, current CPUSnapshot) float64 {
	deltaTotal := current.TotalTicks - prev.TotalTicks
	deltaIdle := current.IdleTicks - prev.IdleTicks

	if deltaTotal <= 0 {
		return 0.0
	}

	busy := 100.0 * (deltaTotal - deltaIdle) / deltaTotal
	if busy < 0 {
		busy = 0
	}

	return Round1(busy)
}

// MemoryUtilization calculates memory usage from total and free byte counters.
// Formula: used = total − free, percent = used/total × 100 rounded to one decimal.
func MemoryUtilization(totalBytes, freeBytes uint64) MemoryStat {
	if totalBytes == 0 {
		return MemoryStat{}
	}

	used := totalBytes - freeBytes
	percent := Round1(float64(used) / float64(totalBytes) * 100.0)

	return MemoryStat{
		UsedMB:  used / 1024 / 1024,
		TotalMB: totalBytes / 1024 / 1024,
		Percent: percent,
	}
}
