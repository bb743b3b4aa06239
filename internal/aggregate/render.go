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

package aggregate

import (
	"fmt"
	"strings"

	"github.com/runmeter/runmeter/internal/sysinfo"
	"github.com/runmeter/runmeter/pkg/metrics"
)

// MaxChartPoints bounds the rendered chart width for long runs.
const MaxChartPoints = 60

// sparkChars maps values 0..7 to Unicode block elements ▁▂▃▄▅▆▇█.
var sparkChars = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline converts a percentage series into a Unicode block chart,
// downsampled to at most MaxChartPoints. Values are clamped to [0, 100]
// for display only.
func Sparkline(values []float64) string {
	values = Downsample(values, MaxChartPoints)
	if len(values) == 0 {
		return ""
	}

	runes := make([]rune, len(values))
	for i, v := range values {
		if v < 0 {
			v = 0
		}
		if v > 100 {
			v = 100
		}
		idx := int(v / 100.0 * 7.0)
		if idx > 7 {
			idx = 7
		}
		runes[i] = sparkChars[idx]
	}
	return string(runes)
}

// RenderReport produces the markdown report for the job summary surface:
// a statistics table, the run window, host facts and one sparkline per
// metric series.
func RenderReport(summary metrics.Summary, info sysinfo.Info, cpuSeries, memSeries []float64) string {
	var b strings.Builder

	b.WriteString("## Workload Resource Usage\n\n")
	b.WriteString("| Metric | Peak | Average |\n")
	b.WriteString("|--------|------|---------|\n")
	fmt.Fprintf(&b, "| CPU | %.1f%% | %.1f%% |\n", summary.PeakCPUPercent, summary.AvgCPUPercent)
	fmt.Fprintf(&b, "| Memory | %.1f%% | %.1f%% |\n\n", summary.PeakMemoryPercent, summary.AvgMemoryPercent)

	fmt.Fprintf(&b, "Samples: %d over %s (%s to %s)\n\n",
		summary.SampleCount,
		summary.EndTime.Sub(summary.StartTime).String(),
		summary.StartTime.Format("15:04:05"),
		summary.EndTime.Format("15:04:05"),
	)

	fmt.Fprintf(&b, "Host: %d cores, %s, %d MB memory, %s/%s\n\n",
		info.CPUCores, info.CPUModel, info.MemoryTotalMB, info.Platform, info.Arch)

	b.WriteString("```\n")
	fmt.Fprintf(&b, "CPU    %s\n", Sparkline(cpuSeries))
	fmt.Fprintf(&b, "Memory %s\n", Sparkline(memSeries))
	b.WriteString("```\n")

	return b.String()
}
