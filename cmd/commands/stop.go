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

package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/runmeter/runmeter/internal/aggregate"
	"github.com/runmeter/runmeter/internal/config"
	"github.com/runmeter/runmeter/internal/lifecycle"
	"github.com/runmeter/runmeter/internal/report"
	"github.com/runmeter/runmeter/internal/samplelog"
	"github.com/runmeter/runmeter/internal/sysinfo"
	"github.com/spf13/cobra"
)

var (
	stopDir           string
	stopPrefix        string
	stopFormat        string
	stopState         string
	stopStateFile     string
	stopOutputsFile   string
	stopSummaryFile   string
	stopArtifactName  string
	stopRetentionDays int
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop monitoring and produce the report",
	Long: `Terminate the background sampler, aggregate the collected samples and
write the report files and scalar outputs.

The handoff record is taken from --state (inline JSON, the primary channel)
or read from --state-file (default <dir>/state.json). A missing record means
monitoring never started correctly; that is reported as a warning and the
command exits successfully without output.

Examples:
  # Stop using the durable state file
  runmeter stop --dir /tmp/build-run

  # Pass the record printed by 'runmeter start' directly
  runmeter stop --dir /tmp/build-run --state "$STATE_JSON" --format both`,
	RunE: runStop,
}

func init() {
	rootCmd.AddCommand(stopCmd)

	stopCmd.Flags().StringVar(&stopDir, "dir", config.DefaultDir(),
		"Scratch directory of the run to stop")
	stopCmd.Flags().StringVar(&stopPrefix, "prefix", config.DefaultPrefix,
		"File name prefix for the report files")
	stopCmd.Flags().StringVar(&stopFormat, "format", string(report.FormatBoth),
		"Output format: summary, json, or both")
	stopCmd.Flags().StringVar(&stopState, "state", "",
		"Handoff record JSON as printed by 'runmeter start' (primary channel)")
	stopCmd.Flags().StringVar(&stopStateFile, "state-file", "",
		"Handoff record file (default <dir>/state.json)")
	stopCmd.Flags().StringVar(&stopOutputsFile, "outputs", "",
		"File receiving the key=value scalar outputs (stdout always gets them)")
	stopCmd.Flags().StringVar(&stopSummaryFile, "summary-file", "",
		"Append the rendered report to this file")
	stopCmd.Flags().StringVar(&stopArtifactName, "artifact-name", "",
		"Bundle the report files under this artifact name")
	stopCmd.Flags().IntVar(&stopRetentionDays, "retention-days", 0,
		"Retention hint passed to the artifact uploader")
}

func runStop(cmd *cobra.Command, _ []string) error {
	cfg := &config.Config{
		Interval:      config.DefaultInterval,
		Dir:           stopDir,
		Prefix:        stopPrefix,
		Format:        stopFormat,
		State:         stopState,
		StateFile:     stopStateFile,
		OutputsFile:   stopOutputsFile,
		SummaryFile:   stopSummaryFile,
		ArtifactName:  stopArtifactName,
		RetentionDays: stopRetentionDays,
		LogLevel:      logLevel,
		LogFile:       logFile,
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	logger := InitLogger(cfg.LogLevel, cfg.LogFile)

	if err := cfg.EnsureDir(); err != nil {
		return err
	}

	rec, ok := resolveHandoff(cfg, logger)
	if !ok {
		// Monitoring never started correctly. Warn and succeed.
		logger.Warn("No handoff record found, monitoring was never started")
		return report.ZeroOutputs().Emit(cmd.OutOrStdout(), cfg.OutputsFile)
	}

	if err := lifecycle.Terminate(rec.SamplerPID, logger); err != nil {
		logger.Warn("Failed to terminate sampler", "pid", rec.SamplerPID, "error", err)
	}

	// Let an in-flight append finish before trusting the log as final.
	time.Sleep(lifecycle.DrainWindow)

	log := samplelog.Open(rec.SamplesPath)
	samples, err := log.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read sample log: %w", err)
	}

	if len(samples) == 0 {
		logger.Warn("No samples were collected", "log", log.Path())
		return report.ZeroOutputs().Emit(cmd.OutOrStdout(), cfg.OutputsFile)
	}

	summary, err := aggregate.Summarize(samples)
	if err != nil {
		return err
	}
	info := sysinfo.Collect(logger)

	logger.Info("Run summarized",
		"run_id", rec.RunID,
		"samples", summary.SampleCount,
		"peak_cpu", summary.PeakCPUPercent,
		"peak_memory", summary.PeakMemoryPercent,
	)

	w := report.NewWriter(cfg.Dir, cfg.Prefix, logger)

	var jsonPath, csvPath string
	if format == report.FormatJSON || format == report.FormatBoth {
		if jsonPath, err = w.WriteJSON(summary, info); err != nil {
			return err
		}
		if csvPath, err = w.WriteCSV(samples); err != nil {
			return err
		}
	}

	rendered := aggregate.RenderReport(summary, info,
		aggregate.CPUSeries(samples), aggregate.MemorySeries(samples))

	if format == report.FormatSummary || format == report.FormatBoth {
		if cfg.SummaryFile != "" {
			if err := report.AppendSummary(cfg.SummaryFile, rendered); err != nil {
				return err
			}
		} else {
			fmt.Fprintln(cmd.ErrOrStderr(), rendered)
		}
	}

	outs := report.ScalarOutputs(summary, jsonPath)
	if err := outs.Emit(cmd.OutOrStdout(), cfg.OutputsFile); err != nil {
		return err
	}

	if cfg.ArtifactName != "" {
		uploader := report.DirUploader{Root: filepath.Join(cfg.Dir, "artifacts")}
		if err := uploader.Upload(cfg.ArtifactName, []string{jsonPath, csvPath}, cfg.RetentionDays); err != nil {
			// Upload failure never invalidates the outputs already produced.
			logger.Warn("Artifact upload failed", "artifact", cfg.ArtifactName, "error", err)
		}
	}

	return nil
}

// resolveHandoff recovers the handoff record: inline JSON is the primary
// channel, the durable state file the fallback.
func resolveHandoff(cfg *config.Config, logger *slog.Logger) (samplelog.HandoffRecord, bool) {
	if cfg.State != "" {
		rec, err := samplelog.ParseHandoff([]byte(cfg.State))
		if err == nil {
			return rec, true
		}
		logger.Warn("Invalid inline handoff record, trying the state file", "error", err)
	}

	statePath := cfg.StateFile
	if statePath == "" {
		statePath = filepath.Join(cfg.Dir, samplelog.StateFileName)
	}

	rec, err := samplelog.ReadHandoff(statePath)
	if err != nil {
		logger.Debug("State file unavailable", "path", statePath, "error", err)
		return samplelog.HandoffRecord{}, false
	}

	return rec, true
}
