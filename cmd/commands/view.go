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
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/runmeter/runmeter/internal/config"
	"github.com/runmeter/runmeter/internal/server"
	"github.com/spf13/cobra"
)

var (
	viewHost string
	viewPort int
	viewDir  string
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Serve a run's report over HTTP",
	Long: `Serve the collected samples and summary of a run directory over HTTP
for local inspection.

Endpoints:
  /             rendered text report
  /api/summary  summary and host facts as JSON
  /api/samples  raw sample series as JSON

Examples:
  runmeter view --dir /tmp/build-run --port 8080`,
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)

	viewCmd.Flags().StringVar(&viewHost, "host", "127.0.0.1", "HTTP server listen address")
	viewCmd.Flags().IntVarP(&viewPort, "port", "p", 8080, "HTTP server port")
	viewCmd.Flags().StringVar(&viewDir, "dir", config.DefaultDir(), "Run directory to serve")
}

func runView(_ *cobra.Command, _ []string) error {
	logger := InitLogger(logLevel, logFile)

	srv := server.NewServer(viewDir, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", viewHost, viewPort),
		Handler:      srv,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info("Received signal, shutting down", "signal", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	}()

	logger.Info("Serving run report", "dir", viewDir, "addr", httpServer.Addr)

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
