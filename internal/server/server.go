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

// Package server serves a collected run's report over HTTP for local
// inspection after the stop phase has run (or while the sampler is still
// writing: reads tolerate a growing log).
package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/runmeter/runmeter/internal/aggregate"
	"github.com/runmeter/runmeter/internal/samplelog"
	"github.com/runmeter/runmeter/internal/sysinfo"
	"github.com/runmeter/runmeter/pkg/version"
)

// Server exposes one run directory's samples and summary.
type Server struct {
	log    *samplelog.Log
	logger *slog.Logger
	router *mux.Router
}

// NewServer creates a server reading from the given run directory.
func NewServer(dir string, logger *slog.Logger) *Server {
	s := &Server{
		log:    samplelog.New(dir),
		logger: logger,
		router: mux.NewRouter(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(corsMiddleware)
	s.router.Use(s.loggingMiddleware)

	s.router.HandleFunc("/", s.handleReport).Methods("GET")
	s.router.HandleFunc("/api/version", s.handleVersion).Methods("GET")
	s.router.HandleFunc("/api/summary", s.handleSummary).Methods("GET")
	s.router.HandleFunc("/api/samples", s.handleSamples).Methods("GET")
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// handleReport renders the textual report for the current log contents.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	samples, err := s.log.ReadAll()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(samples) == 0 {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "No samples collected yet.")
		return
	}

	summary, err := aggregate.Summarize(samples)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	report := aggregate.RenderReport(summary, sysinfo.Collect(s.logger),
		aggregate.CPUSeries(samples), aggregate.MemorySeries(samples))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, report)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	samples, err := s.log.ReadAll()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(samples) == 0 {
		http.Error(w, "no samples collected", http.StatusNotFound)
		return
	}

	summary, err := aggregate.Summarize(samples)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, struct {
		Summary interface{} `json:"summary"`
		System  interface{} `json:"system"`
	}{summary, sysinfo.Collect(s.logger)})
}

func (s *Server) handleSamples(w http.ResponseWriter, r *http.Request) {
	samples, err := s.log.ReadAll()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, samples)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"version": version.Info()})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// corsMiddleware allows cross-origin reads; the server only exposes
// read-only run data on localhost.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("HTTP request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
