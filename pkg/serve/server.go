// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serve

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/invitehound/pkg/config"
	"github.com/walteh/invitehound/pkg/hunt"
	"github.com/walteh/invitehound/pkg/schedule"
	"gitlab.com/tozd/go/errors"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownGrace     = 5 * time.Second
)

// 🌐 Server exposes the dashboard and the JSON snapshot. It only ever
// reads published snapshots; nothing on the serving path mutates hunt
// state.
type Server struct {
	cfg   *config.Config
	store *hunt.Store
	sched *schedule.Scheduler
	srv   *http.Server

	mu   sync.Mutex
	addr string
}

// 🏭 New creates the server with its routes wired
func New(cfg *config.Config, store *hunt.Store, sched *schedule.Scheduler) *Server {
	s := &Server{
		cfg:   cfg,
		store: store,
		sched: sched,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/codes.json", s.handleCodes)
	mux.HandleFunc("/healthz", s.handleHealthz)

	s.srv = &http.Server{
		Addr:              cfg.Listen,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return s
}

// 📍 Addr returns the bound listen address, or "" before Run has bound
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// 🚀 Run serves until ctx is cancelled, then drains connections
// gracefully before returning
func (s *Server) Run(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return errors.Errorf("listening on %s: %w", s.srv.Addr, err)
	}

	s.mu.Lock()
	s.addr = ln.Addr().String()
	s.mu.Unlock()

	// Request contexts inherit the run context, so handlers share its
	// logger
	s.srv.BaseContext = func(net.Listener) context.Context { return ctx }

	logger.Info().Str("addr", s.addr).Msg("serving dashboard")

	errc := make(chan error, 1)
	go func() { errc <- s.srv.Serve(ln) }()

	select {
	case err := <-errc:
		return errors.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return errors.Errorf("shutting down server: %w", err)
	}
	return ctx.Err()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func (s *Server) handleCodes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")

	payload := s.payload()
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("writing snapshot response")
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// 📄 sourceStatus is one source's entry in the JSON snapshot
type sourceStatus struct {
	Name                string  `json:"name"`
	Enabled             bool    `json:"enabled"`
	State               string  `json:"state"`
	ConsecutiveFailures int     `json:"consecutive_failures"`
	LastSuccess         *string `json:"last_success"`
	LastError           *string `json:"last_error"`
	LastErrorMessage    string  `json:"last_error_message,omitempty"`
}

// 📄 codesPayload is the shape served at /codes.json
type codesPayload struct {
	Query               string           `json:"query"`
	PollIntervalSeconds int              `json:"poll_interval_seconds"`
	MaxPosts            int              `json:"max_posts"`
	LastPoll            *string          `json:"last_poll"`
	TotalCandidates     int              `json:"total_candidates"`
	UniqueCodes         int              `json:"unique_codes"`
	SuccessCount        int              `json:"success_count"`
	ErrorCount          int              `json:"error_count"`
	Candidates          []hunt.Candidate `json:"candidates"`
	ActivityLog         []hunt.Entry     `json:"activity_log"`
	Sources             []sourceStatus   `json:"sources"`
}

// payload assembles the served document from the current snapshot and
// the scheduler's health listing
func (s *Server) payload() codesPayload {
	snap := s.store.Read()

	candidates := snap.Candidates
	if candidates == nil {
		candidates = []hunt.Candidate{}
	}
	activity := snap.Activity
	if activity == nil {
		activity = []hunt.Entry{}
	}

	records := s.sched.List()
	sources := make([]sourceStatus, 0, len(records))
	for _, h := range records {
		sources = append(sources, sourceStatus{
			Name:                h.Name,
			Enabled:             !h.Disabled,
			State:               h.State.String(),
			ConsecutiveFailures: h.ConsecutiveFailures,
			LastSuccess:         isoOrNil(h.LastSuccess),
			LastError:           isoOrNil(h.LastErrorAt),
			LastErrorMessage:    h.LastError,
		})
	}

	var lastPoll *string
	if marker := snap.LastPoll.Marker(); marker != "" {
		lastPoll = &marker
	}

	return codesPayload{
		Query:               s.cfg.Query,
		PollIntervalSeconds: int(s.cfg.PollInterval.Std().Seconds()),
		MaxPosts:            s.cfg.MaxItems,
		LastPoll:            lastPoll,
		TotalCandidates:     len(candidates),
		UniqueCodes:         snap.UniqueCodes,
		SuccessCount:        snap.Successes,
		ErrorCount:          snap.Errors,
		Candidates:          candidates,
		ActivityLog:         activity,
		Sources:             sources,
	}
}

func isoOrNil(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	iso := t.UTC().Format(time.RFC3339)
	return &iso
}
