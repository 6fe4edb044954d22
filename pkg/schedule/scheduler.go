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

package schedule

import (
	"sync"
	"time"

	"github.com/walteh/invitehound/pkg/config"
)

// 📊 State represents where a source currently sits in its health cycle
type State int

const (
	StateActive   State = iota
	StateCooling        // Failing lately, skipped until its cooldown elapses
	StateDisabled       // Turned off by configuration, never runs
)

// String returns a string representation of State
func (s State) String() string {
	switch s {
	case StateCooling:
		return "cooling"
	case StateDisabled:
		return "disabled"
	default:
		return "active"
	}
}

// 📄 Health is one source's standing with the scheduler. A record is
// created per configured source at startup and lives for the process
// lifetime; only the scheduler mutates it.
type Health struct {
	Name                string
	State               State
	ConsecutiveFailures int
	CooledDownUntil     time.Time // Zero when the source is not cooling
	Disabled            bool
	LastSuccess         time.Time // Zero until the first successful fetch
	LastErrorAt         time.Time // Zero until the first failure
	LastError           string    // Most recent failure message, kept across recoveries
}

// cooling reports whether the record's cooldown is still running at now
func (h *Health) cooling(now time.Time) bool {
	return !h.CooledDownUntil.IsZero() && now.Before(h.CooledDownUntil)
}

// 🔧 Scheduler decides, per cycle and per source, run or skip. Each
// source's failures stay its own: trouble on one surface never slows
// the others down.
type Scheduler struct {
	threshold int
	base      time.Duration
	max       time.Duration
	now       func() time.Time

	mu     sync.RWMutex
	health map[string]*Health
	order  []string
}

// 🏭 New creates a scheduler with one health record per configured source
func New(cfg *config.Config) *Scheduler {
	s := &Scheduler{
		threshold: cfg.FailureThreshold,
		base:      cfg.CooldownBase.Std(),
		max:       cfg.CooldownMax.Std(),
		now:       time.Now,
		health:    make(map[string]*Health, len(cfg.Sources)),
		order:     make([]string, 0, len(cfg.Sources)),
	}
	for _, def := range cfg.Sources {
		s.health[def.Name] = &Health{
			Name:     def.Name,
			Disabled: cfg.SourceDisabled(def),
		}
		s.order = append(s.order, def.Name)
	}
	return s
}

// ✅ ShouldRun reports whether a source is eligible this cycle. Disabled
// sources never run; cooling sources are skipped without accruing any
// failure penalty.
func (s *Scheduler) ShouldRun(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.health[name]
	if !ok {
		return false
	}
	if h.Disabled {
		return false
	}
	return !h.cooling(s.now())
}

// 🎉 ReportSuccess clears a source's failure streak and cooldown
func (s *Scheduler) ReportSuccess(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.health[name]
	if !ok {
		return
	}
	h.ConsecutiveFailures = 0
	h.CooledDownUntil = time.Time{}
	h.LastSuccess = s.now()
}

// 💥 ReportFailure bumps a source's failure streak. Once the streak
// reaches the threshold the source cools down for a capped-exponential
// stretch, so a persistently broken surface is polled less and less
// often instead of hammered or abandoned.
func (s *Scheduler) ReportFailure(name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.health[name]
	if !ok {
		return
	}
	now := s.now()
	h.ConsecutiveFailures++
	h.LastErrorAt = now
	if err != nil {
		h.LastError = err.Error()
	}
	if h.ConsecutiveFailures >= s.threshold {
		h.CooledDownUntil = now.Add(s.backoff(h.ConsecutiveFailures))
	}
}

// backoff doubles per failure beyond the threshold, capped at max
func (s *Scheduler) backoff(failures int) time.Duration {
	d := s.base
	for i := 0; i < failures-s.threshold; i++ {
		d *= 2
		if d >= s.max {
			return s.max
		}
	}
	if d > s.max {
		d = s.max
	}
	return d
}

// 📋 List returns a copy of every health record in configuration order,
// with each record's State resolved against the current clock.
func (s *Scheduler) List() []Health {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	records := make([]Health, 0, len(s.order))
	for _, name := range s.order {
		h := *s.health[name]
		switch {
		case h.Disabled:
			h.State = StateDisabled
		case h.cooling(now):
			h.State = StateCooling
		default:
			h.State = StateActive
		}
		records = append(records, h)
	}
	return records
}
