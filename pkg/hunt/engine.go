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

package hunt

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/walteh/invitehound/pkg/config"
	"github.com/walteh/invitehound/pkg/extract"
	"github.com/walteh/invitehound/pkg/schedule"
	"github.com/walteh/invitehound/pkg/source"
	"golang.org/x/sync/errgroup"
)

// 📊 Report summarizes one poll cycle for observability. The engine
// emits it as a value; rendering is someone else's job.
type Report struct {
	Started   time.Time
	Duration  time.Duration
	Attempted int // Sources actually invoked
	Succeeded int
	Failed    int
	Cooling   int // Sources skipped while their cooldown runs
	Disabled  int
	New       []Candidate
	Errors    []error
}

// 🔧 Engine owns all hunt state: the dedup set, the scheduler and the
// snapshot store. It is the single writer; one cycle completes before
// the next starts.
type Engine struct {
	cfg     *config.Config
	sources []source.Source
	sched   *schedule.Scheduler
	store   *Store
	kinds   map[string]string
	tokens  func(string) []string // Pluggable code predicate
	now     func() time.Time

	mu   sync.Mutex // Serializes cycles; the seen set has no other writer
	seen map[string]struct{}

	// OnCycle, when set, receives every report after its snapshot is
	// published
	OnCycle func(Report)
}

// 🏭 New creates an engine over the given sources
func New(cfg *config.Config, sources []source.Source, sched *schedule.Scheduler, store *Store) *Engine {
	kinds := make(map[string]string, len(cfg.Sources))
	for _, def := range cfg.Sources {
		kinds[def.Name] = def.Kind
	}
	return &Engine{
		cfg:     cfg,
		sources: sources,
		sched:   sched,
		store:   store,
		kinds:   kinds,
		tokens:  extract.Tokens,
		now:     time.Now,
		seen:    make(map[string]struct{}),
	}
}

type fetchResult struct {
	items []source.Item
	err   error
}

// 🔄 RunCycle polls every eligible source once and publishes a new
// snapshot. A failing source is reported to the scheduler and never
// stops the others from contributing; even an all-failed cycle still
// publishes.
func (e *Engine) RunCycle(ctx context.Context) Report {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := e.now()
	report := Report{Started: start}

	var entries []Entry
	entries = append(entries, e.entry(LevelInfo,
		fmt.Sprintf("Starting poll cycle (%d sources)", len(e.sources))))

	states := make(map[string]schedule.State, len(e.sources))
	for _, h := range e.sched.List() {
		states[h.Name] = h.State
	}

	var toRun []source.Source
	for _, src := range e.sources {
		switch states[src.Name()] {
		case schedule.StateDisabled:
			report.Disabled++
		case schedule.StateCooling:
			report.Cooling++
		default:
			toRun = append(toRun, src)
		}
	}
	report.Attempted = len(toRun)

	// Fetch concurrently into a slot per source. Failures stay in their
	// slot; nothing here cancels the siblings.
	results := make([]fetchResult, len(toRun))
	g := new(errgroup.Group)
	g.SetLimit(e.cfg.FetchConcurrency)
	for i, src := range toRun {
		i, src := i, src
		g.Go(func() error {
			items, err := src.Fetch(ctx)
			results[i] = fetchResult{items: items, err: err}
			return nil
		})
	}
	_ = g.Wait()

	// Merge in source-list order, so the first source to surface a code
	// owns its candidate regardless of fetch timing.
	var staged []Candidate
	for i, res := range results {
		name := toRun[i].Name()
		if res.err != nil {
			report.Failed++
			report.Errors = append(report.Errors, res.err)
			e.sched.ReportFailure(name, res.err)
			entries = append(entries, e.entry(LevelError, res.err.Error()))
			continue
		}
		report.Succeeded++
		e.sched.ReportSuccess(name)

		fresh := e.process(res.items, name, start)
		for _, c := range fresh {
			entries = append(entries, e.entry(LevelSuccess,
				fmt.Sprintf("New candidate %s from %s (conf=%.2f)", c.Code, name, c.Confidence)))
		}
		staged = append(staged, fresh...)
		entries = append(entries, e.entry(LevelDebug,
			fmt.Sprintf("%s: %d item(s), %d new", name, len(res.items), len(fresh))))
	}

	if len(staged) > 0 {
		entries = append(entries, e.entry(LevelSuccess,
			fmt.Sprintf("Discovered %d new candidates", len(staged))))
	} else {
		entries = append(entries, e.entry(LevelInfo, "No new candidates this cycle"))
	}

	status := PollStatus{At: start}
	if report.Attempted > 0 && report.Succeeded == 0 {
		status.Error = fmt.Sprintf("all %d sources failed", report.Attempted)
	}

	e.publish(status, staged, entries, report.Succeeded, report.Failed)

	report.New = staged
	report.Duration = e.now().Sub(start)

	if e.OnCycle != nil {
		e.OnCycle(report)
	}
	return report
}

// process runs extraction over one source's items, staging a candidate
// for every code the hunt has never seen before
func (e *Engine) process(items []source.Item, name string, ts time.Time) []Candidate {
	var fresh []Candidate
	for _, item := range items {
		text := item.Title + "\n" + item.Body
		for _, code := range e.tokens(text) {
			if _, dup := e.seen[code]; dup {
				continue
			}
			e.seen[code] = struct{}{}

			title := item.Title
			if title == "" {
				title = "Untitled"
			}
			if !strings.Contains(title, name) {
				title = "[" + name + "] " + title
			}

			fresh = append(fresh, Candidate{
				Code:         code,
				ExampleText:  extract.Snippet(item.Title, item.Body, code),
				SourceTitle:  title,
				URL:          item.URL,
				DiscoveredAt: ts,
				Confidence:   extract.Confidence(text, e.cfg.Subject),
				SourceType:   e.sourceType(name),
			})
		}
	}
	return fresh
}

// publish swaps in the next snapshot: the cycle's candidates prepended
// to the previous ones, truncated at the retention cap
func (e *Engine) publish(status PollStatus, staged []Candidate, entries []Entry, succeeded, failed int) {
	prev := e.store.Read()

	candidates := make([]Candidate, 0, len(staged)+len(prev.Candidates))
	candidates = append(candidates, staged...)
	candidates = append(candidates, prev.Candidates...)
	if len(candidates) > e.cfg.MaxCandidates {
		candidates = candidates[:e.cfg.MaxCandidates]
	}

	// Activity is served newest first; the cycle's entries flip around
	// before they go on the front
	activity := make([]Entry, 0, len(entries)+len(prev.Activity))
	for i := len(entries) - 1; i >= 0; i-- {
		activity = append(activity, entries[i])
	}
	activity = append(activity, prev.Activity...)
	if len(activity) > e.cfg.MaxLogEntries {
		activity = activity[:e.cfg.MaxLogEntries]
	}

	e.store.Publish(&Snapshot{
		LastPoll:    status,
		Candidates:  candidates,
		UniqueCodes: len(e.seen),
		Successes:   prev.Successes + succeeded,
		Errors:      prev.Errors + failed,
		Activity:    activity,
	})
}

func (e *Engine) sourceType(name string) string {
	if kind, ok := e.kinds[name]; ok {
		return kind
	}
	return "unknown"
}

func (e *Engine) entry(level, message string) Entry {
	return Entry{Timestamp: e.now(), Level: level, Message: message}
}
