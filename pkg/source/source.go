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

package source

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/walteh/invitehound/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// 📦 Item is one post, story or entry produced at the adapter boundary.
// Everything downstream works from this shape, never from raw payloads.
type Item struct {
	Title string // Display title, may be empty
	Body  string // Free text to scan for codes
	URL   string // Link back to the post, may be empty
}

// 🔌 Source fetches recent public posts from one surface
type Source interface {
	// 📝 Name returns the unique source name from its definition
	Name() string

	// 📥 Fetch retrieves the newest items. Any failure is reported as a
	// *SourceError; Fetch never panics.
	Fetch(ctx context.Context) ([]Item, error)
}

// ❌ SourceError wraps a failure inside an adapter with the source it
// came from. The scheduler uses it to isolate per-source trouble.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// wrap tags an adapter failure with its source name. Errors that already
// carry a source pass through untouched.
func wrap(name string, err error) error {
	if err == nil {
		return nil
	}
	var serr *SourceError
	if errors.As(err, &serr) {
		return err
	}
	return &SourceError{Source: name, Err: err}
}

// 🏭 Factory builds an adapter from its definition
type Factory func(ctx context.Context, def config.SourceDef, cfg *config.Config, client *Client) (Source, error)

var (
	// 🗺️ kinds is a map of adapter kinds to factories
	kinds = make(map[string]Factory)
)

// 📝 Register registers an adapter factory
func Register(kind string, factory Factory) {
	kinds[kind] = factory
}

// 🎯 New builds the adapter for a source definition
func New(ctx context.Context, def config.SourceDef, cfg *config.Config, client *Client) (Source, error) {
	factory, ok := kinds[def.Kind]
	if !ok {
		return nil, errors.Errorf("unknown source kind %q (options: %s)", def.Kind, strings.Join(Kinds(), ", "))
	}

	src, err := factory(ctx, def, cfg, client)
	if err != nil {
		return nil, errors.Errorf("building source %q: %w", def.Name, err)
	}

	if def.Delay > 0 {
		src = &delayedSource{inner: src, delay: def.Delay.Std(), sleep: sleepCtx}
	}
	return src, nil
}

// 🧰 BuildAll constructs adapters for every definition in the config,
// in definition order
func BuildAll(ctx context.Context, cfg *config.Config, client *Client) ([]Source, error) {
	sources := make([]Source, 0, len(cfg.Sources))
	for _, def := range cfg.Sources {
		src, err := New(ctx, def, cfg, client)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// ⏳ delayedSource pauses before each fetch. Politeness spacing for
// surfaces that rate limit aggressively.
type delayedSource struct {
	inner Source
	delay time.Duration
	sleep func(ctx context.Context, d time.Duration) error
}

func (s *delayedSource) Name() string {
	return s.inner.Name()
}

func (s *delayedSource) Fetch(ctx context.Context) ([]Item, error) {
	if err := s.sleep(ctx, s.delay); err != nil {
		return nil, wrap(s.Name(), err)
	}
	return s.inner.Fetch(ctx)
}

// 📋 Kinds returns the registered adapter kinds, sorted
func Kinds() []string {
	names := make([]string, 0, len(kinds))
	for kind := range kinds {
		names = append(names, kind)
	}
	sort.Strings(names)
	return names
}

// itemLimit resolves the per-fetch item cap for a definition, bounded by
// an adapter-specific hard cap when one applies (0 means none).
func itemLimit(def config.SourceDef, cfg *config.Config, hardCap int) int {
	limit := cfg.MaxItems
	if def.MaxItems > 0 && def.MaxItems < limit {
		limit = def.MaxItems
	}
	if hardCap > 0 && limit > hardCap {
		limit = hardCap
	}
	return limit
}

// searchQuery resolves a definition's search term, falling back to the
// hunt-wide query.
func searchQuery(def config.SourceDef, cfg *config.Config) string {
	if def.Query != "" {
		return def.Query
	}
	return cfg.Query
}
