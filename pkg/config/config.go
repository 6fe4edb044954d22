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

package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Hunt defaults. These mirror what the hosted hunter ran with and are
// applied by Validate wherever the config file leaves a field unset.
const (
	DefaultQuery     = "Sora invite code OR 'Sora 2 invite' OR 'Sora2 invite'"
	DefaultSubject   = "sora"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36 " +
		"(InviteHound/1.0; +https://github.com/walteh/invitehound)"
	DefaultListen = ":3000"

	DefaultPollInterval = 60 * time.Second
	MinPollInterval     = 10 * time.Second

	DefaultMaxItems      = 75
	MaxItemsCeiling      = 100
	DefaultMaxCandidates = 1000
	DefaultMaxLogEntries = 500

	DefaultFailureThreshold = 3
	DefaultCooldownBase     = time.Minute
	DefaultCooldownMax      = 30 * time.Minute
	DefaultFetchConcurrency = 4
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📦 SourceDef describes one surface to poll for invite codes
type SourceDef struct {
	Name      string   `json:"name" yaml:"name"`                             // Unique display name
	Kind      string   `json:"kind" yaml:"kind"`                             // Adapter kind (reddit_search, bluesky, ...)
	Label     string   `json:"label,omitempty" yaml:"label,omitempty"`       // Item title override for proxy-style sources
	Disabled  bool     `json:"disabled,omitempty" yaml:"disabled,omitempty"` // Never polled when true
	Query     string   `json:"query,omitempty" yaml:"query,omitempty"`       // Search term, falls back to the hunt query
	Subreddit string   `json:"subreddit,omitempty" yaml:"subreddit,omitempty"`
	Window    string   `json:"window,omitempty" yaml:"window,omitempty"` // Reddit time window (day, week, ...)
	URL       string   `json:"url,omitempty" yaml:"url,omitempty"`       // Base or target URL for URL-driven kinds
	Feeds     []string `json:"feeds,omitempty" yaml:"feeds,omitempty"`   // Feed URLs for the rss kind
	MaxItems  int      `json:"max_items,omitempty" yaml:"max_items,omitempty"`
	Delay     Duration `json:"delay,omitempty" yaml:"delay,omitempty"` // Politeness delay before each fetch
}

// 📚 Config represents the complete hunt configuration
type Config struct {
	Query            string      `json:"query,omitempty" yaml:"query,omitempty"`
	Subject          string      `json:"subject,omitempty" yaml:"subject,omitempty"`
	UserAgent        string      `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	PollInterval     Duration    `json:"poll_interval,omitempty" yaml:"poll_interval,omitempty"`
	MaxItems         int         `json:"max_items,omitempty" yaml:"max_items,omitempty"`
	MaxCandidates    int         `json:"max_candidates,omitempty" yaml:"max_candidates,omitempty"`
	MaxLogEntries    int         `json:"max_log_entries,omitempty" yaml:"max_log_entries,omitempty"`
	FailureThreshold int         `json:"failure_threshold,omitempty" yaml:"failure_threshold,omitempty"`
	CooldownBase     Duration    `json:"cooldown_base,omitempty" yaml:"cooldown_base,omitempty"`
	CooldownMax      Duration    `json:"cooldown_max,omitempty" yaml:"cooldown_max,omitempty"`
	FetchConcurrency int         `json:"fetch_concurrency,omitempty" yaml:"fetch_concurrency,omitempty"`
	Listen           string      `json:"listen,omitempty" yaml:"listen,omitempty"`
	Disable          []string    `json:"disable,omitempty" yaml:"disable,omitempty"` // Glob patterns over source names
	Sources          []SourceDef `json:"sources,omitempty" yaml:"sources,omitempty"`

	// GitHubToken comes from the GITHUB_TOKEN environment variable, never
	// from a config file
	GitHubToken string `json:"-" yaml:"-"`
}

// 🎯 Load loads the configuration from a file. An empty path yields the
// default configuration. Environment overrides are applied either way.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)

	var cfg *Config
	if path == "" {
		logger.Debug().Msg("no config file, using defaults")
		cfg = Default()
	} else {
		logger.Debug().Str("path", path).Msg("loading configuration")

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Errorf("reading config file: %w", err)
		}

		p := GetParser(path)
		if p == nil {
			return nil, errors.Errorf("no parser found for file: %s", path)
		}

		cfg, err = p.Parse(ctx, data)
		if err != nil {
			return nil, errors.Errorf("parsing config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, errors.Errorf("applying environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// applyEnv layers process environment overrides on top of file values
func (cfg *Config) applyEnv() error {
	if v := os.Getenv("QUERY"); v != "" {
		cfg.Query = v
	}
	if v := os.Getenv("USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("POLL_INTERVAL_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return errors.Errorf("parsing POLL_INTERVAL_SECONDS: %w", err)
		}
		cfg.PollInterval = Duration(time.Duration(secs) * time.Second)
	}
	if v := os.Getenv("MAX_POSTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Errorf("parsing MAX_POSTS: %w", err)
		}
		cfg.MaxItems = n
	}
	cfg.GitHubToken = os.Getenv("GITHUB_TOKEN")
	return nil
}

// 🔍 Validate checks the configuration and fills in defaults. Numeric
// limits are clamped rather than rejected so a sloppy config still runs.
func (cfg *Config) Validate() error {
	if cfg.Query == "" {
		cfg.Query = DefaultQuery
	}
	if cfg.Subject == "" {
		cfg.Subject = DefaultSubject
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Listen == "" {
		cfg.Listen = DefaultListen
	}

	if cfg.PollInterval == 0 {
		cfg.PollInterval = Duration(DefaultPollInterval)
	}
	if cfg.PollInterval.Std() < MinPollInterval {
		cfg.PollInterval = Duration(MinPollInterval)
	}

	if cfg.MaxItems == 0 {
		cfg.MaxItems = DefaultMaxItems
	}
	if cfg.MaxItems < 1 {
		cfg.MaxItems = 1
	}
	if cfg.MaxItems > MaxItemsCeiling {
		cfg.MaxItems = MaxItemsCeiling
	}

	if cfg.MaxCandidates <= 0 {
		cfg.MaxCandidates = DefaultMaxCandidates
	}
	if cfg.MaxLogEntries <= 0 {
		cfg.MaxLogEntries = DefaultMaxLogEntries
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = DefaultFailureThreshold
	}
	if cfg.CooldownBase <= 0 {
		cfg.CooldownBase = Duration(DefaultCooldownBase)
	}
	if cfg.CooldownMax <= 0 {
		cfg.CooldownMax = Duration(DefaultCooldownMax)
	}
	if cfg.CooldownMax < cfg.CooldownBase {
		cfg.CooldownMax = cfg.CooldownBase
	}
	if cfg.FetchConcurrency <= 0 {
		cfg.FetchConcurrency = DefaultFetchConcurrency
	}

	for _, pattern := range cfg.Disable {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid disable pattern %q", pattern)
		}
	}

	if len(cfg.Sources) == 0 {
		cfg.Sources = DefaultSources()
	}

	names := make(map[string]struct{}, len(cfg.Sources))
	for i := range cfg.Sources {
		src := &cfg.Sources[i]
		if src.Name == "" {
			return errors.Errorf("sources[%d]: name is required", i)
		}
		if src.Kind == "" {
			return errors.Errorf("source %q: kind is required", src.Name)
		}
		if _, dup := names[src.Name]; dup {
			return errors.Errorf("duplicate source name %q", src.Name)
		}
		names[src.Name] = struct{}{}

		if src.MaxItems < 0 {
			return errors.Errorf("source %q: max_items must not be negative", src.Name)
		}
		if src.Delay < 0 {
			return errors.Errorf("source %q: delay must not be negative", src.Name)
		}
	}

	return nil
}

// 🚫 SourceDisabled reports whether a source name is switched off, either
// by its own flag or by a disable glob.
func (cfg *Config) SourceDisabled(def SourceDef) bool {
	if def.Disabled {
		return true
	}
	for _, pattern := range cfg.Disable {
		if ok, err := doublestar.Match(pattern, def.Name); err == nil && ok {
			return true
		}
	}
	return false
}

// 📝 String returns a short human description of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%q over %d sources every %s", cfg.Query, len(cfg.Sources), cfg.PollInterval)
}

// 🏭 Default returns the configuration the hunter ships with
func Default() *Config {
	cfg := &Config{Sources: DefaultSources()}
	// Validate never fails on the built-in defaults
	_ = cfg.Validate()
	return cfg
}

// 🗺️ DefaultSources returns the built-in source list
func DefaultSources() []SourceDef {
	return []SourceDef{
		{Name: "Reddit search (configured)", Kind: "reddit_search", Window: "day"},
		{Name: "Reddit search (Sora invite code)", Kind: "reddit_search", Query: "Sora invite code", Window: "week"},
		{Name: "Reddit search (Sora beta access)", Kind: "reddit_search", Query: `"Sora" "beta" "access"`, Window: "week"},
		{Name: "Reddit /r/ChatGPT", Kind: "reddit_subreddit", Subreddit: "ChatGPT"},
		{Name: "Reddit /r/OpenAI", Kind: "reddit_subreddit", Subreddit: "OpenAI"},
		{Name: "Reddit /r/SoraAI", Kind: "reddit_subreddit", Subreddit: "SoraAI"},
		{Name: "Reddit /r/artificial", Kind: "reddit_subreddit", Subreddit: "artificial"},
		{
			Name:  "X live (Sora invite code)",
			Kind:  "x_live",
			URL:   "https://x.com/search?q=Sora%20invite%20code&f=live",
			Label: "Live tweets: Sora invite code",
			Delay: Duration(time.Second),
		},
		{
			Name:  "X live (#SoraInvite)",
			Kind:  "x_live",
			URL:   "https://x.com/search?q=%23SoraInvite&f=live",
			Label: "Live tweets: #SoraInvite",
			Delay: Duration(time.Second),
		},
		{
			Name:  "X live (#SoraAccess)",
			Kind:  "x_live",
			URL:   "https://x.com/search?q=%23SoraAccess&f=live",
			Label: "Live tweets: #SoraAccess",
			Delay: Duration(time.Second),
		},
		{Name: "Bluesky search", Kind: "bluesky", Query: "Sora invite code", Delay: Duration(2 * time.Second)},
		{Name: "GitHub issues", Kind: "github", Query: "Sora invite code OR Sora access code", Delay: Duration(3 * time.Second)},
		{Name: "Mastodon search", Kind: "mastodon", Query: "Sora invite", Delay: Duration(2 * time.Second)},
		{Name: "Hacker News", Kind: "hackernews"},
		{Name: "OpenAI Community", Kind: "discourse", URL: "https://community.openai.com"},
	}
}
