package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	return zerolog.New(os.Stderr).WithContext(context.Background())
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "writing test config")
	return path
}

// 🧪 TestLoadYAML tests loading a YAML config file
func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "hunt.yaml", `
query: "sora invite"
subject: sora
poll_interval: 90s
max_items: 40
failure_threshold: 5
cooldown_base: 30s
cooldown_max: 10m
disable:
  - "X live*"
sources:
  - name: "Reddit /r/OpenAI"
    kind: reddit_subreddit
    subreddit: OpenAI
  - name: "Bluesky search"
    kind: bluesky
    query: "sora invite code"
    delay: 2s
`)

	cfg, err := Load(testContext(), path)
	require.NoError(t, err, "loading yaml config")

	assert.Equal(t, "sora invite", cfg.Query, "should use configured query")
	assert.Equal(t, 90*time.Second, cfg.PollInterval.Std(), "should parse duration strings")
	assert.Equal(t, 40, cfg.MaxItems, "should use configured max items")
	assert.Equal(t, 5, cfg.FailureThreshold, "should use configured threshold")
	assert.Equal(t, 30*time.Second, cfg.CooldownBase.Std(), "should parse cooldown base")
	assert.Equal(t, 10*time.Minute, cfg.CooldownMax.Std(), "should parse cooldown max")
	require.Len(t, cfg.Sources, 2, "should keep configured sources")
	assert.Equal(t, 2*time.Second, cfg.Sources[1].Delay.Std(), "should parse source delay")
	assert.Equal(t, DefaultUserAgent, cfg.UserAgent, "should default the user agent")
}

// 🧪 TestLoadYAMLDurationSeconds tests bare numbers decoding as seconds
func TestLoadYAMLDurationSeconds(t *testing.T) {
	path := writeConfig(t, "hunt.yaml", `
poll_interval: 120
`)

	cfg, err := Load(testContext(), path)
	require.NoError(t, err, "loading yaml config")
	assert.Equal(t, 2*time.Minute, cfg.PollInterval.Std(), "should read bare ints as seconds")
}

// 🧪 TestLoadYAMLUnknownField tests strict field checking
func TestLoadYAMLUnknownField(t *testing.T) {
	path := writeConfig(t, "hunt.yaml", `
query: sora
pol_interval: 60s
`)

	_, err := Load(testContext(), path)
	require.Error(t, err, "should reject unknown fields")
	assert.Contains(t, err.Error(), "pol_interval", "error should name the bad field")
}

// 🧪 TestLoadJSON tests loading a JSON config file
func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "hunt.json", `{
  "query": "sora invite",
  "poll_interval": 45,
  "max_items": 20,
  "sources": [
    {"name": "Hacker News", "kind": "hackernews"},
    {"name": "Bluesky search", "kind": "bluesky", "delay": "1500ms"}
  ]
}`)

	cfg, err := Load(testContext(), path)
	require.NoError(t, err, "loading json config")

	assert.Equal(t, 45*time.Second, cfg.PollInterval.Std(), "should read json numbers as seconds")
	require.Len(t, cfg.Sources, 2, "should decode sources")
	assert.Equal(t, 1500*time.Millisecond, cfg.Sources[1].Delay.Std(), "should parse duration strings")
}

// 🧪 TestLoadJSONUnknownField tests DisallowUnknownFields behavior
func TestLoadJSONUnknownField(t *testing.T) {
	path := writeConfig(t, "hunt.json", `{"max_posts": 12}`)

	_, err := Load(testContext(), path)
	require.Error(t, err, "should reject unknown json fields")
}

// 🧪 TestLoadHCL tests loading an HCL config file with source blocks
func TestLoadHCL(t *testing.T) {
	path := writeConfig(t, "hunt.hcl", `
query         = "sora invite"
poll_interval = "2m"
listen        = ":8080"

source "Reddit /r/OpenAI" {
  kind      = "reddit_subreddit"
  subreddit = "OpenAI"
}

source "Release feeds" {
  kind  = "rss"
  feeds = ["https://example.com/a.xml", "https://example.com/b.xml"]
  delay = "500ms"
}
`)

	cfg, err := Load(testContext(), path)
	require.NoError(t, err, "loading hcl config")

	assert.Equal(t, 2*time.Minute, cfg.PollInterval.Std(), "should parse hcl durations")
	assert.Equal(t, ":8080", cfg.Listen, "should use configured listen address")
	require.Len(t, cfg.Sources, 2, "should decode source blocks")
	assert.Equal(t, "Reddit /r/OpenAI", cfg.Sources[0].Name, "should take the name from the block label")
	assert.Equal(t, []string{"https://example.com/a.xml", "https://example.com/b.xml"}, cfg.Sources[1].Feeds,
		"should decode feed lists")
	assert.Equal(t, 500*time.Millisecond, cfg.Sources[1].Delay.Std(), "should parse source delays")
}

// 🧪 TestLoadHCLBadDuration tests duration errors during HCL conversion
func TestLoadHCLBadDuration(t *testing.T) {
	path := writeConfig(t, "hunt.hcl", `
poll_interval = "soon"
`)

	_, err := Load(testContext(), path)
	require.Error(t, err, "should reject unparseable durations")
	assert.Contains(t, err.Error(), "poll_interval", "error should name the field")
}

// 🧪 TestLoadUnsupportedExtension tests the no-parser error
func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeConfig(t, "hunt.toml", `query = "sora"`)

	_, err := Load(testContext(), path)
	require.Error(t, err, "should fail without a parser")
	assert.Contains(t, err.Error(), "no parser found", "error should say no parser matched")
}

// 🧪 TestLoadMissingFile tests the read error path
func TestLoadMissingFile(t *testing.T) {
	_, err := Load(testContext(), filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err, "should surface the read error")
}

// 🧪 TestLoadDefaults tests that an empty path produces the built-in hunt
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(testContext(), "")
	require.NoError(t, err, "defaults should always validate")

	assert.Equal(t, DefaultQuery, cfg.Query, "should use the default query")
	assert.Equal(t, DefaultPollInterval, cfg.PollInterval.Std(), "should use the default interval")
	assert.Equal(t, DefaultMaxItems, cfg.MaxItems, "should use the default item cap")
	assert.Equal(t, DefaultMaxCandidates, cfg.MaxCandidates, "should use the default retention")
	assert.Equal(t, DefaultFailureThreshold, cfg.FailureThreshold, "should use the default threshold")
	assert.Len(t, cfg.Sources, 15, "should ship the full built-in source list")
}

// 🧪 TestValidateClamps tests limit clamping instead of rejection
func TestValidateClamps(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		check       func(*testing.T, *Config)
		description string
	}{
		{
			name:   "poll_interval_floor",
			mutate: func(c *Config) { c.PollInterval = Duration(5 * time.Second) },
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, MinPollInterval, c.PollInterval.Std(), "should floor the poll interval")
			},
			description: "intervals below 10s are raised to the floor",
		},
		{
			name:   "max_items_ceiling",
			mutate: func(c *Config) { c.MaxItems = 500 },
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, MaxItemsCeiling, c.MaxItems, "should cap max items at 100")
			},
			description: "item caps above 100 are lowered",
		},
		{
			name:   "max_items_negative",
			mutate: func(c *Config) { c.MaxItems = -3 },
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, 1, c.MaxItems, "should raise max items to at least 1")
			},
			description: "negative item caps become 1",
		},
		{
			name:   "cooldown_max_below_base",
			mutate: func(c *Config) { c.CooldownBase = Duration(time.Hour); c.CooldownMax = Duration(time.Minute) },
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, time.Hour, c.CooldownMax.Std(), "should raise an inverted cooldown cap to the base")
			},
			description: "a cap below the base is raised to the base",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			require.NoError(t, cfg.Validate(), tt.description)
			tt.check(t, cfg)
		})
	}
}

// 🧪 TestValidateErrors tests hard validation failures
func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     string
		description string
	}{
		{
			name: "missing_source_name",
			mutate: func(c *Config) {
				c.Sources = []SourceDef{{Kind: "bluesky"}}
			},
			wantErr:     "name is required",
			description: "sources must be named",
		},
		{
			name: "missing_source_kind",
			mutate: func(c *Config) {
				c.Sources = []SourceDef{{Name: "one"}}
			},
			wantErr:     "kind is required",
			description: "sources must have a kind",
		},
		{
			name: "duplicate_source_names",
			mutate: func(c *Config) {
				c.Sources = []SourceDef{
					{Name: "one", Kind: "bluesky"},
					{Name: "one", Kind: "hackernews"},
				}
			},
			wantErr:     "duplicate source name",
			description: "source names must be unique",
		},
		{
			name: "invalid_disable_glob",
			mutate: func(c *Config) {
				c.Disable = []string{"[unclosed"}
			},
			wantErr:     "invalid disable pattern",
			description: "disable globs must compile",
		},
		{
			name: "negative_source_delay",
			mutate: func(c *Config) {
				c.Sources = []SourceDef{{Name: "one", Kind: "bluesky", Delay: Duration(-time.Second)}}
			},
			wantErr:     "delay must not be negative",
			description: "source delays cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err, tt.description)
			assert.Contains(t, err.Error(), tt.wantErr, tt.description)
		})
	}
}

// 🧪 TestSourceDisabled tests the disable flag and glob matching
func TestSourceDisabled(t *testing.T) {
	cfg := Default()
	cfg.Disable = []string{"X live*"}
	require.NoError(t, cfg.Validate(), "validating config with disable globs")

	tests := []struct {
		name        string
		def         SourceDef
		want        bool
		description string
	}{
		{
			name:        "explicit_flag",
			def:         SourceDef{Name: "Hacker News", Disabled: true},
			want:        true,
			description: "the disabled flag always wins",
		},
		{
			name:        "glob_match",
			def:         SourceDef{Name: "X live (#SoraInvite)"},
			want:        true,
			description: "globs match by source name",
		},
		{
			name:        "no_match",
			def:         SourceDef{Name: "Bluesky search"},
			want:        false,
			description: "unmatched sources stay enabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.SourceDisabled(tt.def), tt.description)
		})
	}
}

// 🧪 TestEnvOverrides tests environment variables layering over file values
func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, "hunt.yaml", `
query: "from file"
max_items: 10
`)

	t.Setenv("QUERY", "from env")
	t.Setenv("POLL_INTERVAL_SECONDS", "300")
	t.Setenv("MAX_POSTS", "33")
	t.Setenv("GITHUB_TOKEN", "ghp_test")

	cfg, err := Load(testContext(), path)
	require.NoError(t, err, "loading config with env overrides")

	assert.Equal(t, "from env", cfg.Query, "QUERY should override the file")
	assert.Equal(t, 5*time.Minute, cfg.PollInterval.Std(), "POLL_INTERVAL_SECONDS should override the file")
	assert.Equal(t, 33, cfg.MaxItems, "MAX_POSTS should override the file")
	assert.Equal(t, "ghp_test", cfg.GitHubToken, "GITHUB_TOKEN should be picked up")
}

// 🧪 TestEnvOverrideBadNumber tests malformed numeric overrides
func TestEnvOverrideBadNumber(t *testing.T) {
	t.Setenv("POLL_INTERVAL_SECONDS", "every minute")

	_, err := Load(testContext(), "")
	require.Error(t, err, "should reject unparseable override values")
}
