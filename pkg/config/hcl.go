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
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Define HCL schema. Durations are strings here and parsed during
	// conversion.
	type hclSource struct {
		Name      string   `hcl:"name,label"`
		Kind      string   `hcl:"kind"`
		Label     string   `hcl:"label,optional"`
		Disabled  bool     `hcl:"disabled,optional"`
		Query     string   `hcl:"query,optional"`
		Subreddit string   `hcl:"subreddit,optional"`
		Window    string   `hcl:"window,optional"`
		URL       string   `hcl:"url,optional"`
		Feeds     []string `hcl:"feeds,optional"`
		MaxItems  int      `hcl:"max_items,optional"`
		Delay     string   `hcl:"delay,optional"`
	}
	type hclConfig struct {
		Query            string      `hcl:"query,optional"`
		Subject          string      `hcl:"subject,optional"`
		UserAgent        string      `hcl:"user_agent,optional"`
		PollInterval     string      `hcl:"poll_interval,optional"`
		MaxItems         int         `hcl:"max_items,optional"`
		MaxCandidates    int         `hcl:"max_candidates,optional"`
		MaxLogEntries    int         `hcl:"max_log_entries,optional"`
		FailureThreshold int         `hcl:"failure_threshold,optional"`
		CooldownBase     string      `hcl:"cooldown_base,optional"`
		CooldownMax      string      `hcl:"cooldown_max,optional"`
		FetchConcurrency int         `hcl:"fetch_concurrency,optional"`
		Listen           string      `hcl:"listen,optional"`
		Disable          []string    `hcl:"disable,optional"`
		Sources          []hclSource `hcl:"source,block"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		Query:            hclCfg.Query,
		Subject:          hclCfg.Subject,
		UserAgent:        hclCfg.UserAgent,
		MaxItems:         hclCfg.MaxItems,
		MaxCandidates:    hclCfg.MaxCandidates,
		MaxLogEntries:    hclCfg.MaxLogEntries,
		FailureThreshold: hclCfg.FailureThreshold,
		FetchConcurrency: hclCfg.FetchConcurrency,
		Listen:           hclCfg.Listen,
		Disable:          hclCfg.Disable,
	}

	var err error
	if cfg.PollInterval, err = parseHCLDuration("poll_interval", hclCfg.PollInterval); err != nil {
		return nil, err
	}
	if cfg.CooldownBase, err = parseHCLDuration("cooldown_base", hclCfg.CooldownBase); err != nil {
		return nil, err
	}
	if cfg.CooldownMax, err = parseHCLDuration("cooldown_max", hclCfg.CooldownMax); err != nil {
		return nil, err
	}

	for _, src := range hclCfg.Sources {
		delay, err := parseHCLDuration("delay", src.Delay)
		if err != nil {
			return nil, errors.Errorf("source %q: %w", src.Name, err)
		}
		cfg.Sources = append(cfg.Sources, SourceDef{
			Name:      src.Name,
			Kind:      src.Kind,
			Label:     src.Label,
			Disabled:  src.Disabled,
			Query:     src.Query,
			Subreddit: src.Subreddit,
			Window:    src.Window,
			URL:       src.URL,
			Feeds:     src.Feeds,
			MaxItems:  src.MaxItems,
			Delay:     delay,
		})
	}

	return cfg, nil
}

func parseHCLDuration(field, value string) (Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, errors.Errorf("parsing %s: %w", field, err)
	}
	return Duration(d), nil
}
