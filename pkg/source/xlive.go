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

	"github.com/walteh/invitehound/pkg/config"
	"gitlab.com/tozd/go/errors"
)

const (
	// xProxyPrefix fronts X search pages with a proxy that renders them
	// to plain text, since x.com itself requires a logged-in browser
	xProxyPrefix = "https://r.jina.ai/"

	// xTextLimit bounds how much proxied page text one fetch yields
	xTextLimit = 15000
)

func init() {
	Register("x_live", newXLive)
}

// 🐦 xLive reads an X live-search page through the text proxy. The whole
// page body becomes a single item; extraction digs the codes out of it.
type xLive struct {
	name   string
	target string
	label  string
	proxy  string
	client *Client
}

func newXLive(ctx context.Context, def config.SourceDef, cfg *config.Config, client *Client) (Source, error) {
	if def.URL == "" {
		return nil, errors.New("url is required")
	}
	label := def.Label
	if label == "" {
		label = def.Name
	}
	return &xLive{
		name:   def.Name,
		target: def.URL,
		label:  label,
		proxy:  xProxyPrefix,
		client: client,
	}, nil
}

func (s *xLive) Name() string {
	return s.name
}

func (s *xLive) Fetch(ctx context.Context) ([]Item, error) {
	text, err := s.client.GetText(ctx, s.proxy+s.target, nil, xTextLimit)
	if err != nil {
		return nil, wrap(s.name, err)
	}
	return []Item{{Title: s.label, Body: text, URL: s.target}}, nil
}
