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
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/walteh/invitehound/pkg/config"
)

const (
	mastodonDefaultInstance = "https://mastodon.social"
	mastodonSearchPath      = "/api/v2/search"
	mastodonMaxItems        = 20
)

func init() {
	Register("mastodon", newMastodon)
}

// htmlTagRe strips markup from status content, which Mastodon serves as HTML
var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// mastodonResponse is the subset of the v2 search payload we read
type mastodonResponse struct {
	Statuses []struct {
		Content string `json:"content"`
		URL     string `json:"url"`
		Account struct {
			Acct string `json:"acct"`
		} `json:"account"`
	} `json:"statuses"`
}

// 🐘 mastodon searches a Mastodon instance for status mentions
type mastodon struct {
	name     string
	query    string
	limit    int
	endpoint string
	client   *Client
}

func newMastodon(ctx context.Context, def config.SourceDef, cfg *config.Config, client *Client) (Source, error) {
	instance := def.URL
	if instance == "" {
		instance = mastodonDefaultInstance
	}
	return &mastodon{
		name:     def.Name,
		query:    searchQuery(def, cfg),
		limit:    itemLimit(def, cfg, mastodonMaxItems),
		endpoint: strings.TrimSuffix(instance, "/") + mastodonSearchPath,
		client:   client,
	}, nil
}

func (s *mastodon) Name() string {
	return s.name
}

func (s *mastodon) Fetch(ctx context.Context) ([]Item, error) {
	params := url.Values{}
	params.Set("q", s.query)
	params.Set("type", "statuses")
	params.Set("limit", strconv.Itoa(s.limit))

	var payload mastodonResponse
	if err := s.client.GetJSON(ctx, s.endpoint+"?"+params.Encode(), nil, &payload); err != nil {
		return nil, wrap(s.name, err)
	}

	items := make([]Item, 0, len(payload.Statuses))
	for _, status := range payload.Statuses {
		acct := status.Account.Acct
		if acct == "" {
			acct = "unknown"
		}
		items = append(items, Item{
			Title: "Mastodon post by @" + acct,
			Body:  htmlTagRe.ReplaceAllString(status.Content, ""),
			URL:   status.URL,
		})
	}
	return items, nil
}
