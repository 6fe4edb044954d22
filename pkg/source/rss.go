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
	"net/http"

	"github.com/mmcdole/gofeed"
	"github.com/walteh/invitehound/pkg/config"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register("rss", newRSS)
}

// 📡 rssFeed polls one or more RSS/Atom feeds for fresh entries
type rssFeed struct {
	name   string
	feeds  []string
	limit  int
	parser *gofeed.Parser
}

func newRSS(ctx context.Context, def config.SourceDef, cfg *config.Config, client *Client) (Source, error) {
	if len(def.Feeds) == 0 {
		return nil, errors.New("at least one feed url is required")
	}

	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: requestTimeout}
	parser.UserAgent = cfg.UserAgent

	return &rssFeed{
		name:   def.Name,
		feeds:  def.Feeds,
		limit:  itemLimit(def, cfg, 0),
		parser: parser,
	}, nil
}

func (s *rssFeed) Name() string {
	return s.name
}

func (s *rssFeed) Fetch(ctx context.Context) ([]Item, error) {
	var items []Item
	for _, feedURL := range s.feeds {
		feed, err := s.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			return nil, wrap(s.name, errors.Errorf("parsing feed %s: %w", feedURL, err))
		}

		for _, entry := range feed.Items {
			if len(items) >= s.limit {
				return items, nil
			}
			body := entry.Description
			if entry.Content != "" {
				body = entry.Content
			}
			items = append(items, Item{Title: entry.Title, Body: body, URL: entry.Link})
		}
	}
	return items, nil
}
