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
	"strconv"

	"github.com/walteh/invitehound/pkg/config"
)

const (
	hackerNewsSearchURL = "https://hn.algolia.com/api/v1/search_by_date"
	hackerNewsItemURL   = "https://news.ycombinator.com/item?id="
	hackerNewsMaxItems  = 50
)

func init() {
	Register("hackernews", newHackerNews)
}

// algoliaResponse is the subset of the Algolia search payload we read.
// Stories and comments carry their text under different keys.
type algoliaResponse struct {
	Hits []struct {
		Title       string `json:"title"`
		StoryTitle  string `json:"story_title"`
		StoryText   string `json:"story_text"`
		CommentText string `json:"comment_text"`
		URL         string `json:"url"`
		StoryURL    string `json:"story_url"`
		ObjectID    string `json:"objectID"`
	} `json:"hits"`
}

// 📰 hackerNews polls Algolia's HN index, newest first
type hackerNews struct {
	name     string
	query    string
	limit    int
	endpoint string
	client   *Client
}

func newHackerNews(ctx context.Context, def config.SourceDef, cfg *config.Config, client *Client) (Source, error) {
	return &hackerNews{
		name:     def.Name,
		query:    searchQuery(def, cfg),
		limit:    itemLimit(def, cfg, hackerNewsMaxItems),
		endpoint: hackerNewsSearchURL,
		client:   client,
	}, nil
}

func (s *hackerNews) Name() string {
	return s.name
}

func (s *hackerNews) Fetch(ctx context.Context) ([]Item, error) {
	params := url.Values{}
	params.Set("query", s.query)
	params.Set("tags", "story,comment")
	params.Set("hitsPerPage", strconv.Itoa(s.limit))

	var payload algoliaResponse
	if err := s.client.GetJSON(ctx, s.endpoint+"?"+params.Encode(), nil, &payload); err != nil {
		return nil, wrap(s.name, err)
	}

	items := make([]Item, 0, len(payload.Hits))
	for _, hit := range payload.Hits {
		title := hit.Title
		if title == "" {
			title = hit.StoryTitle
		}
		body := hit.StoryText
		if body == "" {
			body = hit.CommentText
		}
		link := hit.URL
		if link == "" {
			link = hit.StoryURL
		}
		if link == "" && hit.ObjectID != "" {
			link = hackerNewsItemURL + hit.ObjectID
		}
		items = append(items, Item{Title: title, Body: body, URL: link})
	}
	return items, nil
}
