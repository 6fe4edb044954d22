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
	"net/url"
	"strconv"

	"github.com/walteh/invitehound/pkg/config"
	"gitlab.com/tozd/go/errors"
)

const (
	redditSearchURL        = "https://www.reddit.com/search.json"
	redditSubredditURLTmpl = "https://www.reddit.com/r/%s/new.json"
)

func init() {
	Register("reddit_search", newRedditSearch)
	Register("reddit_subreddit", newRedditSubreddit)
}

// redditHeaders are the extra headers Reddit's JSON endpoints expect
func redditHeaders() map[string]string {
	return map[string]string{
		"Accept":  "application/json, text/javascript, */*; q=0.01",
		"Referer": "https://www.reddit.com/",
	}
}

// redditListing is the subset of a Reddit listing payload we read
type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title     string `json:"title"`
				Selftext  string `json:"selftext"`
				Permalink string `json:"permalink"`
				URL       string `json:"url"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func (l *redditListing) items() []Item {
	items := make([]Item, 0, len(l.Data.Children))
	for _, child := range l.Data.Children {
		data := child.Data
		link := data.URL
		if data.Permalink != "" {
			link = "https://www.reddit.com" + data.Permalink
		}
		items = append(items, Item{Title: data.Title, Body: data.Selftext, URL: link})
	}
	return items
}

// 🔎 redditSearch polls the sitewide Reddit search for a query
type redditSearch struct {
	name     string
	query    string
	window   string
	limit    int
	endpoint string
	client   *Client
}

func newRedditSearch(ctx context.Context, def config.SourceDef, cfg *config.Config, client *Client) (Source, error) {
	window := def.Window
	if window == "" {
		window = "day"
	}
	return &redditSearch{
		name:     def.Name,
		query:    searchQuery(def, cfg),
		window:   window,
		limit:    itemLimit(def, cfg, 0),
		endpoint: redditSearchURL,
		client:   client,
	}, nil
}

func (s *redditSearch) Name() string {
	return s.name
}

func (s *redditSearch) Fetch(ctx context.Context) ([]Item, error) {
	params := url.Values{}
	params.Set("q", s.query)
	params.Set("sort", "new")
	params.Set("limit", strconv.Itoa(s.limit))
	params.Set("restrict_sr", "false")
	params.Set("t", s.window)

	var listing redditListing
	if err := s.client.GetJSON(ctx, s.endpoint+"?"+params.Encode(), redditHeaders(), &listing); err != nil {
		return nil, wrap(s.name, err)
	}
	return listing.items(), nil
}

// 📰 redditSubreddit polls /r/<subreddit>/new for the freshest posts
type redditSubreddit struct {
	name     string
	limit    int
	endpoint string
	client   *Client
}

func newRedditSubreddit(ctx context.Context, def config.SourceDef, cfg *config.Config, client *Client) (Source, error) {
	if def.Subreddit == "" {
		return nil, errors.New("subreddit is required")
	}
	return &redditSubreddit{
		name:     def.Name,
		limit:    itemLimit(def, cfg, 0),
		endpoint: fmt.Sprintf(redditSubredditURLTmpl, def.Subreddit),
		client:   client,
	}, nil
}

func (s *redditSubreddit) Name() string {
	return s.name
}

func (s *redditSubreddit) Fetch(ctx context.Context) ([]Item, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(s.limit))

	var listing redditListing
	if err := s.client.GetJSON(ctx, s.endpoint+"?"+params.Encode(), redditHeaders(), &listing); err != nil {
		return nil, wrap(s.name, err)
	}
	return listing.items(), nil
}
