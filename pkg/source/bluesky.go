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
	"strings"

	"github.com/walteh/invitehound/pkg/config"
)

const (
	blueskySearchURL = "https://public.api.bsky.app/xrpc/app.bsky.feed.searchPosts"
	blueskyMaxItems  = 25
)

func init() {
	Register("bluesky", newBluesky)
}

// blueskyResponse is the subset of the searchPosts payload we read
type blueskyResponse struct {
	Posts []struct {
		URI    string `json:"uri"`
		Author struct {
			Handle string `json:"handle"`
		} `json:"author"`
		Record struct {
			Text string `json:"text"`
		} `json:"record"`
	} `json:"posts"`
}

// 🦋 bluesky searches public Bluesky posts
type bluesky struct {
	name     string
	query    string
	limit    int
	endpoint string
	client   *Client
}

func newBluesky(ctx context.Context, def config.SourceDef, cfg *config.Config, client *Client) (Source, error) {
	return &bluesky{
		name:     def.Name,
		query:    searchQuery(def, cfg),
		limit:    itemLimit(def, cfg, blueskyMaxItems),
		endpoint: blueskySearchURL,
		client:   client,
	}, nil
}

func (s *bluesky) Name() string {
	return s.name
}

func (s *bluesky) Fetch(ctx context.Context) ([]Item, error) {
	params := url.Values{}
	params.Set("q", s.query)
	params.Set("limit", strconv.Itoa(s.limit))

	var payload blueskyResponse
	if err := s.client.GetJSON(ctx, s.endpoint+"?"+params.Encode(), nil, &payload); err != nil {
		return nil, wrap(s.name, err)
	}

	items := make([]Item, 0, len(payload.Posts))
	for _, post := range payload.Posts {
		handle := post.Author.Handle
		if handle == "" {
			handle = "unknown"
		}
		link := ""
		if post.URI != "" {
			// at:// URIs end in the record key the web app links by
			parts := strings.Split(post.URI, "/")
			link = fmt.Sprintf("https://bsky.app/profile/%s/post/%s", handle, parts[len(parts)-1])
		}
		items = append(items, Item{
			Title: "Bluesky post by @" + handle,
			Body:  post.Record.Text,
			URL:   link,
		})
	}
	return items, nil
}
