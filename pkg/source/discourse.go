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
	"strings"

	"github.com/walteh/invitehound/pkg/config"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register("discourse", newDiscourse)
}

// discourseResponse is the subset of a Discourse latest.json payload we read
type discourseResponse struct {
	TopicList struct {
		Topics []struct {
			ID      int    `json:"id"`
			Slug    string `json:"slug"`
			Title   string `json:"title"`
			Excerpt string `json:"excerpt"`
		} `json:"topics"`
	} `json:"topic_list"`
}

// 🗣️ discourse polls a Discourse forum's latest topics
type discourse struct {
	name   string
	base   string
	limit  int
	client *Client
}

func newDiscourse(ctx context.Context, def config.SourceDef, cfg *config.Config, client *Client) (Source, error) {
	if def.URL == "" {
		return nil, errors.New("url is required")
	}
	return &discourse{
		name:   def.Name,
		base:   strings.TrimSuffix(def.URL, "/"),
		limit:  itemLimit(def, cfg, 0),
		client: client,
	}, nil
}

func (s *discourse) Name() string {
	return s.name
}

func (s *discourse) Fetch(ctx context.Context) ([]Item, error) {
	var payload discourseResponse
	if err := s.client.GetJSON(ctx, s.base+"/latest.json", nil, &payload); err != nil {
		return nil, wrap(s.name, err)
	}

	topics := payload.TopicList.Topics
	if len(topics) > s.limit {
		topics = topics[:s.limit]
	}

	items := make([]Item, 0, len(topics))
	for _, topic := range topics {
		link := ""
		if topic.Slug != "" {
			link = fmt.Sprintf("%s/t/%s/%d", s.base, topic.Slug, topic.ID)
		}
		items = append(items, Item{Title: topic.Title, Body: topic.Excerpt, URL: link})
	}
	return items, nil
}
