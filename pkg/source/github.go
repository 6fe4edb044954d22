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

	"github.com/google/go-github/v60/github"
	"github.com/walteh/invitehound/pkg/config"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/oauth2"
)

const gitHubMaxItems = 30

func init() {
	Register("github", newGitHub)
}

// 🐙 gitHubIssues searches GitHub issues and discussions for invite
// chatter. Anonymous access works but is rate limited hard; a token from
// GITHUB_TOKEN raises the ceiling.
type gitHubIssues struct {
	name  string
	query string
	limit int
	gh    *github.Client
}

func newGitHub(ctx context.Context, def config.SourceDef, cfg *config.Config, client *Client) (Source, error) {
	var hc *http.Client
	if cfg.GitHubToken != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: cfg.GitHubToken},
		)
		hc = oauth2.NewClient(ctx, ts)
	} else {
		hc = &http.Client{}
	}
	// go-github rides its own http.Client rather than going through the
	// shared Client, so the request timeout has to be set here too.
	hc.Timeout = requestTimeout

	return &gitHubIssues{
		name:  def.Name,
		query: searchQuery(def, cfg),
		limit: itemLimit(def, cfg, gitHubMaxItems),
		gh:    github.NewClient(hc),
	}, nil
}

func (s *gitHubIssues) Name() string {
	return s.name
}

func (s *gitHubIssues) Fetch(ctx context.Context) ([]Item, error) {
	result, _, err := s.gh.Search.Issues(ctx, s.query, &github.SearchOptions{
		Sort:        "created",
		Order:       "desc",
		ListOptions: github.ListOptions{PerPage: s.limit},
	})
	if err != nil {
		return nil, wrap(s.name, errors.Errorf("searching issues: %w", err))
	}

	items := make([]Item, 0, len(result.Issues))
	for _, issue := range result.Issues {
		items = append(items, Item{
			Title: "GitHub: " + issue.GetTitle(),
			Body:  issue.GetBody(),
			URL:   issue.GetHTMLURL(),
		})
	}
	return items, nil
}
