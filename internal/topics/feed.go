// Package topics turns a social news feed into short trending search phrases.
package topics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"narrative-assembly/models"
)

const (
	DefaultFeedURL   = "https://www.reddit.com/r/ukpolitics/hot.json?limit=15"
	DefaultUserAgent = "narrative-assembly:v1.0 (educational demo)"

	maxTopics = 10
	permalink = "https://reddit.com"
)

type listing struct {
	Data struct {
		Children []struct {
			Data post `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type post struct {
	Title       string `json:"title"`
	Score       int    `json:"score"`
	Permalink   string `json:"permalink"`
	NumComments int    `json:"num_comments"`
	Stickied    bool   `json:"stickied"`
}

// Fetcher returns the current trending topics.
type Fetcher interface {
	Fetch(ctx context.Context) ([]models.TrendingTopic, error)
}

// Feed reads a hot-posts listing over HTTP.
type Feed struct {
	url        string
	userAgent  string
	httpClient *http.Client
	extractor  *Extractor
}

func NewFeed(url string, extractor *Extractor) *Feed {
	if url == "" {
		url = DefaultFeedURL
	}
	return &Feed{
		url:        url,
		userAgent:  DefaultUserAgent,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		extractor:  extractor,
	}
}

// Fetch skips pinned and megathread posts, keeps the first ten, and drops
// posts whose extracted topic repeats an earlier one.
func (f *Feed) Fetch(ctx context.Context) ([]models.TrendingTopic, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create feed request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	var l listing
	if err := json.NewDecoder(resp.Body).Decode(&l); err != nil {
		return nil, fmt.Errorf("failed to decode feed: %w", err)
	}

	var posts []post
	for _, c := range l.Data.Children {
		p := c.Data
		if p.Stickied || strings.Contains(strings.ToLower(p.Title), "megathread") {
			continue
		}
		posts = append(posts, p)
		if len(posts) == maxTopics {
			break
		}
	}

	seen := make(map[string]struct{}, len(posts))
	out := make([]models.TrendingTopic, 0, len(posts))
	for _, p := range posts {
		topic := f.extractor.Extract(ctx, p.Title)
		key := strings.ToLower(topic)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, models.TrendingTopic{
			Title:          p.Title,
			ExtractedTopic: topic,
			Score:          p.Score,
			URL:            permalink + p.Permalink,
			NumComments:    p.NumComments,
		})
	}
	return out, nil
}
