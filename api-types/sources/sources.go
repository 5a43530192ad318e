package sources

import (
	"encoding/json"
	"fmt"

	"github.com/caeli-works/caeli-api-types/misc/rfctime"
)

// Kind of a data source.
type Kind string

const (
	KindWebsite    Kind = "website"
	KindAPI        Kind = "api"
	KindRSS        Kind = "rss"
	KindSharePoint Kind = "sharepoint"
)

func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch Kind(s) {
	case KindWebsite, KindAPI, KindRSS, KindSharePoint:
		*k = Kind(s)
		return nil
	}
	return fmt.Errorf("unknown source kind: %s", s)
}

// CrawlStatus of a source, as reported by the backend crawler.
type CrawlStatus string

const (
	CrawlIdle    CrawlStatus = "idle"
	CrawlRunning CrawlStatus = "running"
	CrawlFailed  CrawlStatus = "failed"
)

type CrawlConfig struct {
	// Interval between scheduled crawls, e.g. "24h". Empty means manual only.
	Interval        string   `json:"interval,omitempty"`
	Depth           int      `json:"depth,omitempty"`
	IncludePatterns []string `json:"includePatterns,omitempty"`
	ExcludePatterns []string `json:"excludePatterns,omitempty"`
}

func (c CrawlConfig) Equal(o CrawlConfig) bool {
	return c.Interval == o.Interval &&
		c.Depth == o.Depth &&
		sliceEq(c.IncludePatterns, o.IncludePatterns) &&
		sliceEq(c.ExcludePatterns, o.ExcludePatterns)
}

type Summary struct {
	Id      string `json:"id"`
	Name    string `json:"name"`
	Kind    Kind   `json:"kind"`
	URL     string `json:"url"`
	Enabled bool   `json:"enabled"`
}

func (s Summary) Equal(o Summary) bool {
	return s.Id == o.Id &&
		s.Name == o.Name &&
		s.Kind == o.Kind &&
		s.URL == o.URL &&
		s.Enabled == o.Enabled
}

type Detail struct {
	Summary
	Crawl         CrawlConfig      `json:"crawl"`
	Status        CrawlStatus      `json:"status"`
	LastCrawledAt *rfctime.RFC3339 `json:"lastCrawledAt,omitempty"`
	DocumentCount int              `json:"documentCount"`
}

func (d Detail) Equal(o Detail) bool {
	lastEq := (d.LastCrawledAt == nil && o.LastCrawledAt == nil) ||
		(d.LastCrawledAt != nil && o.LastCrawledAt != nil &&
			d.LastCrawledAt.Equal(*o.LastCrawledAt))

	return d.Summary.Equal(o.Summary) &&
		d.Crawl.Equal(o.Crawl) &&
		d.Status == o.Status &&
		d.DocumentCount == o.DocumentCount &&
		lastEq
}

// Spec is the payload creating or replacing a source.
type Spec struct {
	Name    string      `json:"name"`
	Kind    Kind        `json:"kind"`
	URL     string      `json:"url"`
	Enabled bool        `json:"enabled"`
	Crawl   CrawlConfig `json:"crawl"`
}

func (s Spec) Equal(o Spec) bool {
	return s.Name == o.Name &&
		s.Kind == o.Kind &&
		s.URL == o.URL &&
		s.Enabled == o.Enabled &&
		s.Crawl.Equal(o.Crawl)
}

func sliceEq(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
