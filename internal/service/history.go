package service

import (
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/tunedl/internal/domain"
)

// HistoryService remembers submitted URLs, most recent first
type HistoryService struct {
	store domain.Store
	limit int

	mu   sync.Mutex
	urls []string
}

// NewHistoryService loads the stored history. limit <= 0 disables it.
func NewHistoryService(store domain.Store, limit int) *HistoryService {
	h := &HistoryService{store: store, limit: limit}
	if urls, ok := store.GetHistory(); ok {
		h.urls = trimHistory(urls, limit)
	}
	return h
}

// Record moves url to the front, dropping duplicates and the oldest
// entries past the limit
func (h *HistoryService) Record(url string) error {
	if h.limit <= 0 || url == "" {
		return nil
	}

	h.mu.Lock()
	next := make([]string, 0, len(h.urls)+1)
	next = append(next, url)
	for _, u := range h.urls {
		if u != url {
			next = append(next, u)
		}
	}
	h.urls = trimHistory(next, h.limit)
	snapshot := append([]string(nil), h.urls...)
	h.mu.Unlock()

	return h.store.SaveHistory(snapshot)
}

// URLs returns the history, most recent first
func (h *HistoryService) URLs() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.urls...)
}

// Suggest ranks remembered URLs against query: prefix matches first, then
// substring matches, then fuzzy matches by distance. Ties keep recency order.
func (h *HistoryService) Suggest(query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	urls := h.URLs()
	recency := make(map[string]int, len(urls))
	for i, u := range urls {
		recency[u] = i
	}

	type ranked struct {
		url   string
		score int
	}
	var results []ranked
	for _, match := range fuzzy.RankFindFold(query, urls) {
		lower := strings.ToLower(match.Target)
		if lower == query {
			continue // Nothing to complete
		}
		score := 100 + match.Distance
		switch {
		case strings.HasPrefix(lower, query):
			score = 0
		case strings.Contains(lower, query):
			score = 50
		}
		results = append(results, ranked{url: match.Target, score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score < results[j].score
		}
		return recency[results[i].url] < recency[results[j].url]
	})

	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.url
	}
	return out
}

func trimHistory(urls []string, limit int) []string {
	if limit <= 0 {
		return nil
	}
	if len(urls) > limit {
		return urls[:limit]
	}
	return urls
}
