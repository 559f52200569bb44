package service

import (
	"log/slog"
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/search"
)

// HistoryService remembers recent search queries
type HistoryService struct {
	store  domain.HistoryStore
	logger *slog.Logger
}

// NewHistoryService creates a new search history service
func NewHistoryService(store domain.HistoryStore, logger *slog.Logger) *HistoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoryService{store: store, logger: logger}
}

// Record adds a query. Failures are logged, not returned; history is
// best-effort.
func (s *HistoryService) Record(query string) {
	if strings.TrimSpace(query) == "" {
		return
	}
	if err := s.store.AddQuery(query); err != nil {
		s.logger.Warn("failed to record search", "error", err)
	}
}

// Suggest returns recent queries starting with prefix, most recent first.
// An empty prefix returns all of them.
func (s *HistoryService) Suggest(prefix string) []string {
	queries, err := s.store.RecentQueries()
	if err != nil {
		s.logger.Warn("failed to read search history", "error", err)
		return nil
	}

	prefix = search.Fold(prefix)
	if prefix == "" {
		return queries
	}
	var out []string
	for _, q := range queries {
		if strings.HasPrefix(search.Fold(q), prefix) {
			out = append(out, q)
		}
	}
	return out
}
