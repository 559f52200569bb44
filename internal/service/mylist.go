package service

import (
	"fmt"
	"log/slog"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/search"
)

// MyListService manages the user's saved titles
type MyListService struct {
	store  domain.MyListStore
	logger *slog.Logger
}

// NewMyListService creates a new My List service
func NewMyListService(store domain.MyListStore, logger *slog.Logger) *MyListService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MyListService{store: store, logger: logger}
}

// Add saves an item
func (s *MyListService) Add(item domain.Item) error {
	if err := s.store.SaveItem(item); err != nil {
		return fmt.Errorf("failed to save %s: %w", item.Key(), err)
	}
	s.logger.Info("added to my list", "key", item.Key(), "title", item.Title)
	return nil
}

// Remove deletes an item by key
func (s *MyListService) Remove(key string) error {
	if err := s.store.DeleteItem(key); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	s.logger.Info("removed from my list", "key", key)
	return nil
}

// Toggle adds the item if absent, otherwise removes it. Returns whether
// the item is saved afterwards.
func (s *MyListService) Toggle(item domain.Item) (bool, error) {
	if s.store.HasItem(item.Key()) {
		return false, s.Remove(item.Key())
	}
	return true, s.Add(item)
}

// Contains reports whether the item key is saved
func (s *MyListService) Contains(key string) bool {
	return s.store.HasItem(key)
}

// List returns saved items, most recently added first
func (s *MyListService) List() ([]domain.Item, error) {
	return s.store.ListItems()
}

// Find returns saved items whose title matches query, best match first.
// An empty query returns the whole list.
func (s *MyListService) Find(query string) ([]domain.Item, error) {
	items, err := s.store.ListItems()
	if err != nil {
		return nil, err
	}
	if search.Fold(query) == "" {
		return items, nil
	}

	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = item.DisplayTitle()
	}

	matches := search.Rank(query, titles)
	found := make([]domain.Item, len(matches))
	for i, m := range matches {
		found[i] = items[m.Index]
	}
	return found, nil
}
