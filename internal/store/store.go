// Package store holds the results of the latest fetch pass.
package store

import (
	"sync"

	"github.com/Belphemur/ToshoSubtitles/internal/models"
)

// Store keeps the episode results of the last completed fetch pass in listing order.
// A new pass replaces the previous contents wholesale.
type Store struct {
	mu      sync.RWMutex
	results []models.EpisodeResult
}

// New creates an empty store
func New() *Store {
	return &Store{results: make([]models.EpisodeResult, 0)}
}

// Replace swaps in the results of a finished fetch pass
func (s *Store) Replace(results []models.EpisodeResult) {
	copied := make([]models.EpisodeResult, len(results))
	copy(copied, results)

	s.mu.Lock()
	s.results = copied
	s.mu.Unlock()
}

// Results returns a copy of the stored results in listing order
func (s *Store) Results() []models.EpisodeResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.EpisodeResult, len(s.results))
	copy(out, s.results)
	return out
}

// Len returns the number of stored episode results
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}

// Signatures returns the distinct caption texts of all records, in the order
// they were first seen walking episodes then records
func (s *Store) Signatures() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	signatures := make([]string, 0)
	for _, result := range s.results {
		for _, record := range result.Subtitles {
			if _, ok := seen[record.DisplayText]; ok {
				continue
			}
			seen[record.DisplayText] = struct{}{}
			signatures = append(signatures, record.DisplayText)
		}
	}
	return signatures
}

// Select returns every record whose caption equals signature exactly, in episode
// order. Episodes with several matching records contribute all of them.
func (s *Store) Select(signature string) []models.SubtitleRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]models.SubtitleRecord, 0)
	if signature == "" {
		return matches
	}
	for _, result := range s.results {
		for _, record := range result.Subtitles {
			if record.DisplayText == signature {
				matches = append(matches, record)
			}
		}
	}
	return matches
}
