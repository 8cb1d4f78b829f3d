// Package store holds the session-scoped working set of submissions used by
// the moderation queue. The set is an explicit, injectable container so
// tests and handlers can each hold isolated instances.
package store

import (
	"context"
	"sync"

	"github.com/launchhub/portal_end/models"
)

// Filter narrows which submissions a Load pulls in.
type Filter struct {
	Kind   models.SubmissionKind
	Status models.SubmissionStatus
}

// Loader fetches submission summaries from the backing store.
type Loader func(ctx context.Context, f Filter) ([]models.SubmissionSummary, error)

// SubmissionSet is an in-memory collection of submission summaries. Load
// replaces the held collection; ApplyTransition patches a single entry in
// place without re-sorting or re-filtering; Remove is optimistic with a
// compensating reload on failure.
type SubmissionSet struct {
	mu     sync.RWMutex
	items  []models.SubmissionSummary
	loader Loader
	last   Filter
	loaded bool
}

// NewSubmissionSet builds an empty set around the given loader.
func NewSubmissionSet(loader Loader) *SubmissionSet {
	return &SubmissionSet{loader: loader}
}

// Load replaces the held collection with the loader's result for f. An
// empty result is a valid state, not an error.
func (s *SubmissionSet) Load(ctx context.Context, f Filter) error {
	_, err := s.Reload(ctx, f)
	return err
}

// Reload replaces the held collection for f and returns the new snapshot
// in the same locked step. Callers answering a request from the result must
// use this instead of Load followed by Items: a concurrent load with a
// different filter can land in that gap and the two reads would disagree.
func (s *SubmissionSet) Reload(ctx context.Context, f Filter) ([]models.SubmissionSummary, error) {
	items, err := s.loader(ctx, f)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	s.last = f
	s.loaded = true

	out := make([]models.SubmissionSummary, len(items))
	copy(out, items)
	return out, nil
}

// Items returns a snapshot of the held collection.
func (s *SubmissionSet) Items() []models.SubmissionSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.SubmissionSummary, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of held entries.
func (s *SubmissionSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Get returns the held entry with the given id.
func (s *SubmissionSet) Get(id string) (models.SubmissionSummary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return models.SubmissionSummary{}, false
}

// ApplyTransition patches exactly the entry with the matching id, leaving
// every other entry and the collection order untouched. Filtering is only
// re-applied on the next Load. It reports whether an entry was patched.
func (s *SubmissionSet) ApplyTransition(id string, updated models.SubmissionSummary) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Status = updated.Status
			if updated.ModNotes != "" {
				s.items[i].ModNotes = updated.ModNotes
			}
			if updated.SubmittedAt != nil {
				s.items[i].SubmittedAt = updated.SubmittedAt
			}
			if updated.FeaturedAt != nil {
				s.items[i].FeaturedAt = updated.FeaturedAt
			}
			return true
		}
	}
	return false
}

// Remove drops the entry with the given id, then runs confirm. On confirm
// failure the set is reconciled by re-loading the last filter: a
// compensating action, not a rollback, so a removed entry can transiently
// reappear. The confirm error is returned either way.
func (s *SubmissionSet) Remove(ctx context.Context, id string, confirm func() error) error {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	if confirm == nil {
		return nil
	}
	if err := confirm(); err != nil {
		if s.loaded {
			if reloadErr := s.Load(ctx, s.last); reloadErr != nil {
				return reloadErr
			}
		}
		return err
	}
	return nil
}
