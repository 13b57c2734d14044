package patient

import (
	"encoding/json"
	"sync"
	"time"
)

// DefaultDraftKey is the fixed name the patient form saves its draft
// under when the client does not choose its own key.
const DefaultDraftKey = "patient-form-draft"

// Draft is an autosaved, not-yet-submitted form state. The payload is
// kept opaque: the form writes its full state on every edit and reads it
// back verbatim, so the server never interprets it.
type Draft struct {
	Key     string          `json:"key"`
	Payload json.RawMessage `json:"payload"`
	SavedAt time.Time       `json:"savedAt"`
}

// DraftStore holds in-progress form drafts keyed by name. Save on every
// edit, load when the form opens without explicit initial data, clear on
// successful submit. Drafts are session-scoped and never persisted.
type DraftStore struct {
	mu     sync.RWMutex
	drafts map[string]Draft
}

// NewDraftStore creates an empty draft store.
func NewDraftStore() *DraftStore {
	return &DraftStore{drafts: make(map[string]Draft)}
}

// Save overwrites the draft under key with the full form state.
func (s *DraftStore) Save(key string, payload json.RawMessage) Draft {
	if key == "" {
		key = DefaultDraftKey
	}
	d := Draft{Key: key, Payload: payload, SavedAt: time.Now()}

	s.mu.Lock()
	s.drafts[key] = d
	s.mu.Unlock()
	return d
}

// Load returns the draft under key, if any.
func (s *DraftStore) Load(key string) (Draft, bool) {
	if key == "" {
		key = DefaultDraftKey
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drafts[key]
	return d, ok
}

// Clear removes the draft under key. Clearing an absent key is a no-op.
func (s *DraftStore) Clear(key string) {
	if key == "" {
		key = DefaultDraftKey
	}
	s.mu.Lock()
	delete(s.drafts, key)
	s.mu.Unlock()
}
