package royalty

import "sync"

// StateStore persists per-asset royalty state.
type StateStore interface {
	// Put stores the state for an asset, overwriting any previous record.
	Put(id AssetID, state *AssetState) error

	// Get retrieves the state for an asset.
	// Returns ErrAssetNotFound if no record exists.
	Get(id AssetID) (*AssetState, error)

	// Delete removes the state for an asset (burn).
	// Returns ErrAssetNotFound if no record exists.
	Delete(id AssetID) error

	// List returns the IDs of all assets with royalty state.
	List() ([]AssetID, error)
}

// MemStateStore is an in-memory StateStore. It stores and returns deep
// copies so callers never alias live records.
type MemStateStore struct {
	mu     sync.RWMutex
	states map[AssetID]*AssetState
}

// Compile-time interface check.
var _ StateStore = (*MemStateStore)(nil)

// NewMemStateStore creates an empty in-memory state store.
func NewMemStateStore() *MemStateStore {
	return &MemStateStore{states: make(map[AssetID]*AssetState)}
}

// Put stores a copy of the state for an asset.
func (s *MemStateStore) Put(id AssetID, state *AssetState) error {
	if state == nil {
		return ErrNilParam
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.states[id] = state.Clone()
	return nil
}

// Get retrieves a copy of the state for an asset.
func (s *MemStateStore) Get(id AssetID) (*AssetState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[id]
	if !ok {
		return nil, ErrAssetNotFound
	}
	return state.Clone(), nil
}

// Delete removes the state for an asset.
func (s *MemStateStore) Delete(id AssetID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.states[id]; !ok {
		return ErrAssetNotFound
	}
	delete(s.states, id)
	return nil
}

// List returns the IDs of all stored assets.
func (s *MemStateStore) List() ([]AssetID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]AssetID, 0, len(s.states))
	for id := range s.states {
		ids = append(ids, id)
	}
	return ids, nil
}
