package royalty

import "sync"

// Registry is the external asset registry consulted for transfer
// authorization and notified of ownership changes.
type Registry interface {
	// IsAuthorized reports whether the initiator may transfer the asset.
	IsAuthorized(initiator Address, asset AssetID) bool

	// RecordOwner records the asset's new owner.
	RecordOwner(asset AssetID, newOwner Address) error
}

// MemRegistry is an in-memory Registry that authorizes the current owner.
type MemRegistry struct {
	mu     sync.RWMutex
	owners map[AssetID]Address
}

// Compile-time interface check.
var _ Registry = (*MemRegistry)(nil)

// NewMemRegistry creates an empty in-memory registry.
func NewMemRegistry() *MemRegistry {
	return &MemRegistry{owners: make(map[AssetID]Address)}
}

// IsAuthorized reports whether the initiator is the recorded owner.
func (r *MemRegistry) IsAuthorized(initiator Address, asset AssetID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owner, ok := r.owners[asset]
	return ok && owner == initiator
}

// RecordOwner records the asset's new owner.
func (r *MemRegistry) RecordOwner(asset AssetID, newOwner Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.owners[asset] = newOwner
	return nil
}

// OwnerOf returns the recorded owner, if any.
func (r *MemRegistry) OwnerOf(asset AssetID) (Address, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owner, ok := r.owners[asset]
	return owner, ok
}

// Forget drops the asset from the registry (burn support in tests).
func (r *MemRegistry) Forget(asset AssetID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.owners, asset)
}

// MockRegistry is a Registry test double. All function fields must be set
// before the corresponding method is called.
type MockRegistry struct {
	IsAuthorizedFn func(initiator Address, asset AssetID) bool
	RecordOwnerFn  func(asset AssetID, newOwner Address) error
}

func (m *MockRegistry) IsAuthorized(initiator Address, asset AssetID) bool {
	return m.IsAuthorizedFn(initiator, asset)
}

func (m *MockRegistry) RecordOwner(asset AssetID, newOwner Address) error {
	return m.RecordOwnerFn(asset, newOwner)
}
