// internal/finder/backend/registry.go
package backend

import (
	"sync"

	"activity-finder/internal/common/errors"
)

// Constructor builds a backend from its dependencies.
type Constructor func(deps Deps) (Backend, error)

var (
	mu       sync.RWMutex
	backends = map[string]Constructor{}
)

// Register makes a backend constructor available under id. Later
// registrations under the same id replace earlier ones.
func Register(id string, ctor Constructor) {
	mu.Lock()
	defer mu.Unlock()
	backends[id] = ctor
}

// New instantiates the backend registered under id.
func New(id string, deps Deps) (Backend, error) {
	mu.RLock()
	ctor, ok := backends[id]
	mu.RUnlock()
	if !ok {
		return nil, errors.NewUnknownBackendError(id)
	}
	return ctor(deps)
}

// IDs lists the registered backend IDs.
func IDs() []string {
	mu.RLock()
	defer mu.RUnlock()
	ids := make([]string, 0, len(backends))
	for id := range backends {
		ids = append(ids, id)
	}
	return ids
}
