// Package registry provides a global registry of engine kinds.
// Kinds register themselves in init() functions, allowing the content mod
// and the CLI to discover them without hardcoded lists.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/bc-engines/internal/engine"
)

// ErrUnknownKind is returned when a kind ID is not registered.
var ErrUnknownKind = errors.New("registry: unknown engine kind")

// Kind is a tagged engine variant: an ID, a display title and the default
// simulation parameters. Configuration may override the parameters.
type Kind struct {
	// ID is the short kind name (e.g., "creative", "iron").
	// Block and item string ids are derived from it.
	ID string

	// Title is the human-readable name (e.g., "Creative").
	Title string

	// Params are the default simulation parameters of the kind.
	Params engine.Params
}

var (
	kinds = make(map[string]Kind)
	mu    sync.RWMutex
)

// Register adds an engine kind to the registry.
// Typically called from an init() function.
// Panics if a kind with the same ID is already registered or its defaults are invalid.
func Register(k Kind) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := kinds[k.ID]; exists {
		panic(fmt.Sprintf("registry: engine kind %q already registered", k.ID))
	}
	if err := k.Params.Validate(); err != nil {
		panic(fmt.Sprintf("registry: engine kind %q: %v", k.ID, err))
	}

	kinds[k.ID] = k
}

// List returns all registered kinds, sorted by ID.
func List() []Kind {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Kind, 0, len(kinds))
	for _, k := range kinds {
		result = append(result, k)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// IDs returns the IDs of all registered kinds, sorted.
func IDs() []string {
	list := List()
	ids := make([]string, len(list))
	for i, k := range list {
		ids[i] = k.ID
	}
	return ids
}

// Get returns a kind by its ID.
func Get(id string) (Kind, error) {
	mu.RLock()
	defer mu.RUnlock()

	k, ok := kinds[id]
	if !ok {
		return Kind{}, fmt.Errorf("%w: %q", ErrUnknownKind, id)
	}

	return k, nil
}

// Exists checks if a kind with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := kinds[id]
	return ok
}
