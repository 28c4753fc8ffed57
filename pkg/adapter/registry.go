package adapter

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// Factory builds an unconnected store adapter.
type Factory func(*slog.Logger) Adapter

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
	aliases    = make(map[string]string)
)

// Register adds a store factory under a canonical name plus optional aliases.
// Called by adapter implementations in their init() functions. Registering a
// name or alias twice panics.
func Register(name string, factory Factory, alias ...string) {
	registryMu.Lock()
	defer registryMu.Unlock()

	name = strings.ToLower(name)
	if factory == nil {
		panic("adapter: Register factory is nil for " + name)
	}
	if _, dup := registry[name]; dup {
		panic("adapter: Register called twice for " + name)
	}
	for _, a := range alias {
		if _, dup := aliases[strings.ToLower(a)]; dup {
			panic("adapter: alias " + a + " already registered")
		}
	}
	registry[name] = factory
	for _, a := range alias {
		aliases[strings.ToLower(a)] = name
	}
}

// Canonical resolves a store type, case-insensitively and through aliases,
// to the name it was registered under.
func Canonical(storeType string) (string, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return canonical(storeType)
}

func canonical(storeType string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(storeType))
	if _, ok := registry[key]; ok {
		return key, true
	}
	if name, ok := aliases[key]; ok {
		return name, true
	}
	return "", false
}

// Get retrieves a store factory by name or alias.
func Get(storeType string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	name, ok := canonical(storeType)
	if !ok {
		return nil, false
	}
	return registry[name], true
}

// NewAdapter creates an unconnected adapter for cfg.Type.
// A nil logger means the adapter discards its logs.
func NewAdapter(cfg Config, logger *slog.Logger) (Adapter, error) {
	if strings.TrimSpace(cfg.Type) == "" {
		return nil, fmt.Errorf("store type not specified")
	}

	factory, ok := Get(cfg.Type)
	if !ok {
		return nil, &UnknownAdapterError{
			Type:      cfg.Type,
			Available: ListAdapters(),
		}
	}
	return factory(logger), nil
}

// ListAdapters returns the canonical names of all registered stores, sorted.
func ListAdapters() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether storeType names a registered store or alias.
func IsRegistered(storeType string) bool {
	_, ok := Canonical(storeType)
	return ok
}

// UnknownAdapterError is returned when an unknown store type is requested.
type UnknownAdapterError struct {
	Type      string
	Available []string
}

func (e *UnknownAdapterError) Error() string {
	return fmt.Sprintf("unknown store type %q\nAvailable store types: %s\nHint: Check store.type in mstables.yaml",
		e.Type, strings.Join(e.Available, ", "))
}
