package codec

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages the available codecs, indexed by name and by UID
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Codec
	byUID  map[string]Codec
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Codec),
		byUID:  make(map[string]Codec),
	}
}

var defaultRegistry = NewRegistry()

// Register adds a codec to the default registry
func Register(codec Codec) {
	defaultRegistry.Register(codec)
}

// Get looks a codec up in the default registry by name or UID
func Get(nameOrUID string) (Codec, error) {
	return defaultRegistry.Get(nameOrUID)
}

// List returns the codecs of the default registry
func List() []Codec {
	return defaultRegistry.List()
}

// Register adds a codec under its name and its UID. A later codec with the same
// name or UID replaces the earlier one.
func (r *Registry) Register(codec Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.byName[codec.Name()]; ok {
		delete(r.byUID, old.UID())
	}
	if old, ok := r.byUID[codec.UID()]; ok {
		delete(r.byName, old.Name())
	}

	r.byName[codec.Name()] = codec
	r.byUID[codec.UID()] = codec
}

// Get retrieves a codec by name, falling back to UID
func (r *Registry) Get(nameOrUID string) (Codec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if codec, ok := r.byName[nameOrUID]; ok {
		return codec, nil
	}
	if codec, ok := r.byUID[nameOrUID]; ok {
		return codec, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrCodecNotFound, nameOrUID)
}

// List returns all registered codecs sorted by name
func (r *Registry) List() []Codec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codecs := make([]Codec, 0, len(r.byName))
	for _, codec := range r.byName {
		codecs = append(codecs, codec)
	}

	sort.Slice(codecs, func(i, j int) bool {
		return codecs[i].Name() < codecs[j].Name()
	})
	return codecs
}
