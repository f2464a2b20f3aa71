package lora

import (
	"sync"

	"gatewayd/pkg/types"
)

// Config holds the tunables for constructing a Manager.
type Config struct {
	// Seed is the initial adapter set. Nil means DefaultSeed.
	Seed []types.Adapter
	// Exclusive is the initial value of the exclusive mode flag.
	Exclusive bool
	// Publisher receives lifecycle events. Nil drops them.
	Publisher EventPublisher
}

// Manager owns one adapter set and its exclusive mode flag.
type Manager struct {
	mu        sync.RWMutex
	adapters  []types.Adapter
	index     map[string]int
	exclusive bool
	publisher EventPublisher
}

// New builds a manager over seed with exclusive mode enabled.
func New(seed []types.Adapter) (*Manager, error) {
	return NewWithConfig(Config{Seed: seed, Exclusive: true})
}

// NewWithConfig builds a manager from cfg.
func NewWithConfig(cfg Config) (*Manager, error) {
	seed := cfg.Seed
	if seed == nil {
		seed = DefaultSeed()
	}
	adapters, index, err := normalizeSeed(seed)
	if err != nil {
		return nil, err
	}
	m := &Manager{
		adapters:  adapters,
		index:     index,
		exclusive: cfg.Exclusive,
		publisher: noopPublisher{},
	}
	if cfg.Publisher != nil {
		m.publisher = cfg.Publisher
	}
	return m, nil
}

// SetEventPublisher replaces the event sink. Nil restores the no-op sink.
func (m *Manager) SetEventPublisher(p EventPublisher) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p == nil {
		m.publisher = noopPublisher{}
		return
	}
	m.publisher = p
}

// Exclusive reports the current exclusive mode flag.
func (m *Manager) Exclusive() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.exclusive
}

// Adapters returns a copy of the adapter set in seed order.
func (m *Manager) Adapters() []types.Adapter {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]types.Adapter, len(m.adapters))
	copy(out, m.adapters)
	return out
}

// Get returns a copy of one adapter.
func (m *Manager) Get(id string) (types.Adapter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i, ok := m.index[id]
	if !ok {
		return types.Adapter{}, ErrNotFound(id)
	}
	return m.adapters[i], nil
}

// Snapshot returns the adapter list together with the mode flag, the
// loaded count and the first active adapter.
func (m *Manager) Snapshot() types.AdapterSetResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()
	resp := types.AdapterSetResponse{
		Adapters:      make([]types.Adapter, len(m.adapters)),
		ExclusiveMode: m.exclusive,
	}
	copy(resp.Adapters, m.adapters)
	for i := range resp.Adapters {
		a := resp.Adapters[i]
		if a.LoadState == types.Loaded {
			resp.LoadedCount++
		}
		if a.Active && resp.Active == nil {
			resp.Active = &a
		}
	}
	return resp
}

// counts returns the loaded and active totals. Callers hold m.mu.
func (m *Manager) counts() (loaded, active int) {
	for _, a := range m.adapters {
		if a.LoadState == types.Loaded {
			loaded++
		}
		if a.Active {
			active++
		}
	}
	return loaded, active
}

// publish emits an event stamped with the current totals. Callers hold m.mu.
func (m *Manager) publish(name, id string, extra map[string]any) {
	loaded, active := m.counts()
	fields := map[string]any{
		"loaded":    loaded,
		"active":    active,
		"exclusive": m.exclusive,
	}
	for k, v := range extra {
		fields[k] = v
	}
	m.publisher.Publish(Event{Name: name, AdapterID: id, Fields: fields})
}
