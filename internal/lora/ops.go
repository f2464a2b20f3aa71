package lora

import "gatewayd/pkg/types"

// SetMode stores the exclusive mode flag. Adapters that are already active
// stay active; the next Activate enforces exclusivity.
func (m *Manager) SetMode(exclusive bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exclusive = exclusive
	m.publish(EventModeSet, "", nil)
}

// Activate makes id the only active adapter. It is ignored outside
// exclusive mode. Unknown ids and unloaded adapters are refused with the set
// left unchanged.
func (m *Manager) Activate(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.index[id]
	if !ok {
		m.publish(EventOperationRefused, id, map[string]any{"op": "activate", "reason": "not_found"})
		return ErrNotFound(id)
	}
	if !m.exclusive {
		m.publish(EventActivateIgnored, id, nil)
		return nil
	}
	if m.adapters[i].LoadState != types.Loaded {
		m.publish(EventOperationRefused, id, map[string]any{"op": "activate", "reason": "not_loaded"})
		return notLoadedError{id: id}
	}
	for j := range m.adapters {
		m.adapters[j].Active = j == i
	}
	m.publish(EventActivated, id, nil)
	return nil
}

// ToggleLoad flips the load state of id. Unloading always deactivates the
// adapter. Loading in exclusive mode while nothing is active promotes the
// adapter to active.
func (m *Manager) ToggleLoad(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.index[id]
	if !ok {
		m.publish(EventOperationRefused, id, map[string]any{"op": "toggle_load", "reason": "not_found"})
		return ErrNotFound(id)
	}
	a := &m.adapters[i]
	if a.LoadState == types.Loaded {
		a.LoadState = types.Unloaded
		a.Active = false
		m.publish(EventUnloaded, id, nil)
		return nil
	}
	_, active := m.counts()
	a.LoadState = types.Loaded
	promoted := m.exclusive && active == 0
	if promoted {
		a.Active = true
	}
	m.publish(EventLoaded, id, map[string]any{"promoted": promoted})
	return nil
}

// Reseed replaces the adapter set. The exclusive mode flag is kept.
func (m *Manager) Reseed(seed []types.Adapter) error {
	if seed == nil {
		seed = DefaultSeed()
	}
	adapters, index, err := normalizeSeed(seed)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adapters = adapters
	m.index = index
	m.publish(EventReseeded, "", map[string]any{"count": len(adapters)})
	return nil
}
