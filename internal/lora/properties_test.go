package lora

import (
	"math/rand"
	"testing"

	"gatewayd/pkg/types"
)

// TestRandomOperationsKeepInvariants drives the manager through random
// operation sequences and checks after each step that unloaded adapters are
// inactive and that exclusive mode never leaves more than one adapter active
// once an activation or load has run.
func TestRandomOperationsKeepInvariants(t *testing.T) {
	ids := []string{"lora-1", "lora-2", "lora-3", "lora-4", "lora-5", "lora-6", "missing"}
	for seed := int64(1); seed <= 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		m := mustNew(t, nil)
		// collapsed is true once an exclusive-mode mutation has run since
		// the last time the mode was switched off.
		collapsed := true
		for step := 0; step < 200; step++ {
			id := ids[rng.Intn(len(ids))]
			switch rng.Intn(4) {
			case 0:
				on := rng.Intn(2) == 0
				if !on {
					collapsed = false
				}
				m.SetMode(on)
			case 1:
				_ = m.Activate(id)
				if m.Exclusive() && isLoaded(m, id) {
					collapsed = true
				}
			default:
				_ = m.ToggleLoad(id)
			}
			active := 0
			for _, a := range m.Adapters() {
				if a.LoadState == types.Unloaded && a.Active {
					t.Fatalf("seed %d step %d: unloaded adapter %s is active", seed, step, a.ID)
				}
				if a.Active {
					active++
				}
			}
			if m.Exclusive() && collapsed && active > 1 {
				t.Fatalf("seed %d step %d: %d adapters active in exclusive mode", seed, step, active)
			}
		}
	}
}

func isLoaded(m *Manager, id string) bool {
	a, err := m.Get(id)
	return err == nil && a.LoadState == types.Loaded
}
