package lora

import (
	"fmt"
	"strings"

	"gatewayd/pkg/types"
)

// DefaultSeed returns the adapter set the console starts with.
func DefaultSeed() []types.Adapter {
	return []types.Adapter{
		{ID: "lora-1", Name: "LoRA-代码助手", LoadState: types.Loaded, Active: true},
		{ID: "lora-2", Name: "LoRA-法律问答", LoadState: types.Loaded},
		{ID: "lora-3", Name: "LoRA-医疗摘要", LoadState: types.Loaded},
		{ID: "lora-4", Name: "LoRA-多语言翻译", LoadState: types.Loaded},
		{ID: "lora-5", Name: "LoRA-客服话术", LoadState: types.Loaded},
		{ID: "lora-6", Name: "LoRA-金融分析", LoadState: types.Unloaded},
	}
}

// normalizeSeed copies seed, checks ids and load states, and clears the
// active flag of unloaded entries.
func normalizeSeed(seed []types.Adapter) ([]types.Adapter, map[string]int, error) {
	out := make([]types.Adapter, 0, len(seed))
	index := make(map[string]int, len(seed))
	for i, a := range seed {
		a.ID = strings.TrimSpace(a.ID)
		if a.ID == "" {
			return nil, nil, seedError{msg: fmt.Sprintf("entry %d has an empty id", i)}
		}
		if _, dup := index[a.ID]; dup {
			return nil, nil, seedError{msg: "duplicate id " + a.ID}
		}
		switch a.LoadState {
		case types.Loaded:
		case types.Unloaded, "":
			a.LoadState = types.Unloaded
			a.Active = false
		default:
			return nil, nil, seedError{msg: fmt.Sprintf("adapter %s has unknown load state %q", a.ID, a.LoadState)}
		}
		if a.Name == "" {
			a.Name = a.ID
		}
		index[a.ID] = len(out)
		out = append(out, a)
	}
	return out, index, nil
}
