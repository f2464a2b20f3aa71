package types

// LoadState is whether an adapter's weights are resident.
type LoadState string

const (
	Loaded   LoadState = "loaded"
	Unloaded LoadState = "unloaded"
)

// Adapter is one loadable LoRA adapter attached to a base model.
type Adapter struct {
	// Stable identifier for the adapter.
	// example: lora-1
	ID string `json:"id" example:"lora-1"`
	// Human-friendly name.
	// example: LoRA-代码助手
	Name string `json:"name" example:"LoRA-代码助手"`
	// Whether weights are resident and eligible for activation.
	// example: loaded
	LoadState LoadState `json:"load_state" example:"loaded"`
	// Whether the adapter currently participates in inference.
	// example: true
	Active bool `json:"active" example:"true"`
}

// AdapterSetResponse is returned by GET /api/lora and by every adapter mutation.
type AdapterSetResponse struct {
	// Adapters in seed order.
	Adapters []Adapter `json:"adapters"`
	// When true at most one adapter may be activated at a time.
	// example: true
	ExclusiveMode bool `json:"exclusive_mode" example:"true"`
	// Number of adapters currently loaded.
	// example: 5
	LoadedCount int `json:"loaded_count" example:"5"`
	// The active adapter, if any. With exclusive mode off several adapters
	// may be active; this is the first in seed order.
	Active *Adapter `json:"active,omitempty"`
}

// ModeRequest is the body of PUT /api/lora/mode.
type ModeRequest struct {
	// example: false
	Exclusive *bool `json:"exclusive" example:"false"`
}
