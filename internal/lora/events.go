package lora

// Event names published by the manager.
const (
	EventModeSet          = "mode_set"
	EventActivated        = "adapter_activated"
	EventActivateIgnored  = "activate_ignored"
	EventLoaded           = "adapter_loaded"
	EventUnloaded         = "adapter_unloaded"
	EventReseeded         = "adapters_reseeded"
	EventOperationRefused = "operation_refused"
)

// Event describes one state change of the adapter set. Fields always carry
// "loaded", "active" and "exclusive" so subscribers can mirror the totals
// without reading the manager back.
type Event struct {
	Name      string
	AdapterID string
	Fields    map[string]any
}

// EventPublisher receives events from the manager. Implementations must be
// non-blocking and must not call back into the manager.
type EventPublisher interface {
	Publish(Event)
}

type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}

// Publishers fans one event out to several publishers in order.
type Publishers []EventPublisher

func (ps Publishers) Publish(e Event) {
	for _, p := range ps {
		if p != nil {
			p.Publish(e)
		}
	}
}
