// Package lora owns the set of LoRA adapters attached to the base model and
// the rules for loading and activating them. It is structured into small
// files by concern:
//
//   - manager.go: Manager type, constructor, read accessors.
//   - ops.go: SetMode, Activate, ToggleLoad and Reseed.
//   - seed.go: default seed and seed normalisation.
//   - errors.go: error types and helpers (IsNotFound, IsNotLoaded).
//   - events.go: EventPublisher and the events emitted by operations.
//
// Rules enforced by the manager:
//
//   - An unloaded adapter is never active.
//   - In exclusive mode an activation deactivates every other adapter, and
//     loading an adapter while nothing is active makes it the active one.
//   - Outside exclusive mode activation requests are ignored.
//   - Switching exclusive mode on does not prune adapters that are already
//     active; the next activation collapses them to one.
//
// Every operation runs to completion under the manager's lock, so callers
// observe each one atomically.
package lora
