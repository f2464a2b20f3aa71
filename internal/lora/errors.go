package lora

// notFoundError reports an operation on an adapter id that is not in the set.
type notFoundError struct{ id string }

func (e notFoundError) Error() string { return "adapter not found: " + e.id }

// ErrNotFound returns the error used for unknown adapter ids.
func ErrNotFound(id string) error { return notFoundError{id: id} }

// IsNotFound reports whether err indicates an unknown adapter id.
func IsNotFound(err error) bool {
	_, ok := err.(notFoundError)
	return ok
}

// notLoadedError reports an activation request for an unloaded adapter.
type notLoadedError struct{ id string }

func (e notLoadedError) Error() string { return "adapter not loaded: " + e.id }

// IsNotLoaded reports whether err indicates an activation of an unloaded adapter.
func IsNotLoaded(err error) bool {
	_, ok := err.(notLoadedError)
	return ok
}

// seedError reports an invalid seed passed to New or Reseed.
type seedError struct{ msg string }

func (e seedError) Error() string { return "invalid adapter seed: " + e.msg }

// IsInvalidSeed reports whether err was caused by a malformed seed.
func IsInvalidSeed(err error) bool {
	_, ok := err.(seedError)
	return ok
}
