package models

// Dependency is the outcome of a best-effort call: either a value or the
// error that prevented it. Callers choose the fallback explicitly.
type Dependency[T any] struct {
	value T
	err   error
}

func Resolved[T any](v T) Dependency[T] {
	return Dependency[T]{value: v}
}

func Failed[T any](err error) Dependency[T] {
	return Dependency[T]{err: err}
}

// Err reports why the dependency degraded, or nil.
func (d Dependency[T]) Err() error { return d.err }

// Degraded reports whether the call failed.
func (d Dependency[T]) Degraded() bool { return d.err != nil }

// OrElse returns the value, or fallback when the call failed.
func (d Dependency[T]) OrElse(fallback T) T {
	if d.err != nil {
		return fallback
	}
	return d.value
}
