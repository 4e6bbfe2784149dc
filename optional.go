package main

// optional holds a peripheral that is either present for the whole session
// or absent because it failed to open.
type optional[T any] struct {
	value T
	ok    bool
}

func present[T any](v T) optional[T] {
	return optional[T]{value: v, ok: true}
}

func absent[T any]() optional[T] {
	return optional[T]{}
}

func (o optional[T]) get() (T, bool) {
	return o.value, o.ok
}

func (o optional[T]) isPresent() bool {
	return o.ok
}
