package extraction

// Field is the result of a single extractor: either a value that was found
// in the text or nothing at all. Absence is a normal outcome, not an error.
type Field[T any] struct {
	value T
	ok    bool
}

// Some wraps a found value
func Some[T any](v T) Field[T] {
	return Field[T]{value: v, ok: true}
}

// None reports that nothing was found
func None[T any]() Field[T] {
	return Field[T]{}
}

// Get returns the value and whether it was present
func (f Field[T]) Get() (T, bool) {
	return f.value, f.ok
}

// Present reports whether a value was found
func (f Field[T]) Present() bool {
	return f.ok
}

// OrElse returns the value, or def when nothing was found
func (f Field[T]) OrElse(def T) T {
	if !f.ok {
		return def
	}
	return f.value
}
