// Package cache provides a lazily filled result cell that keeps successes
// and retries failures.
package cache

// Cell memoizes the result of a fallible fetch. A successful value is kept
// for the lifetime of the cell; an empty or failed cell fetches again on the
// next Get.
//
// Cells are not safe for concurrent use.
type Cell[T any] struct {
	filled bool
	value  T
	err    error
}

// Get returns the cached value, calling fetch only when the cell is empty or
// holds a failure. fetch may itself read other cells.
func (c *Cell[T]) Get(fetch func() (T, error)) (T, error) {
	if c.filled && c.err == nil {
		return c.value, nil
	}

	v, err := fetch()
	c.filled = true
	c.value = v
	c.err = err
	return v, err
}

// Peek returns the stored result without fetching. ok is false for an empty
// cell.
func (c *Cell[T]) Peek() (value T, ok bool, err error) {
	return c.value, c.filled, c.err
}

// Reset empties the cell, forcing the next Get to fetch.
func (c *Cell[T]) Reset() {
	var zero T
	c.filled = false
	c.value = zero
	c.err = nil
}
