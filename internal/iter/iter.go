package iter

import (
	"context"

	"github.com/pheres-lang/pheres/internal/asl"
	"github.com/pheres-lang/pheres/internal/optional"
)

// NewSlice converts a slice of values into an Iterator implementation.
func NewSlice[T any](vs []T) asl.Iterator[T] {
	return &sliceIterator[T]{values: vs}
}

type sliceIterator[T any] struct {
	values []T
	next   int
}

func (it *sliceIterator[T]) Next(ctx context.Context) optional.Optional[T] {
	if it.next >= len(it.values) {
		return optional.None[T]()
	}
	v := it.values[it.next]
	it.next = it.next + 1
	return optional.Some(v)
}

func (it *sliceIterator[T]) Close(ctx context.Context) error {
	return nil
}

// NewIteratorFilter wraps an iterator so that only values accepted by the
// filter are returned.
func NewIteratorFilter[T any](it asl.Iterator[T], f asl.Filter[T]) asl.Iterator[T] {
	return &filterIterator[T]{source: it, filter: f}
}

type filterIterator[T any] struct {
	source asl.Iterator[T]
	filter asl.Filter[T]
}

func (it *filterIterator[T]) Next(ctx context.Context) optional.Optional[T] {
	for v := it.source.Next(ctx); v.IsPresent(); v = it.source.Next(ctx) {
		if it.filter.Keep(ctx, v.Value()) {
			return v
		}
	}
	return optional.None[T]()
}

func (it *filterIterator[T]) Close(ctx context.Context) error {
	return it.source.Close(ctx)
}

// NewLookahead wraps an iterator so that up to n values past the most recent
// result of Next can be inspected. Lookahead(ctx, 0) is the value last
// returned by Next and Lookahead(ctx, 1) is the value the next call will
// return.
func NewLookahead[T any](it asl.Iterator[T], n uint8) asl.Lookahead[T] {
	return &lookahead[T]{source: it, depth: n}
}

type lookahead[T any] struct {
	source asl.Iterator[T]
	depth  uint8
	window []optional.Optional[T]
}

func (look *lookahead[T]) fill(ctx context.Context) {
	if look.window != nil {
		return
	}
	look.window = make([]optional.Optional[T], int(look.depth)+1)
	for x := range look.window {
		look.window[x] = look.source.Next(ctx)
	}
}

func (look *lookahead[T]) Next(ctx context.Context) optional.Optional[T] {
	if look.window == nil {
		look.fill(ctx)
		return look.window[0]
	}
	copy(look.window, look.window[1:])
	look.window[len(look.window)-1] = look.source.Next(ctx)
	return look.window[0]
}

func (look *lookahead[T]) Lookahead(ctx context.Context, n uint8) optional.Optional[T] {
	look.fill(ctx)
	if n > look.depth {
		return optional.None[T]()
	}
	return look.window[n]
}

func (look *lookahead[T]) Close(ctx context.Context) error {
	return look.source.Close(ctx)
}

// FilterFunc adapts a plain function to the Filter interface:
//
//	FilterFunc[T](func(ctx context.Context, val T) bool { return true })
type FilterFunc[T any] func(ctx context.Context, val T) bool

func (f FilterFunc[T]) Keep(ctx context.Context, val T) bool {
	return f(ctx, val)
}
