// Package dedupe collapses concurrent identical reads so only one query
// runs for a key while other callers wait for its result.
package dedupe

import "golang.org/x/sync/singleflight"

// Group is a typed singleflight.Group.
type Group[T any] struct {
	g singleflight.Group
}

// Do runs fn once per key among concurrent callers and hands every caller
// the same result.
func (g *Group[T]) Do(key string, fn func() (T, error)) (T, error) {
	v, err, _ := g.g.Do(key, func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
