// Package settings reads and writes named groups of key/value entries
// against an external store: fill a container from its group, look entries
// up with typed defaults, change some, write the group back.
//
// Containers are keyed by any integer or string type, so a caller can walk
// an enum-style constant set or a list of names instead of spelling out one
// accessor per entry.
package settings

import (
	"cmp"
	"context"
	"fmt"
	"reflect"
	"strconv"

	"github.com/emirpasic/gods/maps/treemap"
)

// Key is the set of types that may key a Container: any integer or string
// type, including locally declared ones.
type Key interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~string
}

// Container is an ordered key/value mapping tied to one store group. It is
// not safe for concurrent use. Create one with NewContainer; the zero value
// is unusable.
type Container[K Key] struct {
	group string
	data  *treemap.Map
}

// NewContainer returns an empty container bound to the named group.
func NewContainer[K Key](group string) *Container[K] {
	return &Container[K]{
		group: group,
		data: treemap.NewWith(func(a, b interface{}) int {
			return cmp.Compare(a.(K), b.(K))
		}),
	}
}

// Group returns the store group the container is bound to.
func (c *Container[K]) Group() string { return c.group }

// SetValue stores value under key, replacing any previous value. Values
// should be scalars a store can keep: integers, floats, booleans, strings
// or byte slices.
func (c *Container[K]) SetValue(key K, value any) {
	c.data.Put(key, value)
}

// Contains reports whether the container holds a value for key.
func (c *Container[K]) Contains(key K) bool {
	_, found := c.data.Get(key)
	return found
}

// Len returns the number of entries held.
func (c *Container[K]) Len() int { return c.data.Size() }

// Keys returns the container's keys in ascending order.
func (c *Container[K]) Keys() []K {
	raw := c.data.Keys()
	keys := make([]K, len(raw))
	for i, k := range raw {
		keys[i] = k.(K)
	}
	return keys
}

// Read merges every entry stored under the container's group into the
// container, overwriting entries already present under the same key. A
// store key that cannot be parsed into K is an error.
func (c *Container[K]) Read(ctx context.Context, store Store) error {
	values, err := store.ReadGroup(ctx, c.group)
	if err != nil {
		return fmt.Errorf("could not read settings group %q: %w", c.group, err)
	}
	for name, value := range values {
		key, err := parseKey[K](name)
		if err != nil {
			return fmt.Errorf("could not read settings group %q: key %q: %w", c.group, name, err)
		}
		c.data.Put(key, value)
	}
	return nil
}

// Write persists every entry of the container under its group. Stored
// entries whose keys are absent from the container are left alone.
func (c *Container[K]) Write(ctx context.Context, store Store) error {
	values := make(map[string]any, c.data.Size())
	it := c.data.Iterator()
	for it.Next() {
		values[formatKey(it.Key().(K))] = it.Value()
	}
	if err := store.WriteGroup(ctx, c.group, values); err != nil {
		return fmt.Errorf("could not write settings group %q: %w", c.group, err)
	}
	return nil
}

// formatKey renders a key as its store name: integers in base 10, strings
// as themselves.
func formatKey[K Key](key K) string {
	v := reflect.ValueOf(key)
	switch {
	case v.Kind() == reflect.String:
		return v.String()
	case v.CanUint():
		return strconv.FormatUint(v.Uint(), 10)
	default:
		return strconv.FormatInt(v.Int(), 10)
	}
}

// parseKey is the inverse of formatKey.
func parseKey[K Key](name string) (K, error) {
	var key K
	v := reflect.ValueOf(&key).Elem()
	switch {
	case v.Kind() == reflect.String:
		v.SetString(name)
	case v.CanUint():
		n, err := strconv.ParseUint(name, 10, v.Type().Bits())
		if err != nil {
			return key, fmt.Errorf("not an unsigned integer: %w", err)
		}
		v.SetUint(n)
	default:
		n, err := strconv.ParseInt(name, 10, v.Type().Bits())
		if err != nil {
			return key, fmt.Errorf("not an integer: %w", err)
		}
		v.SetInt(n)
	}
	return key, nil
}
