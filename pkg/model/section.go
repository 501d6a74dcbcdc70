package model

import (
	"fmt"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/sets/linkedhashset"
	"gopkg.in/yaml.v3"
)

// Section is an insertion-ordered mapping from identifier to value. The zero
// value is an empty section. Sections are persistent: With returns a copy and
// leaves the receiver untouched.
type Section[V any] struct {
	entries *linkedhashmap.Map
}

// NewSection returns an empty section.
func NewSection[V any]() Section[V] {
	return Section[V]{entries: linkedhashmap.New()}
}

// Len reports the number of entries.
func (s Section[V]) Len() int {
	if s.entries == nil {
		return 0
	}
	return s.entries.Size()
}

// IsEmpty reports whether the section holds no entries.
func (s Section[V]) IsEmpty() bool {
	return s.Len() == 0
}

// Get returns the value stored for key.
func (s Section[V]) Get(key string) (V, bool) {
	var zero V
	if s.entries == nil {
		return zero, false
	}
	raw, ok := s.entries.Get(key)
	if !ok {
		return zero, false
	}
	value, ok := raw.(V)
	return value, ok
}

// Has reports whether key is present.
func (s Section[V]) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Keys returns the keys in declaration order.
func (s Section[V]) Keys() []string {
	if s.entries == nil {
		return nil
	}
	keys := make([]string, 0, s.entries.Size())
	for _, key := range s.entries.Keys() {
		keys = append(keys, key.(string))
	}
	return keys
}

// Each visits entries in declaration order.
func (s Section[V]) Each(fn func(key string, value V)) {
	if s.entries == nil {
		return
	}
	it := s.entries.Iterator()
	for it.Next() {
		fn(it.Key().(string), it.Value().(V))
	}
}

// With returns a copy of the section with key set to value. Re-declaring an
// existing key keeps its original position, matching object literal semantics.
func (s Section[V]) With(key string, value V) Section[V] {
	next := linkedhashmap.New()
	if s.entries != nil {
		it := s.entries.Iterator()
		for it.Next() {
			next.Put(it.Key(), it.Value())
		}
	}
	next.Put(key, value)
	return Section[V]{entries: next}
}

// MarshalYAML renders the section as an ordered mapping node.
func (s Section[V]) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	var err error
	s.Each(func(key string, value V) {
		if err != nil {
			return
		}
		var valueNode yaml.Node
		if encErr := valueNode.Encode(value); encErr != nil {
			err = fmt.Errorf("model: encode %q: %w", key, encErr)
			return
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&valueNode,
		)
	})
	if err != nil {
		return nil, err
	}
	return node, nil
}

// ImportSet is an insertion-ordered set of import statements.
type ImportSet struct {
	items *linkedhashset.Set
}

// Len reports the number of statements.
func (s ImportSet) Len() int {
	if s.items == nil {
		return 0
	}
	return s.items.Size()
}

// Contains reports whether stmt was already collected.
func (s ImportSet) Contains(stmt string) bool {
	return s.items != nil && s.items.Contains(stmt)
}

// Values returns the statements in the order they were first added.
func (s ImportSet) Values() []string {
	if s.items == nil {
		return nil
	}
	out := make([]string, 0, s.items.Size())
	for _, item := range s.items.Values() {
		out = append(out, item.(string))
	}
	return out
}

// With returns a copy of the set including stmt.
func (s ImportSet) With(stmt string) ImportSet {
	next := linkedhashset.New()
	if s.items != nil {
		next.Add(s.items.Values()...)
	}
	next.Add(stmt)
	return ImportSet{items: next}
}

// MarshalYAML renders the set as a sequence.
func (s ImportSet) MarshalYAML() (interface{}, error) {
	values := s.Values()
	if values == nil {
		values = []string{}
	}
	return values, nil
}
