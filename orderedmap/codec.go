package orderedmap

import (
	"bytes"
	"encoding/json"
	"slices"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// pair is the decoded form of one map entry.
type pair[K comparable, V any] struct {
	k K
	v V
}

// MarshalJSON encodes the map as [[k,v],...] in iteration order.
func (m *Map[K, V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	i := 0
	for k, v := range m.All() {
		b, err := json.Marshal([2]any{k, v})
		if err != nil {
			return nil, errors.Wrapf(err, "orderedmap: encode pair %d", i)
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(b)
		i++
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes [[k,v],...] and inserts the pairs in order. Nothing
// is inserted unless the whole document decodes.
func (m *Map[K, V]) UnmarshalJSON(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return errors.Wrap(err, "orderedmap: decode pairs")
	}
	pairs := make([]pair[K, V], 0, len(items))
	for i, item := range items {
		var kv []json.RawMessage
		if err := json.Unmarshal(item, &kv); err != nil {
			return errors.Wrapf(err, "orderedmap: decode pair %d", i)
		}
		if len(kv) != 2 {
			return errors.Errorf("orderedmap: pair %d has %d elements, want 2", i, len(kv))
		}
		var p pair[K, V]
		if err := json.Unmarshal(kv[0], &p.k); err != nil {
			return errors.Wrapf(err, "orderedmap: decode key %d", i)
		}
		if err := json.Unmarshal(kv[1], &p.v); err != nil {
			return errors.Wrapf(err, "orderedmap: decode value %d", i)
		}
		pairs = append(pairs, p)
	}
	for _, p := range pairs {
		m.adopt(p.k, p.v)
	}
	return nil
}

// MarshalYAML encodes the map as a sequence of [k, v] pairs.
func (m *Map[K, V]) MarshalYAML() (any, error) {
	pairs := make([][2]any, 0, m.Len())
	for k, v := range m.All() {
		pairs = append(pairs, [2]any{k, v})
	}
	return pairs, nil
}

// UnmarshalYAML decodes a sequence of [k, v] pairs.
func (m *Map[K, V]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return errors.Errorf("orderedmap: line %d: expected a sequence of pairs", node.Line)
	}
	pairs := make([]pair[K, V], 0, len(node.Content))
	for i, item := range node.Content {
		if item.Kind != yaml.SequenceNode || len(item.Content) != 2 {
			return errors.Errorf("orderedmap: line %d: pair %d is not a two-element sequence", item.Line, i)
		}
		var p pair[K, V]
		if err := item.Content[0].Decode(&p.k); err != nil {
			return errors.Wrapf(err, "orderedmap: decode key %d", i)
		}
		if err := item.Content[1].Decode(&p.v); err != nil {
			return errors.Wrapf(err, "orderedmap: decode value %d", i)
		}
		pairs = append(pairs, p)
	}
	for _, p := range pairs {
		m.adopt(p.k, p.v)
	}
	return nil
}

// MarshalJSON encodes the set as [k,...] in iteration order.
func (s *Set[K]) MarshalJSON() ([]byte, error) {
	keys := s.keys()
	b, err := json.Marshal(keys)
	if err != nil {
		return nil, errors.Wrap(err, "orderedmap: encode set")
	}
	return b, nil
}

// UnmarshalJSON decodes [k,...] and inserts the keys in order.
func (s *Set[K]) UnmarshalJSON(data []byte) error {
	var keys []K
	if err := json.Unmarshal(data, &keys); err != nil {
		return errors.Wrap(err, "orderedmap: decode set")
	}
	SetExtend(s, slices.Values(keys))
	return nil
}

// MarshalYAML encodes the set as a sequence of keys.
func (s *Set[K]) MarshalYAML() (any, error) { return s.keys(), nil }

// UnmarshalYAML decodes a sequence of keys.
func (s *Set[K]) UnmarshalYAML(node *yaml.Node) error {
	var keys []K
	if err := node.Decode(&keys); err != nil {
		return errors.Wrap(err, "orderedmap: decode set")
	}
	SetExtend(s, slices.Values(keys))
	return nil
}

func (s *Set[K]) keys() []K {
	keys := make([]K, 0, s.Len())
	for k := range s.All() {
		keys = append(keys, k)
	}
	return keys
}
