package orderedmap

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Collectible wraps a value so that it owns its map entry: bulk
// construction and decoding register the entry handle with it, and Close
// gives the entry up. It encodes exactly like the wrapped value.
type Collectible[K comparable, T any] struct {
	Value T

	handle *Handle[K, *Collectible[K, T]]
}

// NewCollectible wraps v.
func NewCollectible[K comparable, T any](v T) *Collectible[K, T] {
	return &Collectible[K, T]{Value: v}
}

// RegisterHandle implements Registrar. A previously held handle is closed.
func (c *Collectible[K, T]) RegisterHandle(h *Handle[K, *Collectible[K, T]]) {
	if c.handle != nil && c.handle != h {
		_ = c.handle.Close()
	}
	c.handle = h
}

// Handle returns the registered handle, or nil.
func (c *Collectible[K, T]) Handle() *Handle[K, *Collectible[K, T]] { return c.handle }

// Close closes the registered handle, if any.
func (c *Collectible[K, T]) Close() error {
	if c == nil || c.handle == nil {
		return nil
	}
	h := c.handle
	c.handle = nil
	return h.Close()
}

func (c *Collectible[K, T]) MarshalJSON() ([]byte, error) { return json.Marshal(c.Value) }

func (c *Collectible[K, T]) UnmarshalJSON(b []byte) error { return json.Unmarshal(b, &c.Value) }

func (c *Collectible[K, T]) MarshalYAML() (any, error) { return c.Value, nil }

func (c *Collectible[K, T]) UnmarshalYAML(node *yaml.Node) error { return node.Decode(&c.Value) }

func (c *Collectible[K, T]) String() string { return fmt.Sprint(c.Value) }
