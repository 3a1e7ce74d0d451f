package schema

import (
	"bytes"
	"encoding/json"
)

// Node is one typed JSON-LD object. Fields keep insertion order when serialized, and
// empty values are never stored. HTML escaping follows the caller's encoder; json.Marshal
// escapes, so callers wanting literal characters use an Encoder with SetEscapeHTML(false).
type Node struct {
	keys   []string
	values map[string]any
}

// Ref is an @id-only cross-reference to another node in the graph.
type Ref struct {
	ID string `json:"@id"`
}

// NewNode returns a node with its @type and @id set.
func NewNode(typ, id string) *Node {
	n := &Node{values: make(map[string]any)}
	return n.Set("@type", typ).Set("@id", id)
}

// Set stores value under key, replacing an existing key in place. Empty values (zero
// numbers, empty strings and slices, nil, empty refs and nodes) remove the key instead.
func (n *Node) Set(key string, value any) *Node {
	if isEmpty(value) {
		n.Delete(key)
		return n
	}
	if _, ok := n.values[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.values[key] = value
	return n
}

// Delete removes key.
func (n *Node) Delete(key string) {
	if _, ok := n.values[key]; !ok {
		return
	}
	delete(n.values, key)
	for i, k := range n.keys {
		if k == key {
			n.keys = append(n.keys[:i], n.keys[i+1:]...)
			break
		}
	}
}

// Get returns the value stored under key.
func (n *Node) Get(key string) (any, bool) {
	if n == nil {
		return nil, false
	}
	v, ok := n.values[key]
	return v, ok
}

// GetString returns a string field, or "" when absent.
func (n *Node) GetString(key string) string {
	v, _ := n.Get(key)
	s, _ := v.(string)
	return s
}

func (n *Node) Type() string { return n.GetString("@type") }
func (n *Node) ID() string   { return n.GetString("@id") }

// Ref returns a reference to this node.
func (n *Node) Ref() Ref { return Ref{ID: n.ID()} }

// Keys returns the field names in serialization order.
func (n *Node) Keys() []string {
	if n == nil {
		return nil
	}
	return append([]string(nil), n.keys...)
}

// Clone returns a shallow copy that can be modified without affecting n.
func (n *Node) Clone() *Node {
	cp := &Node{keys: append([]string(nil), n.keys...), values: make(map[string]any, len(n.values))}
	for k, v := range n.values {
		cp.values[k] = v
	}
	return cp
}

// MarshalJSON encodes the fields in insertion order.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range n.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := encode(k)
		if err != nil {
			return nil, err
		}
		val, err := encode(n.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case int:
		return x == 0
	case int64:
		return x == 0
	case float64:
		return x == 0
	case []string:
		return len(x) == 0
	case []any:
		return len(x) == 0
	case []*Node:
		return len(x) == 0
	case Ref:
		return x.ID == ""
	case *Node:
		return x == nil || len(x.keys) == 0
	default:
		return false
	}
}

// Graph is the serialized form of an assembled graph.
type Graph struct {
	Context string  `json:"@context"`
	Nodes   []*Node `json:"@graph"`
}

// NewGraph wraps nodes for serialization.
func NewGraph(nodes []*Node) Graph {
	if nodes == nil {
		nodes = []*Node{}
	}
	return Graph{Context: "https://schema.org", Nodes: nodes}
}
