package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Kind identifies what a Node holds.
type Kind int

const (
	// KindString is a translatable string leaf.
	KindString Kind = iota
	// KindObject is a nested container with ordered keys.
	KindObject
	// KindOpaque is any other leaf (number, bool, null, array). Opaque
	// values are carried through untouched and never translated.
	KindOpaque
)

// Node is a single value in a translation document. Objects keep their
// keys in insertion order so written files mirror the source layout.
type Node struct {
	kind     Kind
	str      string
	keys     []string
	children map[string]*Node
	raw      json.RawMessage
}

// NewObject returns an empty container node.
func NewObject() *Node {
	return &Node{kind: KindObject, children: make(map[string]*Node)}
}

// NewString returns a string leaf node.
func NewString(s string) *Node {
	return &Node{kind: KindString, str: s}
}

// Kind returns the node's kind.
func (n *Node) Kind() Kind { return n.kind }

// Value returns the string value of a string leaf ("" for other kinds).
func (n *Node) Value() string { return n.str }

// Keys returns the container's keys in insertion order.
func (n *Node) Keys() []string { return n.keys }

// Child returns the named child of a container, or nil.
func (n *Node) Child(key string) *Node {
	if n.kind != KindObject {
		return nil
	}
	return n.children[key]
}

// Len returns the number of keys in a container.
func (n *Node) Len() int { return len(n.keys) }

func (n *Node) setChild(key string, child *Node) {
	if _, exists := n.children[key]; !exists {
		n.keys = append(n.keys, key)
	}
	n.children[key] = child
}

func (n *Node) removeChild(key string) {
	if _, exists := n.children[key]; !exists {
		return
	}
	delete(n.children, key)
	for i, k := range n.keys {
		if k == key {
			n.keys = append(n.keys[:i], n.keys[i+1:]...)
			break
		}
	}
}

// Parse decodes a JSON document into a Node, preserving object key order.
func Parse(data []byte) (*Node, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return NewObject(), nil
	}
	node, err := parseRaw(trimmed)
	if err != nil {
		return nil, fmt.Errorf("failed to parse translation document: %w", err)
	}
	return node, nil
}

func parseRaw(raw json.RawMessage) (*Node, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty value")
	}

	switch raw[0] {
	case '{':
		dec := json.NewDecoder(bytes.NewReader(raw))
		if _, err := dec.Token(); err != nil { // opening brace
			return nil, err
		}
		return parseObject(dec)
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return NewString(s), nil
	default:
		// Validate, then keep the raw bytes as-is.
		var v interface{}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return &Node{kind: KindOpaque, raw: append(json.RawMessage(nil), raw...)}, nil
	}
}

func parseObject(dec *json.Decoder) (*Node, error) {
	node := NewObject()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key token %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		child, err := parseRaw(raw)
		if err != nil {
			return nil, err
		}
		node.setChild(key, child)
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return nil, err
	}
	return node, nil
}

// Encode serializes the node with 2-space indentation and a trailing
// newline, keys in insertion order.
func (n *Node) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.encode(&buf, ""); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func (n *Node) encode(buf *bytes.Buffer, prefix string) error {
	switch n.kind {
	case KindString:
		escaped, err := json.Marshal(n.str)
		if err != nil {
			return err
		}
		buf.Write(escaped)
	case KindOpaque:
		var indented bytes.Buffer
		if err := json.Indent(&indented, n.raw, prefix, "  "); err != nil {
			return err
		}
		buf.Write(indented.Bytes())
	case KindObject:
		if len(n.keys) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteString("{\n")
		inner := prefix + "  "
		for i, key := range n.keys {
			escaped, err := json.Marshal(key)
			if err != nil {
				return err
			}
			buf.WriteString(inner)
			buf.Write(escaped)
			buf.WriteString(": ")
			if err := n.children[key].encode(buf, inner); err != nil {
				return err
			}
			if i < len(n.keys)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(prefix)
		buf.WriteByte('}')
	}
	return nil
}

// Flatten returns the dot-paths of all leaves in key order. A leaf is any
// node that is not a container; arrays count as leaves.
func (n *Node) Flatten() []string {
	var paths []string
	n.flatten("", &paths)
	return paths
}

func (n *Node) flatten(prefix string, paths *[]string) {
	if n.kind != KindObject {
		if prefix != "" {
			*paths = append(*paths, prefix)
		}
		return
	}
	for _, key := range n.keys {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		n.children[key].flatten(path, paths)
	}
}

// Get returns the string value at the dot-path. The second result is false
// if any intermediate segment is absent or not a container, or if the
// terminal value is not a string.
func (n *Node) Get(path string) (string, bool) {
	segments := strings.Split(path, ".")
	current := n
	for _, seg := range segments {
		if current == nil || current.kind != KindObject {
			return "", false
		}
		current = current.children[seg]
	}
	if current == nil || current.kind != KindString {
		return "", false
	}
	return current.str, true
}

// Set stores a string value at the dot-path, creating intermediate
// containers as needed. A non-container intermediate is overwritten with an
// empty container, losing its previous value.
func (n *Node) Set(path, value string) {
	segments := strings.Split(path, ".")
	current := n
	for _, seg := range segments[:len(segments)-1] {
		child := current.children[seg]
		if child == nil || child.kind != KindObject {
			child = NewObject()
			current.setChild(seg, child)
		}
		current = child
	}
	current.setChild(segments[len(segments)-1], NewString(value))
}

// Delete removes the leaf at the dot-path, then prunes any containers left
// empty by the removal, up to the root.
func (n *Node) Delete(path string) {
	n.deleteSegments(strings.Split(path, "."))
}

func (n *Node) deleteSegments(segments []string) {
	if n.kind != KindObject {
		return
	}
	key := segments[0]
	child := n.children[key]
	if child == nil {
		return
	}
	if len(segments) == 1 {
		n.removeChild(key)
		return
	}
	child.deleteSegments(segments[1:])
	if child.kind == KindObject && len(child.keys) == 0 {
		n.removeChild(key)
	}
}

// ReorderToMatchSource builds a new tree with exactly the keys of target
// that also exist in source, in source's key order. Matching containers are
// reordered recursively; keys present only in target are dropped.
func ReorderToMatchSource(source, target *Node) *Node {
	if source.kind != KindObject || target.kind != KindObject {
		return target
	}
	result := NewObject()
	for _, key := range source.keys {
		targetChild := target.children[key]
		if targetChild == nil {
			continue
		}
		sourceChild := source.children[key]
		if sourceChild.kind == KindObject && targetChild.kind == KindObject {
			result.setChild(key, ReorderToMatchSource(sourceChild, targetChild))
		} else {
			result.setChild(key, targetChild)
		}
	}
	return result
}
