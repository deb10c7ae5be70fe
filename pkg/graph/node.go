package graph

import (
	"bytes"
	"cmp"
	"fmt"
	"strings"
)

// Kind identifies the payload type carried by a Node.
type Kind uint8

const (
	KindText Kind = iota
	KindBlob
	KindInt
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBlob:
		return "blob"
	case KindInt:
		return "int"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Node wraps a single tagged payload: text, binary blob, or integer.
// Two nodes are structurally equal when both tag and value match; the
// Graph relies on this for insert deduplication.
//
// Construct nodes with Text, Blob, or Int. The zero Node is a text node
// with an empty string.
type Node struct {
	kind Kind
	text string
	blob []byte
	num  int
}

// Text creates a node carrying a string payload.
func Text(v string) Node {
	return Node{kind: KindText, text: v}
}

// Blob creates a node carrying a binary payload.
// The slice is stored as-is; callers must not mutate it afterwards.
func Blob(v []byte) Node {
	return Node{kind: KindBlob, blob: v}
}

// Int creates a node carrying an integer payload.
func Int(v int) Node {
	return Node{kind: KindInt, num: v}
}

// Kind returns the payload tag of the node.
func (n Node) Kind() Kind {
	return n.kind
}

// TextValue returns the string payload, with ok=false if the node does not
// carry text.
func (n Node) TextValue() (string, bool) {
	return n.text, n.kind == KindText
}

// BlobValue returns the binary payload, with ok=false if the node does not
// carry a blob.
func (n Node) BlobValue() ([]byte, bool) {
	return n.blob, n.kind == KindBlob
}

// IntValue returns the integer payload, with ok=false if the node does not
// carry an integer.
func (n Node) IntValue() (int, bool) {
	return n.num, n.kind == KindInt
}

// mustInt extracts the integer payload or panics.
// Only the shortest-path exploration tree uses this: that tree stores
// nothing but integer payloads, so a mismatch is a broken invariant, not a
// recoverable condition.
func (n Node) mustInt() int {
	if n.kind != KindInt {
		panic(fmt.Sprintf("graph: integer payload requested from %s node", n.kind))
	}
	return n.num
}

// Equal reports whether both nodes carry the same tag and value.
func (n Node) Equal(other Node) bool {
	return n.Compare(other) == 0
}

// Compare orders nodes structurally: by tag first, then by value.
// Returns -1, 0 or +1 like the cmp package.
func (n Node) Compare(other Node) int {
	if c := cmp.Compare(n.kind, other.kind); c != 0 {
		return c
	}
	switch n.kind {
	case KindText:
		return strings.Compare(n.text, other.text)
	case KindBlob:
		return bytes.Compare(n.blob, other.blob)
	default:
		return cmp.Compare(n.num, other.num)
	}
}

// String renders the node payload for logs and debug output.
func (n Node) String() string {
	switch n.kind {
	case KindText:
		return fmt.Sprintf("text(%q)", n.text)
	case KindBlob:
		return fmt.Sprintf("blob(%d bytes)", len(n.blob))
	default:
		return fmt.Sprintf("int(%d)", n.num)
	}
}

// Edge is a directed connection between two node indices of the same Graph.
// Equality is by value, so inserting the same (From, To) pair twice is a
// no-op at the Graph level. Self-loops are allowed.
type Edge struct {
	From int
	To   int
}
