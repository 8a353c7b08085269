package huffman

import (
	"bytes"
	"encoding"

	"github.com/icza/bitio"
)

// symbolBits is the width of a leaf symbol in the serialized tree.
const symbolBits = 31

// MarshalBinary serializes the shape of the tree in pre-order: a 0 bit for
// an internal node, followed by its left and then its right subtree, or a 1
// bit for a leaf, followed by its symbol in 31 bits.  The last byte is
// padded with zeros.  Weights are not serialized.  An empty tree cannot be
// serialized.
func (t *Tree) MarshalBinary() ([]byte, error) {
	if t.isEmpty() {
		return nil, corruptf("huffman: cannot serialize an empty tree")
	}

	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	t.walk(func(index int32, hc Code) {
		n := t.nodes[index]
		if !n.isLeaf() {
			w.TryWriteBool(false)
			return
		}
		w.TryWriteBool(true)
		w.TryWriteBits(uint64(n.symbol), symbolBits)
	})
	if w.TryError != nil {
		return nil, w.TryError
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary reads a tree written by MarshalBinary, replacing the
// contents of t.  It fails with ErrCorruptStream if the data is truncated,
// describes a tree deeper than 64 levels, repeats a symbol, or has anything
// but zero padding after the tree.
func (t *Tree) UnmarshalBinary(data []byte) error {
	r := bitio.NewReader(bytes.NewReader(data))
	var consumed int

	readBool := func() (bool, error) {
		b, err := r.ReadBool()
		if err != nil {
			return false, corruptf("huffman: truncated tree")
		}
		consumed++
		return b, nil
	}

	// Pending nodes are parents still waiting for a child.  x counts the
	// children attached so far.
	type stackItem struct {
		index int32
		x     byte
	}

	var nodes []node
	var stack []stackItem
	seen := make(map[Symbol]struct{})

	attach := func(index int32) {
		if len(stack) == 0 {
			return
		}
		top := &stack[len(stack)-1]
		if top.x == 0 {
			nodes[top.index].left = index
		} else {
			nodes[top.index].right = index
		}
		top.x++
	}

	for {
		isLeaf, err := readBool()
		if err != nil {
			return err
		}

		index := int32(len(nodes))
		if isLeaf {
			bits, err := r.ReadBits(symbolBits)
			if err != nil {
				return corruptf("huffman: truncated tree")
			}
			consumed += symbolBits
			symbol := Symbol(bits)
			if _, dupe := seen[symbol]; dupe {
				return corruptf("huffman: symbol %d appears twice in tree", symbol)
			}
			seen[symbol] = struct{}{}
			nodes = append(nodes, node{symbol: symbol, left: -1, right: -1})
			attach(index)
		} else {
			if len(stack) >= maxBitsPerCode {
				return corruptf("huffman: tree is deeper than %d levels", maxBitsPerCode)
			}
			nodes = append(nodes, node{symbol: InvalidSymbol, left: -1, right: -1})
			attach(index)
			stack = append(stack, stackItem{index: index})
		}

		// Pop every parent that now has both children.
		for len(stack) != 0 && stack[len(stack)-1].x == 2 {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			break
		}
	}

	// Only zero padding may follow, and only up to the byte boundary.
	if len(data) != (consumed+7)/8 {
		return corruptf("huffman: %d trailing bytes after tree", len(data)-(consumed+7)/8)
	}
	for consumed%8 != 0 {
		b, err := readBool()
		if err != nil {
			return err
		}
		if b {
			return corruptf("huffman: non-zero padding after tree")
		}
	}

	*t = Tree{nodes: nodes, root: 0}
	return nil
}

var _ encoding.BinaryMarshaler = (*Tree)(nil)
var _ encoding.BinaryUnmarshaler = (*Tree)(nil)
