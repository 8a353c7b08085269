package huffman

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// Tree is a Huffman tree.  Nodes live in a single arena and refer to their
// children by index, so the tree has no cycles, each child has exactly one
// parent, and the whole tree is dropped as a unit.
//
// A Tree is immutable once built and safe for concurrent use by multiple
// decoders.
type Tree struct {
	nodes []node
	root  int32
}

type node struct {
	weight uint64
	symbol Symbol
	left   int32
	right  int32
}

func (n node) isLeaf() bool {
	return n.symbol >= 0
}

// BuildTree builds the Huffman tree for the given frequencies.
//
// Each symbol becomes a leaf.  The two nodes with the smallest (weight,
// smallest contained symbol) are repeatedly removed from a priority queue and
// merged under a new internal node, the first one removed becoming the left
// child, until a single root remains.  With only one distinct symbol the
// root is that symbol's leaf.
//
// Codes are limited to 64 bits.  If the tree would be deeper than that, as
// with Fibonacci-distributed counts over more than 64 symbols, every weight
// is halved (but kept at least 1) and the tree is rebuilt until it fits.
// Such a tree is no longer optimal, but its nodes still report the true
// counts.
//
// Entries with a count of 0 are ignored.  If nothing remains, BuildTree
// returns ErrEmptyInput.
//
func BuildTree(freqs FrequencyTable) (*Tree, error) {
	symbols := freqs.Symbols()

	leaves := make([]node, 0, len(symbols))
	for _, sym := range symbols {
		if sym < 0 {
			return nil, fmt.Errorf("huffman: invalid symbol %d in frequency table", sym)
		}
		if weight := freqs[sym]; weight != 0 {
			leaves = append(leaves, node{weight: weight, symbol: sym, left: -1, right: -1})
		}
	}
	if len(leaves) == 0 {
		return nil, ErrEmptyInput
	}

	weights := make([]uint64, len(leaves))
	for i, leaf := range leaves {
		weights[i] = leaf.weight
	}

	for {
		t := mergeLeaves(leaves, weights)
		if t.height() <= maxBitsPerCode {
			t.reweigh(leaves)
			return t, nil
		}
		for i, weight := range weights {
			weights[i] = weight>>1 | 1
		}
	}
}

// mergeLeaves runs the merge loop over leaves weighted by weights.  Leaves
// occupy the first len(leaves) slots of the arena and every internal node
// comes after both of its children.
func mergeLeaves(leaves []node, weights []uint64) *Tree {
	nodes := make([]node, 0, 2*len(leaves)-1)
	q := nodeQueue{list: make([]queueItem, 0, len(leaves))}
	for i, leaf := range leaves {
		index := int32(len(nodes))
		leaf.weight = weights[i]
		nodes = append(nodes, leaf)
		q.list = append(q.list, queueItem{index: index, weight: leaf.weight, key: leaf.symbol})
	}
	q.Init()

	for q.Len() > 1 {
		a := q.PopItem()
		b := q.PopItem()

		key := a.key
		if b.key < key {
			key = b.key
		}

		index := int32(len(nodes))
		weight := addSaturating(a.weight, b.weight)
		nodes = append(nodes, node{weight: weight, symbol: InvalidSymbol, left: a.index, right: b.index})
		q.PushItem(queueItem{index: index, weight: weight, key: key})
	}

	root := q.PopItem()
	return &Tree{nodes: nodes, root: root.index}
}

// height computes the depth of a tree built by mergeLeaves in one pass from
// the leaves up.
func (t *Tree) height() int {
	heights := make([]int, len(t.nodes))
	for i, n := range t.nodes {
		if n.isLeaf() {
			continue
		}
		h := heights[n.left]
		if heights[n.right] > h {
			h = heights[n.right]
		}
		heights[i] = h + 1
	}
	return heights[t.root]
}

// reweigh puts the counts of leaves back into a tree built by mergeLeaves
// and recomputes the internal weights from them.
func (t *Tree) reweigh(leaves []node) {
	for i := range t.nodes {
		n := &t.nodes[i]
		if i < len(leaves) {
			n.weight = leaves[i].weight
			continue
		}
		n.weight = addSaturating(t.nodes[n.left].weight, t.nodes[n.right].weight)
	}
}

// Weight returns the weight of the root, i.e. the total number of symbols
// the tree was built from.  Trees read by UnmarshalBinary have weight 0.
func (t *Tree) Weight() uint64 {
	if t.isEmpty() {
		return 0
	}
	return t.nodes[t.root].weight
}

func (t *Tree) isEmpty() bool {
	return t == nil || len(t.nodes) == 0
}

// NumLeaves returns the number of distinct symbols in the tree.
func (t *Tree) NumLeaves() int {
	if t.isEmpty() {
		return 0
	}
	return (len(t.nodes) + 1) / 2
}

// Depth returns the length of the longest path from the root to a leaf.
func (t *Tree) Depth() byte {
	var depth byte
	t.walk(func(index int32, hc Code) {
		if hc.Size > depth {
			depth = hc.Size
		}
	})
	return depth
}

// ReadSymbol decodes one symbol by walking the tree from the root, taking
// the left child on a 0 bit and the right child on a 1 bit, until a leaf is
// reached.
//
// A tree consisting of a single leaf consumes one bit per symbol, which must
// be 0.  An empty tree, such as the zero value, fails with ErrCorruptStream.
//
func (t *Tree) ReadSymbol(br *BitReader) (Symbol, error) {
	if t.isEmpty() {
		return InvalidSymbol, corruptf("huffman: tree has no nodes")
	}
	n := t.nodes[t.root]
	if n.isLeaf() {
		bit, err := br.ReadBit()
		if err != nil {
			return InvalidSymbol, err
		}
		if bit != 0 {
			return InvalidSymbol, corruptf("huffman: bit %d is not a code of a single-symbol tree", bit)
		}
		return n.symbol, nil
	}

	for !n.isLeaf() {
		bit, err := br.ReadBit()
		if err != nil {
			return InvalidSymbol, err
		}
		if bit == 0 {
			n = t.nodes[n.left]
		} else {
			n = t.nodes[n.right]
		}
	}
	return n.symbol, nil
}

// Dump writes a programmer-readable debugging dump of the tree to the given
// writer.  Nodes are listed in pre-order, each with its path from the root.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	fmt.Fprintf(&buf, "\tWeight() = %d\n", t.Weight())
	fmt.Fprintf(&buf, "\tDepth() = %d\n", t.Depth())
	t.walk(func(index int32, hc Code) {
		n := t.nodes[index]
		fmt.Fprintf(&buf, "\tNode(%s) = {%d, %d}\n", hc, n.symbol, n.weight)
	})
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// String returns a short description of the tree.
func (t *Tree) String() string {
	return fmt.Sprintf("(Huffman tree with %d symbols, weight %d, depth %d)", t.NumLeaves(), t.Weight(), t.Depth())
}

var _ fmt.Stringer = (*Tree)(nil)
var _ SymbolReader = (*Tree)(nil)

// walk visits every node in pre-order (node, left subtree, right subtree),
// passing each node's path from the root.  An empty tree has no nodes to
// visit.
func (t *Tree) walk(fn func(index int32, hc Code)) {
	if t.isEmpty() {
		return
	}

	type stackItem struct {
		index int32
		hc    Code
	}

	stack := make([]stackItem, 1, 64)
	stack[0] = stackItem{index: t.root}
	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		fn(top.index, top.hc)

		n := t.nodes[top.index]
		if n.isLeaf() {
			continue
		}
		assert.Assertf(n.left >= 0 && n.right >= 0, "internal node %d does not have two children", top.index)
		assert.Assertf(top.hc.Size < maxBitsPerCode, "tree is deeper than %d bits", maxBitsPerCode)

		// Right is pushed first so that left is visited first.
		stack = append(stack, stackItem{index: n.right, hc: top.hc.Append(1)})
		stack = append(stack, stackItem{index: n.left, hc: top.hc.Append(0)})
	}
}
