// Package huffman implements static, two-pass Huffman coding of in-memory
// symbol streams.
//
// The pipeline is: count symbol frequencies (FrequencyTable), build a
// Huffman tree with a deterministic tie-break (BuildTree), derive a
// prefix-free CodeTable from the leaf paths, and pack the codes of the input
// symbols into a Bits value (Encoder).  Decoding walks the Tree, or a prefix
// table rebuilt from the CodeTable (Decoder), and needs the exact symbol
// count because Huffman bit streams are not self-terminating.
//
// Tie-break policy: nodes are ordered by ascending weight, then by the
// smallest Symbol contained in the node.  The first node extracted from the
// queue becomes the left child (bit 0).
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffman
