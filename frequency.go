package huffman

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// FrequencyTable maps each distinct Symbol of an input to its number of
// occurrences.  Symbols that do not occur have no entry; every entry has a
// count of at least 1.
//
// Counts saturate: a count, or a sum of counts such as Total, that would
// exceed math.MaxUint64 is clamped to math.MaxUint64.  Counting an in-memory
// input can never reach the clamp; only Add and Merge with caller-supplied
// counts can.
type FrequencyTable map[Symbol]uint64

// CountFrequencies counts the occurrences of each symbol in the input.
func CountFrequencies(symbols []Symbol) FrequencyTable {
	freqs := make(FrequencyTable)
	for _, sym := range symbols {
		freqs[sym]++
	}
	return freqs
}

// CountFrequenciesParallel is CountFrequencies split across the given number
// of goroutines, each counting a disjoint chunk of the input.  The partial
// tables are merged once all workers finish.  The result is identical to
// CountFrequencies.
func CountFrequenciesParallel(symbols []Symbol, workers int) FrequencyTable {
	if workers > len(symbols) {
		workers = len(symbols)
	}
	if workers <= 1 {
		return CountFrequencies(symbols)
	}

	chunkSize := (len(symbols) + workers - 1) / workers
	partials := make([]FrequencyTable, workers)

	var wg sync.WaitGroup
	for index := 0; index < workers; index++ {
		start := index * chunkSize
		end := start + chunkSize
		if end > len(symbols) {
			end = len(symbols)
		}
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(index int, chunk []Symbol) {
			defer wg.Done()
			partials[index] = CountFrequencies(chunk)
		}(index, symbols[start:end])
	}
	wg.Wait()

	freqs := make(FrequencyTable)
	for _, partial := range partials {
		freqs.Merge(partial)
	}
	return freqs
}

// Add records n more occurrences of sym.  Adding zero is a no-op, so the
// table never holds zero counts.
func (freqs FrequencyTable) Add(sym Symbol, n uint64) {
	if n == 0 {
		return
	}
	freqs[sym] = addSaturating(freqs[sym], n)
}

// Merge adds every count in other to this table.
func (freqs FrequencyTable) Merge(other FrequencyTable) {
	for sym, n := range other {
		freqs.Add(sym, n)
	}
}

// Total returns the number of symbols counted, i.e. the input length,
// clamped to math.MaxUint64.
func (freqs FrequencyTable) Total() uint64 {
	var total uint64
	for _, n := range freqs {
		total = addSaturating(total, n)
	}
	return total
}

// Symbols returns the distinct symbols in ascending order.
func (freqs FrequencyTable) Symbols() []Symbol {
	keys := maps.Keys(freqs)
	slices.Sort(keys)
	return keys
}

// Dump writes a programmer-readable debugging dump of the table to the
// given writer, one symbol per line in ascending order.
func (freqs FrequencyTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("FrequencyTable{\n")
	fmt.Fprintf(&buf, "\tTotal() = %d\n", freqs.Total())
	for _, sym := range freqs.Symbols() {
		fmt.Fprintf(&buf, "\tCount(%d) = %d\n", sym, freqs[sym])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
