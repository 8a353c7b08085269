// Command huffzip compresses or decompresses a single file with static
// Huffman coding.
//
// Usage:
//
//     huffzip [-runes] [-v] [-o out] file      compress file
//     huffzip -d [-v] [-o out] file            decompress file
//
// With -runes the input must be valid UTF-8.  Without -o, output goes to
// standard output.
//
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"unicode/utf8"

	huffman "github.com/chronos-tachyon/huffzip"
	"github.com/chronos-tachyon/huffzip/stream"
)

var (
	flagDecompress = flag.Bool("d", false, "decompress instead of compress")
	flagRunes      = flag.Bool("runes", false, "compress UTF-8 characters instead of bytes")
	flagVerbose    = flag.Bool("v", false, "log the frequency and code tables")
	flagOutput     = flag.String("o", "", "output file (default: standard output)")
)

var errInvalidUTF8 = errors.New("input is not valid UTF-8; compress it without -runes")

func main() {
	log.SetFlags(0)
	log.SetPrefix("huffzip: ")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-d] [-runes] [-v] [-o out] file\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	input, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	var output []byte
	if *flagDecompress {
		output, err = decompress(input, *flagVerbose)
	} else {
		output, err = compress(input, *flagRunes, *flagVerbose)
	}
	if err != nil {
		log.Fatal(err)
	}

	if err := writeOutput(output); err != nil {
		log.Fatal(err)
	}
}

func compress(input []byte, runes bool, verbose bool) ([]byte, error) {
	kind := stream.KindBytes
	symbols := huffman.SymbolsFromBytes(input)
	if runes {
		// Invalid sequences would decode as U+FFFD.
		if !utf8.Valid(input) {
			return nil, errInvalidUTF8
		}
		kind = stream.KindRunes
		symbols = huffman.SymbolsFromString(string(input))
	}

	var buf bytes.Buffer
	enc, err := stream.Compress(&buf, kind, symbols)
	if err != nil {
		return nil, err
	}
	if verbose && enc != nil {
		dump(huffman.CountFrequencies(symbols), enc.Table)
		log.Printf("%d symbols, %d bits (%d bytes) of payload", enc.Count, enc.Bits.Len(), len(enc.Bits.Bytes()))
	}
	return buf.Bytes(), nil
}

func decompress(input []byte, verbose bool) ([]byte, error) {
	symbols, f, err := stream.Decompress(bytes.NewReader(input))
	if err != nil {
		return nil, err
	}
	if verbose && f.Tree != nil {
		log.Printf("%s stream, %d symbols, %s", f.Kind, f.Count, f.Tree)
		dump(nil, f.Tree.CodeTable())
	}

	if f.Kind == stream.KindRunes {
		return []byte(huffman.String(symbols)), nil
	}
	return huffman.Bytes(symbols)
}

func dump(freqs huffman.FrequencyTable, table huffman.CodeTable) {
	var buf bytes.Buffer
	if freqs != nil {
		_, _ = freqs.Dump(&buf)
	}
	_, _ = table.Dump(&buf)
	log.Print(buf.String())
}

func writeOutput(data []byte) error {
	if *flagOutput == "" {
		_, err := os.Stdout.Write(data)
		return err
	}

	f, err := os.Create(*flagOutput)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
