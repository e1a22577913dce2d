// bench - bencode codec benchmark runner
//
// For each input file, measures decode and canonical re-encode
// throughput and compares bencode size against minified JSON.
//
// Output: markdown summary on stdout.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bensor/bensor/bencode"
)

const iterations = 200

type caseResult struct {
	Name         string
	BencodeBytes int
	JSONBytes    int // -1 when the document has no JSON form
	DecodePerOp  time.Duration
	EncodePerOp  time.Duration
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: bench <file.bencode>...")
		os.Exit(1)
	}

	var results []caseResult
	for _, path := range os.Args[1:] {
		res, err := runCase(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bench: %s: %v\n", path, err)
			continue
		}
		results = append(results, res)
	}

	printSummary(results)
}

func runCase(path string) (caseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return caseResult{}, err
	}

	value, err := bencode.Decode(data)
	if err != nil {
		return caseResult{}, err
	}
	canonical := value.Encode()

	res := caseResult{
		Name:         filepath.Base(path),
		BencodeBytes: len(canonical),
		JSONBytes:    -1,
	}
	if jsonBytes, err := bencode.ToJSON(value); err == nil {
		res.JSONBytes = len(jsonBytes)
	}

	start := time.Now()
	for i := 0; i < iterations; i++ {
		if _, err := bencode.Decode(canonical); err != nil {
			return caseResult{}, err
		}
	}
	res.DecodePerOp = time.Since(start) / iterations

	start = time.Now()
	for i := 0; i < iterations; i++ {
		value.Encode()
	}
	res.EncodePerOp = time.Since(start) / iterations

	return res, nil
}

func printSummary(results []caseResult) {
	fmt.Println("| case | bencode bytes | json bytes | decode/op | encode/op |")
	fmt.Println("|------|---------------|------------|-----------|-----------|")
	for _, r := range results {
		jsonCol := "n/a"
		if r.JSONBytes >= 0 {
			jsonCol = fmt.Sprintf("%d", r.JSONBytes)
		}
		fmt.Printf("| %s | %d | %s | %v | %v |\n",
			r.Name, r.BencodeBytes, jsonCol, r.DecodePerOp, r.EncodePerOp)
	}
}
