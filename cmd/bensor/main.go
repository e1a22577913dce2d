// bensor - bencode codec CLI tool
//
// Usage:
//
//	bensor inspect [file]    Decode and pretty-print a bencode document
//	bensor to-json [file]    Convert bencode to JSON
//	bensor from-json [file]  Convert JSON to canonical bencode
//	bensor hash [file]       Print the canonical BLAKE3 digest
//	bensor info [file]       Summarize a .torrent file
//	bensor version           Print version info
//
// If no file is given, reads from stdin.
package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bensor/bensor/bencode"
	"github.com/bensor/bensor/metainfo"
)

const version = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	cmd := os.Args[1]

	flags := pflag.NewFlagSet(cmd, pflag.ExitOnError)
	maxDepth := flags.Int("max-depth", bencode.DefaultMaxDepth, "maximum container nesting accepted while decoding")
	compact := flags.Bool("compact", false, "emit JSON without indentation (to-json only)")
	flags.Parse(os.Args[2:])

	switch cmd {
	case "inspect":
		cmdInspect(readInput(flags.Arg(0)), *maxDepth)
	case "to-json":
		cmdToJSON(readInput(flags.Arg(0)), *maxDepth, *compact)
	case "from-json":
		cmdFromJSON(readInput(flags.Arg(0)))
	case "hash":
		cmdHash(readInput(flags.Arg(0)), *maxDepth)
	case "info":
		cmdInfo(readInput(flags.Arg(0)))
	case "version", "-v", "--version":
		fmt.Printf("bensor %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `bensor - bencode codec CLI tool

Usage:
  bensor inspect [file]    Decode and pretty-print a bencode document
  bensor to-json [file]    Convert bencode to JSON
  bensor from-json [file]  Convert JSON to canonical bencode
  bensor hash [file]       Print the canonical BLAKE3 digest
  bensor info [file]       Summarize a .torrent file
  bensor version           Print version info

Options:
  --max-depth=N   Maximum container nesting accepted while decoding
  --compact       Emit JSON without indentation (to-json only)

If no file is given, reads from stdin.

Examples:
  bensor info ubuntu.torrent
  echo -n 'd3:bar4:spam3:fooi42ee' | bensor to-json
  echo '{"foo":42}' | bensor from-json | bensor inspect
`)
}

// readInput returns the full contents of the named file, or stdin for
// "" or "-".
func readInput(path string) []byte {
	var r io.Reader = os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			fatal("open file: %v", err)
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		fatal("read input: %v", err)
	}
	return data
}

func decode(data []byte, maxDepth int) *bencode.BValue {
	v, err := bencode.DecodeWithOptions(data, bencode.ParseOptions{MaxDepth: maxDepth})
	if err != nil {
		fatal("decode: %v", err)
	}
	return v
}

// cmdInspect: bencode -> indented debug tree
func cmdInspect(data []byte, maxDepth int) {
	printTree(decode(data, maxDepth), 0)
}

func printTree(v *bencode.BValue, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}

	switch v.Type() {
	case bencode.TypeList:
		elems, _ := v.AsList()
		fmt.Printf("%slist (%d)\n", indent, len(elems))
		for _, e := range elems {
			printTree(e, depth+1)
		}
	case bencode.TypeDictionary:
		fmt.Printf("%sdictionary (%d)\n", indent, v.Len())
		for _, k := range v.Keys() {
			fmt.Printf("%s  %q:\n", indent, k)
			printTree(v.Get(k), depth+2)
		}
	default:
		fmt.Printf("%s%s\n", indent, v)
	}
}

// cmdToJSON: bencode -> JSON
func cmdToJSON(data []byte, maxDepth int, compact bool) {
	jsonBytes, err := bencode.ToJSON(decode(data, maxDepth))
	if err != nil {
		fatal("convert to JSON: %v", err)
	}
	if compact {
		fmt.Println(string(jsonBytes))
		return
	}
	var pretty interface{}
	json.Unmarshal(jsonBytes, &pretty)
	out, _ := json.MarshalIndent(pretty, "", "  ")
	fmt.Println(string(out))
}

// cmdFromJSON: JSON -> canonical bencode on stdout
func cmdFromJSON(data []byte) {
	v, err := bencode.FromJSON(data)
	if err != nil {
		fatal("parse JSON: %v", err)
	}
	os.Stdout.Write(v.Encode())
}

// cmdHash: canonical BLAKE3 digest of the decoded value
func cmdHash(data []byte, maxDepth int) {
	digest := bencode.Digest(decode(data, maxDepth))
	fmt.Println(bencode.FormatDigest(digest))
}

// cmdInfo: .torrent summary
func cmdInfo(data []byte) {
	meta, err := metainfo.Parse(data)
	if err != nil {
		fatal("parse torrent: %v", err)
	}

	fmt.Printf("name:         %s\n", meta.Name)
	fmt.Printf("info hash:    %s\n", hex.EncodeToString(meta.InfoHash[:]))
	if meta.Announce != "" {
		fmt.Printf("announce:     %s\n", meta.Announce)
	}
	for i, tier := range meta.AnnounceList {
		fmt.Printf("tier %d:       %v\n", i, tier)
	}
	fmt.Printf("piece length: %d\n", meta.PieceLength)
	fmt.Printf("pieces:       %d\n", meta.NumPieces())
	fmt.Printf("total length: %d\n", meta.TotalLength())
	for _, f := range meta.Files {
		fmt.Printf("  file %10d  %v\n", f.Length, f.Path)
	}
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "bensor: "+format+"\n", args...)
	os.Exit(1)
}
