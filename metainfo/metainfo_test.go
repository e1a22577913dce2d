package metainfo

import (
	"crypto/sha1"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bensor/bensor/bencode"
)

// buildTorrent assembles a synthetic single-file torrent.
func buildTorrent(t *testing.T) ([]byte, *bencode.BValue) {
	t.Helper()

	pieces := make([]byte, 40) // two pseudo piece hashes
	for i := range pieces {
		pieces[i] = byte(i)
	}

	info := bencode.Dict(map[string]*bencode.BValue{
		"name":         bencode.Text("payload.bin"),
		"piece length": bencode.Integer(16384),
		"length":       bencode.Integer(32768),
		"pieces":       bencode.ByteString(pieces),
	})
	root := bencode.Dict(map[string]*bencode.BValue{
		"announce": bencode.Text("http://tracker.example/announce"),
		"announce-list": bencode.List(
			bencode.List(bencode.Text("http://tracker.example/announce")),
			bencode.List(bencode.Text("udp://backup.example:6969")),
		),
		"info": info,
	})
	return root.Encode(), info
}

func TestParse_SingleFile(t *testing.T) {
	data, info := buildTorrent(t)

	meta, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if meta.Announce != "http://tracker.example/announce" {
		t.Errorf("Announce = %q", meta.Announce)
	}
	wantTiers := [][]string{
		{"http://tracker.example/announce"},
		{"udp://backup.example:6969"},
	}
	if diff := cmp.Diff(wantTiers, meta.AnnounceList); diff != "" {
		t.Errorf("AnnounceList mismatch (-want +got):\n%s", diff)
	}
	if meta.Name != "payload.bin" {
		t.Errorf("Name = %q", meta.Name)
	}
	if meta.PieceLength != 16384 {
		t.Errorf("PieceLength = %d", meta.PieceLength)
	}
	if meta.Length != 32768 || meta.TotalLength() != 32768 {
		t.Errorf("Length = %d, TotalLength = %d", meta.Length, meta.TotalLength())
	}
	if meta.NumPieces() != 2 {
		t.Fatalf("NumPieces = %d", meta.NumPieces())
	}
	if meta.Pieces[1][0] != 20 {
		t.Errorf("Pieces[1][0] = %d, want 20", meta.Pieces[1][0])
	}

	if want := sha1.Sum(info.Encode()); meta.InfoHash != want {
		t.Errorf("InfoHash = %x, want %x", meta.InfoHash, want)
	}
}

func TestParse_MultiFile(t *testing.T) {
	pieces := make([]byte, 20)
	info := bencode.Dict(map[string]*bencode.BValue{
		"name":         bencode.Text("bundle"),
		"piece length": bencode.Integer(32768),
		"pieces":       bencode.ByteString(pieces),
		"files": bencode.List(
			bencode.Dict(map[string]*bencode.BValue{
				"length": bencode.Integer(100),
				"path":   bencode.List(bencode.Text("docs"), bencode.Text("a.txt")),
			}),
			bencode.Dict(map[string]*bencode.BValue{
				"length": bencode.Integer(200),
				"path":   bencode.List(bencode.Text("b.bin")),
			}),
		),
	})
	root := bencode.Dict(map[string]*bencode.BValue{"info": info})

	meta, err := Parse(root.Encode())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	wantFiles := []File{
		{Length: 100, Path: []string{"docs", "a.txt"}},
		{Length: 200, Path: []string{"b.bin"}},
	}
	if diff := cmp.Diff(wantFiles, meta.Files); diff != "" {
		t.Errorf("Files mismatch (-want +got):\n%s", diff)
	}
	if meta.TotalLength() != 300 {
		t.Errorf("TotalLength = %d, want 300", meta.TotalLength())
	}
	if meta.Announce != "" {
		t.Errorf("Announce = %q, want empty", meta.Announce)
	}
}

func TestParse_Errors(t *testing.T) {
	pieces := bencode.ByteString(make([]byte, 20))

	tests := []struct {
		name string
		root *bencode.BValue
	}{
		{"root not dict", bencode.List()},
		{"missing info", bencode.Dict(nil)},
		{"info not dict", bencode.Dict(map[string]*bencode.BValue{
			"info": bencode.Integer(1),
		})},
		{"missing name", bencode.Dict(map[string]*bencode.BValue{
			"info": bencode.Dict(map[string]*bencode.BValue{
				"piece length": bencode.Integer(1),
				"pieces":       pieces,
				"length":       bencode.Integer(1),
			}),
		})},
		{"ragged pieces", bencode.Dict(map[string]*bencode.BValue{
			"info": bencode.Dict(map[string]*bencode.BValue{
				"name":         bencode.Text("x"),
				"piece length": bencode.Integer(1),
				"pieces":       bencode.ByteString(make([]byte, 21)),
				"length":       bencode.Integer(1),
			}),
		})},
		{"neither length nor files", bencode.Dict(map[string]*bencode.BValue{
			"info": bencode.Dict(map[string]*bencode.BValue{
				"name":         bencode.Text("x"),
				"piece length": bencode.Integer(1),
				"pieces":       pieces,
			}),
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.root.Encode()); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestParse_MalformedBuffer(t *testing.T) {
	if _, err := Parse([]byte("d4:info")); err == nil {
		t.Error("Expected decode error, got nil")
	}
}
