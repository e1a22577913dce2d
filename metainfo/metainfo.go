// Package metainfo provides a typed view over a decoded .torrent
// metainfo dictionary: tracker URLs, file layout, piece hashes, and
// the SHA-1 info hash that identifies the torrent on the wire.
package metainfo

import (
	"crypto/sha1"
	"fmt"

	"github.com/bensor/bensor/bencode"
)

// File describes one file of a multi-file torrent.
type File struct {
	Length int64
	Path   []string
}

// Meta is the decoded metainfo of a torrent.
type Meta struct {
	Announce     string
	AnnounceList [][]string
	Name         string
	PieceLength  int64
	Length       int64  // single-file torrents; 0 when Files is set
	Files        []File // multi-file torrents
	Pieces       [][20]byte

	// InfoHash is the SHA-1 digest of the canonical encoding of the
	// info dictionary. Torrent files are canonical bencode, so this
	// matches the digest of the file's original info bytes.
	InfoHash [20]byte

	// Info is the raw info dictionary for fields not projected above.
	Info *bencode.BValue
}

// Parse decodes a .torrent buffer and projects its metainfo.
func Parse(data []byte) (*Meta, error) {
	root, err := bencode.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("metainfo: %w", err)
	}
	if root.Type() != bencode.TypeDictionary {
		return nil, fmt.Errorf("metainfo: torrent root is %s, want dictionary", root.Type())
	}

	meta := &Meta{}

	if announce := root.Get("announce"); announce != nil {
		s, err := announce.AsText()
		if err != nil {
			return nil, fmt.Errorf("metainfo: announce: %w", err)
		}
		meta.Announce = s
	}

	if tiers := root.Get("announce-list"); tiers != nil {
		list, err := tiers.AsList()
		if err != nil {
			return nil, fmt.Errorf("metainfo: announce-list: %w", err)
		}
		for i, tier := range list {
			urls, err := tier.AsList()
			if err != nil {
				return nil, fmt.Errorf("metainfo: announce-list[%d]: %w", i, err)
			}
			var flat []string
			for _, u := range urls {
				s, err := u.AsText()
				if err != nil {
					return nil, fmt.Errorf("metainfo: announce-list[%d]: %w", i, err)
				}
				flat = append(flat, s)
			}
			meta.AnnounceList = append(meta.AnnounceList, flat)
		}
	}

	info := root.Get("info")
	if info == nil {
		return nil, fmt.Errorf("metainfo: missing info dictionary")
	}
	if info.Type() != bencode.TypeDictionary {
		return nil, fmt.Errorf("metainfo: info is %s, want dictionary", info.Type())
	}
	meta.Info = info
	meta.InfoHash = sha1.Sum(info.Encode())

	if err := parseInfo(info, meta); err != nil {
		return nil, err
	}
	return meta, nil
}

func parseInfo(info *bencode.BValue, meta *Meta) error {
	name := info.Get("name")
	if name == nil {
		return fmt.Errorf("metainfo: info missing name")
	}
	s, err := name.AsText()
	if err != nil {
		return fmt.Errorf("metainfo: name: %w", err)
	}
	meta.Name = s

	pieceLength := info.Get("piece length")
	if pieceLength == nil {
		return fmt.Errorf("metainfo: info missing piece length")
	}
	n, err := pieceLength.AsInteger()
	if err != nil {
		return fmt.Errorf("metainfo: piece length: %w", err)
	}
	meta.PieceLength = n

	pieces := info.Get("pieces")
	if pieces == nil {
		return fmt.Errorf("metainfo: info missing pieces")
	}
	raw, err := pieces.AsBytes()
	if err != nil {
		return fmt.Errorf("metainfo: pieces: %w", err)
	}
	if len(raw)%20 != 0 {
		return fmt.Errorf("metainfo: pieces length %d is not a multiple of 20", len(raw))
	}
	meta.Pieces = make([][20]byte, 0, len(raw)/20)
	for i := 0; i < len(raw); i += 20 {
		var h [20]byte
		copy(h[:], raw[i:i+20])
		meta.Pieces = append(meta.Pieces, h)
	}

	// Single-file torrents carry length; multi-file torrents carry a
	// files list. Exactly one must be present.
	length := info.Get("length")
	files := info.Get("files")
	switch {
	case length != nil && files != nil:
		return fmt.Errorf("metainfo: info has both length and files")
	case length != nil:
		n, err := length.AsInteger()
		if err != nil {
			return fmt.Errorf("metainfo: length: %w", err)
		}
		meta.Length = n
	case files != nil:
		list, err := files.AsList()
		if err != nil {
			return fmt.Errorf("metainfo: files: %w", err)
		}
		for i, entry := range list {
			f, err := parseFile(entry)
			if err != nil {
				return fmt.Errorf("metainfo: files[%d]: %w", i, err)
			}
			meta.Files = append(meta.Files, f)
		}
	default:
		return fmt.Errorf("metainfo: info has neither length nor files")
	}
	return nil
}

func parseFile(entry *bencode.BValue) (File, error) {
	length := entry.Get("length")
	if length == nil {
		return File{}, fmt.Errorf("missing length")
	}
	n, err := length.AsInteger()
	if err != nil {
		return File{}, err
	}

	pathVal := entry.Get("path")
	if pathVal == nil {
		return File{}, fmt.Errorf("missing path")
	}
	parts, err := pathVal.AsList()
	if err != nil {
		return File{}, err
	}
	var path []string
	for _, part := range parts {
		s, err := part.AsText()
		if err != nil {
			return File{}, err
		}
		path = append(path, s)
	}
	return File{Length: n, Path: path}, nil
}

// TotalLength returns the payload size across all files.
func (m *Meta) TotalLength() int64 {
	if m.Files == nil {
		return m.Length
	}
	var total int64
	for _, f := range m.Files {
		total += f.Length
	}
	return total
}

// NumPieces returns the piece count.
func (m *Meta) NumPieces() int {
	return len(m.Pieces)
}
