package image

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

type exifTag struct {
	name  string
	value string
}

// exifHeader prefixes the TIFF block inside a JPEG APP1 segment.
var exifHeader = []byte("Exif\x00\x00")

// readEXIF returns the tags of r sorted by name. A file without an EXIF block
// yields no tags and no error.
func readEXIF(r io.ReadSeeker, format string) ([]exifTag, error) {
	var block []byte
	switch format {
	case "jpeg":
		block = extractJPEGSegment(r, 0xE1, exifHeader)
	case "png":
		chunks, err := readPNGChunks(r)
		if err != nil {
			return nil, err
		}
		for _, c := range chunks {
			if c.typ == "eXIf" {
				block = c.data
				break
			}
		}
	}
	if len(block) == 0 {
		return nil, nil
	}

	// A non-nil result with an error still carries the tags that decoded.
	x, err := exif.Decode(bytes.NewReader(block))
	if x == nil {
		return nil, err
	}

	w := &exifWalker{}
	if err := x.Walk(w); err != nil {
		return nil, err
	}
	sort.Slice(w.tags, func(i, j int) bool { return w.tags[i].name < w.tags[j].name })
	return w.tags, nil
}

type exifWalker struct {
	tags []exifTag
}

func (w *exifWalker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	w.tags = append(w.tags, exifTag{name: string(name), value: tagValue(tag)})
	return nil
}

func tagValue(tag *tiff.Tag) string {
	switch tag.Type {
	case tiff.DTAscii:
		if s, err := tag.StringVal(); err == nil {
			return strings.TrimRight(s, "\x00 ")
		}
	case tiff.DTUndefined, tiff.DTByte:
		return binaryValue(tag.Val)
	}
	val := tag.String()
	// Remove surrounding quotes from string values
	if len(val) >= 2 && val[0] == '"' && val[len(val)-1] == '"' {
		val = val[1 : len(val)-1]
	}
	return val
}

// charset prefixes of UNDEFINED text tags such as UserComment.
var charsetPrefixes = [][]byte{
	[]byte("ASCII\x00\x00\x00"),
	[]byte("UNICODE\x00"),
	make([]byte, 8),
}

// binaryValue decodes b as UTF-8, dropping invalid bytes and control
// characters. When nothing printable remains it returns a byte-count
// placeholder.
func binaryValue(b []byte) string {
	raw := b
	for _, p := range charsetPrefixes {
		if len(raw) > len(p) && bytes.HasPrefix(raw, p) {
			raw = raw[len(p):]
			break
		}
	}
	s := strings.Map(func(r rune) rune {
		if r == unicode.ReplacementChar || !unicode.IsPrint(r) {
			return -1
		}
		return r
	}, strings.ToValidUTF8(string(raw), ""))
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Sprintf("<binary data: %d bytes>", len(b))
	}
	return s
}

// extractJPEGSegment finds a JPEG APP segment by marker byte and optional prefix.
// Returns the segment data (after the prefix), or nil.
func extractJPEGSegment(r io.Reader, marker byte, prefix []byte) []byte {
	buf := make([]byte, 4)
	if _, err := io.ReadFull(r, buf[:2]); err != nil || buf[0] != 0xFF || buf[1] != 0xD8 {
		return nil
	}
	for {
		if _, err := io.ReadFull(r, buf); err != nil || buf[0] != 0xFF {
			return nil
		}
		segMarker := buf[1]
		// Stop at SOS (start of scan)
		if segMarker == 0xDA {
			return nil
		}
		segLen := int(binary.BigEndian.Uint16(buf[2:])) - 2
		if segLen < 0 {
			return nil
		}
		data := make([]byte, segLen)
		if _, err := io.ReadFull(r, data); err != nil {
			return nil
		}
		if segMarker == marker && bytes.HasPrefix(data, prefix) {
			return data[len(prefix):]
		}
	}
}

type pngChunk struct {
	typ  string
	data []byte
}

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// maxPNGChunk is the largest chunk length the PNG format allows.
const maxPNGChunk = 1<<31 - 1

// readPNGChunks returns the eXIf and IEND chunks of r. Every other chunk is
// skipped without being buffered, and a chunk that runs past the end of the
// file is an error.
func readPNGChunks(r io.Reader) ([]pngChunk, error) {
	sig := make([]byte, 8)
	if _, err := io.ReadFull(r, sig); err != nil {
		return nil, err
	}
	if !bytes.Equal(sig, pngSignature) {
		return nil, fmt.Errorf("not a valid PNG")
	}

	var chunks []pngChunk
	head := make([]byte, 8)
	for {
		if _, err := io.ReadFull(r, head); err != nil {
			if err == io.EOF {
				return chunks, nil
			}
			return nil, fmt.Errorf("png chunk header: %w", err)
		}
		length := binary.BigEndian.Uint32(head[:4])
		typ := string(head[4:])
		if length > maxPNGChunk {
			return nil, fmt.Errorf("png chunk %q: invalid length %d", typ, length)
		}

		if typ != "eXIf" && typ != "IEND" {
			if _, err := io.CopyN(io.Discard, r, int64(length)+4); err != nil {
				return nil, fmt.Errorf("png chunk %q truncated: %w", typ, err)
			}
			continue
		}

		// The buffer grows with what is actually read, so a forged length
		// costs at most the size of the file.
		var data bytes.Buffer
		if _, err := io.CopyN(&data, r, int64(length)+4); err != nil {
			return nil, fmt.Errorf("png chunk %q truncated: %w", typ, err)
		}
		chunks = append(chunks, pngChunk{typ: typ, data: data.Bytes()[:length]})
		if typ == "IEND" {
			return chunks, nil
		}
	}
}
