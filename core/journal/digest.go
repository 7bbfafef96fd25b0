package journal

import (
	"encoding/hex"
	"io"
	"os"

	blake2b "github.com/minio/blake2b-simd"
)

// snapshot is the state of a file at one point of a run.
type snapshot struct {
	size   int64
	digest string
	ok     bool
}

// take reads path fully and returns its size and BLAKE2b-256 digest. A file
// that cannot be read yields a snapshot with ok unset.
func take(path string) snapshot {
	f, err := os.Open(path)
	if err != nil {
		return snapshot{}
	}
	defer f.Close()

	h := blake2b.New256()
	n, err := io.Copy(h, f)
	if err != nil {
		return snapshot{}
	}
	return snapshot{size: n, digest: hex.EncodeToString(h.Sum(nil)), ok: true}
}

func (s snapshot) nullSize() any {
	if !s.ok {
		return nil
	}
	return s.size
}

func (s snapshot) nullDigest() any {
	if !s.ok {
		return nil
	}
	return s.digest
}
