package journal

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	stdimage "image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ankit-chaubey/fileprops/core"
	"github.com/ankit-chaubey/fileprops/core/batch"
	"github.com/ankit-chaubey/fileprops/core/fsinfo"
	"github.com/ankit-chaubey/fileprops/core/image"
)

// writeTaggedPNG writes a PNG carrying a tEXt chunk right after IHDR.
func writeTaggedPNG(t *testing.T, path string) {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, stdimage.NewGray(stdimage.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	ihdrEnd := 8 + 8 + 13 + 4

	payload := []byte("Comment\x00written by a camera")
	chunk := make([]byte, 8, 12+len(payload))
	binary.BigEndian.PutUint32(chunk, uint32(len(payload)))
	copy(chunk[4:], "tEXt")
	chunk = append(chunk, payload...)
	chunk = binary.BigEndian.AppendUint32(chunk, crc32.ChecksumIEEE(chunk[4:]))

	out := append(append(append([]byte{}, data[:ihdrEnd]...), chunk...), data[ihdrEnd:]...)
	if err := os.WriteFile(path, out, 0644); err != nil {
		t.Fatal(err)
	}
}

func openTemp(t *testing.T) (*Journal, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db", "journal.db")
	j, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j, path
}

func TestJournal_RecordsStrip(t *testing.T) {
	j, _ := openTemp(t)
	dir := t.TempDir()
	good := filepath.Join(dir, "a.png")
	writeTaggedPNG(t, good)
	bad := filepath.Join(dir, "b.png")
	os.WriteFile(bad, []byte("garbage"), 0644)

	reg := core.NewRegistry(fsinfo.New(), nil, image.New())
	res, err := batch.NewRunner(reg, nil, j).Run(context.Background(), []string{good, bad}, batch.OpStrip)
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	runs, err := j.Runs(ctx, 10)
	if err != nil {
		t.Fatalf("Runs() error = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Runs() = %d runs", len(runs))
	}
	r := runs[0]
	if r.ID != res.ID || r.Op != "strip" || r.Total != 2 || r.Succeeded != 1 || r.Failed != 1 || r.Finished == nil {
		t.Errorf("run = %+v", r)
	}

	files, err := j.Outcomes(ctx, res.ID)
	if err != nil {
		t.Fatalf("Outcomes() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Outcomes() = %d rows", len(files))
	}
	if f := files[0]; !f.Success || !f.Changed() || *f.SizeAfter >= *f.SizeBefore || len(f.DigestBefore) != 64 {
		t.Errorf("stripped file = %+v", f)
	}
	if f := files[1]; f.Success || f.Changed() || f.Code != core.CodeExtraction || f.DigestBefore != f.DigestAfter {
		t.Errorf("failed file = %+v", f)
	}
}

func TestJournal_CanceledRun(t *testing.T) {
	j, _ := openTemp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reg := core.NewRegistry(fsinfo.New(), nil, image.New())
	res, _ := batch.NewRunner(reg, nil, j).Run(ctx, []string{"/nowhere/a.png"}, batch.OpView)

	files, err := j.Outcomes(context.Background(), res.ID)
	if err != nil {
		t.Fatalf("Outcomes() error = %v", err)
	}
	if len(files) != 1 || files[0].Code != core.CodeCanceled || files[0].SizeBefore != nil {
		t.Errorf("files = %+v", files)
	}
	run, _ := j.Run(context.Background(), res.ID)
	if run.Processed != 0 || run.Failed != 1 {
		t.Errorf("run = %+v", run)
	}
}

func TestJournal_Reopen(t *testing.T) {
	j, path := openTemp(t)
	j.RunStarted(context.Background(), batch.RunInfo{ID: "r1", Op: batch.OpView, Total: 0})
	j.Close()

	j2, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open() again error = %v", err)
	}
	defer j2.Close()
	if _, err := j2.Run(context.Background(), "r1"); err != nil {
		t.Errorf("Run() after reopen error = %v", err)
	}
}

func TestJournal_RunNotFound(t *testing.T) {
	j, _ := openTemp(t)
	if _, err := j.Run(context.Background(), "missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Run() error = %v, want ErrRunNotFound", err)
	}
	if _, err := j.Outcomes(context.Background(), "missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Outcomes() error = %v, want ErrRunNotFound", err)
	}
	runs, err := j.Runs(context.Background(), 0)
	if err != nil || len(runs) != 0 {
		t.Errorf("Runs() = %v, %v", runs, err)
	}
}

func TestTake(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x")
	os.WriteFile(path, []byte("abc"), 0644)
	s := take(path)
	if !s.ok || s.size != 3 || len(s.digest) != 64 {
		t.Errorf("take() = %+v", s)
	}
	if take(path+".missing").ok {
		t.Error("take() of a missing file should not be ok")
	}
}
