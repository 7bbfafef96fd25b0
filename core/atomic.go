package core

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// TempSuffix ends the name of every temporary sibling.
const TempSuffix = ".tmp"

// beforeReplace runs after the temporary file is complete and before it is
// renamed over the original. Tests set it to simulate a failure at that point.
var beforeReplace func(tmpPath string) error

// TempGlob matches the temporary siblings created while rewriting path.
func TempGlob(path string) string {
	return filepath.Join(filepath.Dir(path), filepath.Base(path)+".*"+TempSuffix)
}

// createTemp makes an empty, uniquely named sibling of path. Existing files,
// including one literally named path+".tmp", are never reused.
func createTemp(path string) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*"+TempSuffix)
	if err != nil {
		return "", err
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}

// ReplaceFile rewrites path through a temporary sibling: write must fully
// produce the new content at tmpPath, which already exists empty, after which
// tmpPath is renamed onto path. The original is never edited in place.
func ReplaceFile(path string, write func(tmpPath string) error) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", path, ErrFileNotFound)
		}
		return &WriteError{Path: path, Stage: StageTempWrite, Err: err}
	}

	tmp, err := createTemp(path)
	if err != nil {
		return &WriteError{Path: path, Stage: StageTempWrite, Err: err}
	}
	if err := write(tmp); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Chmod(tmp, info.Mode().Perm()); err != nil {
		os.Remove(tmp)
		return &WriteError{Path: path, Stage: StageTempWrite, Err: err}
	}

	if beforeReplace != nil {
		if err := beforeReplace(tmp); err != nil {
			os.Remove(tmp)
			return &WriteError{Path: path, Stage: StageReplace, Err: err}
		}
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return &WriteError{Path: path, Stage: StageReplace, Err: err}
	}
	return nil
}

// ReplaceWith is ReplaceFile for encoders that stream into an io.Writer.
// The temporary file is synced to disk before the rename.
func ReplaceWith(path string, encode func(w io.Writer) error) error {
	return ReplaceFile(path, func(tmp string) error {
		f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return &WriteError{Path: path, Stage: StageTempWrite, Err: err}
		}
		if err := encode(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Sync(); err != nil {
			f.Close()
			return &WriteError{Path: path, Stage: StageTempWrite, Err: err}
		}
		if err := f.Close(); err != nil {
			return &WriteError{Path: path, Stage: StageTempWrite, Err: err}
		}
		return nil
	})
}
