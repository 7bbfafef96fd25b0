package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var errNotConfirmed = errors.New("stripping rewrites files; pass --yes to confirm")

// isTerminal is replaced in tests.
var isTerminal = func(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// confirm asks on an interactive stdin whether to strip n files. Without a
// terminal it refuses, so scripts must pass --yes.
func confirm(in io.Reader, out io.Writer, n int) error {
	f, ok := in.(*os.File)
	if !ok || !isTerminal(f) {
		return errNotConfirmed
	}
	fmt.Fprintf(out, "Remove metadata from %d file(s)? This rewrites them. [y/N] ", n)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return nil
	}
	return errors.New("aborted")
}
