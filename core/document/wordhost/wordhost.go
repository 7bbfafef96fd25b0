// Package wordhost exposes the optional Word automation host used to edit
// legacy .doc files. Probe it once at startup.
package wordhost

import "context"

// Host edits documents through an external word processor.
type Host interface {
	// Name identifies the host in capability listings.
	Name() string
	// BlankProperties sets each named built-in property of the document at
	// path to the empty string, saves and closes it. Host resources are
	// released whether or not the edit succeeds.
	BlankProperties(ctx context.Context, path string, names []string) error
}

// openArgs are the positional arguments to Documents.Open: FileName,
// ConfirmConversions, ReadOnly, AddToRecentFiles. A hidden instance must
// never show the conversion prompt.
func openArgs(path string) []interface{} {
	return []interface{}{path, false, false, false}
}
