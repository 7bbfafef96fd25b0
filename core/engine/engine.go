// Package engine assembles the handler registry used by every caller.
package engine

import (
	"context"

	"github.com/ankit-chaubey/fileprops/core"
	"github.com/ankit-chaubey/fileprops/core/document"
	"github.com/ankit-chaubey/fileprops/core/document/wordhost"
	"github.com/ankit-chaubey/fileprops/core/fsinfo"
	"github.com/ankit-chaubey/fileprops/core/image"
	"github.com/ankit-chaubey/fileprops/core/logging"
	"github.com/ankit-chaubey/fileprops/core/other"
)

// Options selects optional pieces of the registry.
type Options struct {
	// Host edits legacy .doc files. Nil probes the platform once.
	Host wordhost.Host
	// NoHostProbe leaves .doc stripping disabled without probing.
	NoHostProbe bool
}

// New returns a Registry with every category handler registered.
func New(logger logging.Logger, opts Options) *core.Registry {
	if logger == nil {
		logger = logging.NewNullLogger()
	}

	host := opts.Host
	if host == nil && !opts.NoHostProbe {
		h, err := wordhost.Probe()
		if err != nil {
			logger.Debug(context.Background(), "legacy .doc stripping disabled", logging.Fields{"reason": err.Error()})
		} else {
			host = h
		}
	}

	return core.NewRegistry(fsinfo.New(), logger,
		image.New(),
		document.NewPDF(),
		document.NewDOCX(),
		document.NewDOC(host),
		other.New(),
	)
}
