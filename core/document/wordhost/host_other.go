//go:build !windows

package wordhost

import (
	"fmt"

	"github.com/ankit-chaubey/fileprops/core"
)

// Probe reports that no host exists on this platform.
func Probe() (Host, error) {
	return nil, fmt.Errorf("word automation requires Windows: %w", core.ErrHostUnavailable)
}
