package ambient

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	log "github.com/go-pkgz/lgr"
)

// Defaults reads AppleInterfaceStyle from the macOS global user defaults.
type Defaults struct {
	run func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewDefaults makes a detector calling the defaults(1) tool.
func NewDefaults() *Defaults {
	return &Defaults{run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return exec.CommandContext(ctx, name, args...).Output()
	}}
}

// PrefersDark reports dark when AppleInterfaceStyle is "Dark". The key is
// absent in light mode, so a non-zero exit means light. A missing tool means unknown.
func (d *Defaults) PrefersDark(ctx context.Context) (dark, ok bool) {
	out, err := d.run(ctx, "defaults", "read", "-g", "AppleInterfaceStyle")
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return false, true
		}
		log.Printf("[DEBUG] can't query macOS defaults: %v", err)
		return false, false
	}
	return strings.TrimSpace(string(out)) == "Dark", true
}
