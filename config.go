package jostle

import "log/slog"

// Config carries the options a World is constructed with. There is no file
// format and no wire protocol for it: spec.md treats configuration as
// flowing through the host's standard component/resource mechanism, which
// for a bare Go module is simply a struct passed to NewWorld. The demo
// binary in cmd/jostlebench builds its Config in code; the optional TOML
// file it reads holds only its own benchmark settings.
type Config struct {
	// Log receives precondition warnings, such as a layer whose tile_size
	// is too small for the radius of an agent attached to it. If nil,
	// slog.Default() is used, matching the teacher's logging convention.
	Log *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.Log == nil {
		c.Log = slog.Default()
	}
	return c
}
