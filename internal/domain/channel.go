package domain

import "fmt"

// TerminalMode is the electrical reference configuration of an acquisition
// channel. It affects noise rejection and apparent offset but not the shunt
// arithmetic itself.
type TerminalMode int

const (
	// TerminalDefault defers to whatever the device reports as its default.
	TerminalDefault TerminalMode = iota

	// TerminalDifferential measures between the channel's two terminals.
	TerminalDifferential

	// TerminalRSE measures against a shared ground reference
	// (referenced single-ended).
	TerminalRSE
)

// String returns a human-readable representation of the terminal mode.
func (m TerminalMode) String() string {
	switch m {
	case TerminalDifferential:
		return "differential"
	case TerminalRSE:
		return "rse"
	case TerminalDefault:
		return "default"
	default:
		return "unknown"
	}
}

// ParseTerminalMode parses a terminal mode name as used in config files.
func ParseTerminalMode(s string) (TerminalMode, error) {
	switch s {
	case "differential", "diff":
		return TerminalDifferential, nil
	case "rse", "single-ended":
		return TerminalRSE, nil
	case "default", "":
		return TerminalDefault, nil
	}
	return TerminalDefault, fmt.Errorf("%w: terminal mode %q", ErrInvalidConfig, s)
}

// Range is a symmetric-or-not voltage interval in volts.
type Range struct {
	MinVolt float64
	MaxVolt float64
}

// Width returns the span of the range in volts.
func (r Range) Width() float64 {
	return r.MaxVolt - r.MinVolt
}

// String formats the range as "[-0.1, 0.1] V".
func (r Range) String() string {
	return fmt.Sprintf("[%g, %g] V", r.MinVolt, r.MaxVolt)
}

// ChannelConfig describes one current-sensing channel. It is loaded once at
// run start and read-only for the lifetime of a diagnostic run.
type ChannelConfig struct {
	// ID uniquely identifies the channel (e.g. "dev1/ai0").
	ID string

	// ShuntOhms is the configured shunt resistance. Must be positive.
	ShuntOhms float64

	// DeclaredRange is the acquisition range the channel was configured with.
	DeclaredRange Range

	// TerminalMode is the requested terminal configuration.
	TerminalMode TerminalMode
}

// Validate checks the channel invariants.
func (c ChannelConfig) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: channel id is required", ErrInvalidConfig)
	}
	if c.ShuntOhms <= 0 {
		return fmt.Errorf("%w: channel %s: shunt resistance must be positive, got %g",
			ErrInvalidConfig, c.ID, c.ShuntOhms)
	}
	if c.DeclaredRange.MinVolt >= c.DeclaredRange.MaxVolt {
		return fmt.Errorf("%w: channel %s: declared range %s is empty",
			ErrInvalidConfig, c.ID, c.DeclaredRange)
	}
	return nil
}
