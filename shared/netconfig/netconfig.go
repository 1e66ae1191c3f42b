// Package netconfig defines lightweight types shared by the sync core, the
// wire codec and the ECS mirror. It must have zero dependencies on ebiten or
// any graphics library so the core stays headless and testable.
package netconfig

import "time"

// EntityID is the server-assigned identity of a networked actor.
type EntityID int64

const (
	// DefaultRenderDelay is how far in the past remote actors are drawn.
	DefaultRenderDelay = 100 * time.Millisecond

	// DefaultMaxSnapshots bounds the snapshot history used for interpolation.
	DefaultMaxSnapshots = 32

	// StaleSteps is how many snapshot intervals the render time may run past
	// the newest snapshot before interpolation gives up and freezes.
	StaleSteps = 2

	// DefaultReconnectDelay is the wait between reconnect attempts.
	DefaultReconnectDelay = 2 * time.Second
)

// Message type discriminators used in the "type" field of envelopes.
const (
	MsgInput   = "input"
	MsgWelcome = "welcome"
)

// MillisPerSecond converts wire timestamps (ms) to integration steps (s).
const MillisPerSecond = 1000
