package network

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/automoto/netsync/shared/gamemath"
	"github.com/automoto/netsync/shared/messages"
	"github.com/automoto/netsync/shared/netconfig"
)

// ErrInputOutOfOrder is returned for an input whose timestamp does not move
// past the newest queued input or the last acknowledged server time.
var ErrInputOutOfOrder = errors.New("input timestamp out of order")

// PositionSink receives a render position per entity.
type PositionSink interface {
	SetPosition(id netconfig.EntityID, x, y, z float32)
}

// LifecycleSink is told when an entity first appears in, or vanishes from,
// the authoritative entity table.
type LifecycleSink interface {
	EntityAppeared(id netconfig.EntityID)
	EntityDisappeared(id netconfig.EntityID)
}

// Resolver replaces plain integration for the local actor, e.g. with
// collision response. It must be deterministic for identical arguments.
type Resolver interface {
	Resolve(pos, vel gamemath.Vec3, dt float32) gamemath.Vec3
}

// InputSender transmits an input. Implementations queue while offline.
type InputSender interface {
	SendInput(in messages.Input) error
}

// SyncConfig wires the sync core to its collaborators. Every field is
// optional.
type SyncConfig struct {
	RenderDelay  time.Duration
	MaxSnapshots int
	Resolver     Resolver
	Sender       InputSender
	Lifecycle    LifecycleSink
	Now          func() time.Time
}

// Sync is the client networking core: prediction of the local actor,
// reconciliation against snapshots, and interpolation of remote actors.
//
// Sync is not safe for concurrent use. The host's frame loop owns it and
// must apply every received snapshot before the next render tick.
type Sync struct {
	cfg SyncConfig

	clock     ClockSync
	snapshots *SnapshotBuffer
	pending   PendingInputs
	lastAck   int64
	received  bool

	entities map[netconfig.EntityID]messages.EntityState

	selfID    netconfig.EntityID
	selfKnown bool
	self      messages.EntityState
	haveSelf  bool

	scratch map[netconfig.EntityID]messages.EntityState
}

// NewSync creates a sync core.
func NewSync(cfg SyncConfig) *Sync {
	if cfg.RenderDelay <= 0 {
		cfg.RenderDelay = netconfig.DefaultRenderDelay
	}
	if cfg.MaxSnapshots <= 0 {
		cfg.MaxSnapshots = netconfig.DefaultMaxSnapshots
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Sync{
		cfg:       cfg,
		snapshots: NewSnapshotBuffer(cfg.MaxSnapshots),
		entities:  make(map[netconfig.EntityID]messages.EntityState),
		scratch:   make(map[netconfig.EntityID]messages.EntityState),
	}
}

// StampInput builds an input stamped with the estimated server clock. The
// stamp is forced past anything already queued or acknowledged. Before the
// first snapshot the clock has no sample and the stamp is local time;
// OnSnapshot moves such inputs onto the server clock.
func (s *Sync) StampInput(ax, ay, az float32) messages.Input {
	t := s.clock.ServerNow(s.nowMillis())
	if ref := s.reference(); t <= ref {
		t = ref + 1
	}
	return messages.Input{T: t, AX: ax, AY: ay, AZ: az}
}

// ApplyInput predicts the local actor forward by in, queues it until the
// server acknowledges it, and hands it to the sender. Prediction never
// waits on the network: send failures are logged, not returned.
func (s *Sync) ApplyInput(in messages.Input) error {
	in.AX = gamemath.ClampAxis(in.AX)
	in.AY = gamemath.ClampAxis(in.AY)
	in.AZ = gamemath.ClampAxis(in.AZ)

	ref := s.reference()
	if in.T <= ref {
		return fmt.Errorf("%w: t=%d, reference=%d", ErrInputOutOfOrder, in.T, ref)
	}

	s.integrate(in, ref)
	s.pending.Push(in)

	if s.cfg.Sender != nil {
		if err := s.cfg.Sender.SendInput(in); err != nil {
			log.Printf("[sync] send input t=%d: %v", in.T, err)
		}
	}
	return nil
}

// reference is the time the next input's dt is measured from.
func (s *Sync) reference() int64 {
	if newest, ok := s.pending.Newest(); ok {
		return newest.T
	}
	return s.lastAck
}

// integrate advances the predicted self state by in over (in.T - ref).
func (s *Sync) integrate(in messages.Input, ref int64) {
	if !s.haveSelf {
		return
	}
	dt := float32(in.T-ref) / netconfig.MillisPerSecond
	pos := gamemath.Vec3{X: s.self.X, Y: s.self.Y, Z: s.self.Z}
	vel := gamemath.Vec3{X: in.AX, Y: in.AY, Z: in.AZ}

	if s.cfg.Resolver != nil {
		pos = s.cfg.Resolver.Resolve(pos, vel, dt)
	} else {
		pos = gamemath.Integrate(pos, vel, dt)
	}
	s.self.X, s.self.Y, s.self.Z = pos.X, pos.Y, pos.Z
}

// Reset forgets the server session, for use when a new connection opens:
// the snapshot history, entity table, last ack, clock sample and self
// identity are cleared, and every entity is reported gone to the lifecycle
// sink. Pending inputs survive; their timestamps are moved back to the local
// clock so the first snapshot of the new session re-bases them.
func (s *Sync) Reset() {
	if s.clock.Synced() {
		s.pending.Shift(s.clock.Diff())
	}
	s.clock.Reset()
	s.snapshots.Clear()
	s.lastAck = 0
	s.received = false

	s.replaceEntities(messages.Snapshot{})
	s.selfID, s.selfKnown = 0, false
	s.self, s.haveSelf = messages.EntityState{}, false
}

// SetSelfID records the identity assigned by the server handshake. It
// overrides any identity guessed from snapshot order.
func (s *Sync) SetSelfID(id netconfig.EntityID) {
	if s.selfKnown && s.selfID != id {
		log.Printf("[sync] self id changed %d -> %d", s.selfID, id)
	}
	s.selfID = id
	s.selfKnown = true

	e, ok := s.entities[id]
	s.self, s.haveSelf = e, ok
	if ok {
		s.replay()
	}
}

// Self returns the predicted state of the local actor.
func (s *Sync) Self() (messages.EntityState, bool) {
	return s.self, s.haveSelf
}

// SelfID returns the local actor's identity once known.
func (s *Sync) SelfID() (netconfig.EntityID, bool) {
	return s.selfID, s.selfKnown
}

// Entity returns the authoritative state of id from the latest snapshot.
func (s *Sync) Entity(id netconfig.EntityID) (messages.EntityState, bool) {
	e, ok := s.entities[id]
	return e, ok
}

// EntityCount returns the size of the authoritative entity table.
func (s *Sync) EntityCount() int {
	return len(s.entities)
}

// LastAck returns the server time of the last applied snapshot.
func (s *Sync) LastAck() int64 {
	return s.lastAck
}

// Pending returns the unacknowledged inputs, oldest first.
func (s *Sync) Pending() []messages.Input {
	return s.pending.All()
}

// Snapshots exposes the snapshot history.
func (s *Sync) Snapshots() *SnapshotBuffer {
	return s.snapshots
}

// Clock exposes the clock estimator.
func (s *Sync) Clock() *ClockSync {
	return &s.clock
}

// RenderDelay returns the configured interpolation delay.
func (s *Sync) RenderDelay() time.Duration {
	return s.cfg.RenderDelay
}

func (s *Sync) nowMillis() int64 {
	return s.cfg.Now().UnixMilli()
}
