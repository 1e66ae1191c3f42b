package network

import (
	"github.com/automoto/netsync/shared/gamemath"
	"github.com/automoto/netsync/shared/messages"
	"github.com/automoto/netsync/shared/netconfig"
)

// Render is the per-frame entry point: the local actor is emitted at its
// predicted position, remote actors at their interpolated positions.
func (s *Sync) Render(sink PositionSink) {
	if s.haveSelf {
		sink.SetPosition(s.selfID, s.self.X, s.self.Y, s.self.Z)
	}
	s.Interpolate(sink)
}

// RenderTime is the server time remote actors are drawn at: the estimated
// server clock minus the render delay.
func (s *Sync) RenderTime() int64 {
	return s.clock.ServerNow(s.nowMillis()) - s.cfg.RenderDelay.Milliseconds()
}

// Interpolate emits remote actor positions for the current render time.
func (s *Sync) Interpolate(sink PositionSink) {
	s.InterpolateAt(s.RenderTime(), sink)
}

// InterpolateAt emits remote actor positions at renderTime (server ms).
// Nothing is emitted until two snapshots are buffered. If renderTime runs
// more than StaleSteps snapshot intervals past the newest snapshot, the
// newest positions are emitted as-is.
func (s *Sync) InterpolateAt(renderTime int64, sink PositionSink) {
	snaps := s.snapshots.All()
	if len(snaps) < 2 {
		return
	}

	last := snaps[len(snaps)-1]
	step := last.T - snaps[len(snaps)-2].T
	if renderTime > last.T+netconfig.StaleSteps*step {
		for _, e := range last.Entities {
			if s.isSelf(e.ID) {
				continue
			}
			sink.SetPosition(e.ID, e.X, e.Y, e.Z)
		}
		return
	}

	prev, next := bracket(snaps, renderTime)
	span := next.T - prev.T
	if span < 1 {
		span = 1
	}
	t := gamemath.Clamp01(float32(renderTime-prev.T) / float32(span))

	clear(s.scratch)
	for _, e := range prev.Entities {
		s.scratch[e.ID] = e
	}
	for _, n := range next.Entities {
		if s.isSelf(n.ID) {
			continue
		}
		p, ok := s.scratch[n.ID]
		if !ok {
			continue
		}
		sink.SetPosition(n.ID,
			gamemath.Lerp(p.X, n.X, t),
			gamemath.Lerp(p.Y, n.Y, t),
			gamemath.Lerp(p.Z, n.Z, t),
		)
	}
}

func (s *Sync) isSelf(id netconfig.EntityID) bool {
	return s.selfKnown && id == s.selfID
}

// bracket finds adjacent snapshots around renderTime. Outside the buffered
// range it falls back to the oldest or newest pair. snaps has len >= 2.
func bracket(snaps []messages.Snapshot, renderTime int64) (prev, next messages.Snapshot) {
	for i := 0; i+1 < len(snaps); i++ {
		if snaps[i].T <= renderTime && renderTime <= snaps[i+1].T {
			return snaps[i], snaps[i+1]
		}
	}
	if renderTime < snaps[0].T {
		return snaps[0], snaps[1]
	}
	n := len(snaps)
	return snaps[n-2], snaps[n-1]
}
