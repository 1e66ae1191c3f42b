package network

import (
	"log"
	"slices"

	"github.com/automoto/netsync/shared/messages"
	"github.com/automoto/netsync/shared/netconfig"
)

// OnSnapshot applies an authoritative snapshot: the entity table is replaced
// wholesale, acknowledged inputs are dropped, and the rest are replayed on
// top of the server's position for the local actor.
func (s *Sync) OnSnapshot(snap messages.Snapshot) {
	if s.received && snap.T < s.lastAck {
		log.Printf("[sync] dropping out-of-order snapshot t=%d (last ack %d)", snap.T, s.lastAck)
		return
	}
	s.received = true

	synced := s.clock.Synced()
	s.clock.Update(snap.T, s.nowMillis())
	if !synced && s.pending.Len() > 0 {
		// queued before the clock had a sample, so stamped in local time
		s.pending.Shift(-s.clock.Diff())
	}
	s.snapshots.Push(snap)
	s.lastAck = snap.T

	s.replaceEntities(snap)
	s.resolveSelf(snap)

	s.pending.Prune(s.lastAck)
	s.replay()
}

// replaceEntities swaps in the snapshot's entity table and reports churn to
// the lifecycle sink: vanished ids first (ascending), then new ids in
// snapshot order.
func (s *Sync) replaceEntities(snap messages.Snapshot) {
	next := make(map[netconfig.EntityID]messages.EntityState, len(snap.Entities))
	var appeared []netconfig.EntityID
	for _, e := range snap.Entities {
		if _, dup := next[e.ID]; !dup {
			if _, existed := s.entities[e.ID]; !existed {
				appeared = append(appeared, e.ID)
			}
		}
		next[e.ID] = e
	}

	var vanished []netconfig.EntityID
	for id := range s.entities {
		if _, ok := next[id]; !ok {
			vanished = append(vanished, id)
		}
	}
	slices.Sort(vanished)

	s.entities = next

	if s.cfg.Lifecycle == nil {
		return
	}
	for _, id := range vanished {
		s.cfg.Lifecycle.EntityDisappeared(id)
	}
	for _, id := range appeared {
		s.cfg.Lifecycle.EntityAppeared(id)
	}
}

// resolveSelf resets the predicted self state to the server's view. Without
// a handshake, the first entity of the first non-empty snapshot is taken as
// the local actor.
func (s *Sync) resolveSelf(snap messages.Snapshot) {
	if !s.selfKnown && len(snap.Entities) > 0 {
		s.selfID = snap.Entities[0].ID
		s.selfKnown = true
		log.Printf("[sync] no welcome received, assuming self id %d", s.selfID)
	}
	if !s.selfKnown {
		s.haveSelf = false
		return
	}
	s.self, s.haveSelf = s.entities[s.selfID]
}

// replay re-applies every pending input from the last acknowledged time.
func (s *Sync) replay() {
	ref := s.lastAck
	for _, in := range s.pending.All() {
		s.integrate(in, ref)
		ref = in.T
	}
}
