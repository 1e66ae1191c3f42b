package network

import (
	"sort"

	"github.com/automoto/netsync/shared/messages"
	"github.com/automoto/netsync/shared/netconfig"
)

// SnapshotBuffer is a bounded history of received snapshots ordered by
// server time, oldest first. Once full, the oldest entry is evicted.
type SnapshotBuffer struct {
	snaps    []messages.Snapshot
	capacity int
}

// NewSnapshotBuffer creates a buffer holding up to capacity snapshots.
func NewSnapshotBuffer(capacity int) *SnapshotBuffer {
	if capacity < 1 {
		capacity = netconfig.DefaultMaxSnapshots
	}
	return &SnapshotBuffer{
		snaps:    make([]messages.Snapshot, 0, capacity+1),
		capacity: capacity,
	}
}

// Push stores s. A snapshot with the same server time as a buffered one
// replaces it; an older one is inserted at its ordered position.
func (b *SnapshotBuffer) Push(s messages.Snapshot) {
	n := len(b.snaps)
	if n == 0 || s.T > b.snaps[n-1].T {
		b.snaps = append(b.snaps, s)
	} else {
		i := sort.Search(n, func(i int) bool { return b.snaps[i].T >= s.T })
		if b.snaps[i].T == s.T {
			b.snaps[i] = s
			return
		}
		b.snaps = append(b.snaps, messages.Snapshot{})
		copy(b.snaps[i+1:], b.snaps[i:])
		b.snaps[i] = s
	}

	if excess := len(b.snaps) - b.capacity; excess > 0 {
		b.snaps = append(b.snaps[:0], b.snaps[excess:]...)
	}
}

// Latest returns the newest snapshot, or false if the buffer is empty.
func (b *SnapshotBuffer) Latest() (messages.Snapshot, bool) {
	if len(b.snaps) == 0 {
		return messages.Snapshot{}, false
	}
	return b.snaps[len(b.snaps)-1], true
}

// All returns the buffered snapshots, oldest first. The slice is owned by
// the buffer and only valid until the next Push.
func (b *SnapshotBuffer) All() []messages.Snapshot {
	return b.snaps
}

// Len returns the number of buffered snapshots.
func (b *SnapshotBuffer) Len() int {
	return len(b.snaps)
}

// Cap returns the configured capacity.
func (b *SnapshotBuffer) Cap() int {
	return b.capacity
}

// Clear drops all history.
func (b *SnapshotBuffer) Clear() {
	b.snaps = b.snaps[:0]
}
