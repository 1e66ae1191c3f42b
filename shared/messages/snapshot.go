package messages

import "github.com/automoto/netsync/shared/netconfig"

// EntityState is the authoritative position of one networked actor.
type EntityState struct {
	ID netconfig.EntityID `json:"id"`
	X  float32            `json:"x"`
	Y  float32            `json:"y"`
	Z  float32            `json:"z"`
}

// Snapshot is a server broadcast of every entity at one simulation instant.
// Snapshots are treated as immutable once received.
type Snapshot struct {
	T        int64         `json:"t"`
	Entities []EntityState `json:"entities"`
}

// Find returns the state of id within the snapshot.
func (s Snapshot) Find(id netconfig.EntityID) (EntityState, bool) {
	for _, e := range s.Entities {
		if e.ID == id {
			return e, true
		}
	}
	return EntityState{}, false
}

// Welcome is the self-identity handshake: it names the entity the server
// assigned to this connection.
type Welcome struct {
	ID netconfig.EntityID `json:"id"`
}
