package systems

import (
	"github.com/automoto/netsync/network"
	"github.com/automoto/netsync/shared/netmirror"
	"github.com/yohamta/donburi/ecs"
)

// NewNetSyncSystem returns an ECS system that applies every server message
// received since the last tick, in arrival order. A newly opened connection
// resets the sync core to start a fresh server session. It must run before
// input and render systems so they see a fully reconciled state.
func NewNetSyncSystem(client *network.Client, sync *network.Sync, mirror *netmirror.Mirror) func(*ecs.ECS) {
	return func(_ *ecs.ECS) {
		for _, in := range client.DrainInbound() {
			switch {
			case in.Opened:
				sync.Reset()
			case in.Welcome != nil:
				sync.SetSelfID(in.Welcome.ID)
			case in.Snapshot != nil:
				sync.OnSnapshot(*in.Snapshot)
			}
		}
		if id, ok := sync.SelfID(); ok {
			mirror.MarkLocal(id)
		}
	}
}

// NewRenderTickSystem returns an ECS system that writes this frame's render
// positions: predicted for the local actor, interpolated for the rest.
func NewRenderTickSystem(sync *network.Sync, sink network.PositionSink) func(*ecs.ECS) {
	return func(_ *ecs.ECS) {
		sync.Render(sink)
	}
}
