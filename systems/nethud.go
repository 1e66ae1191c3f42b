package systems

import (
	"fmt"

	cfg "github.com/automoto/netsync/config"
	"github.com/automoto/netsync/fonts"
	"github.com/automoto/netsync/network"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/yohamta/donburi/ecs"
)

// NewNetHUD returns a renderer showing connection and sync state.
func NewNetHUD(client *network.Client, sync *network.Sync) func(*ecs.ECS, *ebiten.Image) {
	face := fonts.HUD.Get()

	return func(_ *ecs.ECS, screen *ebiten.Image) {
		state := client.State()
		clr := cfg.LightGreen
		if state != network.StateConnected {
			clr = cfg.LightRed
		}

		self := "self: unknown"
		if id, ok := sync.SelfID(); ok {
			self = fmt.Sprintf("self: %d", id)
			if s, ok := sync.Self(); ok {
				self += fmt.Sprintf(" (%.2f, %.2f, %.2f)", s.X, s.Y, s.Z)
			}
		}

		lines := []string{
			fmt.Sprintf("%s - entities: %d", state, sync.EntityCount()),
			self,
			fmt.Sprintf("ack: %d  pending: %d  queued: %d", sync.LastAck(), len(sync.Pending()), client.Queued()),
			fmt.Sprintf("clock diff: %dms  delay: %v", sync.Clock().Diff(), sync.RenderDelay()),
		}
		if err := client.LastError(); err != nil && state == network.StateError {
			lines = append(lines, err.Error())
		}
		for i, line := range lines {
			text.Draw(screen, line, face, 6, 16+i*15, clr)
		}
		text.Draw(screen, "WASD/arrows move, space/shift up/down", face, 6, screen.Bounds().Dy()-8, cfg.Yellow)
	}
}
