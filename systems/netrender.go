package systems

import (
	"fmt"
	"image"
	"image/color"

	cfg "github.com/automoto/netsync/config"
	"github.com/automoto/netsync/fonts"
	"github.com/automoto/netsync/shared/leveldata"
	"github.com/automoto/netsync/shared/netcomponents"
	"github.com/automoto/netsync/shared/netconfig"
	"github.com/automoto/netsync/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// topDown maps the arena's XZ plane onto the screen, preserving aspect.
type topDown struct {
	arena          *leveldata.Arena
	scale          float64
	originX, origY float64
}

func newTopDown(arena *leveldata.Arena, bounds image.Rectangle) topDown {
	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	scale := min(w/arena.Width(), h/arena.Depth())
	return topDown{
		arena:   arena,
		scale:   scale,
		originX: (w - arena.Width()*scale) / 2,
		origY:   (h - arena.Depth()*scale) / 2,
	}
}

func (v topDown) point(x, z float64) (float32, float32) {
	return float32(v.originX + (x-v.arena.MinX)*v.scale),
		float32(v.origY + (z-v.arena.MinZ)*v.scale)
}

func (v topDown) rect(screen *ebiten.Image, x, z, w, d float64, clr color.Color) {
	sx, sy := v.point(x, z)
	vector.DrawFilledRect(screen, sx, sy, float32(w*v.scale), float32(d*v.scale), clr, false)
}

// NewNetRenderer returns a renderer drawing the arena and every mirrored
// actor from above. size is the actor footprint in world units.
func NewNetRenderer(arena *leveldata.Arena, size float64) func(*ecs.ECS, *ebiten.Image) {
	face := fonts.Label.Get()

	return func(e *ecs.ECS, screen *ebiten.Image) {
		view := newTopDown(arena, screen.Bounds())
		view.rect(screen, arena.MinX, arena.MinZ, arena.Width(), arena.Depth(), cfg.ArenaFloor)
		for _, w := range arena.Walls {
			view.rect(screen, w.X, w.Z, w.W, w.D, cfg.WallGray)
		}

		netcomponents.RenderTransform.Each(e.World, func(entry *donburi.Entry) {
			pos := netcomponents.RenderTransform.Get(entry)
			id := netcomponents.NetEntity.Get(entry).ID

			idx := int(id % netconfig.EntityID(len(cfg.RemoteColors)))
			if idx < 0 {
				idx += len(cfg.RemoteColors)
			}
			clr := cfg.RemoteColors[idx]
			if entry.HasComponent(tags.LocalPlayer) {
				clr = cfg.BrightGreen
			}
			// Draw at least a few pixels so actors stay visible on large arenas
			pixels := max(size*view.scale, 4)
			sx, sy := view.point(pos.X, pos.Z)
			vector.DrawFilledRect(screen, sx, sy, float32(pixels), float32(pixels), clr, false)

			label := fmt.Sprintf("%d y:%.1f", id, pos.Y)
			text.Draw(screen, label, face, int(sx), int(sy)-4, cfg.White)
		})
	}
}
