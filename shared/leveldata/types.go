// Package leveldata provides TMX arena parsing for the client physics.
// It has no dependencies on ebitengine, donburi, or resolv; pure data only.
package leveldata

// Arena is the axis-aligned box actors move in, plus interior walls.
// X and Z span the ground plane; Y is height.
type Arena struct {
	MinX, MaxX float64
	MinY, MaxY float64
	MinZ, MaxZ float64
	Walls      []Wall
}

// Wall is a solid box covering the full arena height.
type Wall struct {
	X, Z float64 // min corner
	W, D float64 // extent on X and Z
}

// Width returns the arena extent on X.
func (a *Arena) Width() float64 { return a.MaxX - a.MinX }

// Depth returns the arena extent on Z.
func (a *Arena) Depth() float64 { return a.MaxZ - a.MinZ }

// DefaultArena is the server's physics world: a 200x100x200 box centred on
// the origin with its floor at Y=0.
func DefaultArena() *Arena {
	return &Arena{
		MinX: -100, MaxX: 100,
		MinY: 0, MaxY: 100,
		MinZ: -100, MaxZ: 100,
	}
}
