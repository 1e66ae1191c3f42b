// Package netphysics resolves local-actor motion against arena geometry so
// prediction agrees with what the server will allow.
package netphysics

import (
	"math"

	"github.com/automoto/netsync/shared/gamemath"
	"github.com/automoto/netsync/shared/leveldata"
	"github.com/automoto/netsync/tags"
	"github.com/solarlune/resolv"
)

const (
	// maxStep bounds a single sweep step so thin walls cannot be skipped.
	maxStep = 0.5

	cellSize = 16
)

// Resolver moves an actor's footprint across the arena's XZ plane. The
// footprint is a size x size square anchored at the actor position. The
// position itself is clamped to the arena box, matching the server.
//
// Resolve keeps no state between calls, so replaying the same inputs gives
// the same result. It is not safe for concurrent use.
type Resolver struct {
	arena *leveldata.Arena
	space *resolv.Space
	query *resolv.Object
	size  float64

	// world -> space offset; the space has its min corner at zero
	offX, offZ float64

	// actor min corner in space coordinates during a Resolve call
	x, z float64
}

// NewResolver builds a collision space for arena. A non-positive size
// defaults to one unit.
func NewResolver(arena *leveldata.Arena, size float64) *Resolver {
	if arena == nil {
		arena = leveldata.DefaultArena()
	}
	if size <= 0 {
		size = 1
	}
	margin := math.Ceil(size) + 2
	offX := arena.MinX - margin
	offZ := arena.MinZ - margin

	space := resolv.NewSpace(
		cellAligned(arena.Width()+2*margin),
		cellAligned(arena.Depth()+2*margin),
		cellSize, cellSize,
	)

	for _, w := range arena.Walls {
		obj := resolv.NewObject(w.X-offX, w.Z-offZ, w.W, w.D, tags.ResolvSolid)
		obj.SetShape(resolv.NewRectangle(0, 0, w.W, w.D))
		space.Add(obj)
	}

	query := resolv.NewObject(0, 0, 1, 1, tags.ResolvQuery)
	space.Add(query)

	return &Resolver{
		arena: arena,
		space: space,
		query: query,
		size:  size,
		offX:  offX,
		offZ:  offZ,
	}
}

// Resolve advances pos by vel*dt. X is swept first, then Z; a wall stops
// the footprint flush against it. Y has no walls and is clamped to the
// arena height.
func (r *Resolver) Resolve(pos, vel gamemath.Vec3, dt float32) gamemath.Vec3 {
	r.x = r.clampX(float64(pos.X) - r.offX)
	r.z = r.clampZ(float64(pos.Z) - r.offZ)

	r.sweep(float64(vel.X)*float64(dt), true)
	r.sweep(float64(vel.Z)*float64(dt), false)

	y := gamemath.Clamp(pos.Y+vel.Y*dt, float32(r.arena.MinY), float32(r.arena.MaxY))
	return gamemath.Vec3{
		X: float32(r.x + r.offX),
		Y: y,
		Z: float32(r.z + r.offZ),
	}
}

// sweep moves the actor along one axis in steps of at most maxStep,
// stopping at the first blocking wall.
func (r *Resolver) sweep(d float64, alongX bool) {
	for d != 0 {
		step := d
		if step > maxStep {
			step = maxStep
		} else if step < -maxStep {
			step = -maxStep
		}
		d -= step

		allowed := r.allowed(step, alongX)
		if alongX {
			r.x += allowed
		} else {
			r.z += allowed
		}
		if allowed != step {
			return
		}
	}
}

// allowed returns how much of step the actor can move before touching a
// solid or leaving the arena.
func (r *Resolver) allowed(step float64, alongX bool) float64 {
	allowed := step
	for _, solid := range r.candidates(step, alongX) {
		if alongX {
			if !overlaps(r.z, r.size, solid.Y, solid.H) {
				continue
			}
			allowed = limit(allowed, r.x, r.size, solid.X, solid.W)
		} else {
			if !overlaps(r.x, r.size, solid.X, solid.W) {
				continue
			}
			allowed = limit(allowed, r.z, r.size, solid.Y, solid.H)
		}
	}

	if alongX {
		return r.clampX(r.x+allowed) - r.x
	}
	return r.clampZ(r.z+allowed) - r.z
}

// candidates returns the solids near the swept footprint. The query box is
// padded by a cell on every side; exact overlap is decided by the caller.
func (r *Resolver) candidates(step float64, alongX bool) []*resolv.Object {
	minX, minZ := r.x, r.z
	w, d := r.size, r.size
	if alongX {
		minX = math.Min(r.x, r.x+step)
		w += math.Abs(step)
	} else {
		minZ = math.Min(r.z, r.z+step)
		d += math.Abs(step)
	}

	r.query.X, r.query.Y = minX-1, minZ-1
	r.query.W, r.query.H = w+2, d+2
	r.query.Update()

	check := r.query.Check(0, 0, tags.ResolvSolid)
	if check == nil {
		return nil
	}
	return check.ObjectsByTags(tags.ResolvSolid)
}

// cellAligned rounds a world extent up to a whole number of cells.
func cellAligned(extent float64) int {
	return int(math.Ceil(extent/cellSize)) * cellSize
}

func (r *Resolver) clampX(x float64) float64 {
	return math.Max(r.arena.MinX-r.offX, math.Min(x, r.arena.MaxX-r.offX))
}

func (r *Resolver) clampZ(z float64) float64 {
	return math.Max(r.arena.MinZ-r.offZ, math.Min(z, r.arena.MaxZ-r.offZ))
}

// overlaps reports whether [a, a+al) and [b, b+bl) intersect.
func overlaps(a, al, b, bl float64) bool {
	return a < b+bl && b < a+al
}

// limit shortens move so a segment at pos with length size stops at the
// near face of the solid ahead of it.
func limit(move, pos, size, solidPos, solidSize float64) float64 {
	const eps = 1e-9
	switch {
	case move > 0:
		gap := solidPos - (pos + size)
		if gap >= -eps && gap < move {
			return math.Max(gap, 0)
		}
	case move < 0:
		gap := (solidPos + solidSize) - pos
		if gap <= eps && gap > move {
			return math.Min(gap, 0)
		}
	}
	return move
}
