package leveldata

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/lafriks/go-tiled"
)

// ErrInvalidArena is returned for a TMX file whose geometry is unusable.
var ErrInvalidArena = errors.New("invalid arena")

const wallsGroup = "Walls"

// LoadArena parses a TMX file into an Arena. It takes an fs.FS so callers can
// pass embed.FS or os.DirFS.
//
// The map's pixel extent becomes the X/Z extent, shifted by the integer map
// properties originX and originZ. Height comes from minY and maxY. Rectangle
// objects in the "Walls" object group become walls.
func LoadArena(fsys fs.FS, tmxPath string) (*Arena, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	originX := float64(levelMap.Properties.GetInt("originX"))
	originZ := float64(levelMap.Properties.GetInt("originZ"))
	arena := &Arena{
		MinX: originX,
		MaxX: originX + float64(levelMap.Width*levelMap.TileWidth),
		MinY: float64(levelMap.Properties.GetInt("minY")),
		MaxY: float64(levelMap.Properties.GetInt("maxY")),
		MinZ: originZ,
		MaxZ: originZ + float64(levelMap.Height*levelMap.TileHeight),
	}
	if arena.Width() <= 0 || arena.Depth() <= 0 {
		return nil, fmt.Errorf("%w: %s has an empty ground plane", ErrInvalidArena, tmxPath)
	}
	if arena.MaxY <= arena.MinY {
		return nil, fmt.Errorf("%w: %s maxY %v must exceed minY %v", ErrInvalidArena, tmxPath, arena.MaxY, arena.MinY)
	}

	for _, og := range levelMap.ObjectGroups {
		if og.Name != wallsGroup {
			continue
		}
		for _, o := range og.Objects {
			if o.Width <= 0 || o.Height <= 0 {
				continue
			}
			arena.Walls = append(arena.Walls, Wall{
				X: originX + o.X,
				Z: originZ + o.Y,
				W: o.Width,
				D: o.Height,
			})
		}
	}

	// Stable order regardless of object ids in the file
	sort.Slice(arena.Walls, func(i, j int) bool {
		if arena.Walls[i].X != arena.Walls[j].X {
			return arena.Walls[i].X < arena.Walls[j].X
		}
		return arena.Walls[i].Z < arena.Walls[j].Z
	})

	return arena, nil
}
