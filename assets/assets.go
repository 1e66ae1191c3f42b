package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/automoto/netsync/shared/leveldata"
)

//go:embed all:arenas
var arenaFS embed.FS

// DefaultArenaPath is the embedded arena used when no TMX path is configured.
const DefaultArenaPath = "arenas/default.tmx"

// Arenas exposes the embedded arena files.
func Arenas() fs.FS {
	return arenaFS
}

// LoadArena loads the arena at path from disk, or the embedded default arena
// when path is empty.
func LoadArena(path string) (*leveldata.Arena, error) {
	if path == "" {
		arena, err := leveldata.LoadArena(arenaFS, DefaultArenaPath)
		if err != nil {
			return nil, fmt.Errorf("embedded arena: %w", err)
		}
		return arena, nil
	}
	dir, file := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	return leveldata.LoadArena(os.DirFS(dir), file)
}
