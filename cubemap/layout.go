package cubemap

import (
	"fmt"
	"sort"
	"strings"
)

// Tile is a grid cell of an atlas, addressed by column and row from the
// top left.
type Tile struct {
	Column, Row int
}

// Layout describes how the six faces are packed into an atlas grid.
type Layout struct {
	Name    string
	Columns int
	Rows    int
	Tiles   map[FaceID]Tile
}

// DefaultLayout is the name of the layout used when none is given.
const DefaultLayout = "4x3"

// The 4x3 cross, with +z as the front face in the middle:
//
//	+----+----+----+----+
//	|    | +y |    |    |
//	+----+----+----+----+
//	| -x | +z | +x | -z |
//	+----+----+----+----+
//	|    | -y |    |    |
//	+----+----+----+----+
var layouts = map[string]Layout{
	"4x3": {
		Name:    "4x3",
		Columns: 4,
		Rows:    3,
		Tiles: map[FaceID]Tile{
			PosX: {2, 1},
			NegX: {0, 1},
			PosY: {1, 0},
			NegY: {1, 2},
			PosZ: {1, 1},
			NegZ: {3, 1},
		},
	},
}

// LookupLayout returns the layout registered under name.
func LookupLayout(name string) (Layout, error) {
	l, ok := layouts[name]
	if !ok {
		return Layout{}, &LayoutError{Layout: name, Reason: "unknown layout, known layouts: " + strings.Join(LayoutNames(), ", ")}
	}
	return l, nil
}

// LayoutNames returns the registered layout names, sorted.
func LayoutNames() []string {
	names := make([]string, 0, len(layouts))
	for n := range layouts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Validate checks that every face has exactly one tile inside the grid and
// that no two faces share a tile.
func (l Layout) Validate() error {
	if l.Columns <= 0 || l.Rows <= 0 {
		return &LayoutError{Layout: l.Name, Reason: fmt.Sprintf("bad grid %dx%d", l.Columns, l.Rows)}
	}
	seen := make(map[Tile]FaceID, len(l.Tiles))
	for _, id := range FaceIDs {
		t, ok := l.Tiles[id]
		if !ok {
			return &LayoutError{Layout: l.Name, Reason: fmt.Sprintf("no tile for %s", id)}
		}
		if t.Column < 0 || t.Column >= l.Columns || t.Row < 0 || t.Row >= l.Rows {
			return &LayoutError{Layout: l.Name, Reason: fmt.Sprintf("%s tile (%d,%d) outside %dx%d grid", id, t.Column, t.Row, l.Columns, l.Rows)}
		}
		if other, dup := seen[t]; dup {
			return &LayoutError{Layout: l.Name, Reason: fmt.Sprintf("%s and %s share tile (%d,%d)", other, id, t.Column, t.Row)}
		}
		seen[t] = id
	}
	if len(l.Tiles) != FaceCount {
		return &LayoutError{Layout: l.Name, Reason: "tiles declared for unknown faces"}
	}
	return nil
}
