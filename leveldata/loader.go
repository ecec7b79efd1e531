package leveldata

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
	dmath "github.com/yohamta/donburi/features/math"

	"github.com/automoto/kradylechka/config"
	"github.com/automoto/kradylechka/gamemath"
)

// ErrNoSpawns is returned for a level without a single agent spawn.
var ErrNoSpawns = errors.New("leveldata: no agent spawns")

//go:embed all:levels
var levelFS embed.FS

// DemoPath is the built-in shop inside Levels().
const DemoPath = "levels/shop.tmx"

// Levels returns the embedded level files.
func Levels() fs.FS {
	return levelFS
}

// LoadDemo loads the built-in shop.
func LoadDemo() (*Level, error) {
	return Load(levelFS, DemoPath)
}

// Load parses a TMX file from fsys. Pass os.DirFS for files on disk.
func Load(fsys fs.FS, tmxPath string) (*Level, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	level, err := parse(levelMap)
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	level.Name = strings.TrimSuffix(filepath.Base(tmxPath), ".tmx")
	return level, nil
}

// LoadAll loads every .tmx file in dir, keyed by stem name, plus the sorted
// list of names.
func LoadAll(fsys fs.FS, dir string) (map[string]*Level, []string, error) {
	pattern := dir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", dir)
	}

	levels := make(map[string]*Level, len(matches))
	names := make([]string, 0, len(matches))
	for _, path := range matches {
		level, err := Load(fsys, path)
		if err != nil {
			return nil, nil, err
		}
		levels[level.Name] = level
		names = append(names, level.Name)
	}

	sort.Strings(names)
	return levels, names, nil
}

func parse(levelMap *tiled.Map) (*Level, error) {
	cfg := config.Level
	scale := cfg.PixelsPerUnit
	if scale <= 0 {
		scale = 1
	}
	toUnits := func(x, y float64) dmath.Vec2 {
		return dmath.Vec2{X: x / scale, Y: y / scale}
	}
	toRect := func(o *tiled.Object) gamemath.Rect {
		return gamemath.Rect{X: o.X / scale, Y: o.Y / scale, W: o.Width / scale, H: o.Height / scale}
	}

	level := &Level{
		Width:  float64(levelMap.Width*levelMap.TileWidth) / scale,
		Height: float64(levelMap.Height*levelMap.TileHeight) / scale,
		Routes: make(map[string][]dmath.Vec2),
	}
	if level.Width <= 0 || level.Height <= 0 {
		level.Width, level.Height = cfg.DefaultWidth, cfg.DefaultHeight
	}

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case cfg.WallsGroup:
			for _, o := range og.Objects {
				level.Walls = append(level.Walls, toRect(o))
			}
		case cfg.ShelvesGroup:
			for _, o := range og.Objects {
				level.Shelves = append(level.Shelves, toRect(o))
			}
		case cfg.ItemsGroup:
			for _, o := range og.Objects {
				level.Items = append(level.Items, ItemSpawn{
					Name:  o.Name,
					Pos:   toUnits(o.X, o.Y),
					Value: o.Properties.GetInt("value"),
				})
			}
		case cfg.PatrolGroup:
			for _, o := range og.Objects {
				if len(o.PolyLines) == 0 {
					continue
				}
				// Use the first polyline if multiple polylines exist
				polyline := o.PolyLines[0]
				if polyline.Points == nil || len(*polyline.Points) < 2 {
					continue
				}
				points := make([]dmath.Vec2, len(*polyline.Points))
				for i, point := range *polyline.Points {
					points[i] = toUnits(o.X+point.X, o.Y+point.Y)
				}
				level.Routes[o.Name] = points
			}
		case cfg.SpawnGroup:
			for _, o := range og.Objects {
				level.Spawns = append(level.Spawns, AgentSpawn{
					Type:      o.Properties.GetString("agentType"),
					Pos:       toUnits(o.X, o.Y),
					RouteName: o.Properties.GetString("pathName"),
				})
			}
		case cfg.PlayerGroup:
			if len(og.Objects) > 0 && !level.HasPlayerSpawn {
				o := og.Objects[0]
				level.PlayerSpawn = toUnits(o.X, o.Y)
				level.HasPlayerSpawn = true
			}
		}
	}

	if len(level.Spawns) == 0 {
		return nil, ErrNoSpawns
	}

	// Routes may be declared after the spawns that use them
	for i := range level.Spawns {
		if name := level.Spawns[i].RouteName; name != "" {
			level.Spawns[i].Route = level.Routes[name]
		}
	}

	// Top-to-bottom, left-to-right for a stable spawn order
	sort.SliceStable(level.Spawns, func(i, j int) bool {
		a, b := level.Spawns[i].Pos, level.Spawns[j].Pos
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	sort.Slice(level.Items, func(i, j int) bool {
		return level.Items[i].Name < level.Items[j].Name
	})

	return level, nil
}

// Summary is a short human-readable description of the layout.
func (l *Level) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%.0fx%.0f)\n", l.Name, l.Width, l.Height)
	fmt.Fprintf(&sb, "  walls: %d  shelves: %d  items: %d  routes: %d\n",
		len(l.Walls), len(l.Shelves), len(l.Items), len(l.Routes))
	for _, s := range l.Spawns {
		route := s.RouteName
		if route == "" {
			route = "-"
		}
		fmt.Fprintf(&sb, "  %-8s at %5.1f,%5.1f  route %s (%d points)\n", s.Type, s.Pos.X, s.Pos.Y, route, len(s.Route))
	}
	for _, it := range l.Items {
		fmt.Fprintf(&sb, "  item %-10s at %5.1f,%5.1f  value %d\n", it.Name, it.Pos.X, it.Pos.Y, it.Value)
	}
	if l.HasPlayerSpawn {
		fmt.Fprintf(&sb, "  player at %5.1f,%5.1f\n", l.PlayerSpawn.X, l.PlayerSpawn.Y)
	}
	return sb.String()
}
