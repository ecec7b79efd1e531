// Package nav plans walkable routes across the shop floor and moves agents
// along them.
package nav

import (
	"math"
	"slices"

	astar "github.com/beefsack/go-astar"
	dmath "github.com/yohamta/donburi/features/math"

	"github.com/automoto/kradylechka/config"
	"github.com/automoto/kradylechka/gamemath"
)

// Blocker answers whether a box overlaps solid geometry. *world.Space
// satisfies it.
type Blocker interface {
	SolidAt(r gamemath.Rect) bool
}

// Grid represents the walkable areas of the level
type Grid struct {
	Width, Height int
	CellSize      float64
	Nodes         [][]*Node
}

// Node is a single grid cell. Implements astar.Pather.
type Node struct {
	X, Y     int
	Walkable bool
	grid     *Grid
}

var directions = []struct{ dx, dy int }{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
}

// PathNeighbors returns adjacent walkable nodes. Diagonal steps need both
// orthogonal cells free so paths never clip a wall corner.
func (n *Node) PathNeighbors() []astar.Pather {
	neighbors := make([]astar.Pather, 0, len(directions))
	for _, d := range directions {
		next := n.grid.node(n.X+d.dx, n.Y+d.dy)
		if next == nil || !next.Walkable {
			continue
		}
		if d.dx != 0 && d.dy != 0 {
			a, b := n.grid.node(n.X+d.dx, n.Y), n.grid.node(n.X, n.Y+d.dy)
			if a == nil || b == nil || !a.Walkable || !b.Walkable {
				continue
			}
		}
		neighbors = append(neighbors, next)
	}
	return neighbors
}

func (n *Node) PathNeighborCost(to astar.Pather) float64 {
	return n.PathEstimatedCost(to)
}

// PathEstimatedCost is the euclidean distance in cells.
func (n *Node) PathEstimatedCost(to astar.Pather) float64 {
	t := to.(*Node)
	dx := float64(t.X - n.X)
	dy := float64(t.Y - n.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// NewGrid builds a grid covering width x height world units, marking every
// cell that overlaps solid geometry as blocked. A nil blocker leaves every
// cell walkable.
func NewGrid(space Blocker, width, height, cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = config.Nav.CellSize
	}
	gridW := int(math.Ceil(width / cellSize))
	gridH := int(math.Ceil(height / cellSize))

	grid := &Grid{
		Width:    gridW,
		Height:   gridH,
		CellSize: cellSize,
		Nodes:    make([][]*Node, gridH),
	}

	inset := cellSize * 0.1
	for y := 0; y < gridH; y++ {
		grid.Nodes[y] = make([]*Node, gridW)
		for x := 0; x < gridW; x++ {
			node := &Node{X: x, Y: y, Walkable: true, grid: grid}
			grid.Nodes[y][x] = node
			if space == nil {
				continue
			}

			cell := gamemath.Rect{
				X: float64(x)*cellSize + inset,
				Y: float64(y)*cellSize + inset,
				W: cellSize - inset*2,
				H: cellSize - inset*2,
			}
			node.Walkable = !space.SolidAt(cell)
		}
	}

	return grid
}

func (g *Grid) node(x, y int) *Node {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return nil
	}
	return g.Nodes[y][x]
}

func (g *Grid) cellOf(p dmath.Vec2) (int, int) {
	x := clampInt(int(math.Floor(p.X/g.CellSize)), 0, g.Width-1)
	y := clampInt(int(math.Floor(p.Y/g.CellSize)), 0, g.Height-1)
	return x, y
}

// Walkable reports whether p lies in a walkable cell inside the grid.
func (g *Grid) Walkable(p dmath.Vec2) bool {
	if p.X < 0 || p.Y < 0 || p.X >= float64(g.Width)*g.CellSize || p.Y >= float64(g.Height)*g.CellSize {
		return false
	}
	x, y := g.cellOf(p)
	return g.Nodes[y][x].Walkable
}

// Nearest returns the center of the walkable cell closest to p.
func (g *Grid) Nearest(p dmath.Vec2) (dmath.Vec2, bool) {
	x, y := g.cellOf(p)
	n := g.nearestWalkable(x, y)
	if n == nil {
		return dmath.Vec2{}, false
	}
	return g.center(n), true
}

// FindPath returns world points from just after start up to goal. A goal in a
// walkable cell is kept exact; otherwise the path ends at the nearest
// walkable cell center. Nil means no route.
func (g *Grid) FindPath(start, goal dmath.Vec2) []dmath.Vec2 {
	if g.Width == 0 || g.Height == 0 {
		return nil
	}
	sx, sy := g.cellOf(start)
	gx, gy := g.cellOf(goal)

	startNode := g.Nodes[sy][sx]
	goalNode := g.Nodes[gy][gx]
	exactGoal := goalNode.Walkable && g.Walkable(goal)

	if !startNode.Walkable {
		startNode = g.nearestWalkable(sx, sy)
	}
	if !goalNode.Walkable {
		goalNode = g.nearestWalkable(gx, gy)
	}
	if startNode == nil || goalNode == nil {
		return nil
	}

	if startNode == goalNode {
		if exactGoal {
			return []dmath.Vec2{goal}
		}
		return []dmath.Vec2{g.center(goalNode)}
	}

	path, _, found := astar.Path(startNode, goalNode)
	if !found {
		return nil
	}
	nodes := make([]*Node, len(path))
	for i, p := range path {
		nodes[i] = p.(*Node)
	}
	if nodes[0] != startNode {
		slices.Reverse(nodes)
	}

	points := make([]dmath.Vec2, 0, len(nodes))
	for _, n := range nodes[1:] {
		points = append(points, g.center(n))
	}
	if exactGoal {
		points[len(points)-1] = goal
	}
	return points
}

func (g *Grid) nearestWalkable(x, y int) *Node {
	if n := g.node(x, y); n != nil && n.Walkable {
		return n
	}
	for radius := 1; radius <= config.Nav.SearchRadius; radius++ {
		var best *Node
		bestDist := math.MaxFloat64
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				n := g.node(x+dx, y+dy)
				if n == nil || !n.Walkable {
					continue
				}
				if d := float64(dx*dx + dy*dy); d < bestDist {
					best, bestDist = n, d
				}
			}
		}
		if best != nil {
			return best
		}
	}
	return nil
}

// center converts a node to world coordinates (center of cell).
func (g *Grid) center(n *Node) dmath.Vec2 {
	return dmath.Vec2{
		X: float64(n.X)*g.CellSize + g.CellSize/2,
		Y: float64(n.Y)*g.CellSize + g.CellSize/2,
	}
}

func clampInt(v, minVal, maxVal int) int {
	return max(minVal, min(maxVal, v))
}
