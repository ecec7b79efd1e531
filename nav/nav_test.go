package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	dmath "github.com/yohamta/donburi/features/math"

	"github.com/automoto/kradylechka/gamemath"
	"github.com/automoto/kradylechka/tags"
	"github.com/automoto/kradylechka/world"
)

// walledShop is 10x10 with a wall along x=4 from the top down to y=8.
func walledShop(t *testing.T) (*world.Space, *Grid) {
	t.Helper()
	space := world.NewSpace(10, 10, 2)
	space.AddRect("wall", gamemath.Rect{X: 4, Y: 0, W: 1, H: 8}, tags.ResolvSolid)
	space.AddBody("customer", dmath.Vec2{X: 2, Y: 5}, 0.5, tags.ResolvAgent)
	return space, NewGrid(space, 10, 10, 1)
}

func TestGridMarksSolidCells(t *testing.T) {
	_, grid := walledShop(t)

	require.Equal(t, 10, grid.Width)
	require.Equal(t, 10, grid.Height)
	for y := 0; y < 8; y++ {
		assert.False(t, grid.Nodes[y][4].Walkable, "wall cell y=%d", y)
		assert.True(t, grid.Nodes[y][3].Walkable)
		assert.True(t, grid.Nodes[y][5].Walkable)
	}
	assert.True(t, grid.Nodes[8][4].Walkable)
	assert.True(t, grid.Nodes[5][2].Walkable, "agent bodies do not block")

	assert.False(t, grid.Walkable(dmath.Vec2{X: 4.5, Y: 2}))
	assert.False(t, grid.Walkable(dmath.Vec2{X: -1, Y: 2}))
	assert.True(t, grid.Walkable(dmath.Vec2{X: 8, Y: 2}))
}

func TestFindPathGoesAroundWall(t *testing.T) {
	space, grid := walledShop(t)
	goal := dmath.Vec2{X: 8.5, Y: 1.5}

	path := grid.FindPath(dmath.Vec2{X: 1.5, Y: 1.5}, goal)

	require.NotEmpty(t, path)
	assert.Equal(t, goal, path[len(path)-1])
	wentBelow := false
	for _, p := range path {
		assert.True(t, grid.Walkable(p))
		assert.False(t, space.Blocked(p))
		if p.Y > 8 {
			wentBelow = true
		}
	}
	assert.True(t, wentBelow, "route passes under the wall")
}

func TestFindPathGoalInsideWall(t *testing.T) {
	_, grid := walledShop(t)

	path := grid.FindPath(dmath.Vec2{X: 1.5, Y: 3.5}, dmath.Vec2{X: 4.5, Y: 3.5})

	assert.Equal(t, []dmath.Vec2{{X: 2.5, Y: 3.5}, {X: 3.5, Y: 3.5}}, path)
}

func TestFindPathSameCell(t *testing.T) {
	_, grid := walledShop(t)

	path := grid.FindPath(dmath.Vec2{X: 1.2, Y: 1.2}, dmath.Vec2{X: 1.8, Y: 1.6})

	assert.Equal(t, []dmath.Vec2{{X: 1.8, Y: 1.6}}, path)
}

func TestAgentStraightLineWithoutGrid(t *testing.T) {
	a := NewAgent(nil, dmath.Vec2{})
	require.True(t, a.Ready())

	a.RequestMove(dmath.Vec2{X: 3, Y: 4}, 1)
	assert.InDelta(t, 5, a.RemainingDistance(), 1e-9)
	assert.False(t, a.IsPathPending())

	a.Step(1)
	assert.InDelta(t, 0.6, a.Position().X, 1e-9)
	assert.InDelta(t, 0.8, a.Position().Y, 1e-9)
	assert.InDelta(t, 0.8, a.Forward().Y, 1e-9)

	a.SetStopped(true)
	a.Step(1)
	assert.InDelta(t, 0.6, a.Position().X, 1e-9)

	a.SetStopped(false)
	a.Step(10)
	assert.Equal(t, dmath.Vec2{X: 3, Y: 4}, a.Position())
	assert.Zero(t, a.RemainingDistance())
}

func TestAgentWalksGridRoute(t *testing.T) {
	space, grid := walledShop(t)
	a := NewAgent(grid, dmath.Vec2{X: 1.5, Y: 1.5})
	goal := dmath.Vec2{X: 8.5, Y: 1.5}

	a.RequestMove(goal, 2)
	for i := 0; i < 200 && a.RemainingDistance() > 0; i++ {
		a.Step(0.1)
		require.False(t, space.Blocked(a.Position()), "step %d at %v", i, a.Position())
	}

	assert.Equal(t, goal, a.Position())
}

func TestAgentSnapsOffSolidSpawn(t *testing.T) {
	_, grid := walledShop(t)

	a := NewAgent(grid, dmath.Vec2{X: 4.5, Y: 3.5})

	assert.True(t, a.Ready())
	assert.Equal(t, dmath.Vec2{X: 3.5, Y: 3.5}, a.Position())
}

func TestAgentNotReadyWithoutFloor(t *testing.T) {
	space := world.NewSpace(4, 4, 2)
	space.AddRect("slab", gamemath.Rect{X: 0, Y: 0, W: 4, H: 4}, tags.ResolvSolid)
	grid := NewGrid(space, 4, 4, 1)

	a := NewAgent(grid, dmath.Vec2{X: 2, Y: 2})
	a.RequestMove(dmath.Vec2{X: 3, Y: 3}, 2)

	assert.False(t, a.Ready())
	assert.Empty(t, a.Path())
	assert.Equal(t, 2.0, a.Speed())
}

func TestFaceKeepsFacingOnZero(t *testing.T) {
	a := NewAgent(nil, dmath.Vec2{})
	a.Face(dmath.Vec2{Y: -2})
	a.Face(dmath.Vec2{})

	assert.Equal(t, dmath.Vec2{Y: -1}, a.Forward())
}

func TestWarpDropsPath(t *testing.T) {
	a := NewAgent(nil, dmath.Vec2{})
	a.RequestMove(dmath.Vec2{X: 5}, 1)
	a.Warp(dmath.Vec2{X: 2, Y: 2})

	assert.Empty(t, a.Path())
	assert.Equal(t, dmath.Vec2{X: 2, Y: 2}, a.Position())
}
