package cave

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyRule2DefaultBorderUsesReferenceCounts(t *testing.T) {
	size := Vec2{X: 12, Y: 12}
	g := NewGrid2(size)
	g.FillRand(0.45, NewHashSource(21))

	before := NewGrid2(size)
	before.Fill(false)
	copy(before.data, g.data)
	refCounts := countNeighborsRef2(before, false)

	g.ApplyRule(Rule2Smooth, DefaultBorder)

	survive := Rule2Smooth.Survive.ToArray()
	birth := Rule2Smooth.Birth.ToArray()
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			pos := Vec2{X: x, Y: y}
			wasAlive, _ := before.Cell(pos)
			c := refCounts[y*size.X+x]
			want := wasAlive && survive[c] || !wasAlive && birth[c]
			got, _ := g.Cell(pos)
			assert.Equal(t, want, got, "cell (%d,%d)", x, y)
		}
	}
}

func TestApplyRule2AliveBorderForcesEdgesAlive(t *testing.T) {
	size := Vec2{X: 10, Y: 10}
	g := NewGrid2(size)
	g.FillRand(0.3, NewHashSource(22))
	g.ApplyRule(Rule2Smooth, AliveBorder)

	for x := 0; x < size.X; x++ {
		v, _ := g.Cell(Vec2{X: x, Y: 0})
		assert.True(t, v)
		v, _ = g.Cell(Vec2{X: x, Y: size.Y - 1})
		assert.True(t, v)
	}
	for y := 0; y < size.Y; y++ {
		v, _ := g.Cell(Vec2{X: 0, Y: y})
		assert.True(t, v)
		v, _ = g.Cell(Vec2{X: size.X - 1, Y: y})
		assert.True(t, v)
	}
}

func TestApplyRule3SmoothAliveBorderKeepsFaceAlive(t *testing.T) {
	size := Vec3{X: 16, Y: 16, Z: 16}
	g := NewGrid3(size)
	g.FillRand(0.45, NewHashSource(23))

	for i := 0; i < 5; i++ {
		g.ApplyRule(Rule3Smooth, AliveBorder)
	}
	for x := 0; x < size.X; x++ {
		for y := 0; y < size.Y; y++ {
			v, _ := g.Cell(Vec3{X: x, Y: y, Z: 0})
			assert.True(t, v)
		}
	}
}

func TestApplyRule2EmptyGridNoop(t *testing.T) {
	g := NewGrid2(Vec2{X: 0, Y: 0})
	g.Fill(false)
	assert.NotPanics(t, func() { g.ApplyRule(Rule2Smooth, DefaultBorder) })
}

// TestApplyRule3Smooth4x4x4EdgesAndVerticesDie starts from a fully alive
// 4x4x4 grid (one block) and checks the exact shape left by a single
// Rule3Smooth step: a cell survives unless it sits on 2 or more of the
// grid's outer faces, in which case it dies.
func TestApplyRule3Smooth4x4x4EdgesAndVerticesDie(t *testing.T) {
	const n = 4
	g := NewGrid3(Vec3{X: n, Y: n, Z: n})
	g.Fill(true)
	assert.Equal(t, ^uint64(0), g.data[0])

	g.ApplyRule(Rule3Smooth, DefaultBorder)

	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				value, ok := g.Cell(Vec3{X: i, Y: j, Z: k})
				assert.True(t, ok)
				xBorder := i == 0 || i == n-1
				yBorder := j == 0 || j == n-1
				zBorder := k == 0 || k == n-1
				onTwoOrMoreFaces := (xBorder && yBorder) || (yBorder && zBorder) || (zBorder && xBorder)
				if onTwoOrMoreFaces {
					assert.False(t, value, "cell (%d,%d,%d)", i, j, k)
				} else {
					assert.True(t, value, "cell (%d,%d,%d)", i, j, k)
				}
			}
		}
	}
}

// TestApplyRule3Smooth8x8x8EdgesAndVerticesDie is the same scenario scaled
// to a grid spanning 8 blocks, exercising the cross-block neighbor fixups.
func TestApplyRule3Smooth8x8x8EdgesAndVerticesDie(t *testing.T) {
	const n = 8
	g := NewGrid3(Vec3{X: n, Y: n, Z: n})
	g.Fill(true)
	for _, b := range g.data {
		assert.Equal(t, ^uint64(0), b)
	}

	g.ApplyRule(Rule3Smooth, DefaultBorder)

	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				value, ok := g.Cell(Vec3{X: i, Y: j, Z: k})
				assert.True(t, ok)
				xBorder := i == 0 || i == n-1
				yBorder := j == 0 || j == n-1
				zBorder := k == 0 || k == n-1
				onTwoOrMoreFaces := (xBorder && yBorder) || (yBorder && zBorder) || (zBorder && xBorder)
				if onTwoOrMoreFaces {
					assert.False(t, value, "cell (%d,%d,%d)", i, j, k)
				} else {
					assert.True(t, value, "cell (%d,%d,%d)", i, j, k)
				}
			}
		}
	}
}
