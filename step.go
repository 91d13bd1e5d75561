package cave

import "github.com/kelindar/bitmap"

// BorderPolicy controls how ApplyRule treats the cells that sit on a grid's
// outer face.
type BorderPolicy int

const (
	// DefaultBorder treats any neighbor outside the grid as dead. Edge
	// cells are evaluated by the rule exactly like interior cells.
	DefaultBorder BorderPolicy = iota

	// AliveBorder forces every cell on the grid's outer face alive after
	// the step, regardless of what the rule would have computed for it.
	// This produces a closed boundary, useful when the grid represents a
	// bounded volume that should never have an opening at its edge.
	AliveBorder
)

// ApplyRule advances the grid one generation in place: every cell's next
// value is decided by rule.Survive or rule.Birth, keyed on its current
// Moore-8 neighbor count, with out-of-grid neighbors always counted as dead.
// Evaluation reads a snapshot of the grid taken at the start of the call, so
// the order cells are updated in does not affect the result.
func (g *Grid2) ApplyRule(rule Rule2, border BorderPolicy) {
	bc := g.blockCount()
	n := bc.X * bc.Y
	if n == 0 {
		return
	}
	if cap(g.snap) < n {
		g.snap = make([]uint64, n)
	}
	g.snap = g.snap[:n]
	copy(g.snap, g.data)

	var snapDirty bitmap.Bitmap
	snapDirty.Grow(uint32(n - 1))
	for i, b := range g.snap {
		if b != 0 {
			snapDirty.Set(uint32(i))
		}
	}
	old := &Grid2{Size: g.Size, data: g.snap, dirty: snapDirty}
	counts := countNeighborsSeparable2(old)

	survive := rule.Survive.ToArray()
	birth := rule.Birth.ToArray()
	imax, jmax := g.Size.X-1, g.Size.Y-1
	for y := 0; y <= jmax; y++ {
		for x := 0; x <= imax; x++ {
			pos := Vec2{X: x, Y: y}
			if border == AliveBorder && (x == 0 || y == 0 || x == imax || y == jmax) {
				g.SetCell(pos, true)
				continue
			}
			idx, bit, _ := old.resolve2(pos)
			c := counts[idx*64+int(bit)]
			if old.data[idx]&(1<<bit) != 0 {
				if !survive[c] {
					g.SetCell(pos, false)
				}
			} else if birth[c] {
				g.SetCell(pos, true)
			}
		}
	}
	g.resetDirty()
}

// ApplyRule advances the grid one generation in place, using the Moore-26
// neighborhood. See Grid2.ApplyRule for the evaluation semantics.
func (g *Grid3) ApplyRule(rule Rule3, border BorderPolicy) {
	bc := g.blockCount()
	n := bc.X * bc.Y * bc.Z
	if n == 0 {
		return
	}
	if cap(g.snap) < n {
		g.snap = make([]uint64, n)
	}
	g.snap = g.snap[:n]
	copy(g.snap, g.data)

	var snapDirty bitmap.Bitmap
	snapDirty.Grow(uint32(n - 1))
	for i, b := range g.snap {
		if b != 0 {
			snapDirty.Set(uint32(i))
		}
	}
	old := &Grid3{Size: g.Size, data: g.snap, dirty: snapDirty}
	counts := countNeighborsSeparable3(old)

	survive := rule.Survive.ToArray()
	birth := rule.Birth.ToArray()
	imax, jmax, kmax := g.Size.X-1, g.Size.Y-1, g.Size.Z-1
	for z := 0; z <= kmax; z++ {
		for y := 0; y <= jmax; y++ {
			for x := 0; x <= imax; x++ {
				pos := Vec3{X: x, Y: y, Z: z}
				if border == AliveBorder && (x == 0 || y == 0 || z == 0 || x == imax || y == jmax || z == kmax) {
					g.SetCell(pos, true)
					continue
				}
				idx, bit, _ := old.resolve3(pos)
				c := counts[idx*64+int(bit)]
				if old.data[idx]&(1<<bit) != 0 {
					if !survive[c] {
						g.SetCell(pos, false)
					}
				} else if birth[c] {
					g.SetCell(pos, true)
				}
			}
		}
	}
	g.resetDirty()
}
