package cave

import (
	"iter"
	"strings"

	"github.com/kelindar/bitmap"
)

// blockSize2 is the edge length of an 8x8 bit block.
const blockSize2 = 8

// Grid2 is a 2D bitpacked cellular-automaton grid. Cells are packed 64 to a
// block, 8x8 cells per block, blocks laid out row-major (all block columns
// for block-row 0, then block-row 1, ...).
type Grid2 struct {
	Size Vec2
	data []uint64

	// dirty tracks, per block, whether the block may hold an alive cell. It
	// is a performance hint for the separable X pass, rebuilt by Fill,
	// FillRand and at the end of every ApplyRule: a block that is not marked
	// is read as all zero without being decompressed. A marked block that is
	// all dead (e.g. after SetCell(pos, false)) only misses the fast path;
	// a block holding an alive cell that is not marked is counted as empty.
	dirty bitmap.Bitmap

	// snap is the snapshot buffer reused across ApplyRule calls. counts and
	// counts2 are not used: the neighbor counters allocate their pass
	// buffers on every call.
	counts  []byte
	counts2 []byte
	snap    []uint64
}

// NewGrid2 creates an empty grid of the given size. The block array is not
// allocated until Fill or FillRand is called.
func NewGrid2(size Vec2) *Grid2 {
	return &Grid2{Size: size}
}

func blockCount2(size Vec2) Vec2 {
	return Vec2{X: ceilDiv(size.X, blockSize2), Y: ceilDiv(size.Y, blockSize2)}
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

func (g *Grid2) blockCount() Vec2 {
	return blockCount2(g.Size)
}

// Fill sizes the block array and sets every cell to value. When value is
// true and the grid size is not a multiple of 8, fringe bits beyond the
// grid in the last row/column of blocks are left as 0, preserving the
// invariant that out-of-grid bits never read as alive.
func (g *Grid2) Fill(value bool) {
	bc := g.blockCount()
	n := bc.X * bc.Y
	g.data = make([]uint64, n)
	if value {
		for i := range g.data {
			g.data[i] = ^uint64(0)
		}
		g.clearFringe()
	}
	g.resetDirty()
}

// clearFringe zeroes the bits of the last block row/column that fall
// outside Size, so a full Fill(true) never reports out-of-grid cells as
// alive to the separable counter (which assumes fringe bits are 0).
func (g *Grid2) clearFringe() {
	bc := g.blockCount()
	if bc.X == 0 || bc.Y == 0 {
		return
	}
	for by := 0; by < bc.Y; by++ {
		for bx := 0; bx < bc.X; bx++ {
			idx := by*bc.X + bx
			var mask uint64
			for ly := 0; ly < blockSize2; ly++ {
				y := by*blockSize2 + ly
				for lx := 0; lx < blockSize2; lx++ {
					x := bx*blockSize2 + lx
					if x < g.Size.X && y < g.Size.Y {
						mask |= 1 << uint(ly*blockSize2+lx)
					}
				}
			}
			g.data[idx] &= mask
		}
	}
}

// FillRand sizes the block array and sets each in-bounds cell independently
// alive with probability ratio, drawing one Bernoulli trial per cell from
// src. Identical seed, size and ratio always produce identical contents.
func (g *Grid2) FillRand(ratio float32, src RandSource) {
	bc := g.blockCount()
	n := bc.X * bc.Y
	g.data = make([]uint64, n)
	for by := 0; by < bc.Y; by++ {
		for bx := 0; bx < bc.X; bx++ {
			idx := by*bc.X + bx
			var block uint64
			for ly := 0; ly < blockSize2; ly++ {
				y := by*blockSize2 + ly
				for lx := 0; lx < blockSize2; lx++ {
					x := bx*blockSize2 + lx
					if x < g.Size.X && y < g.Size.Y && bernoulli(ratio, src) {
						block |= 1 << uint(ly*blockSize2+lx)
					}
				}
			}
			g.data[idx] = block
		}
	}
	g.resetDirty()
}

func (g *Grid2) resetDirty() {
	g.dirty = bitmap.Bitmap{}
	if len(g.data) > 0 {
		g.dirty.Grow(uint32(len(g.data) - 1))
	}
	for i, b := range g.data {
		if b != 0 {
			g.dirty.Set(uint32(i))
		}
	}
}

// resolve2 returns the block index and intra-block bit offset for pos, or
// ok=false if pos is outside the grid.
func (g *Grid2) resolve2(pos Vec2) (index int, bit uint, ok bool) {
	if pos.X < 0 || pos.Y < 0 || pos.X >= g.Size.X || pos.Y >= g.Size.Y {
		return 0, 0, false
	}
	bc := g.blockCount()
	bx, by := pos.X/blockSize2, pos.Y/blockSize2
	index = by*bc.X + bx
	lx, ly := pos.X%blockSize2, pos.Y%blockSize2
	bit = uint(ly*blockSize2 + lx)
	return index, bit, true
}

// Cell returns the cell's value and true if pos is in range, or false, false
// otherwise.
func (g *Grid2) Cell(pos Vec2) (value, ok bool) {
	index, bit, ok := g.resolve2(pos)
	if !ok {
		return false, false
	}
	return g.data[index]&(1<<bit) != 0, true
}

// SetCell sets the cell at pos to value. Out-of-range positions are a
// silent no-op.
func (g *Grid2) SetCell(pos Vec2, value bool) {
	index, bit, ok := g.resolve2(pos)
	if !ok {
		return
	}
	if value {
		g.data[index] |= 1 << bit
		g.dirty.Grow(uint32(index))
		g.dirty.Set(uint32(index))
	} else {
		g.data[index] &^= 1 << bit
	}
}

// Cells yields every in-bounds cell position whose value equals alive, in
// row-major order.
func (g *Grid2) Cells(alive bool) iter.Seq[Vec2] {
	return func(yield func(Vec2) bool) {
		for y := 0; y < g.Size.Y; y++ {
			for x := 0; x < g.Size.X; x++ {
				v, _ := g.Cell(Vec2{X: x, Y: y})
				if v != alive {
					continue
				}
				if !yield(Vec2{X: x, Y: y}) {
					return
				}
			}
		}
	}
}

// String renders the grid as ASCII art: '#' for alive, ' ' for dead, one
// line per row.
func (g *Grid2) String() string {
	var sb strings.Builder
	for y := 0; y < g.Size.Y; y++ {
		for x := 0; x < g.Size.X; x++ {
			v, _ := g.Cell(Vec2{X: x, Y: y})
			if v {
				sb.WriteByte('#')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
