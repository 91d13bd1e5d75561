package cave

import (
	"iter"
	"strings"

	"github.com/kelindar/bitmap"
)

// blockSize3 is the edge length of a 4x4x4 bit block.
const blockSize3 = 4

// Grid3 is a 3D bitpacked cellular-automaton grid. Cells are packed 64 to a
// block, 4x4x4 cells per block, blocks laid out X-major, then Y, then Z.
type Grid3 struct {
	Size Vec3
	data []uint64

	// dirty is the same block-level "known all zero" performance hint as
	// Grid2.dirty; see its doc comment.
	dirty bitmap.Bitmap

	counts  []byte
	counts2 []byte
	snap    []uint64
}

// NewGrid3 creates an empty grid of the given size. The block array is not
// allocated until Fill or FillRand is called.
func NewGrid3(size Vec3) *Grid3 {
	return &Grid3{Size: size}
}

func blockCount3(size Vec3) Vec3 {
	return Vec3{
		X: ceilDiv(size.X, blockSize3),
		Y: ceilDiv(size.Y, blockSize3),
		Z: ceilDiv(size.Z, blockSize3),
	}
}

func (g *Grid3) blockCount() Vec3 {
	return blockCount3(g.Size)
}

// Fill sizes the block array and sets every cell to value. When value is
// true and the grid size is not a multiple of 4 along any axis, fringe bits
// beyond the grid are left as 0.
func (g *Grid3) Fill(value bool) {
	bc := g.blockCount()
	n := bc.X * bc.Y * bc.Z
	g.data = make([]uint64, n)
	if value {
		for i := range g.data {
			g.data[i] = ^uint64(0)
		}
		g.clearFringe()
	}
	g.resetDirty()
}

func (g *Grid3) clearFringe() {
	bc := g.blockCount()
	if bc.X == 0 || bc.Y == 0 || bc.Z == 0 {
		return
	}
	for bz := 0; bz < bc.Z; bz++ {
		for by := 0; by < bc.Y; by++ {
			for bx := 0; bx < bc.X; bx++ {
				idx := (bz*bc.Y+by)*bc.X + bx
				var mask uint64
				for lz := 0; lz < blockSize3; lz++ {
					z := bz*blockSize3 + lz
					if z >= g.Size.Z {
						continue
					}
					for ly := 0; ly < blockSize3; ly++ {
						y := by*blockSize3 + ly
						if y >= g.Size.Y {
							continue
						}
						for lx := 0; lx < blockSize3; lx++ {
							x := bx*blockSize3 + lx
							if x >= g.Size.X {
								continue
							}
							mask |= 1 << uint(lx|ly<<2|lz<<4)
						}
					}
				}
				g.data[idx] &= mask
			}
		}
	}
}

// FillRand sizes the block array and sets each in-bounds cell independently
// alive with probability ratio, drawing one Bernoulli trial per cell from
// src. Identical seed, size and ratio always produce identical contents.
func (g *Grid3) FillRand(ratio float32, src RandSource) {
	bc := g.blockCount()
	n := bc.X * bc.Y * bc.Z
	g.data = make([]uint64, n)
	for bz := 0; bz < bc.Z; bz++ {
		for by := 0; by < bc.Y; by++ {
			for bx := 0; bx < bc.X; bx++ {
				idx := (bz*bc.Y+by)*bc.X + bx
				var block uint64
				for lz := 0; lz < blockSize3; lz++ {
					z := bz*blockSize3 + lz
					for ly := 0; ly < blockSize3; ly++ {
						y := by*blockSize3 + ly
						for lx := 0; lx < blockSize3; lx++ {
							x := bx*blockSize3 + lx
							if x < g.Size.X && y < g.Size.Y && z < g.Size.Z && bernoulli(ratio, src) {
								block |= 1 << uint(lx|ly<<2|lz<<4)
							}
						}
					}
				}
				g.data[idx] = block
			}
		}
	}
	g.resetDirty()
}

func (g *Grid3) resetDirty() {
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

// resolve3 returns the block index and intra-block bit offset for pos, or
// ok=false if pos is outside the grid.
func (g *Grid3) resolve3(pos Vec3) (index int, bit uint, ok bool) {
	if pos.X < 0 || pos.Y < 0 || pos.Z < 0 ||
		pos.X >= g.Size.X || pos.Y >= g.Size.Y || pos.Z >= g.Size.Z {
		return 0, 0, false
	}
	bc := g.blockCount()
	bx, by, bz := pos.X/blockSize3, pos.Y/blockSize3, pos.Z/blockSize3
	index = (bz*bc.Y+by)*bc.X + bx
	lx, ly, lz := pos.X%blockSize3, pos.Y%blockSize3, pos.Z%blockSize3
	bit = uint(lx | ly<<2 | lz<<4)
	return index, bit, true
}

// Cell returns the cell's value and true if pos is in range, or false, false
// otherwise.
func (g *Grid3) Cell(pos Vec3) (value, ok bool) {
	index, bit, ok := g.resolve3(pos)
	if !ok {
		return false, false
	}
	return g.data[index]&(1<<bit) != 0, true
}

// SetCell sets the cell at pos to value. Out-of-range positions are a
// silent no-op.
func (g *Grid3) SetCell(pos Vec3, value bool) {
	index, bit, ok := g.resolve3(pos)
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
// row-major (X fastest, then Y, then Z) order.
func (g *Grid3) Cells(alive bool) iter.Seq[Vec3] {
	return func(yield func(Vec3) bool) {
		for z := 0; z < g.Size.Z; z++ {
			for y := 0; y < g.Size.Y; y++ {
				for x := 0; x < g.Size.X; x++ {
					v, _ := g.Cell(Vec3{X: x, Y: y, Z: z})
					if v != alive {
						continue
					}
					if !yield(Vec3{X: x, Y: y, Z: z}) {
						return
					}
				}
			}
		}
	}
}

// String renders the grid as ASCII art: '#' for alive, ' ' for dead, one
// line per row, each Z slab followed by one blank line (the last included).
func (g *Grid3) String() string {
	var sb strings.Builder
	for z := 0; z < g.Size.Z; z++ {
		for y := 0; y < g.Size.Y; y++ {
			for x := 0; x < g.Size.X; x++ {
				v, _ := g.Cell(Vec3{X: x, Y: y, Z: z})
				if v {
					sb.WriteByte('#')
				} else {
					sb.WriteByte(' ')
				}
			}
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
