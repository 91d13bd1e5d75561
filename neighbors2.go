package cave

import "github.com/kelindar/bitmap"

// countNeighborsSeparable2 computes, for every cell of g, the count of alive
// cells in its 2D Moore-8 neighborhood, using the separable sum identity of
// spec.md section 4.6 derived down to 2D: the 3x3 box sum (including self)
// factors as an X pass followed by a Y pass over byte-wide planes, each
// block's fringe stitched in from its immediate neighbor blocks, followed by
// a self-subtraction. Boundary default is always false: an out-of-grid
// neighbor contributes zero.
//
// The result is laid out exactly like g.data: one byte per cell, 64 bytes
// per block, blocks in the same row-major order, so a cell's count lives at
// counts[blockIndex*64+bit] for the same (blockIndex, bit) resolve2 returns.
func countNeighborsSeparable2(g *Grid2) []byte {
	bc := g.blockCount()
	capacity := bc.X * bc.Y * 64
	if capacity == 0 {
		return nil
	}
	pass1 := make([]byte, capacity)
	pass2 := make([]byte, capacity)
	accX2(g.data, pass1, bc, g.dirty)
	accY2(pass1, pass2, bc)

	ic := 0
	for _, b := range g.data {
		self := decompressBlockBytes(b)
		for i := 0; i < 64; i++ {
			pass2[ic+i] -= self[i]
		}
		ic += 64
	}
	return pass2
}

// accX2 sums each cell with its x-1 and x+1 neighbor (including itself once)
// into dst, one block at a time. Each decompressed word is one full row of
// 8 cells, so a neighbor in x is simply an 8-bit byte shift within the word;
// shifting naturally zero-fills the block's own left/right edge byte, which
// is then corrected by the cross-block fixup below.
func accX2(src []uint64, dst []byte, bc Vec2, dirty bitmap.Bitmap) {
	ic := 0
	for ib := range src {
		bx := ib % bc.X
		words := decompressBlockIfDirty(src, ib, dirty)

		var acc [8]uint64
		for i, w := range words {
			xMinus := w << 8 // byte k <- original byte k-1, left edge zero-filled
			xPlus := w >> 8  // byte k <- original byte k+1, right edge zero-filled
			acc[i] = w + xMinus + xPlus
		}

		if bx > 0 {
			left := decompressBlockIfDirty(src, ib-1, dirty)
			for i := range acc {
				acc[i] += left[i] >> 56 // left block's rightmost byte -> our byte 0
			}
		}
		if bx+1 < bc.X {
			right := decompressBlockIfDirty(src, ib+1, dirty)
			for i := range acc {
				acc[i] += (right[i] & 0xFF) << 56 // right block's leftmost byte -> our byte 7
			}
		}

		copy(dst[ic:ic+64], wordsToBytes(acc)[:])
		ic += 64
	}
}

// decompressBlockIfDirty decompresses block index ib of src, short-circuiting
// to an all-zero block when the dirty tracker does not mark it. A marked
// block that is all dead decompresses to all zero anyway, so over-marking
// never changes the result; a block with an alive cell that is not marked
// has its cells read as dead.
func decompressBlockIfDirty(src []uint64, ib int, dirty bitmap.Bitmap) [8]uint64 {
	if !dirty.Contains(uint32(ib)) {
		return [8]uint64{}
	}
	return decompressBlock(src[ib])
}

// accY2 sums each cell with its y-1 and y+1 neighbor, consuming the X-pass
// byte buffer. A decompressed word is an entire row, so a neighbor in y is
// simply the adjacent word index, stitched across block rows using the
// neighbor block's matching edge row.
func accY2(src, dst []byte, bc Vec2) {
	ic := 0
	for ib := 0; ib < len(src)/64; ib++ {
		by := ib / bc.X
		words := bytesToWords(src[ib*64 : ib*64+64])

		var acc [8]uint64
		for i := range acc {
			acc[i] = words[i]
			if i > 0 {
				acc[i] += words[i-1]
			}
			if i < 7 {
				acc[i] += words[i+1]
			}
		}

		if by > 0 {
			below := bytesToWords(src[(ib-bc.X)*64 : (ib-bc.X)*64+64])
			acc[0] += below[7]
		}
		if by+1 < bc.Y {
			above := bytesToWords(src[(ib+bc.X)*64 : (ib+bc.X)*64+64])
			acc[7] += above[0]
		}

		copy(dst[ic:ic+64], wordsToBytes(acc)[:])
		ic += 64
	}
}
