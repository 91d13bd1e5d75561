package cave

import "github.com/kelindar/bitmap"

// countNeighborsSeparable3 computes, for every cell of g, the count of alive
// cells in its 3D Moore-26 neighborhood via the separable sum identity:
// three axial passes (X, then Y, then Z) over byte-wide decompressed planes,
// each stitching in its block's immediate neighbor along that axis, followed
// by a self-subtraction to turn the 27-term box sum into a 26-term neighbor
// count. Boundary default is always false.
func countNeighborsSeparable3(g *Grid3) []byte {
	bc := g.blockCount()
	capacity := bc.X * bc.Y * bc.Z * 64
	if capacity == 0 {
		return nil
	}
	pass1 := make([]byte, capacity)
	pass2 := make([]byte, capacity)
	accX3(g.data, pass1, bc, g.dirty)
	accY3(pass1, pass2, bc)
	accZ3(pass2, pass1, bc)

	ic := 0
	for _, b := range g.data {
		self := decompressBlockBytes(b)
		for i := 0; i < 64; i++ {
			pass1[ic+i] -= self[i]
		}
		ic += 64
	}
	return pass1
}

// acc3Indices turns a flat block index into (bx, by, bz) within bc. Block
// storage is X-major, then Y, then Z, matching resolve3.
func acc3Indices(ib int, bc Vec3) (bx, by, bz int) {
	bx = ib % bc.X
	rest := ib / bc.X
	by = rest % bc.Y
	bz = rest / bc.Y
	return bx, by, bz
}

// accX3 sums each cell with its x-1 and x+1 neighbor. Within a decompressed
// word, 2 cells share each nibble-pair of x, so the x-neighbor shift is 8
// bits, masked to avoid letting bits cross into the next logical x-row
// packed in the same word.
func accX3(src []uint64, dst []byte, bc Vec3, dirty bitmap.Bitmap) {
	ic := 0
	for ib := range src {
		bx, _, _ := acc3Indices(ib, bc)
		b := decompressBlockIfDirty(src, ib, dirty)

		acc := b
		for i := 0; i < 8; i++ {
			xm := (b[i] >> 8) & 0x00FF_FFFF_00FF_FFFF
			xp := (b[i] << 8) & 0xFFFF_FF00_FFFF_FF00
			acc[i] += xm + xp
		}

		if bx > 0 {
			xm := decompressBlockIfDirty(src, ib-1, dirty)
			for i := 0; i < 8; i++ {
				acc[i] += (xm[i] >> 24) & 0x0000_00FF_0000_00FF
			}
		}
		if bx+1 < bc.X {
			xp := decompressBlockIfDirty(src, ib+1, dirty)
			for i := 0; i < 8; i++ {
				acc[i] += (xp[i] << 24) & 0xFF00_0000_FF00_0000
			}
		}

		copy(dst[ic:ic+64], wordsToBytes(acc)[:])
		ic += 64
	}
}

// accY3 sums each cell with its y-1 and y+1 neighbor, consuming accX3's byte
// buffer.
func accY3(src, dst []byte, bc Vec3) {
	dy := bc.X
	ic := 0
	for ib := 0; ib < len(src)/64; ib++ {
		_, by, _ := acc3Indices(ib, bc)
		b := bytesToWords(src[ib*64 : ib*64+64])

		acc := b
		for i := 0; i < 8; i++ {
			ym := b[i] >> 32
			if i&0x1 == 0 {
				ym |= b[i+1] << 32
			}
			yp := b[i] << 32
			if i&0x1 != 0 {
				yp |= b[i-1] >> 32
			}
			acc[i] += ym + yp
		}

		if by > 0 {
			ym := bytesToWords(src[(ib-dy)*64 : (ib-dy)*64+64])
			for i := 0; i < 4; i++ {
				acc[2*i] += ym[2*i+1] >> 32
			}
		}
		if by+1 < bc.Y {
			yp := bytesToWords(src[(ib+dy)*64 : (ib+dy)*64+64])
			for i := 0; i < 4; i++ {
				acc[2*i+1] += yp[2*i] << 32
			}
		}

		copy(dst[ic:ic+64], wordsToBytes(acc)[:])
		ic += 64
	}
}

// accZ3 sums each cell with its z-1 and z+1 neighbor, consuming accY3's byte
// buffer. A Z face is 2 whole words (words 0-1 or 6-7 of the block), so the
// cross-block fixup moves entire words rather than shifting within one.
func accZ3(src, dst []byte, bc Vec3) {
	dz := bc.X * bc.Y
	ic := 0
	for ib := 0; ib < len(src)/64; ib++ {
		_, _, bz := acc3Indices(ib, bc)
		b := bytesToWords(src[ib*64 : ib*64+64])

		acc := b
		for i := 2; i < 8; i++ {
			acc[i] += b[i-2]
		}
		for i := 0; i < 6; i++ {
			acc[i] += b[i+2]
		}

		if bz > 0 {
			zm := bytesToWords(src[(ib-dz)*64 : (ib-dz)*64+64])
			acc[0] += zm[6]
			acc[1] += zm[7]
		}
		if bz+1 < bc.Z {
			zp := bytesToWords(src[(ib+dz)*64 : (ib+dz)*64+64])
			acc[6] += zp[0]
			acc[7] += zp[1]
		}

		copy(dst[ic:ic+64], wordsToBytes(acc)[:])
		ic += 64
	}
}

// vonNeumannCount3 computes the 3D von Neumann 6-neighbor count (the
// face-adjacent neighbors only, excluding edges and corners) for every cell
// of g, by shifting the packed bits directly rather than decompressing to
// byte lanes. Kept unexported: it is not part of the public rule model
// (Rule3 is defined over the Moore-26 count), but exercised by tests that
// check it against the brute-force oracle.
func vonNeumannCount3(g *Grid3) []byte {
	bc := g.blockCount()
	capacity := bc.X * bc.Y * bc.Z * 64
	if capacity == 0 {
		return nil
	}
	dy := bc.X
	dz := bc.X * bc.Y
	counts := make([]byte, capacity)

	ic := 0
	for ib, b := range g.data {
		bx, by, bz := acc3Indices(ib, bc)

		bxm := (b >> 1) & 0x7777_7777_7777_7777
		bxp := (b << 1) & 0xEEEE_EEEE_EEEE_EEEE
		if bx+1 < bc.X {
			bxm |= (g.data[ib+1] & 0x1111_1111_1111_1111) << 3
		}
		if bx > 0 {
			bxp |= (g.data[ib-1] & 0x8888_8888_8888_8888) >> 3
		}

		bym := (b >> 4) & 0x0FFF_0FFF_0FFF_0FFF
		byp := (b << 4) & 0xFFF0_FFF0_FFF0_FFF0
		if by+1 < bc.Y {
			bym |= (g.data[ib+dy] & 0x000F_000F_000F_000F) << 12
		}
		if by > 0 {
			byp |= (g.data[ib-dy] & 0xF000_F000_F000_F000) >> 12
		}

		bzm := (b >> 16) & 0x0000_FFFF_FFFF_FFFF
		bzp := (b << 16) & 0xFFFF_FFFF_FFFF_0000
		if bz+1 < bc.Z {
			bzm |= (g.data[ib+dz] & 0x0000_0000_0000_FFFF) << 48
		}
		if bz > 0 {
			bzp |= (g.data[ib-dz] & 0xFFFF_0000_0000_0000) >> 48
		}

		var acc [8]uint64
		for i := 0; i < 8; i++ {
			shift := uint(i) * 8
			lane := func(v uint64) uint64 { return bitToByte((v >> shift) & 0xFF) }
			acc[i] = lane(bxm) + lane(bxp) + lane(bym) + lane(byp) + lane(bzm) + lane(bzp)
		}

		bytes := wordsToBytes(acc)
		copy(counts[ic:ic+64], bytes[:])
		ic += 64
	}
	return counts
}
