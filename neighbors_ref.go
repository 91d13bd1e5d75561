package cave

// countNeighborsRef2 is the O(cells*8) specification oracle for the 2D
// Moore neighborhood: for each in-bounds cell it directly scans its 8
// neighbors, treating an out-of-grid neighbor as default.
func countNeighborsRef2(g *Grid2, defaultValue bool) []uint8 {
	counts := make([]uint8, g.Size.X*g.Size.Y)
	for y := 0; y < g.Size.Y; y++ {
		for x := 0; x < g.Size.X; x++ {
			counts[y*g.Size.X+x] = countNeighborsRef2At(g, Vec2{X: x, Y: y}, defaultValue)
		}
	}
	return counts
}

func countNeighborsRef2At(g *Grid2, pos Vec2, defaultValue bool) uint8 {
	var count uint8
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			p := Vec2{X: pos.X + dx, Y: pos.Y + dy}
			v, ok := g.Cell(p)
			if !ok {
				v = defaultValue
			}
			if v {
				count++
			}
		}
	}
	return count
}

// countNeighborsRef3 is the O(cells*26) specification oracle for the 3D
// Moore neighborhood.
func countNeighborsRef3(g *Grid3, defaultValue bool) []uint8 {
	counts := make([]uint8, g.Size.X*g.Size.Y*g.Size.Z)
	for z := 0; z < g.Size.Z; z++ {
		for y := 0; y < g.Size.Y; y++ {
			for x := 0; x < g.Size.X; x++ {
				idx := (z*g.Size.Y+y)*g.Size.X + x
				counts[idx] = countNeighborsRef3At(g, Vec3{X: x, Y: y, Z: z}, defaultValue)
			}
		}
	}
	return counts
}

func countNeighborsRef3At(g *Grid3, pos Vec3, defaultValue bool) uint8 {
	var count uint8
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				p := Vec3{X: pos.X + dx, Y: pos.Y + dy, Z: pos.Z + dz}
				v, ok := g.Cell(p)
				if !ok {
					v = defaultValue
				}
				if v {
					count++
				}
			}
		}
	}
	return count
}
