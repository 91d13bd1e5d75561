// Package cave implements a bitpacked totalistic cellular-automaton kernel
// for carving 2D and 3D cave/volumetric geometry.
//
// A Grid2 or Grid3 stores cells packed 64 to a block (8x8 in 2D,
// 4x4x4 in 3D). Filling a grid and repeatedly calling ApplyRule with a
// Rule2/Rule3 shapes connected cavity/wall structure suitable for
// downstream meshing. The neighbor count that drives each rule step is
// computed with a separable sum over packed byte-planes rather than a
// per-cell 3x3(x3) scan, trading O(cells) scratch memory for O(cells)
// instead of O(cells*27) time.
//
// Mesh extraction, rendering and the random source itself are left to
// the caller; cave only exposes cell read/write, fill and rule-step.
package cave
