package main

import (
	"fmt"
	"time"

	"github.com/kelindar/bench"
	"github.com/kelindar/cave"
)

var sizes2 = []cave.Vec2{{X: 32, Y: 32}, {X: 128, Y: 128}, {X: 512, Y: 512}}
var sizes3 = []cave.Vec3{{X: 16, Y: 16, Z: 16}, {X: 32, Y: 32, Z: 32}, {X: 64, Y: 64, Z: 64}}

func main() {
	bench.Run(func(b *bench.B) {
		runApplyRule2(b)
		runApplyRule3(b)
	}, bench.WithDuration(10*time.Millisecond), bench.WithSamples(100))
}

func runApplyRule2(b *bench.B) {
	for _, size := range sizes2 {
		g := cave.NewGrid2(size)
		g.FillRand(0.4, cave.NewHashSource(1))
		name := fmt.Sprintf("applyrule2 %s", formatSize2(size))
		b.Run(name, func(i int) {
			g.ApplyRule(cave.Rule2Smooth, cave.DefaultBorder)
		})
	}
}

func runApplyRule3(b *bench.B) {
	for _, size := range sizes3 {
		g := cave.NewGrid3(size)
		g.FillRand(0.4, cave.NewHashSource(1))
		name := fmt.Sprintf("applyrule3 %s", formatSize3(size))
		b.Run(name, func(i int) {
			g.ApplyRule(cave.Rule3Smooth, cave.DefaultBorder)
		})
	}
}

func formatSize2(size cave.Vec2) string {
	return fmt.Sprintf("%dx%d", size.X, size.Y)
}

func formatSize3(size cave.Vec3) string {
	return fmt.Sprintf("%dx%dx%d", size.X, size.Y, size.Z)
}
