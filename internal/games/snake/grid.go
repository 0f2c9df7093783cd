package snake

import (
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// NoFood is the food position used when the board has no free cell left.
// It is off-board, so the head can never reach it.
var NoFood = core.Point{X: -1, Y: -1}

// Occupies reports whether any segment of body sits on p.
func Occupies(body []core.Point, p core.Point) bool {
	for _, seg := range body {
		if seg == p {
			return true
		}
	}
	return false
}

// FreeCells lists every cell of a cells×cells board not covered by body,
// in row-major order.
func FreeCells(body []core.Point, cells int) []core.Point {
	taken := make(map[core.Point]struct{}, len(body))
	for _, seg := range body {
		taken[seg] = struct{}{}
	}

	free := make([]core.Point, 0, max(cells*cells-len(taken), 0))
	for y := 0; y < cells; y++ {
		for x := 0; x < cells; x++ {
			p := core.Point{X: x, Y: y}
			if _, ok := taken[p]; !ok {
				free = append(free, p)
			}
		}
	}
	return free
}

// SpawnFood picks a uniformly random cell not occupied by body.
// Rejection sampling is tried first since the snake is usually small relative
// to the board; after cells² misses it falls back to enumerating free cells,
// which always terminates. Returns (NoFood, false) when the board is full.
func SpawnFood(body []core.Point, cells int, rng *rand.Rand) (core.Point, bool) {
	if cells <= 0 {
		return NoFood, false
	}

	for range cells * cells {
		p := core.Point{X: rng.Intn(cells), Y: rng.Intn(cells)}
		if !Occupies(body, p) {
			return p, true
		}
	}

	free := FreeCells(body, cells)
	if len(free) == 0 {
		return NoFood, false
	}
	return free[rng.Intn(len(free))], true
}
