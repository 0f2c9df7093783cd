package snake

import (
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Snapshot is the read-only view of a state handed to renderers and network
// clients. It carries a copy of the snake so it can outlive the session lock.
type Snapshot struct {
	Cells           int          `json:"cells"`
	Snake           []core.Point `json:"snake"`
	Food            core.Point   `json:"food"`
	HasFood         bool         `json:"hasFood"`
	Direction       Direction    `json:"direction"`
	QueuedDirection Direction    `json:"queuedDirection"`
	Score           int          `json:"score"`
	BestScore       int          `json:"bestScore"`
	Length          int          `json:"length"`
	TickMs          int          `json:"tickMs"`
	SpeedFactor     string       `json:"speedFactor"`
	Status          Status       `json:"status"`
}

// NewSnapshot builds the view of g under rules r.
func NewSnapshot(g GameState, r Rules) Snapshot {
	return Snapshot{
		Cells:           r.Cells,
		Snake:           append([]core.Point(nil), g.Snake...),
		Food:            g.Food,
		HasFood:         g.Food.InBounds(r.Cells),
		Direction:       g.Direction,
		QueuedDirection: g.QueuedDirection,
		Score:           g.Score,
		BestScore:       g.BestScore,
		Length:          len(g.Snake),
		TickMs:          g.TickMs,
		SpeedFactor:     SpeedFactor(r, g.TickMs),
		Status:          g.Status,
	}
}

// SpeedFactor formats how much faster than the base tick the game runs,
// with one decimal and a trailing ".0" dropped: "1", "1.3", "2".
func SpeedFactor(r Rules, tickMs int) string {
	if tickMs <= 0 {
		return "1"
	}
	s := strconv.FormatFloat(float64(r.BaseTickMs)/float64(tickMs), 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}
