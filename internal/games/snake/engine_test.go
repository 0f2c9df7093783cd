package snake

import (
	"math/rand"
	"reflect"
	"slices"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func pts(coords ...int) []core.Point {
	out := make([]core.Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		out = append(out, core.Point{X: coords[i], Y: coords[i+1]})
	}
	return out
}

func runningState(body []core.Point, dir Direction, food core.Point) GameState {
	return GameState{
		Snake:           body,
		Food:            food,
		Direction:       dir,
		QueuedDirection: dir,
		TickMs:          130,
		Status:          StatusRunning,
	}
}

func TestNewGame(t *testing.T) {
	e := NewEngine(DefaultRules(), 42)
	g := e.NewGame(7)

	if want := pts(10, 10, 9, 10, 8, 10); !slices.Equal(g.Snake, want) {
		t.Errorf("Initial snake = %v, expected %v", g.Snake, want)
	}
	if g.Direction != DirRight || g.QueuedDirection != DirRight {
		t.Errorf("Initial direction should be right/right, got %v/%v", g.Direction, g.QueuedDirection)
	}
	if g.Status != StatusIdle {
		t.Errorf("Initial status = %q, expected idle", g.Status)
	}
	if g.Score != 0 || g.BestScore != 7 || g.TickMs != 130 {
		t.Errorf("Initial score/best/tick = %d/%d/%d, expected 0/7/130", g.Score, g.BestScore, g.TickMs)
	}
	if !g.Food.InBounds(20) || Occupies(g.Snake, g.Food) {
		t.Errorf("Initial food %v must be on a free board cell", g.Food)
	}
}

func TestNewGameNegativeBest(t *testing.T) {
	g := NewEngine(DefaultRules(), 1).NewGame(-5)
	if g.BestScore != 0 {
		t.Errorf("Negative best should clamp to 0, got %d", g.BestScore)
	}
}

func TestDeterminism(t *testing.T) {
	e1 := NewEngine(DefaultRules(), 12345)
	e2 := NewEngine(DefaultRules(), 12345)
	inputs := rand.New(rand.NewSource(99))

	g1, g2 := e1.NewGame(0), e2.NewGame(0)
	for i := range 500 {
		if inputs.Intn(3) == 0 {
			d := Direction(inputs.Intn(4))
			g1 = e1.HandleDirection(g1, d)
			g2 = e2.HandleDirection(g2, d)
		}
		if g1.Status == StatusGameOver {
			g1, g2 = e1.Start(g1), e2.Start(g2)
		}
		if g1.Status == StatusIdle {
			g1, g2 = e1.Start(g1), e2.Start(g2)
		}
		g1, _ = e1.Step(g1)
		g2, _ = e2.Step(g2)

		if !reflect.DeepEqual(g1, g2) {
			t.Fatalf("Divergence at step %d:\n%+v\n%+v", i, g1, g2)
		}
	}
}

func TestStepGrowth(t *testing.T) {
	e := NewEngine(DefaultRules(), 1)
	prev := runningState(pts(12, 12, 11, 12, 10, 12), DirRight, core.Point{X: 13, Y: 12})

	next, out := e.Step(prev)

	if want := pts(13, 12, 12, 12, 11, 12, 10, 12); !slices.Equal(next.Snake, want) {
		t.Errorf("Snake after growth = %v, expected %v", next.Snake, want)
	}
	if next.Score != 10 {
		t.Errorf("Score = %d, expected 10", next.Score)
	}
	if next.TickMs != 130 {
		t.Errorf("TickMs = %d, expected unchanged 130", next.TickMs)
	}
	if next.Status != StatusRunning {
		t.Errorf("Status = %q, expected running", next.Status)
	}
	if Occupies(next.Snake, next.Food) || !next.Food.InBounds(20) {
		t.Errorf("New food %v must be on a free cell", next.Food)
	}
	if next.BestScore != 10 {
		t.Errorf("BestScore = %d, expected 10", next.BestScore)
	}
	want := Outcome{Changed: true, AteFood: true, BestScoreChanged: true}
	if out != want {
		t.Errorf("Outcome = %+v, expected %+v", out, want)
	}
}

func TestStepPlainMove(t *testing.T) {
	e := NewEngine(DefaultRules(), 1)
	prev := runningState(pts(12, 12, 11, 12, 10, 12), DirRight, core.Point{X: 0, Y: 0})
	prev.QueuedDirection = DirUp

	next, out := e.Step(prev)

	if want := pts(12, 11, 12, 12, 11, 12); !slices.Equal(next.Snake, want) {
		t.Errorf("Snake = %v, expected %v", next.Snake, want)
	}
	if next.Direction != DirUp || next.QueuedDirection != DirUp {
		t.Errorf("Direction should commit to up, got %v/%v", next.Direction, next.QueuedDirection)
	}
	if next.Score != 0 || next.Food != prev.Food {
		t.Error("Non-growth step must keep score and food")
	}
	if out != (Outcome{Changed: true}) {
		t.Errorf("Outcome = %+v, expected only Changed", out)
	}
}

func TestStepDoesNotMutateInput(t *testing.T) {
	e := NewEngine(DefaultRules(), 1)
	prev := runningState(pts(12, 12, 11, 12, 10, 12), DirRight, core.Point{X: 13, Y: 12})
	orig := slices.Clone(prev.Snake)

	next, _ := e.Step(prev)
	next.Snake[1] = core.Point{X: 99, Y: 99}

	if !slices.Equal(prev.Snake, orig) {
		t.Errorf("Input snake was modified: %v, expected %v", prev.Snake, orig)
	}
}

func TestHandleDirection(t *testing.T) {
	e := NewEngine(DefaultRules(), 1)
	base := runningState(pts(12, 12, 11, 12, 10, 12), DirRight, core.Point{X: 0, Y: 0})

	tests := []struct {
		name       string
		status     Status
		queued     Direction
		req        Direction
		wantQueued Direction
		wantStatus Status
	}{
		{"reverse rejected", StatusRunning, DirRight, DirLeft, DirRight, StatusRunning},
		{"perpendicular accepted", StatusRunning, DirRight, DirUp, DirUp, StatusRunning},
		{"same direction", StatusRunning, DirRight, DirRight, DirRight, StatusRunning},
		{"reverse of queued rejected", StatusRunning, DirUp, DirDown, DirUp, StatusRunning},
		{"reverse of current with other queued", StatusRunning, DirUp, DirLeft, DirUp, StatusRunning},
		{"idle starts run", StatusIdle, DirRight, DirDown, DirDown, StatusRunning},
		{"idle reverse rejected", StatusIdle, DirRight, DirLeft, DirRight, StatusIdle},
		{"paused queues", StatusPaused, DirRight, DirUp, DirUp, StatusPaused},
		{"gameover ignored", StatusGameOver, DirRight, DirUp, DirRight, StatusGameOver},
		{"invalid ignored", StatusRunning, DirRight, Direction(9), DirRight, StatusRunning},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prev := base
			prev.Status = tc.status
			prev.QueuedDirection = tc.queued

			next := e.HandleDirection(prev, tc.req)
			if next.QueuedDirection != tc.wantQueued {
				t.Errorf("QueuedDirection = %v, expected %v", next.QueuedDirection, tc.wantQueued)
			}
			if next.Status != tc.wantStatus {
				t.Errorf("Status = %q, expected %q", next.Status, tc.wantStatus)
			}
			if next.Direction != prev.Direction {
				t.Error("HandleDirection must not change the committed direction")
			}
		})
	}
}

func TestWallCollision(t *testing.T) {
	e := NewEngine(DefaultRules(), 1)

	tests := []struct {
		name        string
		score, best int
		wantBest    int
		wantChanged bool
	}{
		{"new best", 40, 30, 40, true},
		{"below best", 10, 30, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prev := runningState(pts(0, 5, 1, 5, 2, 5), DirLeft, core.Point{X: 10, Y: 10})
			prev.Score, prev.BestScore = tc.score, tc.best

			next, out := e.Step(prev)

			if next.Status != StatusGameOver {
				t.Fatalf("Status = %q, expected gameover", next.Status)
			}
			if next.BestScore != tc.wantBest {
				t.Errorf("BestScore = %d, expected %d", next.BestScore, tc.wantBest)
			}
			if !out.GameOver || !out.Changed || out.BestScoreChanged != tc.wantChanged {
				t.Errorf("Outcome = %+v", out)
			}
			if !slices.Equal(next.Snake, prev.Snake) || next.Score != prev.Score || next.TickMs != prev.TickMs {
				t.Error("Fatal step must not move the snake or touch score and tick")
			}
		})
	}
}

func TestWallCollisionEveryEdge(t *testing.T) {
	e := NewEngine(DefaultRules(), 1)
	tests := []struct {
		name string
		body []core.Point
		dir  Direction
	}{
		{"top", pts(5, 0, 5, 1, 5, 2), DirUp},
		{"bottom", pts(5, 19, 5, 18, 5, 17), DirDown},
		{"left", pts(0, 5, 1, 5, 2, 5), DirLeft},
		{"right", pts(19, 5, 18, 5, 17, 5), DirRight},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			next, _ := e.Step(runningState(tc.body, tc.dir, core.Point{X: 10, Y: 10}))
			if next.Status != StatusGameOver {
				t.Errorf("Moving %v off the board should end the game", tc.dir)
			}
		})
	}
}

func TestSelfCollision(t *testing.T) {
	e := NewEngine(DefaultRules(), 1)
	// Head at (5,5) came from the right; turning down hits (5,6), which is not the tail.
	prev := runningState(pts(5, 5, 6, 5, 6, 6, 5, 6, 4, 6), DirLeft, core.Point{X: 0, Y: 0})
	prev = e.HandleDirection(prev, DirDown)

	next, out := e.Step(prev)
	if next.Status != StatusGameOver || !out.GameOver {
		t.Errorf("Expected self collision, got status %q", next.Status)
	}
}

func TestTailVacancy(t *testing.T) {
	e := NewEngine(DefaultRules(), 1)
	// 2x2 loop: moving down puts the head on the current tail (5,6), which leaves this tick.
	prev := runningState(pts(5, 5, 6, 5, 6, 6, 5, 6), DirLeft, core.Point{X: 0, Y: 0})
	prev = e.HandleDirection(prev, DirDown)

	next, out := e.Step(prev)
	if next.Status != StatusRunning || out.GameOver {
		t.Fatalf("Moving into the vacating tail must succeed, got status %q", next.Status)
	}
	if want := pts(5, 6, 5, 5, 6, 5, 6, 6); !slices.Equal(next.Snake, want) {
		t.Errorf("Snake = %v, expected %v", next.Snake, want)
	}
}

func TestGrowingIntoTailIsFatal(t *testing.T) {
	e := NewEngine(DefaultRules(), 1)
	// Same loop, but the tail cell holds food: the tail stays, so this is a collision.
	prev := runningState(pts(5, 5, 6, 5, 6, 6, 5, 6), DirLeft, core.Point{X: 5, Y: 6})
	prev = e.HandleDirection(prev, DirDown)

	next, _ := e.Step(prev)
	if next.Status != StatusGameOver {
		t.Errorf("Growing into the tail should be fatal, got status %q", next.Status)
	}
}

func TestTickInterval(t *testing.T) {
	r := DefaultRules()
	tests := []struct {
		score, want int
	}{
		{0, 130},
		{29, 130},
		{30, 125},
		{60, 120},
		{300, 80},
		{380, 70},
		{390, 65},
		{10000, 65},
	}
	for _, tc := range tests {
		if got := r.TickInterval(tc.score); got != tc.want {
			t.Errorf("TickInterval(%d) = %d, expected %d", tc.score, got, tc.want)
		}
	}
}

func TestStepSpeedRamp(t *testing.T) {
	e := NewEngine(DefaultRules(), 1)
	tests := []struct {
		name        string
		prevScore   int
		wantTick    int
		wantChanged bool
	}{
		{"below first step", 10, 130, false},
		{"first step", 20, 125, true},
		{"mid ramp", 290, 80, true},
		{"reaches floor", 380, 65, true},
		{"stays at floor", 1000, 65, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prev := runningState(pts(12, 12, 11, 12, 10, 12), DirRight, core.Point{X: 13, Y: 12})
			prev.Score = tc.prevScore
			prev.TickMs = e.Rules().TickInterval(tc.prevScore)

			next, out := e.Step(prev)
			if next.TickMs != tc.wantTick {
				t.Errorf("TickMs = %d, expected %d", next.TickMs, tc.wantTick)
			}
			if out.TickChanged != tc.wantChanged {
				t.Errorf("TickChanged = %v, expected %v", out.TickChanged, tc.wantChanged)
			}
		})
	}
}

func TestStepWhenNotRunning(t *testing.T) {
	e := NewEngine(DefaultRules(), 1)
	for _, status := range []Status{StatusIdle, StatusPaused, StatusGameOver} {
		t.Run(string(status), func(t *testing.T) {
			prev := runningState(pts(12, 12, 11, 12, 10, 12), DirRight, core.Point{X: 13, Y: 12})
			prev.Status = status

			next, out := e.Step(prev)
			if !reflect.DeepEqual(next, prev) {
				t.Errorf("Step on %s changed the state", status)
			}
			if out != (Outcome{}) {
				t.Errorf("Outcome = %+v, expected zero", out)
			}
		})
	}
}

func TestGameOverIsTerminal(t *testing.T) {
	e := NewEngine(DefaultRules(), 1)
	over, _ := e.Step(runningState(pts(0, 5, 1, 5, 2, 5), DirLeft, core.Point{X: 10, Y: 10}))

	for range 5 {
		next, out := e.Step(over)
		if !reflect.DeepEqual(next, over) || out.Changed {
			t.Fatal("Step after game over must be a no-op")
		}
	}
	if e.Pause(over).Status != StatusGameOver || e.Resume(over).Status != StatusGameOver {
		t.Error("Pause and resume must not leave game over")
	}
}

func TestStateTransitions(t *testing.T) {
	e := NewEngine(DefaultRules(), 1)
	base := runningState(pts(12, 12, 11, 12, 10, 12), DirRight, core.Point{X: 0, Y: 0})
	base.Score, base.BestScore = 50, 70

	with := func(s Status) GameState {
		g := base
		g.Status = s
		return g
	}

	tests := []struct {
		name string
		op   func(GameState) GameState
		from Status
		want Status
	}{
		{"start idle", e.Start, StatusIdle, StatusRunning},
		{"start paused", e.Start, StatusPaused, StatusRunning},
		{"start running", e.Start, StatusRunning, StatusRunning},
		{"pause running", e.Pause, StatusRunning, StatusPaused},
		{"pause idle", e.Pause, StatusIdle, StatusIdle},
		{"pause paused", e.Pause, StatusPaused, StatusPaused},
		{"resume paused", e.Resume, StatusPaused, StatusRunning},
		{"resume idle", e.Resume, StatusIdle, StatusIdle},
		{"resume running", e.Resume, StatusRunning, StatusRunning},
		{"toggle running", e.TogglePause, StatusRunning, StatusPaused},
		{"toggle paused", e.TogglePause, StatusPaused, StatusRunning},
		{"toggle idle", e.TogglePause, StatusIdle, StatusIdle},
		{"toggle gameover", e.TogglePause, StatusGameOver, StatusGameOver},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prev := with(tc.from)
			next := tc.op(prev)
			if next.Status != tc.want {
				t.Errorf("Status = %q, expected %q", next.Status, tc.want)
			}
			if !slices.Equal(next.Snake, prev.Snake) || next.Score != prev.Score {
				t.Error("Pause/resume transitions must keep the board")
			}
		})
	}
}

func TestStartFromGameOverResets(t *testing.T) {
	e := NewEngine(DefaultRules(), 1)
	over := runningState(pts(3, 3, 4, 3, 5, 3, 6, 3), DirLeft, core.Point{X: 0, Y: 0})
	over.Status = StatusGameOver
	over.Score, over.BestScore, over.TickMs = 120, 120, 110

	next := e.Start(over)
	if next.Status != StatusRunning {
		t.Errorf("Status = %q, expected running", next.Status)
	}
	if next.Score != 0 || next.TickMs != 130 || len(next.Snake) != 3 {
		t.Errorf("Start after game over should reset, got score %d tick %d length %d", next.Score, next.TickMs, len(next.Snake))
	}
	if next.BestScore != 120 {
		t.Errorf("BestScore = %d, expected carried 120", next.BestScore)
	}
}

func TestRestart(t *testing.T) {
	e := NewEngine(DefaultRules(), 1)
	for _, status := range []Status{StatusIdle, StatusRunning, StatusPaused, StatusGameOver} {
		prev := runningState(pts(3, 3, 4, 3, 5, 3, 6, 3), DirLeft, core.Point{X: 0, Y: 0})
		prev.Status, prev.Score, prev.BestScore = status, 40, 90

		next := e.Restart(prev)
		if next.Status != StatusIdle || next.Score != 0 || next.BestScore != 90 {
			t.Errorf("Restart from %s = status %q score %d best %d", status, next.Status, next.Score, next.BestScore)
		}
		if want := pts(10, 10, 9, 10, 8, 10); !slices.Equal(next.Snake, want) {
			t.Errorf("Restart from %s snake = %v", status, next.Snake)
		}
	}
}

func TestFullBoardLeavesFoodOffBoard(t *testing.T) {
	rules := DefaultRules()
	rules.Cells = 4
	e := NewEngine(rules, 1)

	// Serpentine over 15 of 16 cells; the only free cell (0,3) holds the food.
	body := pts(1, 3, 2, 3, 3, 3, 3, 2, 2, 2, 1, 2, 0, 2, 0, 1, 1, 1, 2, 1, 3, 1, 3, 0, 2, 0, 1, 0, 0, 0)
	prev := runningState(body, DirLeft, core.Point{X: 0, Y: 3})

	next, out := e.Step(prev)
	if !out.AteFood || len(next.Snake) != 16 {
		t.Fatalf("Expected growth to fill the board, got length %d", len(next.Snake))
	}
	if next.Food != NoFood {
		t.Errorf("Food on a full board = %v, expected %v", next.Food, NoFood)
	}

	next, out = e.Step(next)
	if !out.GameOver {
		t.Error("Next move from a full board should hit the wall")
	}
}

// TestInvariantsUnderRandomPlay drives the engine with random input and
// checks the properties that must hold in every reachable state.
func TestInvariantsUnderRandomPlay(t *testing.T) {
	e := NewEngine(DefaultRules(), 2024)
	inputs := rand.New(rand.NewSource(7))
	g := e.NewGame(0)
	best := 0

	for i := range 5000 {
		if g.Status != StatusRunning {
			g = e.Start(g)
		}

		if inputs.Intn(2) == 0 {
			before := g
			g = e.HandleDirection(g, Direction(inputs.Intn(4)))
			if g.QueuedDirection != before.QueuedDirection &&
				(g.QueuedDirection == before.Direction.Opposite() || g.QueuedDirection == before.QueuedDirection.Opposite()) {
				t.Fatalf("Step %d: reversal accepted (%v after %v/%v)", i, g.QueuedDirection, before.Direction, before.QueuedDirection)
			}
		}

		prev := g
		var out Outcome
		g, out = e.Step(g)

		if g.BestScore < best {
			t.Fatalf("Step %d: best score decreased from %d to %d", i, best, g.BestScore)
		}
		best = g.BestScore

		if out.GameOver {
			continue
		}
		if g.TickMs > prev.TickMs {
			t.Fatalf("Step %d: tick increased from %d to %d", i, prev.TickMs, g.TickMs)
		}
		if out.AteFood {
			if g.Score != prev.Score+10 || len(g.Snake) != len(prev.Snake)+1 {
				t.Fatalf("Step %d: growth must add 10 points and one segment", i)
			}
			if g.Food != NoFood && Occupies(g.Snake, g.Food) {
				t.Fatalf("Step %d: food spawned on the snake at %v", i, g.Food)
			}
		} else if len(g.Snake) != len(prev.Snake) {
			t.Fatalf("Step %d: length changed without food", i)
		}

		seen := make(map[core.Point]bool, len(g.Snake))
		for j, seg := range g.Snake {
			if seen[seg] {
				t.Fatalf("Step %d: segment %v repeated", i, seg)
			}
			seen[seg] = true
			if j > 0 && seg.Manhattan(g.Snake[j-1]) != 1 {
				t.Fatalf("Step %d: segments %v and %v not adjacent", i, g.Snake[j-1], seg)
			}
		}
	}
}
