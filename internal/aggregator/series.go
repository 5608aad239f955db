package aggregator

import (
	"fmt"

	"github.com/pacman-ghost/vasl-templates-sub000/internal/model"
)

// Verdict is a roll hook's decision about a roll event.
type Verdict int

const (
	// Include buffers and counts the roll.
	Include Verdict = iota
	// Skip leaves the roll out of the series entirely.
	Skip
)

// Point is one emitted moving-average value.
type Point struct {
	PlayerID      string
	RollType      string
	RollValue     model.RollValue
	MovingAverage float64
	RollNo        int // the player's included-roll count at this point
}

// Visitor receives each event of the stream, in order. OnEmit is called for
// every point just before it is appended to the series.
type Visitor interface {
	OnRoll(ev model.Event) Verdict
	OnTurnTrack(ev model.Event)
	OnCustomLabel(ev model.Event)
	OnLogFile(ev model.Event)
	OnEmit(p Point)
}

// Hooks implements Visitor with optional closures. A nil Roll includes
// every roll; other nil hooks do nothing.
type Hooks struct {
	Roll        func(ev model.Event) Verdict
	TurnTrack   func(ev model.Event)
	CustomLabel func(ev model.Event)
	LogFile     func(ev model.Event)
	Emit        func(p Point)
}

func (h Hooks) OnRoll(ev model.Event) Verdict {
	if h.Roll == nil {
		return Include
	}
	return h.Roll(ev)
}

func (h Hooks) OnTurnTrack(ev model.Event) {
	if h.TurnTrack != nil {
		h.TurnTrack(ev)
	}
}

func (h Hooks) OnCustomLabel(ev model.Event) {
	if h.CustomLabel != nil {
		h.CustomLabel(ev)
	}
}

func (h Hooks) OnLogFile(ev model.Event) {
	if h.LogFile != nil {
		h.LogFile(ev)
	}
}

func (h Hooks) OnEmit(p Point) {
	if h.Emit != nil {
		h.Emit(p)
	}
}

// Series is the result of ExtractEvents.
type Series struct {
	Points     []Point
	NRolls     map[string]int // included rolls per roster player
	WindowSize int
}

// MaxRolls returns the largest per-player included-roll count.
func (s Series) MaxRolls() int {
	most := 0
	for _, n := range s.NRolls {
		if n > most {
			most = n
		}
	}
	return most
}

// PlayerPoints returns the points for one player, in order.
func (s Series) PlayerPoints(id string) []Point {
	var out []Point
	for _, p := range s.Points {
		if p.PlayerID == id {
			out = append(out, p)
		}
	}
	return out
}

// ExtractEvents walks the event stream, feeding each roll the visitor
// includes into its player's window, and emits a point each time a window
// is full. With windowSize 1 the points are the raw roll totals. Rolls by
// players not on the roster are offered to the visitor but never buffered.
//
// windowSize must be at least 1.
func ExtractEvents(src EventSource, windowSize int, v Visitor) Series {
	if windowSize < 1 {
		panic(fmt.Sprintf("aggregator: window size must be at least 1, got %d", windowSize))
	}
	if v == nil {
		v = Hooks{}
	}

	windows := make(map[string]*window)
	out := Series{NRolls: make(map[string]int), WindowSize: windowSize}
	for _, id := range src.PlayerIDs() {
		windows[id] = newWindow(windowSize)
		out.NRolls[id] = 0
	}

	for _, ev := range src.Events() {
		switch ev.Type {
		case model.EventTurnTrack:
			v.OnTurnTrack(ev)
		case model.EventCustomLabel:
			v.OnCustomLabel(ev)
		case model.EventLogFile:
			v.OnLogFile(ev)
		case model.EventRoll:
			if v.OnRoll(ev) == Skip {
				continue
			}
			w, ok := windows[ev.PlayerID]
			if !ok {
				continue
			}
			avg, ready := w.push(ev.RollValue)
			out.NRolls[ev.PlayerID] = w.count
			if !ready {
				continue
			}
			p := Point{
				PlayerID:      ev.PlayerID,
				RollType:      ev.RollType,
				RollValue:     ev.RollValue,
				MovingAverage: avg,
				RollNo:        w.count,
			}
			v.OnEmit(p)
			out.Points = append(out.Points, p)
		}
	}
	return out
}
