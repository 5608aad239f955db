package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidRoll is returned when a roll value has the wrong number of dice
// or a die face outside 1-6.
var ErrInvalidRoll = errors.New("invalid roll value")

// Kind identifies whether a roll used one die or two.
type Kind string

const (
	KindDR Kind = "DR" // two dice, total 2-12
	KindDr Kind = "dr" // one die, 1-6
)

// Kinds lists the roll kinds in display order.
var Kinds = []Kind{KindDR, KindDr}

// Values returns every possible total for the kind, in ascending order.
func (k Kind) Values() []int {
	lo, hi := 1, 6
	if k == KindDR {
		lo, hi = 2, 12
	}
	vals := make([]int, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		vals = append(vals, v)
	}
	return vals
}

// Plural returns the kind's label pluralised for count n ("DR" / "DR's").
func (k Kind) Plural(n int) string {
	if n == 1 {
		return string(k)
	}
	return string(k) + "'s"
}

// ---- Roll values ----

// RollValue is a single die (dr) or a pair of dice (DR).
type RollValue struct {
	Dice []int
}

// NewRollValue builds a roll value from one or two die faces.
func NewRollValue(dice ...int) (RollValue, error) {
	v := RollValue{Dice: append([]int(nil), dice...)}
	if err := v.Validate(); err != nil {
		return RollValue{}, err
	}
	return v, nil
}

// MustRoll is NewRollValue for literals known to be valid.
func MustRoll(dice ...int) RollValue {
	v, err := NewRollValue(dice...)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks the number of dice and every face.
func (v RollValue) Validate() error {
	if len(v.Dice) != 1 && len(v.Dice) != 2 {
		return fmt.Errorf("%w: %d dice", ErrInvalidRoll, len(v.Dice))
	}
	for _, d := range v.Dice {
		if d < 1 || d > 6 {
			return fmt.Errorf("%w: die face %d", ErrInvalidRoll, d)
		}
	}
	return nil
}

// Total returns the sum of the dice.
func (v RollValue) Total() int {
	total := 0
	for _, d := range v.Dice {
		total += d
	}
	return total
}

// IsSingleDie is true unless the value is a pair.
func (v RollValue) IsSingleDie() bool {
	return len(v.Dice) != 2
}

// Kind returns KindDr for a single die, KindDR for a pair.
func (v RollValue) Kind() Kind {
	if v.IsSingleDie() {
		return KindDr
	}
	return KindDR
}

func (v RollValue) String() string {
	parts := make([]string, len(v.Dice))
	for i, d := range v.Dice {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}

// MarshalJSON writes a single die as a number and a pair as a two-element array.
func (v RollValue) MarshalJSON() ([]byte, error) {
	if len(v.Dice) == 1 {
		return json.Marshal(v.Dice[0])
	}
	return json.Marshal(v.Dice)
}

// UnmarshalJSON accepts a number or an array of numbers. Ranges are checked
// by Validate, not here.
func (v *RollValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var dice []int
		if err := json.Unmarshal(data, &dice); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidRoll, data)
		}
		v.Dice = dice
		return nil
	}
	var d int
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRoll, data)
	}
	v.Dice = []int{d}
	return nil
}

// ---- Events ----

// EventType tags the Event variant.
type EventType string

const (
	EventRoll        EventType = "roll"
	EventLogFile     EventType = "logFile"
	EventTurnTrack   EventType = "turnTrack"
	EventCustomLabel EventType = "customLabel"
)

// Event is one entry in an analysis event stream. Which fields are set
// depends on Type.
type Event struct {
	Type EventType `json:"eventType"`

	// roll
	PlayerID  string    `json:"playerId,omitempty"`
	RollType  string    `json:"rollType,omitempty"`
	RollValue RollValue `json:"rollValue,omitzero"`

	// logFile
	Filename string `json:"filename,omitempty"`

	// turnTrack
	Side   string `json:"side,omitempty"`
	TurnNo string `json:"turnNo,omitempty"`
	Phase  string `json:"phase,omitempty"`

	// customLabel
	Caption string `json:"caption,omitempty"`
}

// RollEvent builds a roll event.
func RollEvent(playerID, rollType string, v RollValue) Event {
	return Event{Type: EventRoll, PlayerID: playerID, RollType: rollType, RollValue: v}
}

// LogFileEvent builds the marker emitted at the start of each source.
func LogFileEvent(filename string) Event {
	return Event{Type: EventLogFile, Filename: filename}
}

// TurnTrackEvent builds a turn-track event.
func TurnTrackEvent(side, turnNo, phase string) Event {
	return Event{Type: EventTurnTrack, Side: side, TurnNo: turnNo, Phase: phase}
}

// CustomLabelEvent builds a custom-label event.
func CustomLabelEvent(caption string) Event {
	return Event{Type: EventCustomLabel, Caption: caption}
}

// PhaseLabel is the chart label for a turn-track event.
func (e Event) PhaseLabel() string {
	return e.Side + " " + e.TurnNo + " " + e.Phase
}

// ---- Sources ----

// Scenario holds the scenario details found in a log file, if any.
type Scenario struct {
	ScenarioName string `json:"scenarioName,omitempty"`
	ScenarioID   string `json:"scenarioId,omitempty"`
}

// LogSource is one analysed log file.
type LogSource struct {
	Filename string   `json:"filename"`
	Scenario Scenario `json:"scenario"`
	Events   []Event  `json:"events"`
}

// Report is the structured output of the log-file analyser: every source plus
// a player map covering all of them.
type Report struct {
	Players  PlayerMap   `json:"players"`
	LogFiles []LogSource `json:"logFiles"`
}

// RollCount returns the number of roll events across all sources.
func (r *Report) RollCount() int {
	n := 0
	for _, lf := range r.LogFiles {
		for _, ev := range lf.Events {
			if ev.Type == EventRoll {
				n++
			}
		}
	}
	return n
}
