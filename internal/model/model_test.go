package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestRollTotal(t *testing.T) {
	if got := MustRoll(3, 4).Total(); got != 7 {
		t.Errorf("Total([3,4]): want 7, got %d", got)
	}
	if got := MustRoll(5).Total(); got != 5 {
		t.Errorf("Total(5): want 5, got %d", got)
	}
}

func TestIsSingleDie(t *testing.T) {
	if !MustRoll(5).IsSingleDie() {
		t.Error("expected 5 to be a single die")
	}
	if MustRoll(2, 6).IsSingleDie() {
		t.Error("expected [2,6] to not be a single die")
	}
	if MustRoll(2, 6).Kind() != KindDR || MustRoll(1).Kind() != KindDr {
		t.Error("unexpected kinds")
	}
}

func TestNewRollValue_Rejects(t *testing.T) {
	cases := [][]int{{}, {0}, {7}, {1, 2, 3}, {3, 9}}
	for _, dice := range cases {
		if _, err := NewRollValue(dice...); !errors.Is(err, ErrInvalidRoll) {
			t.Errorf("NewRollValue(%v): expected ErrInvalidRoll, got %v", dice, err)
		}
	}
}

func TestRollValueJSON(t *testing.T) {
	var evs []Event
	data := `[{"eventType":"roll","playerId":"p:1","rollType":"IFT","rollValue":[3,4]},
	          {"eventType":"roll","playerId":"p:2","rollType":"SA","rollValue":2}]`
	if err := json.Unmarshal([]byte(data), &evs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if evs[0].RollValue.Total() != 7 || evs[0].RollValue.IsSingleDie() {
		t.Errorf("first roll: got %v", evs[0].RollValue)
	}
	if evs[1].RollValue.Total() != 2 || !evs[1].RollValue.IsSingleDie() {
		t.Errorf("second roll: got %v", evs[1].RollValue)
	}

	out, err := json.Marshal(evs[1])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"eventType":"roll","playerId":"p:2","rollType":"SA","rollValue":2}`
	if string(out) != want {
		t.Errorf("marshal:\n want %s\n got  %s", want, out)
	}

	var bad Event
	if err := json.Unmarshal([]byte(`{"eventType":"roll","rollValue":"x"}`), &bad); !errors.Is(err, ErrInvalidRoll) {
		t.Errorf("expected ErrInvalidRoll for non-numeric value, got %v", err)
	}
}

func TestPlayerMapKeepsOrder(t *testing.T) {
	var m PlayerMap
	if err := json.Unmarshal([]byte(`{"p:3":"Chuck","p:1":"Alice","p:2":"Bob"}`), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	ids := m.IDs()
	if len(ids) != 3 || ids[0] != "p:3" || ids[1] != "p:1" || ids[2] != "p:2" {
		t.Errorf("unexpected order: %v", ids)
	}
	if name, ok := m.Name("p:1"); !ok || name != "Alice" {
		t.Errorf("Name(p:1): got %q, %v", name, ok)
	}

	out, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"p:3":"Chuck","p:1":"Alice","p:2":"Bob"}` {
		t.Errorf("marshal changed order: %s", out)
	}
}

func TestKindValues(t *testing.T) {
	if v := KindDR.Values(); len(v) != 11 || v[0] != 2 || v[10] != 12 {
		t.Errorf("DR values: %v", v)
	}
	if v := KindDr.Values(); len(v) != 6 || v[0] != 1 || v[5] != 6 {
		t.Errorf("dr values: %v", v)
	}
}

func TestOrderRollTypes(t *testing.T) {
	got := OrderRollTypes([]string{"TK", "Hero", "IFT", "Hero"})
	if len(got) != len(KnownRollTypes)+1 {
		t.Fatalf("expected %d roll types, got %v", len(KnownRollTypes)+1, got)
	}
	if got[0] != "IFT" || got[len(got)-1] != "Hero" {
		t.Errorf("unexpected order: %v", got)
	}
}
