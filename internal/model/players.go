package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PlayerMap maps player IDs to display names and remembers insertion order.
// The analyser's JSON object order is significant (it drives roster order), so
// it is decoded token by token rather than into a Go map.
type PlayerMap struct {
	ids   []string
	names map[string]string
}

// NewPlayerMap builds a map from alternating id, name pairs.
func NewPlayerMap(idNames ...string) PlayerMap {
	var m PlayerMap
	for i := 0; i+1 < len(idNames); i += 2 {
		m.Set(idNames[i], idNames[i+1])
	}
	return m
}

// Set adds or renames a player. A new ID goes to the end of the order.
func (m *PlayerMap) Set(id, name string) {
	if m.names == nil {
		m.names = make(map[string]string)
	}
	if _, ok := m.names[id]; !ok {
		m.ids = append(m.ids, id)
	}
	m.names[id] = name
}

// Name returns the player's name and whether the ID is known.
func (m PlayerMap) Name(id string) (string, bool) {
	name, ok := m.names[id]
	return name, ok
}

// IDs returns the player IDs in insertion order.
func (m PlayerMap) IDs() []string {
	return append([]string(nil), m.ids...)
}

// Len returns the number of players.
func (m PlayerMap) Len() int {
	return len(m.ids)
}

// MarshalJSON writes the players as a JSON object in insertion order.
func (m PlayerMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range m.ids {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m.names[id])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object of id -> name, keeping key order.
func (m *PlayerMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*m = PlayerMap{}
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("players: expected object, got %v", tok)
	}
	var out PlayerMap
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		id, ok := tok.(string)
		if !ok {
			return fmt.Errorf("players: unexpected key %v", tok)
		}
		var name string
		if err := dec.Decode(&name); err != nil {
			return fmt.Errorf("players[%s]: %w", id, err)
		}
		out.Set(id, name)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = out
	return nil
}
