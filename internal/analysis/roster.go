package analysis

import (
	"strings"

	"github.com/pacman-ghost/vasl-templates-sub000/internal/config"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/model"
)

// Roster is the ordered list of players that made at least one roll.
type Roster struct {
	ids     []string
	names   map[string]string
	localID string
}

// IDs returns the player IDs in display order.
func (r Roster) IDs() []string { return append([]string(nil), r.ids...) }

// Name returns the display name for a player ID.
func (r Roster) Name(id string) string { return r.names[id] }

// Len returns the number of players.
func (r Roster) Len() int { return len(r.ids) }

// LocalUser returns the ID of the player relabelled as the local user, or ""
// if none matched.
func (r Roster) LocalUser() string { return r.localID }

// Contains reports whether the player is on the roster.
func (r Roster) Contains(id string) bool {
	_, ok := r.names[id]
	return ok
}

// resolveRoster keeps the players in all that were seen rolling, in all's
// order. A player whose name matches localUser (case-insensitively) is
// renamed to LocalUserLabel and swapped into first place; only the first
// match is moved.
func resolveRoster(all model.PlayerMap, seen map[string]bool, localUser string) Roster {
	r := Roster{names: make(map[string]string)}
	for _, id := range all.IDs() {
		if !seen[id] {
			continue
		}
		name, _ := all.Name(id)
		r.ids = append(r.ids, id)
		r.names[id] = name
	}

	if localUser == "" {
		return r
	}
	want := strings.ToLower(localUser)
	for i, id := range r.ids {
		if strings.ToLower(r.names[id]) != want {
			continue
		}
		r.names[id] = config.LocalUserLabel
		r.localID = id
		r.ids[0], r.ids[i] = r.ids[i], r.ids[0]
		break
	}
	return r
}
