package loader

import (
	"fmt"

	"github.com/pacman-ghost/vasl-templates-sub000/internal/model"
)

// Merge concatenates the sources of several reports and unions their
// players by name. A name seen in an earlier report keeps its first ID; a new
// name whose ID is already used by someone else gets the next free "p:N" ID.
// Roll events are rewritten to the merged IDs. The inputs are not modified.
func Merge(reports ...*model.Report) *model.Report {
	if len(reports) == 1 {
		return reports[0]
	}
	out := &model.Report{}
	byName := make(map[string]string)

	for _, r := range reports {
		remap := make(map[string]string)
		for _, id := range r.Players.IDs() {
			name, _ := r.Players.Name(id)
			merged, known := byName[name]
			if !known {
				merged = id
				if _, taken := out.Players.Name(id); taken {
					merged = freeID(out.Players)
				}
				out.Players.Set(merged, name)
				byName[name] = merged
			}
			if merged != id {
				remap[id] = merged
			}
		}

		for _, lf := range r.LogFiles {
			if len(remap) == 0 {
				out.LogFiles = append(out.LogFiles, lf)
				continue
			}
			cp := lf
			cp.Events = make([]model.Event, len(lf.Events))
			for i, ev := range lf.Events {
				if newID, ok := remap[ev.PlayerID]; ok && ev.Type == model.EventRoll {
					ev.PlayerID = newID
				}
				cp.Events[i] = ev
			}
			out.LogFiles = append(out.LogFiles, cp)
		}
	}
	return out
}

func freeID(players model.PlayerMap) string {
	for n := players.Len() + 1; ; n++ {
		id := fmt.Sprintf("p:%d", n)
		if _, taken := players.Name(id); !taken {
			return id
		}
	}
}
