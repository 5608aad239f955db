package aggregator

// UsableWindowSizes returns 1 (raw rolls) followed by each candidate size the
// busiest player has enough rolls for: at least size+20, or twice the size.
func UsableWindowSizes(maxRolls int, candidates []int) []int {
	out := []int{1}
	for _, w := range candidates {
		if w <= 1 {
			continue
		}
		if maxRolls >= w+20 || maxRolls >= 2*w {
			out = append(out, w)
		}
	}
	return out
}

// ClampWindowSize reduces current to the largest usable size if it is too big.
func ClampWindowSize(current int, usable []int) int {
	if len(usable) == 0 {
		return 1
	}
	if largest := usable[len(usable)-1]; current > largest {
		return largest
	}
	if current < 1 {
		return 1
	}
	return current
}

// ChooseWindowSize picks the window size for a roll-type selection: the
// requested size (preferred if requested < 1), clamped to what the raw
// series supports. It also returns the usable sizes.
func ChooseWindowSize(src EventSource, rollType string, requested, preferred int, candidates []int) (int, []int) {
	raw := ExtractEvents(src, 1, Hooks{Roll: SeriesRollFilter(rollType)})
	usable := UsableWindowSizes(raw.MaxRolls(), candidates)
	if requested < 1 {
		requested = preferred
	}
	return ClampWindowSize(requested, usable), usable
}
