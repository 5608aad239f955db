package aggregator

import "github.com/pacman-ghost/vasl-templates-sub000/internal/model"

// window is one player's moving-average state: the last size roll values
// and the number of rolls seen so far.
type window struct {
	size  int
	vals  []model.RollValue
	count int
}

func newWindow(size int) *window {
	return &window{size: size, vals: make([]model.RollValue, 0, size)}
}

// push buffers a roll. Once the buffer holds size values it returns their
// mean and drops the oldest value, so the window slides by one per roll.
func (w *window) push(v model.RollValue) (avg float64, ready bool) {
	w.count++
	w.vals = append(w.vals, v)
	if len(w.vals) < w.size {
		return 0, false
	}
	total := 0
	for _, bv := range w.vals {
		total += bv.Total()
	}
	avg = float64(total) / float64(len(w.vals))
	w.vals = append(w.vals[:0], w.vals[1:]...)
	return avg, true
}
