package sheet

import "math"

// Sample picks up to budget positions out of count frames, spread
// evenly over the whole sequence. Short sequences are taken whole.
// Longer ones are stride-sampled with the first and last frame always
// kept as anchors; positions that round onto each other collapse, so
// the result is strictly increasing and never longer than budget.
//
// A budget of 1 returns only the last frame - the most finished state
// of the animation, which is the one worth looking at in a single tile.
func Sample(count, budget int) []int {
	if count <= 0 || budget <= 0 {
		return nil
	}
	if count <= budget {
		all := make([]int, count)
		for i := range all {
			all[i] = i
		}
		return all
	}
	if budget == 1 {
		return []int{count - 1}
	}
	// nearest-int rounding; floor would starve the tail of the sequence
	step := float64(count-1) / float64(budget-1)
	picks := make([]int, 0, budget)
	for i := 0; i < budget; i++ {
		pos := int(math.Round(float64(i) * step))
		if pos > count-1 {
			pos = count - 1
		}
		if len(picks) > 0 && pos <= picks[len(picks)-1] {
			continue
		}
		picks = append(picks, pos)
	}
	return picks
}
