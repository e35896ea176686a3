package engine

import "closetbuddyapi/models"

// overlapRatio counts shared values and divides by the larger list size.
// The 1 floor keeps two untagged items at 0 instead of NaN.
func overlapRatio(a, b []string) float64 {
	set := make(map[string]bool, len(b))
	for _, v := range b {
		set[v] = true
	}
	overlap := 0
	for _, v := range a {
		if set[v] {
			overlap++
		}
	}
	denom := len(a)
	if len(b) > denom {
		denom = len(b)
	}
	if denom < 1 {
		denom = 1
	}
	return float64(overlap) / float64(denom)
}

// Compatibility scores a pair of wardrobe items on 0..1. Color harmony
// dominates, then shared occasions, seasons and moods in that order.
func Compatibility(item1, item2 *models.ClothingItem) float64 {
	score := colorSetCompatibility(item1.Colors, item2.Colors) * 0.4
	score += overlapRatio(item1.Occasions, item2.Occasions) * 0.3
	score += overlapRatio(item1.Seasons, item2.Seasons) * 0.2
	score += overlapRatio(item1.MoodTags, item2.MoodTags) * 0.1
	return score
}
