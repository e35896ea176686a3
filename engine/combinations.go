package engine

import "closetbuddyapi/models"

const (
	bucketTops        = "tops"
	bucketBottoms     = "bottoms"
	bucketDresses     = "dresses"
	bucketOuterwear   = "outerwear"
	bucketShoes       = "shoes"
	bucketAccessories = "accessories"
)

// bucketFor folds the ten wardrobe categories into the six slots
// combination assembly works with.
func bucketFor(category models.Category) string {
	switch category {
	case models.CategoryTops, models.CategoryActivewear, models.CategorySleepwear:
		return bucketTops
	case models.CategoryBottoms:
		return bucketBottoms
	case models.CategoryDresses, models.CategoryFormal:
		return bucketDresses
	case models.CategoryOuterwear:
		return bucketOuterwear
	case models.CategoryShoes:
		return bucketShoes
	default:
		return bucketAccessories
	}
}

// Bucket reports the wardrobe slot a category belongs to. Exposed for
// the closet listing endpoint which groups items the same way.
func Bucket(category models.Category) string {
	return bucketFor(category)
}

func groupByBucket(items []models.ClothingItem) map[string][]models.ClothingItem {
	groups := map[string][]models.ClothingItem{}
	for _, item := range items {
		bucket := bucketFor(item.Category)
		groups[bucket] = append(groups[bucket], item)
	}
	return groups
}

// bestMatch picks the candidate most compatible with the base item.
// Earlier candidates win ties. Candidates must be non empty, callers
// gate on the bucket length.
func bestMatch(base models.ClothingItem, candidates []models.ClothingItem) models.ClothingItem {
	best := candidates[0]
	bestScore := Compatibility(&base, &candidates[0])
	for _, candidate := range candidates[1:] {
		if score := Compatibility(&base, &candidate); score > bestScore {
			bestScore = score
			best = candidate
		}
	}
	return best
}

// isOuterwearAppropriate gates jackets on top+bottom outfits to cold or
// dressed-up contexts. Dresses always take outerwear when available.
func isOuterwearAppropriate(filters Filters) bool {
	if filters.Season == string(models.SeasonWinter) || filters.Season == string(models.SeasonFall) {
		return true
	}
	if filters.Occasion == string(models.OccasionFormal) || filters.Occasion == string(models.OccasionWork) {
		return true
	}
	return filters.Season == string(models.SeasonSpring)
}

// generateCombinations assembles candidate outfits: every dress and every
// top+bottom pair, each completed with its best matching shoes, outerwear
// and accessory. Combinations below two items are discarded.
func generateCombinations(items []models.ClothingItem, filters Filters) [][]models.ClothingItem {
	groups := groupByBucket(items)

	tops := groups[bucketTops]
	bottoms := groups[bucketBottoms]
	dresses := groups[bucketDresses]
	outerwear := groups[bucketOuterwear]
	shoes := groups[bucketShoes]
	accessories := groups[bucketAccessories]

	var combinations [][]models.ClothingItem

	for _, dress := range dresses {
		outfit := []models.ClothingItem{dress}
		if len(shoes) > 0 {
			outfit = append(outfit, bestMatch(dress, shoes))
		}
		if len(outerwear) > 0 {
			outfit = append(outfit, bestMatch(dress, outerwear))
		}
		if len(accessories) > 0 {
			outfit = append(outfit, bestMatch(dress, accessories))
		}
		combinations = append(combinations, outfit)
	}

	for _, top := range tops {
		for _, bottom := range bottoms {
			outfit := []models.ClothingItem{top, bottom}
			if len(shoes) > 0 {
				outfit = append(outfit, bestMatch(top, shoes))
			}
			if len(outerwear) > 0 && isOuterwearAppropriate(filters) {
				outfit = append(outfit, bestMatch(top, outerwear))
			}
			if len(accessories) > 0 {
				outfit = append(outfit, bestMatch(top, accessories))
			}
			combinations = append(combinations, outfit)
		}
	}

	kept := combinations[:0]
	for _, combo := range combinations {
		if len(combo) >= 2 {
			kept = append(kept, combo)
		}
	}
	return kept
}
