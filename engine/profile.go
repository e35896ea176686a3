package engine

import (
	"sort"

	"closetbuddyapi/models"
)

type ColorPreferences struct {
	Loves    []string `json:"loves"`
	Likes    []string `json:"likes"`
	Neutral  []string `json:"neutral"`
	Dislikes []string `json:"dislikes"`
}

// StyleProfile summarizes a wardrobe: what the user wears, which colors
// dominate and how adventurous their choices are.
type StyleProfile struct {
	DominantColors      []string          `json:"dominant_colors"`
	PreferredCategories []models.Category `json:"preferred_categories"`
	// classic, trendy, casual, formal, eclectic, minimalist
	StylePersonality string `json:"style_personality"`
	// conservative, moderate, adventurous
	RiskTolerance     string            `json:"risk_tolerance"`
	ColorPreferences  ColorPreferences  `json:"color_preferences"`
	OccasionFrequency map[string]int    `json:"occasion_frequency"`
	DominantThemes    []string          `json:"dominant_themes,omitempty"`
	Recommendations   []string          `json:"recommendations,omitempty"`
	Confidence        float64           `json:"confidence,omitempty"`
	Source            string            `json:"source"`
}

type colorCount struct {
	color string
	count int
}

func sortedColorCounts(colors []string) []colorCount {
	freq := map[string]int{}
	var order []string
	for _, c := range colors {
		if freq[c] == 0 {
			order = append(order, c)
		}
		freq[c]++
	}
	counts := make([]colorCount, 0, len(order))
	for _, c := range order {
		counts = append(counts, colorCount{color: c, count: freq[c]})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].count > counts[j].count
	})
	return counts
}

// BuildStyleProfile derives a rule based style profile from the engine's
// wardrobe. It never fails, an empty wardrobe yields a minimalist
// moderate profile.
func (e *Engine) BuildStyleProfile() StyleProfile {
	var allColors, allOccasions []string
	for _, item := range e.items {
		allColors = append(allColors, item.Colors...)
		allOccasions = append(allOccasions, item.Occasions...)
	}

	colorCounts := sortedColorCounts(allColors)
	var dominantColors []string
	for i := 0; i < len(colorCounts) && i < 5; i++ {
		dominantColors = append(dominantColors, colorCounts[i].color)
	}

	categoryFreq := map[models.Category]int{}
	var categoryOrder []models.Category
	for _, item := range e.items {
		if categoryFreq[item.Category] == 0 {
			categoryOrder = append(categoryOrder, item.Category)
		}
		categoryFreq[item.Category]++
	}
	sort.SliceStable(categoryOrder, func(i, j int) bool {
		return categoryFreq[categoryOrder[i]] > categoryFreq[categoryOrder[j]]
	})
	if len(categoryOrder) > 3 {
		categoryOrder = categoryOrder[:3]
	}

	occasionFrequency := map[string]int{}
	for _, o := range allOccasions {
		occasionFrequency[o]++
	}

	return StyleProfile{
		DominantColors:      dominantColors,
		PreferredCategories: categoryOrder,
		StylePersonality:    e.determineStylePersonality(),
		RiskTolerance:       e.determineRiskTolerance(),
		ColorPreferences:    analyzeColorPreferences(allColors),
		OccasionFrequency:   occasionFrequency,
		Source:              "rules",
	}
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// determineStylePersonality runs an ordered rule list, first match wins.
func (e *Engine) determineStylePersonality() string {
	totalItems := len(e.items)

	formalItems := 0
	colorSet := map[string]bool{}
	for _, item := range e.items {
		if hasTag(item.Occasions, string(models.OccasionFormal)) || hasTag(item.Occasions, string(models.OccasionWork)) {
			formalItems++
		}
		for _, c := range item.Colors {
			colorSet[c] = true
		}
	}
	colorVariety := len(colorSet)

	formalRatio := 0.0
	varietyRatio := 0.0
	if totalItems > 0 {
		formalRatio = float64(formalItems) / float64(totalItems)
		varietyRatio = float64(colorVariety) / float64(totalItems)
	}

	if formalRatio > 0.4 && varietyRatio < 0.3 {
		return "classic"
	}
	if totalItems < 20 && colorVariety < 8 {
		return "minimalist"
	}
	if formalRatio > 0.5 {
		return "formal"
	}
	if varietyRatio > 0.5 {
		return "eclectic"
	}

	trendyItems := 0
	for _, item := range e.items {
		if hasTag(item.MoodTags, string(models.MoodTrendy)) || hasTag(item.MoodTags, string(models.MoodEdgy)) {
			trendyItems++
		}
	}
	if float64(trendyItems)/float64(totalItems) > 0.3 {
		return "trendy"
	}

	return "casual"
}

func (e *Engine) determineRiskTolerance() string {
	totalItems := len(e.items)
	if totalItems == 0 {
		return "moderate"
	}

	neutralItems := 0
	boldItems := 0
	for _, item := range e.items {
		for _, c := range item.Colors {
			if IsNeutralColor(c) {
				neutralItems++
				break
			}
		}
		if hasTag(item.MoodTags, string(models.MoodEdgy)) || hasTag(item.MoodTags, string(models.MoodConfident)) {
			boldItems++
		}
	}

	if float64(boldItems)/float64(totalItems) > 0.3 {
		return "adventurous"
	}
	if float64(neutralItems)/float64(totalItems) > 0.7 {
		return "conservative"
	}
	return "moderate"
}

// analyzeColorPreferences tiers colors by wardrobe frequency: top 3 over
// 15 percent are loved, ranks 4..8 over 5 percent liked, ranks 9..12
// neutral. Nothing is ever inferred as disliked, absence of a color is
// not a signal against it.
func analyzeColorPreferences(colors []string) ColorPreferences {
	counts := sortedColorCounts(colors)
	total := len(colors)

	prefs := ColorPreferences{
		Loves:    []string{},
		Likes:    []string{},
		Neutral:  []string{},
		Dislikes: []string{},
	}
	if total == 0 {
		return prefs
	}

	for i, cc := range counts {
		ratio := float64(cc.count) / float64(total)
		switch {
		case i < 3:
			if ratio > 0.15 {
				prefs.Loves = append(prefs.Loves, cc.color)
			}
		case i < 8:
			if ratio > 0.05 {
				prefs.Likes = append(prefs.Likes, cc.color)
			}
		case i < 12:
			prefs.Neutral = append(prefs.Neutral, cc.color)
		}
	}
	return prefs
}
