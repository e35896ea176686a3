package engine

import (
	"fmt"
	"math/rand"
	"time"

	"closetbuddyapi/models"
)

// Suggestion is a scored outfit. AI fields are only populated when a
// stylist enhanced the suggestion (or its fallback kicked in).
type Suggestion struct {
	ID             string                `json:"id"`
	Items          []models.ClothingItem `json:"items"`
	Score          float64               `json:"score"`
	Occasion       string                `json:"occasion,omitempty"`
	Season         string                `json:"season,omitempty"`
	Mood           string                `json:"mood,omitempty"`
	Reasoning      []string              `json:"reasoning"`
	ColorHarmony   float64               `json:"color_harmony"`
	StyleCoherence float64               `json:"style_coherence"`

	AIDescription      string   `json:"ai_description,omitempty"`
	AIStyleNotes       []string `json:"ai_style_notes,omitempty"`
	AIOccasionFit      string   `json:"ai_occasion_fit,omitempty"`
	AIPersonalityMatch float64  `json:"ai_personality_match,omitempty"`
	AIColorAnalysis    string   `json:"ai_color_analysis,omitempty"`
	AIRecommendations  []string `json:"ai_recommendations,omitempty"`
	AIConfidence       float64  `json:"ai_confidence,omitempty"`
	StylePersonality   string   `json:"style_personality,omitempty"`
}

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func newSuggestionID() string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return fmt.Sprintf("outfit-%d-%s", time.Now().UnixMilli(), suffix)
}

// scoreOutfit builds a Suggestion from a raw combination. Weights: color
// harmony 0.4, style coherence 0.3, completeness 0.2, preference
// alignment 0.1.
func scoreOutfit(items []models.ClothingItem, filters Filters) Suggestion {
	colorHarmony := outfitColorHarmony(items)
	styleCoherence := styleCoherence(items)
	completeness := completeness(items)
	preferenceAlignment := preferenceAlignment(items, filters)

	score := colorHarmony*0.4 + styleCoherence*0.3 + completeness*0.2 + preferenceAlignment*0.1

	var reasoning []string
	if colorHarmony > 0.7 {
		reasoning = append(reasoning, "Great color coordination")
	}
	if styleCoherence > 0.8 {
		reasoning = append(reasoning, "Cohesive style")
	}
	if completeness == 1.0 {
		reasoning = append(reasoning, "Complete outfit")
	}

	return Suggestion{
		ID:             newSuggestionID(),
		Items:          items,
		Score:          score,
		Occasion:       filters.Occasion,
		Season:         filters.Season,
		Mood:           filters.Mood,
		Reasoning:      reasoning,
		ColorHarmony:   colorHarmony,
		StyleCoherence: styleCoherence,
	}
}

// outfitColorHarmony averages pairwise color compatibility over the
// outfit. Single item outfits score a full 1.0.
func outfitColorHarmony(items []models.ClothingItem) float64 {
	if len(items) < 2 {
		return 1.0
	}

	total := 0.0
	comparisons := 0
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			total += colorSetCompatibility(items[i].Colors, items[j].Colors)
			comparisons++
		}
	}
	return total / float64(comparisons)
}

// styleCoherence measures how concentrated occasion and mood tags are
// across the outfit, averaged over both dimensions.
func styleCoherence(items []models.ClothingItem) float64 {
	var allOccasions, allMoods []string
	for _, item := range items {
		allOccasions = append(allOccasions, item.Occasions...)
		allMoods = append(allMoods, item.MoodTags...)
	}
	return (tagConcentration(allOccasions) + tagConcentration(allMoods)) / 2
}

// tagConcentration is the frequency of the most common tag. Empty input
// scores zero.
func tagConcentration(tags []string) float64 {
	if len(tags) == 0 {
		return 0
	}
	counts := map[string]int{}
	maxCount := 0
	for _, tag := range tags {
		counts[tag]++
		if counts[tag] > maxCount {
			maxCount = counts[tag]
		}
	}
	return float64(maxCount) / float64(len(tags))
}

// completeness: a dress or a top+bottom pair makes a full outfit,
// anything else counts half.
func completeness(items []models.ClothingItem) float64 {
	buckets := map[string]bool{}
	for _, item := range items {
		buckets[bucketFor(item.Category)] = true
	}
	if buckets[bucketDresses] {
		return 1.0
	}
	if buckets[bucketTops] && buckets[bucketBottoms] {
		return 1.0
	}
	return 0.5
}

// preferenceAlignment is the share of outfit colors harmonizing (> 0.7)
// with at least one preferred color. Without preferences it is a neutral
// 0.5.
func preferenceAlignment(items []models.ClothingItem, filters Filters) float64 {
	if len(filters.PreferredColors) == 0 {
		return 0.5
	}

	var outfitColors []string
	for _, item := range items {
		outfitColors = append(outfitColors, item.Colors...)
	}

	matches := 0
	for _, color := range outfitColors {
		for _, preferred := range filters.PreferredColors {
			if ColorHarmony(color, preferred) > 0.7 {
				matches++
				break
			}
		}
	}

	denom := len(outfitColors)
	if denom < 1 {
		denom = 1
	}
	return float64(matches) / float64(denom)
}
