package engine

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/getsentry/sentry-go"

	"closetbuddyapi/models"
)

// Stylist is an optional LLM backed fashion advisor. Implementations must
// return an error for anything short of a fully parsed response, the
// engine treats every error as a cue to fall back, never as a failure.
type Stylist interface {
	AnalyzeStyle(ctx context.Context, input StyleAnalysisInput) (*StyleAnalysis, error)
	DescribeOutfit(ctx context.Context, input OutfitDescriptionInput) (*OutfitDescription, error)
}

type StyleAnalysisItem struct {
	Category  string   `json:"category"`
	Colors    []string `json:"colors"`
	Occasions []string `json:"occasions"`
	MoodTags  []string `json:"mood_tags"`
}

type StyleAnalysisInput struct {
	Items            []StyleAnalysisItem `json:"items"`
	FavoriteColors   []string            `json:"favorite_colors,omitempty"`
	StylePreferences []string            `json:"style_preferences,omitempty"`
}

type StyleAnalysis struct {
	StylePersonality string   `json:"stylePersonality"`
	DominantThemes   []string `json:"dominantThemes"`
	ColorPalette     []string `json:"colorPalette"`
	Recommendations  []string `json:"recommendations"`
	Confidence       float64  `json:"confidence"`
}

type OutfitDescriptionItem struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Colors   []string `json:"colors"`
}

type OutfitDescriptionInput struct {
	Items    []OutfitDescriptionItem `json:"items"`
	Occasion string                  `json:"occasion,omitempty"`
	Season   string                  `json:"season,omitempty"`
	Mood     string                  `json:"mood,omitempty"`
}

type OutfitDescription struct {
	Description string   `json:"description"`
	StyleNotes  []string `json:"styleNotes"`
	OccasionFit string   `json:"occasionFit"`
	Confidence  float64  `json:"confidence"`
}

type enhancement struct {
	description      string
	styleNotes       []string
	occasionFit      string
	personalityMatch float64
	colorAnalysis    string
	recommendations  []string
	confidence       float64
}

const maxAICacheEntries = 512

// enhanceAll fans out one stylist call per suggestion and waits for all
// of them. Results land at their original index.
func (e *Engine) enhanceAll(ctx context.Context, suggestions []Suggestion, filters Filters) []Suggestion {
	results := make([]Suggestion, len(suggestions))
	var wg sync.WaitGroup
	for i, suggestion := range suggestions {
		wg.Add(1)
		go func(i int, suggestion Suggestion) {
			defer wg.Done()
			results[i] = e.enhanceOne(ctx, suggestion)
		}(i, suggestion)
	}
	wg.Wait()
	return results
}

func (e *Engine) enhanceOne(ctx context.Context, suggestion Suggestion) Suggestion {
	key := outfitCacheKey(suggestion.Items)

	e.mu.Lock()
	cached, ok := e.aiCache[key]
	e.mu.Unlock()
	if ok {
		return applyEnhancement(suggestion, cached, e.currentPersonality())
	}

	enh, ok := e.describeWithStylist(ctx, suggestion)
	if !ok {
		enh = e.fallbackEnhancement(suggestion)
	}

	e.mu.Lock()
	if len(e.aiCache) < maxAICacheEntries {
		e.aiCache[key] = enh
	}
	e.mu.Unlock()

	return applyEnhancement(suggestion, enh, e.currentPersonality())
}

func (e *Engine) describeWithStylist(ctx context.Context, suggestion Suggestion) (enhancement, bool) {
	input := OutfitDescriptionInput{
		Occasion: suggestion.Occasion,
		Season:   suggestion.Season,
		Mood:     suggestion.Mood,
	}
	for _, item := range suggestion.Items {
		input.Items = append(input.Items, OutfitDescriptionItem{
			Name:     item.Name,
			Category: string(item.Category),
			Colors:   item.Colors,
		})
	}

	described, err := e.stylist.DescribeOutfit(ctx, input)
	if err != nil {
		log.Printf("stylist outfit description failed: %v", err)
		sentry.CaptureException(err)
		return enhancement{}, false
	}

	return enhancement{
		description:      described.Description,
		styleNotes:       described.StyleNotes,
		occasionFit:      described.OccasionFit,
		personalityMatch: e.personalityMatch(suggestion),
		colorAnalysis:    colorAnalysis(suggestion),
		recommendations:  outfitRecommendations(suggestion),
		confidence:       described.Confidence,
	}, true
}

func (e *Engine) fallbackEnhancement(suggestion Suggestion) enhancement {
	var names []string
	for _, item := range suggestion.Items {
		names = append(names, item.Name)
	}
	occasion := suggestion.Occasion
	if occasion == "" {
		occasion = "any occasion"
	}
	fitOccasion := suggestion.Occasion
	if fitOccasion == "" {
		fitOccasion = "various occasions"
	}

	return enhancement{
		description:      fmt.Sprintf("A stylish combination featuring %s, perfect for %s.", strings.Join(names, ", "), occasion),
		styleNotes:       []string{"Classic combination", "Well-coordinated colors"},
		occasionFit:      fmt.Sprintf("Suitable for %s", fitOccasion),
		personalityMatch: e.personalityMatch(suggestion),
		colorAnalysis:    "Good color harmony",
		recommendations:  []string{"Try different accessories", "Consider layering options"},
		confidence:       0.6,
	}
}

func applyEnhancement(suggestion Suggestion, enh enhancement, personality string) Suggestion {
	suggestion.AIDescription = enh.description
	suggestion.AIStyleNotes = enh.styleNotes
	suggestion.AIOccasionFit = enh.occasionFit
	suggestion.AIPersonalityMatch = enh.personalityMatch
	suggestion.AIColorAnalysis = enh.colorAnalysis
	suggestion.AIRecommendations = enh.recommendations
	suggestion.AIConfidence = enh.confidence
	suggestion.StylePersonality = personality
	return suggestion
}

// outfitCacheKey is stable across item ordering, the same set of items
// always hits the same cache entry.
func outfitCacheKey(items []models.ClothingItem) string {
	ids := make([]int, 0, len(items))
	for _, item := range items {
		ids = append(ids, int(item.ID))
	}
	sort.Ints(ids)
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprint(id))
	}
	return "outfit_" + strings.Join(parts, "_")
}

func (e *Engine) currentPersonality() string {
	return e.currentProfile().StylePersonality
}

// currentProfile lazily computes and caches the wardrobe profile used by
// enhancement scoring.
func (e *Engine) currentProfile() StyleProfile {
	e.mu.Lock()
	if e.profile != nil {
		defer e.mu.Unlock()
		return *e.profile
	}
	e.mu.Unlock()

	profile := e.BuildStyleProfile()

	e.mu.Lock()
	if e.profile == nil {
		e.profile = &profile
	}
	profile = *e.profile
	e.mu.Unlock()
	return profile
}

// AnalyzeStyleProfile asks the stylist for a wardrobe analysis and falls
// back to the rule based profile on any failure. The result is cached on
// the engine instance.
func (e *Engine) AnalyzeStyleProfile(ctx context.Context) StyleProfile {
	e.mu.Lock()
	if e.profile != nil {
		defer e.mu.Unlock()
		return *e.profile
	}
	e.mu.Unlock()

	var profile StyleProfile
	if e.stylist != nil {
		analysis, err := e.stylist.AnalyzeStyle(ctx, e.styleAnalysisInput())
		if err != nil {
			log.Printf("stylist wardrobe analysis failed, using rule based profile: %v", err)
			sentry.CaptureException(err)
			profile = e.BuildStyleProfile()
		} else {
			profile = e.profileFromAnalysis(analysis)
		}
	} else {
		profile = e.BuildStyleProfile()
	}

	e.mu.Lock()
	e.profile = &profile
	e.mu.Unlock()
	return profile
}

func (e *Engine) styleAnalysisInput() StyleAnalysisInput {
	input := StyleAnalysisInput{}
	for _, item := range e.items {
		input.Items = append(input.Items, StyleAnalysisItem{
			Category:  string(item.Category),
			Colors:    item.Colors,
			Occasions: item.Occasions,
			MoodTags:  item.MoodTags,
		})
	}
	return input
}

func (e *Engine) profileFromAnalysis(analysis *StyleAnalysis) StyleProfile {
	base := e.BuildStyleProfile()

	palette := analysis.ColorPalette
	loves := palette
	if len(loves) > 3 {
		loves = loves[:3]
	}
	var likes []string
	if len(palette) > 3 {
		likes = palette[3:]
		if len(likes) > 3 {
			likes = likes[:3]
		}
	}

	return StyleProfile{
		DominantColors:      palette,
		PreferredCategories: base.PreferredCategories,
		StylePersonality:    analysis.StylePersonality,
		RiskTolerance:       riskToleranceFromThemes(analysis.DominantThemes),
		ColorPreferences: ColorPreferences{
			Loves:    loves,
			Likes:    likes,
			Neutral:  []string{},
			Dislikes: []string{},
		},
		OccasionFrequency: base.OccasionFrequency,
		DominantThemes:    analysis.DominantThemes,
		Recommendations:   analysis.Recommendations,
		Confidence:        analysis.Confidence,
		Source:            "ai",
	}
}

func riskToleranceFromThemes(themes []string) string {
	bold := 0
	for _, theme := range themes {
		switch strings.ToLower(theme) {
		case "edgy", "bold", "adventurous", "experimental":
			bold++
		}
	}
	if bold > 1 {
		return "adventurous"
	}
	if bold == 1 {
		return "moderate"
	}
	return "conservative"
}

// personalityMatch scores how well an outfit fits the wardrobe's style
// personality.
func (e *Engine) personalityMatch(suggestion Suggestion) float64 {
	items := suggestion.Items

	switch e.currentPersonality() {
	case "minimalist":
		if len(items) <= 3 {
			return 0.9
		}
		return 0.5
	case "formal":
		for _, item := range items {
			if !hasTag(item.Occasions, string(models.OccasionFormal)) && !hasTag(item.Occasions, string(models.OccasionWork)) {
				return 0.4
			}
		}
		return 0.9
	case "casual":
		for _, item := range items {
			if hasTag(item.Occasions, string(models.OccasionCasual)) {
				return 0.8
			}
		}
		return 0.5
	case "trendy":
		for _, item := range items {
			if hasTag(item.MoodTags, string(models.MoodTrendy)) {
				return 0.9
			}
		}
		return 0.6
	case "classic":
		for _, item := range items {
			if hasTag(item.MoodTags, string(models.MoodEdgy)) {
				return 0.5
			}
		}
		return 0.8
	case "eclectic":
		colorSet := map[string]bool{}
		for _, item := range items {
			for _, c := range item.Colors {
				colorSet[c] = true
			}
		}
		if len(colorSet) >= 3 {
			return 0.9
		}
		return 0.6
	default:
		return 0.7
	}
}

func colorAnalysis(suggestion Suggestion) string {
	colorSet := map[string]bool{}
	for _, item := range suggestion.Items {
		for _, c := range item.Colors {
			colorSet[c] = true
		}
	}

	switch len(colorSet) {
	case 1:
		return "Monochromatic color scheme creates a cohesive look"
	case 2:
		return "Complementary color pairing enhances visual appeal"
	case 3:
		return "Triadic color harmony creates dynamic balance"
	default:
		return "Rich color palette adds visual interest"
	}
}

func outfitRecommendations(suggestion Suggestion) []string {
	var recommendations []string

	switch suggestion.Season {
	case string(models.SeasonWinter):
		recommendations = append(recommendations, "Consider adding a warm layer for comfort")
	case string(models.SeasonSummer):
		recommendations = append(recommendations, "Light fabrics will keep you cool and comfortable")
	}

	switch suggestion.Occasion {
	case string(models.OccasionFormal):
		recommendations = append(recommendations, "Ensure all pieces are well-pressed and fitted")
	case string(models.OccasionCasual):
		recommendations = append(recommendations, "Perfect for relaxed, everyday wear")
	}

	for _, item := range suggestion.Items {
		if hasTag(item.Colors, "#000000") || hasTag(item.Colors, "black") {
			recommendations = append(recommendations, "Black adds sophistication and versatility")
			break
		}
	}

	if len(recommendations) > 3 {
		recommendations = recommendations[:3]
	}
	return recommendations
}
