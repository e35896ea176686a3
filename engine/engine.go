package engine

import (
	"context"
	"errors"
	"sort"
	"sync"

	"closetbuddyapi/models"
)

// ErrNotEnoughItems signals that after filtering the wardrobe cannot make
// a single two piece outfit. Callers decide on user facing wording.
var ErrNotEnoughItems = errors.New("not enough wardrobe items to build an outfit")

const defaultMaxSuggestions = 10

// Filters narrow and shape a suggestion run. Empty string dimensions are
// unset. An item missing tags for a set dimension is never excluded by
// it, untagged items stay eligible everywhere.
type Filters struct {
	Occasion        string
	Season          string
	Mood            string
	PreferredColors []string
	ExcludeItems    []uint
	MaxItems        int
	UseAI           bool
}

// Engine generates outfit suggestions over a fixed wardrobe snapshot.
// The stylist is optional, without one suggestions stay rule based. Each
// engine carries its own bounded AI response cache, discarded with the
// engine.
type Engine struct {
	items   []models.ClothingItem
	stylist Stylist

	mu      sync.Mutex
	aiCache map[string]enhancement
	profile *StyleProfile
}

func New(items []models.ClothingItem, stylist Stylist) *Engine {
	return &Engine{
		items:   items,
		stylist: stylist,
		aiCache: map[string]enhancement{},
	}
}

// Suggest runs the full pipeline: filter, combine, score, optionally
// enhance with the stylist, rank and truncate. AI failures degrade to
// fallback enhancements, they never fail the run.
func (e *Engine) Suggest(ctx context.Context, filters Filters) ([]Suggestion, error) {
	eligible := e.filterItems(filters)
	if len(eligible) < 2 {
		return nil, ErrNotEnoughItems
	}

	combinations := generateCombinations(eligible, filters)
	suggestions := make([]Suggestion, 0, len(combinations))
	for _, combo := range combinations {
		suggestions = append(suggestions, scoreOutfit(combo, filters))
	}

	if filters.UseAI && e.stylist != nil {
		suggestions = e.enhanceAll(ctx, suggestions, filters)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return rankScore(suggestions[i]) > rankScore(suggestions[j])
	})

	max := filters.MaxItems
	if max <= 0 {
		max = defaultMaxSuggestions
	}
	if len(suggestions) > max {
		suggestions = suggestions[:max]
	}
	return suggestions, nil
}

// rankScore folds AI confidence into the final ordering. A suggestion
// without AI enhancement keeps its plain score (multiplier 1).
func rankScore(s Suggestion) float64 {
	if s.AIConfidence > 0 {
		return s.Score * s.AIConfidence
	}
	return s.Score
}

func (e *Engine) filterItems(filters Filters) []models.ClothingItem {
	excluded := make(map[uint]bool, len(filters.ExcludeItems))
	for _, id := range filters.ExcludeItems {
		excluded[id] = true
	}

	var eligible []models.ClothingItem
	for _, item := range e.items {
		if excluded[item.ID] {
			continue
		}
		if filters.Occasion != "" && len(item.Occasions) > 0 && !hasTag(item.Occasions, filters.Occasion) {
			continue
		}
		if filters.Season != "" && len(item.Seasons) > 0 && !hasTag(item.Seasons, filters.Season) {
			continue
		}
		if filters.Mood != "" && len(item.MoodTags) > 0 && !hasTag(item.MoodTags, filters.Mood) {
			continue
		}
		eligible = append(eligible, item)
	}
	return eligible
}
