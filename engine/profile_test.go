package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"closetbuddyapi/models"
)

func TestStylePersonalityMinimalist(t *testing.T) {
	// small wardrobe, 7 distinct colors, nothing formal or work tagged
	var items []models.ClothingItem
	for i := 0; i < 19; i++ {
		color := fmt.Sprintf("#00%02d00", i%7)
		items = append(items, makeItem(uint(i+1), "Piece", models.CategoryTops,
			[]string{color}, []string{"casual"}, nil, nil))
	}

	e := New(items, nil)
	profile := e.BuildStyleProfile()
	assert.Equal(t, "minimalist", profile.StylePersonality)
}

func TestStylePersonalityClassic(t *testing.T) {
	// half the wardrobe is work wear in a narrow palette
	var items []models.ClothingItem
	for i := 0; i < 25; i++ {
		occasions := []string{"casual"}
		if i < 12 {
			occasions = []string{"work"}
		}
		items = append(items, makeItem(uint(i+1), "Piece", models.CategoryTops,
			[]string{"#112233", "#445566"}, occasions, nil, nil))
	}

	e := New(items, nil)
	assert.Equal(t, "classic", e.BuildStyleProfile().StylePersonality)
}

func TestStylePersonalityEclectic(t *testing.T) {
	var items []models.ClothingItem
	for i := 0; i < 20; i++ {
		// unique color per item, variety ratio 1.0
		color := fmt.Sprintf("#%02X00FF", i*12)
		items = append(items, makeItem(uint(i+1), "Piece", models.CategoryTops,
			[]string{color}, []string{"casual"}, nil, nil))
	}

	e := New(items, nil)
	assert.Equal(t, "eclectic", e.BuildStyleProfile().StylePersonality)
}

func TestStylePersonalityDeterministic(t *testing.T) {
	var items []models.ClothingItem
	for i := 0; i < 15; i++ {
		items = append(items, makeItem(uint(i+1), "Piece", models.CategoryTops,
			[]string{"#FF0000", "#00FF00"}, []string{"casual"}, nil, []string{"trendy"}))
	}

	e := New(items, nil)
	first := e.BuildStyleProfile()
	second := e.BuildStyleProfile()
	assert.Equal(t, first, second)
}

func TestRiskTolerance(t *testing.T) {
	bold := makeItem(1, "Jacket", models.CategoryOuterwear,
		[]string{"#FF0000"}, nil, nil, []string{"edgy"})
	plain := makeItem(2, "Tee", models.CategoryTops,
		[]string{"#808080"}, nil, nil, []string{"comfortable"})

	e := New([]models.ClothingItem{bold, plain}, nil)
	// 1 of 2 bold items is over the 0.3 threshold
	assert.Equal(t, "adventurous", e.BuildStyleProfile().RiskTolerance)

	e = New([]models.ClothingItem{plain}, nil)
	assert.Equal(t, "conservative", e.BuildStyleProfile().RiskTolerance)

	e = New(nil, nil)
	assert.Equal(t, "moderate", e.BuildStyleProfile().RiskTolerance)
}

func TestColorPreferenceTiers(t *testing.T) {
	colors := []string{}
	// 10 of 20 = 0.5 ratio, loved
	for i := 0; i < 10; i++ {
		colors = append(colors, "#000000")
	}
	// 4 of 20 = 0.2 ratio, second rank, loved
	for i := 0; i < 4; i++ {
		colors = append(colors, "#FFFFFF")
	}
	// 2 of 20 = 0.1, third rank but below the 0.15 cut
	colors = append(colors, "#FF0000", "#FF0000")
	// singles fill ranks 4..7 at 0.05, below the likes cut
	colors = append(colors, "#0000FF", "#00FF00", "#AAAAAA", "#BBBBBB")

	prefs := analyzeColorPreferences(colors)
	assert.Equal(t, []string{"#000000", "#FFFFFF"}, prefs.Loves)
	assert.Empty(t, prefs.Likes)
	assert.Empty(t, prefs.Dislikes)
}

func TestDislikesAlwaysEmpty(t *testing.T) {
	var items []models.ClothingItem
	for i := 0; i < 30; i++ {
		items = append(items, makeItem(uint(i+1), "Piece", models.CategoryTops,
			[]string{fmt.Sprintf("#%06X", i*1000)}, nil, nil, nil))
	}
	e := New(items, nil)
	profile := e.BuildStyleProfile()
	assert.NotNil(t, profile.ColorPreferences.Dislikes)
	assert.Empty(t, profile.ColorPreferences.Dislikes)
}

type cannedStylist struct {
	analysis StyleAnalysis
}

func (c *cannedStylist) AnalyzeStyle(ctx context.Context, input StyleAnalysisInput) (*StyleAnalysis, error) {
	return &c.analysis, nil
}

func (c *cannedStylist) DescribeOutfit(ctx context.Context, input OutfitDescriptionInput) (*OutfitDescription, error) {
	return &OutfitDescription{Description: "ok", Confidence: 0.9}, nil
}

func TestAnalyzeStyleProfileUsesStylist(t *testing.T) {
	stylist := &cannedStylist{analysis: StyleAnalysis{
		StylePersonality: "trendy",
		DominantThemes:   []string{"edgy", "bold"},
		ColorPalette:     []string{"#111111", "#222222", "#333333", "#444444"},
		Recommendations:  []string{"Add a statement piece"},
		Confidence:       0.85,
	}}

	tee := makeItem(1, "Tee", models.CategoryTops, []string{"#111111"}, nil, nil, nil)
	e := New([]models.ClothingItem{tee}, stylist)

	profile := e.AnalyzeStyleProfile(context.Background())
	assert.Equal(t, "ai", profile.Source)
	assert.Equal(t, "trendy", profile.StylePersonality)
	assert.Equal(t, "adventurous", profile.RiskTolerance)
	assert.Equal(t, []string{"#111111", "#222222", "#333333"}, profile.ColorPreferences.Loves)
	assert.Equal(t, []string{"#444444"}, profile.ColorPreferences.Likes)
	assert.Equal(t, 0.85, profile.Confidence)
}

func TestAnalyzeStyleProfileFallsBackToRules(t *testing.T) {
	tee := makeItem(1, "Tee", models.CategoryTops, []string{"#111111"}, nil, nil, nil)
	e := New([]models.ClothingItem{tee}, failingStylist{})

	profile := e.AnalyzeStyleProfile(context.Background())
	assert.Equal(t, "rules", profile.Source)
	require.NotEmpty(t, profile.StylePersonality)
}
