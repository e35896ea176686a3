package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"closetbuddyapi/engine"
	"closetbuddyapi/models"
)

var ErrEmptyWardrobe = errors.New("Your wardrobe is empty. Add some clothing items to get outfit suggestions!")
var ErrNotEnoughItems = errors.New("You need at least 2 items in your wardrobe to generate outfit suggestions. Add more items to your wardrobe!")

// OutfitService wraps the suggestion engine with wardrobe loading,
// preference seeding and user facing error wording.
type OutfitService struct {
	Stylist engine.Stylist
}

type StyleInsights struct {
	StylePersonality    string   `json:"style_personality"`
	Headline            string   `json:"headline"`
	RiskTolerance       string   `json:"risk_tolerance"`
	DominantColors      []string `json:"dominant_colors"`
	PreferredCategories []string `json:"preferred_categories"`
	Recommendations     []string `json:"recommendations"`
	Source              string   `json:"source"`
}

func (os *OutfitService) loadWardrobe(db *gorm.DB, userID uint) ([]models.ClothingItem, error) {
	var items []models.ClothingItem
	result := db.Where("owner_id = ?", userID).Order("id asc").Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}
	if len(items) == 0 {
		return nil, ErrEmptyWardrobe
	}
	if len(items) < 2 {
		return nil, ErrNotEnoughItems
	}
	return items, nil
}

// seedPreferredColors fills filter colors from stored preferences when
// the caller did not pick any.
func (os *OutfitService) seedPreferredColors(db *gorm.DB, userID uint, filters *engine.Filters) {
	if len(filters.PreferredColors) > 0 {
		return
	}
	var preferences models.UserPreferences
	result := db.Where("owner_id = ?", userID).First(&preferences)
	if result.Error != nil {
		return
	}
	filters.PreferredColors = preferences.FavoriteColors
}

func (os *OutfitService) GenerateSuggestions(ctx context.Context, db *gorm.DB, userID uint, filters engine.Filters) ([]engine.Suggestion, error) {
	items, err := os.loadWardrobe(db, userID)
	if err != nil {
		return nil, err
	}
	os.seedPreferredColors(db, userID, &filters)

	suggestions, err := engine.New(items, os.Stylist).Suggest(ctx, filters)
	if errors.Is(err, engine.ErrNotEnoughItems) {
		return nil, ErrNotEnoughItems
	}
	if err != nil {
		return nil, err
	}
	return suggestions, nil
}

// QuickSuggestions returns the top three outfits for the current season,
// without AI enhancement.
func (os *OutfitService) QuickSuggestions(ctx context.Context, db *gorm.DB, userID uint) ([]engine.Suggestion, error) {
	return os.GenerateSuggestions(ctx, db, userID, engine.Filters{
		Season:   string(CurrentSeason()),
		MaxItems: 3,
	})
}

func (os *OutfitService) StyleProfile(ctx context.Context, db *gorm.DB, userID uint) (engine.StyleProfile, error) {
	items, err := os.loadWardrobe(db, userID)
	if err != nil {
		return engine.StyleProfile{}, err
	}
	return engine.New(items, os.Stylist).AnalyzeStyleProfile(ctx), nil
}

func (os *OutfitService) GetStyleInsights(ctx context.Context, db *gorm.DB, userID uint) (*StyleInsights, error) {
	profile, err := os.StyleProfile(ctx, db, userID)
	if err != nil {
		return nil, err
	}

	var recommendations []string
	switch profile.StylePersonality {
	case "minimalist":
		recommendations = append(recommendations,
			"Consider adding versatile neutral pieces",
			"Focus on quality over quantity")
	case "trendy":
		recommendations = append(recommendations,
			"Experiment with bold color combinations",
			"Try mixing patterns and textures")
	case "classic":
		recommendations = append(recommendations,
			"Invest in timeless pieces",
			"Build a capsule wardrobe")
	case "eclectic":
		recommendations = append(recommendations,
			"Embrace your unique style",
			"Don't be afraid to mix different aesthetics")
	default:
		recommendations = append(recommendations,
			"Explore different styles to find your preference")
	}

	switch profile.RiskTolerance {
	case "conservative":
		recommendations = append(recommendations, "Try adding one statement piece to safe outfits")
	case "adventurous":
		recommendations = append(recommendations, "Your bold choices inspire confidence")
	}

	categories := make([]string, 0, len(profile.PreferredCategories))
	for _, category := range profile.PreferredCategories {
		categories = append(categories, string(category))
	}

	titleCaser := cases.Title(language.English)
	return &StyleInsights{
		StylePersonality:    profile.StylePersonality,
		Headline:            fmt.Sprintf("%s Style", titleCaser.String(profile.StylePersonality)),
		RiskTolerance:       profile.RiskTolerance,
		DominantColors:      profile.DominantColors,
		PreferredCategories: categories,
		Recommendations:     recommendations,
		Source:              profile.Source,
	}, nil
}

// CurrentSeason maps the current month to a wardrobe season.
func CurrentSeason() models.Season {
	month := int(time.Now().Month())
	switch {
	case month >= 3 && month <= 5:
		return models.SeasonSpring
	case month >= 6 && month <= 8:
		return models.SeasonSummer
	case month >= 9 && month <= 11:
		return models.SeasonFall
	default:
		return models.SeasonWinter
	}
}
