package models

import (
	"time"

	"github.com/lib/pq"
)

type ClothingItem struct {
	JsonModel
	Name     string      `json:"name"`
	Category Category    `json:"category"`
	Owner    UserAccount `json:"-"`
	OwnerID  uint        `json:"-"`

	Colors    pq.StringArray `gorm:"type:text[]" json:"colors"`
	Occasions pq.StringArray `gorm:"type:text[]" json:"occasions"`
	Seasons   pq.StringArray `gorm:"type:text[]" json:"seasons"`
	MoodTags  pq.StringArray `gorm:"type:text[]" json:"mood_tags"`

	Subcategory      *string `json:"subcategory"`
	Brand            *string `json:"brand"`
	Size             *string `json:"size"`
	Material         *string `json:"material"`
	CareInstructions *string `gorm:"type:text" json:"care_instructions"`
	Notes            *string `gorm:"type:text" json:"notes"`

	WearCount  int        `gorm:"default:0" json:"wear_count"`
	Favorite   bool       `gorm:"default:false" json:"favorite"`
	LastWornAt *time.Time `json:"last_worn_at"`

	// image **key** in storage
	ImageURL    *string `json:"image_url"`
	ImageStatus string  `json:"image_status"` // draft, uploaded
}

// FavoriteOutfit is a suggestion the user chose to keep. Item ids are
// snapshotted, the score too, so the record survives wardrobe edits.
type FavoriteOutfit struct {
	JsonModel
	Owner   UserAccount `json:"-"`
	OwnerID uint        `json:"-"`

	Name      string         `json:"name"`
	ItemIDs   pq.StringArray `gorm:"type:text[]" json:"item_ids"`
	Occasion  *string        `json:"occasion"`
	Score     float64        `json:"score"`
	Reasoning *string        `gorm:"type:text" json:"reasoning"`
}

// StyleProfileSnapshot stores the latest style profile computed for a user,
// either by the rule based engine or by the LLM analysis task.
type StyleProfileSnapshot struct {
	JsonModel
	Owner   UserAccount `json:"-"`
	OwnerID uint        `json:"-"`

	StylePersonality string         `json:"style_personality"`
	RiskTolerance    string         `json:"risk_tolerance"`
	LovedColors      pq.StringArray `gorm:"type:text[]" json:"loved_colors"`
	LikedColors      pq.StringArray `gorm:"type:text[]" json:"liked_colors"`
	NeutralColors    pq.StringArray `gorm:"type:text[]" json:"neutral_colors"`
	DislikedColors   pq.StringArray `gorm:"type:text[]" json:"disliked_colors"`
	DominantThemes   pq.StringArray `gorm:"type:text[]" json:"dominant_themes"`
	Recommendations  pq.StringArray `gorm:"type:text[]" json:"recommendations"`
	Confidence       float64        `json:"confidence"`
	Source           string         `json:"source"` // rules, ai
}

type ClothingItemIn struct {
	Name             string   `json:"name" validate:"required"`
	Category         string   `json:"category" validate:"required,category"`
	Colors           []string `json:"colors"`
	Occasions        []string `json:"occasions" validate:"dive,occasion"`
	Seasons          []string `json:"seasons" validate:"dive,season"`
	MoodTags         []string `json:"mood_tags" validate:"dive,mood"`
	Subcategory      *string  `json:"subcategory"`
	Brand            *string  `json:"brand"`
	Size             *string  `json:"size"`
	Material         *string  `json:"material"`
	CareInstructions *string  `json:"care_instructions"`
	Notes            *string  `json:"notes"`
	WithImage        bool     `json:"with_image"`
	ImageFileName    *string  `json:"image_file_name"`
}

type ItemImageImportIn struct {
	Url string `json:"url" validate:"required,url"`
}

type ClothingItemUpdateIn struct {
	Name             *string   `json:"name"`
	Category         *string   `json:"category" validate:"omitempty,category"`
	Colors           *[]string `json:"colors"`
	Occasions        *[]string `json:"occasions" validate:"omitempty,dive,occasion"`
	Seasons          *[]string `json:"seasons" validate:"omitempty,dive,season"`
	MoodTags         *[]string `json:"mood_tags" validate:"omitempty,dive,mood"`
	Subcategory      *string   `json:"subcategory"`
	Brand            *string   `json:"brand"`
	Size             *string   `json:"size"`
	Material         *string   `json:"material"`
	CareInstructions *string   `json:"care_instructions"`
	Notes            *string   `json:"notes"`
	Favorite         *bool     `json:"favorite"`
}

type FavoriteOutfitIn struct {
	Name      string  `json:"name" validate:"required"`
	ItemIDs   []uint  `json:"item_ids" validate:"required,min=2"`
	Occasion  *string `json:"occasion" validate:"omitempty,occasion"`
	Score     float64 `json:"score"`
	Reasoning *string `json:"reasoning"`
}

type SuggestionFiltersIn struct {
	Occasion        *string  `json:"occasion" validate:"omitempty,occasion"`
	Season          *string  `json:"season" validate:"omitempty,season"`
	Mood            *string  `json:"mood" validate:"omitempty,mood"`
	ExcludeItemIDs  []uint   `json:"exclude_item_ids"`
	PreferredColors []string `json:"preferred_colors"`
	MaxSuggestions  int      `json:"max_suggestions" validate:"omitempty,min=1,max=50"`
	UseAI           bool     `json:"use_ai"`
}
