package models

import (
	"time"

	"github.com/lib/pq"
)

type UserAccount struct {
	JsonModel
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"unique"`
	Password string `json:"-"`
	Banned   bool   `gorm:"default:false" json:"-"`
	LastIp   string `json:"-"`
	//"STARTED_AUTH", "FINISHED_AUTH"
	Status              string     `json:"-"`
	GoogleID            string     `json:"-"`
	AppleID             string     `json:"-"`
	Platform            Platform   `sql:"type:ENUM('ios', 'android', 'web')" json:"platform"`
	TelegramUsername    *string    `json:"telegram_username"`
	ConfirmedDeleteDate *time.Time `json:"-"`
	// Notifications settings
	ReceiveNotifications bool `json:"receive_notifications"`
	// user app image/avatar
	AvatarURL string `json:"avatar_url"`
}

type UserPushToken struct {
	JsonModel
	UserAccountID uint
	UserAccount   UserAccount `json:"user_account"`
	Platform      Platform    `sql:"type:ENUM('ios', 'android', 'web')" json:"platform"`
	Token         string      `json:"token"`
	Active        bool        `gorm:"default:false" json:"-"`
}

type UserPushIn struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}

type UserSettingsIn struct {
	ReceiveNotifications bool    `json:"receive_notifications"`
	TelegramUsername     *string `json:"telegram_username"`
}

// UserPreferences is a single row per user, upserted as a whole.
type UserPreferences struct {
	JsonModel
	Owner   UserAccount `json:"-"`
	OwnerID uint        `gorm:"uniqueIndex" json:"-"`

	FavoriteColors   pq.StringArray `gorm:"type:text[]" json:"favorite_colors"`
	StylePreferences pq.StringArray `gorm:"type:text[]" json:"style_preferences"`
	BrandPreferences pq.StringArray `gorm:"type:text[]" json:"brand_preferences"`
	// per-category size, stored as json text
	SizePreferences *string `gorm:"type:text" json:"size_preferences"`
	BudgetMin       *int32  `json:"budget_min"`
	BudgetMax       *int32  `json:"budget_max"`
}

type UserPreferencesIn struct {
	FavoriteColors   []string `json:"favorite_colors"`
	StylePreferences []string `json:"style_preferences" validate:"dive,mood"`
	BrandPreferences []string `json:"brand_preferences"`
	SizePreferences  *string  `json:"size_preferences"`
	BudgetMin        *int32   `json:"budget_min"`
	BudgetMax        *int32   `json:"budget_max"`
}
