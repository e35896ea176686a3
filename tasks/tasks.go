package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"closetbuddyapi/engine"
	"closetbuddyapi/models"
	"closetbuddyapi/services"
)

const TypeStyleAnalysis = "analyze:style"

type StyleAnalysisPayload struct {
	UserID uint `json:"user_id"`
}

// Client initializes an asynq client for enqueuing tasks
func NewClient() (*asynq.Client, error) {
	return asynq.NewClient(asynq.RedisClientOpt{Addr: os.Getenv("ASYNC_BROKER_ADDRESS")}), nil
}

func NewStyleAnalysisTask(userID uint) (*asynq.Task, error) {
	payload, err := json.Marshal(StyleAnalysisPayload{UserID: userID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeStyleAnalysis, payload), nil
}

// HandleStyleAnalysisTask computes a style profile for the user's wardrobe
// and stores it as a snapshot. The LLM analysis is best effort, the engine
// falls back to its rule based profile when the stylist fails.
func HandleStyleAnalysisTask(ctx context.Context, t *asynq.Task, db *gorm.DB, stylist engine.Stylist, fbApp *firebase.App) error {
	var payload StyleAnalysisPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return err
	}
	fmt.Printf("[Style: %v] Start Processing\n", payload.UserID)

	var user models.UserAccount
	res := db.First(&user, payload.UserID)
	if res.Error != nil {
		sentry.CaptureException(fmt.Errorf("[QUEUE] Error on retrieving user for style analysis %v", payload.UserID))
		return res.Error
	}

	var items []models.ClothingItem
	if err := db.Where("owner_id = ?", user.ID).Order("id asc").Find(&items).Error; err != nil {
		sentry.CaptureException(fmt.Errorf("[Style: %v] Error on loading wardrobe: %v", payload.UserID, err))
		return err
	}
	if len(items) == 0 {
		fmt.Printf("[Style: %v] Empty wardrobe, nothing to analyze\n", payload.UserID)
		return nil
	}

	profile := engine.New(items, stylist).AnalyzeStyleProfile(ctx)
	fmt.Printf("[Style: %v] Profile computed: %s/%s source=%s confidence=%.2f\n",
		payload.UserID, profile.StylePersonality, profile.RiskTolerance, profile.Source, profile.Confidence)

	snapshot := models.StyleProfileSnapshot{
		OwnerID:          user.ID,
		StylePersonality: profile.StylePersonality,
		RiskTolerance:    profile.RiskTolerance,
		LovedColors:      profile.ColorPreferences.Loves,
		LikedColors:      profile.ColorPreferences.Likes,
		NeutralColors:    profile.ColorPreferences.Neutral,
		DislikedColors:   profile.ColorPreferences.Dislikes,
		DominantThemes:   profile.DominantThemes,
		Recommendations:  profile.Recommendations,
		Confidence:       profile.Confidence,
		Source:           profile.Source,
	}
	if err := db.Create(&snapshot).Error; err != nil {
		sentry.CaptureException(fmt.Errorf("[Style: %v] Error on saving profile snapshot: %v", payload.UserID, err))
		return err
	}

	if user.ReceiveNotifications {
		fmt.Printf("[Style: %v] Sending notification to user %v\n", payload.UserID, user.ID)
		services.SendNotification(fbApp, db, user.ID, "Your style profile is ready",
			fmt.Sprintf("You have a %s style with %s color choices. Open the app to see the details!", profile.StylePersonality, profile.RiskTolerance),
			map[string]string{"snapshot_id": fmt.Sprintf("%d", snapshot.ID), "type": "style_profile_ready"})
	} else {
		fmt.Printf("[Style: %v] ReceiveNotifications is false, not sending notification\n", payload.UserID)
	}
	return nil
}

// ScheduledStyleRefreshTask re-runs the style analysis for every active user
// with enough wardrobe items, so stored snapshots track wardrobe changes.
func ScheduledStyleRefreshTask(ctx context.Context, t *asynq.Task, db *gorm.DB) error {
	fmt.Printf("[Style Refresh] Processing for all users\n")

	var users []models.UserAccount
	result := db.Where("banned = ?", false).Find(&users)
	if result.Error != nil {
		sentry.CaptureException(fmt.Errorf("[Style Refresh] Error fetching users: %v", result.Error))
		return result.Error
	}

	fmt.Printf("[Style Refresh] Found %d users\n", len(users))

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: os.Getenv("ASYNC_BROKER_ADDRESS")})
	if asynqClient == nil {
		err := fmt.Errorf("failed to create asynq client")
		sentry.CaptureException(err)
		return err
	}
	defer asynqClient.Close()

	for _, user := range users {
		var wardrobeSize int64
		if err := db.Model(&models.ClothingItem{}).Where("owner_id = ?", user.ID).Count(&wardrobeSize).Error; err != nil {
			sentry.CaptureException(fmt.Errorf("[Style Refresh] Error counting wardrobe for user %d: %v", user.ID, err))
			continue
		}
		if wardrobeSize < 2 {
			continue
		}

		task, err := NewStyleAnalysisTask(user.ID)
		if err != nil {
			sentry.CaptureException(fmt.Errorf("[Style Refresh] Failed to create task for user %d: %v", user.ID, err))
			continue
		}
		info, err := asynqClient.Enqueue(task, asynq.MaxRetry(3), asynq.Queue("analyze"), asynq.ProcessIn(1*time.Second))
		if err != nil {
			sentry.CaptureException(fmt.Errorf("[Style Refresh] Failed to enqueue for user %d: %v", user.ID, err))
			continue
		}
		fmt.Printf("[Style Refresh] Enqueued analysis for user %d, Task ID: %s\n", user.ID, info.ID)
		time.Sleep(100 * time.Millisecond) // To avoid hitting rate limits
	}

	return nil
}
