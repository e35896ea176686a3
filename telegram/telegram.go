package telegram

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gorm.io/gorm"

	"closetbuddyapi/models"
	"closetbuddyapi/services"
)

func EscapeMessage(message string) string {
	r := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"`", "\\`",
	)
	return r.Replace(message)
}

// RunOutfitBot answers /outfit with quick suggestions for the wardrobe of
// the account linked to the sender's telegram username.
func RunOutfitBot(db *gorm.DB, outfitService *services.OutfitService) {

	bot, err := tgbotapi.NewBotAPI(os.Getenv("TG_TOKEN"))
	if err != nil {
		println("Error tg bot init")
		log.Panic(err)
	}
	bot.Debug = true

	log.Printf("Authorized on account %s", bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := bot.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil {
			continue
		}
		log.Printf("[%s] %s", update.Message.From.UserName, update.Message.Text)

		switch update.Message.Command() {
		case "start":
			msg := tgbotapi.NewMessage(update.Message.Chat.ID,
				"Hi! Link your telegram username in the app settings, then send /outfit to get outfit ideas for today.")
			bot.Send(msg)
		case "outfit":
			bot.Send(outfitReply(db, outfitService, update))
		default:
			msg := tgbotapi.NewMessage(update.Message.Chat.ID, "Send /outfit to get outfit ideas for today.")
			bot.Send(msg)
		}
	}

}

func outfitReply(db *gorm.DB, outfitService *services.OutfitService, update tgbotapi.Update) tgbotapi.MessageConfig {
	username := update.Message.From.UserName
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")

	var user models.UserAccount
	r := db.Where("telegram_username = ?", username).Limit(1).Find(&user)
	if r.Error != nil || r.RowsAffected == 0 {
		msg.Text = "I don't know your wardrobe yet. Set your telegram username in the app settings first."
		return msg
	}

	suggestions, err := outfitService.QuickSuggestions(context.Background(), db, user.ID)
	if err != nil {
		msg.Text = EscapeMessage(err.Error())
		return msg
	}

	builder := strings.Builder{}
	builder.WriteString(fmt.Sprintf("Outfit ideas for %s:\n", services.CurrentSeason()))
	for i, suggestion := range suggestions {
		names := make([]string, 0, len(suggestion.Items))
		for _, item := range suggestion.Items {
			names = append(names, item.Name)
		}
		builder.WriteString(fmt.Sprintf("%d. %s (score %.2f)\n", i+1, EscapeMessage(strings.Join(names, " + ")), suggestion.Score))
	}
	msg.Text = builder.String()
	return msg
}
