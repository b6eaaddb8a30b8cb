package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const startText = "📒 *paylens* — payment analytics\n\n" +
	"/report — current month summary\n" +
	"/total <YYYY-MM> — sales total for a month\n" +
	"/discount <YYYY-MM> — discounts granted in a month\n" +
	"/recent <days> — payments from the last N days\n" +
	"/over <amount> — payments worth more than the amount\n" +
	"/user <email> — items bought by a user\n" +
	"/payments — all payments, newest first"

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    update.Message.Chat.ID,
		Text:      startText,
		ParseMode: models.ParseModeMarkdownV1,
	})
}
