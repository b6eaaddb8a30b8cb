package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/northarc/paylens/internal/domain"
	"github.com/northarc/paylens/internal/telegram"
)

func (h *Handler) handleRecent(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	parts := strings.Fields(update.Message.Text)
	if len(parts) < 2 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Usage: /recent <days>",
		})
		return
	}

	days, err := strconv.Atoi(parts[1])
	if err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   fmt.Sprintf("❌ %q is not a number of days.", parts[1]),
		})
		return
	}

	payments, err := h.queries.PaymentsForLastDays(ctx, days)
	if err != nil {
		slog.Error("payments for last days", "days", days, "error", err)
		h.sendError(ctx, b, chatID)
		return
	}

	header := fmt.Sprintf("🕐 *Payments from the last %d days* (%d)\n\n", days, len(payments))
	telegram.SendLongMessage(ctx, b, chatID, header+formatPayments(payments))
}

func (h *Handler) handleOver(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	parts := strings.Fields(update.Message.Text)
	if len(parts) < 2 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Usage: /over <amount>",
		})
		return
	}

	threshold, err := strconv.Atoi(parts[1])
	if err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   fmt.Sprintf("❌ %q is not a whole amount.", parts[1]),
		})
		return
	}

	payments, err := h.queries.PaymentsWithValueOver(ctx, threshold)
	if err != nil {
		slog.Error("payments with value over", "threshold", threshold, "error", err)
		h.sendError(ctx, b, chatID)
		return
	}

	header := fmt.Sprintf("💎 *Payments worth more than %d* (%d)\n\n", threshold, len(payments))
	telegram.SendLongMessage(ctx, b, chatID, header+formatPayments(payments))
}

func (h *Handler) handleUser(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	parts := strings.Fields(update.Message.Text)
	if len(parts) < 2 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Usage: /user <email>",
		})
		return
	}
	email := parts[1]

	items, err := h.queries.ItemsForUserEmail(ctx, email)
	if err != nil {
		slog.Error("items for user email", "email", email, "error", err)
		h.sendError(ctx, b, chatID)
		return
	}

	if len(items) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   fmt.Sprintf("No purchases found for %s.", email),
		})
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🛒 *Items bought by %s* (%d)\n\n", email, len(items)))
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("• %s — %s", item.Name, item.FinalPrice.StringFixed(2)))
		if discount := item.Discount(); !discount.IsZero() {
			sb.WriteString(fmt.Sprintf(" (discount %s)", discount.StringFixed(2)))
		}
		sb.WriteString("\n")
	}

	telegram.SendLongMessage(ctx, b, chatID, sb.String())
}

func (h *Handler) handlePayments(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	// The full dump is admin-only when an admin list is configured.
	if len(h.cfg.AdminIDs) > 0 {
		if update.Message.From == nil || !h.cfg.IsAdmin(update.Message.From.ID) {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   "This command is restricted to admins.",
			})
			return
		}
	}

	payments, err := h.queries.PaymentsSortedByDateDesc(ctx)
	if err != nil {
		slog.Error("payments sorted by date", "error", err)
		h.sendError(ctx, b, chatID)
		return
	}

	header := fmt.Sprintf("📋 *All payments, newest first* (%d)\n\n", len(payments))
	telegram.SendLongMessage(ctx, b, chatID, header+formatPayments(payments))
}

func formatPayments(payments []domain.Payment) string {
	if len(payments) == 0 {
		return "Nothing found."
	}

	var sb strings.Builder
	for _, p := range payments {
		sb.WriteString(fmt.Sprintf("• %s — %s, %d item(s), %s\n",
			p.PaymentDate.Format("2006-01-02 15:04"),
			p.User.Email,
			p.ItemCount(),
			p.Value().StringFixed(2),
		))
	}
	return sb.String()
}
