package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/northarc/paylens/internal/domain"
	"github.com/northarc/paylens/internal/telegram"
)

func (h *Handler) handleReport(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	report, err := h.reports.CurrentMonthReport(ctx)
	if err != nil {
		slog.Error("current month report", "error", err)
		h.sendError(ctx, b, chatID)
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 *Report for %s*\n\n", report.Month))
	sb.WriteString(fmt.Sprintf("Payments: %d\n", report.PaymentCount))
	sb.WriteString(fmt.Sprintf("Total: %s\n", report.Total.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Discounts: %s\n", report.Discount.StringFixed(2)))
	if len(report.Products) > 0 {
		sb.WriteString("\nProducts sold:\n")
		for _, name := range report.Products {
			sb.WriteString(fmt.Sprintf("• %s\n", name))
		}
	}

	telegram.SendLongMessage(ctx, b, chatID, sb.String())
}

func (h *Handler) handleTotal(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	ym, ok := h.monthArg(ctx, b, chatID, update.Message.Text, "/total")
	if !ok {
		return
	}

	total, err := h.queries.TotalForMonth(ctx, ym)
	if err != nil {
		slog.Error("total for month", "month", ym.String(), "error", err)
		h.sendError(ctx, b, chatID)
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   fmt.Sprintf("💰 Total for %s: %s", ym, total.StringFixed(2)),
	})
}

func (h *Handler) handleDiscount(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	ym, ok := h.monthArg(ctx, b, chatID, update.Message.Text, "/discount")
	if !ok {
		return
	}

	discount, err := h.queries.DiscountForMonth(ctx, ym)
	if err != nil {
		slog.Error("discount for month", "month", ym.String(), "error", err)
		h.sendError(ctx, b, chatID)
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   fmt.Sprintf("🏷 Discounts for %s: %s", ym, discount.StringFixed(2)),
	})
}

// monthArg parses the "/cmd YYYY-MM" argument, replying with usage on
// bad input.
func (h *Handler) monthArg(ctx context.Context, b *bot.Bot, chatID int64, text, cmd string) (domain.YearMonth, bool) {
	parts := strings.Fields(text)
	if len(parts) < 2 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   fmt.Sprintf("Usage: %s <YYYY-MM>", cmd),
		})
		return domain.YearMonth{}, false
	}

	ym, err := domain.ParseYearMonth(parts[1])
	if err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   fmt.Sprintf("❌ %q is not a valid month, expected YYYY-MM.", parts[1]),
		})
		return domain.YearMonth{}, false
	}
	return ym, true
}

func (h *Handler) sendError(ctx context.Context, b *bot.Bot, chatID int64) {
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "❌ Query failed, try again later.",
	})
}
