package handler

import "github.com/go-telegram/bot"

// Register registers all command handlers on the bot instance.
func (h *Handler) Register() {
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/report", bot.MatchTypePrefix, h.handleReport)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/total", bot.MatchTypePrefix, h.handleTotal)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/discount", bot.MatchTypePrefix, h.handleDiscount)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/recent", bot.MatchTypePrefix, h.handleRecent)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/over", bot.MatchTypePrefix, h.handleOver)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/user", bot.MatchTypePrefix, h.handleUser)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/payments", bot.MatchTypePrefix, h.handlePayments)
}
