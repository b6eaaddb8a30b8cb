package handler

import (
	"github.com/go-telegram/bot"
	"github.com/northarc/paylens/internal/config"
	"github.com/northarc/paylens/internal/service"
)

// Handler holds all dependencies needed by command handlers.
type Handler struct {
	bot     *bot.Bot
	cfg     *config.Config
	queries *service.QueryService
	reports *service.Reports
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot     *bot.Bot
	Cfg     *config.Config
	Queries *service.QueryService
	Reports *service.Reports
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:     deps.Bot,
		cfg:     deps.Cfg,
		queries: deps.Queries,
		reports: deps.Reports,
	}
}
