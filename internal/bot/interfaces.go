package bot

import (
	"context"

	"github.com/Houeta/rival-watch/internal/models"
	"gopkg.in/telebot.v4"
)

type API interface {
	// Handle lets you set the handler for some command name or one of the supported endpoints. It also applies middleware if such passed to the function.
	Handle(endpoint interface{}, h telebot.HandlerFunc, m ...telebot.MiddlewareFunc)
	// Start brings bot into motion by consuming incoming updates (see Bot.Updates channel).
	Start()
	// Stop gracefully shuts the poller down.
	Stop()

	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// Repository is the subset of the store the chat commands work with.
type Repository interface {
	GetCompetitor(ctx context.Context, id string) (*models.Competitor, error)
	ListCompetitors(ctx context.Context) ([]models.Competitor, error)
	ListRecentChanges(ctx context.Context, competitorID string, limit int) ([]models.Change, error)
	SubscribeChat(ctx context.Context, competitorID string, chatID int64) error
	UnsubscribeChat(ctx context.Context, competitorID string) error
}
