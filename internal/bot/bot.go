package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Houeta/rival-watch/internal/models"
	"gopkg.in/telebot.v4"
)

const commandTimeout = 10 * time.Second

// Bot contains the bot API instance and other information.
type Bot struct {
	bot  API
	log  *slog.Logger
	repo Repository
}

func NewBot(log *slog.Logger, token string, poller time.Duration, repo Repository) (*Bot, error) {
	bot, err := telebot.NewBot(telebot.Settings{
		Token:  token,
		Poller: &telebot.LongPoller{Timeout: poller},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}
	log.Info("Authorized on account", "account", bot.Me.Username)

	botInstance := &Bot{bot: bot, log: log, repo: repo}

	botInstance.registerRoutes()

	return botInstance, nil
}

// Start launches the bot to listen for updates.
func (b *Bot) Start() {
	b.log.Info("Telegram bot is starting...")
	b.bot.Start()
}

// Stop gracefully stops the Telegram bot and logs the action.
func (b *Bot) Stop() {
	b.log.Info("Telegram bot is stopped...")
	b.bot.Stop()
}

// SendAlert delivers the changes of one page to the recipient chat as a single HTML message.
func (b *Bot) SendAlert(ctx context.Context, recipient int64, alert models.Alert) (models.AlertResult, error) {
	const opn = "bot.SendAlert"

	if len(alert.Changes) == 0 {
		return models.AlertResult{Reason: "nothing to send"}, nil
	}
	if err := ctx.Err(); err != nil {
		return models.AlertResult{Reason: err.Error()}, fmt.Errorf("%s: %w", opn, err)
	}

	_, err := b.bot.Send(telebot.ChatID(recipient), formatAlert(alert), telebot.ModeHTML)
	if err != nil {
		return models.AlertResult{Reason: err.Error()}, fmt.Errorf("%s: failed to send alert to %d: %w", opn, recipient, err)
	}

	b.log.InfoContext(ctx, "Alert sent", "op", opn, "chat_id", recipient, "page_id", alert.Page.ID)

	return models.AlertResult{Sent: true}, nil
}

// registerRoutes configures all routes (commands).
func (b *Bot) registerRoutes() {
	// Public routes.
	b.bot.Handle("/start", b.startHandler)
	b.bot.Handle("/competitors", b.competitorsHandler)
	b.bot.Handle("/subscribe", b.subscribeHandler)
	b.bot.Handle("/unsubscribe", b.unsubscribeHandler)
	b.bot.Handle("/changes", b.changesHandler)
}

func (b *Bot) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), commandTimeout)
}
