package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/Houeta/rival-watch/internal/repository"
	"gopkg.in/telebot.v4"
)

const recentChangesLimit = 5

const helpText = "I watch competitor pages and report what changes.\n\n" +
	"/competitors - list watched competitors\n" +
	"/subscribe &lt;id&gt; - send a competitor's alerts to this chat\n" +
	"/unsubscribe &lt;id&gt; - stop sending them here\n" +
	"/changes &lt;id&gt; - show the latest detected changes"

// startHandler process command /start.
func (b *Bot) startHandler(ctx telebot.Context) error {
	b.log.Info("User started the bot", "username", ctx.Sender().Username)

	if err := ctx.Send("Hello! "+helpText, telebot.ModeHTML); err != nil {
		return fmt.Errorf("failed to send greeting message: %w", err)
	}

	return nil
}

func (b *Bot) competitorsHandler(ctx telebot.Context) error {
	opCtx, cancel := b.opContext()
	defer cancel()

	return reply(ctx, b.competitorsReply(opCtx, ctx.Chat().ID))
}

func (b *Bot) subscribeHandler(ctx telebot.Context) error {
	opCtx, cancel := b.opContext()
	defer cancel()

	return reply(ctx, b.subscribeReply(opCtx, ctx.Chat().ID, ctx.Args()))
}

func (b *Bot) unsubscribeHandler(ctx telebot.Context) error {
	opCtx, cancel := b.opContext()
	defer cancel()

	return reply(ctx, b.unsubscribeReply(opCtx, ctx.Chat().ID, ctx.Args()))
}

func (b *Bot) changesHandler(ctx telebot.Context) error {
	opCtx, cancel := b.opContext()
	defer cancel()

	return reply(ctx, b.changesReply(opCtx, ctx.Args()))
}

func reply(ctx telebot.Context, text string) error {
	if err := ctx.Send(text, telebot.ModeHTML); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}

	return nil
}

func (b *Bot) competitorsReply(ctx context.Context, chatID int64) string {
	competitors, err := b.repo.ListCompetitors(ctx)
	if err != nil {
		b.log.ErrorContext(ctx, "Failed to list competitors", "op", "bot.competitorsReply", "error", err)
		return "Something went wrong, please try again later."
	}
	if len(competitors) == 0 {
		return "No competitors are being watched yet."
	}

	var sb strings.Builder
	sb.WriteString("<b>Watched competitors</b>\n")
	for _, c := range competitors {
		status := "alerts off"
		if c.AlertChatID == chatID {
			status = "alerts in this chat"
		} else if c.AlertChatID != 0 {
			status = "alerts in another chat"
		}
		fmt.Fprintf(&sb, "\n• %s (<code>%s</code>) - %s", html.EscapeString(c.Name), html.EscapeString(c.ID), status)
	}

	return sb.String()
}

func (b *Bot) subscribeReply(ctx context.Context, chatID int64, args []string) string {
	const opn = "bot.subscribeReply"

	if len(args) == 0 {
		return "Usage: /subscribe &lt;competitor id&gt;"
	}

	competitor, err := b.repo.GetCompetitor(ctx, args[0])
	if err != nil {
		return b.lookupFailure(ctx, opn, args[0], err)
	}

	if err = b.repo.SubscribeChat(ctx, competitor.ID, chatID); err != nil {
		b.log.ErrorContext(ctx, "Failed to subscribe chat", "op", opn, "chat_id", chatID, "error", err)
		return "Something went wrong, please try again later."
	}
	b.log.InfoContext(ctx, "Chat subscribed", "op", opn, "chat_id", chatID, "competitor_id", competitor.ID)

	return fmt.Sprintf("Alerts for <b>%s</b> will be sent to this chat.", html.EscapeString(competitor.Name))
}

func (b *Bot) unsubscribeReply(ctx context.Context, chatID int64, args []string) string {
	const opn = "bot.unsubscribeReply"

	if len(args) == 0 {
		return "Usage: /unsubscribe &lt;competitor id&gt;"
	}

	competitor, err := b.repo.GetCompetitor(ctx, args[0])
	if err != nil {
		return b.lookupFailure(ctx, opn, args[0], err)
	}
	if competitor.AlertChatID != chatID {
		return fmt.Sprintf("This chat does not receive alerts for <b>%s</b>.", html.EscapeString(competitor.Name))
	}

	if err = b.repo.UnsubscribeChat(ctx, competitor.ID); err != nil {
		b.log.ErrorContext(ctx, "Failed to unsubscribe chat", "op", opn, "chat_id", chatID, "error", err)
		return "Something went wrong, please try again later."
	}

	return fmt.Sprintf("Alerts for <b>%s</b> are turned off.", html.EscapeString(competitor.Name))
}

func (b *Bot) changesReply(ctx context.Context, args []string) string {
	const opn = "bot.changesReply"

	if len(args) == 0 {
		return "Usage: /changes &lt;competitor id&gt;"
	}

	competitor, err := b.repo.GetCompetitor(ctx, args[0])
	if err != nil {
		return b.lookupFailure(ctx, opn, args[0], err)
	}

	changes, err := b.repo.ListRecentChanges(ctx, competitor.ID, recentChangesLimit)
	if err != nil {
		b.log.ErrorContext(ctx, "Failed to list changes", "op", opn, "error", err)
		return "Something went wrong, please try again later."
	}
	if len(changes) == 0 {
		return fmt.Sprintf("No changes detected for <b>%s</b> yet.", html.EscapeString(competitor.Name))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>Latest changes for %s</b>\n", html.EscapeString(competitor.Name))
	for _, c := range changes {
		fmt.Fprintf(&sb, "\n%s %s <b>%s</b>\n%s\n",
			c.DetectedAt.Format("2006-01-02 15:04"), significanceMark(c.Significance),
			strings.ToUpper(string(c.Significance)), html.EscapeString(c.Summary))
	}

	return sb.String()
}

func (b *Bot) lookupFailure(ctx context.Context, opn, id string, err error) string {
	if errors.Is(err, repository.ErrCompetitorNotFound) {
		return fmt.Sprintf("Unknown competitor <code>%s</code>. See /competitors.", html.EscapeString(id))
	}
	b.log.ErrorContext(ctx, "Failed to get competitor", "op", opn, "competitor_id", id, "error", err)

	return "Something went wrong, please try again later."
}
