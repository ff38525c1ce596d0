package bot

import (
	"fmt"
	"html"
	"strings"

	"github.com/Houeta/rival-watch/internal/models"
)

func significanceMark(s models.Significance) string {
	switch s {
	case models.SignificanceHigh:
		return "🔴"
	case models.SignificanceMedium:
		return "🟠"
	case models.SignificanceLow:
		return "🟢"
	default:
		return "⚪"
	}
}

// formatAlert renders an alert as Telegram HTML.
func formatAlert(alert models.Alert) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🔔 <b>%s</b> · %s\n%s\n",
		html.EscapeString(alert.Competitor.Name),
		html.EscapeString(alert.Page.Label),
		html.EscapeString(alert.Page.URL))

	for _, c := range alert.Changes {
		kind := "Content change"
		if c.ChangeType == models.ChangeTypePrice {
			kind = "Price change"
		}
		fmt.Fprintf(&sb, "\n%s <b>%s</b> · %s\n%s\n",
			significanceMark(c.Significance), strings.ToUpper(string(c.Significance)), kind,
			html.EscapeString(c.Summary))
		if c.Analysis != "" {
			fmt.Fprintf(&sb, "<i>%s</i>\n", html.EscapeString(c.Analysis))
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}
