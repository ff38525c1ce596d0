package bot

import (
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/Houeta/rival-watch/internal/models"
	"github.com/Houeta/rival-watch/internal/repository"
	"github.com/Houeta/rival-watch/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v4"
)

func TestStart(t *testing.T) {
	t.Parallel()

	mockBot := mocks.NewAPI(t)
	mockBot.On("Start").Once()

	logger := slog.Default()
	testBot := Bot{bot: mockBot, log: logger}

	testBot.Start()

	mockBot.AssertExpectations(t)
}

func TestStop(t *testing.T) {
	t.Parallel()

	mockBot := mocks.NewAPI(t)
	mockBot.On("Stop").Once()

	logger := slog.Default()
	testBot := Bot{bot: mockBot, log: logger}

	testBot.Stop()

	mockBot.AssertExpectations(t)
}

func TestRegisterRoutes(t *testing.T) {
	t.Parallel()

	mockBot := mocks.NewAPI(t)

	for _, cmd := range []string{"/start", "/competitors", "/subscribe", "/unsubscribe", "/changes"} {
		mockBot.On("Handle", cmd, mock.AnythingOfType("telebot.HandlerFunc")).Once()
	}

	logger := slog.Default()
	testBot := Bot{bot: mockBot, log: logger}

	testBot.registerRoutes()

	mockBot.AssertExpectations(t)
}

func testAlert() models.Alert {
	return models.Alert{
		Competitor: models.Competitor{ID: "acme", Name: "Acme & Sons"},
		Page:       models.Page{ID: "p1", Label: "Pricing", URL: "https://acme.test/pricing?a=1&b=2"},
		Changes: []models.Change{{
			ID:           "c1",
			Summary:      "Price decreased from 50.00 to 45.00 USD (-5.00, -10.00%)",
			Analysis:     "Undercutting <us>.",
			Significance: models.SignificanceHigh,
			ChangeType:   models.ChangeTypePrice,
		}},
	}
}

func TestSendAlert(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		// Arrange
		mockBot := mocks.NewAPI(t)
		mockBot.On("Send", telebot.ChatID(77), mock.MatchedBy(func(text string) bool {
			return assert.ObjectsAreEqual(formatAlert(testAlert()), text)
		}), telebot.ModeHTML).Return(&telebot.Message{}, nil).Once()
		testBot := Bot{bot: mockBot, log: slog.Default()}

		// Act
		res, err := testBot.SendAlert(t.Context(), 77, testAlert())

		// Assert
		require.NoError(t, err)
		assert.True(t, res.Sent)
	})

	t.Run("telegram error", func(t *testing.T) {
		t.Parallel()
		mockBot := mocks.NewAPI(t)
		mockBot.On("Send", telebot.ChatID(77), mock.Anything, telebot.ModeHTML).
			Return(nil, assert.AnError).Once()
		testBot := Bot{bot: mockBot, log: slog.Default()}

		res, err := testBot.SendAlert(t.Context(), 77, testAlert())

		require.ErrorIs(t, err, assert.AnError)
		assert.False(t, res.Sent)
		assert.NotEmpty(t, res.Reason)
	})

	t.Run("no changes", func(t *testing.T) {
		t.Parallel()
		mockBot := mocks.NewAPI(t)
		testBot := Bot{bot: mockBot, log: slog.Default()}
		alert := testAlert()
		alert.Changes = nil

		res, err := testBot.SendAlert(t.Context(), 77, alert)

		require.NoError(t, err)
		assert.False(t, res.Sent)
	})
}

func TestFormatAlert(t *testing.T) {
	t.Parallel()

	got := formatAlert(testAlert())

	assert.Contains(t, got, "<b>Acme &amp; Sons</b> · Pricing")
	assert.Contains(t, got, "https://acme.test/pricing?a=1&amp;b=2")
	assert.Contains(t, got, "🔴 <b>HIGH</b> · Price change")
	assert.Contains(t, got, "<i>Undercutting &lt;us&gt;.</i>")
	assert.NotContains(t, got, "<us>")
}

func TestCompetitorsReply(t *testing.T) {
	t.Parallel()

	repo := mocks.NewRepository(t)
	repo.On("ListCompetitors", mock.Anything).Return([]models.Competitor{
		{ID: "acme", Name: "Acme", AlertChatID: 10},
		{ID: "beta", Name: "Beta", AlertChatID: 20},
		{ID: "gamma", Name: "Gamma"},
	}, nil).Once()
	testBot := Bot{log: slog.Default(), repo: repo}

	got := testBot.competitorsReply(t.Context(), 10)

	assert.Contains(t, got, "Acme (<code>acme</code>) - alerts in this chat")
	assert.Contains(t, got, "Beta (<code>beta</code>) - alerts in another chat")
	assert.Contains(t, got, "Gamma (<code>gamma</code>) - alerts off")
}

func TestSubscribeReply(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		args       []string
		setupMocks func(repo *mocks.Repository)
		expected   string
	}{
		{
			name:     "missing argument",
			expected: "Usage: /subscribe",
		},
		{
			name: "unknown competitor",
			args: []string{"ghost"},
			setupMocks: func(repo *mocks.Repository) {
				repo.On("GetCompetitor", mock.Anything, "ghost").
					Return(nil, fmt.Errorf("lookup: %w", repository.ErrCompetitorNotFound)).Once()
			},
			expected: "Unknown competitor <code>ghost</code>",
		},
		{
			name: "store failure",
			args: []string{"acme"},
			setupMocks: func(repo *mocks.Repository) {
				repo.On("GetCompetitor", mock.Anything, "acme").Return(&models.Competitor{ID: "acme", Name: "Acme"}, nil).Once()
				repo.On("SubscribeChat", mock.Anything, "acme", int64(-42)).Return(assert.AnError).Once()
			},
			expected: "Something went wrong",
		},
		{
			name: "success",
			args: []string{"acme"},
			setupMocks: func(repo *mocks.Repository) {
				repo.On("GetCompetitor", mock.Anything, "acme").Return(&models.Competitor{ID: "acme", Name: "Acme"}, nil).Once()
				repo.On("SubscribeChat", mock.Anything, "acme", int64(-42)).Return(nil).Once()
			},
			expected: "Alerts for <b>Acme</b> will be sent to this chat.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			// Arrange
			repo := mocks.NewRepository(t)
			if tc.setupMocks != nil {
				tc.setupMocks(repo)
			}
			testBot := Bot{log: slog.Default(), repo: repo}

			// Act
			got := testBot.subscribeReply(t.Context(), -42, tc.args)

			// Assert
			assert.Contains(t, got, tc.expected)
		})
	}
}

func TestUnsubscribeReply(t *testing.T) {
	t.Parallel()

	t.Run("other chat", func(t *testing.T) {
		t.Parallel()
		repo := mocks.NewRepository(t)
		repo.On("GetCompetitor", mock.Anything, "acme").
			Return(&models.Competitor{ID: "acme", Name: "Acme", AlertChatID: 5}, nil).Once()
		testBot := Bot{log: slog.Default(), repo: repo}

		got := testBot.unsubscribeReply(t.Context(), 6, []string{"acme"})

		assert.Equal(t, "This chat does not receive alerts for <b>Acme</b>.", got)
	})

	t.Run("subscribed chat", func(t *testing.T) {
		t.Parallel()
		repo := mocks.NewRepository(t)
		repo.On("GetCompetitor", mock.Anything, "acme").
			Return(&models.Competitor{ID: "acme", Name: "Acme", AlertChatID: 5}, nil).Once()
		repo.On("UnsubscribeChat", mock.Anything, "acme").Return(nil).Once()
		testBot := Bot{log: slog.Default(), repo: repo}

		got := testBot.unsubscribeReply(t.Context(), 5, []string{"acme"})

		assert.Equal(t, "Alerts for <b>Acme</b> are turned off.", got)
	})
}

func TestChangesReply(t *testing.T) {
	t.Parallel()

	t.Run("lists changes", func(t *testing.T) {
		t.Parallel()
		repo := mocks.NewRepository(t)
		repo.On("GetCompetitor", mock.Anything, "acme").Return(&models.Competitor{ID: "acme", Name: "Acme"}, nil).Once()
		repo.On("ListRecentChanges", mock.Anything, "acme", recentChangesLimit).Return([]models.Change{
			{
				Summary:      "2 line(s) added, (5.0% change)",
				Significance: models.SignificanceLow,
				DetectedAt:   time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC),
			},
		}, nil).Once()
		testBot := Bot{log: slog.Default(), repo: repo}

		got := testBot.changesReply(t.Context(), []string{"acme"})

		assert.Contains(t, got, "<b>Latest changes for Acme</b>")
		assert.Contains(t, got, "2026-05-04 09:30 🟢 <b>LOW</b>")
		assert.Contains(t, got, "2 line(s) added, (5.0% change)")
	})

	t.Run("no changes", func(t *testing.T) {
		t.Parallel()
		repo := mocks.NewRepository(t)
		repo.On("GetCompetitor", mock.Anything, "acme").Return(&models.Competitor{ID: "acme", Name: "Acme"}, nil).Once()
		repo.On("ListRecentChanges", mock.Anything, "acme", recentChangesLimit).Return(nil, nil).Once()
		testBot := Bot{log: slog.Default(), repo: repo}

		got := testBot.changesReply(t.Context(), []string{"acme"})

		assert.Equal(t, "No changes detected for <b>Acme</b> yet.", got)
	})
}
