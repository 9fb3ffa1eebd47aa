// Package notify sends optional session summaries to a supervising
// therapist over Telegram. Delivery is best-effort; failures are logged and
// never block the end of a session.
package notify

import (
	"fmt"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/skxlly-cyber/ar-toe-rehab/internal/model"
)

const (
	maxRetries  = 3
	retryBaseMs = 2000
	retryGrowth = 2
)

// Telegram posts finished-session summaries to one chat.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *slog.Logger
}

// NewTelegram creates a notifier with retry logic for transient network
// failures: the tgbotapi.NewBotAPI call contacts api.telegram.org, which can
// occasionally fail with TCP resets.
func NewTelegram(token string, chatID int64, logger *slog.Logger) (*Telegram, error) {
	var api *tgbotapi.BotAPI
	var err error

	delay := time.Duration(retryBaseMs) * time.Millisecond
	for attempt := 1; attempt <= maxRetries; attempt++ {
		api, err = tgbotapi.NewBotAPI(token)
		if err == nil {
			break
		}
		if attempt < maxRetries {
			logger.Warn("Telegram API connection failed, retrying",
				slog.Int("attempt", attempt),
				slog.Int("maxRetries", maxRetries),
				slog.Duration("retryIn", delay),
				slog.Any("error", err),
			)
			time.Sleep(delay)
			delay *= retryGrowth
		}
	}
	if err != nil {
		return nil, fmt.Errorf("after %d attempts: %w", maxRetries, err)
	}
	return &Telegram{bot: api, chatID: chatID, logger: logger}, nil
}

// SessionFinished sends one summary message for a completed session.
func (t *Telegram) SessionFinished(rec model.SessionRecord) {
	msg := tgbotapi.NewMessage(t.chatID, FormatSummary(rec))
	if _, err := t.bot.Send(msg); err != nil {
		t.logger.Warn("failed to send session summary", slog.Any("error", err))
		return
	}
	t.logger.Info("session summary sent", slog.Int("score", rec.Score))
}

// FormatSummary renders the session record as a short plain-text message.
func FormatSummary(rec model.SessionRecord) string {
	return fmt.Sprintf(
		"Toe-curl session finished %s\nScore: %d\nReps: %d\nCaught: %d / missed %d\nBest hold: %.1fs\nMax combo: x%d",
		rec.EndedAt.Format("2006-01-02 15:04"),
		rec.Score,
		rec.Reps,
		rec.Caught,
		rec.Missed,
		float64(rec.BestHoldMs)/1000,
		rec.MaxCombo,
	)
}
