package telegram

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *BotHandler) handleStatsCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	session, ok := h.requireSession(ctx, chatID, message.From.ID)
	if !ok {
		return
	}

	stats, err := h.dashboardUseCase.Stats(ctx, *session)
	if err != nil {
		slog.Error("failed to load dashboard", "error", err)
		h.sendMessage(chatID, "❌ Could not load stats: "+err.Error())
		return
	}
	h.sendMessage(chatID, renderStats(stats))
}
