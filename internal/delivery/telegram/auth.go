package telegram

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/bazaar-admin/internal/domain/entity"
)

func (h *BotHandler) handleLoginCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	// The password must not stay in the chat history
	if _, err := h.bot.Request(tgbotapi.NewDeleteMessage(chatID, message.MessageID)); err != nil {
		slog.Debug("failed to delete login message", "chat", chatID, "error", err)
	}

	args := strings.Fields(message.CommandArguments())
	if len(args) != 2 {
		h.sendMessage(chatID, "Usage: /login <email> <password>")
		return
	}

	session, err := h.adminUseCase.Login(ctx, sessionKey(message.From.ID), args[0], args[1])
	if err != nil {
		if errors.Is(err, entity.ErrUnauthorized) {
			h.sendMessage(chatID, "❌ Invalid email or password.")
			return
		}
		slog.Error("telegram login failed", "user", message.From.ID, "error", err)
		h.sendMessage(chatID, "❌ Login failed: "+err.Error())
		return
	}

	h.sendMessage(chatID, "✅ Logged in as "+session.Email+"\n\n/help lists what you can do.")
}

func (h *BotHandler) handleLogoutCommand(ctx context.Context, message *tgbotapi.Message) {
	if err := h.adminUseCase.Logout(ctx, sessionKey(message.From.ID)); err != nil {
		slog.Warn("telegram logout failed", "user", message.From.ID, "error", err)
	}
	h.dropChatState(message.Chat.ID)
	h.sendMessage(message.Chat.ID, "👋 Logged out.")
}

// dropChatState forgets pending batches and open orders of a chat
func (h *BotHandler) dropChatState(chatID int64) {
	h.batchMu.Lock()
	for id, p := range h.batches {
		if p.chatID == chatID && !p.running {
			delete(h.batches, id)
		}
	}
	h.batchMu.Unlock()

	h.stepperMu.Lock()
	prefix := stepperKey(chatID, "")
	for key := range h.steppers {
		if strings.HasPrefix(key, prefix) {
			delete(h.steppers, key)
		}
	}
	h.stepperMu.Unlock()
}
