package telegram

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/bazaar-admin/internal/domain/entity"
	"github.com/yourusername/bazaar-admin/internal/usecase"
)

const orderListLimit = 10

func (h *BotHandler) handleOrdersCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	session, ok := h.requireSession(ctx, chatID, message.From.ID)
	if !ok {
		return
	}

	orders, err := h.orderUseCase.List(ctx, *session, orderListLimit)
	if err != nil {
		slog.Error("failed to list orders", "error", err)
		h.sendMessage(chatID, "❌ Could not load orders: "+err.Error())
		return
	}

	h.sendWithKeyboard(chatID, renderOrderList(orders), buildOrderListKeyboard(orders))
}

func (h *BotHandler) handleOrderCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	session, ok := h.requireSession(ctx, chatID, message.From.ID)
	if !ok {
		return
	}

	id := strings.TrimSpace(message.CommandArguments())
	if id == "" {
		h.sendMessage(chatID, "Usage: /order <id>")
		return
	}
	h.handleOrderView(ctx, *session, chatID, id)
}

func (h *BotHandler) handleOrderView(ctx context.Context, session entity.Session, chatID int64, id string) {
	order, err := h.orderUseCase.Get(ctx, session, id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			h.sendMessage(chatID, "❌ Order "+id+" not found.")
			return
		}
		slog.Error("failed to load order", "order", id, "error", err)
		h.sendMessage(chatID, "❌ Could not load the order: "+err.Error())
		return
	}

	stepper := h.orderUseCase.NewStepper(*order)
	h.stepperMu.Lock()
	h.steppers[stepperKey(chatID, order.ID)] = stepper
	h.stepperMu.Unlock()

	h.sendWithKeyboard(chatID, renderOrder(*order), buildOrderKeyboard(*order))
}

func (h *BotHandler) handleOrderTransition(
	ctx context.Context,
	session entity.Session,
	chatID int64,
	messageID int,
	id string,
	cancel bool,
) {
	stepper, err := h.stepperFor(ctx, session, chatID, id)
	if err != nil {
		h.sendMessage(chatID, "❌ Could not load the order: "+err.Error())
		return
	}

	var to entity.OrderStatus
	if cancel {
		to, err = stepper.Cancel(ctx, session)
	} else {
		to, err = stepper.Advance(ctx, session)
	}
	order := stepper.Order()

	if err != nil {
		switch {
		case errors.Is(err, entity.ErrTransitionInProgress):
			h.sendMessage(chatID, "⏳ An update for this order is already in progress.")
		case errors.Is(err, entity.ErrTransitionNotAllowed):
			h.sendMessage(chatID, "⚠️ Order is "+string(order.Status)+", that change is not allowed.")
		default:
			slog.Warn("order status update failed", "order", id, "error", err)
			h.sendMessage(chatID, "❌ Failed to update order status: "+err.Error())
		}
		h.editMessage(chatID, messageID, renderOrder(order), buildOrderKeyboard(order))
		return
	}

	slog.Info("order status changed from telegram", "order", id, "status", to)
	markup := buildOrderKeyboard(order)
	if markup == nil {
		markup = &tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
	}
	h.editMessage(chatID, messageID, renderOrder(order), markup)
}

// stepperFor the order shown in this chat; fetched again after a restart
func (h *BotHandler) stepperFor(ctx context.Context, session entity.Session, chatID int64, id string) (*usecase.Stepper, error) {
	key := stepperKey(chatID, id)

	h.stepperMu.Lock()
	stepper, ok := h.steppers[key]
	h.stepperMu.Unlock()
	if ok {
		return stepper, nil
	}

	order, err := h.orderUseCase.Get(ctx, session, id)
	if err != nil {
		return nil, err
	}

	h.stepperMu.Lock()
	defer h.stepperMu.Unlock()
	if existing, ok := h.steppers[key]; ok {
		return existing, nil
	}
	stepper = h.orderUseCase.NewStepper(*order)
	h.steppers[key] = stepper
	return stepper, nil
}

func stepperKey(chatID int64, orderID string) string {
	return strconv.FormatInt(chatID, 10) + "/" + orderID
}

func buildOrderKeyboard(order entity.Order) *tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	if next, err := order.Status.Advance(); err == nil {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("➡️ Mark "+string(next), "ord_next:"+order.ID))
	}
	if order.Status.CanCancel() {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("✖️ Cancel order", "ord_cancel:"+order.ID))
	}
	if len(row) == 0 {
		return nil
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(row)
	return &markup
}

func buildOrderListKeyboard(orders []entity.Order) *tgbotapi.InlineKeyboardMarkup {
	if len(orders) == 0 {
		return nil
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(orders))
	for _, o := range orders {
		label := shortID(o.ID) + " · " + string(o.Status) + " · " + formatCents(o.TotalCents)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "ord_view:"+o.ID),
		))
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}

func buildImportKeyboard(batch *entity.ImportBatch) *tgbotapi.InlineKeyboardMarkup {
	valid := batch.ValidCount()
	if valid == 0 {
		return nil
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("▶️ Import "+strconv.Itoa(valid)+" products", "imp_run:"+batch.ID),
	))
	return &markup
}
