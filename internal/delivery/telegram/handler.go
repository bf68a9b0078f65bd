package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/bazaar-admin/internal/domain/entity"
	"github.com/yourusername/bazaar-admin/internal/usecase"
)

const (
	defaultMaxUpload = 5 << 20
	sessionPrefix    = "tg:"
)

// botAPI the part of tgbotapi.BotAPI the handler uses
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// BotHandler Telegram admin console
type BotHandler struct {
	bot        botAPI
	username   string
	httpClient *http.Client

	adminUseCase     usecase.AdminUseCase
	importUseCase    usecase.ImportUseCase
	orderUseCase     usecase.OrderUseCase
	dashboardUseCase usecase.DashboardUseCase

	maxUpload        int64
	progressInterval time.Duration

	batchMu sync.Mutex
	batches map[string]*pendingBatch

	stepperMu sync.Mutex
	steppers  map[string]*usecase.Stepper
}

// pendingBatch an uploaded file waiting for the run button
type pendingBatch struct {
	batch   *entity.ImportBatch
	chatID  int64
	running bool
}

// NewBotHandler creates a bot handler
func NewBotHandler(
	token string,
	adminUseCase usecase.AdminUseCase,
	importUseCase usecase.ImportUseCase,
	orderUseCase usecase.OrderUseCase,
	dashboardUseCase usecase.DashboardUseCase,
	maxUpload int64,
) (*BotHandler, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	h := newBotHandler(bot, adminUseCase, importUseCase, orderUseCase, dashboardUseCase, maxUpload)
	h.username = bot.Self.UserName
	return h, nil
}

func newBotHandler(
	bot botAPI,
	adminUseCase usecase.AdminUseCase,
	importUseCase usecase.ImportUseCase,
	orderUseCase usecase.OrderUseCase,
	dashboardUseCase usecase.DashboardUseCase,
	maxUpload int64,
) *BotHandler {
	if maxUpload <= 0 {
		maxUpload = defaultMaxUpload
	}
	return &BotHandler{
		bot:              bot,
		httpClient:       &http.Client{Timeout: 30 * time.Second},
		adminUseCase:     adminUseCase,
		importUseCase:    importUseCase,
		orderUseCase:     orderUseCase,
		dashboardUseCase: dashboardUseCase,
		maxUpload:        maxUpload,
		progressInterval: 1500 * time.Millisecond,
		batches:          make(map[string]*pendingBatch),
		steppers:         make(map[string]*usecase.Stepper),
	}
}

// Start polls for updates until ctx is done
func (h *BotHandler) Start(ctx context.Context) error {
	slog.Info("telegram bot started", "username", h.username)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			slog.Info("telegram bot stopping")
			h.bot.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.CallbackQuery != nil {
				go h.handleCallback(ctx, update.CallbackQuery)
				continue
			}

			if update.Message == nil {
				continue
			}

			go h.handleMessage(ctx, update.Message)
		}
	}
}

func (h *BotHandler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.From == nil || message.Chat == nil {
		return
	}

	if message.Document != nil {
		h.handleDocumentMessage(ctx, message)
		return
	}

	if message.IsCommand() {
		h.handleCommand(ctx, message)
		return
	}

	h.sendMessage(message.Chat.ID, "Send me an .xlsx or .csv file to import products, or /help for commands.")
}

func (h *BotHandler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		h.sendMessage(message.Chat.ID, welcomeMessage)
	case "help":
		h.sendMessage(message.Chat.ID, helpMessage)
	case "login":
		h.handleLoginCommand(ctx, message)
	case "logout":
		h.handleLogoutCommand(ctx, message)
	case "template":
		h.handleTemplateCommand(ctx, message)
	case "history":
		h.handleHistoryCommand(ctx, message)
	case "stats":
		h.handleStatsCommand(ctx, message)
	case "orders":
		h.handleOrdersCommand(ctx, message)
	case "order":
		h.handleOrderCommand(ctx, message)
	default:
		h.sendMessage(message.Chat.ID, "Unknown command. /help lists what I can do.")
	}
}

func (h *BotHandler) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.From == nil || cq.Message == nil || cq.Message.Chat == nil {
		return
	}
	chatID := cq.Message.Chat.ID
	messageID := cq.Message.MessageID

	// stop the button spinner
	if _, err := h.bot.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		slog.Debug("callback answer failed", "error", err)
	}

	action, arg, _ := strings.Cut(cq.Data, ":")
	if arg == "" {
		return
	}

	session, ok := h.requireSession(ctx, chatID, cq.From.ID)
	if !ok {
		return
	}

	switch action {
	case "imp_run":
		h.handleImportRun(ctx, *session, chatID, messageID, arg)
	case "ord_view":
		h.handleOrderView(ctx, *session, chatID, arg)
	case "ord_next":
		h.handleOrderTransition(ctx, *session, chatID, messageID, arg, false)
	case "ord_cancel":
		h.handleOrderTransition(ctx, *session, chatID, messageID, arg, true)
	default:
		slog.Debug("unknown callback", "data", cq.Data)
	}
}

func sessionKey(userID int64) string {
	return sessionPrefix + strconv.FormatInt(userID, 10)
}

// requireSession returns the admin session or tells the user to log in
func (h *BotHandler) requireSession(ctx context.Context, chatID, userID int64) (*entity.Session, bool) {
	session, err := h.adminUseCase.Session(ctx, sessionKey(userID))
	if err != nil {
		h.sendMessage(chatID, "🔐 Please log in first: /login <email> <password>")
		return nil, false
	}
	return session, true
}

// sendMessage plain text message
func (h *BotHandler) sendMessage(chatID int64, text string) {
	if _, err := h.sendMessageWithResp(chatID, text); err != nil {
		slog.Warn("failed to send message", "chat", chatID, "error", err)
	}
}

func (h *BotHandler) sendMessageWithResp(chatID int64, text string) (*tgbotapi.Message, error) {
	sent, err := h.bot.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		return nil, err
	}
	return &sent, nil
}

func (h *BotHandler) sendWithKeyboard(chatID int64, text string, markup *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = *markup
	}
	if _, err := h.bot.Send(msg); err != nil {
		slog.Warn("failed to send message", "chat", chatID, "error", err)
	}
}

// editMessage replaces text and keyboard of a sent message; a nil markup
// removes the keyboard
func (h *BotHandler) editMessage(chatID int64, messageID int, text string, markup *tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if markup != nil {
		edit.ReplyMarkup = markup
	}
	if _, err := h.bot.Send(edit); err != nil {
		slog.Debug("failed to edit message", "chat", chatID, "message", messageID, "error", err)
	}
}

func (h *BotHandler) clearKeyboard(chatID int64, messageID int) {
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	})
	if _, err := h.bot.Request(edit); err != nil {
		slog.Debug("failed to clear keyboard", "chat", chatID, "error", err)
	}
}

// Username bot username, empty until connected
func (h *BotHandler) Username() string {
	return h.username
}

const welcomeMessage = `👋 Bazaar admin console

Log in with your store admin account to manage the catalog and orders:
/login <email> <password>

/help lists every command.`

const helpMessage = `📖 Commands

/login <email> <password> - sign in
/logout - sign out
/stats - sales dashboard
/orders - recent orders
/order <id> - order details and status buttons
/template - download the import template
/history - recent imports

📤 Send an .xlsx or .csv file to preview a bulk product import.
Columns: name, description, price, stock, category, sku, active`
