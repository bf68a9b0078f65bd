package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/bazaar-admin/internal/domain/entity"
)

const (
	templateFilename  = "product_import_template.xlsx"
	previewErrorLimit = 10
	historyLimit      = 10
)

func (h *BotHandler) handleDocumentMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	session, ok := h.requireSession(ctx, chatID, message.From.ID)
	if !ok {
		return
	}

	doc := message.Document
	ext := strings.ToLower(filepath.Ext(doc.FileName))
	if ext != ".xlsx" && ext != ".csv" {
		h.sendMessage(chatID, "❌ Only .xlsx and .csv files are supported. /template gives you a starting point.")
		return
	}
	if int64(doc.FileSize) > h.maxUpload {
		h.sendMessage(chatID, fmt.Sprintf("❌ File is too large (max %d KB).", h.maxUpload/1024))
		return
	}

	data, err := h.downloadFile(ctx, doc.FileID)
	if err != nil {
		slog.Error("failed to download file", "chat", chatID, "file", doc.FileName, "error", err)
		h.sendMessage(chatID, "❌ Could not download the file, please try again.")
		return
	}

	batch, err := h.importUseCase.Preview(ctx, session.UserID, data, doc.FileName)
	if err != nil {
		slog.Warn("import preview failed", "chat", chatID, "file", doc.FileName, "error", err)
		h.sendMessage(chatID, "❌ "+previewErrorText(err))
		return
	}

	h.storeBatch(chatID, batch)
	h.sendWithKeyboard(chatID, renderPreview(batch, previewErrorLimit), buildImportKeyboard(batch))
}

func previewErrorText(err error) string {
	switch {
	case errors.Is(err, entity.ErrUnsupportedFile):
		return "Only .xlsx and .csv files are supported."
	case errors.Is(err, entity.ErrEmptySpreadsheet):
		return "The spreadsheet is empty."
	default:
		return "Failed to read the file: " + err.Error()
	}
}

func (h *BotHandler) handleImportRun(ctx context.Context, session entity.Session, chatID int64, messageID int, batchID string) {
	batch, ok := h.claimBatch(batchID, session.UserID)
	if !ok {
		h.sendMessage(chatID, "⚠️ This import has expired or is already running. Send the file again.")
		return
	}
	defer h.dropBatch(batchID)

	h.clearKeyboard(chatID, messageID)

	progressMsg, err := h.sendMessageWithResp(chatID, renderProgress(entity.ImportProgress{Total: batch.ValidCount()}))
	if err != nil {
		slog.Warn("failed to send progress message", "chat", chatID, "error", err)
	}

	reporter := newProgressReporter(h.progressInterval, func(text string) {
		if progressMsg != nil {
			h.editMessage(chatID, progressMsg.MessageID, text, nil)
		}
	})

	if _, err := h.importUseCase.Run(ctx, session, batch, reporter.report); err != nil {
		slog.Error("telegram import failed", "batch", batchID, "error", err)
		h.sendMessage(chatID, "❌ Import failed: "+err.Error())
		return
	}

	h.sendMessage(chatID, renderSummary(batch))
}

func (h *BotHandler) handleTemplateCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	if _, ok := h.requireSession(ctx, chatID, message.From.ID); !ok {
		return
	}

	data, err := h.importUseCase.Template()
	if err != nil {
		slog.Error("failed to build template", "error", err)
		h.sendMessage(chatID, "❌ Could not build the template.")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: templateFilename, Bytes: data})
	doc.Caption = "Fill in one product per row. Columns marked * are required."
	if _, err := h.bot.Send(doc); err != nil {
		slog.Warn("failed to send template", "chat", chatID, "error", err)
	}
}

func (h *BotHandler) handleHistoryCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	if _, ok := h.requireSession(ctx, chatID, message.From.ID); !ok {
		return
	}

	runs, err := h.importUseCase.History(ctx, historyLimit)
	if err != nil {
		slog.Error("failed to load import history", "error", err)
		h.sendMessage(chatID, "❌ Could not load import history.")
		return
	}
	h.sendMessage(chatID, renderHistory(runs))
}

func (h *BotHandler) storeBatch(chatID int64, batch *entity.ImportBatch) {
	h.batchMu.Lock()
	defer h.batchMu.Unlock()

	// one waiting preview per chat
	for id, p := range h.batches {
		if p.chatID == chatID && !p.running {
			delete(h.batches, id)
		}
	}
	h.batches[batch.ID] = &pendingBatch{batch: batch, chatID: chatID}
}

// claimBatch hands a ready batch to exactly one run
func (h *BotHandler) claimBatch(batchID, userID string) (*entity.ImportBatch, bool) {
	h.batchMu.Lock()
	defer h.batchMu.Unlock()

	p, ok := h.batches[batchID]
	if !ok || p.running || p.batch.UserID != userID {
		return nil, false
	}
	if p.batch.Phase != entity.PhaseReady || p.batch.ValidCount() == 0 {
		return nil, false
	}
	p.running = true
	return p.batch, true
}

func (h *BotHandler) dropBatch(batchID string) {
	h.batchMu.Lock()
	defer h.batchMu.Unlock()
	delete(h.batches, batchID)
}

// downloadFile fetches a file the user sent to the bot
func (h *BotHandler) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	url, err := h.bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download file: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, h.maxUpload+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(data)) > h.maxUpload {
		return nil, fmt.Errorf("file exceeds %d bytes", h.maxUpload)
	}
	return data, nil
}

// progressReporter rate-limits progress edits; Telegram rejects bursts
type progressReporter struct {
	mu          sync.Mutex
	edit        func(text string)
	interval    time.Duration
	now         func() time.Time
	last        time.Time
	lastPercent int
}

func newProgressReporter(interval time.Duration, edit func(text string)) *progressReporter {
	return &progressReporter{edit: edit, interval: interval, now: time.Now, lastPercent: -1}
}

func (r *progressReporter) report(p entity.ImportProgress) {
	r.mu.Lock()
	defer r.mu.Unlock()

	done := p.Total > 0 && p.Processed >= p.Total
	if !done {
		if p.Percent == r.lastPercent || r.now().Sub(r.last) < r.interval {
			return
		}
	}
	r.last = r.now()
	r.lastPercent = p.Percent
	r.edit(renderProgress(p))
}
