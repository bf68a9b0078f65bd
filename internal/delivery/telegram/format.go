package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yourusername/bazaar-admin/internal/domain/entity"
)

const progressBarWidth = 10

func formatCents(cents int64) string {
	amount := decimal.New(cents, -2)
	if amount.IsNegative() {
		return "-$" + amount.Neg().StringFixed(2)
	}
	return "$" + amount.StringFixed(2)
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func progressBar(percent int) string {
	percent = max(0, min(100, percent))
	filled := percent * progressBarWidth / 100
	return strings.Repeat("▓", filled) + strings.Repeat("░", progressBarWidth-filled)
}

func renderPreview(batch *entity.ImportBatch, errorLimit int) string {
	valid := batch.ValidCount()
	invalid := len(batch.Rows) - valid

	var b strings.Builder
	fmt.Fprintf(&b, "📄 %s\n", batch.Filename)
	fmt.Fprintf(&b, "Rows: %d | valid: %d | invalid: %d\n", len(batch.Rows), valid, invalid)

	if invalid > 0 {
		b.WriteString("\nProblems:\n")
		shown := 0
		for _, r := range batch.Rows {
			if r.IsValid {
				continue
			}
			if shown == errorLimit {
				fmt.Fprintf(&b, "…and %d more\n", invalid-shown)
				break
			}
			fmt.Fprintf(&b, "Row %d: %s\n", r.RowNumber, strings.Join(r.Errors, "; "))
			shown++
		}
	}

	if valid == 0 {
		b.WriteString("\nNothing to import. Fix the file and send it again.")
	} else {
		fmt.Fprintf(&b, "\nPress the button to create %d products.", valid)
	}
	return b.String()
}

func renderProgress(p entity.ImportProgress) string {
	return fmt.Sprintf("⏳ Importing %d/%d (%d%%)\n%s", p.Processed, p.Total, p.Percent, progressBar(p.Percent))
}

func renderSummary(batch *entity.ImportBatch) string {
	var b strings.Builder
	icon := "✅"
	if batch.Summary.Failed > 0 {
		icon = "⚠️"
	}
	fmt.Fprintf(&b, "%s Import finished: %d created, %d failed", icon, batch.Summary.Succeeded, batch.Summary.Failed)

	if batch.Summary.Failed > 0 {
		b.WriteString("\n\nFailed rows:")
		for _, r := range batch.Rows {
			if r.Status != entity.ImportError {
				continue
			}
			fmt.Fprintf(&b, "\nRow %d (%s): %s", r.RowNumber, r.Row.Name, r.Message)
		}
	}
	return b.String()
}

func renderHistory(runs []entity.ImportRun) string {
	if len(runs) == 0 {
		return "No imports yet."
	}
	var b strings.Builder
	b.WriteString("🗂 Recent imports\n")
	for _, r := range runs {
		fmt.Fprintf(&b, "\n%s %s\n  %d rows, %d valid: %d created, %d failed",
			r.FinishedAt.Format("2006-01-02 15:04"), r.Filename, r.TotalRows, r.ValidRows, r.Succeeded, r.Failed)
	}
	return b.String()
}

func renderOrder(order entity.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🧾 Order %s\n", order.ID)
	fmt.Fprintf(&b, "Placed: %s\n", order.PlacedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Total: %s", formatCents(order.TotalCents))
	if len(order.Items) > 0 {
		fmt.Fprintf(&b, " (%d items)", len(order.Items))
	}
	b.WriteString("\n\n")

	if order.Status == entity.OrderCancelled {
		b.WriteString("⛔ Cancelled")
		return b.String()
	}

	for _, step := range order.Steps() {
		switch {
		case step.Current:
			b.WriteString("🔵 ")
		case step.Done:
			b.WriteString("✅ ")
		default:
			b.WriteString("⚪ ")
		}
		b.WriteString(string(step.Status))
		b.WriteString("\n")
	}
	if order.Status.Index() < 0 {
		fmt.Fprintf(&b, "Status: %s\n", order.Status)
	}
	fmt.Fprintf(&b, "%s %d%%", progressBar(order.ProgressPercent()), order.ProgressPercent())
	return b.String()
}

func renderOrderList(orders []entity.Order) string {
	if len(orders) == 0 {
		return "No orders yet."
	}
	return "📦 Recent orders (" + strconv.Itoa(len(orders)) + "). Tap one to manage it."
}

func renderStats(stats *entity.DashboardStats) string {
	var b strings.Builder
	b.WriteString("📊 Dashboard\n\n")
	fmt.Fprintf(&b, "Revenue: %s\n", formatCents(stats.RevenueCents))
	fmt.Fprintf(&b, "Orders: %d\n", stats.Orders)
	fmt.Fprintf(&b, "Active products: %d\n", stats.ActiveProducts)
	fmt.Fprintf(&b, "Low stock: %d\n", stats.LowStock)

	if len(stats.SalesByDay) > 0 {
		b.WriteString("\nLast 7 days:\n")
		for _, d := range stats.SalesByDay {
			fmt.Fprintf(&b, "%s  $%s\n", d.Day, decimal.NewFromFloat(d.Sales).StringFixed(2))
		}
	}

	if len(stats.RecentOrders) > 0 {
		b.WriteString("\nRecent orders:\n")
		for _, o := range stats.RecentOrders {
			fmt.Fprintf(&b, "%s  %s  %s\n", shortID(o.ID), o.Status, formatCents(o.TotalCents))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
