package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// HistoryRow is one saved calculation in the sidebar.
type HistoryRow struct {
	ID         int64
	CreatedAt  time.Time
	Exchange   string
	Coin       string
	Fiat       string
	Investment decimal.Decimal
	NetProfit  decimal.Decimal
	ROIPercent decimal.Decimal
}

// HistoryComponent renders the saved-calculations sidebar with a movable
// cursor.
type HistoryComponent struct {
	palette Palette
	rows    []HistoryRow
	cursor  int
}

// NewHistoryComponent creates an empty history sidebar.
func NewHistoryComponent(p Palette) *HistoryComponent {
	return &HistoryComponent{palette: p}
}

// SetPalette swaps the color palette.
func (h *HistoryComponent) SetPalette(p Palette) {
	h.palette = p
}

// Update replaces the sidebar contents. The cursor is clamped to the new size.
func (h *HistoryComponent) Update(rows []HistoryRow) {
	h.rows = rows
	if h.cursor >= len(rows) {
		h.cursor = len(rows) - 1
	}
	if h.cursor < 0 {
		h.cursor = 0
	}
}

// CursorUp moves the cursor up one row.
func (h *HistoryComponent) CursorUp() {
	if h.cursor > 0 {
		h.cursor--
	}
}

// CursorDown moves the cursor down one row.
func (h *HistoryComponent) CursorDown() {
	if h.cursor < len(h.rows)-1 {
		h.cursor++
	}
}

// Selected returns the row under the cursor, if any.
func (h *HistoryComponent) Selected() (HistoryRow, bool) {
	if len(h.rows) == 0 {
		return HistoryRow{}, false
	}
	return h.rows[h.cursor], true
}

// Len returns the number of rows.
func (h *HistoryComponent) Len() int {
	return len(h.rows)
}

// View renders the history sidebar. focused controls cursor highlighting.
func (h *HistoryComponent) View(focused bool) string {
	p := h.palette

	var sb strings.Builder
	sb.WriteString(p.Header.Render(fmt.Sprintf("HISTORY (%d)", len(h.rows))))
	sb.WriteString("\n\n")

	if len(h.rows) == 0 {
		sb.WriteString(p.Muted.Render("  Nothing saved yet. Press a to save the current calculation."))
		return sb.String()
	}

	for i, row := range h.rows {
		profitStyle := p.Positive
		if row.NetProfit.IsNegative() {
			profitStyle = p.Negative
		}

		line := fmt.Sprintf("%s  %s/%s %s",
			row.CreatedAt.Format("Jan 2 15:04"),
			row.Coin, row.Fiat,
			truncate(row.Exchange, 8))

		if focused && i == h.cursor {
			sb.WriteString(p.Selected.Render("> " + line))
		} else {
			sb.WriteString("  " + p.Value.Render(line))
		}
		sb.WriteString("\n")
		sb.WriteString(p.Muted.Render(fmt.Sprintf("    inv %s  ", row.Investment.StringFixed(0))))
		profit := row.NetProfit.StringFixed(2)
		if !row.NetProfit.IsNegative() {
			profit = "+" + profit
		}
		sb.WriteString(profitStyle.Render(fmt.Sprintf("%s (%s%%)",
			profit, row.ROIPercent.StringFixed(2))))
		sb.WriteString("\n")
	}

	return sb.String()
}
