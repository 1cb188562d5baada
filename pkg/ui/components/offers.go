package components

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// OfferRow is one payment channel's quote in the offers table.
type OfferRow struct {
	Channel       string
	BuyRate       decimal.Decimal
	SellRate      decimal.Decimal
	SpreadPercent decimal.Decimal
	Grade         string // "Excellent", "Good" or "Fair"
}

// OffersComponent renders the per-channel offers table with a movable cursor.
type OffersComponent struct {
	palette Palette
	rows    []OfferRow
	cursor  int
	live    bool
}

// NewOffersComponent creates an empty offers table.
func NewOffersComponent(p Palette) *OffersComponent {
	return &OffersComponent{palette: p}
}

// SetPalette swaps the color palette.
func (o *OffersComponent) SetPalette(p Palette) {
	o.palette = p
}

// Update replaces the table contents. The cursor is clamped to the new size.
func (o *OffersComponent) Update(rows []OfferRow, live bool) {
	o.rows = rows
	o.live = live
	if o.cursor >= len(rows) {
		o.cursor = 0
	}
}

// CursorUp moves the cursor up one row.
func (o *OffersComponent) CursorUp() {
	if o.cursor > 0 {
		o.cursor--
	}
}

// CursorDown moves the cursor down one row.
func (o *OffersComponent) CursorDown() {
	if o.cursor < len(o.rows)-1 {
		o.cursor++
	}
}

// Selected returns the row under the cursor, if any.
func (o *OffersComponent) Selected() (OfferRow, bool) {
	if len(o.rows) == 0 {
		return OfferRow{}, false
	}
	return o.rows[o.cursor], true
}

// Len returns the number of rows.
func (o *OffersComponent) Len() int {
	return len(o.rows)
}

// View renders the offers table. focused controls cursor highlighting.
func (o *OffersComponent) View(focused bool) string {
	p := o.palette

	var sb strings.Builder
	sb.WriteString(p.Header.Render("OFFERS"))
	if o.live {
		sb.WriteString(p.Positive.Render("  ● live"))
	} else {
		sb.WriteString(p.Warning.Render("  ○ fallback"))
	}
	sb.WriteString("\n\n")

	if len(o.rows) == 0 {
		sb.WriteString(p.Muted.Render("  Waiting for market data..."))
		return sb.String()
	}

	sb.WriteString(p.Muted.Render(fmt.Sprintf("  %-22s %9s %9s %8s  %s",
		"Channel", "Buy", "Sell", "Spread", "Grade")))
	sb.WriteString("\n")
	sb.WriteString(p.Muted.Render("  " + strings.Repeat("─", 58)))
	sb.WriteString("\n")

	for i, row := range o.rows {
		var grade string
		switch row.Grade {
		case "Excellent":
			grade = p.Positive.Render(row.Grade)
		case "Fair":
			grade = p.Warning.Render(row.Grade)
		default:
			grade = p.Muted.Render(row.Grade)
		}

		line := fmt.Sprintf("%-22s %9s %9s %7s%%  ",
			truncate(row.Channel, 22),
			row.BuyRate.StringFixed(2),
			row.SellRate.StringFixed(2),
			row.SpreadPercent.StringFixed(2))

		if focused && i == o.cursor {
			sb.WriteString(p.Selected.Render("> " + line))
		} else {
			sb.WriteString("  " + p.Value.Render(line))
		}
		sb.WriteString(grade)
		sb.WriteString("\n")
	}

	return sb.String()
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
