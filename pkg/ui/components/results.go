package components

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ResultCards holds the headline figures of the current calculation.
type ResultCards struct {
	Fiat        string
	Coin        string
	Acquired    decimal.Decimal
	FinalAmount decimal.Decimal
	NetProfit   decimal.Decimal
	ROIPercent  decimal.Decimal
	Tier        string
	Profitable  bool
}

// ResultsComponent renders the calculation result cards.
type ResultsComponent struct {
	palette Palette
	cards   ResultCards
	ready   bool
}

// NewResultsComponent creates an empty results panel.
func NewResultsComponent(p Palette) *ResultsComponent {
	return &ResultsComponent{palette: p}
}

// SetPalette swaps the color palette.
func (r *ResultsComponent) SetPalette(p Palette) {
	r.palette = p
}

// Update replaces the displayed figures.
func (r *ResultsComponent) Update(cards ResultCards) {
	r.cards = cards
	r.ready = true
}

// View renders the result cards.
func (r *ResultsComponent) View() string {
	p := r.palette

	var sb strings.Builder
	sb.WriteString(p.Header.Render("RESULT"))
	sb.WriteString("\n\n")

	if !r.ready {
		sb.WriteString(p.Muted.Render("  Enter valid inputs to calculate."))
		return sb.String()
	}

	c := r.cards
	profitStyle := p.Positive
	sign := "+"
	if !c.Profitable {
		profitStyle = p.Negative
		sign = ""
	}

	sb.WriteString(fmt.Sprintf("  %s %s\n",
		p.Muted.Render("Acquired:"),
		p.Value.Render(c.Acquired.StringFixed(4)+" "+c.Coin)))
	sb.WriteString(fmt.Sprintf("  %s %s\n",
		p.Muted.Render("Final:   "),
		p.Value.Render(c.FinalAmount.StringFixed(2)+" "+c.Fiat)))
	sb.WriteString(fmt.Sprintf("  %s %s\n",
		p.Muted.Render("Profit:  "),
		profitStyle.Render(sign+c.NetProfit.StringFixed(2)+" "+c.Fiat)))
	sb.WriteString(fmt.Sprintf("  %s %s\n",
		p.Muted.Render("ROI:     "),
		profitStyle.Render(c.ROIPercent.StringFixed(2)+"% ("+c.Tier+")")))

	return sb.String()
}
