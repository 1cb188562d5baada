package components

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// spreadBarWidth is the gauge width in cells.
const spreadBarWidth = 30

// SpreadGauge renders the buy/sell spread as a labeled progress bar. The fill
// percentage comes pre-computed from the domain.
type SpreadGauge struct {
	palette Palette

	spread decimal.Decimal
	fill   decimal.Decimal // 0-100
	tier   string
	loss   bool
	ready  bool
}

// NewSpreadGauge creates an empty spread gauge.
func NewSpreadGauge(p Palette) *SpreadGauge {
	return &SpreadGauge{palette: p}
}

// SetPalette swaps the color palette.
func (g *SpreadGauge) SetPalette(p Palette) {
	g.palette = p
}

// Update replaces the displayed spread. fill is the bar percentage in
// [0, 100], tier the label, loss whether the return is negative.
func (g *SpreadGauge) Update(spread, fill decimal.Decimal, tier string, loss bool) {
	g.spread = spread
	g.fill = fill
	g.tier = tier
	g.loss = loss
	g.ready = true
}

// View renders the gauge.
func (g *SpreadGauge) View() string {
	p := g.palette

	var sb strings.Builder
	sb.WriteString(p.Header.Render("SPREAD"))
	sb.WriteString("\n\n")

	if !g.ready {
		sb.WriteString(p.Muted.Render("  —"))
		return sb.String()
	}

	filled := int(g.fill.Mul(decimal.NewFromInt(spreadBarWidth)).Div(decimal.NewFromInt(100)).IntPart())
	if filled < 0 {
		filled = 0
	}
	if filled > spreadBarWidth {
		filled = spreadBarWidth
	}

	barStyle := p.Positive
	if g.loss {
		barStyle = p.Negative
	} else if g.tier == "Weak" {
		barStyle = p.Warning
	}

	bar := barStyle.Render(strings.Repeat("█", filled)) +
		p.Muted.Render(strings.Repeat("░", spreadBarWidth-filled))

	sb.WriteString(fmt.Sprintf("  %s %s\n", bar,
		p.Value.Render(g.spread.StringFixed(2)+"%")))
	sb.WriteString("  " + barStyle.Render(g.tier))

	return sb.String()
}
