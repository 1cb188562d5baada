package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	calcApp "github.com/p2ppro/p2p-calc/business/calc/app"
	calcDomain "github.com/p2ppro/p2p-calc/business/calc/domain"
	histApp "github.com/p2ppro/p2p-calc/business/history/app"
	marketApp "github.com/p2ppro/p2p-calc/business/market/app"
	marketDomain "github.com/p2ppro/p2p-calc/business/market/domain"
	"github.com/p2ppro/p2p-calc/internal/currency"
	"github.com/p2ppro/p2p-calc/internal/logger"
	"github.com/p2ppro/p2p-calc/internal/state"
	"github.com/p2ppro/p2p-calc/pkg/ui/components"
)

// Input field indices. Focus cycles over the inputs, then the offers table,
// then the history sidebar.
const (
	fieldInvestment = iota
	fieldBuyRate
	fieldSellRate
	fieldFeePercent
	fieldCount
)

const (
	focusOffers = fieldCount + iota
	focusHistory
	focusCount
)

const insightTimeout = 45 * time.Second

// selectionHolder shares the current market selection with the poller
// goroutine.
type selectionHolder struct {
	mu  sync.RWMutex
	sel marketDomain.Selection
}

func (h *selectionHolder) Get() marketDomain.Selection {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.sel
}

func (h *selectionHolder) Set(sel marketDomain.Selection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sel = sel
}

// Deps are the application services the TUI renders.
type Deps struct {
	Calculator *calcApp.Calculator
	History    *histApp.Store
	Market     *marketApp.Service
	Poller     *marketApp.Poller
	State      *state.Store
	Currencies *currency.Registry
	Log        logger.LoggerInterface
}

// notice is the transient notification line.
type noticeState struct {
	text string
	kind NoticeKind
	seq  int
}

// Model is the main Bubble Tea model.
type Model struct {
	deps      Deps
	selection *selectionHolder
	keys      KeyMap
	help      help.Model

	theme  Theme
	styles Styles

	// Components
	inputs  [fieldCount]textinput.Model
	offers  *components.OffersComponent
	history *components.HistoryComponent
	results *components.ResultsComponent
	gauge   *components.SpreadGauge
	spin    spinner.Model

	// Selector rings
	coins []string
	fiats []string

	// State
	focus          int
	width          int
	height         int
	ready          bool
	quitting       bool
	refreshing     bool
	manualRefresh  bool
	lastUpdated    time.Time
	rates          marketDomain.Rates
	haveRates      bool
	insight        *marketDomain.Insight
	insightLoading bool
	inputError     string
	notice         noticeState
}

// New creates the TUI model and wires it to the poller.
func New(deps Deps) Model {
	inputs := deps.Calculator.Inputs()

	holder := &selectionHolder{sel: marketDomain.Selection{
		Exchange: inputs.Exchange,
		Coin:     inputs.Coin,
		Fiat:     inputs.Fiat,
	}}
	deps.Poller.SetSelectionFn(holder.Get)
	deps.Poller.SetListener(PollerListener{})

	var themeName ThemeName
	deps.State.Get(state.KeyTheme, &themeName)
	theme := themeFor(themeName)
	palette := theme.Palette()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		deps:      deps,
		selection: holder,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		theme:     theme,
		styles:    NewStyles(theme),
		offers:    components.NewOffersComponent(palette),
		history:   components.NewHistoryComponent(palette),
		results:   components.NewResultsComponent(palette),
		gauge:     components.NewSpreadGauge(palette),
		spin:      sp,
		coins:     currencyCodes(deps.Currencies.Stablecoins()),
		fiats:     currencyCodes(deps.Currencies.Fiats()),
	}

	m.initInputs(inputs)
	m.showResult(deps.Calculator.Result())
	m.reloadHistory()

	return m
}

func currencyCodes(list []*currency.Currency) []string {
	codes := make([]string, 0, len(list))
	for _, c := range list {
		codes = append(codes, c.Code())
	}
	return codes
}

func (m *Model) initInputs(in calcDomain.Inputs) {
	labels := [fieldCount]string{"Investment", "Buy rate", "Sell rate", "Fee %"}
	values := [fieldCount]string{
		in.Investment.String(),
		in.BuyRate.String(),
		in.SellRate.String(),
		in.FeePercent.String(),
	}

	for i := 0; i < fieldCount; i++ {
		ti := textinput.New()
		ti.Placeholder = labels[i]
		ti.SetValue(values[i])
		ti.CharLimit = 16
		ti.Width = 14
		ti.Prompt = ""
		m.inputs[i] = ti
	}
	m.inputs[fieldInvestment].Focus()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case RefreshStartedMsg:
		m.refreshing = true
		m.manualRefresh = msg.Manual
		return m, nil

	case SnapshotMsg:
		m.refreshing = false
		m.rates = msg.Snapshot.Rates
		m.haveRates = true
		m.lastUpdated = msg.Snapshot.FetchedAt
		m.offers.Update(offerRows(msg.Snapshot.Offers), msg.Snapshot.Rates.Source == marketDomain.SourceLive)
		if msg.Manual {
			return m.showNotice(NoticeSuccess, "Market data updated", noticeTTL)
		}
		return m, nil

	case RefreshFailedMsg:
		m.refreshing = false
		if msg.Manual {
			return m.showNotice(NoticeError, "Refresh failed: "+msg.Err.Error(), noticeTTL)
		}
		return m, nil

	case InsightMsg:
		m.insightLoading = false
		insight := msg.Insight
		m.insight = &insight
		return m, nil

	case InsightFailedMsg:
		m.insightLoading = false
		return m.showNotice(NoticeError, "Analysis failed: "+msg.Err.Error(), noticeTTL)

	case NoticeMsg:
		return m.showNotice(msg.Kind, msg.Text, msg.TTL)

	case noticeExpiredMsg:
		if msg.seq == m.notice.seq {
			m.notice.text = ""
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Tab):
		return m.moveFocus(1), nil

	case key.Matches(msg, keys.ShiftTab):
		return m.moveFocus(-1), nil

	case key.Matches(msg, keys.Up):
		switch m.focus {
		case focusOffers:
			m.offers.CursorUp()
		case focusHistory:
			m.history.CursorUp()
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		switch m.focus {
		case focusOffers:
			m.offers.CursorDown()
		case focusHistory:
			m.history.CursorDown()
		}
		return m, nil

	case key.Matches(msg, keys.Apply):
		switch m.focus {
		case focusOffers:
			return m.applySelectedOffer()
		case focusHistory:
			return m.restoreSelectedEntry()
		}
		return m, nil

	case key.Matches(msg, keys.Save):
		return m.saveCalculation()

	case key.Matches(msg, keys.Delete):
		if m.focus == focusHistory {
			return m.deleteSelectedEntry()
		}
		return m, nil

	case key.Matches(msg, keys.Share):
		return m.shareCalculation()

	case key.Matches(msg, keys.Refresh):
		if !m.deps.Poller.RequestRefresh() {
			return m.showNotice(NoticeInfo, "Refresh already in progress", noticeShortTTL)
		}
		return m, nil

	case key.Matches(msg, keys.Interval):
		return m.cycleInterval()

	case key.Matches(msg, keys.Exchange):
		return m.cycleSelection(func(s marketDomain.Selection) marketDomain.Selection {
			return s.NextExchange()
		})

	case key.Matches(msg, keys.Coin):
		return m.cycleSelection(func(s marketDomain.Selection) marketDomain.Selection {
			return s.NextCoin(m.coins)
		})

	case key.Matches(msg, keys.Fiat):
		return m.cycleSelection(func(s marketDomain.Selection) marketDomain.Selection {
			return s.NextFiat(m.fiats)
		})

	case key.Matches(msg, keys.Insight):
		return m.fetchInsight()

	case key.Matches(msg, keys.Theme):
		return m.toggleTheme()
	}

	// Anything else goes to the focused text input.
	if m.focus < fieldCount {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		m.recalculate()
		return m, cmd
	}

	return m, nil
}

func (m Model) moveFocus(delta int) Model {
	if m.focus < fieldCount {
		m.inputs[m.focus].Blur()
	}

	m.focus = (m.focus + delta + focusCount) % focusCount

	if m.focus < fieldCount {
		m.inputs[m.focus].Focus()
	}
	return m
}

// recalculate parses the input fields and reruns the calculation. Invalid
// input keeps the previous result and surfaces a field error.
func (m *Model) recalculate() {
	values := [fieldCount]decimal.Decimal{}
	for i := 0; i < fieldCount; i++ {
		v, err := decimal.NewFromString(strings.TrimSpace(m.inputs[i].Value()))
		if err != nil {
			m.inputError = m.inputs[i].Placeholder + " is not a number"
			return
		}
		values[i] = v
	}

	sel := m.selection.Get()
	result, err := m.deps.Calculator.SetInputs(context.Background(), calcDomain.Inputs{
		Investment: values[fieldInvestment],
		BuyRate:    values[fieldBuyRate],
		SellRate:   values[fieldSellRate],
		FeePercent: values[fieldFeePercent],
		Exchange:   sel.Exchange,
		Coin:       sel.Coin,
		Fiat:       sel.Fiat,
	})
	if err != nil {
		m.inputError = err.Error()
		return
	}

	m.inputError = ""
	m.showResult(result)
}

func (m *Model) showResult(r calcDomain.Result) {
	m.results.Update(components.ResultCards{
		Fiat:        r.Inputs.Fiat,
		Coin:        r.Inputs.Coin,
		Acquired:    r.Acquired,
		FinalAmount: r.FinalAmount,
		NetProfit:   r.NetProfit,
		ROIPercent:  r.ROIPercent,
		Tier:        calcDomain.Classify(r.ROIPercent).String(),
		Profitable:  r.IsProfitable(),
	})
	// The gauge grades the spread; the ROI has its own tier on the card.
	m.gauge.Update(
		r.SpreadPercent,
		calcDomain.BarPercent(r.SpreadPercent),
		r.Tier.String(),
		r.Tier == calcDomain.TierLoss,
	)
}

func (m *Model) reloadHistory() {
	entries := m.deps.History.Entries()
	rows := make([]components.HistoryRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, components.HistoryRow{
			ID:         e.ID,
			CreatedAt:  time.UnixMilli(e.CreatedAt),
			Exchange:   e.Exchange,
			Coin:       e.Coin,
			Fiat:       e.Fiat,
			Investment: e.Investment,
			NetProfit:  e.NetProfit,
			ROIPercent: e.ROIPercent,
		})
	}
	m.history.Update(rows)
}

func offerRows(offers []marketDomain.Offer) []components.OfferRow {
	rows := make([]components.OfferRow, 0, len(offers))
	for _, o := range offers {
		rows = append(rows, components.OfferRow{
			Channel:       o.Channel,
			BuyRate:       o.BuyRate,
			SellRate:      o.SellRate,
			SpreadPercent: o.SpreadPercent,
			Grade:         o.Efficiency.String(),
		})
	}
	return rows
}

func (m Model) applySelectedOffer() (tea.Model, tea.Cmd) {
	row, ok := m.offers.Selected()
	if !ok {
		return m, nil
	}

	m.inputs[fieldBuyRate].SetValue(row.BuyRate.String())
	m.inputs[fieldSellRate].SetValue(row.SellRate.String())
	m.recalculate()

	return m.showNotice(NoticeInfo, "Applied rates from "+row.Channel, noticeTTL)
}

func (m Model) saveCalculation() (tea.Model, tea.Cmd) {
	m.deps.History.Append(context.Background(), m.deps.Calculator.Result())
	m.reloadHistory()
	return m.showNotice(NoticeSuccess, "Saved to history", noticeShortTTL)
}

func (m Model) restoreSelectedEntry() (tea.Model, tea.Cmd) {
	row, ok := m.history.Selected()
	if !ok {
		return m, nil
	}

	inputs, err := m.deps.History.Restore(row.ID)
	if err != nil {
		return m.showNotice(NoticeError, "Entry no longer exists", noticeTTL)
	}

	m.selection.Set(marketDomain.Selection{
		Exchange: inputs.Exchange,
		Coin:     inputs.Coin,
		Fiat:     inputs.Fiat,
	})
	m.inputs[fieldInvestment].SetValue(inputs.Investment.String())
	m.inputs[fieldBuyRate].SetValue(inputs.BuyRate.String())
	m.inputs[fieldSellRate].SetValue(inputs.SellRate.String())
	m.inputs[fieldFeePercent].SetValue(inputs.FeePercent.String())
	m.recalculate()

	return m.showNotice(NoticeInfo, "Calculation restored", noticeTTL)
}

func (m Model) deleteSelectedEntry() (tea.Model, tea.Cmd) {
	row, ok := m.history.Selected()
	if !ok {
		return m, nil
	}

	m.deps.History.Remove(context.Background(), row.ID)
	m.reloadHistory()
	return m.showNotice(NoticeInfo, "Entry deleted", noticeShortTTL)
}

func (m Model) shareCalculation() (tea.Model, tea.Cmd) {
	if err := m.deps.Calculator.Share(context.Background()); err != nil {
		return m.showNotice(NoticeError, "Copy failed: clipboard unavailable", noticeTTL)
	}
	return m.showNotice(NoticeSuccess, "Copied to clipboard", noticeShortTTL)
}

func (m Model) cycleInterval() (tea.Model, tea.Cmd) {
	next := marketApp.NextInterval(m.deps.Poller.Interval())
	m.deps.Poller.SetInterval(context.Background(), next)

	label := "Auto-refresh off"
	if next > 0 {
		label = "Auto-refresh every " + next.String()
	}
	return m.showNotice(NoticeInfo, label, noticeShortTTL)
}

func (m Model) cycleSelection(advance func(marketDomain.Selection) marketDomain.Selection) (tea.Model, tea.Cmd) {
	m.selection.Set(advance(m.selection.Get()))
	m.recalculate()
	m.insight = nil
	// Selection changes refresh in the background, without the manual-path
	// notification.
	m.deps.Poller.RequestSilentRefresh()
	return m, nil
}

func (m Model) fetchInsight() (tea.Model, tea.Cmd) {
	if m.insightLoading {
		return m, nil
	}
	m.insightLoading = true

	sel := m.selection.Get()
	result := m.deps.Calculator.Result()
	market := m.deps.Market

	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), insightTimeout)
		defer cancel()

		insight, err := market.Insight(ctx, sel, result)
		if err != nil {
			return InsightFailedMsg{Err: err}
		}
		return InsightMsg{Insight: insight}
	}
}

func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	m.theme = m.theme.Toggle()
	m.styles = NewStyles(m.theme)

	palette := m.theme.Palette()
	m.offers.SetPalette(palette)
	m.history.SetPalette(palette)
	m.results.SetPalette(palette)
	m.gauge.SetPalette(palette)

	if err := m.deps.State.Set(state.KeyTheme, m.theme.Name); err != nil {
		m.deps.Log.Warn(context.Background(), "failed to persist theme", "error", err)
	}

	return m.showNotice(NoticeInfo, string(m.theme.Name)+" theme", noticeShortTTL)
}

func (m Model) showNotice(kind NoticeKind, text string, ttl time.Duration) (tea.Model, tea.Cmd) {
	m.notice.seq++
	m.notice.text = text
	m.notice.kind = kind
	return m, expireNotice(m.notice.seq, ttl)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return "\n  Bye!\n\n"
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	s := m.styles
	sel := m.selection.Get()

	var b strings.Builder
	b.WriteString(s.Title.Render(" P2P Arbitrage Calculator "))
	b.WriteString("\n\n")
	b.WriteString(m.renderStatusBar(sel))
	b.WriteString("\n\n")

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderInputs(sel),
		"",
		m.results.View(),
		"",
		m.gauge.View(),
		"",
		m.renderInsight(),
	)

	right := lipgloss.JoinVertical(lipgloss.Left,
		m.boxFor(focusOffers).Render(m.offers.View(m.focus == focusOffers)),
		m.boxFor(focusHistory).Render(m.history.View(m.focus == focusHistory)),
	)

	if m.width > 110 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			s.Box.Width(m.width/2-2).Render(left),
			lipgloss.NewStyle().Width(m.width/2-2).Render(right),
		))
	} else {
		b.WriteString(s.Box.Width(m.width - 4).Render(left))
		b.WriteString("\n")
		b.WriteString(right)
	}

	b.WriteString("\n")
	b.WriteString(m.renderNotice())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m Model) boxFor(focus int) lipgloss.Style {
	if m.focus == focus {
		return m.styles.FocusBox
	}
	return m.styles.Box
}

func (m Model) renderStatusBar(sel marketDomain.Selection) string {
	s := m.styles
	parts := []string{
		s.Value.Render(sel.Exchange) + s.Muted.Render(" (e)"),
		s.Value.Render(sel.Coin) + s.Muted.Render(" (c)"),
		s.Value.Render(sel.Fiat) + s.Muted.Render(" (f)"),
	}

	interval := m.deps.Poller.Interval()
	if interval == 0 {
		parts = append(parts, s.Muted.Render("auto: off (i)"))
	} else {
		parts = append(parts, s.Muted.Render("auto: "+interval.String()+" (i)"))
	}

	if m.haveRates {
		rate := m.rates.BuyRate.StringFixed(2) + " / " + m.rates.SellRate.StringFixed(2)
		if m.rates.Source == marketDomain.SourceLive {
			parts = append(parts, s.Positive.Render("● "+rate))
		} else {
			parts = append(parts, s.Warning.Render("○ "+rate+" (ref)"))
		}
	}

	if m.refreshing {
		parts = append(parts, s.Notice.Render(m.spin.View()+"refreshing"))
	} else if !m.lastUpdated.IsZero() {
		ago := time.Since(m.lastUpdated).Round(time.Second)
		parts = append(parts, s.Muted.Render("updated "+ago.String()+" ago"))
	}

	return strings.Join(parts, s.Muted.Render("  │  "))
}

func (m Model) renderInputs(sel marketDomain.Selection) string {
	s := m.styles

	var sb strings.Builder
	sb.WriteString(s.Header.Render(fmt.Sprintf("INPUTS (%s, %s → %s)", sel.Exchange, sel.Coin, sel.Fiat)))
	sb.WriteString("\n\n")

	labels := [fieldCount]string{"Investment", "Buy rate  ", "Sell rate ", "Fee %     "}
	for i := 0; i < fieldCount; i++ {
		marker := "  "
		if m.focus == i {
			marker = s.Notice.Render("> ")
		}
		sb.WriteString(fmt.Sprintf("%s%s %s\n", marker, s.Label.Render(labels[i]), m.inputs[i].View()))
	}

	if m.inputError != "" {
		sb.WriteString("\n")
		sb.WriteString(s.Error.Render("  " + m.inputError))
	}

	return sb.String()
}

func (m Model) renderInsight() string {
	s := m.styles

	var sb strings.Builder
	sb.WriteString(s.Header.Render("ANALYSIS"))
	sb.WriteString("\n\n")

	switch {
	case m.insightLoading:
		sb.WriteString(s.Muted.Render("  " + m.spin.View() + "Asking the market..."))
	case m.insight == nil:
		sb.WriteString(s.Muted.Render("  Press g to analyze this trade."))
	default:
		in := m.insight
		sb.WriteString("  " + s.Label.Render("Risk: "))
		sb.WriteString(s.RiskStyle(in.Risk).Render(in.Risk.String()))
		if in.Source == marketDomain.SourceFallback {
			sb.WriteString(s.Muted.Render("  (offline)"))
		}
		sb.WriteString("\n\n")
		sb.WriteString("  " + wordwrap(in.Summary, 54, "  ") + "\n")
		for _, tip := range in.Tips {
			sb.WriteString(s.Muted.Render("  • "+wordwrap(tip, 52, "    ")) + "\n")
		}
	}

	return sb.String()
}

func (m Model) renderNotice() string {
	if m.notice.text == "" {
		return ""
	}

	switch m.notice.kind {
	case NoticeSuccess:
		return m.styles.Success.Render(" ✓ " + m.notice.text)
	case NoticeError:
		return m.styles.Error.Render(" ✗ " + m.notice.text)
	default:
		return m.styles.Notice.Render(" • " + m.notice.text)
	}
}

// wordwrap breaks text into lines of at most width runes, indenting
// continuation lines.
func wordwrap(text string, width int, indent string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	lines = append(lines, line)

	return strings.Join(lines, "\n"+indent)
}

// Program holds the Bubble Tea program instance for external access.
var Program *tea.Program

// Run starts the Bubble Tea program and blocks until it exits.
func Run(m Model) error {
	Program = tea.NewProgram(m, tea.WithAltScreen())
	_, err := Program.Run()
	return err
}

// Send sends a message to the running program. A nil program (CLI mode,
// startup race) drops the message.
func Send(msg tea.Msg) {
	if Program != nil {
		Program.Send(msg)
	}
}
