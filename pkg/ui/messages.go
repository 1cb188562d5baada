package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	marketApp "github.com/p2ppro/p2p-calc/business/market/app"
	marketDomain "github.com/p2ppro/p2p-calc/business/market/domain"
)

// Message types for TUI updates.

// RefreshStartedMsg is sent when a market refresh cycle begins.
type RefreshStartedMsg struct {
	Manual bool
}

// SnapshotMsg is sent when a market refresh cycle completes.
type SnapshotMsg struct {
	Snapshot marketApp.Snapshot
	Manual   bool
}

// RefreshFailedMsg is sent when a refresh cycle is discarded entirely.
type RefreshFailedMsg struct {
	Err    error
	Manual bool
}

// InsightMsg delivers an on-demand market analysis.
type InsightMsg struct {
	Insight marketDomain.Insight
}

// InsightFailedMsg is sent when the insight fetch fails outright.
type InsightFailedMsg struct {
	Err error
}

// NoticeKind classifies a transient notification.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeError
)

// NoticeMsg shows a transient notification line.
type NoticeMsg struct {
	Text string
	Kind NoticeKind
	TTL  time.Duration
}

// noticeExpiredMsg dismisses the notification with the matching sequence
// number. A stale sequence is ignored so a newer notice is not cut short.
type noticeExpiredMsg struct {
	seq int
}

// Notice TTLs.
const (
	noticeTTL      = 3 * time.Second
	noticeShortTTL = 2 * time.Second
)

// expireNotice schedules dismissal of notice seq after ttl.
func expireNotice(seq int, ttl time.Duration) tea.Cmd {
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}
