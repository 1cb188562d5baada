// Package infra contains adapters for the calc context.
package infra

import (
	"github.com/atotto/clipboard"
)

// ClipboardSurface copies share text to the system clipboard.
type ClipboardSurface struct{}

// NewClipboardSurface creates a clipboard-backed share surface.
func NewClipboardSurface() *ClipboardSurface {
	return &ClipboardSurface{}
}

// Copy writes text to the system clipboard.
func (s *ClipboardSurface) Copy(text string) error {
	return clipboard.WriteAll(text)
}
