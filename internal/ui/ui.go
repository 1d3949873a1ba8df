// Package ui renders the installer's user-facing status lines.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Colors match the 256-color palette the seaside tooling has always used.
const (
	ColorInfo    = lipgloss.Color("248")
	ColorWarning = lipgloss.Color("3")
	ColorError   = lipgloss.Color("1")
)

// Printer writes styled lines to a single stream. Colors are dropped
// automatically when the stream is not a terminal.
type Printer struct {
	w    io.Writer
	info lipgloss.Style
	warn lipgloss.Style
	fail lipgloss.Style
}

// New returns a Printer for w.
func New(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:    w,
		info: r.NewStyle().Foreground(ColorInfo),
		warn: r.NewStyle().Foreground(ColorWarning),
		fail: r.NewStyle().Foreground(ColorError),
	}
}

// Infof writes a gray progress line.
func (p *Printer) Infof(format string, args ...any) {
	fmt.Fprintln(p.w, p.info.Render(fmt.Sprintf(format, args...)))
}

// Warnf writes a yellow line prefixed with [WARNING].
func (p *Printer) Warnf(format string, args ...any) {
	fmt.Fprintln(p.w, p.warn.Render("[WARNING] "+fmt.Sprintf(format, args...)))
}

// Errorf writes a red line prefixed with [ERROR].
func (p *Printer) Errorf(format string, args ...any) {
	fmt.Fprintln(p.w, p.fail.Render("[ERROR] "+fmt.Sprintf(format, args...)))
}
