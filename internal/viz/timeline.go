package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/entropylab/internal/timeline"
)

// Browser is the year strip under the simulation. Selecting a year shows its
// heading and description; Expand opens the popup with the longer note.
type Browser struct {
	events   []timeline.Event
	cursor   int
	active   bool
	expanded bool
}

func NewBrowser(events []timeline.Event) *Browser {
	return &Browser{events: events}
}

func (b *Browser) Active() bool   { return b.active }
func (b *Browser) Expanded() bool { return b.expanded }

// Toggle focuses or releases the strip. Releasing also closes the popup.
func (b *Browser) Toggle() {
	b.active = !b.active
	if !b.active {
		b.expanded = false
	}
}

func (b *Browser) Next() {
	if len(b.events) == 0 {
		return
	}
	b.cursor = (b.cursor + 1) % len(b.events)
}

func (b *Browser) Prev() {
	if len(b.events) == 0 {
		return
	}
	b.cursor = (b.cursor - 1 + len(b.events)) % len(b.events)
}

func (b *Browser) Expand() {
	if b.active && len(b.events) > 0 {
		b.expanded = !b.expanded
	}
}

func (b *Browser) Selected() (timeline.Event, bool) {
	if len(b.events) == 0 {
		return timeline.Event{}, false
	}
	return b.events[b.cursor], true
}

// View renders the year strip and, while focused, the selected event.
func (b *Browser) View() string {
	if len(b.events) == 0 {
		return ""
	}
	years := make([]string, len(b.events))
	for i, ev := range b.events {
		label := fmt.Sprintf("%d", ev.Year)
		if b.active && i == b.cursor {
			years[i] = lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Accent).Render("[" + label + "]")
		} else {
			years[i] = lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Render(" " + label + " ")
		}
	}
	out := strings.Join(years, "─")
	if !b.active {
		return out
	}
	ev := b.events[b.cursor]
	title := lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Secondary).Render(timeline.Heading(ev))
	return out + "\n" + title + "\n" + lipgloss.NewStyle().Foreground(CurrentTheme.Text).Width(70).Render(ev.Desc)
}

// Popup renders the expanded note, or "" when closed.
func (b *Browser) Popup() string {
	if !b.expanded {
		return ""
	}
	ev, ok := b.Selected()
	if !ok {
		return ""
	}
	body := lipgloss.NewStyle().Width(56).Render(timeline.Describe(ev))
	hint := KeyHint.Render("enter: close")
	return GlassPanel.BorderForeground(CurrentTheme.Accent).Render(body + "\n\n" + hint)
}
