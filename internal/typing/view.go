package typing

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Animation timing.
const (
	BouncePeriod  = time.Second
	FrameInterval = 50 * time.Millisecond
)

// Dot glyphs.
const (
	RaisedGlyph = "●"
	RestGlyph   = "•"
)

// Styles holds the lipgloss styles used to draw a Node.
type Styles struct {
	Container lipgloss.Style
	Dot       lipgloss.Style
	DotRaised lipgloss.Style
	Text      lipgloss.Style

	// Classes maps Node.ClassName to a style wrapped around the container.
	Classes map[string]lipgloss.Style
}

// DefaultStyles returns muted dots with an accent colour on the raised dot.
func DefaultStyles() Styles {
	return Styles{
		Container: lipgloss.NewStyle().
			Padding(0, 1),
		Dot: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
		DotRaised: lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true),
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Italic(true),
		Classes: map[string]lipgloss.Style{
			"status": lipgloss.NewStyle().MarginLeft(1),
		},
	}
}

// Renderer draws nodes at a point of the animation clock.
type Renderer struct {
	styles Styles
	period time.Duration
}

// NewRenderer creates a renderer with the given styles.
func NewRenderer(styles Styles) *Renderer {
	return &Renderer{styles: styles, period: BouncePeriod}
}

// View draws n as it looks elapsed after the animation started.
// A nil node draws as the empty string.
func (r *Renderer) View(n *Node, elapsed time.Duration) string {
	if n == nil {
		return ""
	}

	dots := make([]string, len(n.Dots))
	for i, d := range n.Dots {
		if Raised(d.Delay, elapsed, r.period) {
			dots[i] = r.styles.DotRaised.Render(RaisedGlyph)
		} else {
			dots[i] = r.styles.Dot.Render(RestGlyph)
		}
	}

	out := r.styles.Container.Render(strings.Join(dots, " ") + " " + r.styles.Text.Render(n.Text))

	// The class wraps the container so its margins and padding apply too
	if class, ok := r.styles.Classes[n.ClassName]; ok && n.ClassName != "" {
		out = class.Render(out)
	}
	return out
}

// Raised reports whether a dot with the given delay is in the upper half of
// its bounce. Dots whose delay has not elapsed yet stay at rest.
func Raised(delay, elapsed, period time.Duration) bool {
	if period <= 0 || elapsed < delay {
		return false
	}
	phase := (elapsed - delay) % period
	return phase < period/2
}

// TickMsg advances the owner's animation clock.
type TickMsg time.Time

// Tick schedules the next animation frame.
func Tick() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
