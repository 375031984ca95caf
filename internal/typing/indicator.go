package typing

import "time"

// DefaultLabel is shown when Props.Label is empty.
const DefaultLabel = "typing"

// DotDelays are the animation offsets of the three dots.
var DotDelays = [3]time.Duration{
	0,
	150 * time.Millisecond,
	300 * time.Millisecond,
}

// Props are the inputs of the indicator.
type Props struct {
	IsTyping  bool
	Label     string // Defaults to DefaultLabel
	ClassName string // Optional extra style name, see Styles.Classes
}

// Dot is one animated marker.
type Dot struct {
	Delay time.Duration
}

// Node is the rendered indicator: the dots followed by the text.
type Node struct {
	ClassName string
	Dots      []Dot
	Text      string
}

// Render builds the indicator node for props.
// It returns nil when nothing is typing, whatever the other props are.
func Render(props Props) *Node {
	if !props.IsTyping {
		return nil
	}

	label := props.Label
	if label == "" {
		label = DefaultLabel
	}

	dots := make([]Dot, len(DotDelays))
	for i, d := range DotDelays {
		dots[i] = Dot{Delay: d}
	}

	return &Node{
		ClassName: props.ClassName,
		Dots:      dots,
		Text:      label + "...",
	}
}
