package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Slider is an adjustable numeric parameter with a visual track.
type Slider struct {
	Label   string
	Value   float64
	Min     float64
	Max     float64
	Step    float64
	Format  string
	Width   int
	Focused bool
}

// NewSlider creates a slider with a default width and format.
func NewSlider(label string, value, min, max, step float64) *Slider {
	return &Slider{
		Label:  label,
		Value:  value,
		Min:    min,
		Max:    max,
		Step:   step,
		Format: "%.2f",
		Width:  28,
	}
}

// WithFormat overrides the value format verb.
func (s *Slider) WithFormat(format string) *Slider {
	s.Format = format
	return s
}

// Increment moves the value up one step, clamped at Max.
func (s *Slider) Increment() {
	if v := s.Value + s.Step; v <= s.Max+s.Step/2 {
		s.Value = v
	}
	if s.Value > s.Max {
		s.Value = s.Max
	}
}

// Decrement moves the value down one step, clamped at Min.
func (s *Slider) Decrement() {
	if v := s.Value - s.Step; v >= s.Min-s.Step/2 {
		s.Value = v
	}
	if s.Value < s.Min {
		s.Value = s.Min
	}
}

// Render draws the label, track, and current value on one line.
func (s *Slider) Render() string {
	span := s.Max - s.Min
	if span <= 0 {
		span = 1
	}
	filled := int(float64(s.Width) * (s.Value - s.Min) / span)
	if filled < 0 {
		filled = 0
	}
	if filled > s.Width {
		filled = s.Width
	}

	track := strings.Repeat("█", filled) + strings.Repeat("░", s.Width-filled)

	labelStyle := lipgloss.NewStyle().Width(22)
	trackStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	if s.Focused {
		labelStyle = labelStyle.Bold(true).Foreground(lipgloss.Color("#7D56F4"))
		trackStyle = trackStyle.Foreground(lipgloss.Color("#7D56F4"))
	}

	value := fmt.Sprintf(s.Format, s.Value)
	return fmt.Sprintf("%s %s %s",
		labelStyle.Render(s.Label),
		trackStyle.Render(track),
		lipgloss.NewStyle().Bold(s.Focused).Render(value),
	)
}
