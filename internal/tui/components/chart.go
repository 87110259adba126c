// Package components holds the reusable rendering widgets used by the
// what-if explorer.
package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Series is a single line in a chart.
type Series struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// Chart renders one or more series as an ASCII line chart. It is used
// for net worth trajectories and Monte Carlo percentile bands.
type Chart struct {
	Title  string
	Series []Series
	Width  int
	Height int
}

// NewChart creates a chart with sensible terminal dimensions.
func NewChart(title string) *Chart {
	return &Chart{Title: title, Width: 64, Height: 14}
}

// AddSeries appends a line to the chart.
func (c *Chart) AddSeries(name string, points []float64, color lipgloss.Color) *Chart {
	c.Series = append(c.Series, Series{Name: name, Points: points, Color: color})
	return c
}

// WithSize overrides the chart dimensions.
func (c *Chart) WithSize(width, height int) *Chart {
	if width > 20 {
		c.Width = width
	}
	if height > 5 {
		c.Height = height
	}
	return c
}

// Render draws the chart grid with a y-axis scale and a legend.
func (c *Chart) Render() string {
	if len(c.Series) == 0 || len(c.Series[0].Points) == 0 {
		return "no data"
	}

	lo, hi := c.bounds()
	if hi == lo {
		hi = lo + 1
	}

	grid := make([][]rune, c.Height)
	colors := make([][]lipgloss.Color, c.Height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", c.Width))
		colors[r] = make([]lipgloss.Color, c.Width)
	}

	for _, s := range c.Series {
		c.plot(grid, colors, s, lo, hi)
	}

	var b strings.Builder
	if c.Title != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(c.Title))
		b.WriteString("\n")
	}

	axisStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	for r := 0; r < c.Height; r++ {
		value := hi - (hi-lo)*float64(r)/float64(c.Height-1)
		b.WriteString(axisStyle.Render(fmt.Sprintf("%10s │", compactMoney(value))))
		b.WriteString(renderRow(grid[r], colors[r]))
		b.WriteString("\n")
	}
	b.WriteString(axisStyle.Render(strings.Repeat(" ", 10) + "└" + strings.Repeat("─", c.Width)))
	b.WriteString("\n")

	if len(c.Series) > 1 {
		b.WriteString(c.legend())
	}
	return b.String()
}

func (c *Chart) plot(grid [][]rune, colors [][]lipgloss.Color, s Series, lo, hi float64) {
	n := len(s.Points)
	for col := 0; col < c.Width; col++ {
		idx := col * (n - 1) / maxInt(c.Width-1, 1)
		if n == 1 {
			idx = 0
		}
		norm := (s.Points[idx] - lo) / (hi - lo)
		row := int(math.Round(float64(c.Height-1) * (1 - norm)))
		if row < 0 {
			row = 0
		}
		if row >= c.Height {
			row = c.Height - 1
		}
		grid[row][col] = '•'
		colors[row][col] = s.Color
	}
}

func (c *Chart) bounds() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, p := range s.Points {
			lo = math.Min(lo, p)
			hi = math.Max(hi, p)
		}
	}
	return lo, hi
}

func (c *Chart) legend() string {
	parts := make([]string, 0, len(c.Series))
	for _, s := range c.Series {
		parts = append(parts, lipgloss.NewStyle().Foreground(s.Color).Render("• "+s.Name))
	}
	return strings.Join(parts, "   ")
}

func renderRow(cells []rune, cellColors []lipgloss.Color) string {
	var b strings.Builder
	for i, r := range cells {
		if r == ' ' {
			b.WriteRune(' ')
			continue
		}
		b.WriteString(lipgloss.NewStyle().Foreground(cellColors[i]).Render(string(r)))
	}
	return b.String()
}

// compactMoney formats a value for the y-axis scale.
func compactMoney(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e6:
		return fmt.Sprintf("$%.1fM", v/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("$%.0fK", v/1e3)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
