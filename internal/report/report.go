// Package report renders split and inspect results for the terminal.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"cleave/internal/depgraph"
	"cleave/internal/split"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	movedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	keptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	noopStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
)

// Options controls rendering.
type Options struct {
	Color bool
}

func (o Options) style(s lipgloss.Style, text string) string {
	if !o.Color {
		return text
	}
	return s.Render(text)
}

// Render formats a split result, no-op included.
func Render(res *split.Result, opts Options) string {
	var b strings.Builder

	title := fmt.Sprintf("split %s (depth <= %d)", res.Source, res.Threshold)
	b.WriteString(opts.style(titleStyle, title))
	b.WriteByte('\n')

	if res.NoOp {
		b.WriteString(opts.style(noopStyle, "no types at or below the threshold; nothing to do"))
		b.WriteByte('\n')
		return b.String()
	}

	b.WriteString(fmt.Sprintf("destination %s -> %s (%d types)\n", res.Dest, res.DestPath, len(res.Moved)))
	b.WriteString(fmt.Sprintf("residual    %s -> %s (%d top-level types)\n", res.Source, res.ResidualPath, len(res.Kept)))

	width := nameColumnWidth(res.Moved, res.Kept)
	for _, name := range res.Moved {
		b.WriteString("  ")
		b.WriteString(opts.style(movedStyle, pad(name, width)))
		b.WriteString(fmt.Sprintf("  depth %d  -> %s\n", res.Depths[name], res.Dest.Name))
	}
	for _, name := range res.Kept {
		b.WriteString("  ")
		b.WriteString(opts.style(keptStyle, pad(name, width)))
		b.WriteString(fmt.Sprintf("  depth %d\n", res.Depths[name]))
	}
	return b.String()
}

// RenderDepths formats a depth listing with a histogram, for inspect.
func RenderDepths(depths depgraph.DepthTable, opts Options) string {
	names := make([]string, 0, len(depths))
	maxDepth := 0
	for name, d := range depths {
		names = append(names, name)
		if d > maxDepth {
			maxDepth = d
		}
	}
	sort.Slice(names, func(i, j int) bool {
		if depths[names[i]] != depths[names[j]] {
			return depths[names[i]] < depths[names[j]]
		}
		return names[i] < names[j]
	})

	var b strings.Builder
	width := nameColumnWidth(names, nil)
	for _, name := range names {
		b.WriteString(fmt.Sprintf("  %s  depth %d\n", pad(name, width), depths[name]))
	}

	counts := make([]int, maxDepth+1)
	for _, d := range depths {
		counts[d]++
	}
	for d := 1; d <= maxDepth; d++ {
		bar := strings.Repeat("#", counts[d])
		b.WriteString(fmt.Sprintf("  depth %d %s %d\n", d, opts.style(barStyle, bar), counts[d]))
	}
	return b.String()
}

func nameColumnWidth(a, b []string) int {
	width := 0
	for _, name := range a {
		if w := runewidth.StringWidth(name); w > width {
			width = w
		}
	}
	for _, name := range b {
		if w := runewidth.StringWidth(name); w > width {
			width = w
		}
	}
	return width
}

func pad(name string, width int) string {
	gap := width - runewidth.StringWidth(name)
	if gap <= 0 {
		return name
	}
	return name + strings.Repeat(" ", gap)
}
