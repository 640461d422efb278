package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/Aishwarya3011/gapr-sub000/pkg/model"
	"github.com/Aishwarya3011/gapr-sub000/pkg/skeleton"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "replayed"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Store Summary
// =============================================================================

// summaryView is the part of a store scope printSummary reads.
type summaryView interface {
	Stats() skeleton.Stats
	Commits() uint32
	NextNodeID() model.NodeID
	Raised() bool
}

// printSummary prints the entity counts of a store. res is nil for a store
// loaded from a snapshot file.
func printSummary(v summaryView, res *replayResult) {
	st := v.Stats()
	printKeyValue("commits", fmt.Sprint(v.Commits()))
	printKeyValue("nodes", fmt.Sprint(st.Nodes))
	printKeyValue("vertices", fmt.Sprint(st.Vertices))
	printKeyValue("edges", fmt.Sprintf("%d (%d in loops)", st.Edges, st.Loops))
	printKeyValue("props", fmt.Sprint(st.Props))
	printKeyValue("roots", fmt.Sprint(st.Roots))
	printKeyValue("next node", fmt.Sprint(v.NextNodeID()))
	if v.Raised() {
		printWarning("Store has raised edges")
	}
	if res == nil {
		return
	}
	status := styleComputed.Render(iconFresh)
	if res.Cached {
		status = styleCached.Render(iconCached)
	}
	printDetail("history %s · %s", res.Hash[:12], status)
	if len(res.History.Tail) > 0 {
		printWarning("%d commits after the gap at %d were not replayed", len(res.History.Tail), res.History.BodyCount()+1)
	}
}
