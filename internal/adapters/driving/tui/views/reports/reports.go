// Package reports provides the stored-reports list view for the TUI.
package reports

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sumdiff-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sumdiff-cli/internal/adapters/driving/tui/styles"
)

// maxVisible caps how many reports render at once.
const maxVisible = 15

// View lists stored reports, newest first.
type View struct {
	styles *styles.Styles

	paths    []string
	selected int
	loading  bool
	status   string
	err      error

	width  int
	height int
	ready  bool
}

// NewView creates a new reports view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		width:  80,
		height: 24,
	}
}

// Init marks the view as loading; the app issues the actual load.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.status = ""
	v.err = nil
	return nil
}

// Selected returns the currently selected report path, empty when the
// list is empty.
func (v *View) Selected() string {
	if v.selected < 0 || v.selected >= len(v.paths) {
		return ""
	}
	return v.paths[v.selected]
}

// Paths returns the listed report paths.
func (v *View) Paths() []string {
	return v.paths
}

// Update handles messages for the reports view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ReportsLoaded:
		v.loading = false
		v.err = msg.Err
		v.paths = msg.Paths
		if v.selected >= len(v.paths) {
			v.selected = 0
		}
		return v, nil

	case messages.ReportOpened:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.status = "Opened " + filepath.Base(msg.Path)
		return v, nil

	case messages.ReportHighlighted:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		if msg.Report != nil {
			v.status = "Highlighted " + filepath.Base(msg.Report.Path)
		}
		// The file was renamed on disk; ask for a fresh listing.
		v.loading = true
		return v, nil

	case tea.KeyMsg:
		return v.updateKeys(msg)
	}

	return v, nil
}

// updateKeys handles key presses.
func (v *View) updateKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
		return v, nil

	case "down", "j":
		if v.selected < len(v.paths)-1 {
			v.selected++
		}
		return v, nil

	case "enter", "o":
		if path := v.Selected(); path != "" {
			return v, func() tea.Msg {
				return messages.OpenReportRequested{Path: path}
			}
		}
		return v, nil

	case "c":
		if path := v.Selected(); path != "" {
			v.status = "Copied path"
			return v, func() tea.Msg {
				return messages.CopyPathRequested{Path: path}
			}
		}
		return v, nil

	case "h":
		if path := v.Selected(); path != "" {
			return v, func() tea.Msg {
				return messages.HighlightRequested{Path: path}
			}
		}
		return v, nil
	}

	return v, nil
}

// View renders the reports view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Reports"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))

	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))

	case len(v.paths) == 0:
		b.WriteString(v.styles.Muted.Render("No reports yet. Run an evaluation first."))

	default:
		v.renderList(&b)
	}

	b.WriteString("\n\n")
	if v.status != "" {
		b.WriteString(v.styles.Success.Render(v.status))
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Help.Render(
		"[Enter] Open  [c] Copy path  [h] Highlight  [r] Refresh  [Esc] Back"))

	return b.String()
}

// renderList writes the visible window of the report list.
func (v *View) renderList(b *strings.Builder) {
	start := 0
	if v.selected >= maxVisible {
		start = v.selected - maxVisible + 1
	}

	end := start + maxVisible
	if end > len(v.paths) {
		end = len(v.paths)
	}

	for i := start; i < end; i++ {
		cursor := "  "
		style := v.styles.Normal
		if i == v.selected {
			cursor = "> "
			style = v.styles.Selected
		}
		b.WriteString(cursor + style.Render(filepath.Base(v.paths[i])))
		b.WriteString("\n")
	}

	if len(v.paths) > maxVisible {
		b.WriteString(v.styles.Muted.Render(
			fmt.Sprintf("(%d of %d)", v.selected+1, len(v.paths))))
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}
