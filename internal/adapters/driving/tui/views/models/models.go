// Package models provides the configured-models status view for the TUI.
package models

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sumdiff-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sumdiff-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driving"
)

// View shows every configured model and whether its backend serves it.
type View struct {
	styles *styles.Styles

	statuses []driving.ModelStatus
	loading  bool
	err      error

	width  int
	height int
	ready  bool
}

// NewView creates a new models view.
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

// Init marks the view as loading; the app issues the status check.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.err = nil
	return nil
}

// Statuses returns the loaded model statuses.
func (v *View) Statuses() []driving.ModelStatus {
	return v.statuses
}

// Update handles messages for the models view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ModelsLoaded:
		v.loading = false
		v.err = msg.Err
		v.statuses = msg.Statuses
		return v, nil

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
	}

	return v, nil
}

// View renders the models view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Models"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Checking backends..."))

	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))

	case len(v.statuses) == 0:
		b.WriteString(v.styles.Muted.Render("No models configured."))

	default:
		for _, status := range v.statuses {
			line := fmt.Sprintf("%-32s %-16s", status.Model, status.Provider.Description())
			if status.Available {
				b.WriteString(v.styles.Normal.Render(line))
				b.WriteString(v.styles.Success.Render("available"))
			} else {
				b.WriteString(v.styles.Normal.Render(line))
				b.WriteString(v.styles.Error.Render("unavailable"))
				if status.Detail != "" {
					b.WriteString(v.styles.Muted.Render(" (" + status.Detail + ")"))
				}
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[r] Refresh  [Esc] Back"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}
