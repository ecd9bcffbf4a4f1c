// Package prompt provides the direct prompt input view for the TUI.
package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sumdiff-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sumdiff-cli/internal/adapters/driving/tui/styles"
)

// View is the direct prompt input view. The entered text is sent to
// every configured model and compared like a summarisation run.
type View struct {
	styles *styles.Styles
	input  textinput.Model
	width  int
	height int
	ready  bool
}

// NewView creates a new prompt view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Ask every model the same question..."
	ti.CharLimit = 512
	ti.Width = 60

	return &View{
		styles: s,
		input:  ti,
		width:  80,
		height: 24,
	}
}

// Init initialises the view and focuses the input.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.input.Focus(), textinput.Blink)
}

// Update handles messages for the prompt view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}

		case tea.KeyEnter:
			text := strings.TrimSpace(v.input.Value())
			if text == "" {
				return v, nil
			}
			return v, func() tea.Msg {
				return messages.RunRequested{Kind: messages.RunPrompt, Prompt: text}
			}
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// View renders the prompt view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Direct Prompt"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("Every configured model answers; unique words are highlighted."))
	b.WriteString("\n\n")
	b.WriteString(v.styles.InputField.Render(v.input.View()))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[Enter] Run  [Esc] Back"))

	return b.String()
}

// Reset clears the input.
func (v *View) Reset() {
	v.input.Reset()
}

// Value returns the current input value.
func (v *View) Value() string {
	return v.input.Value()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	inputWidth := width - 8
	if inputWidth < 20 {
		inputWidth = 20
	}
	if inputWidth > 100 {
		inputWidth = 100
	}
	v.input.Width = inputWidth
}
