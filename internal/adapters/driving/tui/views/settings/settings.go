// Package settings provides the read-only configuration view for the TUI.
package settings

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sumdiff-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sumdiff-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
)

// View shows the current application settings. Values are changed with
// `sumdiff settings set`; the TUI only inspects them.
type View struct {
	styles *styles.Styles

	settings *domain.AppSettings
	loading  bool
	err      error

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
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

// Init marks the view as loading; the app issues the settings load.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.err = nil
	return nil
}

// Settings returns the loaded settings, nil before the first load.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		v.loading = false
		v.err = msg.Err
		v.settings = msg.Settings
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

// View renders the settings view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))

	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))

	case v.settings == nil:
		b.WriteString(v.styles.Muted.Render("No settings loaded."))

	default:
		v.renderSettings(&b)
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("Change values with: sumdiff settings set KEY VALUE"))
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[Esc] Back"))

	return b.String()
}

// renderSettings writes the grouped settings dump.
func (v *View) renderSettings(b *strings.Builder) {
	s := v.settings

	v.section(b, "Evaluation")
	v.row(b, "models", strings.Join(s.Models, ", "))
	v.row(b, "openai_models", strings.Join(s.OpenAIModels, ", "))
	v.row(b, "temperature", fmt.Sprintf("%.2f", s.Temperature))
	v.row(b, "repetitions", fmt.Sprintf("%d", s.Repetitions))
	v.row(b, "result_columns", fmt.Sprintf("%d", s.ResultColumns))
	v.row(b, "concurrency", fmt.Sprintf("%d", s.Concurrency))
	v.row(b, "max_content_chars", fmt.Sprintf("%d", s.MaxContentChars))

	v.section(b, "Mail")
	v.row(b, "archive_path", s.Mail.ArchivePath)
	v.row(b, "index_path", s.Mail.IndexPath)
	v.row(b, "start_row", fmt.Sprintf("%d", s.Mail.StartRow))
	v.row(b, "num_records", fmt.Sprintf("%d", s.Mail.NumRecords))

	v.section(b, "Web")
	v.row(b, "urls_file", s.Web.URLsFile)
	v.row(b, "timeout", fmt.Sprintf("%ds", s.Web.TimeoutSeconds))
	v.row(b, "requests_per_second", fmt.Sprintf("%.1f", s.Web.RequestsPerSecond))

	v.section(b, "Output")
	v.row(b, "directory", s.Output.Directory)
	v.row(b, "articles_csv", s.Output.ArticlesCSV)
	v.row(b, "open_browser", fmt.Sprintf("%t", s.Output.OpenBrowser))

	v.section(b, "Backends")
	v.row(b, "ollama.base_url", s.Ollama.BaseURL)
	v.row(b, "ollama.keep_alive", s.Ollama.KeepAlive)
	v.row(b, "openai.base_url", s.OpenAI.BaseURL)
	v.row(b, "openai.api_key", maskKey(s.OpenAI.APIKey))

	v.section(b, "Bench")
	v.row(b, "question_bank", s.Bench.QuestionBank)
	v.row(b, "judge_model", s.Bench.JudgeModel)
}

func (v *View) section(b *strings.Builder, name string) {
	b.WriteString(v.styles.Subtitle.Render(name))
	b.WriteString("\n")
}

func (v *View) row(b *strings.Builder, key, value string) {
	if value == "" {
		value = "-"
	}
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  %-22s", key)))
	b.WriteString(v.styles.Normal.Render(value))
	b.WriteString("\n")
}

// maskKey hides all but a hint of a stored API key.
func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}
