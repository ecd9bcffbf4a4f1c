package settings

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sumdiff-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
)

func TestView_RendersSettings(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(80, 24)
	v.Init()

	defaults := domain.DefaultAppSettings()
	defaults.OpenAI.APIKey = "sk-verysecretvalue"
	v, _ = v.Update(messages.SettingsLoaded{Settings: &defaults})

	view := v.View()
	assert.Contains(t, view, "llama3.2")
	assert.Contains(t, view, "result_columns")
	assert.Contains(t, view, "http://localhost:11434")

	// The API key never renders in full.
	assert.NotContains(t, view, "sk-verysecretvalue")
	assert.Contains(t, view, "sk-v...alue")
}

func TestView_LoadError(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(80, 24)
	v.Init()

	v, _ = v.Update(messages.SettingsLoaded{Err: errors.New("config unreadable")})

	assert.Contains(t, v.View(), "config unreadable")
}

func TestView_MissingKeyShowsPlaceholder(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(80, 24)
	v.Init()

	defaults := domain.DefaultAppSettings()
	v, _ = v.Update(messages.SettingsLoaded{Settings: &defaults})

	assert.Contains(t, v.View(), "(not set)")
}

func TestView_EscReturnsToMenu(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(80, 24)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, changed.View)
}
