package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	k := DefaultKeyMap()
	require.NotNil(t, k)

	assert.Equal(t, []string{"q", "ctrl+c"}, k.Quit.Keys())
	assert.Equal(t, []string{"esc"}, k.Back.Keys())
	assert.Equal(t, []string{"up", "k"}, k.Up.Keys())
	assert.Equal(t, []string{"down", "j"}, k.Down.Keys())
	assert.Equal(t, []string{"h"}, k.Highlight.Keys())
	assert.Equal(t, []string{"r"}, k.Refresh.Keys())
}

func TestMatches(t *testing.T) {
	k := DefaultKeyMap()

	assert.True(t, Matches("q", k.Quit))
	assert.True(t, Matches("ctrl+c", k.Quit))
	assert.False(t, Matches("x", k.Quit))
	assert.True(t, Matches("r", k.Refresh))
}

func TestHelpGroups(t *testing.T) {
	k := DefaultKeyMap()

	assert.Len(t, k.ShortHelp(), 2)
	assert.Len(t, k.ReportsHelp(), 5)
	assert.Len(t, k.FullHelp(), 3)
}
