package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
)

func TestEmailCmd_Use(t *testing.T) {
	assert.Equal(t, "email", emailCmd.Use)
}

func TestEmailCmd_Short(t *testing.T) {
	assert.Equal(t, "Evaluate newsletter articles from the mail archive", emailCmd.Short)
}

func TestEmailCmd_Long(t *testing.T) {
	assert.Contains(t, emailCmd.Long, "OE Classic")
	assert.Contains(t, emailCmd.Long, "mail.archive")
}

func TestEmailCmd_HasPromptsFlag(t *testing.T) {
	flag := emailCmd.Flags().Lookup("prompts")
	require.NotNil(t, flag, "prompts flag should exist")
	assert.Equal(t, "", flag.DefValue)
}

func TestEmailCmd_HasModelFlag(t *testing.T) {
	flag := emailCmd.Flags().Lookup("model")
	require.NotNil(t, flag, "model flag should exist")
	assert.Equal(t, "m", flag.Shorthand)
}

func TestEmailCmd_Executes(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"email"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, []string{"email"}, mocks.evaluation.calls)
	assert.Contains(t, buf.String(), "Evaluated 1 article(s).")
	assert.Contains(t, buf.String(), "Example Page")
}

func TestEmailCmd_PrintsArticleCount(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()

	mocks.evaluation.results[0].Articles = []domain.Article{
		{Title: "First", Link: "https://example.com/1"},
		{Title: "Second", Link: "https://example.com/2"},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"email"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Extracted 2 unique articles from the archive.")
}

func TestEmailCmd_PassesFlags(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"email", "--prompts", "concise", "-m", "alpha", "-m", "beta"})
	defer func() {
		rootCmd.SetArgs(nil)
		emailPromptSet = ""
		emailModels = nil
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "concise", mocks.evaluation.lastOpts.PromptSet)
	assert.Equal(t, []string{"alpha", "beta"}, mocks.evaluation.lastOpts.Models)
}

func TestEmailCmd_RejectsArgs(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"email", "extra"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
}

func TestEmailCmd_ServiceNotConfigured(t *testing.T) {
	oldService := evaluationService
	evaluationService = nil
	defer func() {
		evaluationService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"email"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "evaluation service not configured")
}

func TestEmailCmd_ServiceError(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()

	mocks.evaluation.err = errors.New("archive locked")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"email"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "email evaluation failed")
	assert.Contains(t, err.Error(), "archive locked")
}
