package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "sumdiff", rootCmd.Use)
}

func TestRootCmd_Short(t *testing.T) {
	assert.Equal(t, "Compare LLM summaries across models", rootCmd.Short)
}

func TestRootCmd_Long(t *testing.T) {
	assert.Contains(t, rootCmd.Long, "summarisation prompt")
	assert.Contains(t, rootCmd.Long, "highlights")
	assert.Contains(t, rootCmd.Long, "interactive menu")
}

func TestRootCmd_HasVerboseFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, flag, "verbose flag should exist")
	assert.Equal(t, "v", flag.Shorthand)
	assert.Equal(t, "false", flag.DefValue)
}

func TestRootCmd_HasNoBrowserFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("no-browser")
	require.NotNil(t, flag, "no-browser flag should exist")
	assert.Equal(t, "false", flag.DefValue)
}

func TestRootCmd_HasOutputFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("output")
	require.NotNil(t, flag, "output flag should exist")
	assert.Equal(t, "o", flag.Shorthand)
	assert.Equal(t, "", flag.DefValue)
}

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	expected := []string{
		"email", "web", "ask", "bench", "highlight", "models",
		"settings", "watch", "mcp", "tui", "version",
	}

	registered := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}

	for _, name := range expected {
		assert.True(t, registered[name], "%s command should be registered", name)
	}
}

func TestSetServices_AssignsAll(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()

	assert.Equal(t, mocks.evaluation, evaluationService)
	assert.Equal(t, mocks.highlight, highlightService)
	assert.Equal(t, mocks.bench, benchService)
	assert.Equal(t, mocks.models, modelService)
	assert.Equal(t, mocks.settings, settingsService)
	assert.Equal(t, mocks.actions, actionService)
	assert.Equal(t, mocks.watch, watchService)
	assert.Equal(t, mocks.reports, reportStore)
}

func TestSetServices_NilKeepsCurrent(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	before := evaluationService
	SetServices(nil)

	assert.Equal(t, before, evaluationService)
}

func TestSetVersion(t *testing.T) {
	originalVersion := version
	defer func() { version = originalVersion }()

	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)

	SetVersion("")
	assert.Equal(t, "1.2.3", version, "empty version should keep the current one")
}

func TestRootCmd_WiresServicesOnce(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	wireCalls := 0
	SetWireFunc(func(_ GlobalOptions) (*Services, error) {
		wireCalls++
		return &Services{}, nil
	})
	defer func() { wireFunc = nil }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, 1, wireCalls, "wiring should run exactly once")
}

func TestRootCmd_WireError(t *testing.T) {
	SetWireFunc(func(_ GlobalOptions) (*Services, error) {
		return nil, errors.New("config unreadable")
	})
	defer func() { wireFunc = nil }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"version"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialise services")
	assert.Contains(t, err.Error(), "config unreadable")
}

func TestRootCmd_WireReceivesGlobalOptions(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	var captured GlobalOptions
	SetWireFunc(func(opts GlobalOptions) (*Services, error) {
		captured = opts
		return &Services{}, nil
	})
	defer func() { wireFunc = nil }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"--no-browser", "--output", "reports", "version"})
	defer func() {
		rootCmd.SetArgs(nil)
		flagNoBrowser = false
		flagOutput = ""
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.True(t, captured.NoBrowser)
	assert.Equal(t, "reports", captured.OutputDir)
	assert.False(t, captured.Verbose)
}

func TestShouldOpenBrowser_FollowsSettings(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()

	settings, err := mocks.settings.Get()
	require.NoError(t, err)

	settings.Output.OpenBrowser = true
	assert.True(t, shouldOpenBrowser())

	settings.Output.OpenBrowser = false
	assert.False(t, shouldOpenBrowser())
}

func TestShouldOpenBrowser_NoBrowserFlagWins(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()

	settings, err := mocks.settings.Get()
	require.NoError(t, err)
	settings.Output.OpenBrowser = true

	flagNoBrowser = true
	defer func() { flagNoBrowser = false }()

	assert.False(t, shouldOpenBrowser())
}

func TestShouldOpenBrowser_NilService(t *testing.T) {
	oldService := settingsService
	settingsService = nil
	defer func() {
		settingsService = oldService
	}()

	assert.False(t, shouldOpenBrowser())
}

func TestShouldOpenBrowser_SettingsError(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()

	mocks.settings.err = errors.New("config unreadable")

	assert.False(t, shouldOpenBrowser())
}

func TestPrintResult_ShowsRowsAndReport(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)

	result := sampleResult("Example Page")
	printResult(rootCmd, &result)

	output := buf.String()
	assert.Contains(t, output, "Example Page")
	assert.Contains(t, output, "Source: https://example.com/a")
	assert.Contains(t, output, "alpha")
	assert.Contains(t, output, "2 run(s), avg 1.00s")
	assert.Contains(t, output, "beta")
	assert.Contains(t, output, "failed: connection refused")
	assert.Contains(t, output, "Total: 3.00s")
	assert.Contains(t, output, "Report: out/summary_table_20250101_000000.highlighted.html")
}

func TestPrintResult_SkipsReferenceMatchingTitle(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)

	result := sampleResult("https://example.com/a")
	result.Evaluation.Source.Title = "https://example.com/a"
	printResult(rootCmd, &result)

	assert.NotContains(t, buf.String(), "Source:")
}
