package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
)

// apiKeySettingKey is the raw config key that holds a secret and is
// masked wherever settings are printed.
const apiKeySettingKey = "openai.api_key"

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure models, prompts, sources, and output options.

Use subcommands to read or write individual settings or run the
interactive wizard.`,
	Args: cobra.NoArgs,
	RunE: runSettingsList,
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsList,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: `Sets a configuration key to the given value. Lists are comma
separated. Run 'sumdiff settings keys' for the available keys.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List all configuration keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

var settingsSetKeyCmd = &cobra.Command{
	Use:   "set-key [provider]",
	Short: "Store an API key for a hosted provider",
	Long: `Prompts for an API key without echoing it, checks it against the
provider's endpoint, and stores it in the configuration.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsSetKey,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure the main settings step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsListCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsSetKeyCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsList(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Evaluation]")
	cmd.Printf("  Models: %s\n", strings.Join(settings.Models, ", "))
	cmd.Printf("  OpenAI models: %s\n", strings.Join(settings.OpenAIModels, ", "))
	cmd.Printf("  Temperature: %.2f\n", settings.Temperature)
	cmd.Printf("  Repetitions: %d\n", settings.Repetitions)
	cmd.Printf("  Concurrency: %d\n", settings.Concurrency)
	cmd.Printf("  Max content chars: %d\n", settings.MaxContentChars)
	cmd.Println()

	cmd.Println("[Prompts]")
	cmd.Printf("  System: %s\n", settings.SystemPrompt)
	cmd.Printf("  User: %s\n", settings.UserPrompt)
	cmd.Println()

	cmd.Println("[Mail]")
	cmd.Printf("  Archive: %s\n", orUnset(settings.Mail.ArchivePath))
	cmd.Printf("  Index: %s\n", orUnset(settings.Mail.IndexPath))
	cmd.Printf("  Rows: start %d, count %d\n", settings.Mail.StartRow, settings.Mail.NumRecords)
	cmd.Println()

	cmd.Println("[Web]")
	cmd.Printf("  URLs file: %s\n", settings.Web.URLsFile)
	cmd.Printf("  Timeout: %ds\n", settings.Web.TimeoutSeconds)
	cmd.Printf("  Rate: %.1f req/s\n", settings.Web.RequestsPerSecond)
	cmd.Println()

	cmd.Println("[Report]")
	cmd.Printf("  Directory: %s\n", settings.Output.Directory)
	cmd.Printf("  Result columns: %d\n", settings.ResultColumns)
	cmd.Printf("  Articles CSV: %s\n", settings.Output.ArticlesCSV)
	cmd.Printf("  Open browser: %t\n", settings.Output.OpenBrowser)
	cmd.Println()

	cmd.Println("[Ollama]")
	cmd.Printf("  Base URL: %s\n", settings.Ollama.BaseURL)
	cmd.Printf("  Keep alive: %s\n", settings.Ollama.KeepAlive)
	cmd.Println()

	cmd.Println("[OpenAI]")
	cmd.Printf("  Base URL: %s\n", settings.OpenAI.BaseURL)
	if settings.OpenAI.APIKey != "" {
		cmd.Printf("  API key: %s\n", maskAPIKey(settings.OpenAI.APIKey))
	} else {
		cmd.Printf("  API key: (not set)\n")
	}
	cmd.Println()

	cmd.Println("[Bench]")
	cmd.Printf("  Question bank: %s\n", orDefault(settings.Bench.QuestionBank, "(built-in)"))
	cmd.Printf("  Temperatures: %s\n", joinFloats(settings.Bench.Temperatures))
	cmd.Printf("  Judge model: %s\n", settings.Bench.JudgeModel)
	cmd.Println()

	cmd.Printf("Config: %s\n", settingsService.Path())

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'sumdiff settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	value, err := settingsService.Value(args[0])
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", args[0], err)
	}

	if args[0] == apiKeySettingKey && value != "" {
		value = maskAPIKey(value)
	}
	cmd.Println(value)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	if key == apiKeySettingKey {
		value = maskAPIKey(value)
	}
	cmd.Printf("%s = %s\n", key, value)
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func runSettingsSetKey(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	provider, err := resolveKeyedProvider(cmd, args)
	if err != nil {
		return err
	}

	cmd.Print("Enter API key: ")
	key := readPassword()
	cmd.Println()
	if key == "" {
		return errors.New("API key is required")
	}

	// Only OpenAI-compatible backends take keys today.
	if provider != domain.AIProviderOpenAI {
		return fmt.Errorf("provider %s does not use an API key", provider)
	}

	cmd.Print("Validating key... ")
	if err := settingsService.SetOpenAIKey(key); err != nil {
		cmd.Println("FAILED")
		return fmt.Errorf("failed to store API key: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("API key stored: %s\n", maskAPIKey(key))
	return nil
}

// resolveKeyedProvider picks the provider from the argument, or shows a
// numbered menu of the providers that take API keys.
func resolveKeyedProvider(cmd *cobra.Command, args []string) (domain.AIProvider, error) {
	var keyed []domain.AIProvider
	for _, p := range domain.AllAIProviders() {
		if p.RequiresAPIKey() {
			keyed = append(keyed, p)
		}
	}

	if len(args) == 1 {
		provider := domain.AIProvider(strings.ToLower(strings.TrimSpace(args[0])))
		if !provider.IsValid() {
			return "", fmt.Errorf("unknown provider %q", args[0])
		}
		if !provider.RequiresAPIKey() {
			return "", fmt.Errorf("provider %s does not use an API key", provider)
		}
		return provider, nil
	}

	cmd.Println("Select provider")
	for i, p := range keyed {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	reader := bufio.NewReader(os.Stdin)
	idx := parseChoice(readLine(reader), len(keyed), 1)
	return keyed[idx-1], nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Sumdiff Settings Wizard")
	cmd.Println("=======================")
	cmd.Println("Press Enter to keep the current value.")
	cmd.Println()

	reader := bufio.NewReader(os.Stdin)

	// Step 1: Models
	cmd.Println("Step 1: Models")
	cmd.Println("--------------")
	cmd.Printf("Current: %s\n", strings.Join(settings.Models, ", "))
	cmd.Print("Enter comma-separated models: ")
	if input := readLine(reader); input != "" {
		if err := settingsService.SetModels(strings.Split(input, ",")); err != nil {
			return fmt.Errorf("failed to set models: %w", err)
		}
	}
	cmd.Println()

	// Step 2: Temperature
	cmd.Println("Step 2: Temperature")
	cmd.Println("-------------------")
	cmd.Printf("Current: %.2f\n", settings.Temperature)
	cmd.Print("Enter temperature (0-2): ")
	if input := readLine(reader); input != "" {
		t, err := strconv.ParseFloat(input, 64)
		if err != nil {
			return fmt.Errorf("invalid temperature %q", input)
		}
		if err := settingsService.SetTemperature(t); err != nil {
			return fmt.Errorf("failed to set temperature: %w", err)
		}
	}
	cmd.Println()

	// Step 3: Repetitions
	cmd.Println("Step 3: Repetitions per model")
	cmd.Println("-----------------------------")
	cmd.Printf("Current: %d\n", settings.Repetitions)
	cmd.Print("Enter repetitions: ")
	if input := readLine(reader); input != "" {
		n, err := strconv.Atoi(input)
		if err != nil {
			return fmt.Errorf("invalid repetitions %q", input)
		}
		if err := settingsService.SetRepetitions(n); err != nil {
			return fmt.Errorf("failed to set repetitions: %w", err)
		}
	}
	cmd.Println()

	// Step 4: Mail archive
	cmd.Println("Step 4: Mail archive")
	cmd.Println("--------------------")
	cmd.Printf("Current: %s\n", orUnset(settings.Mail.ArchivePath))
	cmd.Print("Enter OE Classic archive path: ")
	if input := readLine(reader); input != "" {
		if err := settingsService.SetMailArchive(input); err != nil {
			return fmt.Errorf("failed to set mail archive: %w", err)
		}
	}
	cmd.Println()

	// Step 5: URLs file
	cmd.Println("Step 5: URLs file")
	cmd.Println("-----------------")
	cmd.Printf("Current: %s\n", settings.Web.URLsFile)
	cmd.Print("Enter URLs file path: ")
	if input := readLine(reader); input != "" {
		if err := settingsService.SetURLsFile(input); err != nil {
			return fmt.Errorf("failed to set urls file: %w", err)
		}
	}
	cmd.Println()

	// Step 6: OpenAI API key
	cmd.Println("Step 6: OpenAI API key")
	cmd.Println("----------------------")
	if settings.OpenAI.APIKey != "" {
		cmd.Printf("Current: %s\n", maskAPIKey(settings.OpenAI.APIKey))
	} else {
		cmd.Println("Current: (not set)")
	}
	cmd.Print("Enter API key (leave empty to keep): ")
	if key := readPassword(); key != "" {
		cmd.Println()
		if err := settingsService.SetOpenAIKey(key); err != nil {
			return fmt.Errorf("failed to store API key: %w", err)
		}
	} else {
		cmd.Println()
	}
	cmd.Println()

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("All settings are valid and saved.")
	}

	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read the key without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func orUnset(value string) string {
	return orDefault(value, "(not set)")
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func joinFloats(values []float64) string {
	items := make([]string, 0, len(values))
	for _, v := range values {
		items = append(items, strconv.FormatFloat(v, 'g', -1, 64))
	}
	return strings.Join(items, ", ")
}
