package driving

import "github.com/custodia-labs/sumdiff-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns the current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists the given settings.
	Save(settings *domain.AppSettings) error

	// SetModels updates the evaluated model list.
	SetModels(models []string) error

	// SetTemperature updates the sampling temperature.
	SetTemperature(t float64) error

	// SetRepetitions updates the runs-per-model count.
	SetRepetitions(n int) error

	// SetMailArchive updates the mail archive path.
	SetMailArchive(path string) error

	// SetURLsFile updates the URLs file path.
	SetURLsFile(path string) error

	// SetOpenAIKey stores the OpenAI API key.
	SetOpenAIKey(key string) error

	// Set stores a raw configuration value by key.
	Set(key string, value string) error

	// Value returns the current value of a configuration key in the
	// same string form Set accepts.
	Value(key string) (string, error)

	// Keys lists all known configuration keys in sorted order.
	Keys() []string

	// Validate checks the current settings for consistency.
	Validate() error

	// Defaults returns the built-in default settings.
	Defaults() *domain.AppSettings

	// Path returns the configuration file path.
	Path() string
}
