package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driven"
	"github.com/custodia-labs/sumdiff-cli/internal/logger"
)

// DefaultSetName is the prompt set used when no name is given.
const DefaultSetName = "default"

const (
	promptsFileName   = "prompts.toml"
	questionsFileName = "questions.json"
)

// defaultSets holds the embedded prompt sets. These are written to
// prompts.toml on first use so users can customise them, and serve as
// the fallback when the file is missing or broken.
var defaultSets = map[string]driven.PromptSet{
	"default": {
		Name:   "default",
		System: "You are a summarization assistant.",
		User:   "Provide once sentence summary of the text. Start the sentence with a verb like describes, explains or similar. TEXT START:",
	},
	"short_paragraph": {
		Name:   "short_paragraph",
		System: "You are a summarization assistant.",
		User:   "Provide short summary of the text. No more than one paragraph or three sentences. TEXT START:",
	},
	"key_points": {
		Name:   "key_points",
		System: "You are a summarization assistant.",
		User:   "List the three most important points of the text as short bullet lines. TEXT START:",
	},
}

// defaultQuestions is the embedded benchmark question bank, used when
// questions.json is missing or unreadable.
var defaultQuestions = domain.QuestionBank{
	"general_knowledge": {
		{ID: "gk1", Question: "What is the capital of France?", ExpectedAnswer: "Paris"},
		{ID: "gk2", Question: "How many continents are there on Earth?", ExpectedAnswer: "Seven", ScoringCriteria: "Accept the digit 7 or the word seven."},
	},
	"reasoning": {
		{ID: "r1", Question: "If a train leaves at 3pm and the journey takes 2 hours, when does it arrive?", ExpectedAnswer: "5pm", ScoringCriteria: "Accept any unambiguous statement of 5 in the afternoon."},
		{ID: "r2", Question: "Which is heavier, a kilogram of feathers or a kilogram of iron?", ExpectedAnswer: "They weigh the same"},
	},
	"summarization": {
		{ID: "s1", Question: "Summarize in one sentence: The committee met on Tuesday, reviewed the budget, and approved funding for two new projects.", ExpectedAnswer: "The committee approved funding for two new projects after reviewing the budget on Tuesday.", ScoringCriteria: "Must mention the approval of the two projects."},
	},
}

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore serves prompt sets from prompts.toml and the benchmark
// question bank from questions.json in the sumdiff config directory.
// Files are created from embedded defaults on first use so users can
// edit them without hunting through documentation.
type PromptStore struct {
	configDir string

	mu    sync.RWMutex
	sets  map[string]driven.PromptSet
	bank  domain.QuestionBank
	ready bool

	initOnce sync.Once
}

// NewPromptStore creates a prompt store rooted at configDir.
// If configDir is empty, defaults to ~/.sumdiff.
func NewPromptStore(configDir string) (*PromptStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".sumdiff")
	}

	return &PromptStore{configDir: configDir}, nil
}

// Set returns the prompt set with the given name. An empty name
// selects the default set. Unknown names return domain.ErrNotFound.
func (s *PromptStore) Set(name string) (driven.PromptSet, error) {
	if name == "" {
		name = DefaultSetName
	}

	s.ensureLoaded()

	s.mu.RLock()
	set, ok := s.sets[name]
	s.mu.RUnlock()
	if !ok {
		return driven.PromptSet{}, fmt.Errorf("%w: prompt set %q", domain.ErrNotFound, name)
	}
	return set, nil
}

// Names lists the available prompt set names in sorted order.
func (s *PromptStore) Names() []string {
	s.ensureLoaded()

	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.sets))
	for name := range s.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// QuestionBank returns the benchmark question bank.
func (s *PromptStore) QuestionBank() (domain.QuestionBank, error) {
	s.ensureLoaded()

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.bank) == 0 {
		return nil, fmt.Errorf("%w: question bank is empty", domain.ErrNotFound)
	}
	return s.bank, nil
}

// Reload discards cached data so the next access re-reads the files.
// Call after editing prompts.toml or questions.json.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sets = nil
	s.bank = nil
	s.ready = false
}

// Dir returns the directory containing the prompt files.
func (s *PromptStore) Dir() string {
	return s.configDir
}

// ensureLoaded initialises files on first use and loads both the
// prompt sets and the question bank into the cache.
func (s *PromptStore) ensureLoaded() {
	s.initOnce.Do(func() {
		if err := s.initialise(); err != nil {
			logger.Debug("prompt store init failed: %v", err)
		}
	})

	s.mu.RLock()
	ready := s.ready
	s.mu.RUnlock()
	if ready {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock
	if s.ready {
		return
	}

	s.sets = s.loadSets()
	s.bank = s.loadBank()
	s.ready = true
}

// initialise creates the config directory and writes default files
// for anything missing, so users have something to edit.
func (s *PromptStore) initialise() error {
	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	promptsPath := filepath.Join(s.configDir, promptsFileName)
	if _, err := os.Stat(promptsPath); os.IsNotExist(err) {
		if err := s.writeDefaultPrompts(promptsPath); err != nil {
			return err
		}
	}

	questionsPath := filepath.Join(s.configDir, questionsFileName)
	if _, err := os.Stat(questionsPath); os.IsNotExist(err) {
		if err := s.writeDefaultQuestions(questionsPath); err != nil {
			return err
		}
	}

	return s.createReadme()
}

// promptSetFile is the on-disk shape of a single set in prompts.toml.
type promptSetFile struct {
	System string `toml:"system"`
	User   string `toml:"user"`
}

func (s *PromptStore) writeDefaultPrompts(path string) error {
	sets := make(map[string]promptSetFile, len(defaultSets))
	for name, set := range defaultSets {
		sets[name] = promptSetFile{System: set.System, User: set.User}
	}

	data, err := toml.Marshal(sets)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write default prompts: %w", err)
	}
	return nil
}

func (s *PromptStore) writeDefaultQuestions(path string) error {
	data, err := json.MarshalIndent(defaultQuestions, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write default questions: %w", err)
	}
	return nil
}

// loadSets reads prompts.toml and overlays it on the embedded
// defaults. Sets missing from the file keep their default content, so
// a user file that only customises one set leaves the rest usable. A
// missing or unparsable file should not stop an evaluation run.
func (s *PromptStore) loadSets() map[string]driven.PromptSet {
	sets := copyDefaultSets()

	data, err := os.ReadFile(filepath.Join(s.configDir, promptsFileName))
	if err != nil {
		logger.Debug("reading prompts.toml failed, using defaults: %v", err)
		return sets
	}

	var parsed map[string]promptSetFile
	if err := toml.Unmarshal(data, &parsed); err != nil {
		logger.Warn("prompts.toml is invalid, using defaults: %v", err)
		return sets
	}

	for name, raw := range parsed {
		sets[name] = driven.PromptSet{Name: name, System: raw.System, User: raw.User}
	}
	return sets
}

// loadBank reads questions.json, falling back to the embedded bank.
func (s *PromptStore) loadBank() domain.QuestionBank {
	data, err := os.ReadFile(filepath.Join(s.configDir, questionsFileName))
	if err != nil {
		logger.Debug("reading questions.json failed, using defaults: %v", err)
		return defaultQuestions
	}

	var bank domain.QuestionBank
	if err := json.Unmarshal(data, &bank); err != nil {
		logger.Warn("questions.json is invalid, using defaults: %v", err)
		return defaultQuestions
	}
	if len(bank) == 0 {
		return defaultQuestions
	}
	return bank
}

func copyDefaultSets() map[string]driven.PromptSet {
	sets := make(map[string]driven.PromptSet, len(defaultSets))
	for name, set := range defaultSets {
		sets[name] = set
	}
	return sets
}

// createReadme writes a README to the config directory explaining the
// editable files, if one doesn't already exist.
func (s *PromptStore) createReadme() error {
	readmePath := filepath.Join(s.configDir, "README.md")
	if _, err := os.Stat(readmePath); err == nil {
		return nil
	}

	content := `# Sumdiff Configuration

This directory contains the sumdiff configuration files.

## Files

- ` + "`config.toml`" + ` - application settings (models, temperature, mail archive path)
- ` + "`prompts.toml`" + ` - named prompt sets for summarisation runs
- ` + "`questions.json`" + ` - question bank for the model benchmark

## Editing prompts

Each table in prompts.toml is one named set with a system and a user
prompt. Select a set with the --prompts flag, for example:

    sumdiff email --prompts short_paragraph

The article text is appended after the user prompt.

## Editing questions

questions.json maps category names to question lists. Each question has
an id, the question text, the expected answer, and optional
scoring_criteria used by the judge model.

Changes take effect on the next run.
`

	if err := os.WriteFile(readmePath, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to create README: %w", err)
	}
	return nil
}
