// Package file provides file-based configuration storage.
//
// ConfigStore persists application settings as TOML in the sumdiff
// config directory. PromptStore serves named prompt sets from
// prompts.toml and the benchmark question bank from questions.json,
// falling back to embedded defaults when files are missing.
package file
