// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The evaluation service is the heart of the tool: it runs content
// through every configured model, renders the comparison report and
// highlights the differences between runs.
package services
