// Package driving defines the inbound ports of the application.
//
// These interfaces are implemented by the services in
// internal/core/services and consumed by the CLI, TUI, and MCP
// adapters in internal/adapters/driving. Adapters depend only on
// these contracts, never on service types.
//
// Ports:
//   - EvaluationService: summarisation comparison runs
//   - HighlightService: unique-word marking in comparison reports
//   - BenchmarkService: question bank scoring
//   - ModelService: model and backend availability
//   - SettingsService: configuration management
//   - ActionService: browser and clipboard actions
//   - WatchService: file-change triggered evaluations
//
// Architecture Rules:
//   - Interfaces only, no implementations
//   - Can import domain types
//   - No external dependencies
package driving
