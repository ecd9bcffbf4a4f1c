// Package driven defines the outbound ports of the application.
//
// These interfaces are implemented by infrastructure adapters in
// internal/adapters/driven and consumed by the services in
// internal/core/services. Services depend only on these contracts,
// never on adapter packages.
//
// Ports:
//   - LLMService / LLMFactory: language model backends
//   - ConfigStore: persistent application configuration
//   - PromptStore: named prompt sets and the benchmark question bank
//   - MailboxReader: local mail client archives
//   - ContentFetcher: web page retrieval
//   - ArticleExtractor / ArticleLog: newsletter article listings
//   - ReportBuilder / ReportStore: HTML report rendering and storage
//
// Architecture Rules:
//   - Interfaces only, no implementations
//   - Can import domain types
//   - No external dependencies
package driven
