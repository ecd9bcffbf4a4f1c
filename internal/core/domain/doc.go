// Package domain defines the core business entities for sumdiff.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Source: One piece of content under evaluation
//   - Evaluation: A full multi-model comparison over a source
//   - ModelRuns / Run: Per-model repeated summarisation results
//   - Article: A newsletter entry extracted from the mail archive
//   - Question / BenchResult: Prompt benchmark entities
//   - AppSettings: The application configuration tree
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
