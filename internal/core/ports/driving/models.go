package driving

import (
	"context"

	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
)

// ModelStatus reports the availability of one configured model.
type ModelStatus struct {
	// Model is the model name as configured.
	Model string

	// Provider is the backend serving the model.
	Provider domain.AIProvider

	// Available is true when the backend serves the model right now.
	Available bool

	// Detail carries the failure reason when unavailable.
	Detail string
}

// ModelService inspects the configured models and their backends.
type ModelService interface {
	// Status checks every configured model against its backend.
	Status(ctx context.Context) ([]ModelStatus, error)

	// Available lists the models the local backend currently serves.
	Available(ctx context.Context) ([]string, error)

	// Preload asks the backends to load every configured model into
	// memory, so the first evaluation run is not billed the load time.
	Preload(ctx context.Context) error

	// Validate pings the backends for the configured models.
	// Returns nil when every backend answers.
	Validate(ctx context.Context) error
}
