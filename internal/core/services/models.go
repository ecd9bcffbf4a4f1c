package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driven"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driving"
	"github.com/custodia-labs/sumdiff-cli/internal/logger"
)

// Ensure ModelService implements the interface.
var _ driving.ModelService = (*ModelService)(nil)

// ModelService inspects the configured models and their backends.
type ModelService struct {
	settings driving.SettingsService
	factory  driven.LLMFactory
}

// NewModelService creates a new model service.
func NewModelService(settings driving.SettingsService, factory driven.LLMFactory) *ModelService {
	return &ModelService{
		settings: settings,
		factory:  factory,
	}
}

// Status checks every configured model against its backend. Backend
// failures become per-model details, never errors: the point of the
// check is to report exactly that.
func (s *ModelService) Status(ctx context.Context) ([]driving.ModelStatus, error) {
	settings, err := s.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	// Backend listings are shared between models on the same backend.
	served := make(map[domain.AIProvider][]string)
	listErr := make(map[domain.AIProvider]error)

	statuses := make([]driving.ModelStatus, 0, len(settings.Models))
	for _, model := range settings.Models {
		provider := settings.ProviderFor(model)
		status := driving.ModelStatus{Model: model, Provider: provider}

		svc, err := s.factory.ServiceFor(model)
		if err != nil {
			status.Detail = err.Error()
			statuses = append(statuses, status)
			continue
		}

		if _, ok := served[provider]; !ok && listErr[provider] == nil {
			names, err := svc.Models(ctx)
			if err != nil {
				listErr[provider] = err
			} else {
				served[provider] = names
			}
		}

		if err := listErr[provider]; err != nil {
			status.Detail = fmt.Sprintf("backend unreachable: %v", err)
		} else if modelServed(served[provider], model) {
			status.Available = true
		} else {
			status.Detail = "not served by backend"
		}

		statuses = append(statuses, status)
	}

	return statuses, nil
}

// Available lists the models the local backend currently serves.
func (s *ModelService) Available(ctx context.Context) ([]string, error) {
	settings, err := s.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	// Any Ollama-routed service can list the whole backend.
	model := ""
	for _, m := range settings.Models {
		if settings.ProviderFor(m) == domain.AIProviderOllama {
			model = m
			break
		}
	}

	svc, err := s.factory.ServiceFor(model)
	if err != nil {
		return nil, fmt.Errorf("local backend: %w", err)
	}
	return svc.Models(ctx)
}

// Preload asks the backends to load every configured model into memory.
// Hosted backends treat this as a no-op.
func (s *ModelService) Preload(ctx context.Context) error {
	settings, err := s.settings.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if len(settings.Models) == 0 {
		return domain.ErrNoModels
	}

	for _, model := range settings.Models {
		svc, err := s.factory.ServiceFor(model)
		if err != nil {
			return fmt.Errorf("%s backend: %w", settings.ProviderFor(model), err)
		}
		if err := svc.Preload(ctx); err != nil {
			return fmt.Errorf("preload %s: %w", model, err)
		}
		logger.Debug("Model %s loaded", model)
	}

	return nil
}

// Validate pings the backends for the configured models. Returns nil
// when every backend answers.
func (s *ModelService) Validate(ctx context.Context) error {
	settings, err := s.settings.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if len(settings.Models) == 0 {
		return domain.ErrNoModels
	}

	pinged := make(map[domain.AIProvider]bool)
	for _, model := range settings.Models {
		provider := settings.ProviderFor(model)
		if pinged[provider] {
			continue
		}
		pinged[provider] = true

		svc, err := s.factory.ServiceFor(model)
		if err != nil {
			return fmt.Errorf("%s backend: %w", provider, err)
		}
		if err := svc.Ping(ctx); err != nil {
			return fmt.Errorf("ping %s backend: %w", provider, err)
		}
		logger.Debug("Backend %s answers", provider)
	}

	return nil
}

// modelServed reports whether the backend's listing covers the model.
// Ollama names a bare model "name:latest", so the tagged form counts.
func modelServed(names []string, model string) bool {
	if slices.Contains(names, model) {
		return true
	}
	return slices.Contains(names, model+":latest")
}
