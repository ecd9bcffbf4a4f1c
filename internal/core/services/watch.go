package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driving"
	"github.com/custodia-labs/sumdiff-cli/internal/logger"
)

// defaultDebounce collapses a burst of file writes into one run. Mail
// clients flush archives in several writes.
const defaultDebounce = 2 * time.Second

// Ensure WatchService implements the interface.
var _ driving.WatchService = (*WatchService)(nil)

// WatchService re-runs evaluations when watched inputs change.
type WatchService struct {
	settings  driving.SettingsService
	evaluator driving.EvaluationService
	debounce  time.Duration

	mu     sync.Mutex
	active map[string]bool
}

// NewWatchService creates a new watch service.
func NewWatchService(settings driving.SettingsService, evaluator driving.EvaluationService) *WatchService {
	return &WatchService{
		settings:  settings,
		evaluator: evaluator,
		debounce:  defaultDebounce,
		active:    make(map[string]bool),
	}
}

// WatchMail watches the mail archive and evaluates new messages on
// change. Events are delivered until ctx is cancelled.
func (s *WatchService) WatchMail(ctx context.Context, events chan<- driving.WatchEvent) error {
	settings, err := s.settings.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if settings.Mail.ArchivePath == "" {
		return fmt.Errorf("mail archive not configured: %w", domain.ErrInvalidInput)
	}

	return s.watch(ctx, settings.Mail.ArchivePath, events, s.evaluator.EvaluateEmail)
}

// WatchURLs watches the URLs file and evaluates its entries on change.
// Events are delivered until ctx is cancelled.
func (s *WatchService) WatchURLs(ctx context.Context, events chan<- driving.WatchEvent) error {
	settings, err := s.settings.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if settings.Web.URLsFile == "" {
		return fmt.Errorf("urls file not configured: %w", domain.ErrInvalidInput)
	}

	return s.watch(ctx, settings.Web.URLsFile, events, s.evaluator.EvaluateURLs)
}

// watch runs the event loop for one path. The parent directory is
// watched because editors and mail clients replace files rather than
// write them in place, which silently breaks a direct file watch.
func (s *WatchService) watch(
	ctx context.Context, path string, events chan<- driving.WatchEvent,
	run func(context.Context, driving.EvaluateOptions) ([]driving.EvaluationResult, error),
) error {
	target := filepath.Clean(path)

	s.mu.Lock()
	if s.active[target] {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", domain.ErrAlreadyWatching, target)
	}
	s.active[target] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.active, target)
		s.mu.Unlock()
	}()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(target)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logger.Info("Watching %s", target)

	timer := time.NewTimer(s.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}

			logger.Debug("Change on %s (%s)", event.Name, event.Op)
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(s.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case <-timer.C:
			results, err := s.triggeredRun(ctx, run)
			if err != nil {
				logger.Warn("Watched run failed: %v", err)
			}

			select {
			case events <- driving.WatchEvent{Trigger: target, Results: results, Err: err}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// triggeredRun executes one evaluation pass with fresh settings.
func (s *WatchService) triggeredRun(
	ctx context.Context,
	run func(context.Context, driving.EvaluateOptions) ([]driving.EvaluationResult, error),
) ([]driving.EvaluationResult, error) {
	opts := driving.EvaluateOptions{}
	if settings, err := s.settings.Get(); err == nil {
		opts.OpenBrowser = settings.Output.OpenBrowser
	}
	return run(ctx, opts)
}
