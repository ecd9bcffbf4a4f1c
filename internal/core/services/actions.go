package services

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driving"
	"github.com/custodia-labs/sumdiff-cli/internal/logger"
)

// Operating system identifiers.
const (
	osDarwin  = "darwin"
	osLinux   = "linux"
	osWindows = "windows"
)

// Ensure ActionService implements the interface.
var _ driving.ActionService = (*ActionService)(nil)

// ActionService performs result actions on finished reports.
type ActionService struct{}

// NewActionService creates a new action service.
func NewActionService() *ActionService {
	return &ActionService{}
}

// OpenReport opens the report at path in the default browser.
func (s *ActionService) OpenReport(_ context.Context, path string) error {
	if path == "" {
		return fmt.Errorf("report path: %w", domain.ErrInvalidInput)
	}

	url, err := reportURL(path)
	if err != nil {
		return err
	}

	logger.Debug("Opening %s", url)
	return openBrowser(url)
}

// CopyPath copies the report's absolute path to the system clipboard.
func (s *ActionService) CopyPath(_ context.Context, path string) error {
	if path == "" {
		return fmt.Errorf("report path: %w", domain.ErrInvalidInput)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	return copyToClipboard(abs)
}

// reportURL converts a report path into a file URL browsers accept.
func reportURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}

// openBrowser opens a URL using OS-specific commands.
func openBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case osDarwin:
		cmd = exec.Command("open", url)
	case osLinux:
		cmd = exec.Command("xdg-open", url)
	case osWindows:
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}

// copyToClipboard copies text to the system clipboard using OS-specific
// commands.
func copyToClipboard(text string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case osDarwin:
		cmd = exec.Command("pbcopy")
	case osLinux:
		// Try xclip first, fall back to xsel
		if _, err := exec.LookPath("xclip"); err == nil {
			cmd = exec.Command("xclip", "-selection", "clipboard")
		} else if _, err := exec.LookPath("xsel"); err == nil {
			cmd = exec.Command("xsel", "--clipboard", "--input")
		} else {
			return fmt.Errorf("no clipboard utility found (install xclip or xsel)")
		}
	case osWindows:
		cmd = exec.Command("cmd", "/c", "clip")
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}
