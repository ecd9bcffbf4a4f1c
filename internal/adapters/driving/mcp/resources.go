package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for sumdiff resources.
	uriScheme = "report://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource listing stored reports.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "reports",
		Name:        "reports",
		Description: "Stored comparison reports, newest first",
		MIMEType:    "application/json",
	}, s.handleReportsResource)

	// Template for the content of one report.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "reports/{name}",
		Name:        "report-content",
		Description: "HTML content of a stored comparison report",
		MIMEType:    "text/html",
	}, s.handleReportContentResource)
}

// handleReportsResource returns the list of stored reports.
func (s *Server) handleReportsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Reports == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	paths, err := s.ports.Reports.List()
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}

	type reportInfo struct {
		Name string `json:"name"`
		Path string `json:"path"`
		URI  string `json:"uri"`
	}

	infos := make([]reportInfo, len(paths))
	for i, path := range paths {
		name := filepath.Base(path)
		infos[i] = reportInfo{
			Name: name,
			Path: path,
			URI:  uriScheme + "reports/" + name,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling reports: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleReportContentResource returns the content of one stored report.
func (s *Server) handleReportContentResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Reports == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	name := extractReportName(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	path, err := s.findReport(name)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	content, err := s.ports.Reports.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading report %s: %w", name, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/html",
			Text:     content,
		}},
	}, nil
}

// findReport resolves a report base name to its stored path. Names only
// ever come from the listing, so a linear scan is fine.
func (s *Server) findReport(name string) (string, error) {
	paths, err := s.ports.Reports.List()
	if err != nil {
		return "", err
	}
	for _, path := range paths {
		if filepath.Base(path) == name {
			return path, nil
		}
	}
	return "", fmt.Errorf("report %s not stored", name)
}

// extractReportName extracts the report name from a URI like
// report://reports/{name}. Nested separators are rejected so a crafted
// URI cannot escape the report directory.
func extractReportName(uri string) string {
	const prefix = uriScheme + "reports/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	name := strings.TrimPrefix(uri, prefix)
	if name == "" || strings.ContainsAny(name, "/\\") {
		return ""
	}
	return name
}
