package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractReportName(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{
			name: "valid report URI",
			uri:  "report://reports/summary-20260825.html",
			want: "summary-20260825.html",
		},
		{
			name: "missing name",
			uri:  "report://reports/",
			want: "",
		},
		{
			name: "wrong prefix",
			uri:  "report://sources/summary.html",
			want: "",
		},
		{
			name: "nested path rejected",
			uri:  "report://reports/../secrets.html",
			want: "",
		},
		{
			name: "backslash rejected",
			uri:  "report://reports/..\\secrets.html",
			want: "",
		},
		{
			name: "listing URI is not a report",
			uri:  "report://reports",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractReportName(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func newTestServer(t *testing.T, reports *mockReportStore) *Server {
	t.Helper()
	ports := &Ports{
		Evaluation: &mockEvaluationService{},
		Highlight:  &mockHighlightService{},
	}
	if reports != nil {
		ports.Reports = reports
	}
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

func TestServer_handleReportsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("lists stored reports", func(t *testing.T) {
		store := &mockReportStore{
			paths: []string{
				"/reports/b-highlighted.html",
				"/reports/a.html",
			},
		}
		server := newTestServer(t, store)

		req := makeReadResourceRequest("report://reports")
		result, err := server.handleReportsResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "report://reports", result.Contents[0].URI)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var infos []struct {
			Name string `json:"name"`
			Path string `json:"path"`
			URI  string `json:"uri"`
		}
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &infos))
		require.Len(t, infos, 2)
		assert.Equal(t, "b-highlighted.html", infos[0].Name)
		assert.Equal(t, "/reports/b-highlighted.html", infos[0].Path)
		assert.Equal(t, "report://reports/b-highlighted.html", infos[0].URI)
	})

	t.Run("empty list without report store", func(t *testing.T) {
		server := newTestServer(t, nil)

		req := makeReadResourceRequest("report://reports")
		result, err := server.handleReportsResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns error on store failure", func(t *testing.T) {
		store := &mockReportStore{err: errors.New("disk gone")}
		server := newTestServer(t, store)

		req := makeReadResourceRequest("report://reports")
		_, err := server.handleReportsResource(ctx, req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk gone")
	})
}

func TestServer_handleReportContentResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns report content", func(t *testing.T) {
		store := &mockReportStore{
			paths: []string{"/reports/a.html"},
			docs: map[string]string{
				"/reports/a.html": "<html><body>report</body></html>",
			},
		}
		server := newTestServer(t, store)

		req := makeReadResourceRequest("report://reports/a.html")
		result, err := server.handleReportContentResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "report://reports/a.html", result.Contents[0].URI)
		assert.Equal(t, "text/html", result.Contents[0].MIMEType)
		assert.Equal(t, "<html><body>report</body></html>", result.Contents[0].Text)
	})

	t.Run("unknown report is not found", func(t *testing.T) {
		store := &mockReportStore{paths: []string{"/reports/a.html"}}
		server := newTestServer(t, store)

		req := makeReadResourceRequest("report://reports/missing.html")
		_, err := server.handleReportContentResource(ctx, req)

		require.Error(t, err)
	})

	t.Run("invalid URI is not found", func(t *testing.T) {
		store := &mockReportStore{paths: []string{"/reports/a.html"}}
		server := newTestServer(t, store)

		req := makeReadResourceRequest("report://invalid/uri")
		_, err := server.handleReportContentResource(ctx, req)

		require.Error(t, err)
	})

	t.Run("not found without report store", func(t *testing.T) {
		server := newTestServer(t, nil)

		req := makeReadResourceRequest("report://reports/a.html")
		_, err := server.handleReportContentResource(ctx, req)

		require.Error(t, err)
	})
}
