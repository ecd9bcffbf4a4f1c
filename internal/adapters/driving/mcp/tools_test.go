package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driving"
)

func TestServer_handleSummarizeURL(t *testing.T) {
	ctx := context.Background()

	t.Run("returns comparison rows", func(t *testing.T) {
		mockEval := &mockEvaluationService{
			result: &driving.EvaluationResult{
				Evaluation: &domain.Evaluation{
					Source: domain.Source{
						Kind:      domain.SourceKindWeb,
						Title:     "Test Page",
						Reference: "https://example.com/page",
					},
					Rows: []domain.ModelRuns{
						{
							Model: "llama3",
							Runs: []domain.Run{
								{Content: "summary one", Duration: 2 * time.Second},
								{Content: "summary two", Duration: 4 * time.Second},
							},
						},
						{
							Model: "gpt-4o-mini",
							Err:   errors.New("model not available"),
						},
					},
				},
				Report: &domain.Report{Path: "/reports/out.html", Highlighted: true},
			},
		}

		ports := &Ports{Evaluation: mockEval, Highlight: &mockHighlightService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := SummarizeURLInput{URL: "https://example.com/page"}
		_, output, err := server.handleSummarizeURL(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/page", mockEval.lastURL)
		assert.Equal(t, "Test Page", output.Title)
		assert.Equal(t, "https://example.com/page", output.Source)
		assert.Equal(t, "/reports/out.html", output.ReportPath)
		require.Len(t, output.Rows, 2)
		assert.Equal(t, "llama3", output.Rows[0].Model)
		assert.Equal(t, 2, output.Rows[0].Runs)
		assert.InDelta(t, 3.0, output.Rows[0].AverageSeconds, 0.001)
		assert.Empty(t, output.Rows[0].Error)
		assert.Equal(t, "gpt-4o-mini", output.Rows[1].Model)
		assert.Equal(t, 0, output.Rows[1].Runs)
		assert.Equal(t, "model not available", output.Rows[1].Error)
	})

	t.Run("passes model and prompt set overrides", func(t *testing.T) {
		mockEval := &mockEvaluationService{
			result: &driving.EvaluationResult{
				Evaluation: &domain.Evaluation{},
			},
		}
		ports := &Ports{Evaluation: mockEval, Highlight: &mockHighlightService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := SummarizeURLInput{
			URL:       "https://example.com",
			Models:    []string{"llama3"},
			PromptSet: "short",
		}
		_, output, err := server.handleSummarizeURL(ctx, nil, input)

		require.NoError(t, err)
		assert.Empty(t, output.ReportPath)
		assert.Empty(t, output.Rows)
	})

	t.Run("returns error on evaluation failure", func(t *testing.T) {
		mockEval := &mockEvaluationService{
			err: errors.New("fetch failed"),
		}
		ports := &Ports{Evaluation: mockEval, Highlight: &mockHighlightService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := SummarizeURLInput{URL: "https://example.com"}
		_, _, err = server.handleSummarizeURL(ctx, nil, input)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "fetch failed")
	})
}

func TestServer_handleHighlightHTML(t *testing.T) {
	ctx := context.Background()

	t.Run("returns highlighted document", func(t *testing.T) {
		ports := &Ports{
			Evaluation: &mockEvaluationService{},
			Highlight:  &mockHighlightService{},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := HighlightHTMLInput{HTML: "<table></table>"}
		_, output, err := server.handleHighlightHTML(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "<mark><table></table></mark>", output.HTML)
	})
}
