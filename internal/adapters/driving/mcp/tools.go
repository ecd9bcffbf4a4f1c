package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driving"
)

// SummarizeURLInput is the input schema for the summarize_url tool.
type SummarizeURLInput struct {
	URL       string   `json:"url" jsonschema:"the web page URL to summarise and compare across models"`
	Models    []string `json:"models,omitempty" jsonschema:"model names to run instead of the configured list"`
	PromptSet string   `json:"prompt_set,omitempty" jsonschema:"named prompt set to use (default when empty)"`
}

// SummarizeURLOutput is the output schema for the summarize_url tool.
type SummarizeURLOutput struct {
	Title      string           `json:"title"`
	Source     string           `json:"source"`
	ReportPath string           `json:"report_path,omitempty"`
	Rows       []ModelRowOutput `json:"rows"`
}

// ModelRowOutput summarises one model's comparison row.
type ModelRowOutput struct {
	Model          string  `json:"model"`
	Runs           int     `json:"runs"`
	AverageSeconds float64 `json:"average_seconds"`
	Error          string  `json:"error,omitempty"`
}

// HighlightHTMLInput is the input schema for the highlight_html tool.
type HighlightHTMLInput struct {
	HTML string `json:"html" jsonschema:"an HTML comparison document whose result cells should get unique words marked"`
}

// HighlightHTMLOutput is the output schema for the highlight_html tool.
type HighlightHTMLOutput struct {
	HTML string `json:"html"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "summarize_url",
		Description: "Fetch a web page, summarise it with every configured model, and write a highlighted comparison report",
	}, s.handleSummarizeURL)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "highlight_html",
		Description: "Mark the words unique to each result column of an HTML comparison table",
	}, s.handleHighlightHTML)
}

// handleSummarizeURL handles the summarize_url tool invocation.
func (s *Server) handleSummarizeURL(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SummarizeURLInput,
) (*mcp.CallToolResult, SummarizeURLOutput, error) {
	opts := driving.EvaluateOptions{
		Models:    input.Models,
		PromptSet: input.PromptSet,
	}

	result, err := s.ports.Evaluation.EvaluateURL(ctx, input.URL, opts)
	if err != nil {
		return nil, SummarizeURLOutput{}, err
	}

	eval := result.Evaluation
	output := SummarizeURLOutput{
		Title:  eval.Source.Title,
		Source: eval.Source.Reference,
		Rows:   make([]ModelRowOutput, len(eval.Rows)),
	}
	if result.Report != nil {
		output.ReportPath = result.Report.Path
	}

	for i, row := range eval.Rows {
		output.Rows[i] = ModelRowOutput{
			Model:          row.Model,
			Runs:           len(row.Runs),
			AverageSeconds: row.AverageTime().Seconds(),
		}
		if row.Err != nil {
			output.Rows[i].Error = row.Err.Error()
		}
	}

	return nil, output, nil
}

// handleHighlightHTML handles the highlight_html tool invocation.
func (s *Server) handleHighlightHTML(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input HighlightHTMLInput,
) (*mcp.CallToolResult, HighlightHTMLOutput, error) {
	marked := s.ports.Highlight.HighlightDocument(input.HTML)
	return nil, HighlightHTMLOutput{HTML: marked}, nil
}
