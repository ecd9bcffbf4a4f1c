package htmlreport

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driven"
)

// DefaultResultColumns is the report width used when no option overrides it.
const DefaultResultColumns = 3

// Ensure Builder implements the ReportBuilder interface.
var _ driven.ReportBuilder = (*Builder)(nil)

// Builder renders evaluations with a fixed number of result columns.
type Builder struct {
	columns int
}

// Option configures a Builder.
type Option func(*Builder)

// WithResultColumns sets the number of result columns per row.
func WithResultColumns(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.columns = n
		}
	}
}

// NewBuilder creates a report builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{columns: DefaultResultColumns}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// reportView is the template payload for one report.
type reportView struct {
	Title   string
	URL     string
	Source  string
	System  string
	User    string
	Columns []string
	Rows    []rowView
}

// rowView is one table row. Cells hold run markup and render verbatim.
type rowView struct {
	Model string
	Cells []template.HTML
}

// Build renders the evaluation. The returned document embeds its own
// styling and needs no external assets.
func (b *Builder) Build(eval *domain.Evaluation) (string, error) {
	if eval == nil {
		return "", fmt.Errorf("%w: nil evaluation", domain.ErrInvalidInput)
	}

	view := reportView{
		Title:  eval.Source.Title,
		System: eval.SystemPrompt,
		User:   eval.UserPrompt,
	}

	// Links render as an examined URL, everything else as a plain
	// source line.
	if strings.HasPrefix(eval.Source.Reference, "http") {
		view.URL = eval.Source.Reference
	} else {
		view.Source = eval.Source.Reference
	}

	for i := 0; i < b.columns; i++ {
		view.Columns = append(view.Columns, fmt.Sprintf("Run %d", i+1))
	}

	for _, row := range eval.Rows {
		cells := make([]template.HTML, 0, b.columns)
		for _, cell := range row.Cells(b.columns) {
			cells = append(cells, template.HTML(cell))
		}
		view.Rows = append(view.Rows, rowView{Model: row.Model, Cells: cells})
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return buf.String(), nil
}

var reportTemplate = template.Must(template.New("summary-report").Parse(reportTemplateHTML))

const reportTemplateHTML = `<html>
<head>
<title>LLM Summary Evaluation Report</title>
<style>
body {
    font-family: Arial, sans-serif;
    margin: 20px;
    line-height: 1.6;
}
table {
    border-collapse: collapse;
    width: 100%;
    margin-top: 20px;
}
th, td {
    border: 1px solid #ddd;
    padding: 12px;
    text-align: left;
    vertical-align: top;
}
th {
    background-color: #f2f2f2;
    font-weight: bold;
}
tr:nth-child(even) {
    background-color: #f9f9f9;
}
mark {
    background-color: #ffeb3b;
    padding: 2px 4px;
    border-radius: 3px;
}
.model-name {
    font-weight: bold;
    width: 15%;
}
.result-cell {
    width: 28%;
}
h2 {
    color: #333;
    border-bottom: 2px solid #007acc;
    padding-bottom: 5px;
}
p {
    margin: 10px 0;
}
a {
    color: #007acc;
    text-decoration: none;
}
a:hover {
    text-decoration: underline;
}
</style>
</head>
<body>
{{if .Title}}<h2>{{.Title}}</h2>
{{end}}{{if .URL}}<p>URL Examined: <a href="{{.URL}}">{{.URL}}</a></p>
{{end}}{{if .Source}}<p>Source: {{.Source}}</p>
{{end}}{{if .System}}<p><strong>System Prompt:</strong> {{.System}}</p>
{{end}}{{if .User}}<p><strong>User Prompt:</strong> {{.User}}</p>
{{end}}<table>
<tr>
<th class="model-name">Model</th>
{{range .Columns}}<th class="result-cell">{{.}}</th>
{{end}}</tr>
{{range .Rows}}<tr>
<td>{{.Model}}</td>
{{range .Cells}}<td>{{.}}</td>
{{end}}</tr>
{{end}}</table>
</body>
</html>
`
