package domain

// SourceKind identifies where evaluated content came from.
type SourceKind string

// Available source kinds.
const (
	// SourceKindEmail is a newsletter article pulled from the mail archive.
	SourceKindEmail SourceKind = "email"

	// SourceKindWeb is a fetched web page.
	SourceKindWeb SourceKind = "web"

	// SourceKindPrompt is text supplied directly by the user.
	SourceKindPrompt SourceKind = "prompt"
)

// IsValid returns true if the source kind is recognised.
func (k SourceKind) IsValid() bool {
	switch k {
	case SourceKindEmail, SourceKindWeb, SourceKindPrompt:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k SourceKind) String() string {
	return string(k)
}

// Description returns a human-readable description of the kind.
func (k SourceKind) Description() string {
	switch k {
	case SourceKindEmail:
		return "Email archive"
	case SourceKindWeb:
		return "Web page"
	case SourceKindPrompt:
		return "Direct prompt"
	default:
		return unknownDescription
	}
}

// Source is one piece of content under evaluation.
type Source struct {
	// Kind says where the content came from.
	Kind SourceKind

	// Title is the display title (article title, page title, or empty).
	Title string

	// Reference is the canonical location, shown and linked in the report.
	// Direct prompts carry a leading snippet of the text instead.
	Reference string

	// Content is the text sent to the models.
	Content string
}

// Truncated returns a copy with Content cut to at most max bytes.
// Non-positive max leaves the content untouched.
func (s Source) Truncated(max int) Source {
	if max <= 0 || len(s.Content) <= max {
		return s
	}
	out := s
	out.Content = s.Content[:max]
	return out
}
