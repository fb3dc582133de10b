package catalog

// FindingKind classifies a structural finding
type FindingKind string

const (
	KindCasing                 FindingKind = "casing"
	KindUnexpectedArrayElement FindingKind = "unexpected-array-element"
	KindUnexpectedObjectKey    FindingKind = "unexpected-object-key"
	KindUnexpectedDocument     FindingKind = "unexpected-document"
)

// Finding is a problem found while building a tree
type Finding struct {
	Kind    FindingKind
	Message string
	Key     string
	Path    string
	Span    Span
	// Raw is the source text under Span, quotes included
	Raw string
}

// ShiftFindings moves finding spans into enclosing file coordinates
func ShiftFindings(findings []Finding, base Position) []Finding {
	out := make([]Finding, len(findings))
	for i, f := range findings {
		f.Span = f.Span.Shift(base)
		out[i] = f
	}
	return out
}
