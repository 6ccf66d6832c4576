package types

// RenderContext is the read-only view of a run handed to the walker and hooks
type RenderContext struct {
	TemplateDir string
	OutputDir   string
	Answers     *Answers
}

// TemplateEntry is one file or directory visited in the template tree
type TemplateEntry struct {
	// RelPath is the slash-separated path relative to the template root
	RelPath string
	// RawName is the unrendered base name
	RawName string
	IsDir   bool
}
