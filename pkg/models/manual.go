package models

// ManualDocument is one response-manual entry searchable by the
// manual-lookup collaborator.
type ManualDocument struct {
	ID       int      `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Type     string   `json:"type" yaml:"type"`
	Keywords []string `json:"keywords" yaml:"keywords"`
	Content  string   `json:"content" yaml:"content"`
}
