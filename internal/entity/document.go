package entity

// GeneratedDocument is the blog post returned by the generation service.
// Highlights and Tips are kept but not rendered by the editor.
type GeneratedDocument struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Highlights []string `json:"highlights"`
	Tips       []string `json:"tips"`
}

// Clone returns a deep copy of the document.
func (d *GeneratedDocument) Clone() *GeneratedDocument {
	if d == nil {
		return nil
	}

	clone := *d
	clone.Highlights = append([]string(nil), d.Highlights...)
	clone.Tips = append([]string(nil), d.Tips...)

	return &clone
}
