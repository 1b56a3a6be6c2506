package editor

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/nDmitry/ytblog/internal/entity"
)

// Markdown converts editor HTML to Markdown.
func Markdown(html string) (string, error) {
	md, err := htmltomarkdown.ConvertString(html)

	if err != nil {
		return "", fmt.Errorf("could not convert document to markdown: %w", err)
	}

	return strings.TrimSpace(md), nil
}

// ExportMarkdown renders a document as Markdown with its title as a heading.
func ExportMarkdown(doc *entity.GeneratedDocument) (string, error) {
	body, err := Markdown(doc.Content)

	if err != nil {
		return "", err
	}

	var b strings.Builder

	if title := strings.TrimSpace(doc.Title); title != "" {
		b.WriteString("# ")
		b.WriteString(title)
		b.WriteString("\n\n")
	}

	b.WriteString(body)
	b.WriteString("\n")

	return b.String(), nil
}
