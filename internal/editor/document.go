package editor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Engine is the editing capability wrapped by Wrapper.
type Engine interface {
	// HTML serializes the current content.
	HTML() string

	// SetContent replaces the content without notifying OnUpdate.
	SetContent(html string) error

	// Select moves the cursor to the elements matching a CSS selector.
	Select(selector string) error

	Exec(cmd Command) error
	IsActive(cmd Command) bool
	CanApply(cmd Command) bool

	SetLink(href string) error

	// OnUpdate registers the callback run after every content mutation.
	OnUpdate(fn func(html string))
}

// Loader creates an engine holding html.
type Loader func(html string) (Engine, error)

// Document is an Engine over an HTML tree. The selection is a set of
// elements picked with a CSS selector; commands apply to all of them.
type Document struct {
	doc      *goquery.Document
	selector string
	sel      *goquery.Selection
	undo     []string
	redo     []string
	onUpdate func(string)
}

// Load parses html into a Document. It satisfies Loader.
func Load(html string) (Engine, error) {
	d := &Document{}

	if err := d.parse(html); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Document) parse(html string) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))

	if err != nil {
		return fmt.Errorf("could not parse editor content: %w", err)
	}

	d.doc = doc
	d.reselect()

	return nil
}

func (d *Document) body() *goquery.Selection {
	return d.doc.Find("body")
}

func (d *Document) HTML() string {
	html, err := d.body().Html()

	if err != nil {
		return ""
	}

	return html
}

func (d *Document) SetContent(html string) error {
	if err := d.parse(html); err != nil {
		return err
	}

	d.undo = nil
	d.redo = nil

	return nil
}

func (d *Document) Select(selector string) error {
	d.selector = strings.TrimSpace(selector)
	d.reselect()

	if d.sel.Length() == 0 {
		return fmt.Errorf("%w: %q", ErrNothingSelected, selector)
	}

	return nil
}

// reselect runs the last selector against the current tree.
func (d *Document) reselect() {
	if d.selector == "" {
		d.sel = d.body().Slice(0, 0)
		return
	}

	d.sel = d.body().Find(d.selector)
}

func (d *Document) Exec(cmd Command) error {
	c, ok := capabilities[cmd]

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}

	return c.toggle(d)
}

func (d *Document) IsActive(cmd Command) bool {
	c, ok := capabilities[cmd]
	return ok && c.isActive(d)
}

func (d *Document) CanApply(cmd Command) bool {
	c, ok := capabilities[cmd]
	return ok && c.canApply(d)
}

func (d *Document) SetLink(href string) error {
	return setLink(d, href)
}

func (d *Document) OnUpdate(fn func(html string)) {
	d.onUpdate = fn
}

func (d *Document) hasSelection() bool {
	return d.sel != nil && d.sel.Length() > 0
}

// mutate records history and notifies the update hook when fn changed the content.
func (d *Document) mutate(fn func()) {
	before := d.HTML()

	fn()

	after := d.HTML()

	if after == before {
		return
	}

	d.undo = append(d.undo, before)
	d.redo = nil
	d.emit(after)
}

func (d *Document) emit(html string) {
	if d.onUpdate != nil {
		d.onUpdate(html)
	}
}

// unwrap replaces an element with its children.
func unwrap(_ int, s *goquery.Selection) {
	s.ReplaceWithSelection(s.Contents())
}
