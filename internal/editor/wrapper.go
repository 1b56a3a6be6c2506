package editor

import (
	"strings"
)

// Button is the toolbar state of one command.
type Button struct {
	Command Command `json:"command"`
	Active  bool    `json:"active"`
	Enabled bool    `json:"enabled"`
}

// LinkForm is the URL prompt shown before a link is applied.
type LinkForm struct {
	Open bool   `json:"open"`
	URL  string `json:"url"`
}

// Wrapper binds an Engine to externally owned content. Every user edit is
// reported through onChange, and Sync pushes outside changes back in.
type Wrapper struct {
	engine   Engine
	onChange func(html string)
	link     LinkForm
}

// NewWrapper loads content with load. onChange may be nil.
func NewWrapper(load Loader, content string, onChange func(html string)) (*Wrapper, error) {
	engine, err := load(content)

	if err != nil {
		return nil, err
	}

	w := &Wrapper{engine: engine, onChange: onChange}
	engine.OnUpdate(w.changed)

	return w, nil
}

func (w *Wrapper) changed(html string) {
	if w.onChange != nil {
		w.onChange(html)
	}
}

// HTML returns the editor's current serialization.
func (w *Wrapper) HTML() string {
	return w.engine.HTML()
}

// Sync loads content into the editor if it differs from what the editor holds.
// It reports whether the editor was reset.
func (w *Wrapper) Sync(content string) (bool, error) {
	if w.engine.HTML() == content {
		return false, nil
	}

	if err := w.engine.SetContent(content); err != nil {
		return false, err
	}

	return true, nil
}

// Select places the cursor on the elements matching selector.
func (w *Wrapper) Select(selector string) error {
	return w.engine.Select(selector)
}

// Run executes a toolbar command. Link removes an active link and
// otherwise shows or hides the link form.
func (w *Wrapper) Run(cmd Command) error {
	if _, err := ParseCommand(string(cmd)); err != nil {
		return err
	}

	if cmd == Link && !w.engine.IsActive(Link) {
		if !w.engine.CanApply(Link) {
			return ErrNothingSelected
		}

		w.ToggleLinkForm()

		return nil
	}

	return w.engine.Exec(cmd)
}

// Toolbar reports each command's active and enabled state.
func (w *Wrapper) Toolbar() []Button {
	buttons := make([]Button, 0, len(commands))

	for _, cmd := range commands {
		buttons = append(buttons, Button{
			Command: cmd,
			Active:  w.engine.IsActive(cmd),
			Enabled: w.engine.CanApply(cmd),
		})
	}

	return buttons
}

// LinkForm returns the state of the link prompt.
func (w *Wrapper) LinkForm() LinkForm {
	return w.link
}

// OpenLinkForm shows an empty link prompt.
func (w *Wrapper) OpenLinkForm() {
	w.link = LinkForm{Open: true}
}

// ToggleLinkForm shows the link prompt, or hides it without changes when shown.
func (w *Wrapper) ToggleLinkForm() {
	if w.link.Open {
		w.CancelLink()
		return
	}

	w.OpenLinkForm()
}

// SetLinkURL updates the text typed into the link prompt.
func (w *Wrapper) SetLinkURL(url string) {
	w.link.URL = url
}

// KeyDown handles a key pressed in the link prompt. Enter applies.
func (w *Wrapper) KeyDown(key string) error {
	if key != "Enter" {
		return nil
	}

	return w.ApplyLink()
}

// ApplyLink sets the typed URL on the selection, if any, and closes the prompt.
func (w *Wrapper) ApplyLink() error {
	url := strings.TrimSpace(w.link.URL)
	w.link = LinkForm{}

	if url == "" {
		return nil
	}

	return w.engine.SetLink(url)
}

// CancelLink closes the prompt without changes.
func (w *Wrapper) CancelLink() {
	w.link = LinkForm{}
}
