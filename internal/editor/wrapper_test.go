package editor

import (
	"testing"

	"github.com/nDmitry/ytblog/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapperReportsEdits(t *testing.T) {
	var changes []string

	w, err := NewWrapper(Load, "<p>C</p>", func(html string) { changes = append(changes, html) })
	require.NoError(t, err)

	require.NoError(t, w.Select("p"))
	require.NoError(t, w.Run(Bold))

	assert.Equal(t, []string{"<p><strong>C</strong></p>"}, changes)
}

func TestWrapperSync(t *testing.T) {
	changes := 0

	w, err := NewWrapper(Load, "<p>C</p>", func(string) { changes++ })
	require.NoError(t, err)

	reset, err := w.Sync("<p>C</p>")
	require.NoError(t, err)
	assert.False(t, reset)

	reset, err = w.Sync("<p>D</p>")
	require.NoError(t, err)
	assert.True(t, reset)
	assert.Equal(t, "<p>D</p>", w.HTML())

	assert.Zero(t, changes)
}

func TestWrapperLinkForm(t *testing.T) {
	w, err := NewWrapper(Load, "<p>C</p>", nil)
	require.NoError(t, err)

	assert.ErrorIs(t, w.Run(Link), ErrNothingSelected)

	require.NoError(t, w.Select("p"))
	require.NoError(t, w.Run(Link))
	assert.Equal(t, LinkForm{Open: true}, w.LinkForm())
	assert.Equal(t, "<p>C</p>", w.HTML())

	w.SetLinkURL("https://example.com")
	require.NoError(t, w.KeyDown("a"))
	assert.True(t, w.LinkForm().Open)

	require.NoError(t, w.KeyDown("Enter"))
	assert.Equal(t, LinkForm{}, w.LinkForm())
	assert.Contains(t, w.HTML(), `<a href="https://example.com"`)

	require.NoError(t, w.Run(Link))
	assert.Equal(t, "<p>C</p>", w.HTML())
	assert.False(t, w.LinkForm().Open)
}

func TestWrapperEmptyLinkClosesForm(t *testing.T) {
	w, err := NewWrapper(Load, "<p>C</p>", nil)
	require.NoError(t, err)
	require.NoError(t, w.Select("p"))

	require.NoError(t, w.Run(Link))
	w.SetLinkURL("   ")
	require.NoError(t, w.ApplyLink())

	assert.Equal(t, LinkForm{}, w.LinkForm())
	assert.Equal(t, "<p>C</p>", w.HTML())

	require.NoError(t, w.Run(Link))
	w.SetLinkURL("https://example.com")
	w.CancelLink()

	assert.False(t, w.LinkForm().Open)
	assert.Equal(t, "<p>C</p>", w.HTML())
}

func TestWrapperLinkButtonTogglesForm(t *testing.T) {
	w, err := NewWrapper(Load, "<p>C</p>", nil)
	require.NoError(t, err)
	require.NoError(t, w.Select("p"))

	require.NoError(t, w.Run(Link))
	w.SetLinkURL("https://example.com")
	assert.True(t, w.LinkForm().Open)

	require.NoError(t, w.Run(Link))
	assert.Equal(t, LinkForm{}, w.LinkForm())
	assert.Equal(t, "<p>C</p>", w.HTML())

	require.NoError(t, w.Run(Link))
	assert.Equal(t, LinkForm{Open: true}, w.LinkForm())
}

func TestWrapperRunUnknown(t *testing.T) {
	w, err := NewWrapper(Load, "<p>C</p>", nil)
	require.NoError(t, err)

	assert.ErrorIs(t, w.Run(Command("heading")), ErrUnknownCommand)
}

func TestToolbar(t *testing.T) {
	w, err := NewWrapper(Load, "<p>C</p>", nil)
	require.NoError(t, err)

	buttons := w.Toolbar()
	require.Len(t, buttons, len(Commands()))

	for _, b := range buttons {
		assert.False(t, b.Active, b.Command)
		assert.False(t, b.Enabled, b.Command)
	}

	require.NoError(t, w.Select("p"))
	require.NoError(t, w.Run(Bold))

	state := map[Command]Button{}
	for _, b := range w.Toolbar() {
		state[b.Command] = b
	}

	assert.True(t, state[Bold].Active)
	assert.True(t, state[Bold].Enabled)
	assert.False(t, state[Italic].Active)
	assert.True(t, state[Undo].Enabled)
	assert.False(t, state[Redo].Enabled)
}

func TestMarkdown(t *testing.T) {
	md, err := Markdown("<p><strong>C</strong></p>")
	require.NoError(t, err)
	assert.Equal(t, "**C**", md)

	out, err := ExportMarkdown(&entity.GeneratedDocument{Title: "Title", Content: "<p>Hello</p>"})
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nHello\n", out)
}
