package editor

import (
	"errors"
	"fmt"
	"slices"
)

// Command is a toolbar action of the rich-text editor.
type Command string

const (
	Bold        Command = "bold"
	Italic      Command = "italic"
	Underline   Command = "underline"
	Strike      Command = "strike"
	BulletList  Command = "bulletList"
	OrderedList Command = "orderedList"
	Link        Command = "link"
	Undo        Command = "undo"
	Redo        Command = "redo"
)

var (
	// ErrUnknownCommand is returned for names outside the command table
	ErrUnknownCommand = errors.New("unknown editor command")

	// ErrNothingSelected is returned when a formatting command has no target
	ErrNothingSelected = errors.New("nothing selected")

	// ErrEmptyLinkURL is returned when a link is applied without a URL
	ErrEmptyLinkURL = errors.New("link URL is empty")
)

// Toolbar order.
var commands = []Command{Bold, Italic, Underline, Strike, BulletList, OrderedList, Link, Undo, Redo}

// capability is implemented by every entry of the command table.
type capability interface {
	toggle(d *Document) error
	isActive(d *Document) bool
	canApply(d *Document) bool
}

var capabilities = map[Command]capability{
	Bold:        mark{tag: "strong", match: "strong, b"},
	Italic:      mark{tag: "em", match: "em, i"},
	Underline:   mark{tag: "u", match: "u"},
	Strike:      mark{tag: "s", match: "s, strike, del"},
	BulletList:  list{tag: "ul", other: "ol"},
	OrderedList: list{tag: "ol", other: "ul"},
	Link:        link{},
	Undo:        history{undo: true},
	Redo:        history{undo: false},
}

// Commands returns every supported command in toolbar order.
func Commands() []Command {
	return slices.Clone(commands)
}

// ParseCommand validates a command name.
func ParseCommand(name string) (Command, error) {
	cmd := Command(name)

	if _, ok := capabilities[cmd]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	return cmd, nil
}
