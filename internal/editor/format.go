package editor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	linkTarget = "_blank"
	linkRel    = "noopener noreferrer nofollow"
)

// every reports whether fn holds for each selected element.
func every(d *Document, fn func(e *goquery.Selection) bool) bool {
	if !d.hasSelection() {
		return false
	}

	ok := true

	d.sel.EachWithBreak(func(_ int, e *goquery.Selection) bool {
		ok = fn(e)
		return ok
	})

	return ok
}

// wrapped reports whether e is inside an element matching match, or its
// whole text sits in a single child matching it.
func wrapped(e *goquery.Selection, match string) bool {
	if e.Closest(match).Length() > 0 {
		return true
	}

	children := e.Children()

	return children.Length() == 1 &&
		children.Is(match) &&
		strings.TrimSpace(children.Text()) == strings.TrimSpace(e.Text())
}

// removeWrapping strips match from the selection, inside and above it.
// An element that itself matches is replaced by its parent in the selection.
func removeWrapping(d *Document, match string) {
	var kept []*goquery.Selection

	d.sel.Each(func(_ int, e *goquery.Selection) {
		e.Find(match).Each(unwrap)
		e.ParentsFiltered(match).Each(unwrap)

		if e.Is(match) {
			parent := e.Parent()
			unwrap(0, e)
			kept = append(kept, parent)
			return
		}

		kept = append(kept, e)
	})

	sel := d.body().Slice(0, 0)

	for _, k := range kept {
		sel = sel.AddSelection(k)
	}

	d.sel = sel
}

// mark is an inline formatting such as bold or italic.
type mark struct {
	tag   string
	match string
}

func (m mark) isActive(d *Document) bool {
	return every(d, func(e *goquery.Selection) bool { return wrapped(e, m.match) })
}

func (m mark) canApply(d *Document) bool {
	return d.hasSelection()
}

func (m mark) toggle(d *Document) error {
	if !m.canApply(d) {
		return ErrNothingSelected
	}

	active := m.isActive(d)

	d.mutate(func() {
		if active {
			removeWrapping(d, m.match)
			return
		}

		d.sel.Each(func(_ int, e *goquery.Selection) {
			e.Find(m.match).Each(unwrap)
			e.WrapInnerHtml("<" + m.tag + "></" + m.tag + ">")
		})
	})

	return nil
}

// list turns the selected blocks into list items.
type list struct {
	tag   string
	other string
}

func inList(e *goquery.Selection, tag string) bool {
	return e.Closest("li").Length() > 0 && e.Closest("ul, ol").Is(tag)
}

func (l list) isActive(d *Document) bool {
	return every(d, func(e *goquery.Selection) bool { return inList(e, l.tag) })
}

func (l list) canApply(d *Document) bool {
	return d.hasSelection()
}

func (l list) toggle(d *Document) error {
	if !l.canApply(d) {
		return ErrNothingSelected
	}

	active := l.isActive(d)

	d.mutate(func() {
		if active {
			l.lift(d)
			return
		}

		l.wrap(d)
	})

	return nil
}

// lift turns the items of the lists holding the selection back into paragraphs.
func (l list) lift(d *Document) {
	d.sel.Each(func(_ int, e *goquery.Selection) {
		container := e.Closest("ul, ol")

		if container.Length() == 0 {
			return
		}

		container.Children().Filter("li").Each(func(_ int, li *goquery.Selection) {
			rename(li, atom.P)
		})

		unwrap(0, container)
	})
}

// wrap turns each run of adjacent top-level blocks of the selection into one list.
// Blocks already in a list of the other kind switch that list's kind, and lists
// of the target kind inside a run are merged rather than nested.
func (l list) wrap(d *Document) {
	var blocks []*goquery.Selection

	seen := map[*html.Node]bool{}

	d.sel.Each(func(_ int, e *goquery.Selection) {
		if inList(e, l.other) {
			rename(e.Closest("ul, ol"), atom.Lookup([]byte(l.tag)))
		}

		block := topBlock(d, e)

		if block.Length() == 0 || seen[block.Nodes[0]] {
			return
		}

		seen[block.Nodes[0]] = true
		blocks = append(blocks, block)
	})

	for _, run := range adjacentRuns(blocks) {
		l.wrapRun(run)
	}
}

// adjacentRuns splits blocks into groups of element siblings that follow each other.
// Runs are computed before any block moves.
func adjacentRuns(blocks []*goquery.Selection) [][]*goquery.Selection {
	var runs [][]*goquery.Selection

	for i, block := range blocks {
		if i > 0 {
			prev := block.Prev()

			if prev.Length() > 0 && prev.Nodes[0] == blocks[i-1].Nodes[0] {
				runs[len(runs)-1] = append(runs[len(runs)-1], block)
				continue
			}
		}

		runs = append(runs, []*goquery.Selection{block})
	}

	return runs
}

func (l list) wrapRun(run []*goquery.Selection) {
	container := run[0]

	if !container.Is(l.tag) {
		container.BeforeHtml("<" + l.tag + "></" + l.tag + ">")
		container = container.Prev()
	}

	for _, block := range run {
		switch {
		case block.Nodes[0] == container.Nodes[0]:
			continue
		case block.Is(l.tag):
			container.AppendSelection(block.Children())
			block.Remove()
		case block.Is("p"):
			rename(block, atom.Li)
			container.AppendSelection(block)
		default:
			block.WrapHtml("<li></li>")
			container.AppendSelection(block.Parent())
		}
	}
}

// topBlock returns the ancestor of e (or e) that is a direct child of body.
func topBlock(d *Document, e *goquery.Selection) *goquery.Selection {
	body := d.body()
	block := e

	for block.Length() > 0 && !block.Parent().IsSelection(body) {
		block = block.Parent()
	}

	return block
}

func rename(s *goquery.Selection, a atom.Atom) {
	for _, n := range s.Nodes {
		n.DataAtom = a
		n.Data = a.String()
	}
}

// link is the hyperlink mark. Applying it needs a URL, see setLink.
type link struct{}

const linkMatch = "a"

func (link) isActive(d *Document) bool {
	return every(d, func(e *goquery.Selection) bool { return wrapped(e, linkMatch) })
}

func (link) canApply(d *Document) bool {
	return d.hasSelection()
}

// toggle removes an active link. Adding one goes through setLink.
func (l link) toggle(d *Document) error {
	if !l.canApply(d) {
		return ErrNothingSelected
	}

	if !l.isActive(d) {
		return ErrEmptyLinkURL
	}

	d.mutate(func() { removeWrapping(d, linkMatch) })

	return nil
}

func setLink(d *Document, href string) error {
	href = strings.TrimSpace(href)

	if href == "" {
		return ErrEmptyLinkURL
	}

	if !d.hasSelection() {
		return ErrNothingSelected
	}

	d.mutate(func() {
		d.sel.Each(func(_ int, e *goquery.Selection) {
			if a := e.Closest(linkMatch); a.Length() > 0 {
				a.SetAttr("href", href)
				return
			}

			e.Find(linkMatch).Each(unwrap)
			e.WrapInnerHtml("<a></a>")
			e.ChildrenFiltered(linkMatch).
				SetAttr("href", href).
				SetAttr("target", linkTarget).
				SetAttr("rel", linkRel)
		})
	})

	return nil
}

// history steps through content snapshots.
type history struct {
	undo bool
}

func (h history) stacks(d *Document) (from *[]string, to *[]string) {
	if h.undo {
		return &d.undo, &d.redo
	}

	return &d.redo, &d.undo
}

func (history) isActive(*Document) bool {
	return false
}

func (h history) canApply(d *Document) bool {
	from, _ := h.stacks(d)
	return len(*from) > 0
}

func (h history) toggle(d *Document) error {
	from, to := h.stacks(d)

	if len(*from) == 0 {
		return nil
	}

	snapshot := (*from)[len(*from)-1]
	*from = (*from)[:len(*from)-1]
	*to = append(*to, d.HTML())

	if err := d.parse(snapshot); err != nil {
		return err
	}

	d.emit(d.HTML())

	return nil
}
