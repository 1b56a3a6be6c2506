package workflow

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nDmitry/ytblog/internal/app"
	"github.com/nDmitry/ytblog/internal/entity"
	"github.com/nDmitry/ytblog/internal/resolver"
)

// ChannelResolver finds a channel and its recent videos for free-form input.
type ChannelResolver interface {
	Resolve(ctx context.Context, query string) (*resolver.Resolution, error)
}

// Generator turns a video URL into a blog post.
type Generator interface {
	Generate(ctx context.Context, youtubeURL string) (*entity.GeneratedDocument, error)
}

// Workflow drives channel lookup, selection and blog generation on top of a Store.
// Remote failures are logged and leave the state as if nothing happened.
type Workflow struct {
	store     *Store
	resolver  ChannelResolver
	generator Generator
	logger    *slog.Logger
}

// New creates a workflow operating on store.
func New(store *Store, r ChannelResolver, g Generator) *Workflow {
	return &Workflow{
		store:     store,
		resolver:  r,
		generator: g,
		logger:    app.Logger(),
	}
}

// Store returns the underlying state container.
func (w *Workflow) Store() *Store {
	return w.store
}

// SetQuery records the search input without searching.
func (w *Workflow) SetQuery(query string) State {
	return w.store.Dispatch(SetQuery{Query: query})
}

// Search resolves the current query. Blank queries are ignored.
// Concurrent searches are not sequenced: the last one to finish wins.
func (w *Workflow) Search(ctx context.Context) State {
	query := w.store.GetState().Query

	if strings.TrimSpace(query) == "" {
		return w.store.GetState()
	}

	w.store.Dispatch(SearchStarted{})

	res, err := w.resolver.Resolve(ctx, query)

	if err != nil {
		w.logger.Info("Search produced no channel", "query", query, "error", err)
		return w.store.Dispatch(SearchFailed{})
	}

	return w.store.Dispatch(SearchSucceeded{Channel: res.Channel, Videos: res.Videos})
}

// Toggle flips the selection of a video of the current list.
func (w *Workflow) Toggle(videoID string) State {
	return w.store.Dispatch(ToggleSelection{VideoID: videoID})
}

// Generate requests a blog post for the first selected video only.
// Nothing happens when the selection is empty.
func (w *Workflow) Generate(ctx context.Context) State {
	state := w.store.GetState()

	if len(state.Selection) == 0 {
		return state
	}

	w.store.Dispatch(GenerateStarted{})

	youtubeURL := entity.WatchURL(state.Selection[0])
	doc, err := w.generator.Generate(ctx, youtubeURL)

	if err != nil {
		w.logger.Error("Blog generation failed", "youtubeUrl", youtubeURL, "error", err)
		return w.store.Dispatch(GenerateFailed{})
	}

	if doc == nil {
		w.logger.Error("Blog service returned no document", "youtubeUrl", youtubeURL)
		return w.store.Dispatch(GenerateFailed{})
	}

	return w.store.Dispatch(GenerateSucceeded{Document: doc})
}

// EditTitle replaces the document title.
func (w *Workflow) EditTitle(title string) State {
	return w.store.Dispatch(EditTitle{Title: title})
}

// EditContent replaces the document HTML with what the editor emitted.
func (w *Workflow) EditContent(html string) State {
	return w.store.Dispatch(EditContent{HTML: html})
}

// Publish is not implemented by the product yet.
func (w *Workflow) Publish() {
	w.logger.Info("Publish requested", "title", w.documentTitle())
}

// Cancel is not implemented by the product yet.
func (w *Workflow) Cancel() {
	w.logger.Info("Cancel requested", "title", w.documentTitle())
}

func (w *Workflow) documentTitle() string {
	if doc := w.store.GetState().Document; doc != nil {
		return doc.Title
	}

	return ""
}
