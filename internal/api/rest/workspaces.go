package rest

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/nDmitry/ytblog/internal/app"
	"github.com/nDmitry/ytblog/internal/editor"
	"github.com/nDmitry/ytblog/internal/resolver"
	"github.com/nDmitry/ytblog/internal/workflow"
)

var (
	// ErrWorkspaceNotFound is returned for unknown workspace ids
	ErrWorkspaceNotFound = errors.New("workspace not found")

	// ErrNoDocument is returned for document operations before a post was generated
	ErrNoDocument = errors.New("no document has been generated yet")
)

// Resolver looks channels up for workspaces and for the feed endpoint.
type Resolver interface {
	workflow.ChannelResolver
	ResolveRecent(ctx context.Context, query string, limit int64) (*resolver.Resolution, error)
}

// Workspace is one user's workflow together with the editor showing its document.
type Workspace struct {
	ID   string
	Flow *workflow.Workflow

	// mu guards the editor, which is not safe for concurrent use.
	mu     sync.Mutex
	load   editor.Loader
	editor *editor.Wrapper

	// Unix nanoseconds of the last lookup.
	lastUsed atomic.Int64
}

func (ws *Workspace) touch(now time.Time) {
	ws.lastUsed.Store(now.UnixNano())
}

// syncEditor returns the editor loaded with the current document content,
// creating it on first use. The caller must hold mu.
func (ws *Workspace) syncEditor() (*editor.Wrapper, error) {
	doc := ws.Flow.Store().GetState().Document

	if doc == nil {
		return nil, ErrNoDocument
	}

	if ws.editor == nil {
		wrapper, err := editor.NewWrapper(ws.load, doc.Content, func(html string) {
			ws.Flow.EditContent(html)
		})

		if err != nil {
			return nil, err
		}

		ws.editor = wrapper

		return wrapper, nil
	}

	if _, err := ws.editor.Sync(doc.Content); err != nil {
		return nil, err
	}

	return ws.editor, nil
}

// WithEditor runs fn with exclusive access to the workspace editor.
func (ws *Workspace) WithEditor(fn func(e *editor.Wrapper) error) error {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	e, err := ws.syncEditor()

	if err != nil {
		return err
	}

	return fn(e)
}

// Workspaces is the in-memory registry of workspaces.
// Workspaces not looked up for idleTTL are dropped by Sweep.
type Workspaces struct {
	mu        sync.RWMutex
	items     map[string]*Workspace
	resolver  workflow.ChannelResolver
	generator workflow.Generator
	load      editor.Loader
	idleTTL   time.Duration
	logger    *slog.Logger
}

// NewWorkspaces creates an empty registry whose workspaces share r and g.
// A non-positive idleTTL keeps workspaces forever.
func NewWorkspaces(r workflow.ChannelResolver, g workflow.Generator, load editor.Loader, idleTTL time.Duration) *Workspaces {
	return &Workspaces{
		items:     make(map[string]*Workspace),
		resolver:  r,
		generator: g,
		load:      load,
		idleTTL:   idleTTL,
		logger:    app.Logger(),
	}
}

// Create registers a new idle workspace.
func (w *Workspaces) Create() *Workspace {
	ws := &Workspace{
		ID:   uuid.NewString(),
		Flow: workflow.New(workflow.NewStore(), w.resolver, w.generator),
		load: w.load,
	}

	ws.touch(time.Now())

	w.mu.Lock()
	w.items[ws.ID] = ws
	w.mu.Unlock()

	return ws
}

// Get returns the workspace with the given id and marks it as used.
func (w *Workspaces) Get(id string) (*Workspace, error) {
	w.mu.RLock()
	ws, ok := w.items[id]
	w.mu.RUnlock()

	if !ok {
		return nil, ErrWorkspaceNotFound
	}

	ws.touch(time.Now())

	return ws, nil
}

// Len returns the number of registered workspaces.
func (w *Workspaces) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return len(w.items)
}

// Sweep drops workspaces last used more than idleTTL before now and
// returns how many were dropped.
func (w *Workspaces) Sweep(now time.Time) int {
	if w.idleTTL <= 0 {
		return 0
	}

	cutoff := now.Add(-w.idleTTL).UnixNano()

	w.mu.Lock()
	defer w.mu.Unlock()

	dropped := 0

	for id, ws := range w.items {
		if ws.lastUsed.Load() < cutoff {
			delete(w.items, id)
			dropped++
		}
	}

	return dropped
}

// Run sweeps idle workspaces every interval until ctx is canceled.
func (w *Workspaces) Run(ctx context.Context, interval time.Duration) {
	if w.idleTTL <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if dropped := w.Sweep(now); dropped > 0 {
				w.logger.Info("Dropped idle workspaces", "count", dropped)
			}
		}
	}
}
