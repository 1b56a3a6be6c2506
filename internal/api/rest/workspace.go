package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/nDmitry/ytblog/internal/app"
	"github.com/nDmitry/ytblog/internal/editor"
	"github.com/nDmitry/ytblog/internal/workflow"
)

// WorkspaceHandler exposes the generation workflow and the editor over HTTP
type WorkspaceHandler struct {
	workspaces *Workspaces
	logger     *slog.Logger
}

type createResponse struct {
	ID    string         `json:"id"`
	State workflow.State `json:"state"`
}

type queryRequest struct {
	Query *string `json:"query"`
}

type documentRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type commandRequest struct {
	Selector string `json:"selector"`
	URL      string `json:"url"`
}

type editorResponse struct {
	HTML     string          `json:"html"`
	Toolbar  []editor.Button `json:"toolbar"`
	LinkForm editor.LinkForm `json:"linkForm"`
	State    workflow.State  `json:"state"`
}

// NewWorkspaceHandler creates a new WorkspaceHandler and sets up routes
func NewWorkspaceHandler(mux *http.ServeMux, workspaces *Workspaces) *WorkspaceHandler {
	h := &WorkspaceHandler{
		workspaces: workspaces,
		logger:     app.Logger(),
	}

	mux.HandleFunc("POST /api/workspaces", h.Create)
	mux.HandleFunc("GET /api/workspaces/{id}", h.withWorkspace(h.GetState))
	mux.HandleFunc("PUT /api/workspaces/{id}/query", h.withWorkspace(h.SetQuery))
	mux.HandleFunc("POST /api/workspaces/{id}/search", h.withWorkspace(h.Search))
	mux.HandleFunc("POST /api/workspaces/{id}/selection/{videoID}", h.withWorkspace(h.Toggle))
	mux.HandleFunc("POST /api/workspaces/{id}/generate", h.withWorkspace(h.Generate))
	mux.HandleFunc("PATCH /api/workspaces/{id}/document", h.withWorkspace(h.EditDocument))
	mux.HandleFunc("POST /api/workspaces/{id}/editor/commands/{command}", h.withWorkspace(h.RunCommand))
	mux.HandleFunc("GET /api/workspaces/{id}/document.md", h.withWorkspace(h.ExportMarkdown))
	mux.HandleFunc("POST /api/workspaces/{id}/publish", h.withWorkspace(h.Publish))
	mux.HandleFunc("POST /api/workspaces/{id}/cancel", h.withWorkspace(h.Cancel))

	return h
}

type workspaceHandlerFunc func(w http.ResponseWriter, r *http.Request, ws *Workspace)

// withWorkspace resolves the {id} path value into a workspace
func (h *WorkspaceHandler) withWorkspace(next workspaceHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := h.workspaces.Get(r.PathValue("id"))

		if err != nil {
			handleError(w, err, http.StatusNotFound)
			return
		}

		next(w, r, ws)
	}
}

// Create starts a new workspace in the idle phase
func (h *WorkspaceHandler) Create(w http.ResponseWriter, _ *http.Request) {
	ws := h.workspaces.Create()

	h.logger.Info("Workspace created", "workspace", ws.ID)

	writeJSON(w, http.StatusCreated, createResponse{ID: ws.ID, State: ws.Flow.Store().GetState()})
}

func (h *WorkspaceHandler) GetState(w http.ResponseWriter, _ *http.Request, ws *Workspace) {
	writeJSON(w, http.StatusOK, ws.Flow.Store().GetState())
}

func (h *WorkspaceHandler) SetQuery(w http.ResponseWriter, r *http.Request, ws *Workspace) {
	var req queryRequest

	if err := decodeBody(r, &req, false); err != nil {
		handleError(w, err, http.StatusBadRequest)
		return
	}

	if req.Query == nil {
		handleError(w, errors.New("query is required"), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, ws.Flow.SetQuery(*req.Query))
}

// Search runs the channel lookup synchronously. A body query replaces the current one first.
func (h *WorkspaceHandler) Search(w http.ResponseWriter, r *http.Request, ws *Workspace) {
	var req queryRequest

	if err := decodeBody(r, &req, true); err != nil {
		handleError(w, err, http.StatusBadRequest)
		return
	}

	if req.Query != nil {
		ws.Flow.SetQuery(*req.Query)
	}

	writeJSON(w, http.StatusOK, ws.Flow.Search(r.Context()))
}

func (h *WorkspaceHandler) Toggle(w http.ResponseWriter, r *http.Request, ws *Workspace) {
	writeJSON(w, http.StatusOK, ws.Flow.Toggle(r.PathValue("videoID")))
}

// Generate blocks until the blog service answers
func (h *WorkspaceHandler) Generate(w http.ResponseWriter, r *http.Request, ws *Workspace) {
	writeJSON(w, http.StatusOK, ws.Flow.Generate(r.Context()))
}

func (h *WorkspaceHandler) EditDocument(w http.ResponseWriter, r *http.Request, ws *Workspace) {
	var req documentRequest

	if err := decodeBody(r, &req, false); err != nil {
		handleError(w, err, http.StatusBadRequest)
		return
	}

	if ws.Flow.Store().GetState().Document == nil {
		handleError(w, ErrNoDocument, http.StatusConflict)
		return
	}

	if req.Title != nil {
		ws.Flow.EditTitle(*req.Title)
	}

	if req.Content != nil {
		ws.Flow.EditContent(*req.Content)
	}

	writeJSON(w, http.StatusOK, ws.Flow.Store().GetState())
}

// RunCommand applies a toolbar command to the document. With a url, the link
// command fills the link form as if the url was typed and Enter pressed.
func (h *WorkspaceHandler) RunCommand(w http.ResponseWriter, r *http.Request, ws *Workspace) {
	cmd, err := editor.ParseCommand(r.PathValue("command"))

	if err != nil {
		handleError(w, err, http.StatusBadRequest)
		return
	}

	var req commandRequest

	if err := decodeBody(r, &req, true); err != nil {
		handleError(w, err, http.StatusBadRequest)
		return
	}

	var resp editorResponse

	err = ws.WithEditor(func(e *editor.Wrapper) error {
		if req.Selector != "" {
			if err := e.Select(req.Selector); err != nil {
				return err
			}
		}

		if cmd == editor.Link && req.URL != "" {
			e.OpenLinkForm()
			e.SetLinkURL(req.URL)

			if err := e.KeyDown("Enter"); err != nil {
				return err
			}
		} else if err := e.Run(cmd); err != nil {
			return err
		}

		resp = editorResponse{HTML: e.HTML(), Toolbar: e.Toolbar(), LinkForm: e.LinkForm()}

		return nil
	})

	switch {
	case errors.Is(err, ErrNoDocument):
		handleError(w, err, http.StatusConflict)
		return
	case errors.Is(err, editor.ErrNothingSelected), errors.Is(err, editor.ErrEmptyLinkURL):
		handleError(w, err, http.StatusBadRequest)
		return
	case err != nil:
		handleError(w, err, http.StatusInternalServerError)
		return
	}

	resp.State = ws.Flow.Store().GetState()

	writeJSON(w, http.StatusOK, resp)
}

func (h *WorkspaceHandler) ExportMarkdown(w http.ResponseWriter, _ *http.Request, ws *Workspace) {
	doc := ws.Flow.Store().GetState().Document

	if doc == nil {
		handleError(w, ErrNoDocument, http.StatusNotFound)
		return
	}

	md, err := editor.ExportMarkdown(doc)

	if err != nil {
		handleError(w, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	if _, err := io.WriteString(w, md); err != nil {
		handleBadErrorResponse(err, md)
	}
}

func (h *WorkspaceHandler) Publish(w http.ResponseWriter, _ *http.Request, ws *Workspace) {
	ws.Flow.Publish()
	w.WriteHeader(http.StatusNoContent)
}

func (h *WorkspaceHandler) Cancel(w http.ResponseWriter, _ *http.Request, ws *Workspace) {
	ws.Flow.Cancel()
	w.WriteHeader(http.StatusNoContent)
}

// decodeBody reads a JSON body into v. An empty body is accepted when optional is set.
func decodeBody(r *http.Request, v any, optional bool) error {
	err := json.NewDecoder(r.Body).Decode(v)

	if errors.Is(err, io.EOF) && optional {
		return nil
	}

	if err != nil {
		return fmt.Errorf("could not decode request body: %w", err)
	}

	return nil
}
