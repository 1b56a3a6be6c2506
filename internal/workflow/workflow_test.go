package workflow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nDmitry/ytblog/internal/entity"
	"github.com/nDmitry/ytblog/internal/resolver"
	"github.com/nDmitry/ytblog/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockResolver is a mock implementation of the ChannelResolver interface
type MockResolver struct {
	ResolveFunc func(ctx context.Context, query string) (*resolver.Resolution, error)
}

func (m *MockResolver) Resolve(ctx context.Context, query string) (*resolver.Resolution, error) {
	return m.ResolveFunc(ctx, query)
}

// MockGenerator is a mock implementation of the Generator interface
type MockGenerator struct {
	GenerateFunc func(ctx context.Context, youtubeURL string) (*entity.GeneratedDocument, error)
}

func (m *MockGenerator) Generate(ctx context.Context, youtubeURL string) (*entity.GeneratedDocument, error) {
	return m.GenerateFunc(ctx, youtubeURL)
}

func travelResolution() *resolver.Resolution {
	return &resolver.Resolution{
		Handle:    "traveldiaries",
		ChannelID: "UC1",
		Channel:   &entity.Channel{ID: "UC1", Title: "Travel Diaries"},
		Videos:    []entity.VideoSummary{{ID: "v1"}, {ID: "v2"}, {ID: "v3"}},
	}
}

func newWorkflow(r *MockResolver, g *MockGenerator) *workflow.Workflow {
	return workflow.New(workflow.NewStore(), r, g)
}

func TestWorkflow_Search(t *testing.T) {
	r := &MockResolver{
		ResolveFunc: func(_ context.Context, query string) (*resolver.Resolution, error) {
			assert.Equal(t, "https://www.youtube.com/@traveldiaries", query)
			return travelResolution(), nil
		},
	}

	w := newWorkflow(r, &MockGenerator{})

	var phases []workflow.Phase
	w.Store().Subscribe(func(s workflow.State) { phases = append(phases, s.Phase) })

	w.SetQuery("https://www.youtube.com/@traveldiaries")
	s := w.Search(context.Background())

	assert.Equal(t, workflow.PhaseBrowsing, s.Phase)
	assert.Equal(t, "Travel Diaries", s.Channel.Title)
	assert.Len(t, s.Videos, 3)
	assert.Equal(t, []workflow.Phase{workflow.PhaseIdle, workflow.PhaseSearching, workflow.PhaseBrowsing}, phases)
}

func TestWorkflow_SearchIgnoresBlankQuery(t *testing.T) {
	r := &MockResolver{
		ResolveFunc: func(_ context.Context, _ string) (*resolver.Resolution, error) {
			t.Fatal("resolver should not be called for a blank query")
			return nil, nil
		},
	}

	w := newWorkflow(r, &MockGenerator{})
	w.SetQuery("   ")

	s := w.Search(context.Background())
	assert.Equal(t, workflow.PhaseIdle, s.Phase)
}

func TestWorkflow_SearchWithoutChannelLeavesStateUnset(t *testing.T) {
	r := &MockResolver{
		ResolveFunc: func(_ context.Context, _ string) (*resolver.Resolution, error) {
			return nil, resolver.ErrChannelNotFound
		},
	}

	w := newWorkflow(r, &MockGenerator{})
	w.SetQuery("nobody")

	s := w.Search(context.Background())

	assert.Equal(t, workflow.PhaseIdle, s.Phase)
	assert.Nil(t, s.Channel)
	assert.Empty(t, s.Videos)
	assert.Empty(t, s.Selection)
	assert.Nil(t, s.Document)
}

func TestWorkflow_NewSearchClearsSelectionAndDocument(t *testing.T) {
	r := &MockResolver{
		ResolveFunc: func(_ context.Context, _ string) (*resolver.Resolution, error) {
			return travelResolution(), nil
		},
	}
	g := &MockGenerator{
		GenerateFunc: func(_ context.Context, _ string) (*entity.GeneratedDocument, error) {
			return &entity.GeneratedDocument{Title: "T", Content: "<p>C</p>"}, nil
		},
	}

	w := newWorkflow(r, g)
	w.SetQuery("traveldiaries")
	w.Search(context.Background())
	w.Toggle("v2")
	require.NotNil(t, w.Generate(context.Background()).Document)

	s := w.Search(context.Background())

	assert.Equal(t, workflow.PhaseBrowsing, s.Phase)
	assert.Empty(t, s.Selection)
	assert.Nil(t, s.Document)
}

func TestWorkflow_GenerateUsesFirstSelectedVideoOnly(t *testing.T) {
	r := &MockResolver{
		ResolveFunc: func(_ context.Context, _ string) (*resolver.Resolution, error) {
			return travelResolution(), nil
		},
	}

	var urls []string
	g := &MockGenerator{
		GenerateFunc: func(_ context.Context, youtubeURL string) (*entity.GeneratedDocument, error) {
			urls = append(urls, youtubeURL)
			return &entity.GeneratedDocument{Title: "T", Content: "<p>C</p>", Highlights: []string{}, Tips: []string{}}, nil
		},
	}

	w := newWorkflow(r, g)
	w.SetQuery("traveldiaries")
	w.Search(context.Background())
	w.Toggle("v1")
	w.Toggle("v2")

	s := w.Generate(context.Background())

	assert.Equal(t, []string{"https://www.youtube.com/watch?v=v1"}, urls)
	assert.Equal(t, workflow.PhaseEditing, s.Phase)
	require.NotNil(t, s.Document)
	assert.Equal(t, "T", s.Document.Title)
	assert.Equal(t, "<p>C</p>", s.Document.Content)
}

func TestWorkflow_GenerateWithoutSelectionDoesNothing(t *testing.T) {
	g := &MockGenerator{
		GenerateFunc: func(_ context.Context, _ string) (*entity.GeneratedDocument, error) {
			t.Fatal("generator should not be called without a selection")
			return nil, nil
		},
	}

	w := newWorkflow(&MockResolver{}, g)

	s := w.Generate(context.Background())
	assert.Equal(t, workflow.PhaseIdle, s.Phase)
	assert.Nil(t, s.Document)
}

func TestWorkflow_GenerateFailureStaysBrowsing(t *testing.T) {
	r := &MockResolver{
		ResolveFunc: func(_ context.Context, _ string) (*resolver.Resolution, error) {
			return travelResolution(), nil
		},
	}
	g := &MockGenerator{
		GenerateFunc: func(_ context.Context, _ string) (*entity.GeneratedDocument, error) {
			return nil, errors.New("service unavailable")
		},
	}

	w := newWorkflow(r, g)
	w.SetQuery("traveldiaries")
	w.Search(context.Background())
	w.Toggle("v3")

	s := w.Generate(context.Background())

	assert.Equal(t, workflow.PhaseBrowsing, s.Phase)
	assert.Nil(t, s.Document)
	assert.Equal(t, []string{"v3"}, s.Selection)
}

func TestWorkflow_GenerateWithoutDocumentStaysBrowsing(t *testing.T) {
	r := &MockResolver{
		ResolveFunc: func(_ context.Context, _ string) (*resolver.Resolution, error) {
			return travelResolution(), nil
		},
	}
	g := &MockGenerator{
		GenerateFunc: func(_ context.Context, _ string) (*entity.GeneratedDocument, error) {
			return nil, nil
		},
	}

	w := newWorkflow(r, g)
	w.SetQuery("traveldiaries")
	w.Search(context.Background())
	w.Toggle("v1")

	s := w.Generate(context.Background())

	assert.Equal(t, workflow.PhaseBrowsing, s.Phase)
	assert.Nil(t, s.Document)
}

func TestWorkflow_Edits(t *testing.T) {
	r := &MockResolver{
		ResolveFunc: func(_ context.Context, _ string) (*resolver.Resolution, error) {
			return travelResolution(), nil
		},
	}
	g := &MockGenerator{
		GenerateFunc: func(_ context.Context, _ string) (*entity.GeneratedDocument, error) {
			return &entity.GeneratedDocument{Title: "T", Content: "<p>C</p>"}, nil
		},
	}

	w := newWorkflow(r, g)
	w.SetQuery("traveldiaries")
	w.Search(context.Background())
	w.Toggle("v1")
	w.Generate(context.Background())

	s := w.EditContent("<p>Edited</p>")
	assert.Equal(t, "<p>Edited</p>", s.Document.Content)
	assert.Equal(t, "T", s.Document.Title)

	s = w.EditTitle("Nusa Penida")
	assert.Equal(t, "Nusa Penida", s.Document.Title)
	assert.Equal(t, "<p>Edited</p>", s.Document.Content)

	w.Publish()
	w.Cancel()
	assert.Equal(t, s, w.Store().GetState())
}
