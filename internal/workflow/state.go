package workflow

import (
	"slices"

	"github.com/nDmitry/ytblog/internal/entity"
)

// Phase is the coarse stage of the workflow shown by the UI.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSearching  Phase = "searching"
	PhaseBrowsing   Phase = "browsing"
	PhaseGenerating Phase = "generating"
	PhaseEditing    Phase = "editing"
)

// State is everything the UI renders.
type State struct {
	Phase   Phase                 `json:"phase"`
	Query   string                `json:"query"`
	Channel *entity.Channel       `json:"channel"`
	Videos  []entity.VideoSummary `json:"videos"`
	// Selected video ids in the order they were selected.
	Selection []string                  `json:"selection"`
	Document  *entity.GeneratedDocument `json:"document"`
}

// Clone returns a deep copy so callers cannot mutate the store's state.
func (s State) Clone() State {
	clone := s
	clone.Videos = slices.Clone(s.Videos)
	clone.Selection = slices.Clone(s.Selection)
	clone.Document = s.Document.Clone()

	if s.Channel != nil {
		channel := *s.Channel
		clone.Channel = &channel
	}

	return clone
}

// IsSelected reports whether videoID is in the selection.
func (s State) IsSelected(videoID string) bool {
	return slices.Contains(s.Selection, videoID)
}

func (s State) hasVideo(videoID string) bool {
	return slices.ContainsFunc(s.Videos, func(v entity.VideoSummary) bool {
		return v.ID == videoID
	})
}
