package workflow

import (
	"slices"
)

// Reduce returns the state after applying action. It never mutates s.
// nolint: cyclop
func Reduce(s State, action Action) State {
	next := s.Clone()

	switch a := action.(type) {
	case SetQuery:
		next.Query = a.Query

	case SearchStarted:
		next.Phase = PhaseSearching
		next.Channel = nil
		next.Videos = nil
		next.Selection = nil
		next.Document = nil

	case SearchSucceeded:
		next.Phase = PhaseBrowsing
		next.Videos = slices.Clone(a.Videos)
		next.Channel = nil

		if a.Channel != nil {
			channel := *a.Channel
			next.Channel = &channel
		}

		// A response from an older search may land after newer toggles.
		next.Selection = slices.DeleteFunc(next.Selection, func(id string) bool {
			return !next.hasVideo(id)
		})

	case SearchFailed:
		next.Phase = PhaseIdle

	case ToggleSelection:
		if i := slices.Index(next.Selection, a.VideoID); i >= 0 {
			next.Selection = slices.Delete(next.Selection, i, i+1)
		} else if next.hasVideo(a.VideoID) {
			next.Selection = append(next.Selection, a.VideoID)
		}

	case GenerateStarted:
		if len(next.Selection) > 0 {
			next.Phase = PhaseGenerating
		}

	case GenerateSucceeded:
		if a.Document != nil {
			next.Document = a.Document.Clone()
			next.Phase = PhaseEditing
		}

	case GenerateFailed:
		next.Phase = PhaseBrowsing

		if next.Document != nil {
			next.Phase = PhaseEditing
		}

	case EditTitle:
		if next.Document != nil {
			next.Document.Title = a.Title
		}

	case EditContent:
		if next.Document != nil {
			next.Document.Content = a.HTML
		}
	}

	return next
}
