package workflow

import "github.com/nDmitry/ytblog/internal/entity"

// Action is a state transition request handled by Reduce.
type Action interface {
	isAction()
}

type SetQuery struct {
	Query string
}

type SearchStarted struct{}

type SearchSucceeded struct {
	// Nil when the details lookup failed.
	Channel *entity.Channel
	Videos  []entity.VideoSummary
}

type SearchFailed struct{}

type ToggleSelection struct {
	VideoID string
}

type GenerateStarted struct{}

type GenerateSucceeded struct {
	Document *entity.GeneratedDocument
}

type GenerateFailed struct{}

type EditTitle struct {
	Title string
}

type EditContent struct {
	HTML string
}

func (SetQuery) isAction()          {}
func (SearchStarted) isAction()     {}
func (SearchSucceeded) isAction()   {}
func (SearchFailed) isAction()      {}
func (ToggleSelection) isAction()   {}
func (GenerateStarted) isAction()   {}
func (GenerateSucceeded) isAction() {}
func (GenerateFailed) isAction()    {}
func (EditTitle) isAction()         {}
func (EditContent) isAction()       {}
