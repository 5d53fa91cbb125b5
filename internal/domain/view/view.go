package view

import (
	"errors"
	"time"

	"github.com/GriffinCanCode/venture-blueprint/internal/domain/blueprint"
	"github.com/GriffinCanCode/venture-blueprint/internal/domain/catalog"
	"github.com/GriffinCanCode/venture-blueprint/internal/domain/venture"
	"github.com/GriffinCanCode/venture-blueprint/internal/shared/id"
)

var (
	ErrNotFound      = errors.New("view not found")
	ErrFetchInFlight = errors.New("blueprint fetch already in flight")
)

// State is the lifecycle state of a view.
type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// Label returns the status line shown next to the blueprint.
func (s State) Label() string {
	switch s {
	case StateLoading:
		return "COMPUTING_BLUEPRINT..."
	case StateReady:
		return "BLUEPRINT_READY"
	case StateFailed:
		return "SYSTEM FAILURE"
	default:
		return string(s)
	}
}

// View is one opened blueprint: the idea, the fetch state and, once ready,
// the parsed content blocks.
type View struct {
	ID          id.ViewID         `json:"id"`
	Idea        catalog.Idea      `json:"idea"`
	State       State             `json:"state"`
	Label       string            `json:"label"`
	Blocks      []blueprint.Block `json:"blocks,omitempty"`
	Error       string            `json:"error,omitempty"`
	Model       string            `json:"model,omitempty"`
	Attempts    int               `json:"attempts"`
	OpenedAt    time.Time         `json:"opened_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	GeneratedAt *time.Time        `json:"generated_at,omitempty"`
}

// Dashboard recomputes the numeric panel of the view's idea.
func (v View) Dashboard() venture.Dashboard {
	return venture.Compute(v.Idea.ID)
}

// Outline returns the section headers of the content, empty until ready.
func (v View) Outline() []string {
	return blueprint.Outline(v.Blocks)
}

func (v View) clone() View {
	if v.Blocks != nil {
		blocks := make([]blueprint.Block, len(v.Blocks))
		copy(blocks, v.Blocks)
		v.Blocks = blocks
	}
	if v.GeneratedAt != nil {
		at := *v.GeneratedAt
		v.GeneratedAt = &at
	}
	return v
}

// Event is pushed to subscribers whenever a view changes state.
type Event struct {
	ViewID    id.ViewID `json:"view_id"`
	State     State     `json:"state"`
	Label     string    `json:"label"`
	Error     string    `json:"error,omitempty"`
	Blocks    int       `json:"blocks"`
	Timestamp time.Time `json:"timestamp"`
}

func eventOf(v View) Event {
	return Event{
		ViewID:    v.ID,
		State:     v.State,
		Label:     v.State.Label(),
		Error:     v.Error,
		Blocks:    len(v.Blocks),
		Timestamp: v.UpdatedAt,
	}
}

// Stats counts views per state.
type Stats struct {
	Total   int `json:"total"`
	Loading int `json:"loading"`
	Ready   int `json:"ready"`
	Failed  int `json:"failed"`
}
