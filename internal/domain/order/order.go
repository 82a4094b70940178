package order

import (
	"errors"
	"strings"
	"time"
)

// Stage identifies one stage in the fixed production sequence.
type Stage string

const (
	StagePreparation Stage = "PREPARATION"
	StageAssembly    Stage = "ASSEMBLY"
	StageDelivery    Stage = "DELIVERY"
)

// StageSequence is the canonical display and processing order of stages.
var StageSequence = []Stage{StagePreparation, StageAssembly, StageDelivery}

var ErrUnknownStage = errors.New("unknown stage")

// ParseStage normalizes and validates a stage name.
func ParseStage(s string) (Stage, error) {
	stage := Stage(strings.ToUpper(strings.TrimSpace(s)))
	switch stage {
	case StagePreparation, StageAssembly, StageDelivery:
		return stage, nil
	default:
		return "", ErrUnknownStage
	}
}

// StageState represents the state of one stage of an order.
type StageState string

const (
	StagePending    StageState = "PENDING"
	StageClaimed    StageState = "CLAIMED"
	StageInProgress StageState = "IN_PROGRESS"
	StageCompleted  StageState = "COMPLETED"
	StageException  StageState = "EXCEPTION"
	StageSkipped    StageState = "SKIPPED"
)

// State represents the overall order state.
type State string

const (
	StateOpen      State = "OPEN"
	StateCompleted State = "COMPLETED"
	StateCancelled State = "CANCELLED"
)

// ChecklistTask is one item on a stage checklist.
type ChecklistTask struct {
	ID        int64  `json:"id"`
	Label     string `json:"label"`
	Required  bool   `json:"required"`
	Completed bool   `json:"completed"`
}

// StageStatus is the state of one stage of an order, including its checklist.
type StageStatus struct {
	Stage           Stage           `json:"stage"`
	State           StageState      `json:"state"`
	Assignee        *string         `json:"assignee,omitempty"`
	ExceptionReason *string         `json:"exceptionReason,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	ServiceMinutes  *int            `json:"serviceMinutes,omitempty"`
	Checklist       []ChecklistTask `json:"checklist,omitempty"`
}

// PendingRequiredTasks returns the checklist tasks that are required but not
// yet completed, in checklist order.
func (ss *StageStatus) PendingRequiredTasks() []ChecklistTask {
	var pending []ChecklistTask
	for _, t := range ss.Checklist {
		if t.Required && !t.Completed {
			pending = append(pending, t)
		}
	}
	return pending
}

// Order is a workflow order as reported by the workflow service. The
// workflow service owns this state; everything here is read-only input
// except through the documented mutation actions.
type Order struct {
	ID           int64         `json:"id"`
	Reference    string        `json:"reference"`
	Priority     int           `json:"priority"`
	State        State         `json:"state"`
	CurrentStage Stage         `json:"currentStage"`
	Stages       []StageStatus `json:"stages"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// StageStatus returns the status entry for the given stage, or nil.
func (o *Order) StageStatus(stage Stage) *StageStatus {
	for i := range o.Stages {
		if o.Stages[i].Stage == stage {
			return &o.Stages[i]
		}
	}
	return nil
}

// HasException reports whether any stage of the order is in EXCEPTION state.
func (o *Order) HasException() bool {
	for _, ss := range o.Stages {
		if ss.State == StageException {
			return true
		}
	}
	return false
}

// SortedStages returns the order's stage statuses arranged by the canonical
// stage sequence rather than insertion order. Stages outside the known
// sequence are appended at the end in their original order.
func (o *Order) SortedStages() []StageStatus {
	out := make([]StageStatus, 0, len(o.Stages))
	seen := make(map[Stage]bool, len(o.Stages))
	for _, stage := range StageSequence {
		for _, ss := range o.Stages {
			if ss.Stage == stage {
				out = append(out, ss)
				seen[stage] = true
			}
		}
	}
	for _, ss := range o.Stages {
		if !seen[ss.Stage] {
			out = append(out, ss)
		}
	}
	return out
}
