package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrPlanParse indicates the model response contained no valid JSON object.
var ErrPlanParse = errors.New("plan response is not valid JSON")

// ErrPlanSchema indicates the parsed JSON violated the plan shape.
var ErrPlanSchema = errors.New("plan does not match the expected shape")

// PlannedAction is one model-proposed action. Arguments are untrusted until
// they pass the catalogue's argument schema.
type PlannedAction struct {
	Name      string         `json:"name"`
	Rationale string         `json:"rationale,omitempty"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// Plan is the model-proposed ordered action list for one objective. It is
// produced once per request and immutable afterwards; slice order is
// execution order.
type Plan struct {
	Intent    string          `json:"intent"`
	Reasoning string          `json:"reasoning,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	Actions   []PlannedAction `json:"actions"`
}

// ResultStatus is the outcome classification of one attempted action.
type ResultStatus string

const (
	StatusSuccess ResultStatus = "success"
	StatusError   ResultStatus = "error"
	StatusSkipped ResultStatus = "skipped"
)

// Result is one entry of the execution log: what was attempted and how it
// went. One result is appended per actually-attempted action; the checklist
// gate may inject extra entries.
type Result struct {
	Name    string       `json:"name"`
	Status  ResultStatus `json:"status"`
	Summary string       `json:"summary"`
	Data    any          `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// ParsePlan extracts a JSON object from a raw model response and validates it
// into a Plan. A fenced code block labeled json is preferred; otherwise the
// substring between the first '{' and the last '}' is used. Missing optional
// fields default (intent to "", actions to an empty sequence).
func ParsePlan(raw string) (*Plan, error) {
	payload, ok := extractJSON(raw)
	if !ok || !json.Valid([]byte(payload)) {
		return nil, ErrPlanParse
	}

	var doc struct {
		Intent    *string `json:"intent"`
		Reasoning *string `json:"reasoning"`
		Notes     *string `json:"notes"`
		Actions   []struct {
			Name      *string        `json:"name"`
			Rationale *string        `json:"rationale"`
			Arguments map[string]any `json:"arguments"`
		} `json:"actions"`
	}
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlanSchema, err)
	}

	plan := &Plan{}
	if doc.Intent != nil {
		plan.Intent = *doc.Intent
	}
	if doc.Reasoning != nil {
		plan.Reasoning = *doc.Reasoning
	}
	if doc.Notes != nil {
		plan.Notes = *doc.Notes
	}
	plan.Actions = make([]PlannedAction, 0, len(doc.Actions))
	for i, a := range doc.Actions {
		if a.Name == nil || strings.TrimSpace(*a.Name) == "" {
			return nil, fmt.Errorf("%w: actions[%d] has no name", ErrPlanSchema, i)
		}
		pa := PlannedAction{Name: strings.TrimSpace(*a.Name), Arguments: a.Arguments}
		if pa.Arguments == nil {
			pa.Arguments = map[string]any{}
		}
		if a.Rationale != nil {
			pa.Rationale = *a.Rationale
		}
		plan.Actions = append(plan.Actions, pa)
	}
	return plan, nil
}

// extractJSON returns the JSON object candidate from a raw model response.
func extractJSON(raw string) (string, bool) {
	if block, ok := fencedBlock(raw); ok {
		return block, true
	}
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

// fencedBlock returns the body of the first ``` fence whose content holds a
// JSON object. The language label (json or otherwise) is ignored.
func fencedBlock(raw string) (string, bool) {
	open := strings.Index(raw, "```")
	if open < 0 {
		return "", false
	}
	rest := raw[open+3:]
	if nl := strings.Index(rest, "\n"); nl >= 0 {
		// Drop the fence label line.
		rest = rest[nl+1:]
	}
	closeIdx := strings.Index(rest, "```")
	if closeIdx < 0 {
		return "", false
	}
	body := strings.TrimSpace(rest[:closeIdx])
	if !strings.HasPrefix(body, "{") {
		return "", false
	}
	return body, true
}
