package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	domainAgent "github.com/orderdesk/orderdesk/internal/domain/agent"
	"github.com/orderdesk/orderdesk/internal/domain/identity"
	"github.com/orderdesk/orderdesk/internal/infrastructure/llm"
)

const planSystemPrompt = `You are the planning engine of an order workflow assistant.
Given the caller's objective and the current order context, decide which of
the authorized actions to run, in order. You may only use actions from the
list below; never invent an action name.

Authorized actions:
%s

Caller: %s (roles: %s)

Respond with ONLY a JSON object, no prose and no markdown:
{
  "intent": "<one sentence restating the objective>",
  "reasoning": "<brief reasoning, optional>",
  "notes": "<anything the caller should know, optional>",
  "actions": [
    {"name": "<action name>", "rationale": "<why this action>", "arguments": {<arguments per the action's parameters>}}
  ]
}

Return an empty actions list when no authorized action serves the objective.`

// Planner generates a validated Plan from an objective via one model call.
type Planner struct {
	llm    llm.Client
	logger zerolog.Logger
}

func NewPlanner(client llm.Client, logger zerolog.Logger) *Planner {
	return &Planner{
		llm:    client,
		logger: logger.With().Str("service", "planner").Logger(),
	}
}

// GeneratePlan renders the planning prompt over the role-filtered action
// list, invokes the model, and parses its output. The caller never sees
// actions outside the provided list, so unauthorized actions cannot be
// suggested. Any failure aborts the whole request.
func (p *Planner) GeneratePlan(ctx context.Context, objective, digest string, allowed []*Definition, principal identity.Principal) (*domainAgent.Plan, error) {
	system := fmt.Sprintf(planSystemPrompt, renderActionList(allowed), principal.Username, renderRoles(principal.Roles))

	var user strings.Builder
	if digest != "" {
		user.WriteString("Current orders:\n")
		user.WriteString(digest)
		user.WriteString("\n\n")
	}
	user.WriteString("Objective: ")
	user.WriteString(objective)

	completion, err := p.llm.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: user.String()},
	})
	if err != nil {
		return nil, fmt.Errorf("plan generation: %w", err)
	}

	plan, err := domainAgent.ParsePlan(completion.Text)
	if err != nil {
		p.logger.Warn().Err(err).Msg("model returned an unusable plan")
		return nil, err
	}
	p.logger.Debug().Int("actions", len(plan.Actions)).Msg("plan generated")
	return plan, nil
}

func renderActionList(defs []*Definition) string {
	var sb strings.Builder
	for _, def := range defs {
		fmt.Fprintf(&sb, "- %s: %s Parameters: %s\n", def.Name, def.Description, def.Params)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderRoles(roles []identity.Role) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}
