package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	domainAgent "github.com/orderdesk/orderdesk/internal/domain/agent"
	"github.com/orderdesk/orderdesk/internal/infrastructure/llm"
)

const answerSystemPrompt = `You are an order workflow assistant writing the final
answer for the caller. You are given the caller's objective and the execution
log of the actions that were attempted on their behalf.

Report only what the execution log shows. Never claim an action succeeded
unless its log entry says success, and never invent orders, stages, or
numbers that do not appear in the log or the order context. When an action
failed, say so plainly and include the reason from the log. Answer in a few
short sentences of plain prose, no markdown.`

// Synthesizer turns an execution log into the caller-facing narrative via a
// second model call.
type Synthesizer struct {
	llm    llm.Client
	logger zerolog.Logger
}

func NewSynthesizer(client llm.Client, logger zerolog.Logger) *Synthesizer {
	return &Synthesizer{
		llm:    client,
		logger: logger.With().Str("service", "synthesizer").Logger(),
	}
}

// Synthesize produces the final answer. The model sees the plan and the
// verbatim execution log, so partial failures surface in the narrative
// rather than being papered over. A nil plan means planning was skipped.
// Returns the answer text and the model that produced it.
func (s *Synthesizer) Synthesize(ctx context.Context, objective, digest string, plan *domainAgent.Plan, results []domainAgent.Result) (answer, model string, err error) {
	var user strings.Builder
	user.WriteString("Objective: ")
	user.WriteString(objective)
	user.WriteString("\n\n")
	if digest != "" {
		user.WriteString("Order context at planning time:\n")
		user.WriteString(digest)
		user.WriteString("\n\n")
	}
	user.WriteString(renderPlan(plan))
	user.WriteString("\n\n")
	if len(results) == 0 {
		user.WriteString("No actions were executed.")
	} else {
		user.WriteString("Execution log:\n")
		user.WriteString(renderLog(results))
	}

	completion, err := s.llm.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: answerSystemPrompt},
		{Role: llm.RoleUser, Content: user.String()},
	})
	if err != nil {
		return "", "", fmt.Errorf("answer synthesis: %w", err)
	}
	text := strings.TrimSpace(completion.Text)
	if text == "" {
		return "", "", fmt.Errorf("answer synthesis: model returned an empty answer")
	}
	s.logger.Debug().Str("model", completion.Model).Msg("answer synthesized")
	return text, completion.Model, nil
}

// renderPlan renders the plan's intent and notes for the synthesis prompt.
// A nil plan is stated explicitly so the model does not mistake a skipped
// planning phase for an empty plan.
func renderPlan(plan *domainAgent.Plan) string {
	if plan == nil {
		return "No plan was generated."
	}
	var sb strings.Builder
	sb.WriteString("Plan intent: ")
	if plan.Intent != "" {
		sb.WriteString(plan.Intent)
	} else {
		sb.WriteString("(none stated)")
	}
	if plan.Reasoning != "" {
		sb.WriteString("\nPlan reasoning: ")
		sb.WriteString(plan.Reasoning)
	}
	if plan.Notes != "" {
		sb.WriteString("\nPlan notes: ")
		sb.WriteString(plan.Notes)
	}
	return sb.String()
}

// renderLog renders one line per result, status in caps so the model cannot
// miss a failure.
func renderLog(results []domainAgent.Result) string {
	var sb strings.Builder
	for _, res := range results {
		fmt.Fprintf(&sb, "- %s [%s] %s", res.Name, strings.ToUpper(string(res.Status)), res.Summary)
		if res.Error != "" {
			fmt.Fprintf(&sb, " (%s)", res.Error)
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
