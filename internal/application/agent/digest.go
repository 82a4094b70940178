package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/orderdesk/orderdesk/internal/domain/order"
	"github.com/orderdesk/orderdesk/internal/infrastructure/workflowapi"
)

const defaultDigestLimit = 10

// ContextBuilder renders current orders into a bounded text digest used to
// ground the planner and the final narrative.
type ContextBuilder struct {
	wf     workflowapi.Client
	limit  int
	logger zerolog.Logger
}

func NewContextBuilder(wf workflowapi.Client, limit int, logger zerolog.Logger) *ContextBuilder {
	if limit <= 0 {
		limit = defaultDigestLimit
	}
	return &ContextBuilder{
		wf:     wf,
		limit:  limit,
		logger: logger.With().Str("service", "context_builder").Logger(),
	}
}

// Build fetches visible orders and renders the digest. It never fails the
// request: when the workflow service is unreachable the digest is empty and a
// warning string is returned for display.
func (b *ContextBuilder) Build(ctx context.Context, credential string) (digest, warning string) {
	orders, err := b.wf.ListOrders(ctx, credential)
	if err != nil {
		b.logger.Warn().Err(err).Msg("context fetch failed; proceeding without digest")
		return "", fmt.Sprintf("order context unavailable: %v", err)
	}
	if len(orders) == 0 {
		return "No orders are currently visible.", ""
	}

	sorted := make([]*order.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority > sorted[j].Priority
		}
		return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
	})
	if len(sorted) > b.limit {
		sorted = sorted[:b.limit]
	}

	var sb strings.Builder
	for _, ord := range sorted {
		fmt.Fprintf(&sb, "%s (id %d) priority=%d state=%s current=%s\n",
			ord.Reference, ord.ID, ord.Priority, ord.State, ord.CurrentStage)
		for _, ss := range ord.SortedStages() {
			sb.WriteString("  " + stageLine(ss) + "\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n"), ""
}

// stageLine renders one compact stage line, omitting absent fields.
func stageLine(ss order.StageStatus) string {
	parts := []string{fmt.Sprintf("%s: %s", ss.Stage, ss.State)}
	if ss.Assignee != nil && *ss.Assignee != "" {
		parts = append(parts, "assignee="+*ss.Assignee)
	}
	if ss.ExceptionReason != nil && *ss.ExceptionReason != "" {
		parts = append(parts, "exception="+*ss.ExceptionReason)
	}
	if ss.Notes != nil && *ss.Notes != "" {
		parts = append(parts, "notes="+*ss.Notes)
	}
	if n := len(ss.Checklist); n > 0 {
		done := 0
		for _, t := range ss.Checklist {
			if t.Completed {
				done++
			}
		}
		parts = append(parts, fmt.Sprintf("checklist=%d/%d", done, n))
	}
	return strings.Join(parts, " ")
}
