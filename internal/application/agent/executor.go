package agent

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	domainAgent "github.com/orderdesk/orderdesk/internal/domain/agent"
	"github.com/orderdesk/orderdesk/internal/domain/identity"
	"github.com/orderdesk/orderdesk/internal/infrastructure/workflowapi"
)

// Executor runs a plan's actions strictly in order, isolating every failure
// to one log entry. It never aborts the overall plan because one action
// failed, and every planned action yields at least one log entry.
type Executor struct {
	catalog *Catalog
	wf      workflowapi.Client
	logger  zerolog.Logger
}

func NewExecutor(catalog *Catalog, wf workflowapi.Client, logger zerolog.Logger) *Executor {
	return &Executor{
		catalog: catalog,
		wf:      wf,
		logger:  logger.With().Str("service", "executor").Logger(),
	}
}

// Execute runs the planned actions sequentially against the execution
// context and returns the ordered, append-only result log. Later actions may
// depend on earlier mutations, so there is no parallelism.
func (e *Executor) Execute(ctx context.Context, actions []domainAgent.PlannedAction, ec *ExecutionContext) []domainAgent.Result {
	results := make([]domainAgent.Result, 0, len(actions))
	for _, pa := range actions {
		def, ok := e.catalog.Lookup(pa.Name)
		if !ok {
			results = append(results, errorResult(pa.Name, fmt.Sprintf("action %q is not supported", pa.Name), ""))
			continue
		}

		args, err := def.Validate(pa.Arguments)
		if err != nil {
			results = append(results, errorResult(pa.Name, "invalid arguments", err.Error()))
			continue
		}

		// Roles are re-verified at execution time for every action, not just
		// at planner-time filtering.
		if !def.Allowed(ec.Roles) {
			results = append(results, errorResult(pa.Name, "caller is not authorized for this action", ""))
			continue
		}

		if def.Name == ActionCompleteStage {
			injected, terminal := e.checklistGate(ctx, ec, args.(completeStageArgs))
			if injected != nil {
				results = append(results, *injected)
			}
			if terminal != nil {
				results = append(results, *terminal)
				continue
			}
		}

		res, err := def.Handler(ctx, ec, args)
		if err != nil {
			e.logger.Warn().Err(err).Str("action", def.Name).Msg("action handler failed")
			results = append(results, errorResult(pa.Name, "action failed", err.Error()))
			continue
		}
		results = append(results, *res)
	}
	return results
}

// checklistGate enforces the precondition that a stage may only complete
// once its required checklist tasks are done, auto-satisfying the checklist
// for operators. It returns an optional injected log entry (the implicit
// checklist update) and an optional terminal entry for the completion
// itself; a non-nil terminal means the completion handler must not run.
// Failures here are reported as log entries, never propagated.
func (e *Executor) checklistGate(ctx context.Context, ec *ExecutionContext, a completeStageArgs) (injected, terminal *domainAgent.Result) {
	ord, err := e.wf.GetOrder(ctx, ec.Credential, a.OrderID)
	if err != nil {
		inj := errorResult(ActionUpdateChecklist, "could not verify the stage checklist", err.Error())
		term := errorResult(ActionCompleteStage, "stage not completed: checklist state is unknown", "")
		return &inj, &term
	}
	ss := ord.StageStatus(a.Stage)
	if ss == nil {
		inj := errorResult(ActionUpdateChecklist, fmt.Sprintf("order %d has no stage %s", a.OrderID, a.Stage), "")
		term := errorResult(ActionCompleteStage, "stage not completed: checklist state is unknown", "")
		return &inj, &term
	}

	pending := ss.PendingRequiredTasks()
	if len(pending) == 0 {
		return nil, nil
	}

	if !ec.HasRole(identity.RoleOperator) {
		term := errorResult(ActionCompleteStage, fmt.Sprintf(
			"stage not completed: %d required checklist task(s) are incomplete and the caller lacks the %s role needed to auto-complete them",
			len(pending), identity.RoleOperator), "")
		return nil, &term
	}

	ids := make([]int64, len(pending))
	for i, t := range pending {
		ids[i] = t.ID
	}
	e.logger.Info().
		Int64("order_id", a.OrderID).
		Str("stage", string(a.Stage)).
		Ints64("task_ids", ids).
		Msg("auto-completing required checklist tasks before stage completion")

	after, err := e.wf.UpdateChecklist(ctx, ec.Credential, a.OrderID, a.Stage, ids, true)
	if err != nil {
		inj := errorResult(ActionUpdateChecklist, "auto-completing required checklist tasks failed", err.Error())
		term := errorResult(ActionCompleteStage, "stage not completed: required checklist tasks remain incomplete", "")
		return &inj, &term
	}
	return success(ActionUpdateChecklist, fmt.Sprintf(
		"auto-completed %d required checklist task(s) on stage %s of order %d",
		len(ids), a.Stage, a.OrderID), after), nil
}

func errorResult(name, summary, detail string) domainAgent.Result {
	return domainAgent.Result{
		Name:    name,
		Status:  domainAgent.StatusError,
		Summary: summary,
		Error:   detail,
	}
}
