package agent

import (
	"context"
	"fmt"

	domainAgent "github.com/orderdesk/orderdesk/internal/domain/agent"
	"github.com/orderdesk/orderdesk/internal/domain/identity"
	"github.com/orderdesk/orderdesk/internal/domain/order"
	"github.com/orderdesk/orderdesk/internal/infrastructure/workflowapi"
)

// Catalogued action names. The catalogue is closed: any other name is
// rejected before interpretation.
const (
	ActionListOrders      = "list_orders"
	ActionGetOrder        = "get_order"
	ActionListExceptions  = "list_exceptions"
	ActionCreateOrder     = "create_order"
	ActionClaimStage      = "claim_stage"
	ActionUpdateChecklist = "update_checklist"
	ActionCompleteStage   = "complete_stage"
	ActionFlagException   = "flag_exception"
	ActionUpdatePriority  = "update_priority"
	ActionApproveSkip     = "approve_skip"
)

// Handler executes one validated action. args is the value returned by the
// definition's Validate.
type Handler func(ctx context.Context, ec *ExecutionContext, args any) (*domainAgent.Result, error)

// Definition is one catalogued action: its contract, role requirements,
// argument schema, and handler.
type Definition struct {
	Name        string
	Description string
	Params      string
	Roles       []identity.Role
	Validate    func(args map[string]any) (any, error)
	Handler     Handler
}

// Allowed reports whether any of the caller's roles satisfies the definition.
func (d *Definition) Allowed(roles []identity.Role) bool {
	for _, r := range roles {
		if identity.HasRole(d.Roles, r) {
			return true
		}
	}
	return false
}

// Catalog is the immutable process-wide action table, built once at startup.
type Catalog struct {
	defs   []*Definition
	byName map[string]*Definition
}

func (c *Catalog) Lookup(name string) (*Definition, bool) {
	def, ok := c.byName[name]
	return def, ok
}

func (c *Catalog) List() []*Definition {
	out := make([]*Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

// ListFor returns the definitions whose allowed roles intersect the given
// role set.
func (c *Catalog) ListFor(roles []identity.Role) []*Definition {
	var out []*Definition
	for _, def := range c.defs {
		if def.Allowed(roles) {
			out = append(out, def)
		}
	}
	return out
}

var (
	readRoles      = []identity.Role{identity.RoleViewer, identity.RoleOperator, identity.RoleSupervisor}
	mutateRoles    = []identity.Role{identity.RoleOperator, identity.RoleSupervisor}
	supervisorOnly = []identity.Role{identity.RoleSupervisor}
)

// NewCatalog builds the action catalogue over the workflow service client.
func NewCatalog(wf workflowapi.Client) *Catalog {
	defs := []*Definition{
		{
			Name:        ActionListOrders,
			Description: "List all visible orders with their priorities and stage states.",
			Params:      "none",
			Roles:       readRoles,
			Validate:    validateEmptyArgs,
			Handler: func(ctx context.Context, ec *ExecutionContext, _ any) (*domainAgent.Result, error) {
				orders, err := wf.ListOrders(ctx, ec.Credential)
				if err != nil {
					return nil, err
				}
				return success(ActionListOrders, fmt.Sprintf("%d order(s) visible", len(orders)), orders), nil
			},
		},
		{
			Name:        ActionGetOrder,
			Description: "Fetch one order with its stage statuses and checklists.",
			Params:      "orderId (number)",
			Roles:       readRoles,
			Validate:    validateGetOrderArgs,
			Handler: func(ctx context.Context, ec *ExecutionContext, args any) (*domainAgent.Result, error) {
				a := args.(getOrderArgs)
				ord, err := wf.GetOrder(ctx, ec.Credential, a.OrderID)
				if err != nil {
					return nil, err
				}
				summary := fmt.Sprintf("order %s is %s, current stage %s", ord.Reference, ord.State, ord.CurrentStage)
				return success(ActionGetOrder, summary, ord), nil
			},
		},
		{
			Name:        ActionListExceptions,
			Description: "List orders that currently have a stage flagged with an exception.",
			Params:      "none",
			Roles:       readRoles,
			Validate:    validateEmptyArgs,
			Handler: func(ctx context.Context, ec *ExecutionContext, _ any) (*domainAgent.Result, error) {
				orders, err := wf.ListOrders(ctx, ec.Credential)
				if err != nil {
					return nil, err
				}
				var flagged []*order.Order
				for _, ord := range orders {
					if ord.HasException() {
						flagged = append(flagged, ord)
					}
				}
				return success(ActionListExceptions, fmt.Sprintf("%d order(s) with exceptions", len(flagged)), flagged), nil
			},
		},
		{
			Name:        ActionCreateOrder,
			Description: "Create a new order.",
			Params:      "reference (string), priority (number 1-5, optional, default 3)",
			Roles:       mutateRoles,
			Validate:    validateCreateOrderArgs,
			Handler: func(ctx context.Context, ec *ExecutionContext, args any) (*domainAgent.Result, error) {
				a := args.(createOrderArgs)
				ord, err := wf.CreateOrder(ctx, ec.Credential, a.Reference, a.Priority)
				if err != nil {
					return nil, err
				}
				summary := fmt.Sprintf("created order %s with priority %d", ord.Reference, ord.Priority)
				return success(ActionCreateOrder, summary, ord), nil
			},
		},
		{
			Name:        ActionClaimStage,
			Description: "Claim a stage of an order, optionally on behalf of a named assignee.",
			Params:      "orderId (number), stage (PREPARATION|ASSEMBLY|DELIVERY), assignee (string, optional, defaults to the caller)",
			Roles:       mutateRoles,
			Validate:    validateClaimStageArgs,
			Handler: func(ctx context.Context, ec *ExecutionContext, args any) (*domainAgent.Result, error) {
				a := args.(claimStageArgs)
				assignee := a.Assignee
				if assignee == "" {
					assignee = ec.Username
				}
				ss, err := wf.ClaimStage(ctx, ec.Credential, a.OrderID, a.Stage, assignee)
				if err != nil {
					return nil, err
				}
				summary := fmt.Sprintf("claimed stage %s of order %d for %s; stage is now %s", a.Stage, a.OrderID, assignee, ss.State)
				return success(ActionClaimStage, summary, ss), nil
			},
		},
		{
			Name:        ActionUpdateChecklist,
			Description: "Mark checklist tasks of a stage complete or incomplete.",
			Params:      "orderId (number), stage, taskIds (list of numbers), completed (boolean)",
			Roles:       mutateRoles,
			Validate:    validateUpdateChecklistArgs,
			Handler: func(ctx context.Context, ec *ExecutionContext, args any) (*domainAgent.Result, error) {
				a := args.(updateChecklistArgs)
				ss, err := wf.UpdateChecklist(ctx, ec.Credential, a.OrderID, a.Stage, a.TaskIDs, a.Completed)
				if err != nil {
					return nil, err
				}
				verb := "incomplete"
				if a.Completed {
					verb = "complete"
				}
				summary := fmt.Sprintf("marked %d checklist task(s) %s on stage %s of order %d", len(a.TaskIDs), verb, a.Stage, a.OrderID)
				return success(ActionUpdateChecklist, summary, ss), nil
			},
		},
		{
			Name:        ActionCompleteStage,
			Description: "Complete a stage of an order. All required checklist tasks must be done.",
			Params:      "orderId (number), stage, serviceMinutes (number, optional), notes (string, optional)",
			Roles:       mutateRoles,
			Validate:    validateCompleteStageArgs,
			Handler: func(ctx context.Context, ec *ExecutionContext, args any) (*domainAgent.Result, error) {
				a := args.(completeStageArgs)
				ss, err := wf.CompleteStage(ctx, ec.Credential, a.OrderID, a.Stage, a.ServiceMinutes, a.Notes)
				if err != nil {
					return nil, err
				}
				summary := fmt.Sprintf("completed stage %s of order %d; stage is now %s", a.Stage, a.OrderID, ss.State)
				return success(ActionCompleteStage, summary, ss), nil
			},
		},
		{
			Name:        ActionFlagException,
			Description: "Flag an exception on a stage with a reason.",
			Params:      "orderId (number), stage, reason (string, required)",
			Roles:       mutateRoles,
			Validate:    validateFlagExceptionArgs,
			Handler: func(ctx context.Context, ec *ExecutionContext, args any) (*domainAgent.Result, error) {
				a := args.(flagExceptionArgs)
				ss, err := wf.FlagException(ctx, ec.Credential, a.OrderID, a.Stage, a.Reason)
				if err != nil {
					return nil, err
				}
				summary := fmt.Sprintf("flagged exception on stage %s of order %d: %s", a.Stage, a.OrderID, a.Reason)
				return success(ActionFlagException, summary, ss), nil
			},
		},
		{
			Name:        ActionUpdatePriority,
			Description: "Change the priority of an order.",
			Params:      "orderId (number), priority (number 1-5)",
			Roles:       supervisorOnly,
			Validate:    validateUpdatePriorityArgs,
			Handler: func(ctx context.Context, ec *ExecutionContext, args any) (*domainAgent.Result, error) {
				a := args.(updatePriorityArgs)
				ord, err := wf.UpdatePriority(ctx, ec.Credential, a.OrderID, a.Priority)
				if err != nil {
					return nil, err
				}
				summary := fmt.Sprintf("set priority of order %s to %d", ord.Reference, ord.Priority)
				return success(ActionUpdatePriority, summary, ord), nil
			},
		},
		{
			Name:        ActionApproveSkip,
			Description: "Approve skipping a stage of an order.",
			Params:      "orderId (number), stage, reason (string, optional)",
			Roles:       supervisorOnly,
			Validate:    validateApproveSkipArgs,
			Handler: func(ctx context.Context, ec *ExecutionContext, args any) (*domainAgent.Result, error) {
				a := args.(approveSkipArgs)
				ss, err := wf.ApproveSkip(ctx, ec.Credential, a.OrderID, a.Stage, a.Reason)
				if err != nil {
					return nil, err
				}
				summary := fmt.Sprintf("approved skip of stage %s on order %d; stage is now %s", a.Stage, a.OrderID, ss.State)
				return success(ActionApproveSkip, summary, ss), nil
			},
		},
	}

	byName := make(map[string]*Definition, len(defs))
	for _, def := range defs {
		byName[def.Name] = def
	}
	return &Catalog{defs: defs, byName: byName}
}

func success(name, summary string, data any) *domainAgent.Result {
	return &domainAgent.Result{
		Name:    name,
		Status:  domainAgent.StatusSuccess,
		Summary: summary,
		Data:    data,
	}
}
