package agent

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/orderdesk/orderdesk/internal/domain/order"
)

// Argument bags come from the model and are validated with the same rigor as
// wire input: every field type-checked, unknown fields rejected, numbers
// accepted as JSON numbers or numeric strings.

type emptyArgs struct{}

type getOrderArgs struct {
	OrderID int64
}

type createOrderArgs struct {
	Reference string
	Priority  int
}

type claimStageArgs struct {
	OrderID  int64
	Stage    order.Stage
	Assignee string
}

type updateChecklistArgs struct {
	OrderID   int64
	Stage     order.Stage
	TaskIDs   []int64
	Completed bool
}

type completeStageArgs struct {
	OrderID        int64
	Stage          order.Stage
	ServiceMinutes *int
	Notes          *string
}

type flagExceptionArgs struct {
	OrderID int64
	Stage   order.Stage
	Reason  string
}

type updatePriorityArgs struct {
	OrderID  int64
	Priority int
}

type approveSkipArgs struct {
	OrderID int64
	Stage   order.Stage
	Reason  *string
}

const (
	minPriority     = 1
	maxPriority     = 5
	defaultPriority = 3
)

func validateEmptyArgs(args map[string]any) (any, error) {
	if err := rejectUnknown(args); err != nil {
		return nil, err
	}
	return emptyArgs{}, nil
}

func validateGetOrderArgs(args map[string]any) (any, error) {
	if err := rejectUnknown(args, "orderId"); err != nil {
		return nil, err
	}
	id, err := requireInt(args, "orderId")
	if err != nil {
		return nil, err
	}
	return getOrderArgs{OrderID: id}, nil
}

func validateCreateOrderArgs(args map[string]any) (any, error) {
	if err := rejectUnknown(args, "reference", "priority"); err != nil {
		return nil, err
	}
	ref, err := requireString(args, "reference")
	if err != nil {
		return nil, err
	}
	priority := defaultPriority
	if _, ok := args["priority"]; ok {
		p, err := requireInt(args, "priority")
		if err != nil {
			return nil, err
		}
		priority = int(p)
	}
	if priority < minPriority || priority > maxPriority {
		return nil, fmt.Errorf("priority must be between %d and %d", minPriority, maxPriority)
	}
	return createOrderArgs{Reference: ref, Priority: priority}, nil
}

func validateClaimStageArgs(args map[string]any) (any, error) {
	if err := rejectUnknown(args, "orderId", "stage", "assignee"); err != nil {
		return nil, err
	}
	id, err := requireInt(args, "orderId")
	if err != nil {
		return nil, err
	}
	stage, err := requireStage(args)
	if err != nil {
		return nil, err
	}
	assignee, err := optionalString(args, "assignee")
	if err != nil {
		return nil, err
	}
	out := claimStageArgs{OrderID: id, Stage: stage}
	if assignee != nil {
		out.Assignee = *assignee
	}
	return out, nil
}

func validateUpdateChecklistArgs(args map[string]any) (any, error) {
	if err := rejectUnknown(args, "orderId", "stage", "taskIds", "completed"); err != nil {
		return nil, err
	}
	id, err := requireInt(args, "orderId")
	if err != nil {
		return nil, err
	}
	stage, err := requireStage(args)
	if err != nil {
		return nil, err
	}
	taskIDs, err := requireIntSlice(args, "taskIds")
	if err != nil {
		return nil, err
	}
	completed, err := requireBool(args, "completed")
	if err != nil {
		return nil, err
	}
	return updateChecklistArgs{OrderID: id, Stage: stage, TaskIDs: taskIDs, Completed: completed}, nil
}

func validateCompleteStageArgs(args map[string]any) (any, error) {
	if err := rejectUnknown(args, "orderId", "stage", "serviceMinutes", "notes"); err != nil {
		return nil, err
	}
	id, err := requireInt(args, "orderId")
	if err != nil {
		return nil, err
	}
	stage, err := requireStage(args)
	if err != nil {
		return nil, err
	}
	out := completeStageArgs{OrderID: id, Stage: stage}
	if _, ok := args["serviceMinutes"]; ok {
		minutes, err := requireInt(args, "serviceMinutes")
		if err != nil {
			return nil, err
		}
		if minutes < 0 {
			return nil, fmt.Errorf("serviceMinutes must not be negative")
		}
		m := int(minutes)
		out.ServiceMinutes = &m
	}
	notes, err := optionalString(args, "notes")
	if err != nil {
		return nil, err
	}
	out.Notes = notes
	return out, nil
}

func validateFlagExceptionArgs(args map[string]any) (any, error) {
	if err := rejectUnknown(args, "orderId", "stage", "reason"); err != nil {
		return nil, err
	}
	id, err := requireInt(args, "orderId")
	if err != nil {
		return nil, err
	}
	stage, err := requireStage(args)
	if err != nil {
		return nil, err
	}
	reason, err := requireString(args, "reason")
	if err != nil {
		return nil, err
	}
	return flagExceptionArgs{OrderID: id, Stage: stage, Reason: reason}, nil
}

func validateUpdatePriorityArgs(args map[string]any) (any, error) {
	if err := rejectUnknown(args, "orderId", "priority"); err != nil {
		return nil, err
	}
	id, err := requireInt(args, "orderId")
	if err != nil {
		return nil, err
	}
	priority, err := requireInt(args, "priority")
	if err != nil {
		return nil, err
	}
	if priority < minPriority || priority > maxPriority {
		return nil, fmt.Errorf("priority must be between %d and %d", minPriority, maxPriority)
	}
	return updatePriorityArgs{OrderID: id, Priority: int(priority)}, nil
}

func validateApproveSkipArgs(args map[string]any) (any, error) {
	if err := rejectUnknown(args, "orderId", "stage", "reason"); err != nil {
		return nil, err
	}
	id, err := requireInt(args, "orderId")
	if err != nil {
		return nil, err
	}
	stage, err := requireStage(args)
	if err != nil {
		return nil, err
	}
	reason, err := optionalString(args, "reason")
	if err != nil {
		return nil, err
	}
	return approveSkipArgs{OrderID: id, Stage: stage, Reason: reason}, nil
}

// rejectUnknown fails when args holds keys outside the allowed set.
func rejectUnknown(args map[string]any, allowed ...string) error {
	known := make(map[string]struct{}, len(allowed))
	for _, k := range allowed {
		known[k] = struct{}{}
	}
	var extra []string
	for k := range args {
		if _, ok := known[k]; !ok {
			extra = append(extra, k)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return fmt.Errorf("unexpected argument(s): %s", strings.Join(extra, ", "))
	}
	return nil
}

func requireInt(args map[string]any, key string) (int64, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return 0, fmt.Errorf("%s is required", key)
	}
	return coerceInt(key, raw)
}

func coerceInt(key string, raw any) (int64, error) {
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%s must be a whole number", key)
		}
		return int64(v), nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%s must be a number, got %q", key, v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%s must be a number, got %T", key, raw)
	}
}

func requireIntSlice(args map[string]any, key string) ([]int64, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, fmt.Errorf("%s is required", key)
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s must be a list of numbers", key)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%s must not be empty", key)
	}
	out := make([]int64, 0, len(list))
	for i, item := range list {
		n, err := coerceInt(fmt.Sprintf("%s[%d]", key, i), item)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func requireString(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return "", fmt.Errorf("%s is required", key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T", key, raw)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%s must not be empty", key)
	}
	return s, nil
}

func optionalString(args map[string]any, key string) (*string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("%s must be a string, got %T", key, raw)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	return &s, nil
}

func requireBool(args map[string]any, key string) (bool, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return false, fmt.Errorf("%s is required", key)
	}
	b, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("%s must be a boolean, got %T", key, raw)
	}
	return b, nil
}

func requireStage(args map[string]any) (order.Stage, error) {
	s, err := requireString(args, "stage")
	if err != nil {
		return "", err
	}
	stage, err := order.ParseStage(s)
	if err != nil {
		return "", fmt.Errorf("stage must be one of PREPARATION, ASSEMBLY, DELIVERY, got %q", s)
	}
	return stage, nil
}
