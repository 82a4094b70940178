package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainAgent "github.com/orderdesk/orderdesk/internal/domain/agent"
	"github.com/orderdesk/orderdesk/internal/domain/identity"
	"github.com/orderdesk/orderdesk/internal/infrastructure/llm"
	"github.com/orderdesk/orderdesk/internal/infrastructure/workflowapi/mocks"
)

// fakeLLM returns a canned completion and records the messages it was given.
type fakeLLM struct {
	text     string
	model    string
	err      error
	messages [][]llm.Message
}

func (f *fakeLLM) Complete(_ context.Context, messages []llm.Message) (*llm.Completion, error) {
	f.messages = append(f.messages, messages)
	if f.err != nil {
		return nil, f.err
	}
	model := f.model
	if model == "" {
		model = "test-model"
	}
	return &llm.Completion{Text: f.text, Model: model}, nil
}

func testPrincipal(roles ...identity.Role) identity.Principal {
	return identity.Principal{Username: "dana", Roles: roles}
}

func TestGeneratePlan(t *testing.T) {
	fake := &fakeLLM{text: `{"intent":"inspect","actions":[{"name":"list_orders","arguments":{}}]}`}
	p := NewPlanner(fake, zerolog.Nop())

	ctrl := gomock.NewController(t)
	catalog := NewCatalog(mocks.NewMockClient(ctrl))
	allowed := catalog.ListFor([]identity.Role{identity.RoleViewer})

	plan, err := p.GeneratePlan(context.Background(), "what is going on", "ORD-A (id 1) priority=3 state=OPEN current=ASSEMBLY", allowed, testPrincipal(identity.RoleViewer))
	require.NoError(t, err)
	assert.Equal(t, "inspect", plan.Intent)
	require.Len(t, plan.Actions, 1)
	assert.Equal(t, ActionListOrders, plan.Actions[0].Name)

	require.Len(t, fake.messages, 1)
	require.Len(t, fake.messages[0], 2)
	system := fake.messages[0][0].Content
	user := fake.messages[0][1].Content

	// The prompt names only the viewer-visible actions.
	assert.Contains(t, system, ActionListOrders)
	assert.Contains(t, system, ActionGetOrder)
	assert.Contains(t, system, ActionListExceptions)
	assert.NotContains(t, system, ActionCompleteStage)
	assert.NotContains(t, system, ActionApproveSkip)
	assert.Contains(t, system, "dana")
	assert.Contains(t, system, "VIEWER")

	assert.Contains(t, user, "ORD-A")
	assert.Contains(t, user, "Objective: what is going on")
}

func TestGeneratePlanOmitsEmptyDigest(t *testing.T) {
	fake := &fakeLLM{text: `{"actions":[]}`}
	p := NewPlanner(fake, zerolog.Nop())

	ctrl := gomock.NewController(t)
	catalog := NewCatalog(mocks.NewMockClient(ctrl))
	allowed := catalog.ListFor([]identity.Role{identity.RoleViewer})

	_, err := p.GeneratePlan(context.Background(), "help", "", allowed, testPrincipal(identity.RoleViewer))
	require.NoError(t, err)
	assert.NotContains(t, fake.messages[0][1].Content, "Current orders")
}

func TestGeneratePlanModelFailure(t *testing.T) {
	fake := &fakeLLM{err: errors.New("rate limited")}
	p := NewPlanner(fake, zerolog.Nop())

	ctrl := gomock.NewController(t)
	catalog := NewCatalog(mocks.NewMockClient(ctrl))

	_, err := p.GeneratePlan(context.Background(), "help", "", catalog.List(), testPrincipal(identity.RoleOperator))
	assert.ErrorContains(t, err, "plan generation")
	assert.ErrorContains(t, err, "rate limited")
}

func TestGeneratePlanUnusableResponse(t *testing.T) {
	fake := &fakeLLM{text: "I cannot help with that."}
	p := NewPlanner(fake, zerolog.Nop())

	ctrl := gomock.NewController(t)
	catalog := NewCatalog(mocks.NewMockClient(ctrl))

	_, err := p.GeneratePlan(context.Background(), "help", "", catalog.List(), testPrincipal(identity.RoleOperator))
	assert.ErrorIs(t, err, domainAgent.ErrPlanParse)
}
