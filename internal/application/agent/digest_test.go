package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/orderdesk/orderdesk/internal/domain/order"
	"github.com/orderdesk/orderdesk/internal/infrastructure/workflowapi/mocks"
)

func strPtr(s string) *string { return &s }

func TestDigestUnavailableContextIsSoftFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	wf := mocks.NewMockClient(ctrl)
	wf.EXPECT().ListOrders(gomock.Any(), "token").Return(nil, errors.New("timeout"))

	b := NewContextBuilder(wf, 10, zerolog.Nop())
	digest, warning := b.Build(context.Background(), "token")

	assert.Empty(t, digest)
	assert.Contains(t, warning, "order context unavailable")
	assert.Contains(t, warning, "timeout")
}

func TestDigestEmptyOrderList(t *testing.T) {
	ctrl := gomock.NewController(t)
	wf := mocks.NewMockClient(ctrl)
	wf.EXPECT().ListOrders(gomock.Any(), "token").Return([]*order.Order{}, nil)

	b := NewContextBuilder(wf, 10, zerolog.Nop())
	digest, warning := b.Build(context.Background(), "token")

	assert.Equal(t, "No orders are currently visible.", digest)
	assert.Empty(t, warning)
}

func TestDigestOrdering(t *testing.T) {
	ctrl := gomock.NewController(t)
	wf := mocks.NewMockClient(ctrl)
	now := time.Now()
	orders := []*order.Order{
		{ID: 1, Reference: "ORD-A", Priority: 2, State: order.StateOpen, UpdatedAt: now},
		{ID: 2, Reference: "ORD-B", Priority: 5, State: order.StateOpen, UpdatedAt: now.Add(-time.Hour)},
		{ID: 3, Reference: "ORD-C", Priority: 5, State: order.StateOpen, UpdatedAt: now},
	}
	wf.EXPECT().ListOrders(gomock.Any(), "token").Return(orders, nil)

	b := NewContextBuilder(wf, 10, zerolog.Nop())
	digest, warning := b.Build(context.Background(), "token")
	require.Empty(t, warning)

	// Priority descending, then most recently updated first.
	posC := strings.Index(digest, "ORD-C")
	posB := strings.Index(digest, "ORD-B")
	posA := strings.Index(digest, "ORD-A")
	assert.True(t, posC < posB && posB < posA, "digest order wrong:\n%s", digest)
}

func TestDigestHonorsLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	wf := mocks.NewMockClient(ctrl)
	orders := []*order.Order{
		{ID: 1, Reference: "ORD-A", Priority: 5},
		{ID: 2, Reference: "ORD-B", Priority: 4},
		{ID: 3, Reference: "ORD-C", Priority: 3},
	}
	wf.EXPECT().ListOrders(gomock.Any(), "token").Return(orders, nil)

	b := NewContextBuilder(wf, 2, zerolog.Nop())
	digest, _ := b.Build(context.Background(), "token")

	assert.Contains(t, digest, "ORD-A")
	assert.Contains(t, digest, "ORD-B")
	assert.NotContains(t, digest, "ORD-C")
}

func TestDigestStageLines(t *testing.T) {
	ctrl := gomock.NewController(t)
	wf := mocks.NewMockClient(ctrl)
	orders := []*order.Order{{
		ID: 7, Reference: "ORD-X", Priority: 3, State: order.StateOpen, CurrentStage: order.StageAssembly,
		Stages: []order.StageStatus{
			{
				Stage:    order.StageAssembly,
				State:    order.StageInProgress,
				Assignee: strPtr("lee"),
				Checklist: []order.ChecklistTask{
					{ID: 1, Required: true, Completed: true},
					{ID: 2, Required: true, Completed: false},
				},
			},
			{Stage: order.StagePreparation, State: order.StageCompleted},
			{Stage: order.StageDelivery, State: order.StageException, ExceptionReason: strPtr("address unknown")},
		},
	}}
	wf.EXPECT().ListOrders(gomock.Any(), "token").Return(orders, nil)

	b := NewContextBuilder(wf, 10, zerolog.Nop())
	digest, _ := b.Build(context.Background(), "token")

	assert.Contains(t, digest, "ORD-X (id 7) priority=3 state=OPEN current=ASSEMBLY")
	assert.Contains(t, digest, "ASSEMBLY: IN_PROGRESS assignee=lee checklist=1/2")
	assert.Contains(t, digest, "DELIVERY: EXCEPTION exception=address unknown")

	// Stage lines follow the canonical sequence regardless of input order.
	posPrep := strings.Index(digest, "PREPARATION: COMPLETED")
	posAsm := strings.Index(digest, "ASSEMBLY: IN_PROGRESS")
	require.True(t, posPrep >= 0 && posAsm >= 0)
	assert.Less(t, posPrep, posAsm)
}
