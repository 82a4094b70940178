package workflowapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/orderdesk/internal/domain/order"
)

func TestListOrders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"orders": []map[string]any{
				{"id": 1, "reference": "ORD-A", "priority": 3, "state": "OPEN"},
				{"id": 2, "reference": "ORD-B", "priority": 5, "state": "OPEN"},
			},
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	orders, err := c.ListOrders(context.Background(), "token")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "ORD-A", orders[0].Reference)
	assert.Equal(t, int64(2), orders[1].ID)
}

func TestGetOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/orders/42", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 42, "reference": "ORD-X", "priority": 2, "state": "OPEN", "currentStage": "ASSEMBLY",
			"stages": []map[string]any{
				{"stage": "ASSEMBLY", "state": "IN_PROGRESS", "checklist": []map[string]any{
					{"id": 1, "label": "inspect", "required": true, "completed": false},
				}},
			},
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	ord, err := c.GetOrder(context.Background(), "token", 42)
	require.NoError(t, err)
	assert.Equal(t, order.StageAssembly, ord.CurrentStage)
	require.Len(t, ord.Stages, 1)
	require.Len(t, ord.Stages[0].Checklist, 1)
	assert.True(t, ord.Stages[0].Checklist[0].Required)
}

func TestCreateOrderSendsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ORD-NEW", body["reference"])
		assert.Equal(t, float64(4), body["priority"])
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 9, "reference": "ORD-NEW", "priority": 4, "state": "OPEN"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	ord, err := c.CreateOrder(context.Background(), "token", "ORD-NEW", 4)
	require.NoError(t, err)
	assert.Equal(t, int64(9), ord.ID)
}

func TestUpdateChecklistPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/orders/5/stages/ASSEMBLY/checklist", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []any{float64(1), float64(3)}, body["taskIds"])
		assert.Equal(t, true, body["completed"])
		_ = json.NewEncoder(w).Encode(map[string]any{"stage": "ASSEMBLY", "state": "IN_PROGRESS"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	ss, err := c.UpdateChecklist(context.Background(), "token", 5, order.StageAssembly, []int64{1, 3}, true)
	require.NoError(t, err)
	assert.Equal(t, order.StageInProgress, ss.State)
}

func TestCompleteStageOmitsAbsentOptionals(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/orders/5/stages/DELIVERY/complete", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, hasMinutes := body["serviceMinutes"]
		_, hasNotes := body["notes"]
		assert.False(t, hasMinutes)
		assert.False(t, hasNotes)
		_ = json.NewEncoder(w).Encode(map[string]any{"stage": "DELIVERY", "state": "COMPLETED"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	ss, err := c.CompleteStage(context.Background(), "token", 5, order.StageDelivery, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, order.StageCompleted, ss.State)
}

func TestErrorStatusIncludesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"stage already completed"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	_, err := c.FlagException(context.Background(), "token", 5, order.StageAssembly, "broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 409")
	assert.Contains(t, err.Error(), "stage already completed")
}
