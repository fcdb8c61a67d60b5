package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/jhoicas/veon-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCounter struct {
	calls []string
	err   error
}

func (f *fakeCounter) IncrementSalesCount(_ context.Context, userID, clientID string) error {
	f.calls = append(f.calls, userID+"/"+clientID)
	return f.err
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Queue: QueueDefault, Type: task.Type()}, nil
}

func TestNewClientSalesCountTask(t *testing.T) {
	task, err := NewClientSalesCountTask("u1", "c1")
	require.NoError(t, err)
	assert.Equal(t, TaskClientSalesCount, task.Type())

	var p ClientSalesCountPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, "c1", p.ClientID)

	_, err = NewClientSalesCountTask("u1", "")
	assert.Error(t, err)
	_, err = NewClientSalesCountTask("", "c1")
	assert.Error(t, err)
}

func TestHandler_IncrementaContador(t *testing.T) {
	counter := &fakeCounter{}
	h := NewClientSalesCountHandler(counter, nil)
	task, err := NewClientSalesCountTask("u1", "c1")
	require.NoError(t, err)

	require.NoError(t, h.ProcessTask(context.Background(), task))
	assert.Equal(t, []string{"u1/c1"}, counter.calls)
}

func TestHandler_PayloadInvalido_NoReintenta(t *testing.T) {
	h := NewClientSalesCountHandler(&fakeCounter{}, nil)
	err := h.ProcessTask(context.Background(), asynq.NewTask(TaskClientSalesCount, []byte("{")))
	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)

	sinUsuario, _ := json.Marshal(ClientSalesCountPayload{ClientID: "c1"})
	err = h.ProcessTask(context.Background(), asynq.NewTask(TaskClientSalesCount, sinUsuario))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandler_ClienteInexistente_NoReintenta(t *testing.T) {
	counter := &fakeCounter{err: domain.NewNotFoundError("clients", "c9")}
	h := NewClientSalesCountHandler(counter, nil)
	task, _ := NewClientSalesCountTask("u1", "c9")

	err := h.ProcessTask(context.Background(), task)
	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandler_ErrorTransitorio_SeReintenta(t *testing.T) {
	counter := &fakeCounter{err: errors.New("redis caído")}
	h := NewClientSalesCountHandler(counter, nil)
	task, _ := NewClientSalesCountTask("u1", "c1")

	err := h.ProcessTask(context.Background(), task)
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestNotifier_EncolaTarea(t *testing.T) {
	q := &fakeEnqueuer{}
	n := newNotifier(q, nil)
	n.SaleRecorded(context.Background(), "u1", "c1")

	require.Len(t, q.tasks, 1)
	assert.Equal(t, TaskClientSalesCount, q.tasks[0].Type())
}

func TestNotifier_FalloAlEncolar_NoPropaga(t *testing.T) {
	q := &fakeEnqueuer{err: errors.New("sin conexión")}
	n := newNotifier(q, nil)
	assert.NotPanics(t, func() { n.SaleRecorded(context.Background(), "u1", "c1") })
	assert.Empty(t, q.tasks)
}
