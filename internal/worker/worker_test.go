package worker

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weslleycarlos/representacao-comercial/internal/application/ports"
	"github.com/weslleycarlos/representacao-comercial/internal/infrastructure/mail"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg mail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakePDF struct{ err error }

func (f fakePDF) Render(ports.OrderDocument) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.3"), nil
}

type captureQueue struct{ jobs []Job }

func (c *captureQueue) Enqueue(_ context.Context, job Job) error {
	c.jobs = append(c.jobs, job)
	return nil
}

func sampleDoc() ports.OrderDocument {
	return ports.OrderDocument{
		OrderID:      "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		Number:       "PED-42",
		IssuedAt:     time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		Status:       "enviado",
		CustomerName: "Loja Centro",
		Items: []ports.OrderDocumentItem{
			{Code: "A", Description: "Item", Quantity: 1, UnitPrice: decimal.NewFromInt(10), LineTotal: decimal.NewFromInt(10)},
		},
		Subtotal: decimal.NewFromInt(10),
		Total:    decimal.NewFromInt(10),
	}
}

func TestNotifier_EnfileiraJobs(t *testing.T) {
	q := &captureQueue{}
	n := NewNotifier(q)
	ctx := context.Background()

	require.NoError(t, n.SendOrderConfirmation(ctx, []string{"c@loja.com"}, sampleDoc()))
	require.NoError(t, n.SendOrderConfirmation(ctx, nil, sampleDoc()))
	require.NoError(t, n.SendPasswordReset(ctx, "ana@org.com", "Ana", "http://x"))
	assert.Error(t, n.SendPasswordReset(ctx, "", "Ana", "http://x"))

	require.Len(t, q.jobs, 2)
	assert.Equal(t, JobOrderConfirmation, q.jobs[0].Type)
	assert.NotEmpty(t, q.jobs[0].ID)
	var p OrderConfirmationPayload
	require.NoError(t, json.Unmarshal(q.jobs[0].Payload, &p))
	assert.Equal(t, "PED-42", p.Document.Number)
	assert.True(t, p.Document.Total.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, JobPasswordReset, q.jobs[1].Type)
}

func TestEmailHandler_ConfirmacaoComPDF(t *testing.T) {
	sender := &fakeSender{}
	mux := NewMux()
	NewEmailHandler(sender, fakePDF{}).Register(mux)

	job, err := NewJob(JobOrderConfirmation, OrderConfirmationPayload{To: []string{"c@loja.com"}, Document: sampleDoc()})
	require.NoError(t, err)
	require.NoError(t, mux.Handle(context.Background(), job))

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "Pedido PED-42 - Confirmação", msg.Subject)
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "pedido-PED-42.pdf", msg.Attachments[0].Name)
}

func TestEmailHandler_FalhaNoPDFEnviaSemAnexo(t *testing.T) {
	sender := &fakeSender{}
	h := NewEmailHandler(sender, fakePDF{err: errors.New("fonte")})
	job, _ := NewJob(JobOrderConfirmation, OrderConfirmationPayload{To: []string{"c@loja.com"}, Document: sampleDoc()})

	require.NoError(t, h.Handle(context.Background(), job))
	require.Len(t, sender.sent, 1)
	assert.Empty(t, sender.sent[0].Attachments)
}

func TestEmailHandler_Recuperacao(t *testing.T) {
	sender := &fakeSender{}
	h := NewEmailHandler(sender, nil)
	job, _ := NewJob(JobPasswordReset, PasswordResetPayload{To: "ana@org.com", Name: "Ana", Link: "http://app/r?token=1"})

	require.NoError(t, h.Handle(context.Background(), job))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, mail.SubjectPasswordReset, sender.sent[0].Subject)
}

func TestEmailHandler_PayloadInvalidoEhPermanente(t *testing.T) {
	h := NewEmailHandler(&fakeSender{}, nil)
	err := h.Handle(context.Background(), Job{Type: JobPasswordReset, Payload: json.RawMessage(`[1]`)})
	assert.True(t, IsPermanent(err))
}

func TestMux_TipoDesconhecido(t *testing.T) {
	err := NewMux().Handle(context.Background(), Job{Type: "x"})
	assert.True(t, IsPermanent(err))
	assert.Nil(t, Permanent(nil))
}

func TestInlineQueue_RepeteAteSucesso(t *testing.T) {
	var calls atomic.Int32
	q := NewInlineQueue(HandlerFunc(func(context.Context, Job) error {
		if calls.Add(1) < 3 {
			return errors.New("smtp fora")
		}
		return nil
	}), 0)

	require.NoError(t, q.Enqueue(context.Background(), Job{ID: "1"}))
	q.Wait()
	assert.Equal(t, int32(3), calls.Load())
}

func TestInlineQueue_DesisteAposMaxRetries(t *testing.T) {
	var calls atomic.Int32
	q := NewInlineQueue(HandlerFunc(func(context.Context, Job) error {
		calls.Add(1)
		return errors.New("smtp fora")
	}), 0)

	_ = q.Enqueue(context.Background(), Job{ID: "1"})
	q.Wait()
	assert.Equal(t, int32(MaxRetries), calls.Load())
}

func TestInlineQueue_ErroPermanenteNaoRepete(t *testing.T) {
	var calls atomic.Int32
	q := NewInlineQueue(HandlerFunc(func(context.Context, Job) error {
		calls.Add(1)
		return Permanent(errors.New("payload"))
	}), 0)

	ctx, cancel := context.WithCancel(context.Background())
	_ = q.Enqueue(ctx, Job{ID: "1"})
	cancel()
	q.Wait()
	assert.Equal(t, int32(1), calls.Load())
}

// Requer um Redis real: REDIS_TEST_URL=redis://localhost:6379/15
func TestRedisQueue_RetryEDLQ(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL não definido")
	}
	ctx := context.Background()
	rdb, err := Connect(ctx, url)
	require.NoError(t, err)
	defer rdb.Close()

	key := "repcom:test:" + time.Now().Format("150405.000000")
	defer rdb.Del(ctx, key, DLQPrefix+key)
	q := NewRedisQueue(rdb, key)

	job, _ := NewJob(JobPasswordReset, PasswordResetPayload{To: "a@b.com"})
	require.NoError(t, q.Enqueue(ctx, job))

	got, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, job.ID, got.ID)

	for i := 0; i < MaxRetries; i++ {
		require.NoError(t, q.Retry(ctx, *got, errors.New("falha")))
		if i < MaxRetries-1 {
			got, err = q.Dequeue(ctx, time.Second)
			require.NoError(t, err)
			require.NotNil(t, got)
		}
	}
	n, err := q.DLQLength(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	empty, err := q.Dequeue(ctx, 100*time.Millisecond)
	require.NoError(t, err)
	assert.Nil(t, empty)
}
