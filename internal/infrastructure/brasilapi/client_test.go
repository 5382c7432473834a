package brasilapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weslleycarlos/representacao-comercial/internal/domain"
)

func newServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestLookupTaxID(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cnpj/v1/12345678000195", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"cnpj":"12345678000195","razao_social":"MALHAS SUL LTDA","nome_fantasia":"Malhas Sul",
			"descricao_situacao_cadastral":"ATIVA","municipio":"CURITIBA","uf":"PR","cep":"80010000"}`))
	})
	c := NewClient(srv.URL, time.Second, nil)

	rec, err := c.LookupTaxID(context.Background(), "12345678000195")
	require.NoError(t, err)
	assert.Equal(t, "MALHAS SUL LTDA", rec.LegalName)
	assert.Equal(t, "ATIVA", rec.Status)
	assert.Equal(t, "PR", rec.State)
}

func TestLookupPostalCode(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cep/v1/80010000" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"CEP não encontrado"}`))
			return
		}
		_, _ = w.Write([]byte(`{"cep":"80010000","state":"PR","city":"Curitiba","neighborhood":"Centro","street":"Rua XV de Novembro"}`))
	})
	c := NewClient(srv.URL, time.Second, nil)

	rec, err := c.LookupPostalCode(context.Background(), "80010000")
	require.NoError(t, err)
	assert.Equal(t, "Centro", rec.District)
	assert.Equal(t, "Rua XV de Novembro", rec.Street)

	_, err = c.LookupPostalCode(context.Background(), "01001000")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestTimeout(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})
	c := NewClient(srv.URL, 20*time.Millisecond, nil)

	_, err := c.LookupTaxID(context.Background(), "12345678000195")
	assert.True(t, errors.Is(err, domain.ErrTimeout), "got %v", err)
}

func TestCircuitoAbreAposFalhas(t *testing.T) {
	var calls atomic.Int32
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})
	c := NewClient(srv.URL, time.Second, NewBreaker(BreakerConfig{FailureThreshold: 2, OpenTimeout: time.Hour}))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := c.LookupTaxID(ctx, "12345678000195")
		assert.True(t, errors.Is(err, domain.ErrUnavailable))
	}
	assert.Equal(t, StateOpen, c.breaker.State())

	_, err := c.LookupTaxID(ctx, "12345678000195")
	assert.True(t, errors.Is(err, domain.ErrUnavailable))
	assert.Equal(t, int32(2), calls.Load(), "circuito aberto não chama o serviço")
}

func TestNaoEncontradoNaoAbreCircuito(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	c := NewClient(srv.URL, time.Second, NewBreaker(BreakerConfig{FailureThreshold: 1}))

	for i := 0; i < 3; i++ {
		_, err := c.LookupTaxID(context.Background(), "12345678000195")
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	}
	assert.Equal(t, StateClosed, c.breaker.State())
}

func TestBreaker_MeioAbertoFecha(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b := NewBreaker(BreakerConfig{FailureThreshold: 1, SuccessThreshold: 2, OpenTimeout: time.Minute})
	b.now = func() time.Time { return now }
	fail := errors.New("falha")

	assert.Equal(t, fail, b.Execute(func() error { return fail }, nil))
	assert.Equal(t, StateOpen, b.State())
	assert.True(t, errors.Is(b.Execute(func() error { return nil }, nil), ErrCircuitOpen))

	now = now.Add(time.Minute)
	assert.Equal(t, StateHalfOpen, b.State())
	require.NoError(t, b.Execute(func() error { return nil }, nil))
	assert.Equal(t, StateHalfOpen, b.State())
	require.NoError(t, b.Execute(func() error { return nil }, nil))
	assert.Equal(t, StateClosed, b.State())
}
