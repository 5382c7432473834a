package brasilapi

import (
	"errors"
	"sync"
	"time"
)

// ── Circuit breaker ───────────────────────────────────────────────────────────
// Fechado → Aberto após FailureThreshold falhas seguidas; após OpenTimeout passa a
// Meio-aberto e deixa passar sondagens; SuccessThreshold sucessos fecham de novo.

type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrCircuitOpen devolvido por Execute enquanto o circuito estiver aberto.
var ErrCircuitOpen = errors.New("circuit breaker aberto")

// BreakerConfig parâmetros ajustáveis; zeros assumem os padrões.
type BreakerConfig struct {
	FailureThreshold int           // padrão 5
	SuccessThreshold int           // padrão 2
	OpenTimeout      time.Duration // padrão 60s
}

// Breaker seguro para uso concorrente.
type Breaker struct {
	mu               sync.Mutex
	state            State
	failures         int
	successes        int
	openedAt         time.Time
	failureThreshold int
	successThreshold int
	openTimeout      time.Duration
	now              func() time.Time
}

func NewBreaker(cfg BreakerConfig) *Breaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = 2
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 60 * time.Second
	}
	return &Breaker{
		failureThreshold: cfg.FailureThreshold,
		successThreshold: cfg.SuccessThreshold,
		openTimeout:      cfg.OpenTimeout,
		now:              time.Now,
	}
}

// State estado atual; aberto vira meio-aberto quando OpenTimeout expira.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current()
}

func (b *Breaker) current() State {
	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.openTimeout {
		b.state = StateHalfOpen
		b.successes = 0
	}
	return b.state
}

// Execute roda fn pelo circuito. Erros para os quais countable devolve false
// (ex.: 404 do serviço) passam adiante sem contar como falha.
func (b *Breaker) Execute(fn func() error, countable func(error) bool) error {
	b.mu.Lock()
	if b.current() == StateOpen {
		b.mu.Unlock()
		return ErrCircuitOpen
	}
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil && (countable == nil || countable(err)) {
		b.onFailure()
		return err
	}
	b.onSuccess()
	return err
}

func (b *Breaker) onFailure() {
	b.failures++
	switch b.state {
	case StateClosed:
		if b.failures >= b.failureThreshold {
			b.trip()
		}
	case StateHalfOpen:
		b.trip()
	}
}

func (b *Breaker) onSuccess() {
	switch b.state {
	case StateClosed:
		b.failures = 0
	case StateHalfOpen:
		b.successes++
		if b.successes >= b.successThreshold {
			b.state = StateClosed
			b.failures, b.successes = 0, 0
		}
	}
}

func (b *Breaker) trip() {
	b.state = StateOpen
	b.openedAt = b.now()
	b.failures, b.successes = 0, 0
}
