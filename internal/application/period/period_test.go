package period

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weslleycarlos/representacao-comercial/internal/domain"
)

func day(s string) time.Time {
	t, _ := time.Parse(DayLayout, s)
	return t
}

func TestRange(t *testing.T) {
	now := time.Date(2026, 3, 17, 15, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		from, to  string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"mês corrente", "", "", day("2026-03-01"), day("2026-04-01")},
		{"intervalo fechado", "2026-01-10", "2026-01-20", day("2026-01-10"), day("2026-01-21")},
		{"só início", "2026-02-05", "", day("2026-02-05"), day("2026-03-01")},
		{"só fim", "", "2025-12-15", day("2025-12-01"), day("2025-12-16")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := Range(tt.from, tt.to, now)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestRange_Invalido(t *testing.T) {
	_, _, err := Range("2026-13-01", "", time.Now())
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, _, err = Range("2026-02-10", "2026-02-01", time.Now())
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestBounds(t *testing.T) {
	f, to, err := Bounds("", "2026-05-31")
	require.NoError(t, err)
	assert.Nil(t, f)
	require.NotNil(t, to)
	assert.Equal(t, day("2026-06-01"), *to)
}
