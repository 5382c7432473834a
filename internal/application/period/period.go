// Package period interpreta datas (AAAA-MM-DD) e períodos de consulta vindos da API.
package period

import (
	"time"

	"github.com/weslleycarlos/representacao-comercial/internal/domain"
)

// DayLayout formato de data aceito nos filtros.
const DayLayout = "2006-01-02"

// ParseDay interpreta s como dia em UTC; vazio devolve nil.
func ParseDay(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return nil, domain.NewValidationError(field, "data inválida, use AAAA-MM-DD")
	}
	return &t, nil
}

// MonthOf devolve [primeiro dia do mês de t, primeiro dia do mês seguinte).
func MonthOf(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// Range converte from/to (dias inclusivos) em um intervalo semiaberto [start, end).
// Sem datas vale o mês corrente de now; só uma das pontas é completada a partir do mês dela.
func Range(from, to string, now time.Time) (time.Time, time.Time, error) {
	f, err := ParseDay("from", from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	t, err := ParseDay("to", to)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	switch {
	case f == nil && t == nil:
		start, end := MonthOf(now.UTC())
		return start, end, nil
	case f == nil:
		start, _ := MonthOf(*t)
		return start, t.AddDate(0, 0, 1), nil
	case t == nil:
		_, end := MonthOf(*f)
		return *f, end, nil
	}
	if t.Before(*f) {
		return time.Time{}, time.Time{}, domain.NewValidationError("to", "data final anterior à inicial")
	}
	return *f, t.AddDate(0, 0, 1), nil
}

// Bounds converte from/to opcionais em ponteiros [start, end) para filtros de listagem.
func Bounds(from, to string) (*time.Time, *time.Time, error) {
	f, err := ParseDay("from", from)
	if err != nil {
		return nil, nil, err
	}
	t, err := ParseDay("to", to)
	if err != nil {
		return nil, nil, err
	}
	if f != nil && t != nil && t.Before(*f) {
		return nil, nil, domain.NewValidationError("to", "data final anterior à inicial")
	}
	if t != nil {
		next := t.AddDate(0, 0, 1)
		t = &next
	}
	return f, t, nil
}
