package payables

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cuentas-por-pagar/internal/application/dto"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain"
)

// fieldParser acumula los campos ausentes o mal formados de un request.
// Ningún caso de uso escribe si err() != nil.
type fieldParser struct {
	verr domain.ValidationError
}

func (p *fieldParser) required(name, v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		p.verr.Add(name)
	}
	return v
}

func (p *fieldParser) id(name, v string) int64 {
	v = strings.TrimSpace(v)
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		p.verr.Add(name)
		return 0
	}
	return n
}

// Los montos se guardan como NUMERIC(18,2).
const amountScale = 2

var maxAmount = decimal.New(1, 16)

// amount exige un decimal positivo con a lo sumo dos decimales. Un valor con más
// precisión se rechaza en vez de redondearse, así lo guardado es lo que se envió.
func (p *fieldParser) amount(name, v string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil || !d.IsPositive() || !d.Equal(d.Truncate(amountScale)) || d.GreaterThanOrEqual(maxAmount) {
		p.verr.Add(name)
		return decimal.Zero
	}
	return d
}

func (p *fieldParser) date(name, v string) time.Time {
	t, err := time.Parse(dto.DateLayout, strings.TrimSpace(v))
	if err != nil {
		p.verr.Add(name)
		return time.Time{}
	}
	return t
}

func (p *fieldParser) err() error {
	return p.verr.Err()
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(amountScale)
}

func formatDate(t time.Time) string {
	return t.Format(dto.DateLayout)
}
