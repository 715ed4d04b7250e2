package billing

import (
	"time"

	"github.com/shopspring/decimal"
	"intersdk/pkg/models"
)

// componentRole selects the wire encoding of a financial component. The
// validation rules are identical across roles; only the slot codes differ.
type componentRole int

const (
	roleDiscount componentRole = iota
	rolePenalty
	roleLateFee
)

// FinancialComponent is a discount, penalty or late-fee term attached to a
// boleto. Value is a percentage of the nominal value when Kind is
// KindPercentage and a fixed amount when Kind is KindFixedAmount.
type FinancialComponent struct {
	Kind  models.ComponentKind
	Date  time.Time
	Value decimal.Decimal
}

// payload encodes the component into its fixed wire slot for the given role.
func (c FinancialComponent) payload(role componentRole) *models.ComponentPayload {
	p := &models.ComponentPayload{
		Data: c.Date.Format(models.DateLayout),
	}
	percentage := c.Kind == models.KindPercentage
	value := c.Value.InexactFloat64()
	if percentage {
		p.Taxa = value
	} else {
		p.Valor = value
	}
	switch role {
	case roleDiscount:
		if percentage {
			p.CodigoDesconto = models.DiscountPercentage
		} else {
			p.CodigoDesconto = models.DiscountFixed
		}
	case rolePenalty:
		if percentage {
			p.CodigoMulta = models.FinePercentage
		} else {
			p.CodigoMulta = models.FineFixed
		}
	case roleLateFee:
		if percentage {
			p.CodigoMora = models.LateFeePercentage
		} else {
			p.CodigoMora = models.LateFeeFixed
		}
	}
	return p
}

// emptyComponentPayload fills a slot the boleto does not use. The wire format
// cannot omit a slot, only mark it empty with the role's sentinel code.
func emptyComponentPayload(role componentRole) *models.ComponentPayload {
	p := &models.ComponentPayload{}
	switch role {
	case roleDiscount:
		p.CodigoDesconto = models.DiscountNone
	case rolePenalty:
		p.CodigoMulta = models.FineNone
	case roleLateFee:
		p.CodigoMora = models.LateFeeNone
	}
	return p
}

// componentFromPayload decodes one wire slot. A nil payload or a "none"
// sentinel code maps to an absent component.
func componentFromPayload(p *models.ComponentPayload) (*FinancialComponent, error) {
	if p == nil {
		return nil, nil
	}
	code := p.Code()
	switch code {
	case "", models.DiscountNone, models.FineNone, models.LateFeeNone:
		return nil, nil
	}

	kind := models.KindFixedAmount
	value := p.Valor
	switch code {
	case models.DiscountPercentage, models.FinePercentage, models.LateFeePercentage:
		kind = models.KindPercentage
		value = p.Taxa
	}

	date, err := time.Parse(models.DateLayout, p.Data)
	if err != nil {
		return nil, NewValidationError("component.date", "must be a valid YYYY-MM-DD date")
	}
	return &FinancialComponent{
		Kind:  kind,
		Date:  date,
		Value: decimal.NewFromFloat(value),
	}, nil
}
