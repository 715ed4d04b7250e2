// Package billing models the boleto billing instrument and orchestrates its
// issue, retrieve and cancel operations against the partner API.
//
// A Boleto moves through two one-way lifecycle gates. Issuance freezes the
// economic terms: every pre-issuance mutator fails with ErrAlreadyIssued once
// SetIssued has run. Server-side status fields become readable only after
// SetRefreshed has pulled them from the API.
package billing

import (
	"time"

	"github.com/shopspring/decimal"
	"intersdk/pkg/models"
)

// Boleto is one billing instrument. Sub-objects are owned by value; the
// setters deep-copy their arguments so no mutable state is shared with the
// caller or across documents.
type Boleto struct {
	issued    bool
	refreshed bool

	// Economic terms, mutable until issuance.
	referenceCode    string
	nominalValue     decimal.Decimal
	dueDate          time.Time
	graceDays        int
	payer            Person
	finalBeneficiary *Person
	message          []string
	discounts        []FinancialComponent
	penalty          *FinancialComponent
	lateFee          *FinancialComponent

	// Assigned by the server on issuance.
	ourNumber string
	barcode   string
	digitLine string

	// Pulled from the server on refresh.
	issueDate          time.Time
	refreshedAt        time.Time
	situation          models.Situation
	situationDate      time.Time
	origin             string
	account            string
	speciesCode        string
	totalReceived      *decimal.Decimal
	cancellationReason models.CancellationReason
}

// NewBoleto creates a draft boleto with the required economic terms. The
// optional terms (final beneficiary, message, discounts, penalty, late fee)
// are attached through their setters before issuance.
func NewBoleto(referenceCode string, nominalValue decimal.Decimal, dueDate time.Time, graceDays int, payer Person) *Boleto {
	return &Boleto{
		referenceCode: referenceCode,
		nominalValue:  nominalValue,
		dueDate:       dueDate,
		graceDays:     graceDays,
		payer:         payer.clone(),
	}
}

// Issued reports whether the boleto has been issued.
func (b *Boleto) Issued() bool { return b.issued }

// Refreshed reports whether server-side status data has been pulled.
func (b *Boleto) Refreshed() bool { return b.refreshed }

func (b *Boleto) ReferenceCode() string          { return b.referenceCode }
func (b *Boleto) NominalValue() decimal.Decimal  { return b.nominalValue }
func (b *Boleto) DueDate() time.Time             { return b.dueDate }
func (b *Boleto) GraceDays() int                 { return b.graceDays }
func (b *Boleto) Payer() Person                  { return b.payer.clone() }
func (b *Boleto) FinalBeneficiary() *Person {
	if b.finalBeneficiary == nil {
		return nil
	}
	p := b.finalBeneficiary.clone()
	return &p
}
func (b *Boleto) Message() []string {
	return append([]string(nil), b.message...)
}
func (b *Boleto) Discounts() []FinancialComponent {
	return append([]FinancialComponent(nil), b.discounts...)
}
func (b *Boleto) Penalty() *FinancialComponent { return copyComponent(b.penalty) }
func (b *Boleto) LateFee() *FinancialComponent { return copyComponent(b.lateFee) }

// DueLimitDate is the last day payment is accepted: due date plus the grace
// period.
func (b *Boleto) DueLimitDate() time.Time {
	return b.dueDate.AddDate(0, 0, b.graceDays)
}

func (b *Boleto) SetReferenceCode(code string) error {
	if b.issued {
		return ErrAlreadyIssued
	}
	b.referenceCode = code
	return nil
}

func (b *Boleto) SetNominalValue(value decimal.Decimal) error {
	if b.issued {
		return ErrAlreadyIssued
	}
	b.nominalValue = value
	return nil
}

func (b *Boleto) SetDueDate(date time.Time) error {
	if b.issued {
		return ErrAlreadyIssued
	}
	b.dueDate = date
	return nil
}

func (b *Boleto) SetGraceDays(days int) error {
	if b.issued {
		return ErrAlreadyIssued
	}
	b.graceDays = days
	return nil
}

func (b *Boleto) SetPayer(payer Person) error {
	if b.issued {
		return ErrAlreadyIssued
	}
	b.payer = payer.clone()
	return nil
}

func (b *Boleto) SetFinalBeneficiary(person *Person) error {
	if b.issued {
		return ErrAlreadyIssued
	}
	if person == nil {
		b.finalBeneficiary = nil
		return nil
	}
	p := person.clone()
	b.finalBeneficiary = &p
	return nil
}

func (b *Boleto) SetMessage(lines []string) error {
	if b.issued {
		return ErrAlreadyIssued
	}
	b.message = append([]string(nil), lines...)
	return nil
}

func (b *Boleto) SetDiscounts(discounts []FinancialComponent) error {
	if b.issued {
		return ErrAlreadyIssued
	}
	b.discounts = append([]FinancialComponent(nil), discounts...)
	return nil
}

func (b *Boleto) SetPenalty(penalty *FinancialComponent) error {
	if b.issued {
		return ErrAlreadyIssued
	}
	b.penalty = copyComponent(penalty)
	return nil
}

func (b *Boleto) SetLateFee(lateFee *FinancialComponent) error {
	if b.issued {
		return ErrAlreadyIssued
	}
	b.lateFee = copyComponent(lateFee)
	return nil
}

// OurNumber is the bank-assigned identifier, available after issuance.
func (b *Boleto) OurNumber() (string, error) {
	if !b.issued {
		return "", ErrNotIssued
	}
	return b.ourNumber, nil
}

// Barcode is available after issuance.
func (b *Boleto) Barcode() (string, error) {
	if !b.issued {
		return "", ErrNotIssued
	}
	return b.barcode, nil
}

// DigitLine is the human-typable representation, available after issuance.
func (b *Boleto) DigitLine() (string, error) {
	if !b.issued {
		return "", ErrNotIssued
	}
	return b.digitLine, nil
}

// IssueDate is available after a refresh.
func (b *Boleto) IssueDate() (time.Time, error) {
	if !b.refreshed {
		return time.Time{}, ErrNotRefreshed
	}
	return b.issueDate, nil
}

// RefreshedAt is the instant of the last successful refresh.
func (b *Boleto) RefreshedAt() (time.Time, error) {
	if !b.refreshed {
		return time.Time{}, ErrNotRefreshed
	}
	return b.refreshedAt, nil
}

// Situation is the server-reported status, available after a refresh.
func (b *Boleto) Situation() (models.Situation, error) {
	if !b.refreshed {
		return "", ErrNotRefreshed
	}
	return b.situation, nil
}

// SituationDate is available after a refresh.
func (b *Boleto) SituationDate() (time.Time, error) {
	if !b.refreshed {
		return time.Time{}, ErrNotRefreshed
	}
	return b.situationDate, nil
}

// Origin is available after a refresh.
func (b *Boleto) Origin() (string, error) {
	if !b.refreshed {
		return "", ErrNotRefreshed
	}
	return b.origin, nil
}

// Account is the receiving current account, available after a refresh.
func (b *Boleto) Account() (string, error) {
	if !b.refreshed {
		return "", ErrNotRefreshed
	}
	return b.account, nil
}

// SpeciesCode is the document-kind code, available after a refresh.
func (b *Boleto) SpeciesCode() (string, error) {
	if !b.refreshed {
		return "", ErrNotRefreshed
	}
	return b.speciesCode, nil
}

// TotalReceived is the amount received so far; nil when the server reported
// none. Available after a refresh.
func (b *Boleto) TotalReceived() (*decimal.Decimal, error) {
	if !b.refreshed {
		return nil, ErrNotRefreshed
	}
	if b.totalReceived == nil {
		return nil, nil
	}
	v := *b.totalReceived
	return &v, nil
}

// CancellationReason is empty unless the boleto was cancelled. Available
// after a refresh.
func (b *Boleto) CancellationReason() (models.CancellationReason, error) {
	if !b.refreshed {
		return "", ErrNotRefreshed
	}
	return b.cancellationReason, nil
}

// SetIssued captures the server-assigned identifiers and freezes the
// economic terms. It is callable exactly once per boleto.
func (b *Boleto) SetIssued(resp *models.IssueResponse) error {
	if b.issued {
		return ErrAlreadyIssued
	}
	b.ourNumber = resp.NossoNumero
	b.barcode = resp.CodigoBarras
	b.digitLine = resp.LinhaDigitavel
	b.issued = true
	return nil
}

// SetRefreshed overwrites every server-side status field from a read payload
// and stamps the refresh time. It may be called any number of times.
func (b *Boleto) SetRefreshed(p *models.BoletoPayload) error {
	issueDate, err := time.Parse(models.DateLayout, p.DataEmissao)
	if err != nil {
		return NewValidationError("dataEmissao", "must be a valid YYYY-MM-DD date")
	}
	situationAt, err := time.Parse(time.RFC3339, p.DataHoraSituacao)
	if err != nil {
		// The API reports this field without a zone offset.
		situationAt, err = time.Parse("2006-01-02T15:04:05", p.DataHoraSituacao)
		if err != nil {
			return NewValidationError("dataHoraSituacao", "must be a valid timestamp")
		}
	}
	// Server timestamps are America/Sao_Paulo wall time; shift by the UTC
	// offset before keeping the calendar date.
	situationAt = situationAt.Add(3 * time.Hour)

	b.issueDate = issueDate
	b.situation = p.Situacao
	b.situationDate = situationAt.Truncate(24 * time.Hour)
	b.origin = p.Origem
	b.account = p.ContaCorrente
	b.speciesCode = p.CodigoEspecie
	b.totalReceived = nil
	if p.ValorTotalRecebimento != nil && *p.ValorTotalRecebimento != 0 {
		v := decimal.NewFromFloat(*p.ValorTotalRecebimento)
		b.totalReceived = &v
	}
	b.cancellationReason = p.MotivoCancelamento
	b.refreshedAt = time.Now().UTC()
	b.refreshed = true
	return nil
}

// ToPayload serializes the pre-issuance terms into the wire shape. Unused
// component slots and message lines are emitted as their explicit empty
// forms; the wire format never omits them.
func (b *Boleto) ToPayload() *models.BoletoPayload {
	p := &models.BoletoPayload{
		SeuNumero:      b.referenceCode,
		ValorNominal:   b.nominalValue.InexactFloat64(),
		DataVencimento: b.dueDate.Format(models.DateLayout),
		NumDiasAgenda:  b.graceDays,
		Pagador:        b.payer.payload(),
		Desconto1:      emptyComponentPayload(roleDiscount),
		Desconto2:      emptyComponentPayload(roleDiscount),
		Desconto3:      emptyComponentPayload(roleDiscount),
		Multa:          emptyComponentPayload(rolePenalty),
		Mora:           emptyComponentPayload(roleLateFee),
	}
	if b.finalBeneficiary != nil {
		p.BeneficiarioFinal = b.finalBeneficiary.payload()
	}
	if b.message != nil {
		msg := &models.MessagePayload{}
		slots := []**string{&msg.Linha1, &msg.Linha2, &msg.Linha3, &msg.Linha4, &msg.Linha5}
		for i, line := range b.message {
			if i >= len(slots) {
				break
			}
			l := line
			*slots[i] = &l
		}
		p.Mensagem = msg
	}
	discounts := []**models.ComponentPayload{&p.Desconto1, &p.Desconto2, &p.Desconto3}
	for i, d := range b.discounts {
		if i >= len(discounts) {
			break
		}
		*discounts[i] = d.payload(roleDiscount)
	}
	if b.penalty != nil {
		p.Multa = b.penalty.payload(rolePenalty)
	}
	if b.lateFee != nil {
		p.Mora = b.lateFee.payload(roleLateFee)
	}
	return p
}

// FromPayload builds a draft boleto from a wire payload, inverting
// ToPayload. When the payload carries both absolute dates the grace period
// is recomputed from their delta instead of trusting the literal field.
func FromPayload(p *models.BoletoPayload) (*Boleto, error) {
	dueDate, err := time.Parse(models.DateLayout, p.DataVencimento)
	if err != nil {
		return nil, NewValidationError("dataVencimento", "must be a valid YYYY-MM-DD date")
	}

	graceDays := p.NumDiasAgenda
	if p.DataLimite != "" {
		dueLimit, err := time.Parse(models.DateLayout, p.DataLimite)
		if err != nil {
			return nil, NewValidationError("dataLimite", "must be a valid YYYY-MM-DD date")
		}
		graceDays = int(dueLimit.Sub(dueDate).Hours() / 24)
	}

	if p.Pagador == nil {
		return nil, NewValidationError("pagador", "is required")
	}
	b := NewBoleto(
		p.SeuNumero,
		decimal.NewFromFloat(p.ValorNominal),
		dueDate,
		graceDays,
		personFromPayload(p.Pagador),
	)
	if p.BeneficiarioFinal != nil {
		person := personFromPayload(p.BeneficiarioFinal)
		b.finalBeneficiary = &person
	}
	if p.Mensagem != nil {
		b.message = p.Mensagem.Lines()
	}
	for _, slot := range p.Discounts() {
		component, err := componentFromPayload(slot)
		if err != nil {
			return nil, err
		}
		if component != nil {
			b.discounts = append(b.discounts, *component)
		}
	}
	if b.penalty, err = componentFromPayload(p.Multa); err != nil {
		return nil, err
	}
	if b.lateFee, err = componentFromPayload(p.Mora); err != nil {
		return nil, err
	}
	return b, nil
}

func copyComponent(c *FinancialComponent) *FinancialComponent {
	if c == nil {
		return nil
	}
	out := *c
	return &out
}
