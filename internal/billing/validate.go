package billing

import (
	"fmt"
	"time"

	"github.com/paemuri/brdoc"
	"github.com/shopspring/decimal"
	"intersdk/pkg/models"
)

// Issuance bounds.
var (
	minNominalValue   = decimal.NewFromFloat(2.50)
	minComponentValue = decimal.NewFromFloat(0.01)
	maxPercentage     = decimal.NewFromInt(100)
)

const (
	maxDueDateDays  = 1000
	maxGraceDays    = 60
	maxMessageLines = 5
	maxLineLength   = 78
	maxDiscounts    = 3
)

// Validate runs the full pre-issuance rule battery over the boleto and its
// sub-objects, failing fast on the first violated rule. Issue calls it
// unconditionally before any network traffic.
func (b *Boleto) Validate() error {
	return newBoletoValidator(b).validate()
}

type boletoValidator struct {
	b   *Boleto
	now func() time.Time
}

func newBoletoValidator(b *Boleto) *boletoValidator {
	return &boletoValidator{b: b, now: time.Now}
}

// validate applies the rules in a fixed order: lifecycle, reference code,
// nominal value, due date, grace period, payer, final beneficiary, message,
// discounts, penalty, late fee.
func (v *boletoValidator) validate() error {
	checks := []func() error{
		v.validateIssued,
		v.validateReferenceCode,
		v.validateNominalValue,
		v.validateDueDate,
		v.validateGraceDays,
		v.validatePayer,
		v.validateFinalBeneficiary,
		v.validateMessage,
		v.validateDiscounts,
		v.validatePenalty,
		v.validateLateFee,
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

// today returns the current date at midnight for day-granular comparisons.
func (v *boletoValidator) today() time.Time {
	year, month, day := v.now().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func (v *boletoValidator) validateIssued() error {
	if v.b.issued {
		return ErrAlreadyIssued
	}
	return nil
}

func (v *boletoValidator) validateReferenceCode() error {
	code := v.b.referenceCode
	if !isNumeric(code) {
		return NewValidationError("referenceCode", "must contain only digits")
	}
	if len(code) < 1 || len(code) > 15 {
		return NewValidationError("referenceCode", "must be 1 to 15 characters long")
	}
	return nil
}

func (v *boletoValidator) validateNominalValue() error {
	value := v.b.nominalValue
	if value.Exponent() < -2 {
		return NewValidationError("nominalValue", "must have at most 2 decimal places")
	}
	if value.LessThan(minNominalValue) {
		return NewValidationError("nominalValue", "must be at least 2.50")
	}
	return nil
}

func (v *boletoValidator) validateDueDate() error {
	due := dateOnly(v.b.dueDate)
	today := v.today()
	if due.Before(today) {
		return NewValidationError("dueDate", "must not be in the past")
	}
	if due.After(today.AddDate(0, 0, maxDueDateDays)) {
		return NewValidationError("dueDate", fmt.Sprintf("must be at most %d days from today", maxDueDateDays))
	}
	return nil
}

func (v *boletoValidator) validateGraceDays() error {
	if v.b.graceDays > maxGraceDays {
		return NewValidationError("gracePeriodDays", fmt.Sprintf("must be at most %d", maxGraceDays))
	}
	return nil
}

func (v *boletoValidator) validatePayer() error {
	return v.validatePerson("payer", v.b.payer)
}

func (v *boletoValidator) validateFinalBeneficiary() error {
	if v.b.finalBeneficiary == nil {
		return nil
	}
	return v.validatePerson("finalBeneficiary", *v.b.finalBeneficiary)
}

func (v *boletoValidator) validateMessage() error {
	if v.b.message == nil {
		return nil
	}
	lines := v.b.message
	if len(lines) < 1 || len(lines) > maxMessageLines {
		return NewValidationError("message", fmt.Sprintf("must have 1 to %d lines", maxMessageLines))
	}
	for i, line := range lines {
		if len(line) < 1 || len(line) > maxLineLength {
			return NewValidationError(
				fmt.Sprintf("message[%d]", i),
				fmt.Sprintf("must be 1 to %d characters long", maxLineLength),
			)
		}
	}
	return nil
}

func (v *boletoValidator) validateDiscounts() error {
	if v.b.discounts == nil {
		return nil
	}
	discounts := v.b.discounts
	if len(discounts) < 1 || len(discounts) > maxDiscounts {
		return NewValidationError("discounts", fmt.Sprintf("must have 1 to %d components", maxDiscounts))
	}
	due := dateOnly(v.b.dueDate)
	for i, discount := range discounts {
		field := fmt.Sprintf("discounts[%d]", i)
		if err := v.validateComponent(field, discount); err != nil {
			return err
		}
		if dateOnly(discount.Date).After(due) {
			return NewValidationError(field+".date", "must fall at or before the due date")
		}
	}
	for _, discount := range discounts[1:] {
		if discount.Kind != discounts[0].Kind {
			return NewValidationError("discounts", "must all be of the same kind")
		}
	}
	return nil
}

func (v *boletoValidator) validatePenalty() error {
	if v.b.penalty == nil {
		return nil
	}
	return v.validateDueWindowComponent("penalty", *v.b.penalty)
}

func (v *boletoValidator) validateLateFee() error {
	if v.b.lateFee == nil {
		return nil
	}
	return v.validateDueWindowComponent("lateFee", *v.b.lateFee)
}

// validateDueWindowComponent checks the rules shared by penalty and late
// fee: the component date must fall strictly after the due date and at or
// before the due-limit date.
func (v *boletoValidator) validateDueWindowComponent(field string, c FinancialComponent) error {
	if err := v.validateComponent(field, c); err != nil {
		return err
	}
	date := dateOnly(c.Date)
	if !date.After(dateOnly(v.b.dueDate)) {
		return NewValidationError(field+".date", "must fall after the due date")
	}
	if date.After(dateOnly(v.b.DueLimitDate())) {
		return NewValidationError(field+".date", "must fall at or before the due-limit date")
	}
	return nil
}

func (v *boletoValidator) validateComponent(field string, c FinancialComponent) error {
	if c.Kind != models.KindPercentage && c.Kind != models.KindFixedAmount {
		return NewValidationError(field+".kind", "must be TAXA or VALOR")
	}
	if dateOnly(c.Date).Before(v.today()) {
		return NewValidationError(field+".date", "must not be in the past")
	}
	if c.Value.Exponent() < -2 {
		return NewValidationError(field+".value", "must have at most 2 decimal places")
	}
	if c.Value.LessThan(minComponentValue) {
		return NewValidationError(field+".value", "must be at least 0.01")
	}
	if c.Kind == models.KindPercentage && !c.Value.LessThan(maxPercentage) {
		return NewValidationError(field+".value", "must be less than 100 for percentage components")
	}
	return nil
}

func (v *boletoValidator) validatePerson(field string, p Person) error {
	switch p.Kind {
	case models.PersonIndividual:
		if !brdoc.IsCPF(p.TaxID) {
			return NewValidationError(field+".taxId", "must be a valid CPF")
		}
	case models.PersonCorporation:
		if !brdoc.IsCNPJ(p.TaxID) {
			return NewValidationError(field+".taxId", "must be a valid CNPJ")
		}
	default:
		return NewValidationError(field+".kind", "must be FISICA or JURIDICA")
	}
	if len(p.Name) < 1 || len(p.Name) > 100 {
		return NewValidationError(field+".name", "must be 1 to 100 characters long")
	}
	if p.Address == nil {
		return NewValidationError(field+".address", "is required")
	}
	if err := v.validateAddress(field+".address", *p.Address); err != nil {
		return err
	}
	if p.Email != "" && len(p.Email) > 50 {
		return NewValidationError(field+".email", "must be at most 50 characters long")
	}
	if p.Phone != "" {
		if !isNumeric(p.Phone) {
			return NewValidationError(field+".phone", "must contain only digits")
		}
		if len(p.Phone) != 10 && len(p.Phone) != 11 {
			return NewValidationError(field+".phone", "must have 10 or 11 digits")
		}
	}
	return nil
}

func (v *boletoValidator) validateAddress(field string, a Address) error {
	if len(a.Street) < 1 || len(a.Street) > 100 {
		return NewValidationError(field+".street", "must be 1 to 100 characters long")
	}
	if len(a.Number) < 1 || len(a.Number) > 10 {
		return NewValidationError(field+".number", "must be 1 to 10 characters long")
	}
	if len(a.District) < 1 || len(a.District) > 60 {
		return NewValidationError(field+".district", "must be 1 to 60 characters long")
	}
	if len(a.City) < 1 || len(a.City) > 60 {
		return NewValidationError(field+".city", "must be 1 to 60 characters long")
	}
	if !models.ValidUF(a.StateCode) {
		return NewValidationError(field+".stateCode", "must be a valid federative-unit code")
	}
	if !isNumeric(a.PostalCode) || len(a.PostalCode) != 8 {
		return NewValidationError(field+".postalCode", "must have exactly 8 digits")
	}
	if a.Complement != "" && len(a.Complement) > 30 {
		return NewValidationError(field+".complement", "must be at most 30 characters long")
	}
	return nil
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
