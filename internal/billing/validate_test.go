package billing_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intersdk/internal/billing"
	"intersdk/pkg/models"
)

// in returns today plus the given number of days, at day granularity.
func in(days int) time.Time {
	return time.Now().UTC().AddDate(0, 0, days)
}

// validBoleto is due in ten days with a five-day grace period, so its
// due-limit date is fifteen days out.
func validBoleto() *billing.Boleto {
	return billing.NewBoleto("123456", decimal.NewFromFloat(100.50), in(10), 5, samplePayer())
}

func assertViolation(t *testing.T, err error, field string) {
	t.Helper()
	var verr *billing.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, field, verr.Field)
}

func TestValidate_ValidDraftPasses(t *testing.T) {
	assert.NoError(t, validBoleto().Validate())
}

func TestValidate_AlreadyIssuedFailsFirst(t *testing.T) {
	b := validBoleto()
	require.NoError(t, b.SetIssued(issueResponse()))
	assert.ErrorIs(t, b.Validate(), billing.ErrAlreadyIssued)
}

func TestValidate_ReferenceCode(t *testing.T) {
	b := validBoleto()
	require.NoError(t, b.SetReferenceCode("12A456"))
	assertViolation(t, b.Validate(), "referenceCode")

	require.NoError(t, b.SetReferenceCode("1234567890123456")) // 16 digits
	assertViolation(t, b.Validate(), "referenceCode")

	require.NoError(t, b.SetReferenceCode("1"))
	assert.NoError(t, b.Validate())
	require.NoError(t, b.SetReferenceCode("123456789012345")) // 15 digits
	assert.NoError(t, b.Validate())
}

func TestValidate_NominalValueBoundary(t *testing.T) {
	b := validBoleto()
	require.NoError(t, b.SetNominalValue(decimal.NewFromFloat(2.49)))
	assertViolation(t, b.Validate(), "nominalValue")

	require.NoError(t, b.SetNominalValue(decimal.NewFromFloat(2.50)))
	assert.NoError(t, b.Validate())
}

func TestValidate_NominalValueFractionDigits(t *testing.T) {
	b := validBoleto()
	require.NoError(t, b.SetNominalValue(decimal.RequireFromString("10.999")))
	assertViolation(t, b.Validate(), "nominalValue")
}

func TestValidate_DueDateWindow(t *testing.T) {
	b := validBoleto()
	require.NoError(t, b.SetDueDate(in(-1)))
	assertViolation(t, b.Validate(), "dueDate")

	require.NoError(t, b.SetDueDate(in(1001)))
	assertViolation(t, b.Validate(), "dueDate")

	require.NoError(t, b.SetDueDate(in(1000)))
	assert.NoError(t, b.Validate())
	require.NoError(t, b.SetDueDate(in(0)))
	assert.NoError(t, b.Validate())
}

func TestValidate_GraceDaysBoundary(t *testing.T) {
	b := validBoleto()
	require.NoError(t, b.SetGraceDays(61))
	assertViolation(t, b.Validate(), "gracePeriodDays")

	require.NoError(t, b.SetGraceDays(60))
	assert.NoError(t, b.Validate())

	// No lower bound is enforced.
	require.NoError(t, b.SetGraceDays(-3))
	assert.NoError(t, b.Validate())
}

func TestValidate_FailsFastInFixedOrder(t *testing.T) {
	b := validBoleto()
	require.NoError(t, b.SetReferenceCode("not-numeric"))
	require.NoError(t, b.SetNominalValue(decimal.NewFromInt(1)))

	// Both the reference code and the nominal value are invalid; the
	// reference code rule runs first.
	assertViolation(t, b.Validate(), "referenceCode")
}

func TestValidate_PayerTaxID(t *testing.T) {
	payer := samplePayer()
	payer.TaxID = "52998224726" // wrong check digit
	b := validBoleto()
	require.NoError(t, b.SetPayer(payer))
	assertViolation(t, b.Validate(), "payer.taxId")
}

func TestValidate_CorporatePayer(t *testing.T) {
	payer := samplePayer()
	payer.Kind = models.PersonCorporation
	payer.TaxID = "11222333000181"
	b := validBoleto()
	require.NoError(t, b.SetPayer(payer))
	assert.NoError(t, b.Validate())

	payer.TaxID = "11222333000100"
	require.NoError(t, b.SetPayer(payer))
	assertViolation(t, b.Validate(), "payer.taxId")
}

func TestValidate_PayerAddressRequired(t *testing.T) {
	payer := samplePayer()
	payer.Address = nil
	b := validBoleto()
	require.NoError(t, b.SetPayer(payer))
	assertViolation(t, b.Validate(), "payer.address")
}

func TestValidate_AddressRules(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*billing.Address)
		field  string
	}{
		{"postal code too short", func(a *billing.Address) { a.PostalCode = "3011000" }, "payer.address.postalCode"},
		{"postal code not numeric", func(a *billing.Address) { a.PostalCode = "3011000a" }, "payer.address.postalCode"},
		{"unknown state code", func(a *billing.Address) { a.StateCode = "XX" }, "payer.address.stateCode"},
		{"empty street", func(a *billing.Address) { a.Street = "" }, "payer.address.street"},
		{"number too long", func(a *billing.Address) { a.Number = "12345678901" }, "payer.address.number"},
		{"complement too long", func(a *billing.Address) { a.Complement = strings.Repeat("x", 31) }, "payer.address.complement"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payer := samplePayer()
			tc.mutate(payer.Address)
			b := validBoleto()
			require.NoError(t, b.SetPayer(payer))
			assertViolation(t, b.Validate(), tc.field)
		})
	}
}

func TestValidate_PayerPhone(t *testing.T) {
	payer := samplePayer()
	payer.Phone = "319876543" // 9 digits
	b := validBoleto()
	require.NoError(t, b.SetPayer(payer))
	assertViolation(t, b.Validate(), "payer.phone")

	payer.Phone = "3198765432" // 10 digits
	require.NoError(t, b.SetPayer(payer))
	assert.NoError(t, b.Validate())
}

func TestValidate_FinalBeneficiaryOptionalButChecked(t *testing.T) {
	b := validBoleto()
	assert.NoError(t, b.Validate())

	bad := samplePayer()
	bad.Name = ""
	require.NoError(t, b.SetFinalBeneficiary(&bad))
	assertViolation(t, b.Validate(), "finalBeneficiary.name")
}

func TestValidate_MessageRules(t *testing.T) {
	b := validBoleto()
	require.NoError(t, b.SetMessage([]string{"a", "b", "c", "d", "e", "f"}))
	assertViolation(t, b.Validate(), "message")

	require.NoError(t, b.SetMessage([]string{strings.Repeat("x", 79)}))
	assertViolation(t, b.Validate(), "message[0]")

	require.NoError(t, b.SetMessage([]string{strings.Repeat("x", 78)}))
	assert.NoError(t, b.Validate())
}

func TestValidate_DiscountDateWindow(t *testing.T) {
	b := validBoleto() // due in 10 days
	require.NoError(t, b.SetDiscounts([]billing.FinancialComponent{
		{Kind: models.KindFixedAmount, Date: in(10), Value: decimal.NewFromFloat(1)},
	}))
	assert.NoError(t, b.Validate())

	require.NoError(t, b.SetDiscounts([]billing.FinancialComponent{
		{Kind: models.KindFixedAmount, Date: in(11), Value: decimal.NewFromFloat(1)},
	}))
	assertViolation(t, b.Validate(), "discounts[0].date")
}

func TestValidate_DiscountsMustShareKind(t *testing.T) {
	b := validBoleto()
	require.NoError(t, b.SetDiscounts([]billing.FinancialComponent{
		{Kind: models.KindPercentage, Date: in(1), Value: decimal.NewFromFloat(2)},
		{Kind: models.KindFixedAmount, Date: in(2), Value: decimal.NewFromFloat(1)},
	}))
	assertViolation(t, b.Validate(), "discounts")
}

func TestValidate_TooManyDiscounts(t *testing.T) {
	discount := billing.FinancialComponent{Kind: models.KindFixedAmount, Date: in(1), Value: decimal.NewFromFloat(1)}
	b := validBoleto()
	require.NoError(t, b.SetDiscounts([]billing.FinancialComponent{discount, discount, discount, discount}))
	assertViolation(t, b.Validate(), "discounts")
}

func TestValidate_PenaltyDateWindow(t *testing.T) {
	b := validBoleto() // due in 10 days, due limit in 15

	require.NoError(t, b.SetPenalty(&billing.FinancialComponent{
		Kind: models.KindPercentage, Date: in(11), Value: decimal.NewFromFloat(2),
	}))
	assert.NoError(t, b.Validate())

	// On the due date: not strictly after it.
	require.NoError(t, b.SetPenalty(&billing.FinancialComponent{
		Kind: models.KindPercentage, Date: in(10), Value: decimal.NewFromFloat(2),
	}))
	assertViolation(t, b.Validate(), "penalty.date")

	// Beyond the due-limit date.
	require.NoError(t, b.SetPenalty(&billing.FinancialComponent{
		Kind: models.KindPercentage, Date: in(16), Value: decimal.NewFromFloat(2),
	}))
	assertViolation(t, b.Validate(), "penalty.date")

	// Exactly on the due-limit date.
	require.NoError(t, b.SetPenalty(&billing.FinancialComponent{
		Kind: models.KindPercentage, Date: in(15), Value: decimal.NewFromFloat(2),
	}))
	assert.NoError(t, b.Validate())
}

func TestValidate_LateFeeDateWindow(t *testing.T) {
	b := validBoleto()
	require.NoError(t, b.SetLateFee(&billing.FinancialComponent{
		Kind: models.KindFixedAmount, Date: in(16), Value: decimal.NewFromFloat(0.50),
	}))
	assertViolation(t, b.Validate(), "lateFee.date")
}

func TestValidate_ComponentValueRules(t *testing.T) {
	b := validBoleto()

	require.NoError(t, b.SetPenalty(&billing.FinancialComponent{
		Kind: models.KindPercentage, Date: in(11), Value: decimal.RequireFromString("0.001"),
	}))
	assertViolation(t, b.Validate(), "penalty.value")

	require.NoError(t, b.SetPenalty(&billing.FinancialComponent{
		Kind: models.KindPercentage, Date: in(11), Value: decimal.NewFromInt(100),
	}))
	assertViolation(t, b.Validate(), "penalty.value")

	require.NoError(t, b.SetPenalty(&billing.FinancialComponent{
		Kind: models.KindPercentage, Date: in(11), Value: decimal.RequireFromString("99.99"),
	}))
	assert.NoError(t, b.Validate())

	// A fixed amount of 100 or more is fine.
	require.NoError(t, b.SetPenalty(&billing.FinancialComponent{
		Kind: models.KindFixedAmount, Date: in(11), Value: decimal.NewFromInt(500),
	}))
	assert.NoError(t, b.Validate())
}

func TestValidate_ComponentDateNotInPast(t *testing.T) {
	b := validBoleto()
	require.NoError(t, b.SetDueDate(in(0)))
	require.NoError(t, b.SetGraceDays(5))
	require.NoError(t, b.SetPenalty(&billing.FinancialComponent{
		Kind: models.KindPercentage, Date: in(-1), Value: decimal.NewFromFloat(2),
	}))
	assertViolation(t, b.Validate(), "penalty.date")
}
