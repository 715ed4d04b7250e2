package models

// Scope names a permission a token can be granted by the partner API.
// Scopes are requested space-separated on the OAuth form and returned the
// same way on the token response.
type Scope string

const (
	// ScopeBoletoRead authorizes boleto retrieval (data and PDF).
	ScopeBoletoRead Scope = "boleto-cobranca.read"

	// ScopeBoletoWrite authorizes boleto issuance and cancellation.
	ScopeBoletoWrite Scope = "boleto-cobranca.write"
)

// PersonKind distinguishes individual and corporate tax records.
type PersonKind string

const (
	PersonIndividual  PersonKind = "FISICA"
	PersonCorporation PersonKind = "JURIDICA"
)

// ComponentKind selects how a financial component is expressed:
// a percentage of the nominal value or a fixed amount.
type ComponentKind string

const (
	KindPercentage  ComponentKind = "TAXA"
	KindFixedAmount ComponentKind = "VALOR"
)

// CancellationReason is the enumerated set of reasons the API accepts for
// cancelling an issued boleto.
type CancellationReason string

const (
	CancelAdjustments     CancellationReason = "ACERTOS"
	CancelClientRequest   CancellationReason = "APEDIDODOCLIENTE"
	CancelPaidDirectly    CancellationReason = "PAGODIRETOAOCLIENTE"
	CancelReplacement     CancellationReason = "SUBSTITUICAO"
)

// CancellationReasons lists every accepted reason, in API documentation order.
var CancellationReasons = []CancellationReason{
	CancelAdjustments,
	CancelClientRequest,
	CancelPaidDirectly,
	CancelReplacement,
}

// Valid reports whether the reason is one the API accepts.
func (r CancellationReason) Valid() bool {
	for _, known := range CancellationReasons {
		if r == known {
			return true
		}
	}
	return false
}

// Situation is the server-reported boleto status.
type Situation string

const (
	SituationOpen      Situation = "EMABERTO"
	SituationPaid      Situation = "PAGO"
	SituationCancelled Situation = "CANCELADO"
	SituationExpired   Situation = "EXPIRADO"
	SituationOverdue   Situation = "VENCIDO"
)

// UFs holds the 27 Brazilian federative-unit codes.
var UFs = []string{
	"AC", "AL", "AP", "AM", "BA", "CE", "DF", "ES", "GO",
	"MA", "MT", "MS", "MG", "PA", "PB", "PR", "PE", "PI",
	"RJ", "RN", "RS", "RO", "RR", "SC", "SP", "SE", "TO",
}

// ValidUF reports whether code is a known federative-unit code.
func ValidUF(code string) bool {
	for _, uf := range UFs {
		if code == uf {
			return true
		}
	}
	return false
}
