package models

// DateLayout is the calendar-date format used by every boleto payload field.
const DateLayout = "2006-01-02"

// Component slot codes. The create side uses a role-specific key
// (codigoDesconto, codigoMulta, codigoMora) while read responses collapse
// them into a single "codigo" key; ComponentPayload carries both families.
const (
	DiscountNone       = "NAOTEMDESCONTO"
	DiscountPercentage = "PERCENTUALDATAINFORMADA"
	DiscountFixed      = "VALORFIXODATAINFORMADA"

	FineNone       = "NAOTEMMULTA"
	FinePercentage = "PERCENTUAL"
	FineFixed      = "VALORFIXO"

	LateFeeNone       = "ISENTO"
	LateFeePercentage = "TAXAMENSAL"
	LateFeeFixed      = "VALORDIA"
)

// BoletoPayload is the boleto wire representation. The same shape is sent on
// issuance and received on retrieval; the trailing fields are only ever
// populated by the server. Optional component slots are never omitted on the
// wire, an empty slot carries its "none" sentinel code with zeroed values.
type BoletoPayload struct {
	SeuNumero         string            `json:"seuNumero"`
	ValorNominal      float64           `json:"valorNominal"`
	DataVencimento    string            `json:"dataVencimento"`
	NumDiasAgenda     int               `json:"numDiasAgenda"`
	Pagador           *PersonPayload    `json:"pagador"`
	BeneficiarioFinal *PersonPayload    `json:"beneficiarioFinal"`
	Mensagem          *MessagePayload   `json:"mensagem"`
	Desconto1         *ComponentPayload `json:"desconto1"`
	Desconto2         *ComponentPayload `json:"desconto2"`
	Desconto3         *ComponentPayload `json:"desconto3"`
	Multa             *ComponentPayload `json:"multa"`
	Mora              *ComponentPayload `json:"mora"`

	// Server-assigned fields, present on read responses only.
	NossoNumero           string             `json:"nossoNumero,omitempty"`
	CodigoBarras          string             `json:"codigoBarras,omitempty"`
	LinhaDigitavel        string             `json:"linhaDigitavel,omitempty"`
	DataEmissao           string             `json:"dataEmissao,omitempty"`
	DataLimite            string             `json:"dataLimite,omitempty"`
	DataHoraSituacao      string             `json:"dataHoraSituacao,omitempty"`
	Situacao              Situation          `json:"situacao,omitempty"`
	Origem                string             `json:"origem,omitempty"`
	ContaCorrente         string             `json:"contaCorrente,omitempty"`
	CodigoEspecie         string             `json:"codigoEspecie,omitempty"`
	ValorTotalRecebimento *float64           `json:"valorTotalRecebimento,omitempty"`
	MotivoCancelamento    CancellationReason `json:"motivoCancelamento,omitempty"`
}

// Discounts returns the three fixed discount slots in order.
func (p *BoletoPayload) Discounts() []*ComponentPayload {
	return []*ComponentPayload{p.Desconto1, p.Desconto2, p.Desconto3}
}

// ComponentPayload is one financial-component slot (discount, fine or late
// fee). Exactly one of Taxa/Valor is meaningful depending on the slot code;
// the other is zero. An empty slot has a "none" sentinel code and no date.
type ComponentPayload struct {
	Codigo         string  `json:"codigo,omitempty"`
	CodigoDesconto string  `json:"codigoDesconto,omitempty"`
	CodigoMulta    string  `json:"codigoMulta,omitempty"`
	CodigoMora     string  `json:"codigoMora,omitempty"`
	Data           string  `json:"data,omitempty"`
	Taxa           float64 `json:"taxa"`
	Valor          float64 `json:"valor"`
}

// Code returns the slot code regardless of which key family carried it.
func (p *ComponentPayload) Code() string {
	for _, code := range []string{p.Codigo, p.CodigoDesconto, p.CodigoMulta, p.CodigoMora} {
		if code != "" {
			return code
		}
	}
	return ""
}

// MessagePayload is the fixed five-line message block. Unused lines are
// explicit nulls on the wire, the API does not accept a shorter object.
type MessagePayload struct {
	Linha1 *string `json:"linha1"`
	Linha2 *string `json:"linha2"`
	Linha3 *string `json:"linha3"`
	Linha4 *string `json:"linha4"`
	Linha5 *string `json:"linha5"`
}

// Lines returns the populated message lines in order, dropping empty slots.
func (m *MessagePayload) Lines() []string {
	var lines []string
	for _, line := range []*string{m.Linha1, m.Linha2, m.Linha3, m.Linha4, m.Linha5} {
		if line != nil && *line != "" {
			lines = append(lines, *line)
		}
	}
	return lines
}

// PersonPayload is the payer / final-beneficiary block. The address is
// flattened into the person object on the wire; absent optionals are
// explicit nulls. The phone number is split into a two-digit area code
// (ddd) and the remaining digits.
type PersonPayload struct {
	CpfCnpj     string     `json:"cpfCnpj"`
	TipoPessoa  PersonKind `json:"tipoPessoa"`
	Nome        string     `json:"nome"`
	Endereco    *string    `json:"endereco"`
	Numero      *string    `json:"numero"`
	Complemento *string    `json:"complemento"`
	Bairro      *string    `json:"bairro"`
	Cidade      *string    `json:"cidade"`
	UF          *string    `json:"uf"`
	Cep         *string    `json:"cep"`
	Email       *string    `json:"email"`
	DDD         *string    `json:"ddd"`
	Telefone    *string    `json:"telefone"`
}

// IssueResponse is the body returned by a successful boleto issuance.
type IssueResponse struct {
	NossoNumero    string `json:"nossoNumero"`
	CodigoBarras   string `json:"codigoBarras"`
	LinhaDigitavel string `json:"linhaDigitavel"`
}

// PDFResponse is the body returned by the boleto PDF endpoint.
type PDFResponse struct {
	PDF string `json:"pdf"` // base64-encoded document
}
